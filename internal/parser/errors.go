package parser

import (
	"errors"
	"fmt"

	"ro/internal/diag"
	"ro/internal/source"
)

// ErrorKind classifies a parse failure.
type ErrorKind uint8

const (
	// UnterminatedBlock — заголовок или тело блока не закрыто до конца потока.
	UnterminatedBlock ErrorKind = iota + 1
	// MalformedSignature — заголовок fn/result не разбирается.
	MalformedSignature
	// UnknownOperator — средний токен выражения из трёх токенов не бинарный оператор.
	UnknownOperator
	// UnresolvedResultReference — владелец из `=>` не найден среди result-групп.
	UnresolvedResultReference
)

var (
	ErrUnterminatedBlock  = errors.New("unterminated block")
	ErrMalformedSignature = errors.New("malformed signature")
	ErrUnknownOperator    = errors.New("unknown operator")
	ErrUnresolvedResult   = errors.New("unresolved result reference")
)

func (k ErrorKind) String() string {
	switch k {
	case UnterminatedBlock:
		return "UnterminatedBlock"
	case MalformedSignature:
		return "MalformedSignature"
	case UnknownOperator:
		return "UnknownOperator"
	case UnresolvedResultReference:
		return "UnresolvedResultReference"
	default:
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case UnterminatedBlock:
		return ErrUnterminatedBlock
	case MalformedSignature:
		return ErrMalformedSignature
	case UnknownOperator:
		return ErrUnknownOperator
	case UnresolvedResultReference:
		return ErrUnresolvedResult
	default:
		return nil
	}
}

// Code maps the kind onto its diagnostic code.
func (k ErrorKind) Code() diag.Code {
	switch k {
	case UnterminatedBlock:
		return diag.SynUnterminatedBlock
	case MalformedSignature:
		return diag.SynMalformedSignature
	case UnknownOperator:
		return diag.SynUnknownOperator
	case UnresolvedResultReference:
		return diag.SynUnresolvedResult
	default:
		return diag.UnknownCode
	}
}

// Error is the failure value of every parse entry point. Match the kind with
// errors.Is against the Err* sentinels, or recover it with errors.As.
type Error struct {
	Kind ErrorKind
	Span source.Span
	Msg  string
	Err  error // причина, если есть (например hir.ErrUnknownOperator)
}

func (e *Error) Error() string {
	return e.Kind.sentinel().Error() + ": " + e.Msg
}

func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

func (e *Error) Unwrap() error { return e.Err }

// Diagnostic converts the error into an error-severity diagnostic.
func (e *Error) Diagnostic() *diag.Diagnostic {
	return diag.NewError(e.Kind.Code(), e.Span, e.Msg)
}

func newError(kind ErrorKind, sp source.Span, format string, args ...any) *Error {
	return &Error{Kind: kind, Span: sp, Msg: fmt.Sprintf(format, args...)}
}

// withFallbackSpan fills an empty error span, which happens for errors raised on
// empty headers.
func withFallbackSpan(err error, sp source.Span) error {
	var perr *Error
	if errors.As(err, &perr) && perr.Span == (source.Span{}) {
		perr.Span = sp
	}
	return err
}
