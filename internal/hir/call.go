package hir

import (
	"fmt"
	"strings"

	"ro/internal/source"
)

// CallKind enumerates call operation kinds.
type CallKind uint8

const (
	// CallReturn returns a single value token.
	CallReturn CallKind = iota
	// CallDeclareVar declares a variable.
	CallDeclareVar
	// CallMove copies one value into a variable.
	CallMove
	// CallOperate stores the result of a binary operation into a variable.
	CallOperate
	// CallInvoke calls a function with argument tokens.
	CallInvoke
)

// String returns a human-readable name for the call kind.
func (k CallKind) String() string {
	switch k {
	case CallReturn:
		return "Return"
	case CallDeclareVar:
		return "DeclareVar"
	case CallMove:
		return "Move"
	case CallOperate:
		return "Operate"
	case CallInvoke:
		return "Invoke"
	default:
		return "Unknown"
	}
}

// Call is one semantic operation of a function body.
type Call struct {
	Kind CallKind
	Span source.Span
	Data CallData // Kind-specific payload
}

// CallData is the interface for call-specific data.
type CallData interface {
	callData()
}

// ReturnData holds data for CallReturn. Value is empty for a bare return.
type ReturnData struct {
	Value string
}

func (ReturnData) callData() {}

// DeclareVarData holds data for CallDeclareVar.
type DeclareVarData struct {
	Name string
}

func (DeclareVarData) callData() {}

// MoveData holds data for CallMove.
type MoveData struct {
	Dest string
	Src  string
}

func (MoveData) callData() {}

// OperateData holds data for CallOperate: Dest = LHS Op RHS.
type OperateData struct {
	Dest string
	LHS  string
	Op   Operation
	RHS  string
}

func (OperateData) callData() {}

// InvokeData holds data for CallInvoke.
type InvokeData struct {
	Func string
	Args []string
}

func (InvokeData) callData() {}

func NewReturn(sp source.Span, value string) Call {
	return Call{Kind: CallReturn, Span: sp, Data: ReturnData{Value: value}}
}

func NewDeclareVar(sp source.Span, name string) Call {
	return Call{Kind: CallDeclareVar, Span: sp, Data: DeclareVarData{Name: name}}
}

func NewMove(sp source.Span, dest, src string) Call {
	return Call{Kind: CallMove, Span: sp, Data: MoveData{Dest: dest, Src: src}}
}

func NewOperate(sp source.Span, dest, lhs string, op Operation, rhs string) Call {
	return Call{Kind: CallOperate, Span: sp, Data: OperateData{Dest: dest, LHS: lhs, Op: op, RHS: rhs}}
}

func NewInvoke(sp source.Span, fn string, args []string) Call {
	return Call{Kind: CallInvoke, Span: sp, Data: InvokeData{Func: fn, Args: args}}
}

// String renders the call in source-like form. It panics on a Kind/Data
// mismatch, which can only come from a hand-built Call.
func (c Call) String() string {
	switch c.Kind {
	case CallReturn:
		d := c.Data.(ReturnData)
		if d.Value == "" {
			return "ret"
		}
		return "ret " + d.Value
	case CallDeclareVar:
		return "var " + c.Data.(DeclareVarData).Name
	case CallMove:
		d := c.Data.(MoveData)
		return d.Dest + " = " + d.Src
	case CallOperate:
		d := c.Data.(OperateData)
		return fmt.Sprintf("%s = %s %s %s", d.Dest, d.LHS, d.Op.Symbol(), d.RHS)
	case CallInvoke:
		d := c.Data.(InvokeData)
		return d.Func + "(" + strings.Join(d.Args, ", ") + ")"
	default:
		panic(fmt.Sprintf("hir: unexpected call kind %d", c.Kind))
	}
}
