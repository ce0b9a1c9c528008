package hir

import (
	"errors"
	"fmt"
)

// ErrUnknownOperator is returned by OperationFromToken for tokens outside the
// binary operator set.
var ErrUnknownOperator = errors.New("unknown operator")

// Operation is a binary arithmetic operation.
type Operation uint8

const (
	OpAdd Operation = iota
	OpSub
	OpMult
	OpDiv
	OpMod
)

// OperationFromToken maps an operator token onto its operation.
func OperationFromToken(text string) (Operation, error) {
	switch text {
	case "+":
		return OpAdd, nil
	case "-":
		return OpSub, nil
	case "*":
		return OpMult, nil
	case "/":
		return OpDiv, nil
	case "%":
		return OpMod, nil
	default:
		return 0, fmt.Errorf("%w %q", ErrUnknownOperator, text)
	}
}

// Symbol returns the source form of the operation.
func (op Operation) Symbol() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMult:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	default:
		return "?"
	}
}

func (op Operation) String() string {
	switch op {
	case OpAdd:
		return "Add"
	case OpSub:
		return "Sub"
	case OpMult:
		return "Mult"
	case OpDiv:
		return "Div"
	case OpMod:
		return "Mod"
	default:
		return "Unknown"
	}
}
