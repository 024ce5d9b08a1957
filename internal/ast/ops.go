package ast

import "fmt"

type UnaryOp uint8

const (
	UnaryNeg UnaryOp = iota + 1 // -x
	UnaryNot                    // !x
)

func (op UnaryOp) String() string {
	switch op {
	case UnaryNeg:
		return "-"
	case UnaryNot:
		return "!"
	default:
		return fmt.Sprintf("UnaryOp(%d)", op)
	}
}

type BinaryOp uint8

const (
	BinaryAdd BinaryOp = iota + 1
	BinarySub
	BinaryMul
	BinaryDiv
	BinaryLess
	BinaryGreater
	BinaryLessEq
	BinaryGreaterEq
	BinaryEq
	BinaryNotEq
	BinaryLogicalAnd
	BinaryLogicalOr
)

var binarySymbols = [...]string{
	BinaryAdd:        "+",
	BinarySub:        "-",
	BinaryMul:        "*",
	BinaryDiv:        "/",
	BinaryLess:       "<",
	BinaryGreater:    ">",
	BinaryLessEq:     "<=",
	BinaryGreaterEq:  ">=",
	BinaryEq:         "==",
	BinaryNotEq:      "!=",
	BinaryLogicalAnd: "&&",
	BinaryLogicalOr:  "||",
}

// String returns the operator symbol as printed in IR3.
func (op BinaryOp) String() string {
	if int(op) < len(binarySymbols) && binarySymbols[op] != "" {
		return binarySymbols[op]
	}
	return fmt.Sprintf("BinaryOp(%d)", op)
}
