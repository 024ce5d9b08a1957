package sema

import (
	"jlite/internal/ast"
	"jlite/internal/types"
)

// BinaryFlags annotate special handling for binary operators.
type BinaryFlags uint8

const (
	BinaryFlagNone     BinaryFlags = 0
	BinaryFlagSameType BinaryFlags = 1 << iota // операнды структурно равны, любой вид
)

// BinarySpec lists accepted operand families and the result of an operator.
type BinarySpec struct {
	Operands types.FamilyMask
	Result   types.Type
	Flags    BinaryFlags
	Message  string // сообщение при нарушении
}

var (
	arithSpec = BinarySpec{
		Operands: types.FamilyInt,
		Result:   types.Int(),
		Message:  "Attempt to perform arithmetic operation on a non-Int",
	}
	compareSpec = BinarySpec{
		Operands: types.FamilyInt,
		Result:   types.Bool(),
		Message:  "Attempt to perform comparison operation on a non-Int",
	}
	equalitySpec = BinarySpec{
		Operands: types.FamilyAny,
		Result:   types.Bool(),
		Flags:    BinaryFlagSameType,
		Message:  "Attempt to perform equality operation on incompatible types",
	}
	logicSpec = BinarySpec{
		Operands: types.FamilyBool,
		Result:   types.Bool(),
		Message:  "Attempt to perform boolean operation on a non-Bool",
	}
)

var binarySpecs = map[ast.BinaryOp]BinarySpec{
	ast.BinaryAdd:        arithSpec,
	ast.BinarySub:        arithSpec,
	ast.BinaryMul:        arithSpec,
	ast.BinaryDiv:        arithSpec,
	ast.BinaryLess:       compareSpec,
	ast.BinaryGreater:    compareSpec,
	ast.BinaryLessEq:     compareSpec,
	ast.BinaryGreaterEq:  compareSpec,
	ast.BinaryEq:         equalitySpec,
	ast.BinaryNotEq:      equalitySpec,
	ast.BinaryLogicalAnd: logicSpec,
	ast.BinaryLogicalOr:  logicSpec,
}

// BinarySpecFor returns the operand rule of op.
func BinarySpecFor(op ast.BinaryOp) (BinarySpec, bool) {
	spec, ok := binarySpecs[op]
	return spec, ok
}

// accepts reports whether the operand pair satisfies the rule.
func (s BinarySpec) accepts(l, r types.Type) bool {
	if s.Flags&BinaryFlagSameType != 0 {
		return l.Equal(r)
	}
	return s.Operands.Accepts(l) && s.Operands.Accepts(r)
}

// UnarySpec: операнд и результат одного вида.
type UnarySpec struct {
	Operand types.Type
	Message string // формат с %s для типа операнда
}

var unarySpecs = map[ast.UnaryOp]UnarySpec{
	ast.UnaryNeg: {Operand: types.Int(), Message: "Attempt to perform integer negation on a '%s'"},
	ast.UnaryNot: {Operand: types.Bool(), Message: "Attempt to perform boolean negation on a '%s'"},
}

// UnarySpecFor returns the operand rule of op.
func UnarySpecFor(op ast.UnaryOp) (UnarySpec, bool) {
	spec, ok := unarySpecs[op]
	return spec, ok
}
