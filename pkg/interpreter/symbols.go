package interpreter

import (
	"math/bits"

	"stacklang/interpreter-go/pkg/ast"
	"stacklang/interpreter-go/pkg/runtime"
)

func (i *Interpreter) applySymbol(op ast.Operator, stack *operandStack, frame *runtime.Frame) (uint64, error) {
	if op == ast.OpArrow {
		return 0, runtime.Errorf(runtime.KindInvalidExpression, string(op), "only valid in a procedure definition")
	}
	operands, ok := stack.pop(op.Arity())
	if !ok {
		return 0, runtime.Errorf(runtime.KindInvalidNumberOfArguments, string(op), "needs %d operands, have %d", op.Arity(), len(*stack))
	}

	switch op {
	case ast.OpAssign:
		return assign(operands[0], operands[1], frame)
	case ast.OpNot:
		a, err := resolve(operands[0], frame)
		if err != nil {
			return 0, err
		}
		return boolValue(a == 0), nil
	}

	// a is the right-hand operand (popped first), b the left-hand one.
	a, err := resolve(operands[0], frame)
	if err != nil {
		return 0, err
	}
	b, err := resolve(operands[1], frame)
	if err != nil {
		return 0, err
	}
	return binary(op, b, a)
}

// assign binds target to the value of source. The target must be a name that
// is not bound yet.
func assign(target, source operand, frame *runtime.Frame) (uint64, error) {
	if !target.isName() {
		return 0, runtime.Errorf(runtime.KindInvalidExpression, target.String(), "assignment target must be a name")
	}
	if _, bound := frame.Variable(target.name); bound {
		return 0, runtime.Errorf(runtime.KindVariableNameExists, target.name, "")
	}
	value, err := resolve(source, frame)
	if err != nil {
		return 0, err
	}
	if err := frame.Bind(target.name, value); err != nil {
		return 0, err
	}
	return value, nil
}

func binary(op ast.Operator, left, right uint64) (uint64, error) {
	switch op {
	case ast.OpAdd:
		sum, carry := bits.Add64(left, right, 0)
		if carry != 0 {
			return 0, runtime.Errorf(runtime.KindArithmetic, string(op), "overflow in %d + %d", left, right)
		}
		return sum, nil
	case ast.OpSub:
		diff, borrow := bits.Sub64(left, right, 0)
		if borrow != 0 {
			return 0, runtime.Errorf(runtime.KindArithmetic, string(op), "%d - %d is below zero", left, right)
		}
		return diff, nil
	case ast.OpMul:
		hi, lo := bits.Mul64(left, right)
		if hi != 0 {
			return 0, runtime.Errorf(runtime.KindArithmetic, string(op), "overflow in %d * %d", left, right)
		}
		return lo, nil
	case ast.OpDiv:
		if right == 0 {
			return 0, runtime.Errorf(runtime.KindArithmetic, string(op), "division by zero")
		}
		return left / right, nil
	case ast.OpMod:
		if right == 0 {
			return 0, runtime.Errorf(runtime.KindArithmetic, string(op), "modulo by zero")
		}
		return left % right, nil
	case ast.OpEqual:
		return boolValue(left == right), nil
	case ast.OpNotEqual:
		return boolValue(left != right), nil
	case ast.OpGreater:
		return boolValue(left > right), nil
	case ast.OpGreaterEqual:
		return boolValue(left >= right), nil
	case ast.OpLess:
		return boolValue(left < right), nil
	case ast.OpLessEqual:
		return boolValue(left <= right), nil
	case ast.OpAnd:
		return boolValue(left > 0 && right > 0), nil
	case ast.OpOr:
		return boolValue(left != 0 || right != 0), nil
	default:
		return 0, runtime.Errorf(runtime.KindInvalidExpression, string(op), "unknown symbol")
	}
}

func boolValue(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
