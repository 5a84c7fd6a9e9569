package interpreter

import (
	"stacklang/interpreter-go/pkg/ast"
	"stacklang/interpreter-go/pkg/runtime"
)

// operand is an entry on the scratch stack: a number, or a name that is
// resolved only when a symbol or call consumes it.
type operand struct {
	name  string
	value uint64
}

func (o operand) isName() bool { return o.name != "" }

func (o operand) String() string {
	if o.isName() {
		return o.name
	}
	return ast.NewLiteral(o.value).String()
}

type operandStack []operand

func (s *operandStack) push(op operand) {
	*s = append(*s, op)
}

// pop removes n operands and returns them in pop order (top of stack first).
func (s *operandStack) pop(n int) ([]operand, bool) {
	if len(*s) < n {
		return nil, false
	}
	out := make([]operand, n)
	for k := 0; k < n; k++ {
		out[k] = (*s)[len(*s)-1-k]
	}
	*s = (*s)[:len(*s)-n]
	return out, true
}

// run evaluates one expression in frame. Tokens are drained from the tail;
// the operand stack is local to this call.
func (i *Interpreter) run(expr *ast.ExpressionStatement, frame *runtime.Frame) (Result, error) {
	length := len(expr.Tokens)
	stack := make(operandStack, 0, length)

	for idx := length - 1; idx >= 0; idx-- {
		switch tok := expr.Tokens[idx].(type) {
		case *ast.Literal:
			stack.push(operand{value: tok.Value})
		case *ast.Variable:
			// A name that is not a local variable but names a procedure at this
			// point is a call; this is how bodies reach themselves recursively.
			if proc, ok := frame.Procedure(tok.Name); ok {
				if length < 2 {
					return Result{Kind: ResultSignature, Procedure: proc}, nil
				}
				value, err := i.invoke(proc, &stack, frame)
				if err != nil {
					return Result{}, err
				}
				stack.push(operand{value: value})
				continue
			}
			stack.push(operand{name: tok.Name})
		case *ast.ProcedureRef:
			proc, ok := frame.Procedure(tok.Name)
			if !ok {
				return Result{}, runtime.Errorf(runtime.KindUndefinedProcedure, tok.Name, "")
			}
			if length < 2 {
				return Result{Kind: ResultSignature, Procedure: proc}, nil
			}
			value, err := i.invoke(proc, &stack, frame)
			if err != nil {
				return Result{}, err
			}
			stack.push(operand{value: value})
		case *ast.Symbol:
			value, err := i.applySymbol(tok.Op, &stack, frame)
			if err != nil {
				return Result{}, err
			}
			stack.push(operand{value: value})
		default:
			return Result{}, runtime.Errorf(runtime.KindInvalidExpression, tok.String(), "unexpected %s token", tok.Kind())
		}
	}

	switch {
	case len(stack) == 0:
		return Result{}, runtime.Errorf(runtime.KindInvalidNumberOfArguments, "", "expression produced no value")
	case len(stack) > 1:
		top := stack[len(stack)-1]
		if top.isName() {
			if _, bound := frame.Variable(top.name); !bound {
				return Result{}, runtime.Errorf(runtime.KindUndefinedProcedure, top.name, "")
			}
		}
		return Result{}, runtime.Errorf(runtime.KindInvalidNumberOfArguments, "", "%d values left unconsumed", len(stack))
	}
	value, err := resolve(stack[0], frame)
	if err != nil {
		return Result{}, err
	}
	return Result{Kind: ResultValue, Value: value}, nil
}

// resolve turns an operand into a number, looking names up in frame.
func resolve(op operand, frame *runtime.Frame) (uint64, error) {
	if !op.isName() {
		return op.value, nil
	}
	value, ok := frame.Variable(op.name)
	if !ok {
		return 0, runtime.Errorf(runtime.KindUnboundVariable, op.name, "")
	}
	return value, nil
}
