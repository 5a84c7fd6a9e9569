package interpreter

import (
	"stacklang/interpreter-go/pkg/ast"
	"stacklang/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateStatement(node ast.Statement, frame *runtime.Frame) (Result, error) {
	switch n := node.(type) {
	case nil, *ast.EmptyStatement:
		return Result{Kind: ResultNone}, nil
	case *ast.ExitStatement:
		return Result{Kind: ResultExit}, nil
	case *ast.ExpressionStatement:
		return i.run(n, frame)
	case *ast.ProcedureDefinition:
		return i.evaluateDefinition(n, frame)
	case *ast.Conditional:
		return i.evaluateConditional(n, frame)
	default:
		return Result{}, runtime.Errorf(runtime.KindInvalidExpression, "", "unsupported statement type: %s", n.NodeType())
	}
}

// evaluateDefinition registers the procedure. The definition was fully
// validated while parsing, so a failure here can only be a name collision and
// nothing is registered.
func (i *Interpreter) evaluateDefinition(def *ast.ProcedureDefinition, frame *runtime.Frame) (Result, error) {
	if !frame.IsSession() {
		return Result{}, runtime.Errorf(runtime.KindInvalidProcedureDefinition, def.Name, "definitions are not allowed in a procedure body")
	}
	proc := runtime.NewProcedure(def)
	if err := frame.Define(proc); err != nil {
		return Result{}, err
	}
	i.tracef("define: %s", proc.Signature())
	return Result{Kind: ResultNone}, nil
}

func (i *Interpreter) evaluateConditional(cond *ast.Conditional, frame *runtime.Frame) (Result, error) {
	take := true
	if cond.Guard != nil {
		guard, err := i.value(cond.Guard, frame)
		if err != nil {
			return Result{}, err
		}
		take = guard > 0
		i.tracef("if: guard %s = %d", cond.Guard.Source(), guard)
	}
	if take {
		value, err := i.value(cond.Condition, frame)
		if err != nil {
			return Result{}, err
		}
		take = value > 0
		i.tracef("if: condition %s = %d", cond.Condition.Source(), value)
	}
	if take {
		i.tracef("if: taking Then branch")
		return i.evaluateStatement(cond.Then, frame)
	}
	i.tracef("if: taking Else branch")
	return i.evaluateStatement(cond.Else, frame)
}

// value evaluates an expression that must produce a number. A bare procedure
// name yields its signature result, which counts as zero.
func (i *Interpreter) value(expr *ast.ExpressionStatement, frame *runtime.Frame) (uint64, error) {
	res, err := i.run(expr, frame)
	if err != nil {
		return 0, err
	}
	return res.Value, nil
}
