package interpreter

import (
	"strings"

	"stacklang/interpreter-go/pkg/runtime"
)

// invoke pops the procedure's arguments from the caller's stack and evaluates
// its body in a fresh call frame. Arguments bind in source order: the deepest
// popped operand goes to the first parameter.
func (i *Interpreter) invoke(proc *runtime.Procedure, stack *operandStack, frame *runtime.Frame) (uint64, error) {
	if i.maxDepth > 0 && frame.Depth() >= i.maxDepth {
		return 0, runtime.Errorf(runtime.KindCallDepthExceeded, proc.Name, "limit is %d", i.maxDepth)
	}
	arity := proc.Arity()
	operands, ok := stack.pop(arity)
	if !ok {
		return 0, runtime.Errorf(runtime.KindInvalidNumberOfArguments, proc.Name, "needs %d arguments, have %d", arity, len(*stack))
	}
	args := make([]uint64, arity)
	for k, op := range operands {
		value, err := resolve(op, frame)
		if err != nil {
			return 0, err
		}
		args[arity-1-k] = value
	}

	callFrame, err := frame.Call(proc, args)
	if err != nil {
		return 0, err
	}
	if i.trace != nil {
		i.tracef("call: %s(%s) depth=%d", proc.Name, formatArgs(proc.Params, args), callFrame.Depth())
	}

	res, err := i.evaluateStatement(proc.Body, callFrame)
	if err != nil {
		return 0, err
	}
	switch res.Kind {
	case ResultValue, ResultSignature:
		return res.Value, nil
	default:
		return 0, runtime.Errorf(runtime.KindInvalidNumberOfArguments, proc.Name, "procedure produced no value")
	}
}

func formatArgs(params []string, args []uint64) string {
	parts := make([]string, len(params))
	for k, name := range params {
		parts[k] = name + "=" + operand{value: args[k]}.String()
	}
	return strings.Join(parts, " ")
}
