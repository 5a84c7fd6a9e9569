package ast

// Token helpers.

func Lit(value uint64) *Literal {
	return NewLiteral(value)
}

func Var(name string) *Variable {
	return NewVariable(name)
}

func Proc(name string) *ProcedureRef {
	return NewProcedureRef(name)
}

func Sym(op Operator) *Symbol {
	return NewSymbol(op)
}

// Statement helpers.

// Expr builds an expression statement from tokens given in source order.
func Expr(tokens ...Token) *ExpressionStatement {
	stack := make([]Token, len(tokens))
	for i, tok := range tokens {
		stack[len(tokens)-1-i] = tok
	}
	return NewExpressionStatement(stack)
}

func Def(name string, params []string, body Statement) *ProcedureDefinition {
	return NewProcedureDefinition(name, params, body)
}

func If(condition *ExpressionStatement, then, otherwise Statement) *Conditional {
	return NewConditional(nil, condition, then, otherwise)
}

func GuardedIf(guard, condition *ExpressionStatement, then, otherwise Statement) *Conditional {
	return NewConditional(guard, condition, then, otherwise)
}

func Empty() *EmptyStatement {
	return NewEmptyStatement()
}

func Exit() *ExitStatement {
	return NewExitStatement()
}
