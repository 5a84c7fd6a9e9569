package runtime

import (
	"fmt"
	"strings"
)

// ErrorKind classifies statement-level failures. None of them are fatal to the
// session: the statement is abandoned and the next one is read normally.
type ErrorKind int

const (
	KindInvalidLiteral ErrorKind = iota
	KindInvalidVariableName
	KindInvalidProcedureName
	KindProcedureNameExists
	KindInvalidProcedureDefinition
	KindUndefinedProcedure
	KindInvalidExpression
	KindInvalidNumberOfArguments
	KindUnboundVariable
	KindVariableNameExists
	KindInvalidConditional
	KindArithmetic
	KindCallDepthExceeded
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidLiteral:
		return "invalid literal"
	case KindInvalidVariableName:
		return "invalid variable name"
	case KindInvalidProcedureName:
		return "invalid procedure name"
	case KindProcedureNameExists:
		return "procedure name already exists"
	case KindInvalidProcedureDefinition:
		return "invalid procedure definition"
	case KindUndefinedProcedure:
		return "undefined procedure"
	case KindInvalidExpression:
		return "invalid expression"
	case KindInvalidNumberOfArguments:
		return "invalid number of arguments"
	case KindUnboundVariable:
		return "unbound variable"
	case KindVariableNameExists:
		return "variable name already exists"
	case KindInvalidConditional:
		return "invalid conditional"
	case KindArithmetic:
		return "arithmetic error"
	case KindCallDepthExceeded:
		return "call depth exceeded"
	default:
		return fmt.Sprintf("unknown_error_%d", int(k))
	}
}

// Error is the structured error reported for a failed statement.
type Error struct {
	Kind   ErrorKind
	Name   string
	Detail string
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Name != "" {
		fmt.Fprintf(&b, " %q", e.Name)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

// Is matches any *Error of the same kind, so the sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrInvalidLiteral             = &Error{Kind: KindInvalidLiteral}
	ErrInvalidVariableName        = &Error{Kind: KindInvalidVariableName}
	ErrInvalidProcedureName       = &Error{Kind: KindInvalidProcedureName}
	ErrProcedureNameExists        = &Error{Kind: KindProcedureNameExists}
	ErrInvalidProcedureDefinition = &Error{Kind: KindInvalidProcedureDefinition}
	ErrUndefinedProcedure         = &Error{Kind: KindUndefinedProcedure}
	ErrInvalidExpression          = &Error{Kind: KindInvalidExpression}
	ErrInvalidNumberOfArguments   = &Error{Kind: KindInvalidNumberOfArguments}
	ErrUnboundVariable            = &Error{Kind: KindUnboundVariable}
	ErrVariableNameExists         = &Error{Kind: KindVariableNameExists}
	ErrInvalidConditional         = &Error{Kind: KindInvalidConditional}
	ErrArithmetic                 = &Error{Kind: KindArithmetic}
	ErrCallDepthExceeded          = &Error{Kind: KindCallDepthExceeded}
)

// Errorf builds an *Error of the given kind.
func Errorf(kind ErrorKind, name string, format string, args ...any) *Error {
	detail := ""
	if format != "" {
		detail = fmt.Sprintf(format, args...)
	}
	return &Error{Kind: kind, Name: name, Detail: detail}
}
