package parser

import (
	"strconv"

	"stacklang/interpreter-go/pkg/ast"
	"stacklang/interpreter-go/pkg/runtime"
)

// NameResolver tells the classifier which names are currently procedures.
// *runtime.Namespace satisfies it.
type NameResolver interface {
	IsProcedure(name string) bool
}

type emptyResolver struct{}

func (emptyResolver) IsProcedure(string) bool { return false }

// scopedResolver hides procedures shadowed by a definition's parameters.
type scopedResolver struct {
	names  NameResolver
	params map[string]struct{}
}

func (s scopedResolver) IsProcedure(name string) bool {
	if _, ok := s.params[name]; ok {
		return false
	}
	return s.names.IsProcedure(name)
}

// Classify decides what kind of token a raw word is. It has no side effects.
func Classify(word string, names NameResolver) (ast.Token, error) {
	if names == nil {
		names = emptyResolver{}
	}
	if IsLiteral(word) {
		value, err := strconv.ParseUint(word, 10, 64)
		if err != nil {
			return nil, runtime.Errorf(runtime.KindInvalidLiteral, word, "out of range")
		}
		return ast.NewLiteral(value), nil
	}
	if op, ok := ast.LookupOperator(word); ok {
		return ast.NewSymbol(op), nil
	}
	if ast.IsKeyword(word) {
		return ast.NewKeyword(word), nil
	}
	if !isNameWord(word) {
		return nil, runtime.Errorf(runtime.KindInvalidExpression, word, "unrecognized token")
	}
	if names.IsProcedure(word) {
		return ast.NewProcedureRef(word), nil
	}
	return ast.NewVariable(word), nil
}

// IsLiteral reports whether word consists only of ASCII digits.
func IsLiteral(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		if word[i] < '0' || word[i] > '9' {
			return false
		}
	}
	return true
}

// IsValidName reports whether word may name a variable, parameter or procedure.
func IsValidName(word string) bool {
	if !isNameWord(word) || IsLiteral(word) || ast.IsKeyword(word) {
		return false
	}
	_, isSymbol := ast.LookupOperator(word)
	return !isSymbol
}

// isNameWord accepts non-empty printable ASCII without whitespace.
func isNameWord(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		if word[i] <= ' ' || word[i] > '~' {
			return false
		}
	}
	return true
}
