package parser

import (
	"strings"

	"stacklang/interpreter-go/pkg/ast"
	"stacklang/interpreter-go/pkg/runtime"
)

// StatementParser turns one line of source into a statement node. Parsing
// never executes anything and never registers procedures.
type StatementParser struct {
	names NameResolver
}

// NewStatementParser constructs a parser that classifies names against names.
func NewStatementParser(names NameResolver) *StatementParser {
	if names == nil {
		names = emptyResolver{}
	}
	return &StatementParser{names: names}
}

// ParseStatement is a convenience wrapper around StatementParser.
func ParseStatement(line string, names NameResolver) (ast.Statement, error) {
	return NewStatementParser(names).ParseStatement(line)
}

// ParseStatement parses one trimmed line.
func (p *StatementParser) ParseStatement(line string) (ast.Statement, error) {
	return p.parseWords(strings.Fields(line), p.names, false)
}

func (p *StatementParser) parseWords(words []string, names NameResolver, inBody bool) (ast.Statement, error) {
	if len(words) == 0 {
		return ast.NewEmptyStatement(), nil
	}
	head := words[0]
	switch {
	case head == ast.KeywordDef:
		if inBody {
			return nil, runtime.Errorf(runtime.KindInvalidProcedureDefinition, "", "definitions are not allowed in a procedure body")
		}
		return p.parseDefinition(words[1:])
	case head == ast.KeywordExit:
		if inBody {
			return nil, runtime.Errorf(runtime.KindInvalidProcedureDefinition, "", "Exit is not allowed in a procedure body")
		}
		return ast.NewExitStatement(), nil
	case head == ast.KeywordIf:
		return p.parseConditional(nil, words[1:], names, inBody)
	case IsLiteral(head) || IsValidName(head):
		if idx := indexOf(words, ast.KeywordIf); idx > 0 {
			return p.parseConditional(words[:idx], words[idx+1:], names, inBody)
		}
		return parseExpression(words, names)
	default:
		return nil, runtime.Errorf(runtime.KindInvalidExpression, head, "statement cannot start here")
	}
}

// parseDefinition handles `<name> As <param>* => <body...>` (Def already consumed).
func (p *StatementParser) parseDefinition(words []string) (ast.Statement, error) {
	if len(words) == 0 {
		return nil, runtime.Errorf(runtime.KindInvalidProcedureDefinition, "", "missing procedure name")
	}
	name := words[0]
	if !IsValidName(name) {
		return nil, runtime.Errorf(runtime.KindInvalidProcedureName, name, "")
	}
	if len(words) < 2 || words[1] != ast.KeywordAs {
		return nil, runtime.Errorf(runtime.KindInvalidProcedureDefinition, name, "expected %s after the procedure name", ast.KeywordAs)
	}

	arrow := -1
	params := make([]string, 0, len(words))
	seen := make(map[string]struct{})
	for i := 2; i < len(words); i++ {
		word := words[i]
		if word == string(ast.OpArrow) {
			arrow = i
			break
		}
		if !IsValidName(word) {
			return nil, runtime.Errorf(runtime.KindInvalidVariableName, word, "invalid parameter of %s", name)
		}
		if _, dup := seen[word]; dup {
			return nil, runtime.Errorf(runtime.KindInvalidProcedureDefinition, name, "duplicate parameter %q", word)
		}
		seen[word] = struct{}{}
		params = append(params, word)
	}
	if arrow < 0 {
		return nil, runtime.Errorf(runtime.KindInvalidProcedureDefinition, name, "missing %s", ast.OpArrow)
	}
	bodyWords := words[arrow+1:]
	if len(bodyWords) == 0 {
		return nil, runtime.Errorf(runtime.KindInvalidProcedureDefinition, name, "empty body")
	}

	body, err := p.parseWords(bodyWords, scopedResolver{names: p.names, params: seen}, true)
	if err != nil {
		return nil, err
	}
	return ast.NewProcedureDefinition(name, params, body), nil
}

// parseConditional handles `<cond...> Then <branch...> Else <branch...>` (If
// already consumed). The first Then and the first Else after it always delimit.
func (p *StatementParser) parseConditional(guardWords, words []string, names NameResolver, inBody bool) (ast.Statement, error) {
	then := indexOf(words, ast.KeywordThen)
	if then < 0 {
		return nil, runtime.Errorf(runtime.KindInvalidConditional, "", "missing %s", ast.KeywordThen)
	}
	if then == 0 {
		return nil, runtime.Errorf(runtime.KindInvalidConditional, "", "empty condition")
	}
	rest := words[then+1:]
	thenWords, elseWords := rest, []string(nil)
	if idx := indexOf(rest, ast.KeywordElse); idx >= 0 {
		thenWords, elseWords = rest[:idx], rest[idx+1:]
	}

	var guard *ast.ExpressionStatement
	if len(guardWords) > 0 {
		g, err := parseExpression(guardWords, names)
		if err != nil {
			return nil, err
		}
		guard = g
	}
	condition, err := parseExpression(words[:then], names)
	if err != nil {
		return nil, err
	}
	thenStmt, err := p.parseWords(thenWords, names, inBody)
	if err != nil {
		return nil, err
	}
	elseStmt, err := p.parseWords(elseWords, names, inBody)
	if err != nil {
		return nil, err
	}
	return ast.NewConditional(guard, condition, thenStmt, elseStmt), nil
}

// parseExpression classifies every word, consuming the line from its end so
// the evaluator can drain the result from the tail in source order.
func parseExpression(words []string, names NameResolver) (*ast.ExpressionStatement, error) {
	stack := make([]ast.Token, 0, len(words))
	for i := len(words) - 1; i >= 0; i-- {
		tok, err := Classify(words[i], names)
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case *ast.Keyword:
			return nil, runtime.Errorf(runtime.KindInvalidExpression, t.Word, "unexpected keyword")
		case *ast.Symbol:
			if t.Op == ast.OpArrow {
				return nil, runtime.Errorf(runtime.KindInvalidExpression, string(t.Op), "only valid in a procedure definition")
			}
		}
		stack = append(stack, tok)
	}
	return ast.NewExpressionStatement(stack), nil
}

func indexOf(words []string, target string) int {
	for i, w := range words {
		if w == target {
			return i
		}
	}
	return -1
}
