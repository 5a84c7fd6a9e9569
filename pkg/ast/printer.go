package ast

import (
	"fmt"
	"strings"
)

// Format renders a statement back into source form.
func Format(stmt Statement) string {
	switch s := stmt.(type) {
	case nil:
		return ""
	case *EmptyStatement:
		return ""
	case *ExitStatement:
		return KeywordExit
	case *ExpressionStatement:
		return s.Source()
	case *ProcedureDefinition:
		parts := []string{KeywordDef, s.Name, KeywordAs}
		parts = append(parts, s.Params...)
		parts = append(parts, string(OpArrow), Format(s.Body))
		return strings.Join(parts, " ")
	case *Conditional:
		var b strings.Builder
		if s.Guard != nil {
			b.WriteString(s.Guard.Source())
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%s %s %s", KeywordIf, s.Condition.Source(), KeywordThen)
		if then := Format(s.Then); then != "" {
			b.WriteString(" ")
			b.WriteString(then)
		}
		if otherwise := Format(s.Else); otherwise != "" {
			b.WriteString(" ")
			b.WriteString(KeywordElse)
			b.WriteString(" ")
			b.WriteString(otherwise)
		}
		return b.String()
	default:
		return fmt.Sprintf("<%s>", stmt.NodeType())
	}
}
