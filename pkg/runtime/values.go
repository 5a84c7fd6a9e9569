package runtime

import (
	"fmt"
	"strings"

	"stacklang/interpreter-go/pkg/ast"
)

// Kind identifies what a name is bound to.
type Kind int

const (
	KindVariable Kind = iota
	KindProcedure
)

func (k Kind) String() string {
	switch k {
	case KindVariable:
		return "variable"
	case KindProcedure:
		return "procedure"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Binding is the single tagged entry type stored in a Namespace.
type Binding struct {
	Name      string
	Kind      Kind
	Value     uint64
	Procedure *Procedure
}

func VariableBinding(name string, value uint64) *Binding {
	return &Binding{Name: name, Kind: KindVariable, Value: value}
}

func ProcedureBinding(proc *Procedure) *Binding {
	return &Binding{Name: proc.Name, Kind: KindProcedure, Procedure: proc}
}

// Procedure is a user-defined single-statement procedure. It is never mutated
// after definition, so frames share it by pointer.
type Procedure struct {
	Name   string
	Params []string
	Body   ast.Statement
}

// NewProcedure builds a procedure from its parsed definition.
func NewProcedure(def *ast.ProcedureDefinition) *Procedure {
	params := make([]string, len(def.Params))
	copy(params, def.Params)
	return &Procedure{Name: def.Name, Params: params, Body: def.Body}
}

func (p *Procedure) Arity() int {
	return len(p.Params)
}

// Signature renders the procedure's name and parameters, e.g. "Sq: x => ...".
func (p *Procedure) Signature() string {
	var b strings.Builder
	b.WriteString(p.Name)
	b.WriteString(":")
	for _, param := range p.Params {
		b.WriteString(" ")
		b.WriteString(param)
	}
	b.WriteString(" => ...")
	return b.String()
}
