package runtime

import "sort"

// Namespace is the unified name table shared by variables and procedures.
// Entries are append-only: a name can be bound once and is never removed.
type Namespace struct {
	values map[string]*Binding
	order  []string
}

// NewNamespace creates an empty namespace.
func NewNamespace() *Namespace {
	return &Namespace{values: make(map[string]*Binding)}
}

// Define is the single insertion point for bindings. It rejects any name that
// is already bound, whichever kind it is bound to.
func (n *Namespace) Define(b *Binding) error {
	if existing, ok := n.values[b.Name]; ok {
		kind := KindVariableNameExists
		if b.Kind == KindProcedure {
			kind = KindProcedureNameExists
		}
		return Errorf(kind, b.Name, "already bound to a %s", existing.Kind)
	}
	n.values[b.Name] = b
	n.order = append(n.order, b.Name)
	return nil
}

// Lookup retrieves the binding for name, if any.
func (n *Namespace) Lookup(name string) (*Binding, bool) {
	b, ok := n.values[name]
	return b, ok
}

// Procedure returns the procedure bound to name.
func (n *Namespace) Procedure(name string) (*Procedure, bool) {
	b, ok := n.values[name]
	if !ok || b.Kind != KindProcedure {
		return nil, false
	}
	return b.Procedure, true
}

// IsProcedure reports whether name is currently bound to a procedure.
func (n *Namespace) IsProcedure(name string) bool {
	_, ok := n.Procedure(name)
	return ok
}

// Variable returns the value bound to name when it is a variable.
func (n *Namespace) Variable(name string) (uint64, bool) {
	b, ok := n.values[name]
	if !ok || b.Kind != KindVariable {
		return 0, false
	}
	return b.Value, true
}

// Variables returns variable bindings in definition order.
func (n *Namespace) Variables() []*Binding {
	var out []*Binding
	for _, name := range n.order {
		if b := n.values[name]; b.Kind == KindVariable {
			out = append(out, b)
		}
	}
	return out
}

// Procedures returns procedures in definition order.
func (n *Namespace) Procedures() []*Procedure {
	var out []*Procedure
	for _, name := range n.order {
		if b := n.values[name]; b.Kind == KindProcedure {
			out = append(out, b.Procedure)
		}
	}
	return out
}

// Len is the number of bound names.
func (n *Namespace) Len() int {
	return len(n.order)
}

// Keys returns the bound names in sorted order.
func (n *Namespace) Keys() []string {
	keys := make([]string, len(n.order))
	copy(keys, n.order)
	sort.Strings(keys)
	return keys
}
