package runtime

// Frame is an evaluation context. The session frame uses the session namespace
// for both locals and procedures; a call frame sees only its own locals plus a
// reference to the session's procedure table.
type Frame struct {
	locals *Namespace
	procs  *Namespace
	depth  int
}

// NewSessionFrame wraps the session namespace.
func NewSessionFrame(ns *Namespace) *Frame {
	return &Frame{locals: ns, procs: ns}
}

// Call builds the frame for one invocation of proc. args are bound to the
// parameters in declaration order.
func (f *Frame) Call(proc *Procedure, args []uint64) (*Frame, error) {
	if len(args) != len(proc.Params) {
		return nil, Errorf(KindInvalidNumberOfArguments, proc.Name, "expected %d, got %d", len(proc.Params), len(args))
	}
	locals := NewNamespace()
	for i, param := range proc.Params {
		if err := locals.Define(VariableBinding(param, args[i])); err != nil {
			return nil, Errorf(KindInvalidProcedureDefinition, proc.Name, "duplicate parameter %q", param)
		}
	}
	return &Frame{locals: locals, procs: f.procs, depth: f.depth + 1}, nil
}

// Depth is the number of procedure calls between this frame and the session.
func (f *Frame) Depth() int {
	return f.depth
}

// IsSession reports whether this is the top-level frame.
func (f *Frame) IsSession() bool {
	return f.locals == f.procs
}

// Variable resolves name against the frame's own variables only.
func (f *Frame) Variable(name string) (uint64, bool) {
	return f.locals.Variable(name)
}

// Procedure resolves name against the procedure table as it is now.
func (f *Frame) Procedure(name string) (*Procedure, bool) {
	if b, ok := f.locals.Lookup(name); ok && b.Kind == KindVariable {
		return nil, false
	}
	return f.procs.Procedure(name)
}

// Bind assigns a new variable. Names already bound as a local variable or
// visible as a procedure are rejected.
func (f *Frame) Bind(name string, value uint64) error {
	if !f.IsSession() && f.procs.IsProcedure(name) {
		return Errorf(KindVariableNameExists, name, "already bound to a %s", KindProcedure)
	}
	return f.locals.Define(VariableBinding(name, value))
}

// Define registers a procedure in the session table.
func (f *Frame) Define(proc *Procedure) error {
	return f.procs.Define(ProcedureBinding(proc))
}
