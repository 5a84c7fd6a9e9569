package interpreter

import (
	"fmt"
	"io"
	"strconv"

	"stacklang/interpreter-go/pkg/ast"
	"stacklang/interpreter-go/pkg/parser"
	"stacklang/interpreter-go/pkg/runtime"
)

// Options configures an Interpreter.
type Options struct {
	// MaxCallDepth bounds nested procedure calls; zero means unbounded.
	MaxCallDepth int
	// Trace receives one line per statement, branch choice and call when set.
	Trace io.Writer
}

// Interpreter is the session engine: it holds the bindings that persist
// across statements until the process exits.
type Interpreter struct {
	names    *runtime.Namespace
	session  *runtime.Frame
	parser   *parser.StatementParser
	maxDepth int
	trace    io.Writer
}

// New returns an interpreter with an empty session and default options.
func New() *Interpreter {
	return NewWithOptions(Options{})
}

// NewWithOptions returns an interpreter with an empty session.
func NewWithOptions(opts Options) *Interpreter {
	names := runtime.NewNamespace()
	return &Interpreter{
		names:    names,
		session:  runtime.NewSessionFrame(names),
		parser:   parser.NewStatementParser(names),
		maxDepth: opts.MaxCallDepth,
		trace:    opts.Trace,
	}
}

type ResultKind int

const (
	// ResultNone is produced by empty lines, definitions and empty branches.
	ResultNone ResultKind = iota
	ResultValue
	// ResultSignature is produced when a procedure is named without enough
	// context to call it; Value is zero.
	ResultSignature
	ResultExit
)

// Result is the outcome of one statement.
type Result struct {
	Kind      ResultKind
	Value     uint64
	Procedure *runtime.Procedure
}

func (r Result) String() string {
	switch r.Kind {
	case ResultValue:
		return strconv.FormatUint(r.Value, 10)
	case ResultSignature:
		if r.Procedure == nil {
			return ""
		}
		return r.Procedure.Signature()
	case ResultExit:
		return ast.KeywordExit
	default:
		return ""
	}
}

// Parse turns one line into a statement without evaluating anything.
func (i *Interpreter) Parse(line string) (ast.Statement, error) {
	stmt, err := i.parser.ParseStatement(line)
	if err != nil {
		return nil, err
	}
	i.tracef("parse: %s", ast.Format(stmt))
	return stmt, nil
}

// Evaluate runs a parsed statement against the session.
func (i *Interpreter) Evaluate(stmt ast.Statement) (Result, error) {
	return i.evaluateStatement(stmt, i.session)
}

// Execute parses and evaluates one line.
func (i *Interpreter) Execute(line string) (Result, error) {
	stmt, err := i.Parse(line)
	if err != nil {
		return Result{}, err
	}
	return i.Evaluate(stmt)
}

// Variables returns the session's variables in binding order.
func (i *Interpreter) Variables() []*runtime.Binding {
	return i.names.Variables()
}

// Procedures returns the session's procedures in definition order.
func (i *Interpreter) Procedures() []*runtime.Procedure {
	return i.names.Procedures()
}

// Lookup returns the session binding for name.
func (i *Interpreter) Lookup(name string) (*runtime.Binding, bool) {
	return i.names.Lookup(name)
}

func (i *Interpreter) tracef(format string, args ...any) {
	if i.trace == nil {
		return
	}
	fmt.Fprintf(i.trace, "trace: "+format+"\n", args...)
}
