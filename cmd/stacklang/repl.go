package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"stacklang/interpreter-go/pkg/ast"
	"stacklang/interpreter-go/pkg/driver"
	"stacklang/interpreter-go/pkg/interpreter"
	"stacklang/interpreter-go/pkg/parser"
)

// session drives one interpreter over a stream of lines and formats results.
type session struct {
	interp *interpreter.Interpreter
	cfg    *driver.Config
	out    io.Writer
	errOut io.Writer
}

func newSession(cfg *driver.Config, out, errOut io.Writer) *session {
	opts := interpreter.Options{MaxCallDepth: cfg.MaxCallDepth}
	if cfg.Trace {
		opts.Trace = errOut
	}
	return &session{
		interp: interpreter.NewWithOptions(opts),
		cfg:    cfg,
		out:    out,
		errOut: errOut,
	}
}

// execute runs one line and reports whether the session should stop.
func (s *session) execute(n int, line string) (exit bool, err error) {
	if s.cfg.Echo {
		fmt.Fprintf(s.out, "Expr[%d]: %s\n", n, line)
	}
	res, err := s.interp.Execute(line)
	if err != nil {
		return false, err
	}
	switch res.Kind {
	case interpreter.ResultValue:
		fmt.Fprintf(s.out, "==> %s\n", res)
	case interpreter.ResultSignature:
		if s.cfg.ShowSignatures {
			fmt.Fprintln(s.out, res.String())
		}
	case interpreter.ResultExit:
		return true, nil
	}
	return false, nil
}

func promptEnabled(cfg *driver.Config, in io.Reader) bool {
	switch cfg.Prompt {
	case driver.PromptAlways:
		return true
	case driver.PromptNever:
		return false
	}
	f, ok := in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// runREPL reads statements until end of input or Exit. Errors are reported
// and the session continues.
func runREPL(cfg *driver.Config, in io.Reader) int {
	s := newSession(cfg, os.Stdout, os.Stderr)
	prompt := promptEnabled(cfg, in)
	scanner := bufio.NewScanner(in)
	for n := 1; ; n++ {
		if prompt {
			fmt.Fprintf(os.Stdout, "Eval[%d]--> ", n)
		}
		if !scanner.Scan() {
			break
		}
		exit, err := s.execute(n, scanner.Text())
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		if exit {
			return 0
		}
	}
	if prompt {
		fmt.Fprintln(os.Stdout)
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "read error: %v\n", err)
		return 1
	}
	return 0
}

// runBatch executes every line of src. Failures are reported with their line
// number and turn the exit status to 1; Exit stops with the status so far.
func runBatch(cfg *driver.Config, src *driver.Source) int {
	s := newSession(cfg, os.Stdout, os.Stderr)
	status := 0
	for idx, line := range src.Lines {
		exit, err := s.execute(idx+1, line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s:%d: error: %v\n", src.Name, idx+1, err)
			status = 1
			continue
		}
		if exit {
			break
		}
	}
	return status
}

// knownProcedures lets check classify calls to procedures defined earlier in
// the same script.
type knownProcedures map[string]struct{}

func (k knownProcedures) IsProcedure(name string) bool {
	_, ok := k[name]
	return ok
}

func checkSource(src *driver.Source) int {
	names := knownProcedures{}
	p := parser.NewStatementParser(names)
	failures := 0
	for idx, line := range src.Lines {
		stmt, err := p.ParseStatement(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s:%d: error: %v\n", src.Name, idx+1, err)
			failures++
			continue
		}
		if def, ok := stmt.(*ast.ProcedureDefinition); ok {
			names[def.Name] = struct{}{}
		}
	}
	if failures > 0 {
		fmt.Fprintf(os.Stderr, "%s: %d of %d lines failed to parse\n", src.Name, failures, len(src.Lines))
		return 1
	}
	fmt.Fprintf(os.Stdout, "%s: ok (%d lines)\n", src.Name, len(src.Lines))
	return 0
}
