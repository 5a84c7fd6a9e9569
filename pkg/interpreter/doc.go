// Package interpreter evaluates stacklang statements for one session.
//
// An Interpreter owns the session namespace (variables and procedures share
// one name table) and evaluates each statement in two phases: the line is
// parsed into a statement node without side effects, then the node is
// evaluated. Expressions are postfix: operands are pushed on a scratch stack
// that lives only for one evaluation, and symbols and procedure calls consume
// them.
//
// Every error aborts only the statement being evaluated. Arithmetic faults
// (subtraction below zero, overflow, division or modulo by zero) are reported
// as recoverable arithmetic errors.
//
// Procedure calls recurse on the Go stack. With MaxCallDepth left at zero the
// depth is unbounded, and runaway recursion ends the process with a fatal
// stack overflow that cannot be recovered. Set MaxCallDepth to turn that into
// a call-depth error.
//
// An Interpreter is not safe for concurrent use.
package interpreter
