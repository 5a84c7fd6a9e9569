package interpreter

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"stacklang/interpreter-go/pkg/ast"
	"stacklang/interpreter-go/pkg/runtime"
)

func mustExecute(t *testing.T, interp *Interpreter, line string) Result {
	t.Helper()
	res, err := interp.Execute(line)
	if err != nil {
		t.Fatalf("Execute(%q) error: %v", line, err)
	}
	return res
}

func expectValue(t *testing.T, interp *Interpreter, line string, want uint64) {
	t.Helper()
	res := mustExecute(t, interp, line)
	if res.Kind != ResultValue || res.Value != want {
		t.Fatalf("Execute(%q) = %#v, want value %d", line, res, want)
	}
}

func expectError(t *testing.T, interp *Interpreter, line string, want error) {
	t.Helper()
	_, err := interp.Execute(line)
	if !errors.Is(err, want) {
		t.Fatalf("Execute(%q) error = %v, want %v", line, err, want)
	}
}

func TestPostfixArithmetic(t *testing.T) {
	interp := New()
	cases := []struct {
		line string
		want uint64
	}{
		{"42", 42},
		{"1 2 +", 3},
		{"2 3 + 5 -", 0},
		{"2 3 + 5 * 2 + 3 - 6 /", 4},
		{"2 3 * 4 + 5 %", 0},
		{"7 2 /", 3},
		{"7 2 %", 1},
		{"0 !", 1},
		{"5 !", 0},
		{"3 4 <", 1},
		{"3 4 >", 0},
		{"4 4 >=", 1},
		{"4 4 <=", 1},
		{"4 5 ==", 0},
		{"4 5 !=", 1},
		{"1 0 &&", 0},
		{"2 3 &&", 1},
		{"0 0 ||", 0},
		{"0 7 ||", 1},
	}
	for _, tc := range cases {
		expectValue(t, interp, tc.line, tc.want)
	}
}

func TestComparisonsAreAntisymmetric(t *testing.T) {
	interp := New()
	values := []string{"0", "1", "2", "9"}
	for _, a := range values {
		for _, b := range values {
			lt := mustExecute(t, interp, a+" "+b+" <").Value
			gt := mustExecute(t, interp, b+" "+a+" >").Value
			if lt != gt {
				t.Fatalf("%s < %s = %d but %s > %s = %d", a, b, lt, b, a, gt)
			}
			le := mustExecute(t, interp, a+" "+b+" <=").Value
			ge := mustExecute(t, interp, b+" "+a+" >=").Value
			if le != ge {
				t.Fatalf("%s <= %s = %d but %s >= %s = %d", a, b, le, b, a, ge)
			}
			eq := mustExecute(t, interp, a+" "+b+" ==").Value
			ne := mustExecute(t, interp, a+" "+b+" !=").Value
			if eq+ne != 1 || eq != mustExecute(t, interp, b+" "+a+" ==").Value {
				t.Fatalf("== / != inconsistent for %s, %s", a, b)
			}
		}
	}
}

func TestAssignmentIsSingleUse(t *testing.T) {
	interp := New()
	expectValue(t, interp, "5 x =", 5)
	expectValue(t, interp, "x", 5)
	expectError(t, interp, "7 x =", runtime.ErrVariableNameExists)
	expectValue(t, interp, "x", 5)
	expectValue(t, interp, "x y =", 5)
	expectValue(t, interp, "x y + 1 -", 9)

	vars := interp.Variables()
	if len(vars) != 2 || vars[0].Name != "x" || vars[1].Name != "y" {
		t.Fatalf("unexpected variables %#v", vars)
	}
}

func TestAssignmentErrors(t *testing.T) {
	interp := New()
	expectError(t, interp, "3 4 =", runtime.ErrInvalidExpression)
	expectError(t, interp, "q z =", runtime.ErrUnboundVariable)
	expectError(t, interp, "x =", runtime.ErrInvalidNumberOfArguments)
	if len(interp.Variables()) != 0 {
		t.Fatalf("failed assignments left bindings: %#v", interp.Variables())
	}
}

func TestProcedureDefinitionAndCall(t *testing.T) {
	interp := New()
	res := mustExecute(t, interp, "Def Sq As x => x x *")
	if res.Kind != ResultNone {
		t.Fatalf("definition result = %#v", res)
	}
	expectValue(t, interp, "4 Sq", 16)
	expectValue(t, interp, "4 Sq 1 +", 17)
	expectValue(t, interp, "2 Sq Sq", 16)

	res = mustExecute(t, interp, "Sq")
	if res.Kind != ResultSignature || res.Value != 0 {
		t.Fatalf("bare procedure = %#v, want signature", res)
	}
	if got := res.String(); got != "Sq: x => ..." {
		t.Fatalf("signature = %q", got)
	}
}

func TestProcedureArgumentsBindInSourceOrder(t *testing.T) {
	interp := New()
	mustExecute(t, interp, "Def Diff As a b => a b -")
	expectValue(t, interp, "10 3 Diff", 7)
	expectError(t, interp, "3 10 Diff", runtime.ErrArithmetic)
	expectError(t, interp, "1 Diff 1 +", runtime.ErrInvalidNumberOfArguments)
}

func TestProcedureSeesNoOuterVariables(t *testing.T) {
	interp := New()
	expectValue(t, interp, "5 g =", 5)
	mustExecute(t, interp, "Def UseG As => g")
	expectError(t, interp, "UseG 1 +", runtime.ErrUnboundVariable)

	mustExecute(t, interp, "Def Local As a => a 1 + b =")
	expectValue(t, interp, "1 Local", 2)
	if _, ok := interp.Lookup("b"); ok {
		t.Fatalf("assignment inside a call leaked into the session")
	}
}

func TestProcedureResolvesLaterDefinitions(t *testing.T) {
	interp := New()
	mustExecute(t, interp, "Def A As x => x B")
	mustExecute(t, interp, "Def B As y => y 1 +")
	expectValue(t, interp, "4 A", 5)
}

func TestRecursiveFactorial(t *testing.T) {
	interp := New()
	mustExecute(t, interp, "Def Fact As n => If n 1 <= Then 1 Else n n 1 - Fact *")
	cases := map[string]uint64{"0 Fact": 1, "1 Fact": 1, "4 Fact": 24, "10 Fact": 3628800}
	for line, want := range cases {
		expectValue(t, interp, line, want)
	}
}

func TestRecursiveFibonacci(t *testing.T) {
	interp := New()
	mustExecute(t, interp, "Def Fib As n => If n 2 < Then n Else n 1 - Fib n 2 - Fib +")
	expectValue(t, interp, "10 Fib", 55)
}

func TestDefinitionNameCollisions(t *testing.T) {
	interp := New()
	mustExecute(t, interp, "Def Sq As x => x x *")
	expectError(t, interp, "Def Sq As y => y", runtime.ErrProcedureNameExists)
	expectValue(t, interp, "3 Sq", 9)

	expectValue(t, interp, "1 v =", 1)
	expectError(t, interp, "Def v As => 1", runtime.ErrProcedureNameExists)

	expectError(t, interp, "Def Bad As x =>", runtime.ErrInvalidProcedureDefinition)
	if _, ok := interp.Lookup("Bad"); ok {
		t.Fatalf("malformed definition was registered")
	}
	if got := len(interp.Procedures()); got != 1 {
		t.Fatalf("procedures = %d, want 1", got)
	}
}

func TestConditionalSelectsOneBranch(t *testing.T) {
	interp := New()
	expectValue(t, interp, "If 1 Then 10 Else 20", 10)
	expectValue(t, interp, "If 0 Then 10 Else 20", 20)
	expectValue(t, interp, "0 If 1 Then 10 Else 20", 20)
	expectValue(t, interp, "1 If 1 Then 10 Else 20", 10)
	expectValue(t, interp, "If 2 3 < Then 10 Else 20", 10)

	expectValue(t, interp, "If 0 Then 5 y = Else 7", 7)
	if _, ok := interp.Lookup("y"); ok {
		t.Fatalf("untaken branch bound y")
	}
	expectValue(t, interp, "If 1 Then 5 y = Else 6 z =", 5)
	if _, ok := interp.Lookup("z"); ok {
		t.Fatalf("untaken branch bound z")
	}
	expectValue(t, interp, "y", 5)

	res := mustExecute(t, interp, "If 0 Then 1")
	if res.Kind != ResultNone {
		t.Fatalf("missing Else branch = %#v, want none", res)
	}
}

func TestConditionalGuardSkipsCondition(t *testing.T) {
	interp := New()
	// The condition would fail on an unbound name; a zero guard never evaluates it.
	expectValue(t, interp, "0 If nope Then 1 Else 2", 2)
	expectError(t, interp, "1 If nope Then 1 Else 2", runtime.ErrUnboundVariable)
}

func TestConditionalBranchMayDefineOrExit(t *testing.T) {
	interp := New()
	mustExecute(t, interp, "If 1 Then Def Twice As a => a 2 * Else 0")
	expectValue(t, interp, "3 Twice", 6)

	res := mustExecute(t, interp, "If 1 Then Exit Else 2")
	if res.Kind != ResultExit {
		t.Fatalf("Exit branch = %#v", res)
	}
	res = mustExecute(t, interp, "Exit")
	if res.Kind != ResultExit {
		t.Fatalf("Exit = %#v", res)
	}
}

func TestEmptyLineIsNoop(t *testing.T) {
	interp := New()
	res := mustExecute(t, interp, "")
	if res.Kind != ResultNone || res.String() != "" {
		t.Fatalf("empty line = %#v", res)
	}
	if len(interp.Variables()) != 0 || len(interp.Procedures()) != 0 {
		t.Fatalf("empty line changed state")
	}
}

func TestUndefinedNames(t *testing.T) {
	interp := New()
	expectError(t, interp, "q", runtime.ErrUnboundVariable)
	expectError(t, interp, "1 q +", runtime.ErrUnboundVariable)
	expectError(t, interp, "4 Sqr", runtime.ErrUndefinedProcedure)
	if len(interp.Variables()) != 0 || len(interp.Procedures()) != 0 {
		t.Fatalf("failed statements changed state")
	}
}

func TestMalformedExpressions(t *testing.T) {
	interp := New()
	expectError(t, interp, "1 2", runtime.ErrInvalidNumberOfArguments)
	expectError(t, interp, "1 +", runtime.ErrInvalidNumberOfArguments)
	expectError(t, interp, "1 2 + +", runtime.ErrInvalidNumberOfArguments)
	expectError(t, interp, "+ 1 2", runtime.ErrInvalidExpression)
	expectError(t, interp, "1 Else", runtime.ErrInvalidExpression)
}

func TestArithmeticFaultsAreRecoverable(t *testing.T) {
	interp := New()
	expectError(t, interp, "1 2 -", runtime.ErrArithmetic)
	expectError(t, interp, "1 0 /", runtime.ErrArithmetic)
	expectError(t, interp, "1 0 %", runtime.ErrArithmetic)
	expectError(t, interp, "18446744073709551615 1 +", runtime.ErrArithmetic)
	expectError(t, interp, "4294967296 4294967296 *", runtime.ErrArithmetic)
	expectValue(t, interp, "18446744073709551615 0 +", 18446744073709551615)
}

func TestCallDepthLimit(t *testing.T) {
	interp := NewWithOptions(Options{MaxCallDepth: 50})
	mustExecute(t, interp, "Def Loop As n => n Loop")
	expectError(t, interp, "1 Loop", runtime.ErrCallDepthExceeded)

	mustExecute(t, interp, "Def Down As n => If n Then n 1 - Down Else 0")
	expectValue(t, interp, "49 Down", 0)
	expectError(t, interp, "50 Down", runtime.ErrCallDepthExceeded)
}

func TestEvaluateParsedStatements(t *testing.T) {
	interp := New()
	if _, err := interp.Evaluate(ast.Def("Sq", []string{"x"}, ast.Expr(ast.Var("x"), ast.Var("x"), ast.Sym(ast.OpMul)))); err != nil {
		t.Fatalf("define: %v", err)
	}
	res, err := interp.Evaluate(ast.Expr(ast.Lit(5), ast.Proc("Sq")))
	if err != nil || res.Value != 25 {
		t.Fatalf("5 Sq = %#v, %v", res, err)
	}
	_, err = interp.Evaluate(ast.Expr(ast.Lit(5), ast.Proc("Missing")))
	if !errors.Is(err, runtime.ErrUndefinedProcedure) {
		t.Fatalf("unknown procedure ref: got %v", err)
	}
	res, err = interp.Evaluate(ast.GuardedIf(ast.Expr(ast.Lit(1)), ast.Expr(ast.Lit(0)), ast.Expr(ast.Lit(1)), ast.Expr(ast.Lit(2))))
	if err != nil || res.Value != 2 {
		t.Fatalf("guarded if = %#v, %v", res, err)
	}
}

func TestTraceOutput(t *testing.T) {
	var buf bytes.Buffer
	interp := NewWithOptions(Options{Trace: &buf})
	mustExecute(t, interp, "Def Sq As x => x x *")
	mustExecute(t, interp, "4 Sq")
	mustExecute(t, interp, "If 0 Then 1 Else 2")
	out := buf.String()
	for _, want := range []string{
		"trace: parse: Def Sq As x => x x *",
		"trace: define: Sq: x => ...",
		"trace: call: Sq(x=4) depth=1",
		"trace: if: condition 0 = 0",
		"trace: if: taking Else branch",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("trace missing %q:\n%s", want, out)
		}
	}
}
