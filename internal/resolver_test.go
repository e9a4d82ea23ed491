package internal

import (
	"errors"
	"testing"
)

func checkStaticError(t *testing.T, source string, phase Phase, expected error, line int) {
	t.Helper()
	tp := &testPrinter{}
	i := newTestInterpreter(tp)
	status := i.Run(source)
	if status != StatusStaticError {
		t.Errorf("\nSource:\n----\n%s\n----\nExpected static error, got status %d", source, status)
		return
	}
	if tp.printed != "" {
		t.Errorf("\nSource:\n----\n%s\n----\nNothing should run, printed %q", source, tp.printed)
	}
	for _, d := range i.Diagnostics() {
		if d.Phase == phase && errors.Is(d.Err, expected) && d.Line == line {
			return
		}
	}
	t.Errorf(
		"\nSource:\n----\n%s\n----\nExpected %s error %q on line %d, found %v",
		source,
		phase,
		expected,
		line,
		i.Diagnostics(),
	)
}

func TestResolverErrors(t *testing.T) {
	checkStaticError(t, `{ var a = 1; var a = 2; }`, PhaseResolve, errAlreadyDeclared, 1)
	checkStaticError(t, `fun f(a, a) {}`, PhaseResolve, errAlreadyDeclared, 1)
	checkStaticError(t, `{ var a = a; }`, PhaseResolve, errReadInOwnInitializer, 1)
	checkStaticError(t, `class A < A {}`, PhaseResolve, errInheritFromSelf, 1)
	checkStaticError(t, `print 1; return 2;`, PhaseResolve, errReturnTopLevel, 1)
	checkStaticError(t, `class A { init() { return 1; } }`, PhaseResolve, errReturnFromInit, 1)
	checkStaticError(t, `break;`, PhaseResolve, errBreakOutsideLoop, 1)
	checkStaticError(t, `fun f() { break; }`, PhaseResolve, errBreakOutsideLoop, 1)
	checkStaticError(t, `while (true) { fun f() { break; } }`, PhaseResolve, errBreakOutsideLoop, 1)
	checkStaticError(t, `while (true) { var g = fun () { break; }; }`, PhaseResolve, errBreakOutsideLoop, 1)
	checkStaticError(t, `print this;`, PhaseResolve, errThisOutsideClass, 1)
	checkStaticError(t, `fun f() { return this; }`, PhaseResolve, errThisOutsideClass, 1)
	checkStaticError(t, `class A { class s() { return this; } }`, PhaseResolve, errThisInStatic, 1)
	checkStaticError(t, `class A { class s() { fun g() { return this; } } }`, PhaseResolve, errThisInStatic, 1)
	checkStaticError(t, `print super.x;`, PhaseResolve, errSuperOutsideClass, 1)
	checkStaticError(t, `class A { m() { super.m(); } }`, PhaseResolve, errSuperWithoutSuperclass, 1)
	checkStaticError(t, `class A {} class B < A { class s() { super.m(); } }`, PhaseResolve, errSuperInStatic, 1)
	checkStaticError(t, `
class A {
	m() {
		return 1;
	}
}

fun f() {
	var x = 1;
	var x = 2;
}`, PhaseResolve, errAlreadyDeclared, 10)
}

func TestResolverAllowed(t *testing.T) {
	sources := []string{
		// Globals may be redeclared
		`var a = 1; var a = 2;`,
		// Reading a global in its own initializer is left to the runtime
		`var b = 1; var b = b + 1;`,
		`class A { init() { return; } }`,
		`while (true) { break; }`,
		`for (;;) { { break; } }`,
		`fun f() { while (true) { if (true) break; } }`,
		`class A { m() { return fun () { return this; }; } }`,
		`class A { m() {} } class B < A { m() { return super.m; } }`,
		// A class nested in a static method has its own "this"
		`class A { class s() { class B { m() { return this; } } return B; } }`,
	}
	for _, source := range sources {
		i := newTestInterpreter(&testPrinter{})
		if status := i.Run(source); status == StatusStaticError {
			t.Errorf("\nSource:\n----\n%s\n----\nUnexpected static errors %v", source, i.Diagnostics())
		}
	}
}

func TestResolverAccumulatesErrors(t *testing.T) {
	i := newTestInterpreter(&testPrinter{})
	i.Run("return 1;\nbreak;\nprint this;")
	diagnostics := i.Diagnostics()
	if len(diagnostics) != 3 {
		t.Fatalf("Expected 3 diagnostics, got %v", diagnostics)
	}
	for idx, d := range diagnostics {
		if d.Kind() != KindResolution || d.Line != idx+1 {
			t.Errorf("Unexpected diagnostic %v", d)
		}
	}
}

func TestResolverDistances(t *testing.T) {
	state := &interpreterState{
		source: `
var g = 1;
{
	var a = 1;
	{
		print a;
		print g;
	}
	fun f(p) {
		return p + a;
	}
}`,
		logger: defaultLogger(),
	}
	(&lexer{line: 1, state: state}).scan()
	(&parser{state: state}).parse()
	if !state.Valid() {
		t.Fatalf("Unexpected errors %v", state.diagnostics)
	}

	locals := make(map[expr]int)
	newResolver(state, locals).resolve(state.stmts)
	if !state.Valid() {
		t.Fatalf("Unexpected errors %v", state.diagnostics)
	}

	outer := state.stmts[1].(*blockStmt)
	inner := outer.stmts[1].(*blockStmt)

	readA := inner.stmts[0].(*printStmt).expression
	if d, ok := locals[readA]; !ok || d != 1 {
		t.Errorf("a should resolve at distance 1, got %d (%v)", d, ok)
	}

	readG := inner.stmts[1].(*printStmt).expression
	if _, ok := locals[readG]; ok {
		t.Errorf("globals should be left unresolved")
	}

	fn := outer.stmts[2].(*fnStmt)
	sum := fn.body[0].(*returnStmt).value.(*binaryExpr)
	if d, ok := locals[sum.left]; !ok || d != 0 {
		t.Errorf("p should resolve at distance 0, got %d (%v)", d, ok)
	}
	if d, ok := locals[sum.right]; !ok || d != 1 {
		t.Errorf("a should resolve at distance 1 from the function body, got %d (%v)", d, ok)
	}
}
