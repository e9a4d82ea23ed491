package internal

import "testing"

func checkTree(t *testing.T, source string, expected string) {
	t.Helper()
	i := newTestInterpreter(&testPrinter{})
	tree, diagnostics := i.PrintTree(source)
	if len(diagnostics) != 0 {
		t.Errorf("Unexpected diagnostics for %q: %v", source, diagnostics)
		return
	}
	if tree != expected+"\n" {
		t.Errorf("Tree of %q\nExpected:\n%s\nFound:\n%s", source, expected, tree)
	}
}

func TestParser(t *testing.T) {
	checkTree(t, "1 + 2 * 3;", "(+ 1 (* 2 3))")
	checkTree(t, "(1 + 2) * 3;", "(* (group (+ 1 2)) 3)")
	checkTree(t, "-!a;", "(- (! a))")
	checkTree(t, "1 - 2 - 3;", "(- (- 1 2) 3)")
	checkTree(t, "a < b == c >= d;", "(== (< a b) (>= c d))")
	checkTree(t, "a or b and c;", "(or a (and b c))")
	checkTree(t, "a = b = 1;", "(= a (= b 1))")
	checkTree(t, "a ? b : c ? d : e;", "(?: a b (?: c d e))")
	checkTree(t, "a = b ? 1 : 2;", "(= a (?: b 1 2))")
	checkTree(t, `print "s";`, `(print "s")`)
	checkTree(t, "var a;", "(var a)")
	checkTree(t, "var a = nil;", "(var a nil)")
	checkTree(t, "a.b.c = d;", "(= (. (. a b) c) d)")
	checkTree(t, "f(1, 2)(3);", "(call (call f 1 2) 3)")
	checkTree(t, "[1, [true]];", "(array 1 (array true))")
	checkTree(t, "if (a) b; else c;", "(if a b (else c))")
	checkTree(t, "while (a) { break; }", "(while a (scope (break)))")
	checkTree(t, "fun f(a, b) { return a; }", "(fun f (a b) (return a))")
	checkTree(t, "fun f() { return; }", "(fun f () (return))")
	checkTree(t, "var g = fun (x) { return x; };", "(var g (fun (x) (return x)))")
	checkTree(t, "class B < A { init() {} class s() {} m() { return super.m; } }",
		"(class B < A (class (fun s ())) (fun init ()) (fun m () (return (super m))))")
	checkTree(t, "this.x;", "(. this x)")

	// for loops desugar into while loops
	checkTree(t, "for (var i = 0; i < 3; i = i + 1) print i;",
		"(scope (var i 0) (while (< i 3) (scope (print i) (= i (+ i 1)))))")
	checkTree(t, "for (;;) break;", "(while true (break))")
}

func TestParserErrors(t *testing.T) {
	cases := []struct {
		source string
		err    error
		line   int
	}{
		{"print 1", errExpectedSemicolon, 1},
		{"(1 + 2;", errUnclosedParen, 1},
		{"[1, 2;", errUnclosedBracket, 1},
		{"var 1 = 2;", errExpectedIdentifier, 1},
		{"1 + ;", errUndefinedExpr, 1},
		{"1 = 2;", errInvalidAssignment, 1},
		{"a ? b;", errExpectedColon, 1},
		{"super;", errExpectedDot, 1},
		{"a.;", errExpectedProp, 1},
		{"fun (a) {}", errExpectedFunctionName, 1},
		{"fun f(1) {}", errExpectedFunctionParam, 1},
		{"class {}", errExpectedClassName, 1},
		{"class A < {}", errExpectedSuperclassName, 1},
		{"class A", errExpectedOpeningCurlyBrace, 1},
		{"if 1;", errExpectedOpeningParen, 1},
		{"{ print 1;", errExpectedClosingCurlyBrace, 1},
	}
	for _, c := range cases {
		checkStaticError(t, c.source, PhaseParse, c.err, c.line)
	}
}

func TestParserRecovers(t *testing.T) {
	i := newTestInterpreter(&testPrinter{})
	i.Run("var = 1;\nprint 1\nvar b = 2;\nprint (;")
	diagnostics := i.Diagnostics()
	if len(diagnostics) != 3 {
		t.Fatalf("Expected 3 diagnostics, got %v", diagnostics)
	}
	lines := []int{1, 3, 4}
	for idx, d := range diagnostics {
		if d.Phase != PhaseParse || d.Line != lines[idx] {
			t.Errorf("Unexpected diagnostic %v", d)
		}
	}
}

func TestParserLimits(t *testing.T) {
	params := "a0"
	args := "0"
	for n := 1; n <= maxFunctionParams; n++ {
		params += ", a" + loxNumber(n).String()
		args += ", " + loxNumber(n).String()
	}
	checkStaticError(t, "fun f("+params+") {}", PhaseParse, errMaxParameters, 1)
	checkStaticError(t, "f("+args+");", PhaseParse, errMaxArguments, 1)
}

func TestREPLOptionalSemicolon(t *testing.T) {
	tp := &testPrinter{}
	i := newTestInterpreter(tp, WithREPL(true))
	if status := i.Run("1 + 2"); status != StatusOK {
		t.Fatalf("Unexpected status %d: %v", status, i.Diagnostics())
	}
	if !tp.Equals("3") {
		t.Errorf("Expected echo of 3, printed %q", tp.printed)
	}

	// Only the very last statement may omit it
	if status := i.Run("1 2"); status != StatusStaticError {
		t.Errorf("Expected a parse error, got %d", status)
	}

	script := newTestInterpreter(tp)
	if status := script.Run("1 + 2"); status != StatusStaticError {
		t.Errorf("Script mode requires the semicolon, got %d", status)
	}
}

func TestIncomplete(t *testing.T) {
	i := newTestInterpreter(&testPrinter{})
	cases := map[string]bool{
		"print 1;":            false,
		"fun f() {":           true,
		"fun f() {\n}":        false,
		"print (1 +":          true,
		"var a = [1,":         true,
		"var s = \"open":      true,
		"/* still":            true,
		"}":                   false,
		"print \"{\";":        false,
		"class A { m() { } ":  true,
		"class A { m() { } }": false,
		"// comment with {":   false,
	}
	for source, expected := range cases {
		if got := i.Incomplete(source); got != expected {
			t.Errorf("Incomplete(%q) should be %v", source, expected)
		}
	}
}
