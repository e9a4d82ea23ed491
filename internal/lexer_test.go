package internal

import (
	"strings"
	"testing"
)

func checkTokens(t *testing.T, source string, expected ...string) {
	t.Helper()
	i := newTestInterpreter(&testPrinter{})
	tokens, diagnostics := i.Tokens(source)
	if len(diagnostics) != 0 {
		t.Errorf("Unexpected diagnostics for %q: %v", source, diagnostics)
		return
	}
	got := strings.Join(tokens, "\n")
	want := strings.Join(expected, "\n")
	if got != want {
		t.Errorf("Tokens of %q\nExpected:\n%s\nFound:\n%s", source, want, got)
	}
}

func TestLexer(t *testing.T) {
	checkTokens(t, "", "1 EOF ''")

	checkTokens(t, "(){}[],.-+;/ *?:",
		"1 LEFT_PAREN '('",
		"1 RIGHT_PAREN ')'",
		"1 LEFT_CURLY_BRACE '{'",
		"1 RIGHT_CURLY_BRACE '}'",
		"1 LEFT_BRACE '['",
		"1 RIGHT_BRACE ']'",
		"1 COMMA ','",
		"1 DOT '.'",
		"1 MINUS '-'",
		"1 PLUS '+'",
		"1 SEMICOLON ';'",
		"1 SLASH '/'",
		"1 STAR '*'",
		"1 QUESTION '?'",
		"1 COLON ':'",
		"1 EOF ''",
	)

	checkTokens(t, "! != = == > >= < <=",
		"1 BANG '!'",
		"1 BANG_EQUAL '!='",
		"1 EQUAL '='",
		"1 EQUAL_EQUAL '=='",
		"1 GREATER '>'",
		"1 GREATER_EQUAL '>='",
		"1 LESS '<'",
		"1 LESS_EQUAL '<='",
		"1 EOF ''",
	)

	checkTokens(t, "var x1 = 1.5;",
		"1 VAR 'var'",
		"1 IDENTIFIER 'x1'",
		"1 EQUAL '='",
		"1 NUMBER '1.5' 1.5",
		"1 SEMICOLON ';'",
		"1 EOF ''",
	)

	checkTokens(t, "1.",
		"1 NUMBER '1' 1",
		"1 DOT '.'",
		"1 EOF ''",
	)

	checkTokens(t, "class break fun _under",
		"1 CLASS 'class'",
		"1 BREAK 'break'",
		"1 FUN 'fun'",
		"1 IDENTIFIER '_under'",
		"1 EOF ''",
	)

	// Strings keep the line they start on
	checkTokens(t, "\"a\nb\" x",
		"1 STRING '\"a\nb\"' a\nb",
		"2 IDENTIFIER 'x'",
		"2 EOF ''",
	)

	checkTokens(t, "// comment\n/* block\ncomment */ nil",
		"3 NIL 'nil'",
		"3 EOF ''",
	)
}

func TestLexerErrors(t *testing.T) {
	cases := []struct {
		source string
		err    error
		line   int
	}{
		{"var a = @;", errIllegalChar, 1},
		{"\n\"open", errUnclosedString, 2},
		{"/* never\nclosed", errUnclosedComment, 2},
	}
	for _, c := range cases {
		i := newTestInterpreter(&testPrinter{})
		_, diagnostics := i.Tokens(c.source)
		if len(diagnostics) != 1 {
			t.Errorf("Expected one diagnostic for %q, got %v", c.source, diagnostics)
			continue
		}
		d := diagnostics[0]
		if d.Phase != PhaseScan || d.Err != c.err || d.Line != c.line {
			t.Errorf("Unexpected diagnostic for %q: %v", c.source, d)
		}
	}

	// Scanning continues after an illegal character
	i := newTestInterpreter(&testPrinter{})
	tokens, diagnostics := i.Tokens("a # b")
	if len(diagnostics) != 1 || len(tokens) != 3 {
		t.Errorf("Expected 3 tokens and 1 diagnostic, got %v %v", tokens, diagnostics)
	}
}
