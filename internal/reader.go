package internal

import (
	"fmt"
	"strings"
)

//R generic type
type R interface{}

// Tokens scans source and returns one line per token
func (i *Interpreter) Tokens(source string) ([]string, []Diagnostic) {
	i.state.reset(source)
	i.scan()
	out := make([]string, 0, len(i.state.tokens))
	for idx := range i.state.tokens {
		out = append(out, i.state.tokens[idx].String())
	}
	return out, i.state.diagnostics
}

// PrintTree parses source and renders every statement as an s-expression
func (i *Interpreter) PrintTree(source string) (string, []Diagnostic) {
	i.state.reset(source)
	if !i.scan() {
		return "", i.state.diagnostics
	}
	i.parse()
	out := ""
	for _, s := range i.state.stmts {
		out += s.accept(stringVisitor{}).(string) + "\n"
	}
	return out, i.state.diagnostics
}

// Incomplete reports whether source stops inside an open group, block,
// string or comment, a REPL keeps reading lines while it holds
func (i *Interpreter) Incomplete(source string) bool {
	i.state.reset(source)
	i.scan()
	for _, d := range i.state.diagnostics {
		if d.Err == errUnclosedString || d.Err == errUnclosedComment {
			return true
		}
	}
	depth := 0
	for _, tk := range i.state.tokens {
		switch tk.token {
		case tkLeftParen, tkLeftCurlyBrace, tkLeftBrace:
			depth++
		case tkRightParen, tkRightCurlyBrace, tkRightBrace:
			depth--
		}
	}
	return depth > 0
}

type stringVisitor struct{}

func (v stringVisitor) join(head string, parts ...interface{}) string {
	out := "(" + head
	for _, p := range parts {
		out += fmt.Sprintf(" %v", p)
	}
	return out + ")"
}

func (v stringVisitor) stmts(stmts []stmt) []interface{} {
	out := make([]interface{}, len(stmts))
	for i, s := range stmts {
		out[i] = s.accept(v)
	}
	return out
}

func (v stringVisitor) exprs(exprs []expr) []interface{} {
	out := make([]interface{}, len(exprs))
	for i, e := range exprs {
		out[i] = e.accept(v)
	}
	return out
}

func formatParams(tokens []*token) string {
	names := make([]string, len(tokens))
	for i, p := range tokens {
		names[i] = p.lexeme
	}
	return "(" + strings.Join(names, " ") + ")"
}

func (v stringVisitor) visitExprStmt(stmt *exprStmt) R {
	return stmt.expression.accept(v)
}

func (v stringVisitor) visitPrintStmt(stmt *printStmt) R {
	return v.join("print", stmt.expression.accept(v))
}

func (v stringVisitor) visitVarStmt(stmt *varStmt) R {
	if stmt.initializer == nil {
		return v.join("var", stmt.name.lexeme)
	}
	return v.join("var", stmt.name.lexeme, stmt.initializer.accept(v))
}

func (v stringVisitor) visitBlockStmt(stmt *blockStmt) R {
	return v.join("scope", v.stmts(stmt.stmts)...)
}

func (v stringVisitor) visitIfStmt(stmt *ifStmt) R {
	out := fmt.Sprintf("(if %v %v", stmt.condition.accept(v), stmt.thenBranch.accept(v))
	if stmt.elseBranch != nil {
		out += fmt.Sprintf(" (else %v)", stmt.elseBranch.accept(v))
	}
	return out + ")"
}

func (v stringVisitor) visitWhileStmt(stmt *whileStmt) R {
	return v.join("while", stmt.condition.accept(v), stmt.body.accept(v))
}

func (v stringVisitor) visitBreakStmt(stmt *breakStmt) R {
	return "(break)"
}

func (v stringVisitor) visitReturnStmt(stmt *returnStmt) R {
	if stmt.value == nil {
		return "(return)"
	}
	return v.join("return", stmt.value.accept(v))
}

func (v stringVisitor) visitFnStmt(stmt *fnStmt) R {
	parts := append([]interface{}{stmt.name.lexeme, formatParams(stmt.params)}, v.stmts(stmt.body)...)
	return v.join("fun", parts...)
}

func (v stringVisitor) visitClassStmt(stmt *classStmt) R {
	parts := []interface{}{stmt.name.lexeme}
	if stmt.superclass != nil {
		parts = append(parts, "< "+stmt.superclass.name.lexeme)
	}
	for _, m := range stmt.staticMethods {
		parts = append(parts, "(class "+m.accept(v).(string)+")")
	}
	for _, m := range stmt.methods {
		parts = append(parts, m.accept(v))
	}
	return v.join("class", parts...)
}

func (v stringVisitor) visitArrayExpr(expr *arrayExpr) R {
	return v.join("array", v.exprs(expr.elements)...)
}

func (v stringVisitor) visitAssignExpr(expr *assignExpr) R {
	return v.join("=", expr.name.lexeme, expr.value.accept(v))
}

func (v stringVisitor) visitBinaryExpr(expr *binaryExpr) R {
	return v.join(expr.operator.lexeme, expr.left.accept(v), expr.right.accept(v))
}

func (v stringVisitor) visitCallExpr(expr *callExpr) R {
	parts := append([]interface{}{expr.callee.accept(v)}, v.exprs(expr.arguments)...)
	return v.join("call", parts...)
}

func (v stringVisitor) visitGetExpr(expr *getExpr) R {
	return v.join(".", expr.object.accept(v), expr.name.lexeme)
}

func (v stringVisitor) visitSetExpr(expr *setExpr) R {
	return v.join("=", v.join(".", expr.object.accept(v), expr.name.lexeme), expr.value.accept(v))
}

func (v stringVisitor) visitSuperExpr(expr *superExpr) R {
	return v.join("super", expr.method.lexeme)
}

func (v stringVisitor) visitGroupingExpr(expr *groupingExpr) R {
	return v.join("group", expr.expression.accept(v))
}

func (v stringVisitor) visitLiteralExpr(expr *literalExpr) R {
	if s, isString := expr.value.(loxString); isString {
		return "\"" + string(s) + "\""
	}
	return stringify(expr.value)
}

func (v stringVisitor) visitLogicalExpr(expr *logicalExpr) R {
	return v.join(expr.operator.lexeme, expr.left.accept(v), expr.right.accept(v))
}

func (v stringVisitor) visitTernaryExpr(expr *ternaryExpr) R {
	return v.join("?:", expr.condition.accept(v), expr.thenBranch.accept(v), expr.elseBranch.accept(v))
}

func (v stringVisitor) visitThisExpr(expr *thisExpr) R {
	return "this"
}

func (v stringVisitor) visitUnaryExpr(expr *unaryExpr) R {
	return v.join(expr.operator.lexeme, expr.right.accept(v))
}

func (v stringVisitor) visitVariableExpr(expr *variableExpr) R {
	return expr.name.lexeme
}

func (v stringVisitor) visitFunctionExpr(expr *functionExpr) R {
	parts := append([]interface{}{formatParams(expr.params)}, v.stmts(expr.body)...)
	return v.join("fun", parts...)
}
