package internal

import "github.com/sirupsen/logrus"

type exec struct {
	state *interpreterState

	globals *env
	env     *env

	// locals is the resolver side-table, expression to scope distance
	locals map[expr]int
}

// returnValue and breakValue are returned by statements to unwind
// up to the enclosing call or loop
type returnValue struct {
	keyword *token
	value   interface{}
}

type breakValue struct {
	keyword *token
}

func newExec(state *interpreterState) *exec {
	globals := newEnv(state, nil)
	defineGlobals(globals)
	return &exec{
		state:   state,
		globals: globals,
		env:     globals,
		locals:  make(map[expr]int),
	}
}

// interpret runs every top level statement, a runtime error aborts only
// the statement that raised it. echo prints the value of bare expressions.
func (e *exec) interpret(stmts []stmt, echo bool) bool {
	ok := true
	for _, s := range stmts {
		if !e.executeTopLevel(s, echo) {
			ok = false
		}
	}
	return ok
}

func (e *exec) executeTopLevel(s stmt, echo bool) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			runErr, isRuntime := r.(*runtimeError)
			if !isRuntime {
				panic(r)
			}
			e.env = e.globals
			e.state.tokenError(runErr.phase, runErr.err, runErr.token)
			ok = false
		}
	}()

	if exprSt, isExpr := s.(*exprStmt); isExpr && echo {
		value := exprSt.expression.accept(e)
		e.state.printer.Println(stringify(value))
		return true
	}

	switch signal := s.accept(e).(type) {
	case *breakValue:
		e.state.internalErr(errBreakEscaped, signal.keyword)
	case *returnValue:
		e.state.internalErr(errReturnEscaped, signal.keyword)
	}
	return true
}

func (e *exec) visitExprStmt(stmt *exprStmt) R {
	stmt.expression.accept(e)
	return nil
}

func (e *exec) visitPrintStmt(stmt *printStmt) R {
	value := stmt.expression.accept(e)
	e.state.printer.Println(stringify(value))
	return nil
}

func (e *exec) visitVarStmt(stmt *varStmt) R {
	var val interface{}
	if stmt.initializer != nil {
		val = stmt.initializer.accept(e)
	}
	e.env.define(stmt.name.lexeme, val)
	return nil
}

func (e *exec) visitBlockStmt(stmt *blockStmt) R {
	return e.executeBlock(stmt.stmts, newEnv(e.state, e.env))
}

// executeBlock runs stmts in env and restores the previous environment
// on every exit path, signals included
func (e *exec) executeBlock(stmts []stmt, env *env) R {
	previous := e.env
	defer func() {
		e.env = previous
	}()
	e.env = env
	for _, s := range stmts {
		if signal := s.accept(e); signal != nil {
			return signal
		}
	}
	return nil
}

func (e *exec) visitIfStmt(stmt *ifStmt) R {
	if truthy(stmt.condition.accept(e)) {
		return stmt.thenBranch.accept(e)
	}
	if stmt.elseBranch != nil {
		return stmt.elseBranch.accept(e)
	}
	return nil
}

func (e *exec) visitWhileStmt(stmt *whileStmt) R {
	for truthy(stmt.condition.accept(e)) {
		switch signal := stmt.body.accept(e).(type) {
		case *returnValue:
			return signal
		case *breakValue:
			return nil
		}
	}
	return nil
}

func (e *exec) visitBreakStmt(stmt *breakStmt) R {
	return &breakValue{keyword: stmt.keyword}
}

func (e *exec) visitReturnStmt(stmt *returnStmt) R {
	result := &returnValue{keyword: stmt.keyword}
	if stmt.value != nil {
		result.value = stmt.value.accept(e)
	}
	return result
}

func (e *exec) visitFnStmt(stmt *fnStmt) R {
	e.env.define(stmt.name.lexeme, &loxFunction{
		declaration: stmt,
		closure:     e.env,
	})
	return nil
}

func (e *exec) visitClassStmt(stmt *classStmt) R {
	class := &loxClass{
		name:          stmt.name.lexeme,
		methods:       make(map[string]*loxFunction),
		staticMethods: make(map[string]*loxFunction),
	}

	if stmt.superclass != nil {
		superclass, ok := stmt.superclass.accept(e).(*loxClass)
		if !ok {
			e.state.runtimeErr(errExpectedClass, stmt.superclass.name)
		}
		class.superclass = superclass

		e.env = newEnv(e.state, e.env)
		e.env.define("super", superclass)
	}

	for _, m := range stmt.methods {
		class.methods[m.name.lexeme] = &loxFunction{
			declaration: m,
			closure:     e.env,
		}
	}
	for _, m := range stmt.staticMethods {
		class.staticMethods[m.name.lexeme] = &loxFunction{
			declaration: m,
			closure:     e.env,
		}
	}

	if stmt.superclass != nil {
		e.env = e.env.enclosing
	}

	e.env.define(class.name, class)
	return nil
}

func (e *exec) visitArrayExpr(expr *arrayExpr) R {
	elements := make([]interface{}, len(expr.elements))
	for i, el := range expr.elements {
		elements[i] = el.accept(e)
	}
	return &loxArray{elements: elements}
}

func (e *exec) visitAssignExpr(expr *assignExpr) R {
	val := expr.value.accept(e)
	if distance, ok := e.locals[expr]; ok {
		e.env.assignAt(distance, expr.name, val)
	} else {
		e.globals.assign(expr.name, val)
	}
	return val
}

func (e *exec) visitBinaryExpr(expr *binaryExpr) R {
	left := expr.left.accept(e)
	right := expr.right.accept(e)
	value, err := operateBinary(binaryOperators[expr.operator.token], left, right)
	if err != nil {
		e.state.runtimeErr(err, expr.operator)
	}
	return value
}

func (e *exec) visitCallExpr(expr *callExpr) R {
	callee := expr.callee.accept(e)
	arguments := make([]interface{}, len(expr.arguments))
	for i := range expr.arguments {
		arguments[i] = expr.arguments[i].accept(e)
	}

	fn, isFn := callee.(loxCallable)
	if !isFn {
		e.state.runtimeErr(errOnlyFunction, expr.paren)
	}

	if len(arguments) != fn.arity() {
		e.state.runtimeErr(errInvalidNumberArguments, expr.paren)
	}

	result, err := fn.call(e, arguments)
	if err != nil {
		e.state.runtimeErr(err, expr.paren)
	}
	return result
}

func (e *exec) visitGetExpr(expr *getExpr) R {
	object := expr.object.accept(e)
	if obj, ok := object.(loxInstance); ok {
		return obj.get(e.state, expr.name)
	}
	e.state.runtimeErr(errOnlyInstances, expr.name)
	return nil
}

func (e *exec) visitSetExpr(expr *setExpr) R {
	obj, ok := expr.object.accept(e).(*loxObject)
	if !ok {
		e.state.runtimeErr(errOnlyInstanceFields, expr.name)
	}
	val := expr.value.accept(e)
	obj.set(expr.name, val)
	return val
}

func (e *exec) visitSuperExpr(expr *superExpr) R {
	distance, ok := e.locals[expr]
	if !ok {
		e.state.internalErr(errUnresolvedLocal, expr.keyword)
	}
	superclass := e.env.getAt(distance, expr.keyword).(*loxClass)
	this := &token{
		token:  tkThis,
		lexeme: "this",
		line:   expr.keyword.line,
	}
	// "this" always lives one environment closer than "super"
	object := e.env.getAt(distance-1, this).(*loxObject)
	method := superclass.findMethod(expr.method.lexeme)
	if method == nil {
		e.state.runtimeErr(errUndefinedProp, expr.method)
	}
	return method.bind(object)
}

func (e *exec) visitGroupingExpr(expr *groupingExpr) R {
	return expr.expression.accept(e)
}

func (e *exec) visitLiteralExpr(expr *literalExpr) R {
	return expr.value
}

// visitLogicalExpr returns the operand that decided the result
func (e *exec) visitLogicalExpr(expr *logicalExpr) R {
	left := expr.left.accept(e)

	if expr.operator.token == tkOr {
		if truthy(left) {
			return left
		}
	} else if !truthy(left) {
		return left
	}

	return expr.right.accept(e)
}

func (e *exec) visitTernaryExpr(expr *ternaryExpr) R {
	if truthy(expr.condition.accept(e)) {
		return expr.thenBranch.accept(e)
	}
	return expr.elseBranch.accept(e)
}

func (e *exec) visitThisExpr(expr *thisExpr) R {
	return e.lookUpVariable(expr.keyword, expr)
}

func (e *exec) visitUnaryExpr(expr *unaryExpr) R {
	value := expr.right.accept(e)
	if expr.operator.token == tkBang {
		return loxBool(!truthy(value))
	}
	value, err := operateUnary(opNeg, value)
	if err != nil {
		e.state.runtimeErr(err, expr.operator)
	}
	return value
}

func (e *exec) visitVariableExpr(expr *variableExpr) R {
	return e.lookUpVariable(expr.name, expr)
}

func (e *exec) lookUpVariable(name *token, ex expr) interface{} {
	if distance, ok := e.locals[ex]; ok {
		return e.env.getAt(distance, name)
	}
	return e.globals.get(name)
}

func (e *exec) visitFunctionExpr(expr *functionExpr) R {
	return &loxFunction{
		declaration: &fnStmt{body: expr.body, params: expr.params},
		closure:     e.env,
	}
}

func (e *exec) logger() logrus.FieldLogger {
	return e.state.logger.WithField("phase", PhaseRuntime)
}
