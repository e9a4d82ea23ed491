package internal

type functionType int

const (
	fnNone functionType = iota
	fnFunction
	fnAnonymous
	fnMethod
	fnInitializer
	fnStatic
)

type classType int

const (
	clsNone classType = iota
	clsClass
	clsSubclass
)

// resolver computes, for every local variable reference, how many
// environments separate it from the one declaring the name
type resolver struct {
	state  *interpreterState
	locals map[expr]int

	// scopes map names to whether their initializer has finished
	scopes []map[string]bool

	currentFunction functionType
	currentClass    classType
	inLoop          bool
	// inStatic holds for static method bodies and functions nested in them
	inStatic bool
}

func newResolver(state *interpreterState, locals map[expr]int) *resolver {
	return &resolver{
		state:  state,
		locals: locals,
	}
}

func (r *resolver) resolve(stmts []stmt) {
	for _, s := range stmts {
		s.accept(r)
	}
}

func (r *resolver) resolveExpr(e expr) {
	e.accept(r)
}

func (r *resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *resolver) declare(name *token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.lexeme]; ok {
		r.state.tokenError(PhaseResolve, errAlreadyDeclared, name)
	}
	scope[name.lexeme] = false
}

func (r *resolver) define(name *token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.lexeme] = true
}

func (r *resolver) defineName(name string) {
	r.scopes[len(r.scopes)-1][name] = true
}

func (r *resolver) resolveLocal(e expr, name *token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.lexeme]; ok {
			r.locals[e] = len(r.scopes) - 1 - i
			return
		}
	}
	// Not found, assume it is global
}

func (r *resolver) resolveFunction(params []*token, body []stmt, kind functionType) {
	enclosingFunction := r.currentFunction
	enclosingLoop := r.inLoop
	r.currentFunction = kind
	// Loops outside the function body do not count for break
	r.inLoop = false

	r.beginScope()
	for _, param := range params {
		r.declare(param)
		r.define(param)
	}
	r.resolve(body)
	r.endScope()

	r.currentFunction = enclosingFunction
	r.inLoop = enclosingLoop
}

func (r *resolver) visitExprStmt(stmt *exprStmt) R {
	r.resolveExpr(stmt.expression)
	return nil
}

func (r *resolver) visitPrintStmt(stmt *printStmt) R {
	r.resolveExpr(stmt.expression)
	return nil
}

func (r *resolver) visitVarStmt(stmt *varStmt) R {
	r.declare(stmt.name)
	if stmt.initializer != nil {
		r.resolveExpr(stmt.initializer)
	}
	r.define(stmt.name)
	return nil
}

func (r *resolver) visitBlockStmt(stmt *blockStmt) R {
	r.beginScope()
	r.resolve(stmt.stmts)
	r.endScope()
	return nil
}

func (r *resolver) visitIfStmt(stmt *ifStmt) R {
	r.resolveExpr(stmt.condition)
	stmt.thenBranch.accept(r)
	if stmt.elseBranch != nil {
		stmt.elseBranch.accept(r)
	}
	return nil
}

func (r *resolver) visitWhileStmt(stmt *whileStmt) R {
	enclosingLoop := r.inLoop
	r.resolveExpr(stmt.condition)
	r.inLoop = true
	stmt.body.accept(r)
	r.inLoop = enclosingLoop
	return nil
}

func (r *resolver) visitBreakStmt(stmt *breakStmt) R {
	if !r.inLoop {
		r.state.tokenError(PhaseResolve, errBreakOutsideLoop, stmt.keyword)
	}
	return nil
}

// visitReturnStmt leaves the value unresolved once the return itself is invalid
func (r *resolver) visitReturnStmt(stmt *returnStmt) R {
	if r.currentFunction == fnNone {
		r.state.tokenError(PhaseResolve, errReturnTopLevel, stmt.keyword)
		return nil
	}
	if stmt.value != nil {
		if r.currentFunction == fnInitializer {
			r.state.tokenError(PhaseResolve, errReturnFromInit, stmt.keyword)
			return nil
		}
		r.resolveExpr(stmt.value)
	}
	return nil
}

func (r *resolver) visitFnStmt(stmt *fnStmt) R {
	r.declare(stmt.name)
	r.define(stmt.name)
	r.resolveFunction(stmt.params, stmt.body, fnFunction)
	return nil
}

func (r *resolver) visitClassStmt(stmt *classStmt) R {
	enclosingClass := r.currentClass
	r.currentClass = clsClass

	r.declare(stmt.name)
	r.define(stmt.name)

	if stmt.superclass != nil {
		if stmt.superclass.name.lexeme == stmt.name.lexeme {
			r.state.tokenError(PhaseResolve, errInheritFromSelf, stmt.superclass.name)
		}
		r.currentClass = clsSubclass
		r.resolveExpr(stmt.superclass)

		r.beginScope()
		r.defineName("super")
	}

	enclosingStatic := r.inStatic

	// Static methods see "super" but never "this"
	r.inStatic = true
	for _, method := range stmt.staticMethods {
		r.resolveFunction(method.params, method.body, fnStatic)
	}
	r.inStatic = false

	r.beginScope()
	r.defineName("this")
	for _, method := range stmt.methods {
		kind := fnMethod
		if method.name.lexeme == "init" {
			kind = fnInitializer
		}
		r.resolveFunction(method.params, method.body, kind)
	}
	r.endScope()

	if stmt.superclass != nil {
		r.endScope()
	}

	r.inStatic = enclosingStatic
	r.currentClass = enclosingClass
	return nil
}

func (r *resolver) visitArrayExpr(expr *arrayExpr) R {
	for _, el := range expr.elements {
		r.resolveExpr(el)
	}
	return nil
}

func (r *resolver) visitAssignExpr(expr *assignExpr) R {
	r.resolveExpr(expr.value)
	r.resolveLocal(expr, expr.name)
	return nil
}

func (r *resolver) visitBinaryExpr(expr *binaryExpr) R {
	r.resolveExpr(expr.left)
	r.resolveExpr(expr.right)
	return nil
}

func (r *resolver) visitCallExpr(expr *callExpr) R {
	r.resolveExpr(expr.callee)
	for _, argument := range expr.arguments {
		r.resolveExpr(argument)
	}
	return nil
}

func (r *resolver) visitGetExpr(expr *getExpr) R {
	r.resolveExpr(expr.object)
	return nil
}

func (r *resolver) visitSetExpr(expr *setExpr) R {
	r.resolveExpr(expr.value)
	r.resolveExpr(expr.object)
	return nil
}

func (r *resolver) visitSuperExpr(expr *superExpr) R {
	if r.currentClass == clsNone {
		r.state.tokenError(PhaseResolve, errSuperOutsideClass, expr.keyword)
	} else if r.currentClass != clsSubclass {
		r.state.tokenError(PhaseResolve, errSuperWithoutSuperclass, expr.keyword)
	} else if r.inStatic {
		r.state.tokenError(PhaseResolve, errSuperInStatic, expr.keyword)
	}
	r.resolveLocal(expr, expr.keyword)
	return nil
}

func (r *resolver) visitGroupingExpr(expr *groupingExpr) R {
	r.resolveExpr(expr.expression)
	return nil
}

func (r *resolver) visitLiteralExpr(expr *literalExpr) R {
	return nil
}

func (r *resolver) visitLogicalExpr(expr *logicalExpr) R {
	r.resolveExpr(expr.left)
	r.resolveExpr(expr.right)
	return nil
}

func (r *resolver) visitTernaryExpr(expr *ternaryExpr) R {
	r.resolveExpr(expr.condition)
	r.resolveExpr(expr.thenBranch)
	r.resolveExpr(expr.elseBranch)
	return nil
}

func (r *resolver) visitThisExpr(expr *thisExpr) R {
	if r.currentClass == clsNone {
		r.state.tokenError(PhaseResolve, errThisOutsideClass, expr.keyword)
		return nil
	}
	if r.inStatic {
		r.state.tokenError(PhaseResolve, errThisInStatic, expr.keyword)
	}
	r.resolveLocal(expr, expr.keyword)
	return nil
}

func (r *resolver) visitUnaryExpr(expr *unaryExpr) R {
	r.resolveExpr(expr.right)
	return nil
}

func (r *resolver) visitVariableExpr(expr *variableExpr) R {
	if len(r.scopes) > 0 {
		if defined, ok := r.scopes[len(r.scopes)-1][expr.name.lexeme]; ok && !defined {
			r.state.tokenError(PhaseResolve, errReadInOwnInitializer, expr.name)
			return nil
		}
	}
	r.resolveLocal(expr, expr.name)
	return nil
}

func (r *resolver) visitFunctionExpr(expr *functionExpr) R {
	r.resolveFunction(expr.params, expr.body, fnAnonymous)
	return nil
}
