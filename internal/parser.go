package internal

// parser stores parser data
type parser struct {
	current int

	// repl allows the last expression statement to omit its ';'
	repl bool

	state *interpreterState
}

const maxFunctionParams = 255

func (p *parser) parse() {
	for !p.isAtEnd() {
		st := p.parseStmt()
		// A statement that failed to parse is dropped, parsing
		// resumes on the next statement boundary
		if st != nil {
			p.state.stmts = append(p.state.stmts, st)
		}
	}
}

func (p *parser) parseStmt() (s stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); !ok {
				panic(r)
			}
			p.synchronize()
			s = nil
		}
	}()
	return p.declaration()
}

func (p *parser) declaration() stmt {
	if p.match(tkClass) {
		return p.class()
	}
	if p.match(tkFun) {
		return p.fn()
	}
	if p.match(tkVar) {
		return p.varDecl()
	}
	return p.statement()
}

func (p *parser) class() stmt {
	name := p.consume(tkIdentifier, errExpectedClassName)

	var superclass *variableExpr
	if p.match(tkLess) {
		class := p.consume(tkIdentifier, errExpectedSuperclassName)
		superclass = &variableExpr{
			name: class,
		}
	}

	p.consume(tkLeftCurlyBrace, errExpectedOpeningCurlyBrace)

	var methods []*fnStmt
	var staticMethods []*fnStmt
	for !p.check(tkRightCurlyBrace) && !p.isAtEnd() {
		if p.match(tkClass) {
			staticMethods = append(staticMethods, p.fn())
		} else {
			methods = append(methods, p.fn())
		}
	}

	p.consume(tkRightCurlyBrace, errExpectedClosingCurlyBrace)

	return &classStmt{
		name:          name,
		methods:       methods,
		staticMethods: staticMethods,
		superclass:    superclass,
	}
}

func (p *parser) fn() *fnStmt {
	name := p.consume(tkIdentifier, errExpectedFunctionName)
	params, body := p.functionBody()
	return &fnStmt{
		name:   name,
		params: params,
		body:   body,
	}
}

func (p *parser) fnExpr() expr {
	keyword := p.previous()
	params, body := p.functionBody()
	return &functionExpr{
		keyword: keyword,
		params:  params,
		body:    body,
	}
}

func (p *parser) functionBody() ([]*token, []stmt) {
	p.consume(tkLeftParen, errExpectedOpeningParen)

	var params []*token
	if !p.check(tkRightParen) {
		for {
			if len(params) >= maxFunctionParams {
				p.state.tokenError(PhaseParse, errMaxParameters, p.peek())
			}
			params = append(params, p.consume(tkIdentifier, errExpectedFunctionParam))
			if !p.match(tkComma) {
				break
			}
		}
	}
	p.consume(tkRightParen, errUnclosedParen)

	p.consume(tkLeftCurlyBrace, errExpectedOpeningCurlyBrace)
	return params, p.block()
}

func (p *parser) varDecl() stmt {
	name := p.consume(tkIdentifier, errExpectedIdentifier)

	var value expr
	if p.match(tkEqual) {
		value = p.expression()
	}
	p.consume(tkSemicolon, errExpectedSemicolon)

	return &varStmt{
		name:        name,
		initializer: value,
	}
}

func (p *parser) statement() stmt {
	if p.match(tkFor) {
		return p.forLoop()
	}
	if p.match(tkIf) {
		return p.ifStmt()
	}
	if p.match(tkPrint) {
		return p.printStmt()
	}
	if p.match(tkReturn) {
		return p.ret()
	}
	if p.match(tkBreak) {
		return p.brk()
	}
	if p.match(tkWhile) {
		return p.while()
	}
	if p.match(tkLeftCurlyBrace) {
		return &blockStmt{stmts: p.block()}
	}
	return p.expressionStmt()
}

// forLoop desugars into a while loop wrapped by blocks
func (p *parser) forLoop() stmt {
	keyword := p.previous()
	p.consume(tkLeftParen, errExpectedOpeningParen)

	var initializer stmt
	if p.match(tkSemicolon) {
		initializer = nil
	} else if p.match(tkVar) {
		initializer = p.varDecl()
	} else {
		initializer = p.expressionStmt()
	}

	var cond expr
	if !p.check(tkSemicolon) {
		cond = p.expression()
	}
	p.consume(tkSemicolon, errExpectedSemicolon)

	var inc expr
	if !p.check(tkRightParen) {
		inc = p.expression()
	}
	p.consume(tkRightParen, errUnclosedParen)

	body := p.statement()

	if inc != nil {
		body = &blockStmt{stmts: []stmt{body, &exprStmt{expression: inc}}}
	}
	if cond == nil {
		cond = &literalExpr{value: loxBool(true)}
	}
	body = &whileStmt{
		keyword:   keyword,
		condition: cond,
		body:      body,
	}
	if initializer != nil {
		body = &blockStmt{stmts: []stmt{initializer, body}}
	}
	return body
}

func (p *parser) ifStmt() stmt {
	st := &ifStmt{
		keyword: p.previous(),
	}
	p.consume(tkLeftParen, errExpectedOpeningParen)
	st.condition = p.expression()
	p.consume(tkRightParen, errUnclosedParen)

	st.thenBranch = p.statement()
	if p.match(tkElse) {
		st.elseBranch = p.statement()
	}
	return st
}

func (p *parser) printStmt() stmt {
	keyword := p.previous()
	value := p.expression()
	p.consume(tkSemicolon, errExpectedSemicolon)
	return &printStmt{
		keyword:    keyword,
		expression: value,
	}
}

func (p *parser) ret() stmt {
	var value expr
	keyword := p.previous()
	if !p.check(tkSemicolon) {
		value = p.expression()
	}
	p.consume(tkSemicolon, errExpectedSemicolon)
	return &returnStmt{
		keyword: keyword,
		value:   value,
	}
}

func (p *parser) brk() stmt {
	keyword := p.previous()
	p.consume(tkSemicolon, errExpectedSemicolon)
	return &breakStmt{
		keyword: keyword,
	}
}

func (p *parser) while() stmt {
	keyword := p.previous()
	p.consume(tkLeftParen, errExpectedOpeningParen)
	cond := p.expression()
	p.consume(tkRightParen, errUnclosedParen)
	body := p.statement()
	return &whileStmt{
		keyword:   keyword,
		condition: cond,
		body:      body,
	}
}

func (p *parser) block() []stmt {
	stmts := make([]stmt, 0)
	for !p.check(tkRightCurlyBrace) && !p.isAtEnd() {
		if st := p.declaration(); st != nil {
			stmts = append(stmts, st)
		}
	}
	p.consume(tkRightCurlyBrace, errExpectedClosingCurlyBrace)
	return stmts
}

func (p *parser) expressionStmt() stmt {
	value := p.expression()
	if !(p.repl && p.isAtEnd()) {
		p.consume(tkSemicolon, errExpectedSemicolon)
	}
	return &exprStmt{
		expression: value,
	}
}

func (p *parser) expression() expr {
	return p.assignment()
}

func (p *parser) assignment() expr {
	target := p.ternary()
	if p.match(tkEqual) {
		equal := p.previous()
		value := p.assignment()

		if variable, isVar := target.(*variableExpr); isVar {
			return &assignExpr{
				name:  variable.name,
				value: value,
			}
		} else if get, isGet := target.(*getExpr); isGet {
			return &setExpr{
				name:   get.name,
				object: get.object,
				value:  value,
			}
		}

		// Reported without unwinding, the parser is not confused
		p.state.tokenError(PhaseParse, errInvalidAssignment, equal)
	}
	return target
}

func (p *parser) ternary() expr {
	condition := p.or()
	if p.match(tkQuestion) {
		question := p.previous()
		thenBranch := p.expression()
		p.consume(tkColon, errExpectedColon)
		elseBranch := p.ternary()
		return &ternaryExpr{
			condition:  condition,
			question:   question,
			thenBranch: thenBranch,
			elseBranch: elseBranch,
		}
	}
	return condition
}

func (p *parser) or() expr {
	left := p.and()
	for p.match(tkOr) {
		operator := p.previous()
		right := p.and()
		left = &logicalExpr{
			left:     left,
			operator: operator,
			right:    right,
		}
	}
	return left
}

func (p *parser) and() expr {
	left := p.equality()
	for p.match(tkAnd) {
		operator := p.previous()
		right := p.equality()
		left = &logicalExpr{
			left:     left,
			operator: operator,
			right:    right,
		}
	}
	return left
}

func (p *parser) equality() expr {
	left := p.comparison()
	for p.match(tkEqualEqual, tkBangEqual) {
		operator := p.previous()
		right := p.comparison()
		left = &binaryExpr{
			left:     left,
			operator: operator,
			right:    right,
		}
	}
	return left
}

func (p *parser) comparison() expr {
	left := p.addition()
	for p.match(tkGreater, tkGreaterEqual, tkLess, tkLessEqual) {
		operator := p.previous()
		right := p.addition()
		left = &binaryExpr{
			left:     left,
			operator: operator,
			right:    right,
		}
	}
	return left
}

func (p *parser) addition() expr {
	left := p.multiplication()
	for p.match(tkPlus, tkMinus) {
		operator := p.previous()
		right := p.multiplication()
		left = &binaryExpr{
			left:     left,
			operator: operator,
			right:    right,
		}
	}
	return left
}

func (p *parser) multiplication() expr {
	left := p.unary()
	for p.match(tkSlash, tkStar) {
		operator := p.previous()
		right := p.unary()
		left = &binaryExpr{
			left:     left,
			operator: operator,
			right:    right,
		}
	}
	return left
}

func (p *parser) unary() expr {
	if p.match(tkBang, tkMinus) {
		operator := p.previous()
		right := p.unary()
		return &unaryExpr{
			operator: operator,
			right:    right,
		}
	}
	return p.call()
}

func (p *parser) call() expr {
	callee := p.primary()
	for {
		if p.match(tkLeftParen) {
			callee = p.finishCall(callee)
		} else if p.match(tkDot) {
			name := p.consume(tkIdentifier, errExpectedProp)
			callee = &getExpr{
				object: callee,
				name:   name,
			}
		} else {
			break
		}
	}
	return callee
}

func (p *parser) finishCall(callee expr) expr {
	arguments := p.arguments(tkRightParen)
	paren := p.consume(tkRightParen, errUnclosedParen)
	return &callExpr{
		callee:    callee,
		arguments: arguments,
		paren:     paren,
	}
}

func (p *parser) arguments(tk tokenType) []expr {
	arguments := make([]expr, 0)
	if !p.check(tk) {
		for {
			if tk == tkRightParen && len(arguments) >= maxFunctionParams {
				p.state.tokenError(PhaseParse, errMaxArguments, p.peek())
			}
			arguments = append(arguments, p.expression())
			if !p.match(tkComma) {
				break
			}
		}
	}
	return arguments
}

func (p *parser) array() expr {
	elements := p.arguments(tkRightBrace)
	brace := p.consume(tkRightBrace, errUnclosedBracket)
	return &arrayExpr{
		elements: elements,
		brace:    brace,
	}
}

func (p *parser) primary() expr {
	if p.match(tkNumber, tkString) {
		return &literalExpr{value: p.previous().literal}
	}
	if p.match(tkFalse) {
		return &literalExpr{value: loxBool(false)}
	}
	if p.match(tkTrue) {
		return &literalExpr{value: loxBool(true)}
	}
	if p.match(tkNil) {
		return &literalExpr{value: nil}
	}
	if p.match(tkIdentifier) {
		return &variableExpr{name: p.previous()}
	}
	if p.match(tkLeftParen) {
		inner := p.expression()
		p.consume(tkRightParen, errUnclosedParen)
		return &groupingExpr{expression: inner}
	}
	if p.match(tkLeftBrace) {
		return p.array()
	}
	if p.match(tkFun) {
		return p.fnExpr()
	}
	if p.match(tkThis) {
		return &thisExpr{keyword: p.previous()}
	}
	if p.match(tkSuper) {
		return p.superExpr()
	}

	p.state.fatalError(errUndefinedExpr, p.peek())
	return nil
}

func (p *parser) superExpr() expr {
	keyword := p.previous()
	p.consume(tkDot, errExpectedDot)
	return &superExpr{
		keyword: keyword,
		method:  p.consume(tkIdentifier, errExpectedProp),
	}
}

func (p *parser) consume(tk tokenType, err error) *token {
	if p.check(tk) {
		return p.advance()
	}
	p.state.fatalError(err, p.peek())
	return nil
}

func (p *parser) advance() *token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *parser) match(tokens ...tokenType) bool {
	for _, tk := range tokens {
		if p.check(tk) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *parser) check(tk tokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().token == tk
}

func (p *parser) peek() *token {
	return &p.state.tokens[p.current]
}

func (p *parser) previous() *token {
	return &p.state.tokens[p.current-1]
}

func (p *parser) isAtEnd() bool {
	return p.peek().token == tkEOF
}

func (p *parser) synchronize() {
	if !p.isAtEnd() {
		p.advance()
	}
	for !p.isAtEnd() {
		if p.previous().token == tkSemicolon {
			return
		}
		switch p.peek().token {
		case tkClass, tkFun, tkVar, tkFor, tkIf, tkWhile, tkPrint, tkReturn, tkBreak:
			return
		}

		p.advance()
	}
}
