package internal

type env struct {
	state *interpreterState

	enclosing *env
	values    map[string]interface{}
}

func newEnv(state *interpreterState, enclosing *env) *env {
	return &env{
		state:     state,
		enclosing: enclosing,
		values:    make(map[string]interface{}),
	}
}

func (e *env) get(name *token) interface{} {
	if value, ok := e.values[name.lexeme]; ok {
		return value
	}
	if e.enclosing != nil {
		return e.enclosing.get(name)
	}
	e.state.runtimeErr(errUndefinedVar, name)
	return nil
}

func (e *env) define(name string, value interface{}) {
	e.values[name] = value
}

func (e *env) assign(name *token, value interface{}) {
	if _, ok := e.values[name.lexeme]; ok {
		e.values[name.lexeme] = value
		return
	}
	if e.enclosing != nil {
		e.enclosing.assign(name, value)
		return
	}
	e.state.runtimeErr(errUndefinedVar, name)
}

func (e *env) ancestor(distance int, name *token) *env {
	environment := e
	for i := 0; i < distance; i++ {
		if environment.enclosing == nil {
			e.state.internalErr(errUnresolvedLocal, name)
		}
		environment = environment.enclosing
	}
	return environment
}

// getAt reads name exactly distance frames out, no further search
func (e *env) getAt(distance int, name *token) interface{} {
	value, ok := e.ancestor(distance, name).values[name.lexeme]
	if !ok {
		e.state.internalErr(errUnresolvedLocal, name)
	}
	return value
}

func (e *env) assignAt(distance int, name *token, value interface{}) {
	values := e.ancestor(distance, name).values
	if _, ok := values[name.lexeme]; !ok {
		e.state.internalErr(errUnresolvedLocal, name)
	}
	values[name.lexeme] = value
}
