package internal

type loxInstance interface {
	get(state *interpreterState, tk *token) interface{}
}

type loxObject struct {
	class  *loxClass
	fields map[string]interface{}
}

// get looks up fields, then bound instance methods, then static methods
func (o *loxObject) get(state *interpreterState, tk *token) interface{} {
	if val, ok := o.fields[tk.lexeme]; ok {
		return val
	}
	if tk.lexeme == "init" {
		state.runtimeErr(errInitExplicit, tk)
	}
	if method := o.class.findMethod(tk.lexeme); method != nil {
		return method.bind(o)
	}
	// TODO: decide whether static methods should stay reachable through instances
	if method := o.class.findStaticMethod(tk.lexeme); method != nil {
		return method
	}
	state.runtimeErr(errUndefinedProp, tk)
	return nil
}

func (o *loxObject) set(name *token, value interface{}) {
	o.fields[name.lexeme] = value
}

func (o *loxObject) String() string {
	return o.class.name + " instance"
}
