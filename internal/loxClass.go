package internal

type loxClass struct {
	name          string
	superclass    *loxClass
	methods       map[string]*loxFunction
	staticMethods map[string]*loxFunction
}

func (c *loxClass) findMethod(name string) *loxFunction {
	if method, ok := c.methods[name]; ok {
		return method
	}
	if c.superclass != nil {
		return c.superclass.findMethod(name)
	}
	return nil
}

func (c *loxClass) findStaticMethod(name string) *loxFunction {
	if method, ok := c.staticMethods[name]; ok {
		return method
	}
	if c.superclass != nil {
		return c.superclass.findStaticMethod(name)
	}
	return nil
}

func (c *loxClass) arity() int {
	if initializer := c.findMethod("init"); initializer != nil {
		return initializer.arity()
	}
	return 0
}

func (c *loxClass) call(exec *exec, arguments []interface{}) (interface{}, error) {
	obj := &loxObject{class: c, fields: make(map[string]interface{})}
	if initializer := c.findMethod("init"); initializer != nil {
		if _, err := initializer.bind(obj).call(exec, arguments); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

// get resolves static methods accessed through the class name
func (c *loxClass) get(state *interpreterState, tk *token) interface{} {
	if method := c.findStaticMethod(tk.lexeme); method != nil {
		return method
	}
	state.runtimeErr(errUndefinedProp, tk)
	return nil
}

func (c *loxClass) String() string {
	return c.name
}
