package internal

import "fmt"

type loxCallable interface {
	arity() int
	call(exec *exec, arguments []interface{}) (interface{}, error)
}

type loxFunction struct {
	declaration *fnStmt
	closure     *env
}

func (f *loxFunction) arity() int {
	return len(f.declaration.params)
}

func (f *loxFunction) call(exec *exec, arguments []interface{}) (interface{}, error) {
	environment := newEnv(exec.state, f.closure)
	for i, param := range f.declaration.params {
		environment.define(param.lexeme, arguments[i])
	}

	switch signal := exec.executeBlock(f.declaration.body, environment).(type) {
	case *returnValue:
		return signal.value, nil
	case *breakValue:
		exec.state.internalErr(errBreakEscaped, signal.keyword)
	}
	return nil, nil
}

// bind returns a copy of the method whose closure defines "this"
func (f *loxFunction) bind(object *loxObject) *loxFunction {
	environment := newEnv(f.closure.state, f.closure)
	environment.define("this", object)
	return &loxFunction{
		declaration: f.declaration,
		closure:     environment,
	}
}

func (f *loxFunction) String() string {
	name := "anonymous"
	if f.declaration.name != nil {
		name = f.declaration.name.lexeme
	}
	return fmt.Sprintf("<fn %s>", name)
}
