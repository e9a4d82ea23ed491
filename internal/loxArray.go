package internal

import (
	"math"
	"strings"
)

type loxArray struct {
	elements []interface{}
}

func (a *loxArray) get(state *interpreterState, tk *token) interface{} {
	switch tk.lexeme {
	case "append":
		return &nativeFn{
			arityValue: 1,
			callFn: func(exec *exec, arguments []interface{}) (interface{}, error) {
				a.elements = append(a.elements, arguments[0])
				return nil, nil
			},
		}
	case "get":
		return &nativeFn{
			arityValue: 1,
			callFn: func(exec *exec, arguments []interface{}) (interface{}, error) {
				return a.at(arguments[0])
			},
		}
	}
	state.runtimeErr(errUndefinedArrayMethod, tk)
	return nil
}

func (a *loxArray) at(index interface{}) (interface{}, error) {
	n, ok := index.(loxNumber)
	if !ok || math.Trunc(float64(n)) != float64(n) {
		return nil, errIndexNotInteger
	}
	if n < 0 || float64(n) >= float64(len(a.elements)) {
		return nil, errIndexOutOfBounds
	}
	return a.elements[int(n)], nil
}

func (a *loxArray) String() string {
	out := make([]string, len(a.elements))
	for i, el := range a.elements {
		out[i] = stringify(el)
	}
	return "[" + strings.Join(out, ",") + "]"
}
