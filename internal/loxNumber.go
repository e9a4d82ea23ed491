package internal

import "strconv"

type loxNumber float64

var numberOperations = map[operator]func(x, y loxNumber) (interface{}, error){
	opSub: func(x, y loxNumber) (interface{}, error) {
		return x - y, nil
	},
	opMul: func(x, y loxNumber) (interface{}, error) {
		return x * y, nil
	},
	opDiv: func(x, y loxNumber) (interface{}, error) {
		if y == 0 {
			return nil, errDivisionByZero
		}
		return x / y, nil
	},
	opLt: func(x, y loxNumber) (interface{}, error) {
		return loxBool(x < y), nil
	},
	opLte: func(x, y loxNumber) (interface{}, error) {
		return loxBool(x <= y), nil
	},
	opGt: func(x, y loxNumber) (interface{}, error) {
		return loxBool(x > y), nil
	},
	opGte: func(x, y loxNumber) (interface{}, error) {
		return loxBool(x >= y), nil
	},
}

// String renders the shortest decimal form, integral values have no fraction
func (n loxNumber) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}
