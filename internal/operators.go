package internal

type operator string

const (
	opAdd operator = "add"
	opSub operator = "sub"
	opDiv operator = "div"
	opMul operator = "mul"
	opNeg operator = "neg"
	opEq  operator = "eq"
	opNeq operator = "neq"
	opLt  operator = "lt"
	opLte operator = "lte"
	opGt  operator = "gt"
	opGte operator = "gte"
)

var binaryOperators = map[tokenType]operator{
	tkPlus:         opAdd,
	tkMinus:        opSub,
	tkSlash:        opDiv,
	tkStar:         opMul,
	tkEqualEqual:   opEq,
	tkBangEqual:    opNeq,
	tkLess:         opLt,
	tkLessEqual:    opLte,
	tkGreater:      opGt,
	tkGreaterEqual: opGte,
}

// operateBinary never fails for equality, every other operator
// is defined only on numbers, plus string concatenation for opAdd
func operateBinary(op operator, left, right interface{}) (interface{}, error) {
	switch op {
	case opEq:
		return loxBool(isEqual(left, right)), nil
	case opNeq:
		return loxBool(!isEqual(left, right)), nil
	case opAdd:
		return add(left, right)
	}
	x, okLeft := left.(loxNumber)
	y, okRight := right.(loxNumber)
	if !okLeft || !okRight {
		return nil, errOnlyNumbers
	}
	apply, ok := numberOperations[op]
	if !ok {
		return nil, errOnlyNumbers
	}
	return apply(x, y)
}

func operateUnary(op operator, value interface{}) (interface{}, error) {
	if op == opNeg {
		if n, ok := value.(loxNumber); ok {
			return -n, nil
		}
	}
	return nil, errOnlyNumber
}

func add(left, right interface{}) (interface{}, error) {
	switch l := left.(type) {
	case loxNumber:
		switch r := right.(type) {
		case loxNumber:
			return l + r, nil
		case loxString:
			return loxString(l.String()) + r, nil
		}
	case loxString:
		switch r := right.(type) {
		case loxString:
			return l + r, nil
		case loxNumber:
			return l + loxString(r.String()), nil
		}
	}
	return nil, errOperandsAdd
}
