package internal

import "fmt"

// truthy maps nil and false to false, everything else is true
func truthy(value interface{}) bool {
	if value == nil {
		return false
	}
	if b, isBool := value.(loxBool); isBool {
		return bool(b)
	}
	return true
}

func isEqual(left, right interface{}) bool {
	if left == nil && right == nil {
		return true
	}
	if left == nil || right == nil {
		return false
	}
	return left == right
}

func stringify(value interface{}) string {
	if value == nil {
		return "nil"
	}
	if s, ok := value.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", value)
}
