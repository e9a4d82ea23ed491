package internal

type loxString string

func (s loxString) String() string {
	return string(s)
}
