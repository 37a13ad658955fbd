package config

// OrderStrategy orders properties not listed in an explicit class property order.
type OrderStrategy string

const (
	Lexicographical OrderStrategy = "LEXICOGRAPHICAL"
	// Any keeps the declaration order.
	Any     OrderStrategy = "ANY"
	Reverse OrderStrategy = "REVERSE"
)

func (s OrderStrategy) valid() bool {
	switch s {
	case Lexicographical, Any, Reverse:
		return true
	}
	return false
}

// Less reports whether property a sorts before property b. It is meant for a stable sort.
func (s OrderStrategy) Less(a, b string) bool {
	switch s {
	case Lexicographical:
		return a < b
	case Reverse:
		return a > b
	default:
		return false
	}
}
