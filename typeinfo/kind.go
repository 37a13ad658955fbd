package typeinfo

// Kind tells descriptor flavors apart.
type Kind uint8

const (
	KindSimple Kind = iota
	KindParameterized
	KindVariable
)

func (k Kind) String() string {
	switch k {
	case KindSimple:
		return "simple"
	case KindParameterized:
		return "parameterized"
	case KindVariable:
		return "variable"
	default:
		return "unknown"
	}
}
