package component

// Kind is the role a component plays.
type Kind uint8

const (
	KindSerializer Kind = iota + 1
	KindDeserializer
	KindAdapter
)

func (k Kind) String() string {
	switch k {
	case KindSerializer:
		return "serializer"
	case KindDeserializer:
		return "deserializer"
	case KindAdapter:
		return "adapter"
	default:
		return "unknown"
	}
}

// method is the name of the method whose signature declares the binding type.
func (k Kind) method() string {
	switch k {
	case KindSerializer:
		return "Serialize"
	case KindDeserializer:
		return "Deserialize"
	case KindAdapter:
		return "AdaptTo"
	default:
		return ""
	}
}

// methods are the names of the methods an instance of the kind must have.
func (k Kind) methods() []string {
	if k == KindAdapter {
		return []string{"AdaptTo", "AdaptFrom"}
	}
	if m := k.method(); m != "" {
		return []string{m}
	}
	return nil
}
