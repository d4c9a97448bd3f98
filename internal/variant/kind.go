package variant

// Kind is the discriminant of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindReal
	KindString
	KindList
	KindTable
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindReal:
		return "real"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindTable:
		return "table"
	default:
		return "unknown"
	}
}

// IsScalar reports whether values of this kind coerce between each other
// through AsBool, AsInt and AsReal.
func (k Kind) IsScalar() bool {
	return k <= KindReal
}
