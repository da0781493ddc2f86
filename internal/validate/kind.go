package validate

// Kind classifies why a value failed validation.
type Kind int

const (
	KindNone Kind = iota
	KindRequired
	KindInvalid
	KindBelowMinimum
	KindAboveMaximum
	KindExceedsTotal
)

var kindNames = map[Kind]string{
	KindNone:         "none",
	KindRequired:     "required_field_missing",
	KindInvalid:      "invalid_numeric_format",
	KindBelowMinimum: "below_minimum",
	KindAboveMaximum: "above_maximum",
	KindExceedsTotal: "obtained_exceeds_total",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarshalText renders the kind by name so results serialize readably.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
