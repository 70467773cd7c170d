package descriptor

import "fmt"

// Cardinality is the multiplicity contract of a query result or shape element.
// The values are the protocol's wire bytes.
type Cardinality uint8

const (
	NoResult   Cardinality = 0x6e
	AtMostOne  Cardinality = 0x6f
	One        Cardinality = 0x41
	Many       Cardinality = 0x6d
	AtLeastOne Cardinality = 0x4d
)

var cardinalityNames = map[Cardinality]string{
	NoResult:   "NoResult",
	AtMostOne:  "AtMostOne",
	One:        "One",
	Many:       "Many",
	AtLeastOne: "AtLeastOne",
}

// String returns the schema spelling of the cardinality.
func (c Cardinality) String() string {
	if s, ok := cardinalityNames[c]; ok {
		return s
	}
	return fmt.Sprintf("Cardinality(%#x)", uint8(c))
}

// ParseCardinality maps the introspection spelling to a Cardinality. Unknown
// or empty strings map to NoResult.
func ParseCardinality(s string) Cardinality {
	switch s {
	case "AtMostOne":
		return AtMostOne
	case "One":
		return One
	case "Many":
		return Many
	case "AtLeastOne":
		return AtLeastOne
	default:
		return NoResult
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Cardinality) MarshalText() ([]byte, error) {
	if _, ok := cardinalityNames[c]; !ok {
		return nil, fmt.Errorf("descriptor: unknown cardinality %#x", uint8(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Cardinality) UnmarshalText(text []byte) error {
	*c = ParseCardinality(string(text))
	return nil
}
