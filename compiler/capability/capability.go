// Package capability resolves which cross-cutting code generation capabilities
// apply to an emitted type and groups their attachments by build tag alias.
package capability

import (
	"fmt"
	"go/build/constraint"
	"strconv"
)

// Name identifies a capability. The values are the configuration keys.
type Name string

const (
	Serialization Name = "serde"
	Builder       Name = "builder"
	Query         Name = "query"
	EnumString    Name = "strum"
)

// Attachment is one concrete piece of generated code contributed by a
// capability. The generator renders each attachment for the target type.
type Attachment string

const (
	// JSONCodec is MarshalJSON/UnmarshalJSON on a record.
	JSONCodec Attachment = "json_codec"
	// TextCodec is MarshalText/UnmarshalText on an enumeration.
	TextCodec Attachment = "text_codec"
	// BuilderType is the <Name>Builder type of an input record.
	BuilderType Attachment = "builder_type"
	// BuilderContract asserts the builder satisfies gelx.Builder.
	BuilderContract Attachment = "builder_contract"
	// FieldList is GelFields on a record.
	FieldList Attachment = "field_list"
	// ValueList is GelValues on an enumeration.
	ValueList Attachment = "value_list"
	// QueryContract asserts the type satisfies gelx.Queryable, gelx.Enum or
	// gelx.Scalar.
	QueryContract Attachment = "query_contract"
	// TypeCheck is CheckDescriptor on a scalar wrapper.
	TypeCheck Attachment = "type_check"
	// StringMethods is String, Parse, IsValid and the Is<Member> predicates.
	StringMethods Attachment = "string_methods"
)

// Capability describes the attachments a capability contributes.
type Capability struct {
	// Name of the capability.
	Name Name

	// A Description of the capability.
	Description string

	// Record, Enum and Scalar list the main attachments per target kind.
	Record []Attachment
	Enum   []Attachment
	Scalar []Attachment

	// InputOnly restricts record attachments to input records.
	InputOnly bool

	// Auxiliary is emitted next to the grouped block, under the same alias.
	Auxiliary Attachment
}

var (
	// CapSerialization adds encoding/json and encoding.Text support.
	CapSerialization = Capability{
		Name:        Serialization,
		Description: "JSON marshaling for records and text marshaling for enumerations",
		Record:      []Attachment{JSONCodec},
		Enum:        []Attachment{TextCodec},
		Scalar:      []Attachment{JSONCodec},
	}

	// CapBuilder adds builder-style construction to input records.
	CapBuilder = Capability{
		Name:        Builder,
		Description: "Builder types with required and defaulted setters for query inputs",
		Record:      []Attachment{BuilderType},
		InputOnly:   true,
		Auxiliary:   BuilderContract,
	}

	// CapQuery binds records and enumerations to the query runtime.
	CapQuery = Capability{
		Name:        Query,
		Description: "Field and value lists consumed by the query runtime",
		Record:      []Attachment{FieldList},
		Enum:        []Attachment{ValueList},
		Scalar:      []Attachment{TypeCheck},
		Auxiliary:   QueryContract,
	}

	// CapEnumString adds string conversion helpers to enumerations.
	CapEnumString = Capability{
		Name:        EnumString,
		Description: "String conversion, parsing and member predicates for enumerations",
		Enum:        []Attachment{StringMethods},
	}

	// All holds every capability.
	All = []Capability{CapSerialization, CapBuilder, CapQuery, CapEnumString}

	// RecordCapabilities is requested for every record type.
	RecordCapabilities = []Name{Serialization, Builder, Query}

	// EnumCapabilities is requested for every enumeration.
	EnumCapabilities = []Name{Serialization, Query, EnumString}

	// ScalarCapabilities is requested for every scalar wrapper.
	ScalarCapabilities = []Name{Serialization, Query}
)

// Lookup returns the capability with the given name.
func Lookup(n Name) (Capability, bool) {
	for _, c := range All {
		if c.Name == n {
			return c, true
		}
	}
	return Capability{}, false
}

// Option is the tri-state setting of one capability: off, always on, or on
// behind a build tag alias.
type Option struct {
	Enabled bool
	Alias   string
}

// On returns an unconditional option.
func On() Option { return Option{Enabled: true} }

// Off returns a disabled option.
func Off() Option { return Option{} }

// Behind returns an option gated by the given build tag.
func Behind(alias string) Option { return Option{Enabled: true, Alias: alias} }

// IsAliased reports whether the option is enabled behind an alias.
func (o Option) IsAliased() bool {
	return o.Enabled && o.Alias != ""
}

// String returns the configuration spelling of the option.
func (o Option) String() string {
	if o.IsAliased() {
		return o.Alias
	}
	return strconv.FormatBool(o.Enabled)
}

// ParseOption converts a configuration value. Booleans and the strings
// "true"/"false" toggle the capability; any other string is an alias and must
// be a valid build tag.
func ParseOption(v any) (Option, error) {
	switch v := v.(type) {
	case nil:
		return On(), nil
	case bool:
		return Option{Enabled: v}, nil
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return Option{Enabled: b}, nil
		}
		if err := ValidateAlias(v); err != nil {
			return Option{}, err
		}
		return Behind(v), nil
	default:
		return Option{}, fmt.Errorf("capability option must be a bool or a build tag, got %T", v)
	}
}

// ValidateAlias checks that alias is a single build tag.
func ValidateAlias(alias string) error {
	expr, err := constraint.Parse("//go:build " + alias)
	if err != nil {
		return fmt.Errorf("invalid build tag %q: %w", alias, err)
	}
	if _, ok := expr.(*constraint.TagExpr); !ok {
		return fmt.Errorf("invalid build tag %q: expected a single tag", alias)
	}
	return nil
}

// Options holds one Option per capability.
type Options struct {
	Serialization Option
	Builder       Option
	Query         Option
	EnumString    Option
}

// Default enables every capability unconditionally.
func Default() Options {
	return Options{
		Serialization: On(),
		Builder:       On(),
		Query:         On(),
		EnumString:    On(),
	}
}

// Get returns the option of the named capability.
func (o Options) Get(n Name) Option {
	switch n {
	case Serialization:
		return o.Serialization
	case Builder:
		return o.Builder
	case Query:
		return o.Query
	case EnumString:
		return o.EnumString
	default:
		return Off()
	}
}

// Set replaces the option of the named capability.
func (o *Options) Set(n Name, opt Option) error {
	switch n {
	case Serialization:
		o.Serialization = opt
	case Builder:
		o.Builder = opt
	case Query:
		o.Query = opt
	case EnumString:
		o.EnumString = opt
	default:
		return fmt.Errorf("unknown capability %q", n)
	}
	return nil
}

// Mode is the generation context.
type Mode uint8

const (
	// Standalone generates the namespace-mirroring package tree.
	Standalone Mode = iota
	// Embedded generates one self-contained fragment at a use site.
	Embedded
)

// String returns the mode name.
func (m Mode) String() string {
	if m == Embedded {
		return "embedded"
	}
	return "standalone"
}

// Enabled reports whether the capability applies in mode. Embedded output is
// a single fragment without companion files, so aliased capabilities are
// unavailable there.
func (o Options) Enabled(n Name, mode Mode) bool {
	opt := o.Get(n)
	if !opt.Enabled {
		return false
	}
	return mode == Standalone || opt.Alias == ""
}
