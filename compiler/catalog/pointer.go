package catalog

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/syssam/gelx/compiler/descriptor"
)

// PointerKind distinguishes links from properties.
type PointerKind uint8

const (
	Property PointerKind = iota + 1
	Link
)

// String returns the introspection spelling of the kind.
func (k PointerKind) String() string {
	switch k {
	case Link:
		return "link"
	case Property:
		return "property"
	default:
		return "invalid"
	}
}

// PointerFlags is a bit set of pointer attributes.
type PointerFlags uint8

const (
	FlagExclusive PointerFlags = 1 << iota
	FlagComputed
	FlagReadonly
	FlagHasDefault
)

// Has reports whether all bits of f are set.
func (p PointerFlags) Has(f PointerFlags) bool {
	return p&f == f
}

// Pointer is a property or link on an object type. Pointers holds the link
// properties of a link and is nil for nested link properties themselves.
type Pointer struct {
	Cardinality descriptor.Cardinality
	Kind        PointerKind
	Name        string
	TargetID    uuid.UUID
	Flags       PointerFlags
	Pointers    []Pointer
}

func (p Pointer) IsLink() bool      { return p.Kind == Link }
func (p Pointer) IsProperty() bool  { return p.Kind == Property }
func (p Pointer) IsExclusive() bool { return p.Flags.Has(FlagExclusive) }
func (p Pointer) IsComputed() bool  { return p.Flags.Has(FlagComputed) }
func (p Pointer) IsReadonly() bool  { return p.Flags.Has(FlagReadonly) }
func (p Pointer) HasDefault() bool  { return p.Flags.Has(FlagHasDefault) }

// RowError reports an introspection row that breaks the row contract.
type RowError struct {
	Type    string
	Pointer string
	Message string
}

// Error implements the error interface.
func (e *RowError) Error() string {
	var b strings.Builder
	b.WriteString("catalog: invalid row")
	if e.Type != "" {
		b.WriteString(" for type ")
		b.WriteString(e.Type)
	}
	if e.Pointer != "" {
		b.WriteString(" pointer ")
		b.WriteString(e.Pointer)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}

func parsePointerKind(kind string) (PointerKind, bool) {
	switch kind {
	case "link":
		return Link, true
	case "property":
		return Property, true
	default:
		return 0, false
	}
}

// newPointer converts a row. ok is false for dangling rows without a target,
// which are dropped.
func newPointer(typeName string, row PointerRow, nested bool) (p Pointer, ok bool, err error) {
	kind, valid := parsePointerKind(row.Kind)
	if !valid {
		return Pointer{}, false, &RowError{
			Type:    typeName,
			Pointer: row.Name,
			Message: fmt.Sprintf("invalid pointer kind %q", row.Kind),
		}
	}
	if row.TargetID == nil {
		return Pointer{}, false, nil
	}
	var flags PointerFlags
	if row.IsExclusive && !nested {
		flags |= FlagExclusive
	}
	if boolValue(row.IsComputed) {
		flags |= FlagComputed
	}
	if boolValue(row.IsReadonly) {
		flags |= FlagReadonly
	}
	if row.HasDefault && !nested {
		flags |= FlagHasDefault
	}
	p = Pointer{
		Cardinality: descriptor.ParseCardinality(row.Card),
		Kind:        kind,
		Name:        row.Name,
		TargetID:    *row.TargetID,
		Flags:       flags,
	}
	if !nested {
		p.Pointers = make([]Pointer, 0, len(row.Pointers))
		for _, sub := range row.Pointers {
			lp, ok, err := newPointer(typeName, sub, true)
			if err != nil {
				return Pointer{}, false, err
			}
			if ok {
				p.Pointers = append(p.Pointers, lp)
			}
		}
	}
	return p, true, nil
}
