package catalog

import "github.com/google/uuid"

// TypeRow is one row of the types introspection query, as returned by the
// introspection service.
type TypeRow struct {
	ID                  uuid.UUID         `json:"id" yaml:"id" msgpack:"id"`
	Name                string            `json:"name" yaml:"name" msgpack:"name"`
	IsAbstract          *bool             `json:"is_abstract,omitempty" yaml:"is_abstract,omitempty" msgpack:"is_abstract,omitempty"`
	Kind                string            `json:"kind" yaml:"kind" msgpack:"kind"`
	EnumValues          []string          `json:"enum_values,omitempty" yaml:"enum_values,omitempty" msgpack:"enum_values,omitempty"`
	IsSeq               bool              `json:"is_seq,omitempty" yaml:"is_seq,omitempty" msgpack:"is_seq,omitempty"`
	MaterialID          *uuid.UUID        `json:"material_id,omitempty" yaml:"material_id,omitempty" msgpack:"material_id,omitempty"`
	Bases               []IDRow           `json:"bases,omitempty" yaml:"bases,omitempty" msgpack:"bases,omitempty"`
	UnionOf             []IDRow           `json:"union_of,omitempty" yaml:"union_of,omitempty" msgpack:"union_of,omitempty"`
	IntersectionOf      []IDRow           `json:"intersection_of,omitempty" yaml:"intersection_of,omitempty" msgpack:"intersection_of,omitempty"`
	Pointers            []PointerRow      `json:"pointers,omitempty" yaml:"pointers,omitempty" msgpack:"pointers,omitempty"`
	Exclusives          []ExclusiveRow    `json:"exclusives,omitempty" yaml:"exclusives,omitempty" msgpack:"exclusives,omitempty"`
	Backlinks           []BacklinkRow     `json:"backlinks,omitempty" yaml:"backlinks,omitempty" msgpack:"backlinks,omitempty"`
	BacklinkStubs       []BacklinkRow     `json:"backlink_stubs,omitempty" yaml:"backlink_stubs,omitempty" msgpack:"backlink_stubs,omitempty"`
	ArrayElementID      *uuid.UUID        `json:"array_element_id,omitempty" yaml:"array_element_id,omitempty" msgpack:"array_element_id,omitempty"`
	TupleElements       []TupleElementRow `json:"tuple_elements,omitempty" yaml:"tuple_elements,omitempty" msgpack:"tuple_elements,omitempty"`
	MultirangeElementID *uuid.UUID        `json:"multirange_element_id,omitempty" yaml:"multirange_element_id,omitempty" msgpack:"multirange_element_id,omitempty"`
}

// IDRow references another catalog entry.
type IDRow struct {
	ID uuid.UUID `json:"id" yaml:"id" msgpack:"id"`
}

// PointerRow is a property or link of an object type. Link properties are
// nested one level deep in Pointers.
type PointerRow struct {
	Card        string       `json:"card,omitempty" yaml:"card,omitempty" msgpack:"card,omitempty"`
	Name        string       `json:"name" yaml:"name" msgpack:"name"`
	TargetID    *uuid.UUID   `json:"target_id,omitempty" yaml:"target_id,omitempty" msgpack:"target_id,omitempty"`
	Kind        string       `json:"kind" yaml:"kind" msgpack:"kind"`
	IsExclusive bool         `json:"is_exclusive,omitempty" yaml:"is_exclusive,omitempty" msgpack:"is_exclusive,omitempty"`
	IsComputed  *bool        `json:"is_computed,omitempty" yaml:"is_computed,omitempty" msgpack:"is_computed,omitempty"`
	IsReadonly  *bool        `json:"is_readonly,omitempty" yaml:"is_readonly,omitempty" msgpack:"is_readonly,omitempty"`
	HasDefault  bool         `json:"has_default,omitempty" yaml:"has_default,omitempty" msgpack:"has_default,omitempty"`
	Pointers    []PointerRow `json:"pointers,omitempty" yaml:"pointers,omitempty" msgpack:"pointers,omitempty"`
}

// ExclusiveRow is the raw target expression of an exclusive constraint.
type ExclusiveRow struct {
	Target *string `json:"target,omitempty" yaml:"target,omitempty" msgpack:"target,omitempty"`
}

// BacklinkRow is a raw reverse link. Rows from the backlinks source carry a
// Stub with the forward link name; rows from the stubs source leave it empty.
type BacklinkRow struct {
	Card        string     `json:"card" yaml:"card" msgpack:"card"`
	Name        string     `json:"name" yaml:"name" msgpack:"name"`
	Stub        string     `json:"stub,omitempty" yaml:"stub,omitempty" msgpack:"stub,omitempty"`
	TargetID    *uuid.UUID `json:"target_id,omitempty" yaml:"target_id,omitempty" msgpack:"target_id,omitempty"`
	Kind        string     `json:"kind" yaml:"kind" msgpack:"kind"`
	IsExclusive *bool      `json:"is_exclusive,omitempty" yaml:"is_exclusive,omitempty" msgpack:"is_exclusive,omitempty"`
}

// TupleElementRow is one element of a tuple type.
type TupleElementRow struct {
	TargetID uuid.UUID `json:"target_id" yaml:"target_id" msgpack:"target_id"`
	Name     *string   `json:"name,omitempty" yaml:"name,omitempty" msgpack:"name,omitempty"`
}

// GlobalRow is one row of the globals introspection query.
type GlobalRow struct {
	ID          uuid.UUID     `json:"id" yaml:"id" msgpack:"id"`
	Name        string        `json:"name" yaml:"name" msgpack:"name"`
	Cardinality string        `json:"cardinality,omitempty" yaml:"cardinality,omitempty" msgpack:"cardinality,omitempty"`
	Target      *GlobalTarget `json:"target,omitempty" yaml:"target,omitempty" msgpack:"target,omitempty"`
}

// GlobalTarget is the type of a global.
type GlobalTarget struct {
	ID          uuid.UUID `json:"id" yaml:"id" msgpack:"id"`
	Name        string    `json:"name" yaml:"name" msgpack:"name"`
	IsFromAlias *bool     `json:"is_from_alias,omitempty" yaml:"is_from_alias,omitempty" msgpack:"is_from_alias,omitempty"`
}

// IsMany reports whether the global holds a set of values.
func (g GlobalRow) IsMany() bool {
	return g.Cardinality == "Many"
}

func boolValue(b *bool) bool {
	return b != nil && *b
}
