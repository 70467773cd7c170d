// Package descriptor models the compiled type signature the database returns
// for a query: a flat list of descriptors that reference each other by
// position, with one of them designated as the root.
package descriptor

import (
	"fmt"

	"github.com/google/uuid"
)

// TypePos is the position of a descriptor inside its Typedesc.
type TypePos int

// Descriptor is one node of a query's type signature. The set of
// implementations is closed.
type Descriptor interface {
	// TypeID returns the descriptor's type id.
	TypeID() uuid.UUID
	descriptor()
}

type (
	// Set is a set of elements.
	Set struct {
		ID      uuid.UUID
		TypePos TypePos
	}

	// ObjectShape is the shape of an object in a query result.
	ObjectShape struct {
		ID        uuid.UUID
		Ephemeral bool
		Elements  []ShapeElement
	}

	// BaseScalar is a built-in scalar referenced by id only.
	BaseScalar struct {
		ID uuid.UUID
	}

	// Scalar is a named scalar, possibly user defined.
	Scalar struct {
		ID            uuid.UUID
		Name          string
		SchemaDefined bool
		Ancestors     []TypePos
		// BaseTypePos is the direct alias target, nil for built-ins.
		BaseTypePos *TypePos
	}

	// Tuple is an unnamed tuple.
	Tuple struct {
		ID           uuid.UUID
		Name         string
		ElementTypes []TypePos
	}

	// NamedTuple is a tuple with named elements.
	NamedTuple struct {
		ID       uuid.UUID
		Name     string
		Elements []TupleElement
	}

	// Array is a one dimensional array.
	Array struct {
		ID      uuid.UUID
		Name    string
		TypePos TypePos
	}

	// Enumeration is an enumerated scalar. An empty Name marks an ephemeral
	// enumeration that is not backed by a catalog entry.
	Enumeration struct {
		ID      uuid.UUID
		Name    string
		Members []string
	}

	// InputShape is the shape of query arguments.
	InputShape struct {
		ID       uuid.UUID
		Elements []ShapeElement
	}

	// Range is a range over a scalar.
	Range struct {
		ID      uuid.UUID
		Name    string
		TypePos TypePos
	}

	// MultiRange is a set of ranges.
	MultiRange struct {
		ID      uuid.UUID
		Name    string
		TypePos TypePos
	}

	// TypeAnnotation annotates another descriptor.
	TypeAnnotation struct {
		ID        uuid.UUID
		Annotated string
	}

	// Object is an object type referenced by the query.
	Object struct {
		ID   uuid.UUID
		Name string
	}

	// Compound is a union or intersection type.
	Compound struct {
		ID         uuid.UUID
		Name       string
		Components []TypePos
	}

	// SQLRow is a row returned by an SQL query.
	SQLRow struct {
		ID       uuid.UUID
		Elements []ShapeElement
	}
)

// ShapeElement is one element of an object shape, input shape or SQL row.
type ShapeElement struct {
	Name string
	// Cardinality is nil when the protocol did not send one.
	Cardinality *Cardinality
	TypePos     TypePos
}

// Card returns the element cardinality, NoResult when absent.
func (e ShapeElement) Card() Cardinality {
	if e.Cardinality == nil {
		return NoResult
	}
	return *e.Cardinality
}

// TupleElement is one element of a named tuple.
type TupleElement struct {
	Name    string
	TypePos TypePos
}

func (d *Set) TypeID() uuid.UUID            { return d.ID }
func (d *ObjectShape) TypeID() uuid.UUID    { return d.ID }
func (d *BaseScalar) TypeID() uuid.UUID     { return d.ID }
func (d *Scalar) TypeID() uuid.UUID         { return d.ID }
func (d *Tuple) TypeID() uuid.UUID          { return d.ID }
func (d *NamedTuple) TypeID() uuid.UUID     { return d.ID }
func (d *Array) TypeID() uuid.UUID          { return d.ID }
func (d *Enumeration) TypeID() uuid.UUID    { return d.ID }
func (d *InputShape) TypeID() uuid.UUID     { return d.ID }
func (d *Range) TypeID() uuid.UUID          { return d.ID }
func (d *MultiRange) TypeID() uuid.UUID     { return d.ID }
func (d *TypeAnnotation) TypeID() uuid.UUID { return d.ID }
func (d *Object) TypeID() uuid.UUID         { return d.ID }
func (d *Compound) TypeID() uuid.UUID       { return d.ID }
func (d *SQLRow) TypeID() uuid.UUID         { return d.ID }

func (*Set) descriptor()            {}
func (*ObjectShape) descriptor()    {}
func (*BaseScalar) descriptor()     {}
func (*Scalar) descriptor()         {}
func (*Tuple) descriptor()          {}
func (*NamedTuple) descriptor()     {}
func (*Array) descriptor()          {}
func (*Enumeration) descriptor()    {}
func (*InputShape) descriptor()     {}
func (*Range) descriptor()          {}
func (*MultiRange) descriptor()     {}
func (*TypeAnnotation) descriptor() {}
func (*Object) descriptor()         {}
func (*Compound) descriptor()       {}
func (*SQLRow) descriptor()         {}

// Typedesc is a decoded type signature.
type Typedesc struct {
	Descriptors []Descriptor
	// RootPos is nil when the signature is empty, e.g. a query without
	// arguments.
	RootPos *TypePos
}

// Get returns the descriptor at pos.
func (t *Typedesc) Get(pos TypePos) (Descriptor, error) {
	if pos < 0 || int(pos) >= len(t.Descriptors) {
		return nil, fmt.Errorf("descriptor: position %d out of range (%d descriptors)", pos, len(t.Descriptors))
	}
	return t.Descriptors[pos], nil
}

// Root returns the root descriptor, or nil when the signature is empty.
func (t *Typedesc) Root() Descriptor {
	if t == nil || t.RootPos == nil {
		return nil
	}
	d, err := t.Get(*t.RootPos)
	if err != nil {
		return nil
	}
	return d
}

// CommandDescription is the compiled signature of one query.
type CommandDescription struct {
	ResultCardinality Cardinality
	Input             Typedesc
	Output            Typedesc
}

// Pos is a helper returning a pointer to p.
func Pos(p int) *TypePos {
	pos := TypePos(p)
	return &pos
}
