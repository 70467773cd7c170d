// Package catalog maps the rows of the schema introspection queries into a
// normalized graph of type nodes.
package catalog

import (
	"github.com/google/uuid"

	"github.com/syssam/gelx/compiler/descriptor"
)

// TypeNode is one schema catalog entry. The set of implementations is closed:
// Object, Scalar, Enum, Array, Tuple, Range, MultiRange and Base.
type TypeNode interface {
	// ID returns the stable catalog id.
	ID() uuid.UUID
	// Name returns the fully qualified name, e.g. "default::User".
	Name() string
	typeNode()
}

// Object is an object type.
type Object struct {
	TypeID         uuid.UUID
	TypeName       string
	IsAbstract     bool
	Bases          []uuid.UUID
	UnionOf        []uuid.UUID
	IntersectionOf []uuid.UUID
	Pointers       []Pointer
	Backlinks      []Backlink
	Exclusives     []ExclusivityGroup
}

// Scalar is a scalar type that is not an enumeration.
type Scalar struct {
	TypeID     uuid.UUID
	TypeName   string
	IsAbstract bool
	IsSeq      bool
	Bases      []uuid.UUID
	// MaterialID is the first non-abstract built-in ancestor, used to flatten
	// chains of aliasing scalars.
	MaterialID *uuid.UUID
}

// Enum is an enumerated scalar type.
type Enum struct {
	TypeID   uuid.UUID
	TypeName string
	Values   []string
	Bases    []uuid.UUID
}

// Array is an array type.
type Array struct {
	TypeID     uuid.UUID
	TypeName   string
	ElementID  uuid.UUID
	IsAbstract bool
}

// Tuple is a tuple type.
type Tuple struct {
	TypeID     uuid.UUID
	TypeName   string
	Elements   []TupleElement
	IsAbstract bool
}

// TupleElement is one element of a Tuple. Name is empty for unnamed tuples.
type TupleElement struct {
	Name     string
	TargetID uuid.UUID
}

// Range is a range type.
type Range struct {
	TypeID     uuid.UUID
	TypeName   string
	ElementID  uuid.UUID
	IsAbstract bool
}

// MultiRange is a multirange type.
type MultiRange struct {
	TypeID     uuid.UUID
	TypeName   string
	ElementID  uuid.UUID
	IsAbstract bool
}

// Base is an opaque catalog entry of an unrecognized kind.
type Base struct {
	TypeID   uuid.UUID
	TypeName string
	Kind     string
}

func (t *Object) ID() uuid.UUID     { return t.TypeID }
func (t *Scalar) ID() uuid.UUID     { return t.TypeID }
func (t *Enum) ID() uuid.UUID       { return t.TypeID }
func (t *Array) ID() uuid.UUID      { return t.TypeID }
func (t *Tuple) ID() uuid.UUID      { return t.TypeID }
func (t *Range) ID() uuid.UUID      { return t.TypeID }
func (t *MultiRange) ID() uuid.UUID { return t.TypeID }
func (t *Base) ID() uuid.UUID       { return t.TypeID }

func (t *Object) Name() string     { return t.TypeName }
func (t *Scalar) Name() string     { return t.TypeName }
func (t *Enum) Name() string       { return t.TypeName }
func (t *Array) Name() string      { return t.TypeName }
func (t *Tuple) Name() string      { return t.TypeName }
func (t *Range) Name() string      { return t.TypeName }
func (t *MultiRange) Name() string { return t.TypeName }
func (t *Base) Name() string       { return t.TypeName }

func (*Object) typeNode()     {}
func (*Scalar) typeNode()     {}
func (*Enum) typeNode()       {}
func (*Array) typeNode()      {}
func (*Tuple) typeNode()      {}
func (*Range) typeNode()      {}
func (*MultiRange) typeNode() {}
func (*Base) typeNode()       {}

// Backlink is a reverse link synthesized from the links targeting a type.
type Backlink struct {
	Cardinality descriptor.Cardinality
	// Name embeds the owner, e.g. "<friends[is User]".
	Name        string
	TargetID    uuid.UUID
	IsExclusive bool
	// Stub is the forward link name. It is nil for rows from the stub source,
	// which point at the universal base object type.
	Stub *string
}

// IsStub reports whether the backlink is a placeholder from the stub source.
func (b Backlink) IsStub() bool {
	return b.Stub == nil
}

// Graph is the catalog keyed by id, preserving catalog order.
type Graph struct {
	order []uuid.UUID
	nodes map[uuid.UUID]TypeNode
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{nodes: make(map[uuid.UUID]TypeNode)}
}

// Add inserts or replaces a node. Replacing keeps the original position.
func (g *Graph) Add(n TypeNode) {
	if _, ok := g.nodes[n.ID()]; !ok {
		g.order = append(g.order, n.ID())
	}
	g.nodes[n.ID()] = n
}

// Get returns the node with the given id.
func (g *Graph) Get(id uuid.UUID) (TypeNode, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.order)
}

// Nodes returns all nodes in catalog order.
func (g *Graph) Nodes() []TypeNode {
	out := make([]TypeNode, len(g.order))
	for i, id := range g.order {
		out[i] = g.nodes[id]
	}
	return out
}
