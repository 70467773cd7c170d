package descriptor

import (
	"fmt"

	"github.com/google/uuid"
)

// Kind tags used by the serialized form.
const (
	KindSet            = "set"
	KindObjectShape    = "object_shape"
	KindBaseScalar     = "base_scalar"
	KindScalar         = "scalar"
	KindTuple          = "tuple"
	KindNamedTuple     = "named_tuple"
	KindArray          = "array"
	KindEnumeration    = "enumeration"
	KindInputShape     = "input_shape"
	KindRange          = "range"
	KindMultiRange     = "multirange"
	KindTypeAnnotation = "type_annotation"
	KindObject         = "object"
	KindCompound       = "compound"
	KindSQLRow         = "sql_row"
)

// Node is the serialized form of a Descriptor used by snapshot files. A
// single struct carries the union of all variant fields, tagged by Kind.
type Node struct {
	Kind          string        `json:"kind" yaml:"kind" msgpack:"kind"`
	ID            uuid.UUID     `json:"id" yaml:"id" msgpack:"id"`
	Name          string        `json:"name,omitempty" yaml:"name,omitempty" msgpack:"name,omitempty"`
	TypePos       *int          `json:"type_pos,omitempty" yaml:"type_pos,omitempty" msgpack:"type_pos,omitempty"`
	BaseTypePos   *int          `json:"base_type_pos,omitempty" yaml:"base_type_pos,omitempty" msgpack:"base_type_pos,omitempty"`
	SchemaDefined bool          `json:"schema_defined,omitempty" yaml:"schema_defined,omitempty" msgpack:"schema_defined,omitempty"`
	Ephemeral     bool          `json:"ephemeral,omitempty" yaml:"ephemeral,omitempty" msgpack:"ephemeral,omitempty"`
	Ancestors     []int         `json:"ancestors,omitempty" yaml:"ancestors,omitempty" msgpack:"ancestors,omitempty"`
	ElementTypes  []int         `json:"element_types,omitempty" yaml:"element_types,omitempty" msgpack:"element_types,omitempty"`
	Elements      []NodeElement `json:"elements,omitempty" yaml:"elements,omitempty" msgpack:"elements,omitempty"`
	Members       []string      `json:"members,omitempty" yaml:"members,omitempty" msgpack:"members,omitempty"`
	Annotated     string        `json:"annotated,omitempty" yaml:"annotated,omitempty" msgpack:"annotated,omitempty"`
}

// NodeElement is the serialized form of a shape or tuple element.
type NodeElement struct {
	Name        string       `json:"name" yaml:"name" msgpack:"name"`
	Cardinality *Cardinality `json:"cardinality,omitempty" yaml:"cardinality,omitempty" msgpack:"cardinality,omitempty"`
	TypePos     int          `json:"type_pos" yaml:"type_pos" msgpack:"type_pos"`
}

// TypedescNodes is the serialized form of a Typedesc.
type TypedescNodes struct {
	Root        *int   `json:"root,omitempty" yaml:"root,omitempty" msgpack:"root,omitempty"`
	Descriptors []Node `json:"descriptors,omitempty" yaml:"descriptors,omitempty" msgpack:"descriptors,omitempty"`
}

// Card returns a pointer to c, for building shape elements.
func Card(c Cardinality) *Cardinality {
	return &c
}

// Decode converts the serialized form into a Typedesc.
func (t TypedescNodes) Decode() (Typedesc, error) {
	td := Typedesc{Descriptors: make([]Descriptor, 0, len(t.Descriptors))}
	for i, n := range t.Descriptors {
		// Descriptors only reference earlier positions, which rules out cycles.
		for _, p := range n.references() {
			if p < 0 || p >= i {
				return Typedesc{}, fmt.Errorf("descriptor %d: type position %d does not precede it", i, p)
			}
		}
		d, err := n.Descriptor()
		if err != nil {
			return Typedesc{}, fmt.Errorf("descriptor %d: %w", i, err)
		}
		td.Descriptors = append(td.Descriptors, d)
	}
	if t.Root != nil {
		if *t.Root < 0 || *t.Root >= len(td.Descriptors) {
			return Typedesc{}, fmt.Errorf("descriptor: root position %d out of range", *t.Root)
		}
		td.RootPos = Pos(*t.Root)
	}
	return td, nil
}

// references returns every type position n points at.
func (n Node) references() []int {
	var out []int
	if n.TypePos != nil {
		out = append(out, *n.TypePos)
	}
	if n.BaseTypePos != nil {
		out = append(out, *n.BaseTypePos)
	}
	out = append(out, n.Ancestors...)
	out = append(out, n.ElementTypes...)
	for _, e := range n.Elements {
		out = append(out, e.TypePos)
	}
	return out
}

// Encode converts a Typedesc into its serialized form.
func Encode(td Typedesc) (TypedescNodes, error) {
	out := TypedescNodes{Descriptors: make([]Node, 0, len(td.Descriptors))}
	for i, d := range td.Descriptors {
		n, err := NodeOf(d)
		if err != nil {
			return TypedescNodes{}, fmt.Errorf("descriptor %d: %w", i, err)
		}
		out.Descriptors = append(out.Descriptors, n)
	}
	if td.RootPos != nil {
		root := int(*td.RootPos)
		out.Root = &root
	}
	return out, nil
}

// Descriptor converts a node into its typed descriptor.
func (n Node) Descriptor() (Descriptor, error) {
	switch n.Kind {
	case KindSet:
		pos, err := n.requirePos()
		return &Set{ID: n.ID, TypePos: pos}, err
	case KindObjectShape:
		return &ObjectShape{ID: n.ID, Ephemeral: n.Ephemeral, Elements: n.shapeElements()}, nil
	case KindBaseScalar:
		return &BaseScalar{ID: n.ID}, nil
	case KindScalar:
		d := &Scalar{ID: n.ID, Name: n.Name, SchemaDefined: n.SchemaDefined, Ancestors: positions(n.Ancestors)}
		if n.BaseTypePos != nil {
			d.BaseTypePos = Pos(*n.BaseTypePos)
		}
		return d, nil
	case KindTuple:
		return &Tuple{ID: n.ID, Name: n.Name, ElementTypes: positions(n.ElementTypes)}, nil
	case KindNamedTuple:
		elems := make([]TupleElement, len(n.Elements))
		for i, e := range n.Elements {
			elems[i] = TupleElement{Name: e.Name, TypePos: TypePos(e.TypePos)}
		}
		return &NamedTuple{ID: n.ID, Name: n.Name, Elements: elems}, nil
	case KindArray:
		pos, err := n.requirePos()
		return &Array{ID: n.ID, Name: n.Name, TypePos: pos}, err
	case KindEnumeration:
		return &Enumeration{ID: n.ID, Name: n.Name, Members: n.Members}, nil
	case KindInputShape:
		return &InputShape{ID: n.ID, Elements: n.shapeElements()}, nil
	case KindRange:
		pos, err := n.requirePos()
		return &Range{ID: n.ID, Name: n.Name, TypePos: pos}, err
	case KindMultiRange:
		pos, err := n.requirePos()
		return &MultiRange{ID: n.ID, Name: n.Name, TypePos: pos}, err
	case KindTypeAnnotation:
		return &TypeAnnotation{ID: n.ID, Annotated: n.Annotated}, nil
	case KindObject:
		return &Object{ID: n.ID, Name: n.Name}, nil
	case KindCompound:
		return &Compound{ID: n.ID, Name: n.Name, Components: positions(n.ElementTypes)}, nil
	case KindSQLRow:
		return &SQLRow{ID: n.ID, Elements: n.shapeElements()}, nil
	default:
		return nil, fmt.Errorf("descriptor: unknown kind %q", n.Kind)
	}
}

// NodeOf converts a typed descriptor into its serialized form.
func NodeOf(d Descriptor) (Node, error) {
	n := Node{ID: d.TypeID()}
	switch d := d.(type) {
	case *Set:
		n.Kind, n.TypePos = KindSet, intPtr(d.TypePos)
	case *ObjectShape:
		n.Kind, n.Ephemeral, n.Elements = KindObjectShape, d.Ephemeral, nodeElements(d.Elements)
	case *BaseScalar:
		n.Kind = KindBaseScalar
	case *Scalar:
		n.Kind, n.Name, n.SchemaDefined, n.Ancestors = KindScalar, d.Name, d.SchemaDefined, ints(d.Ancestors)
		if d.BaseTypePos != nil {
			n.BaseTypePos = intPtr(*d.BaseTypePos)
		}
	case *Tuple:
		n.Kind, n.Name, n.ElementTypes = KindTuple, d.Name, ints(d.ElementTypes)
	case *NamedTuple:
		n.Kind, n.Name = KindNamedTuple, d.Name
		for _, e := range d.Elements {
			n.Elements = append(n.Elements, NodeElement{Name: e.Name, TypePos: int(e.TypePos)})
		}
	case *Array:
		n.Kind, n.Name, n.TypePos = KindArray, d.Name, intPtr(d.TypePos)
	case *Enumeration:
		n.Kind, n.Name, n.Members = KindEnumeration, d.Name, d.Members
	case *InputShape:
		n.Kind, n.Elements = KindInputShape, nodeElements(d.Elements)
	case *Range:
		n.Kind, n.Name, n.TypePos = KindRange, d.Name, intPtr(d.TypePos)
	case *MultiRange:
		n.Kind, n.Name, n.TypePos = KindMultiRange, d.Name, intPtr(d.TypePos)
	case *TypeAnnotation:
		n.Kind, n.Annotated = KindTypeAnnotation, d.Annotated
	case *Object:
		n.Kind, n.Name = KindObject, d.Name
	case *Compound:
		n.Kind, n.Name, n.ElementTypes = KindCompound, d.Name, ints(d.Components)
	case *SQLRow:
		n.Kind, n.Elements = KindSQLRow, nodeElements(d.Elements)
	default:
		return Node{}, fmt.Errorf("descriptor: unsupported type %T", d)
	}
	return n, nil
}

func (n Node) requirePos() (TypePos, error) {
	if n.TypePos == nil {
		return 0, fmt.Errorf("descriptor: %s node %s has no type_pos", n.Kind, n.ID)
	}
	return TypePos(*n.TypePos), nil
}

func (n Node) shapeElements() []ShapeElement {
	elems := make([]ShapeElement, len(n.Elements))
	for i, e := range n.Elements {
		elems[i] = ShapeElement{Name: e.Name, Cardinality: e.Cardinality, TypePos: TypePos(e.TypePos)}
	}
	return elems
}

func nodeElements(elems []ShapeElement) []NodeElement {
	out := make([]NodeElement, len(elems))
	for i, e := range elems {
		out[i] = NodeElement{Name: e.Name, Cardinality: e.Cardinality, TypePos: int(e.TypePos)}
	}
	return out
}

func positions(in []int) []TypePos {
	if len(in) == 0 {
		return nil
	}
	out := make([]TypePos, len(in))
	for i, p := range in {
		out[i] = TypePos(p)
	}
	return out
}

func ints(in []TypePos) []int {
	if len(in) == 0 {
		return nil
	}
	out := make([]int, len(in))
	for i, p := range in {
		out[i] = int(p)
	}
	return out
}

func intPtr(p TypePos) *int {
	i := int(p)
	return &i
}
