package gen

import (
	"fmt"
	"strconv"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/gelx/compiler/capability"
	"github.com/syssam/gelx/compiler/catalog"
	"github.com/syssam/gelx/compiler/descriptor"
)

// TypeRef is the Go type an explored descriptor resolves to.
type TypeRef struct {
	Code *jen.Statement
	// List marks slice types, which builders default to empty.
	List bool
}

// Definition is a top level type emitted while exploring a descriptor. The
// set of implementations is closed: AliasDef, RecordDef, TupleDef and
// EnumDef.
type Definition interface {
	DefName() string
	definition()
}

type (
	// AliasDef is "type Name = Type".
	AliasDef struct {
		Name string
		Type TypeRef
	}

	// RecordDef is a struct built from an object shape, input shape or named
	// tuple.
	RecordDef struct {
		Name   string
		Fields []FieldDef
		// Input marks records built from input shapes. They carry the Args
		// glue and are eligible for builders.
		Input bool
	}

	// FieldDef is one field of a RecordDef.
	FieldDef struct {
		Name       string
		SchemaName string
		// Type is the element type. Optional fields hold a pointer to it.
		Type        TypeRef
		Optional    bool
		Cardinality descriptor.Cardinality
	}

	// TupleDef is a struct with positional Item fields.
	TupleDef struct {
		Name     string
		Elements []TypeRef
	}

	// EnumDef is a string enumeration.
	EnumDef struct {
		Name       string
		SchemaName string
		Members    []string
	}
)

func (d *AliasDef) DefName() string  { return d.Name }
func (d *RecordDef) DefName() string { return d.Name }
func (d *TupleDef) DefName() string  { return d.Name }
func (d *EnumDef) DefName() string   { return d.Name }

func (*AliasDef) definition()  {}
func (*RecordDef) definition() {}
func (*TupleDef) definition()  {}
func (*EnumDef) definition()   {}

// Renamed reports whether the Go field name differs from the schema name.
func (f FieldDef) Renamed() bool {
	return f.Name != f.SchemaName
}

// Code renders the field type.
func (f FieldDef) Code() *jen.Statement {
	if f.Optional {
		return jen.Op("*").Add(f.Type.Code)
	}
	return jen.Add(f.Type.Code)
}

// Resolver maps a catalog name to the Go type emitted for it by the module
// tree.
type Resolver interface {
	Resolve(name catalog.ModuleName) (*jen.Statement, error)
}

// Explorer walks the descriptors of one Typedesc.
type Explorer struct {
	Typedesc *descriptor.Typedesc
	Mode     capability.Mode
	// Runtime is the runtime package import path.
	Runtime string
	// Resolver resolves catalog types in standalone mode.
	Resolver Resolver
	// Prefix is prepended to inline enumeration names in embedded mode.
	Prefix string
}

// Explore resolves d under the root name and returns the Go type along with
// the definitions it needs, in emission order. Definitions are unique by name;
// the first one wins. At the root, non struct results are bound to the root
// name by an AliasDef, and a nil descriptor binds the root name to the empty
// struct and returns a nil TypeRef.
func (e *Explorer) Explore(d descriptor.Descriptor, root string) (*TypeRef, []Definition, error) {
	w := &walk{Explorer: e, seen: make(map[string]bool)}
	if d == nil {
		w.add(&AliasDef{Name: root, Type: TypeRef{Code: jen.Struct()}})
		return nil, w.defs, nil
	}
	ref, err := w.explore(d, root, true)
	if err != nil {
		return nil, nil, err
	}
	return &ref, w.defs, nil
}

// ExploreRoot explores the root descriptor of the Typedesc.
func (e *Explorer) ExploreRoot(root string) (*TypeRef, []Definition, error) {
	var d descriptor.Descriptor
	if e.Typedesc != nil && e.Typedesc.RootPos != nil {
		var err error
		if d, err = e.Typedesc.Get(*e.Typedesc.RootPos); err != nil {
			return nil, nil, NewContractError(root, "invalid root position", err)
		}
	}
	return e.Explore(d, root)
}

type walk struct {
	*Explorer
	defs []Definition
	seen map[string]bool
}

func (w *walk) add(d Definition) {
	if w.seen[d.DefName()] {
		return
	}
	w.seen[d.DefName()] = true
	w.defs = append(w.defs, d)
}

// child explores the descriptor at pos under name.
func (w *walk) child(pos descriptor.TypePos, name string) (TypeRef, error) {
	if w.Typedesc == nil {
		return TypeRef{}, NewContractError(name, "no type descriptor to resolve positions in", nil)
	}
	d, err := w.Typedesc.Get(pos)
	if err != nil {
		return TypeRef{}, NewContractError(name, "unresolvable type position", err)
	}
	return w.explore(d, name, false)
}

// rooted binds ref to the root name when exploring the root.
func (w *walk) rooted(ref TypeRef, root string, isRoot bool) TypeRef {
	if !isRoot {
		return ref
	}
	w.add(&AliasDef{Name: root, Type: ref})
	return TypeRef{Code: jen.Id(root), List: ref.List}
}

func (w *walk) explore(d descriptor.Descriptor, root string, isRoot bool) (TypeRef, error) {
	switch d := d.(type) {
	case *descriptor.Set:
		return w.list(d.TypePos, root, "Set", isRoot)
	case *descriptor.Array:
		return w.list(d.TypePos, root, "Array", isRoot)
	case *descriptor.ObjectShape:
		return w.record(root, d.Elements, false)
	case *descriptor.InputShape:
		return w.record(root, d.Elements, true)
	case *descriptor.NamedTuple:
		elems := make([]descriptor.ShapeElement, len(d.Elements))
		for i, el := range d.Elements {
			elems[i] = descriptor.ShapeElement{Name: el.Name, TypePos: el.TypePos}
		}
		return w.record(root, elems, false)
	case *descriptor.BaseScalar:
		return w.rooted(TypeRef{Code: scalarCode(d.ID, w.Runtime)}, root, isRoot), nil
	case *descriptor.Scalar:
		return w.scalar(d, root, isRoot)
	case *descriptor.Tuple:
		def := &TupleDef{Name: root}
		for i, pos := range d.ElementTypes {
			ref, err := w.child(pos, root+strconv.Itoa(i))
			if err != nil {
				return TypeRef{}, err
			}
			def.Elements = append(def.Elements, ref)
		}
		w.add(def)
		return TypeRef{Code: jen.Id(root)}, nil
	case *descriptor.Enumeration:
		if d.Name == "" && w.Mode == capability.Embedded {
			// Anonymous enumerations are declared under the name of their position.
			w.add(&EnumDef{Name: root, Members: d.Members})
			return TypeRef{Code: jen.Id(root)}, nil
		}
		ref, err := w.enum(d)
		if err != nil {
			return TypeRef{}, err
		}
		return w.rooted(ref, root, isRoot), nil
	case *descriptor.Range:
		inner, err := w.child(d.TypePos, root+"Range")
		if err != nil {
			return TypeRef{}, err
		}
		ref := TypeRef{Code: jen.Qual(w.Runtime, "Range").Types(inner.Code)}
		return w.rooted(ref, root, isRoot), nil
	case *descriptor.MultiRange, *descriptor.TypeAnnotation, *descriptor.Object,
		*descriptor.Compound, *descriptor.SQLRow:
		return TypeRef{}, NewContractError(kindOf(d), "descriptor is not supported", nil)
	default:
		return TypeRef{}, NewContractError(fmt.Sprintf("%T", d), "unknown descriptor", nil)
	}
}

func (w *walk) list(pos descriptor.TypePos, root, suffix string, isRoot bool) (TypeRef, error) {
	inner, err := w.child(pos, root+suffix)
	if err != nil {
		return TypeRef{}, err
	}
	ref := TypeRef{Code: jen.Index().Add(inner.Code), List: true}
	return w.rooted(ref, root, isRoot), nil
}

func (w *walk) record(name string, elements []descriptor.ShapeElement, input bool) (TypeRef, error) {
	def := &RecordDef{Name: name, Input: input}
	used := make(map[string]bool, len(elements))
	for _, el := range elements {
		field := pascal(el.Name)
		for i := 2; used[field]; i++ {
			field = pascal(el.Name) + strconv.Itoa(i)
		}
		used[field] = true
		ref, err := w.child(el.TypePos, name+field)
		if err != nil {
			return TypeRef{}, err
		}
		card := el.Card()
		def.Fields = append(def.Fields, FieldDef{
			Name:        field,
			SchemaName:  el.Name,
			Type:        ref,
			Optional:    card == descriptor.AtMostOne,
			Cardinality: card,
		})
	}
	w.add(def)
	return TypeRef{Code: jen.Id(name)}, nil
}

func (w *walk) scalar(d *descriptor.Scalar, root string, isRoot bool) (TypeRef, error) {
	name := catalog.ParseModuleName(d.Name)
	switch {
	case d.Name == "" || name.IsSystem():
		return w.rooted(TypeRef{Code: scalarCode(d.ID, w.Runtime)}, root, isRoot), nil
	case w.Mode == capability.Embedded:
		if d.BaseTypePos == nil || w.Typedesc == nil {
			return w.rooted(TypeRef{Code: scalarCode(d.ID, w.Runtime)}, root, isRoot), nil
		}
		base, err := w.Typedesc.Get(*d.BaseTypePos)
		if err != nil {
			return TypeRef{}, NewContractError(d.Name, "unresolvable base type position", err)
		}
		return w.explore(base, root, isRoot)
	default:
		code, err := w.resolve(name)
		if err != nil {
			return TypeRef{}, err
		}
		return w.rooted(TypeRef{Code: code}, root, isRoot), nil
	}
}

// enum references an enumeration. Embedded output and system enumerations,
// which have no generated module, are declared inline. Standalone anonymous
// enumerations have no catalog entry and map to strings.
func (w *walk) enum(d *descriptor.Enumeration) (TypeRef, error) {
	if d.Name == "" {
		return TypeRef{Code: jen.String()}, nil
	}
	name := catalog.ParseModuleName(d.Name)
	if w.Mode == capability.Embedded || name.IsSystem() {
		id := w.Prefix + pascal(d.Name)
		w.add(&EnumDef{Name: id, SchemaName: d.Name, Members: d.Members})
		return TypeRef{Code: jen.Id(id)}, nil
	}
	code, err := w.resolve(name)
	return TypeRef{Code: code}, err
}

func (w *walk) resolve(name catalog.ModuleName) (*jen.Statement, error) {
	if w.Resolver == nil {
		return nil, NewContractError(name.String(), "no module tree to resolve catalog types against", nil)
	}
	return w.Resolver.Resolve(name)
}

func kindOf(d descriptor.Descriptor) string {
	if n, err := descriptor.NodeOf(d); err == nil {
		return n.Kind
	}
	return fmt.Sprintf("%T", d)
}
