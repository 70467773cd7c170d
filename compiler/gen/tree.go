package gen

import (
	"path"
	"strings"

	"github.com/dave/jennifer/jen"
	"github.com/google/uuid"

	"github.com/syssam/gelx/compiler/capability"
	"github.com/syssam/gelx/compiler/catalog"
)

// Module is one namespace level of the output tree. Children keep their
// insertion order.
type Module struct {
	Name string

	children []*Module
	index    map[string]*Module
	types    []catalog.TypeNode
	byName   map[string]catalog.TypeNode
}

func newModule(name string) *Module {
	return &Module{
		Name:   name,
		index:  make(map[string]*Module),
		byName: make(map[string]catalog.TypeNode),
	}
}

// Children returns the child namespaces in insertion order.
func (m *Module) Children() []*Module { return m.children }

// Types returns the catalog types declared directly in the namespace.
func (m *Module) Types() []catalog.TypeNode { return m.types }

// Child returns the child namespace with the given name.
func (m *Module) Child(name string) (*Module, bool) {
	c, ok := m.index[name]
	return c, ok
}

// IsLeaf reports whether the namespace has no children.
func (m *Module) IsLeaf() bool { return len(m.children) == 0 }

// IsUserDefined reports whether the namespace or one of its descendants holds
// a type outside the system namespaces.
func (m *Module) IsUserDefined() bool {
	for _, t := range m.types {
		if catalog.ParseModuleName(t.Name()).IsUserDefined() {
			return true
		}
	}
	for _, c := range m.children {
		if c.IsUserDefined() {
			return true
		}
	}
	return false
}

func (m *Module) child(name string) *Module {
	if c, ok := m.index[name]; ok {
		return c
	}
	c := newModule(name)
	m.index[name] = c
	m.children = append(m.children, c)
	return c
}

// Tree groups catalog types by namespace. Cross-module references are kept as
// catalog names and resolved to Go identifiers on demand.
type Tree struct {
	cfg     *Config
	graph   *catalog.Graph
	root    *Module
	ids     map[uuid.UUID]bool
	skipped []catalog.TypeNode
}

// NewTree returns an empty tree.
func NewTree(cfg *Config, g *catalog.Graph) *Tree {
	if g == nil {
		g = catalog.NewGraph()
	}
	return &Tree{cfg: cfg, graph: g, root: newModule(""), ids: make(map[uuid.UUID]bool)}
}

// BuildTree inserts every node of g.
func BuildTree(cfg *Config, g *catalog.Graph) *Tree {
	t := NewTree(cfg, g)
	for _, n := range g.Nodes() {
		t.Insert(n)
	}
	return t
}

// Insert places n at the namespace given by its name and reports whether it
// was added. Inserting the same id twice is a no-op. Names with a generic
// parameter, like "array<default::User>", are not placed and are reported by
// Skipped.
func (t *Tree) Insert(n catalog.TypeNode) bool {
	if t.ids[n.ID()] {
		return false
	}
	name := catalog.ParseModuleName(n.Name())
	if name.Child != nil {
		t.skipped = append(t.skipped, n)
		t.ids[n.ID()] = true
		return false
	}
	m := t.root
	for _, seg := range name.Modules {
		m = m.child(seg)
	}
	m.types = append(m.types, n)
	m.byName[n.Name()] = n
	t.ids[n.ID()] = true
	return true
}

// Root returns the root namespace.
func (t *Tree) Root() *Module { return t.root }

// Skipped returns the nodes that Insert did not place.
func (t *Tree) Skipped() []catalog.TypeNode { return t.skipped }

// Lookup returns the namespace at the given path.
func (t *Tree) Lookup(segments []string) (*Module, bool) {
	m := t.root
	for _, seg := range segments {
		c, ok := m.Child(seg)
		if !ok {
			return nil, false
		}
		m = c
	}
	return m, true
}

// location is where a namespace is emitted.
type location struct {
	// dir is the package directory relative to the output directory.
	dir     string
	pkgName string
	pkgPath string
	// stem is the output path without extension.
	stem string
	// prefix is prepended to identifiers of leaf namespaces sharing their
	// parent's package.
	prefix string
}

// locate returns the location of the namespace at segments. The root emits
// index.go, a namespace with children emits <name>/index.go as its own
// package, and a leaf emits <name>.go in its parent's package. Unknown
// namespaces are treated as leaves.
func (t *Tree) locate(segments []string) location {
	if len(segments) == 0 {
		return location{pkgName: t.rootPackage(), pkgPath: t.cfg.Package, stem: "index"}
	}
	last := segments[len(segments)-1]
	parent := t.locate(segments[:len(segments)-1])
	if m, ok := t.Lookup(segments); ok && !m.IsLeaf() {
		dir := path.Join(parent.dir, snake(last))
		return location{
			dir:     dir,
			pkgName: packageName(last),
			pkgPath: t.cfg.modulePath(dir),
			stem:    path.Join(dir, "index"),
		}
	}
	loc := location{
		dir:     parent.dir,
		pkgName: parent.pkgName,
		pkgPath: parent.pkgPath,
		stem:    path.Join(parent.dir, snake(last)),
	}
	if last != catalog.DefaultModule {
		loc.prefix = pascal(last)
	}
	return loc
}

func (t *Tree) rootPackage() string {
	if t.cfg.Package == "" {
		return "db"
	}
	return packageName(path.Base(t.cfg.Package))
}

// importNames maps the import path of every namespace package to its package
// name.
func (t *Tree) importNames() map[string]string {
	names := map[string]string{t.cfg.Runtime: packageName(path.Base(t.cfg.Runtime))}
	var walk func(m *Module, segments []string)
	walk = func(m *Module, segments []string) {
		if !m.IsLeaf() {
			loc := t.locate(segments)
			names[loc.pkgPath] = loc.pkgName
		}
		for _, c := range m.children {
			walk(c, append(segments[:len(segments):len(segments)], c.Name))
		}
	}
	walk(t.root, nil)
	return names
}

// ident returns the Go identifier of the type with the given local name
// declared in the namespace at segments.
func (t *Tree) ident(segments []string, local string) string {
	return t.locate(segments).prefix + pascal(local)
}

// Resolve implements Resolver. Scalars without a wrapper resolve to the
// runtime's dynamic type.
func (t *Tree) Resolve(name catalog.ModuleName) (*jen.Statement, error) {
	var node catalog.TypeNode
	if m, ok := t.Lookup(name.Modules); ok {
		node = m.byName[name.String()]
	}
	if node == nil {
		return nil, NewContractError(name.String(), "type is missing from the schema catalog", nil)
	}
	if s, ok := node.(*catalog.Scalar); ok {
		if _, wrapped := t.material(s); !wrapped {
			return jen.Qual(t.cfg.Runtime, "Dynamic"), nil
		}
	}
	loc := t.locate(name.Modules)
	return jen.Qual(loc.pkgPath, loc.prefix+pascal(name.Name)), nil
}

// material returns the built-in scalar a concrete user scalar aliases,
// following base scalars until a built-in is found.
func (t *Tree) material(s *catalog.Scalar) (ScalarType, bool) {
	if s.IsAbstract {
		return ScalarType{}, false
	}
	seen := make(map[uuid.UUID]bool)
	var find func(s *catalog.Scalar) (ScalarType, bool)
	find = func(s *catalog.Scalar) (ScalarType, bool) {
		if seen[s.TypeID] {
			return ScalarType{}, false
		}
		seen[s.TypeID] = true
		if s.MaterialID != nil {
			if st, ok := LookupScalar(*s.MaterialID); ok {
				return st, true
			}
		}
		for _, id := range s.Bases {
			if st, ok := LookupScalar(id); ok {
				return st, true
			}
			if n, ok := t.graph.Get(id); ok {
				if base, ok := n.(*catalog.Scalar); ok {
					if st, ok := find(base); ok {
						return st, true
					}
				}
			}
		}
		return ScalarType{}, false
	}
	return find(s)
}

// Emit adds the file of every user defined namespace to out. The root is
// always emitted and carries the Globals type.
func (t *Tree) Emit(out *Output, globals []catalog.GlobalRow) error {
	hints := t.importNames()
	r := newRenderer(t.cfg, capability.Standalone)
	var walk func(m *Module, segments []string) error
	walk = func(m *Module, segments []string) error {
		loc := t.locate(segments)
		u := newUnit(loc.pkgPath, loc.pkgName, loc.stem, hints)
		if !m.IsLeaf() {
			t.packageDoc(u, m, segments)
		}
		if len(segments) == 0 {
			r.globals(u, globals)
			t.reexportDefault(u)
		}
		for _, n := range m.types {
			t.declare(r, u, segments, n)
		}
		if err := u.emit(out); err != nil {
			return err
		}
		for _, c := range m.children {
			if !c.IsUserDefined() {
				continue
			}
			if err := walk(c, append(segments[:len(segments):len(segments)], c.Name)); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(t.root, nil)
}

// declare renders one catalog type. Objects and composite types are only
// reachable through query shapes and emit nothing here.
func (t *Tree) declare(r *renderer, u *unit, segments []string, n catalog.TypeNode) {
	name := catalog.ParseModuleName(n.Name())
	switch n := n.(type) {
	case *catalog.Scalar:
		if st, ok := t.material(n); ok {
			r.scalar(u, t.ident(segments, name.Name), n, st)
		}
	case *catalog.Enum:
		r.enum(u, t.ident(segments, name.Name), n.TypeName, n.Values)
	}
}

func (t *Tree) packageDoc(u *unit, m *Module, segments []string) {
	var children []string
	for _, c := range m.children {
		if c.IsUserDefined() && !c.IsLeaf() {
			children = append(children, t.locate(append(segments[:len(segments):len(segments)], c.Name)).dir)
		}
	}
	doc := "Package " + u.pkgName + " holds the types of the "
	if len(segments) == 0 {
		doc += "schema."
	} else {
		doc += strings.Join(segments, "::") + " namespace."
	}
	if len(children) > 0 {
		doc += "\n\nNested namespaces: " + strings.Join(children, ", ") + "."
	}
	u.main.PackageComment(commentLines(doc))
}

// reexportDefault aliases the types of the default namespace in the root
// package when default is a package of its own.
func (t *Tree) reexportDefault(u *unit) {
	m, ok := t.root.Child(catalog.DefaultModule)
	if !ok || m.IsLeaf() || !m.IsUserDefined() {
		return
	}
	segments := []string{catalog.DefaultModule}
	loc := t.locate(segments)
	for _, n := range m.types {
		name := catalog.ParseModuleName(n.Name())
		ident := t.ident(segments, name.Name)
		switch n := n.(type) {
		case *catalog.Scalar:
			if _, ok := t.material(n); ok {
				u.main.Type().Id(ident).Op("=").Qual(loc.pkgPath, ident)
			}
		case *catalog.Enum:
			u.main.Type().Id(ident).Op("=").Qual(loc.pkgPath, ident)
			consts := memberNames(ident, n.Values)
			if len(consts) > 0 {
				u.main.Const().DefsFunc(func(g *jen.Group) {
					for _, c := range consts {
						g.Id(c).Op("=").Qual(loc.pkgPath, c)
					}
				})
			}
		}
	}
}

// commentLines prefixes every line of s for jen.PackageComment.
func commentLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l == "" {
			lines[i] = "//"
			continue
		}
		lines[i] = "// " + l
	}
	return strings.Join(lines, "\n")
}
