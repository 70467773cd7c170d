package catalog

import (
	"slices"
	"strings"
)

// SystemNamespaces are the top level namespaces owned by the database.
var SystemNamespaces = []string{"std", "sys", "cfg", "schema", "multirange", "ext"}

// IsSystemNamespace reports whether name is one of SystemNamespaces.
func IsSystemNamespace(name string) bool {
	return slices.Contains(SystemNamespaces, name)
}

// ModuleName is a parsed "a::b::Name" path. Child holds one level of generic
// parameter nesting, e.g. the "default::User" of "array<default::User>".
type ModuleName struct {
	Modules []string
	Name    string
	Child   *ModuleName
}

// ParseModuleName decomposes a fully qualified name.
func ParseModuleName(s string) ModuleName {
	var child *ModuleName
	value := s
	if strings.HasSuffix(value, ">") {
		if parent, inner, found := strings.Cut(value, "<"); found {
			c := ParseModuleName(strings.TrimRight(inner, ">"))
			child = &c
			value = parent
		}
	}
	parts := strings.Split(value, "::")
	return ModuleName{
		Modules: parts[:len(parts)-1],
		Name:    parts[len(parts)-1],
		Child:   child,
	}
}

// String returns the original qualified name.
func (m ModuleName) String() string {
	name := m.Name
	if len(m.Modules) > 0 {
		name = strings.Join(m.Modules, "::") + "::" + m.Name
	}
	if m.Child != nil {
		name += "<" + m.Child.String() + ">"
	}
	return name
}

// IsSystem reports whether the top namespace segment is a system namespace.
func (m ModuleName) IsSystem() bool {
	return len(m.Modules) > 0 && IsSystemNamespace(m.Modules[0])
}

// IsUserDefined is the negation of IsSystem.
func (m ModuleName) IsUserDefined() bool {
	return !m.IsSystem()
}
