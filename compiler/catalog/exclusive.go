package catalog

import "strings"

// ExclusivityGroup is one or more pointers jointly constrained to unique
// values. Single groups have exactly one member.
type ExclusivityGroup struct {
	Pointers []Pointer
	// Compound is set for parenthesised targets, even with one member.
	Compound bool
}

// IsCompound reports whether the target was a parenthesised tuple.
func (g ExclusivityGroup) IsCompound() bool {
	return g.Compound
}

// parseExclusive parses a constraint target expression. A bare pointer name,
// with or without a leading dot, yields a single group; "(.a, .b)" and "(.a)"
// yield a compound group of the members that resolve. ok is false when
// nothing resolves.
func parseExclusive(target string, pointers map[string]Pointer) (ExclusivityGroup, bool) {
	if p, found := pointers[strings.TrimPrefix(target, ".")]; found {
		return ExclusivityGroup{Pointers: []Pointer{p}}, true
	}
	if !strings.HasPrefix(target, "(") || !strings.HasSuffix(target, ")") {
		return ExclusivityGroup{}, false
	}
	inner := strings.Trim(target, "()")
	var members []Pointer
	for _, part := range strings.Split(inner, " ") {
		name := strings.TrimSpace(part)
		name = strings.TrimLeft(name, ".")
		name = strings.TrimRight(name, ",")
		if p, found := pointers[name]; found {
			members = append(members, p)
		}
	}
	if len(members) == 0 {
		return ExclusivityGroup{}, false
	}
	return ExclusivityGroup{Pointers: members, Compound: true}, true
}
