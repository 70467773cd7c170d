package capability

// Target is the kind of type that attachments are resolved for.
type Target uint8

const (
	Record Target = iota
	InputRecord
	Enumeration
	ScalarWrapper
)

// Context carries the per-type inputs of Resolve.
type Context struct {
	Mode   Mode
	Target Target
}

// Group is the set of attachments sharing one alias. Alias is empty for the
// unconditional group.
type Group struct {
	Alias       string
	Attachments []Attachment
}

// Resolution is the result of Resolve. Groups always starts with the
// unconditional group, followed by one group per distinct alias in
// first-seen order.
type Resolution struct {
	Groups    []Group
	Auxiliary []Group
}

// Resolve buckets the attachments of every requested capability that is
// enabled in ctx.Mode by the capability's alias.
func Resolve(opts Options, requested []Name, ctx Context) Resolution {
	res := Resolution{Groups: []Group{{}}}
	index := map[string]int{"": 0}
	auxIndex := map[string]int{}
	for _, name := range requested {
		if !opts.Enabled(name, ctx.Mode) {
			continue
		}
		c, ok := Lookup(name)
		if !ok {
			continue
		}
		attachments := c.attachments(ctx.Target)
		if len(attachments) == 0 {
			continue
		}
		alias := opts.Get(name).Alias
		i, seen := index[alias]
		if !seen {
			i = len(res.Groups)
			index[alias] = i
			res.Groups = append(res.Groups, Group{Alias: alias})
		}
		res.Groups[i].Attachments = append(res.Groups[i].Attachments, attachments...)
		if c.Auxiliary == "" {
			continue
		}
		j, seen := auxIndex[alias]
		if !seen {
			j = len(res.Auxiliary)
			auxIndex[alias] = j
			res.Auxiliary = append(res.Auxiliary, Group{Alias: alias})
		}
		res.Auxiliary[j].Attachments = append(res.Auxiliary[j].Attachments, c.Auxiliary)
	}
	return res
}

func (c Capability) attachments(t Target) []Attachment {
	switch t {
	case Enumeration:
		return c.Enum
	case ScalarWrapper:
		return c.Scalar
	case Record:
		if c.InputOnly {
			return nil
		}
		return c.Record
	default:
		return c.Record
	}
}

// Aliases returns the distinct non-empty aliases of res in first-seen order,
// main groups before auxiliary ones.
func (r Resolution) Aliases() []string {
	var out []string
	seen := map[string]bool{"": true}
	for _, groups := range [][]Group{r.Groups, r.Auxiliary} {
		for _, g := range groups {
			if !seen[g.Alias] {
				seen[g.Alias] = true
				out = append(out, g.Alias)
			}
		}
	}
	return out
}

// Attachments returns the main and auxiliary attachments gated by alias.
func (r Resolution) Attachments(alias string) []Attachment {
	var out []Attachment
	for _, groups := range [][]Group{r.Groups, r.Auxiliary} {
		for _, g := range groups {
			if g.Alias == alias {
				out = append(out, g.Attachments...)
			}
		}
	}
	return out
}

// Has reports whether the attachment is present under any alias.
func (r Resolution) Has(a Attachment) bool {
	_, ok := r.AliasOf(a)
	return ok
}

// AliasOf returns the alias gating the attachment.
func (r Resolution) AliasOf(a Attachment) (string, bool) {
	for _, groups := range [][]Group{r.Groups, r.Auxiliary} {
		for _, g := range groups {
			for _, x := range g.Attachments {
				if x == a {
					return g.Alias, true
				}
			}
		}
	}
	return "", false
}
