package catalog

import (
	"regexp"
	"strings"

	"github.com/syssam/gelx/compiler/descriptor"
)

// DefaultModule is the namespace whose qualifier is dropped from display names.
const DefaultModule = "default"

var ownerPattern = regexp.MustCompile(`\[is (.+)\]`)

// backlinks merges resolved backlinks and stubs. Rows without a target or
// without an owner in their name are skipped.
func backlinks(row TypeRow) []Backlink {
	var out []Backlink
	for _, b := range row.Backlinks {
		stub := b.Stub
		if bl, ok := newBacklink(b, &stub, boolValue(b.IsExclusive)); ok {
			out = append(out, bl)
		}
	}
	for _, b := range row.BacklinkStubs {
		if bl, ok := newBacklink(b, nil, boolValue(b.IsExclusive)); ok {
			out = append(out, bl)
		}
	}
	return out
}

func newBacklink(row BacklinkRow, stub *string, exclusive bool) (Backlink, bool) {
	if row.TargetID == nil {
		return Backlink{}, false
	}
	m := ownerPattern.FindStringSubmatch(row.Name)
	if m == nil {
		return Backlink{}, false
	}
	return Backlink{
		Cardinality: descriptor.ParseCardinality(row.Card),
		Name:        rewriteOwner(row.Name, m[1]),
		TargetID:    *row.TargetID,
		IsExclusive: exclusive,
		Stub:        stub,
	}, true
}

// rewriteOwner drops the default namespace qualifier of the owner embedded in
// a backlink name: "<friends[is default::User]" becomes "<friends[is User]".
func rewriteOwner(name, owner string) string {
	module, local, found := strings.Cut(owner, "::")
	if !found || module != DefaultModule {
		return name
	}
	return ownerPattern.ReplaceAllLiteralString(name, "[is "+local+"]")
}
