package gen

import (
	"go/token"
	"slices"
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	rules    = ruleset()
	acronyms = make(map[string]struct{})
)

func ruleset() *inflect.Ruleset {
	rules := inflect.NewDefaultRuleset()
	list := []string{"ACL", "API", "ASCII", "CPU", "CSS", "DNS", "EOF", "GUID", "HTML", "HTTP", "HTTPS", "ID", "IP", "JSON", "LHS", "QPS", "RAM", "RHS", "RPC", "SLA", "SMTP", "SQL", "SSH", "TCP", "TLS", "TTL", "UDP", "UI", "UID", "URI", "URL", "UTF8", "UUID", "VM", "XML", "XMPP", "XSRF", "XSS"}
	// Longer acronyms first so "UUID" is not split by "ID".
	slices.SortStableFunc(list, func(a, b string) int { return len(b) - len(a) })
	for _, w := range list {
		acronyms[w] = struct{}{}
		rules.AddAcronym(w)
	}
	return rules
}

// words splits s on every character that cannot appear in a Go identifier.
func words(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// pascal converts a schema name to an exported Go identifier:
// "user_id" -> "UserID", "default::Color" -> "DefaultColor", "@note" -> "Note".
func pascal(s string) string {
	var b strings.Builder
	// Casers are stateful and not safe for concurrent use.
	title := cases.Title(language.Und, cases.NoLower)
	for _, w := range words(s) {
		if _, ok := acronyms[strings.ToUpper(w)]; ok {
			b.WriteString(strings.ToUpper(w))
			continue
		}
		b.WriteString(title.String(w))
	}
	return exported(b.String())
}

// exported makes s a valid exported identifier.
func exported(s string) string {
	if s == "" {
		return "X"
	}
	if r := rune(s[0]); !unicode.IsLetter(r) {
		return "X" + s
	}
	return s
}

// snake converts a name to a lower case, underscore separated file or package
// name: "GetUser" -> "get_user", "get-user" -> "get_user".
func snake(s string) string {
	var b strings.Builder
	for _, r := range rules.Underscore(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		case b.Len() > 0 && !strings.HasSuffix(b.String(), "_"):
			b.WriteByte('_')
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// packageName returns a valid package name for a namespace segment.
// Keywords get a trailing underscore: "default" -> "default_".
func packageName(segment string) string {
	name := strings.ReplaceAll(snake(segment), "_", "")
	if name == "" {
		name = "x"
	}
	if !unicode.IsLetter(rune(name[0])) {
		name = "x" + name
	}
	if token.IsKeyword(name) {
		name += "_"
	}
	return name
}

// receiver returns the receiver name for a type: "ColorBuilder" -> "b".
func receiver(typeName string) string {
	if strings.HasSuffix(typeName, "Builder") {
		return "b"
	}
	for _, r := range typeName {
		return string(unicode.ToLower(r))
	}
	return "v"
}
