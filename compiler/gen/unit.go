package gen

import (
	"bytes"
	"path"

	"github.com/dave/jennifer/jen"
	"golang.org/x/tools/imports"
)

// Header is the first comment of every generated file.
const Header = "Code generated by gelx. DO NOT EDIT."

// unit is one generated Go file plus the companion files holding its alias
// gated attachments. Companions are named <stem>_<alias>.go and carry a
// "//go:build <alias>" constraint.
type unit struct {
	pkgPath string
	pkgName string
	stem    string
	hints   map[string]string

	main       *jen.File
	companions map[string]*jen.File
	aliases    []string
}

// newUnit creates a unit for the package pkgName at import path pkgPath. An
// empty pkgPath makes a file that is not part of the output tree. stem is the
// output path without the .go extension.
func newUnit(pkgPath, pkgName, stem string, hints map[string]string) *unit {
	u := &unit{
		pkgPath:    pkgPath,
		pkgName:    pkgName,
		stem:       stem,
		hints:      hints,
		companions: make(map[string]*jen.File),
	}
	u.main = u.newFile("")
	return u
}

func (u *unit) newFile(alias string) *jen.File {
	var f *jen.File
	if u.pkgPath != "" {
		f = jen.NewFilePathName(u.pkgPath, u.pkgName)
	} else {
		f = jen.NewFile(u.pkgName)
	}
	f.HeaderComment(Header)
	if alias != "" {
		f.HeaderComment("//go:build " + alias)
	}
	f.ImportNames(u.hints)
	return f
}

// file returns the file that code gated by alias goes to.
func (u *unit) file(alias string) *jen.File {
	if alias == "" {
		return u.main
	}
	f, ok := u.companions[alias]
	if !ok {
		f = u.newFile(alias)
		u.companions[alias] = f
		u.aliases = append(u.aliases, alias)
	}
	return f
}

// paths returns the output path of the main file followed by its companions.
func (u *unit) paths() []string {
	out := []string{u.stem + ".go"}
	for _, alias := range u.aliases {
		out = append(out, companionPath(u.stem, alias))
	}
	return out
}

func companionPath(stem, alias string) string {
	return stem + "_" + snake(alias) + ".go"
}

// emit formats every file of the unit and adds it to out.
func (u *unit) emit(out *Output) error {
	files := []*jen.File{u.main}
	for _, alias := range u.aliases {
		files = append(files, u.companions[alias])
	}
	for i, p := range u.paths() {
		src, err := format(p, files[i])
		if err != nil {
			return err
		}
		if err := out.Add(p, src); err != nil {
			return err
		}
	}
	return nil
}

// format renders f and runs goimports over the result.
func format(name string, f *jen.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, NewGenerationError("render", name, "", err)
	}
	src, err := imports.Process(path.Base(name), buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, NewGenerationError("format", name, "goimports rejected the rendered source", err)
	}
	return src, nil
}
