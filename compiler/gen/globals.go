package gen

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/gelx/compiler/capability"
	"github.com/syssam/gelx/compiler/catalog"
	"github.com/syssam/gelx/compiler/descriptor"
)

// GlobalsName is the name of the generated globals type.
const GlobalsName = "Globals"

// globalsRecord maps the representable globals to a record. Globals derived
// from an alias, without a target, or whose target is not a built-in scalar
// are left out. It returns nil when nothing is representable.
func (r *renderer) globalsRecord(globals []catalog.GlobalRow) *RecordDef {
	var candidates []catalog.GlobalRow
	locals := make(map[string]int)
	for _, g := range globals {
		if g.Target == nil || (g.Target.IsFromAlias != nil && *g.Target.IsFromAlias) {
			continue
		}
		if _, ok := LookupScalar(g.Target.ID); !ok {
			continue
		}
		candidates = append(candidates, g)
		locals[pascal(catalog.ParseModuleName(g.Name).Name)]++
	}
	if len(candidates) == 0 {
		return nil
	}
	def := &RecordDef{Name: GlobalsName, Input: true}
	for _, g := range candidates {
		field := pascal(catalog.ParseModuleName(g.Name).Name)
		if locals[field] > 1 {
			field = pascal(g.Name)
		}
		code := scalarCode(g.Target.ID, r.runtime)
		fd := FieldDef{Name: field, SchemaName: g.Name, Type: TypeRef{Code: code}, Optional: true, Cardinality: descriptor.AtMostOne}
		if g.IsMany() {
			fd.Type = TypeRef{Code: jen.Index().Add(code), List: true}
			fd.Optional = false
			fd.Cardinality = descriptor.Many
		}
		def.Fields = append(def.Fields, fd)
	}
	return def
}

// globals renders the Globals type with its Map, Apply and IntoClient
// methods. An aliased query capability moves Apply and IntoClient into its
// companion file.
func (r *renderer) globals(u *unit, globals []catalog.GlobalRow) {
	def := r.globalsRecord(globals)
	if def == nil {
		return
	}
	rv := receiver(def.Name)
	u.main.Commentf("%s holds the session globals of the schema.", def.Name)
	r.record(u, def)

	set := func(target func(key jen.Code, value jen.Code) jen.Code) []jen.Code {
		var stmts []jen.Code
		for _, fd := range def.Fields {
			field := jen.Id(rv).Dot(fd.Name)
			value := jen.Add(field)
			if fd.Optional {
				value = jen.Op("*").Add(field)
			}
			stmts = append(stmts, jen.If(jen.Add(field).Op("!=").Nil()).Block(target(jen.Lit(fd.SchemaName), value)))
		}
		return stmts
	}

	u.main.Comment("Map returns the globals that are set, keyed by their schema name.")
	u.main.Func().Params(jen.Id(rv).Id(def.Name)).Id("Map").Params().Map(jen.String()).Any().BlockFunc(func(g *jen.Group) {
		g.Id("m").Op(":=").Make(jen.Map(jen.String()).Any(), jen.Lit(len(def.Fields)))
		for _, s := range set(func(key, value jen.Code) jen.Code {
			return jen.Id("m").Index(key).Op("=").Add(value)
		}) {
			g.Add(s)
		}
		g.Return(jen.Id("m"))
	})

	res := r.resolve([]capability.Name{capability.Query}, capability.Record)
	alias, _ := res.AliasOf(capability.FieldList)
	f := u.file(alias)
	f.Comment("Apply sets every global that is set on m.")
	f.Func().Params(jen.Id(rv).Id(def.Name)).Id("Apply").Params(jen.Id("m").Qual(r.runtime, "GlobalsModifier")).Block(
		set(func(key, value jen.Code) jen.Code {
			return jen.Id("m").Dot("Set").Call(key, value)
		})...,
	)
	f.Comment("IntoClient opens a session with connect and applies the globals to it.")
	f.Func().Params(jen.Id(rv).Id(def.Name)).Id("IntoClient").Params(
		jen.Id("ctx").Qual("context", "Context"),
		jen.Id("connect").Qual(r.runtime, "Connector"),
	).Params(jen.Qual(r.runtime, "Client"), jen.Error()).Block(
		jen.List(jen.Id("c"), jen.Err()).Op(":=").Id("connect").Call(jen.Id("ctx")),
		jen.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Nil(), jen.Err())),
		jen.Return(jen.Id("c").Dot("WithGlobals").Call(jen.Id(rv).Dot("Map").Call()), jen.Nil()),
	)
}
