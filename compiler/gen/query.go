package gen

import (
	"path"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/gelx/compiler/capability"
	"github.com/syssam/gelx/compiler/descriptor"
)

// QuerySource is one query and its compiled signature.
type QuerySource struct {
	// Name is the query name, usually the file stem.
	Name string
	Text string
	// Description is the signature returned by the introspection service.
	Description *descriptor.CommandDescription
}

// queryEmitter renders the types and wrappers of one query into a unit.
type queryEmitter struct {
	renderer *renderer
	names    Names
	explorer Explorer
}

// EmitQuery adds the package of q to out. The package is named after the
// query and lives in <name>/<name>.go under the output directory.
func (t *Tree) EmitQuery(out *Output, q QuerySource) error {
	dir := snake(q.Name)
	if dir == "" {
		return NewConfigError("Query", q.Name, "query name has no identifier characters")
	}
	u := newUnit(t.cfg.modulePath(dir), packageName(q.Name), path.Join(dir, dir), t.importNames())
	e := &queryEmitter{
		renderer: newRenderer(t.cfg, capability.Standalone),
		names:    t.cfg.Names,
		explorer: Explorer{Mode: capability.Standalone, Runtime: t.cfg.Runtime, Resolver: t},
	}
	u.main.PackageComment(commentLines("Package " + u.pkgName + " wraps the " + q.Name + " query."))
	if err := e.emit(u, q); err != nil {
		return err
	}
	return u.emit(out)
}

// Inline renders q as one self-contained file of package pkg. Every
// identifier is prefixed with the PascalCase query name and catalog types are
// declared inline, so the file needs no other generated package.
func Inline(cfg *Config, q QuerySource, pkg string) ([]byte, error) {
	prefix := pascal(q.Name)
	n := cfg.Names
	e := &queryEmitter{
		renderer: newRenderer(cfg, capability.Embedded),
		names: Names{
			Input:       prefix + n.Input,
			Output:      prefix + n.Output,
			Query:       prefix + n.Query,
			Transaction: prefix + n.Transaction,
			Statement:   prefix + n.Statement,
		},
		explorer: Explorer{Mode: capability.Embedded, Runtime: cfg.Runtime, Prefix: prefix},
	}
	name := snake(q.Name) + "_gelx"
	u := newUnit("", pkg, name, map[string]string{cfg.Runtime: packageName(path.Base(cfg.Runtime))})
	if err := e.emit(u, q); err != nil {
		return nil, err
	}
	return format(name+".go", u.main)
}

func (e *queryEmitter) emit(u *unit, q QuerySource) error {
	if q.Description == nil {
		return NewContractError(q.Name, "query has no compiled description", nil)
	}
	inv, ok := InvocationFor(q.Description.ResultCardinality)
	if !ok {
		return NewContractError(q.Name, "unknown result cardinality "+q.Description.ResultCardinality.String(), nil)
	}

	u.main.Commentf("%s is the query text.", e.names.Statement)
	u.main.Const().Id(e.names.Statement).Op("=").Lit(q.Text)

	input := e.explorer
	input.Typedesc = &q.Description.Input
	inRef, inDefs, err := input.ExploreRoot(e.names.Input)
	if err != nil {
		return err
	}
	var args *RecordDef
	if inRef != nil {
		for _, d := range inDefs {
			if rec, ok := d.(*RecordDef); ok && rec.Name == e.names.Input && rec.Input {
				args = rec
			}
		}
		if args == nil {
			return NewContractError(e.names.Input, "query arguments are not an input shape", nil)
		}
	}
	e.renderer.definitions(u, inDefs)
	if args != nil {
		e.renderer.args(u.main, args)
	}

	output := e.explorer
	output.Typedesc = &q.Description.Output
	_, outDefs, err := output.ExploreRoot(e.names.Output)
	if err != nil {
		return err
	}
	e.renderer.definitions(u, outDefs)

	// The wrappers are always generated. An aliased query capability moves
	// them into its companion file.
	res := e.renderer.resolve([]capability.Name{capability.Query}, capability.Record)
	alias, _ := res.AliasOf(capability.FieldList)
	e.wrappers(u.file(alias), inv, args != nil)
	return nil
}

// wrappers renders the Query and Transaction functions. The invocation
// decides both the returned shape and the Querier method.
func (e *queryEmitter) wrappers(f *jen.File, inv Invocation, hasInput bool) {
	rt := e.renderer.runtime
	result := inv.Wrap(jen.Id(e.names.Output))
	params := func(querier string) []jen.Code {
		p := []jen.Code{
			jen.Id("ctx").Qual("context", "Context"),
			jen.Id(querier).Qual(rt, "Querier"),
		}
		if hasInput {
			p = append(p, jen.Id("in").Id(e.names.Input))
		}
		return p
	}
	args := jen.Nil()
	if hasInput {
		args = jen.Id("in").Dot("Args").Call()
	}

	f.Commentf("%s runs %s and returns its result.", e.names.Query, e.names.Statement)
	f.Func().Id(e.names.Query).Params(params("c")...).Params(result, jen.Error()).BlockFunc(func(g *jen.Group) {
		call := func(method string, out ...jen.Code) *jen.Statement {
			a := []jen.Code{jen.Id("ctx"), jen.Id(e.names.Statement)}
			a = append(a, out...)
			return jen.Id("c").Dot(method).Call(append(a, args)...)
		}
		switch {
		case inv.Method == "Execute":
			g.Return(jen.Nil(), call(inv.Method))
		case inv.Shape == ShapeOptional:
			g.Var().Id("out").Id(e.names.Output)
			g.List(jen.Id("found"), jen.Err()).Op(":=").Add(call(inv.Method, jen.Op("&").Id("out")))
			g.If(jen.Err().Op("!=").Nil().Op("||").Op("!").Id("found")).Block(jen.Return(jen.Nil(), jen.Err()))
			g.Return(jen.Op("&").Id("out"), jen.Nil())
		default:
			g.Var().Id("out").Add(result)
			g.Err().Op(":=").Add(call(inv.Method, jen.Op("&").Id("out")))
			g.Return(jen.Id("out"), jen.Err())
		}
	})

	call := []jen.Code{jen.Id("ctx"), jen.Id("tx")}
	if hasInput {
		call = append(call, jen.Id("in"))
	}
	f.Commentf("%s runs %s inside the transaction tx.", e.names.Transaction, e.names.Statement)
	f.Func().Id(e.names.Transaction).Params(params("tx")...).Params(result, jen.Error()).Block(
		jen.Return(jen.Id(e.names.Query).Call(call...)),
	)
}
