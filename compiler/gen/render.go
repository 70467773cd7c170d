package gen

import (
	"strconv"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/gelx/compiler/capability"
	"github.com/syssam/gelx/compiler/descriptor"
)

// renderer turns definitions into Go declarations, applying the capability
// attachments enabled for its mode.
type renderer struct {
	runtime string
	opts    capability.Options
	mode    capability.Mode
}

func newRenderer(cfg *Config, mode capability.Mode) *renderer {
	return &renderer{runtime: cfg.Runtime, opts: cfg.Capabilities, mode: mode}
}

func (r *renderer) resolve(requested []capability.Name, target capability.Target) capability.Resolution {
	return capability.Resolve(r.opts, requested, capability.Context{Mode: r.mode, Target: target})
}

// attach renders every attachment of res into the file of its alias, main
// groups first.
func (r *renderer) attach(u *unit, res capability.Resolution, render func(*jen.File, capability.Attachment)) {
	for _, groups := range [][]capability.Group{res.Groups, res.Auxiliary} {
		for _, g := range groups {
			for _, a := range g.Attachments {
				render(u.file(g.Alias), a)
			}
		}
	}
}

// definitions renders defs into u in order.
func (r *renderer) definitions(u *unit, defs []Definition) {
	for _, d := range defs {
		switch d := d.(type) {
		case *AliasDef:
			u.main.Type().Id(d.Name).Op("=").Add(d.Type.Code)
		case *RecordDef:
			r.record(u, d)
		case *TupleDef:
			r.tuple(u, d)
		case *EnumDef:
			r.enum(u, d.Name, d.SchemaName, d.Members)
		}
	}
}

func (r *renderer) tuple(u *unit, d *TupleDef) {
	u.main.Type().Id(d.Name).StructFunc(func(g *jen.Group) {
		for i, el := range d.Elements {
			g.Id("Item" + strconv.Itoa(i)).Add(el.Code)
		}
	})
}

func (r *renderer) record(u *unit, d *RecordDef) {
	target := capability.Record
	if d.Input {
		target = capability.InputRecord
	}
	res := r.resolve(capability.RecordCapabilities, target)
	tagged := res.Has(capability.FieldList)
	u.main.Type().Id(d.Name).StructFunc(func(g *jen.Group) {
		for _, f := range d.Fields {
			field := g.Id(f.Name).Add(f.Code())
			if tagged {
				field.Tag(map[string]string{"gel": f.SchemaName})
			}
		}
	})
	r.attach(u, res, func(f *jen.File, a capability.Attachment) {
		switch a {
		case capability.JSONCodec:
			r.recordJSON(f, d)
		case capability.FieldList:
			r.fieldList(f, d)
		case capability.BuilderType:
			r.builder(f, d)
		case capability.BuilderContract:
			f.Var().Id("_").Qual(r.runtime, "Builder").Types(jen.Id(d.Name)).
				Op("=").Parens(jen.Op("*").Id(d.Name + "Builder")).Call(jen.Nil())
		case capability.QueryContract:
			f.Var().Id("_").Qual(r.runtime, "Queryable").Op("=").Id(d.Name).Values()
		}
	})
}

// args renders the Args glue of an input record.
func (r *renderer) args(f *jen.File, d *RecordDef) {
	rv := receiver(d.Name)
	f.Comment("Args returns the query arguments keyed by parameter name.")
	f.Func().Params(jen.Id(rv).Id(d.Name)).Id("Args").Params().Map(jen.String()).Any().Block(
		jen.Return(jen.Map(jen.String()).Any().Values(jen.DictFunc(func(dict jen.Dict) {
			for _, fd := range d.Fields {
				dict[jen.Lit(fd.SchemaName)] = jen.Id(rv).Dot(fd.Name)
			}
		}))),
	)
}

func (r *renderer) recordJSON(f *jen.File, d *RecordDef) {
	rv := receiver(d.Name)
	shadow := func() jen.Code {
		return jen.Type().Id("shadow").StructFunc(func(g *jen.Group) {
			for _, fd := range d.Fields {
				field := g.Id(fd.Name).Add(fd.Code())
				if fd.Renamed() {
					field.Tag(map[string]string{"json": fd.SchemaName})
				}
			}
		})
	}
	f.Comment("MarshalJSON implements json.Marshaler using the schema field names.")
	f.Func().Params(jen.Id(rv).Id(d.Name)).Id("MarshalJSON").Params().Params(jen.Index().Byte(), jen.Error()).Block(
		shadow(),
		jen.Return(jen.Qual("encoding/json", "Marshal").Call(jen.Id("shadow").Call(jen.Id(rv)))),
	)
	f.Comment("UnmarshalJSON implements json.Unmarshaler using the schema field names.")
	f.Func().Params(jen.Id(rv).Op("*").Id(d.Name)).Id("UnmarshalJSON").Params(jen.Id("data").Index().Byte()).Error().Block(
		shadow(),
		jen.Var().Id("s").Id("shadow"),
		jen.If(
			jen.Err().Op(":=").Qual("encoding/json", "Unmarshal").Call(jen.Id("data"), jen.Op("&").Id("s")),
			jen.Err().Op("!=").Nil(),
		).Block(jen.Return(jen.Err())),
		jen.Op("*").Id(rv).Op("=").Id(d.Name).Call(jen.Id("s")),
		jen.Return(jen.Nil()),
	)
}

func (r *renderer) fieldList(f *jen.File, d *RecordDef) {
	f.Comment("GelFields returns the schema names of the fields in order.")
	f.Func().Params(jen.Id(d.Name)).Id("GelFields").Params().Index().String().Block(
		jen.Return(jen.Index().String().ValuesFunc(func(g *jen.Group) {
			for _, fd := range d.Fields {
				g.Lit(fd.SchemaName)
			}
		})),
	)
}

// builder renders <Name>Builder. Setters follow the field cardinality:
// AtMostOne fields get Set<F>(T) and Set<F>Opt(*T), One fields are required
// by Build, Many fields default to an empty slice.
func (r *renderer) builder(f *jen.File, d *RecordDef) {
	name := d.Name + "Builder"
	var required []FieldDef
	for _, fd := range d.Fields {
		if fd.Cardinality == descriptor.One {
			required = append(required, fd)
		}
	}

	f.Commentf("%s builds %s.", name, d.Name)
	f.Type().Id(name).StructFunc(func(g *jen.Group) {
		g.Id("v").Id(d.Name)
		for _, fd := range required {
			g.Id("has" + fd.Name).Bool()
		}
	})

	f.Commentf("New%s returns a builder with collection fields set to empty.", name)
	f.Func().Id("New"+name).Params().Op("*").Id(name).Block(
		jen.Return(jen.Op("&").Id(name).Values(jen.Dict{
			jen.Id("v"): jen.Id(d.Name).Values(jen.DictFunc(func(dict jen.Dict) {
				for _, fd := range d.Fields {
					if fd.Cardinality == descriptor.Many && fd.Type.List && !fd.Optional {
						dict[jen.Id(fd.Name)] = jen.Add(fd.Type.Code).Values()
					}
				}
			})),
		})),
	)

	setter := func(method string, param jen.Code, body ...jen.Code) {
		f.Func().Params(jen.Id("b").Op("*").Id(name)).Id(method).Params(jen.Id("v").Add(param)).Op("*").Id(name).Block(
			append(body, jen.Return(jen.Id("b")))...,
		)
	}
	for _, fd := range d.Fields {
		field := jen.Id("b").Dot("v").Dot(fd.Name)
		switch {
		case fd.Optional:
			setter("Set"+fd.Name, fd.Type.Code, jen.Add(field).Op("=").Op("&").Id("v"))
			setter("Set"+fd.Name+"Opt", fd.Code(), jen.Add(field).Op("=").Id("v"))
		case fd.Cardinality == descriptor.One:
			setter("Set"+fd.Name, fd.Type.Code,
				jen.Add(field).Op("=").Id("v"),
				jen.Id("b").Dot("has"+fd.Name).Op("=").True(),
			)
		default:
			setter("Set"+fd.Name, fd.Type.Code, jen.Add(field).Op("=").Id("v"))
		}
	}

	f.Commentf("Build returns the %s, or an error when a required field was not set.", d.Name)
	f.Func().Params(jen.Id("b").Op("*").Id(name)).Id("Build").Params().Params(jen.Id(d.Name), jen.Error()).BlockFunc(func(g *jen.Group) {
		for _, fd := range required {
			g.If(jen.Op("!").Id("b").Dot("has" + fd.Name)).Block(
				jen.Return(jen.Id(d.Name).Values(), jen.Qual(r.runtime, "NewMissingFieldError").Call(jen.Lit(d.Name), jen.Lit(fd.SchemaName))),
			)
		}
		g.Return(jen.Id("b").Dot("v"), jen.Nil())
	})
}
