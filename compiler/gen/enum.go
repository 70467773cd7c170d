package gen

import (
	"strconv"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/gelx/compiler/capability"
)

// memberNames returns the constant name of every member. Members keep their
// schema spelling as the constant value; names that collide after
// normalization get a numeric suffix.
func memberNames(enum string, members []string) []string {
	names := make([]string, len(members))
	used := make(map[string]bool, len(members))
	for i, m := range members {
		name := enum + pascal(m)
		for n := 2; used[name]; n++ {
			name = enum + pascal(m) + strconv.Itoa(n)
		}
		used[name] = true
		names[i] = name
	}
	return names
}

// enum renders a string enumeration and its attachments.
func (r *renderer) enum(u *unit, name, schemaName string, members []string) {
	consts := memberNames(name, members)
	if schemaName == "" {
		u.main.Commentf("%s is an anonymous enumeration.", name)
	} else {
		u.main.Commentf("%s is the %s enumeration.", name, schemaName)
	}
	u.main.Type().Id(name).String()
	if len(members) > 0 {
		u.main.Const().DefsFunc(func(g *jen.Group) {
			for i, m := range members {
				g.Id(consts[i]).Id(name).Op("=").Lit(m)
			}
		})
	}

	res := r.resolve(capability.EnumCapabilities, capability.Enumeration)
	r.attach(u, res, func(f *jen.File, a capability.Attachment) {
		switch a {
		case capability.TextCodec:
			r.enumText(f, name, schemaName, consts)
		case capability.ValueList:
			f.Comment("GelValues returns the schema spelling of every member.")
			f.Func().Params(jen.Id(name)).Id("GelValues").Params().Index().String().Block(
				jen.Return(jen.Index().String().ValuesFunc(func(g *jen.Group) {
					for _, m := range members {
						g.Lit(m)
					}
				})),
			)
		case capability.QueryContract:
			f.Var().Id("_").Qual(r.runtime, "Enum").Op("=").Id(name).Call(jen.Lit(""))
		case capability.StringMethods:
			r.enumStrings(f, name, schemaName, members, consts)
		}
	})
}

// isMember renders a switch over the members of an enumeration that runs
// match for members and falls through otherwise.
func isMember(value jen.Code, consts []string, match ...jen.Code) *jen.Statement {
	if len(consts) == 0 {
		return jen.Null()
	}
	return jen.Switch(value).Block(
		jen.CaseFunc(func(g *jen.Group) {
			for _, c := range consts {
				g.Id(c)
			}
		}).Block(match...),
	)
}

func (r *renderer) enumText(f *jen.File, name, schemaName string, consts []string) {
	rv := receiver(name)
	f.Comment("MarshalText implements encoding.TextMarshaler.")
	f.Func().Params(jen.Id(rv).Id(name)).Id("MarshalText").Params().Params(jen.Index().Byte(), jen.Error()).Block(
		jen.Return(jen.Index().Byte().Call(jen.Id(rv)), jen.Nil()),
	)
	f.Comment("UnmarshalText implements encoding.TextUnmarshaler. Unknown members are rejected.")
	f.Func().Params(jen.Id(rv).Op("*").Id(name)).Id("UnmarshalText").Params(jen.Id("text").Index().Byte()).Error().BlockFunc(func(g *jen.Group) {
		if len(consts) > 0 {
			g.Id("parsed").Op(":=").Id(name).Call(jen.Id("text"))
			g.Add(isMember(jen.Id("parsed"), consts,
				jen.Op("*").Id(rv).Op("=").Id("parsed"),
				jen.Return(jen.Nil()),
			))
		}
		g.Return(jen.Qual(r.runtime, "NewInvalidEnumError").Call(jen.Lit(schemaName), jen.String().Call(jen.Id("text"))))
	})
}

func (r *renderer) enumStrings(f *jen.File, name, schemaName string, members, consts []string) {
	rv := receiver(name)
	f.Comment("String returns the schema spelling of the member.")
	f.Func().Params(jen.Id(rv).Id(name)).Id("String").Params().String().Block(
		jen.Return(jen.String().Call(jen.Id(rv))),
	)

	f.Comment("IsValid reports whether the value is a member of the enumeration.")
	f.Func().Params(jen.Id(rv).Id(name)).Id("IsValid").Params().Bool().Block(
		isMember(jen.Id(rv), consts, jen.Return(jen.True())),
		jen.Return(jen.False()),
	)

	f.Commentf("Parse%s converts a schema spelling into a %s.", name, name)
	f.Func().Id("Parse"+name).Params(jen.Id("s").String()).Params(jen.Id(name), jen.Error()).Block(
		jen.Id("v").Op(":=").Id(name).Call(jen.Id("s")),
		jen.If(jen.Op("!").Id("v").Dot("IsValid").Call()).Block(
			jen.Return(jen.Lit(""), jen.Qual(r.runtime, "NewInvalidEnumError").Call(jen.Lit(schemaName), jen.Id("s"))),
		),
		jen.Return(jen.Id("v"), jen.Nil()),
	)

	for i, c := range consts {
		method := "Is" + c[len(name):]
		if method == "IsValid" {
			continue
		}
		f.Commentf("%s reports whether the value is %s.", method, members[i])
		f.Func().Params(jen.Id(rv).Id(name)).Id(method).Params().Bool().Block(
			jen.Return(jen.Id(rv).Op("==").Id(c)),
		)
	}

	f.Commentf("%sValues returns every member in schema order.", name)
	f.Func().Id(name+"Values").Params().Index().Id(name).Block(
		jen.Return(jen.Index().Id(name).ValuesFunc(func(g *jen.Group) {
			for _, c := range consts {
				g.Id(c)
			}
		})),
	)
}
