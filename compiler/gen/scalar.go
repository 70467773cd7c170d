package gen

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/gelx/compiler/capability"
	"github.com/syssam/gelx/compiler/catalog"
)

// scalar renders the wrapper of a user scalar whose material is st.
func (r *renderer) scalar(u *unit, name string, s *catalog.Scalar, st ScalarType) {
	rv := receiver(name)
	value := st.Code(r.runtime)
	idVar := name + "TypeID"

	u.main.Commentf("%s wraps the %s scalar.", name, s.TypeName)
	u.main.Type().Id(name).Struct(jen.Id("Value").Add(value))

	u.main.Commentf("%s is the catalog id of %s.", idVar, s.TypeName)
	u.main.Var().Id(idVar).Op("=").Qual(uuidPackage, "MustParse").Call(jen.Lit(s.TypeID.String()))

	u.main.Commentf("New%s wraps v.", name)
	u.main.Func().Id("New"+name).Params(jen.Id("v").Add(value)).Id(name).Block(
		jen.Return(jen.Id(name).Values(jen.Dict{jen.Id("Value"): jen.Id("v")})),
	)

	u.main.Comment("Unwrap returns the wrapped value.")
	u.main.Func().Params(jen.Id(rv).Id(name)).Id("Unwrap").Params().Add(value).Block(
		jen.Return(jen.Id(rv).Dot("Value")),
	)

	res := r.resolve(capability.ScalarCapabilities, capability.ScalarWrapper)
	r.attach(u, res, func(f *jen.File, a capability.Attachment) {
		switch a {
		case capability.JSONCodec:
			f.Comment("MarshalJSON encodes the wrapped value.")
			f.Func().Params(jen.Id(rv).Id(name)).Id("MarshalJSON").Params().Params(jen.Index().Byte(), jen.Error()).Block(
				jen.Return(jen.Qual("encoding/json", "Marshal").Call(jen.Id(rv).Dot("Value"))),
			)
			f.Comment("UnmarshalJSON decodes into the wrapped value.")
			f.Func().Params(jen.Id(rv).Op("*").Id(name)).Id("UnmarshalJSON").Params(jen.Id("data").Index().Byte()).Error().Block(
				jen.Return(jen.Qual("encoding/json", "Unmarshal").Call(jen.Id("data"), jen.Op("&").Id(rv).Dot("Value"))),
			)
		case capability.TypeCheck:
			f.Commentf("CheckDescriptor reports an error unless id is the catalog id of %s.", s.TypeName)
			f.Func().Params(jen.Id(name)).Id("CheckDescriptor").Params(jen.Id("id").Qual(uuidPackage, "UUID")).Error().Block(
				jen.Return(jen.Qual(r.runtime, "CheckScalar").Call(jen.Id("id"), jen.Id(idVar), jen.Lit(s.TypeName))),
			)
		case capability.QueryContract:
			f.Var().Id("_").Qual(r.runtime, "Scalar").Op("=").Id(name).Values()
		}
	})
}
