package gen

import (
	"github.com/dave/jennifer/jen"
	"github.com/google/uuid"
)

const uuidPackage = "github.com/google/uuid"

// ScalarType is the Go type a built-in scalar maps to.
type ScalarType struct {
	// Name is the Go identifier.
	Name string
	// Pkg is empty for predeclared types, uuidPackage, or runtimePkg for types
	// of the runtime package.
	Pkg string
	// Slice marks byte slices, which have no named identifier.
	Slice bool
}

// runtimePkg stands in for the configured runtime import path.
const runtimePkg = "$runtime"

// Code renders the type, resolving the runtime package to runtime.
func (s ScalarType) Code(runtime string) *jen.Statement {
	switch {
	case s.Slice:
		return jen.Index().Id(s.Name)
	case s.Pkg == runtimePkg:
		return jen.Qual(runtime, s.Name)
	case s.Pkg != "":
		return jen.Qual(s.Pkg, s.Name)
	default:
		return jen.Id(s.Name)
	}
}

// Well known catalog ids of built-in scalars.
var (
	stdUUID             = uuid.MustParse("00000000-0000-0000-0000-000000000100")
	stdStr              = uuid.MustParse("00000000-0000-0000-0000-000000000101")
	stdBytes            = uuid.MustParse("00000000-0000-0000-0000-000000000102")
	stdInt16            = uuid.MustParse("00000000-0000-0000-0000-000000000103")
	stdInt32            = uuid.MustParse("00000000-0000-0000-0000-000000000104")
	stdInt64            = uuid.MustParse("00000000-0000-0000-0000-000000000105")
	stdFloat32          = uuid.MustParse("00000000-0000-0000-0000-000000000106")
	stdFloat64          = uuid.MustParse("00000000-0000-0000-0000-000000000107")
	stdDecimal          = uuid.MustParse("00000000-0000-0000-0000-000000000108")
	stdBool             = uuid.MustParse("00000000-0000-0000-0000-000000000109")
	stdDatetime         = uuid.MustParse("00000000-0000-0000-0000-00000000010a")
	calLocalDatetime    = uuid.MustParse("00000000-0000-0000-0000-00000000010b")
	calLocalDate        = uuid.MustParse("00000000-0000-0000-0000-00000000010c")
	calLocalTime        = uuid.MustParse("00000000-0000-0000-0000-00000000010d")
	stdDuration         = uuid.MustParse("00000000-0000-0000-0000-00000000010e")
	stdJSON             = uuid.MustParse("00000000-0000-0000-0000-00000000010f")
	stdBigint           = uuid.MustParse("00000000-0000-0000-0000-000000000110")
	calRelativeDuration = uuid.MustParse("00000000-0000-0000-0000-000000000111")
	calDateDuration     = uuid.MustParse("00000000-0000-0000-0000-000000000112")
	cfgMemory           = uuid.MustParse("00000000-0000-0000-0000-000000000130")
	pgJSON              = uuid.MustParse("00000000-0000-0000-0000-000001000001")
	pgTimestamptz       = uuid.MustParse("00000000-0000-0000-0000-000001000002")
	pgTimestamp         = uuid.MustParse("00000000-0000-0000-0000-000001000003")
	pgDate              = uuid.MustParse("00000000-0000-0000-0000-000001000004")
	pgvectorVector      = uuid.MustParse("9565dd88-04f5-11ee-a691-0b6ebe179825")
	postgisGeometry     = uuid.MustParse("44c901c0-d922-4894-83c8-061bd05e4840")
	postgisGeography    = uuid.MustParse("4d738878-3a5f-4821-ab76-9d8e7d6b32c4")
)

// builtinScalars maps catalog ids to Go types. pg::interval is absent on
// purpose and falls back to the dynamic type.
var builtinScalars = map[uuid.UUID]ScalarType{
	stdUUID:             {Name: "UUID", Pkg: uuidPackage},
	stdStr:              {Name: "string"},
	stdBytes:            {Name: "byte", Slice: true},
	stdInt16:            {Name: "int16"},
	stdInt32:            {Name: "int32"},
	stdInt64:            {Name: "int64"},
	stdFloat32:          {Name: "float32"},
	stdFloat64:          {Name: "float64"},
	stdDecimal:          {Name: "Decimal", Pkg: runtimePkg},
	stdBool:             {Name: "bool"},
	stdDatetime:         {Name: "DateTime", Pkg: runtimePkg},
	calLocalDatetime:    {Name: "LocalDateTime", Pkg: runtimePkg},
	calLocalDate:        {Name: "LocalDate", Pkg: runtimePkg},
	calLocalTime:        {Name: "LocalTime", Pkg: runtimePkg},
	stdDuration:         {Name: "Duration", Pkg: runtimePkg},
	stdJSON:             {Name: "JSON", Pkg: runtimePkg},
	stdBigint:           {Name: "BigInt", Pkg: runtimePkg},
	calRelativeDuration: {Name: "RelativeDuration", Pkg: runtimePkg},
	calDateDuration:     {Name: "DateDuration", Pkg: runtimePkg},
	cfgMemory:           {Name: "Memory", Pkg: runtimePkg},
	pgJSON:              {Name: "JSON", Pkg: runtimePkg},
	pgTimestamptz:       {Name: "DateTime", Pkg: runtimePkg},
	pgTimestamp:         {Name: "LocalDateTime", Pkg: runtimePkg},
	pgDate:              {Name: "LocalDate", Pkg: runtimePkg},
	pgvectorVector:      {Name: "Vector", Pkg: runtimePkg},
	postgisGeometry:     {Name: "Geometry", Pkg: runtimePkg},
	postgisGeography:    {Name: "Geography", Pkg: runtimePkg},
}

// LookupScalar returns the Go type of a built-in scalar.
func LookupScalar(id uuid.UUID) (ScalarType, bool) {
	s, ok := builtinScalars[id]
	return s, ok
}

// scalarCode renders the Go type of a built-in scalar, falling back to the
// runtime's dynamic type for unmapped ids.
func scalarCode(id uuid.UUID, runtime string) *jen.Statement {
	if s, ok := LookupScalar(id); ok {
		return s.Code(runtime)
	}
	return jen.Qual(runtime, "Dynamic")
}
