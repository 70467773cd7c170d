package gen

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/gelx/compiler/descriptor"
)

// Shape is the Go form a query result takes.
type Shape uint8

const (
	// ShapeOptional is *T.
	ShapeOptional Shape = iota
	// ShapeRequired is T.
	ShapeRequired
	// ShapeList is []T.
	ShapeList
)

func (s Shape) String() string {
	switch s {
	case ShapeOptional:
		return "optional"
	case ShapeRequired:
		return "required"
	case ShapeList:
		return "list"
	default:
		return "unknown"
	}
}

// Invocation pairs the returned shape of a query wrapper with the
// gelx.Querier method that fills it.
type Invocation struct {
	Method string
	Shape  Shape
}

var invocations = map[descriptor.Cardinality]Invocation{
	descriptor.NoResult:   {Method: "Execute", Shape: ShapeOptional},
	descriptor.AtMostOne:  {Method: "QuerySingle", Shape: ShapeOptional},
	descriptor.One:        {Method: "QueryRequiredSingle", Shape: ShapeRequired},
	descriptor.Many:       {Method: "Query", Shape: ShapeList},
	descriptor.AtLeastOne: {Method: "Query", Shape: ShapeList},
}

// InvocationFor returns the invocation of a result cardinality. Unknown
// cardinalities report false.
func InvocationFor(c descriptor.Cardinality) (Invocation, bool) {
	inv, ok := invocations[c]
	return inv, ok
}

// Wrap renders t in the invocation's shape.
func (i Invocation) Wrap(t jen.Code) *jen.Statement {
	switch i.Shape {
	case ShapeOptional:
		return jen.Op("*").Add(t)
	case ShapeList:
		return jen.Index().Add(t)
	default:
		return jen.Add(t)
	}
}
