// Package introspect defines the introspection service the generator talks
// to and ships implementations backed by snapshot files and a descriptor
// cache.
package introspect

import (
	"context"
	"errors"

	"github.com/syssam/gelx/compiler/catalog"
	"github.com/syssam/gelx/compiler/descriptor"
)

// ErrUnknownQuery is returned by services that can only answer for queries
// they have seen before.
var ErrUnknownQuery = errors.New("introspect: query not found")

// Service is the database side of generation. Implementations run the
// catalog queries (catalog.TypesQuery, catalog.GlobalsQuery) and compile
// query text into its type signature.
type Service interface {
	// FetchCatalog returns one row per catalog type.
	FetchCatalog(ctx context.Context) ([]catalog.TypeRow, error)
	// FetchGlobals returns one row per global variable.
	FetchGlobals(ctx context.Context) ([]catalog.GlobalRow, error)
	// Compile returns the signature of query.
	Compile(ctx context.Context, query string) (*descriptor.CommandDescription, error)
}
