// Package gen generates Go code from an introspected Gel schema and from the
// type descriptors of EdgeQL queries.
//
// # Architecture
//
// The code generation pipeline follows this flow:
//
//	introspect.Service (catalog rows, globals, query descriptors)
//	        ↓
//	   catalog.Map (TypeNode graph keyed by id)
//	        ↓
//	   Tree (one Module per schema namespace)
//	        ↓
//	   Emit / EmitQuery (jennifer files, one per module and query)
//	        ↓
//	   Output (relative path to formatted source)
//	        ↓
//	   Writer (concurrent writes) or Diff (check mode)
//
// # Key Types
//
//   - Config: generation settings built from functional options
//   - Tree: module tree built from the catalog, resolves cross-module references
//   - Generator: drives a Service through the whole pipeline
//   - Output: the generated files in emission order
//   - Writer: writes an Output with bounded parallelism
//
// # Error Handling
//
// Errors follow the taxonomy of the pipeline:
//
//   - ProtocolError: the introspection service failed
//   - ConfigError: invalid options or unreadable query files
//   - ContractError: the service returned data that breaks its guarantees
//   - GenerationError: rendering or assembling the output failed
//   - WriteError: a file could not be written
//
// Example error handling:
//
//	out, err := gen.NewGenerator(cfg, svc).Generate(ctx, "queries")
//	if err != nil {
//	    if gen.IsProtocolError(err) {
//	        // Refresh the snapshot
//	    }
//	    return err
//	}
//
// # Configuration
//
//	cfg, err := gen.NewConfig(
//	    gen.WithTarget("internal/db"),
//	    gen.WithPackage("github.com/org/project/internal/db"),
//	    gen.WithCapability(capability.Builder, capability.Behind("gelbuild")),
//	)
//
// # Generated Output
//
//	{output}/
//	├── index.go              // root module, globals, default re-exports
//	├── index_{alias}.go      // attachments gated behind a build tag
//	├── default.go            // leaf namespace
//	├── {ns}/
//	│   ├── index.go          // namespace with children
//	│   └── {child}.go
//	└── {query}/
//	    └── {query}.go        // Input, Output, Query, Transaction, Statement
package gen
