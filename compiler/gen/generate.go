package gen

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/syssam/gelx/compiler/catalog"
	"github.com/syssam/gelx/compiler/introspect"
)

// QueryExt is the extension of query files.
const QueryExt = ".edgeql"

// Generator produces the output tree from an introspection service.
// Service calls are issued one at a time in a stable order: the catalog, the
// globals, then one compile per query file sorted by path.
//
// Example:
//
//	cfg, _ := gen.NewConfig(gen.WithPackage("example.com/app/internal/db"))
//	out, err := gen.NewGenerator(cfg, svc).Generate(ctx, "queries")
type Generator struct {
	cfg *Config
	svc introspect.Service
	log *zap.SugaredLogger
}

// NewGenerator creates a generator.
func NewGenerator(cfg *Config, svc introspect.Service) *Generator {
	return &Generator{cfg: cfg, svc: svc, log: zap.NewNop().Sugar()}
}

// WithLogger sets the logger used for stage boundaries.
func (g *Generator) WithLogger(log *zap.SugaredLogger) *Generator {
	if log != nil {
		g.log = log
	}
	return g
}

// Tree fetches the catalog and builds the module tree.
func (g *Generator) Tree(ctx context.Context) (*Tree, error) {
	rows, err := g.svc.FetchCatalog(ctx)
	if err != nil {
		return nil, NewProtocolError("fetch catalog", "", err)
	}
	g.log.Debugw("catalog fetched", "rows", len(rows))
	graph, err := catalog.Map(rows)
	if err != nil {
		return nil, NewContractError("catalog", "cannot map introspection rows", err)
	}
	t := BuildTree(g.cfg, graph)
	g.log.Debugw("types mapped", "types", graph.Len())
	for _, n := range t.Skipped() {
		g.log.Debugw("type skipped", "name", n.Name(), "reason", "generic parameter")
	}
	return t, nil
}

// Generate builds the complete output: the namespace packages, the Globals
// type and one package per query file under queriesDir. Nothing is written.
func (g *Generator) Generate(ctx context.Context, queriesDir string) (*Output, error) {
	if err := g.cfg.Validate(); err != nil {
		return nil, err
	}
	t, err := g.Tree(ctx)
	if err != nil {
		return nil, err
	}
	globals, err := g.svc.FetchGlobals(ctx)
	if err != nil {
		return nil, NewProtocolError("fetch globals", "", err)
	}
	g.log.Debugw("globals fetched", "globals", len(globals))

	out := NewOutput()
	if err := t.Emit(out, globals); err != nil {
		return nil, err
	}

	files, err := QueryFiles(queriesDir)
	if err != nil {
		return nil, NewConfigError("QueriesPath", queriesDir, err.Error())
	}
	for _, file := range files {
		q, err := g.compile(ctx, file)
		if err != nil {
			return nil, err
		}
		if err := t.EmitQuery(out, q); err != nil {
			return nil, err
		}
		g.log.Debugw("query generated", "query", q.Name, "file", file)
	}
	return out, nil
}

// Inline renders the query in file as a single self-contained file of
// package pkg.
func (g *Generator) Inline(ctx context.Context, file, pkg string) ([]byte, error) {
	q, err := g.compile(ctx, file)
	if err != nil {
		return nil, err
	}
	return Inline(g.cfg, q, pkg)
}

func (g *Generator) compile(ctx context.Context, file string) (QuerySource, error) {
	text, err := os.ReadFile(file)
	if err != nil {
		return QuerySource{}, NewConfigError("Query", file, err.Error())
	}
	desc, err := g.svc.Compile(ctx, string(text))
	if err != nil {
		return QuerySource{}, NewProtocolError("compile", file, err)
	}
	g.log.Debugw("query compiled", "file", file, "cardinality", desc.ResultCardinality.String())
	return QuerySource{Name: QueryName(file), Text: string(text), Description: desc}, nil
}

// QueryName returns the query name of a query file: its stem.
func QueryName(file string) string {
	return strings.TrimSuffix(filepath.Base(file), QueryExt)
}

// QueryFiles returns the query files under dir sorted by path. A missing dir
// has no queries.
func QueryFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == dir && os.IsNotExist(err) {
				return fs.SkipDir
			}
			return err
		}
		if !d.IsDir() && filepath.Ext(p) == QueryExt {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}
