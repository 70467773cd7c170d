package gen

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/syssam/gelx/compiler/catalog"
	"github.com/syssam/gelx/compiler/descriptor"
)

// fakeService answers from fixed rows and compiles queries by trimmed text.
type fakeService struct {
	rows       []catalog.TypeRow
	globals    []catalog.GlobalRow
	queries    map[string]*descriptor.CommandDescription
	catalogErr error
	compiled   []string
}

func (s *fakeService) FetchCatalog(context.Context) ([]catalog.TypeRow, error) {
	return s.rows, s.catalogErr
}

func (s *fakeService) FetchGlobals(context.Context) ([]catalog.GlobalRow, error) {
	return s.globals, nil
}

func (s *fakeService) Compile(_ context.Context, query string) (*descriptor.CommandDescription, error) {
	query = strings.TrimSpace(query)
	s.compiled = append(s.compiled, query)
	d, ok := s.queries[query]
	if !ok {
		return nil, errors.New("syntax error")
	}
	return d, nil
}

func writeQuery(t *testing.T, dir, name, text string) string {
	t.Helper()
	p := filepath.Join(dir, name+QueryExt)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(text+"\n"), 0o644))
	return p
}

func TestGenerator(t *testing.T) {
	cfg := MustNewConfig(WithPackage("example.com/app/db"))
	svc := &fakeService{
		rows: schemaRows(),
		globals: []catalog.GlobalRow{
			{Name: "default::locale", Target: &catalog.GlobalTarget{ID: stdStr}},
		},
		queries: map[string]*descriptor.CommandDescription{
			getUserText:     getUser().Description,
			"delete User":   {ResultCardinality: descriptor.NoResult},
			"select 1 + 1;": {ResultCardinality: descriptor.One, Output: *typedesc(0, &descriptor.BaseScalar{ID: stdInt64})},
		},
	}

	t.Run("generates namespaces and queries", func(t *testing.T) {
		dir := t.TempDir()
		writeQuery(t, dir, "get_user", getUserText)
		writeQuery(t, dir, "admin/reset", "delete User")
		require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("docs"), 0o644))

		core, logs := observer.New(zap.DebugLevel)
		g := NewGenerator(cfg, svc).WithLogger(zap.New(core).Sugar())
		out, err := g.Generate(context.Background(), dir)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"index.go", "default.go", "admin.go",
			"reset/reset.go", "get_user/get_user.go",
		}, out.Paths())
		assert.Contains(t, string(mustGet(t, out, "index.go")), "Locale *string")

		assert.Equal(t, 1, logs.FilterMessage("type skipped").Len())
		assert.Equal(t, 2, logs.FilterMessage("query generated").Len())
	})

	t.Run("missing queries directory", func(t *testing.T) {
		out, err := NewGenerator(cfg, svc).Generate(context.Background(), filepath.Join(t.TempDir(), "none"))
		require.NoError(t, err)
		assert.Equal(t, []string{"index.go", "default.go", "admin.go"}, out.Paths())
	})

	t.Run("compile failure", func(t *testing.T) {
		dir := t.TempDir()
		writeQuery(t, dir, "broken", "select (")
		_, err := NewGenerator(cfg, svc).Generate(context.Background(), dir)
		require.Error(t, err)
		assert.True(t, IsProtocolError(err))
		assert.Contains(t, err.Error(), "broken.edgeql")
	})

	t.Run("catalog failure", func(t *testing.T) {
		_, err := NewGenerator(cfg, &fakeService{catalogErr: errors.New("connection refused")}).Generate(context.Background(), t.TempDir())
		require.Error(t, err)
		assert.True(t, IsProtocolError(err))
	})

	t.Run("invalid catalog rows", func(t *testing.T) {
		bad := &fakeService{rows: []catalog.TypeRow{{Name: "default::R", Kind: "range"}}}
		_, err := NewGenerator(cfg, bad).Generate(context.Background(), t.TempDir())
		require.Error(t, err)
		assert.True(t, IsContractError(err))
	})

	t.Run("invalid config", func(t *testing.T) {
		_, err := NewGenerator(MustNewConfig(), svc).Generate(context.Background(), t.TempDir())
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})
}

func TestGeneratorInline(t *testing.T) {
	svc := &fakeService{queries: map[string]*descriptor.CommandDescription{
		"select 1 + 1;": {ResultCardinality: descriptor.One, Output: *typedesc(0, &descriptor.BaseScalar{ID: stdInt64})},
	}}
	file := writeQuery(t, t.TempDir(), "Sum", "select 1 + 1;")

	src, err := NewGenerator(MustNewConfig(), svc).Inline(context.Background(), file, "main")
	require.NoError(t, err)
	s := string(src)
	assert.Contains(t, s, "package main")
	assert.Contains(t, s, "type SumOutput = int64")
	assert.Contains(t, s, "func SumQuery(ctx context.Context, c gelx.Querier) (SumOutput, error)")

	_, err = NewGenerator(MustNewConfig(), svc).Inline(context.Background(), filepath.Join(t.TempDir(), "missing.edgeql"), "main")
	assert.True(t, IsConfigError(err))
}

func TestQueryFiles(t *testing.T) {
	dir := t.TempDir()
	b := writeQuery(t, dir, "b", "select 1")
	a := writeQuery(t, dir, "a/z", "select 2")
	files, err := QueryFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, files)
	assert.Equal(t, "z", QueryName(a))
}
