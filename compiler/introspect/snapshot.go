package introspect

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/syssam/gelx/compiler/catalog"
	"github.com/syssam/gelx/compiler/descriptor"
)

// Snapshot is a recorded introspection session: the catalog, the globals and
// the signature of every compiled query.
type Snapshot struct {
	Types   []catalog.TypeRow   `json:"types" yaml:"types" msgpack:"types"`
	Globals []catalog.GlobalRow `json:"globals,omitempty" yaml:"globals,omitempty" msgpack:"globals,omitempty"`
	Queries []CompiledQuery     `json:"queries,omitempty" yaml:"queries,omitempty" msgpack:"queries,omitempty"`
}

// CompiledQuery is the serialized signature of one query.
type CompiledQuery struct {
	Query       string                   `json:"query" yaml:"query" msgpack:"query"`
	Cardinality descriptor.Cardinality   `json:"cardinality" yaml:"cardinality" msgpack:"cardinality"`
	Input       descriptor.TypedescNodes `json:"input" yaml:"input" msgpack:"input"`
	Output      descriptor.TypedescNodes `json:"output" yaml:"output" msgpack:"output"`
}

// NewCompiledQuery serializes the signature of query.
func NewCompiledQuery(query string, d *descriptor.CommandDescription) (CompiledQuery, error) {
	in, err := descriptor.Encode(d.Input)
	if err != nil {
		return CompiledQuery{}, fmt.Errorf("encode input: %w", err)
	}
	out, err := descriptor.Encode(d.Output)
	if err != nil {
		return CompiledQuery{}, fmt.Errorf("encode output: %w", err)
	}
	return CompiledQuery{Query: query, Cardinality: d.ResultCardinality, Input: in, Output: out}, nil
}

// Description decodes the signature.
func (q CompiledQuery) Description() (*descriptor.CommandDescription, error) {
	in, err := q.Input.Decode()
	if err != nil {
		return nil, fmt.Errorf("decode input: %w", err)
	}
	out, err := q.Output.Decode()
	if err != nil {
		return nil, fmt.Errorf("decode output: %w", err)
	}
	return &descriptor.CommandDescription{ResultCardinality: q.Cardinality, Input: in, Output: out}, nil
}

// Format is a snapshot encoding, chosen by file extension.
type Format uint8

const (
	YAML Format = iota
	MsgPack
)

// FormatOf returns the encoding of a snapshot path: .msgpack and .mp are
// MsgPack, everything else is YAML.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".msgpack", ".mp":
		return MsgPack
	default:
		return YAML
	}
}

// Decode parses a snapshot. YAML input rejects unknown fields.
func Decode(data []byte, f Format) (*Snapshot, error) {
	var s Snapshot
	switch f {
	case MsgPack:
		if err := msgpack.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to parse msgpack: %w", err)
		}
	default:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}
	return &s, nil
}

// Encode serializes s.
func (s *Snapshot) Encode(f Format) ([]byte, error) {
	if f == MsgPack {
		return msgpack.Marshal(s)
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LoadSnapshot reads a snapshot file.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}
	s, err := Decode(data, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", path, err)
	}
	return s, nil
}

// Save writes s to path in the encoding given by its extension.
func (s *Snapshot) Save(path string) error {
	data, err := s.Encode(FormatOf(path))
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// SnapshotService answers from a Snapshot. Queries are matched by their
// whitespace trimmed text.
type SnapshotService struct {
	snapshot *Snapshot

	once    sync.Once
	queries map[string]CompiledQuery
}

// NewSnapshotService returns a service backed by s.
func NewSnapshotService(s *Snapshot) *SnapshotService {
	return &SnapshotService{snapshot: s}
}

func (s *SnapshotService) FetchCatalog(context.Context) ([]catalog.TypeRow, error) {
	return s.snapshot.Types, nil
}

func (s *SnapshotService) FetchGlobals(context.Context) ([]catalog.GlobalRow, error) {
	return s.snapshot.Globals, nil
}

func (s *SnapshotService) Compile(_ context.Context, query string) (*descriptor.CommandDescription, error) {
	s.once.Do(func() {
		s.queries = make(map[string]CompiledQuery, len(s.snapshot.Queries))
		for _, q := range s.snapshot.Queries {
			s.queries[strings.TrimSpace(q.Query)] = q
		}
	})
	q, ok := s.queries[strings.TrimSpace(query)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownQuery, abbreviate(query))
	}
	return q.Description()
}

func abbreviate(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > 60 {
		return s[:57] + "..."
	}
	return s
}
