package introspect

import (
	"context"
	"strings"
	"sync"

	"github.com/syssam/gelx/compiler/catalog"
	"github.com/syssam/gelx/compiler/descriptor"
)

// Recorder forwards to a Service and keeps what it answered, so a live
// session can be replayed later from a snapshot file.
type Recorder struct {
	next Service

	mu       sync.Mutex
	snapshot Snapshot
	seen     map[string]bool
}

// NewRecorder wraps next.
func NewRecorder(next Service) *Recorder {
	return &Recorder{next: next, seen: make(map[string]bool)}
}

func (r *Recorder) FetchCatalog(ctx context.Context) ([]catalog.TypeRow, error) {
	rows, err := r.next.FetchCatalog(ctx)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.snapshot.Types = rows
	r.mu.Unlock()
	return rows, nil
}

func (r *Recorder) FetchGlobals(ctx context.Context) ([]catalog.GlobalRow, error) {
	rows, err := r.next.FetchGlobals(ctx)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.snapshot.Globals = rows
	r.mu.Unlock()
	return rows, nil
}

func (r *Recorder) Compile(ctx context.Context, query string) (*descriptor.CommandDescription, error) {
	d, err := r.next.Compile(ctx, query)
	if err != nil {
		return nil, err
	}
	// Recorded text matches the key SnapshotService looks queries up by.
	text := strings.TrimSpace(query)
	q, err := NewCompiledQuery(text, d)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.seen[text] {
		r.seen[text] = true
		r.snapshot.Queries = append(r.snapshot.Queries, q)
	}
	return d, nil
}

// Snapshot returns a copy of everything recorded so far.
func (r *Recorder) Snapshot() *Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := Snapshot{
		Types:   append([]catalog.TypeRow(nil), r.snapshot.Types...),
		Globals: append([]catalog.GlobalRow(nil), r.snapshot.Globals...),
		Queries: append([]CompiledQuery(nil), r.snapshot.Queries...),
	}
	return &s
}
