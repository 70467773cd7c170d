package gen

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Writer writes an Output to disk with bounded parallelism.
type Writer struct {
	outDir  string
	workers int

	// Metrics for performance monitoring
	mu      sync.Mutex
	metrics *WriterMetrics
}

// WriterMetrics tracks write performance
type WriterMetrics struct {
	FilesWritten int
	TotalBytes   int64
}

// NewWriter creates a writer rooted at outDir.
func NewWriter(outDir string) *Writer {
	return &Writer{
		outDir:  outDir,
		workers: runtime.GOMAXPROCS(0),
		metrics: &WriterMetrics{},
	}
}

// WithWorkers sets the number of parallel workers.
func (w *Writer) WithWorkers(n int) *Writer {
	if n > 0 {
		w.workers = n
	}
	return w
}

// Metrics returns the write metrics.
func (w *Writer) Metrics() *WriterMetrics {
	return w.metrics
}

// Write writes every file of out concurrently. Files are independent, so a
// failing file does not stop the others; every failure is returned as a
// *WriteError joined into the result.
func (w *Writer) Write(ctx context.Context, out *Output) error {
	if err := os.MkdirAll(w.outDir, 0o755); err != nil {
		return NewWriteError(w.outDir, err)
	}
	paths := out.Paths()
	errs := make([]error, len(paths))

	var eg errgroup.Group
	eg.SetLimit(w.workers)
	for i, p := range paths {
		i, p := i, p
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = NewWriteError(p, err)
				return nil
			}
			content, _ := out.Get(p)
			errs[i] = w.writeFile(p, content)
			return nil
		})
	}
	_ = eg.Wait()
	return errors.Join(errs...)
}

// writeFile writes a single file.
func (w *Writer) writeFile(name string, content []byte) error {
	fullPath := filepath.Join(w.outDir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return NewWriteError(name, err)
	}
	if err := os.WriteFile(fullPath, content, 0o644); err != nil {
		return NewWriteError(name, err)
	}

	w.mu.Lock()
	w.metrics.FilesWritten++
	w.metrics.TotalBytes += int64(len(content))
	w.mu.Unlock()

	return nil
}
