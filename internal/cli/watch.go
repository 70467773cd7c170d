package cli

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"

	"github.com/syssam/gelx/compiler/gen"
	"github.com/syssam/gelx/internal/logger"
)

// debouncePeriod coalesces the burst of events an editor save produces.
const debouncePeriod = 200 * time.Millisecond

// targets are the inputs a generation run depends on.
type targets struct {
	queries  string
	snapshot string
	config   string
}

func watchTargets(p *project) targets {
	return targets{
		queries:  p.cfg.QueriesDir(),
		snapshot: p.cfg.SnapshotFile(),
		config:   p.cfg.File,
	}
}

// relevant reports whether a change to name affects generation.
func (t targets) relevant(name string) bool {
	if name == t.snapshot || (t.config != "" && name == t.config) {
		return true
	}
	rel, err := filepath.Rel(t.queries, name)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	if filepath.Ext(name) == gen.QueryExt {
		return true
	}
	info, err := os.Stat(name)
	return err == nil && info.IsDir()
}

// watch calls run after every relevant change until ctx is done.
func watch(ctx context.Context, t targets, run func(context.Context)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create file watcher")
	}
	defer w.Close()

	if err := addTree(w, t.queries); err != nil {
		return err
	}
	for _, f := range []string{t.snapshot, t.config} {
		if f == "" {
			continue
		}
		if err := w.Add(filepath.Dir(f)); err != nil {
			return errors.Wrapf(err, "watch %s", filepath.Dir(f))
		}
	}
	logger.Logger.Infow("watching for changes", "queries", t.queries, "snapshot", t.snapshot)

	timer := time.NewTimer(debouncePeriod)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !t.relevant(event.Name) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addTree(w, event.Name); err != nil {
						logger.Logger.Warnw("cannot watch directory", "path", event.Name, "error", err)
					}
				}
			}
			logger.Logger.Debugw("change detected", "path", event.Name, "op", event.Op.String())
			timer.Reset(debouncePeriod)
		case <-timer.C:
			run(ctx)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Logger.Warnw("file watcher error", "error", err)
		}
	}
}

// addTree watches dir and every directory below it. A missing dir is
// ignored.
func addTree(w *fsnotify.Watcher, dir string) error {
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir && errors.Is(err, fs.ErrNotExist) {
				return fs.SkipDir
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return w.Add(path)
	})
	return errors.Wrapf(err, "watch %s", dir)
}
