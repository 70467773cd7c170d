package cli

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/syssam/gelx/compiler/gen"
	"github.com/syssam/gelx/compiler/introspect"
	"github.com/syssam/gelx/config"
	"github.com/syssam/gelx/internal/logger"
)

// project is a loaded configuration plus the introspection service it
// points at.
type project struct {
	cfg *config.Config
	svc introspect.Service
}

func loadProject(opts *RootOptions) (*project, error) {
	cfg, err := config.Load(opts.Cwd)
	if err != nil {
		return nil, errors.WithHint(errors.Wrap(err, "load configuration"), "fix "+config.FileName+" or the GELX_ environment variables")
	}
	logger.Logger.Debugw("configuration loaded", "file", cfg.File, "root", cfg.Root)

	svc, err := openService(cfg)
	if err != nil {
		return nil, err
	}
	return &project{cfg: cfg, svc: svc}, nil
}

// openService serves introspection from the configured snapshot, behind the
// descriptor cache when cache_dir is set.
func openService(cfg *config.Config) (introspect.Service, error) {
	path := cfg.SnapshotFile()
	snap, err := introspect.LoadSnapshot(path)
	if err != nil {
		return nil, errors.WithHint(
			errors.Wrap(err, "load introspection snapshot"),
			"set snapshot in "+config.FileName+" to a recorded introspection file",
		)
	}
	logger.Logger.Debugw("snapshot loaded", "path", path, "types", len(snap.Types), "queries", len(snap.Queries))

	var svc introspect.Service = introspect.NewSnapshotService(snap)
	if cfg.CacheDir != "" {
		svc = introspect.NewCachedService(svc, introspect.NewFileCache(cfg.Abs(cfg.CacheDir)))
	}
	return svc, nil
}

func (p *project) generator(cfg *gen.Config) *gen.Generator {
	return gen.NewGenerator(cfg, p.svc).WithLogger(logger.Logger)
}

// generate runs standalone generation in memory.
func (p *project) generate(ctx context.Context) (*gen.Config, *gen.Output, error) {
	cfg, err := p.cfg.GenConfig()
	if err != nil {
		return nil, nil, stageError("configure", err)
	}
	out, err := p.generator(cfg).Generate(ctx, p.cfg.QueriesDir())
	if err != nil {
		return nil, nil, stageError("generate", err)
	}
	return cfg, out, nil
}

// stageError names the failing stage and attaches a hint for the error kind.
func stageError(stage string, err error) error {
	err = errors.Wrap(err, stage)
	switch {
	case gen.IsConfigError(err):
		return errors.WithHint(err, "check "+config.FileName+" and the query files")
	case gen.IsProtocolError(err):
		return errors.WithHint(err, "the introspection snapshot may be stale; record it again against the current schema")
	case gen.IsContractError(err):
		return errors.WithHint(err, "the introspection data does not have the expected shape")
	case gen.IsWriteError(err):
		return errors.WithHint(err, "check that the output directory is writable")
	}
	return err
}
