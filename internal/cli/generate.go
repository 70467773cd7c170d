package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/syssam/gelx/compiler/gen"
	"github.com/syssam/gelx/internal/logger"
)

type generateOptions struct {
	JSON  bool
	Watch bool
}

func newGenerateCommand(root *RootOptions) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate Go code for the schema and every query file",
		Long: `Generate Go code for every schema type and one package per query file.

Files the previous run generated but this run does not are removed.
With --json the output map is printed instead of written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			run := func(ctx context.Context) error {
				p, err := loadProject(root)
				if err != nil {
					return err
				}
				return runGenerate(ctx, cmd.OutOrStdout(), p, opts.JSON)
			}
			err := run(cmd.Context())
			if !opts.Watch {
				return err
			}
			if err != nil {
				Report(cmd.ErrOrStderr(), err)
			}
			p, err := loadProject(root)
			if err != nil {
				return err
			}
			return watch(cmd.Context(), watchTargets(p), func(ctx context.Context) {
				if err := run(ctx); err != nil {
					Report(cmd.ErrOrStderr(), err)
				}
			})
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "print the generated files as a JSON object instead of writing them")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "regenerate when a query file, the snapshot or the configuration changes")

	return cmd
}

func runGenerate(ctx context.Context, w io.Writer, p *project, asJSON bool) error {
	cfg, out, err := p.generate(ctx)
	if err != nil {
		return err
	}
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(out), "encode output")
	}

	dir := p.cfg.OutputDir()
	previous, err := gen.ReadTree(dir)
	if err != nil {
		return stageError("read output", err)
	}
	wr := gen.NewWriter(dir).WithWorkers(cfg.Workers)
	if err := wr.Write(ctx, out); err != nil {
		return stageError("write", err)
	}
	for _, path := range out.Paths() {
		logger.Logger.Debugw("file written", "path", path)
	}
	removed, err := prune(dir, previous, out)
	if err != nil {
		return stageError("prune", err)
	}

	m := wr.Metrics()
	msg := fmt.Sprintf("%d files (%d bytes) in %s", m.FilesWritten, m.TotalBytes, relative(p.cfg.Root, dir))
	if removed > 0 {
		msg += fmt.Sprintf(", %d stale files removed", removed)
	}
	pterm.Fprintln(w, pterm.Green("generated"), msg)
	return nil
}

// prune removes files of a previous run that out no longer contains, along
// with directories left empty.
func prune(dir string, previous, out *gen.Output) (int, error) {
	var removed int
	for _, path := range previous.Paths() {
		if _, ok := out.Get(path); ok {
			continue
		}
		file := filepath.Join(dir, filepath.FromSlash(path))
		if err := os.Remove(file); err != nil && !os.IsNotExist(err) {
			return removed, gen.NewWriteError(path, err)
		}
		logger.Logger.Debugw("file removed", "path", path)
		removed++
		for d := filepath.Dir(file); d != dir && len(d) > len(dir); d = filepath.Dir(d) {
			// Remove fails on non-empty directories.
			if os.Remove(d) != nil {
				break
			}
		}
	}
	return removed, nil
}

func relative(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return rel
	}
	return path
}
