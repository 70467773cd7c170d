package cli

import (
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/syssam/gelx/compiler/gen"
)

func newCheckCommand(root *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify that the generated code is up to date",
		Long: `Generate in memory and compare the result with the files on disk.

Lists every added, removed or changed file with a unified diff and exits
non-zero when anything differs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(root)
			if err != nil {
				return err
			}
			_, want, err := p.generate(cmd.Context())
			if err != nil {
				return err
			}
			have, err := gen.ReadTree(p.cfg.OutputDir())
			if err != nil {
				return stageError("read output", err)
			}
			diffs, err := gen.Diff(want, have)
			if err != nil {
				return stageError("diff", err)
			}
			return reportDiffs(cmd.OutOrStdout(), diffs, want.Len())
		},
	}
}

func reportDiffs(w io.Writer, diffs []gen.FileDiff, total int) error {
	if len(diffs) == 0 {
		pterm.Fprintln(w, pterm.Green("up to date"), fmt.Sprintf("%d files", total))
		return nil
	}
	for _, d := range diffs {
		pterm.Fprintln(w, statusLabel(d.Status), d.Path)
		if d.Unified != "" {
			pterm.Fprint(w, d.Unified)
		}
	}
	return errors.WithHint(
		errors.Newf("%d generated files are out of date", len(diffs)),
		"run gelx generate",
	)
}

func statusLabel(s gen.DiffStatus) string {
	switch s {
	case gen.Added:
		return pterm.Green(s.String())
	case gen.Removed:
		return pterm.Red(s.String())
	default:
		return pterm.Yellow(s.String())
	}
}
