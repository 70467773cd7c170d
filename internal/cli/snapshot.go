package cli

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/syssam/gelx/compiler/introspect"
)

func newSnapshotCommand(root *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot <file>",
		Short: "Record the introspection data generation uses into a new snapshot",
		Long: `Run generation and record every catalog row, global and query signature it
consumed into <file>. The format follows the extension: .msgpack for binary,
YAML otherwise. Use it to convert a snapshot or drop signatures of deleted
queries.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(root)
			if err != nil {
				return err
			}
			rec := introspect.NewRecorder(p.svc)
			p.svc = rec
			if _, _, err := p.generate(cmd.Context()); err != nil {
				return err
			}
			snap := rec.Snapshot()
			if err := snap.Save(args[0]); err != nil {
				return errors.Wrap(err, "save snapshot")
			}
			pterm.Fprintln(cmd.OutOrStdout(), pterm.Green("recorded"),
				fmt.Sprintf("%d types, %d globals, %d queries to %s", len(snap.Types), len(snap.Globals), len(snap.Queries), args[0]))
			return nil
		},
	}
}
