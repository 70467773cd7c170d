// Package cli implements the gelx command line.
package cli

import (
	"context"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/syssam/gelx/config"
	"github.com/syssam/gelx/internal/logger"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	LogJSON bool
	Cwd     string
}

// NewRootCommand creates the root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "gelx",
		Short: "Generate typed Go code from a Gel schema and EdgeQL queries",
		Long: `gelx introspects a Gel database schema and the EdgeQL files of a project
and generates Go types for every schema type plus a typed wrapper per query.

Examples:
  gelx init --package example.com/app/internal/db
  gelx generate
  gelx generate --watch
  gelx check`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Initialize(opts.Verbose, opts.LogJSON)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log every generation stage")
	cmd.PersistentFlags().BoolVar(&opts.LogJSON, "log-json", false, "emit logs as JSON")
	cmd.PersistentFlags().StringVar(&opts.Cwd, "cwd", ".", "directory to search for "+config.FileName+" from")

	cmd.AddCommand(newGenerateCommand(opts))
	cmd.AddCommand(newCheckCommand(opts))
	cmd.AddCommand(newInlineCommand(opts))
	cmd.AddCommand(newInitCommand(opts))
	cmd.AddCommand(newSnapshotCommand(opts))

	return cmd
}

// Execute runs the command line with args and returns the exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	err := cmd.ExecuteContext(ctx)
	logger.Sync()
	if err == nil {
		return 0
	}
	var reported *reportedError
	if !errors.As(err, &reported) {
		Report(stderr, err)
	}
	return 1
}

// Report prints err and every hint attached to it.
func Report(w io.Writer, err error) {
	pterm.Fprintln(w, pterm.Red("error:"), err.Error())
	for _, hint := range errors.GetAllHints(err) {
		pterm.Fprintln(w, pterm.Cyan("hint:"), hint)
	}
}

// reportedError is a failure the command already printed.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }
