package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/syssam/gelx/compiler/gen"
)

type inlineOptions struct {
	Package string
	Output  string
}

func newInlineCommand(root *RootOptions) *cobra.Command {
	opts := &inlineOptions{}

	cmd := &cobra.Command{
		Use:   "inline <query-file>",
		Short: "Generate one self-contained file for a query, for go:generate",
		Long: `Generate a single self-contained Go file for one query.

Intended for go:generate directives:

  //go:generate gelx inline queries/get_user.edgeql

The package defaults to $GOPACKAGE. Failures are reported as
$GOFILE:$GOLINE: gelx: <message> so they point at the directive.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runInline(cmd, root, opts, args[0])
			if err == nil {
				return nil
			}
			file, line := os.Getenv("GOFILE"), os.Getenv("GOLINE")
			if file == "" {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%s:%s: gelx: %s\n", file, line, err)
			return &reportedError{err: err}
		},
	}

	cmd.Flags().StringVarP(&opts.Package, "package", "p", os.Getenv("GOPACKAGE"), "package of the generated file")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", `output file, "-" for stdout (default <query>_gelx.go)`)

	return cmd
}

func runInline(cmd *cobra.Command, root *RootOptions, opts *inlineOptions, file string) error {
	if opts.Package == "" {
		return errors.WithHint(errors.New("no package name"), "run from go generate or pass --package")
	}
	p, err := loadProject(root)
	if err != nil {
		return err
	}
	cfg, err := p.cfg.InlineConfig()
	if err != nil {
		return stageError("configure", err)
	}
	src, err := p.generator(cfg).Inline(cmd.Context(), file, opts.Package)
	if err != nil {
		return stageError("inline", err)
	}

	out := opts.Output
	switch out {
	case "-":
		_, err := cmd.OutOrStdout().Write(src)
		return errors.Wrap(err, "write output")
	case "":
		out = strings.ToLower(gen.QueryName(file)) + "_gelx.go"
	}
	if err := os.WriteFile(out, src, 0o644); err != nil {
		return stageError("write", gen.NewWriteError(out, err))
	}
	return nil
}
