package cli

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/syssam/gelx/config"
)

type initOptions struct {
	Package string
	Force   bool
}

func newInitCommand(root *RootOptions) *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default " + config.FileName,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := config.Default()
			c.Package = opts.Package
			path, err := c.WriteFile(root.Cwd, opts.Force)
			if err != nil {
				return err
			}
			pterm.Fprintln(cmd.OutOrStdout(), pterm.Green("created"), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Package, "package", "", "import path of the output directory (derived from go.mod when empty)")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "overwrite an existing "+config.FileName)

	return cmd
}
