package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/builtfast/vector-cli/src/client/output"
	"github.com/builtfast/vector-cli/src/common/version"
)

func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			s := a.session
			info := version.Get()
			if s.out.Mode == output.JSON {
				return s.out.Value(info)
			}
			if _, err := fmt.Fprintf(s.out.Out, "%s\n\n%s\n", info, info.Full()); err != nil {
				return err
			}
			if version.IsDev() {
				_, err := fmt.Fprintln(s.out.Out, "\nDevelopment build")
				return err
			}
			return nil
		},
	}
}
