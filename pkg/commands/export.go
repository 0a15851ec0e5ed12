package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/nestlist/pkg/commands/options"
	"tableflip.dev/nestlist/pkg/runner/export"
)

func addExport(topLevel *cobra.Command) {
	eo := &options.ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the flattened document as JSON or YAML",
		Example: `
nestlist export
nestlist export -o yaml --doc work
`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return eo.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			s := export.Export{
				Format:   eo.Format,
				Document: do.Name,
				Service:  svc,
				Out:      cmd.OutOrStdout(),
			}
			return s.Do(cmd.Context())
		},
	}

	options.AddExportArgs(cmd, eo)
	topLevel.AddCommand(cmd)
}
