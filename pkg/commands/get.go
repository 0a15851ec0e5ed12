package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/nestlist/pkg/commands/options"
	"tableflip.dev/nestlist/pkg/runner/get"
)

func addGet(topLevel *cobra.Command) {
	lo := &options.ListOptions{}

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list", "get"},
		Short:   "Show the document in display order",
		Example: `
nestlist ls
nestlist ls --show-id
nestlist ls --long --doc work
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return oo.HandleError(err)
			}
			s := get.Get{
				ShowID:   lo.ShowID,
				Long:     lo.Long,
				Width:    lo.Width,
				Document: do.Name,
				Service:  svc,
				Out:      cmd.OutOrStdout(),
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddListArgs(cmd, lo)
	topLevel.AddCommand(cmd)
}
