package commands

import (
	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/nestlist/pkg/runner/docs"
)

func addDocs(topLevel *cobra.Command) {
	var del string

	cmd := &cobra.Command{
		Use:     "docs",
		Aliases: []string{"documents"},
		Short:   "List saved documents",
		Example: `
nestlist docs
nestlist docs --delete scratch
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return oo.HandleError(err)
			}
			s := docs.Docs{
				Delete:  del,
				Current: do.Name,
				Service: svc,
				Out:     cmd.OutOrStdout(),
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&del, "delete", "", "Delete the named document.")
	_ = cmd.RegisterFlagCompletionFunc("delete", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return documentCompletions(cmd, toComplete), cobra.ShellCompDirectiveNoFileComp
	})
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
