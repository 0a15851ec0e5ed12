package commands

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/nestlist/pkg/store"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(nestlist completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(nestlist completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletionV2(os.Stdout, true)
		},
	}

	_ = topLevel.RegisterFlagCompletionFunc("doc", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return documentCompletions(cmd, toComplete), cobra.ShellCompDirectiveNoFileComp
	})
	topLevel.AddCommand(cmd)
}

func documentCompletions(cmd *cobra.Command, toComplete string) []string {
	p, err := store.Load(nil)
	if err != nil {
		return nil
	}
	var out []string
	for _, name := range p.Documents(cmd.Context()) {
		if strings.HasPrefix(name, toComplete) {
			out = append(out, name)
		}
	}
	return out
}
