package commands

import (
	"fmt"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/nestlist/pkg/app"
	"tableflip.dev/nestlist/pkg/commands/options"
	"tableflip.dev/nestlist/pkg/runner/remove"
	"tableflip.dev/nestlist/pkg/snake"
)

func addRemove(topLevel *cobra.Command) {
	io := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:     "rm",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove the active item and everything below it",
		Example: `
nestlist rm
nestlist rm -i
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return oo.HandleError(err)
			}

			if io.Interactive {
				sess, err := svc.Open(cmd.Context(), do.Name)
				if err != nil {
					return oo.HandleError(err)
				}
				item, ok := sess.Active()
				if !ok {
					return oo.HandleError(app.ErrNoSelection)
				}
				below := len(sess.Tree.Children(item.ID))
				yes, err := snake.PromptConfirm(cmd, fmt.Sprintf("Remove %q (%d direct children)", item.Name, below))
				if err != nil || !yes {
					return err
				}
			}

			s := remove.Remove{
				Document: do.Name,
				Service:  svc,
				Out:      cmd.OutOrStdout(),
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.InteractiveArgs(cmd, io)
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
