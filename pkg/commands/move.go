package commands

import (
	"errors"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/nestlist/pkg/app"
	"tableflip.dev/nestlist/pkg/commands/options"
	"tableflip.dev/nestlist/pkg/runner/move"
	"tableflip.dev/nestlist/pkg/snake"
)

func addMove(topLevel *cobra.Command) {
	io := &options.InteractiveOptions{}
	var target string

	cmd := &cobra.Command{
		Use:     "mv <parent-id|root>",
		Aliases: []string{"move"},
		Short:   "Reparent the active item",
		Long: base.Wrap80("Move the active item, with its subtree, to the end of another item's children " +
			"or to the root. Moving an item under itself or one of its descendants is refused."),
		Example: `
nestlist mv 3
nestlist mv root
nestlist mv -i
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if io.Interactive {
				return nil
			}
			if len(args) != 1 {
				return errors.New("requires a parent id or root")
			}
			target = args[0]
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return oo.HandleError(err)
			}

			var parentID int
			if io.Interactive {
				sess, err := svc.Open(cmd.Context(), do.Name)
				if err != nil {
					return oo.HandleError(err)
				}
				item, ok := sess.Active()
				if !ok {
					return oo.HandleError(app.ErrNoSelection)
				}
				if parentID, err = snake.PromptChoice(cmd, "Move "+item.Name+" under", snake.ParentChoices(sess.Entries(), item.ID)); err != nil {
					return err
				}
			} else if parentID, err = options.ParseParent(target); err != nil {
				return oo.HandleError(err)
			}

			s := move.Move{
				ParentID: parentID,
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

func addIndent(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "indent",
		Short: "Make the active item the last child of its previous sibling",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return oo.HandleError(err)
			}
			s := move.Indent{Document: do.Name, Service: svc, Out: cmd.OutOrStdout()}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addOutdent(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "outdent",
		Short: "Move the active item out of its parent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return oo.HandleError(err)
			}
			s := move.Outdent{Document: do.Name, Service: svc, Out: cmd.OutOrStdout()}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
