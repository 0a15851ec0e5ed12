package commands

import (
	"strings"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/nestlist/pkg/commands/options"
	"tableflip.dev/nestlist/pkg/runner/add"
	"tableflip.dev/nestlist/pkg/snake"
	"tableflip.dev/nestlist/pkg/tree"
)

func addAdd(topLevel *cobra.Command) {
	po := &options.ParentOptions{}
	io := &options.InteractiveOptions{}
	var name string

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add an item as the last child of a parent",
		Long: base.Wrap80(`Add an item. Without --parent or --child it goes to the root. ` +
			`An empty name becomes "Item <id>". The new item becomes the active item.`),
		Example: `
nestlist add Groceries
nestlist add Milk --parent 0
nestlist add --child Eggs --kind leaf
nestlist add -i
`,
		Args: func(cmd *cobra.Command, args []string) error {
			name = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return oo.HandleError(err)
			}
			parentID, err := options.ParseParent(po.Parent)
			if err != nil {
				return oo.HandleError(err)
			}
			kind, err := tree.ParseKind(po.Kind)
			if err != nil {
				return oo.HandleError(err)
			}

			if io.Interactive {
				sess, err := svc.Open(cmd.Context(), do.Name)
				if err != nil {
					return oo.HandleError(err)
				}
				if name == "" {
					if name, err = snake.PromptName(cmd, "Name", ""); err != nil {
						return err
					}
				}
				if po.Parent == "" && !po.Child {
					if parentID, err = snake.PromptChoice(cmd, "Parent", snake.ParentChoices(sess.Entries(), -1)); err != nil {
						return err
					}
				}
			}

			s := add.Add{
				Name:     name,
				ParentID: parentID,
				Child:    po.Child,
				Kind:     kind,
				Document: do.Name,
				Service:  svc,
				Out:      cmd.OutOrStdout(),
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddParentArgs(cmd, po)
	options.InteractiveArgs(cmd, io)
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
