package commands

import (
	"errors"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/nestlist/pkg/commands/options"
	"tableflip.dev/nestlist/pkg/runner/move"
	"tableflip.dev/nestlist/pkg/snake"
	"tableflip.dev/nestlist/pkg/tree"
)

func addStep(topLevel *cobra.Command) {
	io := &options.InteractiveOptions{}
	var (
		dir    tree.Direction
		action string
	)

	cmd := &cobra.Command{
		Use:   "step <up|down> [skip|into|adjacent|out]",
		Short: "Move the active item one line up or down the listing",
		Long: base.Wrap80(`Step the active item past its neighbour in the listing. ` +
			`skip swaps it with its sibling, into enters the neighbouring folder, ` +
			`adjacent joins the neighbour's group and out leaves the parent. ` +
			`Without an action the only possible one is taken.`),
		Example: `
nestlist step up
nestlist step down into
nestlist step up -i
`,
		ValidArgs: []string{"up", "down"},
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 || len(args) > 2 {
				return errors.New("requires a direction and an optional action")
			}
			var err error
			if dir, err = tree.ParseDirection(args[0]); err != nil {
				return err
			}
			if len(args) == 2 {
				action = args[1]
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return oo.HandleError(err)
			}

			if io.Interactive && action == "" {
				sess, err := svc.Open(cmd.Context(), do.Name)
				if err != nil {
					return oo.HandleError(err)
				}
				moves, err := sess.Movements(dir)
				if err != nil {
					return oo.HandleError(err)
				}
				if len(moves) > 1 {
					item, _ := sess.Active()
					i, err := snake.PromptChoice(cmd, "Step "+item.Name+" "+dir.String(), snake.MovementChoices(sess.Tree, moves))
					if err != nil {
						return err
					}
					action = moves[i].Action.String()
				}
			}

			s := move.Step{
				Direction: dir,
				Action:    action,
				Document:  do.Name,
				Service:   svc,
				Out:       cmd.OutOrStdout(),
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.InteractiveArgs(cmd, io)
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
