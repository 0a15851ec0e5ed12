package commands

import (
	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/nestlist/pkg/runner/reorder"
	"tableflip.dev/nestlist/pkg/tree"
)

func addReorder(topLevel *cobra.Command) {
	for dir, neighbour := range map[tree.Direction]string{tree.Up: "previous", tree.Down: "next"} {
		dir := dir
		cmd := &cobra.Command{
			Use:   dir.String(),
			Short: "Swap the active item with its " + neighbour + " sibling",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				svc, err := newService()
				if err != nil {
					return oo.HandleError(err)
				}
				s := reorder.Reorder{
					Direction: dir,
					Document:  do.Name,
					Service:   svc,
					Out:       cmd.OutOrStdout(),
				}
				return oo.HandleError(s.Do(cmd.Context()))
			},
		}

		base.AddOutputArg(cmd, oo)
		topLevel.AddCommand(cmd)
	}
}
