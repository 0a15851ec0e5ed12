package commands

import (
	"github.com/spf13/cobra"

	teaui "tableflip.dev/nestlist/pkg/runner/tea"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the interactive panel",
		Example: `
nestlist ui
nestlist ui --doc work
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			i := teaui.UI{Service: svc, Document: do.Name}
			return i.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
