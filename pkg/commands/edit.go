package commands

import (
	"errors"
	"strconv"
	"strings"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/nestlist/pkg/runner/edit"
	"tableflip.dev/nestlist/pkg/tree"
)

func addSelect(topLevel *cobra.Command) {
	var index int

	cmd := &cobra.Command{
		Use:   "select <index>",
		Short: "Make the item at a position of the listing active",
		Example: `
nestlist ls
nestlist select 2
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a position from nestlist ls")
			}
			var err error
			index, err = strconv.Atoi(args[0])
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return oo.HandleError(err)
			}
			s := edit.Select{Index: index, Document: do.Name, Service: svc, Out: cmd.OutOrStdout()}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addRename(topLevel *cobra.Command) {
	var name string

	cmd := &cobra.Command{
		Use:   "rename <name>",
		Short: "Rename the active item",
		Args: func(cmd *cobra.Command, args []string) error {
			name = strings.TrimSpace(strings.Join(args, " "))
			if name == "" {
				return errors.New("requires a new name")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return oo.HandleError(err)
			}
			s := edit.Rename{Name: name, Document: do.Name, Service: svc, Out: cmd.OutOrStdout()}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addKind(topLevel *cobra.Command) {
	var kind tree.Kind

	cmd := &cobra.Command{
		Use:       "kind <folder|leaf>",
		Short:     "Make the active item a folder or a leaf",
		Long:      base.Wrap80("Folders hold children, leaves do not. A folder that still has children cannot become a leaf."),
		ValidArgs: []string{tree.Folder.String(), tree.Leaf.String()},
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires folder or leaf")
			}
			var err error
			kind, err = tree.ParseKind(args[0])
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return oo.HandleError(err)
			}
			s := edit.Kind{Kind: kind, Document: do.Name, Service: svc, Out: cmd.OutOrStdout()}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addNormalize(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Renumber sibling orders from zero without changing the listing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return oo.HandleError(err)
			}
			s := edit.Normalize{Document: do.Name, Service: svc, Out: cmd.OutOrStdout()}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
