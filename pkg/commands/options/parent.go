package options

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/nestlist/pkg/tree"
)

// ParentOptions
type ParentOptions struct {
	Parent string
	Child  bool
	Kind   string
}

func AddParentArgs(cmd *cobra.Command, o *ParentOptions) {
	cmd.Flags().StringVarP(&o.Parent, "parent", "p", "",
		`Parent item id, or "root".`)
	cmd.Flags().BoolVarP(&o.Child, "child", "c", false,
		"Add under the active item.")
	cmd.Flags().StringVarP(&o.Kind, "kind", "k", "folder",
		"folder or leaf. Leaves cannot hold children.")
	_ = cmd.RegisterFlagCompletionFunc("kind", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{tree.Folder.String(), tree.Leaf.String()}, cobra.ShellCompDirectiveNoFileComp
	})
}

// ParseParent reads an item id or "root".
func ParseParent(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	switch strings.ToLower(raw) {
	case "", "root", "-1":
		return tree.NoParent, nil
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("invalid parent %q, expected an item id or root", raw)
	}
	return id, nil
}
