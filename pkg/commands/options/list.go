package options

import (
	"github.com/spf13/cobra"
)

// ListOptions
type ListOptions struct {
	ShowID bool
	Long   bool
	Width  int
}

func AddListArgs(cmd *cobra.Command, o *ListOptions) {
	cmd.Flags().BoolVarP(&o.ShowID, "show-id", "k", false,
		"Show the id of each item.")
	cmd.Flags().BoolVarP(&o.Long, "long", "l", false,
		"Show ids, parents and orders as a table.")
	cmd.Flags().IntVar(&o.Width, "width", 0,
		"Truncate names to this many columns. 0 disables truncation.")
}
