// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"
)

// DocumentOptions selects the document a command works on.
type DocumentOptions struct {
	Name    string
	Verbose bool
}

// AddDocumentArgs wires the persistent document flags on the root command.
func AddDocumentArgs(cmd *cobra.Command, o *DocumentOptions) {
	cmd.PersistentFlags().StringVarP(&o.Name, "doc", "d", "",
		"Document to operate on. Defaults to the configured document.")
	cmd.PersistentFlags().BoolVarP(&o.Verbose, "verbose", "v", false,
		"Log at debug level.")
}
