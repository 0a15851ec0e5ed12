package options

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// ExportOptions
type ExportOptions struct {
	Format string
}

func AddExportArgs(cmd *cobra.Command, o *ExportOptions) {
	cmd.Flags().StringVarP(&o.Format, "output", "o", "json",
		"Output format. One of 'json' or 'yaml'.")
}

func (o *ExportOptions) Validate() error {
	switch strings.ToLower(o.Format) {
	case "json", "yaml":
		o.Format = strings.ToLower(o.Format)
		return nil
	}
	return fmt.Errorf("unsupported output %q (expected json or yaml)", o.Format)
}
