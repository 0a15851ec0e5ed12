package commands

import (
	"fmt"
	"net"
	"strings"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"tableflip.dev/nestlist/pkg/runner/mcp"
	"tableflip.dev/nestlist/pkg/store"
)

func addMCP(topLevel *cobra.Command) {
	var flags store.MCPSettings

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "start the Model Context Protocol server",
		Long: base.Wrap80(`Launch an MCP server that lets an agent list, add, remove, move, step and
reorder items of a document. Tool calls default to the document chosen with --doc.
Defaults come from the mcp section of .nestlist.yaml or NESTLIST_MCP_* variables; flags win.`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}

			settings := overrideMCP(cfg.MCP(), flags, cmd.Flags())
			runner := mcp.Runner{
				Service:  mcp.NewService(svc, do.Name),
				Settings: settings,
				Name:     "nestlist",
				Version:  version,
				OnListening: func(a net.Addr, tls bool) {
					scheme := "http"
					if tls {
						scheme = "https"
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on %s://%s%s\n",
						scheme, a.String(), settings.Endpoint())
				},
			}
			return runner.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&flags.Transport, "transport", store.TransportHTTP, "transport to use: http or stdio")
	cmd.Flags().StringVar(&flags.Host, "http-host", "127.0.0.1", "host/interface for HTTP transport")
	cmd.Flags().IntVar(&flags.Port, "http-port", 8080, "port for HTTP transport (use 0 for random)")
	cmd.Flags().StringVar(&flags.Path, "http-path", "/mcp", "HTTP endpoint path")
	cmd.Flags().StringVar(&flags.TLSCert, "http-tls-cert", "", "TLS certificate file for HTTPS")
	cmd.Flags().StringVar(&flags.TLSKey, "http-tls-key", "", "TLS private key file for HTTPS")

	topLevel.AddCommand(cmd)
}

// overrideMCP replaces configured values with the flags set on the command
// line.
func overrideMCP(settings, flags store.MCPSettings, fs *pflag.FlagSet) store.MCPSettings {
	if fs.Changed("transport") {
		settings.Transport = strings.ToLower(strings.TrimSpace(flags.Transport))
	}
	if fs.Changed("http-host") {
		settings.Host = strings.TrimSpace(flags.Host)
	}
	if fs.Changed("http-port") {
		settings.Port = flags.Port
	}
	if fs.Changed("http-path") {
		settings.Path = flags.Path
	}
	if fs.Changed("http-tls-cert") {
		settings.TLSCert = strings.TrimSpace(flags.TLSCert)
	}
	if fs.Changed("http-tls-key") {
		settings.TLSKey = strings.TrimSpace(flags.TLSKey)
	}
	return settings
}
