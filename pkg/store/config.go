package store

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	// DefaultDocument is opened when no document is named.
	DefaultDocument = "default"
	defaultPath     = "~/.nestlist"
	defaultLogLevel = "warn"

	// TransportHTTP serves MCP over streamable HTTP.
	TransportHTTP = "http"
	// TransportStdio serves MCP over stdin and stdout.
	TransportStdio = "stdio"

	defaultMCPHost = "127.0.0.1"
	defaultMCPPort = 8080
	defaultMCPPath = "/mcp"
)

// Config locates persisted documents and carries process-wide settings.
type Config interface {
	BasePath() string
	Document() string
	LogLevel() string
	MCP() MCPSettings
}

// MCPSettings configures `nestlist mcp`. It is read from the mcp section of
// the config file or NESTLIST_MCP_* variables. Port zero picks a free port.
type MCPSettings struct {
	Transport string
	Host      string
	Port      int
	Path      string
	TLSCert   string
	TLSKey    string
}

// Address is host:port for the HTTP listener.
func (m MCPSettings) Address() string {
	host := strings.TrimSpace(m.Host)
	if host == "" {
		host = defaultMCPHost
	}
	return net.JoinHostPort(host, strconv.Itoa(m.Port))
}

// Endpoint is the HTTP path the server answers on, always with a leading
// slash.
func (m MCPSettings) Endpoint() string {
	p := strings.TrimSpace(m.Path)
	switch {
	case p == "":
		return defaultMCPPath
	case !strings.HasPrefix(p, "/"):
		return "/" + p
	default:
		return p
	}
}

// TLS reports whether HTTPS is configured.
func (m MCPSettings) TLS() bool {
	return m.TLSCert != "" && m.TLSKey != ""
}

// Validate checks the transport, the port range and that TLS files come in
// pairs.
func (m MCPSettings) Validate() error {
	switch m.Transport {
	case TransportHTTP, TransportStdio:
	default:
		return fmt.Errorf("store: unsupported mcp transport %q (expected http or stdio)", m.Transport)
	}
	if m.Port < 0 || m.Port > 65535 {
		return fmt.Errorf("store: invalid mcp port %d", m.Port)
	}
	if (m.TLSCert == "") != (m.TLSKey == "") {
		return errors.New("store: mcp tls-cert and tls-key must be set together")
	}
	return nil
}

func (m MCPSettings) withDefaults() MCPSettings {
	m.Transport = strings.ToLower(strings.TrimSpace(m.Transport))
	if m.Transport == "" {
		m.Transport = TransportHTTP
	}
	if strings.TrimSpace(m.Host) == "" {
		m.Host = defaultMCPHost
	}
	if m.Path == "" {
		m.Path = defaultMCPPath
	}
	return m
}

// LoadConfig reads .nestlist.yaml from $NESTLIST_CONFIG_PATH, the working
// directory or $HOME, then applies NESTLIST_* environment overrides.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", defaultPath)
	v.SetDefault("document", DefaultDocument)
	v.SetDefault("log-level", defaultLogLevel)
	v.SetDefault("mcp.transport", TransportHTTP)
	v.SetDefault("mcp.host", defaultMCPHost)
	v.SetDefault("mcp.port", defaultMCPPort)
	v.SetDefault("mcp.path", defaultMCPPath)
	v.SetDefault("mcp.tls-cert", "")
	v.SetDefault("mcp.tls-key", "")
	v.SetConfigName(".nestlist")
	v.SetEnvPrefix("NESTLIST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("NESTLIST_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, err
	}
	server := MCPSettings{
		Transport: v.GetString("mcp.transport"),
		Host:      v.GetString("mcp.host"),
		Port:      v.GetInt("mcp.port"),
		Path:      v.GetString("mcp.path"),
		TLSCert:   v.GetString("mcp.tls-cert"),
		TLSKey:    v.GetString("mcp.tls-key"),
	}
	return StaticConfig{
		Path:   path,
		Doc:    v.GetString("document"),
		Level:  v.GetString("log-level"),
		Server: server,
	}, nil
}

// StaticConfig is a Config with fixed values. Empty fields fall back to the
// defaults.
type StaticConfig struct {
	Path   string
	Doc    string
	Level  string
	Server MCPSettings
}

func (c StaticConfig) BasePath() string { return c.Path }

func (c StaticConfig) Document() string {
	if c.Doc == "" {
		return DefaultDocument
	}
	return c.Doc
}

func (c StaticConfig) LogLevel() string {
	if c.Level == "" {
		return defaultLogLevel
	}
	return c.Level
}

func (c StaticConfig) MCP() MCPSettings { return c.Server.withDefaults() }
