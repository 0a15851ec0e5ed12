package mcp

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"tableflip.dev/nestlist/pkg/store"
)

const shutdownGrace = 5 * time.Second

// Runner serves one Service until ctx is done.
type Runner struct {
	Service  *Service
	Settings store.MCPSettings
	Name     string
	Version  string

	// OnListening is called with the bound address before HTTP requests are
	// accepted.
	OnListening func(addr net.Addr, tls bool)
}

// Do validates the settings, builds the server and blocks serving it.
func (r Runner) Do(ctx context.Context) error {
	if r.Service == nil || r.Service.App == nil {
		return errors.New("mcp: runner requires a service")
	}
	if err := r.Settings.Validate(); err != nil {
		return err
	}

	srv := r.Service.NewServer(r.Name, r.Version)
	log := r.Service.App.Logger().WithFields(logrus.Fields{
		"transport": r.Settings.Transport,
		"document":  r.Service.Document,
	})

	if r.Settings.Transport == store.TransportStdio {
		log.Info("serving MCP on stdio")
		return server.ServeStdio(srv)
	}
	return r.serveHTTP(ctx, srv, log)
}

func (r Runner) serveHTTP(ctx context.Context, srv *server.MCPServer, log *logrus.Entry) error {
	ln, err := net.Listen("tcp", r.Settings.Address())
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle(r.Settings.Endpoint(), server.NewStreamableHTTPServer(srv))
	hs := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	stop := context.AfterFunc(ctx, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := hs.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("MCP shutdown")
		}
	})
	defer stop()

	log.WithFields(logrus.Fields{
		"addr":     ln.Addr().String(),
		"endpoint": r.Settings.Endpoint(),
	}).Info("serving MCP over HTTP")
	if r.OnListening != nil {
		r.OnListening(ln.Addr(), r.Settings.TLS())
	}

	if r.Settings.TLS() {
		err = hs.ServeTLS(ln, r.Settings.TLSCert, r.Settings.TLSKey)
	} else {
		err = hs.Serve(ln)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
