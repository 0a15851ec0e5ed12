// Package docs contains the runner for `nestlist docs`.
package docs

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/nestlist/pkg/app"
	"tableflip.dev/nestlist/pkg/printers"
)

// Docs lists saved documents, or deletes one when Delete is set.
type Docs struct {
	Delete string
	// Current is marked in the listing.
	Current string

	Service *app.Service
	Out     io.Writer
}

func (n *Docs) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not list documents, no service")
	}
	if n.Delete != "" {
		return n.Service.Delete(ctx, n.Delete)
	}

	names, err := n.Service.Documents(ctx)
	if err != nil {
		return err
	}

	w := n.Out
	if w == nil {
		w = color.Output
	}
	pp := printers.PrettyPrint{Out: w}
	pp.TitleWithCount("documents", len(names))
	cur := color.New(color.FgHiCyan, color.Bold)
	for _, name := range names {
		if name == n.Current {
			_, _ = cur.Fprintf(w, "> %s\n", name)
			continue
		}
		_, _ = fmt.Fprintf(w, "  %s\n", name)
	}
	return nil
}
