// Package reorder contains the runner for `nestlist up` and `nestlist down`.
package reorder

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/nestlist/pkg/app"
	"tableflip.dev/nestlist/pkg/printers"
	"tableflip.dev/nestlist/pkg/tree"
)

// Reorder swaps the active item with its previous (Up) or next (Down)
// sibling.
type Reorder struct {
	Direction tree.Direction

	Document string
	Service  *app.Service
	Out      io.Writer
}

func (n *Reorder) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not reorder, no service")
	}
	sess, err := n.Service.Update(ctx, n.Document, func(s *app.Session) error {
		return s.Reorder(n.Direction)
	})
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: true, Out: n.Out}
	pp.Document(sess.Name, sess.Entries(), sess.ActiveIndex)
	return nil
}
