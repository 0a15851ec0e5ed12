// Package get contains the runner for `nestlist ls`.
package get

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/nestlist/pkg/app"
	"tableflip.dev/nestlist/pkg/printers"
)

type Get struct {
	ShowID bool
	Long   bool
	Width  int

	Document string
	Service  *app.Service
	Out      io.Writer
}

func (n *Get) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not get, no service")
	}
	sess, err := n.Service.Open(ctx, n.Document)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Width: n.Width, Out: n.Out}
	if n.Long {
		pp.TitleWithCount(sess.Name, sess.Tree.Len())
		pp.Table(sess.Entries(), sess.ActiveIndex)
		return nil
	}
	pp.Document(sess.Name, sess.Entries(), sess.ActiveIndex)
	return nil
}
