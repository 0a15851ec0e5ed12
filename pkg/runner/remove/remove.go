// Package remove contains the runner for `nestlist rm`.
package remove

import (
	"context"
	"errors"
	"io"

	"github.com/sirupsen/logrus"

	"tableflip.dev/nestlist/pkg/app"
	"tableflip.dev/nestlist/pkg/printers"
	"tableflip.dev/nestlist/pkg/tree"
)

// Remove deletes the active item and everything below it.
type Remove struct {
	Document string
	Service  *app.Service
	Out      io.Writer

	// Removed holds what the last Do deleted.
	Removed []tree.Item
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not remove, no service")
	}
	sess, err := n.Service.Update(ctx, n.Document, func(s *app.Session) error {
		var err error
		n.Removed, err = s.Remove()
		return err
	})
	if err != nil {
		return err
	}
	n.Service.Logger().WithFields(logrus.Fields{
		"document": sess.Name,
		"removed":  len(n.Removed),
	}).Debug("removed")

	pp := printers.PrettyPrint{ShowID: true, Out: n.Out}
	pp.Document(sess.Name, sess.Entries(), sess.ActiveIndex)
	return nil
}
