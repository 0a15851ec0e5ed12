// Package add contains the runner for `nestlist add`.
package add

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/nestlist/pkg/app"
	"tableflip.dev/nestlist/pkg/printers"
	"tableflip.dev/nestlist/pkg/tree"
)

// Add configures the parameters for `nestlist add`.
type Add struct {
	Name     string
	ParentID int
	// Child adds under the active item and ignores ParentID.
	Child bool
	Kind  tree.Kind

	Document string
	Service  *app.Service
	Out      io.Writer
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add, no service")
	}
	var id int
	sess, err := n.Service.Update(ctx, n.Document, func(s *app.Session) error {
		var err error
		if n.Child {
			id, err = s.AddChild(n.Name, n.Kind)
		} else {
			id, err = s.AddKind(n.Name, n.ParentID, n.Kind)
		}
		return err
	})
	if err != nil {
		return err
	}
	n.Service.Logger().WithField("id", id).Debug("added")

	pp := printers.PrettyPrint{ShowID: true, Out: n.Out}
	pp.Document(sess.Name, sess.Entries(), sess.ActiveIndex)
	return nil
}
