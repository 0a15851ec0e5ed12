// Package move contains the runners that change where the active item hangs:
// `nestlist mv`, `indent`, `outdent` and `step`.
package move

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"tableflip.dev/nestlist/pkg/app"
	"tableflip.dev/nestlist/pkg/printers"
	"tableflip.dev/nestlist/pkg/tree"
)

// Move reparents the active item under ParentID, or the root for
// tree.NoParent.
type Move struct {
	ParentID int

	Document string
	Service  *app.Service
	Out      io.Writer
}

func (n *Move) Do(ctx context.Context) error {
	return run(ctx, n.Service, n.Document, n.Out, func(s *app.Session) error {
		return s.Move(n.ParentID)
	})
}

// Indent makes the active item the last child of its previous sibling.
type Indent struct {
	Document string
	Service  *app.Service
	Out      io.Writer
}

func (n *Indent) Do(ctx context.Context) error {
	return run(ctx, n.Service, n.Document, n.Out, (*app.Session).Indent)
}

// Outdent lifts the active item out of its parent.
type Outdent struct {
	Document string
	Service  *app.Service
	Out      io.Writer
}

func (n *Outdent) Do(ctx context.Context) error {
	return run(ctx, n.Service, n.Document, n.Out, (*app.Session).Outdent)
}

// Step moves the active item one place up or down the listing, past its
// neighbour. Action picks how; when it is empty the only movement on offer
// is taken.
type Step struct {
	Direction tree.Direction
	Action    string

	Document string
	Service  *app.Service
	Out      io.Writer
}

func (n *Step) Do(ctx context.Context) error {
	return run(ctx, n.Service, n.Document, n.Out, func(s *app.Session) error {
		if n.Action != "" {
			action, err := tree.ParseAction(n.Action)
			if err != nil {
				return err
			}
			return s.Step(n.Direction, action)
		}

		moves, err := s.Movements(n.Direction)
		if err != nil {
			return err
		}
		switch len(moves) {
		case 0:
			return fmt.Errorf("%w: nothing to step %s", app.ErrRejected, n.Direction)
		case 1:
			return s.Step(n.Direction, moves[0].Action)
		}
		names := make([]string, 0, len(moves))
		for _, m := range moves {
			names = append(names, m.Action.String())
		}
		return fmt.Errorf("%w: stepping %s can %s, pick one", ErrAmbiguous, n.Direction, strings.Join(names, ", "))
	})
}

// ErrAmbiguous is returned by Step when several movements are on offer and
// none was named.
var ErrAmbiguous = errors.New("move: ambiguous step")

func run(ctx context.Context, svc *app.Service, doc string, out io.Writer, fn func(*app.Session) error) error {
	if svc == nil {
		return errors.New("can not move, no service")
	}
	sess, err := svc.Update(ctx, doc, fn)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: true, Out: out}
	pp.Document(sess.Name, sess.Entries(), sess.ActiveIndex)
	return nil
}
