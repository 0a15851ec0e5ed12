// Package edit contains runners that touch the active item or the cursor
// without moving anything: `select`, `rename`, `kind` and `normalize`.
package edit

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/nestlist/pkg/app"
	"tableflip.dev/nestlist/pkg/printers"
	"tableflip.dev/nestlist/pkg/tree"
)

// Select moves the cursor to a flattened index.
type Select struct {
	Index int

	Document string
	Service  *app.Service
	Out      io.Writer
}

func (n *Select) Do(ctx context.Context) error {
	return run(ctx, n.Service, n.Document, n.Out, func(s *app.Session) error {
		return s.Select(n.Index)
	})
}

// Rename changes the name of the active item.
type Rename struct {
	Name string

	Document string
	Service  *app.Service
	Out      io.Writer
}

func (n *Rename) Do(ctx context.Context) error {
	if n.Name == "" {
		return errors.New("a new name is required")
	}
	return run(ctx, n.Service, n.Document, n.Out, func(s *app.Session) error {
		return s.Rename(n.Name)
	})
}

// Kind turns the active item into a folder or a leaf.
type Kind struct {
	Kind tree.Kind

	Document string
	Service  *app.Service
	Out      io.Writer
}

func (n *Kind) Do(ctx context.Context) error {
	return run(ctx, n.Service, n.Document, n.Out, func(s *app.Session) error {
		return s.SetKind(n.Kind)
	})
}

// Normalize renumbers sibling orders from zero.
type Normalize struct {
	Document string
	Service  *app.Service
	Out      io.Writer
}

func (n *Normalize) Do(ctx context.Context) error {
	return run(ctx, n.Service, n.Document, n.Out, func(s *app.Session) error {
		s.Normalize()
		return nil
	})
}

func run(ctx context.Context, svc *app.Service, doc string, out io.Writer, fn func(*app.Session) error) error {
	if svc == nil {
		return errors.New("can not edit, no service")
	}
	sess, err := svc.Update(ctx, doc, fn)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: true, Out: out}
	pp.Document(sess.Name, sess.Entries(), sess.ActiveIndex)
	return nil
}
