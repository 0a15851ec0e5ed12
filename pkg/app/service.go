// Package app provides the document session and the persistence-backed
// service shared by the CLI, the terminal panel and the MCP server.
package app

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"tableflip.dev/nestlist/pkg/store"
)

// Service opens, saves and lists sessions.
type Service struct {
	Persistence store.Persistence
	Log         *logrus.Entry
}

var errNoPersistence = errors.New("app: no persistence configured")

// Logger returns the service logger, falling back to the standard logger.
func (s *Service) Logger() *logrus.Entry {
	if s.Log == nil {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return s.Log
}

// Open loads the named document, or starts an empty one if it has never been
// saved.
func (s *Service) Open(ctx context.Context, name string) (*Session, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = store.DefaultDocument
	}
	doc, err := s.Persistence.Load(name)
	if errors.Is(err, store.ErrNotFound) {
		s.Logger().WithField("document", name).Debug("starting new document")
		return NewSession(name), nil
	}
	if err != nil {
		return nil, err
	}
	return FromDocument(doc)
}

// Save persists the session.
func (s *Service) Save(ctx context.Context, sess *Session) error {
	if s.Persistence == nil {
		return errNoPersistence
	}
	if err := s.Persistence.Save(sess.Document()); err != nil {
		s.Logger().WithField("document", sess.Name).WithError(err).Error("save failed")
		return err
	}
	s.Logger().WithFields(logrus.Fields{
		"document": sess.Name,
		"items":    sess.Tree.Len(),
		"active":   sess.ActiveIndex,
	}).Debug("saved")
	return nil
}

// Update opens a document, applies fn and saves the result when fn succeeds.
// Nothing is written if fn fails.
func (s *Service) Update(ctx context.Context, name string, fn func(*Session) error) (*Session, error) {
	sess, err := s.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := fn(sess); err != nil {
		s.Logger().WithField("document", sess.Name).WithError(err).Info("change not applied")
		return sess, err
	}
	if err := s.Save(ctx, sess); err != nil {
		return sess, err
	}
	return sess, nil
}

// Documents lists saved document names.
func (s *Service) Documents(ctx context.Context) ([]string, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.Documents(ctx), nil
}

// Delete removes a saved document.
func (s *Service) Delete(ctx context.Context, name string) error {
	if s.Persistence == nil {
		return errNoPersistence
	}
	if err := s.Persistence.Delete(name); err != nil {
		return err
	}
	s.Logger().WithField("document", name).Debug("deleted")
	return nil
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.Watch(ctx)
}
