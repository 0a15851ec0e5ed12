// Package mcp provides the Model Context Protocol server integration for
// nestlist.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"tableflip.dev/nestlist/pkg/app"
	"tableflip.dev/nestlist/pkg/tree"
)

// Service serialises document operations issued by MCP clients. Every call
// loads the document, applies one change and saves it under a single lock.
type Service struct {
	App *app.Service
	// Document is used when a call does not name one.
	Document string

	mu sync.Mutex
}

// ItemDTO is a transport-friendly projection of a flattened entry.
type ItemDTO struct {
	Index    int    `json:"index"`
	ID       int    `json:"id"`
	Name     string `json:"name"`
	ParentID int    `json:"parentId"`
	Order    int    `json:"order"`
	Kind     string `json:"kind"`
	Depth    int    `json:"depth"`
	Active   bool   `json:"active,omitempty"`
}

// MovementDTO is one way an item can step past its neighbour.
type MovementDTO struct {
	Action     string `json:"action"`
	TargetID   int    `json:"targetId"`
	TargetName string `json:"targetName"`
}

// DocumentDTO is the flattened view of a document.
type DocumentDTO struct {
	Name        string    `json:"name"`
	ActiveIndex int       `json:"activeIndex"`
	Count       int       `json:"count"`
	Items       []ItemDTO `json:"items"`
}

// DocumentSummary describes a saved document.
type DocumentSummary struct {
	Name  string `json:"name"`
	Items int    `json:"items"`
}

// NewService builds a service over the provided app service.
func NewService(svc *app.Service, document string) *Service {
	return &Service{App: svc, Document: document}
}

// NewServer builds an MCP server exposing this service's documents as
// resources and its operations as tools.
func (s *Service) NewServer(name, version string) *server.MCPServer {
	if name == "" {
		name = "nestlist"
	}
	if version == "" {
		version = "dev"
	}
	instructions := "Read and rearrange nestlist documents: ordered trees of folders and leaves addressed by integer id."
	if s.Document != "" {
		instructions += fmt.Sprintf(" Calls without a document use %q.", s.Document)
	}
	srv := server.NewMCPServer(
		name+" MCP",
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions(instructions),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)
	registerResources(srv, s)
	registerTools(srv, s)
	return srv
}

func (s *Service) docName(name string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return s.Document
}

func (s *Service) update(ctx context.Context, doc string, fn func(*app.Session) error) (*DocumentDTO, error) {
	if s.App == nil {
		return nil, errors.New("mcp: app service is not configured")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.App.Update(ctx, s.docName(doc), fn)
	if err != nil {
		return nil, err
	}
	return toDocumentDTO(sess), nil
}

// Flatten returns the flattened view of a document.
func (s *Service) Flatten(ctx context.Context, doc string) (*DocumentDTO, error) {
	if s.App == nil {
		return nil, errors.New("mcp: app service is not configured")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.App.Open(ctx, s.docName(doc))
	if err != nil {
		return nil, err
	}
	return toDocumentDTO(sess), nil
}

// AddItem creates an item under parentID and returns it with the new view.
func (s *Service) AddItem(ctx context.Context, doc, name string, parentID int, kind tree.Kind) (*ItemDTO, *DocumentDTO, error) {
	var id int
	view, err := s.update(ctx, doc, func(sess *app.Session) error {
		var err error
		id, err = sess.AddKind(name, parentID, kind)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	item, err := view.item(id)
	if err != nil {
		return nil, nil, err
	}
	return item, view, nil
}

// RemoveItem deletes id and its descendants.
func (s *Service) RemoveItem(ctx context.Context, doc string, id int) ([]ItemDTO, *DocumentDTO, error) {
	var removed []tree.Item
	view, err := s.update(ctx, doc, func(sess *app.Session) error {
		var err error
		removed, err = sess.RemoveItem(id)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	out := make([]ItemDTO, 0, len(removed))
	for _, it := range removed {
		out = append(out, ItemDTO{Index: -1, ID: it.ID, Name: it.Name, ParentID: it.ParentID, Order: it.Order, Kind: it.Kind.String()})
	}
	return out, view, nil
}

// MoveItem reparents id.
func (s *Service) MoveItem(ctx context.Context, doc string, id, parentID int) (*DocumentDTO, error) {
	return s.update(ctx, doc, func(sess *app.Session) error {
		return sess.MoveItem(id, parentID)
	})
}

// ReorderItem swaps id with its neighbour.
func (s *Service) ReorderItem(ctx context.Context, doc string, id int, dir tree.Direction) (*DocumentDTO, error) {
	return s.update(ctx, doc, func(sess *app.Session) error {
		return sess.ReorderItem(id, dir)
	})
}

// Movements lists what id can do when stepped in dir.
func (s *Service) Movements(ctx context.Context, doc string, id int, dir tree.Direction) ([]MovementDTO, error) {
	if s.App == nil {
		return nil, errors.New("mcp: app service is not configured")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.App.Open(ctx, s.docName(doc))
	if err != nil {
		return nil, err
	}
	if _, ok := sess.Tree.ItemByID(id); !ok {
		return nil, fmt.Errorf("%w: %d", app.ErrNotFound, id)
	}
	moves := sess.Tree.Movements(id, dir)
	out := make([]MovementDTO, 0, len(moves))
	for _, m := range moves {
		dto := MovementDTO{Action: m.Action.String(), TargetID: m.TargetID}
		if target, ok := sess.Tree.ItemByID(m.TargetID); ok {
			dto.TargetName = target.Name
		}
		out = append(out, dto)
	}
	return out, nil
}

// StepItem applies one of id's movements.
func (s *Service) StepItem(ctx context.Context, doc string, id int, dir tree.Direction, action tree.Action) (*DocumentDTO, error) {
	return s.update(ctx, doc, func(sess *app.Session) error {
		return sess.StepItem(id, dir, action)
	})
}

// SetKind turns id into a folder or a leaf.
func (s *Service) SetKind(ctx context.Context, doc string, id int, kind tree.Kind) (*DocumentDTO, error) {
	return s.update(ctx, doc, func(sess *app.Session) error {
		return sess.SetItemKind(id, kind)
	})
}

// RenameItem changes the name of id.
func (s *Service) RenameItem(ctx context.Context, doc string, id int, name string) (*DocumentDTO, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("mcp: name is required")
	}
	return s.update(ctx, doc, func(sess *app.Session) error {
		return sess.RenameItem(id, name)
	})
}

// ListDocuments summarises every saved document.
func (s *Service) ListDocuments(ctx context.Context) ([]DocumentSummary, error) {
	if s.App == nil {
		return nil, errors.New("mcp: app service is not configured")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	names, err := s.App.Documents(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]DocumentSummary, 0, len(names))
	for _, name := range names {
		sess, err := s.App.Open(ctx, name)
		if err != nil {
			s.App.Logger().WithFields(logrus.Fields{"document": name}).WithError(err).Warn("skipping unreadable document")
			continue
		}
		out = append(out, DocumentSummary{Name: name, Items: sess.Tree.Len()})
	}
	return out, nil
}

func toDocumentDTO(sess *app.Session) *DocumentDTO {
	entries := sess.Entries()
	dto := &DocumentDTO{
		Name:        sess.Name,
		ActiveIndex: sess.ActiveIndex,
		Count:       len(entries),
		Items:       make([]ItemDTO, 0, len(entries)),
	}
	for i, e := range entries {
		dto.Items = append(dto.Items, ItemDTO{
			Index:    i,
			ID:       e.Item.ID,
			Name:     e.Item.Name,
			ParentID: e.Item.ParentID,
			Order:    e.Item.Order,
			Kind:     e.Item.Kind.String(),
			Depth:    e.Depth,
			Active:   i == sess.ActiveIndex,
		})
	}
	return dto
}

func (d *DocumentDTO) item(id int) (*ItemDTO, error) {
	for i := range d.Items {
		if d.Items[i].ID == id {
			return &d.Items[i], nil
		}
	}
	return nil, fmt.Errorf("mcp: item %d is not visible", id)
}
