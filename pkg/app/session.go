package app

import (
	"errors"
	"fmt"

	"tableflip.dev/nestlist/pkg/store"
	"tableflip.dev/nestlist/pkg/tree"
)

var (
	// ErrNoSelection is returned when an operation needs an active item.
	ErrNoSelection = errors.New("app: no item selected")
	// ErrRejected is returned when the tree refuses a change.
	ErrRejected = errors.New("app: change rejected")
	// ErrOutOfRange is returned for a flattened index outside the view.
	ErrOutOfRange = errors.New("app: index out of range")
	// ErrNotFound is returned for an unknown item id.
	ErrNotFound = errors.New("app: item not found")
)

// Session is one open document: a tree plus the active index into its
// flattened view. It is owned by a single caller at a time.
type Session struct {
	ID          string
	Name        string
	Tree        *tree.Store
	ActiveIndex int
}

// NewSession returns an empty session.
func NewSession(name string) *Session {
	doc := store.NewDocument(name)
	return &Session{
		ID:          doc.ID,
		Name:        doc.Name,
		Tree:        tree.NewStore(),
		ActiveIndex: doc.ActiveIndex,
	}
}

// FromDocument restores a session from its persisted form.
func FromDocument(doc *store.Document) (*Session, error) {
	t, err := tree.FromSnapshot(doc.Tree)
	if err != nil {
		return nil, fmt.Errorf("app: document %q: %w", doc.Name, err)
	}
	s := &Session{
		ID:          doc.ID,
		Name:        doc.Name,
		Tree:        t,
		ActiveIndex: doc.ActiveIndex,
	}
	s.clamp()
	return s, nil
}

// Document captures the session for persistence.
func (s *Session) Document() *store.Document {
	return &store.Document{
		ID:          s.ID,
		Name:        s.Name,
		ActiveIndex: s.ActiveIndex,
		Tree:        s.Tree.Snapshot(),
	}
}

// Entries is the flattened view.
func (s *Session) Entries() []tree.Entry {
	return s.Tree.Flatten()
}

// Active returns the item under the cursor.
func (s *Session) Active() (*tree.Item, bool) {
	id := s.Tree.IDAtFlatIndex(s.ActiveIndex)
	if id == -1 {
		return nil, false
	}
	return s.Tree.ItemByID(id)
}

// Select moves the cursor to a flattened index.
func (s *Session) Select(index int) error {
	if n := len(s.Entries()); index < 0 || index >= n {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrOutOfRange, index, n)
	}
	s.ActiveIndex = index
	return nil
}

// Add creates a folder under parentID and puts the cursor on it.
func (s *Session) Add(name string, parentID int) (int, error) {
	return s.AddKind(name, parentID, tree.Folder)
}

// AddKind creates an item of the given kind under parentID and puts the
// cursor on it. Unlike the tree itself, the session refuses parents that do
// not exist or are leaves. An empty name becomes "Item <id>".
func (s *Session) AddKind(name string, parentID int, kind tree.Kind) (int, error) {
	if parentID != tree.NoParent {
		if _, ok := s.Tree.ItemByID(parentID); !ok {
			return -1, fmt.Errorf("%w: parent %d", ErrNotFound, parentID)
		}
		if !s.Tree.CanContain(parentID) {
			return -1, fmt.Errorf("%w: %d is a leaf", ErrRejected, parentID)
		}
	}
	if name == "" {
		name = fmt.Sprintf("Item %d", s.Tree.NextID())
	}
	id := s.Tree.AddItemKind(name, parentID, kind)
	s.follow(id)
	return id, nil
}

// AddChild adds under the active item, or at the root when nothing is
// selected.
func (s *Session) AddChild(name string, kind tree.Kind) (int, error) {
	parentID := tree.NoParent
	if item, ok := s.Active(); ok {
		parentID = item.ID
	}
	return s.AddKind(name, parentID, kind)
}

// Remove deletes the active item with its descendants and clamps the cursor.
func (s *Session) Remove() ([]tree.Item, error) {
	item, ok := s.Active()
	if !ok {
		return nil, ErrNoSelection
	}
	return s.RemoveItem(item.ID)
}

// RemoveItem deletes id with its descendants. The cursor stays on the item it
// was on when that item survives, otherwise it keeps its index, clamped to
// the new view.
func (s *Session) RemoveItem(id int) ([]tree.Item, error) {
	if _, ok := s.Tree.ItemByID(id); !ok {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	keep := s.Tree.IDAtFlatIndex(s.ActiveIndex)
	var removed []tree.Item
	s.Tree.RemoveSubtree(id, func(it *tree.Item) {
		removed = append(removed, *it)
	})
	s.follow(keep)
	s.clamp()
	return removed, nil
}

// Move reparents the active item. Use tree.NoParent for the root.
func (s *Session) Move(newParentID int) error {
	item, ok := s.Active()
	if !ok {
		return ErrNoSelection
	}
	return s.MoveItem(item.ID, newParentID)
}

// MoveItem reparents id. Leaves cannot take children. The cursor stays on
// the item it was on.
func (s *Session) MoveItem(id, newParentID int) error {
	keep := s.Tree.IDAtFlatIndex(s.ActiveIndex)
	if _, ok := s.Tree.ItemByID(newParentID); ok && !s.Tree.CanContain(newParentID) {
		return fmt.Errorf("%w: %d is a leaf", ErrRejected, newParentID)
	}
	if !s.Tree.MoveItem(id, newParentID) {
		return fmt.Errorf("%w: move %d under %d", ErrRejected, id, newParentID)
	}
	s.follow(keep)
	return nil
}

// Reorder swaps the active item with its neighbour.
func (s *Session) Reorder(dir tree.Direction) error {
	item, ok := s.Active()
	if !ok {
		return ErrNoSelection
	}
	return s.ReorderItem(item.ID, dir)
}

// ReorderItem swaps id with its neighbour. The cursor stays on the item it
// was on.
func (s *Session) ReorderItem(id int, dir tree.Direction) error {
	keep := s.Tree.IDAtFlatIndex(s.ActiveIndex)
	if !s.Tree.ReorderItem(id, dir) {
		return fmt.Errorf("%w: %d cannot move %s", ErrRejected, id, dir)
	}
	s.follow(keep)
	return nil
}

// Indent makes the active item the last child of its previous sibling.
func (s *Session) Indent() error {
	item, ok := s.Active()
	if !ok {
		return ErrNoSelection
	}
	siblings := s.Tree.Children(item.ParentID)
	for i, sibling := range siblings {
		if sibling.ID != item.ID {
			continue
		}
		if i == 0 || !s.Tree.MoveInto(item.ID, siblings[i-1].ID, tree.Bottom) {
			break
		}
		s.follow(item.ID)
		return nil
	}
	return fmt.Errorf("%w: %d has no previous sibling folder", ErrRejected, item.ID)
}

// Movements lists what the active item can do when stepped in dir.
func (s *Session) Movements(dir tree.Direction) ([]tree.Movement, error) {
	item, ok := s.Active()
	if !ok {
		return nil, ErrNoSelection
	}
	return s.Tree.Movements(item.ID, dir), nil
}

// Step applies one of the active item's movements. The cursor follows the
// item.
func (s *Session) Step(dir tree.Direction, action tree.Action) error {
	item, ok := s.Active()
	if !ok {
		return ErrNoSelection
	}
	if err := s.StepItem(item.ID, dir, action); err != nil {
		return err
	}
	s.follow(item.ID)
	return nil
}

// StepItem applies one of id's movements. The cursor stays on the item it
// was on.
func (s *Session) StepItem(id int, dir tree.Direction, action tree.Action) error {
	if _, ok := s.Tree.ItemByID(id); !ok {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	keep := s.Tree.IDAtFlatIndex(s.ActiveIndex)
	if !s.Tree.ExecuteMovement(id, dir, action) {
		return fmt.Errorf("%w: %d cannot %s %s", ErrRejected, id, action, dir)
	}
	s.follow(keep)
	return nil
}

// SetKind changes the kind of the active item.
func (s *Session) SetKind(kind tree.Kind) error {
	item, ok := s.Active()
	if !ok {
		return ErrNoSelection
	}
	return s.SetItemKind(item.ID, kind)
}

// SetItemKind changes the kind of id. A folder with children stays a folder.
func (s *Session) SetItemKind(id int, kind tree.Kind) error {
	if _, ok := s.Tree.ItemByID(id); !ok {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if !s.Tree.SetKind(id, kind) {
		return fmt.Errorf("%w: %d cannot become a %s", ErrRejected, id, kind)
	}
	return nil
}

// Outdent moves the active item out of its parent, after the parent's last
// sibling.
func (s *Session) Outdent() error {
	item, ok := s.Active()
	if !ok {
		return ErrNoSelection
	}
	if !s.Tree.MoveOut(item.ID, tree.Down) {
		return fmt.Errorf("%w: %d is at the root", ErrRejected, item.ID)
	}
	s.follow(item.ID)
	return nil
}

// Rename changes the name of the active item.
func (s *Session) Rename(name string) error {
	item, ok := s.Active()
	if !ok {
		return ErrNoSelection
	}
	return s.RenameItem(item.ID, name)
}

// RenameItem changes the name of id.
func (s *Session) RenameItem(id int, name string) error {
	if !s.Tree.Rename(id, name) {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return nil
}

// Normalize compacts sibling orders. The flattened view does not change.
func (s *Session) Normalize() {
	s.Tree.NormalizeOrders()
}

// follow puts the cursor on id if it is visible.
func (s *Session) follow(id int) {
	if idx := s.Tree.FlatIndexOf(id); idx != -1 {
		s.ActiveIndex = idx
	}
}

// clamp keeps the cursor inside the flattened view, -1 when it is empty.
func (s *Session) clamp() {
	n := len(s.Entries())
	switch {
	case n == 0:
		s.ActiveIndex = -1
	case s.ActiveIndex >= n:
		s.ActiveIndex = n - 1
	case s.ActiveIndex < 0:
		s.ActiveIndex = 0
	}
}
