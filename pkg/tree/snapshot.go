package tree

import (
	"errors"
	"fmt"
)

// Snapshot is the serialisable shape of a Store.
type Snapshot struct {
	NextID int    `json:"nextId" yaml:"nextId"`
	Items  []Item `json:"items" yaml:"items"`
}

// Snapshot copies the store contents.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{NextID: s.nextID, Items: s.Items()}
}

// FromSnapshot rebuilds a store. It rejects duplicate ids, ids the counter
// would hand out again, negative ids and parent cycles. Dangling parents are
// kept since AddItem can produce them.
func FromSnapshot(snap Snapshot) (*Store, error) {
	if snap.NextID < 0 {
		return nil, errors.New("tree: negative next id")
	}
	s := &Store{nextID: snap.NextID, items: make([]*Item, 0, len(snap.Items))}
	seen := make(map[int]struct{}, len(snap.Items))
	for i := range snap.Items {
		item := snap.Items[i]
		if item.ID < 0 {
			return nil, fmt.Errorf("tree: item %q has negative id %d", item.Name, item.ID)
		}
		if item.ID >= snap.NextID {
			return nil, fmt.Errorf("tree: item id %d is not below next id %d", item.ID, snap.NextID)
		}
		if _, dup := seen[item.ID]; dup {
			return nil, fmt.Errorf("tree: duplicate item id %d", item.ID)
		}
		seen[item.ID] = struct{}{}
		s.items = append(s.items, &item)
	}
	for _, item := range s.items {
		if item.ParentID == item.ID || s.isAncestorOrSelf(item.ID, item.ParentID) {
			return nil, fmt.Errorf("tree: item %d is its own ancestor", item.ID)
		}
	}
	return s, nil
}
