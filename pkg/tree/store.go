package tree

import "sort"

// Store owns an arena of items and the id counter. It is not safe for
// concurrent use; callers that share a Store must serialise access.
type Store struct {
	items  []*Item
	nextID int
}

// NewStore returns an empty store whose first id is 0.
func NewStore() *Store {
	return &Store{}
}

// Len reports the number of stored items.
func (s *Store) Len() int {
	return len(s.items)
}

// NextID is the id the next AddItem call will assign.
func (s *Store) NextID() int {
	return s.nextID
}

// AddItem stores a new folder under parentID and returns its id. The parent
// is not checked for existence: a removed parent produces an item Flatten
// never reaches. A parent id that was never handed out is refused with -1,
// since the item that later receives that id would close a cycle.
func (s *Store) AddItem(name string, parentID int) int {
	return s.AddItemKind(name, parentID, Folder)
}

// AddItemKind is AddItem for an item of the given kind. Like AddItem it does
// not look at the parent's kind; hosts check CanContain first.
func (s *Store) AddItemKind(name string, parentID int, kind Kind) int {
	if parentID < NoParent || parentID >= s.nextID {
		return -1
	}
	item := &Item{
		ID:       s.nextID,
		Name:     name,
		ParentID: parentID,
		Order:    s.nextOrder(parentID),
		Kind:     kind,
	}
	s.items = append(s.items, item)
	s.nextID++
	return item.ID
}

// ItemByID returns the item with the given id.
func (s *Store) ItemByID(id int) (*Item, bool) {
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return nil, false
}

// CollectionIndex returns the storage position of id, or -1.
func (s *Store) CollectionIndex(id int) int {
	for i, item := range s.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// IDAtFlatIndex returns the id shown at a flattened position, or -1.
func (s *Store) IDAtFlatIndex(index int) int {
	flat := s.Flatten()
	if index < 0 || index >= len(flat) {
		return -1
	}
	return flat[index].Item.ID
}

// FlatIndexOf returns the flattened position of id, or -1 when the item is
// missing or unreachable from the root.
func (s *Store) FlatIndexOf(id int) int {
	for i, e := range s.Flatten() {
		if e.Item.ID == id {
			return i
		}
	}
	return -1
}

// MoveItem reparents id under newParentID and appends it to the end of the
// new sibling group. It refuses moves that would make id its own ancestor.
func (s *Store) MoveItem(id, newParentID int) bool {
	item, ok := s.ItemByID(id)
	if !ok || !s.validParent(newParentID) || s.isAncestorOrSelf(id, newParentID) {
		return false
	}
	item.Order = s.nextOrder(newParentID)
	item.ParentID = newParentID
	return true
}

// ReorderItem swaps the order of id with its neighbour in dir. Only the two
// order values change.
func (s *Store) ReorderItem(id int, dir Direction) bool {
	item, ok := s.ItemByID(id)
	if !ok {
		return false
	}
	siblings := s.Children(item.ParentID)
	idx := indexOf(siblings, item)

	var other *Item
	switch {
	case dir == Up && idx > 0:
		other = siblings[idx-1]
	case dir == Down && idx >= 0 && idx < len(siblings)-1:
		other = siblings[idx+1]
	default:
		return false
	}
	item.Order, other.Order = other.Order, item.Order
	return true
}

// Flatten walks the tree depth first from the root, children sorted by order,
// and returns every reachable item with its depth.
func (s *Store) Flatten() []Entry {
	byParent := s.childIndex()
	flat := make([]Entry, 0, len(s.items))
	var collect func(parentID, depth int)
	collect = func(parentID, depth int) {
		for _, item := range byParent[parentID] {
			flat = append(flat, Entry{Item: item, Depth: depth})
			collect(item.ID, depth+1)
		}
	}
	collect(NoParent, 0)
	return flat
}

// Children returns the sibling group under parentID sorted by order. Equal
// orders keep storage order.
func (s *Store) Children(parentID int) []*Item {
	var children []*Item
	for _, item := range s.items {
		if item.ParentID == parentID {
			children = append(children, item)
		}
	}
	sortByOrder(children)
	return children
}

func (s *Store) childIndex() map[int][]*Item {
	idx := make(map[int][]*Item)
	for _, item := range s.items {
		idx[item.ParentID] = append(idx[item.ParentID], item)
	}
	for _, group := range idx {
		sortByOrder(group)
	}
	return idx
}

func (s *Store) nextOrder(parentID int) int {
	highest := -1
	for _, item := range s.items {
		if item.ParentID == parentID && item.Order > highest {
			highest = item.Order
		}
	}
	return highest + 1
}

// CanContain reports whether items may be placed under parentID: the root
// and folders can, leaves and unknown ids cannot.
func (s *Store) CanContain(parentID int) bool {
	if parentID == NoParent {
		return true
	}
	parent, ok := s.ItemByID(parentID)
	return ok && parent.Kind == Folder
}

func (s *Store) validParent(parentID int) bool {
	if parentID == NoParent {
		return true
	}
	_, ok := s.ItemByID(parentID)
	return ok
}

// isAncestorOrSelf walks up from candidate and reports whether it reaches id.
// The walk is bounded by the item count so a corrupt graph cannot spin.
func (s *Store) isAncestorOrSelf(id, candidate int) bool {
	current := candidate
	for steps := 0; current != NoParent && steps <= len(s.items); steps++ {
		if current == id {
			return true
		}
		item, ok := s.ItemByID(current)
		if !ok {
			return false
		}
		current = item.ParentID
	}
	return false
}

func sortByOrder(items []*Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Order < items[j].Order
	})
}

func indexOf(items []*Item, target *Item) int {
	for i, item := range items {
		if item == target {
			return i
		}
	}
	return -1
}
