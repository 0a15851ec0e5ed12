package tree

import "sort"

// RemoveAt deletes the item stored at index. Ids and orders of the remaining
// items are left alone; children of the removed item become unreachable.
func (s *Store) RemoveAt(index int) bool {
	if index < 0 || index >= len(s.items) {
		return false
	}
	s.items = append(s.items[:index], s.items[index+1:]...)
	return true
}

// RemoveSubtree deletes id and all of its descendants. onDelete, when set, is
// called for each removed item before it leaves the store.
func (s *Store) RemoveSubtree(id int, onDelete func(*Item)) bool {
	if s.CollectionIndex(id) == -1 {
		return false
	}
	doomed := map[int]struct{}{id: {}}
	for grew := true; grew; {
		grew = false
		for _, item := range s.items {
			if _, ok := doomed[item.ParentID]; !ok {
				continue
			}
			if _, ok := doomed[item.ID]; !ok {
				doomed[item.ID] = struct{}{}
				grew = true
			}
		}
	}

	kept := s.items[:0]
	for _, item := range s.items {
		if _, ok := doomed[item.ID]; ok {
			if onDelete != nil {
				onDelete(item)
			}
			continue
		}
		kept = append(kept, item)
	}
	for i := len(kept); i < len(s.items); i++ {
		s.items[i] = nil
	}
	s.items = kept
	return true
}

// Level is the number of ancestors of id, or -1 if id is unknown. Counting
// stops at a dangling parent.
func (s *Store) Level(id int) int {
	item, ok := s.ItemByID(id)
	if !ok {
		return -1
	}
	level := 0
	for item.ParentID != NoParent && level < len(s.items) {
		parent, ok := s.ItemByID(item.ParentID)
		if !ok {
			break
		}
		item = parent
		level++
	}
	return level
}

// Rename changes the display name of id.
func (s *Store) Rename(id int, name string) bool {
	item, ok := s.ItemByID(id)
	if !ok {
		return false
	}
	item.Name = name
	return true
}

// NormalizeOrders renumbers every sibling group to 0..n-1, keeping the
// relative order, so gaps left by moves and removals disappear.
func (s *Store) NormalizeOrders() {
	for _, group := range s.childIndex() {
		for i, item := range group {
			item.Order = i
		}
	}
}

// SetKind changes the kind of id. A folder that still has children cannot
// become a leaf.
func (s *Store) SetKind(id int, kind Kind) bool {
	item, ok := s.ItemByID(id)
	if !ok || (kind != Folder && kind != Leaf) {
		return false
	}
	if kind == Leaf && len(s.Children(id)) > 0 {
		return false
	}
	item.Kind = kind
	return true
}

// MoveInto reparents id under the folder targetID, either ahead of the
// existing children (Top) or after them (Bottom).
func (s *Store) MoveInto(id, targetID int, pos Position) bool {
	item, ok := s.ItemByID(id)
	if !ok || targetID == NoParent || !s.CanContain(targetID) || s.isAncestorOrSelf(id, targetID) {
		return false
	}
	if pos == Top {
		for _, other := range s.items {
			if other.ParentID == targetID && other != item {
				other.Order++
			}
		}
		item.Order = 0
	} else {
		item.Order = s.nextOrder(targetID)
	}
	item.ParentID = targetID
	return true
}

// MoveOut lifts id from its parent into the grandparent's sibling group. Up
// places it where the parent was and pushes the parent and later siblings
// down; Down appends it after the last sibling.
func (s *Store) MoveOut(id int, dir Direction) bool {
	item, ok := s.ItemByID(id)
	if !ok || item.ParentID == NoParent {
		return false
	}
	parent, ok := s.ItemByID(item.ParentID)
	if !ok {
		return false
	}
	grandparentID := parent.ParentID

	if dir == Up {
		at := parent.Order
		for _, sibling := range s.items {
			if sibling.ParentID == grandparentID && sibling.Order >= at {
				sibling.Order++
			}
		}
		item.Order = at
	} else {
		item.Order = s.nextOrder(grandparentID)
	}
	item.ParentID = grandparentID
	return true
}

// MoveAdjacent puts id into the sibling group of targetID, right after the
// target going Up and right before it going Down. Later siblings shift to
// make room.
func (s *Store) MoveAdjacent(id, targetID int, dir Direction) bool {
	item, ok := s.ItemByID(id)
	if !ok || id == targetID {
		return false
	}
	target, ok := s.ItemByID(targetID)
	if !ok || !s.CanContain(target.ParentID) || s.isAncestorOrSelf(id, target.ParentID) {
		return false
	}

	at := target.Order
	if dir == Up {
		at++
	}
	for _, other := range s.items {
		if other.ParentID == target.ParentID && other != item && other.Order >= at {
			other.Order++
		}
	}
	item.ParentID = target.ParentID
	item.Order = at
	return true
}

// Movements lists what id can do when stepped in dir past its neighbour in
// the flattened view. Going up, an item directly below its parent can only
// leave it. Going down, the item's own subtree is stepped over.
func (s *Store) Movements(id int, dir Direction) []Movement {
	flat := s.Flatten()
	idx := -1
	for i, e := range flat {
		if e.Item.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil
	}
	item, depth := flat[idx].Item, flat[idx].Depth
	siblings := s.Children(item.ParentID)
	pos := indexOf(siblings, item)

	var out []Movement
	if dir == Up {
		if idx == 0 {
			return nil
		}
		above := flat[idx-1].Item
		if above.ID == item.ParentID {
			return []Movement{{Action: MoveOut, TargetID: above.ID}}
		}
		if above.Kind == Folder {
			out = append(out, Movement{Action: MoveInto, TargetID: above.ID})
		}
		if above.ParentID != item.ParentID {
			out = append(out, Movement{Action: MoveAdjacent, TargetID: above.ID})
		}
		if pos > 0 {
			out = append(out, Movement{Action: Skip, TargetID: siblings[pos-1].ID})
		}
		return out
	}

	var next *Item
	for _, e := range flat[idx+1:] {
		if e.Depth <= depth {
			next = e.Item
			break
		}
	}
	if next == nil {
		if item.ParentID != NoParent {
			out = append(out, Movement{Action: MoveOut, TargetID: item.ParentID})
		}
		return out
	}
	if next.Kind == Folder {
		out = append(out, Movement{Action: MoveInto, TargetID: next.ID})
	}
	if next.ParentID != item.ParentID {
		out = append(out, Movement{Action: MoveAdjacent, TargetID: next.ID})
	}
	if pos >= 0 && pos < len(siblings)-1 {
		out = append(out, Movement{Action: Skip, TargetID: siblings[pos+1].ID})
	}
	return out
}

// ExecuteMovement applies action if Movements offers it for id and dir.
func (s *Store) ExecuteMovement(id int, dir Direction, action Action) bool {
	for _, m := range s.Movements(id, dir) {
		if m.Action != action {
			continue
		}
		switch action {
		case Skip:
			return s.ReorderItem(id, dir)
		case MoveOut:
			return s.MoveOut(id, dir)
		case MoveInto:
			pos := Top
			if dir == Up {
				pos = Bottom
			}
			return s.MoveInto(id, m.TargetID, pos)
		case MoveAdjacent:
			return s.MoveAdjacent(id, m.TargetID, dir)
		}
	}
	return false
}

// Items returns copies of the stored items sorted by id.
func (s *Store) Items() []Item {
	out := make([]Item, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
