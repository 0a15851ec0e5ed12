// Package tree implements the ordered item tree behind a nestlist document.
package tree

import (
	"fmt"
	"strings"
)

// NoParent is the parent id of root level items.
const NoParent = -1

// Item is a single node. Hierarchy is expressed only through ParentID.
type Item struct {
	ID       int    `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	ParentID int    `json:"parentId" yaml:"parentId"`
	Order    int    `json:"order" yaml:"order"`
	Kind     Kind   `json:"kind,omitempty" yaml:"kind,omitempty"`
}

// Kind tells containers from leaves. The zero value is Folder so documents
// written before kinds existed keep their shape.
type Kind int

const (
	// Folder can hold children.
	Folder Kind = iota
	// Leaf never holds children.
	Leaf
)

func (k Kind) String() string {
	switch k {
	case Folder:
		return "folder"
	case Leaf:
		return "leaf"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind accepts "folder" or "leaf". "item" is taken as leaf.
func ParseKind(raw string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "folder":
		return Folder, nil
	case "leaf", "item":
		return Leaf, nil
	default:
		return Folder, fmt.Errorf("tree: unknown kind %q", raw)
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	if k != Folder && k != Leaf {
		return nil, fmt.Errorf("tree: unknown kind %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Entry is one row of the flattened view.
type Entry struct {
	Item  *Item
	Depth int
}

// Direction selects a neighbour within a sibling group.
type Direction int

const (
	// Up moves towards the first sibling.
	Up Direction = iota
	// Down moves towards the last sibling.
	Down
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// ParseDirection converts "up" or "down" into a Direction.
func ParseDirection(raw string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	default:
		return Up, fmt.Errorf("tree: unknown direction %q", raw)
	}
}

// Position selects where MoveInto places an item in its new sibling group.
type Position int

const (
	// Bottom appends after the last sibling.
	Bottom Position = iota
	// Top inserts before the first sibling.
	Top
)

// Action is one way an item can step past its neighbour in the flattened view.
type Action int

const (
	// Skip swaps with the neighbouring sibling.
	Skip Action = iota
	// MoveOut leaves the parent for the grandparent group.
	MoveOut
	// MoveInto enters the neighbouring folder, at the bottom going up and at
	// the top going down.
	MoveInto
	// MoveAdjacent joins the neighbour's sibling group next to it.
	MoveAdjacent
)

func (a Action) String() string {
	switch a {
	case Skip:
		return "skip"
	case MoveOut:
		return "out"
	case MoveInto:
		return "into"
	case MoveAdjacent:
		return "adjacent"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// ParseAction converts skip, out, into or adjacent into an Action.
func ParseAction(raw string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "skip":
		return Skip, nil
	case "out":
		return MoveOut, nil
	case "into":
		return MoveInto, nil
	case "adjacent":
		return MoveAdjacent, nil
	default:
		return Skip, fmt.Errorf("tree: unknown action %q", raw)
	}
}

// Movement is an action available to an item together with the item it acts
// against: the folder entered, the parent left, or the neighbour joined.
type Movement struct {
	Action   Action
	TargetID int
}
