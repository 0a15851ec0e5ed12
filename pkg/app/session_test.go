package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/nestlist/pkg/tree"
)

func names(s *Session) []string {
	var out []string
	for _, e := range s.Entries() {
		out = append(out, e.Item.Name)
	}
	return out
}

func mustAdd(t *testing.T, s *Session, name string, parentID int) int {
	t.Helper()
	id, err := s.Add(name, parentID)
	require.NoError(t, err)
	return id
}

func TestSessionAddFollowsNewItem(t *testing.T) {
	s := NewSession("test")
	a := mustAdd(t, s, "A", tree.NoParent)
	mustAdd(t, s, "B", tree.NoParent)
	assert.Equal(t, 1, s.ActiveIndex)

	mustAdd(t, s, "A1", a)
	assert.Equal(t, []string{"A", "A1", "B"}, names(s))
	assert.Equal(t, 1, s.ActiveIndex)
}

func TestSessionAddDefaultName(t *testing.T) {
	s := NewSession("test")
	mustAdd(t, s, "A", tree.NoParent)
	id := mustAdd(t, s, "", tree.NoParent)

	item, ok := s.Tree.ItemByID(id)
	require.True(t, ok)
	assert.Equal(t, "Item 1", item.Name)
}

func TestSessionAddUnknownParent(t *testing.T) {
	s := NewSession("test")
	_, err := s.Add("orphan", 7)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, s.Tree.Len())
	assert.Equal(t, -1, s.ActiveIndex)
}

func TestSessionAddChild(t *testing.T) {
	s := NewSession("test")
	a, err := s.AddChild("A", tree.Folder)
	require.NoError(t, err)
	child, err := s.AddChild("A1", tree.Leaf)
	require.NoError(t, err)

	item, ok := s.Tree.ItemByID(child)
	require.True(t, ok)
	assert.Equal(t, a, item.ParentID)
	assert.Equal(t, tree.Leaf, item.Kind)
	assert.Equal(t, 1, s.ActiveIndex)

	_, err = s.AddChild("under a leaf", tree.Leaf)
	assert.ErrorIs(t, err, ErrRejected)
	assert.Equal(t, 2, s.Tree.Len())
}

func TestSessionLeavesHoldNoChildren(t *testing.T) {
	s := NewSession("test")
	leaf, err := s.AddKind("L", tree.NoParent, tree.Leaf)
	require.NoError(t, err)
	b := mustAdd(t, s, "B", tree.NoParent)

	_, err = s.Add("x", leaf)
	assert.ErrorIs(t, err, ErrRejected)
	assert.ErrorIs(t, s.MoveItem(b, leaf), ErrRejected)
	assert.ErrorIs(t, s.Indent(), ErrRejected, "previous sibling is a leaf")

	require.NoError(t, s.SetItemKind(leaf, tree.Folder))
	require.NoError(t, s.Indent())
	assert.ErrorIs(t, s.SetItemKind(leaf, tree.Leaf), ErrRejected)
	assert.ErrorIs(t, s.SetItemKind(42, tree.Leaf), ErrNotFound)
	require.NoError(t, s.SetKind(tree.Leaf))

	item, _ := s.Tree.ItemByID(b)
	assert.Equal(t, tree.Leaf, item.Kind)
}

func TestSessionStep(t *testing.T) {
	s := NewSession("test")
	a := mustAdd(t, s, "A", tree.NoParent)
	mustAdd(t, s, "A1", a)
	mustAdd(t, s, "B", tree.NoParent)

	moves, err := s.Movements(tree.Up)
	require.NoError(t, err)
	assert.Equal(t, []tree.Movement{
		{Action: tree.MoveInto, TargetID: 1},
		{Action: tree.MoveAdjacent, TargetID: 1},
		{Action: tree.Skip, TargetID: a},
	}, moves)

	require.NoError(t, s.Step(tree.Up, tree.MoveAdjacent))
	assert.Equal(t, []string{"A", "A1", "B"}, names(s))
	assert.Equal(t, 1, s.Tree.Level(2))
	assert.Equal(t, 2, s.ActiveIndex)

	assert.ErrorIs(t, s.Step(tree.Down, tree.MoveInto), ErrRejected)
	require.NoError(t, s.Step(tree.Up, tree.Skip))
	assert.Equal(t, []string{"A", "B", "A1"}, names(s))
	assert.Equal(t, 1, s.ActiveIndex)

	require.NoError(t, s.StepItem(1, tree.Down, tree.MoveOut))
	assert.Equal(t, []string{"A", "B", "A1"}, names(s))
	assert.Equal(t, 1, s.ActiveIndex, "cursor stays on B")
	assert.ErrorIs(t, s.StepItem(9, tree.Up, tree.Skip), ErrNotFound)

	empty := NewSession("empty")
	_, err = empty.Movements(tree.Up)
	assert.ErrorIs(t, err, ErrNoSelection)
}

func TestSessionRemoveClampsCursor(t *testing.T) {
	s := NewSession("test")
	mustAdd(t, s, "A", tree.NoParent)
	mustAdd(t, s, "B", tree.NoParent)
	mustAdd(t, s, "C", tree.NoParent)
	require.NoError(t, s.Select(2))

	removed, err := s.Remove()
	require.NoError(t, err)
	require.Len(t, removed, 1)
	assert.Equal(t, "C", removed[0].Name)
	assert.Equal(t, 1, s.ActiveIndex)

	require.NoError(t, s.Select(0))
	_, err = s.Remove()
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, names(s))
	assert.Equal(t, 0, s.ActiveIndex)

	_, err = s.Remove()
	require.NoError(t, err)
	assert.Equal(t, -1, s.ActiveIndex)

	_, err = s.Remove()
	assert.ErrorIs(t, err, ErrNoSelection)
}

func TestSessionRemoveTakesSubtree(t *testing.T) {
	s := NewSession("test")
	a := mustAdd(t, s, "A", tree.NoParent)
	a1 := mustAdd(t, s, "A1", a)
	mustAdd(t, s, "A1a", a1)
	mustAdd(t, s, "B", tree.NoParent)
	require.NoError(t, s.Select(0))

	removed, err := s.Remove()
	require.NoError(t, err)
	var gone []string
	for _, it := range removed {
		gone = append(gone, it.Name)
	}
	assert.ElementsMatch(t, []string{"A", "A1", "A1a"}, gone)
	assert.Equal(t, []string{"B"}, names(s))
	assert.Equal(t, 1, s.Tree.Len())
	assert.Equal(t, 0, s.ActiveIndex)
}

func TestSessionMove(t *testing.T) {
	s := NewSession("test")
	a := mustAdd(t, s, "A", tree.NoParent)
	b := mustAdd(t, s, "B", a)
	mustAdd(t, s, "C", tree.NoParent)

	require.NoError(t, s.Select(0))
	assert.ErrorIs(t, s.Move(b), ErrRejected)
	assert.ErrorIs(t, s.Move(a), ErrRejected)

	require.NoError(t, s.Select(1))
	require.NoError(t, s.Move(tree.NoParent))
	assert.Equal(t, []string{"A", "C", "B"}, names(s))
	assert.Equal(t, 2, s.ActiveIndex)

	empty := NewSession("empty")
	assert.ErrorIs(t, empty.Move(tree.NoParent), ErrNoSelection)
}

func TestSessionReorder(t *testing.T) {
	s := NewSession("test")
	mustAdd(t, s, "A", tree.NoParent)
	mustAdd(t, s, "B", tree.NoParent)

	require.NoError(t, s.Reorder(tree.Up))
	assert.Equal(t, []string{"B", "A"}, names(s))
	assert.Equal(t, 0, s.ActiveIndex)

	assert.ErrorIs(t, s.Reorder(tree.Up), ErrRejected)
	require.NoError(t, s.Reorder(tree.Down))
	assert.Equal(t, []string{"A", "B"}, names(s))
	assert.Equal(t, 1, s.ActiveIndex)
}

func TestSessionIndentOutdent(t *testing.T) {
	s := NewSession("test")
	a := mustAdd(t, s, "A", tree.NoParent)
	b := mustAdd(t, s, "B", tree.NoParent)

	require.NoError(t, s.Indent())
	assert.Equal(t, 1, s.Tree.Level(b))
	item, _ := s.Tree.ItemByID(b)
	assert.Equal(t, a, item.ParentID)
	assert.Equal(t, 1, s.ActiveIndex)

	assert.ErrorIs(t, s.Indent(), ErrRejected)

	require.NoError(t, s.Outdent())
	assert.Equal(t, 0, s.Tree.Level(b))
	assert.Equal(t, []string{"A", "B"}, names(s))
	assert.ErrorIs(t, s.Outdent(), ErrRejected)

	require.NoError(t, s.Select(0))
	assert.ErrorIs(t, s.Indent(), ErrRejected)
}

func TestSessionSelect(t *testing.T) {
	s := NewSession("test")
	mustAdd(t, s, "A", tree.NoParent)

	assert.ErrorIs(t, s.Select(1), ErrOutOfRange)
	assert.ErrorIs(t, s.Select(-1), ErrOutOfRange)
	require.NoError(t, s.Select(0))

	item, ok := s.Active()
	require.True(t, ok)
	assert.Equal(t, "A", item.Name)
}

func TestSessionRenameAndNormalize(t *testing.T) {
	s := NewSession("test")
	mustAdd(t, s, "A", tree.NoParent)
	mustAdd(t, s, "B", tree.NoParent)
	mustAdd(t, s, "C", tree.NoParent)
	require.NoError(t, s.Select(1))
	_, err := s.Remove()
	require.NoError(t, err)

	require.NoError(t, s.Rename("C!"))
	s.Normalize()
	assert.Equal(t, []string{"A", "C!"}, names(s))
	for i, e := range s.Entries() {
		assert.Equal(t, i, e.Item.Order)
	}
}

func TestSessionDocumentRoundTrip(t *testing.T) {
	s := NewSession("test")
	a := mustAdd(t, s, "A", tree.NoParent)
	mustAdd(t, s, "A1", a)
	mustAdd(t, s, "B", tree.NoParent)
	require.NoError(t, s.Select(1))

	doc := s.Document()
	assert.Equal(t, "test", doc.Name)
	assert.Equal(t, 1, doc.ActiveIndex)

	restored, err := FromDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, s.ID, restored.ID)
	assert.Equal(t, names(s), names(restored))
	assert.Equal(t, 1, restored.ActiveIndex)
	assert.Equal(t, s.Tree.NextID(), restored.Tree.NextID())

	doc.ActiveIndex = 10
	restored, err = FromDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, 2, restored.ActiveIndex)
}

func TestSessionItemOperationsKeepCursor(t *testing.T) {
	s := NewSession("test")
	a := mustAdd(t, s, "A", tree.NoParent)
	b := mustAdd(t, s, "B", tree.NoParent)
	c := mustAdd(t, s, "C", tree.NoParent)
	require.NoError(t, s.Select(1))

	require.NoError(t, s.ReorderItem(c, tree.Up))
	assert.Equal(t, []string{"A", "C", "B"}, names(s))
	assert.Equal(t, 2, s.ActiveIndex, "cursor stays on B")

	require.NoError(t, s.MoveItem(c, a))
	assert.Equal(t, []string{"A", "C", "B"}, names(s))
	assert.Equal(t, 2, s.ActiveIndex)

	removed, err := s.RemoveItem(a)
	require.NoError(t, err)
	assert.Len(t, removed, 2)
	assert.Equal(t, []string{"B"}, names(s))
	assert.Equal(t, 0, s.ActiveIndex)

	require.NoError(t, s.RenameItem(b, "Bee"))
	assert.Equal(t, []string{"Bee"}, names(s))

	_, err = s.RemoveItem(a)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.RenameItem(a, "x"), ErrNotFound)
	assert.ErrorIs(t, s.MoveItem(b, b), ErrRejected)
}
