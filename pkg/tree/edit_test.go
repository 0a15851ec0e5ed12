package tree

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestKindGuards(t *testing.T) {
	s := NewStore()
	folder := s.AddItem("folder", NoParent)
	leaf := s.AddItemKind("leaf", NoParent, Leaf)
	child := s.AddItem("child", folder)

	assert.True(t, s.CanContain(NoParent))
	assert.True(t, s.CanContain(folder))
	assert.False(t, s.CanContain(leaf))
	assert.False(t, s.CanContain(99))

	assert.False(t, s.MoveInto(child, leaf, Bottom))
	assert.Equal(t, folder, mustItem(t, s, child).ParentID)

	assert.False(t, s.SetKind(folder, Leaf), "folder with children")
	require.True(t, s.SetKind(leaf, Folder))
	require.True(t, s.MoveInto(child, leaf, Top))
	require.True(t, s.SetKind(folder, Leaf))
	assert.False(t, s.SetKind(99, Leaf))
	assert.False(t, s.SetKind(folder, Kind(7)))
}

func TestKindEncoding(t *testing.T) {
	items := []Item{{ID: 0, Name: "f", ParentID: NoParent}, {ID: 1, Name: "l", ParentID: 0, Kind: Leaf}}

	b, err := json.Marshal(items)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(b), `"kind"`), "folders omit the kind")
	assert.Contains(t, string(b), `"kind":"leaf"`)

	var back []Item
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, items, back)

	y, err := yaml.Marshal(items)
	require.NoError(t, err)
	assert.Contains(t, string(y), "kind: leaf")
	back = nil
	require.NoError(t, yaml.Unmarshal(y, &back))
	assert.Equal(t, items, back)

	var k Kind
	assert.Error(t, json.Unmarshal([]byte(`"blob"`), &k))
	got, err := ParseKind("item")
	require.NoError(t, err)
	assert.Equal(t, Leaf, got)
}

func TestMoveAdjacent(t *testing.T) {
	s := NewStore()
	a := s.AddItem("A", NoParent)
	a1 := s.AddItem("A1", a)
	a2 := s.AddItem("A2", a)
	b := s.AddItem("B", NoParent)

	require.True(t, s.MoveAdjacent(b, a1, Up))
	assert.Equal(t, []row{{"A", 0}, {"A1", 1}, {"B", 1}, {"A2", 1}}, rows(s))

	require.True(t, s.MoveAdjacent(b, a, Down))
	assert.Equal(t, []row{{"B", 0}, {"A", 0}, {"A1", 1}, {"A2", 1}}, rows(s))

	assert.False(t, s.MoveAdjacent(a, a1, Up), "into own subtree")
	assert.False(t, s.MoveAdjacent(a, a, Up))
	assert.False(t, s.MoveAdjacent(a2, 99, Down))
}

func TestMovementsUp(t *testing.T) {
	s := NewStore()
	a := s.AddItem("A", NoParent)
	a1 := s.AddItem("A1", a)
	leaf := s.AddItemKind("L", NoParent, Leaf)
	b := s.AddItem("B", NoParent)

	assert.Empty(t, s.Movements(a, Up))
	assert.Equal(t, []Movement{{Action: MoveOut, TargetID: a}}, s.Movements(a1, Up))
	assert.Equal(t, []Movement{
		{Action: MoveInto, TargetID: a1},
		{Action: MoveAdjacent, TargetID: a1},
		{Action: Skip, TargetID: a},
	}, s.Movements(leaf, Up))
	assert.Equal(t, []Movement{{Action: Skip, TargetID: leaf}}, s.Movements(b, Up))
	assert.Nil(t, s.Movements(99, Up))

	assert.False(t, s.ExecuteMovement(b, Up, MoveInto), "leaf above")
	require.True(t, s.ExecuteMovement(leaf, Up, MoveAdjacent))
	assert.Equal(t, []row{{"A", 0}, {"A1", 1}, {"L", 1}, {"B", 0}}, rows(s))

	require.True(t, s.ExecuteMovement(leaf, Up, Skip))
	assert.Equal(t, []row{{"A", 0}, {"L", 1}, {"A1", 1}, {"B", 0}}, rows(s))

	require.True(t, s.ExecuteMovement(leaf, Up, MoveOut))
	assert.Equal(t, []row{{"L", 0}, {"A", 0}, {"A1", 1}, {"B", 0}}, rows(s))
}

func TestMovementsDown(t *testing.T) {
	s := NewStore()
	a := s.AddItem("A", NoParent)
	s.AddItem("A1", a)
	b := s.AddItem("B", NoParent)
	b1 := s.AddItem("B1", b)

	assert.Equal(t, []Movement{
		{Action: MoveInto, TargetID: b},
		{Action: Skip, TargetID: b},
	}, s.Movements(a, Down), "steps over its own children")
	assert.Equal(t, []Movement{{Action: MoveOut, TargetID: b}}, s.Movements(b1, Down))
	assert.Empty(t, s.Movements(b, Down))

	require.True(t, s.ExecuteMovement(a, Down, MoveInto))
	assert.Equal(t, []row{{"B", 0}, {"A", 1}, {"A1", 2}, {"B1", 1}}, rows(s))

	a1 := s.IDAtFlatIndex(2)
	assert.Equal(t, []Movement{
		{Action: MoveInto, TargetID: b1},
		{Action: MoveAdjacent, TargetID: b1},
	}, s.Movements(a1, Down))

	require.True(t, s.ExecuteMovement(b1, Down, MoveOut))
	assert.Equal(t, []row{{"B", 0}, {"A", 1}, {"A1", 2}, {"B1", 0}}, rows(s))
	assert.False(t, s.ExecuteMovement(b1, Down, Skip))
}

func TestParseAction(t *testing.T) {
	for _, a := range []Action{Skip, MoveOut, MoveInto, MoveAdjacent} {
		got, err := ParseAction(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}
	_, err := ParseAction("sideways")
	assert.Error(t, err)
}
