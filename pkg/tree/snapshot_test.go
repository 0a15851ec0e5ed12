package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	s := NewStore()
	a := s.AddItem("A", NoParent)
	s.AddItem("B", a)
	s.AddItem("C", NoParent)
	s.RemoveAt(s.CollectionIndex(a))
	s.AddItem("D", NoParent)

	restored, err := FromSnapshot(s.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, rows(s), rows(restored))
	assert.Equal(t, s.NextID(), restored.NextID())
	assert.Equal(t, 4, restored.AddItem("E", NoParent))
}

func TestFromSnapshotRejectsBadInput(t *testing.T) {
	tests := map[string]Snapshot{
		"duplicate id": {NextID: 3, Items: []Item{
			{ID: 1, ParentID: NoParent}, {ID: 1, ParentID: NoParent},
		}},
		"id not below next": {NextID: 1, Items: []Item{
			{ID: 1, ParentID: NoParent},
		}},
		"negative id": {NextID: 1, Items: []Item{
			{ID: -4, ParentID: NoParent},
		}},
		"self parent": {NextID: 1, Items: []Item{
			{ID: 0, ParentID: 0},
		}},
		"cycle": {NextID: 3, Items: []Item{
			{ID: 0, ParentID: 2}, {ID: 1, ParentID: 0}, {ID: 2, ParentID: 1},
		}},
		"negative next": {NextID: -1},
	}
	for name, snap := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := FromSnapshot(snap)
			assert.Error(t, err)
		})
	}
}

func TestFromSnapshotKeepsDanglingParent(t *testing.T) {
	s, err := FromSnapshot(Snapshot{NextID: 2, Items: []Item{
		{ID: 0, Name: "root", ParentID: NoParent},
		{ID: 1, Name: "lost", ParentID: 40},
	}})
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []row{{"root", 0}}, rows(s))
}
