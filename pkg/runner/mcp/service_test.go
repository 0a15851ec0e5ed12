package mcp

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/nestlist/pkg/app"
	"tableflip.dev/nestlist/pkg/store"
	"tableflip.dev/nestlist/pkg/tree"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	p, err := store.Load(store.StaticConfig{Path: t.TempDir()})
	require.NoError(t, err)
	return NewService(&app.Service{Persistence: p}, "inbox")
}

func TestServiceAddItemDefaults(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	item, view, err := svc.AddItem(ctx, "", "", tree.NoParent, tree.Folder)
	require.NoError(t, err)
	assert.Equal(t, "inbox", view.Name)
	assert.Equal(t, 0, item.ID)
	assert.Equal(t, "Item 0", item.Name)
	assert.True(t, item.Active)

	child, view, err := svc.AddItem(ctx, "", "child", item.ID, tree.Folder)
	require.NoError(t, err)
	assert.Equal(t, 1, child.Depth)
	assert.Equal(t, 2, view.Count)
	assert.Equal(t, 1, view.ActiveIndex)

	_, _, err = svc.AddItem(ctx, "", "orphan", 42, tree.Folder)
	assert.ErrorIs(t, err, app.ErrNotFound)
}

func TestServiceMoveAndReorder(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	a, _, err := svc.AddItem(ctx, "", "A", tree.NoParent, tree.Folder)
	require.NoError(t, err)
	b, _, err := svc.AddItem(ctx, "", "B", a.ID, tree.Folder)
	require.NoError(t, err)
	c, _, err := svc.AddItem(ctx, "", "C", tree.NoParent, tree.Folder)
	require.NoError(t, err)

	_, err = svc.MoveItem(ctx, "", a.ID, b.ID)
	assert.ErrorIs(t, err, app.ErrRejected)

	view, err := svc.ReorderItem(ctx, "", c.ID, tree.Up)
	require.NoError(t, err)
	require.Len(t, view.Items, 3)
	assert.Equal(t, "C", view.Items[0].Name)
	assert.Equal(t, 0, view.ActiveIndex, "cursor stays on C")

	view, err = svc.MoveItem(ctx, "", b.ID, tree.NoParent)
	require.NoError(t, err)
	var got []string
	for _, it := range view.Items {
		got = append(got, it.Name)
	}
	assert.Equal(t, []string{"C", "A", "B"}, got)
}

func TestServiceRemoveAndRename(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	a, _, err := svc.AddItem(ctx, "", "A", tree.NoParent, tree.Folder)
	require.NoError(t, err)
	_, _, err = svc.AddItem(ctx, "", "A1", a.ID, tree.Folder)
	require.NoError(t, err)
	b, _, err := svc.AddItem(ctx, "", "B", tree.NoParent, tree.Folder)
	require.NoError(t, err)

	removed, view, err := svc.RemoveItem(ctx, "", a.ID)
	require.NoError(t, err)
	assert.Len(t, removed, 2)
	assert.Equal(t, 1, view.Count)

	view, err = svc.RenameItem(ctx, "", b.ID, "Bee")
	require.NoError(t, err)
	assert.Equal(t, "Bee", view.Items[0].Name)

	_, err = svc.RenameItem(ctx, "", b.ID, " ")
	assert.Error(t, err)
	_, _, err = svc.RemoveItem(ctx, "", a.ID)
	assert.ErrorIs(t, err, app.ErrNotFound)
}

func TestServiceListDocuments(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	_, _, err := svc.AddItem(ctx, "work", "A", tree.NoParent, tree.Folder)
	require.NoError(t, err)
	_, _, err = svc.AddItem(ctx, "", "B", tree.NoParent, tree.Folder)
	require.NoError(t, err)

	docs, err := svc.ListDocuments(ctx)
	require.NoError(t, err)
	assert.Equal(t, []DocumentSummary{{Name: "inbox", Items: 1}, {Name: "work", Items: 1}}, docs)
}

func TestServiceConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := svc.AddItem(ctx, "", "x", tree.NoParent, tree.Folder)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	view, err := svc.Flatten(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 8, view.Count)
	seen := map[int]bool{}
	for _, it := range view.Items {
		assert.False(t, seen[it.ID], "duplicate id %d", it.ID)
		seen[it.ID] = true
	}
}

func TestServiceWithoutApp(t *testing.T) {
	svc := &Service{}
	_, err := svc.Flatten(context.Background(), "")
	assert.Error(t, err)
	_, err = svc.ListDocuments(context.Background())
	assert.Error(t, err)
}

func TestServiceKindsAndSteps(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	a, _, err := svc.AddItem(ctx, "", "A", tree.NoParent, tree.Folder)
	require.NoError(t, err)
	leaf, _, err := svc.AddItem(ctx, "", "L", a.ID, tree.Leaf)
	require.NoError(t, err)
	assert.Equal(t, "leaf", leaf.Kind)

	_, _, err = svc.AddItem(ctx, "", "x", leaf.ID, tree.Folder)
	assert.ErrorIs(t, err, app.ErrRejected)

	moves, err := svc.Movements(ctx, "", leaf.ID, tree.Up)
	require.NoError(t, err)
	assert.Equal(t, []MovementDTO{{Action: "out", TargetID: a.ID, TargetName: "A"}}, moves)
	_, err = svc.Movements(ctx, "", 99, tree.Up)
	assert.ErrorIs(t, err, app.ErrNotFound)

	_, err = svc.StepItem(ctx, "", leaf.ID, tree.Up, tree.Skip)
	assert.ErrorIs(t, err, app.ErrRejected)
	view, err := svc.StepItem(ctx, "", leaf.ID, tree.Up, tree.MoveOut)
	require.NoError(t, err)
	assert.Equal(t, "L", view.Items[0].Name)
	assert.Equal(t, 0, view.Items[0].Depth)

	view, err = svc.SetKind(ctx, "", leaf.ID, tree.Folder)
	require.NoError(t, err)
	assert.Equal(t, "folder", view.Items[0].Kind)
}

func TestNewServerRegistersTools(t *testing.T) {
	svc := newTestService(t)
	srv := svc.NewServer("", "")
	require.NotNil(t, srv)

	var names []string
	for name := range srv.ListTools() {
		names = append(names, name)
	}
	assert.ElementsMatch(t, []string{
		"add_item", "remove_item", "move_item", "reorder_item",
		"step_item", "set_kind", "rename_item", "flatten",
	}, names)
}
