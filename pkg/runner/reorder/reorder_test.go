package reorder

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/nestlist/pkg/app"
	"tableflip.dev/nestlist/pkg/store"
	"tableflip.dev/nestlist/pkg/tree"
)

func TestReorder(t *testing.T) {
	color.NoColor = true
	p, err := store.Load(store.StaticConfig{Path: t.TempDir()})
	require.NoError(t, err)
	svc := &app.Service{Persistence: p}
	ctx := context.Background()

	_, err = svc.Update(ctx, "home", func(s *app.Session) error {
		_, _ = s.Add("A", tree.NoParent)
		_, err := s.Add("B", tree.NoParent)
		return err
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	up := &Reorder{Direction: tree.Up, Document: "home", Service: svc, Out: &buf}
	require.NoError(t, up.Do(ctx))
	assert.Equal(t, "home - 2 items\n> B (ID: 1)\n  A (ID: 0)\n", buf.String())

	assert.ErrorIs(t, up.Do(ctx), app.ErrRejected)

	buf.Reset()
	down := &Reorder{Direction: tree.Down, Document: "home", Service: svc, Out: &buf}
	require.NoError(t, down.Do(ctx))
	assert.Equal(t, "home - 2 items\n  A (ID: 0)\n> B (ID: 1)\n", buf.String())
}
