package app

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/nestlist/pkg/store"
	"tableflip.dev/nestlist/pkg/tree"
)

type memoryPersistence struct {
	mu    sync.Mutex
	docs  map[string]*store.Document
	saves int
	fail  error
}

func newMemoryPersistence(docs ...*store.Document) *memoryPersistence {
	mp := &memoryPersistence{docs: make(map[string]*store.Document)}
	for _, d := range docs {
		cp := cloneDocument(d)
		mp.docs[d.Name] = cp
	}
	return mp
}

func cloneDocument(d *store.Document) *store.Document {
	cp := *d
	cp.Tree.Items = append([]tree.Item(nil), d.Tree.Items...)
	return &cp
}

func (m *memoryPersistence) Documents(_ context.Context) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var names []string
	for name := range m.docs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m *memoryPersistence) Load(name string) (*store.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.docs[name]
	if !ok {
		return nil, store.ErrNotFound
	}
	return cloneDocument(d), nil
}

func (m *memoryPersistence) Save(d *store.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.saves++
	m.docs[d.Name] = cloneDocument(d)
	return nil
}

func (m *memoryPersistence) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[name]; !ok {
		return store.ErrNotFound
	}
	delete(m.docs, name)
	return nil
}

func (m *memoryPersistence) Watch(ctx context.Context) (<-chan store.Event, error) {
	ch := make(chan store.Event)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

func newTestService(mp *memoryPersistence) (*Service, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return &Service{Persistence: mp, Log: logrus.NewEntry(logger)}, hook
}

func TestServiceOpenStartsNewDocument(t *testing.T) {
	svc, _ := newTestService(newMemoryPersistence())

	sess, err := svc.Open(context.Background(), "  ")
	require.NoError(t, err)
	assert.Equal(t, store.DefaultDocument, sess.Name)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, -1, sess.ActiveIndex)
	assert.Equal(t, 0, sess.Tree.Len())
}

func TestServiceUpdatePersists(t *testing.T) {
	mp := newMemoryPersistence()
	svc, _ := newTestService(mp)
	ctx := context.Background()

	_, err := svc.Update(ctx, "work", func(s *Session) error {
		a, err := s.Add("A", tree.NoParent)
		if err != nil {
			return err
		}
		_, err = s.Add("B", a)
		return err
	})
	require.NoError(t, err)

	sess, err := svc.Open(ctx, "work")
	require.NoError(t, err)
	require.Equal(t, 2, sess.Tree.Len())
	assert.Equal(t, 1, sess.ActiveIndex)
	assert.Equal(t, 2, sess.Tree.NextID())

	names, err := svc.Documents(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"work"}, names)
}

func TestServiceUpdateSkipsSaveOnError(t *testing.T) {
	mp := newMemoryPersistence()
	svc, hook := newTestService(mp)

	_, err := svc.Update(context.Background(), "work", func(s *Session) error {
		return s.Move(tree.NoParent)
	})
	require.ErrorIs(t, err, ErrNoSelection)
	assert.Equal(t, 0, mp.saves)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "change not applied", hook.LastEntry().Message)
}

func TestServiceSaveError(t *testing.T) {
	mp := newMemoryPersistence()
	mp.fail = errors.New("disk full")
	svc, hook := newTestService(mp)

	err := svc.Save(context.Background(), NewSession("work"))
	require.EqualError(t, err, "disk full")
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestServiceOpenRejectsCorruptDocument(t *testing.T) {
	doc := store.NewDocument("bad")
	doc.Tree = tree.Snapshot{NextID: 2, Items: []tree.Item{
		{ID: 0, Name: "A", ParentID: 1},
		{ID: 1, Name: "B", ParentID: 0},
	}}
	svc, _ := newTestService(newMemoryPersistence(doc))

	_, err := svc.Open(context.Background(), "bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `app: document "bad"`)
}

func TestServiceDelete(t *testing.T) {
	svc, _ := newTestService(newMemoryPersistence(store.NewDocument("a"), store.NewDocument("b")))
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, "a"))
	names, err := svc.Documents(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, names)
	assert.ErrorIs(t, svc.Delete(ctx, "a"), store.ErrNotFound)
}

func TestServiceWithoutPersistence(t *testing.T) {
	svc := &Service{}
	ctx := context.Background()

	_, err := svc.Open(ctx, "x")
	assert.Error(t, err)
	assert.Error(t, svc.Save(ctx, NewSession("x")))
	_, err = svc.Documents(ctx)
	assert.Error(t, err)
	_, err = svc.Watch(ctx)
	assert.Error(t, err)
}

func TestServiceOpenSeesOtherProcessWrites(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	newDiskService := func() *Service {
		p, err := store.Load(store.StaticConfig{Path: dir})
		require.NoError(t, err)
		return &Service{Persistence: p}
	}
	panel, cli := newDiskService(), newDiskService()

	_, err := panel.Update(ctx, "shared", func(s *Session) error {
		_, err := s.Add("A", tree.NoParent)
		return err
	})
	require.NoError(t, err)
	_, err = panel.Open(ctx, "shared")
	require.NoError(t, err)

	_, err = cli.Update(ctx, "shared", func(s *Session) error {
		_, err := s.Add("B", tree.NoParent)
		return err
	})
	require.NoError(t, err)

	sess, err := panel.Open(ctx, "shared")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, names(sess))

	// A save from the first service must keep the other one's item.
	_, err = panel.Update(ctx, "shared", func(s *Session) error {
		_, err := s.Add("C", tree.NoParent)
		return err
	})
	require.NoError(t, err)
	sess, err = cli.Open(ctx, "shared")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, names(sess))
}
