package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shelves/internal/reducer"
	"github.com/mesh-intelligence/shelves/pkg/types"
)

func attachTemp(t *testing.T) (*Backend, string) {
	t.Helper()
	dir := t.TempDir()
	b := NewBackend(nil)
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))
	t.Cleanup(func() { b.Detach() })
	return b, dir
}

func TestBackend_Attach(t *testing.T) {
	b, dir := attachTemp(t)

	for _, name := range []string{databaseFile, sessionsJSONL, actionsJSONL} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	err := b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir})
	assert.ErrorIs(t, err, types.ErrAlreadyAttached)
}

func TestBackend_AttachInvalidConfig(t *testing.T) {
	b := NewBackend(nil)
	assert.ErrorIs(t, b.Attach(types.Config{DataDir: t.TempDir()}), types.ErrBackendEmpty)
	assert.ErrorIs(t, b.Attach(types.Config{Backend: "bolt", DataDir: t.TempDir()}), types.ErrBackendUnknown)
}

func TestBackend_Detach(t *testing.T) {
	b, _ := attachTemp(t)

	require.NoError(t, b.Detach())
	assert.NoError(t, b.Detach(), "detach is idempotent")

	_, err := b.ListSessions()
	assert.ErrorIs(t, err, types.ErrBackendDetached)
	_, err = b.CreateSession("after", types.NewShelf())
	assert.ErrorIs(t, err, types.ErrBackendDetached)
	_, err = b.Record("any", types.FieldRemove{ShelfID: types.ChannelID{Channel: types.ChannelX}})
	assert.ErrorIs(t, err, types.ErrBackendDetached)
}

func TestBackend_Sessions(t *testing.T) {
	b, _ := attachTemp(t)

	initial := types.Shelf{
		Mark:     types.MarkBar,
		Encoding: types.SpecificEncoding{types.ChannelX: {Field: "a"}},
	}
	first, err := b.CreateSession("cars", initial)
	require.NoError(t, err)
	assert.NotEmpty(t, first.SessionID)
	assert.Equal(t, "cars", first.Name)
	assert.Equal(t, initial.Clone(), first.Initial)

	second, err := b.CreateSession("weather", types.NewShelf())
	require.NoError(t, err)

	got, err := b.GetSession(first.SessionID)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	list, err := b.ListSessions()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.SessionID, list[0].SessionID)
	assert.Equal(t, second.SessionID, list[1].SessionID)

	_, err = b.GetSession("missing")
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = b.CreateSession("  ", types.NewShelf())
	assert.ErrorIs(t, err, types.ErrInvalidName)

	bad := types.Shelf{AnyEncodings: []types.ShelfAnyEncodingDef{{Index: 1}, {Index: 1}}}
	_, err = b.CreateSession("bad", bad)
	assert.ErrorIs(t, err, types.ErrDuplicateWildcardIndex)
}

func TestBackend_RecordAndActions(t *testing.T) {
	b, _ := attachTemp(t)
	s, err := b.CreateSession("session", types.NewShelf())
	require.NoError(t, err)

	actions := []types.Action{
		types.FieldAdd{ShelfID: types.ChannelID{Channel: types.ChannelX}, FieldDef: types.ShelfFieldDef{Field: "a"}},
		types.FieldAdd{ShelfID: types.WildcardChannelID{Channel: types.AnyChannel, Index: 0}, FieldDef: types.ShelfFieldDef{Field: "b"}},
		types.FieldMove{From: types.ChannelID{Channel: types.ChannelX}, To: types.ChannelID{Channel: types.ChannelY}},
		types.FunctionChange{ShelfID: types.ChannelID{Channel: types.ChannelY}, Fn: types.AggregateMean},
	}
	for i, a := range actions {
		rec, err := b.Record(s.SessionID, a)
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), rec.Seq)
		assert.Equal(t, a, rec.Action)
	}

	got, err := b.Actions(s.SessionID)
	require.NoError(t, err)
	require.Len(t, got, len(actions))
	for i, rec := range got {
		assert.Equal(t, actions[i], rec.Action)
		assert.Equal(t, s.SessionID, rec.SessionID)
	}

	_, err = b.Record("missing", actions[0])
	assert.ErrorIs(t, err, types.ErrNotFound)

	none, err := b.Actions("missing")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestBackend_ReloadFromJSONL(t *testing.T) {
	dir := t.TempDir()
	cfg := types.Config{Backend: types.BackendSQLite, DataDir: dir}

	b := NewBackend(nil)
	require.NoError(t, b.Attach(cfg))
	s, err := b.CreateSession("persisted", types.NewShelf())
	require.NoError(t, err)
	add := types.FieldAdd{ShelfID: types.ChannelID{Channel: types.ChannelColor}, FieldDef: types.ShelfFieldDef{Field: "city"}}
	_, err = b.Record(s.SessionID, add)
	require.NoError(t, err)
	require.NoError(t, b.Detach())

	reopened := NewBackend(nil)
	require.NoError(t, reopened.Attach(cfg))
	defer reopened.Detach()

	got, err := reopened.GetSession(s.SessionID)
	require.NoError(t, err)
	assert.Equal(t, s, got)

	recs, err := reopened.Actions(s.SessionID)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, add, recs[0].Action)

	rec, err := reopened.Record(s.SessionID, types.FieldRemove{ShelfID: add.ShelfID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), rec.Seq, "seq continues after reload")
}

func TestSessionRecorder_WithStore(t *testing.T) {
	b, _ := attachTemp(t)
	s, err := b.CreateSession("store", types.NewShelf())
	require.NoError(t, err)

	store := reducer.NewStore(s.Initial, reducer.WithRecorder(SessionRecorder{History: b, SessionID: s.SessionID}))
	store.HandleAction(types.FieldAdd{ShelfID: types.ChannelID{Channel: types.ChannelX}, FieldDef: types.ShelfFieldDef{Field: "a"}})
	store.HandleAction(types.FieldMove{From: types.ChannelID{Channel: types.ChannelX}, To: types.WildcardChannelID{Channel: types.AnyChannel, Index: 0}})

	recs, err := b.Actions(s.SessionID)
	require.NoError(t, err)
	actions := make([]types.Action, 0, len(recs))
	for _, r := range recs {
		actions = append(actions, r.Action)
	}

	assert.Equal(t, store.State(), reducer.Replay(s.Initial, actions))
}
