package records

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   string `json:"id"`
	Seat int    `json:"seat"`
}

func TestFileStore_LoadMissingReturnsNil(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	data, err := store.Load(context.Background(), DocReservations)
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestFileStore_SaveOverwritesWholeDocument(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, DocAvailability, []byte(`[1,2,3]`)))
	require.NoError(t, store.Save(ctx, DocAvailability, []byte(`[4]`)))

	data, err := store.Load(ctx, DocAvailability)
	require.NoError(t, err)
	assert.Equal(t, `[4]`, string(data))

	// временные файлы не остаются в директории
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "availability.json", entries[0].Name())
}

func TestFileStore_RejectsPathNames(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"", "../etc", "a/b", `a\b`} {
		_, err := store.Load(context.Background(), name)
		assert.ErrorIs(t, err, ErrInvalidName, name)
		assert.ErrorIs(t, store.Save(context.Background(), name, nil), ErrInvalidName, name)
	}
}

func TestMemoryStore_CopiesData(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	buf := []byte(`{"a":1}`)
	require.NoError(t, store.Save(ctx, "doc", buf))
	buf[2] = 'z'

	data, err := store.Load(ctx, "doc")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))
}

func TestLoadJSON_CorruptDocumentIsEmpty(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "reservations.json"), []byte("{not json"), 0o644))

	items, err := LoadJSON[[]item](context.Background(), store, DocReservations)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestLoadJSON_SchemaMismatchIsError(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "items", []byte(`[{"id":"a","seat":1},{"id":"b","seat":"2"}]`)))

	items, err := LoadJSON[[]item](ctx, store, "items")
	assert.ErrorIs(t, err, ErrDecode)
	assert.Nil(t, items)

	// документ остается нетронутым
	data, err := store.Load(ctx, "items")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"seat":"2"`)
}

func TestSaveJSON_RoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	in := []item{{ID: "a", Seat: 1}, {ID: "b", Seat: 2}}
	require.NoError(t, SaveJSON(ctx, store, "items", in))

	out, err := LoadJSON[[]item](ctx, store, "items")
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestPostgresQueries(t *testing.T) {
	query, args, err := buildLoadQuery(DocNews)
	require.NoError(t, err)
	assert.Equal(t, "SELECT data FROM documents WHERE name = $1", query)
	assert.Equal(t, []interface{}{DocNews}, args)

	query, args, err = buildSaveQuery(DocNews, []byte(`[]`))
	require.NoError(t, err)
	assert.Equal(t,
		"INSERT INTO documents (name,data,updated_at) VALUES ($1,$2,now()) "+
			"ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at",
		query)
	assert.Equal(t, []interface{}{DocNews, "[]"}, args)
}
