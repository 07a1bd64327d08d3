package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-catalog/internal/adapters/storage/sqlite"
	"pet-catalog/internal/domain/pets"
)

func openTestStore(t *testing.T) (*sqlite.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", sqlite.DefaultFile)
	st, err := sqlite.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st, path
}

func TestOpen_CreatesTableAndVersion(t *testing.T) {
	st, _ := openTestStore(t)

	var version int
	require.NoError(t, st.DB().QueryRow(`PRAGMA user_version`).Scan(&version))
	assert.Equal(t, sqlite.SchemaVersion, version)

	var count int
	require.NoError(t, st.DB().QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='pets'`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestOpen_ReopenKeepsRows(t *testing.T) {
	st, path := openTestStore(t)
	ctx := context.Background()

	id, err := st.Insert(ctx, pets.Values{"name": "Toto", "gender": int64(1), "weight": int64(7)})
	require.NoError(t, err)
	require.NoError(t, st.Close())

	again, err := sqlite.Open(path)
	require.NoError(t, err)
	defer again.Close()

	rows, err := again.Query(ctx, []string{"_id", "name"}, sq.Eq{"_id": id}, nil)
	require.NoError(t, err)
	defer rows.Close()
	require.True(t, rows.Next())
	var (
		gotID   int64
		gotName string
	)
	require.NoError(t, rows.Scan(&gotID, &gotName))
	assert.Equal(t, id, gotID)
	assert.Equal(t, "Toto", gotName)
}

func TestOpen_RejectsNewerSchema(t *testing.T) {
	st, path := openTestStore(t)
	_, err := st.DB().Exec(`PRAGMA user_version = 99`)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	_, err = sqlite.Open(path)
	require.ErrorIs(t, err, sqlite.ErrSchemaTooNew)
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := sqlite.Open("  ")
	require.Error(t, err)
}

func TestStore_IdentifiersAreNotReused(t *testing.T) {
	st, _ := openTestStore(t)
	ctx := context.Background()
	v := pets.Values{"name": "Rex", "gender": int64(0), "weight": int64(3)}

	first, err := st.Insert(ctx, v)
	require.NoError(t, err)
	n, err := st.Delete(ctx, sq.Eq{"_id": first})
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	second, err := st.Insert(ctx, v)
	require.NoError(t, err)
	assert.Greater(t, second, first)
}

func TestStore_UpdateAndDeleteWithFilter(t *testing.T) {
	st, _ := openTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"Milo", "Luna", "Milo"} {
		_, err := st.Insert(ctx, pets.Values{"name": name, "gender": int64(2), "weight": int64(4)})
		require.NoError(t, err)
	}

	n, err := st.Update(ctx, pets.Values{"weight": int64(5)}, sq.Eq{"name": "Milo"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = st.Delete(ctx, sq.Eq{"weight": int64(5)})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = st.Delete(ctx, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestStore_NotNullNameIsEnforced(t *testing.T) {
	st, _ := openTestStore(t)

	_, err := st.Insert(context.Background(), pets.Values{"name": nil, "gender": int64(0), "weight": int64(1)})
	require.Error(t, err)
}
