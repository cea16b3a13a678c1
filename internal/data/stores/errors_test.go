package stores

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/tzc/internal/data/db"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoverFromCorruption_Success(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, db.FileName)

	require.NoError(t, os.WriteFile(dbPath, []byte("corrupted data"), 0o644))
	require.NoError(t, os.WriteFile(dbPath+"-wal", []byte("wal data"), 0o644))
	require.NoError(t, os.WriteFile(dbPath+"-shm", []byte("shm data"), 0o644))

	require.NoError(t, RecoverFromCorruption(dir))

	for _, p := range []string{dbPath, dbPath + "-wal", dbPath + "-shm"} {
		_, err := os.Stat(p)
		assert.True(t, os.IsNotExist(err), "%s should be moved", p)
	}

	backups, err := filepath.Glob(filepath.Join(dir, db.FileName+".corrupt.*"))
	require.NoError(t, err)
	assert.Len(t, backups, 3)
}

func TestRecoverFromCorruption_NoFile(t *testing.T) {
	assert.NoError(t, RecoverFromCorruption(t.TempDir()))
}

func TestIsCorruptionError(t *testing.T) {
	assert.False(t, IsCorruptionError(nil))
	assert.False(t, IsCorruptionError(errors.New("boom")))
	assert.True(t, IsCorruptionError(sqlite3.Error{Code: sqlite3.ErrNotADB}))
	assert.True(t, IsCorruptionError(errors.New("file is not a database")))
}

func TestIsBusyError(t *testing.T) {
	assert.True(t, IsBusyError(sqlite3.Error{Code: sqlite3.ErrBusy}))
	assert.False(t, IsBusyError(errors.New("busy")))
}

func TestOpen_RecoversCorruptedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, db.FileName), []byte("this is not sqlite at all, just text padding the header"), 0o644))

	database, err := Open(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	store := NewKVStore(database)
	has, err := store.Has(t.Context(), "anything")
	require.NoError(t, err)
	assert.False(t, has)
}
