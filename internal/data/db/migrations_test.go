package db

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T, dir string) *DB {
	t.Helper()
	database, err := Open(dir, DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func indexExists(t *testing.T, conn *sql.DB, name string) bool {
	t.Helper()
	var count int
	err := conn.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND name = ?`, name).Scan(&count)
	require.NoError(t, err)
	return count == 1
}

func TestOpen_CreatesKVSchema(t *testing.T) {
	database := openTestDB(t, t.TempDir())
	ctx := context.Background()

	steps, err := schemaSteps()
	require.NoError(t, err)

	version, err := schemaVersion(ctx, database.Conn())
	require.NoError(t, err)
	assert.Equal(t, steps[len(steps)-1].version, version)

	require.NoError(t, database.Queries().KVSet(ctx, KVSetParams{Key: "prefs:x", Value: []byte(`{}`), CreatedAt: 1, UpdatedAt: 1}))
	assert.True(t, indexExists(t, database.Conn(), "idx_kv_store_updated_at"))
}

func TestOpen_ReopenKeepsRows(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := Open(dir, DefaultOpenOptions())
	require.NoError(t, err)
	require.NoError(t, first.Queries().KVSet(ctx, KVSetParams{Key: "prefs:x", Value: []byte(`"v"`), CreatedAt: 1, UpdatedAt: 1}))
	require.NoError(t, first.Close())

	second := openTestDB(t, dir)
	row, err := second.Queries().KVGet(ctx, "prefs:x")
	require.NoError(t, err)
	assert.JSONEq(t, `"v"`, string(row.Value))

	var rows int
	require.NoError(t, second.Conn().QueryRow(`SELECT COUNT(*) FROM schema_version`).Scan(&rows))
	steps, err := schemaSteps()
	require.NoError(t, err)
	assert.Equal(t, len(steps), rows, "reopening must not record steps twice")
}

func TestMigrateUp_AppliesOnlyNewerSteps(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), FileName)
	conn, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_journal_mode=WAL", dbPath))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	steps, err := schemaSteps()
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(steps), 2)

	// A database written by a build that only knew the first step.
	_, err = conn.Exec(steps[0].sql)
	require.NoError(t, err)
	_, err = conn.Exec(`CREATE TABLE schema_version (version INTEGER PRIMARY KEY, applied_at INTEGER NOT NULL)`)
	require.NoError(t, err)
	_, err = conn.Exec(`INSERT INTO schema_version (version, applied_at) VALUES (?, 0)`, steps[0].version)
	require.NoError(t, err)
	require.False(t, indexExists(t, conn, "idx_kv_store_updated_at"))

	require.NoError(t, migrateUp(context.Background(), conn))
	assert.True(t, indexExists(t, conn, "idx_kv_store_updated_at"))

	version, err := schemaVersion(context.Background(), conn)
	require.NoError(t, err)
	assert.Equal(t, steps[len(steps)-1].version, version)
}

func TestSchemaSteps_Ordered(t *testing.T) {
	steps, err := schemaSteps()
	require.NoError(t, err)
	require.NotEmpty(t, steps)

	assert.Equal(t, "kv_store", steps[0].name)
	for i := 1; i < len(steps); i++ {
		assert.Greater(t, steps[i].version, steps[i-1].version)
	}
	for _, s := range steps {
		assert.NotEmpty(t, s.sql, "step %04d", s.version)
	}
}

func TestSplitStepName(t *testing.T) {
	tests := []struct {
		file    string
		version int
		name    string
		wantErr bool
	}{
		{file: "0001_kv_store.sql", version: 1, name: "kv_store"},
		{file: "0012_kv_updated_index.sql", version: 12, name: "kv_updated_index"},
		{file: "kv_store.sql", wantErr: true},
		{file: "0000_zero.sql", wantErr: true},
		{file: "0001_.sql", wantErr: true},
		{file: "0001_kv_store.txt", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			version, name, err := splitStepName(tt.file)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.version, version)
			assert.Equal(t, tt.name, name)
		})
	}
}
