package stores

import (
	"fmt"
	"os"

	"github.com/hay-kot/tzc/internal/data/db"
	"github.com/rs/zerolog/log"
)

// Open opens the database in dataDir, creating the directory if needed. A
// corrupted database is moved aside and recreated once.
func Open(dataDir string) (*db.DB, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	database, err := db.Open(dataDir, db.DefaultOpenOptions())
	if err == nil {
		return database, nil
	}
	if !IsCorruptionError(err) {
		return nil, err
	}

	log.Warn().Err(err).Str("dir", dataDir).Msg("database corrupted, recreating")
	if err := RecoverFromCorruption(dataDir); err != nil {
		return nil, err
	}

	return db.Open(dataDir, db.DefaultOpenOptions())
}
