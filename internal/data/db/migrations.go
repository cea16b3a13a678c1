package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var schemaFS embed.FS

// schemaStep is one forward-only change to the kv_store schema, loaded from
// migrations/NNNN_name.sql.
type schemaStep struct {
	version int
	name    string
	sql     string
}

// schemaSteps returns the embedded steps ordered by version.
func schemaSteps() ([]schemaStep, error) {
	files, err := fs.Glob(schemaFS, "migrations/*.sql")
	if err != nil {
		return nil, err
	}

	steps := make([]schemaStep, 0, len(files))
	seen := map[int]string{}
	for _, file := range files {
		version, name, err := splitStepName(path.Base(file))
		if err != nil {
			return nil, fmt.Errorf("schema file %q: %w", file, err)
		}
		if prev, dup := seen[version]; dup {
			return nil, fmt.Errorf("schema version %04d used by %q and %q", version, prev, name)
		}
		seen[version] = name

		body, err := fs.ReadFile(schemaFS, file)
		if err != nil {
			return nil, err
		}
		steps = append(steps, schemaStep{version: version, name: name, sql: string(body)})
	}

	slices.SortFunc(steps, func(a, b schemaStep) int { return a.version - b.version })
	return steps, nil
}

// splitStepName parses "0001_kv_store.sql" into 1 and "kv_store".
func splitStepName(file string) (int, string, error) {
	stem, ok := strings.CutSuffix(file, ".sql")
	if !ok {
		return 0, "", fmt.Errorf("missing .sql suffix")
	}
	num, name, ok := strings.Cut(stem, "_")
	if !ok || name == "" {
		return 0, "", fmt.Errorf("want NNNN_name.sql")
	}
	version, err := strconv.Atoi(num)
	if err != nil || version <= 0 {
		return 0, "", fmt.Errorf("version %q must be a positive integer", num)
	}
	return version, name, nil
}

// migrateUp brings the schema to the newest embedded version. Each step runs
// in its own transaction together with its schema_version row.
func migrateUp(ctx context.Context, conn *sql.DB) error {
	steps, err := schemaSteps()
	if err != nil {
		return err
	}

	if _, err := conn.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_version (
			version    INTEGER PRIMARY KEY,
			applied_at INTEGER NOT NULL
		)`); err != nil {
		return fmt.Errorf("create schema_version: %w", err)
	}

	current, err := schemaVersion(ctx, conn)
	if err != nil {
		return err
	}

	for _, step := range steps {
		if step.version <= current {
			continue
		}
		log.Debug().Int("version", step.version).Str("step", step.name).Msg("updating kv schema")
		if err := applyStep(ctx, conn, step); err != nil {
			return fmt.Errorf("schema %04d (%s): %w", step.version, step.name, err)
		}
	}
	return nil
}

// schemaVersion returns the highest applied version, or 0 on a new database.
func schemaVersion(ctx context.Context, conn *sql.DB) (int, error) {
	var version int
	err := conn.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}

func applyStep(ctx context.Context, conn *sql.DB, step schemaStep) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, step.sql); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_version (version, applied_at) VALUES (?, ?)`,
		step.version, time.Now().Unix(),
	); err != nil {
		return err
	}
	return tx.Commit()
}
