package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hay-kot/tzc/internal/core/catalog"
	"github.com/hay-kot/tzc/internal/core/config"
	"github.com/hay-kot/tzc/internal/core/kv"
	"github.com/hay-kot/tzc/internal/core/logging"
	"github.com/hay-kot/tzc/internal/core/prefs"
	"github.com/hay-kot/tzc/internal/core/zone"
	"github.com/hay-kot/tzc/internal/data/db"
	"github.com/hay-kot/tzc/internal/data/stores"
	"github.com/hay-kot/tzc/internal/store/jsonfile"
	"github.com/hay-kot/tzc/pkg/utils"
	"github.com/rs/zerolog"
)

// App wires the configured catalog, converter and preferences backend.
// Commands and the TUI build workspaces from it instead of assembling the
// pieces themselves.
type App struct {
	Config    *config.Config
	Catalog   *catalog.Catalog
	Converter *zone.Converter
	Local     zone.ID
	KV        kv.KV
	Prefs     *prefs.Store
	// DB is nil unless the sqlite driver is in use and could be opened.
	DB *db.DB
	// StoreErr is why the configured backend was replaced by memory.
	StoreErr error
	// Notices collects problems to report once the terminal is free.
	Notices *utils.DeferredWriter

	logger zerolog.Logger
}

// Open builds the App for cfg. An unusable preferences store is replaced by
// an in-memory one and reported through Notices; only an invalid catalog
// configuration is an error.
func Open(cfg *config.Config, logger zerolog.Logger) (*App, error) {
	cat, err := BuildCatalog(cfg.Catalog)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:    cfg,
		Catalog:   cat,
		Converter: zone.NewConverter(cfg.Timeline.Strict),
		Local:     zone.Local(),
		Notices:   utils.NewDeferredWriter("tzc: "),
		logger:    logger,
	}

	backend, database, err := openBackend(cfg)
	if err != nil {
		logger.Warn().Err(err).Str("driver", cfg.Storage.Driver).Msg("preferences store unavailable, using memory")
		app.Notices.Printf("preferences store unavailable, changes will not be saved: %v", err)
		backend = kv.NewMemory()
		app.StoreErr = err
	}
	app.KV = backend
	app.DB = database
	app.Prefs = prefs.NewStore(backend, cfg.Defaults, logging.ComponentOf(logger, "prefs"))

	return app, nil
}

func openBackend(cfg *config.Config) (kv.KV, *db.DB, error) {
	switch cfg.Storage.Driver {
	case config.DriverJSON:
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create data dir: %w", err)
		}
		return jsonfile.NewKVFile(filepath.Join(cfg.DataDir, jsonfile.FileName)), nil, nil
	default:
		database, err := stores.Open(cfg.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		return stores.NewKVStore(database), database, nil
	}
}

// BuildCatalog returns the embedded catalog, or the zones found under
// ZoneInfoDir, narrowed by the include and exclude globs.
func BuildCatalog(cfg config.CatalogConfig) (*catalog.Catalog, error) {
	cat := catalog.Default()
	if cfg.ZoneInfoDir != "" {
		ids, err := catalog.Scan(os.DirFS(cfg.ZoneInfoDir))
		if err != nil {
			return nil, err
		}
		cat = catalog.New(ids)
	}

	if len(cfg.Include) == 0 && len(cfg.Exclude) == 0 {
		return cat, nil
	}
	return cat.Filter(cfg.Include, cfg.Exclude)
}

// StorePattern is the doublestar pattern matching the files the configured
// driver writes inside the data directory.
func (a *App) StorePattern() string {
	if a.Config.Storage.Driver == config.DriverJSON {
		return jsonfile.FileName
	}
	return db.FileName + "*"
}

// StoreLocation is the file the configured driver persists to.
func (a *App) StoreLocation() string {
	if a.Config.Storage.Driver == config.DriverJSON {
		return filepath.Join(a.Config.DataDir, jsonfile.FileName)
	}
	return filepath.Join(a.Config.DataDir, db.FileName)
}

// Workspace loads a workspace over the App's preferences store.
func (a *App) Workspace(ctx context.Context, now func() time.Time) *Workspace {
	return New(ctx, Options{
		Catalog:        a.Catalog,
		Prefs:          a.Prefs,
		Converter:      a.Converter,
		Local:          a.Local,
		Now:            now,
		RestoreInstant: a.Config.Timeline.RestoreInstant,
		Logger:         logging.ComponentOf(a.logger, "workspace"),
	})
}

// Close releases the database, if one is open.
func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}
