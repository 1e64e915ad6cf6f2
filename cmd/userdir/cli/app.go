package cli

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/userdir/userdir/internal/config"
	"github.com/userdir/userdir/internal/database"
	"github.com/userdir/userdir/internal/users"
)

// appState holds everything a command needs
type appState struct {
	Logger    *zap.Logger
	Store     users.UserRepository
	Directory *users.Directory
	db        *bun.DB
}

// newAppState opens the store, inserts seed users it does not hold yet and
// loads every stored user into a fresh directory
func newAppState(ctx context.Context) (*appState, error) {
	logger, err := initLogger()
	if err != nil {
		return nil, err
	}

	store, db, err := openStore(ctx, logger)
	if err != nil {
		return nil, err
	}

	as := &appState{
		Logger: logger,
		Store:  store,
		db:     db,
	}

	if seedFile := config.Directory().SeedFile; seedFile != "" {
		seed, err := users.LoadSeedFile(seedFile)
		if err != nil {
			as.Close()
			return nil, errors.Wrap(err, "failed to load seed file")
		}
		inserted, err := users.Seed(ctx, store, seed)
		if err != nil {
			as.Close()
			return nil, errors.Wrap(err, "failed to apply seed file")
		}
		logger.Debug("Seed file applied",
			zap.String("seed_file", seedFile),
			zap.Int("users", len(seed)),
			zap.Int("inserted", inserted))
	}

	stored, err := store.ListUsers(ctx)
	if err != nil {
		as.Close()
		return nil, errors.Wrap(err, "failed to load users")
	}

	as.Directory = users.NewDirectory(store, logger)
	as.Directory.Add(stored...)

	return as, nil
}

func openStore(ctx context.Context, logger *zap.Logger) (users.UserRepository, *bun.DB, error) {
	storeConfig := config.Store()

	var opts database.Options
	switch storeConfig.Type {
	case config.StoreTypeMemory:
		logger.Debug("Using memory store")
		return users.NewMemoryStore(), nil, nil
	case config.StoreTypeSQLite:
		opts = database.Options{
			Driver: database.DriverSQLite,
			DSN:    storeConfig.SQLitePath,
		}
	case config.StoreTypePostgres:
		pgConfig := config.Postgres()
		logger.Debug("Database configuration",
			zap.String("host", pgConfig.Host),
			zap.Int("port", pgConfig.Port),
			zap.String("database", pgConfig.Database),
			zap.String("user", pgConfig.User))
		opts = database.Options{
			Driver:         database.DriverPostgres,
			DSN:            pgConfig.DSN(),
			MaxConnections: pgConfig.MaxOpenConnections,
		}
	default:
		return nil, nil, errors.Errorf("unknown store type %q", storeConfig.Type)
	}

	db, err := database.Open(ctx, opts)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open database")
	}

	if err := users.CreateTables(ctx, db); err != nil {
		db.Close()
		return nil, nil, errors.Wrap(err, "failed to create tables")
	}

	return users.NewSQLStore(db), db, nil
}

// Close releases the database and flushes the logger
func (as *appState) Close() {
	if as.db != nil {
		if err := as.db.Close(); err != nil {
			as.Logger.Error("Error closing database", zap.Error(err))
		}
	}
	_ = as.Logger.Sync()
}
