// Package cli wires the dockctl command-line dependencies.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/bnema/docking/internal/application/usecase"
	"github.com/bnema/docking/internal/cli/styles"
	"github.com/bnema/docking/internal/domain/build"
	"github.com/bnema/docking/internal/domain/repository"
	"github.com/bnema/docking/internal/infrastructure/config"
	"github.com/bnema/docking/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/docking/internal/logging"
)

// App holds CLI dependencies.
type App struct {
	Config        *config.Config
	ConfigManager *config.Manager // nil when the config file could not be loaded
	Props         *config.PropertyStore
	Theme         *styles.Theme
	BuildInfo     build.Info

	// Persistence
	DB    *sqlite.LazyDB
	Paths repository.DockingPathRepository

	// Use cases
	ConfigSchemaUC *usecase.GetConfigSchemaUseCase

	// Context with logger
	ctx      context.Context
	logLevel string
}

// NewApp creates a new CLI application with all dependencies.
// The database is opened on first use.
func NewApp() (*App, error) {
	const dataDirPerm = 0o755
	mgr, cfg := loadConfig()

	logLevel := cfg.Logging.Level
	if envLevel := os.Getenv("DOCKING_LOG_LEVEL"); envLevel != "" {
		logLevel = envLevel
	}
	logger := logging.NewFromConfigValues(logLevel, cfg.Logging.Format)
	ctx := logging.WithContext(context.Background(), logger)

	if mgr == nil {
		logger.Warn().Msg("config could not be loaded, using defaults")
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), dataDirPerm); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	db := sqlite.NewLazyDB(cfg.Database.Path)
	logger.Debug().Str("db_path", db.Path()).Msg("database configured")

	return &App{
		Config:         cfg,
		ConfigManager:  mgr,
		Props:          config.NewPropertyStore(cfg),
		Theme:          styles.NewTheme(),
		DB:             db,
		Paths:          sqlite.NewLazyDockingPathRepository(db),
		ConfigSchemaUC: usecase.NewGetConfigSchemaUseCase(config.NewSchemaProvider()),
		ctx:            ctx,
		logLevel:       logLevel,
	}, nil
}

// Close releases all resources.
func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return logging.FromContext(a.ctx)
}

// LogToFile redirects the app logger to the rotated log file, for commands
// that take over the terminal. cleanup closes the file.
func (a *App) LogToFile() (path string, cleanup func(), err error) {
	const logName = "docking.log"
	logCfg := a.Config.Logging

	dir := logCfg.LogDir
	if dir == "" {
		if dir, err = config.GetLogDir(); err != nil {
			return "", func() {}, fmt.Errorf("resolve log dir: %w", err)
		}
	}

	base := logging.DefaultConfig()
	base.Level = logging.ParseLevel(a.logLevel)
	if logCfg.Format == "json" {
		base.Format = "json"
	}
	file := logging.RotatorConfigFromValues(dir, logName, logCfg.MaxSizeMB, logCfg.MaxBackups, logCfg.MaxAge, logCfg.Compress)
	logger, cleanup, err := logging.NewWithFile(base, file)
	if err != nil {
		return "", func() {}, fmt.Errorf("open log file: %w", err)
	}

	a.ctx = logging.WithContext(a.ctx, logger)
	return filepath.Join(dir, logName), cleanup, nil
}

// loadConfig loads configuration from standard locations, falling back to defaults.
func loadConfig() (*config.Manager, *config.Config) {
	mgr, err := config.NewManager()
	if err != nil {
		return nil, defaultConfig()
	}

	if err := mgr.Load(); err != nil {
		return nil, defaultConfig()
	}

	return mgr, mgr.Get()
}

func defaultConfig() *config.Config {
	cfg := config.DefaultConfig()
	if dbPath, err := config.GetDatabaseFile(); err == nil {
		cfg.Database.Path = dbPath
	} else {
		cfg.Database.Path = filepath.Join(os.TempDir(), "docking", "docking.sqlite")
	}
	return cfg
}
