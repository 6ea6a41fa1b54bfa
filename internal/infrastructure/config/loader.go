package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config         *Config
	viper          *viper.Viper
	mu             sync.RWMutex
	callbacks      []func(*Config)
	watching       bool
	skipNextReload bool
}

// NewManager creates a new configuration manager.
func NewManager() (*Manager, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	v.AddConfigPath(configDir)

	// DOCKING_DOCKING_DRAG_THRESHOLD, DOCKING_DATABASE_PATH, ...
	v.SetEnvPrefix("DOCKING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("logging.level", "DOCKING_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind DOCKING_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "DOCKING_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind DOCKING_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:     v,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables.
// A missing config file is created from the defaults.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}
	return m.reload(false)
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) {
		configFile := m.viper.ConfigFileUsed()
		if configFile == "" {
			configFile, _ = GetConfigFile()
		}
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", configFile, err)
	}

	if createErr := m.createDefaultConfig(); createErr != nil {
		configDir, _ := GetConfigDir()
		return fmt.Errorf("failed to create default config at %s: %w", configDir, createErr)
	}
	if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
		return fmt.Errorf("failed to read newly created config file: %w", rereadErr)
	}
	return nil
}

// createDefaultConfig writes the defaults to the XDG config file.
func (m *Manager) createDefaultConfig() error {
	configFile, err := GetConfigFile()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(configFile), dirPerm); err != nil {
		return err
	}
	return WriteConfigOrdered(DefaultConfig(), configFile)
}

func (m *Manager) unmarshalConfig() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.viper.ConfigFileUsed(),
			err,
		)
	}
	return config, nil
}

func ensureDatabasePath(config *Config) error {
	if config.Database.Path != "" {
		return nil
	}
	dbPath, err := GetDatabaseFile()
	if err != nil {
		return fmt.Errorf("failed to get database path: %w", err)
	}
	config.Database.Path = dbPath
	return nil
}

func normalizeConfig(config *Config) {
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	if config.Logging.Level == "" {
		config.Logging.Level = defaultLogLevel
	}
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))
	if config.Logging.Format == "" {
		config.Logging.Format = defaultLogFormat
	}
	config.Logging.LogDir = strings.TrimSpace(config.Logging.LogDir)

	if config.Dockables == nil {
		config.Dockables = map[string]DockableConfig{}
	}
	for id, dc := range config.Dockables {
		for i, r := range dc.BlockedRegions {
			dc.BlockedRegions[i] = strings.ToLower(strings.TrimSpace(r))
		}
		config.Dockables[id] = dc
	}
}

// Get returns the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	return m.config.clone()
}

// Save validates cfg and writes it to the config file.
func (m *Manager) Save(cfg *Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if err := validateConfig(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	configFile := m.viper.ConfigFileUsed()
	if configFile == "" {
		var err error
		if configFile, err = GetConfigFile(); err != nil {
			return err
		}
	}
	if err := WriteConfigOrdered(cfg, configFile); err != nil {
		return err
	}

	m.config = cfg.clone()
	if m.watching {
		// The watcher resyncs viper and notifies callbacks.
		m.skipNextReload = true
		return nil
	}
	if err := m.viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to sync config after save: %w", err)
	}
	return nil
}

// GetConfigFile returns the path to the configuration file being used.
func (m *Manager) GetConfigFile() string {
	return m.viper.ConfigFileUsed()
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.log_dir", "")
	m.viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	m.viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	m.viper.SetDefault("logging.max_age", defaults.Logging.MaxAge)
	m.viper.SetDefault("logging.compress", defaults.Logging.Compress)

	// database.path resolves in Load so an empty value keeps following XDG_DATA_HOME.
	m.viper.SetDefault("database.path", "")

	m.viper.SetDefault("docking.drag_threshold", defaults.Docking.DragThreshold)
	m.viper.SetDefault("docking.region_size", defaults.Docking.RegionSize)
	m.viper.SetDefault("docking.region_size_min", defaults.Docking.RegionSizeMin)
	m.viper.SetDefault("docking.region_size_max", defaults.Docking.RegionSizeMax)
	m.viper.SetDefault("docking.sibling_size", defaults.Docking.SiblingSize)
	m.viper.SetDefault("docking.sibling_size_min", defaults.Docking.SiblingSizeMin)
	m.viper.SetDefault("docking.sibling_size_max", defaults.Docking.SiblingSizeMax)
	m.viper.SetDefault("docking.preview_sentinel_width", defaults.Docking.PreviewSentinelWidth)
	m.viper.SetDefault("docking.preview_sentinel_height", defaults.Docking.PreviewSentinelHeight)
}

func (c *Config) clone() *Config {
	out := *c
	out.Dockables = maps.Clone(c.Dockables)
	return &out
}
