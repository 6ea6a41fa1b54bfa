// Package config loads docking preferences with Viper and watches them for changes.
package config

// Config represents the complete configuration for docking.
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging" toml:"logging" json:"logging"`
	Database DatabaseConfig `mapstructure:"database" toml:"database" json:"database"`
	// Docking holds the engine-wide drag and region defaults.
	Docking DockingConfig `mapstructure:"docking" toml:"docking" json:"docking"`
	// Dockables holds per-dockable overrides keyed by dockable id.
	Dockables map[string]DockableConfig `mapstructure:"dockables" toml:"dockables" json:"dockables,omitempty"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error"`
	Format string `mapstructure:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json"`

	// File output, used by commands that own the terminal.
	// LogDir empty means $XDG_STATE_HOME/docking/logs.
	LogDir     string `mapstructure:"log_dir" toml:"log_dir" json:"log_dir"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" toml:"max_size_mb" json:"max_size_mb" jsonschema:"minimum=1"`
	MaxBackups int    `mapstructure:"max_backups" toml:"max_backups" json:"max_backups" jsonschema:"minimum=0"`
	MaxAge     int    `mapstructure:"max_age" toml:"max_age" json:"max_age" jsonschema:"minimum=0"` // days
	Compress   bool   `mapstructure:"compress" toml:"compress" json:"compress"`
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	// Path to the sqlite file storing docking paths. Empty means the XDG data dir.
	Path string `mapstructure:"path" toml:"path" json:"path"`
}

// DockingConfig holds system defaults and clamping bounds for the docking engine.
type DockingConfig struct {
	// DragThreshold is how far the pointer travels before a press becomes a drag.
	DragThreshold float64 `mapstructure:"drag_threshold" toml:"drag_threshold" json:"drag_threshold" jsonschema:"minimum=0"`

	// RegionSize is the fraction of a container each edge band takes.
	RegionSize    float64 `mapstructure:"region_size" toml:"region_size" json:"region_size" jsonschema:"minimum=0,maximum=1"`
	RegionSizeMin float64 `mapstructure:"region_size_min" toml:"region_size_min" json:"region_size_min" jsonschema:"minimum=0,maximum=1"`
	RegionSizeMax float64 `mapstructure:"region_size_max" toml:"region_size_max" json:"region_size_max" jsonschema:"minimum=0,maximum=1"`

	// SiblingSize is the share a dropped sibling takes from its target.
	SiblingSize    float64 `mapstructure:"sibling_size" toml:"sibling_size" json:"sibling_size" jsonschema:"minimum=0,maximum=1"`
	SiblingSizeMin float64 `mapstructure:"sibling_size_min" toml:"sibling_size_min" json:"sibling_size_min" jsonschema:"minimum=0,maximum=1"`
	SiblingSizeMax float64 `mapstructure:"sibling_size_max" toml:"sibling_size_max" json:"sibling_size_max" jsonschema:"minimum=0,maximum=1"`

	// Windows of exactly this size are drop-preview windows and never get an overlay.
	PreviewSentinelWidth  int `mapstructure:"preview_sentinel_width" toml:"preview_sentinel_width" json:"preview_sentinel_width" jsonschema:"minimum=0"`
	PreviewSentinelHeight int `mapstructure:"preview_sentinel_height" toml:"preview_sentinel_height" json:"preview_sentinel_height" jsonschema:"minimum=0"`
}

// DockableConfig overrides docking preferences for one dockable.
// Pointer fields distinguish "unset" from an explicit zero.
type DockableConfig struct {
	DragThreshold *float64 `mapstructure:"drag_threshold" toml:"drag_threshold,omitempty" json:"drag_threshold,omitempty" jsonschema:"minimum=0"`
	RegionSize    *float64 `mapstructure:"region_size" toml:"region_size,omitempty" json:"region_size,omitempty" jsonschema:"minimum=0,maximum=1"`
	SiblingSize   *float64 `mapstructure:"sibling_size" toml:"sibling_size,omitempty" json:"sibling_size,omitempty" jsonschema:"minimum=0,maximum=1"`
	// BlockedRegions lists regions nothing may be docked into (north, south, east, west, center).
	BlockedRegions []string `mapstructure:"blocked_regions" toml:"blocked_regions,omitempty" json:"blocked_regions,omitempty"`
}
