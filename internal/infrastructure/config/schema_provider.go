package config

import (
	"fmt"

	"github.com/bnema/docking/internal/domain/entity"
)

// Section names for grouping config keys.
const (
	SectionLogging   = "Logging"
	SectionDatabase  = "Database"
	SectionDocking   = "Docking"
	SectionDockables = "Dockables"
)

// SchemaProvider implements port.ConfigSchemaProvider.
type SchemaProvider struct{}

// NewSchemaProvider creates a new SchemaProvider.
func NewSchemaProvider() *SchemaProvider {
	return &SchemaProvider{}
}

// GetSchema returns all configuration keys with their metadata.
func (p *SchemaProvider) GetSchema() []entity.ConfigKeyInfo {
	defaults := DefaultConfig()

	keys := make([]entity.ConfigKeyInfo, 0, 20)
	keys = append(keys, p.getLoggingKeys(defaults)...)
	keys = append(keys, p.getDatabaseKeys()...)
	keys = append(keys, p.getDockingKeys(defaults)...)
	keys = append(keys, p.getDockableKeys()...)
	return keys
}

func (*SchemaProvider) getLoggingKeys(defaults *Config) []entity.ConfigKeyInfo {
	return []entity.ConfigKeyInfo{
		{
			Key:         "logging.level",
			Type:        "string",
			Default:     defaults.Logging.Level,
			Description: "Minimum log level (env: DOCKING_LOG_LEVEL)",
			Values:      []string{"trace", "debug", "info", "warn", "error", "disabled"},
			Section:     SectionLogging,
		},
		{
			Key:         "logging.format",
			Type:        "string",
			Default:     defaults.Logging.Format,
			Description: "Log output format (env: DOCKING_LOG_FORMAT)",
			Values:      []string{"console", "json"},
			Section:     SectionLogging,
		},
		{
			Key:         "logging.log_dir",
			Type:        "string",
			Default:     "$XDG_STATE_HOME/docking/logs",
			Description: "Directory for log files written while the playground owns the terminal",
			Section:     SectionLogging,
		},
		{
			Key:         "logging.max_size_mb",
			Type:        "int",
			Default:     fmt.Sprintf("%d", defaults.Logging.MaxSizeMB),
			Description: "Size at which the log file is rotated",
			Range:       ">=1",
			Section:     SectionLogging,
		},
		{
			Key:         "logging.max_backups",
			Type:        "int",
			Default:     fmt.Sprintf("%d", defaults.Logging.MaxBackups),
			Description: "Rotated log files to keep (0 keeps all)",
			Range:       ">=0",
			Section:     SectionLogging,
		},
		{
			Key:         "logging.max_age",
			Type:        "int",
			Default:     fmt.Sprintf("%d", defaults.Logging.MaxAge),
			Description: "Days to keep rotated log files (0 keeps them forever)",
			Range:       ">=0",
			Section:     SectionLogging,
		},
		{
			Key:         "logging.compress",
			Type:        "bool",
			Default:     fmt.Sprintf("%t", defaults.Logging.Compress),
			Description: "Gzip rotated log files",
			Section:     SectionLogging,
		},
	}
}

func (*SchemaProvider) getDatabaseKeys() []entity.ConfigKeyInfo {
	return []entity.ConfigKeyInfo{
		{
			Key:         "database.path",
			Type:        "string",
			Default:     "$XDG_DATA_HOME/docking/docking.sqlite",
			Description: "SQLite file holding saved docking paths",
			Section:     SectionDatabase,
		},
	}
}

func (*SchemaProvider) getDockingKeys(defaults *Config) []entity.ConfigKeyInfo {
	d := defaults.Docking
	fraction := func(key string, v float64, desc string) entity.ConfigKeyInfo {
		return entity.ConfigKeyInfo{
			Key:         key,
			Type:        "float64",
			Default:     fmt.Sprintf("%.2f", v),
			Description: desc,
			Range:       "0.0-1.0",
			Section:     SectionDocking,
		}
	}
	return []entity.ConfigKeyInfo{
		{
			Key:         "docking.drag_threshold",
			Type:        "float64",
			Default:     fmt.Sprintf("%.1f", d.DragThreshold),
			Description: "Distance the pointer must travel before a press becomes a drag",
			Range:       ">=0",
			Section:     SectionDocking,
		},
		fraction("docking.region_size", d.RegionSize, "Fraction of a container each edge drop band takes"),
		fraction("docking.region_size_min", d.RegionSizeMin, "Lower clamp for region sizes"),
		fraction("docking.region_size_max", d.RegionSizeMax, "Upper clamp for region sizes"),
		fraction("docking.sibling_size", d.SiblingSize, "Share a dropped sibling takes from its target"),
		fraction("docking.sibling_size_min", d.SiblingSizeMin, "Lower clamp for sibling sizes"),
		fraction("docking.sibling_size_max", d.SiblingSizeMax, "Upper clamp for sibling sizes"),
		{
			Key:         "docking.preview_sentinel_width",
			Type:        "int",
			Default:     fmt.Sprintf("%d", d.PreviewSentinelWidth),
			Description: "Width that marks drop-preview windows (skipped by the drag overlay)",
			Range:       ">=0",
			Section:     SectionDocking,
		},
		{
			Key:         "docking.preview_sentinel_height",
			Type:        "int",
			Default:     fmt.Sprintf("%d", d.PreviewSentinelHeight),
			Description: "Height that marks drop-preview windows (skipped by the drag overlay)",
			Range:       ">=0",
			Section:     SectionDocking,
		},
	}
}

func (*SchemaProvider) getDockableKeys() []entity.ConfigKeyInfo {
	return []entity.ConfigKeyInfo{
		{
			Key:         "dockables.<id>.drag_threshold",
			Type:        "float64",
			Default:     "docking.drag_threshold",
			Description: "Per-dockable drag threshold",
			Range:       ">=0",
			Section:     SectionDockables,
		},
		{
			Key:         "dockables.<id>.region_size",
			Type:        "float64",
			Default:     "docking.region_size",
			Description: "Per-dockable edge band fraction, clamped to the docking bounds",
			Range:       "0.0-1.0",
			Section:     SectionDockables,
		},
		{
			Key:         "dockables.<id>.sibling_size",
			Type:        "float64",
			Default:     "docking.sibling_size",
			Description: "Per-dockable sibling share, clamped to the docking bounds",
			Range:       "0.0-1.0",
			Section:     SectionDockables,
		},
		{
			Key:         "dockables.<id>.blocked_regions",
			Type:        "[]string",
			Default:     "[]",
			Description: "Regions of this dockable nothing may be docked into",
			Values:      []string{"north", "south", "east", "west", "center"},
			Section:     SectionDockables,
		},
	}
}
