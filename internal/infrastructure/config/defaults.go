package config

// Default configuration constants
const (
	// Logging defaults
	defaultLogLevel      = "info"
	defaultLogFormat     = "console"
	defaultLogMaxSizeMB  = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAgeDays = 7

	// Docking defaults
	defaultDragThreshold  = 4.0 // pixels or terminal cells
	defaultRegionSize     = 0.25
	defaultRegionSizeMin  = 0.0
	defaultRegionSizeMax  = 0.5
	defaultSiblingSize    = 0.5
	defaultSiblingSizeMin = 0.0
	defaultSiblingSizeMax = 1.0

	// Drop-preview windows are created at 1x1 before being positioned.
	defaultPreviewSentinelWidth  = 1
	defaultPreviewSentinelHeight = 1
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:      defaultLogLevel,
			Format:     defaultLogFormat,
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
			MaxAge:     defaultLogMaxAgeDays,
			Compress:   true,
		},
		Docking: DockingConfig{
			DragThreshold:         defaultDragThreshold,
			RegionSize:            defaultRegionSize,
			RegionSizeMin:         defaultRegionSizeMin,
			RegionSizeMax:         defaultRegionSizeMax,
			SiblingSize:           defaultSiblingSize,
			SiblingSizeMin:        defaultSiblingSizeMin,
			SiblingSizeMax:        defaultSiblingSizeMax,
			PreviewSentinelWidth:  defaultPreviewSentinelWidth,
			PreviewSentinelHeight: defaultPreviewSentinelHeight,
		},
		Dockables: map[string]DockableConfig{},
	}
}
