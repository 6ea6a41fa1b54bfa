package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/bnema/docking/internal/domain/entity"
)

// validateConfig performs comprehensive validation of configuration values
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateLogging(config)...)
	validationErrors = append(validationErrors, validateDocking(config)...)
	validationErrors = append(validationErrors, validateDockables(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}

	return nil
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	switch strings.ToLower(config.Logging.Level) {
	case "", "trace", "debug", "info", "warn", "error", "disabled":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf(
			"logging.level must be one of: trace, debug, info, warn, error, disabled (got: %s)",
			config.Logging.Level,
		))
	}
	switch strings.ToLower(config.Logging.Format) {
	case "", "console", "json":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf(
			"logging.format must be one of: console, json (got: %s)",
			config.Logging.Format,
		))
	}
	if config.Logging.MaxSizeMB < 1 {
		validationErrors = append(validationErrors, "logging.max_size_mb must be at least 1")
	}
	if config.Logging.MaxBackups < 0 || config.Logging.MaxAge < 0 {
		validationErrors = append(validationErrors, "logging.max_backups and logging.max_age must be non-negative")
	}
	return validationErrors
}

func validateDocking(config *Config) []string {
	d := config.Docking
	var validationErrors []string

	if d.DragThreshold < 0 {
		validationErrors = append(validationErrors, "docking.drag_threshold must be non-negative")
	}
	validationErrors = append(validationErrors,
		validateFractionRange("docking.region_size", d.RegionSize, d.RegionSizeMin, d.RegionSizeMax)...)
	validationErrors = append(validationErrors,
		validateFractionRange("docking.sibling_size", d.SiblingSize, d.SiblingSizeMin, d.SiblingSizeMax)...)
	if d.PreviewSentinelWidth < 0 || d.PreviewSentinelHeight < 0 {
		validationErrors = append(validationErrors, "docking.preview_sentinel_width and docking.preview_sentinel_height must be non-negative")
	}
	return validationErrors
}

// validateFractionRange checks that min, max and the default are fractions and min <= default <= max.
func validateFractionRange(key string, value, lo, hi float64) []string {
	var validationErrors []string
	for _, f := range []struct {
		name string
		v    float64
	}{{key, value}, {key + "_min", lo}, {key + "_max", hi}} {
		if f.v < 0 || f.v > 1 {
			validationErrors = append(validationErrors, fmt.Sprintf("%s must be between 0.0 and 1.0", f.name))
		}
	}
	if len(validationErrors) > 0 {
		return validationErrors
	}
	if lo > hi {
		return []string{fmt.Sprintf("%s_min must not exceed %s_max", key, key)}
	}
	if value < lo || value > hi {
		return []string{fmt.Sprintf("%s must be between %s_min and %s_max (%.2f-%.2f)", key, key, key, lo, hi)}
	}
	return nil
}

func validateDockables(config *Config) []string {
	var validationErrors []string
	for _, id := range slices.Sorted(maps.Keys(config.Dockables)) {
		dc := config.Dockables[id]
		prefix := "dockables." + id
		if dc.DragThreshold != nil && *dc.DragThreshold < 0 {
			validationErrors = append(validationErrors, prefix+".drag_threshold must be non-negative")
		}
		if dc.RegionSize != nil && (*dc.RegionSize < 0 || *dc.RegionSize > 1) {
			validationErrors = append(validationErrors, prefix+".region_size must be between 0.0 and 1.0")
		}
		if dc.SiblingSize != nil && (*dc.SiblingSize < 0 || *dc.SiblingSize > 1) {
			validationErrors = append(validationErrors, prefix+".sibling_size must be between 0.0 and 1.0")
		}
		for _, r := range dc.BlockedRegions {
			if !entity.ParseRegion(r).Valid() {
				validationErrors = append(validationErrors, fmt.Sprintf(
					"%s.blocked_regions must contain only north, south, east, west, center (got: %s)", prefix, r,
				))
			}
		}
	}
	return validationErrors
}
