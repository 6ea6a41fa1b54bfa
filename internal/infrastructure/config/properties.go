package config

import (
	"strings"
	"sync"

	"github.com/bnema/docking/internal/application/port"
	"github.com/bnema/docking/internal/domain/entity"
	"github.com/bnema/docking/internal/domain/region"
)

// PropertyStore serves per-dockable docking preferences from a Config.
// Numeric lookups return entity.Unspecified for dockables without an override,
// leaving defaults and clamping to the region resolver. Dockable ids match
// case-insensitively since Viper lowercases keys.
type PropertyStore struct {
	mu        sync.RWMutex
	docking   DockingConfig
	dockables map[entity.DockableID]dockableProps
}

type dockableProps struct {
	dragThreshold float64
	regionSize    float64
	siblingSize   float64
	blocked       map[entity.Region]bool
}

var (
	_ port.PropertyStore = (*PropertyStore)(nil)
	_ region.Preferences = (*PropertyStore)(nil)
)

// NewPropertyStore creates a store from cfg. A nil cfg uses the defaults.
func NewPropertyStore(cfg *Config) *PropertyStore {
	s := &PropertyStore{}
	s.Update(cfg)
	return s
}

// Update replaces the preferences, e.g. from a Manager.OnConfigChange callback.
func (s *PropertyStore) Update(cfg *Config) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	dockables := make(map[entity.DockableID]dockableProps, len(cfg.Dockables))
	for id, dc := range cfg.Dockables {
		props := dockableProps{
			dragThreshold: valueOr(dc.DragThreshold),
			regionSize:    valueOr(dc.RegionSize),
			siblingSize:   valueOr(dc.SiblingSize),
			blocked:       make(map[entity.Region]bool, len(dc.BlockedRegions)),
		}
		for _, name := range dc.BlockedRegions {
			if r := entity.ParseRegion(name); r.Valid() {
				props.blocked[r] = true
			}
		}
		dockables[entity.DockableID(strings.ToLower(id))] = props
	}

	s.mu.Lock()
	s.docking = cfg.Docking
	s.dockables = dockables
	s.mu.Unlock()
}

// DragThreshold implements port.PropertyStore.
func (s *PropertyStore) DragThreshold(id entity.DockableID) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lookup(id).dragThreshold
}

// RegionSize implements port.PropertyStore.
func (s *PropertyStore) RegionSize(id entity.DockableID) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lookup(id).regionSize
}

// SiblingSize implements port.PropertyStore.
func (s *PropertyStore) SiblingSize(id entity.DockableID) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lookup(id).siblingSize
}

// TerritoryBlocked implements port.PropertyStore.
func (s *PropertyStore) TerritoryBlocked(id entity.DockableID, r entity.Region) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lookup(id).blocked[r]
}

// DefaultDragThreshold is the threshold for dockables without an override.
func (s *PropertyStore) DefaultDragThreshold() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.docking.DragThreshold
}

// RegionConfig returns the fraction bounds for a region.Resolver.
func (s *PropertyStore) RegionConfig() region.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d := s.docking
	return region.Config{
		RegionSize:  region.Fractions{Default: d.RegionSize, Min: d.RegionSizeMin, Max: d.RegionSizeMax},
		SiblingSize: region.Fractions{Default: d.SiblingSize, Min: d.SiblingSizeMin, Max: d.SiblingSizeMax},
	}
}

// PreviewSentinel returns the size that marks drop-preview windows.
func (s *PropertyStore) PreviewSentinel() entity.Rect {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return entity.Rect{W: s.docking.PreviewSentinelWidth, H: s.docking.PreviewSentinelHeight}
}

func (s *PropertyStore) lookup(id entity.DockableID) dockableProps {
	if props, ok := s.dockables[entity.DockableID(strings.ToLower(string(id)))]; ok {
		return props
	}
	return dockableProps{
		dragThreshold: entity.Unspecified,
		regionSize:    entity.Unspecified,
		siblingSize:   entity.Unspecified,
	}
}

func valueOr(v *float64) float64 {
	if v == nil {
		return entity.Unspecified
	}
	return *v
}
