// Package region decides which edge of a docking port a drop point belongs to.
package region

import (
	"math"
	"sync"

	"github.com/bnema/docking/internal/domain/entity"
)

// Fractions bounds a size fraction and names its system default.
type Fractions struct {
	Default float64 `mapstructure:"default" toml:"default" json:"default"`
	Min     float64 `mapstructure:"min" toml:"min" json:"min"`
	Max     float64 `mapstructure:"max" toml:"max" json:"max"`
}

// Clamp resolves v against the bounds. Unspecified or NaN values fall back to Default.
func (f Fractions) Clamp(v float64) float64 {
	if v == entity.Unspecified || math.IsNaN(v) {
		v = f.Default
	}
	lo, hi := f.Min, f.Max
	if lo > hi {
		lo, hi = hi, lo
	}
	return math.Max(lo, math.Min(hi, v))
}

// Config holds the region and sibling size bounds.
type Config struct {
	RegionSize  Fractions
	SiblingSize Fractions
}

// DefaultConfig returns the stock fractions: edge bands take a quarter of the
// container (at most half), and a dropped sibling takes half the space.
func DefaultConfig() Config {
	return Config{
		RegionSize:  Fractions{Default: 0.25, Min: 0, Max: 0.5},
		SiblingSize: Fractions{Default: 0.5, Min: 0, Max: 1},
	}
}

// Preferences supplies per-dockable fractions. Implementations return
// entity.Unspecified when the dockable has no preference.
type Preferences interface {
	RegionSize(id entity.DockableID) float64
	SiblingSize(id entity.DockableID) float64
}

// Target describes the container a point is tested against.
type Target struct {
	Bounds   entity.Rect
	Empty    bool              // An empty port has nothing to split against
	Dockable entity.DockableID // Dockable whose preferences size the bands
}

// Resolver maps points to regions. It is safe for concurrent use.
type Resolver struct {
	mu    sync.RWMutex
	cfg   Config
	prefs Preferences
}

// NewResolver creates a resolver. prefs may be nil.
func NewResolver(cfg Config, prefs Preferences) *Resolver {
	return &Resolver{cfg: cfg, prefs: prefs}
}

// SetConfig replaces the fraction bounds, e.g. after a config reload.
func (r *Resolver) SetConfig(cfg Config) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cfg = cfg
}

// RegionSize returns the clamped band fraction for a dockable.
func (r *Resolver) RegionSize(id entity.DockableID) float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v := entity.Unspecified
	if r.prefs != nil && id != "" {
		v = r.prefs.RegionSize(id)
	}
	return r.cfg.RegionSize.Clamp(v)
}

// SiblingSize returns the clamped share a dropped sibling takes from a dockable.
func (r *Resolver) SiblingSize(id entity.DockableID) float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v := entity.Unspecified
	if r.prefs != nil && id != "" {
		v = r.prefs.SiblingSize(id)
	}
	return r.cfg.SiblingSize.Clamp(v)
}

// ResolveRegion returns the region of t that p falls in, or RegionUnknown
// if p is outside t's bounds.
func (r *Resolver) ResolveRegion(t Target, p entity.Point) entity.Region {
	if !t.Bounds.Contains(p) {
		return entity.RegionUnknown
	}
	if t.Empty {
		return entity.RegionCenter
	}

	size := r.RegionSize(t.Dockable)
	b := bands(t.Bounds.W, t.Bounds.H, size)
	lp := p.Sub(t.Bounds.Origin())

	switch {
	case b.north.Contains(lp):
		return b.corner(lp, entity.RegionNorth)
	case b.south.Contains(lp):
		return b.corner(lp, entity.RegionSouth)
	case b.east.Contains(lp):
		return entity.RegionEast
	case b.west.Contains(lp):
		return entity.RegionWest
	default:
		return entity.RegionCenter
	}
}

// ResolveSiblingBounds returns the rectangle a sibling dropped into region
// would occupy, sized by the sibling fraction rather than the band fraction.
func (r *Resolver) ResolveSiblingBounds(t Target, region entity.Region) (entity.Rect, bool) {
	if t.Bounds.Empty() || !region.Valid() {
		return entity.Rect{}, false
	}
	if t.Empty || region == entity.RegionCenter {
		return t.Bounds, true
	}

	size := r.SiblingSize(t.Dockable)
	b := t.Bounds
	w := int(float64(b.W) * size)
	h := int(float64(b.H) * size)

	switch region {
	case entity.RegionNorth:
		return entity.Rect{X: b.X, Y: b.Y, W: b.W, H: h}, true
	case entity.RegionSouth:
		return entity.Rect{X: b.X, Y: b.Y + b.H - h, W: b.W, H: h}, true
	case entity.RegionWest:
		return entity.Rect{X: b.X, Y: b.Y, W: w, H: b.H}, true
	case entity.RegionEast:
		return entity.Rect{X: b.X + b.W - w, Y: b.Y, W: w, H: b.H}, true
	}
	return entity.Rect{}, false
}

// edgeBands holds the four bands in container-local coordinates.
type edgeBands struct {
	w, h                     int
	north, south, east, west entity.Rect
}

func bands(w, h int, size float64) edgeBands {
	nh := int(float64(h) * size)
	ew := int(float64(w) * size)
	return edgeBands{
		w:     w,
		h:     h,
		north: entity.Rect{X: 0, Y: 0, W: w, H: nh},
		south: entity.Rect{X: 0, Y: h - nh, W: w, H: nh},
		west:  entity.Rect{X: 0, Y: 0, W: ew, H: h},
		east:  entity.Rect{X: w - ew, Y: 0, W: ew, H: h},
	}
}

// corner settles a point in the north or south band that also lies in a side band.
// The triangle joins the shared container corner with the far corners of both
// bands; points inside it belong to the side band.
func (b edgeBands) corner(p entity.Point, band entity.Region) entity.Region {
	var bandH, edgeY int
	if band == entity.RegionNorth {
		bandH, edgeY = b.north.H, 0
	} else {
		bandH, edgeY = b.south.H, b.h
	}
	inner := edgeY + bandH
	if band == entity.RegionSouth {
		inner = edgeY - bandH
	}

	if b.west.Contains(p) {
		tri := entity.Polygon{
			{X: 0, Y: edgeY},
			{X: b.west.W, Y: edgeY},
			{X: 0, Y: inner},
		}
		if tri.Contains(p) {
			return entity.RegionWest
		}
		return band
	}
	if b.east.Contains(p) {
		tri := entity.Polygon{
			{X: b.w, Y: edgeY},
			{X: b.w - b.east.W, Y: edgeY},
			{X: b.w, Y: inner},
		}
		if tri.Contains(p) {
			return entity.RegionEast
		}
	}
	return band
}
