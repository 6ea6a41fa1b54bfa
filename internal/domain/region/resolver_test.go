package region_test

import (
	"testing"

	"github.com/bnema/docking/internal/domain/entity"
	"github.com/bnema/docking/internal/domain/region"
	"github.com/stretchr/testify/assert"
)

type fixedPrefs struct {
	regionSize  float64
	siblingSize float64
}

func (p fixedPrefs) RegionSize(entity.DockableID) float64  { return p.regionSize }
func (p fixedPrefs) SiblingSize(entity.DockableID) float64 { return p.siblingSize }

func newResolver(regionSize, siblingSize float64) *region.Resolver {
	cfg := region.Config{
		RegionSize:  region.Fractions{Default: 0.25, Min: 0, Max: 1},
		SiblingSize: region.Fractions{Default: 0.5, Min: 0, Max: 1},
	}
	return region.NewResolver(cfg, fixedPrefs{regionSize: regionSize, siblingSize: siblingSize})
}

func TestResolveRegion_Bands(t *testing.T) {
	r := newResolver(0.2, 0.2)
	target := region.Target{Bounds: entity.Rect{W: 200, H: 100}, Dockable: "a"}

	tests := []struct {
		name  string
		point entity.Point
		want  entity.Region
	}{
		{"north middle", entity.Point{X: 100, Y: 5}, entity.RegionNorth},
		{"south middle", entity.Point{X: 100, Y: 95}, entity.RegionSouth},
		{"east middle", entity.Point{X: 190, Y: 50}, entity.RegionEast},
		{"west middle", entity.Point{X: 10, Y: 50}, entity.RegionWest},
		{"center", entity.Point{X: 100, Y: 50}, entity.RegionCenter},
		{"outside right", entity.Point{X: 200, Y: 50}, entity.RegionUnknown},
		{"outside above", entity.Point{X: 100, Y: -1}, entity.RegionUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.ResolveRegion(target, tt.point))
		})
	}
}

func TestResolveRegion_CornerDiagonal(t *testing.T) {
	r := newResolver(0.2, 0.2)
	target := region.Target{Bounds: entity.Rect{W: 200, H: 100}, Dockable: "a"}

	// Both points sit in the NORTH and WEST bands; the diagonal decides.
	assert.Equal(t, entity.RegionWest, r.ResolveRegion(target, entity.Point{X: 5, Y: 5}))
	assert.Equal(t, entity.RegionNorth, r.ResolveRegion(target, entity.Point{X: 5, Y: 18}))

	// Mirror images in the other three corners.
	assert.Equal(t, entity.RegionEast, r.ResolveRegion(target, entity.Point{X: 194, Y: 5}))
	assert.Equal(t, entity.RegionNorth, r.ResolveRegion(target, entity.Point{X: 194, Y: 18}))
	assert.Equal(t, entity.RegionWest, r.ResolveRegion(target, entity.Point{X: 5, Y: 95}))
	assert.Equal(t, entity.RegionSouth, r.ResolveRegion(target, entity.Point{X: 5, Y: 82}))
	assert.Equal(t, entity.RegionEast, r.ResolveRegion(target, entity.Point{X: 194, Y: 95}))
	assert.Equal(t, entity.RegionSouth, r.ResolveRegion(target, entity.Point{X: 194, Y: 82}))
}

func TestResolveRegion_OffsetBounds(t *testing.T) {
	r := newResolver(0.2, 0.2)
	target := region.Target{Bounds: entity.Rect{X: 1000, Y: 500, W: 200, H: 100}, Dockable: "a"}

	assert.Equal(t, entity.RegionWest, r.ResolveRegion(target, entity.Point{X: 1005, Y: 505}))
	assert.Equal(t, entity.RegionCenter, r.ResolveRegion(target, entity.Point{X: 1100, Y: 550}))
	assert.Equal(t, entity.RegionUnknown, r.ResolveRegion(target, entity.Point{X: 5, Y: 5}))
}

func TestResolveRegion_PartitionIsComplete(t *testing.T) {
	r := newResolver(0.3, 0.5)
	target := region.Target{Bounds: entity.Rect{X: 7, Y: 3, W: 61, H: 37}, Dockable: "a"}

	for x := target.Bounds.X; x < target.Bounds.X+target.Bounds.W; x++ {
		for y := target.Bounds.Y; y < target.Bounds.Y+target.Bounds.H; y++ {
			got := r.ResolveRegion(target, entity.Point{X: x, Y: y})
			if !got.Valid() {
				t.Fatalf("point (%d,%d) resolved to %s", x, y, got)
			}
		}
	}
}

func TestResolveRegion_EmptyPortIsAlwaysCenter(t *testing.T) {
	r := newResolver(0.5, 0.5)
	target := region.Target{Bounds: entity.Rect{W: 40, H: 20}, Empty: true}

	for x := 0; x < 40; x++ {
		for y := 0; y < 20; y++ {
			assert.Equal(t, entity.RegionCenter, r.ResolveRegion(target, entity.Point{X: x, Y: y}))
		}
	}
	assert.Equal(t, entity.RegionUnknown, r.ResolveRegion(target, entity.Point{X: 40, Y: 0}))
}

func TestResolveRegion_ZeroBoundsIsNoMatch(t *testing.T) {
	r := newResolver(0.2, 0.2)
	assert.Equal(t, entity.RegionUnknown, r.ResolveRegion(region.Target{}, entity.Point{}))
}

func TestResolveSiblingBounds_UsesSiblingFraction(t *testing.T) {
	r := newResolver(0.1, 0.4)
	target := region.Target{Bounds: entity.Rect{X: 10, Y: 20, W: 200, H: 100}, Dockable: "a"}

	tests := []struct {
		region entity.Region
		want   entity.Rect
	}{
		{entity.RegionNorth, entity.Rect{X: 10, Y: 20, W: 200, H: 40}},
		{entity.RegionSouth, entity.Rect{X: 10, Y: 80, W: 200, H: 40}},
		{entity.RegionWest, entity.Rect{X: 10, Y: 20, W: 80, H: 100}},
		{entity.RegionEast, entity.Rect{X: 130, Y: 20, W: 80, H: 100}},
		{entity.RegionCenter, target.Bounds},
	}

	for _, tt := range tests {
		t.Run(tt.region.String(), func(t *testing.T) {
			got, ok := r.ResolveSiblingBounds(target, tt.region)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := r.ResolveSiblingBounds(target, entity.RegionUnknown)
	assert.False(t, ok)
}

func TestFractions_ClampAndSentinel(t *testing.T) {
	f := region.Fractions{Default: 0.25, Min: 0.1, Max: 0.5}

	assert.InDelta(t, 0.25, f.Clamp(entity.Unspecified), 1e-9)
	assert.InDelta(t, 0.5, f.Clamp(3), 1e-9)
	assert.InDelta(t, 0.1, f.Clamp(-0.5), 1e-9)
	assert.InDelta(t, 0.3, f.Clamp(0.3), 1e-9)
}

func TestResolver_ClampsOutOfRangePreferences(t *testing.T) {
	cfg := region.DefaultConfig()
	r := region.NewResolver(cfg, fixedPrefs{regionSize: 9, siblingSize: entity.Unspecified})

	assert.InDelta(t, cfg.RegionSize.Max, r.RegionSize("a"), 1e-9)
	assert.InDelta(t, cfg.SiblingSize.Default, r.SiblingSize("a"), 1e-9)

	noPrefs := region.NewResolver(cfg, nil)
	assert.InDelta(t, cfg.RegionSize.Default, noPrefs.RegionSize("a"), 1e-9)
}
