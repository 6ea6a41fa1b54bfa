package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/docking/internal/cli/styles"
	"github.com/bnema/docking/internal/domain/entity"
	"github.com/bnema/docking/internal/domain/region"
)

var regionFlags struct {
	width, height int
	x, y          int
	dockable      string
	regionSize    float64
	siblingSize   float64
	empty         bool
	cols, rows    int
}

var regionCmd = &cobra.Command{
	Use:   "region",
	Short: "Resolve which drop region a point falls in",
	Long: `Resolve the drop region of a point inside a container and show the
rectangle a sibling dropped there would occupy.

Sizes come from the configuration, optionally per dockable, and can be
overridden with --region-size and --sibling-size.

Examples:
  dockctl region --width 800 --height 600 --x 790 --y 300
  dockctl region --width 80 --height 24 --x 2 --y 2 --region-size 0.4`,
	RunE: runRegion,
}

func init() {
	rootCmd.AddCommand(regionCmd)

	f := regionCmd.Flags()
	f.IntVar(&regionFlags.width, "width", 800, "container width")
	f.IntVar(&regionFlags.height, "height", 600, "container height")
	f.IntVar(&regionFlags.x, "x", 400, "point x, relative to the container")
	f.IntVar(&regionFlags.y, "y", 300, "point y, relative to the container")
	f.StringVar(&regionFlags.dockable, "dockable", "", "dockable whose configured sizes apply")
	f.Float64Var(&regionFlags.regionSize, "region-size", entity.Unspecified, "edge band fraction (clamped to configured bounds)")
	f.Float64Var(&regionFlags.siblingSize, "sibling-size", entity.Unspecified, "sibling fraction (clamped to configured bounds)")
	f.BoolVar(&regionFlags.empty, "empty", false, "treat the container as an empty port")
	f.IntVar(&regionFlags.cols, "cols", 40, "region map columns (0 disables the map)")
	f.IntVar(&regionFlags.rows, "rows", 12, "region map rows")
}

// overridePrefs layers command-line sizes over the configured ones.
type overridePrefs struct {
	base                    region.Preferences
	regionSize, siblingSize float64
}

func (p overridePrefs) RegionSize(id entity.DockableID) float64 {
	if p.regionSize != entity.Unspecified {
		return p.regionSize
	}
	return p.base.RegionSize(id)
}

func (p overridePrefs) SiblingSize(id entity.DockableID) float64 {
	if p.siblingSize != entity.Unspecified {
		return p.siblingSize
	}
	return p.base.SiblingSize(id)
}

func runRegion(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	if regionFlags.width <= 0 || regionFlags.height <= 0 {
		return fmt.Errorf("container size must be positive, got %dx%d", regionFlags.width, regionFlags.height)
	}

	// An override with no dockable still needs an id for preferences to apply.
	id := entity.DockableID(regionFlags.dockable)
	if id == "" && (regionFlags.regionSize != entity.Unspecified || regionFlags.siblingSize != entity.Unspecified) {
		id = "dockctl"
	}

	prefs := overridePrefs{base: a.Props, regionSize: regionFlags.regionSize, siblingSize: regionFlags.siblingSize}
	resolver := region.NewResolver(a.Props.RegionConfig(), prefs)

	target := region.Target{
		Bounds:   entity.Rect{W: regionFlags.width, H: regionFlags.height},
		Empty:    regionFlags.empty,
		Dockable: id,
	}
	pt := entity.Point{X: regionFlags.x, Y: regionFlags.y}

	r := resolver.ResolveRegion(target, pt)
	preview, ok := resolver.ResolveSiblingBounds(target, r)

	a.Logger().Debug().
		Str("point", pt.String()).
		Str("region", r.String()).
		Msg("region resolved")

	renderer := styles.NewRegionRenderer(a.Theme)
	fmt.Println(renderer.RenderResult(styles.RegionResult{
		Target:      target,
		Point:       pt,
		Region:      r,
		Preview:     preview,
		HasPreview:  ok,
		RegionSize:  resolver.RegionSize(id),
		SiblingSize: resolver.SiblingSize(id),
	}))
	if regionFlags.cols > 0 && regionFlags.rows > 0 {
		fmt.Println(renderer.RenderMap(resolver, target, regionFlags.cols, regionFlags.rows, &pt))
	}
	return nil
}
