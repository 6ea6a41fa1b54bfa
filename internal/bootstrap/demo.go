package bootstrap

import (
	"context"
	"fmt"

	"github.com/bnema/docking/internal/application/usecase"
	"github.com/bnema/docking/internal/domain/entity"
)

// DemoRoots are the root ports the sample layout docks into.
var DemoRoots = []entity.PortID{"main", "side"}

// demoPlacement docks one sample dockable relative to a root or an earlier dockable.
type demoPlacement struct {
	id       entity.DockableID
	title    string
	root     entity.PortID
	relative entity.DockableID
	region   entity.Region
}

var demoPlacements = []demoPlacement{
	{id: "editor", title: "Editor", root: "main", region: entity.RegionCenter},
	{id: "outline", title: "Outline", root: "main", relative: "editor", region: entity.RegionWest},
	{id: "console", title: "Console", root: "main", relative: "editor", region: entity.RegionSouth},
	{id: "logs", title: "Logs", root: "main", relative: "console", region: entity.RegionCenter},
	{id: "terminal", title: "Terminal", root: "side", region: entity.RegionCenter},
	{id: "problems", title: "Problems", root: "side", relative: "terminal", region: entity.RegionNorth},
}

// SeedDemo registers the sample dockables and docks them. Roots missing from
// the registry fall back to the default root.
func SeedDemo(ctx context.Context, e *Engine) error {
	for _, p := range demoPlacements {
		d := entity.NewDockable(p.id, p.title)
		e.Ports.RegisterDockable(d)

		target := e.Ports.Root(p.root)
		if target == nil {
			target = e.Ports.DefaultRoot()
		}
		if p.relative != "" {
			if rel := e.Ports.Dockable(p.relative); rel.Docked() {
				target = rel.Port
			}
		}
		if target == nil {
			return fmt.Errorf("dock %s: %w", p.id, usecase.ErrNoRoot)
		}
		if err := e.Dock.Dock(ctx, d, target, p.region, nil); err != nil {
			return fmt.Errorf("dock %s: %w", p.id, err)
		}
	}
	return nil
}
