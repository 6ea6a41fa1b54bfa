package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/bnema/docking/internal/bootstrap"
	"github.com/bnema/docking/internal/cli/styles"
	"github.com/bnema/docking/internal/domain/entity"
)

var layoutFlags struct {
	width, height int
	bounds        bool
	forget        string
}

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Work with docking layouts",
}

var layoutDemoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Build a sample layout, tear it down and restore it from docking paths",
	Long: `Build a sample layout across two root ports, capture and store every
dockable's docking path, undock everything, then restore the layout from the
stored paths. The tree is printed after each step.

The captured paths stay in the database; see 'dockctl paths list'.`,
	RunE: runLayoutDemo,
}

func init() {
	rootCmd.AddCommand(layoutCmd)
	layoutCmd.AddCommand(layoutDemoCmd)

	f := layoutDemoCmd.Flags()
	f.IntVar(&layoutFlags.width, "width", 800, "root port width")
	f.IntVar(&layoutFlags.height, "height", 600, "root port height")
	f.BoolVar(&layoutFlags.bounds, "bounds", false, "show laid-out bounds of every port")
	f.StringVar(&layoutFlags.forget, "forget", "", "forget this dockable's stored path so it stays undocked")
}

func runLayoutDemo(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	ctx := a.Ctx()
	log := a.Logger()

	engine := bootstrap.NewEngine(bootstrap.EngineInput{
		Ctx:         ctx,
		Config:      a.Config,
		Paths:       a.Paths,
		Synchronous: true,
	})
	for _, id := range bootstrap.DemoRoots {
		root := entity.NewRootPort(id)
		root.Layout(entity.Rect{W: layoutFlags.width, H: layoutFlags.height})
		engine.Ports.RegisterRoot(root)
	}
	if err := bootstrap.SeedDemo(ctx, engine); err != nil {
		return err
	}

	renderer := styles.NewTreeRenderer(a.Theme)
	renderer.ShowBounds = layoutFlags.bounds
	step := lipgloss.NewStyle().Foreground(a.Theme.Accent)

	fmt.Println(renderer.RenderAll("Initial layout", engine.Ports.Roots()))
	fmt.Println()

	saved, err := engine.Layout.Save(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s %s\n\n", step.Render(styles.IconDatabase), a.Theme.Normal.Render(
		fmt.Sprintf("Stored %d docking paths", len(saved.Processed))))

	for _, d := range engine.Ports.Dockables() {
		if err := engine.Dock.Undock(ctx, d); err != nil {
			return fmt.Errorf("undock %s: %w", d.ID, err)
		}
	}
	if layoutFlags.forget != "" {
		id := entity.DockableID(layoutFlags.forget)
		if engine.Ports.Dockable(id) == nil {
			return fmt.Errorf("unknown dockable %q", layoutFlags.forget)
		}
		if err := engine.Layout.Forget(ctx, id); err != nil {
			return err
		}
	}
	fmt.Println(renderer.RenderAll("After undocking everything", engine.Ports.Roots()))
	fmt.Println()

	restored, err := engine.Layout.Restore(ctx)
	if err != nil {
		return err
	}
	log.Debug().
		Int("restored", len(restored.Processed)).
		Int("skipped", len(restored.Skipped)).
		Msg("layout restored")

	fmt.Printf("%s %s\n\n", step.Render(styles.IconRestore), a.Theme.Normal.Render(
		fmt.Sprintf("Restored %d dockables, skipped %d", len(restored.Processed), len(restored.Skipped))))
	fmt.Println(renderer.RenderAll("Restored layout", engine.Ports.Roots()))
	return nil
}
