package cmd

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/docking/internal/bootstrap"
	"github.com/bnema/docking/internal/cli/model"
	"github.com/bnema/docking/internal/domain/entity"
	"github.com/bnema/docking/internal/ui/term"
)

var playFlags struct {
	restore bool
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Drag and dock in an interactive terminal playground",
	Long: `Open the sample layout in two side-by-side terminal windows.

Press a title or tab with the left mouse button and drag it over another
port; the highlighted area shows where it will land. Release to dock.
Edits to the config file apply while the playground runs. Logs are written
to the rotated log file (see logging.log_dir) instead of the terminal.`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().BoolVar(&playFlags.restore, "restore", false, "restore stored docking paths on startup")
}

func runPlay(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	// The playground owns the terminal, so logs go to a file.
	logPath, closeLog, err := a.LogToFile()
	if err != nil {
		return err
	}
	defer closeLog()
	ctx, cancel := context.WithCancel(a.Ctx())
	defer cancel()
	log := a.Logger()
	log.Info().Str("log_file", logPath).Msg("starting playground")

	engine := bootstrap.NewEngine(bootstrap.EngineInput{
		Ctx:    ctx,
		Config: a.Config,
		Paths:  a.Paths,
	})
	desktop := term.NewDesktop(engine.Windows, engine.Drag)
	for _, id := range bootstrap.DemoRoots {
		if _, err := desktop.Add(entity.WindowID(id), string(id), entity.NewRootPort(id)); err != nil {
			return fmt.Errorf("add window %s: %w", id, err)
		}
	}
	if err := bootstrap.SeedDemo(ctx, engine); err != nil {
		return err
	}
	if playFlags.restore {
		if err := restoreStored(engine.Loop.WithLoop(ctx), engine); err != nil {
			return err
		}
	}

	if a.ConfigManager != nil {
		if err := engine.WatchConfig(ctx, a.ConfigManager); err != nil {
			log.Warn().Err(err).Msg("config watch unavailable")
		}
	}

	m := model.NewPlayModel(ctx, a.Theme, engine, desktop)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		_, err := p.Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		err := engine.Loop.Pump(gctx, func() { p.Send(model.LoopWakeMsg{}) })
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	err = g.Wait()
	engine.Shutdown(engine.Loop.WithLoop(a.Ctx()))
	return err
}

// restoreStored undocks the sample layout and rebuilds it from stored paths.
// Dockables without a stored path stay where the sample put them.
func restoreStored(ctx context.Context, engine *bootstrap.Engine) error {
	stored, err := engine.Layout.List(ctx)
	if err != nil {
		return err
	}
	for _, path := range stored {
		if d := engine.Ports.Dockable(path.DockableID); d.Docked() {
			if err := engine.Dock.Undock(ctx, d); err != nil {
				return fmt.Errorf("undock %s: %w", d.ID, err)
			}
		}
	}
	if _, err := engine.Layout.Restore(ctx); err != nil {
		return fmt.Errorf("restore layout: %w", err)
	}
	engine.Settle(ctx, 8)
	return nil
}
