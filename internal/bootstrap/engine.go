// Package bootstrap assembles the docking engine from its parts.
package bootstrap

import (
	"context"

	"github.com/google/uuid"

	"github.com/bnema/docking/internal/application/port"
	"github.com/bnema/docking/internal/application/usecase"
	"github.com/bnema/docking/internal/domain/entity"
	"github.com/bnema/docking/internal/domain/region"
	"github.com/bnema/docking/internal/domain/repository"
	"github.com/bnema/docking/internal/infrastructure/config"
	"github.com/bnema/docking/internal/logging"
	"github.com/bnema/docking/internal/ui/drag"
	"github.com/bnema/docking/internal/ui/mainloop"
	"github.com/bnema/docking/internal/ui/window"
)

// EngineInput holds what NewEngine needs.
type EngineInput struct {
	Ctx    context.Context
	Config *config.Config
	// Paths stores docking paths. Layout is nil without it.
	Paths repository.DockingPathRepository
	// Synchronous re-lays-out trees right after each mutation instead of on
	// the next loop cycle. Use it when nothing drains the loop.
	Synchronous bool
	// OnRepaint is called whenever a drag overlay's hover state changes.
	OnRepaint func(*drag.Overlay)
}

// Engine is a wired docking engine: registries, strategy, restore and drag.
type Engine struct {
	Loop     *mainloop.Loop
	Props    *config.PropertyStore
	Ports    *entity.Registry
	Windows  *window.Registry
	Resolver *region.Resolver
	Dock     *usecase.DockUseCase
	Restore  *usecase.RestorePathUseCase
	Layout   *usecase.ManageLayoutUseCase
	DragCtx  *drag.Context
	Pipeline *drag.Pipeline
	Drag     *drag.Manager
}

// NewIDGenerator returns the id generator for anonymous nested ports.
func NewIDGenerator() usecase.IDGenerator {
	return func() string {
		return "port-" + uuid.NewString()[:8]
	}
}

// NewEngine wires an engine. A nil config means defaults.
func NewEngine(in EngineInput) *Engine {
	ctx := in.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := in.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	log := logging.FromContext(ctx)

	e := &Engine{
		Loop:    mainloop.New(),
		Props:   config.NewPropertyStore(cfg),
		Ports:   entity.NewRegistry(),
		DragCtx: drag.NewContext(),
	}
	e.Windows = window.NewRegistry(ctx, e.Ports)
	e.Resolver = region.NewResolver(e.Props.RegionConfig(), e.Props)

	var layoutDispatcher port.Dispatcher = e.Loop
	if in.Synchronous {
		layoutDispatcher = nil
	}
	e.Dock = usecase.NewDockUseCase(NewIDGenerator(), e.Resolver, layoutDispatcher)
	e.Restore = usecase.NewRestorePathUseCase(e.Ports, e.Dock, e.Dock, layoutDispatcher)
	if in.Paths != nil {
		e.Layout = usecase.NewManageLayoutUseCase(e.Ports, in.Paths, e.Restore)
	}

	e.Pipeline = drag.NewPipeline(ctx, e.Windows, e.Loop, e.Resolver, e.Props, e.DragCtx, drag.PipelineOptions{
		PreviewSentinel: e.Props.PreviewSentinel(),
		OnRepaint:       in.OnRepaint,
	})
	e.Drag = drag.NewManager(ctx, e.Pipeline, e.Dock, e.Props, drag.ManagerOptions{
		DragThreshold: e.Props.DefaultDragThreshold(),
	})

	e.Windows.OnClose(func(_ context.Context, w *window.Window) {
		e.Pipeline.WindowClosed(w.ID())
	})

	log.Debug().
		Bool("synchronous", in.Synchronous).
		Bool("layout_store", in.Paths != nil).
		Msg("docking engine ready")
	return e
}

// ApplyConfig pushes a reloaded configuration into the running engine.
// It runs on the loop so it never races a gesture.
func (e *Engine) ApplyConfig(ctx context.Context, cfg *config.Config) {
	if cfg == nil {
		return
	}
	e.Loop.Post(func(loopCtx context.Context) {
		e.Props.Update(cfg)
		e.Resolver.SetConfig(e.Props.RegionConfig())
		e.Drag.SetDefaultThreshold(e.Props.DefaultDragThreshold())
		e.Pipeline.SetPreviewSentinel(e.Props.PreviewSentinel())
		logging.FromContext(loopCtx).Info().Msg("docking configuration reloaded")
	})
	logging.FromContext(ctx).Debug().Msg("config reload queued")
}

// WatchConfig applies every config file change to the engine.
func (e *Engine) WatchConfig(ctx context.Context, mgr *config.Manager) error {
	if mgr == nil {
		return nil
	}
	mgr.OnConfigChange(func(cfg *config.Config) {
		e.ApplyConfig(ctx, cfg)
	})
	return mgr.Watch()
}

// Settle drains pending loop work, e.g. deferred layouts, up to maxCycles cycles.
func (e *Engine) Settle(ctx context.Context, maxCycles int) int {
	return e.Loop.Flush(ctx, maxCycles)
}

// Shutdown abandons any gesture in progress and drops queued pointer moves.
func (e *Engine) Shutdown(ctx context.Context) {
	e.Drag.Cancel(ctx)
	e.Pipeline.Destroy()
	logging.FromContext(ctx).Debug().Msg("docking engine stopped")
}
