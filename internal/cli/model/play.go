// Package model provides Bubble Tea models for CLI commands.
package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/docking/internal/application/port"
	"github.com/bnema/docking/internal/bootstrap"
	"github.com/bnema/docking/internal/cli/styles"
	"github.com/bnema/docking/internal/domain/entity"
	"github.com/bnema/docking/internal/logging"
	"github.com/bnema/docking/internal/ui/drag"
	"github.com/bnema/docking/internal/ui/term"
)

// flushCycles bounds how much loop work one update drains.
const flushCycles = 8

// LoopWakeMsg tells the model that work was posted to the engine loop from
// another goroutine.
type LoopWakeMsg struct{}

// PlayModel is the Bubble Tea model for the interactive docking playground.
// Update runs on the engine's UI thread: every mutation happens there and
// pending loop work is drained before the next frame is drawn.
type PlayModel struct {
	// UI components
	help help.Model
	keys styles.PlayKeyMap

	// State
	pressed   *term.Frame      // Frame whose source receives motion during a gesture
	selected  *entity.Dockable // Last dockable clicked
	status    string
	statusErr bool
	showHelp  bool
	width     int
	height    int

	// Dependencies
	ctx     context.Context
	engine  *bootstrap.Engine
	desktop *term.Desktop
	theme   *styles.Theme
}

// NewPlayModel creates a playground model over a wired engine and desktop.
func NewPlayModel(ctx context.Context, theme *styles.Theme, engine *bootstrap.Engine, desktop *term.Desktop) PlayModel {
	log := logging.FromContext(ctx)
	log.Debug().Int("frames", len(desktop.Frames())).Msg("creating play model")

	return PlayModel{
		help:    styles.NewStyledHelp(theme),
		keys:    styles.DefaultPlayKeyMap(),
		status:  "drag a title or tab to dock it elsewhere",
		ctx:     engine.Loop.WithLoop(ctx),
		engine:  engine,
		desktop: desktop,
		theme:   theme,
		width:   80,
		height:  24,
	}
}

// Init implements tea.Model.
func (m PlayModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.resize()
	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case LoopWakeMsg:
	}

	m.engine.Loop.Flush(m.ctx, flushCycles)
	return m, cmd
}

func (m *PlayModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.engine.Drag.Cancel(m.ctx)
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		m.resize()
	case key.Matches(msg, m.keys.Cancel):
		if m.pressed != nil {
			m.engine.Drag.Cancel(m.ctx)
			m.pressed = nil
			m.setStatus("drag canceled", nil)
		}
	case key.Matches(msg, m.keys.Save):
		m.saveLayout()
	case key.Matches(msg, m.keys.Restore):
		m.restoreLayout()
	case key.Matches(msg, m.keys.Undock):
		m.undockSelected()
	}
	return nil
}

func (m *PlayModel) handleMouse(msg tea.MouseMsg) {
	pt := entity.Point{X: msg.X, Y: msg.Y}
	evt := port.MouseEvent{Screen: pt}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || m.pressed != nil {
			return
		}
		hit, ok := m.desktop.HitTest(pt)
		if !ok || hit.Dockable == nil {
			return
		}
		if hit.Tab >= 0 {
			hit.Port.ActiveTab = hit.Tab
		}
		m.selected = hit.Dockable
		evt.Local = hit.Local
		if m.engine.Drag.Press(m.ctx, hit.Dockable, hit.Frame.Source, evt) {
			m.pressed = hit.Frame
		}
		m.setStatus("selected "+hit.Dockable.Title, nil)
	case tea.MouseActionMotion:
		if m.pressed != nil {
			m.pressed.Source.Dispatch(m.ctx, evt)
		}
	case tea.MouseActionRelease:
		if m.pressed == nil {
			return
		}
		m.pressed = nil
		op := m.engine.Drag.Operation()
		if err := m.engine.Drag.Release(m.ctx, evt); err != nil {
			m.setStatus("dock failed", err)
			return
		}
		if op != nil && op.HasTarget() && op.Source().Docked() {
			m.setStatus(fmt.Sprintf("docked %s %s of %s", op.Source().Title, op.TargetRegion, dropAnchor(op)), nil)
		}
	}
}

func (m *PlayModel) saveLayout() {
	if m.engine.Layout == nil {
		m.setStatus("no layout store configured", nil)
		return
	}
	out, err := m.engine.Layout.Save(m.ctx)
	if err != nil {
		m.setStatus("save failed", err)
		return
	}
	m.setStatus(fmt.Sprintf("saved %d docking paths", len(out.Processed)), nil)
}

func (m *PlayModel) restoreLayout() {
	if m.engine.Layout == nil {
		m.setStatus("no layout store configured", nil)
		return
	}
	out, err := m.engine.Layout.Restore(m.ctx)
	if err != nil {
		m.setStatus("restore failed", err)
		return
	}
	m.setStatus(fmt.Sprintf("restored %d, skipped %d", len(out.Processed), len(out.Skipped)), nil)
}

func (m *PlayModel) undockSelected() {
	d := m.selected
	if d == nil || !d.Docked() {
		m.setStatus("nothing selected", nil)
		return
	}
	if err := m.engine.Dock.Undock(m.ctx, d); err != nil {
		m.setStatus("undock failed", err)
		return
	}
	m.setStatus("undocked "+d.Title, nil)
}

func (m *PlayModel) setStatus(text string, err error) {
	m.statusErr = err != nil
	if err != nil {
		logging.FromContext(m.ctx).Warn().Err(err).Msg(text)
		text = text + ": " + err.Error()
	}
	m.status = text
}

// resize gives the desktop whatever the status and help lines leave.
func (m *PlayModel) resize() {
	chrome := 1 + lipgloss.Height(m.help.View(m.keys))
	m.desktop.Resize(m.width, max(m.height-chrome, 0))
}

// View implements tea.Model.
func (m PlayModel) View() string {
	width, height := m.desktop.Size()
	canvas := term.NewCanvas(width, height)

	var source *entity.Dockable
	if m.engine.Drag.State() == drag.StateDragging {
		source = m.engine.Drag.Operation().Source()
	}
	for _, f := range m.desktop.Frames() {
		canvas.DrawFrame(f, source)
	}
	if o := m.engine.Pipeline.ActiveOverlay(); o != nil {
		if h := o.Hover(); h.Region.Valid() {
			canvas.DrawPreview(h.Preview.Translate(o.Window().Bounds().Origin()))
		}
	}

	var b strings.Builder
	for _, line := range canvas.Lines(m.paint) {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m PlayModel) statusLine() string {
	state := m.theme.BadgeMuted.Render(m.engine.Drag.State().String())
	if m.engine.Drag.State() == drag.StateDragging {
		state = m.theme.Badge.Render(m.engine.Drag.State().String())
	}

	text := m.theme.Subtle.Render(m.status)
	if m.statusErr {
		text = m.theme.ErrorStyle.Render(m.status)
	}
	if o := m.engine.Pipeline.ActiveOverlay(); o != nil {
		if h := o.Hover(); h.Region.Valid() {
			text = m.theme.Highlight.Render(fmt.Sprintf("%s %s of %s", styles.IconTarget, h.Region, portLabel(h.Port)))
		}
	}
	return state + " " + text
}

func (m PlayModel) paint(style term.CellStyle, run string) string {
	switch style {
	case term.StyleBorder:
		return m.theme.Subtle.Render(run)
	case term.StyleTitle:
		return m.theme.Title.Render(run)
	case term.StyleTabActive:
		return m.theme.TabActive.Render(run)
	case term.StyleTabInactive:
		return m.theme.TabInactive.Render(run)
	case term.StyleSource:
		return m.theme.Highlight.Render(run)
	case term.StyleForeign:
		return m.theme.WarningStyle.Render(run)
	case term.StylePreview:
		return m.theme.PreviewCell.Render(run)
	default:
		return run
	}
}

// portLabel names a port by what it shows.
func portLabel(p *entity.Port) string {
	if p == nil {
		return "nothing"
	}
	var found *entity.Dockable
	p.Walk(func(n *entity.Port) bool {
		if found == nil {
			found = n.ActiveDockable()
		}
		return found == nil
	})
	if found != nil {
		return found.Title
	}
	return string(p.ID)
}

// dropAnchor names what a committed drop landed against. The target port has
// already been rebuilt by then, so it is read from the source's new neighbours.
func dropAnchor(op *entity.DragOperation) string {
	src := op.Source()
	if op.TargetRegion == entity.RegionCenter {
		for _, d := range src.Port.Dockables() {
			if d != src {
				return d.Title
			}
		}
		return string(src.Port.RootPort().ID)
	}
	return portLabel(src.Port.Sibling())
}
