package term

import (
	"strings"

	"github.com/bnema/docking/internal/domain/entity"
)

// CellStyle names how a cell is drawn. Renderers map it to colors.
type CellStyle int

const (
	StyleBlank CellStyle = iota
	StyleBorder
	StyleTitle
	StyleTabActive
	StyleTabInactive
	StyleSource  // Border of the dockable being dragged
	StyleForeign // Content the engine does not manage
	StylePreview // Drop preview
)

// Cell is one character of the canvas.
type Cell struct {
	Rune  rune
	Style CellStyle
}

// Canvas is a fixed-size grid of cells.
type Canvas struct {
	width, height int
	cells         []Cell
}

// NewCanvas creates a blank canvas.
func NewCanvas(width, height int) *Canvas {
	width, height = max(width, 0), max(height, 0)
	c := &Canvas{width: width, height: height, cells: make([]Cell, width*height)}
	for i := range c.cells {
		c.cells[i] = Cell{Rune: ' '}
	}
	return c
}

// Size returns the canvas dimensions.
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// At returns the cell at x, y. Out-of-range cells are blank.
func (c *Canvas) At(x, y int) Cell {
	if !c.inside(x, y) {
		return Cell{Rune: ' '}
	}
	return c.cells[y*c.width+x]
}

// Set writes a cell. Out-of-range writes are dropped.
func (c *Canvas) Set(x, y int, r rune, style CellStyle) {
	if c.inside(x, y) {
		c.cells[y*c.width+x] = Cell{Rune: r, Style: style}
	}
}

func (c *Canvas) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.width && y < c.height
}

// DrawFrame draws every leaf port of a frame. source, if set, is outlined.
func (c *Canvas) DrawFrame(f *Frame, source *entity.Dockable) {
	origin := f.Window.Bounds().Origin()
	f.Window.RootPort().Walk(func(p *entity.Port) bool {
		if p.IsSplit() {
			return true
		}
		c.drawLeaf(p, p.Bounds.Translate(origin), source)
		return false
	})
}

// DrawPreview tints rect, keeping its characters.
func (c *Canvas) DrawPreview(rect entity.Rect) {
	for y := rect.Y; y < rect.Y+rect.H; y++ {
		for x := rect.X; x < rect.X+rect.W; x++ {
			if c.inside(x, y) {
				c.cells[y*c.width+x].Style = StylePreview
			}
		}
	}
}

func (c *Canvas) drawLeaf(p *entity.Port, r entity.Rect, source *entity.Dockable) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	border := StyleBorder
	if source != nil && p.Holds(source) {
		border = StyleSource
	}
	c.box(r, border)

	switch p.Kind {
	case entity.PortSingle:
		c.text(r.X+1, r.Y, r.X+r.W-1, tabLabel(p.Dockable), StyleTitle)
	case entity.PortTabbed:
		for i, s := range tabSpans(p) {
			style := StyleTabInactive
			if i == p.ActiveTab {
				style = StyleTabActive
			}
			c.text(r.X+s.start, r.Y, r.X+r.W-1, tabLabel(p.Tabs[i]), style)
		}
	case entity.PortForeign:
		c.text(r.X+1, r.Y, r.X+r.W-1, " "+p.Foreign+" ", StyleForeign)
	default:
		c.text(r.X+1, r.Y, r.X+r.W-1, " empty ", StyleBorder)
	}
}

// box outlines r with single-line box characters.
func (c *Canvas) box(r entity.Rect, style CellStyle) {
	right, bottom := r.X+r.W-1, r.Y+r.H-1
	for x := r.X; x <= right; x++ {
		c.Set(x, r.Y, '─', style)
		c.Set(x, bottom, '─', style)
	}
	for y := r.Y; y <= bottom; y++ {
		c.Set(r.X, y, '│', style)
		c.Set(right, y, '│', style)
	}
	if r.W == 1 || r.H == 1 {
		return
	}
	c.Set(r.X, r.Y, '┌', style)
	c.Set(right, r.Y, '┐', style)
	c.Set(r.X, bottom, '└', style)
	c.Set(right, bottom, '┘', style)
}

// text writes s from x up to, not including, limit.
func (c *Canvas) text(x, y, limit int, s string, style CellStyle) {
	for _, r := range s {
		if x >= limit {
			return
		}
		c.Set(x, y, r, style)
		x++
	}
}

// Lines renders the canvas row by row. paint styles each run of equal cells.
func (c *Canvas) Lines(paint func(style CellStyle, run string) string) []string {
	lines := make([]string, 0, c.height)
	var row, run strings.Builder
	for y := 0; y < c.height; y++ {
		row.Reset()
		run.Reset()
		current := StyleBlank
		for x := 0; x < c.width; x++ {
			cell := c.cells[y*c.width+x]
			if cell.Style != current && run.Len() > 0 {
				row.WriteString(paint(current, run.String()))
				run.Reset()
			}
			current = cell.Style
			run.WriteRune(cell.Rune)
		}
		if run.Len() > 0 {
			row.WriteString(paint(current, run.String()))
		}
		lines = append(lines, row.String())
	}
	return lines
}

// String renders the canvas without styling.
func (c *Canvas) String() string {
	return strings.Join(c.Lines(func(_ CellStyle, run string) string { return run }), "\n")
}
