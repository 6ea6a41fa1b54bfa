package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/docking/internal/domain/entity"
	"github.com/bnema/docking/internal/domain/region"
)

// RegionResult is one resolved drop point.
type RegionResult struct {
	Target      region.Target
	Point       entity.Point
	Region      entity.Region
	Preview     entity.Rect
	HasPreview  bool
	RegionSize  float64
	SiblingSize float64
}

// RegionRenderer renders region resolution results and region maps.
type RegionRenderer struct {
	theme *Theme
}

// NewRegionRenderer creates a new RegionRenderer.
func NewRegionRenderer(theme *Theme) *RegionRenderer {
	return &RegionRenderer{theme: theme}
}

var regionGlyphs = map[entity.Region]string{
	entity.RegionNorth:  "N",
	entity.RegionSouth:  "S",
	entity.RegionEast:   "E",
	entity.RegionWest:   "W",
	entity.RegionCenter: "C",
}

// RenderResult renders a resolved point as a labeled summary.
func (r *RegionRenderer) RenderResult(res RegionResult) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	label := r.theme.Subtle.Width(14)

	lines := []string{
		fmt.Sprintf("%s %s", iconStyle.Render(IconTarget), r.theme.Title.Render("Drop Region")),
		label.Render("container") + r.theme.Normal.Render(res.Target.Bounds.String()),
		label.Render("point") + r.theme.Normal.Render(res.Point.String()),
		label.Render("region") + r.theme.RegionBadge(res.Region),
		label.Render("region size") + r.theme.Normal.Render(fmt.Sprintf("%.2f", res.RegionSize)),
		label.Render("sibling size") + r.theme.Normal.Render(fmt.Sprintf("%.2f", res.SiblingSize)),
	}
	if res.HasPreview {
		lines = append(lines, label.Render("preview")+r.theme.Normal.Render(res.Preview.String()))
	}
	return r.theme.Box.PaddingTop(0).Render(strings.Join(lines, "\n"))
}

// RenderMap samples resolver over t on a cols x rows grid and draws the
// region of each cell. The cell containing mark, if any, is highlighted.
func (r *RegionRenderer) RenderMap(resolver *region.Resolver, t region.Target, cols, rows int, mark *entity.Point) string {
	if cols <= 0 || rows <= 0 || t.Bounds.Empty() {
		return r.theme.Subtle.Render("Nothing to draw")
	}

	markCol, markRow := -1, -1
	if mark != nil && t.Bounds.Contains(*mark) {
		markCol = (mark.X - t.Bounds.X) * cols / t.Bounds.W
		markRow = (mark.Y - t.Bounds.Y) * rows / t.Bounds.H
	}

	var sb strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			pt := cellCenter(t.Bounds, cols, rows, col, row)
			glyph, ok := regionGlyphs[resolver.ResolveRegion(t, pt)]
			if !ok {
				glyph = "."
			}
			switch {
			case col == markCol && row == markRow:
				sb.WriteString(r.theme.PreviewCell.Render(glyph))
			case glyph == "C":
				sb.WriteString(r.theme.Subtle.Render(glyph))
			default:
				sb.WriteString(r.theme.Highlight.Render(glyph))
			}
		}
		if row < rows-1 {
			sb.WriteByte('\n')
		}
	}
	return r.theme.Window.Render(sb.String())
}

func cellCenter(b entity.Rect, cols, rows, col, row int) entity.Point {
	return entity.Point{
		X: b.X + (2*col+1)*b.W/(2*cols),
		Y: b.Y + (2*row+1)*b.H/(2*rows),
	}
}
