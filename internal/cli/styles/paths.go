package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	"github.com/bnema/docking/internal/domain/entity"
)

// PathsRenderer renders stored docking paths.
type PathsRenderer struct {
	theme *Theme
}

// NewPathsRenderer creates a new PathsRenderer.
func NewPathsRenderer(theme *Theme) *PathsRenderer {
	return &PathsRenderer{theme: theme}
}

// Render renders paths as a table, one row per dockable.
func (r *PathsRenderer) Render(paths []*entity.DockingPath) string {
	if len(paths) == 0 {
		return r.theme.Subtle.Render("No docking paths stored")
	}

	t := ltable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(r.theme.Border)).
		Headers("Dockable", "Root", "Sibling", "Path", "Captured").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return r.theme.Highlight.Padding(0, 1)
			}
			return r.theme.Normal.Padding(0, 1)
		})

	for _, p := range paths {
		sibling := string(p.SiblingID)
		if p.Tabbed && sibling != "" {
			sibling += " (tab)"
		}
		t.Row(
			string(p.DockableID),
			string(p.RootPortID),
			sibling,
			FormatPathNodes(p.Nodes),
			RelativeTime(p.CapturedAt),
		)
	}

	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	header := fmt.Sprintf("%s %s %s", iconStyle.Render(IconRestore), r.theme.Title.Render("Docking Paths"),
		r.theme.MutedBadge(fmt.Sprintf("%d", len(paths))))
	return header + "\n" + t.String()
}

// RenderDeleted confirms a deleted path.
func (r *PathsRenderer) RenderDeleted(id entity.DockableID) string {
	return fmt.Sprintf("%s %s", r.theme.SuccessStyle.Render(IconTrash), r.theme.Normal.Render("Forgot docking path for "+string(id)))
}

// FormatPathNodes renders split nodes root first, e.g. "west 50% > north 30%".
func FormatPathNodes(nodes []entity.SplitNode) string {
	if len(nodes) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		parts = append(parts, fmt.Sprintf("%s %.0f%%", n.Region, n.Percentage*100))
	}
	return strings.Join(parts, " > ")
}
