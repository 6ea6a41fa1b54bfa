package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/bnema/docking/internal/domain/entity"
)

// TreeRenderer renders port trees.
type TreeRenderer struct {
	theme *Theme
	// ShowBounds appends each port's laid-out bounds.
	ShowBounds bool
}

// NewTreeRenderer creates a new TreeRenderer.
func NewTreeRenderer(theme *Theme) *TreeRenderer {
	return &TreeRenderer{theme: theme}
}

// Render renders one root port and everything below it.
func (r *TreeRenderer) Render(root *entity.Port) string {
	if root == nil {
		return r.theme.Subtle.Render("No root port")
	}
	t := r.build(root).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(lipgloss.NewStyle().Foreground(r.theme.Border).MarginRight(1))
	return t.String()
}

// RenderAll renders several roots under a header.
func (r *TreeRenderer) RenderAll(title string, roots []*entity.Port) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	parts := []string{fmt.Sprintf("%s %s", iconStyle.Render(IconTree), r.theme.Title.Render(title))}
	if len(roots) == 0 {
		parts = append(parts, r.theme.Subtle.Render("No root ports registered"))
	}
	for _, root := range roots {
		parts = append(parts, r.Render(root))
	}
	return strings.Join(parts, "\n")
}

func (r *TreeRenderer) build(p *entity.Port) *tree.Tree {
	t := tree.Root(r.label(p))
	if p.Kind == entity.PortSplit {
		for _, child := range p.Children {
			if child != nil {
				t.Child(r.build(child))
			}
		}
	}
	return t
}

func (r *TreeRenderer) label(p *entity.Port) string {
	parts := make([]string, 0, 4)
	if p.Root {
		parts = append(parts, r.theme.Title.Render(string(p.ID)))
	}
	parts = append(parts, r.theme.KindBadge(p.Kind))

	switch p.Kind {
	case entity.PortSingle:
		parts = append(parts, r.dockableName(p.Dockable))
	case entity.PortTabbed:
		tabs := make([]string, 0, len(p.Tabs))
		for i, d := range p.Tabs {
			name := string(d.ID)
			if i == p.ActiveTab {
				tabs = append(tabs, r.theme.TabActive.Render(name))
			} else {
				tabs = append(tabs, r.theme.TabInactive.Render(name))
			}
		}
		parts = append(parts, strings.Join(tabs, " "))
	case entity.PortSplit:
		parts = append(parts, r.theme.Normal.Render(
			fmt.Sprintf("%s %.0f%%", p.Orientation, p.CurrentRatio()*100)))
	case entity.PortForeign:
		parts = append(parts, r.theme.WarningStyle.Render(p.Foreign))
	}

	if r.ShowBounds && !p.Bounds.Empty() {
		parts = append(parts, r.theme.Subtle.Render(p.Bounds.String()))
	}
	return strings.Join(parts, " ")
}

func (r *TreeRenderer) dockableName(d *entity.Dockable) string {
	if d == nil {
		return ""
	}
	name := r.theme.Highlight.Render(string(d.ID))
	if d.Title != "" && d.Title != string(d.ID) {
		name += " " + r.theme.Subtle.Render(fmt.Sprintf("%q", d.Title))
	}
	return name
}
