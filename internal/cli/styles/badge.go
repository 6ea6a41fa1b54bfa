package styles

import (
	"fmt"
	"time"

	"github.com/bnema/docking/internal/domain/entity"
)

// AccentBadge renders a badge with accent color.
func (t *Theme) AccentBadge(text string) string {
	return t.Badge.Render(text)
}

// MutedBadge renders a badge with muted colors.
func (t *Theme) MutedBadge(text string) string {
	return t.BadgeMuted.Render(text)
}

// KindBadge renders a port kind. Ports holding dockables get the accent color.
func (t *Theme) KindBadge(kind entity.PortKind) string {
	switch kind {
	case entity.PortSingle, entity.PortTabbed:
		return t.Badge.Render(kind.String())
	default:
		return t.BadgeMuted.Render(kind.String())
	}
}

// RegionBadge renders a drop region.
func (t *Theme) RegionBadge(r entity.Region) string {
	if !r.Valid() {
		return t.BadgeMuted.Render(r.String())
	}
	return t.Badge.Render(r.String())
}

// RelativeTime formats a time as a human-readable relative string.
func RelativeTime(tm time.Time) string {
	diff := time.Since(tm)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return tm.Format("2006-01-02")
	}
}
