package entity

// DockableID uniquely and persistently identifies a dockable.
type DockableID string

// Unspecified marks a preference the caller did not set; lookups fall back to system defaults.
const Unspecified = -1.0

// Dockable is a movable unit that can be embedded in a docking port.
type Dockable struct {
	ID    DockableID
	Title string

	// Port is the leaf port currently holding the dockable, nil when undocked.
	Port *Port

	// Floating dockables live in their own window and are not part of any port tree.
	Floating       bool
	FloatingBounds Rect
}

// NewDockable creates an undocked dockable.
func NewDockable(id DockableID, title string) *Dockable {
	if title == "" {
		title = string(id)
	}
	return &Dockable{ID: id, Title: title}
}

// Docked reports whether the dockable is embedded in a port.
func (d *Dockable) Docked() bool {
	return d != nil && d.Port != nil
}
