package entity

// PortID identifies a docking port. Only root ports carry a persistent id;
// nested ports get a generated id that lives as long as they hold content.
type PortID string

// Orientation indicates how a split port arranges its two children.
type Orientation int

const (
	OrientationNone       Orientation = iota // Not a split
	OrientationHorizontal                    // Left/right split
	OrientationVertical                      // Top/bottom split
)

func (o Orientation) String() string {
	switch o {
	case OrientationHorizontal:
		return "horizontal"
	case OrientationVertical:
		return "vertical"
	default:
		return "none"
	}
}

// PortKind is the closed set of things a port can hold.
type PortKind int

const (
	PortEmpty   PortKind = iota // Nothing docked
	PortSingle                  // One dockable
	PortTabbed                  // A tab group of dockables
	PortSplit                   // Two child ports and a divider
	PortForeign                 // Content the docking engine does not recognize
)

func (k PortKind) String() string {
	switch k {
	case PortSingle:
		return "single"
	case PortTabbed:
		return "tabbed"
	case PortSplit:
		return "split"
	case PortForeign:
		return "foreign"
	default:
		return "empty"
	}
}

// Port is a node in the docking container tree.
type Port struct {
	ID     PortID
	Root   bool
	Kind   PortKind
	Parent *Port // nil for root ports

	// PortSingle
	Dockable *Dockable

	// PortTabbed
	Tabs      []*Dockable
	ActiveTab int

	// PortSplit. Children[0] is left/top, Children[1] is right/bottom.
	Children    [2]*Port
	Orientation Orientation
	Ratio       float64 // Divider position as the share of the first child, 0.0-1.0
	ExactRatio  bool    // Ratio is tracked precisely rather than derived from pixels

	// PortForeign
	Foreign string

	// Bounds is assigned by Layout, relative to the owning window.
	Bounds Rect
}

// NewRootPort creates an empty root port with a persistent id.
func NewRootPort(id PortID) *Port {
	return &Port{ID: id, Root: true, Kind: PortEmpty}
}

// IsEmpty reports whether the port holds nothing.
func (p *Port) IsEmpty() bool {
	return p == nil || p.Kind == PortEmpty
}

// IsSplit reports whether the port is a split pairing with both children present.
func (p *Port) IsSplit() bool {
	return p != nil && p.Kind == PortSplit && p.Children[0] != nil && p.Children[1] != nil
}

// IsDockable reports whether the port holds recognizable dockable content.
func (p *Port) IsDockable() bool {
	return p != nil && (p.Kind == PortSingle || p.Kind == PortTabbed)
}

// Child returns the first (leading) or second child of a split.
func (p *Port) Child(leading bool) *Port {
	if !p.IsSplit() {
		return nil
	}
	if leading {
		return p.Children[0]
	}
	return p.Children[1]
}

// Sibling returns the other child of this port's parent split.
func (p *Port) Sibling() *Port {
	if p == nil || p.Parent == nil || !p.Parent.IsSplit() {
		return nil
	}
	if p.Parent.Children[0] == p {
		return p.Parent.Children[1]
	}
	return p.Parent.Children[0]
}

// IsLeading reports whether p is the first child of its parent split.
func (p *Port) IsLeading() bool {
	return p != nil && p.Parent != nil && p.Parent.Children[0] == p
}

// RootPort walks up to the root of the tree.
func (p *Port) RootPort() *Port {
	if p == nil {
		return nil
	}
	n := p
	for n.Parent != nil && !n.Root {
		n = n.Parent
	}
	return n
}

// Dockables returns the dockables held directly by this port.
func (p *Port) Dockables() []*Dockable {
	if p == nil {
		return nil
	}
	switch p.Kind {
	case PortSingle:
		if p.Dockable != nil {
			return []*Dockable{p.Dockable}
		}
	case PortTabbed:
		return p.Tabs
	}
	return nil
}

// ActiveDockable returns the visible dockable of a single or tabbed port.
func (p *Port) ActiveDockable() *Dockable {
	if p == nil {
		return nil
	}
	switch p.Kind {
	case PortSingle:
		return p.Dockable
	case PortTabbed:
		if p.ActiveTab >= 0 && p.ActiveTab < len(p.Tabs) {
			return p.Tabs[p.ActiveTab]
		}
	}
	return nil
}

// Holds reports whether the port directly holds the dockable.
func (p *Port) Holds(d *Dockable) bool {
	for _, held := range p.Dockables() {
		if held == d {
			return true
		}
	}
	return false
}

// Walk traverses the tree depth-first. Returns early if fn returns false.
func (p *Port) Walk(fn func(*Port) bool) {
	if p == nil || !fn(p) {
		return
	}
	if p.Kind == PortSplit {
		for _, child := range p.Children {
			child.Walk(fn)
		}
	}
}

// FindDockable returns the port holding the dockable with the given id.
func (p *Port) FindDockable(id DockableID) *Port {
	var found *Port
	p.Walk(func(n *Port) bool {
		for _, d := range n.Dockables() {
			if d.ID == id {
				found = n
				return false
			}
		}
		return found == nil
	})
	return found
}

// DockableCount returns the number of dockables in the subtree.
func (p *Port) DockableCount() int {
	count := 0
	p.Walk(func(n *Port) bool {
		count += len(n.Dockables())
		return true
	})
	return count
}

// Depth returns the number of splits between p and its root.
func (p *Port) Depth() int {
	depth := 0
	for n := p; n != nil && !n.Root && n.Parent != nil; n = n.Parent {
		depth++
	}
	return depth
}

// Layout assigns bounds to the subtree. Split children divide the bounds at the divider ratio.
func (p *Port) Layout(bounds Rect) {
	if p == nil {
		return
	}
	p.Bounds = bounds
	if !p.IsSplit() {
		return
	}
	ratio := clampRatio(p.Ratio)
	first, second := bounds, bounds
	switch p.Orientation {
	case OrientationHorizontal:
		first.W = int(float64(bounds.W)*ratio + 0.5)
		second.X = bounds.X + first.W
		second.W = bounds.W - first.W
	case OrientationVertical:
		first.H = int(float64(bounds.H)*ratio + 0.5)
		second.Y = bounds.Y + first.H
		second.H = bounds.H - first.H
	}
	p.Children[0].Layout(first)
	p.Children[1].Layout(second)
}

// PixelRatio returns the divider ratio as laid out, or Ratio if the split has no size yet.
func (p *Port) PixelRatio() float64 {
	if !p.IsSplit() {
		return 0
	}
	first := p.Children[0].Bounds
	switch p.Orientation {
	case OrientationHorizontal:
		if p.Bounds.W > 0 {
			return float64(first.W) / float64(p.Bounds.W)
		}
	case OrientationVertical:
		if p.Bounds.H > 0 {
			return float64(first.H) / float64(p.Bounds.H)
		}
	}
	return p.Ratio
}

// CurrentRatio returns the precise ratio when tracked, else the pixel ratio.
func (p *Port) CurrentRatio() float64 {
	if p.ExactRatio {
		return p.Ratio
	}
	return p.PixelRatio()
}

// PortAt returns the deepest port whose bounds contain pt, or nil.
func (p *Port) PortAt(pt Point) *Port {
	if p == nil || !p.Bounds.Contains(pt) {
		return nil
	}
	if p.IsSplit() {
		for _, child := range p.Children {
			if found := child.PortAt(pt); found != nil {
				return found
			}
		}
	}
	return p
}

func clampRatio(r float64) float64 {
	switch {
	case r < 0:
		return 0
	case r > 1:
		return 1
	default:
		return r
	}
}
