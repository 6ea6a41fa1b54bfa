package entity

import "time"

// DockingPathVersion is the current schema version for serialized paths.
// Increment when making breaking changes to the serialization format.
const DockingPathVersion = 1

// SplitNode records one split decision on the way from a root port to a dockable.
type SplitNode struct {
	Orientation Orientation `json:"orientation"`
	Region      Region      `json:"region"`               // Side of the split the dockable's branch occupied
	Percentage  float64     `json:"percentage"`           // Divider ratio at capture time
	SiblingID   DockableID  `json:"sibling_id,omitempty"` // Dockable alone on the other side, if any
}

// Leading reports whether the recorded branch is the first (left/top) child.
func (n SplitNode) Leading() bool {
	return n.Region.Leading()
}

// DockingPath is a replayable description of a dockable's position in the port tree.
// Nodes are ordered from the root toward the dockable.
type DockingPath struct {
	Version    int         `json:"version"`
	DockableID DockableID  `json:"dockable_id"`
	RootPortID PortID      `json:"root_port_id"`
	SiblingID  DockableID  `json:"sibling_id,omitempty"`
	Tabbed     bool        `json:"tabbed"`
	Nodes      []SplitNode `json:"nodes"`
	CapturedAt time.Time   `json:"captured_at"`
}

// LastNode returns the split closest to the dockable.
func (dp *DockingPath) LastNode() (SplitNode, bool) {
	if dp == nil || len(dp.Nodes) == 0 {
		return SplitNode{}, false
	}
	return dp.Nodes[len(dp.Nodes)-1], true
}

// Clone returns a deep copy of the path.
func (dp *DockingPath) Clone() *DockingPath {
	if dp == nil {
		return nil
	}
	clone := *dp
	clone.Nodes = make([]SplitNode, len(dp.Nodes))
	copy(clone.Nodes, dp.Nodes)
	return &clone
}

// CaptureDockingPath records the ancestry of a docked dockable.
// Returns nil if the dockable is nil or not docked.
func CaptureDockingPath(d *Dockable) *DockingPath {
	if !d.Docked() {
		return nil
	}

	port := d.Port
	path := &DockingPath{
		Version:    DockingPathVersion,
		DockableID: d.ID,
		CapturedAt: time.Now(),
	}

	if port.Kind == PortTabbed {
		path.Tabbed = true
		for _, tab := range port.Tabs {
			if tab != d {
				path.SiblingID = tab.ID
				break
			}
		}
	}

	// Ancestry is discovered leaf to root.
	var nodes []SplitNode
	child := port
	for !child.Root && child.Parent != nil {
		parent := child.Parent
		if parent.IsSplit() {
			node := SplitNode{
				Orientation: parent.Orientation,
				Region:      SideRegion(parent.Orientation, child.IsLeading()),
				Percentage:  parent.CurrentRatio(),
			}
			if sibling := child.Sibling(); sibling != nil && sibling.Kind == PortSingle && sibling.Dockable != nil {
				node.SiblingID = sibling.Dockable.ID
			}
			if len(nodes) == 0 && !path.Tabbed {
				path.SiblingID = node.SiblingID
			}
			nodes = append(nodes, node)
		}
		child = parent
	}
	path.RootPortID = child.ID

	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
	path.Nodes = nodes
	return path
}
