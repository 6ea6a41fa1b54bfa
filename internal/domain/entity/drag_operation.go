package entity

import "time"

// DragOperation tracks both ends of one drag gesture: the dockable being dragged
// and the port/region it would land in if released now.
// It is owned by a single goroutine at a time and discarded on release or cancel.
// The drag source's motion listeners set aside for the gesture are cached by
// drag.Manager, not here.
type DragOperation struct {
	Dockable *Dockable
	Origin   Point // Screen position of the press
	Offset   Point // Press position relative to the dockable's origin
	Current  Point // Last screen position seen

	TargetPort   *Port
	TargetRegion Region
	TargetWindow WindowID

	OverWindow bool
	StartedAt  time.Time
}

// WindowID identifies a top-level window.
type WindowID string

// NewDragOperation creates an operation for a press at origin.
func NewDragOperation(d *Dockable, origin, offset Point) *DragOperation {
	return &DragOperation{
		Dockable:     d,
		Origin:       origin,
		Offset:       offset,
		Current:      origin,
		TargetRegion: RegionUnknown,
		StartedAt:    time.Now(),
	}
}

// SetTarget records the resolved drop target.
func (op *DragOperation) SetTarget(window WindowID, port *Port, region Region) {
	if op == nil {
		return
	}
	op.TargetWindow = window
	op.TargetPort = port
	op.TargetRegion = region
}

// ClearTarget forgets the drop target.
func (op *DragOperation) ClearTarget() {
	if op == nil {
		return
	}
	op.TargetWindow = ""
	op.TargetPort = nil
	op.TargetRegion = RegionUnknown
}

// HasTarget reports whether releasing now would dock somewhere.
func (op *DragOperation) HasTarget() bool {
	return op != nil && op.TargetPort != nil && op.TargetRegion.Valid()
}

// Source returns the dragged dockable, or nil.
func (op *DragOperation) Source() *Dockable {
	if op == nil {
		return nil
	}
	return op.Dockable
}
