package port

import (
	"context"
	"time"

	"github.com/bnema/docking/internal/domain/entity"
)

// MouseEvent is a pointer event delivered by the UI toolkit.
type MouseEvent struct {
	Screen entity.Point // Position in screen coordinates
	Local  entity.Point // Position relative to the component that received the event
	Time   time.Time
}

// MotionListener receives pointer drag events from a component.
type MotionListener interface {
	MouseDragged(ctx context.Context, evt MouseEvent)
}

// DragSource is the component a drag gesture starts on.
type DragSource interface {
	MotionListeners() []MotionListener
	AddMotionListener(l MotionListener)
	RemoveMotionListener(l MotionListener)
}
