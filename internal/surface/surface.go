// Package surface defines the contract between the windowing engine and the
// layer that materializes windows on a concrete display system. The engine
// owns all window state and policy; a surface backend only knows how to
// realize one rectangular visual node (chrome plus content pane) and to
// report pointer activity on its chrome back to the engine.
package surface

import "github.com/1broseidon/deskwm/internal/geometry"

// Chrome describes the decoration a backend should give a new surface.
type Chrome struct {
	Title        string
	ShowMinimize bool
	ShowMaximize bool
	ShowClose    bool
	Resizable    bool
}

// EventKind enumerates pointer events a surface's chrome can raise.
type EventKind int

const (
	// EventDragHandlePressed fires on pointer-down over the title bar.
	EventDragHandlePressed EventKind = iota
	// EventResizeHandlePressed fires on pointer-down over a resize handle;
	// Event.Edges carries which edges the handle controls.
	EventResizeHandlePressed
	// EventMinimizeClicked fires when the minimize button is clicked.
	EventMinimizeClicked
	// EventMaximizeClicked fires when the maximize button is clicked.
	EventMaximizeClicked
	// EventCloseClicked fires when the close button is clicked.
	EventCloseClicked
)

// String returns the event kind name for logs.
func (k EventKind) String() string {
	switch k {
	case EventDragHandlePressed:
		return "drag-handle-pressed"
	case EventResizeHandlePressed:
		return "resize-handle-pressed"
	case EventMinimizeClicked:
		return "minimize-clicked"
	case EventMaximizeClicked:
		return "maximize-clicked"
	case EventCloseClicked:
		return "close-clicked"
	default:
		return "unknown"
	}
}

// Event is a chrome pointer event in viewport coordinates.
type Event struct {
	Kind EventKind
	// PointerX, PointerY are the pointer position at event time. Meaningful
	// for the pressed events, zero for button clicks.
	PointerX int
	PointerY int
	// Edges is set only for EventResizeHandlePressed.
	Edges geometry.Edges
}

// EventFunc receives chrome events for one surface.
type EventFunc func(Event)

// Handle is one realized surface. All mutators are fire-and-forget: backends
// apply them synchronously and must tolerate calls after Destroy.
type Handle interface {
	SetGeometry(r geometry.Rect)
	SetVisible(visible bool)
	SetZIndex(z int)
	SetActiveStyle(active bool)
	SetTitle(title string)
	SetContent(content any)
	Destroy()

	// Subscribe registers the single chrome event callback. The engine wires
	// this once at window creation; later calls replace the callback.
	Subscribe(fn EventFunc)
}

// Factory creates surfaces on a concrete display system.
type Factory interface {
	Create(initial geometry.Rect, chrome Chrome) (Handle, error)
}
