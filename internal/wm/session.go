package wm

import "github.com/1broseidon/deskwm/internal/geometry"

// sessionKind distinguishes the two pointer gestures.
type sessionKind int

const (
	sessionDrag sessionKind = iota
	sessionResize
)

func (k sessionKind) String() string {
	if k == sessionDrag {
		return "drag"
	}
	return "resize"
}

// interaction is the single global gesture session. It exists only between a
// pointer-down on chrome and the matching pointer-up, and captures everything
// a pointer-move needs: which window, the pointer origin, and the window's
// geometry at gesture start.
type interaction struct {
	kind     sessionKind
	windowID ID
	pointerX int
	pointerY int
	origin   geometry.Rect
	edges    geometry.Edges
}
