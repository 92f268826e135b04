package wm

import (
	"fmt"
	"os"

	"github.com/1broseidon/deskwm/internal/geometry"
	"github.com/1broseidon/deskwm/internal/surface"
)

// strictInvariants enables fatal assertions on internal invariant
// violations. Production builds leave it off and the offending mutation is
// skipped instead.
var strictInvariants = os.Getenv("DESKWM_STRICT") == "1"

// ID identifies a window for its whole lifetime.
type ID string

// State is the visibility state of a window. The three states are mutually
// exclusive.
type State int

const (
	// StateNormal is the regular, user-positioned state.
	StateNormal State = iota
	// StateMinimized hides the window; it is reachable via the taskbar.
	StateMinimized
	// StateMaximized fills the viewport work area.
	StateMaximized
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateMinimized:
		return "minimized"
	case StateMaximized:
		return "maximized"
	default:
		return "unknown"
	}
}

// savedGeometry snapshots the rect and state captured when a window leaves
// the normal state, so restore is exact.
type savedGeometry struct {
	rect  geometry.Rect
	prior State
}

// Window is one movable, resizable panel. It owns its geometry and
// visibility state and knows how to transition between them; stacking order
// and pointer routing live in the Manager. Geometry mutators are unexported:
// only the Manager applies geometry, so z-order and focus bookkeeping cannot
// be bypassed from outside the package.
type Window struct {
	id        ID
	title     string
	content   any
	rect      geometry.Rect
	z         int
	state     State
	resizable bool
	saved     *savedGeometry

	handle    surface.Handle
	limits    geometry.Limits
	listeners *listenerRegistry
}

// ID returns the window's stable identity.
func (w *Window) ID() ID { return w.id }

// Title returns the current title.
func (w *Window) Title() string { return w.title }

// Rect returns the current geometry.
func (w *Window) Rect() geometry.Rect { return w.rect }

// Z returns the current stacking index; higher is more in front.
func (w *Window) Z() int { return w.z }

// State returns the current visibility state.
func (w *Window) State() State { return w.state }

// Resizable reports whether resize affordances are offered.
func (w *Window) Resizable() bool { return w.resizable }

// Content returns the hosted content, opaque to the engine.
func (w *Window) Content() any { return w.content }

// SavedRect returns the snapshot taken on minimize/maximize, if any.
func (w *Window) SavedRect() (geometry.Rect, bool) {
	if w.saved == nil {
		return geometry.Rect{}, false
	}
	return w.saved.rect, true
}

// On registers a lifecycle listener for one event.
func (w *Window) On(event LifecycleEvent, fn ListenerFunc) {
	w.listeners.on(event, fn)
}

// SetTitle updates the title and the surface chrome.
func (w *Window) SetTitle(title string) {
	w.title = title
	w.handle.SetTitle(title)
}

// SetContent replaces the hosted content.
func (w *Window) SetContent(content any) {
	w.content = content
	w.handle.SetContent(content)
}

// Focus asks for front-most placement. The window only emits the event; the
// Manager owns z-order and reacts to it.
func (w *Window) Focus() {
	w.listeners.emit(EventFocused, w)
}

// Close asks for teardown. The window does not self-destruct: the Manager is
// the single owner and tears down the registry entry and the surface so
// neither can outlive the other.
func (w *Window) Close() {
	w.listeners.emit(EventClosed, w)
}

// setPosition moves the window and re-renders the surface.
func (w *Window) setPosition(x, y int) {
	w.rect.X = x
	w.rect.Y = y
	w.handle.SetGeometry(w.rect)
}

// setSize resizes the window, clamped to the minimum, and re-renders.
func (w *Window) setSize(width, height int) {
	w.rect.Width = width
	w.rect.Height = height
	w.rect = w.limits.ClampSize(w.rect)
	w.handle.SetGeometry(w.rect)
}

// snapshot records the pre-transition geometry. A second snapshot before a
// restore is a logic defect, never a user-reachable state.
func (w *Window) snapshot() bool {
	if w.saved != nil {
		if strictInvariants {
			panic(fmt.Sprintf("wm: window %s: geometry snapshot already present (state %s)", w.id, w.state))
		}
		return false
	}
	w.saved = &savedGeometry{rect: w.rect, prior: w.state}
	return true
}

// minimize hides the window, keeping its geometry so restore is exact.
// No-op if already minimized, or if a snapshot is already held (e.g. the
// window is maximized); stacking minimize on top of maximize would lose the
// original geometry.
func (w *Window) minimize() {
	if w.state == StateMinimized {
		return
	}
	if !w.snapshot() {
		return
	}
	w.state = StateMinimized
	w.handle.SetVisible(false)
	w.listeners.emit(EventMinimized, w)
}

// maximize fills the given work area. No-op if already maximized or if a
// snapshot is already held.
func (w *Window) maximize(workArea geometry.Rect) {
	if w.state == StateMaximized {
		return
	}
	if !w.snapshot() {
		return
	}
	w.state = StateMaximized
	w.rect = workArea
	w.handle.SetGeometry(w.rect)
	w.listeners.emit(EventMaximized, w)
}

// restore returns to the normal state with the exact saved geometry. No-op
// when there is nothing to restore.
func (w *Window) restore() {
	if w.saved == nil {
		return
	}
	wasMinimized := w.state == StateMinimized
	w.rect = w.saved.rect
	w.state = StateNormal
	w.saved = nil
	if wasMinimized {
		w.handle.SetVisible(true)
	}
	w.handle.SetGeometry(w.rect)
	w.listeners.emit(EventRestored, w)
}
