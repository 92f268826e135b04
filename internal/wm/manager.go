// Package wm implements the windowing engine: the Window entity, the
// Manager that owns the registry, z-order, focus, the single global
// interaction session, and the taskbar projection of minimized windows.
//
// The Manager is not safe for concurrent use. All mutations must happen on
// one goroutine (the event-loop goroutine of whatever surface backend feeds
// it); callers bridging from other goroutines serialize behind one mutex
// around every Manager call, as internal/ipc does.
package wm

import (
	"fmt"
	"sort"

	"github.com/1broseidon/deskwm/internal/eventlog"
	"github.com/1broseidon/deskwm/internal/geometry"
	"github.com/1broseidon/deskwm/internal/surface"
)

// Defaults matching the classic desktop behavior.
const (
	DefaultTaskbarHeight = 40
	DefaultWindowWidth   = 600
	DefaultWindowHeight  = 400
	DefaultMinWidth      = 200
	DefaultMinHeight     = 100
	DefaultCascadeOrigin = 50
	DefaultCascadeStep   = 30
	baseZIndex           = 1000
)

// Options configures a Manager. Zero-value fields fall back to the package
// defaults above.
type Options struct {
	Viewport       geometry.Viewport
	Limits         geometry.Limits
	DefaultWidth   int
	DefaultHeight  int
	CascadeOriginX int
	CascadeOriginY int
	CascadeStep    int

	// EventLog receives lifecycle actions. Nil discards.
	EventLog *eventlog.Logger
}

func (o Options) withDefaults() Options {
	if o.Viewport.TaskbarHeight == 0 {
		o.Viewport.TaskbarHeight = DefaultTaskbarHeight
	}
	if o.Limits.MinWidth == 0 {
		o.Limits.MinWidth = DefaultMinWidth
	}
	if o.Limits.MinHeight == 0 {
		o.Limits.MinHeight = DefaultMinHeight
	}
	if o.DefaultWidth == 0 {
		o.DefaultWidth = DefaultWindowWidth
	}
	if o.DefaultHeight == 0 {
		o.DefaultHeight = DefaultWindowHeight
	}
	if o.CascadeOriginX == 0 {
		o.CascadeOriginX = DefaultCascadeOrigin
	}
	if o.CascadeOriginY == 0 {
		o.CascadeOriginY = DefaultCascadeOrigin
	}
	if o.CascadeStep == 0 {
		o.CascadeStep = DefaultCascadeStep
	}
	return o
}

// WindowOptions are per-window creation overrides. Nil pointer fields mean
// "use the default": cascading position, 600x400 size, resizable.
type WindowOptions struct {
	X, Y          *int
	Width, Height int
	Resizable     *bool
}

// Manager is the sole owner of the window registry, the global z-order
// counter, the active window, the in-flight interaction session, and the
// taskbar.
type Manager struct {
	factory surface.Factory
	opts    Options
	log     *eventlog.Logger

	windows map[ID]*Window
	order   []ID // creation order, for stable listing
	active  ID
	nextZ   int
	counter int
	session *interaction
	taskbar []TaskbarEntry
}

// NewManager creates a windowing engine that realizes windows through the
// given surface factory.
func NewManager(factory surface.Factory, opts Options) *Manager {
	opts = opts.withDefaults()
	return &Manager{
		factory: factory,
		opts:    opts,
		log:     opts.EventLog,
		windows: make(map[ID]*Window),
		nextZ:   baseZIndex,
	}
}

// Viewport returns the current viewport.
func (m *Manager) Viewport() geometry.Viewport { return m.opts.Viewport }

// SetViewportSize updates the viewport dimensions, re-fitting maximized
// windows to the new work area. Normal-state windows keep their geometry;
// the drag clamp catches them on the next gesture.
func (m *Manager) SetViewportSize(width, height int) {
	m.opts.Viewport.Width = width
	m.opts.Viewport.Height = height
	workArea := m.opts.Viewport.WorkArea()
	for _, w := range m.windows {
		if w.state == StateMaximized {
			w.rect = workArea
			w.handle.SetGeometry(w.rect)
		}
	}
}

// allocZ consumes the next z-index value. Strictly monotonic, so the total
// stacking order never has ties.
func (m *Manager) allocZ() int {
	z := m.nextZ
	m.nextZ++
	return z
}

// CreateWindow registers a new window, realizes its surface, wires its
// chrome events, and focuses it. After this call the window is visible,
// front-most, and receives pointer routing.
func (m *Manager) CreateWindow(title string, content any, opts WindowOptions) (*Window, error) {
	m.counter++
	id := ID(fmt.Sprintf("win-%d", m.counter))

	x, y := geometry.Cascade(m.counter-1, m.opts.CascadeOriginX, m.opts.CascadeOriginY, m.opts.CascadeStep)
	if opts.X != nil {
		x = *opts.X
	}
	if opts.Y != nil {
		y = *opts.Y
	}
	width := opts.Width
	if width == 0 {
		width = m.opts.DefaultWidth
	}
	height := opts.Height
	if height == 0 {
		height = m.opts.DefaultHeight
	}
	resizable := true
	if opts.Resizable != nil {
		resizable = *opts.Resizable
	}

	rect := m.opts.Limits.ClampSize(geometry.Rect{X: x, Y: y, Width: width, Height: height})

	handle, err := m.factory.Create(rect, surface.Chrome{
		Title:        title,
		ShowMinimize: true,
		ShowMaximize: true,
		ShowClose:    true,
		Resizable:    resizable,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create surface for %s: %w", id, err)
	}

	w := &Window{
		id:        id,
		title:     title,
		content:   content,
		rect:      rect,
		z:         m.allocZ(),
		state:     StateNormal,
		resizable: resizable,
		handle:    handle,
		limits:    m.opts.Limits,
		listeners: newListenerRegistry(),
	}

	// Lifecycle wiring: the manager is the only subscriber that maintains
	// the taskbar and performs teardown.
	w.On(EventMinimized, func(w *Window) {
		m.addTaskbarEntry(w)
		m.log.Log(eventlog.ActionMinimize, string(w.id), map[string]interface{}{"title": w.title})
	})
	w.On(EventMaximized, func(w *Window) {
		m.log.Log(eventlog.ActionMaximize, string(w.id), nil)
	})
	w.On(EventRestored, func(w *Window) {
		m.removeTaskbarEntry(w.id)
		m.log.Log(eventlog.ActionRestore, string(w.id), rectDetails(w.rect))
	})
	w.On(EventClosed, func(w *Window) {
		m.removeWindow(w.id)
	})
	w.On(EventFocused, func(w *Window) {
		m.FocusWindow(w.id)
	})

	handle.Subscribe(func(ev surface.Event) {
		m.handleChromeEvent(id, ev)
	})

	m.windows[id] = w
	m.order = append(m.order, id)

	handle.SetContent(content)
	handle.SetZIndex(w.z)
	m.FocusWindow(id)

	m.log.Log(eventlog.ActionCreate, string(id), map[string]interface{}{
		"title": title, "x": rect.X, "y": rect.Y, "w": rect.Width, "h": rect.Height,
	})
	return w, nil
}

// Window returns the window with the given id.
func (m *Manager) Window(id ID) (*Window, bool) {
	w, ok := m.windows[id]
	return w, ok
}

// Windows returns all windows in creation order.
func (m *Manager) Windows() []*Window {
	out := make([]*Window, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.windows[id])
	}
	return out
}

// WindowsByStacking returns all windows sorted back to front.
func (m *Manager) WindowsByStacking() []*Window {
	out := m.Windows()
	sort.Slice(out, func(i, j int) bool { return out[i].z < out[j].z })
	return out
}

// ActiveWindowID returns the focused window's id, if any.
func (m *Manager) ActiveWindowID() (ID, bool) {
	if m.active == "" {
		return "", false
	}
	return m.active, true
}

// CloseWindow tears down a window: registry entry, taskbar entry, and
// surface, in one ownership transfer. Idempotent; unknown ids are no-ops.
func (m *Manager) CloseWindow(id ID) {
	w, ok := m.windows[id]
	if !ok {
		return
	}
	w.Close()
}

// removeWindow is the single teardown path, reached via the closed event.
func (m *Manager) removeWindow(id ID) {
	w, ok := m.windows[id]
	if !ok {
		return
	}

	// A window closed mid-gesture ends the gesture.
	if m.session != nil && m.session.windowID == id {
		m.session = nil
	}

	m.removeTaskbarEntry(id)
	delete(m.windows, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	w.handle.Destroy()
	m.log.Log(eventlog.ActionClose, string(id), nil)

	if m.active == id {
		m.active = ""
		if next := m.frontmostWindow(); next != nil {
			m.FocusWindow(next.id)
		}
	}
}

// frontmostWindow returns the highest-z remaining window, nil when empty.
func (m *Manager) frontmostWindow() *Window {
	var front *Window
	for _, w := range m.windows {
		if front == nil || w.z > front.z {
			front = w
		}
	}
	return front
}

// FocusWindow brings a window to the front and marks it active. No-op for
// unknown ids or when the window is already active.
func (m *Manager) FocusWindow(id ID) {
	w, ok := m.windows[id]
	if !ok || m.active == id {
		return
	}

	if prev, ok := m.windows[m.active]; ok {
		prev.handle.SetActiveStyle(false)
	}

	w.z = m.allocZ()
	w.handle.SetZIndex(w.z)
	w.handle.SetActiveStyle(true)
	m.active = id
	m.log.Log(eventlog.ActionFocus, string(id), map[string]interface{}{"z": w.z})
}

// MinimizeWindow hides a window and adds its taskbar entry. No-op for
// unknown ids, already-minimized windows, and maximized windows (restore
// first; stacking snapshots would lose the original geometry).
func (m *Manager) MinimizeWindow(id ID) {
	if w, ok := m.windows[id]; ok {
		w.minimize()
	}
}

// MaximizeWindow fills the work area below the taskbar. No-op for unknown
// ids, already-maximized windows, and minimized windows.
func (m *Manager) MaximizeWindow(id ID) {
	if w, ok := m.windows[id]; ok {
		w.maximize(m.opts.Viewport.WorkArea())
	}
}

// RestoreWindow returns a window to its exact pre-minimize/pre-maximize
// geometry and focuses it. No-op when there is nothing to restore.
func (m *Manager) RestoreWindow(id ID) {
	w, ok := m.windows[id]
	if !ok {
		return
	}
	w.restore()
	m.FocusWindow(id)
}

// ToggleMaximize maximizes a normal window and restores a maximized one,
// the behavior of the maximize chrome button.
func (m *Manager) ToggleMaximize(id ID) {
	w, ok := m.windows[id]
	if !ok {
		return
	}
	if w.state == StateMaximized {
		m.RestoreWindow(id)
		return
	}
	m.MaximizeWindow(id)
}

// MoveWindow places a window at (x, y), clamped to the reachable region.
// Rejected while the window is maximized.
func (m *Manager) MoveWindow(id ID, x, y int) {
	w, ok := m.windows[id]
	if !ok || w.state == StateMaximized {
		return
	}
	r := geometry.Drag(geometry.Rect{X: x, Y: y, Width: w.rect.Width, Height: w.rect.Height}, 0, 0, m.opts.Viewport)
	w.setPosition(r.X, r.Y)
}

// ResizeWindow sets a window's size, clamped to the minimum. Rejected for
// non-resizable or maximized windows.
func (m *Manager) ResizeWindow(id ID, width, height int) {
	w, ok := m.windows[id]
	if !ok || !w.resizable || w.state == StateMaximized {
		return
	}
	w.setSize(width, height)
}

// BeginDrag opens a drag session for a window, capturing the pointer and
// window origins. Rejected while another window's session is active (a
// single-pointer device manipulates one window at a time), for unknown ids,
// and for maximized windows.
func (m *Manager) BeginDrag(id ID, pointerX, pointerY int) {
	if m.session != nil && m.session.windowID != id {
		return
	}
	w, ok := m.windows[id]
	if !ok || w.state == StateMaximized {
		return
	}
	m.session = &interaction{
		kind:     sessionDrag,
		windowID: id,
		pointerX: pointerX,
		pointerY: pointerY,
		origin:   w.rect,
	}
	m.FocusWindow(id)
	m.log.Log(eventlog.ActionDrag, string(id), map[string]interface{}{"px": pointerX, "py": pointerY})
}

// BeginResize opens a resize session for the given edges. Same rejection
// rules as BeginDrag, plus non-resizable windows.
func (m *Manager) BeginResize(id ID, pointerX, pointerY int, edges geometry.Edges) {
	if m.session != nil && m.session.windowID != id {
		return
	}
	w, ok := m.windows[id]
	if !ok || !w.resizable || w.state == StateMaximized || !edges.Any() {
		return
	}
	m.session = &interaction{
		kind:     sessionResize,
		windowID: id,
		pointerX: pointerX,
		pointerY: pointerY,
		origin:   w.rect,
		edges:    edges,
	}
	m.FocusWindow(id)
	m.log.Log(eventlog.ActionResize, string(id), map[string]interface{}{"edges": edges.String()})
}

// PointerMove advances the active gesture to the new pointer position.
// No-op when no session is active; geometry math is pure, everything here
// is delta bookkeeping.
func (m *Manager) PointerMove(pointerX, pointerY int) {
	s := m.session
	if s == nil {
		return
	}
	w, ok := m.windows[s.windowID]
	if !ok {
		m.session = nil
		return
	}

	dx := pointerX - s.pointerX
	dy := pointerY - s.pointerY

	switch s.kind {
	case sessionDrag:
		r := geometry.Drag(s.origin, dx, dy, m.opts.Viewport)
		w.setPosition(r.X, r.Y)
	case sessionResize:
		r := geometry.Resize(s.origin, s.edges, dx, dy, m.opts.Limits, m.opts.Viewport)
		w.setPosition(r.X, r.Y)
		w.setSize(r.Width, r.Height)
	}
}

// PointerUp ends any active gesture unconditionally, wherever the pointer
// is. The last computed geometry stands; there is no cancel gesture.
func (m *Manager) PointerUp() {
	m.session = nil
}

// InteractionActive reports whether a gesture session is in flight.
func (m *Manager) InteractionActive() bool {
	return m.session != nil
}

// handleChromeEvent routes a surface chrome event to the right operation.
func (m *Manager) handleChromeEvent(id ID, ev surface.Event) {
	w, ok := m.windows[id]
	if !ok {
		return
	}

	switch ev.Kind {
	case surface.EventDragHandlePressed:
		if w.state == StateMaximized {
			// Maximized windows do not drag; the press still focuses.
			m.FocusWindow(id)
			return
		}
		m.BeginDrag(id, ev.PointerX, ev.PointerY)
	case surface.EventResizeHandlePressed:
		m.BeginResize(id, ev.PointerX, ev.PointerY, ev.Edges)
	case surface.EventMinimizeClicked:
		m.MinimizeWindow(id)
	case surface.EventMaximizeClicked:
		m.ToggleMaximize(id)
	case surface.EventCloseClicked:
		m.CloseWindow(id)
	}
}

func rectDetails(r geometry.Rect) map[string]interface{} {
	return map[string]interface{}{"x": r.X, "y": r.Y, "w": r.Width, "h": r.Height}
}
