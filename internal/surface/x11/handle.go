package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/1broseidon/deskwm/internal/geometry"
	"github.com/1broseidon/deskwm/internal/surface"
)

// handle is one X11-backed surface. Hit testing for chrome regions uses the
// last rect pushed through SetGeometry; the engine is the source of truth
// for geometry, so the X server is never queried.
type handle struct {
	factory *Factory
	win     *xwindow.Window
	rect    geometry.Rect
	chrome  surface.Chrome
	emit    surface.EventFunc
}

func (h *handle) SetGeometry(r geometry.Rect) {
	h.rect = r
	h.win.MoveResize(r.X, r.Y, r.Width, r.Height)
}

func (h *handle) SetVisible(visible bool) {
	if visible {
		h.win.Map()
	} else {
		h.win.Unmap()
	}
}

func (h *handle) SetZIndex(int) {
	// X11 has no numeric z axis; the engine raises windows in focus order,
	// so raising on every bump preserves relative stacking.
	xproto.ConfigureWindow(h.factory.conn.XUtil.Conn(), h.win.Id,
		xproto.ConfigWindowStackMode, []uint32{xproto.StackModeAbove})
}

func (h *handle) SetActiveStyle(active bool) {
	border := uint32(idleBorderPixel)
	if active {
		border = activeBorderPixel
	}
	xproto.ChangeWindowAttributes(h.factory.conn.XUtil.Conn(), h.win.Id,
		xproto.CwBorderPixel, []uint32{border})
}

func (h *handle) SetTitle(title string) {
	h.chrome.Title = title
	ewmh.WmNameSet(h.factory.conn.XUtil, h.win.Id, title)
}

func (h *handle) SetContent(any) {
	// Content rendering belongs to the application embedded in the window;
	// the surface only manages frame and chrome.
}

func (h *handle) Destroy() {
	xevent.Detach(h.factory.conn.XUtil, h.win.Id)
	h.win.Destroy()
}

func (h *handle) Subscribe(fn surface.EventFunc) {
	h.emit = fn
}

// dispatch classifies a button press by its position inside the window and
// emits the matching surface event. (x, y) are window-relative, (rootX,
// rootY) are viewport coordinates for the interaction session.
func (h *handle) dispatch(x, y, rootX, rootY int) {
	if h.emit == nil {
		return
	}

	if edges := h.edgesAt(x, y); edges.Any() && h.chrome.Resizable {
		h.emit(surface.Event{
			Kind:     surface.EventResizeHandlePressed,
			PointerX: rootX,
			PointerY: rootY,
			Edges:    edges,
		})
		return
	}

	if y < titleBarHeight {
		if kind, ok := h.buttonAt(x); ok {
			h.emit(surface.Event{Kind: kind})
			return
		}
		h.emit(surface.Event{
			Kind:     surface.EventDragHandlePressed,
			PointerX: rootX,
			PointerY: rootY,
		})
	}
}

// edgesAt returns the resize edges within resizeBorder of the window frame.
func (h *handle) edgesAt(x, y int) geometry.Edges {
	var e geometry.Edges
	if x < resizeBorder {
		e.West = true
	}
	if x >= h.rect.Width-resizeBorder {
		e.East = true
	}
	if y < resizeBorder {
		e.North = true
	}
	if y >= h.rect.Height-resizeBorder {
		e.South = true
	}
	return e
}

// buttonAt maps an x position in the title bar to a chrome button. Buttons
// stack right to left: close, maximize, minimize.
func (h *handle) buttonAt(x int) (surface.EventKind, bool) {
	right := h.rect.Width
	if h.chrome.ShowClose {
		if x >= right-buttonWidth {
			return surface.EventCloseClicked, true
		}
		right -= buttonWidth
	}
	if h.chrome.ShowMaximize {
		if x >= right-buttonWidth {
			return surface.EventMaximizeClicked, true
		}
		right -= buttonWidth
	}
	if h.chrome.ShowMinimize {
		if x >= right-buttonWidth {
			return surface.EventMinimizeClicked, true
		}
	}
	return 0, false
}
