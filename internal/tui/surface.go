package tui

import (
	"github.com/1broseidon/deskwm/internal/geometry"
	"github.com/1broseidon/deskwm/internal/surface"
)

// Factory creates cell-based surfaces for the terminal backend. Handles hold
// no rendering state of their own; the model redraws every frame from the
// manager, so a handle only needs to remember what was pushed into it and to
// route chrome events back out.
type Factory struct {
	handles []*Handle
}

// Handle is one terminal-rendered surface.
type Handle struct {
	rect    geometry.Rect
	chrome  surface.Chrome
	visible bool
	active  bool
	content string
	emit    surface.EventFunc
}

func (f *Factory) Create(initial geometry.Rect, chrome surface.Chrome) (surface.Handle, error) {
	h := &Handle{rect: initial, chrome: chrome, visible: true}
	f.handles = append(f.handles, h)
	return h, nil
}

// last returns the most recently created handle, for pairing with the window
// the manager just returned.
func (f *Factory) last() *Handle {
	if len(f.handles) == 0 {
		return nil
	}
	return f.handles[len(f.handles)-1]
}

func (h *Handle) SetGeometry(r geometry.Rect) { h.rect = r }
func (h *Handle) SetVisible(v bool)           { h.visible = v }
func (h *Handle) SetZIndex(int)               {}
func (h *Handle) SetActiveStyle(active bool)  { h.active = active }
func (h *Handle) SetTitle(title string)       { h.chrome.Title = title }

func (h *Handle) SetContent(content any) {
	if s, ok := content.(string); ok {
		h.content = s
	}
}

func (h *Handle) Destroy()                       { h.visible = false; h.emit = nil }
func (h *Handle) Subscribe(fn surface.EventFunc) { h.emit = fn }

// press classifies a pointer press at window-relative (x, y) and emits the
// matching chrome event. The top row doubles as title bar and north edge;
// its corners win as resize handles, then the buttons, then the drag handle.
func (h *Handle) press(x, y, rootX, rootY int) {
	if h.emit == nil {
		return
	}
	w, ht := h.rect.Width, h.rect.Height

	if y == 0 {
		if x == 0 || x == w-1 {
			if h.chrome.Resizable {
				h.emit(surface.Event{
					Kind:     surface.EventResizeHandlePressed,
					PointerX: rootX,
					PointerY: rootY,
					Edges:    geometry.Edges{North: true, West: x == 0, East: x == w-1},
				})
			}
			return
		}
		if kind, ok := h.buttonAt(x); ok {
			h.emit(surface.Event{Kind: kind})
			return
		}
		h.emit(surface.Event{
			Kind:     surface.EventDragHandlePressed,
			PointerX: rootX,
			PointerY: rootY,
		})
		return
	}

	edges := geometry.Edges{
		West:  x == 0,
		East:  x == w-1,
		South: y == ht-1,
	}
	if edges.Any() && h.chrome.Resizable {
		h.emit(surface.Event{
			Kind:     surface.EventResizeHandlePressed,
			PointerX: rootX,
			PointerY: rootY,
			Edges:    edges,
		})
	}
}

// buttonAt maps a title-bar cell to a chrome button. Buttons render as
// bracketed glyphs right-aligned before the corner: [_][□][×].
func (h *Handle) buttonAt(x int) (surface.EventKind, bool) {
	right := h.rect.Width - 1
	if h.chrome.ShowClose {
		if x >= right-3 && x < right {
			return surface.EventCloseClicked, true
		}
		right -= 3
	}
	if h.chrome.ShowMaximize {
		if x >= right-3 && x < right {
			return surface.EventMaximizeClicked, true
		}
		right -= 3
	}
	if h.chrome.ShowMinimize {
		if x >= right-3 && x < right {
			return surface.EventMinimizeClicked, true
		}
	}
	return 0, false
}
