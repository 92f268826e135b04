package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/1broseidon/deskwm/internal/geometry"
	"github.com/1broseidon/deskwm/internal/surface"
)

const (
	titleBarHeight = 28
	resizeBorder   = 6
	buttonWidth    = 28

	backgroundPixel   = 0xdddddd
	activeBorderPixel = 0x3465a4
	idleBorderPixel   = 0x888888
)

// Factory creates X11-backed surfaces. Pointer motion and release are global
// concerns (one interaction session at a time), so they are reported through
// factory-level callbacks rather than per-handle events.
type Factory struct {
	conn          *Connection
	onPointerMove func(x, y int)
	onPointerUp   func()
}

// NewFactory wraps an established X11 connection.
func NewFactory(conn *Connection) *Factory {
	return &Factory{conn: conn}
}

// OnPointer registers the global pointer callbacks. Must be called before
// the event loop starts.
func (f *Factory) OnPointer(move func(x, y int), up func()) {
	f.onPointerMove = move
	f.onPointerUp = up
}

// Create makes and maps a top-level X window for a new surface.
func (f *Factory) Create(initial geometry.Rect, chrome surface.Chrome) (surface.Handle, error) {
	win, err := xwindow.Generate(f.conn.XUtil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate X window id: %w", err)
	}

	eventMask := xproto.EventMaskButtonPress |
		xproto.EventMaskButtonRelease |
		xproto.EventMaskButtonMotion |
		xproto.EventMaskStructureNotify

	err = win.CreateChecked(f.conn.Root,
		initial.X, initial.Y, initial.Width, initial.Height,
		xproto.CwBackPixel|xproto.CwBorderPixel|xproto.CwEventMask,
		backgroundPixel, idleBorderPixel, uint32(eventMask))
	if err != nil {
		return nil, fmt.Errorf("failed to create X window: %w", err)
	}

	if chrome.Title != "" {
		ewmh.WmNameSet(f.conn.XUtil, win.Id, chrome.Title)
	}
	win.Map()

	h := &handle{
		factory: f,
		win:     win,
		rect:    initial,
		chrome:  chrome,
	}
	h.connectEvents()
	return h, nil
}

func (f *Factory) pointerMoved(x, y int) {
	if f.onPointerMove != nil {
		f.onPointerMove(x, y)
	}
}

func (f *Factory) pointerReleased() {
	if f.onPointerUp != nil {
		f.onPointerUp()
	}
}

func (h *handle) connectEvents() {
	X := h.factory.conn.XUtil

	xevent.ButtonPressFun(func(_ *xgbutil.XUtil, ev xevent.ButtonPressEvent) {
		if ev.Detail != xproto.ButtonIndex1 {
			return
		}
		h.dispatch(int(ev.EventX), int(ev.EventY), int(ev.RootX), int(ev.RootY))
	}).Connect(X, h.win.Id)

	xevent.MotionNotifyFun(func(_ *xgbutil.XUtil, ev xevent.MotionNotifyEvent) {
		h.factory.pointerMoved(int(ev.RootX), int(ev.RootY))
	}).Connect(X, h.win.Id)

	xevent.ButtonReleaseFun(func(_ *xgbutil.XUtil, ev xevent.ButtonReleaseEvent) {
		if ev.Detail != xproto.ButtonIndex1 {
			return
		}
		h.factory.pointerReleased()
	}).Connect(X, h.win.Id)
}
