package wm

import (
	"github.com/1broseidon/deskwm/internal/geometry"
	"github.com/1broseidon/deskwm/internal/surface"
)

// fakeHandle records surface mutations so tests can assert the engine drives
// the surface layer correctly without a display system.
type fakeHandle struct {
	geometry  geometry.Rect
	visible   bool
	z         int
	active    bool
	title     string
	content   any
	destroyed bool
	events    surface.EventFunc
}

func (h *fakeHandle) SetGeometry(r geometry.Rect)    { h.geometry = r }
func (h *fakeHandle) SetVisible(v bool)              { h.visible = v }
func (h *fakeHandle) SetZIndex(z int)                { h.z = z }
func (h *fakeHandle) SetActiveStyle(active bool)     { h.active = active }
func (h *fakeHandle) SetTitle(title string)          { h.title = title }
func (h *fakeHandle) SetContent(content any)         { h.content = content }
func (h *fakeHandle) Destroy()                       { h.destroyed = true }
func (h *fakeHandle) Subscribe(fn surface.EventFunc) { h.events = fn }

// chrome simulates a chrome pointer event coming up from the surface layer.
func (h *fakeHandle) chrome(ev surface.Event) { h.events(ev) }

type fakeFactory struct {
	handles []*fakeHandle
}

func (f *fakeFactory) Create(initial geometry.Rect, chrome surface.Chrome) (surface.Handle, error) {
	h := &fakeHandle{geometry: initial, visible: true, title: chrome.Title}
	f.handles = append(f.handles, h)
	return h, nil
}

// lastHandle returns the most recently created surface.
func (f *fakeFactory) lastHandle() *fakeHandle {
	return f.handles[len(f.handles)-1]
}

func newTestManager() (*Manager, *fakeFactory) {
	f := &fakeFactory{}
	m := NewManager(f, Options{
		Viewport: geometry.Viewport{Width: 1280, Height: 800, TaskbarHeight: 40},
	})
	return m, f
}

func intptr(v int) *int    { return &v }
func boolptr(v bool) *bool { return &v }
