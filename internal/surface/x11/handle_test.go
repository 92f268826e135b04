package x11

import (
	"testing"

	"github.com/1broseidon/deskwm/internal/geometry"
	"github.com/1broseidon/deskwm/internal/surface"
)

func newTestHandle() (*handle, *[]surface.Event) {
	h := &handle{
		rect: geometry.Rect{X: 50, Y: 50, Width: 600, Height: 400},
		chrome: surface.Chrome{
			Title:        "Files",
			ShowMinimize: true,
			ShowMaximize: true,
			ShowClose:    true,
			Resizable:    true,
		},
	}
	events := &[]surface.Event{}
	h.Subscribe(func(ev surface.Event) {
		*events = append(*events, ev)
	})
	return h, events
}

func TestDispatchTitleBarDrag(t *testing.T) {
	h, events := newTestHandle()

	h.dispatch(300, 14, 350, 64)
	if len(*events) != 1 {
		t.Fatalf("got %d events, want 1", len(*events))
	}
	ev := (*events)[0]
	if ev.Kind != surface.EventDragHandlePressed {
		t.Fatalf("kind = %v, want drag handle", ev.Kind)
	}
	if ev.PointerX != 350 || ev.PointerY != 64 {
		t.Fatalf("pointer = (%d,%d), want root coordinates (350,64)", ev.PointerX, ev.PointerY)
	}
}

func TestDispatchChromeButtons(t *testing.T) {
	h, events := newTestHandle()

	// rightmost button is close, then maximize, then minimize
	h.dispatch(600-10, 14, 0, 0)
	h.dispatch(600-buttonWidth-10, 14, 0, 0)
	h.dispatch(600-2*buttonWidth-10, 14, 0, 0)

	want := []surface.EventKind{
		surface.EventCloseClicked,
		surface.EventMaximizeClicked,
		surface.EventMinimizeClicked,
	}
	if len(*events) != len(want) {
		t.Fatalf("got %d events, want %d", len(*events), len(want))
	}
	for i, kind := range want {
		if (*events)[i].Kind != kind {
			t.Fatalf("event %d = %v, want %v", i, (*events)[i].Kind, kind)
		}
	}
}

func TestDispatchResizeEdges(t *testing.T) {
	h, events := newTestHandle()

	// bottom-right corner press
	h.dispatch(598, 398, 648, 448)
	if len(*events) != 1 {
		t.Fatalf("got %d events, want 1", len(*events))
	}
	ev := (*events)[0]
	if ev.Kind != surface.EventResizeHandlePressed {
		t.Fatalf("kind = %v, want resize handle", ev.Kind)
	}
	if !ev.Edges.South || !ev.Edges.East || ev.Edges.North || ev.Edges.West {
		t.Fatalf("edges = %+v, want south-east", ev.Edges)
	}
}

func TestDispatchResizeSuppressedWhenNotResizable(t *testing.T) {
	h, events := newTestHandle()
	h.chrome.Resizable = false

	h.dispatch(598, 200, 0, 0)
	if len(*events) != 0 {
		t.Fatalf("got %d events, want none on a fixed-size border press", len(*events))
	}
}

func TestDispatchBodyPressIgnored(t *testing.T) {
	h, events := newTestHandle()

	h.dispatch(300, 200, 0, 0)
	if len(*events) != 0 {
		t.Fatalf("got %d events, want none for a content-area press", len(*events))
	}
}

func TestButtonZonesRespectChromeFlags(t *testing.T) {
	h, _ := newTestHandle()
	h.chrome.ShowClose = false

	// with close hidden, the rightmost zone belongs to maximize
	kind, ok := h.buttonAt(600 - 10)
	if !ok || kind != surface.EventMaximizeClicked {
		t.Fatalf("buttonAt = %v/%v, want maximize", kind, ok)
	}
}
