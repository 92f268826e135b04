package wm

import (
	"testing"

	"github.com/1broseidon/deskwm/internal/geometry"
	"github.com/1broseidon/deskwm/internal/surface"
)

func TestCreateWindowAssignsStrictlyIncreasingZ(t *testing.T) {
	m, _ := newTestManager()

	var prev int
	for i := 0; i < 5; i++ {
		w, err := m.CreateWindow("W", nil, WindowOptions{})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if w.Z() <= prev {
			t.Fatalf("window %d z=%d not greater than previous %d", i, w.Z(), prev)
		}
		prev = w.Z()
	}
}

func TestCreateWindowCascadesAndDefaults(t *testing.T) {
	m, _ := newTestManager()

	a, _ := m.CreateWindow("A", nil, WindowOptions{})
	b, _ := m.CreateWindow("B", nil, WindowOptions{})

	if r := a.Rect(); r.X != 50 || r.Y != 50 || r.Width != 600 || r.Height != 400 {
		t.Fatalf("unexpected first window rect: %+v", r)
	}
	if r := b.Rect(); r.X != 80 || r.Y != 80 {
		t.Fatalf("expected cascade (80,80), got (%d,%d)", r.X, r.Y)
	}
}

func TestFocusWindowRaisesAndRestyles(t *testing.T) {
	m, f := newTestManager()
	a, _ := m.CreateWindow("A", nil, WindowOptions{})
	ha := f.handles[0]
	b, _ := m.CreateWindow("B", nil, WindowOptions{})
	hb := f.handles[1]

	if !hb.active || ha.active {
		t.Fatalf("newest window must hold the active style")
	}
	if b.Z() <= a.Z() {
		t.Fatalf("new window must be front-most")
	}

	m.FocusWindow(a.ID())
	if a.Z() <= b.Z() {
		t.Fatalf("focus must raise above all others: a=%d b=%d", a.Z(), b.Z())
	}
	if !ha.active || hb.active {
		t.Fatalf("active style must follow focus")
	}
	if id, _ := m.ActiveWindowID(); id != a.ID() {
		t.Fatalf("expected active %s, got %s", a.ID(), id)
	}
}

func TestDragScenario(t *testing.T) {
	m, _ := newTestManager()
	a, _ := m.CreateWindow("A", nil, WindowOptions{X: intptr(50), Y: intptr(50)})

	m.BeginDrag(a.ID(), 100, 100)
	m.PointerMove(150, 120)
	m.PointerUp()

	want := geometry.Rect{X: 100, Y: 70, Width: 600, Height: 400}
	if a.Rect() != want {
		t.Fatalf("expected %+v, got %+v", want, a.Rect())
	}
	if m.InteractionActive() {
		t.Fatalf("session must be cleared on pointer-up")
	}
}

func TestSecondGestureOnOtherWindowIsRejected(t *testing.T) {
	m, _ := newTestManager()
	a, _ := m.CreateWindow("A", nil, WindowOptions{X: intptr(50), Y: intptr(50)})
	b, _ := m.CreateWindow("B", nil, WindowOptions{X: intptr(400), Y: intptr(200)})
	aBefore := a.Rect()

	m.BeginDrag(b.ID(), 450, 250)
	m.BeginDrag(a.ID(), 100, 100) // rejected: session active on B
	m.PointerMove(500, 300)

	if a.Rect() != aBefore {
		t.Fatalf("rejected gesture moved window A: %+v", a.Rect())
	}
	if b.Rect().X != 450 || b.Rect().Y != 250 {
		t.Fatalf("active gesture did not move B: %+v", b.Rect())
	}
}

func TestPointerMoveWithoutSessionIsNoop(t *testing.T) {
	m, _ := newTestManager()
	a, _ := m.CreateWindow("A", nil, WindowOptions{})
	before := a.Rect()

	m.PointerMove(999, 999)
	if a.Rect() != before {
		t.Fatalf("pointer-move without session changed geometry")
	}
}

func TestDragClampsToViewport(t *testing.T) {
	m, _ := newTestManager()
	a, _ := m.CreateWindow("A", nil, WindowOptions{X: intptr(100), Y: intptr(100)})

	m.BeginDrag(a.ID(), 100, 100)
	m.PointerMove(-5000, -5000)
	m.PointerUp()

	r := a.Rect()
	if r.X != 0 || r.Y != 40 {
		t.Fatalf("expected clamp to (0,40), got (%d,%d)", r.X, r.Y)
	}
}

func TestResizeGestureRespectsMinimumWithoutDrift(t *testing.T) {
	m, _ := newTestManager()
	a, _ := m.CreateWindow("A", nil, WindowOptions{X: intptr(300), Y: intptr(300), Width: 250, Height: 150})

	m.BeginResize(a.ID(), 300, 300, geometry.Edges{West: true, North: true})
	m.PointerMove(700, 700) // way past the minimum on both axes
	m.PointerUp()

	r := a.Rect()
	if r.Width != 200 || r.Height != 100 {
		t.Fatalf("expected min size 200x100, got %dx%d", r.Width, r.Height)
	}
	if r.X != 300 || r.Y != 300 {
		t.Fatalf("origin drifted to (%d,%d) during clamp", r.X, r.Y)
	}
}

func TestCloseWindowTransfersFocusToFrontmostSurvivor(t *testing.T) {
	m, f := newTestManager()
	a, _ := m.CreateWindow("A", nil, WindowOptions{})
	b, _ := m.CreateWindow("B", nil, WindowOptions{})
	c, _ := m.CreateWindow("C", nil, WindowOptions{})

	m.FocusWindow(b.ID()) // stacking now: a < c < b
	m.CloseWindow(b.ID())

	if _, ok := m.Window(b.ID()); ok {
		t.Fatalf("closed window still registered")
	}
	if !f.handles[1].destroyed {
		t.Fatalf("closed window's surface not destroyed")
	}
	if id, ok := m.ActiveWindowID(); !ok || id != c.ID() {
		t.Fatalf("expected focus on frontmost survivor %s, got %s", c.ID(), id)
	}
	_ = a
}

func TestCloseWindowUnknownIDIsNoop(t *testing.T) {
	m, _ := newTestManager()
	m.CreateWindow("A", nil, WindowOptions{})
	active, _ := m.ActiveWindowID()

	m.CloseWindow("win-999")
	if len(m.Windows()) != 1 {
		t.Fatalf("registry changed on unknown close")
	}
	if id, _ := m.ActiveWindowID(); id != active {
		t.Fatalf("active id changed on unknown close")
	}
}

func TestCloseLastWindowClearsActive(t *testing.T) {
	m, _ := newTestManager()
	a, _ := m.CreateWindow("A", nil, WindowOptions{})

	m.CloseWindow(a.ID())
	if _, ok := m.ActiveWindowID(); ok {
		t.Fatalf("active id must clear when no windows remain")
	}
}

func TestCloseMidDragEndsSession(t *testing.T) {
	m, _ := newTestManager()
	a, _ := m.CreateWindow("A", nil, WindowOptions{})

	m.BeginDrag(a.ID(), 100, 100)
	m.CloseWindow(a.ID())
	if m.InteractionActive() {
		t.Fatalf("session must end when its window closes")
	}
	m.PointerMove(200, 200) // must not panic or resurrect anything
}

func TestTaskbarMirrorsMinimizedSet(t *testing.T) {
	m, _ := newTestManager()
	a, _ := m.CreateWindow("A", nil, WindowOptions{})
	b, _ := m.CreateWindow("B", nil, WindowOptions{})
	c, _ := m.CreateWindow("C", nil, WindowOptions{})

	m.MinimizeWindow(a.ID())
	m.MinimizeWindow(c.ID())

	entries := m.TaskbarEntries()
	if len(entries) != 2 || entries[0].ID != a.ID() || entries[1].ID != c.ID() {
		t.Fatalf("unexpected taskbar: %+v", entries)
	}

	m.RestoreFromTaskbar(a.ID())
	entries = m.TaskbarEntries()
	if len(entries) != 1 || entries[0].ID != c.ID() {
		t.Fatalf("restore did not remove entry: %+v", entries)
	}
	if id, _ := m.ActiveWindowID(); id != a.ID() {
		t.Fatalf("taskbar restore must focus the window")
	}

	m.CloseWindow(c.ID())
	if len(m.TaskbarEntries()) != 0 {
		t.Fatalf("close did not remove taskbar entry")
	}
	_ = b
}

func TestChromeEventsDriveOperations(t *testing.T) {
	m, f := newTestManager()
	a, _ := m.CreateWindow("A", nil, WindowOptions{X: intptr(50), Y: intptr(50)})
	h := f.lastHandle()

	h.chrome(surface.Event{Kind: surface.EventMinimizeClicked})
	if a.State() != StateMinimized {
		t.Fatalf("minimize click ignored")
	}

	m.RestoreWindow(a.ID())
	h.chrome(surface.Event{Kind: surface.EventMaximizeClicked})
	if a.State() != StateMaximized {
		t.Fatalf("maximize click ignored")
	}
	// Toggle: a second click restores.
	h.chrome(surface.Event{Kind: surface.EventMaximizeClicked})
	if a.State() != StateNormal {
		t.Fatalf("maximize click on maximized window must restore")
	}

	h.chrome(surface.Event{Kind: surface.EventDragHandlePressed, PointerX: 100, PointerY: 100})
	m.PointerMove(130, 110)
	m.PointerUp()
	if r := a.Rect(); r.X != 80 || r.Y != 60 {
		t.Fatalf("chrome drag did not move window: %+v", r)
	}

	h.chrome(surface.Event{Kind: surface.EventCloseClicked})
	if _, ok := m.Window(a.ID()); ok {
		t.Fatalf("close click ignored")
	}
}

func TestDragHandleOnMaximizedWindowOnlyFocuses(t *testing.T) {
	m, f := newTestManager()
	a, _ := m.CreateWindow("A", nil, WindowOptions{})
	ha := f.handles[0]
	m.CreateWindow("B", nil, WindowOptions{})

	m.MaximizeWindow(a.ID())
	maxRect := a.Rect()

	ha.chrome(surface.Event{Kind: surface.EventDragHandlePressed, PointerX: 10, PointerY: 50})
	if m.InteractionActive() {
		t.Fatalf("maximized window must not start a drag session")
	}
	if id, _ := m.ActiveWindowID(); id != a.ID() {
		t.Fatalf("press on maximized window must still focus it")
	}
	m.PointerMove(600, 600)
	if a.Rect() != maxRect {
		t.Fatalf("maximized window moved")
	}
}

func TestSetViewportSizeRefitsMaximizedWindows(t *testing.T) {
	m, _ := newTestManager()
	a, _ := m.CreateWindow("A", nil, WindowOptions{})
	m.MaximizeWindow(a.ID())

	m.SetViewportSize(1000, 600)
	want := geometry.Rect{X: 0, Y: 40, Width: 1000, Height: 560}
	if a.Rect() != want {
		t.Fatalf("expected refit %+v, got %+v", want, a.Rect())
	}
}

func TestWindowsByStackingIsBackToFront(t *testing.T) {
	m, _ := newTestManager()
	a, _ := m.CreateWindow("A", nil, WindowOptions{})
	b, _ := m.CreateWindow("B", nil, WindowOptions{})
	m.FocusWindow(a.ID())

	stack := m.WindowsByStacking()
	if len(stack) != 2 || stack[0].ID() != b.ID() || stack[1].ID() != a.ID() {
		t.Fatalf("unexpected stacking order: %v, %v", stack[0].ID(), stack[1].ID())
	}
}
