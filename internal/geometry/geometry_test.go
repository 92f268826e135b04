package geometry

import "testing"

var testViewport = Viewport{Width: 1280, Height: 800, TaskbarHeight: 40}
var testLimits = Limits{MinWidth: 200, MinHeight: 100}

func TestDrag_AppliesDelta(t *testing.T) {
	origin := Rect{X: 50, Y: 50, Width: 600, Height: 400}

	// Pointer down at (100,100), moved to (150,120): dx=50, dy=20.
	got := Drag(origin, 50, 20, testViewport)
	if got.X != 100 || got.Y != 70 {
		t.Fatalf("expected (100,70), got (%d,%d)", got.X, got.Y)
	}
	if got.Width != 600 || got.Height != 400 {
		t.Fatalf("drag must not change size, got %dx%d", got.Width, got.Height)
	}
}

func TestDrag_ClampsToViewport(t *testing.T) {
	origin := Rect{X: 100, Y: 100, Width: 600, Height: 400}

	// Far up-left: x floors at 0, y floors at the taskbar.
	got := Drag(origin, -5000, -5000, testViewport)
	if got.X != 0 {
		t.Fatalf("expected x=0, got %d", got.X)
	}
	if got.Y != testViewport.TaskbarHeight {
		t.Fatalf("expected y=%d, got %d", testViewport.TaskbarHeight, got.Y)
	}

	// Far down-right: 100px must remain reachable on each axis.
	got = Drag(origin, 5000, 5000, testViewport)
	if got.X != 1280-100 {
		t.Fatalf("expected x=%d, got %d", 1280-100, got.X)
	}
	if got.Y != 800-100 {
		t.Fatalf("expected y=%d, got %d", 800-100, got.Y)
	}
}

func TestDrag_CustomEdgeMargin(t *testing.T) {
	vp := Viewport{Width: 120, Height: 40, TaskbarHeight: 1, EdgeMargin: 10}
	origin := Rect{X: 5, Y: 5, Width: 40, Height: 12}

	got := Drag(origin, 500, 500, vp)
	if got.X != 110 || got.Y != 30 {
		t.Fatalf("expected (110,30), got (%d,%d)", got.X, got.Y)
	}
}

func TestResize_EastGrowsWidth(t *testing.T) {
	origin := Rect{X: 100, Y: 100, Width: 600, Height: 400}

	got := Resize(origin, Edges{East: true}, 40, 0, testLimits, testViewport)
	if got.Width != 640 {
		t.Fatalf("expected width 640, got %d", got.Width)
	}
	if got.X != 100 || got.Y != 100 || got.Height != 400 {
		t.Fatalf("east resize must only change width, got %+v", got)
	}
}

func TestResize_WestShiftsOriginKeepsOppositeEdge(t *testing.T) {
	origin := Rect{X: 100, Y: 100, Width: 600, Height: 400}

	got := Resize(origin, Edges{West: true}, 40, 0, testLimits, testViewport)
	if got.Width != 560 {
		t.Fatalf("expected width 560, got %d", got.Width)
	}
	if got.X != 140 {
		t.Fatalf("expected x=140, got %d", got.X)
	}
	// Right edge stays fixed.
	if got.X+got.Width != origin.X+origin.Width {
		t.Fatalf("right edge moved: %d != %d", got.X+got.Width, origin.X+origin.Width)
	}
}

func TestResize_MinClampSuppressesShift(t *testing.T) {
	origin := Rect{X: 100, Y: 100, Width: 220, Height: 120}

	// dx=300 would shrink width to -80; it clamps to 200 and x must not move.
	got := Resize(origin, Edges{West: true}, 300, 0, testLimits, testViewport)
	if got.Width != 200 {
		t.Fatalf("expected width 200, got %d", got.Width)
	}
	if got.X != 100 {
		t.Fatalf("x drifted to %d during min-size clamp", got.X)
	}

	// Same on the north edge.
	got = Resize(origin, Edges{North: true}, 0, 300, testLimits, testViewport)
	if got.Height != 100 {
		t.Fatalf("expected height 100, got %d", got.Height)
	}
	if got.Y != 100 {
		t.Fatalf("y drifted to %d during min-size clamp", got.Y)
	}
}

func TestResize_CornerCombinesEdges(t *testing.T) {
	origin := Rect{X: 200, Y: 200, Width: 400, Height: 300}

	got := Resize(origin, Edges{South: true, East: true}, 50, 60, testLimits, testViewport)
	if got.Width != 450 || got.Height != 360 {
		t.Fatalf("expected 450x360, got %dx%d", got.Width, got.Height)
	}
	if got.X != 200 || got.Y != 200 {
		t.Fatalf("se resize must not move origin, got (%d,%d)", got.X, got.Y)
	}

	got = Resize(origin, Edges{North: true, West: true}, 30, 20, testLimits, testViewport)
	if got.Width != 370 || got.Height != 280 {
		t.Fatalf("expected 370x280, got %dx%d", got.Width, got.Height)
	}
	if got.X != 230 || got.Y != 220 {
		t.Fatalf("expected origin (230,220), got (%d,%d)", got.X, got.Y)
	}
}

func TestResize_NorthNeverCrossesTaskbar(t *testing.T) {
	origin := Rect{X: 100, Y: 60, Width: 400, Height: 300}

	got := Resize(origin, Edges{North: true}, 0, -100, testLimits, testViewport)
	if got.Y != testViewport.TaskbarHeight {
		t.Fatalf("expected y clamped to %d, got %d", testViewport.TaskbarHeight, got.Y)
	}
}

func TestCascade(t *testing.T) {
	x, y := Cascade(0, 50, 50, 30)
	if x != 50 || y != 50 {
		t.Fatalf("expected (50,50), got (%d,%d)", x, y)
	}
	x, y = Cascade(3, 50, 50, 30)
	if x != 140 || y != 140 {
		t.Fatalf("expected (140,140), got (%d,%d)", x, y)
	}
}

func TestParseEdges(t *testing.T) {
	e := ParseEdges("ne")
	if !e.North || !e.East || e.South || e.West {
		t.Fatalf("unexpected edges for %q: %+v", "ne", e)
	}
	if e.String() != "ne" {
		t.Fatalf("expected round-trip \"ne\", got %q", e.String())
	}
	if ParseEdges("").Any() {
		t.Fatalf("empty string must parse to no edges")
	}
}

func TestWorkArea(t *testing.T) {
	wa := testViewport.WorkArea()
	if wa.X != 0 || wa.Y != 40 || wa.Width != 1280 || wa.Height != 760 {
		t.Fatalf("unexpected work area: %+v", wa)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 100, Height: 50}
	if !r.Contains(10, 10) || !r.Contains(109, 59) {
		t.Fatalf("expected corner points inside")
	}
	if r.Contains(110, 10) || r.Contains(10, 60) {
		t.Fatalf("expected far edges exclusive")
	}
}
