package geometry

// Rect represents a window position and size in viewport coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Contains reports whether the point (x, y) lies inside the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Edges identifies which window edges participate in a resize gesture.
// A corner resize sets two adjacent edges.
type Edges struct {
	North bool
	South bool
	East  bool
	West  bool
}

// Any reports whether at least one edge is set.
func (e Edges) Any() bool {
	return e.North || e.South || e.East || e.West
}

// String returns the compass form, e.g. "ne" for North+East.
func (e Edges) String() string {
	s := ""
	if e.North {
		s += "n"
	}
	if e.South {
		s += "s"
	}
	if e.East {
		s += "e"
	}
	if e.West {
		s += "w"
	}
	return s
}

// ParseEdges parses a compass string ("n", "se", "nw", ...) into Edges.
// Unknown characters are ignored.
func ParseEdges(s string) Edges {
	var e Edges
	for _, c := range s {
		switch c {
		case 'n', 'N':
			e.North = true
		case 's', 'S':
			e.South = true
		case 'e', 'E':
			e.East = true
		case 'w', 'W':
			e.West = true
		}
	}
	return e
}

// Viewport describes the drawable area windows live in. TaskbarHeight is the
// reserved strip at the top; windows never move above it. EdgeMargin is how
// much of a window must stay reachable inside the viewport on each axis; zero
// means the default of 100. Cell-based backends set a smaller margin.
type Viewport struct {
	Width         int
	Height        int
	TaskbarHeight int
	EdgeMargin    int
}

func (v Viewport) margin() int {
	if v.EdgeMargin > 0 {
		return v.EdgeMargin
	}
	return 100
}

// WorkArea returns the region available to a maximized window.
func (v Viewport) WorkArea() Rect {
	return Rect{
		X:      0,
		Y:      v.TaskbarHeight,
		Width:  v.Width,
		Height: v.Height - v.TaskbarHeight,
	}
}

// Limits holds minimum window dimensions enforced on every size mutation.
type Limits struct {
	MinWidth  int
	MinHeight int
}

// ClampSize enforces the minimum dimensions on a rect without moving it.
func (l Limits) ClampSize(r Rect) Rect {
	if r.Width < l.MinWidth {
		r.Width = l.MinWidth
	}
	if r.Height < l.MinHeight {
		r.Height = l.MinHeight
	}
	return r
}

// Cascade computes the default origin for the n-th created window (0-based),
// stepping down-right so new windows do not fully cover older ones.
func Cascade(n, originX, originY, step int) (x, y int) {
	return originX + n*step, originY + n*step
}

// Drag computes the window origin after moving the pointer by (dx, dy) from
// the gesture start. The result is clamped so the window cannot escape the
// viewport: at least the edge margin of it stays reachable on each axis, and
// the top edge never goes above the taskbar.
func Drag(origin Rect, dx, dy int, vp Viewport) Rect {
	r := origin
	r.X = origin.X + dx
	r.Y = origin.Y + dy

	maxX := vp.Width - vp.margin()
	maxY := vp.Height - vp.margin()
	if maxX < 0 {
		maxX = 0
	}

	if r.X < 0 {
		r.X = 0
	}
	if r.X > maxX {
		r.X = maxX
	}
	if r.Y > maxY {
		r.Y = maxY
	}
	if r.Y < vp.TaskbarHeight {
		r.Y = vp.TaskbarHeight
	}
	return r
}

// Resize computes the window rect after a resize gesture moved the pointer by
// (dx, dy) from its start. Each active edge grows or shrinks the matching
// dimension; north and west additionally shift the origin so the opposite
// edge stays fixed. When a dimension hits the minimum the origin shift on
// that axis is dropped, so a min-sized window does not drift under continued
// pointer travel.
func Resize(origin Rect, edges Edges, dx, dy int, lim Limits, vp Viewport) Rect {
	r := origin

	if edges.East {
		r.Width = origin.Width + dx
		if r.Width < lim.MinWidth {
			r.Width = lim.MinWidth
		}
	}
	if edges.West {
		r.Width = origin.Width - dx
		if r.Width < lim.MinWidth {
			r.Width = lim.MinWidth
		} else {
			r.X = origin.X + dx
		}
	}
	if edges.South {
		r.Height = origin.Height + dy
		if r.Height < lim.MinHeight {
			r.Height = lim.MinHeight
		}
	}
	if edges.North {
		r.Height = origin.Height - dy
		if r.Height < lim.MinHeight {
			r.Height = lim.MinHeight
		} else {
			r.Y = origin.Y + dy
		}
	}

	if r.X < 0 {
		r.X = 0
	}
	if r.Y < vp.TaskbarHeight {
		r.Y = vp.TaskbarHeight
	}
	return r
}
