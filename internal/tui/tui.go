// Package tui is a self-contained terminal demo of the window engine. It
// drives a manager with a cell-based surface backend: windows are lipgloss
// boxes, the taskbar is the top row, and the mouse drives the same drag and
// resize sessions the X11 backend does.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/deskwm/internal/geometry"
	"github.com/1broseidon/deskwm/internal/wm"
)

var demoWindows = []struct {
	title   string
	content string
}{
	{"Notes", "Meeting at 10:00.\nReview the release branch.\nCall the datacenter about rack 4."},
	{"Files", "documents/\ndownloads/\nmusic/\npictures/\nprojects/"},
	{"Terminal", "$ uptime\n 09:14:02 up 12 days\n$ _"},
	{"Monitor", "cpu  31%\nmem  58%\nnet  1.2 MB/s"},
}

type chip struct {
	id       wm.ID
	from, to int
}

// Model is the bubbletea model for the demo desktop.
type Model struct {
	mgr     *wm.Manager
	factory *Factory
	handles map[wm.ID]*Handle

	width   int
	height  int
	created int
	chips   []chip
}

// New builds the model with a cell-scale manager. Real sizes arrive with the
// first WindowSizeMsg.
func New() *Model {
	factory := &Factory{}
	mgr := wm.NewManager(factory, wm.Options{
		Viewport:       geometry.Viewport{Width: 80, Height: 24, TaskbarHeight: 1, EdgeMargin: 10},
		Limits:         geometry.Limits{MinWidth: 24, MinHeight: 6},
		DefaultWidth:   44,
		DefaultHeight:  14,
		CascadeOriginX: 3,
		CascadeOriginY: 3,
		CascadeStep:    2,
	})
	return &Model{
		mgr:     mgr,
		factory: factory,
		handles: make(map[wm.ID]*Handle),
	}
}

// Run starts the demo, blocking until quit.
func Run() error {
	p := tea.NewProgram(New(), tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.mgr.SetViewportSize(msg.Width, msg.Height)
		if len(m.mgr.Windows()) == 0 {
			m.spawn()
			m.spawn()
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "n":
			m.spawn()
		case "m":
			if id, ok := m.mgr.ActiveWindowID(); ok {
				m.mgr.MinimizeWindow(id)
			}
		case "z":
			if id, ok := m.mgr.ActiveWindowID(); ok {
				m.mgr.ToggleMaximize(id)
			}
		case "x":
			if id, ok := m.mgr.ActiveWindowID(); ok {
				m.mgr.CloseWindow(id)
			}
		case "tab":
			m.focusNext()
		}

	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	return m, nil
}

func (m *Model) spawn() {
	demo := demoWindows[m.created%len(demoWindows)]
	m.created++
	w, err := m.mgr.CreateWindow(demo.title, demo.content, wm.WindowOptions{})
	if err != nil {
		return
	}
	m.handles[w.ID()] = m.factory.last()
}

func (m *Model) focusNext() {
	windows := m.mgr.Windows()
	if len(windows) == 0 {
		return
	}
	active, _ := m.mgr.ActiveWindowID()
	for i, w := range windows {
		if w.ID() == active {
			next := windows[(i+1)%len(windows)]
			m.mgr.FocusWindow(next.ID())
			return
		}
	}
	m.mgr.FocusWindow(windows[0].ID())
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionMotion:
		m.mgr.PointerMove(msg.X, msg.Y)
	case tea.MouseActionRelease:
		m.mgr.PointerUp()
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		if msg.Y == 0 {
			for _, c := range m.chips {
				if msg.X >= c.from && msg.X < c.to {
					m.mgr.RestoreFromTaskbar(c.id)
					return
				}
			}
			return
		}
		m.press(msg.X, msg.Y)
	}
}

// press routes a desktop press to the topmost window under the pointer.
func (m *Model) press(x, y int) {
	windows := m.mgr.WindowsByStacking()
	for i := len(windows) - 1; i >= 0; i-- {
		w := windows[i]
		if w.State() == wm.StateMinimized || !w.Rect().Contains(x, y) {
			continue
		}
		h := m.handles[w.ID()]
		if h == nil {
			return
		}
		rel := w.Rect()
		relX, relY := x-rel.X, y-rel.Y
		if relY == 0 || relX == 0 || relX == rel.Width-1 || relY == rel.Height-1 {
			h.press(relX, relY, x, y)
		} else {
			m.mgr.FocusWindow(w.ID())
		}
		return
	}
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}
	c := newCanvas(m.width, m.height)

	m.drawTaskbar(c)
	for _, w := range m.mgr.WindowsByStacking() {
		if w.State() == wm.StateMinimized {
			continue
		}
		m.drawWindow(c, w)
	}
	return c.render()
}

func (m *Model) drawTaskbar(c *canvas) {
	c.fillRow(0, clsTaskbar)
	c.text(1, 0, "deskwm", clsTaskbar)
	x := 9
	m.chips = m.chips[:0]
	for _, e := range m.mgr.TaskbarEntries() {
		label := " " + e.Title + " "
		c.text(x, 0, label, clsTaskbarChip)
		m.chips = append(m.chips, chip{id: e.ID, from: x, to: x + len([]rune(label))})
		x += len([]rune(label)) + 1
	}
	hint := "n:new m:min z:max x:close tab:focus q:quit"
	c.text(m.width-len(hint)-1, 0, hint, clsTaskbar)
}

func (m *Model) drawWindow(c *canvas, w *wm.Window) {
	r := w.Rect()
	h := m.handles[w.ID()]
	active := h != nil && h.active

	border := clsBorder
	title := clsTitle
	if active {
		border = clsActiveBorder
		title = clsActiveTitle
	}

	// title bar row with right-aligned chrome buttons
	c.set(r.X, r.Y, '┌', border)
	for x := 1; x < r.Width-1; x++ {
		c.set(r.X+x, r.Y, '─', border)
	}
	c.set(r.X+r.Width-1, r.Y, '┐', border)
	c.text(r.X+2, r.Y, " "+w.Title()+" ", title)
	buttons := "[_][□][×]"
	c.text(r.X+r.Width-1-len([]rune(buttons)), r.Y, buttons, title)

	body := splitContent(h)
	for y := 1; y < r.Height-1; y++ {
		c.set(r.X, r.Y+y, '│', border)
		for x := 1; x < r.Width-1; x++ {
			c.set(r.X+x, r.Y+y, ' ', clsWindow)
		}
		if y-1 < len(body) {
			line := body[y-1]
			if len([]rune(line)) > r.Width-4 {
				line = string([]rune(line)[:r.Width-4])
			}
			c.text(r.X+2, r.Y+y, line, clsWindow)
		}
		c.set(r.X+r.Width-1, r.Y+y, '│', border)
	}

	c.set(r.X, r.Y+r.Height-1, '└', border)
	for x := 1; x < r.Width-1; x++ {
		c.set(r.X+x, r.Y+r.Height-1, '─', border)
	}
	c.set(r.X+r.Width-1, r.Y+r.Height-1, '┘', border)
}

func splitContent(h *Handle) []string {
	if h == nil || h.content == "" {
		return nil
	}
	var lines []string
	start := 0
	for i, r := range h.content {
		if r == '\n' {
			lines = append(lines, h.content[start:i])
			start = i + 1
		}
	}
	return append(lines, h.content[start:])
}
