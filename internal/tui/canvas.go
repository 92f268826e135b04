package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// cellClass selects the lipgloss style a cell is flushed with. Styling is
// applied per run of same-class cells so overlapping windows can be painted
// as plain runes first.
type cellClass uint8

const (
	clsDesktop cellClass = iota
	clsWindow
	clsBorder
	clsActiveBorder
	clsTitle
	clsActiveTitle
	clsTaskbar
	clsTaskbarChip
)

var classStyles = map[cellClass]lipgloss.Style{
	clsDesktop:      lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	clsWindow:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	clsBorder:       lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	clsActiveBorder: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	clsTitle:        lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	clsActiveTitle:  lipgloss.NewStyle().Foreground(lipgloss.Color("45")).Bold(true),
	clsTaskbar:      lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Background(lipgloss.Color("236")),
	clsTaskbarChip:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Background(lipgloss.Color("238")),
}

type cell struct {
	r   rune
	cls cellClass
}

// canvas is a cell grid the frame is composited onto, back to front.
type canvas struct {
	width  int
	height int
	cells  [][]cell
}

func newCanvas(width, height int) *canvas {
	cells := make([][]cell, height)
	for y := range cells {
		row := make([]cell, width)
		for x := range row {
			row[x] = cell{r: ' ', cls: clsDesktop}
		}
		cells[y] = row
	}
	return &canvas{width: width, height: height, cells: cells}
}

func (c *canvas) set(x, y int, r rune, cls cellClass) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.cells[y][x] = cell{r: r, cls: cls}
}

func (c *canvas) text(x, y int, s string, cls cellClass) {
	for i, r := range []rune(s) {
		c.set(x+i, y, r, cls)
	}
}

// fillRow paints a full row with one class, used for the taskbar strip.
func (c *canvas) fillRow(y int, cls cellClass) {
	if y < 0 || y >= c.height {
		return
	}
	for x := 0; x < c.width; x++ {
		c.cells[y][x] = cell{r: ' ', cls: cls}
	}
}

// render flushes the grid to a string, styling runs of equal class together.
func (c *canvas) render() string {
	var b strings.Builder
	for y := 0; y < c.height; y++ {
		x := 0
		for x < c.width {
			cls := c.cells[y][x].cls
			start := x
			for x < c.width && c.cells[y][x].cls == cls {
				x++
			}
			var run strings.Builder
			for i := start; i < x; i++ {
				run.WriteRune(c.cells[y][i].r)
			}
			b.WriteString(classStyles[cls].Render(run.String()))
		}
		if y < c.height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
