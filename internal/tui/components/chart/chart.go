package chart

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	drawille "github.com/exrook/drawille-go"

	"github.com/garrettladley/commish/internal/tui/theme"
)

// each braille cell is 2 dots wide and 4 dots tall
const (
	dotsPerCellX = 2
	dotsPerCellY = 4
)

// Line plots values left to right as a braille line chart, scaled so the
// largest value touches the top row and zero sits on the bottom row.
type Line struct {
	Values []float64
	Width  int // cells
	Height int // cells
	Color  color.Color
}

func (l Line) Render() string {
	if l.Width <= 0 || l.Height <= 0 {
		return ""
	}

	var (
		dotsW = l.Width * dotsPerCellX
		dotsH = l.Height * dotsPerCellY
	)

	canvas := drawille.NewCanvas()
	points := l.points(dotsW, dotsH)
	switch len(points) {
	case 0:
	case 1:
		canvas.Set(points[0][0], points[0][1])
	default:
		for i := 1; i < len(points); i++ {
			drawLine(&canvas, points[i-1], points[i])
		}
	}

	grid := canvasString(&canvas, l.Width, l.Height)

	if l.Color == nil {
		return grid
	}
	return lipgloss.NewStyle().Foreground(l.Color).Render(grid)
}

func (l Line) points(dotsW, dotsH int) [][2]int {
	if len(l.Values) == 0 {
		return nil
	}

	var top float64
	for _, v := range l.Values {
		top = max(top, v)
	}

	points := make([][2]int, len(l.Values))
	for i, v := range l.Values {
		x := 0
		if len(l.Values) > 1 {
			x = i * (dotsW - 1) / (len(l.Values) - 1)
		}
		y := dotsH - 1
		if top > 0 && v > 0 {
			y = dotsH - 1 - int(v/top*float64(dotsH-1)+0.5)
		}
		points[i] = [2]int{x, y}
	}
	return points
}

// drawLine is Bresenham's line between two dot coordinates.
func drawLine(canvas *drawille.Canvas, from, to [2]int) {
	x0, y0 := from[0], from[1]
	x1, y1 := to[0], to[1]

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy

	for {
		canvas.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// canvasString pads or truncates the canvas rows to exactly width x height cells.
func canvasString(canvas *drawille.Canvas, width, height int) string {
	rows := canvas.Rows(0, 0, width*dotsPerCellX, height*dotsPerCellY)

	lines := make([]string, height)
	for i := range height {
		var line []rune
		if i < len(rows) {
			line = []rune(rows[i])
		}
		if len(line) > width {
			line = line[:width]
		}
		lines[i] = string(line) + strings.Repeat(" ", width-len(line))
	}
	return strings.Join(lines, "\n")
}

// Bar renders a horizontal bar of width cells filled to fraction.
func Bar(fraction float64, width int, fill color.Color) string {
	if width <= 0 {
		return ""
	}
	fraction = min(max(fraction, 0), 1)
	filled := int(fraction*float64(width) + 0.5)

	bar := lipgloss.NewStyle().Foreground(fill).Render(strings.Repeat("█", filled))
	rest := lipgloss.NewStyle().Foreground(theme.ColorBgLight).Render(strings.Repeat("░", width-filled))
	return bar + rest
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
