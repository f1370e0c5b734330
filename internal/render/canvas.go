package render

import (
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Braille Patterns: 2x4 dots per cell
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const canvasBackground = "#0a0a0a"

// Canvas is a braille-cell terminal surface. World coordinates are
// projected onto a fixed rectangle: [-Extent, Extent] on both axes maps
// to the full sub-pixel grid, matching the fixed axis limits of the
// scatter plot this renders. Each cell remembers the color of its most
// recent write so callers can emit colored output.
type Canvas struct {
	Width, Height int
	Extent        float64
	Grid          [][]rune
	Colors        [][]string
}

func NewCanvas(w, h int, extent float64) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Extent: extent,
		Grid:   make([][]rune, h),
		Colors: make([][]string, h),
	}
	c.Clear()
	return c
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		if c.Grid[i] == nil {
			c.Grid[i] = make([]rune, c.Width)
			c.Colors[i] = make([]string, c.Width)
		}
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
			c.Colors[i][j] = ""
		}
	}
}

// Set lights the sub-pixel at (x, y) in the given color. The canvas is
// (Width*2) x (Height*4) sub-pixels; out-of-range coordinates are
// ignored. The cell keeps the last color written to it.
func (c *Canvas) Set(x, y int, color string) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	if color != "" {
		c.Colors[row][col] = color
	}
}

// Project maps a world coordinate to sub-pixel coordinates. The y axis
// is flipped so world-up is screen-up.
func (c *Canvas) Project(wx, wy float64) (int, int) {
	px := (wx + c.Extent) / (2 * c.Extent) * float64(c.Width*2-1)
	py := (1 - (wy+c.Extent)/(2*c.Extent)) * float64(c.Height*4-1)
	return int(math.Round(px)), int(math.Round(py))
}

// Line draws a sub-pixel line between two world points.
func (c *Canvas) Line(x0, y0, x1, y1 float64, color string) {
	ax, ay := c.Project(x0, y0)
	bx, by := c.Project(x1, y1)

	steps := max(abs(bx-ax), abs(by-ay))
	if steps == 0 {
		c.Set(ax, ay, color)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c.Set(ax+int(math.Round(t*float64(bx-ax))), ay+int(math.Round(t*float64(by-ay))), color)
	}
}

// Draw renders a frame. Trail segments go down first so body markers
// stay on top; segment colors fade toward the background by their
// alpha. The primary marker is a 3x3 sub-pixel blob.
func (c *Canvas) Draw(f Frame) {
	c.Clear()

	for _, s := range f.Segments {
		c.Line(s.From.X, s.From.Y, s.To.X, s.To.Y, Fade(s.Color, s.Alpha))
	}

	for _, p := range f.Points {
		x, y := c.Project(p.Pos.X, p.Pos.Y)
		if p.Size >= PrimarySize {
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					c.Set(x+dx, y+dy, p.Color)
				}
			}
		} else {
			c.Set(x, y, p.Color)
		}
	}
}

// Render returns the canvas as newline-joined rows, uncolored. Callers
// that can style cells should walk Grid and Colors themselves.
func (c *Canvas) Render() string {
	var sb strings.Builder
	for i, row := range c.Grid {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(row))
	}
	return sb.String()
}

// Fade blends a hex color toward the canvas background; alpha 1 keeps
// the color, alpha near 0 sinks it into the backdrop. Unparseable
// colors pass through untouched.
func Fade(hex string, alpha float64) string {
	col, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	bg, _ := colorful.Hex(canvasBackground)
	return bg.BlendRgb(col, alpha).Hex()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
