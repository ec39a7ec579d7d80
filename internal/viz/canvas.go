package viz

import (
	"strings"
)

// Braille Patterns: 2x4 dots
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

const blank = 0x2800

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set lights the dot at sub-pixel (x, y). The canvas is Width*2 by Height*4
// dots; points outside are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// Scatter maps points in [0,lx)×[0,ly) onto the canvas, y pointing up.
func (c *Canvas) Scatter(xs, ys []float64, lx, ly float64) {
	w, h := float64(c.Width*2), float64(c.Height*4)
	for i := range xs {
		px := int(xs[i] / lx * w)
		py := int((1 - ys[i]/ly) * h)
		c.Set(min(px, c.Width*2-1), min(py, c.Height*4-1))
	}
}

// Lit reports the number of dots set.
func (c *Canvas) Lit() int {
	n := 0
	for _, row := range c.Grid {
		for _, r := range row {
			for b := r - blank; b != 0; b &= b - 1 {
				n++
			}
		}
	}
	return n
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}
