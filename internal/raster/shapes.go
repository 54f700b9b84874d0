package raster

// Rect draws an axis-aligned rectangle between two corners, inclusive.
// The corners may be given in any order.
func (c *Canvas) Rect(x0, y0, x1, y1 int, col RGB, filled bool) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}

	if filled {
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				c.Set(x, y, col)
			}
		}
		return
	}

	for x := x0; x <= x1; x++ {
		c.Set(x, y0, col)
		c.Set(x, y1, col)
	}
	for y := y0; y <= y1; y++ {
		c.Set(x0, y, col)
		c.Set(x1, y, col)
	}
}

// Line draws a line with the integer Bresenham algorithm. Both endpoints are
// plotted.
func (c *Canvas) Line(x0, y0, x1, y1 int, col RGB) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy

	for {
		c.Set(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Circle draws a circle with the midpoint algorithm. An outline plots the
// eight symmetric points per step; a filled circle draws the four horizontal
// spans between them instead. A non-positive radius draws nothing.
func (c *Canvas) Circle(cx, cy, radius int, col RGB, filled bool) {
	if radius <= 0 {
		return
	}

	x := radius
	y := 0
	err := 0

	for x >= y {
		if filled {
			c.hspan(cx-x, cx+x, cy+y, col)
			c.hspan(cx-x, cx+x, cy-y, col)
			c.hspan(cx-y, cx+y, cy+x, col)
			c.hspan(cx-y, cx+y, cy-x, col)
		} else {
			c.Set(cx+x, cy+y, col)
			c.Set(cx+y, cy+x, col)
			c.Set(cx-y, cy+x, col)
			c.Set(cx-x, cy+y, col)
			c.Set(cx-x, cy-y, col)
			c.Set(cx-y, cy-x, col)
			c.Set(cx+y, cy-x, col)
			c.Set(cx+x, cy-y, col)
		}

		y++
		err += 2*y + 1
		if 2*(err-x)+1 > 0 {
			x--
			err += 1 - 2*x
		}
	}
}

// hspan sets every pixel from x0 to x1 inclusive on row y.
func (c *Canvas) hspan(x0, x1, y int, col RGB) {
	for x := x0; x <= x1; x++ {
		c.Set(x, y, col)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
