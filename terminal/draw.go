package terminal

import (
	"image"
	"math"

	"github.com/navionguy/edubasic/object"
)

// set plots a pixel given BASIC coordinates, off canvas points are dropped
func (t *Terminal) set(x, y int, rgba uint32) {
	if t.canvas == nil {
		return
	}
	b := t.canvas.Bounds()
	pt := image.Pt(b.Min.X+x, b.Min.Y+b.Dy()-1-y)
	if pt.In(b) {
		t.canvas.SetRGBA(pt.X, pt.Y, object.Unpack(rgba))
	}
}

func (t *Terminal) fill(rgba uint32) {
	if t.canvas == nil {
		return
	}
	c := object.Unpack(rgba)
	b := t.canvas.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			t.canvas.SetRGBA(x, y, c)
		}
	}
}

func (t *Terminal) DrawPixel(x, y int, rgba uint32) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.set(x, y, rgba)
}

func (t *Terminal) DrawLine(x1, y1, x2, y2 int, rgba uint32) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.line(x1, y1, x2, y2, rgba)
}

// line is Bresenham's, all octants
func (t *Terminal) line(x1, y1, x2, y2 int, rgba uint32) {
	dx, dy := abs(x2-x1), -abs(y2-y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	e := dx + dy
	for {
		t.set(x1, y1, rgba)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x1 += sx
		}
		if e2 <= dx {
			e += dx
			y1 += sy
		}
	}
}

func (t *Terminal) hline(x1, x2, y int, rgba uint32) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		t.set(x, y, rgba)
	}
}

func (t *Terminal) DrawRectangle(x1, y1, x2, y2 int, rgba uint32, filled bool) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if y1 > y2 {
		y1, y2 = y2, y1
	}
	if filled {
		for y := y1; y <= y2; y++ {
			t.hline(x1, x2, y, rgba)
		}
		return
	}
	t.hline(x1, x2, y1, rgba)
	t.hline(x1, x2, y2, rgba)
	t.line(x1, y1, x1, y2, rgba)
	t.line(x2, y1, x2, y2, rgba)
}

func (t *Terminal) DrawCircle(cx, cy, r int, rgba uint32, filled bool) {
	t.DrawOval(cx, cy, r, r, rgba, filled)
}

// DrawOval walks each row of the ellipse and plots its ends, or the span
// between them when filled
func (t *Terminal) DrawOval(cx, cy, rx, ry int, rgba uint32, filled bool) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	rx, ry = abs(rx), abs(ry)
	if ry == 0 {
		t.hline(cx-rx, cx+rx, cy, rgba)
		return
	}

	prev := 0
	for dy := ry; dy >= 0; dy-- {
		f := float64(dy) / float64(ry)
		dx := int(math.Round(float64(rx) * math.Sqrt(1-f*f)))

		for _, y := range []int{cy + dy, cy - dy} {
			if filled {
				t.hline(cx-dx, cx+dx, y, rgba)
				continue
			}
			// join to the previous row so steep edges stay closed
			lo := prev
			if lo > dx {
				lo = dx
			}
			t.hline(cx-dx, cx-lo, y, rgba)
			t.hline(cx+lo, cx+dx, y, rgba)
		}
		prev = dx
	}
}

func (t *Terminal) DrawTriangle(x1, y1, x2, y2, x3, y3 int, rgba uint32, filled bool) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if !filled {
		t.line(x1, y1, x2, y2, rgba)
		t.line(x2, y2, x3, y3, rgba)
		t.line(x3, y3, x1, y1, rgba)
		return
	}

	minX, maxX := min3(x1, x2, x3), max3(x1, x2, x3)
	minY, maxY := min3(y1, y2, y3), max3(y1, y2, y3)
	area := edge(x1, y1, x2, y2, x3, y3)
	if area == 0 {
		t.line(minX, minY, maxX, maxY, rgba)
		return
	}

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			w1 := edge(x2, y2, x3, y3, x, y)
			w2 := edge(x3, y3, x1, y1, x, y)
			w3 := edge(x1, y1, x2, y2, x, y)
			if area < 0 {
				w1, w2, w3 = -w1, -w2, -w3
			}
			if w1 >= 0 && w2 >= 0 && w3 >= 0 {
				t.set(x, y, rgba)
			}
		}
	}
}

// DrawArc steps around the circle one degree at a time
func (t *Terminal) DrawArc(cx, cy, r int, start, end float64, rgba uint32) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	for end < start {
		end += 360
	}
	px, py := arcPoint(cx, cy, r, start)
	for a := start + 1; a < end; a++ {
		x, y := arcPoint(cx, cy, r, a)
		t.line(px, py, x, y, rgba)
		px, py = x, y
	}
	x, y := arcPoint(cx, cy, r, end)
	t.line(px, py, x, y, rgba)
}

func arcPoint(cx, cy, r int, deg float64) (int, int) {
	rad := deg * math.Pi / 180
	return cx + int(math.Round(float64(r)*math.Cos(rad))), cy + int(math.Round(float64(r)*math.Sin(rad)))
}

func edge(ax, ay, bx, by, px, py int) int {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func min3(a, b, c int) int {
	return min(a, min(b, c))
}

func max3(a, b, c int) int {
	return max(a, max(b, c))
}
