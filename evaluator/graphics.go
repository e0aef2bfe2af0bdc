package evaluator

import (
	"image"

	"github.com/navionguy/edubasic/ast"
	"github.com/navionguy/edubasic/object"
)

func (rt *Runtime) evalPoint(p *ast.Point) (int, int, error) {
	x, err := rt.evalInt(p.X)
	if err != nil {
		return 0, 0, err
	}
	y, err := rt.evalInt(p.Y)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

// evalPoints evaluates several points into a flat x, y list
func (rt *Runtime) evalPoints(pts ...*ast.Point) ([]int, error) {
	res := make([]int, 0, 2*len(pts))
	for _, p := range pts {
		x, y, err := rt.evalPoint(p)
		if err != nil {
			return nil, err
		}
		res = append(res, x, y)
	}
	return res, nil
}

// evalDrawStatement handles the shape statements, arguments are evaluated
// even with no screen attached so errors still surface
func (rt *Runtime) evalDrawStatement(stmt ast.Statement) error {
	g := rt.env.Graphics()

	switch stmt := stmt.(type) {
	case *ast.PsetStatement:
		p, c, err := rt.shape(stmt.Color, stmt.At)
		if err != nil || g == nil {
			return err
		}
		g.DrawPixel(p[0], p[1], c)

	case *ast.LineStatement:
		p, c, err := rt.shape(stmt.Color, stmt.From, stmt.To)
		if err != nil || g == nil {
			return err
		}
		g.DrawLine(p[0], p[1], p[2], p[3], c)

	case *ast.RectangleStatement:
		p, c, err := rt.shape(stmt.Color, stmt.From, stmt.To)
		if err != nil || g == nil {
			return err
		}
		g.DrawRectangle(p[0], p[1], p[2], p[3], c, stmt.Filled)

	case *ast.OvalStatement:
		p, c, err := rt.shape(stmt.Color, stmt.Center, stmt.Radii)
		if err != nil || g == nil {
			return err
		}
		g.DrawOval(p[0], p[1], p[2], p[3], c, stmt.Filled)

	case *ast.CircleStatement:
		p, c, err := rt.shape(stmt.Color, stmt.Center)
		if err != nil {
			return err
		}
		r, err := rt.evalInt(stmt.Radius)
		if err != nil || g == nil {
			return err
		}
		g.DrawCircle(p[0], p[1], r, c, stmt.Filled)

	case *ast.TriangleStatement:
		p, c, err := rt.shape(stmt.Color, stmt.P1, stmt.P2, stmt.P3)
		if err != nil || g == nil {
			return err
		}
		g.DrawTriangle(p[0], p[1], p[2], p[3], p[4], p[5], c, stmt.Filled)

	case *ast.ArcStatement:
		p, c, err := rt.shape(stmt.Color, stmt.Center)
		if err != nil {
			return err
		}
		r, err := rt.evalInt(stmt.Radius)
		if err != nil {
			return err
		}
		start, err := rt.evalFloat(stmt.Start)
		if err != nil {
			return err
		}
		end, err := rt.evalFloat(stmt.End)
		if err != nil || g == nil {
			return err
		}
		g.DrawArc(p[0], p[1], r, start, end, c)
	}
	return nil
}

func (rt *Runtime) shape(color ast.Expression, pts ...*ast.Point) ([]int, uint32, error) {
	p, err := rt.evalPoints(pts...)
	if err != nil {
		return nil, 0, err
	}
	c, err := rt.evalColor(color)
	if err != nil {
		return nil, 0, err
	}
	return p, c, nil
}

// screen is the pixel buffer seen with BASIC coordinates, y=0 is the
// bottom row
type screen struct {
	buf *image.RGBA
}

func (rt *Runtime) screen() *screen {
	g := rt.env.Graphics()
	if g == nil {
		return nil
	}
	buf := g.GetBuffer()
	if buf == nil {
		return nil
	}
	return &screen{buf: buf}
}

func (s *screen) translate(x, y int) (image.Point, bool) {
	b := s.buf.Bounds()
	pt := image.Pt(b.Min.X+x, b.Min.Y+b.Dy()-1-y)
	return pt, pt.In(b)
}

func (s *screen) at(x, y int) (uint32, bool) {
	pt, ok := s.translate(x, y)
	if !ok {
		return 0, false
	}
	return object.Pack(s.buf.RGBAAt(pt.X, pt.Y)), true
}

func (s *screen) set(x, y int, rgba uint32) {
	if pt, ok := s.translate(x, y); ok {
		s.buf.SetRGBA(pt.X, pt.Y, object.Unpack(rgba))
	}
}

// PAINT floods outward from a point.  With a BORDER it stops at that
// color, otherwise it fills the region sharing the start pixel's color.
func (rt *Runtime) evalPaintStatement(stmt *ast.PaintStatement) error {
	x, y, err := rt.evalPoint(stmt.At)
	if err != nil {
		return err
	}
	fill, err := rt.evalColor(stmt.Color)
	if err != nil {
		return err
	}
	var border uint32
	if stmt.Border != nil {
		if border, err = rt.evalColor(stmt.Border); err != nil {
			return err
		}
	}

	scr := rt.screen()
	if scr == nil {
		return nil
	}
	target, ok := scr.at(x, y)
	if !ok {
		return nil
	}

	paintable := func(c uint32) bool {
		if stmt.Border != nil {
			return c != border && c != fill
		}
		return c == target
	}
	if stmt.Border == nil && target == fill {
		return nil
	}

	stack := []image.Point{{X: x, Y: y}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		c, ok := scr.at(p.X, p.Y)
		if !ok || !paintable(c) {
			continue
		}
		scr.set(p.X, p.Y, fill)
		stack = append(stack,
			image.Pt(p.X+1, p.Y), image.Pt(p.X-1, p.Y),
			image.Pt(p.X, p.Y+1), image.Pt(p.X, p.Y-1))
	}
	return nil
}

// GET copies a screen region into a two dimensional integer array, row 0
// of the array is the top of the region and both bounds start at 0
func (rt *Runtime) evalGetStatement(stmt *ast.GetStatement) error {
	p, err := rt.evalPoints(stmt.From, stmt.To)
	if err != nil {
		return err
	}
	scr := rt.screen()
	if scr == nil {
		return nil
	}

	x1, x2 := order(p[0], p[2])
	y1, y2 := order(p[1], p[3])
	w, h := x2-x1+1, y2-y1+1

	arr, err := object.NewArray(ast.IntegerVar, []object.Dimension{{Lower: 0, Length: h}, {Lower: 0, Length: w}})
	if err != nil {
		return err
	}
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			px, _ := scr.at(x1+c, y2-r)
			arr.Elements[r*w+c] = &object.Integer{Value: int64(px)}
		}
	}
	return assignVariable(stmt.Array, arr, rt.env)
}

// PUT draws an array saved by GET with its lower left corner at (x, y)
func (rt *Runtime) evalPutStatement(stmt *ast.PutStatement) error {
	x, y, err := rt.evalPoint(stmt.At)
	if err != nil {
		return err
	}
	arr, ok := evalIdentifier(stmt.Array, rt.env).(*object.Array)
	if !ok || len(arr.Dims) != 2 {
		return typeMismatch()
	}
	scr := rt.screen()
	if scr == nil {
		return nil
	}

	h, w := arr.Dims[0].Length, arr.Dims[1].Length
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			px, ok := object.ToInt(arr.Elements[r*arr.Dims[0].Stride+c*arr.Dims[1].Stride])
			if !ok {
				return typeMismatch()
			}
			scr.set(x+c, y+h-1-r, uint32(px))
		}
	}
	return nil
}

func order(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}
