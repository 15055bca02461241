/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package pathconv

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/gg"

	"core2d/internal/domain"
	"core2d/internal/vector"
)

var (
	ErrUnsupportedOp = errors.New("pathconv: unsupported path operation")
	ErrNoGeometry    = errors.New("pathconv: shape has no outline")
)

// Op is a boolean combination of several outlines.
type Op int

const (
	OpUnion Op = iota
	OpXor
	OpIntersect
	OpDifference
)

func (o Op) String() string {
	switch o {
	case OpUnion:
		return "union"
	case OpXor:
		return "xor"
	case OpIntersect:
		return "intersect"
	case OpDifference:
		return "difference"
	}
	return fmt.Sprintf("op(%d)", int(o))
}

// maxMiter limits how far a stroke corner may extend, in half widths.
const maxMiter = 4

// Converter turns shapes into path shapes. Results share the source style.
type Converter struct {
	tolerance float64
}

func New(tolerance float64) *Converter {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &Converter{tolerance: tolerance}
}

// ToPath keeps the outline of s, curves included.
func (c *Converter) ToPath(s domain.Shape) (*domain.PathShape, error) {
	p := Build(s)
	if p == nil {
		return nil, fmt.Errorf("to path %s: %w", s.Kind(), ErrNoGeometry)
	}
	rule := domain.FillEvenOdd
	if ps, ok := s.(*domain.PathShape); ok && ps.Geometry != nil {
		rule = ps.Geometry.FillRule
	}
	return c.result(s, FromPath(p, rule), true, isFilled(s)), nil
}

// ToFillPath closes every subpath of the outline and fills it.
func (c *Converter) ToFillPath(s domain.Shape) (*domain.PathShape, error) {
	p := Build(s)
	if p == nil {
		return nil, fmt.Errorf("to fill path %s: %w", s.Kind(), ErrNoGeometry)
	}
	g := FromPath(p, domain.FillEvenOdd)
	for _, f := range g.Figures {
		f.IsClosed = true
		f.IsFilled = true
	}
	return c.result(s, g, false, true), nil
}

// ToWindingPath fills the outline with the non-zero rule.
func (c *Converter) ToWindingPath(s domain.Shape) (*domain.PathShape, error) {
	p := Build(s)
	if p == nil {
		return nil, fmt.Errorf("to winding path %s: %w", s.Kind(), ErrNoGeometry)
	}
	return c.result(s, FromPath(p, domain.FillNonZero), isStroked(s), true), nil
}

// ToStrokePath returns the area covered by the stroke of s.
func (c *Converter) ToStrokePath(s domain.Shape) (*domain.PathShape, error) {
	lines := Flatten(s, c.tolerance)
	if len(lines) == 0 {
		return nil, fmt.Errorf("to stroke path %s: %w", s.Kind(), ErrNoGeometry)
	}
	width := 1.0
	if st := s.Style(); st != nil && st.Stroke != nil && st.Stroke.Thickness > 0 {
		width = st.Stroke.Thickness
	}
	g := domain.NewPathGeometry(domain.FillNonZero)
	var figures []*domain.PathFigure
	for _, pl := range lines {
		figures = append(figures, strokeOutline(pl, width/2)...)
	}
	g.Figures = figures
	return c.result(s, g, false, true), nil
}

// Simplify flattens the outline and drops points closer than the tolerance
// to the simplified line.
func (c *Converter) Simplify(s domain.Shape) (*domain.PathShape, error) {
	lines := Flatten(s, c.tolerance)
	if len(lines) == 0 {
		return nil, fmt.Errorf("simplify %s: %w", s.Kind(), ErrNoGeometry)
	}
	g := domain.NewPathGeometry(FillRuleOf(s))
	for _, pl := range lines {
		pts := dedupe(pl.Points, pl.Closed)
		pts = rdp(pts, c.tolerance)
		g.Figures = append(g.Figures, polygonFigure(pts, pl.Closed))
	}
	return c.result(s, g, isStroked(s), isFilled(s)), nil
}

// Op combines the outlines of shapes into one path.
func (c *Converter) Op(shapes []domain.Shape, op Op) (*domain.PathShape, error) {
	if len(shapes) == 0 {
		return nil, fmt.Errorf("path %s: %w", op, ErrNoGeometry)
	}
	var rule domain.FillRule
	switch op {
	case OpUnion:
		rule = domain.FillNonZero
	case OpXor:
		rule = domain.FillEvenOdd
	default:
		return nil, fmt.Errorf("path %s: %w", op, ErrUnsupportedOp)
	}
	out := gg.NewPath()
	for _, s := range shapes {
		p := Build(s)
		if p == nil {
			continue
		}
		subs, closed := Subpaths(p)
		for i, sp := range subs {
			if op == OpUnion && closed[i] && sp.Area() < 0 {
				sp = sp.Reversed()
			}
			appendPath(out, sp)
		}
	}
	if len(out.Elements()) == 0 {
		return nil, fmt.Errorf("path %s: %w", op, ErrNoGeometry)
	}
	return c.result(shapes[0], FromPath(out, rule), isStroked(shapes[0]), true), nil
}

func (c *Converter) result(src domain.Shape, g *domain.PathGeometry, stroked, filled bool) *domain.PathShape {
	ps := domain.NewPath(g)
	ps.SetStyle(src.Style())
	ps.SetName(src.Name())
	ps.IsStroked = stroked
	ps.IsFilled = filled
	return ps
}

func isStroked(s domain.Shape) bool {
	switch v := s.(type) {
	case *domain.PathShape:
		return v.IsStroked
	case *domain.RectangleShape:
		return v.IsStroked
	case *domain.EllipseShape:
		return v.IsStroked
	case *domain.ArcShape:
		return v.IsStroked
	case *domain.CubicBezierShape:
		return v.IsStroked
	case *domain.QuadraticBezierShape:
		return v.IsStroked
	}
	return true
}

func isFilled(s domain.Shape) bool {
	switch v := s.(type) {
	case *domain.PathShape:
		return v.IsFilled
	case *domain.RectangleShape:
		return v.IsFilled
	case *domain.EllipseShape:
		return v.IsFilled
	case *domain.ArcShape:
		return v.IsFilled
	case *domain.CubicBezierShape:
		return v.IsFilled
	case *domain.QuadraticBezierShape:
		return v.IsFilled
	}
	return false
}

// FromPath converts a gg path into path geometry with fresh points.
func FromPath(p *gg.Path, rule domain.FillRule) *domain.PathGeometry {
	g := domain.NewPathGeometry(rule)
	var fig *domain.PathFigure
	pt := func(q gg.Point) *domain.PointShape { return domain.NewPoint(q.X, q.Y) }
	for _, e := range p.Elements() {
		switch v := e.(type) {
		case gg.MoveTo:
			fig = domain.NewPathFigure(pt(v.Point), false)
			g.Figures = append(g.Figures, fig)
		case gg.LineTo:
			if fig == nil {
				continue
			}
			fig.Segments = append(fig.Segments, &domain.LineSegment{Point: pt(v.Point)})
		case gg.QuadTo:
			if fig == nil {
				continue
			}
			fig.Segments = append(fig.Segments, &domain.QuadraticBezierSegment{Point1: pt(v.Control), Point2: pt(v.Point)})
		case gg.CubicTo:
			if fig == nil {
				continue
			}
			fig.Segments = append(fig.Segments, &domain.CubicBezierSegment{
				Point1: pt(v.Control1), Point2: pt(v.Control2), Point3: pt(v.Point),
			})
		case gg.Close:
			if fig != nil {
				fig.IsClosed = true
			}
		}
	}
	return g
}

func polygonFigure(pts []vector.Pt, closed bool) *domain.PathFigure {
	f := domain.NewPathFigure(domain.NewPoint(pts[0].X, pts[0].Y), closed)
	for _, q := range pts[1:] {
		f.Segments = append(f.Segments, &domain.LineSegment{Point: domain.NewPoint(q.X, q.Y)})
	}
	return f
}

// dedupe drops repeated consecutive points and, for closed lines, a
// trailing copy of the first point.
func dedupe(pts []vector.Pt, closed bool) []vector.Pt {
	out := make([]vector.Pt, 0, len(pts))
	for _, q := range pts {
		if len(out) > 0 && out[len(out)-1] == q {
			continue
		}
		out = append(out, q)
	}
	if closed && len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return out
}

// rdp is the Ramer-Douglas-Peucker polyline simplification.
func rdp(pts []vector.Pt, eps float64) []vector.Pt {
	if len(pts) < 3 {
		return pts
	}
	first, last := pts[0], pts[len(pts)-1]
	idx, dmax := 0, 0.0
	for i := 1; i < len(pts)-1; i++ {
		if d := vector.DistanceToSegment(pts[i], first, last); d > dmax {
			idx, dmax = i, d
		}
	}
	if dmax <= eps {
		return []vector.Pt{first, last}
	}
	left := rdp(pts[:idx+1], eps)
	right := rdp(pts[idx:], eps)
	return append(left[:len(left)-1:len(left)-1], right...)
}

// strokeOutline offsets a polyline by h to both sides. Open lines give one
// closed figure with butt caps; closed lines give an outer and a reversed
// inner ring.
func strokeOutline(pl Polyline, h float64) []*domain.PathFigure {
	pts := dedupe(pl.Points, pl.Closed)
	if len(pts) < 2 {
		if len(pts) == 1 {
			q := pts[0]
			sq := []vector.Pt{{X: q.X - h, Y: q.Y - h}, {X: q.X + h, Y: q.Y - h}, {X: q.X + h, Y: q.Y + h}, {X: q.X - h, Y: q.Y + h}}
			return []*domain.PathFigure{polygonFigure(sq, true)}
		}
		return nil
	}
	left := offset(pts, h, pl.Closed)
	right := offset(pts, -h, pl.Closed)
	reverse(right)
	if pl.Closed {
		return []*domain.PathFigure{polygonFigure(left, true), polygonFigure(right, true)}
	}
	return []*domain.PathFigure{polygonFigure(append(left, right...), true)}
}

func offset(pts []vector.Pt, h float64, closed bool) []vector.Pt {
	n := len(pts)
	out := make([]vector.Pt, n)
	for i := range pts {
		var prev, next vector.Pt
		hasPrev, hasNext := i > 0 || closed, i < n-1 || closed
		if hasPrev {
			prev = normal(pts[(i-1+n)%n], pts[i])
		}
		if hasNext {
			next = normal(pts[i], pts[(i+1)%n])
		}
		var nv vector.Pt
		switch {
		case hasPrev && hasNext:
			nv = miter(prev, next)
		case hasPrev:
			nv = prev
		default:
			nv = next
		}
		out[i] = vector.Pt{X: pts[i].X + nv.X*h, Y: pts[i].Y + nv.Y*h}
	}
	return out
}

func normal(a, b vector.Pt) vector.Pt {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return vector.Pt{}
	}
	return vector.Pt{X: -dy / l, Y: dx / l}
}

func miter(a, b vector.Pt) vector.Pt {
	m := vector.Pt{X: a.X + b.X, Y: a.Y + b.Y}
	l := math.Hypot(m.X, m.Y)
	if l == 0 {
		return a
	}
	m = vector.Pt{X: m.X / l, Y: m.Y / l}
	cos := math.Max(m.X*a.X+m.Y*a.Y, 1.0/maxMiter)
	return vector.Pt{X: m.X / cos, Y: m.Y / cos}
}

func reverse(pts []vector.Pt) {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}
