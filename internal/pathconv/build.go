/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package pathconv

// Shape outlines are built as gg paths. Curves are kept as curves until a
// caller asks for a flattened polyline.

import (
	"math"

	"github.com/gogpu/gg"

	"core2d/internal/domain"
)

// Build returns the outline of s, or nil for shapes without an area or
// stroke (points and empty groups).
func Build(s domain.Shape) *gg.Path {
	p := gg.NewPath()
	appendShape(p, s)
	if len(p.Elements()) == 0 {
		return nil
	}
	return p
}

func appendShape(p *gg.Path, s domain.Shape) {
	switch v := s.(type) {
	case *domain.PointShape:
	case *domain.LineShape:
		p.MoveTo(v.Start.X, v.Start.Y)
		p.LineTo(v.End.X, v.End.Y)
	case *domain.RectangleShape:
		box(p, v.TopLeft, v.BottomRight)
	case *domain.TextShape:
		box(p, v.TopLeft, v.BottomRight)
	case *domain.ImageShape:
		box(p, v.TopLeft, v.BottomRight)
	case *domain.EllipseShape:
		x, y, w, h := rect(v.TopLeft, v.BottomRight)
		if w == 0 && h == 0 {
			return
		}
		p.Ellipse(x+w/2, y+h/2, w/2, h/2)
	case *domain.ArcShape:
		appendArc(p, v)
	case *domain.CubicBezierShape:
		p.MoveTo(v.Point1.X, v.Point1.Y)
		p.CubicTo(v.Point2.X, v.Point2.Y, v.Point3.X, v.Point3.Y, v.Point4.X, v.Point4.Y)
	case *domain.QuadraticBezierShape:
		p.MoveTo(v.Point1.X, v.Point1.Y)
		p.QuadraticTo(v.Point2.X, v.Point2.Y, v.Point3.X, v.Point3.Y)
	case *domain.PathShape:
		if v.Geometry != nil {
			appendGeometry(p, v.Geometry)
		}
	case *domain.GroupShape:
		for _, c := range v.Shapes {
			appendShape(p, c)
		}
	}
}

func rect(tl, br *domain.PointShape) (x, y, w, h float64) {
	x, y = math.Min(tl.X, br.X), math.Min(tl.Y, br.Y)
	return x, y, math.Abs(br.X - tl.X), math.Abs(br.Y - tl.Y)
}

func box(p *gg.Path, tl, br *domain.PointShape) {
	x, y, w, h := rect(tl, br)
	p.Rectangle(x, y, w, h)
}

// appendArc adds the elliptical arc inscribed in Point1-Point2, from the
// ray through Point3 to the ray through Point4.
func appendArc(p *gg.Path, a *domain.ArcShape) {
	x, y, w, h := rect(a.Point1, a.Point2)
	if w == 0 || h == 0 {
		return
	}
	rx, ry := w/2, h/2
	cx, cy := x+rx, y+ry
	start := math.Atan2((a.Point3.Y-cy)/ry, (a.Point3.X-cx)/rx)
	end := math.Atan2((a.Point4.Y-cy)/ry, (a.Point4.X-cx)/rx)
	if end == start {
		end += 2 * math.Pi
	}
	unit := gg.NewPath()
	unit.Arc(0, 0, 1, start, end)
	appendPath(p, unit.Transform(gg.Translate(cx, cy).Multiply(gg.Scale(rx, ry))))
}

func appendPath(dst, src *gg.Path) {
	for _, e := range src.Elements() {
		appendElement(dst, e)
	}
}

func appendElement(dst *gg.Path, e gg.PathElement) {
	switch v := e.(type) {
	case gg.MoveTo:
		dst.MoveTo(v.Point.X, v.Point.Y)
	case gg.LineTo:
		dst.LineTo(v.Point.X, v.Point.Y)
	case gg.QuadTo:
		dst.QuadraticTo(v.Control.X, v.Control.Y, v.Point.X, v.Point.Y)
	case gg.CubicTo:
		dst.CubicTo(v.Control1.X, v.Control1.Y, v.Control2.X, v.Control2.Y, v.Point.X, v.Point.Y)
	case gg.Close:
		dst.Close()
	}
}

func appendGeometry(p *gg.Path, g *domain.PathGeometry) {
	for _, f := range g.Figures {
		if f.StartPoint == nil {
			continue
		}
		cur := gg.Pt(f.StartPoint.X, f.StartPoint.Y)
		p.MoveTo(cur.X, cur.Y)
		for _, s := range f.Segments {
			switch v := s.(type) {
			case *domain.LineSegment:
				p.LineTo(v.Point.X, v.Point.Y)
			case *domain.QuadraticBezierSegment:
				p.QuadraticTo(v.Point1.X, v.Point1.Y, v.Point2.X, v.Point2.Y)
			case *domain.CubicBezierSegment:
				p.CubicTo(v.Point1.X, v.Point1.Y, v.Point2.X, v.Point2.Y, v.Point3.X, v.Point3.Y)
			case *domain.ArcSegment:
				appendArcSegment(p, cur, v)
			}
			pts := s.Points()
			last := pts[len(pts)-1]
			cur = gg.Pt(last.X, last.Y)
		}
		if f.IsClosed {
			p.Close()
		}
	}
}

// appendArcSegment converts an endpoint-parameterized elliptical arc into
// cubic curves using the center parameterization.
func appendArcSegment(p *gg.Path, from gg.Point, a *domain.ArcSegment) {
	to := gg.Pt(a.Point.X, a.Point.Y)
	rx, ry := math.Abs(a.RadiusX), math.Abs(a.RadiusY)
	if rx == 0 || ry == 0 || from == to {
		p.LineTo(to.X, to.Y)
		return
	}
	phi := a.RotationAngle * math.Pi / 180
	cosPhi, sinPhi := math.Cos(phi), math.Sin(phi)
	dx, dy := (from.X-to.X)/2, (from.Y-to.Y)/2
	x1 := cosPhi*dx + sinPhi*dy
	y1 := -sinPhi*dx + cosPhi*dy

	// Scale radii up when the end point is out of reach.
	if l := x1*x1/(rx*rx) + y1*y1/(ry*ry); l > 1 {
		s := math.Sqrt(l)
		rx, ry = rx*s, ry*s
	}

	num := rx*rx*ry*ry - rx*rx*y1*y1 - ry*ry*x1*x1
	den := rx*rx*y1*y1 + ry*ry*x1*x1
	coef := 0.0
	if den != 0 && num > 0 {
		coef = math.Sqrt(num / den)
	}
	if a.IsLargeArc == (a.SweepDirection == domain.SweepClockwise) {
		coef = -coef
	}
	cx1 := coef * rx * y1 / ry
	cy1 := -coef * ry * x1 / rx
	cx := cosPhi*cx1 - sinPhi*cy1 + (from.X+to.X)/2
	cy := sinPhi*cx1 + cosPhi*cy1 + (from.Y+to.Y)/2

	theta1 := math.Atan2((y1-cy1)/ry, (x1-cx1)/rx)
	dtheta := math.Atan2((-y1-cy1)/ry, (-x1-cx1)/rx) - theta1
	if a.SweepDirection == domain.SweepClockwise && dtheta < 0 {
		dtheta += 2 * math.Pi
	} else if a.SweepDirection == domain.SweepCounterclockwise && dtheta > 0 {
		dtheta -= 2 * math.Pi
	}

	n := int(math.Ceil(math.Abs(dtheta) / (math.Pi / 2)))
	step := dtheta / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)
	m := gg.Translate(cx, cy).Multiply(gg.Rotate(phi)).Multiply(gg.Scale(rx, ry))
	t := theta1
	for i := 0; i < n; i++ {
		c1, s1 := math.Cos(t), math.Sin(t)
		c2, s2 := math.Cos(t+step), math.Sin(t+step)
		q1 := m.TransformPoint(gg.Pt(c1-k*s1, s1+k*c1))
		q2 := m.TransformPoint(gg.Pt(c2+k*s2, s2-k*c2))
		q3 := m.TransformPoint(gg.Pt(c2, s2))
		if i == n-1 {
			q3 = to
		}
		p.CubicTo(q1.X, q1.Y, q2.X, q2.Y, q3.X, q3.Y)
		t += step
	}
}
