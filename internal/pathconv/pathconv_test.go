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
	"math"
	"testing"

	"core2d/internal/domain"
	"core2d/internal/vector"
)

func rectShape(x, y, w, h float64) *domain.RectangleShape {
	return domain.NewRectangle(domain.NewPoint(x, y), domain.NewPoint(x+w, y+h))
}

func inside(t *testing.T, ps *domain.PathShape, x, y float64) bool {
	t.Helper()
	return Contains(Build(ps), ps.Geometry.FillRule, vector.Pt{X: x, Y: y})
}

func TestBoundsOfBoxAndEllipse(t *testing.T) {
	b, ok := Bounds(rectShape(10, 20, 30, 40))
	if !ok || b.X != 10 || b.Y != 20 || b.W != 30 || b.H != 40 {
		t.Fatalf("unexpected rect bounds: %+v", b)
	}
	e := domain.NewEllipse(domain.NewPoint(0, 0), domain.NewPoint(20, 10))
	b, ok = Bounds(e)
	if !ok || math.Abs(b.W-20) > 1e-6 || math.Abs(b.H-10) > 1e-6 {
		t.Fatalf("unexpected ellipse bounds: %+v", b)
	}
	if _, ok := Bounds(domain.NewPoint(1, 1)); ok {
		t.Fatalf("points have no outline")
	}
}

func TestArcShapeStaysInBox(t *testing.T) {
	a := domain.NewArc(domain.NewPoint(0, 0), domain.NewPoint(100, 100), domain.NewPoint(100, 50), domain.NewPoint(50, 100))
	for _, pl := range Flatten(a, 0.1) {
		for _, q := range pl.Points {
			if math.Abs(math.Hypot(q.X-50, q.Y-50)-50) > 0.5 {
				t.Fatalf("arc point off the circle: %+v", q)
			}
			if q.X < 49 || q.Y < 49 {
				t.Fatalf("quarter arc leaves its quadrant: %+v", q)
			}
		}
	}
}

func TestArcSegmentReachesEndPoint(t *testing.T) {
	g := domain.NewPathGeometry(domain.FillEvenOdd)
	f := domain.NewPathFigure(domain.NewPoint(0, 0), false)
	f.Segments = []domain.PathSegment{&domain.ArcSegment{Point: domain.NewPoint(10, 0), RadiusX: 5, RadiusY: 5, SweepDirection: domain.SweepClockwise}}
	g.Figures = []*domain.PathFigure{f}
	b, ok := Bounds(domain.NewPath(g))
	if !ok {
		t.Fatalf("expected bounds")
	}
	if math.Abs(b.W-10) > 1e-6 || math.Abs(b.H-5) > 1e-3 {
		t.Fatalf("half circle bounds: %+v", b)
	}
}

func TestToStrokePathCoversStroke(t *testing.T) {
	line := domain.NewLine(domain.NewPoint(0, 0), domain.NewPoint(10, 0))
	st := domain.NewShapeStyle("s")
	st.Stroke.Thickness = 2
	line.SetStyle(st)
	ps, err := New(0).ToStrokePath(line)
	if err != nil {
		t.Fatalf("stroke: %v", err)
	}
	if !inside(t, ps, 5, 0.5) || inside(t, ps, 5, 2) {
		t.Fatalf("stroke outline should cover exactly the stroke width")
	}
	if ps.Style() != st || !ps.IsFilled || ps.IsStroked {
		t.Fatalf("unexpected result flags or style")
	}
}

func TestUnionAndXor(t *testing.T) {
	a, b := rectShape(0, 0, 10, 10), rectShape(5, 5, 10, 10)
	c := New(0)
	u, err := c.Op([]domain.Shape{a, b}, OpUnion)
	if err != nil {
		t.Fatalf("union: %v", err)
	}
	if !inside(t, u, 2, 2) || !inside(t, u, 12, 12) || !inside(t, u, 7, 7) {
		t.Fatalf("union must cover both rects and the overlap")
	}
	x, err := c.Op([]domain.Shape{a, b}, OpXor)
	if err != nil {
		t.Fatalf("xor: %v", err)
	}
	if !inside(t, x, 2, 2) || inside(t, x, 7, 7) {
		t.Fatalf("xor must exclude the overlap")
	}
}

func TestUnsupportedOps(t *testing.T) {
	_, err := New(0).Op([]domain.Shape{rectShape(0, 0, 1, 1)}, OpIntersect)
	if !errors.Is(err, ErrUnsupportedOp) {
		t.Fatalf("expected ErrUnsupportedOp, got %v", err)
	}
	_, err = New(0).ToPath(domain.NewPoint(0, 0))
	if !errors.Is(err, ErrNoGeometry) {
		t.Fatalf("expected ErrNoGeometry, got %v", err)
	}
}

func TestSimplifyDropsNearlyCollinearPoints(t *testing.T) {
	g := domain.NewPathGeometry(domain.FillEvenOdd)
	f := domain.NewPathFigure(domain.NewPoint(0, 0), false)
	f.Segments = []domain.PathSegment{
		&domain.LineSegment{Point: domain.NewPoint(5, 0.01)},
		&domain.LineSegment{Point: domain.NewPoint(10, 0)},
	}
	g.Figures = []*domain.PathFigure{f}
	ps, err := New(0.25).Simplify(domain.NewPath(g))
	if err != nil {
		t.Fatalf("simplify: %v", err)
	}
	if n := len(ps.Geometry.Figures[0].Segments); n != 1 {
		t.Fatalf("expected 1 segment after simplify, got %d", n)
	}
}

func TestToFillPathClosesFigures(t *testing.T) {
	bz := domain.NewQuadraticBezier(domain.NewPoint(0, 0), domain.NewPoint(5, 10), domain.NewPoint(10, 0))
	ps, err := New(0).ToFillPath(bz)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if !ps.Geometry.Figures[0].IsClosed || !inside(t, ps, 5, 2) {
		t.Fatalf("fill path should close the curve and contain its interior")
	}
}

func TestFromPathKeepsCurves(t *testing.T) {
	c := domain.NewCubicBezier(domain.NewPoint(0, 0), domain.NewPoint(0, 10), domain.NewPoint(10, 10), domain.NewPoint(10, 0))
	ps, err := New(0).ToPath(c)
	if err != nil {
		t.Fatalf("to path: %v", err)
	}
	if _, ok := ps.Geometry.Figures[0].Segments[0].(*domain.CubicBezierSegment); !ok {
		t.Fatalf("expected cubic segment, got %T", ps.Geometry.Figures[0].Segments[0])
	}
	if len(ps.ControlPoints()) != 4 {
		t.Fatalf("expected 4 control points, got %d", len(ps.ControlPoints()))
	}
}
