/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package hittest

import (
	"testing"

	"core2d/internal/domain"
	"core2d/internal/vector"
)

func line(x1, y1, x2, y2 float64) *domain.LineShape {
	return domain.NewLine(domain.NewPoint(x1, y1), domain.NewPoint(x2, y2))
}

func rect(x, y, w, h float64) *domain.RectangleShape {
	return domain.NewRectangle(domain.NewPoint(x, y), domain.NewPoint(x+w, y+h))
}

func TestTryToGetShapeFrontMostWins(t *testing.T) {
	back := rect(0, 0, 100, 100)
	front := rect(50, 50, 100, 100)
	shapes := []domain.Shape{back, front}
	if got := TryToGetShape(shapes, vector.P(75, 75), 7, 1); got != front {
		t.Fatalf("expected front rect, got %v", got)
	}
	if got := TryToGetShape(shapes, vector.P(10, 10), 7, 1); got != back {
		t.Fatalf("expected back rect, got %v", got)
	}
	if got := TryToGetShape(shapes, vector.P(500, 500), 7, 1); got != nil {
		t.Fatalf("expected miss, got %v", got)
	}
}

func TestTryToGetShapeSkipsPointsAndInvisible(t *testing.T) {
	p := domain.NewPoint(5, 5)
	r := rect(0, 0, 10, 10)
	r.SetState(r.State().Without(domain.StateVisible))
	if got := TryToGetShape([]domain.Shape{r, p}, vector.P(5, 5), 7, 1); got != nil {
		t.Fatalf("points and invisible shapes must be skipped, got %v", got)
	}
}

func TestRadiusIsScaleCompensated(t *testing.T) {
	l := line(0, 0, 100, 0)
	shapes := []domain.Shape{l}
	if TryToGetShape(shapes, vector.P(50, 6), 7, 1) != l {
		t.Fatalf("expected hit at scale 1")
	}
	if TryToGetShape(shapes, vector.P(50, 6), 7, 2) != nil {
		t.Fatalf("radius should shrink when zoomed in")
	}
	if TryToGetShape(shapes, vector.P(50, 6), 7, 0) != l {
		t.Fatalf("non-positive scale should be treated as 1")
	}
}

func TestTryToGetPoint(t *testing.T) {
	l := line(0, 0, 100, 0)
	standalone := domain.NewPoint(100, 2)
	shapes := []domain.Shape{l, standalone}
	if got := TryToGetPoint(shapes, vector.P(99, 1), 7, 1); got != standalone {
		t.Fatalf("front-most point should win, got %+v", got)
	}
	if got := TryToGetPoint(shapes, vector.P(1, 1), 7, 1); got != l.Start {
		t.Fatalf("expected line start, got %+v", got)
	}
	if got := TryToGetPoint(shapes, vector.P(50, 0), 7, 1); got != nil {
		t.Fatalf("mid-line is not a point, got %+v", got)
	}
}

func TestTryToGetPointUsesGroupConnectors(t *testing.T) {
	g := domain.NewGroup("g")
	g.AddShape(line(0, 0, 10, 0))
	c := domain.NewPoint(20, 20)
	g.AddConnector(c)
	shapes := []domain.Shape{g}
	if TryToGetPoint(shapes, vector.P(0, 0), 3, 1) != nil {
		t.Fatalf("group children points are not pickable")
	}
	if TryToGetPoint(shapes, vector.P(21, 20), 3, 1) != c {
		t.Fatalf("expected connector")
	}
}

func TestEllipseAndBezier(t *testing.T) {
	e := domain.NewEllipse(domain.NewPoint(0, 0), domain.NewPoint(100, 50))
	if !Contains(e, vector.P(50, 25), 0, 1) || Contains(e, vector.P(2, 2), 0, 1) {
		t.Fatalf("ellipse membership wrong")
	}
	q := domain.NewQuadraticBezier(domain.NewPoint(0, 0), domain.NewPoint(50, 100), domain.NewPoint(100, 0))
	if !Contains(q, vector.P(50, 40), 0, 1) || Contains(q, vector.P(50, -20), 0, 1) {
		t.Fatalf("control polygon membership wrong")
	}
}

func TestPathAndArcOutline(t *testing.T) {
	g := domain.NewPathGeometry(domain.FillEvenOdd)
	outer := domain.NewPathFigure(domain.NewPoint(0, 0), true)
	outer.Segments = []domain.PathSegment{
		&domain.LineSegment{Point: domain.NewPoint(100, 0)},
		&domain.LineSegment{Point: domain.NewPoint(100, 100)},
		&domain.LineSegment{Point: domain.NewPoint(0, 100)},
	}
	inner := domain.NewPathFigure(domain.NewPoint(25, 25), true)
	inner.Segments = []domain.PathSegment{
		&domain.LineSegment{Point: domain.NewPoint(75, 25)},
		&domain.LineSegment{Point: domain.NewPoint(75, 75)},
		&domain.LineSegment{Point: domain.NewPoint(25, 75)},
	}
	g.Figures = []*domain.PathFigure{outer, inner}
	p := domain.NewPath(g)
	p.IsFilled = true
	if !Contains(p, vector.P(10, 10), 1, 1) {
		t.Fatalf("filled ring should contain its body")
	}
	if Contains(p, vector.P(50, 50), 1, 1) {
		t.Fatalf("even-odd hole should not be hit")
	}
	if !Contains(p, vector.P(50, 26), 2, 1) {
		t.Fatalf("inner edge should be hit within radius")
	}

	a := domain.NewArc(domain.NewPoint(0, 0), domain.NewPoint(100, 100), domain.NewPoint(100, 50), domain.NewPoint(50, 100))
	if !Contains(a, vector.P(50+35.36, 50+35.36), 1, 1) {
		t.Fatalf("arc stroke should be hit")
	}
	if Contains(a, vector.P(50, 50), 1, 1) {
		t.Fatalf("unfilled arc center must miss")
	}
}

func TestGroupContainsChildren(t *testing.T) {
	g := domain.NewGroup("g")
	g.AddShape(rect(0, 0, 10, 10))
	g.AddShape(rect(50, 50, 10, 10))
	if !Contains(g, vector.P(55, 55), 0, 1) || Contains(g, vector.P(30, 30), 0, 1) {
		t.Fatalf("group containment should follow its children")
	}
	b, ok := Bounds(g)
	if !ok || b.X != 0 || b.W != 60 || b.H != 60 {
		t.Fatalf("unexpected group bounds: %+v", b)
	}
}

func TestTryToGetShapesKeepsPaintOrder(t *testing.T) {
	a := rect(0, 0, 10, 10)
	b := line(20, 20, 30, 30)
	c := rect(100, 100, 10, 10)
	p := domain.NewPoint(5, 25)
	got := TryToGetShapes([]domain.Shape{a, b, c, p, a}, vector.R(0, 0, 40, 40), 0, 1)
	if len(got) != 3 || got[0] != a || got[1] != b || got[2] != p {
		t.Fatalf("unexpected marquee result: %v", got)
	}
}
