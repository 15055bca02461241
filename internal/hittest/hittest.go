/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package hittest

// Spatial queries over shape sequences. Sequences are in paint order, so
// point and shape queries walk them back to front and the front-most hit wins.
// Radii are given in screen units and divided by the view scale.

import (
	"math"

	"core2d/internal/domain"
	"core2d/internal/pathconv"
	"core2d/internal/vector"
)

// Tolerance is the flattening tolerance for curved outlines.
var Tolerance = pathconv.DefaultTolerance

func effective(radius, scale float64) float64 {
	if scale <= 0 {
		scale = 1
	}
	return radius / scale
}

func visible(s domain.Shape) bool { return s.State().Has(domain.StateVisible) }

func pt(p *domain.PointShape) vector.Pt { return vector.Pt{X: p.X, Y: p.Y} }

// TryToGetPoint returns the front-most point within radius of p: point
// shapes themselves, control points of other shapes and group connectors.
func TryToGetPoint(shapes []domain.Shape, p vector.Pt, radius, scale float64) *domain.PointShape {
	r := effective(radius, scale)
	for i := len(shapes) - 1; i >= 0; i-- {
		s := shapes[i]
		if !visible(s) {
			continue
		}
		var candidates []*domain.PointShape
		if g, ok := s.(*domain.GroupShape); ok {
			candidates = g.Connectors
		} else {
			candidates = s.ControlPoints()
		}
		for _, c := range candidates {
			if c != nil && pt(c).DistanceTo(p) <= r {
				return c
			}
		}
	}
	return nil
}

// TryToGetShape returns the front-most non-point shape that contains p or
// lies within radius of it.
func TryToGetShape(shapes []domain.Shape, p vector.Pt, radius, scale float64) domain.Shape {
	r := effective(radius, scale)
	for i := len(shapes) - 1; i >= 0; i-- {
		s := shapes[i]
		if _, isPoint := s.(*domain.PointShape); isPoint || !visible(s) {
			continue
		}
		if contains(s, p, r) {
			return s
		}
	}
	return nil
}

// TryToGetShapes returns every visible shape whose bounds, grown by radius,
// intersect rect. The result keeps paint order.
func TryToGetShapes(shapes []domain.Shape, rect vector.Rect, radius, scale float64) []domain.Shape {
	r := effective(radius, scale)
	var out []domain.Shape
	seen := make(map[domain.Shape]struct{})
	for _, s := range shapes {
		if !visible(s) {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		if Overlaps(s, rect, r) {
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

// Contains reports whether s contains p or lies within radius of it.
func Contains(s domain.Shape, p vector.Pt, radius, scale float64) bool {
	if s == nil || !visible(s) {
		return false
	}
	return contains(s, p, effective(radius, scale))
}

// Overlaps reports whether the bounds of s, grown by r, intersect rect.
func Overlaps(s domain.Shape, rect vector.Rect, r float64) bool {
	b, ok := Bounds(s)
	if !ok {
		return false
	}
	return b.Inset(-r, -r).Intersects(rect)
}

func contains(s domain.Shape, p vector.Pt, r float64) bool {
	switch v := s.(type) {
	case *domain.PointShape:
		return pt(v).DistanceTo(p) <= r
	case *domain.LineShape:
		return vector.DistanceToSegment(p, pt(v.Start), pt(v.End)) <= r
	case *domain.RectangleShape:
		return inBox(v.TopLeft, v.BottomRight, p, r)
	case *domain.TextShape:
		return inBox(v.TopLeft, v.BottomRight, p, r)
	case *domain.ImageShape:
		return inBox(v.TopLeft, v.BottomRight, p, r)
	case *domain.EllipseShape:
		return inEllipse(v.TopLeft, v.BottomRight, p, r)
	case *domain.CubicBezierShape:
		return inPolygon([]vector.Pt{pt(v.Point1), pt(v.Point2), pt(v.Point3), pt(v.Point4)}, p, r)
	case *domain.QuadraticBezierShape:
		return inPolygon([]vector.Pt{pt(v.Point1), pt(v.Point2), pt(v.Point3)}, p, r)
	case *domain.ArcShape:
		return nearOutline(s, p, r, v.IsFilled)
	case *domain.PathShape:
		return nearOutline(s, p, r, v.IsFilled)
	case *domain.GroupShape:
		for i := len(v.Shapes) - 1; i >= 0; i-- {
			if c := v.Shapes[i]; visible(c) && contains(c, p, r) {
				return true
			}
		}
	}
	return false
}

func inBox(tl, br *domain.PointShape, p vector.Pt, r float64) bool {
	return vector.FromPoints(pt(tl), pt(br)).Inset(-r, -r).Contains(p)
}

func inEllipse(tl, br *domain.PointShape, p vector.Pt, r float64) bool {
	b := vector.FromPoints(pt(tl), pt(br))
	rx, ry := b.W/2+r, b.H/2+r
	if rx <= 0 || ry <= 0 {
		return false
	}
	c := b.Center()
	dx, dy := (p.X-c.X)/rx, (p.Y-c.Y)/ry
	return dx*dx+dy*dy <= 1
}

// inPolygon tests against the control polygon of a curve.
func inPolygon(poly []vector.Pt, p vector.Pt, r float64) bool {
	return vector.PointInPolygon(p, poly) || vector.DistanceToPolyline(p, poly, true) <= r
}

func nearOutline(s domain.Shape, p vector.Pt, r float64, filled bool) bool {
	outline := pathconv.Build(s)
	if outline == nil {
		return false
	}
	if filled && pathconv.Contains(outline, pathconv.FillRuleOf(s), p) {
		return true
	}
	for _, pl := range pathconv.FlattenPath(outline, Tolerance) {
		if vector.DistanceToPolyline(p, pl.Points, pl.Closed) <= r {
			return true
		}
	}
	return false
}

// Bounds returns the axis-aligned bounds of s. Points have empty bounds at
// their location.
func Bounds(s domain.Shape) (vector.Rect, bool) {
	switch v := s.(type) {
	case *domain.PointShape:
		return vector.Rect{X: v.X, Y: v.Y}, true
	case *domain.GroupShape:
		var (
			out vector.Rect
			found bool
		)
		add := func(b vector.Rect) {
			if !found {
				out, found = b, true
				return
			}
			out = out.Union(b)
		}
		for _, c := range v.Shapes {
			if b, ok := Bounds(c); ok {
				add(b)
			}
		}
		for _, c := range v.Connectors {
			add(vector.Rect{X: c.X, Y: c.Y})
		}
		return out, found
	case *domain.CubicBezierShape, *domain.QuadraticBezierShape:
		return pointBounds(s.ControlPoints())
	}
	return pathconv.Bounds(s)
}

func pointBounds(points []*domain.PointShape) (vector.Rect, bool) {
	if len(points) == 0 {
		return vector.Rect{}, false
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX, minY = math.Min(minX, p.X), math.Min(minY, p.Y)
		maxX, maxY = math.Max(maxX, p.X), math.Max(maxY, p.Y)
	}
	return vector.Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}, true
}
