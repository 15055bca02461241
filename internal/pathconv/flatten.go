/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package pathconv

import (
	"github.com/gogpu/gg"

	"core2d/internal/domain"
	"core2d/internal/vector"
)

// DefaultTolerance is the flattening tolerance in document units.
const DefaultTolerance = 0.25

// Polyline is one flattened subpath.
type Polyline struct {
	Points []vector.Pt
	Closed bool
}

// Subpaths splits p at every MoveTo. The second result reports which
// subpaths end with Close.
func Subpaths(p *gg.Path) ([]*gg.Path, []bool) {
	var (
		out    []*gg.Path
		closed []bool
		cur    *gg.Path
	)
	for _, e := range p.Elements() {
		if _, ok := e.(gg.MoveTo); ok || cur == nil {
			cur = gg.NewPath()
			out = append(out, cur)
			closed = append(closed, false)
		}
		if _, ok := e.(gg.Close); ok {
			closed[len(closed)-1] = true
		}
		appendElement(cur, e)
	}
	return out, closed
}

// FlattenPath flattens every subpath of p.
func FlattenPath(p *gg.Path, tolerance float64) []Polyline {
	if p == nil {
		return nil
	}
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	subs, closed := Subpaths(p)
	out := make([]Polyline, 0, len(subs))
	for i, sp := range subs {
		pts := sp.Flatten(tolerance)
		if len(pts) == 0 {
			continue
		}
		pl := Polyline{Points: make([]vector.Pt, len(pts)), Closed: closed[i]}
		for j, q := range pts {
			pl.Points[j] = vector.Pt{X: q.X, Y: q.Y}
		}
		out = append(out, pl)
	}
	return out
}

// Flatten returns the flattened outline of s.
func Flatten(s domain.Shape, tolerance float64) []Polyline {
	return FlattenPath(Build(s), tolerance)
}

// FillRuleOf returns the fill rule used to test containment in s.
func FillRuleOf(s domain.Shape) domain.FillRule {
	if p, ok := s.(*domain.PathShape); ok && p.Geometry != nil {
		return p.Geometry.FillRule
	}
	return domain.FillNonZero
}

// Contains reports whether pt lies inside the filled area of p under rule.
func Contains(p *gg.Path, rule domain.FillRule, pt vector.Pt) bool {
	if p == nil {
		return false
	}
	w := p.Winding(gg.Pt(pt.X, pt.Y))
	if rule == domain.FillEvenOdd {
		return w%2 != 0
	}
	return w != 0
}

// Bounds returns the tight bounds of s's outline.
func Bounds(s domain.Shape) (vector.Rect, bool) {
	p := Build(s)
	if p == nil {
		return vector.Rect{}, false
	}
	b := p.BoundingBox()
	return vector.FromPoints(vector.Pt{X: b.Min.X, Y: b.Min.Y}, vector.Pt{X: b.Max.X, Y: b.Max.Y}), true
}
