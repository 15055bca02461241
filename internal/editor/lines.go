/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"log/slog"
	"math"
	"slices"

	"core2d/internal/domain"
	"core2d/internal/hittest"
	"core2d/internal/undo"
	"core2d/internal/vector"
)

func pt(p *domain.PointShape) vector.Pt { return vector.P(p.X, p.Y) }

// TryToSplitLine splits the front-most line under (x, y) at point. Without
// grid snapping point is first moved onto the line. The endpoint nearer to
// point goes to a new line; the hit line keeps the other one. Both lines
// share point afterwards.
func (e *Editor) TryToSplitLine(x, y float64, point *domain.PointShape, selectPoint bool) bool {
	layer := e.currentLayer()
	if layer == nil || point == nil {
		return false
	}
	line, ok := hittest.TryToGetShape(layer.Shapes, vector.P(x, y), e.radius(), e.scale).(*domain.LineShape)
	if !ok {
		return false
	}
	if !e.options().SnapToGrid {
		n := vector.NearestOnSegment(vector.P(x, y), pt(line.Start), pt(line.End))
		point.SetXY(n.X, n.Y)
	}
	e.split(layer, line, point, point)
	if selectPoint {
		e.Select(layer, point)
	}
	return true
}

// split cuts line between p0 and p1. The part from the endpoint nearer to
// p0 becomes a new line ending at p0; the rest starts at p1. It is recorded
// as one edit.
func (e *Editor) split(layer *domain.Layer, line *domain.LineShape, p0, p1 *domain.PointShape) {
	ds := pt(p0).DistanceTo(pt(line.Start))
	de := pt(p0).DistanceTo(pt(line.End))
	var (
		piece  *domain.LineShape
		target undo.Target
		prev   *domain.PointShape
		next   *domain.PointShape
	)
	if ds < de {
		piece = e.factory.Line(line.Start, p0, line.Style())
		target, prev, next = domain.LineStart{Line: line}, line.Start, p1
	} else {
		piece = e.factory.Line(p1, line.End, line.Style())
		target, prev, next = domain.LineEnd{Line: line}, line.End, p0
	}
	shapes := append(slices.Clone(layer.Shapes), piece)
	e.history.Snapshot(
		undo.Composite{target, domain.LayerShapes{Layer: layer}},
		[]any{prev, layer.Shapes},
		[]any{next, shapes},
	)
	target.Apply(next)
	layer.SetShapes(shapes)
	e.log.Debug("split line", slog.String("line", line.ID()), slog.String("piece", piece.ID()))
}

// TryToConnectLines cuts lines that run through pairs of connectors. A line
// touched by exactly two connectors aligned horizontally or vertically
// within threshold loses the span between them.
func (e *Editor) TryToConnectLines(lines []*domain.LineShape, connectors []*domain.PointShape, threshold float64) {
	layer := e.currentLayer()
	if layer == nil || len(connectors) == 0 {
		return
	}
	var order []*domain.LineShape
	hits := make(map[*domain.LineShape][]*domain.PointShape)
	for _, c := range connectors {
		for _, l := range lines {
			if hittest.Contains(l, pt(c), threshold, e.scale) {
				if _, seen := hits[l]; !seen {
					order = append(order, l)
				}
				hits[l] = append(hits[l], c)
				break
			}
		}
	}
	for _, l := range order {
		ps := hits[l]
		if len(ps) != 2 {
			continue
		}
		p0, p1 := ps[0], ps[1]
		horizontal := math.Abs(p0.Y-p1.Y) < threshold
		vertical := math.Abs(p0.X-p1.X) < threshold
		switch {
		case horizontal && !vertical:
			if p0.X > p1.X {
				p0, p1 = p1, p0
			}
			e.split(layer, l, p0, p1)
		case vertical && !horizontal:
			if p0.Y > p1.Y {
				p0, p1 = p1, p0
			}
			e.split(layer, l, p0, p1)
		}
	}
}

// DropAsClone inserts a copy of group moved by (x, y), snapped to the grid
// when snapping is on, and selects it. With TryToConnect set, lines of the
// current layer running through the copy's connectors are cut.
func (e *Editor) DropAsClone(group *domain.GroupShape, x, y float64) *domain.GroupShape {
	layer := e.currentLayer()
	if layer == nil || group == nil {
		return nil
	}
	clones, err := e.factory.Clone([]domain.Shape{group})
	if err != nil {
		e.log.Error("drop as clone failed", slog.Any("err", err))
		return nil
	}
	clone := clones[0].(*domain.GroupShape)
	o := e.options()
	if o.SnapToGrid {
		x, y = vector.Snap(x, o.SnapX), vector.Snap(y, o.SnapY)
	}
	clone.Move(x, y)
	e.Deselect(layer)
	e.AddShape(layer, clone)
	e.Select(layer, clone)
	if o.TryToConnect {
		var lines []*domain.LineShape
		for _, s := range layer.Shapes {
			if l, ok := s.(*domain.LineShape); ok {
				lines = append(lines, l)
			}
		}
		e.TryToConnectLines(lines, clone.Connectors, o.HitThreshold)
	}
	return clone
}
