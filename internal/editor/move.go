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

	"core2d/internal/domain"
)

// MoveBy translates shapes by (dx, dy) as one edit. Locked shapes stay put.
// In point mode every distinct control point moves once, so points shared
// between shapes are not moved twice; in shape mode each shape moves itself.
func (e *Editor) MoveBy(shapes []domain.Shape, dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	var free []domain.Shape
	for _, s := range shapes {
		if s != nil && !s.State().Has(domain.StateLocked) {
			free = append(free, s)
		}
	}
	if len(free) == 0 {
		return
	}
	d := domain.Delta{DX: dx, DY: dy}
	switch e.options().MoveMode {
	case domain.MoveShape:
		t := domain.MoveShapes{Shapes: free}
		e.history.Snapshot(t, d.Neg(), d)
		t.Apply(d)
	default:
		points := domain.DistinctPoints(free)
		if len(points) == 0 {
			return
		}
		t := domain.MovePoints{Points: points}
		e.history.Snapshot(t, d.Neg(), d)
		t.Apply(d)
	}
	e.log.Debug("moved", slog.Int("shapes", len(free)), slog.Float64("dx", dx), slog.Float64("dy", dy))
}

// MoveSelectedBy moves the selection.
func (e *Editor) MoveSelectedBy(dx, dy float64) { e.MoveBy(e.Selected(), dx, dy) }
