/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"slices"

	"core2d/internal/domain"
	"core2d/internal/hittest"
	"core2d/internal/vector"
)

// Selected returns the selection in the order it was made.
func (e *Editor) Selected() []domain.Shape { return slices.Clone(e.selected) }

// SelectedLayer is the layer the selection belongs to, or nil.
func (e *Editor) SelectedLayer() *domain.Layer { return e.selLayer }

func (e *Editor) IsSelected(s domain.Shape) bool { return slices.Contains(e.selected, s) }

// Hovered is the shape selected by hovering, or nil.
func (e *Editor) Hovered() domain.Shape { return e.hovered }

// Select replaces the selection with shapes of layer. Duplicates and shapes
// outside the layer are dropped. A single selected shape may also be a
// control point of a layer shape; it becomes the page's current shape.
// An empty result deselects.
func (e *Editor) Select(layer *domain.Layer, shapes ...domain.Shape) {
	if layer == nil {
		return
	}
	var sel []domain.Shape
	for _, s := range shapes {
		if s == nil || slices.Contains(sel, s) {
			continue
		}
		sel = append(sel, s)
	}
	if len(sel) == 1 {
		if p, ok := sel[0].(*domain.PointShape); ok && !layer.Contains(p) && !layer.OwnsPoint(p) {
			sel = nil
		} else if !ok && !layer.Contains(sel[0]) {
			sel = nil
		}
	} else {
		sel = slices.DeleteFunc(sel, func(s domain.Shape) bool { return !layer.Contains(s) })
	}
	if len(sel) == 0 {
		e.Deselect(layer)
		return
	}
	e.selLayer = layer
	e.selected = sel
	if len(sel) != 1 || sel[0] != e.hovered {
		e.hovered = nil
	}
	if page := layer.Owner; page != nil {
		if len(sel) == 1 {
			page.SetCurrentShape(sel[0])
		} else {
			page.SetCurrentShape(nil)
		}
	}
	if len(sel) == 1 && isPrimitive(sel[0]) && !e.options().DrawPoints {
		e.decorator.Hide()
	} else {
		e.decorator.Show(layer, e.Selected())
	}
	e.renderer.Invalidate()
}

// isPrimitive reports whether s is a point or a line.
func isPrimitive(s domain.Shape) bool {
	switch s.(type) {
	case *domain.PointShape, *domain.LineShape:
		return true
	}
	return false
}

// Deselect clears the selection. A nil layer means the selection's own layer.
func (e *Editor) Deselect(layer *domain.Layer) {
	if layer == nil {
		layer = e.selLayer
	}
	if layer != nil && layer.Owner != nil {
		layer.Owner.SetCurrentShape(nil)
	}
	e.clearSelection()
	e.renderer.Invalidate()
}

func (e *Editor) clearSelection() {
	if e.selLayer != nil && e.selLayer.Owner != nil {
		e.selLayer.Owner.SetCurrentShape(nil)
	}
	hadSelection := len(e.selected) > 0
	e.selLayer = nil
	e.selected = nil
	e.hovered = nil
	if hadSelection {
		e.decorator.Hide()
	}
}

// SelectAll selects every shape of the current layer.
func (e *Editor) SelectAll() {
	layer := e.currentLayer()
	if layer == nil {
		return
	}
	e.Select(layer, layer.Shapes...)
}

func (e *Editor) radius() float64 { return e.options().HitThreshold }

// TryToSelectShape selects the front-most point, or else the front-most
// shape, under (x, y). When nothing is hit and deselect is set the
// selection is cleared.
func (e *Editor) TryToSelectShape(layer *domain.Layer, x, y float64, deselect bool) bool {
	if layer == nil {
		return false
	}
	at := vector.P(x, y)
	if p := hittest.TryToGetPoint(layer.Shapes, at, e.radius(), e.scale); p != nil {
		e.Select(layer, p)
		return true
	}
	if s := hittest.TryToGetShape(layer.Shapes, at, e.radius(), e.scale); s != nil {
		e.Select(layer, s)
		return true
	}
	if deselect {
		e.Deselect(layer)
	}
	return false
}

// TryToSelectShapes selects the shapes touched by rect. With includeSelected
// the hits toggle against the current selection: selected hits are dropped
// and the rest are added.
func (e *Editor) TryToSelectShapes(layer *domain.Layer, rect vector.Rect, deselect, includeSelected bool) bool {
	if layer == nil {
		return false
	}
	hits := hittest.TryToGetShapes(layer.Shapes, rect, e.radius(), e.scale)
	if len(hits) > 0 && includeSelected && e.selLayer == layer {
		next := make([]domain.Shape, 0, len(e.selected)+len(hits))
		for _, s := range e.selected {
			if !slices.Contains(hits, s) {
				next = append(next, s)
			}
		}
		for _, s := range hits {
			if !slices.Contains(e.selected, s) {
				next = append(next, s)
			}
		}
		hits = next
		if len(hits) == 0 {
			e.Deselect(layer)
			return false
		}
	}
	if len(hits) > 0 {
		e.Select(layer, hits...)
		return true
	}
	if deselect {
		e.Deselect(layer)
	}
	return false
}

// Hover selects s as the hovered shape.
func (e *Editor) Hover(layer *domain.Layer, s domain.Shape) {
	if layer == nil || s == nil {
		return
	}
	e.Select(layer, s)
	if e.IsSelected(s) {
		e.hovered = s
	}
}

// Dehover clears a selection made by hovering.
func (e *Editor) Dehover(layer *domain.Layer) {
	if layer == nil || e.hovered == nil {
		return
	}
	e.hovered = nil
	e.Deselect(layer)
}

// TryToHoverShape hovers the point or shape under (x, y) on the current
// layer. It leaves an explicit selection alone.
func (e *Editor) TryToHoverShape(x, y float64) bool {
	layer := e.currentLayer()
	if layer == nil || len(e.selected) > 1 {
		return false
	}
	if len(e.selected) == 1 && e.selected[0] != e.hovered {
		e.hovered = nil
		return false
	}
	at := vector.P(x, y)
	if p := hittest.TryToGetPoint(layer.Shapes, at, e.radius(), e.scale); p != nil {
		e.Hover(layer, p)
		return true
	}
	if s := hittest.TryToGetShape(layer.Shapes, at, e.radius(), e.scale); s != nil {
		e.Hover(layer, s)
		return true
	}
	if e.hovered != nil {
		e.Dehover(layer)
	}
	return false
}
