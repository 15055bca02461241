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
	"slices"

	"core2d/internal/domain"
	"core2d/internal/undo"
)

// SetCurrentLayer makes layer the current layer of its page and the page
// the current page. A selection on another layer is cleared.
func (e *Editor) SetCurrentLayer(layer *domain.Layer) {
	if e.project == nil || layer == nil || layer.Owner == nil {
		return
	}
	if e.selLayer != nil && e.selLayer != layer {
		e.Deselect(e.selLayer)
	}
	page := layer.Owner
	page.SetCurrentLayer(layer)
	if page.Owner != nil && e.project.CurrentPage != page {
		e.project.SetCurrentPage(page)
	}
}

// AddLayer appends a new layer to page.
func (e *Editor) AddLayer(page *domain.Page, name string) *domain.Layer {
	if e.project == nil || page == nil {
		return nil
	}
	layer := e.factory.NewLayer(page, name)
	next := append(slices.Clone(page.Layers), layer)
	e.history.Snapshot(domain.PageLayers{Page: page}, page.Layers, next)
	page.SetLayers(next)
	return layer
}

// RemoveLayer removes layer from its page. The page's current layer falls
// back to its first remaining layer.
func (e *Editor) RemoveLayer(layer *domain.Layer) {
	if e.project == nil || layer == nil || layer.Owner == nil {
		return
	}
	page := layer.Owner
	i := slices.Index(page.Layers, layer)
	if i < 0 {
		return
	}
	if e.selLayer == layer {
		e.Deselect(layer)
	}
	next := slices.Delete(slices.Clone(page.Layers), i, i+1)
	e.history.Snapshot(domain.PageLayers{Page: page}, page.Layers, next)
	page.SetLayers(next)
	if page.CurrentLayer == layer {
		var cur *domain.Layer
		if len(next) > 0 {
			cur = next[0]
		}
		page.SetCurrentLayer(cur)
	}
}

// AddShape appends s to layer.
func (e *Editor) AddShape(layer *domain.Layer, s domain.Shape) {
	if layer == nil || s == nil || layer.Contains(s) {
		return
	}
	e.replaceShapes(layer, append(slices.Clone(layer.Shapes), s))
}

// AddShapes appends shapes to layer as one edit.
func (e *Editor) AddShapes(layer *domain.Layer, shapes []domain.Shape) {
	if layer == nil || len(shapes) == 0 {
		return
	}
	e.replaceShapes(layer, append(slices.Clone(layer.Shapes), shapes...))
}

// RemoveShape removes s from layer, deselecting it first.
func (e *Editor) RemoveShape(layer *domain.Layer, s domain.Shape) {
	if layer == nil || !layer.Contains(s) {
		return
	}
	if e.IsSelected(s) {
		e.Deselect(layer)
	}
	e.replaceShapes(layer, slices.DeleteFunc(slices.Clone(layer.Shapes), func(x domain.Shape) bool { return x == s }))
}

// Group replaces shapes on the current layer with one group holding them.
// Point shapes become connectors of the group. The members are taken out
// and the group is appended. A selection touching the members is cleared.
func (e *Editor) Group(shapes []domain.Shape, name string) *domain.GroupShape {
	layer := e.currentLayer()
	if layer == nil {
		return nil
	}
	var members, next []domain.Shape
	for _, s := range layer.Shapes {
		if slices.Contains(shapes, s) {
			members = append(members, s)
		} else {
			next = append(next, s)
		}
	}
	if len(members) == 0 {
		return nil
	}
	prevStates := domain.StatesOf(members)
	group := e.factory.Group(name)
	for _, s := range members {
		if p, ok := s.(*domain.PointShape); ok {
			group.AddConnector(p)
		} else {
			group.AddShape(s)
		}
	}
	next = append(next, group)
	e.deselectRemoved(layer, members)
	e.history.Snapshot(
		undo.Composite{domain.ShapeStates{Shapes: members}, domain.LayerShapes{Layer: layer}},
		[]any{prevStates, layer.Shapes},
		[]any{domain.StatesOf(members), next},
	)
	layer.SetShapes(next)
	e.log.Debug("grouped", slog.Int("shapes", len(members)), slog.String("group", group.ID()))
	return group
}

// GroupSelected groups the selection and selects the group.
func (e *Editor) GroupSelected(name string) *domain.GroupShape {
	g := e.Group(e.Selected(), name)
	if g != nil {
		e.Select(e.currentLayer(), g)
	}
	return g
}

// Ungroup expands every group in shapes back into the current layer, in
// place of the group. Children and connectors become standalone again.
func (e *Editor) Ungroup(shapes []domain.Shape) bool {
	layer := e.currentLayer()
	if layer == nil {
		return false
	}
	var (
		next    []domain.Shape
		members []domain.Shape
		states  []domain.ShapeState
		groups  []domain.Shape
	)
	for _, s := range layer.Shapes {
		g, ok := s.(*domain.GroupShape)
		if !ok || !slices.Contains(shapes, s) {
			next = append(next, s)
			continue
		}
		groups = append(groups, g)
		for _, c := range g.Shapes {
			members = append(members, c)
			states = append(states, c.State().With(domain.StateStandalone))
			next = append(next, c)
		}
		for _, c := range g.Connectors {
			members = append(members, c)
			states = append(states, c.State().With(domain.StateStandalone).Without(domain.StateConnector|domain.StateInput|domain.StateOutput))
			next = append(next, c)
		}
	}
	if len(groups) == 0 {
		return false
	}
	e.deselectRemoved(layer, groups)
	e.history.Snapshot(
		undo.Composite{domain.ShapeStates{Shapes: members}, domain.LayerShapes{Layer: layer}},
		[]any{domain.StatesOf(members), layer.Shapes},
		[]any{states, next},
	)
	domain.ShapeStates{Shapes: members}.Apply(states)
	layer.SetShapes(next)
	return true
}

// UngroupSelected ungroups the selection and clears it.
func (e *Editor) UngroupSelected() bool {
	ok := e.Ungroup(e.Selected())
	if ok {
		e.Deselect(e.currentLayer())
	}
	return ok
}

// deselectRemoved clears the selection when it holds one of removed.
func (e *Editor) deselectRemoved(layer *domain.Layer, removed []domain.Shape) {
	if e.selLayer != layer {
		return
	}
	if slices.ContainsFunc(e.selected, func(s domain.Shape) bool { return slices.Contains(removed, s) }) {
		e.Deselect(layer)
	}
}
