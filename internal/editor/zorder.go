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
)

// move relocates s from index from to index to on the current layer.
func (e *Editor) move(layer *domain.Layer, s domain.Shape, from, to int) {
	next := slices.Delete(slices.Clone(layer.Shapes), from, from+1)
	next = slices.Insert(next, to, s)
	e.replaceShapes(layer, next)
}

// BringToFront paints s last on the current layer.
func (e *Editor) BringToFront(s domain.Shape) {
	layer := e.currentLayer()
	if layer == nil {
		return
	}
	from, to := layer.IndexOf(s), len(layer.Shapes)-1
	if from >= 0 && from != to {
		e.move(layer, s, from, to)
	}
}

// BringForward swaps s with the shape painted after it.
func (e *Editor) BringForward(s domain.Shape) {
	layer := e.currentLayer()
	if layer == nil {
		return
	}
	from := layer.IndexOf(s)
	if from >= 0 && from+1 < len(layer.Shapes) {
		e.move(layer, s, from, from+1)
	}
}

// SendBackward swaps s with the shape painted before it.
func (e *Editor) SendBackward(s domain.Shape) {
	layer := e.currentLayer()
	if layer == nil {
		return
	}
	if from := layer.IndexOf(s); from > 0 {
		e.move(layer, s, from, from-1)
	}
}

// SendToBack paints s first on the current layer.
func (e *Editor) SendToBack(s domain.Shape) {
	layer := e.currentLayer()
	if layer == nil {
		return
	}
	if from := layer.IndexOf(s); from > 0 {
		e.move(layer, s, from, 0)
	}
}

// The selected variants apply the single-shape move to each selected shape,
// front-ward moves in selection order and back-ward moves in reverse.

func (e *Editor) BringToFrontSelected() {
	for _, s := range e.Selected() {
		e.BringToFront(s)
	}
}

func (e *Editor) BringForwardSelected() {
	for _, s := range e.Selected() {
		e.BringForward(s)
	}
}

func (e *Editor) SendBackwardSelected() {
	sel := e.Selected()
	for i := len(sel) - 1; i >= 0; i-- {
		e.SendBackward(sel[i])
	}
}

func (e *Editor) SendToBackSelected() {
	sel := e.Selected()
	for i := len(sel) - 1; i >= 0; i-- {
		e.SendToBack(sel[i])
	}
}
