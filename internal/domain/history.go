/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import "fmt"

// History targets. Each selects one field (or one relative move) and
// replaces it with the value it is given.

// Delta is the value of a relative move.
type Delta struct{ DX, DY float64 }

func (d Delta) Neg() Delta { return Delta{-d.DX, -d.DY} }

type LayerShapes struct{ Layer *Layer }

func (t LayerShapes) Apply(v any) { t.Layer.SetShapes(v.([]Shape)) }
func (t LayerShapes) String() string {
	return fmt.Sprintf("layer %q shapes", t.Layer.Name)
}

type PageLayers struct{ Page *Page }

func (t PageLayers) Apply(v any) { t.Page.SetLayers(v.([]*Layer)) }
func (t PageLayers) String() string {
	return fmt.Sprintf("page %q layers", t.Page.Name)
}

type ProjectDatabases struct{ Project *Project }

func (t ProjectDatabases) Apply(v any)    { t.Project.SetDatabases(v.([]*Database)) }
func (t ProjectDatabases) String() string { return "project databases" }

type LineStart struct{ Line *LineShape }

func (t LineStart) Apply(v any)    { t.Line.SetStart(v.(*PointShape)) }
func (t LineStart) String() string { return "line start" }

type LineEnd struct{ Line *LineShape }

func (t LineEnd) Apply(v any)    { t.Line.SetEnd(v.(*PointShape)) }
func (t LineEnd) String() string { return "line end" }

// MovePoints moves each point by the Delta it is given.
type MovePoints struct{ Points []*PointShape }

func (t MovePoints) Apply(v any) {
	d := v.(Delta)
	for _, p := range t.Points {
		p.Move(d.DX, d.DY)
	}
}
func (t MovePoints) String() string { return fmt.Sprintf("move %d points", len(t.Points)) }

// MoveShapes moves each shape by the Delta it is given.
type MoveShapes struct{ Shapes []Shape }

func (t MoveShapes) Apply(v any) {
	d := v.(Delta)
	for _, s := range t.Shapes {
		s.Move(d.DX, d.DY)
	}
}
func (t MoveShapes) String() string { return fmt.Sprintf("move %d shapes", len(t.Shapes)) }

// ShapeStates sets the state of each shape from a []ShapeState of equal length.
type ShapeStates struct{ Shapes []Shape }

func (t ShapeStates) Apply(v any) {
	states := v.([]ShapeState)
	for i, s := range t.Shapes {
		s.SetState(states[i])
	}
}
func (t ShapeStates) String() string { return fmt.Sprintf("state of %d shapes", len(t.Shapes)) }

// StatesOf captures the current state of each shape.
func StatesOf(shapes []Shape) []ShapeState {
	out := make([]ShapeState, len(shapes))
	for i, s := range shapes {
		out[i] = s.State()
	}
	return out
}
