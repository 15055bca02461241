/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import (
	"strings"

	"core2d/internal/typeid"
)

// Kind tags the closed set of shape variants.
type Kind int

const (
	KindPoint Kind = iota
	KindLine
	KindRectangle
	KindEllipse
	KindArc
	KindCubicBezier
	KindQuadraticBezier
	KindText
	KindImage
	KindPath
	KindGroup
)

var kindNames = [...]string{
	KindPoint:           "point",
	KindLine:            "line",
	KindRectangle:       "rectangle",
	KindEllipse:         "ellipse",
	KindArc:             "arc",
	KindCubicBezier:     "cubicBezier",
	KindQuadraticBezier: "quadraticBezier",
	KindText:            "text",
	KindImage:           "image",
	KindPath:            "path",
	KindGroup:           "group",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	for i, n := range kindNames {
		if n == s {
			return Kind(i), true
		}
	}
	return 0, false
}

// ShapeState is a set of shape flags.
type ShapeState uint32

const (
	StateVisible ShapeState = 1 << iota
	StatePrintable
	StateLocked
	StateStandalone
	StateConnector
	StateInput
	StateOutput
)

// StateNone is the empty flag set.
const StateNone ShapeState = 0

// DefaultState is assigned to newly created shapes.
const DefaultState = StateVisible | StatePrintable | StateStandalone

func (s ShapeState) Has(f ShapeState) bool       { return s&f == f }
func (s ShapeState) With(f ShapeState) ShapeState { return s | f }
func (s ShapeState) Without(f ShapeState) ShapeState {
	return s &^ f
}

func (s ShapeState) String() string {
	if s == StateNone {
		return "none"
	}
	names := []string{"visible", "printable", "locked", "standalone", "connector", "input", "output"}
	var parts []string
	for i, n := range names {
		if s&(1<<i) != 0 {
			parts = append(parts, n)
		}
	}
	return strings.Join(parts, "|")
}

// Shape is implemented by every drawable variant.
type Shape interface {
	Observable
	ID() string
	SetID(id string)
	Kind() Kind
	Name() string
	SetName(name string)
	Style() *ShapeStyle
	SetStyle(style *ShapeStyle)
	State() ShapeState
	SetState(state ShapeState)
	Record() *Record
	SetRecord(record *Record)
	Properties() []*Property
	SetProperties(props []*Property)
	// ControlPoints returns the constituent points in a stable order.
	// Shared points appear once per reference.
	ControlPoints() []*PointShape
	// Move translates the shape by moving each distinct control point once.
	Move(dx, dy float64)
}

// base carries the fields common to all shapes.
type base struct {
	Notifier
	id     string
	kind   Kind
	name   string
	style  *ShapeStyle
	state  ShapeState
	record *Record
	props  []*Property
}

func (b *base) init(kind Kind, prefix string) {
	b.id = typeid.New(prefix)
	b.kind = kind
	b.state = DefaultState
}

func (b *base) ID() string         { return b.id }
func (b *base) SetID(id string)    { b.id = id }
func (b *base) Kind() Kind         { return b.kind }
func (b *base) Name() string       { return b.name }
func (b *base) Style() *ShapeStyle { return b.style }
func (b *base) State() ShapeState  { return b.state }
func (b *base) Record() *Record    { return b.record }

func (b *base) Properties() []*Property { return b.props }

func (b *base) SetName(name string) {
	if b.name == name {
		return
	}
	b.name = name
	b.Notify("Name")
}

func (b *base) SetStyle(style *ShapeStyle) {
	if b.style == style {
		return
	}
	b.style = style
	b.Notify("Style")
}

func (b *base) SetState(state ShapeState) {
	if b.state == state {
		return
	}
	b.state = state
	b.Notify("State")
}

func (b *base) SetRecord(record *Record) {
	if b.record == record {
		return
	}
	b.record = record
	b.Notify("Record")
}

func (b *base) SetProperties(props []*Property) {
	b.props = props
	b.Notify("Properties")
}

// moveDistinct moves every distinct point once.
func moveDistinct(points []*PointShape, dx, dy float64) {
	seen := make(map[*PointShape]struct{}, len(points))
	for _, p := range points {
		if p == nil {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		p.Move(dx, dy)
	}
}

// DistinctPoints returns the control points of shapes with duplicates removed,
// in first-seen order.
func DistinctPoints(shapes []Shape) []*PointShape {
	seen := make(map[*PointShape]struct{})
	var out []*PointShape
	for _, s := range shapes {
		for _, p := range s.ControlPoints() {
			if p == nil {
				continue
			}
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}
