/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import "core2d/internal/typeid"

// ArgbColor is an 8-bit per channel color with alpha.
type ArgbColor struct {
	Notifier
	A, R, G, B uint8
}

func NewColor(a, r, g, b uint8) *ArgbColor { return &ArgbColor{A: a, R: r, G: g, B: b} }

func (c *ArgbColor) Set(a, r, g, b uint8) {
	c.A, c.R, c.G, c.B = a, r, g, b
	c.Notify("Value")
}

func (c *ArgbColor) Copy() *ArgbColor {
	if c == nil {
		return nil
	}
	return NewColor(c.A, c.R, c.G, c.B)
}

type ArrowType int

const (
	ArrowNone ArrowType = iota
	ArrowRectangle
	ArrowEllipse
	ArrowOpen
)

type ArrowStyle struct {
	Notifier
	Type      ArrowType
	RadiusX   float64
	RadiusY   float64
	IsStroked bool
	IsFilled  bool
}

func (a *ArrowStyle) SetType(t ArrowType) {
	if a.Type == t {
		return
	}
	a.Type = t
	a.Notify("Type")
}

func (a *ArrowStyle) Copy() *ArrowStyle {
	if a == nil {
		return nil
	}
	return &ArrowStyle{Type: a.Type, RadiusX: a.RadiusX, RadiusY: a.RadiusY, IsStroked: a.IsStroked, IsFilled: a.IsFilled}
}

type LineCap int

const (
	CapFlat LineCap = iota
	CapSquare
	CapRound
)

type StrokeStyle struct {
	Notifier
	Color      *ArgbColor
	Thickness  float64
	LineCap    LineCap
	Dashes     string
	DashOffset float64
	StartArrow *ArrowStyle
	EndArrow   *ArrowStyle
}

func (s *StrokeStyle) SetThickness(v float64) {
	if s.Thickness == v {
		return
	}
	s.Thickness = v
	s.Notify("Thickness")
}

func (s *StrokeStyle) SetColor(c *ArgbColor) {
	s.Color = c
	s.Notify("Color")
}

func (s *StrokeStyle) Copy() *StrokeStyle {
	if s == nil {
		return nil
	}
	return &StrokeStyle{
		Color:      s.Color.Copy(),
		Thickness:  s.Thickness,
		LineCap:    s.LineCap,
		Dashes:     s.Dashes,
		DashOffset: s.DashOffset,
		StartArrow: s.StartArrow.Copy(),
		EndArrow:   s.EndArrow.Copy(),
	}
}

type FillStyle struct {
	Notifier
	Color *ArgbColor
}

func (f *FillStyle) SetColor(c *ArgbColor) {
	f.Color = c
	f.Notify("Color")
}

func (f *FillStyle) Copy() *FillStyle {
	if f == nil {
		return nil
	}
	return &FillStyle{Color: f.Color.Copy()}
}

type TextStyle struct {
	Notifier
	FontName   string
	FontSize   float64
	Bold       bool
	Italic     bool
	HAlignment string
	VAlignment string
}

func (t *TextStyle) SetFontSize(v float64) {
	if t.FontSize == v {
		return
	}
	t.FontSize = v
	t.Notify("FontSize")
}

func (t *TextStyle) SetBold(v bool) {
	if t.Bold == v {
		return
	}
	t.Bold = v
	t.Notify("Bold")
}

func (t *TextStyle) Copy() *TextStyle {
	if t == nil {
		return nil
	}
	return &TextStyle{
		FontName: t.FontName, FontSize: t.FontSize, Bold: t.Bold, Italic: t.Italic,
		HAlignment: t.HAlignment, VAlignment: t.VAlignment,
	}
}

// ShapeStyle is shared by reference between shapes. Use Copy for an
// independent instance.
type ShapeStyle struct {
	Notifier
	ID        string
	Name      string
	Stroke    *StrokeStyle
	Fill      *FillStyle
	TextStyle *TextStyle
}

func NewShapeStyle(name string) *ShapeStyle {
	return &ShapeStyle{
		ID:   typeid.NewStyleID(),
		Name: name,
		Stroke: &StrokeStyle{
			Color:      NewColor(0xFF, 0x00, 0x00, 0x00),
			Thickness:  2,
			StartArrow: &ArrowStyle{},
			EndArrow:   &ArrowStyle{},
		},
		Fill:      &FillStyle{Color: NewColor(0x80, 0x00, 0x00, 0x00)},
		TextStyle: &TextStyle{FontName: "Calibri", FontSize: 12, HAlignment: "center", VAlignment: "center"},
	}
}

func (s *ShapeStyle) SetName(name string) {
	if s.Name == name {
		return
	}
	s.Name = name
	s.Notify("Name")
}

func (s *ShapeStyle) SetStroke(st *StrokeStyle) {
	s.Stroke = st
	s.Notify("Stroke")
}

func (s *ShapeStyle) SetFill(f *FillStyle) {
	s.Fill = f
	s.Notify("Fill")
}

// Copy returns a deep copy with a fresh identity.
func (s *ShapeStyle) Copy() *ShapeStyle {
	if s == nil {
		return nil
	}
	return &ShapeStyle{
		ID:        typeid.NewStyleID(),
		Name:      s.Name,
		Stroke:    s.Stroke.Copy(),
		Fill:      s.Fill.Copy(),
		TextStyle: s.TextStyle.Copy(),
	}
}
