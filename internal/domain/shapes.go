/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import "core2d/internal/typeid"

// PointShape is a single point. Points are also the geometry of other shapes
// and may be shared between them.
type PointShape struct {
	base
	X, Y float64
}

func NewPoint(x, y float64) *PointShape {
	p := &PointShape{X: x, Y: y}
	p.init(KindPoint, typeid.PrefixPoint)
	return p
}

func (p *PointShape) ControlPoints() []*PointShape { return []*PointShape{p} }

func (p *PointShape) Move(dx, dy float64) {
	if dx != 0 {
		p.X += dx
		p.Notify("X")
	}
	if dy != 0 {
		p.Y += dy
		p.Notify("Y")
	}
}

// SetXY places the point at an absolute position.
func (p *PointShape) SetXY(x, y float64) {
	p.Move(x-p.X, y-p.Y)
}

type LineShape struct {
	base
	Start *PointShape
	End   *PointShape
}

func NewLine(start, end *PointShape) *LineShape {
	l := &LineShape{Start: start, End: end}
	l.init(KindLine, typeid.PrefixShape)
	return l
}

func (l *LineShape) ControlPoints() []*PointShape { return []*PointShape{l.Start, l.End} }
func (l *LineShape) Move(dx, dy float64)          { moveDistinct(l.ControlPoints(), dx, dy) }

func (l *LineShape) SetStart(p *PointShape) {
	if l.Start == p {
		return
	}
	l.Start = p
	l.Notify("Start")
}

func (l *LineShape) SetEnd(p *PointShape) {
	if l.End == p {
		return
	}
	l.End = p
	l.Notify("End")
}

// boxShape is the geometry shared by rectangle, ellipse, text and image.
type boxShape struct {
	base
	TopLeft     *PointShape
	BottomRight *PointShape
	IsStroked   bool
	IsFilled    bool
}

func (b *boxShape) ControlPoints() []*PointShape { return []*PointShape{b.TopLeft, b.BottomRight} }
func (b *boxShape) Move(dx, dy float64)          { moveDistinct(b.ControlPoints(), dx, dy) }

type RectangleShape struct{ boxShape }

func NewRectangle(topLeft, bottomRight *PointShape) *RectangleShape {
	r := &RectangleShape{boxShape{TopLeft: topLeft, BottomRight: bottomRight, IsStroked: true}}
	r.init(KindRectangle, typeid.PrefixShape)
	return r
}

type EllipseShape struct{ boxShape }

func NewEllipse(topLeft, bottomRight *PointShape) *EllipseShape {
	e := &EllipseShape{boxShape{TopLeft: topLeft, BottomRight: bottomRight, IsStroked: true}}
	e.init(KindEllipse, typeid.PrefixShape)
	return e
}

type TextShape struct {
	boxShape
	Text string
}

func NewText(topLeft, bottomRight *PointShape, text string) *TextShape {
	t := &TextShape{boxShape: boxShape{TopLeft: topLeft, BottomRight: bottomRight}, Text: text}
	t.init(KindText, typeid.PrefixShape)
	return t
}

func (t *TextShape) SetText(text string) {
	if t.Text == text {
		return
	}
	t.Text = text
	t.Notify("Text")
}

type ImageShape struct {
	boxShape
	Key string
}

func NewImage(topLeft, bottomRight *PointShape, key string) *ImageShape {
	i := &ImageShape{boxShape: boxShape{TopLeft: topLeft, BottomRight: bottomRight}, Key: key}
	i.init(KindImage, typeid.PrefixShape)
	return i
}

// ArcShape is an elliptical arc inscribed in the box Point1-Point2,
// starting at the ray towards Point3 and ending at the ray towards Point4.
type ArcShape struct {
	base
	Point1, Point2, Point3, Point4 *PointShape
	IsStroked                      bool
	IsFilled                       bool
}

func NewArc(p1, p2, p3, p4 *PointShape) *ArcShape {
	a := &ArcShape{Point1: p1, Point2: p2, Point3: p3, Point4: p4, IsStroked: true}
	a.init(KindArc, typeid.PrefixShape)
	return a
}

func (a *ArcShape) ControlPoints() []*PointShape {
	return []*PointShape{a.Point1, a.Point2, a.Point3, a.Point4}
}
func (a *ArcShape) Move(dx, dy float64) { moveDistinct(a.ControlPoints(), dx, dy) }

type CubicBezierShape struct {
	base
	Point1, Point2, Point3, Point4 *PointShape
	IsStroked                      bool
	IsFilled                       bool
}

func NewCubicBezier(p1, p2, p3, p4 *PointShape) *CubicBezierShape {
	c := &CubicBezierShape{Point1: p1, Point2: p2, Point3: p3, Point4: p4, IsStroked: true}
	c.init(KindCubicBezier, typeid.PrefixShape)
	return c
}

func (c *CubicBezierShape) ControlPoints() []*PointShape {
	return []*PointShape{c.Point1, c.Point2, c.Point3, c.Point4}
}
func (c *CubicBezierShape) Move(dx, dy float64) { moveDistinct(c.ControlPoints(), dx, dy) }

type QuadraticBezierShape struct {
	base
	Point1, Point2, Point3 *PointShape
	IsStroked              bool
	IsFilled               bool
}

func NewQuadraticBezier(p1, p2, p3 *PointShape) *QuadraticBezierShape {
	q := &QuadraticBezierShape{Point1: p1, Point2: p2, Point3: p3, IsStroked: true}
	q.init(KindQuadraticBezier, typeid.PrefixShape)
	return q
}

func (q *QuadraticBezierShape) ControlPoints() []*PointShape {
	return []*PointShape{q.Point1, q.Point2, q.Point3}
}
func (q *QuadraticBezierShape) Move(dx, dy float64) { moveDistinct(q.ControlPoints(), dx, dy) }

type PathShape struct {
	base
	Geometry  *PathGeometry
	IsStroked bool
	IsFilled  bool
}

func NewPath(geometry *PathGeometry) *PathShape {
	p := &PathShape{Geometry: geometry, IsStroked: true}
	p.init(KindPath, typeid.PrefixShape)
	return p
}

func (p *PathShape) ControlPoints() []*PointShape {
	if p.Geometry == nil {
		return nil
	}
	return p.Geometry.Points()
}
func (p *PathShape) Move(dx, dy float64) { moveDistinct(p.ControlPoints(), dx, dy) }

func (p *PathShape) SetGeometry(g *PathGeometry) {
	p.Geometry = g
	p.Notify("Geometry")
}

// GroupShape owns child shapes and the connector points external lines attach to.
type GroupShape struct {
	base
	Shapes     []Shape
	Connectors []*PointShape
}

func NewGroup(name string) *GroupShape {
	g := &GroupShape{}
	g.init(KindGroup, typeid.PrefixShape)
	g.name = name
	return g
}

func (g *GroupShape) ControlPoints() []*PointShape {
	var out []*PointShape
	for _, s := range g.Shapes {
		out = append(out, s.ControlPoints()...)
	}
	return append(out, g.Connectors...)
}
func (g *GroupShape) Move(dx, dy float64) { moveDistinct(g.ControlPoints(), dx, dy) }

func (g *GroupShape) SetShapes(shapes []Shape) {
	g.Shapes = shapes
	g.Notify("Shapes")
}

func (g *GroupShape) SetConnectors(connectors []*PointShape) {
	g.Connectors = connectors
	g.Notify("Connectors")
}

// AddShape appends a child, clearing its standalone flag.
func (g *GroupShape) AddShape(s Shape) {
	s.SetState(s.State().Without(StateStandalone))
	g.SetShapes(appendShape(g.Shapes, s))
}

// AddConnector appends a connector point, flagging it as a connector
// that is neither input nor output.
func (g *GroupShape) AddConnector(p *PointShape) {
	p.SetState(p.State().With(StateConnector).Without(StateStandalone | StateInput | StateOutput))
	cs := make([]*PointShape, 0, len(g.Connectors)+1)
	g.SetConnectors(append(append(cs, g.Connectors...), p))
}

func appendShape(shapes []Shape, s ...Shape) []Shape {
	out := make([]Shape, 0, len(shapes)+len(s))
	out = append(out, shapes...)
	return append(out, s...)
}
