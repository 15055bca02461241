/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package factory

import "core2d/internal/domain"

var defaultColors = []struct {
	name    string
	r, g, b uint8
}{
	{"Black", 0x00, 0x00, 0x00},
	{"Yellow", 0xFF, 0xFF, 0x00},
	{"Red", 0xFF, 0x00, 0x00},
	{"Green", 0x00, 0xFF, 0x00},
	{"Blue", 0x00, 0x00, 0xFF},
	{"Cyan", 0x00, 0xFF, 0xFF},
	{"Magenta", 0xFF, 0x00, 0xFF},
}

// NewStyle returns a style with the given stroke color and a translucent fill of it.
func (f *Factory) NewStyle(name string, r, g, b uint8, thickness float64) *domain.ShapeStyle {
	s := domain.NewShapeStyle(name)
	s.Stroke.Color = domain.NewColor(0xFF, r, g, b)
	s.Stroke.Thickness = thickness
	s.Fill.Color = domain.NewColor(0x80, r, g, b)
	return s
}

// DefaultStyles returns the stock palette, black first.
func (f *Factory) DefaultStyles() []*domain.ShapeStyle {
	out := make([]*domain.ShapeStyle, 0, len(defaultColors))
	for _, c := range defaultColors {
		out = append(out, f.NewStyle(c.name, c.r, c.g, c.b, 2))
	}
	return out
}

func (f *Factory) Point(x, y float64) *domain.PointShape { return domain.NewPoint(x, y) }

// Line connects two existing points.
func (f *Factory) Line(start, end *domain.PointShape, style *domain.ShapeStyle) *domain.LineShape {
	l := domain.NewLine(start, end)
	l.SetStyle(style)
	return l
}

// LineXY creates a line and its two end points.
func (f *Factory) LineXY(x1, y1, x2, y2 float64, style *domain.ShapeStyle) *domain.LineShape {
	return f.Line(domain.NewPoint(x1, y1), domain.NewPoint(x2, y2), style)
}

func (f *Factory) Rectangle(x1, y1, x2, y2 float64, style *domain.ShapeStyle) *domain.RectangleShape {
	r := domain.NewRectangle(domain.NewPoint(x1, y1), domain.NewPoint(x2, y2))
	r.IsStroked, r.IsFilled = f.options.DefaultIsStroked, f.options.DefaultIsFilled
	r.SetStyle(style)
	return r
}

func (f *Factory) Ellipse(x1, y1, x2, y2 float64, style *domain.ShapeStyle) *domain.EllipseShape {
	e := domain.NewEllipse(domain.NewPoint(x1, y1), domain.NewPoint(x2, y2))
	e.IsStroked, e.IsFilled = f.options.DefaultIsStroked, f.options.DefaultIsFilled
	e.SetStyle(style)
	return e
}

// Arc inscribes an arc in the box x1,y1-x2,y2 from the ray towards (x3,y3)
// to the ray towards (x4,y4).
func (f *Factory) Arc(x1, y1, x2, y2, x3, y3, x4, y4 float64, style *domain.ShapeStyle) *domain.ArcShape {
	a := domain.NewArc(domain.NewPoint(x1, y1), domain.NewPoint(x2, y2), domain.NewPoint(x3, y3), domain.NewPoint(x4, y4))
	a.IsStroked, a.IsFilled = f.options.DefaultIsStroked, f.options.DefaultIsFilled
	a.SetStyle(style)
	return a
}

func (f *Factory) CubicBezier(x1, y1, x2, y2, x3, y3, x4, y4 float64, style *domain.ShapeStyle) *domain.CubicBezierShape {
	c := domain.NewCubicBezier(domain.NewPoint(x1, y1), domain.NewPoint(x2, y2), domain.NewPoint(x3, y3), domain.NewPoint(x4, y4))
	c.IsStroked, c.IsFilled = f.options.DefaultIsStroked, f.options.DefaultIsFilled
	c.SetStyle(style)
	return c
}

func (f *Factory) QuadraticBezier(x1, y1, x2, y2, x3, y3 float64, style *domain.ShapeStyle) *domain.QuadraticBezierShape {
	q := domain.NewQuadraticBezier(domain.NewPoint(x1, y1), domain.NewPoint(x2, y2), domain.NewPoint(x3, y3))
	q.IsStroked, q.IsFilled = f.options.DefaultIsStroked, f.options.DefaultIsFilled
	q.SetStyle(style)
	return q
}

func (f *Factory) Text(x1, y1, x2, y2 float64, text string, style *domain.ShapeStyle) *domain.TextShape {
	t := domain.NewText(domain.NewPoint(x1, y1), domain.NewPoint(x2, y2), text)
	t.SetStyle(style)
	return t
}

func (f *Factory) Image(x1, y1, x2, y2 float64, key string, style *domain.ShapeStyle) *domain.ImageShape {
	i := domain.NewImage(domain.NewPoint(x1, y1), domain.NewPoint(x2, y2), key)
	i.SetStyle(style)
	return i
}

// Path wraps geometry; a nil geometry gets an empty one with the default fill rule.
func (f *Factory) Path(g *domain.PathGeometry, style *domain.ShapeStyle) *domain.PathShape {
	if g == nil {
		g = domain.NewPathGeometry(f.options.DefaultFillRule)
	}
	p := domain.NewPath(g)
	p.IsStroked, p.IsFilled = f.options.DefaultIsStroked, f.options.DefaultIsFilled
	p.SetStyle(style)
	return p
}

// Polygon builds a closed path through points.
func (f *Factory) Polygon(style *domain.ShapeStyle, points ...[2]float64) *domain.PathShape {
	g := domain.NewPathGeometry(f.options.DefaultFillRule)
	if len(points) > 0 {
		fig := domain.NewPathFigure(domain.NewPoint(points[0][0], points[0][1]), true)
		segs := make([]domain.PathSegment, 0, len(points)-1)
		for _, pt := range points[1:] {
			segs = append(segs, &domain.LineSegment{Point: domain.NewPoint(pt[0], pt[1])})
		}
		fig.Segments = segs
		g.Figures = []*domain.PathFigure{fig}
	}
	return f.Path(g, style)
}

func (f *Factory) Group(name string) *domain.GroupShape {
	return domain.NewGroup(name)
}
