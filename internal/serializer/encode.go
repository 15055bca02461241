/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package serializer

import (
	"fmt"

	"core2d/internal/domain"
)

type encoder struct {
	seen    map[*domain.ShapeStyle]bool
	styles  []styleDTO
	bound   map[*domain.Record]bool
	records []recordDTO
}

func newEncoder() *encoder {
	return &encoder{seen: make(map[*domain.ShapeStyle]bool), bound: make(map[*domain.Record]bool)}
}

func (e *encoder) style(s *domain.ShapeStyle) string {
	if s == nil {
		return ""
	}
	if !e.seen[s] {
		e.seen[s] = true
		e.styles = append(e.styles, styleToDTO(s))
	}
	return s.ID
}

func (e *encoder) shapes(in []domain.Shape) ([]*shapeDTO, error) {
	out := make([]*shapeDTO, 0, len(in))
	for _, s := range in {
		d, err := e.shape(s)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (e *encoder) points(in ...*domain.PointShape) []*shapeDTO {
	out := make([]*shapeDTO, 0, len(in))
	for _, p := range in {
		out = append(out, e.point(p))
	}
	return out
}

func (e *encoder) point(p *domain.PointShape) *shapeDTO {
	if p == nil {
		return nil
	}
	d := e.common(p)
	d.X, d.Y = p.X, p.Y
	return d
}

func (e *encoder) common(s domain.Shape) *shapeDTO {
	d := &shapeDTO{
		Kind:  s.Kind().String(),
		ID:    s.ID(),
		Name:  s.Name(),
		Style: e.style(s.Style()),
		State: uint32(s.State()),
	}
	if r := s.Record(); r != nil {
		d.Record = r.ID
		if !e.bound[r] {
			e.bound[r] = true
			e.records = append(e.records, recordToDTO(r))
		}
	}
	d.Properties = propertiesToDTO(s.Properties())
	return d
}

func (e *encoder) shape(s domain.Shape) (*shapeDTO, error) {
	switch v := s.(type) {
	case *domain.PointShape:
		return e.point(v), nil
	case *domain.LineShape:
		d := e.common(v)
		d.Points = e.points(v.Start, v.End)
		return d, nil
	case *domain.RectangleShape:
		d := e.common(v)
		d.Points = e.points(v.TopLeft, v.BottomRight)
		d.IsStroked, d.IsFilled = v.IsStroked, v.IsFilled
		return d, nil
	case *domain.EllipseShape:
		d := e.common(v)
		d.Points = e.points(v.TopLeft, v.BottomRight)
		d.IsStroked, d.IsFilled = v.IsStroked, v.IsFilled
		return d, nil
	case *domain.TextShape:
		d := e.common(v)
		d.Points = e.points(v.TopLeft, v.BottomRight)
		d.IsStroked, d.IsFilled = v.IsStroked, v.IsFilled
		d.Text = v.Text
		return d, nil
	case *domain.ImageShape:
		d := e.common(v)
		d.Points = e.points(v.TopLeft, v.BottomRight)
		d.IsStroked, d.IsFilled = v.IsStroked, v.IsFilled
		d.Key = v.Key
		return d, nil
	case *domain.ArcShape:
		d := e.common(v)
		d.Points = e.points(v.Point1, v.Point2, v.Point3, v.Point4)
		d.IsStroked, d.IsFilled = v.IsStroked, v.IsFilled
		return d, nil
	case *domain.CubicBezierShape:
		d := e.common(v)
		d.Points = e.points(v.Point1, v.Point2, v.Point3, v.Point4)
		d.IsStroked, d.IsFilled = v.IsStroked, v.IsFilled
		return d, nil
	case *domain.QuadraticBezierShape:
		d := e.common(v)
		d.Points = e.points(v.Point1, v.Point2, v.Point3)
		d.IsStroked, d.IsFilled = v.IsStroked, v.IsFilled
		return d, nil
	case *domain.PathShape:
		d := e.common(v)
		d.IsStroked, d.IsFilled = v.IsStroked, v.IsFilled
		g, err := e.geometry(v.Geometry)
		if err != nil {
			return nil, err
		}
		d.Geometry = g
		return d, nil
	case *domain.GroupShape:
		d := e.common(v)
		children, err := e.shapes(v.Shapes)
		if err != nil {
			return nil, err
		}
		d.Shapes = children
		d.Connectors = e.points(v.Connectors...)
		return d, nil
	}
	return nil, fmt.Errorf("%w: shape %T", ErrUnsupported, s)
}

func (e *encoder) geometry(g *domain.PathGeometry) (*geometryDTO, error) {
	if g == nil {
		return nil, nil
	}
	d := &geometryDTO{ID: g.ID, FillRule: g.FillRule.String(), Figures: make([]figureDTO, 0, len(g.Figures))}
	for _, f := range g.Figures {
		fd := figureDTO{Start: e.point(f.StartPoint), IsClosed: f.IsClosed, IsFilled: f.IsFilled, Segments: make([]segmentDTO, 0, len(f.Segments))}
		for _, s := range f.Segments {
			sd, err := e.segment(s)
			if err != nil {
				return nil, err
			}
			fd.Segments = append(fd.Segments, sd)
		}
		d.Figures = append(d.Figures, fd)
	}
	return d, nil
}

func (e *encoder) segment(s domain.PathSegment) (segmentDTO, error) {
	switch v := s.(type) {
	case *domain.LineSegment:
		return segmentDTO{Kind: "line", Points: e.points(v.Point)}, nil
	case *domain.ArcSegment:
		return segmentDTO{
			Kind:          "arc",
			Points:        e.points(v.Point),
			RadiusX:       v.RadiusX,
			RadiusY:       v.RadiusY,
			RotationAngle: v.RotationAngle,
			IsLargeArc:    v.IsLargeArc,
			Clockwise:     v.SweepDirection == domain.SweepClockwise,
		}, nil
	case *domain.CubicBezierSegment:
		return segmentDTO{Kind: "cubicBezier", Points: e.points(v.Point1, v.Point2, v.Point3)}, nil
	case *domain.QuadraticBezierSegment:
		return segmentDTO{Kind: "quadraticBezier", Points: e.points(v.Point1, v.Point2)}, nil
	}
	return segmentDTO{}, fmt.Errorf("%w: segment %T", ErrUnsupported, s)
}

func propertiesToDTO(props []*domain.Property) []propertyDTO {
	if len(props) == 0 {
		return nil
	}
	out := make([]propertyDTO, 0, len(props))
	for _, p := range props {
		out = append(out, propertyDTO{Name: p.Name, Value: p.Value})
	}
	return out
}

func recordToDTO(r *domain.Record) recordDTO {
	d := recordDTO{ID: r.ID, Values: make([]string, 0, len(r.Values))}
	for _, v := range r.Values {
		d.Values = append(d.Values, v.Content)
	}
	return d
}

func formatColor(c *domain.ArgbColor) string {
	if c == nil {
		return ""
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.A, c.R, c.G, c.B)
}

func arrowToDTO(a *domain.ArrowStyle) *arrowDTO {
	if a == nil {
		return nil
	}
	return &arrowDTO{Type: int(a.Type), RadiusX: a.RadiusX, RadiusY: a.RadiusY, IsStroked: a.IsStroked, IsFilled: a.IsFilled}
}

func styleToDTO(s *domain.ShapeStyle) styleDTO {
	d := styleDTO{ID: s.ID, Name: s.Name}
	if st := s.Stroke; st != nil {
		d.Stroke = &strokeDTO{
			Color:      formatColor(st.Color),
			Thickness:  st.Thickness,
			LineCap:    int(st.LineCap),
			Dashes:     st.Dashes,
			DashOffset: st.DashOffset,
			StartArrow: arrowToDTO(st.StartArrow),
			EndArrow:   arrowToDTO(st.EndArrow),
		}
	}
	if s.Fill != nil {
		d.Fill = formatColor(s.Fill.Color)
	}
	if t := s.TextStyle; t != nil {
		d.Text = &textStyleDTO{
			FontName: t.FontName, FontSize: t.FontSize, Bold: t.Bold, Italic: t.Italic,
			HAlignment: t.HAlignment, VAlignment: t.VAlignment,
		}
	}
	return d
}

func (e *encoder) layers(in []*domain.Layer) ([]layerDTO, error) {
	out := make([]layerDTO, 0, len(in))
	for _, l := range in {
		shapes, err := e.shapes(l.Shapes)
		if err != nil {
			return nil, fmt.Errorf("layer %q: %w", l.Name, err)
		}
		out = append(out, layerDTO{ID: l.ID, Name: l.Name, IsVisible: l.IsVisible, Shapes: shapes})
	}
	return out, nil
}

func (e *encoder) page(pg *domain.Page) (pageDTO, error) {
	layers, err := e.layers(pg.Layers)
	if err != nil {
		return pageDTO{}, fmt.Errorf("page %q: %w", pg.Name, err)
	}
	d := pageDTO{
		ID:            pg.ID,
		Name:          pg.Name,
		Width:         pg.Width,
		Height:        pg.Height,
		Background:    formatColor(pg.Background),
		IsGridEnabled: pg.IsGridEnabled,
		GridCellWidth: pg.GridCellWidth,
		Properties:    propertiesToDTO(pg.Properties),
		Layers:        layers,
	}
	if pg.Template != nil {
		d.Template = pg.Template.ID
	}
	if pg.CurrentLayer != nil {
		d.CurrentLayer = pg.CurrentLayer.ID
	}
	return d, nil
}

func (e *encoder) project(p *domain.Project) (*projectDTO, error) {
	d := &projectDTO{
		Format:         FormatProject,
		Version:        Version,
		ID:             p.ID,
		Name:           p.Name,
		StyleLibraries: []styleLibraryDTO{},
		GroupLibraries: []groupLibraryDTO{},
		Databases:      []databaseDTO{},
		Templates:      []pageDTO{},
		Documents:      []documentDTO{},
	}
	o := p.Options
	if o == nil {
		o = domain.DefaultOptions()
	}
	d.Options = optionsDTO{
		SnapToGrid: o.SnapToGrid, SnapX: o.SnapX, SnapY: o.SnapY, HitThreshold: o.HitThreshold,
		MoveMode: o.MoveMode.String(), DefaultIsStroked: o.DefaultIsStroked, DefaultIsFilled: o.DefaultIsFilled,
		DefaultFillRule: o.DefaultFillRule.String(), TryToConnect: o.TryToConnect, DrawPoints: o.DrawPoints,
	}
	for _, lib := range p.StyleLibraries {
		ld := styleLibraryDTO{ID: lib.ID, Name: lib.Name, Items: make([]string, 0, len(lib.Items))}
		for _, s := range lib.Items {
			ld.Items = append(ld.Items, e.style(s))
		}
		ld.Selected = e.style(lib.Selected)
		d.StyleLibraries = append(d.StyleLibraries, ld)
	}
	for _, lib := range p.GroupLibraries {
		ld := groupLibraryDTO{ID: lib.ID, Name: lib.Name, Items: make([]*shapeDTO, 0, len(lib.Items))}
		for _, g := range lib.Items {
			gd, err := e.shape(g)
			if err != nil {
				return nil, fmt.Errorf("group library %q: %w", lib.Name, err)
			}
			ld.Items = append(ld.Items, gd)
		}
		if lib.Selected != nil {
			ld.Selected = lib.Selected.ID()
		}
		d.GroupLibraries = append(d.GroupLibraries, ld)
	}
	for _, db := range p.Databases {
		dd := databaseDTO{ID: db.ID, Name: db.Name, IDColumnName: db.IDColumnName, Columns: []columnDTO{}, Records: []recordDTO{}}
		for _, c := range db.Columns {
			dd.Columns = append(dd.Columns, columnDTO{ID: c.ID, Name: c.Name, IsVisible: c.IsVisible})
		}
		for _, r := range db.Records {
			dd.Records = append(dd.Records, recordToDTO(r))
		}
		d.Databases = append(d.Databases, dd)
	}
	for _, t := range p.Templates {
		td, err := e.page(t)
		if err != nil {
			return nil, fmt.Errorf("template: %w", err)
		}
		d.Templates = append(d.Templates, td)
	}
	for _, doc := range p.Documents {
		dd := documentDTO{ID: doc.ID, Name: doc.Name, IsExpanded: doc.IsExpanded, Pages: make([]pageDTO, 0, len(doc.Pages))}
		for _, pg := range doc.Pages {
			pd, err := e.page(pg)
			if err != nil {
				return nil, fmt.Errorf("document %q: %w", doc.Name, err)
			}
			dd.Pages = append(dd.Pages, pd)
		}
		d.Documents = append(d.Documents, dd)
	}
	if p.CurrentStyleLibrary != nil {
		d.CurrentStyleLibrary = p.CurrentStyleLibrary.ID
	}
	if p.CurrentGroupLibrary != nil {
		d.CurrentGroupLibrary = p.CurrentGroupLibrary.ID
	}
	if p.CurrentDatabase != nil {
		d.CurrentDatabase = p.CurrentDatabase.ID
	}
	if p.CurrentTemplate != nil {
		d.CurrentTemplate = p.CurrentTemplate.ID
	}
	if p.CurrentDocument != nil {
		d.CurrentDocument = p.CurrentDocument.ID
	}
	if p.CurrentPage != nil {
		d.CurrentPage = p.CurrentPage.ID
	}
	d.Styles = e.styles
	if d.Styles == nil {
		d.Styles = []styleDTO{}
	}
	return d, nil
}
