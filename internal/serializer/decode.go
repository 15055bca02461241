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
	"strconv"
	"strings"

	"core2d/internal/domain"
	"core2d/internal/typeid"
)

type decoder struct {
	res     Resolver
	styles  map[string]*domain.ShapeStyle
	points  map[string]*domain.PointShape
	records map[string]*domain.Record
}

func newDecoder(res Resolver) *decoder {
	return &decoder{
		res:     res,
		styles:  make(map[string]*domain.ShapeStyle),
		points:  make(map[string]*domain.PointShape),
		records: make(map[string]*domain.Record),
	}
}

func (d *decoder) id(old, prefix string) string {
	if d.res.Fresh || old == "" {
		return typeid.New(prefix)
	}
	return old
}

func (d *decoder) styleTable(in []styleDTO) error {
	for _, sd := range in {
		if sd.ID == "" {
			return fmt.Errorf("%w: style without id", ErrInvalid)
		}
		if d.res.Style != nil {
			if s := d.res.Style(sd.ID); s != nil {
				d.styles[sd.ID] = s
				continue
			}
		}
		s, err := styleFromDTO(sd)
		if err != nil {
			return err
		}
		d.styles[sd.ID] = s
	}
	return nil
}

func (d *decoder) style(id string) (*domain.ShapeStyle, error) {
	if id == "" {
		return nil, nil
	}
	if s, ok := d.styles[id]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("%w: unknown style %q", ErrInvalid, id)
}

// recordTable prefers live records; the rest are decoded without an owner.
func (d *decoder) recordTable(in []recordDTO) {
	for _, rd := range in {
		if d.res.Record != nil {
			if r := d.res.Record(rd.ID); r != nil {
				d.records[rd.ID] = r
				continue
			}
		}
		r := domain.NewRecord(rd.Values...)
		r.ID = rd.ID
		d.records[rd.ID] = r
	}
}

// record resolves a binding; unknown ids leave the shape unbound.
func (d *decoder) record(id string) *domain.Record {
	if id == "" {
		return nil
	}
	if r, ok := d.records[id]; ok {
		return r
	}
	if d.res.Record != nil {
		return d.res.Record(id)
	}
	return nil
}

func (d *decoder) common(s domain.Shape, sd *shapeDTO, prefix string) error {
	st, err := d.style(sd.Style)
	if err != nil {
		return err
	}
	s.SetID(d.id(sd.ID, prefix))
	s.SetName(sd.Name)
	s.SetStyle(st)
	s.SetState(domain.ShapeState(sd.State))
	s.SetRecord(d.record(sd.Record))
	if len(sd.Properties) > 0 {
		s.SetProperties(propertiesFromDTO(sd.Properties))
	}
	return nil
}

func (d *decoder) point(sd *shapeDTO) (*domain.PointShape, error) {
	if sd == nil {
		return nil, fmt.Errorf("%w: missing point", ErrInvalid)
	}
	if sd.ID != "" {
		if p, ok := d.points[sd.ID]; ok {
			return p, nil
		}
	}
	p := domain.NewPoint(sd.X, sd.Y)
	if err := d.common(p, sd, typeid.PrefixPoint); err != nil {
		return nil, err
	}
	if sd.ID != "" {
		d.points[sd.ID] = p
	}
	return p, nil
}

func (d *decoder) pointsN(sd *shapeDTO, n int) ([]*domain.PointShape, error) {
	if len(sd.Points) != n {
		return nil, fmt.Errorf("%w: %s %q needs %d points, got %d", ErrInvalid, sd.Kind, sd.ID, n, len(sd.Points))
	}
	return d.pointList(sd.Points)
}

func (d *decoder) pointList(in []*shapeDTO) ([]*domain.PointShape, error) {
	out := make([]*domain.PointShape, 0, len(in))
	for _, pd := range in {
		p, err := d.point(pd)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (d *decoder) shapes(in []*shapeDTO) ([]domain.Shape, error) {
	out := make([]domain.Shape, 0, len(in))
	for _, sd := range in {
		s, err := d.shape(sd)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (d *decoder) shape(sd *shapeDTO) (domain.Shape, error) {
	if sd == nil {
		return nil, fmt.Errorf("%w: null shape", ErrInvalid)
	}
	kind, ok := domain.ParseKind(sd.Kind)
	if !ok {
		return nil, fmt.Errorf("%w: shape kind %q", ErrUnsupported, sd.Kind)
	}
	if kind == domain.KindPoint {
		return d.point(sd)
	}
	var out domain.Shape
	switch kind {
	case domain.KindLine:
		pts, err := d.pointsN(sd, 2)
		if err != nil {
			return nil, err
		}
		out = domain.NewLine(pts[0], pts[1])
	case domain.KindRectangle:
		pts, err := d.pointsN(sd, 2)
		if err != nil {
			return nil, err
		}
		r := domain.NewRectangle(pts[0], pts[1])
		r.IsStroked, r.IsFilled = sd.IsStroked, sd.IsFilled
		out = r
	case domain.KindEllipse:
		pts, err := d.pointsN(sd, 2)
		if err != nil {
			return nil, err
		}
		e := domain.NewEllipse(pts[0], pts[1])
		e.IsStroked, e.IsFilled = sd.IsStroked, sd.IsFilled
		out = e
	case domain.KindText:
		pts, err := d.pointsN(sd, 2)
		if err != nil {
			return nil, err
		}
		t := domain.NewText(pts[0], pts[1], sd.Text)
		t.IsStroked, t.IsFilled = sd.IsStroked, sd.IsFilled
		out = t
	case domain.KindImage:
		pts, err := d.pointsN(sd, 2)
		if err != nil {
			return nil, err
		}
		i := domain.NewImage(pts[0], pts[1], sd.Key)
		i.IsStroked, i.IsFilled = sd.IsStroked, sd.IsFilled
		out = i
	case domain.KindArc:
		pts, err := d.pointsN(sd, 4)
		if err != nil {
			return nil, err
		}
		a := domain.NewArc(pts[0], pts[1], pts[2], pts[3])
		a.IsStroked, a.IsFilled = sd.IsStroked, sd.IsFilled
		out = a
	case domain.KindCubicBezier:
		pts, err := d.pointsN(sd, 4)
		if err != nil {
			return nil, err
		}
		c := domain.NewCubicBezier(pts[0], pts[1], pts[2], pts[3])
		c.IsStroked, c.IsFilled = sd.IsStroked, sd.IsFilled
		out = c
	case domain.KindQuadraticBezier:
		pts, err := d.pointsN(sd, 3)
		if err != nil {
			return nil, err
		}
		q := domain.NewQuadraticBezier(pts[0], pts[1], pts[2])
		q.IsStroked, q.IsFilled = sd.IsStroked, sd.IsFilled
		out = q
	case domain.KindPath:
		g, err := d.geometry(sd.Geometry)
		if err != nil {
			return nil, err
		}
		p := domain.NewPath(g)
		p.IsStroked, p.IsFilled = sd.IsStroked, sd.IsFilled
		out = p
	case domain.KindGroup:
		children, err := d.shapes(sd.Shapes)
		if err != nil {
			return nil, err
		}
		connectors, err := d.pointList(sd.Connectors)
		if err != nil {
			return nil, err
		}
		g := domain.NewGroup(sd.Name)
		g.Shapes = children
		g.Connectors = connectors
		out = g
	default:
		return nil, fmt.Errorf("%w: shape kind %q", ErrUnsupported, sd.Kind)
	}
	if err := d.common(out, sd, typeid.PrefixShape); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *decoder) geometry(gd *geometryDTO) (*domain.PathGeometry, error) {
	if gd == nil {
		return nil, fmt.Errorf("%w: path without geometry", ErrInvalid)
	}
	g := domain.NewPathGeometry(parseFillRule(gd.FillRule))
	g.ID = d.id(gd.ID, typeid.PrefixSegment)
	figures := make([]*domain.PathFigure, 0, len(gd.Figures))
	for _, fd := range gd.Figures {
		start, err := d.point(fd.Start)
		if err != nil {
			return nil, err
		}
		f := domain.NewPathFigure(start, fd.IsClosed)
		f.IsFilled = fd.IsFilled
		segs := make([]domain.PathSegment, 0, len(fd.Segments))
		for _, sd := range fd.Segments {
			s, err := d.segment(sd)
			if err != nil {
				return nil, err
			}
			segs = append(segs, s)
		}
		f.Segments = segs
		figures = append(figures, f)
	}
	g.Figures = figures
	return g, nil
}

var segmentPoints = map[string]int{"line": 1, "arc": 1, "cubicBezier": 3, "quadraticBezier": 2}

func (d *decoder) segment(sd segmentDTO) (domain.PathSegment, error) {
	n, ok := segmentPoints[sd.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: segment kind %q", ErrUnsupported, sd.Kind)
	}
	if len(sd.Points) != n {
		return nil, fmt.Errorf("%w: %s segment needs %d points, got %d", ErrInvalid, sd.Kind, n, len(sd.Points))
	}
	pts, err := d.pointList(sd.Points)
	if err != nil {
		return nil, err
	}
	switch sd.Kind {
	case "line":
		return &domain.LineSegment{Point: pts[0]}, nil
	case "arc":
		a := &domain.ArcSegment{
			Point:         pts[0],
			RadiusX:       sd.RadiusX,
			RadiusY:       sd.RadiusY,
			RotationAngle: sd.RotationAngle,
			IsLargeArc:    sd.IsLargeArc,
		}
		if sd.Clockwise {
			a.SweepDirection = domain.SweepClockwise
		}
		return a, nil
	case "cubicBezier":
		return &domain.CubicBezierSegment{Point1: pts[0], Point2: pts[1], Point3: pts[2]}, nil
	default:
		return &domain.QuadraticBezierSegment{Point1: pts[0], Point2: pts[1]}, nil
	}
}

func parseFillRule(s string) domain.FillRule {
	if s == domain.FillNonZero.String() {
		return domain.FillNonZero
	}
	return domain.FillEvenOdd
}

func propertiesFromDTO(in []propertyDTO) []*domain.Property {
	out := make([]*domain.Property, 0, len(in))
	for _, p := range in {
		out = append(out, &domain.Property{Name: p.Name, Value: p.Value})
	}
	return out
}

// parseColor reads "#AARRGGBB" (or "#RRGGBB" as opaque).
func parseColor(s string) (*domain.ArgbColor, error) {
	if s == "" {
		return nil, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 6 {
		hex = "FF" + hex
	}
	if len(hex) != 8 {
		return nil, fmt.Errorf("%w: color %q", ErrInvalid, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: color %q", ErrInvalid, s)
	}
	return domain.NewColor(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

func arrowFromDTO(a *arrowDTO) *domain.ArrowStyle {
	if a == nil {
		return &domain.ArrowStyle{}
	}
	return &domain.ArrowStyle{Type: domain.ArrowType(a.Type), RadiusX: a.RadiusX, RadiusY: a.RadiusY, IsStroked: a.IsStroked, IsFilled: a.IsFilled}
}

func styleFromDTO(sd styleDTO) (*domain.ShapeStyle, error) {
	s := &domain.ShapeStyle{ID: sd.ID, Name: sd.Name}
	if st := sd.Stroke; st != nil {
		c, err := parseColor(st.Color)
		if err != nil {
			return nil, err
		}
		s.Stroke = &domain.StrokeStyle{
			Color:      c,
			Thickness:  st.Thickness,
			LineCap:    domain.LineCap(st.LineCap),
			Dashes:     st.Dashes,
			DashOffset: st.DashOffset,
			StartArrow: arrowFromDTO(st.StartArrow),
			EndArrow:   arrowFromDTO(st.EndArrow),
		}
	}
	if sd.Fill != "" {
		c, err := parseColor(sd.Fill)
		if err != nil {
			return nil, err
		}
		s.Fill = &domain.FillStyle{Color: c}
	}
	if t := sd.Text; t != nil {
		s.TextStyle = &domain.TextStyle{
			FontName: t.FontName, FontSize: t.FontSize, Bold: t.Bold, Italic: t.Italic,
			HAlignment: t.HAlignment, VAlignment: t.VAlignment,
		}
	}
	return s, nil
}

type pendingTemplate struct {
	page *domain.Page
	id   string
}

func (d *decoder) page(pd pageDTO, pending *[]pendingTemplate) (*domain.Page, error) {
	pg := domain.NewPage(pd.Name)
	if pd.ID != "" {
		pg.ID = pd.ID
	}
	pg.Width, pg.Height = pd.Width, pd.Height
	bg, err := parseColor(pd.Background)
	if err != nil {
		return nil, err
	}
	pg.Background = bg
	pg.IsGridEnabled = pd.IsGridEnabled
	pg.GridCellWidth = pd.GridCellWidth
	if len(pd.Properties) > 0 {
		pg.Properties = propertiesFromDTO(pd.Properties)
	}
	layers := make([]*domain.Layer, 0, len(pd.Layers))
	for _, ld := range pd.Layers {
		l := domain.NewLayer(ld.Name)
		if ld.ID != "" {
			l.ID = ld.ID
		}
		l.IsVisible = ld.IsVisible
		shapes, err := d.shapes(ld.Shapes)
		if err != nil {
			return nil, fmt.Errorf("layer %q: %w", ld.Name, err)
		}
		l.Shapes = shapes
		layers = append(layers, l)
	}
	pg.SetLayers(layers)
	for _, l := range layers {
		if l.ID == pd.CurrentLayer {
			pg.CurrentLayer = l
		}
	}
	if pg.CurrentLayer == nil && len(layers) > 0 {
		pg.CurrentLayer = layers[0]
	}
	if pd.Template != "" {
		*pending = append(*pending, pendingTemplate{page: pg, id: pd.Template})
	}
	return pg, nil
}

func (d *decoder) project(pd *projectDTO) (*domain.Project, error) {
	p := domain.NewProject(pd.Name)
	if pd.ID != "" {
		p.ID = pd.ID
	}
	o := p.Options
	o.SnapToGrid, o.SnapX, o.SnapY = pd.Options.SnapToGrid, pd.Options.SnapX, pd.Options.SnapY
	o.HitThreshold = pd.Options.HitThreshold
	if m, ok := domain.ParseMoveMode(pd.Options.MoveMode); ok {
		o.MoveMode = m
	}
	o.DefaultIsStroked, o.DefaultIsFilled = pd.Options.DefaultIsStroked, pd.Options.DefaultIsFilled
	o.DefaultFillRule = parseFillRule(pd.Options.DefaultFillRule)
	o.TryToConnect, o.DrawPoints = pd.Options.TryToConnect, pd.Options.DrawPoints

	if err := d.styleTable(pd.Styles); err != nil {
		return nil, err
	}

	dbs := make([]*domain.Database, 0, len(pd.Databases))
	for _, dd := range pd.Databases {
		db := domain.NewDatabase(dd.Name)
		db.ID, db.IDColumnName = dd.ID, dd.IDColumnName
		cols := make([]*domain.Column, 0, len(dd.Columns))
		for _, cd := range dd.Columns {
			cols = append(cols, &domain.Column{ID: cd.ID, Name: cd.Name, IsVisible: cd.IsVisible})
		}
		db.SetColumns(cols)
		recs := make([]*domain.Record, 0, len(dd.Records))
		for _, rd := range dd.Records {
			r := domain.NewRecord(rd.Values...)
			r.ID = rd.ID
			d.records[r.ID] = r
			recs = append(recs, r)
		}
		db.SetRecords(recs)
		dbs = append(dbs, db)
	}
	p.Databases = dbs

	for _, ld := range pd.StyleLibraries {
		items := make([]*domain.ShapeStyle, 0, len(ld.Items))
		for _, id := range ld.Items {
			s, err := d.style(id)
			if err != nil {
				return nil, fmt.Errorf("style library %q: %w", ld.Name, err)
			}
			items = append(items, s)
		}
		lib := domain.NewLibrary(ld.Name, items...)
		lib.ID = ld.ID
		if sel, err := d.style(ld.Selected); err == nil && sel != nil {
			lib.Selected = sel
		}
		p.StyleLibraries = append(p.StyleLibraries, lib)
	}
	for _, ld := range pd.GroupLibraries {
		items := make([]*domain.GroupShape, 0, len(ld.Items))
		for _, sd := range ld.Items {
			s, err := d.shape(sd)
			if err != nil {
				return nil, fmt.Errorf("group library %q: %w", ld.Name, err)
			}
			g, ok := s.(*domain.GroupShape)
			if !ok {
				return nil, fmt.Errorf("%w: group library %q holds a %s", ErrInvalid, ld.Name, s.Kind())
			}
			items = append(items, g)
		}
		lib := domain.NewLibrary(ld.Name, items...)
		lib.ID = ld.ID
		for _, g := range items {
			if g.ID() == ld.Selected {
				lib.Selected = g
			}
		}
		p.GroupLibraries = append(p.GroupLibraries, lib)
	}

	var pending []pendingTemplate
	pages := make(map[string]*domain.Page)
	for _, td := range pd.Templates {
		t, err := d.page(td, &pending)
		if err != nil {
			return nil, fmt.Errorf("template %q: %w", td.Name, err)
		}
		pages[t.ID] = t
		p.Templates = append(p.Templates, t)
	}
	docs := make([]*domain.Document, 0, len(pd.Documents))
	for _, dd := range pd.Documents {
		doc := domain.NewDocument(dd.Name)
		doc.ID, doc.IsExpanded = dd.ID, dd.IsExpanded
		docPages := make([]*domain.Page, 0, len(dd.Pages))
		for _, pgd := range dd.Pages {
			pg, err := d.page(pgd, &pending)
			if err != nil {
				return nil, fmt.Errorf("document %q: %w", dd.Name, err)
			}
			pages[pg.ID] = pg
			docPages = append(docPages, pg)
		}
		doc.SetPages(docPages)
		docs = append(docs, doc)
	}
	p.SetDocuments(docs)
	for _, pt := range pending {
		t, ok := pages[pt.id]
		if !ok {
			return nil, fmt.Errorf("%w: page %q uses unknown template %q", ErrInvalid, pt.page.Name, pt.id)
		}
		pt.page.Template = t
	}

	for _, l := range p.StyleLibraries {
		if l.ID == pd.CurrentStyleLibrary {
			p.CurrentStyleLibrary = l
		}
	}
	for _, l := range p.GroupLibraries {
		if l.ID == pd.CurrentGroupLibrary {
			p.CurrentGroupLibrary = l
		}
	}
	p.CurrentDatabase = p.FindDatabase(pd.CurrentDatabase)
	if pd.CurrentTemplate != "" {
		p.CurrentTemplate = pages[pd.CurrentTemplate]
	}
	for _, doc := range docs {
		if doc.ID == pd.CurrentDocument {
			p.CurrentDocument = doc
		}
	}
	if pg, ok := pages[pd.CurrentPage]; ok && pg.Owner != nil {
		p.CurrentPage = pg
		p.CurrentDocument = pg.Owner
	}
	return p, nil
}
