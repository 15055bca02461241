/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package factory creates default documents, styles and shapes, and opens,
// saves and clones them through the serializer.
package factory

import (
	"fmt"
	"io"
	"log/slog"

	"core2d/internal/domain"
	applog "core2d/internal/log"
	"core2d/internal/serializer"
)

// Factory is the document and shape factory. A nil options pointer selects
// domain.DefaultOptions.
type Factory struct {
	options *domain.Options
	log     *slog.Logger
}

func New(options *domain.Options, logger *slog.Logger) *Factory {
	if options == nil {
		options = domain.DefaultOptions()
	}
	if logger == nil {
		logger = applog.L()
	}
	return &Factory{options: options, log: applog.Component(logger, "factory")}
}

// Options returns a copy of the factory options, detached from any subscribers.
func (f *Factory) Options() *domain.Options {
	o := *f.options
	o.Notifier = domain.Notifier{}
	return &o
}

// NewProject returns a project with the default style library, templates,
// database and one document holding one page.
func (f *Factory) NewProject(name string) *domain.Project {
	p := domain.NewProject(name)
	p.Options = f.Options()

	styles := domain.NewLibrary("Default", f.DefaultStyles()...)
	p.StyleLibraries = []*domain.Library[*domain.ShapeStyle]{styles}
	p.CurrentStyleLibrary = styles

	groups := domain.NewLibrary[*domain.GroupShape]("Default")
	p.GroupLibraries = []*domain.Library[*domain.GroupShape]{groups}
	p.CurrentGroupLibrary = groups

	db := domain.NewDatabase("Db")
	db.AddColumn("Column0")
	db.AddColumn("Column1")
	p.Databases = []*domain.Database{db}
	p.CurrentDatabase = db

	empty := f.NewTemplate("Empty", 600, 600)
	grid := f.NewTemplate("Grid", 600, 600)
	grid.IsGridEnabled = true
	p.Templates = []*domain.Page{empty, grid}
	p.CurrentTemplate = empty

	doc := f.NewDocument("Document")
	doc.SetPages([]*domain.Page{f.NewPage(empty, "Page")})
	p.SetDocuments([]*domain.Document{doc})
	p.CurrentDocument = doc
	p.CurrentPage = doc.Pages[0]
	return p
}

func (f *Factory) NewDocument(name string) *domain.Document {
	d := domain.NewDocument(name)
	d.IsExpanded = true
	return d
}

// NewTemplate returns a page meant to be used as a template.
func (f *Factory) NewTemplate(name string, width, height float64) *domain.Page {
	t := domain.NewPage(name)
	t.Width, t.Height = width, height
	t.Background = domain.NewColor(0xFF, 0xFF, 0xFF, 0xFF)
	t.SetLayers([]*domain.Layer{domain.NewLayer("TemplateLayer")})
	t.CurrentLayer = t.Layers[0]
	return t
}

// NewPage returns a page with one layer, sized after template when given.
func (f *Factory) NewPage(template *domain.Page, name string) *domain.Page {
	pg := domain.NewPage(name)
	if template != nil {
		pg.Template = template
		pg.Width, pg.Height = template.Width, template.Height
	}
	pg.SetLayers([]*domain.Layer{domain.NewLayer("Layer1")})
	pg.CurrentLayer = pg.Layers[0]
	return pg
}

// NewLayer returns a layer owned by page; it is not added to the page.
func (f *Factory) NewLayer(page *domain.Page, name string) *domain.Layer {
	l := domain.NewLayer(name)
	l.Owner = page
	return l
}

// Open decodes a project. Errors are wrapped and logged; nothing is returned on failure.
func (f *Factory) Open(r io.Reader) (*domain.Project, error) {
	p, err := serializer.DecodeProject(r)
	if err != nil {
		f.log.Error("open project failed", slog.Any("err", err))
		return nil, fmt.Errorf("open project: %w", err)
	}
	return p, nil
}

// Save encodes p to w.
func (f *Factory) Save(w io.Writer, p *domain.Project) error {
	if err := serializer.EncodeProject(w, p); err != nil {
		f.log.Error("save project failed", slog.Any("err", err))
		return fmt.Errorf("save project: %w", err)
	}
	return nil
}

// Clone deep-copies shapes with fresh identities; styles and record
// bindings are shared with the originals.
func (f *Factory) Clone(shapes []domain.Shape) ([]domain.Shape, error) {
	out, err := serializer.Clone(shapes)
	if err != nil {
		return nil, fmt.Errorf("clone: %w", err)
	}
	return out, nil
}

// CloneGroup clones a single group, e.g. a library item.
func (f *Factory) CloneGroup(g *domain.GroupShape) (*domain.GroupShape, error) {
	out, err := f.Clone([]domain.Shape{g})
	if err != nil {
		return nil, err
	}
	return out[0].(*domain.GroupShape), nil
}

// Export encodes shapes in the transfer form used by the clipboard and by duplicate.
func (f *Factory) Export(shapes []domain.Shape) ([]byte, error) {
	data, err := serializer.EncodeShapes(shapes)
	if err != nil {
		return nil, fmt.Errorf("export shapes: %w", err)
	}
	return data, nil
}

// Import decodes the transfer form with fresh identities. Styles and records
// resolve against p; records p does not know come back with a nil Owner.
func (f *Factory) Import(data []byte, p *domain.Project) ([]domain.Shape, error) {
	shapes, err := serializer.DecodeShapes(data, serializer.ProjectResolver(p, true))
	if err != nil {
		return nil, fmt.Errorf("import shapes: %w", err)
	}
	return shapes, nil
}
