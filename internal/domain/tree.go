/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import (
	"slices"

	"core2d/internal/typeid"
)

// Project is the root of the document tree.
type Project struct {
	Notifier
	ID             string
	Name           string
	Options        *Options
	StyleLibraries []*Library[*ShapeStyle]
	GroupLibraries []*Library[*GroupShape]
	Databases      []*Database
	Templates      []*Page
	Documents      []*Document

	CurrentStyleLibrary *Library[*ShapeStyle]
	CurrentGroupLibrary *Library[*GroupShape]
	CurrentDatabase     *Database
	CurrentTemplate     *Page
	CurrentDocument     *Document
	CurrentPage         *Page
}

func NewProject(name string) *Project {
	return &Project{ID: typeid.NewProjectID(), Name: name, Options: DefaultOptions()}
}

func (p *Project) SetName(name string) {
	if p.Name == name {
		return
	}
	p.Name = name
	p.Notify("Name")
}

func (p *Project) SetDocuments(docs []*Document) {
	for _, d := range docs {
		d.Owner = p
	}
	p.Documents = docs
	p.Notify("Documents")
}

func (p *Project) SetTemplates(templates []*Page) {
	p.Templates = templates
	p.Notify("Templates")
}

func (p *Project) SetDatabases(dbs []*Database) {
	p.Databases = dbs
	p.Notify("Databases")
}

func (p *Project) SetStyleLibraries(libs []*Library[*ShapeStyle]) {
	p.StyleLibraries = libs
	p.Notify("StyleLibraries")
}

func (p *Project) SetGroupLibraries(libs []*Library[*GroupShape]) {
	p.GroupLibraries = libs
	p.Notify("GroupLibraries")
}

func (p *Project) SetCurrentDocument(d *Document) {
	p.CurrentDocument = d
	p.Notify("CurrentDocument")
}

// SetCurrentPage also makes the page's document current.
func (p *Project) SetCurrentPage(pg *Page) {
	if pg != nil && pg.Owner != nil && pg.Owner != p.CurrentDocument {
		p.SetCurrentDocument(pg.Owner)
	}
	p.CurrentPage = pg
	p.Notify("CurrentPage")
}

func (p *Project) SetCurrentStyleLibrary(l *Library[*ShapeStyle]) {
	p.CurrentStyleLibrary = l
	p.Notify("CurrentStyleLibrary")
}

func (p *Project) SetCurrentGroupLibrary(l *Library[*GroupShape]) {
	p.CurrentGroupLibrary = l
	p.Notify("CurrentGroupLibrary")
}

func (p *Project) SetCurrentDatabase(d *Database) {
	p.CurrentDatabase = d
	p.Notify("CurrentDatabase")
}

func (p *Project) SetCurrentTemplate(t *Page) {
	p.CurrentTemplate = t
	p.Notify("CurrentTemplate")
}

// AddDatabase appends db to the project.
func (p *Project) AddDatabase(db *Database) {
	dbs := make([]*Database, 0, len(p.Databases)+1)
	p.SetDatabases(append(append(dbs, p.Databases...), db))
}

// FindDatabase looks a database up by id.
func (p *Project) FindDatabase(id string) *Database {
	for _, d := range p.Databases {
		if d.ID == id {
			return d
		}
	}
	return nil
}

// CurrentLayer returns the current layer of the current page, if any.
func (p *Project) CurrentLayer() *Layer {
	if p == nil || p.CurrentPage == nil {
		return nil
	}
	return p.CurrentPage.CurrentLayer
}

// CurrentStyle returns the selected style of the current style library.
func (p *Project) CurrentStyle() *ShapeStyle {
	if p == nil || p.CurrentStyleLibrary == nil {
		return nil
	}
	return p.CurrentStyleLibrary.Selected
}

// Library is a named, selectable collection of reusable items.
type Library[T comparable] struct {
	Notifier
	ID       string
	Name     string
	Items    []T
	Selected T
}

func NewLibrary[T comparable](name string, items ...T) *Library[T] {
	l := &Library[T]{ID: typeid.NewLibraryID(), Name: name, Items: items}
	if len(items) > 0 {
		l.Selected = items[0]
	}
	return l
}

func (l *Library[T]) SetItems(items []T) {
	l.Items = items
	l.Notify("Items")
}

func (l *Library[T]) SetSelected(item T) {
	if l.Selected == item {
		return
	}
	l.Selected = item
	l.Notify("Selected")
}

type Document struct {
	Notifier
	ID         string
	Name       string
	Pages      []*Page
	IsExpanded bool
	// Owner is a back-reference and is not serialized.
	Owner *Project
}

func NewDocument(name string) *Document {
	return &Document{ID: typeid.NewDocumentID(), Name: name}
}

func (d *Document) SetPages(pages []*Page) {
	for _, p := range pages {
		p.Owner = d
	}
	d.Pages = pages
	d.Notify("Pages")
}

// Page is either a document page or a template. Working and helper layers
// hold transient content and are never persisted.
type Page struct {
	Notifier
	ID            string
	Name          string
	Width         float64
	Height        float64
	Layers        []*Layer
	CurrentLayer  *Layer
	WorkingLayer  *Layer
	HelperLayer   *Layer
	CurrentShape  Shape
	Template      *Page
	Background    *ArgbColor
	IsGridEnabled bool
	GridCellWidth float64
	Properties    []*Property
	// Owner is a back-reference and is not serialized.
	Owner *Document
}

func NewPage(name string) *Page {
	pg := &Page{ID: typeid.NewPageID(), Name: name, Width: 900, Height: 600, GridCellWidth: 30}
	pg.WorkingLayer = NewLayer("Working")
	pg.WorkingLayer.Owner = pg
	pg.HelperLayer = NewLayer("Helper")
	pg.HelperLayer.Owner = pg
	return pg
}

func (pg *Page) SetName(name string) {
	if pg.Name == name {
		return
	}
	pg.Name = name
	pg.Notify("Name")
}

func (pg *Page) SetLayers(layers []*Layer) {
	for _, l := range layers {
		l.Owner = pg
	}
	pg.Layers = layers
	pg.Notify("Layers")
}

func (pg *Page) SetCurrentLayer(l *Layer) {
	if pg.CurrentLayer == l {
		return
	}
	pg.CurrentLayer = l
	pg.Notify("CurrentLayer")
}

func (pg *Page) SetCurrentShape(s Shape) {
	if pg.CurrentShape == s {
		return
	}
	pg.CurrentShape = s
	pg.Notify("CurrentShape")
}

func (pg *Page) SetTemplate(t *Page) {
	if pg.Template == t {
		return
	}
	pg.Template = t
	pg.Notify("Template")
}

func (pg *Page) SetBackground(c *ArgbColor) {
	pg.Background = c
	pg.Notify("Background")
}

func (pg *Page) SetGridEnabled(v bool) {
	if pg.IsGridEnabled == v {
		return
	}
	pg.IsGridEnabled = v
	pg.Notify("IsGridEnabled")
}

func (pg *Page) SetGridCellWidth(v float64) {
	if pg.GridCellWidth == v {
		return
	}
	pg.GridCellWidth = v
	pg.Notify("GridCellWidth")
}

// EffectiveBackground is the page background, falling back to the template's.
func (pg *Page) EffectiveBackground() *ArgbColor {
	if pg.Background != nil || pg.Template == nil {
		return pg.Background
	}
	return pg.Template.EffectiveBackground()
}

// EffectiveGrid reports whether the page or its template enables the grid.
func (pg *Page) EffectiveGrid() bool {
	if pg.IsGridEnabled {
		return true
	}
	return pg.Template != nil && pg.Template.EffectiveGrid()
}

// Layer holds shapes in paint order, later shapes in front.
type Layer struct {
	Notifier
	ID        string
	Name      string
	Shapes    []Shape
	IsVisible bool
	// Owner is a back-reference and is not serialized.
	Owner *Page
}

func NewLayer(name string) *Layer {
	return &Layer{ID: typeid.NewLayerID(), Name: name, IsVisible: true}
}

func (l *Layer) SetShapes(shapes []Shape) {
	l.Shapes = shapes
	l.Notify("Shapes")
}

func (l *Layer) SetVisible(v bool) {
	if l.IsVisible == v {
		return
	}
	l.IsVisible = v
	l.Notify("IsVisible")
}

// IndexOf returns the paint index of s or -1.
func (l *Layer) IndexOf(s Shape) int {
	return slices.Index(l.Shapes, s)
}

// Contains reports whether s is a direct member of the layer.
func (l *Layer) Contains(s Shape) bool { return l.IndexOf(s) >= 0 }

// OwnsPoint reports whether p is a control point of a shape in the layer.
func (l *Layer) OwnsPoint(p *PointShape) bool {
	for _, s := range l.Shapes {
		if slices.Contains(s.ControlPoints(), p) {
			return true
		}
	}
	return false
}
