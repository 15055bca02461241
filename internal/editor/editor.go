/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package editor is the selection and editing engine. Every structural edit
// it performs is recorded as one history entry before it is applied.
package editor

import (
	"fmt"
	"io"
	"log/slog"

	"core2d/internal/clipboard"
	"core2d/internal/domain"
	applog "core2d/internal/log"
	"core2d/internal/observer"
	"core2d/internal/pathconv"
	"core2d/internal/undo"
)

// Factory creates the shapes and layers the editor inserts and converts
// shapes to and from their transfer form.
type Factory interface {
	Point(x, y float64) *domain.PointShape
	Line(start, end *domain.PointShape, style *domain.ShapeStyle) *domain.LineShape
	Group(name string) *domain.GroupShape
	NewLayer(page *domain.Page, name string) *domain.Layer
	Clone(shapes []domain.Shape) ([]domain.Shape, error)
	Export(shapes []domain.Shape) ([]byte, error)
	Import(data []byte, p *domain.Project) ([]domain.Shape, error)
	Open(r io.Reader) (*domain.Project, error)
	Save(w io.Writer, p *domain.Project) error
}

// PathConverter turns shapes into path shapes.
type PathConverter interface {
	ToPath(s domain.Shape) (*domain.PathShape, error)
	ToStrokePath(s domain.Shape) (*domain.PathShape, error)
	ToFillPath(s domain.Shape) (*domain.PathShape, error)
	ToWindingPath(s domain.Shape) (*domain.PathShape, error)
	Simplify(s domain.Shape) (*domain.PathShape, error)
	Op(shapes []domain.Shape, op pathconv.Op) (*domain.PathShape, error)
}

// Renderer draws the current page.
type Renderer interface {
	ClearCache()
	Invalidate()
}

// Decorator shows handles around the selection.
type Decorator interface {
	Show(layer *domain.Layer, shapes []domain.Shape)
	Hide()
}

// History records reversible edits. *undo.Manager implements it.
type History interface {
	Snapshot(target undo.Target, previous, next any)
	Undo() bool
	Redo() bool
	CanUndo() bool
	CanRedo() bool
	Reset()
}

// Deps are the collaborators of an Editor. Nil fields get defaults: a
// pathconv converter, no-op renderer and decorator, an in-process
// clipboard, the global logger and an unbounded history.
type Deps struct {
	Factory       Factory
	PathConverter PathConverter
	Renderer      Renderer
	Decorator     Decorator
	Clipboard     clipboard.Clipboard
	Logger        *slog.Logger
	History       History
}

// Editor edits one loaded project at a time. It is not safe for concurrent use.
type Editor struct {
	factory   Factory
	paths     PathConverter
	renderer  Renderer
	decorator Decorator
	clip      clipboard.Clipboard
	log       *slog.Logger
	history   History
	observer  *observer.Observer

	project *domain.Project
	scale   float64

	selLayer *domain.Layer
	selected []domain.Shape
	hovered  domain.Shape
}

func New(d Deps) (*Editor, error) {
	if d.Factory == nil {
		return nil, fmt.Errorf("editor: factory is required")
	}
	if d.PathConverter == nil {
		d.PathConverter = pathconv.New(pathconv.DefaultTolerance)
	}
	if d.Renderer == nil {
		d.Renderer = nopRenderer{}
	}
	if d.Decorator == nil {
		d.Decorator = nopDecorator{}
	}
	if d.Clipboard == nil {
		d.Clipboard = &clipboard.Memory{}
	}
	if d.Logger == nil {
		d.Logger = applog.L()
	}
	if d.History == nil {
		d.History = undo.NewManager(undo.Config{})
	}
	e := &Editor{
		factory:   d.Factory,
		paths:     d.PathConverter,
		renderer:  d.Renderer,
		decorator: d.Decorator,
		clip:      d.Clipboard,
		log:       applog.Component(d.Logger, "editor"),
		history:   d.History,
		scale:     1,
	}
	e.observer = observer.New(observer.Callbacks{
		Redraw:              e.renderer.Invalidate,
		InvalidateContainer: func(*domain.Page) { e.renderer.Invalidate() },
	}, d.Logger)
	return e, nil
}

type nopRenderer struct{}

func (nopRenderer) ClearCache() {}
func (nopRenderer) Invalidate() {}

type nopDecorator struct{}

func (nopDecorator) Show(*domain.Layer, []domain.Shape) {}
func (nopDecorator) Hide()                              {}

func (e *Editor) Project() *domain.Project     { return e.project }
func (e *Editor) History() History             { return e.history }
func (e *Editor) Observer() *observer.Observer { return e.observer }

// Scale is the view zoom hit-test radii are divided by.
func (e *Editor) Scale() float64 { return e.scale }

func (e *Editor) SetScale(scale float64) {
	if scale > 0 {
		e.scale = scale
	}
}

func (e *Editor) options() *domain.Options {
	if e.project != nil && e.project.Options != nil {
		return e.project.Options
	}
	return domain.DefaultOptions()
}

func (e *Editor) currentLayer() *domain.Layer {
	if e.project == nil {
		return nil
	}
	return e.project.CurrentLayer()
}

// Load makes p the edited project. A loaded project is unloaded first.
func (e *Editor) Load(p *domain.Project) {
	if p == nil {
		return
	}
	if e.project != nil {
		e.Unload()
	}
	e.project = p
	e.observer.Attach(p)
	e.history.Reset()
	e.renderer.ClearCache()
	e.log.Info("project loaded", slog.String("project", p.Name))
}

// Unload detaches the project, clears the selection and drops history.
func (e *Editor) Unload() {
	if e.project == nil {
		return
	}
	e.clearSelection()
	e.observer.Close()
	e.history.Reset()
	e.renderer.ClearCache()
	e.log.Info("project unloaded", slog.String("project", e.project.Name))
	e.project = nil
}

// IsDirty reports whether the project changed since it was loaded or last marked clean.
func (e *Editor) IsDirty() bool { return e.observer.IsDirty() }

func (e *Editor) MarkClean() { e.observer.MarkClean() }

// Open decodes a project from r and loads it.
func (e *Editor) Open(r io.Reader) error {
	p, err := e.factory.Open(r)
	if err != nil {
		return err
	}
	e.Load(p)
	return nil
}

// Save encodes the loaded project to w and marks it clean.
func (e *Editor) Save(w io.Writer) error {
	if e.project == nil {
		return fmt.Errorf("editor: no project loaded")
	}
	if err := e.factory.Save(w, e.project); err != nil {
		return err
	}
	e.MarkClean()
	return nil
}

// Undo reverts the latest entry. The selection is cleared first.
func (e *Editor) Undo() bool {
	e.clearSelection()
	return e.history.Undo()
}

// Redo reapplies the latest undone entry. The selection is cleared first.
func (e *Editor) Redo() bool {
	e.clearSelection()
	return e.history.Redo()
}

// replaceShapes records and applies a new shape list for layer.
func (e *Editor) replaceShapes(layer *domain.Layer, next []domain.Shape) {
	e.history.Snapshot(domain.LayerShapes{Layer: layer}, layer.Shapes, next)
	layer.SetShapes(next)
}
