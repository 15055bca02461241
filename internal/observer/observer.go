/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package observer

import (
	"log/slog"
	"slices"
	"strings"

	"core2d/internal/domain"
	applog "core2d/internal/log"
)

// Callbacks receive the effects of document changes. Nil callbacks are skipped.
type Callbacks struct {
	// Dirty is called whenever document content changes.
	Dirty func()
	// Redraw requests a repaint for layer, shape, style and data changes.
	Redraw func()
	// InvalidateContainer requests a repaint of a page after a container change.
	InvalidateContainer func(page *domain.Page)
}

type binding struct {
	refs     int
	sub      domain.Subscription
	children []domain.Observable
}

// Observer subscribes one handler to every node reachable from the attached
// project. Shared nodes (styles, records, points used by several shapes) are
// reference counted and subscribed once.
type Observer struct {
	cb      Callbacks
	log     *slog.Logger
	project *domain.Project
	nodes   map[domain.Observable]*binding

	dirty   bool
	pending bool

	attaches int
	detaches int
}

func New(cb Callbacks, logger *slog.Logger) *Observer {
	if logger == nil {
		logger = applog.L()
	}
	return &Observer{
		cb:    cb,
		log:   applog.Component(logger, "observer"),
		nodes: make(map[domain.Observable]*binding),
	}
}

// Attach observes project, replacing any previously attached project.
func (o *Observer) Attach(project *domain.Project) {
	if o.project != nil {
		o.Close()
	}
	if project == nil {
		return
	}
	o.project = project
	o.add(project)
	o.dirty = false
	o.log.Debug("attached", slog.String("project", project.Name), slog.Int("nodes", len(o.nodes)))
}

// Close detaches every handler.
func (o *Observer) Close() {
	if o.project != nil {
		o.remove(o.project)
		o.project = nil
	}
	for n, b := range o.nodes {
		n.Changes().Unsubscribe(b.sub)
		o.detaches++
	}
	clear(o.nodes)
	o.pending = false
	o.log.Debug("closed", slog.Int("attaches", o.attaches), slog.Int("detaches", o.detaches))
}

// Add observes node and its subtree.
func (o *Observer) Add(node domain.Observable) {
	if node != nil {
		o.add(node)
	}
}

// Remove releases one reference to node and its subtree.
func (o *Observer) Remove(node domain.Observable) {
	if node != nil {
		o.remove(node)
	}
}

// IsAttached reports whether node currently has a handler.
func (o *Observer) IsAttached(node domain.Observable) bool {
	_, ok := o.nodes[node]
	return ok
}

// Attached returns the number of observed nodes.
func (o *Observer) Attached() int { return len(o.nodes) }

// AttachCount and DetachCount count subscriptions made and released.
func (o *Observer) AttachCount() int { return o.attaches }
func (o *Observer) DetachCount() int { return o.detaches }

func (o *Observer) IsDirty() bool { return o.dirty }
func (o *Observer) MarkClean()    { o.dirty = false }

// Flush delivers one redraw for all coalesced low priority changes.
func (o *Observer) Flush() {
	if !o.pending {
		return
	}
	o.pending = false
	if o.cb.Redraw != nil {
		o.cb.Redraw()
	}
}

// Pending reports whether a coalesced redraw is waiting for Flush.
func (o *Observer) Pending() bool { return o.pending }

func (o *Observer) add(node domain.Observable) {
	if b, ok := o.nodes[node]; ok {
		b.refs++
		return
	}
	b := &binding{refs: 1}
	o.nodes[node] = b
	b.sub = node.Changes().Subscribe(func(property string) { o.onChange(node, property) })
	o.attaches++
	b.children = children(node)
	for _, c := range b.children {
		o.add(c)
	}
}

func (o *Observer) remove(node domain.Observable) {
	b, ok := o.nodes[node]
	if !ok {
		return
	}
	b.refs--
	if b.refs > 0 {
		return
	}
	delete(o.nodes, node)
	node.Changes().Unsubscribe(b.sub)
	o.detaches++
	for _, c := range b.children {
		o.remove(c)
	}
}

func (o *Observer) onChange(node domain.Observable, property string) {
	b, ok := o.nodes[node]
	if !ok {
		return
	}
	if next := children(node); !slices.Equal(b.children, next) {
		old := b.children
		b.children = next
		for _, c := range old {
			o.remove(c)
		}
		for _, c := range next {
			o.add(c)
		}
	}
	o.effects(node, property)
}

func (o *Observer) effects(node domain.Observable, property string) {
	derived := strings.HasPrefix(property, "Effective")
	switch v := node.(type) {
	case *domain.Library[*domain.ShapeStyle], *domain.Library[*domain.GroupShape]:
		if property == "Selected" {
			o.pending = true
			return
		}
		o.markDirty()
		o.redraw()
	case *domain.Project, *domain.Document:
		o.markDirty()
		o.invalidate(o.currentPage())
	case *domain.Page:
		if !derived && property != "CurrentShape" {
			o.markDirty()
		}
		switch property {
		case "Template":
			o.raiseEffective(v, "EffectiveBackground", "EffectiveGrid")
		case "Background":
			o.raiseEffective(v, "EffectiveBackground")
		case "IsGridEnabled", "GridCellWidth":
			o.raiseEffective(v, "EffectiveGrid")
		}
		if property == "IsGridEnabled" || property == "GridCellWidth" || property == "EffectiveGrid" {
			o.pending = true
			return
		}
		o.invalidate(v)
	case *domain.TextStyle:
		o.markDirty()
		o.pending = true
	default:
		o.markDirty()
		o.redraw()
	}
}

// raiseEffective re-raises derived page properties on page and on every
// page that uses it as its template.
func (o *Observer) raiseEffective(page *domain.Page, props ...string) {
	targets := []*domain.Page{page}
	if o.project != nil {
		for _, pg := range allPages(o.project) {
			if pg != page && pg.Template == page {
				targets = append(targets, pg)
			}
		}
	}
	for _, pg := range targets {
		for _, p := range props {
			pg.Notify(p)
		}
	}
}

func allPages(p *domain.Project) []*domain.Page {
	pages := slices.Clone(p.Templates)
	for _, d := range p.Documents {
		pages = append(pages, d.Pages...)
	}
	return pages
}

func (o *Observer) currentPage() *domain.Page {
	if o.project == nil {
		return nil
	}
	return o.project.CurrentPage
}

func (o *Observer) markDirty() {
	o.dirty = true
	if o.cb.Dirty != nil {
		o.cb.Dirty()
	}
}

func (o *Observer) redraw() {
	if o.cb.Redraw != nil {
		o.cb.Redraw()
	}
}

func (o *Observer) invalidate(page *domain.Page) {
	if o.cb.InvalidateContainer != nil {
		o.cb.InvalidateContainer(page)
		return
	}
	o.redraw()
}
