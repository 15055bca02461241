/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package observer

import (
	"testing"

	"core2d/internal/domain"
)

type counts struct {
	dirty, redraw, invalidate int
	pages                     []*domain.Page
}

func newObserver(c *counts) *Observer {
	return New(Callbacks{
		Dirty:  func() { c.dirty++ },
		Redraw: func() { c.redraw++ },
		InvalidateContainer: func(p *domain.Page) {
			c.invalidate++
			c.pages = append(c.pages, p)
		},
	}, nil)
}

type fixture struct {
	project *domain.Project
	page    *domain.Page
	layer   *domain.Layer
	style   *domain.ShapeStyle
	shared  *domain.PointShape
	a, b    *domain.LineShape
}

func newFixture() *fixture {
	f := &fixture{project: domain.NewProject("p")}
	f.style = domain.NewShapeStyle("default")
	lib := domain.NewLibrary("styles", f.style)
	f.project.SetStyleLibraries([]*domain.Library[*domain.ShapeStyle]{lib})
	f.project.SetCurrentStyleLibrary(lib)

	f.shared = domain.NewPoint(10, 0)
	f.a = domain.NewLine(domain.NewPoint(0, 0), f.shared)
	f.b = domain.NewLine(f.shared, domain.NewPoint(20, 0))
	f.a.SetStyle(f.style)
	f.b.SetStyle(f.style)

	f.layer = domain.NewLayer("L")
	f.layer.SetShapes([]domain.Shape{f.a, f.b})
	f.page = domain.NewPage("page")
	f.page.SetLayers([]*domain.Layer{f.layer})
	f.page.SetCurrentLayer(f.layer)
	doc := domain.NewDocument("doc")
	doc.SetPages([]*domain.Page{f.page})
	f.project.SetDocuments([]*domain.Document{doc})
	f.project.SetCurrentPage(f.page)
	return f
}

// reachable walks the tree the way the observer does.
func reachable(root domain.Observable) map[domain.Observable]struct{} {
	seen := make(map[domain.Observable]struct{})
	var walk func(n domain.Observable)
	walk = func(n domain.Observable) {
		if _, ok := seen[n]; ok {
			return
		}
		seen[n] = struct{}{}
		for _, c := range children(n) {
			walk(c)
		}
	}
	walk(root)
	return seen
}

func assertMatchesTree(t *testing.T, o *Observer, root domain.Observable) {
	t.Helper()
	want := reachable(root)
	if o.Attached() != len(want) {
		t.Fatalf("attached %d nodes, tree has %d", o.Attached(), len(want))
	}
	for n := range want {
		if !o.IsAttached(n) {
			t.Fatalf("reachable node %T is not attached", n)
		}
		if got := n.Changes().SubscriberCount(); got != 1 {
			t.Fatalf("node %T has %d subscriptions, want 1", n, got)
		}
	}
}

func TestAttachMatchesReachableSet(t *testing.T) {
	f := newFixture()
	o := newObserver(&counts{})
	o.Attach(f.project)
	assertMatchesTree(t, o, f.project)
	if !o.IsAttached(f.shared) || !o.IsAttached(f.style.Stroke.Color) {
		t.Fatalf("shared point and nested style nodes must be observed")
	}
	if o.IsAttached(f.page.WorkingLayer) || o.IsAttached(f.page.HelperLayer) {
		t.Fatalf("working and helper layers must not be observed")
	}
	if o.IsDirty() {
		t.Fatalf("freshly attached project must be clean")
	}
}

func TestObserverSymmetryAcrossLoadMutateUnload(t *testing.T) {
	f := newFixture()
	o := newObserver(&counts{})
	o.Attach(f.project)

	// add a shape, rewire a shared point, remove a shape
	c := domain.NewLine(domain.NewPoint(0, 5), domain.NewPoint(5, 5))
	f.layer.SetShapes([]domain.Shape{f.a, f.b, c})
	split := domain.NewPoint(4, 0)
	f.a.SetEnd(split)
	f.layer.SetShapes([]domain.Shape{f.a, c})
	assertMatchesTree(t, o, f.project)
	if o.IsAttached(f.b) {
		t.Fatalf("removed shape still attached")
	}
	if o.IsAttached(f.shared) {
		t.Fatalf("point no longer referenced still attached")
	}

	nodes := reachable(f.project)
	nodes[f.b] = struct{}{}
	nodes[f.shared] = struct{}{}
	o.Close()
	if o.AttachCount() != o.DetachCount() {
		t.Fatalf("attach %d != detach %d", o.AttachCount(), o.DetachCount())
	}
	if o.Attached() != 0 {
		t.Fatalf("expected no attached nodes, got %d", o.Attached())
	}
	for n := range nodes {
		if n.Changes().SubscriberCount() != 0 {
			t.Fatalf("leaked subscription on %T", n)
		}
	}
}

func TestRemovedShapeNoLongerRedraws(t *testing.T) {
	f := newFixture()
	c := &counts{}
	o := newObserver(c)
	o.Attach(f.project)
	f.layer.SetShapes([]domain.Shape{f.a})
	before := c.redraw
	f.b.End.Move(1, 1)
	if c.redraw != before {
		t.Fatalf("detached shape triggered a redraw")
	}
	f.a.Start.Move(1, 1)
	if c.redraw == before || !o.IsDirty() {
		t.Fatalf("attached shape change should redraw and mark dirty")
	}
}

func TestSharedPointSurvivesPartialRemoval(t *testing.T) {
	f := newFixture()
	o := newObserver(&counts{})
	o.Attach(f.project)
	f.layer.SetShapes([]domain.Shape{f.b})
	if !o.IsAttached(f.shared) || f.shared.Changes().SubscriberCount() != 1 {
		t.Fatalf("point still used by another line must stay attached once")
	}
}

func TestLibrarySelectionIsNotDirtyAndCoalesced(t *testing.T) {
	f := newFixture()
	c := &counts{}
	o := newObserver(c)
	o.Attach(f.project)
	lib := f.project.StyleLibraries[0]
	other := domain.NewShapeStyle("other")
	lib.SetItems([]*domain.ShapeStyle{f.style, other})
	o.MarkClean()
	redraws := c.redraw

	lib.SetSelected(other)
	lib.SetSelected(f.style)
	if o.IsDirty() {
		t.Fatalf("library selection must not mark the project dirty")
	}
	if c.redraw != redraws || !o.Pending() {
		t.Fatalf("selection redraws should be deferred")
	}
	o.Flush()
	o.Flush()
	if c.redraw != redraws+1 {
		t.Fatalf("expected one coalesced redraw, got %d", c.redraw-redraws)
	}
}

func TestTextStyleEditsAreCoalesced(t *testing.T) {
	f := newFixture()
	c := &counts{}
	o := newObserver(c)
	o.Attach(f.project)
	redraws := c.redraw
	f.style.TextStyle.SetFontSize(20)
	f.style.TextStyle.SetBold(true)
	if !o.IsDirty() || c.redraw != redraws {
		t.Fatalf("text style edits mark dirty without immediate redraw")
	}
	o.Flush()
	if c.redraw != redraws+1 {
		t.Fatalf("expected one redraw after flush")
	}
}

func TestTemplateChangesReRaiseOnDependentPages(t *testing.T) {
	f := newFixture()
	tpl := domain.NewPage("template")
	f.project.SetTemplates([]*domain.Page{tpl})
	f.page.SetTemplate(tpl)
	c := &counts{}
	o := newObserver(c)
	o.Attach(f.project)

	var raised []string
	f.page.Subscribe(func(p string) { raised = append(raised, p) })
	tpl.SetBackground(domain.NewColor(255, 255, 255, 255))
	if len(raised) != 1 || raised[0] != "EffectiveBackground" {
		t.Fatalf("dependent page should re-raise background, got %v", raised)
	}
	if !o.IsAttached(tpl.Background) {
		t.Fatalf("new background color must be observed")
	}
	found := false
	for _, p := range c.pages {
		if p == f.page {
			found = true
		}
	}
	if !found {
		t.Fatalf("dependent page should be invalidated")
	}

	raised = nil
	invalidations := c.invalidate
	tpl.SetGridEnabled(true)
	if len(raised) != 1 || raised[0] != "EffectiveGrid" {
		t.Fatalf("dependent page should re-raise grid, got %v", raised)
	}
	if c.invalidate != invalidations || !o.Pending() {
		t.Fatalf("grid toggles should be deferred")
	}
}

func TestContainerChangesInvalidateCurrentPage(t *testing.T) {
	f := newFixture()
	c := &counts{}
	o := newObserver(c)
	o.Attach(f.project)
	f.project.SetName("renamed")
	if c.invalidate != 1 || c.pages[0] != f.page || !o.IsDirty() {
		t.Fatalf("project change should invalidate the current page")
	}
}

func TestCurrentShapeDoesNotDirty(t *testing.T) {
	f := newFixture()
	o := newObserver(&counts{})
	o.Attach(f.project)
	f.page.SetCurrentShape(f.a)
	if o.IsDirty() {
		t.Fatalf("current shape is transient state")
	}
}
