/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import "testing"

func TestNotifierSubscribeUnsubscribe(t *testing.T) {
	var n Notifier
	var got []string
	s1 := n.Subscribe(func(p string) { got = append(got, "a:"+p) })
	n.Subscribe(func(p string) { got = append(got, "b:"+p) })
	n.Notify("X")
	if len(got) != 2 {
		t.Fatalf("expected 2 calls, got %v", got)
	}
	if !n.Unsubscribe(s1) || n.Unsubscribe(s1) {
		t.Fatalf("unsubscribe should succeed once")
	}
	got = nil
	n.Notify("Y")
	if len(got) != 1 || got[0] != "b:Y" {
		t.Fatalf("unexpected calls after unsubscribe: %v", got)
	}
	if n.SubscriberCount() != 1 {
		t.Fatalf("expected 1 subscriber, got %d", n.SubscriberCount())
	}
}

func TestNotifierUnsubscribeDuringNotify(t *testing.T) {
	var n Notifier
	calls := 0
	var s2 Subscription
	n.Subscribe(func(string) { calls++; n.Unsubscribe(s2) })
	s2 = n.Subscribe(func(string) { calls++ })
	n.Notify("X")
	if calls != 2 {
		t.Fatalf("handlers registered at notify time should all run, got %d", calls)
	}
	n.Notify("X")
	if calls != 3 {
		t.Fatalf("removed handler ran again, calls=%d", calls)
	}
}

func TestGroupMoveMovesSharedPointOnce(t *testing.T) {
	shared := NewPoint(10, 10)
	a := NewLine(NewPoint(0, 0), shared)
	b := NewLine(shared, NewPoint(20, 0))
	g := NewGroup("g")
	g.AddShape(a)
	g.AddShape(b)
	g.Move(5, 1)
	if shared.X != 15 || shared.Y != 11 {
		t.Fatalf("shared point moved wrong: %+v", *shared)
	}
	if a.Start.X != 5 || b.End.X != 25 {
		t.Fatalf("endpoints not moved: %v %v", a.Start.X, b.End.X)
	}
	if a.State().Has(StateStandalone) {
		t.Fatalf("group child must not be standalone")
	}
}

func TestAddConnectorFlags(t *testing.T) {
	g := NewGroup("g")
	p := NewPoint(0, 0)
	p.SetState(p.State().With(StateInput))
	g.AddConnector(p)
	st := p.State()
	if !st.Has(StateConnector) || st.Has(StateStandalone) || st.Has(StateInput) {
		t.Fatalf("unexpected connector state: %s", st)
	}
	if len(g.Connectors) != 1 || g.ControlPoints()[0] != p {
		t.Fatalf("connector not registered")
	}
}

func TestDistinctPoints(t *testing.T) {
	shared := NewPoint(1, 1)
	a := NewLine(NewPoint(0, 0), shared)
	b := NewLine(shared, NewPoint(2, 2))
	if pts := DistinctPoints([]Shape{a, b}); len(pts) != 3 {
		t.Fatalf("expected 3 distinct points, got %d", len(pts))
	}
}

func TestKindAndStateStrings(t *testing.T) {
	for k := KindPoint; k <= KindGroup; k++ {
		back, ok := ParseKind(k.String())
		if !ok || back != k {
			t.Fatalf("kind %d does not parse back", k)
		}
	}
	if s := (StateVisible | StateLocked).String(); s != "visible|locked" {
		t.Fatalf("state string: %q", s)
	}
}

func TestEffectiveBackgroundFallsBackToTemplate(t *testing.T) {
	tpl := NewPage("tpl")
	tpl.SetBackground(NewColor(255, 1, 2, 3))
	tpl.SetGridEnabled(true)
	pg := NewPage("p")
	pg.SetTemplate(tpl)
	if pg.EffectiveBackground() != tpl.Background || !pg.EffectiveGrid() {
		t.Fatalf("page should inherit template background and grid")
	}
	own := NewColor(255, 0, 0, 0)
	pg.SetBackground(own)
	if pg.EffectiveBackground() != own {
		t.Fatalf("own background should win")
	}
}

func TestStyleCopyIsDeep(t *testing.T) {
	s := NewShapeStyle("s")
	c := s.Copy()
	if c.ID == s.ID || c.Stroke == s.Stroke || c.Stroke.Color == s.Stroke.Color || c.TextStyle == s.TextStyle {
		t.Fatalf("copy shares sub-objects")
	}
	c.Stroke.Color.Set(1, 2, 3, 4)
	if s.Stroke.Color.R == 2 {
		t.Fatalf("mutating copy changed original")
	}
}

func TestLibrarySelectedNotifies(t *testing.T) {
	a, b := NewShapeStyle("a"), NewShapeStyle("b")
	lib := NewLibrary("styles", a, b)
	if lib.Selected != a {
		t.Fatalf("first item should be selected")
	}
	var props []string
	lib.Subscribe(func(p string) { props = append(props, p) })
	lib.SetSelected(b)
	lib.SetSelected(b)
	if len(props) != 1 || props[0] != "Selected" {
		t.Fatalf("unexpected notifications: %v", props)
	}
}

func TestHistoryTargetsReplaceFields(t *testing.T) {
	l := NewLayer("L")
	a := NewPoint(0, 0)
	LayerShapes{Layer: l}.Apply([]Shape{a})
	if len(l.Shapes) != 1 || !l.Contains(a) {
		t.Fatalf("layer shapes not replaced")
	}
	line := NewLine(NewPoint(0, 0), NewPoint(1, 0))
	p := NewPoint(5, 5)
	LineEnd{Line: line}.Apply(p)
	if line.End != p {
		t.Fatalf("line end not replaced")
	}
	MovePoints{Points: []*PointShape{p}}.Apply(Delta{2, 3})
	MovePoints{Points: []*PointShape{p}}.Apply(Delta{2, 3}.Neg())
	if p.X != 5 || p.Y != 5 {
		t.Fatalf("move and inverse should cancel: %+v", *p)
	}
}

func TestSetCurrentPageFollowsDocument(t *testing.T) {
	p := NewProject("p")
	d1, d2 := NewDocument("d1"), NewDocument("d2")
	pg := NewPage("pg")
	d2.SetPages([]*Page{pg})
	p.SetDocuments([]*Document{d1, d2})
	p.SetCurrentDocument(d1)
	p.SetCurrentPage(pg)
	if p.CurrentDocument != d2 || pg.Owner != d2 || d2.Owner != p {
		t.Fatalf("back-references not maintained")
	}
}
