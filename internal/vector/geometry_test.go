/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import (
	"math"
	"testing"
)

func TestRectContainsAndInset(t *testing.T) {
	r := R(10, 20, 100, 50)
	if !r.Contains(Pt{10, 20}) || !r.Contains(Pt{110, 70}) {
		t.Fatalf("expected edge points to be contained")
	}
	in := r.Inset(5, 5)
	if in.X != 15 || in.Y != 25 || in.W != 90 || in.H != 40 {
		t.Fatalf("unexpected inset: %+v", in)
	}
	out := r.Inset(-2, -2)
	if !out.Contains(Pt{9, 19}) {
		t.Fatalf("negative inset should grow the rect: %+v", out)
	}
}

func TestFromPointsNormalizes(t *testing.T) {
	r := FromPoints(Pt{10, 10}, Pt{0, 5})
	if r.X != 0 || r.Y != 5 || r.W != 10 || r.H != 5 {
		t.Fatalf("unexpected rect: %+v", r)
	}
}

func TestUnionAndIntersects(t *testing.T) {
	a := R(0, 0, 10, 10)
	b := R(20, 20, 5, 5)
	u := a.Union(b)
	if u.X != 0 || u.Y != 0 || u.W != 25 || u.H != 25 {
		t.Fatalf("unexpected union: %+v", u)
	}
	if a.Intersects(b) {
		t.Fatalf("disjoint rects should not intersect")
	}
	if !a.Intersects(R(10, 10, 1, 1)) {
		t.Fatalf("touching rects should intersect")
	}
}

func TestNearestOnSegmentClamps(t *testing.T) {
	a, b := Pt{0, 0}, Pt{10, 0}
	if p := NearestOnSegment(Pt{4, 3}, a, b); p != (Pt{4, 0}) {
		t.Fatalf("projection: got %+v", p)
	}
	if p := NearestOnSegment(Pt{-5, 1}, a, b); p != a {
		t.Fatalf("clamp to start: got %+v", p)
	}
	if p := NearestOnSegment(Pt{15, 1}, a, b); p != b {
		t.Fatalf("clamp to end: got %+v", p)
	}
	if d := DistanceToSegment(Pt{5, 5}, a, a); math.Abs(d-math.Hypot(5, 5)) > 1e-9 {
		t.Fatalf("degenerate segment distance: %v", d)
	}
}

func TestPolylineAndPolygon(t *testing.T) {
	sq := []Pt{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	if !PointInPolygon(Pt{5, 5}, sq) {
		t.Fatalf("center should be inside")
	}
	if PointInPolygon(Pt{15, 5}, sq) {
		t.Fatalf("outside point reported inside")
	}
	if d := DistanceToPolyline(Pt{5, 12}, sq, true); d != 2 {
		t.Fatalf("closed distance: got %v", d)
	}
	if d := DistanceToPolyline(Pt{-3, 5}, sq, false); d != math.Hypot(3, 5) {
		t.Fatalf("open polyline must not use closing edge: got %v", d)
	}
}

func TestSegmentIntersectsRect(t *testing.T) {
	r := R(0, 0, 10, 10)
	if !SegmentIntersectsRect(Pt{-5, 5}, Pt{15, 5}, r) {
		t.Fatalf("crossing segment should intersect")
	}
	if SegmentIntersectsRect(Pt{-5, -5}, Pt{-1, 20}, r) {
		t.Fatalf("outside segment should not intersect")
	}
}

func TestSnapAndRound(t *testing.T) {
	if v := Snap(12.4, 5); v != 10 {
		t.Fatalf("snap: got %v", v)
	}
	if v := Snap(12.4, 0); v != 12.4 {
		t.Fatalf("zero step must be no-op: got %v", v)
	}
	if v := FloatRound(1.23456, 2); v != 1.23 {
		t.Fatalf("round: got %v", v)
	}
}
