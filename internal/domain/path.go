/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import "core2d/internal/typeid"

// FillRule selects how overlapping figures are filled.
type FillRule int

const (
	FillEvenOdd FillRule = iota
	FillNonZero
)

func (r FillRule) String() string {
	if r == FillNonZero {
		return "nonzero"
	}
	return "evenodd"
}

// PathGeometry is an ordered list of figures.
type PathGeometry struct {
	Notifier
	ID       string
	FillRule FillRule
	Figures  []*PathFigure
}

func NewPathGeometry(rule FillRule) *PathGeometry {
	return &PathGeometry{ID: typeid.NewSegmentID(), FillRule: rule}
}

func (g *PathGeometry) SetFigures(figures []*PathFigure) {
	g.Figures = figures
	g.Notify("Figures")
}

func (g *PathGeometry) SetFillRule(rule FillRule) {
	if g.FillRule == rule {
		return
	}
	g.FillRule = rule
	g.Notify("FillRule")
}

// Points returns start points and segment points of every figure.
func (g *PathGeometry) Points() []*PointShape {
	var out []*PointShape
	for _, f := range g.Figures {
		out = append(out, f.Points()...)
	}
	return out
}

// PathFigure is a connected run of segments.
type PathFigure struct {
	Notifier
	StartPoint *PointShape
	Segments   []PathSegment
	IsClosed   bool
	IsFilled   bool
}

func NewPathFigure(start *PointShape, closed bool) *PathFigure {
	return &PathFigure{StartPoint: start, IsClosed: closed, IsFilled: true}
}

func (f *PathFigure) SetSegments(segments []PathSegment) {
	f.Segments = segments
	f.Notify("Segments")
}

func (f *PathFigure) SetClosed(closed bool) {
	if f.IsClosed == closed {
		return
	}
	f.IsClosed = closed
	f.Notify("IsClosed")
}

func (f *PathFigure) Points() []*PointShape {
	out := []*PointShape{f.StartPoint}
	for _, s := range f.Segments {
		out = append(out, s.Points()...)
	}
	return out
}

// PathSegment is one of the segment variants of a figure.
type PathSegment interface {
	Observable
	// Points returns the segment's control points with the end point last.
	Points() []*PointShape
}

type LineSegment struct {
	Notifier
	Point *PointShape
}

func (s *LineSegment) Points() []*PointShape { return []*PointShape{s.Point} }

// SweepDirection of an arc segment.
type SweepDirection int

const (
	SweepCounterclockwise SweepDirection = iota
	SweepClockwise
)

type ArcSegment struct {
	Notifier
	Point          *PointShape
	RadiusX        float64
	RadiusY        float64
	RotationAngle  float64
	IsLargeArc     bool
	SweepDirection SweepDirection
}

func (s *ArcSegment) Points() []*PointShape { return []*PointShape{s.Point} }

type CubicBezierSegment struct {
	Notifier
	Point1, Point2, Point3 *PointShape
}

func (s *CubicBezierSegment) Points() []*PointShape {
	return []*PointShape{s.Point1, s.Point2, s.Point3}
}

type QuadraticBezierSegment struct {
	Notifier
	Point1, Point2 *PointShape
}

func (s *QuadraticBezierSegment) Points() []*PointShape {
	return []*PointShape{s.Point1, s.Point2}
}
