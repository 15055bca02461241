/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package observer

import "core2d/internal/domain"

type node interface {
	comparable
	domain.Observable
}

func put[T node](out []domain.Observable, items ...T) []domain.Observable {
	var zero T
	for _, it := range items {
		if it != zero {
			out = append(out, it)
		}
	}
	return out
}

// children returns the observable nodes directly owned or referenced by n.
// Working and helper layers and page templates are not children.
func children(n domain.Observable) []domain.Observable {
	var out []domain.Observable
	switch v := n.(type) {
	case *domain.Project:
		out = put(out, v.Options)
		out = put(out, v.StyleLibraries...)
		out = put(out, v.GroupLibraries...)
		out = put(out, v.Databases...)
		out = put(out, v.Templates...)
		out = put(out, v.Documents...)
	case *domain.Library[*domain.ShapeStyle]:
		out = put(out, v.Items...)
	case *domain.Library[*domain.GroupShape]:
		out = put(out, v.Items...)
	case *domain.Document:
		out = put(out, v.Pages...)
	case *domain.Page:
		out = put(out, v.Layers...)
		out = put(out, v.Properties...)
		out = put(out, v.Background)
	case *domain.Layer:
		out = put(out, v.Shapes...)
	case domain.Shape:
		out = put(out, v.Style())
		out = put(out, v.Record())
		out = put(out, v.Properties()...)
		switch s := v.(type) {
		case *domain.PointShape:
		case *domain.GroupShape:
			out = put(out, s.Shapes...)
			out = put(out, s.Connectors...)
		case *domain.PathShape:
			out = put(out, s.Geometry)
		default:
			out = put(out, s.ControlPoints()...)
		}
	case *domain.PathGeometry:
		out = put(out, v.Figures...)
	case *domain.PathFigure:
		out = put(out, v.StartPoint)
		out = put(out, v.Segments...)
	case domain.PathSegment:
		out = put(out, v.Points()...)
	case *domain.ShapeStyle:
		out = put(out, v.Stroke)
		out = put(out, v.Fill)
		out = put(out, v.TextStyle)
	case *domain.StrokeStyle:
		out = put(out, v.Color)
		out = put(out, v.StartArrow, v.EndArrow)
	case *domain.FillStyle:
		out = put(out, v.Color)
	case *domain.Database:
		out = put(out, v.Columns...)
		out = put(out, v.Records...)
	case *domain.Record:
		out = put(out, v.Values...)
	}
	return out
}
