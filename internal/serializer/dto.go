/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package serializer

// Wire types. Shapes reference styles and records by id; points are written
// inline with their id and repeated ids decode to the same point.

type shapeDTO struct {
	Kind       string        `json:"kind"`
	ID         string        `json:"id"`
	Name       string        `json:"name,omitempty"`
	Style      string        `json:"style,omitempty"`
	State      uint32        `json:"state"`
	Record     string        `json:"record,omitempty"`
	Properties []propertyDTO `json:"properties,omitempty"`

	X float64 `json:"x,omitempty"`
	Y float64 `json:"y,omitempty"`

	Points    []*shapeDTO `json:"points,omitempty"`
	IsStroked bool        `json:"isStroked,omitempty"`
	IsFilled  bool        `json:"isFilled,omitempty"`
	Text      string      `json:"text,omitempty"`
	Key       string      `json:"key,omitempty"`

	Geometry   *geometryDTO `json:"geometry,omitempty"`
	Shapes     []*shapeDTO  `json:"shapes,omitempty"`
	Connectors []*shapeDTO  `json:"connectors,omitempty"`
}

type propertyDTO struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type geometryDTO struct {
	ID       string      `json:"id,omitempty"`
	FillRule string      `json:"fillRule"`
	Figures  []figureDTO `json:"figures"`
}

type figureDTO struct {
	Start    *shapeDTO    `json:"start"`
	Segments []segmentDTO `json:"segments"`
	IsClosed bool         `json:"isClosed,omitempty"`
	IsFilled bool         `json:"isFilled,omitempty"`
}

type segmentDTO struct {
	Kind          string      `json:"kind"`
	Points        []*shapeDTO `json:"points"`
	RadiusX       float64     `json:"radiusX,omitempty"`
	RadiusY       float64     `json:"radiusY,omitempty"`
	RotationAngle float64     `json:"rotationAngle,omitempty"`
	IsLargeArc    bool        `json:"isLargeArc,omitempty"`
	Clockwise     bool        `json:"clockwise,omitempty"`
}

type arrowDTO struct {
	Type      int     `json:"type"`
	RadiusX   float64 `json:"radiusX,omitempty"`
	RadiusY   float64 `json:"radiusY,omitempty"`
	IsStroked bool    `json:"isStroked,omitempty"`
	IsFilled  bool    `json:"isFilled,omitempty"`
}

type strokeDTO struct {
	Color      string    `json:"color"`
	Thickness  float64   `json:"thickness"`
	LineCap    int       `json:"lineCap,omitempty"`
	Dashes     string    `json:"dashes,omitempty"`
	DashOffset float64   `json:"dashOffset,omitempty"`
	StartArrow *arrowDTO `json:"startArrow,omitempty"`
	EndArrow   *arrowDTO `json:"endArrow,omitempty"`
}

type textStyleDTO struct {
	FontName   string  `json:"fontName"`
	FontSize   float64 `json:"fontSize"`
	Bold       bool    `json:"bold,omitempty"`
	Italic     bool    `json:"italic,omitempty"`
	HAlignment string  `json:"hAlignment,omitempty"`
	VAlignment string  `json:"vAlignment,omitempty"`
}

type styleDTO struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Stroke *strokeDTO    `json:"stroke,omitempty"`
	Fill   string        `json:"fill,omitempty"`
	Text   *textStyleDTO `json:"text,omitempty"`
}

type optionsDTO struct {
	SnapToGrid       bool    `json:"snapToGrid"`
	SnapX            float64 `json:"snapX"`
	SnapY            float64 `json:"snapY"`
	HitThreshold     float64 `json:"hitThreshold"`
	MoveMode         string  `json:"moveMode"`
	DefaultIsStroked bool    `json:"defaultIsStroked"`
	DefaultIsFilled  bool    `json:"defaultIsFilled"`
	DefaultFillRule  string  `json:"defaultFillRule"`
	TryToConnect     bool    `json:"tryToConnect"`
	DrawPoints       bool    `json:"drawPoints"`
}

type layerDTO struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	IsVisible bool        `json:"isVisible"`
	Shapes    []*shapeDTO `json:"shapes"`
}

type pageDTO struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Width         float64       `json:"width"`
	Height        float64       `json:"height"`
	Template      string        `json:"template,omitempty"`
	Background    string        `json:"background,omitempty"`
	IsGridEnabled bool          `json:"isGridEnabled,omitempty"`
	GridCellWidth float64       `json:"gridCellWidth,omitempty"`
	Properties    []propertyDTO `json:"properties,omitempty"`
	Layers        []layerDTO    `json:"layers"`
	CurrentLayer  string        `json:"currentLayer,omitempty"`
}

type documentDTO struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	IsExpanded bool      `json:"isExpanded,omitempty"`
	Pages      []pageDTO `json:"pages"`
}

type columnDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsVisible bool   `json:"isVisible,omitempty"`
}

type recordDTO struct {
	ID     string   `json:"id"`
	Values []string `json:"values"`
}

type databaseDTO struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	IDColumnName string      `json:"idColumnName"`
	Columns      []columnDTO `json:"columns"`
	Records      []recordDTO `json:"records"`
}

type styleLibraryDTO struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Items    []string `json:"items"`
	Selected string   `json:"selected,omitempty"`
}

type groupLibraryDTO struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Items    []*shapeDTO `json:"items"`
	Selected string      `json:"selected,omitempty"`
}

type projectDTO struct {
	Format         string            `json:"format"`
	Version        int               `json:"version"`
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Options        optionsDTO        `json:"options"`
	Styles         []styleDTO        `json:"styles"`
	StyleLibraries []styleLibraryDTO `json:"styleLibraries"`
	GroupLibraries []groupLibraryDTO `json:"groupLibraries"`
	Databases      []databaseDTO     `json:"databases"`
	Templates      []pageDTO         `json:"templates"`
	Documents      []documentDTO     `json:"documents"`

	CurrentStyleLibrary string `json:"currentStyleLibrary,omitempty"`
	CurrentGroupLibrary string `json:"currentGroupLibrary,omitempty"`
	CurrentDatabase     string `json:"currentDatabase,omitempty"`
	CurrentTemplate     string `json:"currentTemplate,omitempty"`
	CurrentDocument     string `json:"currentDocument,omitempty"`
	CurrentPage         string `json:"currentPage,omitempty"`
}

type transferDTO struct {
	Format  string      `json:"format"`
	Version int         `json:"version"`
	Styles  []styleDTO  `json:"styles"`
	Records []recordDTO `json:"records,omitempty"`
	Shapes  []*shapeDTO `json:"shapes"`
}
