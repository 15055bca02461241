/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package serializer is the document codec: project files, and the transfer
// form used for clone, duplicate and clipboard exchange.
package serializer

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"core2d/internal/domain"
)

const (
	FormatProject = "core2d/project"
	FormatShapes  = "core2d/shapes"
	// Version is the newest format version this package reads and writes.
	Version = 1
)

var (
	// ErrUnsupported reports a shape, segment or format version the codec cannot handle.
	ErrUnsupported = errors.New("serializer: unsupported")
	// ErrInvalid reports input that is not a well-formed document.
	ErrInvalid = errors.New("serializer: invalid document")
)

//go:embed schema/*.json
var schemaFS embed.FS

var (
	projectSchema  = sync.OnceValues(func() (*gojsonschema.Schema, error) { return compile("schema/project.schema.json") })
	transferSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) { return compile("schema/transfer.schema.json") })
)

func compile(name string) (*gojsonschema.Schema, error) {
	b, err := schemaFS.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(b))
}

func validate(schema func() (*gojsonschema.Schema, error), data []byte) error {
	s, err := schema()
	if err != nil {
		return fmt.Errorf("load schema: %w", err)
	}
	res, err := s.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
	}
	return nil
}

func checkVersion(v int) error {
	if v > Version {
		return fmt.Errorf("%w: format version %d", ErrUnsupported, v)
	}
	return nil
}

// EncodeProject writes p as indented JSON. Working and helper layers are not written.
func EncodeProject(w io.Writer, p *domain.Project) error {
	if p == nil {
		return fmt.Errorf("%w: nil project", ErrInvalid)
	}
	d, err := newEncoder().project(p)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// DecodeProject reads a project written by EncodeProject. Identities are kept.
func DecodeProject(r io.Reader) (*domain.Project, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read project: %w", err)
	}
	if err := validate(projectSchema, data); err != nil {
		return nil, err
	}
	var pd projectDTO
	if err := json.Unmarshal(data, &pd); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := checkVersion(pd.Version); err != nil {
		return nil, err
	}
	return newDecoder(Resolver{}).project(&pd)
}

// Resolver links decoded shapes to nodes that already exist.
type Resolver struct {
	// Style returns an existing style for id, or nil to decode it.
	Style func(id string) *domain.ShapeStyle
	// Record returns the record a shape binds to, or nil to leave it unbound.
	Record func(id string) *domain.Record
	// Fresh gives every decoded shape and point a new identity.
	Fresh bool
}

// ProjectResolver resolves styles and records against p.
func ProjectResolver(p *domain.Project, fresh bool) Resolver {
	res := Resolver{Fresh: fresh}
	if p == nil {
		return res
	}
	styles := make(map[string]*domain.ShapeStyle)
	addStyle := func(s *domain.ShapeStyle) {
		if s != nil {
			styles[s.ID] = s
		}
	}
	var walk func(shapes []domain.Shape)
	walk = func(shapes []domain.Shape) {
		for _, s := range shapes {
			addStyle(s.Style())
			if g, ok := s.(*domain.GroupShape); ok {
				walk(g.Shapes)
			}
		}
	}
	for _, lib := range p.StyleLibraries {
		for _, s := range lib.Items {
			addStyle(s)
		}
	}
	for _, lib := range p.GroupLibraries {
		for _, g := range lib.Items {
			walk([]domain.Shape{g})
		}
	}
	pages := append([]*domain.Page(nil), p.Templates...)
	for _, d := range p.Documents {
		pages = append(pages, d.Pages...)
	}
	for _, pg := range pages {
		for _, l := range pg.Layers {
			walk(l.Shapes)
		}
	}
	res.Style = func(id string) *domain.ShapeStyle { return styles[id] }
	res.Record = func(id string) *domain.Record {
		for _, db := range p.Databases {
			if r := db.FindRecord(id); r != nil {
				return r
			}
		}
		return nil
	}
	return res
}

// EncodeShapes writes shapes in the transfer form, including the styles they use.
func EncodeShapes(shapes []domain.Shape) ([]byte, error) {
	e := newEncoder()
	out, err := e.shapes(shapes)
	if err != nil {
		return nil, err
	}
	d := transferDTO{Format: FormatShapes, Version: Version, Styles: e.styles, Records: e.records, Shapes: out}
	if d.Styles == nil {
		d.Styles = []styleDTO{}
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeShapes reads the transfer form. Shared points stay shared among the
// decoded shapes. Records the resolver does not know are decoded with a nil
// Owner; OrphanRecords finds them.
func DecodeShapes(data []byte, res Resolver) ([]domain.Shape, error) {
	if err := validate(transferSchema, data); err != nil {
		return nil, err
	}
	var td transferDTO
	if err := json.Unmarshal(data, &td); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := checkVersion(td.Version); err != nil {
		return nil, err
	}
	d := newDecoder(res)
	if err := d.styleTable(td.Styles); err != nil {
		return nil, err
	}
	d.recordTable(td.Records)
	return d.shapes(td.Shapes)
}

// EncodeStyles writes styles in the transfer form, without shapes.
func EncodeStyles(styles []*domain.ShapeStyle) ([]byte, error) {
	e := newEncoder()
	for _, s := range styles {
		e.style(s)
	}
	d := transferDTO{Format: FormatShapes, Version: Version, Styles: e.styles, Shapes: []*shapeDTO{}}
	if d.Styles == nil {
		d.Styles = []styleDTO{}
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeStyles reads the style table of the transfer form in order. Styles
// the resolver knows are returned as they are.
func DecodeStyles(data []byte, res Resolver) ([]*domain.ShapeStyle, error) {
	if err := validate(transferSchema, data); err != nil {
		return nil, err
	}
	var td transferDTO
	if err := json.Unmarshal(data, &td); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := checkVersion(td.Version); err != nil {
		return nil, err
	}
	d := newDecoder(res)
	if err := d.styleTable(td.Styles); err != nil {
		return nil, err
	}
	out := make([]*domain.ShapeStyle, 0, len(td.Styles))
	for _, sd := range td.Styles {
		out = append(out, d.styles[sd.ID])
	}
	return out, nil
}

// OrphanRecords returns the distinct records bound to shapes (groups
// included) that belong to no database.
func OrphanRecords(shapes []domain.Shape) []*domain.Record {
	seen := make(map[*domain.Record]bool)
	var out []*domain.Record
	var walk func([]domain.Shape)
	walk = func(in []domain.Shape) {
		for _, s := range in {
			if r := s.Record(); r != nil && r.Owner == nil && !seen[r] {
				seen[r] = true
				out = append(out, r)
			}
			if g, ok := s.(*domain.GroupShape); ok {
				walk(g.Shapes)
			}
		}
	}
	walk(shapes)
	return out
}

// Clone deep-copies shapes with fresh identities. Styles are shared with
// the originals; points shared among shapes stay shared in the copies.
func Clone(shapes []domain.Shape) ([]domain.Shape, error) {
	data, err := EncodeShapes(shapes)
	if err != nil {
		return nil, err
	}
	styles := make(map[string]*domain.ShapeStyle)
	records := make(map[string]*domain.Record)
	var walk func([]domain.Shape)
	walk = func(in []domain.Shape) {
		for _, s := range in {
			if st := s.Style(); st != nil {
				styles[st.ID] = st
			}
			if r := s.Record(); r != nil {
				records[r.ID] = r
			}
			for _, p := range s.ControlPoints() {
				if st := p.Style(); st != nil {
					styles[st.ID] = st
				}
			}
			if g, ok := s.(*domain.GroupShape); ok {
				walk(g.Shapes)
			}
		}
	}
	walk(shapes)
	return DecodeShapes(data, Resolver{
		Style:  func(id string) *domain.ShapeStyle { return styles[id] },
		Record: func(id string) *domain.Record { return records[id] },
		Fresh:  true,
	})
}
