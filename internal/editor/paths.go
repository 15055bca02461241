/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"fmt"
	"log/slog"
	"slices"

	"core2d/internal/domain"
	"core2d/internal/pathconv"
)

// PathOp combines the selected shapes into one path. A single source is
// replaced in place; several sources are removed and the path appended.
// The path is selected.
func (e *Editor) PathOp(op pathconv.Op) error {
	layer, sources := e.selectedMembers()
	if len(sources) == 0 {
		return nil
	}
	path, err := e.paths.Op(sources, op)
	if err != nil {
		e.log.Warn("path operation failed", slog.String("op", op.String()), slog.Any("err", err))
		return fmt.Errorf("path %s: %w", op, err)
	}
	e.replaceSources(layer, sources, []domain.Shape{path})
	e.Select(layer, path)
	return nil
}

func (e *Editor) ToPath() error        { return e.convertSelected("to path", e.paths.ToPath) }
func (e *Editor) ToStrokePath() error  { return e.convertSelected("to stroke path", e.paths.ToStrokePath) }
func (e *Editor) ToFillPath() error    { return e.convertSelected("to fill path", e.paths.ToFillPath) }
func (e *Editor) ToWindingPath() error { return e.convertSelected("to winding path", e.paths.ToWindingPath) }
func (e *Editor) Simplify() error      { return e.convertSelected("simplify", e.paths.Simplify) }

// convertSelected replaces each selected shape with its conversion. Nothing
// changes when any conversion fails.
func (e *Editor) convertSelected(name string, convert func(domain.Shape) (*domain.PathShape, error)) error {
	layer, sources := e.selectedMembers()
	if len(sources) == 0 {
		return nil
	}
	paths := make([]domain.Shape, 0, len(sources))
	for _, s := range sources {
		p, err := convert(s)
		if err != nil {
			e.log.Warn("path conversion failed", slog.String("op", name), slog.String("shape", s.ID()), slog.Any("err", err))
			return fmt.Errorf("%s: %w", name, err)
		}
		paths = append(paths, p)
	}
	e.replaceSources(layer, sources, paths)
	e.Select(layer, paths...)
	return nil
}

// selectedMembers returns the selected shapes that are direct layer members.
func (e *Editor) selectedMembers() (*domain.Layer, []domain.Shape) {
	layer := e.selLayer
	if layer == nil {
		return nil, nil
	}
	var out []domain.Shape
	for _, s := range e.selected {
		if layer.Contains(s) {
			out = append(out, s)
		}
	}
	return layer, out
}

// replaceSources swaps a single source in place, or removes several and
// appends the results.
func (e *Editor) replaceSources(layer *domain.Layer, sources, results []domain.Shape) {
	next := slices.Clone(layer.Shapes)
	if len(sources) == 1 && len(results) == 1 {
		next[layer.IndexOf(sources[0])] = results[0]
	} else {
		next = slices.DeleteFunc(next, func(s domain.Shape) bool { return slices.Contains(sources, s) })
		next = append(next, results...)
	}
	e.replaceShapes(layer, next)
}
