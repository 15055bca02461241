/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"core2d/internal/domain"
	"core2d/internal/serializer"
	"core2d/internal/undo"
)

// ImportedDatabaseName names the database that receives records pasted
// shapes bring along.
const ImportedDatabaseName = "Imported"

// DeleteSelected removes the selected shapes from their layer and clears the selection.
func (e *Editor) DeleteSelected() {
	layer, members := e.selectedMembers()
	if layer == nil {
		return
	}
	e.Deselect(layer)
	if len(members) == 0 {
		return
	}
	e.replaceShapes(layer, slices.DeleteFunc(slices.Clone(layer.Shapes), func(s domain.Shape) bool {
		return slices.Contains(members, s)
	}))
}

// Duplicate inserts a copy of the selection into the current layer and
// selects the copies.
func (e *Editor) Duplicate() error {
	_, members := e.selectedMembers()
	if len(members) == 0 {
		return nil
	}
	data, err := e.factory.Export(members)
	if err != nil {
		e.log.Error("duplicate failed", slog.Any("err", err))
		return err
	}
	return e.paste(data)
}

// Copy writes the selection to the clipboard in the transfer form.
func (e *Editor) Copy(ctx context.Context) error {
	_, members := e.selectedMembers()
	if len(members) == 0 {
		return nil
	}
	data, err := e.factory.Export(members)
	if err != nil {
		e.log.Error("copy failed", slog.Any("err", err))
		return err
	}
	if err := e.clip.WriteText(ctx, string(data)); err != nil {
		e.log.Warn("clipboard write failed", slog.Any("err", err))
		return fmt.Errorf("copy: %w", err)
	}
	return nil
}

// Cut copies the selection and deletes it.
func (e *Editor) Cut(ctx context.Context) error {
	if err := e.Copy(ctx); err != nil {
		return err
	}
	e.DeleteSelected()
	return nil
}

// Paste inserts the clipboard shapes into the current layer. Text that is
// not in the transfer form is logged and ignored.
func (e *Editor) Paste(ctx context.Context) error {
	if e.currentLayer() == nil {
		return nil
	}
	text, err := e.clip.ReadText(ctx)
	if err != nil {
		e.log.Warn("clipboard read failed", slog.Any("err", err))
		return fmt.Errorf("paste: %w", err)
	}
	if text == "" {
		return nil
	}
	if err := e.paste([]byte(text)); err != nil {
		e.log.Warn("ignoring clipboard content", slog.Any("err", err))
	}
	return nil
}

// paste decodes data with fresh identities and adds the shapes to the
// current layer as one edit. Records unknown to the project go to a new
// Imported database in the same edit.
func (e *Editor) paste(data []byte) error {
	layer := e.currentLayer()
	if layer == nil {
		return nil
	}
	shapes, err := e.factory.Import(data, e.project)
	if err != nil {
		return err
	}
	if len(shapes) == 0 {
		return nil
	}
	e.Deselect(layer)
	next := append(slices.Clone(layer.Shapes), shapes...)
	if db := importedDatabase(serializer.OrphanRecords(shapes)); db != nil {
		dbs := append(slices.Clone(e.project.Databases), db)
		e.history.Snapshot(
			undo.Composite{domain.ProjectDatabases{Project: e.project}, domain.LayerShapes{Layer: layer}},
			[]any{e.project.Databases, layer.Shapes},
			[]any{dbs, next},
		)
		e.project.SetDatabases(dbs)
		layer.SetShapes(next)
		e.log.Info("imported records", slog.Int("records", len(db.Records)), slog.String("database", db.ID))
	} else {
		e.replaceShapes(layer, next)
	}
	e.Select(layer, shapes...)
	return nil
}

// importedDatabase holds records with columns named after their widest record.
func importedDatabase(records []*domain.Record) *domain.Database {
	if len(records) == 0 {
		return nil
	}
	db := domain.NewDatabase(ImportedDatabaseName)
	width := 0
	for _, r := range records {
		width = max(width, len(r.Values))
	}
	for i := range width {
		db.AddColumn(fmt.Sprintf("Column%d", i))
	}
	for _, r := range records {
		db.AddRecord(r)
	}
	return db
}
