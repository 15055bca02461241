/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"core2d/internal/domain"
	"core2d/internal/serializer"
)

// Checkpoint labels written by the engine itself.
const (
	LabelManual   = "manual"
	LabelAutosave = "autosave"
	LabelCrash    = "crash"
)

// language=SQL
// dialect=SQLite
const insertCheckpointSQL = `INSERT INTO checkpoints(project_id, label, ts, pages, blob) VALUES (?, ?, ?, ?, ?)`

// language=SQL
// dialect=SQLite
const selectLatestCheckpointSQL = `SELECT id, label, ts, pages, length(blob) FROM checkpoints WHERE project_id = ? ORDER BY ts DESC, id DESC LIMIT 1`

// language=SQL
// dialect=SQLite
const listCheckpointsSQL = `SELECT id, label, ts, pages, length(blob) FROM checkpoints WHERE project_id = ? ORDER BY ts DESC, id DESC LIMIT ?`

// language=SQL
// dialect=SQLite
const selectCheckpointBlobSQL = `SELECT blob FROM checkpoints WHERE id = ? AND project_id = ?`

// language=SQL
// dialect=SQLite
const pruneOldCheckpointsSQL = `DELETE FROM checkpoints WHERE project_id = ? AND id NOT IN (
	SELECT id FROM checkpoints WHERE project_id = ? ORDER BY ts DESC, id DESC LIMIT ?
)`

// ErrNoCheckpoint is returned when a checkpoint does not exist.
var ErrNoCheckpoint = errors.New("storage: no such checkpoint")

// Checkpoint describes a stored project checkpoint.
type Checkpoint struct {
	ID    int64
	Label string
	TS    time.Time
	// Pages counts document pages at the time of the checkpoint.
	Pages int
	Size  int
}

func checkHandle(ph *ProjectHandle) error {
	if ph == nil {
		return errors.New("nil ProjectHandle")
	}
	if ph.Project == nil {
		return errors.New("ProjectHandle without project")
	}
	return nil
}

// SaveCheckpoint serializes the handle's project and stores it with a label and timestamp.
func SaveCheckpoint(ctx context.Context, ph *ProjectHandle, label string, ts time.Time) (int64, error) {
	if err := checkHandle(ph); err != nil {
		return 0, err
	}
	var buf bytes.Buffer
	if err := serializer.EncodeProject(&buf, ph.Project); err != nil {
		return 0, fmt.Errorf("encode checkpoint: %w", err)
	}
	db, err := InitOrOpenIndex(ph.Root)
	if err != nil {
		return 0, err
	}
	defer func() { _ = db.Close() }()
	res, err := db.ExecContext(ctx, insertCheckpointSQL, ph.Project.ID, label, ts.UTC().Format(time.RFC3339Nano), countPages(ph.Project), buf.Bytes())
	if err != nil {
		return 0, fmt.Errorf("insert checkpoint: %w", err)
	}
	return res.LastInsertId()
}

func countPages(p *domain.Project) int {
	n := 0
	for _, d := range p.Documents {
		n += len(d.Pages)
	}
	return n
}

func scanCheckpoint(sc interface{ Scan(...any) error }) (Checkpoint, error) {
	var c Checkpoint
	var tsStr string
	if err := sc.Scan(&c.ID, &c.Label, &tsStr, &c.Pages, &c.Size); err != nil {
		return c, err
	}
	c.TS, _ = time.Parse(time.RFC3339Nano, tsStr)
	return c, nil
}

// LatestCheckpoint returns the newest checkpoint of the project, or ErrNoCheckpoint.
func LatestCheckpoint(ctx context.Context, ph *ProjectHandle) (Checkpoint, error) {
	if err := checkHandle(ph); err != nil {
		return Checkpoint{}, err
	}
	db, err := InitOrOpenIndex(ph.Root)
	if err != nil {
		return Checkpoint{}, err
	}
	defer func() { _ = db.Close() }()
	c, err := scanCheckpoint(db.QueryRowContext(ctx, selectLatestCheckpointSQL, ph.Project.ID))
	if errors.Is(err, sql.ErrNoRows) {
		return Checkpoint{}, ErrNoCheckpoint
	}
	return c, err
}

// ListCheckpoints returns up to limit most recent checkpoints, newest first.
func ListCheckpoints(ctx context.Context, ph *ProjectHandle, limit int) ([]Checkpoint, error) {
	if err := checkHandle(ph); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	db, err := InitOrOpenIndex(ph.Root)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()
	rows, err := db.QueryContext(ctx, listCheckpointsSQL, ph.Project.ID, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []Checkpoint
	for rows.Next() {
		c, err := scanCheckpoint(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// LoadCheckpoint decodes a stored checkpoint into a new project.
func LoadCheckpoint(ctx context.Context, ph *ProjectHandle, id int64) (*domain.Project, error) {
	if err := checkHandle(ph); err != nil {
		return nil, err
	}
	db, err := InitOrOpenIndex(ph.Root)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()
	var blob []byte
	err = db.QueryRowContext(ctx, selectCheckpointBlobSQL, id, ph.Project.ID).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoCheckpoint
	}
	if err != nil {
		return nil, err
	}
	p, err := serializer.DecodeProject(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("decode checkpoint %d: %w", id, err)
	}
	return p, nil
}

// PruneOldCheckpoints keeps at most keepLast checkpoints and deletes older ones.
func PruneOldCheckpoints(ctx context.Context, ph *ProjectHandle, keepLast int) (int64, error) {
	if err := checkHandle(ph); err != nil {
		return 0, err
	}
	if keepLast <= 0 {
		return 0, nil
	}
	db, err := InitOrOpenIndex(ph.Root)
	if err != nil {
		return 0, err
	}
	defer func() { _ = db.Close() }()
	res, err := db.ExecContext(ctx, pruneOldCheckpointsSQL, ph.Project.ID, ph.Project.ID, keepLast)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// AutosaveCrashCheckpoint stores a crash checkpoint and returns the index path.
// It is meant for crash.Session.Autosave.
func AutosaveCrashCheckpoint(ph *ProjectHandle) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := SaveCheckpoint(ctx, ph, LabelCrash, time.Now()); err != nil {
		return "", err
	}
	return IndexPath(ph.Root), nil
}
