/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	applog "core2d/internal/log"
	"core2d/internal/version"

	_ "modernc.org/sqlite"
)

const (
	// IndexDirName holds per-project data that is never part of the project file.
	IndexDirName  = ".core2d"
	IndexFileName = "checkpoints.sqlite"
)

// migration upgrades the index from version-1 to version.
type migration struct {
	version int
	stmts   []string
}

// migrations are applied in order. The index version is kept in PRAGMA
// user_version, so a fresh file starts at 0 and runs every step.
var migrations = []migration{
	{1, []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS checkpoints (
			id         INTEGER PRIMARY KEY,
			project_id TEXT NOT NULL,
			label      TEXT NOT NULL DEFAULT '',
			ts         TEXT NOT NULL,
			blob       BLOB NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_checkpoints_project_ts ON checkpoints(project_id, ts)`,
	}},
	{2, []string{
		`CREATE INDEX IF NOT EXISTS idx_checkpoints_project_label ON checkpoints(project_id, label)`,
	}},
	{3, []string{
		`ALTER TABLE checkpoints ADD COLUMN pages INTEGER NOT NULL DEFAULT 0`,
	}},
}

func latestVersion() int { return migrations[len(migrations)-1].version }

// IndexPath returns the checkpoint index file of a project root.
func IndexPath(projectRoot string) string {
	return filepath.Join(projectRoot, IndexDirName, IndexFileName)
}

// InitOrOpenIndex opens the checkpoint index of a project root in WAL mode,
// creating and upgrading it as needed. The caller closes the returned db.
func InitOrOpenIndex(projectRoot string) (*sql.DB, error) {
	if strings.TrimSpace(projectRoot) == "" {
		return nil, errors.New("project root is required")
	}
	l := applog.WithOperation(applog.WithComponent("storage"), "open_index").With(slog.String("root", projectRoot))
	if err := os.MkdirAll(filepath.Join(projectRoot, IndexDirName), 0o755); err != nil {
		return nil, fmt.Errorf("create index dir: %w", err)
	}
	path := IndexPath(projectRoot)
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", filepath.ToSlash(path)))
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	from, err := migrate(ctx, db)
	if err != nil {
		_ = db.Close()
		l.Error("index migration failed", slog.Any("err", err))
		return nil, err
	}
	if err := setMeta(ctx, db, "app", version.String()); err != nil {
		_ = db.Close()
		return nil, err
	}
	if from != latestVersion() {
		l.Info("index upgraded", slog.Int("from", from), slog.Int("to", latestVersion()))
	}
	return db, nil
}

// migrate runs the pending migrations, each in its own transaction, and
// returns the version found on open. A newer index is left untouched.
func migrate(ctx context.Context, db *sql.DB) (int, error) {
	var cur int
	if err := db.QueryRowContext(ctx, `PRAGMA user_version`).Scan(&cur); err != nil {
		return 0, fmt.Errorf("read index version: %w", err)
	}
	from := cur
	for _, m := range migrations {
		if m.version <= cur {
			continue
		}
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return from, err
		}
		for _, q := range m.stmts {
			if _, err := tx.ExecContext(ctx, q); err != nil {
				_ = tx.Rollback()
				return from, fmt.Errorf("index migration %d: %w", m.version, err)
			}
		}
		// PRAGMA does not take bound parameters.
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`PRAGMA user_version = %d`, m.version)); err != nil {
			_ = tx.Rollback()
			return from, fmt.Errorf("index migration %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return from, fmt.Errorf("index migration %d: %w", m.version, err)
		}
		cur = m.version
	}
	return from, nil
}

func setMeta(ctx context.Context, db *sql.DB, key, value string) error {
	_, err := db.ExecContext(ctx, `INSERT INTO meta(key, value) VALUES(?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("write index meta %s: %w", key, err)
	}
	return nil
}

// IndexMeta returns a value of the index meta table, or "" when unset.
func IndexMeta(ctx context.Context, db *sql.DB, key string) (string, error) {
	var v string
	err := db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return v, err
}
