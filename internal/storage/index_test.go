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
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"core2d/internal/version"
)

// seedIndex writes a version 2 index with one checkpoint row, the layout
// used before checkpoints recorded their page count.
func seedIndex(t *testing.T, root string) {
	t.Helper()
	path := IndexPath(root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	db, err := sql.Open("sqlite", "file:"+filepath.ToSlash(path))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	ctx := context.Background()
	for _, m := range migrations[:2] {
		for _, q := range m.stmts {
			if _, err := db.ExecContext(ctx, q); err != nil {
				t.Fatalf("seed %q: %v", q, err)
			}
		}
	}
	seed := []string{
		`INSERT INTO checkpoints(project_id, label, ts, blob) VALUES('old', 'manual', '2020-01-01T00:00:00Z', x'00')`,
		`PRAGMA user_version = 2`,
	}
	for _, q := range seed {
		if _, err := db.ExecContext(ctx, q); err != nil {
			t.Fatalf("seed %q: %v", q, err)
		}
	}
}

func TestIndexUpgradeKeepsRows(t *testing.T) {
	root := t.TempDir()
	seedIndex(t, root)

	db, err := InitOrOpenIndex(root)
	if err != nil {
		t.Fatalf("InitOrOpenIndex: %v", err)
	}
	defer db.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var v int
	if err := db.QueryRowContext(ctx, `PRAGMA user_version`).Scan(&v); err != nil || v != latestVersion() {
		t.Fatalf("user_version = %d (%v), want %d", v, err, latestVersion())
	}
	var label string
	var pages int
	if err := db.QueryRowContext(ctx, `SELECT label, pages FROM checkpoints WHERE project_id = 'old'`).Scan(&label, &pages); err != nil {
		t.Fatalf("old row: %v", err)
	}
	if label != LabelManual || pages != 0 {
		t.Fatalf("old row = %s/%d", label, pages)
	}
	app, err := IndexMeta(ctx, db, "app")
	if err != nil || app != version.String() {
		t.Fatalf("app meta = %q (%v)", app, err)
	}
}

func TestIndexOpenTwiceIsStable(t *testing.T) {
	root := t.TempDir()
	for i := range 2 {
		db, err := InitOrOpenIndex(root)
		if err != nil {
			t.Fatalf("open %d: %v", i, err)
		}
		var n int
		q := `SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND name LIKE 'idx_checkpoints_%'`
		if err := db.QueryRow(q).Scan(&n); err != nil || n != 2 {
			t.Fatalf("open %d: %d checkpoint indexes (%v)", i, n, err)
		}
		_ = db.Close()
	}
}

func TestIndexNewerVersionIsLeftAlone(t *testing.T) {
	root := t.TempDir()
	db, err := InitOrOpenIndex(root)
	if err != nil {
		t.Fatalf("InitOrOpenIndex: %v", err)
	}
	future := latestVersion() + 1
	if _, err := db.Exec(fmt.Sprintf(`PRAGMA user_version = %d`, future)); err != nil {
		t.Fatalf("bump: %v", err)
	}
	_ = db.Close()

	db, err = InitOrOpenIndex(root)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	var v int
	if err := db.QueryRow(`PRAGMA user_version`).Scan(&v); err != nil || v != future {
		t.Fatalf("user_version = %d (%v), want %d", v, err, future)
	}
}

func TestIndexRequiresRoot(t *testing.T) {
	if _, err := InitOrOpenIndex("  "); err == nil {
		t.Fatalf("expected error for blank root")
	}
}
