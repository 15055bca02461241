/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"core2d/internal/domain"
)

func sampleProject(name string) *domain.Project {
	p := domain.NewProject(name)
	pg := domain.NewPage("Page")
	l := domain.NewLayer("Layer1")
	l.Shapes = []domain.Shape{domain.NewLine(domain.NewPoint(0, 0), domain.NewPoint(10, 0))}
	pg.SetLayers([]*domain.Layer{l})
	pg.CurrentLayer = l
	doc := domain.NewDocument("Doc")
	doc.SetPages([]*domain.Page{pg})
	p.SetDocuments([]*domain.Document{doc})
	p.SetCurrentPage(pg)
	return p
}

func TestInitProjectWritesProjectFile(t *testing.T) {
	root := t.TempDir()
	ph, err := InitProject(root, sampleProject("Test Project"))
	if err != nil {
		t.Fatalf("InitProject error: %v", err)
	}
	if _, err := os.Stat(ph.ProjectPath); err != nil {
		t.Fatalf("project file missing: %v", err)
	}
	if fi, err := os.Stat(filepath.Join(root, BackupsDirName)); err != nil || !fi.IsDir() {
		t.Fatalf("expected backups directory")
	}
	opened, err := Open(root)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if opened.Project.Name != "Test Project" || len(opened.Project.CurrentLayer().Shapes) != 1 {
		t.Fatalf("opened project mismatch: %+v", opened.Project)
	}
}

func TestSaveCreatesTimestampedBackup(t *testing.T) {
	root := t.TempDir()
	ph, err := InitProject(root, sampleProject("Backup Test"))
	if err != nil {
		t.Fatalf("InitProject error: %v", err)
	}
	ph.Project.SetName("changed")
	if err := Save(ph); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	ents, err := os.ReadDir(filepath.Join(root, BackupsDirName))
	if err != nil {
		t.Fatalf("read backups dir: %v", err)
	}
	var bakCount int
	for _, e := range ents {
		if strings.HasPrefix(e.Name(), ProjectFileName+".") && strings.HasSuffix(e.Name(), ".bak") {
			bakCount++
		}
	}
	if bakCount == 0 {
		t.Fatalf("expected at least one backup file, found 0")
	}
}

func TestOpenFallsBackToLatestBackupOnCorruption(t *testing.T) {
	root := t.TempDir()
	ph, err := InitProject(root, sampleProject("Open From Backup"))
	if err != nil {
		t.Fatalf("InitProject error: %v", err)
	}
	if err := Save(ph); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if err := os.WriteFile(ph.ProjectPath, []byte("{ this is not json"), 0o644); err != nil {
		t.Fatalf("corrupt project: %v", err)
	}
	opened, err := Open(root)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if opened.Project.Name != "Open From Backup" || !opened.Recovered {
		t.Fatalf("opened %q recovered=%v", opened.Project.Name, opened.Recovered)
	}
}

func TestSaveKeepsBoundedBackups(t *testing.T) {
	root := t.TempDir()
	ph, err := InitProject(root, sampleProject("Bounded"))
	if err != nil {
		t.Fatalf("InitProject error: %v", err)
	}
	bdir := filepath.Join(root, BackupsDirName)
	for i := range KeepBackups + 3 {
		name := fmt.Sprintf("%s.20200101-000000.%03d.bak", ProjectFileName, i)
		if err := os.WriteFile(filepath.Join(bdir, name), []byte("{}"), 0o644); err != nil {
			t.Fatalf("seed backup: %v", err)
		}
	}
	if err := Save(ph); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	got := backups(root)
	if len(got) != KeepBackups {
		t.Fatalf("kept %d backups, want %d", len(got), KeepBackups)
	}
	if strings.HasPrefix(filepath.Base(got[0]), ProjectFileName+".2020") {
		t.Fatalf("newest backup was pruned: %v", got[0])
	}
}

func TestOpenWithoutBackupsFails(t *testing.T) {
	if _, err := Open(t.TempDir()); err == nil {
		t.Fatalf("expected error for empty directory")
	}
}

func TestSaveAsMovesHandle(t *testing.T) {
	ph, err := InitProject(t.TempDir(), sampleProject("Moved"))
	if err != nil {
		t.Fatalf("InitProject error: %v", err)
	}
	newRoot := filepath.Join(t.TempDir(), "elsewhere")
	if err := SaveAs(ph, newRoot); err != nil {
		t.Fatalf("SaveAs error: %v", err)
	}
	if ph.ProjectPath != filepath.Join(newRoot, ProjectFileName) {
		t.Fatalf("handle not updated: %s", ph.ProjectPath)
	}
	if _, err := os.Stat(ph.ProjectPath); err != nil {
		t.Fatalf("project file missing after SaveAs: %v", err)
	}
}
