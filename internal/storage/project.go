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
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"core2d/internal/domain"
	applog "core2d/internal/log"
	"core2d/internal/serializer"
)

const (
	ProjectFileName = "project.core2d.json"
	BackupsDirName  = "backups"
	// KeepBackups is the number of project file backups kept by Save.
	KeepBackups = 10

	backupStamp = "20060102-150405.000"
)

// ProjectHandle is a project bound to its directory on disk.
type ProjectHandle struct {
	Root        string
	ProjectPath string
	Project     *domain.Project
	// Recovered is set by Open when the project file was unreadable and a
	// backup was loaded instead.
	Recovered bool
}

func newHandle(root string, p *domain.Project) *ProjectHandle {
	return &ProjectHandle{Root: root, ProjectPath: filepath.Join(root, ProjectFileName), Project: p}
}

// InitProject creates root if needed and writes proj as its project file.
func InitProject(root string, proj *domain.Project) (*ProjectHandle, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("root path is required")
	}
	if proj == nil {
		return nil, errors.New("project is required")
	}
	ph := newHandle(root, proj)
	if err := Save(ph); err != nil {
		return nil, err
	}
	return ph, nil
}

// Open loads the project of root. When the project file is missing or does
// not decode, backups are tried from newest to oldest.
func Open(root string) (*ProjectHandle, error) {
	ph := newHandle(root, nil)
	p, err := readProject(ph.ProjectPath)
	if err == nil {
		ph.Project = p
		return ph, nil
	}
	for _, b := range backups(root) {
		bp, berr := readProject(b)
		if berr != nil {
			continue
		}
		applog.WithComponent("storage").Warn("project file unreadable, loaded backup",
			slog.String("backup", filepath.Base(b)), slog.Any("err", err))
		ph.Project, ph.Recovered = bp, true
		return ph, nil
	}
	return nil, fmt.Errorf("open project: %w (no usable backup)", err)
}

func readProject(path string) (*domain.Project, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return serializer.DecodeProject(bytes.NewReader(b))
}

// Save writes the project file atomically. The previous file is kept in the
// backups directory, which is trimmed to KeepBackups entries.
func Save(ph *ProjectHandle) error {
	if ph == nil {
		return errors.New("nil ProjectHandle")
	}
	if ph.Root == "" || ph.ProjectPath == "" {
		return errors.New("invalid ProjectHandle: missing paths")
	}
	var buf bytes.Buffer
	if err := serializer.EncodeProject(&buf, ph.Project); err != nil {
		return fmt.Errorf("encode project: %w", err)
	}
	bdir := filepath.Join(ph.Root, BackupsDirName)
	if err := os.MkdirAll(bdir, 0o755); err != nil {
		return fmt.Errorf("create project dirs: %w", err)
	}
	if prev, err := os.ReadFile(ph.ProjectPath); err == nil {
		name := fmt.Sprintf("%s.%s.bak", ProjectFileName, time.Now().Format(backupStamp))
		if err := writeAtomic(filepath.Join(bdir, name), prev); err != nil {
			return fmt.Errorf("backup project: %w", err)
		}
		pruneBackups(ph.Root, KeepBackups)
	}
	if err := writeAtomic(ph.ProjectPath, buf.Bytes()); err != nil {
		return fmt.Errorf("write project: %w", err)
	}
	ph.Recovered = false
	return nil
}

// SaveAs rebinds the handle to newRoot and saves there.
func SaveAs(ph *ProjectHandle, newRoot string) error {
	if ph == nil {
		return errors.New("nil ProjectHandle")
	}
	if strings.TrimSpace(newRoot) == "" {
		return errors.New("new root is empty")
	}
	ph.Root = newRoot
	ph.ProjectPath = filepath.Join(newRoot, ProjectFileName)
	return Save(ph)
}

// writeAtomic writes data to a synced temp file next to path and renames it
// over path.
func writeAtomic(path string, data []byte) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	_, werr := f.Write(data)
	if werr == nil {
		werr = f.Sync()
	}
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr == nil {
		werr = os.Rename(tmp, path)
	}
	if werr != nil {
		_ = os.Remove(tmp)
	}
	return werr
}

// backups lists the backup files of root, newest first. Stamps sort
// lexicographically.
func backups(root string) []string {
	bdir := filepath.Join(root, BackupsDirName)
	ents, err := os.ReadDir(bdir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range ents {
		name := e.Name()
		if !e.IsDir() && strings.HasPrefix(name, ProjectFileName+".") && strings.HasSuffix(name, ".bak") {
			out = append(out, filepath.Join(bdir, name))
		}
	}
	slices.Sort(out)
	slices.Reverse(out)
	return out
}

func pruneBackups(root string, keep int) {
	all := backups(root)
	if len(all) <= keep {
		return
	}
	for _, b := range all[keep:] {
		_ = os.Remove(b)
	}
}
