/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package stylepack exchanges style and group libraries between projects
// as zip archives. Each library is one entry in the shape transfer form.
package stylepack

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"core2d/internal/domain"
	applog "core2d/internal/log"
	"core2d/internal/serializer"
)

const (
	ManifestName = "stylepack.manifest.txt"
	stylesPrefix = "styles/"
	groupsPrefix = "groups/"
)

func entryName(prefix, library string) string {
	return prefix + url.PathEscape(library) + ".json"
}

func libraryName(entry, prefix string) (string, bool) {
	if !strings.HasPrefix(entry, prefix) || path.Ext(entry) != ".json" {
		return "", false
	}
	name, err := url.PathUnescape(strings.TrimSuffix(strings.TrimPrefix(entry, prefix), ".json"))
	if err != nil || name == "" {
		return "", false
	}
	return name, true
}

// Export writes every style and group library of p into a zip at destZipPath,
// with a small manifest for human inspection.
func Export(p *domain.Project, destZipPath string) error {
	l := applog.WithOperation(applog.WithComponent("stylepack"), "export")
	if p == nil {
		return errors.New("project is required")
	}
	if strings.TrimSpace(destZipPath) == "" {
		return errors.New("destZipPath is required")
	}
	if err := os.MkdirAll(filepath.Dir(destZipPath), 0o755); err != nil {
		return fmt.Errorf("ensure zip dir: %w", err)
	}
	// On Windows, remove destination if present before create
	_ = os.Remove(destZipPath)

	zf, err := os.Create(destZipPath)
	if err != nil {
		return fmt.Errorf("create zip: %w", err)
	}
	defer func() { _ = zf.Close() }()
	zw := zip.NewWriter(zf)

	manifest := fmt.Sprintf("Core2D Style Pack\nCreated: %s\nProject: %s\nStyle libraries: %d\nGroup libraries: %d\n",
		time.Now().Format(time.RFC3339), p.Name, len(p.StyleLibraries), len(p.GroupLibraries))
	add := func(name string, data []byte) error {
		w, err := zw.Create(name)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}
	if err := add(ManifestName, []byte(manifest)); err != nil {
		return fmt.Errorf("add manifest: %w", err)
	}
	for _, lib := range p.StyleLibraries {
		data, err := serializer.EncodeStyles(lib.Items)
		if err != nil {
			return fmt.Errorf("encode style library %q: %w", lib.Name, err)
		}
		if err := add(entryName(stylesPrefix, lib.Name), data); err != nil {
			return fmt.Errorf("add style library %q: %w", lib.Name, err)
		}
	}
	for _, lib := range p.GroupLibraries {
		items := make([]domain.Shape, 0, len(lib.Items))
		for _, g := range lib.Items {
			items = append(items, g)
		}
		data, err := serializer.EncodeShapes(items)
		if err != nil {
			return fmt.Errorf("encode group library %q: %w", lib.Name, err)
		}
		if err := add(entryName(groupsPrefix, lib.Name), data); err != nil {
			return fmt.Errorf("add group library %q: %w", lib.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		l.Error("zip build failed", slog.Any("err", err))
		return fmt.Errorf("build zip: %w", err)
	}
	l.Info("style pack exported", slog.Int("styleLibraries", len(p.StyleLibraries)),
		slog.Int("groupLibraries", len(p.GroupLibraries)), slog.String("zip", destZipPath))
	return nil
}

// Install adds the libraries of the pack to p. A library whose name p
// already uses is skipped; entries that are not libraries are ignored.
// Style libraries go in first so groups bind to their styles. It returns
// the number of libraries installed.
func Install(p *domain.Project, packZipPath string) (int, error) {
	l := applog.WithOperation(applog.WithComponent("stylepack"), "install")
	if p == nil {
		return 0, errors.New("project is required")
	}
	if strings.TrimSpace(packZipPath) == "" {
		return 0, errors.New("packZipPath is required")
	}
	r, err := zip.OpenReader(packZipPath)
	if err != nil {
		return 0, fmt.Errorf("open pack: %w", err)
	}
	defer func() { _ = r.Close() }()

	type entry struct {
		name string
		data []byte
	}
	var styles, groups []entry
	for _, f := range r.File {
		if f.FileInfo().IsDir() || f.Name == ManifestName {
			continue
		}
		name, isStyle := libraryName(f.Name, stylesPrefix)
		var isGroup bool
		if !isStyle {
			name, isGroup = libraryName(f.Name, groupsPrefix)
		}
		if !isStyle && !isGroup {
			l.Warn("skip unknown entry", slog.String("entry", f.Name))
			continue
		}
		data, err := readEntry(f)
		if err != nil {
			return 0, fmt.Errorf("read %s: %w", f.Name, err)
		}
		if isStyle {
			styles = append(styles, entry{name, data})
		} else {
			groups = append(groups, entry{name, data})
		}
	}

	installed := 0
	for _, e := range styles {
		if slices.ContainsFunc(p.StyleLibraries, func(lib *domain.Library[*domain.ShapeStyle]) bool { return lib.Name == e.name }) {
			l.Warn("skip existing style library", slog.String("library", e.name))
			continue
		}
		items, err := serializer.DecodeStyles(e.data, serializer.ProjectResolver(p, false))
		if err != nil {
			return installed, fmt.Errorf("decode style library %q: %w", e.name, err)
		}
		lib := domain.NewLibrary(e.name, items...)
		p.SetStyleLibraries(append(slices.Clone(p.StyleLibraries), lib))
		installed++
	}
	for _, e := range groups {
		if slices.ContainsFunc(p.GroupLibraries, func(lib *domain.Library[*domain.GroupShape]) bool { return lib.Name == e.name }) {
			l.Warn("skip existing group library", slog.String("library", e.name))
			continue
		}
		shapes, err := serializer.DecodeShapes(e.data, serializer.ProjectResolver(p, true))
		if err != nil {
			return installed, fmt.Errorf("decode group library %q: %w", e.name, err)
		}
		var items []*domain.GroupShape
		for _, s := range shapes {
			if g, ok := s.(*domain.GroupShape); ok {
				items = append(items, g)
			}
		}
		lib := domain.NewLibrary(e.name, items...)
		p.SetGroupLibraries(append(slices.Clone(p.GroupLibraries), lib))
		installed++
	}
	l.Info("style pack installed", slog.Int("libraries", installed))
	return installed, nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return io.ReadAll(rc)
}
