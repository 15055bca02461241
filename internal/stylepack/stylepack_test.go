/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package stylepack

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"core2d/internal/domain"
)

func sourceProject() *domain.Project {
	p := domain.NewProject("Source")
	red := domain.NewShapeStyle("Red")
	blue := domain.NewShapeStyle("Blue")
	p.StyleLibraries = []*domain.Library[*domain.ShapeStyle]{domain.NewLibrary("Colors", red, blue)}

	g := domain.NewGroup("Gate")
	r := domain.NewRectangle(domain.NewPoint(0, 0), domain.NewPoint(20, 10))
	r.SetStyle(blue)
	g.AddShape(r)
	g.AddConnector(domain.NewPoint(0, 5))
	p.GroupLibraries = []*domain.Library[*domain.GroupShape]{domain.NewLibrary("Logic", g)}
	return p
}

func TestExportAndInstallPack(t *testing.T) {
	src := sourceProject()
	zipPath := filepath.Join(t.TempDir(), "out", "pack.zip")
	if err := Export(src, zipPath); err != nil {
		t.Fatalf("export pack: %v", err)
	}
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	if len(zr.File) != 3 || zr.File[0].Name != ManifestName {
		t.Fatalf("expected manifest and two libraries, got %d entries", len(zr.File))
	}
	_ = zr.Close()

	dst := domain.NewProject("Target")
	installed, err := Install(dst, zipPath)
	if err != nil {
		t.Fatalf("install pack: %v", err)
	}
	if installed != 2 || len(dst.StyleLibraries) != 1 || len(dst.GroupLibraries) != 1 {
		t.Fatalf("expected both libraries installed, got %d", installed)
	}
	colors := dst.StyleLibraries[0]
	if colors.Name != "Colors" || len(colors.Items) != 2 || colors.Items[1].Name != "Blue" {
		t.Fatalf("unexpected style library %+v", colors)
	}
	gate := dst.GroupLibraries[0].Items[0]
	if gate == src.GroupLibraries[0].Items[0] || len(gate.Connectors) != 1 {
		t.Fatalf("group must be a decoded copy with its connector")
	}
	if gate.Shapes[0].Style() != colors.Items[1] {
		t.Fatalf("group shapes must bind to the installed styles")
	}

	again, err := Install(dst, zipPath)
	if err != nil || again != 0 {
		t.Fatalf("existing libraries must be skipped, got %d %v", again, err)
	}
}

func TestInstallIgnoresForeignEntries(t *testing.T) {
	zpath := filepath.Join(t.TempDir(), "pack2.zip")
	f, err := os.Create(zpath)
	if err != nil {
		t.Fatalf("create zip: %v", err)
	}
	zw := zip.NewWriter(f)
	dh := &zip.FileHeader{Name: "styles/subdir/"}
	dh.SetMode(os.ModeDir | 0o755)
	if _, err := zw.CreateHeader(dh); err != nil {
		t.Fatalf("create dir header: %v", err)
	}
	w, _ := zw.Create("top/inner.txt")
	_, _ = w.Write([]byte("content"))
	_ = zw.Close()
	_ = f.Close()

	installed, err := Install(domain.NewProject("p"), zpath)
	if err != nil || installed != 0 {
		t.Fatalf("expected nothing installed, got %d %v", installed, err)
	}
}

func TestInstallRejectsBrokenLibrary(t *testing.T) {
	zpath := filepath.Join(t.TempDir(), "bad.zip")
	f, err := os.Create(zpath)
	if err != nil {
		t.Fatalf("create zip: %v", err)
	}
	zw := zip.NewWriter(f)
	w, _ := zw.Create("styles/Broken.json")
	_, _ = w.Write([]byte("{}"))
	_ = zw.Close()
	_ = f.Close()

	if _, err := Install(domain.NewProject("p"), zpath); err == nil {
		t.Fatalf("expected error for a broken library")
	}
}

func TestArgumentsRequired(t *testing.T) {
	if err := Export(nil, "x.zip"); err == nil {
		t.Fatalf("expected error for nil project")
	}
	if err := Export(domain.NewProject("p"), " "); err == nil {
		t.Fatalf("expected error for empty path")
	}
	if _, err := Install(domain.NewProject("p"), filepath.Join(t.TempDir(), "missing.zip")); err == nil {
		t.Fatalf("expected error for missing pack")
	}
}
