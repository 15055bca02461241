/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"core2d/internal/domain"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Editor.HitThreshold != Defaults().Editor.HitThreshold || cfg.History.MaxDepth != 500 {
		t.Fatalf("expected defaults, got %#v", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := Defaults()
	cfg.Editor.MoveMode = "shape"
	cfg.Editor.SnapToGrid = false
	cfg.Editor.SnapX = 10
	cfg.History.MaxDepth = 42
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.Editor.MoveMode != "shape" || got.Editor.SnapToGrid || got.Editor.SnapX != 10 || got.History.MaxDepth != 42 {
		t.Fatalf("round trip mismatch: %#v", got)
	}
}

func TestEnvOverridesEditor(t *testing.T) {
	t.Setenv("CORE2D_SNAP_X", "7.5")
	t.Setenv("CORE2D_MOVE_MODE", "Shape")
	t.Setenv("CORE2D_TRY_TO_CONNECT", "true")
	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Editor.SnapX != 7.5 || cfg.Editor.MoveMode != "shape" || !cfg.Editor.TryToConnect {
		t.Fatalf("env overrides not applied: %#v", cfg.Editor)
	}
	if cfg.Editor.SnapY != Defaults().Editor.SnapY {
		t.Fatalf("unset variables must not override")
	}
	if name, ok := EnvOverrideFor("editor.snap_x"); !ok || name != "CORE2D_SNAP_X" {
		t.Fatalf("EnvOverrideFor = %q %v", name, ok)
	}
	if _, ok := EnvOverrideFor("editor.snap_y"); ok {
		t.Fatalf("snap_y is not overridden")
	}
}

func TestEnvOverridesLogging(t *testing.T) {
	t.Setenv("CORE2D_LOG_LEVEL", "ERROR")
	t.Setenv("CORE2D_LOG_FORMAT", "json")
	t.Setenv("CORE2D_LOG_SOURCE", "1")
	t.Setenv("CORE2D_LOG_FILE", "/tmp/core2d.log")
	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	lo := cfg.LogOptions()
	if lo.Level != "error" || lo.Format != "json" || !lo.AddSource || lo.File != "/tmp/core2d.log" {
		t.Fatalf("env overrides not applied to logging: %#v", lo)
	}
}

func TestBadEnvValueIsInvalid(t *testing.T) {
	t.Setenv("CORE2D_SNAP_X", "wide")
	if _, err := Load(filepath.Join(t.TempDir(), "none.yaml")); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestBadFileIsReported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("editor: ["), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
	if err := os.WriteFile(path, []byte("editor:\n  move_mode: sideways\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for unknown move mode, got %v", err)
	}
}

func TestMergeIncludesLogging(t *testing.T) {
	dst := Defaults()
	src := Defaults()
	src.Logging.Level = "debug"
	src.Logging.Format = "json"
	src.Logging.Source = true
	src.Logging.File = "/tmp/core2d.log"
	mergeInto(&dst, &src)
	if dst.Logging.Level != "debug" || dst.Logging.Format != "json" || !dst.Logging.Source || dst.Logging.File != "/tmp/core2d.log" {
		t.Fatalf("logging fields not merged correctly: %#v", dst.Logging)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := Defaults()
	cfg.Editor.MoveMode = "shape"
	cfg.Editor.HitThreshold = 3
	o := cfg.Options()
	if o.MoveMode != domain.MoveShape || o.HitThreshold != 3 || o.SnapX != cfg.Editor.SnapX {
		t.Fatalf("unexpected options: %+v", o)
	}
}
