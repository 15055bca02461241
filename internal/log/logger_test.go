/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFromEnvAndGetenv(t *testing.T) {
	t.Setenv("CORE2D_LOG_LEVEL", "warn")
	t.Setenv("CORE2D_LOG_FORMAT", "json")
	t.Setenv("CORE2D_LOG_SOURCE", "true")

	opts := FromEnv()
	if opts.Level != "warn" || opts.Format != "json" || !opts.AddSource || opts.File != "" {
		t.Fatalf("FromEnv mismatch: %+v", opts)
	}
	if err := os.Unsetenv("SOME_UNSET_VAR"); err != nil {
		t.Fatalf("Unsetenv error: %v", err)
	}
	if v := getenv("SOME_UNSET_VAR", "fallback"); v != "fallback" {
		t.Fatalf("getenv fallback failed: %q", v)
	}
}

func TestPrettyTextHandler_Behavior(t *testing.T) {
	var buf bytes.Buffer
	h := &prettyTextHandler{opts: prettyOpts{Level: slog.LevelWarn}, w: &buf}
	if h.Enabled(nil, slog.LevelInfo) {
		t.Fatalf("info should not be enabled at warn level")
	}
	if !h.Enabled(nil, slog.LevelError) {
		t.Fatalf("error should be enabled at warn level")
	}

	h2 := h.WithAttrs([]slog.Attr{slog.String("k", "v")}).WithGroup("grp")
	r := slog.Record{Time: time.Now(), Level: slog.LevelError, Message: "boom"}
	r.AddAttrs(slog.Int("n", 42), slog.Float64("pi", 3.14), slog.Bool("ok", true))
	if err := h2.Handle(nil, r); err != nil {
		t.Fatalf("handle error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"boom", "k=v", "grp.n=42", "ERR", "pi=3.14", "grp.ok=true"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q: %q", want, out)
		}
	}
}

func TestNewJSONCarriesAppAndComponent(t *testing.T) {
	var buf bytes.Buffer
	l := Component(New(Options{Level: "debug", Format: "json", Output: &buf}), "editor")
	WithOperation(l, "split").Debug("hello")

	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if m["app"] != "core2d" || m["component"] != "editor" || m["op"] != "split" || m["msg"] != "hello" {
		t.Fatalf("unexpected record: %v", m)
	}
}

func TestFileSinkReceivesRecords(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "core2d.log")
	l := New(Options{Level: "info", File: path, Output: &console})
	l.Info("to both")
	l.Debug("filtered")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "to both") || strings.Contains(string(data), "filtered") {
		t.Fatalf("unexpected file content: %q", data)
	}
	if !strings.Contains(console.String(), "INF to both") {
		t.Fatalf("unexpected console content: %q", console.String())
	}
}

func TestNopDiscards(t *testing.T) {
	l := Nop()
	if l.Enabled(nil, slog.LevelError) {
		t.Fatalf("nop logger must report disabled")
	}
	l.Error("ignored")
}
