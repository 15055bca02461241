/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package clipboard

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryRoundTrip(t *testing.T) {
	var m Memory
	ctx := context.Background()
	if s, err := m.ReadText(ctx); err != nil || s != "" {
		t.Fatalf("empty clipboard: %q %v", s, err)
	}
	if err := m.WriteText(ctx, "shapes"); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	if s, _ := m.ReadText(ctx); s != "shapes" {
		t.Fatalf("ReadText = %q", s)
	}
}

func TestMemoryHonorsCancel(t *testing.T) {
	var m Memory
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := m.ReadText(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if err := m.WriteText(ctx, "x"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSystemHonorsCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (System{}).ReadText(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNewReturnsUsableClipboard(t *testing.T) {
	if New() == nil {
		t.Fatalf("New returned nil")
	}
}
