/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package clipboard exchanges text with the system clipboard, or with an
// in-process buffer on hosts that have none.
package clipboard

import (
	"context"
	"errors"
	"sync"

	"github.com/atotto/clipboard"
)

// ErrUnavailable is returned by System when the platform has no clipboard utility.
var ErrUnavailable = errors.New("clipboard: unavailable")

// Clipboard reads and writes plain text. Calls block until the clipboard
// answers or ctx is done.
type Clipboard interface {
	ReadText(ctx context.Context) (string, error)
	WriteText(ctx context.Context, text string) error
}

// New returns the system clipboard when the platform supports one and an
// in-process buffer otherwise.
func New() Clipboard {
	if clipboard.Unsupported {
		return &Memory{}
	}
	return System{}
}

// System is the platform clipboard.
type System struct{}

func (System) ReadText(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if clipboard.Unsupported {
		return "", ErrUnavailable
	}
	type result struct {
		text string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		s, err := clipboard.ReadAll()
		ch <- result{s, err}
	}()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		return r.text, r.err
	}
}

func (System) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	ch := make(chan error, 1)
	go func() { ch <- clipboard.WriteAll(text) }()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-ch:
		return err
	}
}

// Memory is an in-process clipboard. The zero value is empty and ready to use.
type Memory struct {
	mu   sync.Mutex
	text string
}

func (m *Memory) ReadText(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

func (m *Memory) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	m.text = text
	m.mu.Unlock()
	return nil
}
