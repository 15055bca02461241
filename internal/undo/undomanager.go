/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package undo

import (
	"sync"
	"time"
)

// Target selects the state an entry replaces. Apply must only replace that
// state with the given value.
type Target interface {
	Apply(value any)
}

// Composite records several independent targets as one entry. Its values
// are []any holding one value per target, in the same order.
type Composite []Target

func (c Composite) Apply(value any) {
	vs := value.([]any)
	for i, t := range c {
		t.Apply(vs[i])
	}
}

// Entry is one reversible edit. Undo applies Previous, Redo applies Next.
// TS is when the entry was recorded.
type Entry struct {
	Target   Target
	Previous any
	Next     any
	TS       time.Time
}

// Config controls depth caps.
type Config struct {
	// MaxDepth limits the undo stack; the oldest entries are dropped first (0 means unlimited).
	MaxDepth int
}

// Manager keeps the undo/redo stacks of one project.
// It is safe for concurrent use; targets are applied outside the lock.
type Manager struct {
	cfg  Config
	mu   sync.Mutex
	undo []Entry
	redo []Entry
	// accounting
	dropped int
	now     func() time.Time
}

func NewManager(cfg Config) *Manager {
	if cfg.MaxDepth < 0 {
		cfg.MaxDepth = 0
	}
	return &Manager{cfg: cfg, now: time.Now}
}

// Snapshot records an edit without applying it; the caller applies next.
// Any new entry invalidates the redo stack.
func (m *Manager) Snapshot(target Target, previous, next any) {
	if target == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.undo = append(m.undo, Entry{Target: target, Previous: previous, Next: next, TS: m.now()})
	m.redo = nil
	m.enforceCapsLocked()
}

// Undo pops the most recent entry, applies its previous value and pushes it to redo.
func (m *Manager) Undo() bool {
	m.mu.Lock()
	if len(m.undo) == 0 {
		m.mu.Unlock()
		return false
	}
	e := m.undo[len(m.undo)-1]
	m.undo = m.undo[:len(m.undo)-1]
	m.redo = append(m.redo, e)
	m.mu.Unlock()
	e.Target.Apply(e.Previous)
	return true
}

// Redo pops from redo, applies the next value and pushes back to undo.
func (m *Manager) Redo() bool {
	m.mu.Lock()
	if len(m.redo) == 0 {
		m.mu.Unlock()
		return false
	}
	e := m.redo[len(m.redo)-1]
	m.redo = m.redo[:len(m.redo)-1]
	m.undo = append(m.undo, e)
	m.enforceCapsLocked()
	m.mu.Unlock()
	e.Target.Apply(e.Next)
	return true
}

func (m *Manager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.undo) > 0
}

func (m *Manager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.redo) > 0
}

// Peek returns the entry Undo would apply next.
func (m *Manager) Peek() (Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.undo) == 0 {
		return Entry{}, false
	}
	return m.undo[len(m.undo)-1], true
}

// Reset clears both stacks.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.undo = nil
	m.redo = nil
	m.dropped = 0
}

// Stats returns current sizes for diagnostics.
func (m *Manager) Stats() (undoDepth int, redoDepth int, dropped int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.undo), len(m.redo), m.dropped
}

func (m *Manager) enforceCapsLocked() {
	if m.cfg.MaxDepth > 0 && len(m.undo) > m.cfg.MaxDepth {
		// drop the oldest extras
		toDrop := len(m.undo) - m.cfg.MaxDepth
		m.dropped += toDrop
		m.undo = append([]Entry{}, m.undo[toDrop:]...)
	}
}
