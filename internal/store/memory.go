package store

import (
	"sort"
	"sync"
	"time"
)

// Memory is an in-memory store for testing.
type Memory struct {
	mu       sync.RWMutex
	programs map[string]string
	runs     map[string][]Run
}

// NewMemory creates a new in-memory store.
func NewMemory() *Memory {
	return &Memory{
		programs: make(map[string]string),
		runs:     make(map[string][]Run),
	}
}

// Get retrieves a program by name.
func (m *Memory) Get(name string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	src, ok := m.programs[name]
	return src, ok, nil
}

// Put stores a program by name.
func (m *Memory) Put(name, source string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.programs[name] = source
	return nil
}

// Delete removes a program and its runs.
func (m *Memory) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.programs, name)
	delete(m.runs, name)
	return nil
}

// List returns all program names.
func (m *Memory) List() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.programs))
	for name := range m.programs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Close is a no-op for memory store.
func (m *Memory) Close() error {
	return nil
}

// RecordRun appends a benchmark run.
func (m *Memory) RecordRun(run Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if run.Ts.IsZero() {
		run.Ts = time.Now().UTC()
	}
	m.runs[run.Name] = append(m.runs[run.Name], run)
	return nil
}

// Runs returns recorded runs, newest first.
func (m *Memory) Runs(name string, limit int) ([]Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := m.runs[name]
	if len(all) == 0 {
		return nil, nil
	}
	n := len(all)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Run, 0, n)
	for i := len(all) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, all[i])
	}
	return out, nil
}
