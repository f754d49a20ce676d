// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package debug records the per-instruction trace used to step through a
// compiled program from an external debugger.
package debug

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"

	"nickandperla.net/bf/internal/scanner"
	"nickandperla.net/bf/internal/token"
)

var log = commonlog.GetLogger("bf.debug")

// Document identifies a written trace artifact.
type Document struct {
	ID    string
	Path  string
	Lines int
}

// Recorder collects one trace line per emitted instruction.
type Recorder struct {
	id   string
	dir  string
	text strings.Builder
	line int
}

// NewRecorder creates a recorder whose artifact will be written into dir.
// An empty id is replaced by a random UUID.
func NewRecorder(dir, id string) *Recorder {
	if id == "" {
		id = uuid.NewString()
	}
	return &Recorder{id: id, dir: dir}
}

// Path returns where Flush writes the trace.
func (r *Recorder) Path() string {
	return filepath.Join(r.dir, "bfsource-"+r.id+".trace")
}

// Record appends the trace line for one instruction and returns its
// synthetic line number. Line numbers start at 1 and increase by one.
func (r *Recorder) Record(op token.Op, pos scanner.Pos) int {
	r.line++
	fmt.Fprintf(&r.text, "%s\t%s\n", op, pos)
	return r.line
}

// Lines returns the number of lines recorded so far.
func (r *Recorder) Lines() int {
	return r.line
}

// Flush writes the trace artifact and returns its document.
func (r *Recorder) Flush() (*Document, error) {
	if r.dir != "" {
		if err := os.MkdirAll(r.dir, 0o755); err != nil {
			return nil, fmt.Errorf("trace dir: %w", err)
		}
	}
	path := r.Path()
	if err := os.WriteFile(path, []byte(r.text.String()), 0o644); err != nil {
		return nil, fmt.Errorf("write trace: %w", err)
	}
	log.Debugf("wrote %d trace lines to %s", r.line, path)
	return &Document{ID: r.id, Path: path, Lines: r.line}, nil
}
