// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package bf provides the public API for compiling and running Brainfuck.
package bf

import (
	"io"

	"github.com/tliron/commonlog"

	"nickandperla.net/bf/internal/parser"
	"nickandperla.net/bf/internal/store"
)

var log = commonlog.GetLogger("bf")

// DefaultTapeSize is the number of cells allocated when none is configured.
const DefaultTapeSize = 30000

// Option configures a Runtime.
type Option func(*Runtime)

// WithSQLiteStore configures SQLite persistence at the given path. If the
// database cannot be opened, Save reports the open error.
func WithSQLiteStore(path string) Option {
	return func(r *Runtime) {
		s, err := store.NewSQLite(path)
		if err != nil {
			log.Errorf("open store %s: %s", path, err)
			r.storeErr = err
			return
		}
		r.store = s
	}
}

// WithMemoryStore configures an in-memory store (for testing).
func WithMemoryStore() Option {
	return func(r *Runtime) {
		r.store = store.NewMemory()
	}
}

// WithStore sets a custom store.
func WithStore(s Store) Option {
	return func(r *Runtime) {
		r.store = s
	}
}

// WithTapeSize sets the number of memory cells.
func WithTapeSize(n int) Option {
	return func(r *Runtime) {
		r.tapeSize = n
	}
}

// WithInput sets the io.Reader programs read from.
func WithInput(in io.Reader) Option {
	return func(r *Runtime) {
		r.input = in
	}
}

// WithOutput sets the io.Writer programs write to.
func WithOutput(w io.Writer) Option {
	return func(r *Runtime) {
		r.output = w
	}
}

// WithTraceDir enables debug traces for every compilation, written into dir.
func WithTraceDir(dir string) Option {
	return func(r *Runtime) {
		r.traceDir = dir
	}
}

// WithStrictBrackets makes an unclosed '[' a syntax error.
func WithStrictBrackets() Option {
	return func(r *Runtime) {
		r.strict = true
	}
}

// Store interface for custom stores.
type Store = store.Store

// CompileOption configures a single compilation.
type CompileOption = parser.Option

// TraceDir enables the debug trace for one compilation.
func TraceDir(dir string) CompileOption {
	return parser.WithTraceDir(dir)
}

// DocumentID sets the trace document identity for one compilation.
func DocumentID(id string) CompileOption {
	return parser.WithDocumentID(id)
}

// StrictBrackets makes an unclosed '[' a syntax error for one compilation.
func StrictBrackets() CompileOption {
	return parser.WithStrictBrackets()
}
