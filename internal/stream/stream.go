// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package stream provides the byte channels a Brainfuck program reads from
// and writes to. Read and write directions are separate types.
package stream

import "fmt"

// Reader is the input side of a program: Get blocks until one byte is
// available.
type Reader interface {
	Get() (byte, error)
}

// Writer is the output side of a program.
type Writer interface {
	Put(c byte) error
}

// StreamStateError reports a stream used outside its current state, such
// as a write past the capacity of a memory buffer or after Close.
type StreamStateError struct {
	Stream string
	Op     string
	Reason string
}

func (e *StreamStateError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Stream, e.Op, e.Reason)
}
