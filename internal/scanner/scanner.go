// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package scanner provides a streaming lexer for Brainfuck source.
package scanner

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"nickandperla.net/bf/internal/token"
)

// Pos is a source position. Line and Column are 1-based; the zero Pos
// marks a synthesized instruction with no source rune.
type Pos struct {
	Line   int
	Column int
}

// IsValid returns true if the position refers to a source rune.
func (p Pos) IsValid() bool {
	return p.Line > 0
}

func (p Pos) String() string {
	if !p.IsValid() {
		return "implicit"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Scanner tokenizes Brainfuck input rune-by-rune, skipping no-op runes.
type Scanner struct {
	reader *bufio.Reader
	line   int // Current line number (1-based)
	col    int // Column of the last rune read
}

// Item represents a scanned instruction with its position.
type Item struct {
	Op  token.Op
	Pos Pos
}

// EOF reports whether the item marks the end of input.
func (i *Item) EOF() bool {
	return i.Op == token.Invalid
}

// New creates a new Scanner from an io.Reader.
func New(r io.Reader) *Scanner {
	return &Scanner{
		reader: bufio.NewReader(r),
		line:   1,
	}
}

// NewFromString creates a new Scanner from a string.
func NewFromString(s string) *Scanner {
	return New(strings.NewReader(s))
}

// Next returns the next instruction from the input. At end of input it
// returns an item whose EOF method reports true.
func (s *Scanner) Next() (*Item, error) {
	for {
		r, _, err := s.reader.ReadRune()
		if err == io.EOF {
			return &Item{Op: token.Invalid, Pos: Pos{Line: s.line, Column: s.col + 1}}, nil
		}
		if err != nil {
			return nil, err
		}

		if r == '\n' {
			s.line++
			s.col = 0
			continue
		}
		s.col++

		if token.IsCommand(r) {
			return &Item{Op: token.FromRune(r), Pos: Pos{Line: s.line, Column: s.col}}, nil
		}
	}
}
