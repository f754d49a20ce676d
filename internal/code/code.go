// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package code defines the executable form of a compiled Brainfuck program.
package code

import (
	"fmt"
	"strings"

	"nickandperla.net/bf/internal/scanner"
	"nickandperla.net/bf/internal/token"
)

// Instr is one generated instruction.
type Instr struct {
	Op token.Op
	// Target is the jump destination of a LoopStart (the index just past
	// the matching LoopEnd) or a LoopEnd (the index of its LoopStart).
	Target int
	// Line is the synthetic debug line, 0 when tracing is off.
	Line int
	Pos  scanner.Pos
}

func (i Instr) String() string {
	if i.Op.IsJump() {
		return fmt.Sprintf("%-12s -> %d", i.Op, i.Target)
	}
	return i.Op.String()
}

// Disassemble renders code one instruction per line, prefixed with its
// index and source rune.
func Disassemble(code []Instr) string {
	var sb strings.Builder
	for pc, in := range code {
		fmt.Fprintf(&sb, "%04d  %c  %s\n", pc, in.Op.Rune(), in)
	}
	return sb.String()
}
