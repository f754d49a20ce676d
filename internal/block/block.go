// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package block builds the code of nested Brainfuck scopes.
//
// Blocks live in an Arena and are addressed by small integer handles. Each
// block records its parent handle, so the nesting tree needs no pointers
// between blocks. All blocks emit into one flat code slice owned by the
// arena; a block is the range of that slice starting at its Start index.
package block

import (
	"fmt"

	"nickandperla.net/bf/internal/code"
	"nickandperla.net/bf/internal/scanner"
	"nickandperla.net/bf/internal/token"
)

// Handle addresses a Block inside its Arena.
type Handle int

// None is the parent handle of the root block.
const None Handle = -1

// Block describes one scope.
type Block struct {
	Parent Handle
	Loop   bool
	Open   scanner.Pos // Position of the opening '[' of a loop block
	Start  int         // Index of the block's first instruction

	done bool
}

// Arena owns every block of one compilation and the code they emit.
type Arena struct {
	blocks []Block
	code   []code.Instr
	open   Handle // Innermost open block
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{open: None}
}

// Len returns the number of blocks ever opened.
func (a *Arena) Len() int {
	return len(a.blocks)
}

// Get returns the block for a handle.
func (a *Arena) Get(h Handle) *Block {
	return &a.blocks[h]
}

// Code returns the code emitted so far. Jump targets are absolute indices.
func (a *Arena) Code() []code.Instr {
	return a.code
}

// Open starts a new block inside parent, which must be the innermost open
// block (None for the root). A loop block receives its guard as its first
// instruction; guard is ignored for straight-line blocks.
func (a *Arena) Open(parent Handle, loop bool, guard code.Instr) Handle {
	if parent != a.open {
		panic(fmt.Sprintf("block: open inside %d, innermost open block is %d", parent, a.open))
	}
	b := Block{Parent: parent, Loop: loop, Start: len(a.code)}
	if loop {
		guard.Op = token.LoopStart
		guard.Target = 0
		b.Open = guard.Pos
		a.code = append(a.code, guard)
	}
	a.blocks = append(a.blocks, b)
	a.open = Handle(len(a.blocks) - 1)
	return a.open
}

func (a *Arena) check(h Handle, what string) *Block {
	b := a.Get(h)
	if b.done {
		panic(fmt.Sprintf("block: %s completed block %d", what, h))
	}
	if h != a.open {
		panic(fmt.Sprintf("block: %s block %d, innermost open block is %d", what, h, a.open))
	}
	return b
}

// Append adds one instruction to the innermost open block.
func (a *Arena) Append(h Handle, in code.Instr) {
	a.check(h, "append to")
	a.code = append(a.code, in)
}

// Complete closes a block and returns its code. A straight-line block
// yields its instructions in source order. A loop block yields
//
//	guard, body..., exit
//
// where the guard jumps past the exit when the current cell is zero and the
// exit jumps back to the guard, so the zero test runs before every
// iteration including the first. exit is ignored for straight-line blocks.
// Targets are patched in place; nothing already emitted is copied.
func (a *Arena) Complete(h Handle, exit code.Instr) []code.Instr {
	b := a.check(h, "complete")
	b.done = true
	a.open = b.Parent

	if b.Loop {
		exit.Op = token.LoopEnd
		exit.Target = b.Start
		a.code = append(a.code, exit)
		a.code[b.Start].Target = len(a.code)
	}
	return a.code[b.Start:]
}
