// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package token defines the Brainfuck instruction set and its source runes.
package token

// Op is a single Brainfuck instruction. Instructions carry no operand.
type Op int

const (
	Invalid Op = iota

	MoveForward  // > - Move the data pointer right
	MoveBackward // < - Move the data pointer left
	IncCell      // + - Increment the current cell
	DecCell      // - - Decrement the current cell
	Output       // . - Write the current cell
	Input        // , - Read into the current cell
	LoopStart    // [ - Loop guard: skip the loop when the cell is zero
	LoopEnd      // ] - Loop exit marker: jump back to the guard
)

// Source runes for each instruction.
const (
	RuneMoveForward  = '>'
	RuneMoveBackward = '<'
	RuneIncCell      = '+'
	RuneDecCell      = '-'
	RuneOutput       = '.'
	RuneInput        = ','
	RuneLoopStart    = '['
	RuneLoopEnd      = ']'
)

// IsCommand returns true if the rune is one of the eight significant runes.
// Every other rune is a no-op.
func IsCommand(r rune) bool {
	switch r {
	case RuneMoveForward, RuneMoveBackward, RuneIncCell, RuneDecCell,
		RuneOutput, RuneInput, RuneLoopStart, RuneLoopEnd:
		return true
	}
	return false
}

// FromRune returns the instruction for a source rune, or Invalid.
func FromRune(r rune) Op {
	switch r {
	case RuneMoveForward:
		return MoveForward
	case RuneMoveBackward:
		return MoveBackward
	case RuneIncCell:
		return IncCell
	case RuneDecCell:
		return DecCell
	case RuneOutput:
		return Output
	case RuneInput:
		return Input
	case RuneLoopStart:
		return LoopStart
	case RuneLoopEnd:
		return LoopEnd
	}
	return Invalid
}

// Rune returns the source rune of the instruction, or 0 for Invalid.
func (o Op) Rune() rune {
	switch o {
	case MoveForward:
		return RuneMoveForward
	case MoveBackward:
		return RuneMoveBackward
	case IncCell:
		return RuneIncCell
	case DecCell:
		return RuneDecCell
	case Output:
		return RuneOutput
	case Input:
		return RuneInput
	case LoopStart:
		return RuneLoopStart
	case LoopEnd:
		return RuneLoopEnd
	}
	return 0
}

// String returns the instruction name used in debug traces.
func (o Op) String() string {
	switch o {
	case MoveForward:
		return "MoveForward"
	case MoveBackward:
		return "MoveBackward"
	case IncCell:
		return "IncCell"
	case DecCell:
		return "DecCell"
	case Output:
		return "Output"
	case Input:
		return "Input"
	case LoopStart:
		return "LoopStart"
	case LoopEnd:
		return "LoopEnd"
	}
	return "Invalid"
}

// IsJump returns true for the two instructions that carry a jump target
// once code is generated.
func (o Op) IsJump() bool {
	return o == LoopStart || o == LoopEnd
}
