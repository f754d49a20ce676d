// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package vm runs compiled Brainfuck programs.
package vm

import (
	"errors"
	"fmt"
	"slices"

	"nickandperla.net/bf/internal/code"
	"nickandperla.net/bf/internal/debug"
	"nickandperla.net/bf/internal/scanner"
	"nickandperla.net/bf/internal/stream"
	"nickandperla.net/bf/internal/token"
)

// ErrHalt may be returned by a StepFunc to stop a run without error.
var ErrHalt = errors.New("halt")

// OutOfRangeError reports the data pointer leaving the memory tape.
type OutOfRangeError struct {
	Pointer int
	Size    int
	PC      int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("data pointer %d out of range [0,%d) at instruction %d", e.Pointer, e.Size, e.PC)
}

// Step describes the instruction about to run.
type Step struct {
	PC      int
	Line    int // Synthetic trace line, 0 without a trace
	Op      token.Op
	Pos     scanner.Pos
	Pointer int
	Cell    int32
}

// StepFunc is called before each instruction of a stepped run.
type StepFunc func(Step) error

// Program is a compiled, immutable program. It is safe to execute
// repeatedly, including concurrently on disjoint memory and streams.
type Program struct {
	code []code.Instr
	doc  *debug.Document
}

// New wraps generated code. doc is nil unless the code was traced.
func New(c []code.Instr, doc *debug.Document) *Program {
	return &Program{code: c, doc: doc}
}

// Len returns the number of instructions.
func (p *Program) Len() int {
	return len(p.code)
}

// Code returns a copy of the generated instructions.
func (p *Program) Code() []code.Instr {
	return slices.Clone(p.code)
}

// Document returns the debug trace document, or nil.
func (p *Program) Document() *debug.Document {
	return p.doc
}

// String returns a disassembly of the program.
func (p *Program) String() string {
	return code.Disassemble(p.code)
}

// Execute runs the program. The data pointer starts at 0; cells are not
// cleared. Leaving the tape is an *OutOfRangeError, and stream errors
// abort the run.
func (p *Program) Execute(memory []int32, in stream.Reader, out stream.Writer) error {
	return p.run(memory, in, out, nil)
}

// Step runs the program like Execute, calling fn before every instruction.
func (p *Program) Step(memory []int32, in stream.Reader, out stream.Writer, fn StepFunc) error {
	err := p.run(memory, in, out, fn)
	if errors.Is(err, ErrHalt) {
		return nil
	}
	return err
}

func (p *Program) run(memory []int32, in stream.Reader, out stream.Writer, fn StepFunc) error {
	prog := p.code
	if len(prog) > 0 && len(memory) == 0 {
		return &OutOfRangeError{Pointer: 0, Size: 0, PC: 0}
	}

	ptr := 0
	for pc := 0; pc < len(prog); pc++ {
		ins := &prog[pc]

		if fn != nil {
			err := fn(Step{
				PC:      pc,
				Line:    ins.Line,
				Op:      ins.Op,
				Pos:     ins.Pos,
				Pointer: ptr,
				Cell:    memory[ptr],
			})
			if err != nil {
				return err
			}
		}

		switch ins.Op {
		case token.MoveForward:
			ptr++
			if ptr >= len(memory) {
				return &OutOfRangeError{Pointer: ptr, Size: len(memory), PC: pc}
			}
		case token.MoveBackward:
			ptr--
			if ptr < 0 {
				return &OutOfRangeError{Pointer: ptr, Size: len(memory), PC: pc}
			}
		case token.IncCell:
			memory[ptr]++
		case token.DecCell:
			memory[ptr]--
		case token.Output:
			if err := out.Put(byte(memory[ptr])); err != nil {
				return fmt.Errorf("output at instruction %d: %w", pc, err)
			}
		case token.Input:
			c, err := in.Get()
			if err != nil {
				return fmt.Errorf("input at instruction %d: %w", pc, err)
			}
			memory[ptr] = int32(c)
		case token.LoopStart:
			if memory[ptr] == 0 {
				pc = ins.Target - 1
			}
		case token.LoopEnd:
			pc = ins.Target - 1
		}
	}
	return nil
}
