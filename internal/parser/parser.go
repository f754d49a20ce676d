// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package parser compiles Brainfuck source into a vm.Program.
package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/tliron/commonlog"

	"nickandperla.net/bf/internal/block"
	"nickandperla.net/bf/internal/code"
	"nickandperla.net/bf/internal/debug"
	"nickandperla.net/bf/internal/scanner"
	"nickandperla.net/bf/internal/token"
	"nickandperla.net/bf/internal/vm"
)

var log = commonlog.GetLogger("bf.parser")

// SyntaxError reports malformed bracket nesting.
type SyntaxError struct {
	Pos scanner.Pos
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %s: %s", e.Pos, e.Msg)
}

// Option configures a compilation.
type Option func(*Parser)

// WithTraceDir enables the debug trace. The artifact is written into dir.
func WithTraceDir(dir string) Option {
	return func(p *Parser) {
		p.traceDir = dir
		p.trace = true
	}
}

// WithDocumentID sets the identity of the trace document instead of a
// generated UUID.
func WithDocumentID(id string) Option {
	return func(p *Parser) { p.docID = id }
}

// WithStrictBrackets rejects a '[' left open at end of input. By default
// it is closed implicitly.
func WithStrictBrackets() Option {
	return func(p *Parser) { p.strict = true }
}

// Parser holds the state of one compilation. It is not reusable; use
// Compile or CompileReader.
type Parser struct {
	trace    bool
	traceDir string
	docID    string
	strict   bool

	scanner  *scanner.Scanner
	arena    *block.Arena
	current  block.Handle
	stack    []block.Handle
	recorder *debug.Recorder
}

// Compile compiles source text.
func Compile(source string, opts ...Option) (*vm.Program, error) {
	return CompileReader(strings.NewReader(source), opts...)
}

// CompileReader compiles source read from r.
func CompileReader(r io.Reader, opts ...Option) (*vm.Program, error) {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	p.scanner = scanner.New(r)
	p.arena = block.NewArena()
	if p.trace {
		p.recorder = debug.NewRecorder(p.traceDir, p.docID)
	}
	return p.parse()
}

// instr builds the instruction for op, recording its trace line.
func (p *Parser) instr(op token.Op, pos scanner.Pos) code.Instr {
	in := code.Instr{Op: op, Pos: pos}
	if p.recorder != nil {
		in.Line = p.recorder.Record(op, pos)
	}
	return in
}

func (p *Parser) parse() (*vm.Program, error) {
	p.current = p.arena.Open(block.None, false, code.Instr{})

	for {
		item, err := p.scanner.Next()
		if err != nil {
			return nil, fmt.Errorf("read source: %w", err)
		}
		if item.EOF() {
			break
		}

		switch item.Op {
		case token.LoopStart:
			p.stack = append(p.stack, p.current)
			p.current = p.arena.Open(p.current, true, p.instr(token.LoopStart, item.Pos))
		case token.LoopEnd:
			if len(p.stack) == 0 {
				return nil, &SyntaxError{Pos: item.Pos, Msg: "unmatched ']'"}
			}
			p.closeLoop(p.instr(token.LoopEnd, item.Pos))
		default:
			p.arena.Append(p.current, p.instr(item.Op, item.Pos))
		}
	}

	for len(p.stack) > 0 {
		open := p.arena.Get(p.current).Open
		if p.strict {
			return nil, &SyntaxError{Pos: open, Msg: "unclosed '['"}
		}
		log.Debugf("implicitly closing loop opened at %s", open)
		p.closeLoop(p.instr(token.LoopEnd, scanner.Pos{}))
	}

	p.arena.Complete(p.current, code.Instr{})
	prog := p.arena.Code()
	log.Debugf("compiled %d instructions in %d blocks", len(prog), p.arena.Len())

	var doc *debug.Document
	if p.recorder != nil {
		if n := p.recorder.Lines(); n != len(prog) {
			return nil, fmt.Errorf("trace has %d lines for %d instructions", n, len(prog))
		}
		var err error
		doc, err = p.recorder.Flush()
		if err != nil {
			return nil, err
		}
	}
	return vm.New(prog, doc), nil
}

// closeLoop completes the innermost loop block. Its parent becomes the
// current block.
func (p *Parser) closeLoop(exit code.Instr) {
	p.arena.Complete(p.current, exit)
	p.current = p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
}
