package main

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"nickandperla.net/bf/pkg/bf"
)

// stepper drives a stepped run from single key presses on the controlling
// terminal, so program input on stdin stays untouched.
type stepper struct {
	w      io.Writer
	keys   io.Reader
	fd     int
	raw    bool
	resume bool // Run to completion without prompting
}

// formatStep renders one step. Line refers to the trace artifact when the
// program was compiled with a trace, otherwise it is the instruction index.
func formatStep(s bf.Step) string {
	line := s.Line
	if line == 0 {
		line = s.PC + 1
	}
	return fmt.Sprintf("%5d  %-12s %-8s ptr=%-6d cell=%d", line, s.Op, s.Pos, s.Pointer, s.Cell)
}

func (st *stepper) readKey() (byte, error) {
	if st.raw {
		oldState, err := term.MakeRaw(st.fd)
		if err != nil {
			return 0, fmt.Errorf("failed to set raw mode: %w", err)
		}
		defer term.Restore(st.fd, oldState)
	}
	var buf [1]byte
	if _, err := st.keys.Read(buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

func (st *stepper) step(s bf.Step) error {
	fmt.Fprintln(st.w, formatStep(s))
	if st.resume || st.keys == nil {
		return nil
	}

	for {
		fmt.Fprint(st.w, "[s]tep [c]ontinue [q]uit> ")
		key, err := st.readKey()
		fmt.Fprintln(st.w)
		if err == io.EOF {
			st.resume = true
			return nil
		}
		if err != nil {
			return err
		}
		switch key {
		case 's', '\r', '\n', ' ':
			return nil
		case 'c':
			st.resume = true
			return nil
		case 'q', 3: // Ctrl+C arrives as a byte in raw mode
			return bf.ErrHalt
		}
	}
}

// runStepper executes p one instruction at a time. Without a controlling
// terminal it prints every step and runs to completion.
func runStepper(runtime *bf.Runtime, p *bf.Program, w io.Writer) error {
	st := &stepper{w: w}
	if tty, err := os.Open("/dev/tty"); err == nil {
		defer tty.Close()
		st.keys = tty
		st.fd = int(tty.Fd())
		st.raw = term.IsTerminal(st.fd)
	}
	return runtime.StepExecute(p, st.step)
}
