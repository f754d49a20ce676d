package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"nickandperla.net/bf/pkg/bf"
)

func printBanner(w io.Writer) {
	fmt.Fprintln(w, "bf REPL (Ctrl+D to exit)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "The tape persists between lines. An open '[' continues on the next line.")
	fmt.Fprintln(w, "  :tape [n]  show the first n cells (default 10)")
	fmt.Fprintln(w, "  :reset     clear the tape")
	fmt.Fprintln(w, "  :quit      exit")
	fmt.Fprintln(w)
}

// bracketDepth returns the number of '[' left open in s.
func bracketDepth(s string) int {
	depth := 0
	for _, r := range s {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
		}
	}
	return depth
}

// runREPL reads programs line by line and runs each on the runtime's tape.
func runREPL(runtime *bf.Runtime, reader *bufio.Reader, w io.Writer, interactive bool) {
	if interactive {
		printBanner(w)
	}

	var pending strings.Builder
	for {
		if interactive {
			if pending.Len() > 0 {
				fmt.Fprint(w, "... ")
			} else {
				fmt.Fprint(w, ">>> ")
			}
		}

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			if interactive {
				fmt.Fprintln(w)
			}
			return
		}
		line = strings.TrimRight(line, "\r\n")

		if pending.Len() == 0 && strings.HasPrefix(line, ":") {
			if quit := replCommand(runtime, w, line); quit {
				return
			}
			continue
		}

		pending.WriteString(line)
		pending.WriteString("\n")
		input := pending.String()
		if bracketDepth(input) > 0 && err == nil {
			continue
		}
		pending.Reset()

		if strings.TrimSpace(input) == "" {
			continue
		}

		if err := runtime.Run(input); err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(w, "Error: %v\n", err)
			continue
		}
		if interactive {
			fmt.Fprintln(w)
		}
	}
}

// replCommand handles a ':' command and reports whether to exit.
func replCommand(runtime *bf.Runtime, w io.Writer, line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":quit", ":q":
		return true
	case ":reset":
		runtime.Reset()
	case ":tape":
		n := 10
		if len(fields) > 1 {
			v, err := strconv.Atoi(fields[1])
			if err != nil || v <= 0 {
				fmt.Fprintf(w, "Error: bad cell count %q\n", fields[1])
				return false
			}
			n = v
		}
		tape := runtime.Tape()
		n = min(n, len(tape))
		cells := make([]string, n)
		for i, c := range tape[:n] {
			cells[i] = strconv.Itoa(int(c))
		}
		fmt.Fprintln(w, strings.Join(cells, " "))
	default:
		fmt.Fprintf(w, "Error: unknown command %s\n", fields[0])
	}
	return false
}
