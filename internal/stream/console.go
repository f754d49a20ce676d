package stream

import (
	"bufio"
	"io"
)

// ConsoleReader reads program input from an io.Reader such as os.Stdin.
// Before blocking it flushes its paired writer so prompts are visible.
type ConsoleReader struct {
	reader *bufio.Reader
	out    *ConsoleWriter
}

// ConsoleWriter writes program output to an io.Writer such as os.Stdout.
type ConsoleWriter struct {
	writer *bufio.Writer
	closed bool
}

// NewConsole creates a paired reader and writer. Either side may be nil.
func NewConsole(r io.Reader, w io.Writer) (*ConsoleReader, *ConsoleWriter) {
	var cr *ConsoleReader
	var cw *ConsoleWriter
	if w != nil {
		cw = &ConsoleWriter{writer: bufio.NewWriter(w)}
	}
	if r != nil {
		cr = &ConsoleReader{reader: bufio.NewReader(r), out: cw}
	}
	return cr, cw
}

// Get reads one byte.
func (c *ConsoleReader) Get() (byte, error) {
	if c.out != nil && !c.out.closed {
		if err := c.out.Flush(); err != nil {
			return 0, err
		}
	}
	return c.reader.ReadByte()
}

// Put writes one byte. Output is buffered until Flush or Close.
func (c *ConsoleWriter) Put(b byte) error {
	if c.closed {
		return &StreamStateError{Stream: "console writer", Op: "put", Reason: "closed"}
	}
	return c.writer.WriteByte(b)
}

// Flush writes any buffered output.
func (c *ConsoleWriter) Flush() error {
	return c.writer.Flush()
}

// Close flushes the writer; later writes fail.
func (c *ConsoleWriter) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.writer.Flush()
}
