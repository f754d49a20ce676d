package stream

import "io"

// MemoryReader serves input from a fixed string.
type MemoryReader struct {
	buf []byte
	pos int
}

// NewMemoryReader creates a reader over text.
func NewMemoryReader(text string) *MemoryReader {
	return &MemoryReader{buf: []byte(text)}
}

// Get returns the next byte, or io.EOF once the text is exhausted.
func (m *MemoryReader) Get() (byte, error) {
	if m.pos >= len(m.buf) {
		return 0, io.EOF
	}
	c := m.buf[m.pos]
	m.pos++
	return c, nil
}

// Reset rewinds to the start of the text.
func (m *MemoryReader) Reset() {
	m.pos = 0
}

// MemoryWriter collects output into a fixed-capacity buffer.
type MemoryWriter struct {
	buf []byte
	pos int
}

// NewMemoryWriter creates a writer holding at most capacity bytes.
func NewMemoryWriter(capacity int) *MemoryWriter {
	return &MemoryWriter{buf: make([]byte, capacity)}
}

// Put appends one byte. Writing past the capacity is a StreamStateError.
func (m *MemoryWriter) Put(c byte) error {
	if m.pos >= len(m.buf) {
		return &StreamStateError{Stream: "memory writer", Op: "put", Reason: "buffer full"}
	}
	m.buf[m.pos] = c
	m.pos++
	return nil
}

// Reset discards the output produced so far.
func (m *MemoryWriter) Reset() {
	m.pos = 0
}

// Len returns the number of bytes written since the last Reset.
func (m *MemoryWriter) Len() int {
	return m.pos
}

// Bytes returns a copy of the output produced so far.
func (m *MemoryWriter) Bytes() []byte {
	out := make([]byte, m.pos)
	copy(out, m.buf[:m.pos])
	return out
}

// Output returns the output produced so far as a string.
func (m *MemoryWriter) Output() string {
	return string(m.buf[:m.pos])
}
