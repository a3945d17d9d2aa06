package source

// reader.go cleans raw CSV bytes before encoding/csv sees them:
//
//   - a leading UTF-8 BOM (0xEF 0xBB 0xBF), written by Excel and other Windows tools, is dropped
//   - invalid UTF-8 bytes are replaced with '?' so one bad byte never fails a whole load
//
// Both run in constant memory on top of a bufio.Reader.

import (
	"bufio"
	"bytes"
	"io"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CleanReader is an io.Reader that skips a BOM and sanitizes UTF-8.
type CleanReader struct {
	br        *bufio.Reader
	started   bool
	BytesRead int64 // Bytes consumed from the underlying reader
	Replaced  int   // Invalid bytes replaced so far
}

// NewCleanReader wraps r.
func NewCleanReader(r io.Reader) *CleanReader {
	return &CleanReader{br: bufio.NewReader(r)}
}

// Read implements io.Reader.
func (c *CleanReader) Read(p []byte) (int, error) {
	if !c.started {
		c.started = true
		if head, _ := c.br.Peek(len(utf8BOM)); bytes.Equal(head, utf8BOM) {
			c.br.Discard(len(utf8BOM))
			c.BytesRead += int64(len(utf8BOM))
		}
	}

	if len(p) == 0 {
		return 0, nil
	}

	n := 0
	for n < len(p) {
		if n+utf8.UTFMax > len(p) && !c.fitsOneByte() {
			break
		}
		r, size, err := c.br.ReadRune()
		if err != nil {
			if n > 0 && err == io.EOF {
				return n, nil
			}
			return n, err
		}
		c.BytesRead += int64(size)

		if r == utf8.RuneError && size == 1 {
			p[n] = '?'
			c.Replaced++
			n++
			continue
		}
		n += utf8.EncodeRune(p[n:], r)
	}
	if n == 0 {
		return 0, io.ErrShortBuffer
	}
	return n, nil
}

// fitsOneByte reports whether the next read produces at most one output byte.
// A read error counts as fitting so ReadRune can surface it.
func (c *CleanReader) fitsOneByte() bool {
	b, err := c.br.Peek(1)
	if err != nil {
		return true
	}
	if b[0] < utf8.RuneSelf {
		return true
	}
	// An invalid leading byte is written as a single '?'.
	return !utf8.RuneStart(b[0]) || b[0] >= 0xF8
}
