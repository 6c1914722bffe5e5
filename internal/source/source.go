// Package source accumulates generated JS text with brace-driven indentation.
package source

import (
	"bytes"
	"fmt"
	"strings"
)

const indentUnit = "  "

// Source is an append-only JS text buffer. Lines of multi-line fragments are
// re-indented from the brace depth, so templates can be written with any
// leading whitespace.
type Source struct {
	buf    []byte
	indent int
}

// Push appends src. A single-line fragment is written as-is; every line of
// a multi-line fragment is trimmed and re-indented.
func (s *Source) Push(src string) {
	lines := strings.Split(src, "\n")
	for i, line := range lines {
		last := i == len(lines)-1
		if last && line == "" && i > 0 {
			break
		}
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "}") && s.atLineStart() && bytes.HasSuffix(s.buf, []byte(indentUnit)) {
			s.buf = s.buf[:len(s.buf)-len(indentUnit)]
		}
		if len(lines) == 1 {
			s.buf = append(s.buf, line...)
		} else {
			s.buf = append(s.buf, strings.TrimLeft(line, " \t")...)
		}
		if strings.HasSuffix(trimmed, "{") {
			s.indent++
		}
		if strings.HasPrefix(trimmed, "}") && s.indent > 0 {
			s.indent--
		}
		if !last {
			s.newline()
		}
	}
}

// Pushf appends a formatted fragment
func (s *Source) Pushf(format string, args ...any) {
	s.Push(fmt.Sprintf(format, args...))
}

// Line appends src followed by a newline
func (s *Source) Line(src string) {
	s.Push(src)
	s.newline()
}

// Linef appends a formatted line
func (s *Source) Linef(format string, args ...any) {
	s.Line(fmt.Sprintf(format, args...))
}

// Append copies another buffer verbatim
func (s *Source) Append(other *Source) {
	s.buf = append(s.buf, other.buf...)
}

// Len returns the text length in bytes
func (s *Source) Len() int { return len(s.buf) }

// String returns the accumulated text
func (s *Source) String() string { return string(s.buf) }

func (s *Source) newline() {
	s.buf = append(s.buf, '\n')
	for range s.indent {
		s.buf = append(s.buf, indentUnit...)
	}
}

// atLineStart reports whether only indentation follows the last newline.
func (s *Source) atLineStart() bool {
	idx := bytes.LastIndexByte(s.buf, '\n')
	return len(bytes.TrimLeft(s.buf[idx+1:], " ")) == 0
}
