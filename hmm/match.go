package hmm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Errors recorded by a Stream.
var (
	ErrLiteralMismatch = errors.New("hmm: literal mismatch")
	ErrMalformedNumber = errors.New("hmm: malformed number")
	ErrEmptyWord       = errors.New("hmm: expected a word")
)

// MismatchError describes a failed literal extraction. The bytes consumed
// before the failure, including the offending one, are not put back.
type MismatchError struct {
	Literal string
	Matched int   // bytes of Literal that did match
	Offset  int64 // stream offset of the offending byte
	Got     byte
	EOF     bool // the stream ended before Literal was complete
}

func (e *MismatchError) Error() string {
	if e.EOF {
		return fmt.Sprintf("hmm: expected %q at offset %d, got end of input", e.Literal, e.Offset)
	}
	return fmt.Sprintf("hmm: expected %q at offset %d, got %q after %d matching bytes",
		e.Literal, e.Offset, e.Got, e.Matched)
}

func (e *MismatchError) Unwrap() error { return ErrLiteralMismatch }

// Matcher wraps a literal to be consumed by Stream.Extract.
type Matcher struct {
	Literal string
}

// Match returns a matcher for literal.
func Match(literal string) Matcher {
	return Matcher{Literal: literal}
}

// Stream is a byte reader with a sticky failure state, used to parse
// example files. Once an extraction fails, every later extraction is a no-op
// reporting failure until Clear is called. A read error other than io.EOF
// is recorded as the failure as is.
type Stream struct {
	r   *bufio.Reader
	off int64
	err error
}

// NewStream creates a stream reading from r.
func NewStream(r io.Reader) *Stream {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Stream{r: br}
}

// NewStringStream creates a stream over s.
func NewStringStream(s string) *Stream {
	return NewStream(strings.NewReader(s))
}

// Fail reports whether an extraction has failed.
func (s *Stream) Fail() bool { return s.err != nil }

// Err returns the recorded failure, or nil.
func (s *Stream) Err() error { return s.err }

// Clear resets the failure state. Consumed input stays consumed.
func (s *Stream) Clear() { s.err = nil }

// Offset returns the number of bytes consumed so far.
func (s *Stream) Offset() int64 { return s.off }

func (s *Stream) readByte() (byte, error) {
	b, err := s.r.ReadByte()
	switch {
	case err == nil:
		s.off++
	case err != io.EOF && s.err == nil:
		s.err = err
	}
	return b, err
}

func (s *Stream) unreadByte() {
	if s.r.UnreadByte() == nil {
		s.off--
	}
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// SkipSpace consumes leading whitespace.
func (s *Stream) SkipSpace() {
	for {
		b, err := s.readByte()
		if err != nil {
			return
		}
		if !isSpace(b) {
			s.unreadByte()
			return
		}
	}
}

// AtEOF skips whitespace and reports whether the stream is exhausted.
func (s *Stream) AtEOF() bool {
	s.SkipSpace()
	if _, err := s.r.Peek(1); err != nil {
		if err != io.EOF && s.err == nil {
			s.err = err
		}
		return true
	}
	return false
}

// Extract skips leading whitespace and consumes exactly m's literal.
// On mismatch the stream is left partially consumed and enters the failed
// state.
func (s *Stream) Extract(m Matcher) bool {
	if s.err != nil {
		return false
	}
	s.SkipSpace()
	if s.err != nil {
		return false
	}
	for i := 0; i < len(m.Literal); i++ {
		b, err := s.readByte()
		if err == io.EOF {
			s.err = &MismatchError{Literal: m.Literal, Matched: i, Offset: s.off, EOF: true}
			return false
		}
		if err != nil {
			return false
		}
		if b != m.Literal[i] {
			s.err = &MismatchError{Literal: m.Literal, Matched: i, Offset: s.off - 1, Got: b}
			return false
		}
	}
	return true
}

// Word skips leading whitespace and reads up to the next whitespace byte.
func (s *Stream) Word() string {
	if s.err != nil {
		return ""
	}
	s.SkipSpace()
	word := s.readWhile(func(b byte) bool { return !isSpace(b) })
	if s.err != nil {
		return ""
	}
	if word == "" {
		s.err = fmt.Errorf("%w at offset %d", ErrEmptyWord, s.off)
	}
	return word
}

// Uint skips leading whitespace and reads a decimal unsigned integer.
func (s *Stream) Uint() uint64 {
	if s.err != nil {
		return 0
	}
	s.SkipSpace()
	start := s.off
	digits := s.readWhile(func(b byte) bool { return b >= '0' && b <= '9' })
	if s.err != nil {
		return 0
	}
	v, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		s.err = fmt.Errorf("%w at offset %d: %q", ErrMalformedNumber, start, digits)
		return 0
	}
	return v
}

// Float skips leading whitespace and reads a floating point number.
func (s *Stream) Float() float64 {
	if s.err != nil {
		return 0
	}
	s.SkipSpace()
	start := s.off
	text := s.readWhile(func(b byte) bool {
		return (b >= '0' && b <= '9') || b == '.' || b == '-' || b == '+' || b == 'e' || b == 'E'
	})
	if s.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		s.err = fmt.Errorf("%w at offset %d: %q", ErrMalformedNumber, start, text)
		return 0
	}
	return v
}

// Rest skips leading whitespace and returns everything up to end of input.
func (s *Stream) Rest() string {
	if s.err != nil {
		return ""
	}
	s.SkipSpace()
	rest := s.readWhile(func(byte) bool { return true })
	if s.err != nil {
		return ""
	}
	return rest
}

func (s *Stream) readWhile(keep func(byte) bool) string {
	var buf strings.Builder
	for {
		b, err := s.readByte()
		if err != nil {
			break
		}
		if !keep(b) {
			s.unreadByte()
			break
		}
		buf.WriteByte(b)
	}
	return buf.String()
}
