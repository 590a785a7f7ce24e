// Package corpus reads and writes SVM-HMM example files.
//
// Each non-blank line holds one token:
//
//	TAG qid:N fid:val fid:val ... # text
//
// Consecutive lines sharing a qid form one example. Feature ids start at 1,
// fit in 32 bits and increase strictly within a line. Lines starting with '#'
// are comments unless their second field is a qid, as in "# qid:3 2:1", which
// is a token tagged "#".
package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/happyhackingspace/svmhmm/hmm"
)

// Errors returned by Scanner.
var (
	ErrMissingQID    = errors.New("corpus: missing qid")
	ErrFeatureIndex  = errors.New("corpus: feature id must be in [1, 2^32)")
	ErrFeatureOrder  = errors.New("corpus: feature ids not increasing")
	ErrMalformedLine = errors.New("corpus: malformed line")
)

// ParseError reports the line an error occurred on.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Example is one pattern with its aligned label.
type Example struct {
	QID uint64
	X   hmm.Pattern
	Y   hmm.Label
}

type line struct {
	qid uint64
	tag hmm.TagID
	tok *hmm.Token
}

// Scanner reads examples one at a time.
type Scanner struct {
	bufScanner *bufio.Scanner
	reg        *hmm.Registry
	parm       *hmm.LearnParm
	err        error
	lineNumber int
	pending    *line
	example    Example
}

// NewScanner creates a scanner registering tags in reg. If parm is not nil
// it observes every feature id read.
func NewScanner(r io.Reader, reg *hmm.Registry, parm *hmm.LearnParm) *Scanner {
	bs := bufio.NewScanner(r)
	bs.Buffer(make([]byte, 64*1024), 16*1024*1024)
	return &Scanner{
		bufScanner: bs,
		reg:        reg,
		parm:       parm,
	}
}

// Err returns the first error encountered by the Scanner.
func (s *Scanner) Err() error {
	if s.err != nil {
		return s.err
	}
	return s.bufScanner.Err()
}

// LineNumber returns the number of lines read so far.
func (s *Scanner) LineNumber() int {
	return s.lineNumber
}

// Example returns the example read by the last successful Scan.
func (s *Scanner) Example() Example {
	return s.example
}

// Scan reads the next example. It returns false at end of input or on error.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	first := s.pending
	s.pending = nil
	if first == nil {
		var ok bool
		if first, ok = s.nextLine(); !ok {
			return false
		}
	}

	ex := Example{QID: first.qid, X: hmm.NewPattern(), Y: hmm.NewLabel()}
	ex.X.AppendToken(first.tok)
	ex.Y.AppendTag(first.tag)
	for {
		next, ok := s.nextLine()
		if !ok {
			break
		}
		if next.qid != ex.QID {
			s.pending = next
			break
		}
		ex.X.AppendToken(next.tok)
		ex.Y.AppendTag(next.tag)
	}
	if s.err != nil {
		return false
	}
	s.example = ex
	return true
}

func (s *Scanner) nextLine() (*line, bool) {
	for s.bufScanner.Scan() {
		s.lineNumber++
		text := strings.TrimSpace(s.bufScanner.Text())
		if text == "" || isComment(text) {
			continue
		}
		l, err := s.parseLine(text)
		if err != nil {
			s.err = &ParseError{Line: s.lineNumber, Err: err}
			return nil, false
		}
		return l, true
	}
	return nil, false
}

// isComment reports whether text is a comment line. A line starting with '#'
// whose second field is a qid is a token tagged with a '#' tag instead, as in
// Penn Treebank data.
func isComment(text string) bool {
	if text[0] != '#' {
		return false
	}
	fields := strings.Fields(text)
	return len(fields) < 2 || !strings.HasPrefix(fields[1], "qid:")
}

func (s *Scanner) parseLine(text string) (*line, error) {
	// the comment starts at the first '#' after the tag
	i := strings.IndexAny(text, " \t")
	if i < 0 {
		return nil, fmt.Errorf("%w: line holds only a tag", ErrMissingQID)
	}
	tag := text[:i]
	body, comment, _ := strings.Cut(text[i:], "#")
	st := hmm.NewStringStream(body)

	if !st.Extract(hmm.Match("qid:")) {
		return nil, fmt.Errorf("%w: %w", ErrMissingQID, st.Err())
	}
	qid := st.Uint()
	if st.Fail() {
		return nil, fmt.Errorf("%w: %w", ErrMalformedLine, st.Err())
	}

	tok := hmm.NewToken(strings.TrimSpace(comment))
	features := tok.FeatureMap()
	prev := 0
	for !st.AtEOF() {
		fid := st.Uint()
		st.Extract(hmm.Match(":"))
		val := st.Float()
		if st.Fail() {
			return nil, fmt.Errorf("%w: %w", ErrMalformedLine, st.Err())
		}
		switch {
		case fid < 1:
			return nil, ErrFeatureIndex
		case fid > math.MaxUint32:
			return nil, fmt.Errorf("%w: %d does not fit in 32 bits", ErrFeatureIndex, fid)
		case int(fid) <= prev:
			return nil, fmt.Errorf("%w: %d after %d", ErrFeatureOrder, fid, prev)
		}
		prev = int(fid)
		// ids are strictly increasing, so no existing entry can match
		features.Indices = append(features.Indices, prev)
		features.Values = append(features.Values, val)
		if s.parm != nil {
			s.parm.ObserveFeature(prev)
		}
	}
	return &line{qid: qid, tag: s.reg.Register(tag), tok: tok}, nil
}

// ReadAll reads every example from r.
func ReadAll(r io.Reader, reg *hmm.Registry, parm *hmm.LearnParm) ([]Example, error) {
	sc := NewScanner(r, reg, parm)
	var out []Example
	for sc.Scan() {
		out = append(out, sc.Example())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Writer writes examples in the format read by Scanner.
type Writer struct {
	w   *bufio.Writer
	reg *hmm.Registry
}

// NewWriter creates a writer resolving tag names through reg.
func NewWriter(w io.Writer, reg *hmm.Registry) *Writer {
	return &Writer{w: bufio.NewWriter(w), reg: reg}
}

// Write writes one example. X and Y must have the same length.
func (w *Writer) Write(ex Example) error {
	if ex.X.Len() != ex.Y.Len() {
		return fmt.Errorf("corpus: qid %d: pattern has %d tokens, label %d tags", ex.QID, ex.X.Len(), ex.Y.Len())
	}
	var buf []byte
	for i := range ex.X.Len() {
		tag, err := w.reg.TagByID(ex.Y.Tag(i))
		if err != nil {
			return fmt.Errorf("corpus: qid %d: %w", ex.QID, err)
		}
		tok := ex.X.Token(i)
		features := tok.FeatureMap().Clone()
		features.Sort()

		buf = append(buf[:0], tag...)
		buf = append(buf, " qid:"...)
		buf = strconv.AppendUint(buf, ex.QID, 10)
		for j, idx := range features.Indices {
			buf = append(buf, ' ')
			buf = strconv.AppendInt(buf, int64(idx), 10)
			buf = append(buf, ':')
			buf = strconv.AppendFloat(buf, features.Values[j], 'g', -1, 64)
		}
		if text := tok.Text(); text != "" {
			buf = append(buf, " # "...)
			buf = append(buf, text...)
		}
		buf = append(buf, '\n')
		if _, err := w.w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

// Comment writes a comment line. Scanner skips it unless text starts with a
// qid field, which would make the line a token tagged "#".
func (w *Writer) Comment(text string) error {
	_, err := fmt.Fprintf(w.w, "# %s\n", text)
	return err
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}
