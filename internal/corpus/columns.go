package corpus

import (
	"bufio"
	"io"
	"strings"
)

// Sentence is a tagged sentence read from a column file.
type Sentence struct {
	Words []string
	Tags  []string
}

// ReadColumns reads a column file: one "word ... TAG" line per token, the
// first field being the word and the last the tag, with blank lines between
// sentences.
func ReadColumns(r io.Reader) ([]Sentence, error) {
	sc := bufio.NewScanner(r)
	var (
		out     []Sentence
		current Sentence
		lineNum int
	)
	flush := func() {
		if len(current.Words) > 0 {
			out = append(out, current)
		}
		current = Sentence{}
	}
	for sc.Scan() {
		lineNum++
		fields := strings.Fields(sc.Text())
		switch len(fields) {
		case 0:
			flush()
		case 1:
			return nil, &ParseError{Line: lineNum, Err: ErrMalformedLine}
		default:
			current.Words = append(current.Words, fields[0])
			current.Tags = append(current.Tags, fields[len(fields)-1])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	flush()
	return out, nil
}
