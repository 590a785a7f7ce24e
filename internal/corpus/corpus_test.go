package corpus

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/happyhackingspace/svmhmm/hmm"
)

const sample = `# a comment line
DET qid:1 1:1 4:0.5 # The
NOUN qid:1 2:1 # dog
VERB qid:1 3:1 7:2 # ran

PRON qid:2 5:1 # It
VERB qid:2 3:1 # ran
`

func TestScanner(t *testing.T) {
	reg := hmm.NewRegistry()
	parm := hmm.DefaultLearnParm()
	sc := NewScanner(strings.NewReader(sample), reg, &parm)

	var examples []Example
	for sc.Scan() {
		examples = append(examples, sc.Example())
	}
	if err := sc.Err(); err != nil {
		t.Fatal(err)
	}
	if len(examples) != 2 {
		t.Fatalf("got %d examples, want 2", len(examples))
	}

	first := examples[0]
	if first.QID != 1 || first.X.Len() != 3 || first.Y.Len() != 3 {
		t.Fatalf("first example: qid %d, %d tokens, %d tags", first.QID, first.X.Len(), first.Y.Len())
	}
	if got := first.X.Texts(); got[0] != "The" || got[2] != "ran" {
		t.Errorf("texts = %v", got)
	}
	tag, err := reg.TagByID(first.Y.Tag(2))
	if err != nil || tag != "VERB" {
		t.Errorf("tag 2 = %q, %v", tag, err)
	}
	if first.X.Token(0).FeatureMap().Get(4) != 0.5 {
		t.Errorf("features of token 0 = %+v", *first.X.Token(0).FeatureMap())
	}
	if examples[1].Y.Tag(1) != first.Y.Tag(2) {
		t.Error("VERB should map to one id across examples")
	}
	if reg.NumTags() != 4 {
		t.Errorf("NumTags = %d, want 4", reg.NumTags())
	}
	if parm.FeatureSpaceSize != 7 {
		t.Errorf("FeatureSpaceSize = %d, want 7", parm.FeatureSpaceSize)
	}
}

func TestScannerErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
		line  int
	}{
		{"missing qid", "DET 1:1\n", ErrMissingQID, 1},
		{"qid mismatch is literal", "DET qix:1 1:1\n", hmm.ErrLiteralMismatch, 1},
		{"zero feature id", "DET qid:1 0:1\n", ErrFeatureIndex, 1},
		{"unordered features", "DET qid:1 1:1\nNOUN qid:1 3:1 2:1\n", ErrFeatureOrder, 2},
		{"bad value", "DET qid:1 1:x\n", ErrMalformedLine, 1},
		{"missing colon", "DET qid:1 1 2\n", hmm.ErrLiteralMismatch, 1},
		{"feature id past 32 bits", "DET qid:1 4294967297:1 # w\n", ErrFeatureIndex, 1},
		{"tag only", "DET\n", ErrMissingQID, 1},
	}
	for _, tt := range tests {
		_, err := ReadAll(strings.NewReader(tt.input), hmm.NewRegistry(), nil)
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: err = %v, want %v", tt.name, err, tt.want)
			continue
		}
		var pe *ParseError
		if !errors.As(err, &pe) || pe.Line != tt.line {
			t.Errorf("%s: err = %v, want line %d", tt.name, err, tt.line)
		}
	}
}

func TestWriteRead(t *testing.T) {
	reg := hmm.NewRegistry()
	examples, err := ReadAll(strings.NewReader(sample), reg, nil)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	w := NewWriter(&buf, reg)
	if err := w.Comment("generated"); err != nil {
		t.Fatal(err)
	}
	for _, ex := range examples {
		if err := w.Write(ex); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "# generated\nDET qid:1 1:1 4:0.5 # The\n") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}

	again, err := ReadAll(&buf, reg, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(again) != len(examples) {
		t.Fatalf("got %d examples back, want %d", len(again), len(examples))
	}
	for i := range examples {
		if !again[i].Y.Equal(examples[i].Y) {
			t.Errorf("example %d: labels differ", i)
		}
	}
}

func TestPoundTag(t *testing.T) {
	const input = "# header\nNN qid:1 1:1 # price\n# qid:1 2:1 # #\nCD qid:1 3:1 # 5\n"
	reg := hmm.NewRegistry()
	examples, err := ReadAll(strings.NewReader(input), reg, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(examples) != 1 || examples[0].Y.Len() != 3 {
		t.Fatalf("got %d examples, want one with 3 tags", len(examples))
	}
	if got, err := examples[0].Y.Strings(reg); err != nil || got[1] != "#" {
		t.Errorf("tags = %v, %v, want '#' in the middle", got, err)
	}
	if got := examples[0].X.Texts(); got[1] != "#" {
		t.Errorf("texts = %v", got)
	}

	var buf bytes.Buffer
	w := NewWriter(&buf, reg)
	if err := w.Write(examples[0]); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	again, err := ReadAll(&buf, reg, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(again) != 1 || !again[0].Y.Equal(examples[0].Y) {
		t.Errorf("round trip lost the '#' token:\n%s", buf.String())
	}
}

func TestWriteMisaligned(t *testing.T) {
	reg := hmm.NewRegistry()
	ex := Example{QID: 1, X: hmm.NewPattern(), Y: hmm.NewLabel()}
	ex.X.AppendToken(hmm.NewToken("a"))
	if err := NewWriter(&bytes.Buffer{}, reg).Write(ex); err == nil {
		t.Error("expected error for misaligned example")
	}
}

func TestReadColumns(t *testing.T) {
	input := "The DT DET\ndog NN NOUN\n\n\nIt PRP PRON\n"
	sentences, err := ReadColumns(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(sentences) != 2 {
		t.Fatalf("got %d sentences, want 2", len(sentences))
	}
	if sentences[0].Words[1] != "dog" || sentences[0].Tags[1] != "NOUN" {
		t.Errorf("first sentence = %+v", sentences[0])
	}

	_, err = ReadColumns(strings.NewReader("The DET\nlonely\n"))
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Line != 2 {
		t.Errorf("err = %v, want parse error on line 2", err)
	}
}
