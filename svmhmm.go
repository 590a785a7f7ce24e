// Package svmhmm reads, writes and evaluates SVM-HMM sequence tagging data.
//
// It ties the data model in package hmm to the example file format:
//
//	reg := hmm.NewRegistry()
//	parm := hmm.DefaultLearnParm()
//	examples, _ := svmhmm.ReadExamples("train.dat", reg, &parm)
//	model := svmhmm.NewStructModel(&parm, reg)
//	for _, ex := range examples {
//	    fmt.Println(model.Score(ex.X, ex.Y))
//	}
package svmhmm

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/happyhackingspace/svmhmm/hmm"
	"github.com/happyhackingspace/svmhmm/internal/corpus"
	"github.com/happyhackingspace/svmhmm/internal/vectorizer"
)

// Example is one pattern with its aligned label.
type Example = corpus.Example

// Sentence is a tagged sentence of raw words.
type Sentence = corpus.Sentence

// ErrMisaligned is returned by Evaluate when gold and predicted examples do
// not line up.
var ErrMisaligned = errors.New("svmhmm: gold and predicted examples are misaligned")

// ReadExamples reads every example in the file at path, registering tags in
// reg. If parm is not nil its FeatureSpaceSize grows to cover every feature id.
func ReadExamples(path string, reg *hmm.Registry, parm *hmm.LearnParm) ([]Example, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("svmhmm: %w", err)
	}
	defer func() { _ = f.Close() }()

	examples, err := corpus.ReadAll(f, reg, parm)
	if err != nil {
		return nil, fmt.Errorf("svmhmm: %s: %w", path, err)
	}
	slog.Debug("Read examples", "path", path, "examples", len(examples), "tags", reg.NumTags())
	return examples, nil
}

// WriteExamples writes examples to the file at path, preceded by one comment
// line per header entry.
func WriteExamples(path string, reg *hmm.Registry, examples []Example, header ...string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("svmhmm: %w", err)
	}
	w := corpus.NewWriter(f, reg)
	for _, line := range header {
		if err := w.Comment(line); err != nil {
			_ = f.Close()
			return fmt.Errorf("svmhmm: %w", err)
		}
	}
	for _, ex := range examples {
		if err := w.Write(ex); err != nil {
			_ = f.Close()
			return fmt.Errorf("svmhmm: %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("svmhmm: %w", err)
	}
	return f.Close()
}

// ReadSentences reads a column file of tagged words.
func ReadSentences(path string) ([]Sentence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("svmhmm: %w", err)
	}
	defer func() { _ = f.Close() }()

	sentences, err := corpus.ReadColumns(f)
	if err != nil {
		return nil, fmt.Errorf("svmhmm: %s: %w", path, err)
	}
	return sentences, nil
}

// Featurize turns tagged sentences into examples using a fitted featurizer.
// Sentence i gets qid i+1.
func Featurize(sentences []Sentence, f *vectorizer.Featurizer, reg *hmm.Registry) []Example {
	examples := make([]Example, len(sentences))
	for i, sent := range sentences {
		ex := Example{QID: uint64(i + 1), X: hmm.NewPattern(), Y: hmm.NewLabel()}
		for j, vec := range f.Transform(sent.Words) {
			tok := hmm.NewToken(sent.Words[j])
			*tok.FeatureMap() = vec
			ex.X.AppendToken(tok)
			ex.Y.AppendTag(reg.Register(sent.Tags[j]))
		}
		examples[i] = ex
	}
	return examples
}

// Evaluate compares predicted labels against gold labels. Examples are
// matched by position and must agree on qid and length.
func Evaluate(gold, pred []Example) (hmm.TestStats, error) {
	var stats hmm.TestStats
	if len(gold) != len(pred) {
		return stats, fmt.Errorf("%w: %d gold, %d predicted examples", ErrMisaligned, len(gold), len(pred))
	}
	for i := range gold {
		g, p := gold[i], pred[i]
		if g.QID != p.QID {
			return stats, fmt.Errorf("%w: example %d has qid %d, predicted %d", ErrMisaligned, i, g.QID, p.QID)
		}
		if g.Y.Len() != p.Y.Len() {
			return stats, fmt.Errorf("%w: qid %d has %d tags, predicted %d", ErrMisaligned, g.QID, g.Y.Len(), p.Y.Len())
		}
		stats.Add(g.Y, p.Y)
	}
	return stats, nil
}

// NewStructModel creates a zero-weight model covering every tag in reg.
func NewStructModel(parm *hmm.LearnParm, reg *hmm.Registry) *hmm.StructModel {
	return hmm.NewStructModel(parm, int(reg.NumTags()))
}
