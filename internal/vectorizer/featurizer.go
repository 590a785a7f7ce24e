// Package vectorizer turns raw token text into sparse feature vectors.
package vectorizer

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/happyhackingspace/svmhmm/hmm"
	"github.com/happyhackingspace/svmhmm/internal/textutil"
)

// Weighting schemes for character n-gram features.
const (
	WeightingCount = "count"
	WeightingTfidf = "tfidf"
)

var charNgramRange = [2]int{2, 4}

// Featurizer turns the words of a sentence into token feature vectors:
// contextual dict features followed by character n-grams. Feature ids start
// at 1.
type Featurizer struct {
	ID        string           `msgpack:"id"`
	Words     *DictVectorizer  `msgpack:"words"`
	Chars     *TfidfVectorizer `msgpack:"chars"`
	Weighting string           `msgpack:"weighting"`
}

// NewFeaturizer creates an unfitted featurizer. Character n-grams seen in
// fewer than minDF tokens are dropped.
func NewFeaturizer(weighting string, minDF int) (*Featurizer, error) {
	switch weighting {
	case "":
		weighting = WeightingCount
	case WeightingCount, WeightingTfidf:
	default:
		return nil, fmt.Errorf("vectorizer: unknown weighting %q", weighting)
	}
	return &Featurizer{
		ID:        uuid.NewString(),
		Words:     NewDictVectorizer(),
		Chars:     NewTfidfVectorizer(charNgramRange, minDF, weighting == WeightingCount, AnalyzerCharWB),
		Weighting: weighting,
	}, nil
}

// TokenFeatures returns the dict features of words[i].
func TokenFeatures(words []string, i int) map[string]any {
	w := words[i]
	lower := strings.ToLower(w)
	feats := map[string]any{
		"bias":    1,
		"w":       w,
		"lower":   lower,
		"prefix3": textutil.Prefix(lower, 3),
		"suffix3": textutil.Suffix(lower, 3),
		"suffix2": textutil.Suffix(lower, 2),
		"shape":   textutil.WordShape(w),
		"title":   textutil.IsTitle(w),
		"digit":   textutil.HasDigit(w),
	}
	if i == 0 {
		feats["BOS"] = true
	} else {
		feats["prev"] = strings.ToLower(words[i-1])
	}
	if i == len(words)-1 {
		feats["EOS"] = true
	} else {
		feats["next"] = strings.ToLower(words[i+1])
	}
	return feats
}

// Fit builds the feature vocabularies from a corpus of sentences.
func (f *Featurizer) Fit(sentences [][]string) {
	var dicts []map[string]any
	var words []string
	for _, sent := range sentences {
		sent = normalizeAll(sent)
		for i := range sent {
			dicts = append(dicts, TokenFeatures(sent, i))
			words = append(words, sent[i])
		}
	}
	f.Words.Fit(dicts)
	f.Chars.Fit(words)
}

// Transform returns one feature vector per word, indices ascending from 1.
func (f *Featurizer) Transform(words []string) []hmm.SparseVector {
	words = normalizeAll(words)
	out := make([]hmm.SparseVector, len(words))
	for i, w := range words {
		var chars hmm.SparseVector
		if f.Weighting == WeightingTfidf {
			chars = f.Chars.Transform(w)
		} else {
			chars = f.Chars.CountVec.Transform(w)
		}
		sv := hmm.ConcatSparse([]hmm.SparseVector{
			hmm.NewSparseVector(1), // feature id 0 is unused
			f.Words.Transform(TokenFeatures(words, i)),
			chars,
		})
		out[i] = sv
	}
	return out
}

func normalizeAll(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = textutil.Normalize(w)
	}
	return out
}

// Dim returns the largest feature id Transform can produce.
func (f *Featurizer) Dim() int {
	return f.Words.VocabSize() + f.Chars.VocabSize()
}

// Encode writes the fitted featurizer to w.
func (f *Featurizer) Encode(w io.Writer) error {
	return msgpack.NewEncoder(w).Encode(f)
}

// DecodeFeaturizer reads a featurizer written by Encode.
func DecodeFeaturizer(r io.Reader) (*Featurizer, error) {
	var f Featurizer
	if err := msgpack.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("vectorizer: decode featurizer: %w", err)
	}
	if f.Words == nil || f.Chars == nil || f.Chars.CountVec == nil {
		return nil, fmt.Errorf("vectorizer: incomplete featurizer")
	}
	return &f, nil
}
