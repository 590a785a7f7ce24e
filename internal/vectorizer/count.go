package vectorizer

import (
	"sort"
	"strings"

	"github.com/happyhackingspace/svmhmm/hmm"
	"github.com/happyhackingspace/svmhmm/internal/textutil"
)

// Analyzers understood by CountVectorizer.
const (
	AnalyzerWord   = "word"    // word n-grams of the tokenized text
	AnalyzerCharWB = "char_wb" // character n-grams of the space-padded text
)

// CountVectorizer converts token text to n-gram count vectors.
type CountVectorizer struct {
	Vocabulary map[string]int `msgpack:"vocabulary"`
	NgramRange [2]int         `msgpack:"ngram_range"`
	Binary     bool           `msgpack:"binary"`
	Analyzer   string         `msgpack:"analyzer"`
	MinDF      int            `msgpack:"min_df"`
}

// NewCountVectorizer creates a CountVectorizer. An empty analyzer means
// AnalyzerWord; minDF below 1 means 1.
func NewCountVectorizer(ngramRange [2]int, binary bool, analyzer string, minDF int) *CountVectorizer {
	if analyzer == "" {
		analyzer = AnalyzerWord
	}
	return &CountVectorizer{
		NgramRange: ngramRange,
		Binary:     binary,
		Analyzer:   analyzer,
		MinDF:      max(minDF, 1),
	}
}

func (cv *CountVectorizer) analyze(text string) []string {
	text = strings.ToLower(text)
	if cv.Analyzer == AnalyzerCharWB {
		// not tokenized: "," must still yield n-grams
		return textutil.Ngrams(" "+text+" ", cv.NgramRange[0], cv.NgramRange[1])
	}
	return textutil.TokenNgrams(textutil.Tokenize(text), cv.NgramRange[0], cv.NgramRange[1])
}

// documentFrequencies counts, for every term, the documents containing it.
func (cv *CountVectorizer) documentFrequencies(corpus []string) map[string]int {
	df := make(map[string]int)
	for _, doc := range corpus {
		seen := make(map[string]bool)
		for _, term := range cv.analyze(doc) {
			if !seen[term] {
				seen[term] = true
				df[term]++
			}
		}
	}
	return df
}

// Fit builds the vocabulary from a corpus, keeping terms whose document
// frequency reaches MinDF. Term IDs follow lexical order.
func (cv *CountVectorizer) Fit(corpus []string) {
	var terms []string
	for term, n := range cv.documentFrequencies(corpus) {
		if n >= cv.MinDF {
			terms = append(terms, term)
		}
	}
	sort.Strings(terms)

	cv.Vocabulary = make(map[string]int, len(terms))
	for i, term := range terms {
		cv.Vocabulary[term] = i
	}
}

// Transform converts one document to a sparse vector sorted by index.
func (cv *CountVectorizer) Transform(text string) hmm.SparseVector {
	sv := hmm.NewSparseVector(len(cv.Vocabulary))
	for _, term := range cv.analyze(text) {
		idx, ok := cv.Vocabulary[term]
		if !ok {
			continue
		}
		if cv.Binary {
			sv.Set(idx, 1.0)
		} else {
			sv.Add(idx, 1.0)
		}
	}
	sv.Sort()
	return sv
}

// FitTransform fits the vocabulary and transforms the corpus.
func (cv *CountVectorizer) FitTransform(corpus []string) []hmm.SparseVector {
	cv.Fit(corpus)
	result := make([]hmm.SparseVector, len(corpus))
	for i, doc := range corpus {
		result[i] = cv.Transform(doc)
	}
	return result
}

// VocabSize returns the vocabulary size.
func (cv *CountVectorizer) VocabSize() int {
	return len(cv.Vocabulary)
}
