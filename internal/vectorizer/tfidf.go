package vectorizer

import (
	"math"

	"github.com/happyhackingspace/svmhmm/hmm"
)

// TfidfVectorizer weights CountVectorizer output by inverse document
// frequency and L2-normalizes the result.
type TfidfVectorizer struct {
	CountVec *CountVectorizer `msgpack:"count_vec"`
	IDF      []float64        `msgpack:"idf"`
}

// NewTfidfVectorizer creates a TfidfVectorizer.
func NewTfidfVectorizer(ngramRange [2]int, minDF int, binary bool, analyzer string) *TfidfVectorizer {
	return &TfidfVectorizer{
		CountVec: NewCountVectorizer(ngramRange, binary, analyzer, minDF),
	}
}

// Fit computes IDF values from a corpus.
func (tv *TfidfVectorizer) Fit(corpus []string) {
	tv.CountVec.Fit(corpus)

	df := make([]float64, tv.CountVec.VocabSize())
	for term, n := range tv.CountVec.documentFrequencies(corpus) {
		if idx, ok := tv.CountVec.Vocabulary[term]; ok {
			df[idx] = float64(n)
		}
	}

	// smooth IDF: log((1 + n) / (1 + df)) + 1
	nDocs := float64(len(corpus))
	tv.IDF = make([]float64, len(df))
	for i := range df {
		tv.IDF[i] = math.Log((1+nDocs)/(1+df[i])) + 1
	}
}

// Transform converts a single document to a TF-IDF sparse vector.
func (tv *TfidfVectorizer) Transform(text string) hmm.SparseVector {
	sv := tv.CountVec.Transform(text)
	for i, idx := range sv.Indices {
		if idx < len(tv.IDF) {
			sv.Values[i] *= tv.IDF[idx]
		}
	}
	if norm := sv.L2Norm(); norm > 0 {
		for i := range sv.Values {
			sv.Values[i] /= norm
		}
	}
	return sv
}

// FitTransform fits and transforms the corpus.
func (tv *TfidfVectorizer) FitTransform(corpus []string) []hmm.SparseVector {
	tv.Fit(corpus)
	result := make([]hmm.SparseVector, len(corpus))
	for i, doc := range corpus {
		result[i] = tv.Transform(doc)
	}
	return result
}

// VocabSize returns the vocabulary size.
func (tv *TfidfVectorizer) VocabSize() int {
	return tv.CountVec.VocabSize()
}
