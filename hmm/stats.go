package hmm

// TestStats accumulates tagging accuracy over predicted labels.
type TestStats struct {
	NumTokens          int
	NumCorrectTags     int
	NumExamples        int
	NumCorrectExamples int
}

// Add compares pred against gold. Tokens are counted from gold; positions
// past the end of pred count as wrong.
func (s *TestStats) Add(gold, pred Label) {
	s.NumExamples++
	if gold.Equal(pred) {
		s.NumCorrectExamples++
	}
	n := gold.Len()
	s.NumTokens += n
	for i := range min(n, pred.Len()) {
		if gold.Tag(i) == pred.Tag(i) {
			s.NumCorrectTags++
		}
	}
}

// TokenAccuracy returns the fraction of correctly tagged tokens.
func (s *TestStats) TokenAccuracy() float64 {
	if s.NumTokens == 0 {
		return 0
	}
	return float64(s.NumCorrectTags) / float64(s.NumTokens)
}

// SequenceAccuracy returns the fraction of examples tagged without error.
func (s *TestStats) SequenceAccuracy() float64 {
	if s.NumExamples == 0 {
		return 0
	}
	return float64(s.NumCorrectExamples) / float64(s.NumExamples)
}
