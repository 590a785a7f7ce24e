package hmm

// Token is one observable element of a sequence, e.g. a word, together with
// its sparse features. The zero value has empty text and no features.
//
// Tokens are handled through pointers. Dereferencing and assigning a Token
// value shares the feature storage; use Clone for an independent copy.
type Token struct {
	text     string
	features SparseVector
}

// NewToken creates a token with the given text and no features.
func NewToken(text string) *Token {
	return &Token{text: text}
}

// Text returns the textual representation, possibly empty.
func (t *Token) Text() string { return t.text }

// SetText replaces the textual representation.
func (t *Token) SetText(s string) { t.text = s }

// FeatureMap returns the token's feature vector for in-place modification.
// It is the only way to change a token's features.
func (t *Token) FeatureMap() *SparseVector { return &t.features }

// DotProduct returns the dot product of the token's features with dense
// weights. Every feature index must be < len(weights).
func (t *Token) DotProduct(weights []float64) float64 {
	return t.features.Dot(weights)
}

// DotProductChecked is DotProduct with bounds checking.
func (t *Token) DotProductChecked(weights []float64) (float64, error) {
	return t.features.DotChecked(weights)
}

// Clone returns a deep copy of t.
func (t *Token) Clone() *Token {
	return &Token{text: t.text, features: t.features.Clone()}
}
