package hmm

// TokenSeq is the backing store of one or more Patterns.
type TokenSeq struct {
	tokens []Token
}

// NewTokenSeq creates a store holding deep copies of tokens.
func NewTokenSeq(tokens ...*Token) *TokenSeq {
	seq := &TokenSeq{tokens: make([]Token, len(tokens))}
	for i, t := range tokens {
		seq.tokens[i] = *t.Clone()
	}
	return seq
}

// Len returns the number of tokens in the store.
func (s *TokenSeq) Len() int { return len(s.tokens) }

// Pattern is the observed input sequence of an example.
//
// Copying a Pattern value is O(1): both copies refer to the same TokenSeq and
// see each other's mutations until one of them is redirected with
// SetEmissionsVector or Detach. Index arguments must be in range.
//
// The zero Pattern has no store yet: its first AppendToken allocates one, so
// copies taken before that point do not see the appended tokens. Use
// NewPattern for a pattern that will be shared.
type Pattern struct {
	emissions *TokenSeq
}

// NewPattern creates a pattern with a fresh, empty store.
func NewPattern() Pattern {
	return Pattern{emissions: &TokenSeq{}}
}

// Len returns the number of tokens.
func (p Pattern) Len() int {
	if p.emissions == nil {
		return 0
	}
	return len(p.emissions.tokens)
}

// Token returns the token at index.
func (p Pattern) Token(index int) *Token {
	return &p.emissions.tokens[index]
}

// LastToken returns the final token.
func (p Pattern) LastToken() *Token {
	return &p.emissions.tokens[len(p.emissions.tokens)-1]
}

// AppendToken appends a deep copy of t to the shared store.
func (p *Pattern) AppendToken(t *Token) {
	if p.emissions == nil {
		p.emissions = &TokenSeq{}
	}
	p.emissions.tokens = append(p.emissions.tokens, *t.Clone())
}

// SetEmissionsVector points p at seq without copying it.
// Other patterns that shared p's previous store are unaffected.
func (p *Pattern) SetEmissionsVector(seq *TokenSeq) {
	p.emissions = seq
}

// Emissions returns the store p currently refers to.
func (p Pattern) Emissions() *TokenSeq {
	return p.emissions
}

// Detach redirects p to a deep copy of its current store.
func (p *Pattern) Detach() {
	if p.emissions == nil {
		p.emissions = &TokenSeq{}
		return
	}
	tokens := make([]Token, len(p.emissions.tokens))
	for i := range tokens {
		tokens[i] = *p.emissions.tokens[i].Clone()
	}
	p.emissions = &TokenSeq{tokens: tokens}
}

// Texts returns the text of every token.
func (p Pattern) Texts() []string {
	out := make([]string, p.Len())
	for i := range out {
		out[i] = p.emissions.tokens[i].text
	}
	return out
}
