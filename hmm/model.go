package hmm

import "fmt"

// SVMModel is the numeric model maintained by the external optimizer.
type SVMModel interface {
	// LinearWeights returns the current dense weight vector.
	LinearWeights() []float64
}

// StructModel holds the learned weights of a first-order SVM-HMM.
type StructModel struct {
	W       []float64 // learned weights
	SVM     SVMModel  // optimizer model the weights came from, may be nil
	SizePsi int       // maximum number of weights in W
	// Weight layout: [emission blocks... | transitions...]
	// Emission block of tag y starts at y * (FeatureSpaceSize+1); feature ids start at 1.
	// Transition index: transOffset + from*NumTags + to
	NumTags          int
	FeatureSpaceSize int
}

// NewStructModel sizes a zero model for numTags tags and the feature space
// declared in parm.
func NewStructModel(parm *LearnParm, numTags int) *StructModel {
	m := &StructModel{
		NumTags:          numTags,
		FeatureSpaceSize: int(parm.FeatureSpaceSize),
	}
	m.SizePsi = m.TransOffset() + numTags*numTags
	m.W = make([]float64, m.SizePsi)
	return m
}

// TransOffset returns the offset where transition weights start.
func (m *StructModel) TransOffset() int {
	return m.NumTags * (m.FeatureSpaceSize + 1)
}

// EmissionOffset returns the start of tag's emission block.
func (m *StructModel) EmissionOffset(tag TagID) int {
	return int(tag) * (m.FeatureSpaceSize + 1)
}

// TransitionIndex returns the weight index for the transition from -> to.
func (m *StructModel) TransitionIndex(from, to TagID) int {
	return m.TransOffset() + int(from)*m.NumTags + int(to)
}

// EmissionScore scores tok under tag.
func (m *StructModel) EmissionScore(tok *Token, tag TagID) float64 {
	return tok.DotProduct(m.W[m.EmissionOffset(tag):])
}

// TransitionScore returns the weight of the transition from -> to.
func (m *StructModel) TransitionScore(from, to TagID) float64 {
	return m.W[m.TransitionIndex(from, to)]
}

// Score returns w·Psi(x, y) for pattern x tagged with label y.
// The two must have the same length.
func (m *StructModel) Score(x Pattern, y Label) float64 {
	var score float64
	for i := range x.Len() {
		score += m.EmissionScore(x.Token(i), y.Tag(i))
		if i > 0 {
			score += m.TransitionScore(y.Tag(i-1), y.Tag(i))
		}
	}
	return score
}

// ComputeEmissionScores returns the [T][NumTags] emission score matrix of x.
func (m *StructModel) ComputeEmissionScores(x Pattern) [][]float64 {
	T := x.Len()
	scores := make([][]float64, T)
	for t := range T {
		scores[t] = make([]float64, m.NumTags)
		for y := range m.NumTags {
			scores[t][y] = m.EmissionScore(x.Token(t), TagID(y))
		}
	}
	return scores
}

// ComputeTransScores returns the [NumTags][NumTags] transition score matrix.
func (m *StructModel) ComputeTransScores() [][]float64 {
	L := m.NumTags
	trans := make([][]float64, L)
	for i := range L {
		trans[i] = make([]float64, L)
		for j := range L {
			trans[i][j] = m.W[m.TransitionIndex(TagID(i), TagID(j))]
		}
	}
	return trans
}

// SetSVM attaches the optimizer's model and adopts its weights.
func (m *StructModel) SetSVM(svm SVMModel) error {
	w := svm.LinearWeights()
	if len(w) < m.SizePsi {
		return fmt.Errorf("%w: model has %d weights, need %d", ErrInvalidArgument, len(w), m.SizePsi)
	}
	m.SVM = svm
	m.W = w
	return nil
}
