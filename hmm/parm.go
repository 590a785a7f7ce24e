package hmm

import (
	"errors"
	"fmt"
)

// LossType selects how the loss enters the margin constraints.
type LossType int

// Loss rescaling methods.
const (
	SlackRescaling  LossType = 1
	MarginRescaling LossType = 2
)

// Limits on custom options.
const (
	MaxCustomOptions   = 20
	MaxCustomOptionLen = 300
)

var (
	ErrTooManyCustomOptions = errors.New("hmm: too many custom options")
	ErrCustomOptionTooLong  = errors.New("hmm: custom option too long")
)

// LearnParm holds the options the training loop reads.
type LearnParm struct {
	Epsilon          float64  `yaml:"epsilon"`         // precision to solve the QP to
	NewConstRetrain  float64  `yaml:"newconstretrain"` // constraints to accumulate before resolving the QP
	CCacheSize       int      `yaml:"ccache_size"`     // constraints cached per example
	C                float64  `yaml:"c"`               // margin/loss trade-off
	SlackNorm        int      `yaml:"slack_norm"`      // 1 or 2
	LossType         LossType `yaml:"loss_type"`
	LossFunction     int      `yaml:"loss_function"`
	Custom           []string `yaml:"custom,omitempty"`
	FeatureSpaceSize uint32   `yaml:"feature_space_size"` // number of features for a token
}

// DefaultLearnParm returns the SVM-HMM defaults.
func DefaultLearnParm() LearnParm {
	return LearnParm{
		Epsilon:         0.1,
		NewConstRetrain: 100,
		CCacheSize:      5,
		C:               0.01,
		SlackNorm:       1,
		LossType:        MarginRescaling,
		LossFunction:    1, // Hamming loss
	}
}

// AddCustomOption appends an algorithm-specific option string.
func (p *LearnParm) AddCustomOption(opt string) error {
	if len(p.Custom) >= MaxCustomOptions {
		return fmt.Errorf("%w: limit is %d", ErrTooManyCustomOptions, MaxCustomOptions)
	}
	if len(opt) > MaxCustomOptionLen {
		return fmt.Errorf("%w: %d bytes, limit is %d", ErrCustomOptionTooLong, len(opt), MaxCustomOptionLen)
	}
	p.Custom = append(p.Custom, opt)
	return nil
}

// ObserveFeature grows FeatureSpaceSize to cover feature id idx, which must
// fit in 32 bits.
func (p *LearnParm) ObserveFeature(idx int) {
	if idx > int(p.FeatureSpaceSize) {
		p.FeatureSpaceSize = uint32(idx)
	}
}

// Validate checks that every option is in range.
func (p *LearnParm) Validate() error {
	switch {
	case p.Epsilon <= 0:
		return fmt.Errorf("%w: epsilon must be positive, got %v", ErrInvalidArgument, p.Epsilon)
	case p.C <= 0:
		return fmt.Errorf("%w: C must be positive, got %v", ErrInvalidArgument, p.C)
	case p.SlackNorm != 1 && p.SlackNorm != 2:
		return fmt.Errorf("%w: slack norm must be 1 or 2, got %d", ErrInvalidArgument, p.SlackNorm)
	case p.LossType != SlackRescaling && p.LossType != MarginRescaling:
		return fmt.Errorf("%w: loss type must be 1 or 2, got %d", ErrInvalidArgument, p.LossType)
	case p.CCacheSize < 0:
		return fmt.Errorf("%w: negative ccache size %d", ErrInvalidArgument, p.CCacheSize)
	case len(p.Custom) > MaxCustomOptions:
		return fmt.Errorf("%w: %d options", ErrTooManyCustomOptions, len(p.Custom))
	}
	for _, opt := range p.Custom {
		if len(opt) > MaxCustomOptionLen {
			return fmt.Errorf("%w: %q", ErrCustomOptionTooLong, opt[:20])
		}
	}
	return nil
}
