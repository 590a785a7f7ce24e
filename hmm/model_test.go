package hmm

import (
	"errors"
	"strings"
	"testing"
)

type fakeSVM []float64

func (f fakeSVM) LinearWeights() []float64 { return f }

func TestStructModelLayout(t *testing.T) {
	parm := DefaultLearnParm()
	parm.FeatureSpaceSize = 3
	m := NewStructModel(&parm, 2)

	// 2 tags * (3+1) emission weights + 2*2 transitions
	if m.SizePsi != 12 || len(m.W) != 12 {
		t.Fatalf("SizePsi = %d, len(W) = %d; want 12", m.SizePsi, len(m.W))
	}
	if m.EmissionOffset(1) != 4 {
		t.Errorf("EmissionOffset(1) = %d, want 4", m.EmissionOffset(1))
	}
	if m.TransitionIndex(1, 0) != 10 {
		t.Errorf("TransitionIndex(1, 0) = %d, want 10", m.TransitionIndex(1, 0))
	}
}

func TestStructModelScore(t *testing.T) {
	parm := DefaultLearnParm()
	parm.FeatureSpaceSize = 2
	m := NewStructModel(&parm, 2)
	// tag 0: w[1]=1, w[2]=2; tag 1: w[4]=10, w[5]=20
	m.W[1], m.W[2] = 1, 2
	m.W[4], m.W[5] = 10, 20
	m.W[m.TransitionIndex(0, 1)] = 0.5

	p := NewPattern()
	a := NewToken("a")
	a.FeatureMap().Set(1, 1)
	b := NewToken("b")
	b.FeatureMap().Set(2, 1)
	p.AppendToken(a)
	p.AppendToken(b)

	l := NewLabel()
	l.AppendTag(0)
	l.AppendTag(1)

	if got, want := m.Score(p, l), 1.0+20+0.5; got != want {
		t.Errorf("Score = %v, want %v", got, want)
	}

	em := m.ComputeEmissionScores(p)
	if em[0][1] != 10 || em[1][0] != 2 {
		t.Errorf("emission scores = %v", em)
	}
	tr := m.ComputeTransScores()
	if tr[0][1] != 0.5 || tr[1][0] != 0 {
		t.Errorf("transition scores = %v", tr)
	}
}

func TestStructModelSetSVM(t *testing.T) {
	parm := DefaultLearnParm()
	parm.FeatureSpaceSize = 1
	m := NewStructModel(&parm, 1)
	if err := m.SetSVM(fakeSVM{1}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("short weights: err = %v", err)
	}
	w := fakeSVM{0, 2, 3}
	if err := m.SetSVM(w); err != nil {
		t.Fatal(err)
	}
	if m.W[1] != 2 || m.SVM == nil {
		t.Errorf("weights not adopted: %v", m.W)
	}
}

func TestLearnParm(t *testing.T) {
	parm := DefaultLearnParm()
	if err := parm.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	if parm.LossType != MarginRescaling || parm.Epsilon != 0.1 || parm.LossFunction != 1 {
		t.Errorf("unexpected defaults: %+v", parm)
	}

	tests := []struct {
		name   string
		modify func(*LearnParm)
	}{
		{"slack norm", func(p *LearnParm) { p.SlackNorm = 3 }},
		{"loss type", func(p *LearnParm) { p.LossType = 0 }},
		{"epsilon", func(p *LearnParm) { p.Epsilon = 0 }},
		{"C", func(p *LearnParm) { p.C = -1 }},
	}
	for _, tt := range tests {
		p := DefaultLearnParm()
		tt.modify(&p)
		if err := p.Validate(); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("%s: err = %v", tt.name, err)
		}
	}

	parm.ObserveFeature(7)
	parm.ObserveFeature(3)
	if parm.FeatureSpaceSize != 7 {
		t.Errorf("FeatureSpaceSize = %d, want 7", parm.FeatureSpaceSize)
	}
}

func TestCustomOptions(t *testing.T) {
	parm := DefaultLearnParm()
	if err := parm.AddCustomOption(strings.Repeat("x", MaxCustomOptionLen+1)); !errors.Is(err, ErrCustomOptionTooLong) {
		t.Errorf("long option: err = %v", err)
	}
	for i := range MaxCustomOptions {
		if err := parm.AddCustomOption("--opt"); err != nil {
			t.Fatalf("option %d: %v", i, err)
		}
	}
	if err := parm.AddCustomOption("--one-more"); !errors.Is(err, ErrTooManyCustomOptions) {
		t.Errorf("21st option: err = %v", err)
	}
}

func TestTestStats(t *testing.T) {
	gold := NewLabel()
	pred := NewLabel()
	for _, id := range []TagID{0, 1, 2} {
		gold.AppendTag(id)
	}
	for _, id := range []TagID{0, 2, 2} {
		pred.AppendTag(id)
	}

	var stats TestStats
	stats.Add(gold, pred)
	stats.Add(gold, gold)

	if stats.NumTokens != 6 || stats.NumCorrectTags != 5 {
		t.Errorf("tokens %d correct %d; want 6, 5", stats.NumTokens, stats.NumCorrectTags)
	}
	if stats.SequenceAccuracy() != 0.5 {
		t.Errorf("SequenceAccuracy = %v", stats.SequenceAccuracy())
	}

	short := NewLabel()
	short.AppendTag(0)
	stats.Add(gold, short)
	if stats.NumTokens != 9 || stats.NumCorrectTags != 6 {
		t.Errorf("short prediction: tokens %d correct %d", stats.NumTokens, stats.NumCorrectTags)
	}

	var empty TestStats
	if empty.TokenAccuracy() != 0 || empty.SequenceAccuracy() != 0 {
		t.Error("empty stats should report zero accuracy")
	}
}
