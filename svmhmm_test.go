package svmhmm

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/happyhackingspace/svmhmm/hmm"
	"github.com/happyhackingspace/svmhmm/internal/vectorizer"
)

const trainData = `DET qid:1 1:1 # The
NOUN qid:1 2:1 # dog
VERB qid:1 3:1 # ran
PRON qid:2 4:1 # It
VERB qid:2 3:1 # ran
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadWriteExamples(t *testing.T) {
	reg := hmm.NewRegistry()
	parm := hmm.DefaultLearnParm()
	examples, err := ReadExamples(writeTemp(t, "train.dat", trainData), reg, &parm)
	if err != nil {
		t.Fatal(err)
	}
	if len(examples) != 2 || parm.FeatureSpaceSize != 4 {
		t.Fatalf("got %d examples, feature space %d", len(examples), parm.FeatureSpaceSize)
	}

	out := filepath.Join(t.TempDir(), "copy.dat")
	if err := WriteExamples(out, reg, examples); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != trainData {
		t.Errorf("round trip changed the file:\n%s", data)
	}
}

func TestReadExamplesError(t *testing.T) {
	_, err := ReadExamples(writeTemp(t, "bad.dat", "DET 1:1\n"), hmm.NewRegistry(), nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if _, err := ReadExamples(filepath.Join(t.TempDir(), "missing.dat"), hmm.NewRegistry(), nil); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want ErrNotExist", err)
	}
}

func TestEvaluate(t *testing.T) {
	reg := hmm.NewRegistry()
	gold, err := ReadExamples(writeTemp(t, "gold.dat", trainData), reg, nil)
	if err != nil {
		t.Fatal(err)
	}
	pred, err := ReadExamples(writeTemp(t, "pred.dat", `DET qid:1 1:1
NOUN qid:1 2:1
NOUN qid:1 3:1
PRON qid:2 4:1
VERB qid:2 3:1
`), reg, nil)
	if err != nil {
		t.Fatal(err)
	}

	stats, err := Evaluate(gold, pred)
	if err != nil {
		t.Fatal(err)
	}
	want := hmm.TestStats{NumTokens: 5, NumCorrectTags: 4, NumExamples: 2, NumCorrectExamples: 1}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}

	if _, err := Evaluate(gold, pred[:1]); !errors.Is(err, ErrMisaligned) {
		t.Errorf("err = %v, want ErrMisaligned", err)
	}
	swapped := []Example{pred[1], pred[0]}
	if _, err := Evaluate(gold, swapped); !errors.Is(err, ErrMisaligned) {
		t.Errorf("err = %v, want ErrMisaligned for qid mismatch", err)
	}
}

func TestFolds(t *testing.T) {
	got := Folds(5, 2)
	want := [][]int{{0, 2, 4}, {1, 3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Folds(5, 2) = %v, want %v", got, want)
	}
	if got := Folds(2, 5); len(got) != 2 {
		t.Errorf("Folds(2, 5) has %d folds, want 2", len(got))
	}
	if got := Folds(0, 3); got != nil {
		t.Errorf("Folds(0, 3) = %v, want nil", got)
	}
}

func TestGroupFolds(t *testing.T) {
	got := GroupFolds([]int{7, 3, 7, 5, 3}, 2)
	// groups 3, 5, 7 dealt to folds 0, 1, 0
	want := [][]int{{0, 1, 2, 4}, {3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GroupFolds = %v, want %v", got, want)
	}
}

func TestSplitFold(t *testing.T) {
	examples := []Example{{QID: 1}, {QID: 2}, {QID: 1}}
	groups := QIDGroups(examples)
	if !reflect.DeepEqual(groups, []int{0, 1, 0}) {
		t.Fatalf("QIDGroups = %v", groups)
	}
	train, test := SplitFold(examples, []int{1})
	if len(train) != 2 || len(test) != 1 || test[0].QID != 2 {
		t.Errorf("train %v, test %v", train, test)
	}
}

func TestFeaturize(t *testing.T) {
	sentences := []Sentence{
		{Words: []string{"The", "dog", "ran"}, Tags: []string{"DET", "NOUN", "VERB"}},
		{Words: []string{"It", "ran"}, Tags: []string{"PRON", "VERB"}},
	}
	f, err := vectorizer.NewFeaturizer(vectorizer.WeightingCount, 1)
	if err != nil {
		t.Fatal(err)
	}
	var words [][]string
	for _, s := range sentences {
		words = append(words, s.Words)
	}
	f.Fit(words)

	reg := hmm.NewRegistry()
	examples := Featurize(sentences, f, reg)
	if len(examples) != 2 || examples[1].QID != 2 {
		t.Fatalf("examples = %+v", examples)
	}
	if examples[0].X.Token(1).Text() != "dog" {
		t.Errorf("token text = %q", examples[0].X.Token(1).Text())
	}
	if reg.NumTags() != 4 || examples[1].Y.Tag(1) != examples[0].Y.Tag(2) {
		t.Errorf("tags not shared through the registry")
	}

	model := NewStructModel(&hmm.LearnParm{FeatureSpaceSize: uint32(f.Dim())}, reg)
	if model.SizePsi != 4*(f.Dim()+1)+16 {
		t.Errorf("SizePsi = %d", model.SizePsi)
	}
	if score := model.Score(examples[0].X, examples[0].Y); score != 0 {
		t.Errorf("zero model scored %v", score)
	}
}
