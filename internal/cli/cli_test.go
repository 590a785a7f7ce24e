package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/happyhackingspace/svmhmm"
	"github.com/happyhackingspace/svmhmm/hmm"
	"github.com/happyhackingspace/svmhmm/internal/config"
	"github.com/happyhackingspace/svmhmm/internal/storage"
)

const columns = `The DET
dog NOUN
ran VERB

It PRON
ran VERB

A DET
cat NOUN
`

func run(t *testing.T, args ...string) error {
	t.Helper()
	c := New("test")
	c.rootCmd.SetArgs(append([]string{"-s"}, args...))
	return c.Run()
}

func TestFeaturizeSplitEvaluate(t *testing.T) {
	dir := t.TempDir()
	ws := filepath.Join(dir, "ws")
	cols := filepath.Join(dir, "train.txt")
	if err := os.WriteFile(cols, []byte(columns), 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "train.dat")

	if err := run(t, "--data-folder", ws, "featurize", cols, "-o", out); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# featurizer ") {
		t.Errorf("missing provenance header:\n%s", data)
	}

	reg, err := storage.NewStorage(ws).LoadTags()
	if err != nil {
		t.Fatal(err)
	}
	if reg.NumTags() != 4 {
		t.Errorf("stored %d tags, want 4", reg.NumTags())
	}
	examples, err := svmhmm.ReadExamples(out, reg, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(examples) != 3 {
		t.Fatalf("got %d examples, want 3", len(examples))
	}

	if err := run(t, "--data-folder", ws, "inspect", out); err != nil {
		t.Fatal(err)
	}
	if err := run(t, "--data-folder", ws, "evaluate", out, out, "--per-tag"); err != nil {
		t.Fatal(err)
	}

	folds := filepath.Join(dir, "folds")
	if err := run(t, "--data-folder", ws, "split", out, "--folds", "3", "--out", folds); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"fold-0.train.dat", "fold-2.test.dat"} {
		if _, err := os.Stat(filepath.Join(folds, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
	test, err := svmhmm.ReadExamples(filepath.Join(folds, "fold-1.test.dat"), reg, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(test) != 1 || test[0].QID != 2 {
		t.Errorf("fold 1 test set = %+v", test)
	}
}

func TestFeaturizeReusesStoredFeaturizer(t *testing.T) {
	dir := t.TempDir()
	ws := filepath.Join(dir, "ws")
	cols := filepath.Join(dir, "train.txt")
	if err := os.WriteFile(cols, []byte(columns), 0644); err != nil {
		t.Fatal(err)
	}
	if err := run(t, "--data-folder", ws, "featurize", cols, "-o", filepath.Join(dir, "a.dat")); err != nil {
		t.Fatal(err)
	}
	first, err := storage.NewStorage(ws).LoadFeaturizer()
	if err != nil {
		t.Fatal(err)
	}
	if err := run(t, "--data-folder", ws, "featurize", cols, "-o", filepath.Join(dir, "b.dat")); err != nil {
		t.Fatal(err)
	}
	second, err := storage.NewStorage(ws).LoadFeaturizer()
	if err != nil {
		t.Fatal(err)
	}
	if first.ID != second.ID {
		t.Errorf("featurizer was refitted: %s then %s", first.ID, second.ID)
	}
}

func TestEvaluateMisaligned(t *testing.T) {
	dir := t.TempDir()
	gold := filepath.Join(dir, "gold.dat")
	pred := filepath.Join(dir, "pred.dat")
	if err := os.WriteFile(gold, []byte("A qid:1 1:1\nB qid:1 1:1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(pred, []byte("A qid:1 1:1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := run(t, "--data-folder", filepath.Join(dir, "ws"), "evaluate", gold, pred); err == nil {
		t.Error("expected error for misaligned prediction")
	}
}

func TestConfigInit(t *testing.T) {
	ws := filepath.Join(t.TempDir(), "ws")
	if err := run(t, "--data-folder", ws, "config", "init", "--c", "3", "--loss-type", "1"); err != nil {
		t.Fatal(err)
	}
	parm, err := config.Load(storage.NewStorage(ws).ConfigPath())
	if err != nil {
		t.Fatal(err)
	}
	if parm.C != 3 || parm.LossType != hmm.SlackRescaling {
		t.Errorf("saved %+v", parm)
	}
	if err := run(t, "--data-folder", ws, "config", "show"); err != nil {
		t.Fatal(err)
	}
	if err := run(t, "--data-folder", ws, "config", "init", "--loss-type", "7"); err == nil {
		t.Error("expected validation error")
	}
}
