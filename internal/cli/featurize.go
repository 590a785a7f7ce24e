package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/happyhackingspace/svmhmm"
	"github.com/happyhackingspace/svmhmm/internal/vectorizer"
)

func (c *CLI) newFeaturizeCommand() *cobra.Command {
	var (
		output    string
		weighting string
		minDF     int
		refit     bool
	)

	cmd := &cobra.Command{
		Use:   "featurize <columns>",
		Short: "Convert a tagged column file into SVM-HMM examples",
		Long: `Reads a file with one "word TAG" line per token and a blank line between
sentences, and writes one example per sentence. The first run fits a
featurizer and stores it in the workspace folder; later runs reuse it so
feature ids stay stable across train and test files.`,
		Example: `  svmhmm featurize train.txt -o train.dat
  svmhmm featurize test.txt -o test.dat
  svmhmm featurize train.txt -o train.dat --refit --weighting tfidf --min-df 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sentences, err := svmhmm.ReadSentences(args[0])
			if err != nil {
				return err
			}
			store := c.storage()
			reg, err := store.LoadOrNewTags()
			if err != nil {
				return err
			}

			f, err := store.LoadFeaturizer()
			switch {
			case err == nil && !refit:
				slog.Debug("Using stored featurizer", "weighting", f.Weighting, "dim", f.Dim())
			case err == nil, errors.Is(err, os.ErrNotExist):
				if f, err = vectorizer.NewFeaturizer(weighting, minDF); err != nil {
					return err
				}
				words := make([][]string, len(sentences))
				for i, sent := range sentences {
					words[i] = sent.Words
				}
				f.Fit(words)
				if err := store.SaveFeaturizer(f); err != nil {
					return err
				}
				slog.Info("Fitted featurizer", "sentences", len(sentences), "dim", f.Dim())
			default:
				return err
			}

			examples := svmhmm.Featurize(sentences, f, reg)
			if err := svmhmm.WriteExamples(output, reg, examples,
				fmt.Sprintf("featurizer %s weighting %s dim %d", f.ID, f.Weighting, f.Dim())); err != nil {
				return err
			}
			if err := store.SaveTags(reg); err != nil {
				return err
			}
			slog.Info("Wrote examples", "path", output, "examples", len(examples), "tags", reg.NumTags())
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output example file")
	cmd.Flags().StringVar(&weighting, "weighting", vectorizer.WeightingCount, "Character n-gram weighting: count or tfidf")
	cmd.Flags().IntVar(&minDF, "min-df", 1, "Drop character n-grams seen in fewer tokens")
	cmd.Flags().BoolVar(&refit, "refit", false, "Fit a new featurizer even if one is stored")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
