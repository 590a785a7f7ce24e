package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/happyhackingspace/svmhmm"
)

func (c *CLI) newSplitCommand() *cobra.Command {
	var (
		folds  int
		outDir string
	)

	cmd := &cobra.Command{
		Use:     "split <file>",
		Short:   "Write cross-validation folds of an example file",
		Example: `  svmhmm split train.dat --folds 5 --out folds`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if folds < 2 {
				return fmt.Errorf("need at least 2 folds, got %d", folds)
			}
			reg, err := c.storage().LoadOrNewTags()
			if err != nil {
				return err
			}
			examples, err := svmhmm.ReadExamples(args[0], reg, nil)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0755); err != nil {
				return err
			}

			for i, fold := range svmhmm.GroupFolds(svmhmm.QIDGroups(examples), folds) {
				train, test := svmhmm.SplitFold(examples, fold)
				trainPath := filepath.Join(outDir, fmt.Sprintf("fold-%d.train.dat", i))
				testPath := filepath.Join(outDir, fmt.Sprintf("fold-%d.test.dat", i))
				if err := svmhmm.WriteExamples(trainPath, reg, train); err != nil {
					return err
				}
				if err := svmhmm.WriteExamples(testPath, reg, test); err != nil {
					return err
				}
				slog.Info("Wrote fold", "fold", i, "train", len(train), "test", len(test))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&folds, "folds", 10, "Number of cross-validation folds")
	cmd.Flags().StringVar(&outDir, "out", "folds", "Output directory")
	return cmd
}
