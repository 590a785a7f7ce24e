package cli

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/spf13/cobra"

	"github.com/happyhackingspace/svmhmm"
	"github.com/happyhackingspace/svmhmm/hmm"
)

func (c *CLI) newEvaluateCommand() *cobra.Command {
	var perTag bool

	cmd := &cobra.Command{
		Use:     "evaluate <gold> <predicted>",
		Short:   "Compare predicted tags against gold tags",
		Example: `  svmhmm evaluate test.dat test.pred.dat --per-tag`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := c.storage().LoadOrNewTags()
			if err != nil {
				return err
			}
			gold, err := svmhmm.ReadExamples(args[0], reg, nil)
			if err != nil {
				return err
			}
			pred, err := svmhmm.ReadExamples(args[1], reg, nil)
			if err != nil {
				return err
			}
			slog.Info("Evaluating", "gold", args[0], "predicted", args[1], "examples", len(gold))

			stats, err := svmhmm.Evaluate(gold, pred)
			if err != nil {
				return err
			}
			fmt.Printf("Token accuracy: %.1f%% (%d/%d tokens)\n",
				stats.TokenAccuracy()*100, stats.NumCorrectTags, stats.NumTokens)
			fmt.Printf("Sequence accuracy: %.1f%% (%d/%d examples)\n",
				stats.SequenceAccuracy()*100, stats.NumCorrectExamples, stats.NumExamples)

			if perTag {
				confusion, classes, err := tagConfusion(reg, gold, pred)
				if err != nil {
					return err
				}
				printConfusionMatrix(confusion, classes)
				printClassReport(confusion, classes)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&perTag, "per-tag", false, "Print a confusion matrix and per-tag metrics")
	return cmd
}

// tagConfusion counts gold/predicted tag pairs. Examples must already be
// aligned.
func tagConfusion(reg *hmm.Registry, gold, pred []svmhmm.Example) (map[string]map[string]int, []string, error) {
	confusion := make(map[string]map[string]int)
	seen := make(map[string]bool)
	for i := range gold {
		for j := range gold[i].Y.Len() {
			g, err := reg.TagByID(gold[i].Y.Tag(j))
			if err != nil {
				return nil, nil, err
			}
			p, err := reg.TagByID(pred[i].Y.Tag(j))
			if err != nil {
				return nil, nil, err
			}
			if confusion[g] == nil {
				confusion[g] = make(map[string]int)
			}
			confusion[g][p]++
			seen[g] = true
			seen[p] = true
		}
	}
	classes := make([]string, 0, len(seen))
	for tag := range seen {
		classes = append(classes, tag)
	}
	sort.Strings(classes)
	return confusion, classes, nil
}

func printClassReport(confusion map[string]map[string]int, classes []string) {
	predicted := make(map[string]int)
	for _, row := range confusion {
		for p, n := range row {
			predicted[p] += n
		}
	}

	fmt.Printf("\n%s\n", heading("Per-tag metrics:"))
	fmt.Printf("%8s  %6s  %6s  %6s  %7s\n", "tag", "prec", "recall", "f1", "support")
	for _, tag := range classes {
		support := 0
		for _, v := range confusion[tag] {
			support += v
		}
		correct := confusion[tag][tag]
		prec, recall, f1 := 0.0, 0.0, 0.0
		if predicted[tag] > 0 {
			prec = float64(correct) / float64(predicted[tag])
		}
		if support > 0 {
			recall = float64(correct) / float64(support)
		}
		if prec+recall > 0 {
			f1 = 2 * prec * recall / (prec + recall)
		}
		fmt.Printf("%8s  %5.1f%%  %5.1f%%  %5.1f%%  %7d\n",
			tag, prec*100, recall*100, f1*100, support)
	}
}

func printConfusionMatrix(confusion map[string]map[string]int, classes []string) {
	if len(confusion) == 0 {
		return
	}

	sort.SliceStable(classes, func(i, j int) bool {
		ti, tj := 0, 0
		for _, v := range confusion[classes[i]] {
			ti += v
		}
		for _, v := range confusion[classes[j]] {
			tj += v
		}
		return ti > tj
	})

	fmt.Printf("\n%s\n", heading("Confusion matrix (rows=gold, cols=predicted):"))
	fmt.Printf("%8s", "")
	for _, c := range classes {
		fmt.Printf(" %5s", c)
	}
	fmt.Printf("  total  acc%%\n")

	for _, goldTag := range classes {
		fmt.Printf("%8s", goldTag)
		total := 0
		correct := 0
		for _, predTag := range classes {
			count := confusion[goldTag][predTag]
			total += count
			if goldTag == predTag {
				correct = count
			}
			if count == 0 {
				fmt.Print(dimStyle.Render(fmt.Sprintf(" %5s", ".")))
			} else {
				fmt.Printf(" %5d", count)
			}
		}
		acc := 0.0
		if total > 0 {
			acc = float64(correct) / float64(total) * 100
		}
		fmt.Printf("  %5d %5.1f\n", total, acc)
	}
}
