package cli

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/spf13/cobra"

	"github.com/happyhackingspace/svmhmm"
	"github.com/happyhackingspace/svmhmm/hmm"
)

func (c *CLI) newInspectCommand() *cobra.Command {
	var saveTags bool

	cmd := &cobra.Command{
		Use:   "inspect <file>...",
		Short: "Validate example files and print corpus statistics",
		Example: `  svmhmm inspect train.dat
  svmhmm inspect train.dat test.dat --save-tags`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := c.storage()
			reg, err := store.LoadOrNewTags()
			if err != nil {
				return err
			}
			parm, err := c.learnParm()
			if err != nil {
				return err
			}

			var examples []svmhmm.Example
			for _, path := range args {
				exs, err := svmhmm.ReadExamples(path, reg, &parm)
				if err != nil {
					return err
				}
				examples = append(examples, exs...)
			}
			printCorpusStats(reg, &parm, examples)

			if saveTags {
				if err := store.SaveTags(reg); err != nil {
					return err
				}
				slog.Info("Saved tags", "folder", store.Folder, "tags", reg.NumTags())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&saveTags, "save-tags", false, "Store the tag registry in the workspace folder")
	return cmd
}

func printCorpusStats(reg *hmm.Registry, parm *hmm.LearnParm, examples []svmhmm.Example) {
	counts := make(map[hmm.TagID]int)
	tokens, longest := 0, 0
	for _, ex := range examples {
		tokens += ex.Y.Len()
		longest = max(longest, ex.Y.Len())
		for i := range ex.Y.Len() {
			counts[ex.Y.Tag(i)]++
		}
	}
	model := svmhmm.NewStructModel(parm, reg)

	fmt.Printf("Examples: %d\n", len(examples))
	fmt.Printf("Tokens: %d (longest example %d)\n", tokens, longest)
	fmt.Printf("Tags: %d\n", reg.NumTags())
	fmt.Printf("Feature space: %d\n", parm.FeatureSpaceSize)
	fmt.Printf("Weights (size psi): %d\n", model.SizePsi)

	ids := make([]hmm.TagID, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if counts[ids[i]] != counts[ids[j]] {
			return counts[ids[i]] > counts[ids[j]]
		}
		return ids[i] < ids[j]
	})
	fmt.Printf("\n%s\n", heading(fmt.Sprintf("%6s  %-12s  %7s", "id", "tag", "count")))
	for _, id := range ids {
		fmt.Printf("%6d  %-12s  %7d\n", id, reg.MustTag(id), counts[id])
	}
}
