package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/happyhackingspace/svmhmm/hmm"
)

func (c *CLI) newTagsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List the tags stored in the workspace folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := c.storage().LoadTags()
			if err != nil {
				return err
			}
			for i, tag := range reg.Tags() {
				fmt.Printf("%d\t%s\n", hmm.FirstTagID+hmm.TagID(i), tag)
			}
			return nil
		},
	}
}
