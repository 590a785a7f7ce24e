package cli

import (
	"fmt"
	"log/slog"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/happyhackingspace/svmhmm/hmm"
	"github.com/happyhackingspace/svmhmm/internal/config"
)

func (c *CLI) newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show or initialize learning parameters",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective learning parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parm, err := c.learnParm()
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(parm)
			if err != nil {
				return err
			}
			fmt.Print(string(data))
			return nil
		},
	}

	var (
		cValue   float64
		epsilon  float64
		lossType int
	)
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a parameter file with defaults",
		Example: `  svmhmm config init
  svmhmm config init --c 5 --loss-type 1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parm, err := c.learnParm()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("c") {
				parm.C = cValue
			}
			if cmd.Flags().Changed("epsilon") {
				parm.Epsilon = epsilon
			}
			if cmd.Flags().Changed("loss-type") {
				parm.LossType = hmm.LossType(lossType)
			}
			path := c.configPath
			if path == "" {
				path = c.storage().ConfigPath()
			}
			if err := config.Save(path, parm); err != nil {
				return err
			}
			slog.Info("Wrote config", "path", path)
			return nil
		},
	}
	initCmd.Flags().Float64Var(&cValue, "c", 0, "Margin/loss trade-off")
	initCmd.Flags().Float64Var(&epsilon, "epsilon", 0, "Precision to solve the QP to")
	initCmd.Flags().IntVar(&lossType, "loss-type", 0, "1 slack rescaling, 2 margin rescaling")

	configCmd.AddCommand(showCmd, initCmd)
	return configCmd
}
