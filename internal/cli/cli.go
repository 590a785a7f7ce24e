package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/happyhackingspace/svmhmm/hmm"
	"github.com/happyhackingspace/svmhmm/internal/config"
	"github.com/happyhackingspace/svmhmm/internal/storage"
)

// CLI encapsulates the command-line interface with its dependencies.
type CLI struct {
	version     string
	verbose     bool
	silent      bool
	dataFolder  string
	configPath  string
	initialized bool
	rootCmd     *cobra.Command
}

// New creates a new CLI instance with the given version string.
func New(version string) *CLI {
	c := &CLI{version: version}
	c.setupCommands()
	return c
}

// setupCommands initializes all CLI commands and their configurations.
func (c *CLI) setupCommands() {
	c.rootCmd = &cobra.Command{
		Use:     "svmhmm",
		Short:   "SVM-HMM sequence tagging data tools",
		Version: c.version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			c.initApp()
		},
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	flags := c.rootCmd.PersistentFlags()
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "Enable verbose/debug output")
	flags.BoolVarP(&c.silent, "silent", "s", false, "Suppress all logging")
	flags.StringVar(&c.dataFolder, "data-folder", ".svmhmm", "Workspace folder holding tags, featurizer and config")
	flags.StringVar(&c.configPath, "config", "", "Learning parameter file (default <data-folder>/config.yaml)")

	c.rootCmd.AddCommand(c.newInspectCommand())
	c.rootCmd.AddCommand(c.newEvaluateCommand())
	c.rootCmd.AddCommand(c.newFeaturizeCommand())
	c.rootCmd.AddCommand(c.newSplitCommand())
	c.rootCmd.AddCommand(c.newTagsCommand())
	c.rootCmd.AddCommand(c.newConfigCommand())
	c.rootCmd.AddCommand(c.newUpCommand())
}

// Run executes the CLI and returns any error.
func (c *CLI) Run() error {
	return c.rootCmd.Execute()
}

// initApp initializes logging.
func (c *CLI) initApp() {
	if c.initialized {
		return
	}
	c.initialized = true

	level := slog.LevelInfo
	if c.verbose {
		level = slog.LevelDebug
	}
	if c.silent {
		level = slog.Level(100)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

func (c *CLI) storage() *storage.Storage {
	return storage.NewStorage(c.dataFolder)
}

// learnParm loads the configured learning parameters, or the defaults if no
// file exists at the default location.
func (c *CLI) learnParm() (hmm.LearnParm, error) {
	if c.configPath != "" {
		return config.Load(c.configPath)
	}
	return config.LoadOrDefault(c.storage().ConfigPath())
}
