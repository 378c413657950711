package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"motion-dataset/utils"
)

// rootOptions are the flags shared by every subcommand.
type rootOptions struct {
	configPath string
	logFile    string
	logLevel   string

	cfg *utils.Config
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		utils.L().Error("%v", err)
		utils.L().Close()
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	command := &cobra.Command{
		Use:           "motion-dataset",
		Short:         "Collect labelled IMU recordings and prepare windowed training datasets",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := utils.ParseLogLevel(opts.logLevel)
			if err != nil {
				return err
			}
			utils.InitLogger(level, opts.logFile)
			utils.L().Debug("motion-dataset  GOMAXPROCS=%d  PID=%d", runtime.GOMAXPROCS(0), os.Getpid())

			opts.cfg, err = utils.LoadConfig(opts.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			utils.L().Close()
		},
	}

	command.PersistentFlags().StringVar(&opts.configPath, "config", "config/dataset.yaml", "path to dataset.yaml")
	command.PersistentFlags().StringVar(&opts.logFile, "log", "", "optional log file path (stdout is always included)")
	command.PersistentFlags().StringVar(&opts.logLevel, "log-level", "INFO", "minimum log level: DEBUG, INFO, WARN, ERROR")

	command.AddCommand(
		newCollectCommand(opts),
		newPrepareCommand(opts),
		newMergeCommand(opts),
		newPortsCommand(),
	)
	return command
}
