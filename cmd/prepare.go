package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"motion-dataset/controller"
	"motion-dataset/services/storage"
	"motion-dataset/utils"
	"motion-dataset/views"
)

func newPrepareCommand(root *rootOptions) *cobra.Command {
	var (
		input      string
		output     string
		format     string
		windowSize int
		stride     int
		trainRatio float64
		intervalMs int
		backend    string
	)

	command := &cobra.Command{
		Use:   "prepare",
		Short: "Window, split and encode every recording for training",
		Example: `  motion-dataset prepare --format merged-table
  motion-dataset prepare --format per-window-file --window-size 100 --stride 50
  motion-dataset prepare --format structured-document --backend s3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := root.cfg.Prepare
			storageCfg := root.cfg.Storage
			flags := cmd.Flags()
			if flags.Changed("input") {
				cfg.InputDir = input
			}
			if flags.Changed("output") {
				cfg.OutputDir = output
			}
			if flags.Changed("format") {
				cfg.Format = format
			}
			if flags.Changed("window-size") {
				cfg.WindowSize = windowSize
			}
			if flags.Changed("stride") {
				cfg.Stride = stride
			}
			if flags.Changed("train-ratio") {
				cfg.TrainRatio = trainRatio
			}
			if flags.Changed("interval-ms") {
				cfg.IntervalMs = intervalMs
			}
			if flags.Changed("backend") {
				storageCfg.Backend = backend
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			sink, err := storage.NewSink(ctx, storageCfg, cfg.OutputDir)
			if err != nil {
				return fmt.Errorf("init storage: %w", err)
			}
			pc, err := controller.NewPreparationController(cfg, sink, utils.SystemClock{})
			if err != nil {
				return fmt.Errorf("prepare: %w", err)
			}
			report, err := pc.Run(ctx)
			if err != nil {
				return fmt.Errorf("prepare: %w", err)
			}

			fmt.Printf("\n✓ Dataset prepared (run %s)\n", report.RunID)
			fmt.Printf("  windows: %d  (train=%d, test=%d)\n", report.Totals.Windows, report.Totals.Train, report.Totals.Test)
			fmt.Printf("  output:  %s\n", sink.Location())
			if pc.Format() == views.FormatWindowFiles {
				printUploadHints(sink.Location())
			}
			return nil
		},
	}

	command.Flags().StringVarP(&input, "input", "i", "", "directory of recording CSVs")
	command.Flags().StringVarP(&output, "output", "o", "", "output directory (local backend)")
	command.Flags().StringVarP(&format, "format", "f", "", "merged-table, per-window-file or structured-document")
	command.Flags().IntVar(&windowSize, "window-size", 0, "rows per window")
	command.Flags().IntVar(&stride, "stride", 0, "rows between window starts")
	command.Flags().Float64Var(&trainRatio, "train-ratio", 0, "share of each recording's windows used for training")
	command.Flags().IntVar(&intervalMs, "interval-ms", 0, "sampling interval in milliseconds")
	command.Flags().StringVar(&backend, "backend", "", "storage backend: local or s3")
	return command
}

func printUploadHints(location string) {
	fmt.Println()
	fmt.Println("Upload to Edge Impulse:")
	fmt.Println("  1. Open your project and go to Data acquisition")
	fmt.Println("  2. Choose Upload data and select the files under", location)
	fmt.Println("  3. Upload training_manifest.csv files to the training category")
	fmt.Println("     and testing_manifest.csv files to the testing category")
	fmt.Println("  4. Labels are read from each file's label column")
}
