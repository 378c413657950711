package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"motion-dataset/controller"
	"motion-dataset/utils"
)

func newCollectCommand(root *rootOptions) *cobra.Command {
	var (
		label    string
		source   string
		port     string
		baud     int
		duration int
		output   string
		replay   string
	)

	command := &cobra.Command{
		Use:   "collect",
		Short: "Record one labelled session from an IMU device",
		Example: `  motion-dataset collect --label normal --duration 60
  motion-dataset collect --label seizure --port /dev/ttyUSB0
  motion-dataset collect --label normal --source replay --replay capture.log`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := root.cfg.Collector
			flags := cmd.Flags()
			if flags.Changed("label") {
				cfg.Label = label
			}
			if flags.Changed("source") {
				cfg.Source = source
			}
			if flags.Changed("port") {
				cfg.Port = port
			}
			if flags.Changed("baud") {
				cfg.BaudRate = baud
			}
			if flags.Changed("duration") {
				cfg.DurationSeconds = duration
			}
			if flags.Changed("output") {
				cfg.Output = output
			}
			if flags.Changed("replay") {
				cfg.Replay.Path = replay
				if !flags.Changed("source") {
					cfg.Source = controller.SourceReplay
				}
			}
			if cfg.Label == "" {
				return errors.New("a label is required (--label or collector.label)")
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			utils.L().Info("collecting label=%s  source=%s  duration=%ds, Ctrl+C stops early",
				cfg.Label, cfg.Source, cfg.DurationSeconds)
			sum, err := controller.Collect(ctx, cfg, cfg.Label, utils.SystemClock{})
			if err != nil {
				return fmt.Errorf("collect: %w", err)
			}

			fmt.Printf("\n✓ Collection complete\n")
			fmt.Printf("  total samples:  %d\n", sum.Samples)
			fmt.Printf("  duration:       %.1fs\n", sum.Duration.Seconds())
			fmt.Printf("  average rate:   %.1f Hz\n", sum.Rate())
			fmt.Printf("  saved to:       %s\n", sum.Path)
			return nil
		},
	}

	command.Flags().StringVarP(&label, "label", "l", "", "label for every row, e.g. normal or seizure")
	command.Flags().StringVar(&source, "source", "", "row source: serial, simulate, replay, mqtt")
	command.Flags().StringVarP(&port, "port", "p", "", "serial port (auto-detected when empty)")
	command.Flags().IntVarP(&baud, "baud", "b", 0, "serial baud rate")
	command.Flags().IntVarP(&duration, "duration", "d", 0, "recording duration in seconds (0 runs until interrupted)")
	command.Flags().StringVarP(&output, "output", "o", "", "output CSV path (default <output_dir>/<label>_<stamp>.csv)")
	command.Flags().StringVar(&replay, "replay", "", "replay captured device output from this file")
	return command
}
