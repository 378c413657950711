package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"motion-dataset/controller"
	"motion-dataset/services/storage"
)

func newMergeCommand(root *rootOptions) *cobra.Command {
	var dir string

	command := &cobra.Command{
		Use:   "merge",
		Short: "Rebuild training and testing artifacts from per-label artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				dir = root.cfg.Prepare.OutputDir
			}
			ctx := context.Background()
			sink, err := storage.NewSink(ctx, root.cfg.Storage, dir)
			if err != nil {
				return fmt.Errorf("init storage: %w", err)
			}
			results, err := controller.NewMergeController(dir, sink).Run(ctx)
			if err != nil {
				return fmt.Errorf("merge: %w", err)
			}
			for _, r := range results {
				fmt.Printf("✓ %-20s %d windows from %d file(s)\n", r.Key, r.Windows, len(r.Sources))
			}
			return nil
		},
	}

	command.Flags().StringVarP(&dir, "dir", "d", "", "directory holding <label>_train/_test artifacts (default prepare.output_dir)")
	return command
}
