package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"emotiview/internal/logging"
	"emotiview/internal/watch"
)

var watchFlags struct {
	timeout time.Duration
}

var watchCmd = &cobra.Command{
	Use:   "watch <dir> <glob>",
	Short: "Block until a matching artifact appears in a directory",
	Long: `Block until a file matching the glob exists in the directory, then print
its absolute path. Files already present satisfy the wait immediately, so
pipeline steps can be started in any order:

  emotiview watch out "*_signal.parquet" --timeout 5m`,
	Args: cobra.ExactArgs(2),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchFlags.timeout, "timeout", time.Minute, "Give up after this long (0 = wait forever)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if watchFlags.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, watchFlags.timeout)
		defer cancel()
	}
	path, err := watch.WaitFor(ctx, args[0], args[1], logging.New("watch"))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
