package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/stuttgart-things/secret-populator/internal/batch"
	"github.com/stuttgart-things/secret-populator/internal/progress"
)

// maxDryRunNames is the largest batch whose names are listed one by one
const maxDryRunNames = 20

// batchPreRun fills count and prefix from the resolved config unless the
// flags were set, and rejects a zero count before any backend is contacted.
func batchPreRun(count *uint64, prefix *string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("count") {
			*count = cfg.Count
		}
		if !cmd.Flags().Changed("prefix") {
			*prefix = cfg.Prefix
		}

		if *count == 0 {
			return fmt.Errorf("invalid value for --count: %w", batch.ErrInvalidCount)
		}
		if *prefix == "" {
			return fmt.Errorf("invalid value for --prefix: %w", batch.ErrEmptyPrefix)
		}
		return nil
	}
}

// runBatchCommand runs a create or delete batch against the configured backend
func runBatchCommand(ctx context.Context, batchConfig *BatchConfig, out io.Writer) error {
	if batchConfig.Interactive {
		confirmed, err := runBatchInteractive(batchConfig)
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	if batchConfig.DryRun {
		return printBatchDryRun(out, batchConfig)
	}

	store, err := newStore(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", describeTarget(cfg), err)
	}

	reporter := progress.New(progressOut, batchConfig.Count)
	_, err = batch.New(store, reporter, log).Run(ctx, batchConfig.Request())
	return err
}

// printBatchDryRun shows what a run would do
func printBatchDryRun(out io.Writer, batchConfig *BatchConfig) error {
	if err := batchConfig.Request().Validate(); err != nil {
		return err
	}
	if cfg == nil {
		return errors.New("configuration not resolved")
	}

	fmt.Fprintln(out, "\n=== DRY RUN - No changes made ===")
	fmt.Fprintf(out, "Would %s %d secrets\n", batchConfig.verb(), batchConfig.Count)
	fmt.Fprintf(out, "  Target:  %s\n", describeTarget(cfg))

	if batchConfig.Count <= maxDryRunNames {
		for i, name := range batch.Names(batchConfig.Prefix, batchConfig.Count) {
			line := "  " + name
			if batchConfig.Operation == batch.Create {
				line += " = " + batch.Payload(uint64(i+1))
			}
			fmt.Fprintln(out, line)
		}
		return nil
	}

	fmt.Fprintf(out, "  Names:   %s .. %s\n",
		batch.ItemName(batchConfig.Prefix, 1),
		batch.ItemName(batchConfig.Prefix, batchConfig.Count))
	return nil
}
