package cmd

import (
	"github.com/spf13/cobra"

	"github.com/stuttgart-things/secret-populator/internal/batch"
	"github.com/stuttgart-things/secret-populator/internal/config"
)

var (
	deleteCount       uint64
	deletePrefix      string
	deleteDryRun      bool
	deleteInteractive bool
)

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a numbered batch of secrets",
	Long: `Deletes secrets <prefix>-1 .. <prefix>-<count> immediately, without a recovery window.
Secrets that do not exist are reported and skipped; any other error stops the run.`,
	Args:    cobra.NoArgs,
	PreRunE: batchPreRun(&deleteCount, &deletePrefix),
	RunE:    runDelete,
}

func init() {
	deleteCmd.Flags().Uint64VarP(&deleteCount, "count", "c", config.DefaultCount, "Number of secrets to delete (at least 1)")
	deleteCmd.Flags().StringVarP(&deletePrefix, "prefix", "p", config.DefaultPrefix, "Name prefix; secrets are named <prefix>-<n>")
	deleteCmd.Flags().BoolVar(&deleteDryRun, "dry-run", false, "Show what would be deleted without calling the backend")
	deleteCmd.Flags().BoolVarP(&deleteInteractive, "interactive", "i", false, "Review count and prefix in a form before running")

	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	batchConfig := &BatchConfig{
		Operation:   batch.Delete,
		Count:       deleteCount,
		Prefix:      deletePrefix,
		DryRun:      deleteDryRun,
		Interactive: deleteInteractive,
	}

	return runBatchCommand(cmd.Context(), batchConfig, cmd.OutOrStdout())
}
