package cmd

import (
	"github.com/spf13/cobra"

	"github.com/stuttgart-things/secret-populator/internal/batch"
	"github.com/stuttgart-things/secret-populator/internal/config"
)

var (
	createCount       uint64
	createPrefix      string
	createDryRun      bool
	createInteractive bool
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a numbered batch of secrets",
	Long: `Creates secrets <prefix>-1 .. <prefix>-<count> with the values secret-value-1 .. secret-value-<count>.
Secrets that already exist are reported and skipped; any other error stops the run.`,
	Args:    cobra.NoArgs,
	PreRunE: batchPreRun(&createCount, &createPrefix),
	RunE:    runCreate,
}

func init() {
	createCmd.Flags().Uint64VarP(&createCount, "count", "c", config.DefaultCount, "Number of secrets to create (at least 1)")
	createCmd.Flags().StringVarP(&createPrefix, "prefix", "p", config.DefaultPrefix, "Name prefix; secrets are named <prefix>-<n>")
	createCmd.Flags().BoolVar(&createDryRun, "dry-run", false, "Show what would be created without calling the backend")
	createCmd.Flags().BoolVarP(&createInteractive, "interactive", "i", false, "Review count and prefix in a form before running")

	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	batchConfig := &BatchConfig{
		Operation:   batch.Create,
		Count:       createCount,
		Prefix:      createPrefix,
		DryRun:      createDryRun,
		Interactive: createInteractive,
	}

	return runBatchCommand(cmd.Context(), batchConfig, cmd.OutOrStdout())
}
