package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/stuttgart-things/secret-populator/internal/config"
	"github.com/stuttgart-things/secret-populator/internal/secretstore"
)

var (
	listPrefix string
	listOutput string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List secrets of a batch",
	Long:  `Lists existing secrets named <prefix>-*, as a table or as JSON.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVarP(&listPrefix, "prefix", "p", config.DefaultPrefix, "Name prefix to list")
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "table", "Output format (table, json)")

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	if listOutput != "table" && listOutput != "json" {
		return fmt.Errorf("unknown output format %q (expected table or json)", listOutput)
	}
	cmd.SilenceUsage = true

	prefix := listPrefix
	if !cmd.Flags().Changed("prefix") {
		prefix = cfg.Prefix
	}

	store, err := newStore(cmd.Context(), cfg, log)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", describeTarget(cfg), err)
	}

	refs, err := store.List(cmd.Context(), prefix+"-")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(refs) == 0 {
		fmt.Fprintln(out, "No secrets found.")
		return nil
	}

	switch listOutput {
	case "json":
		return printJSON(out, refs)
	default:
		printTable(out, refs)
		return nil
	}
}

func printTable(out io.Writer, refs []secretstore.SecretRef) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCREATED")
	fmt.Fprintln(w, "----\t-------")

	for _, r := range refs {
		created := "-"
		if !r.CreatedAt.IsZero() {
			created = r.CreatedAt.UTC().Format(time.RFC3339)
		}
		fmt.Fprintf(w, "%s\t%s\n", r.Name, created)
	}

	w.Flush()
}

func printJSON(out io.Writer, refs []secretstore.SecretRef) error {
	data, err := json.MarshalIndent(refs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling JSON: %w", err)
	}
	fmt.Fprintln(out, string(data))
	return nil
}
