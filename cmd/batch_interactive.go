package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/stuttgart-things/secret-populator/internal/batch"
)

// runBatchInteractive lets the user review count and prefix and confirm the run.
// It updates batchConfig in place and reports whether the user confirmed.
func runBatchInteractive(batchConfig *BatchConfig) (bool, error) {
	fmt.Println(logo)
	fmt.Println(progressStyle.Render(fmt.Sprintf("Target: %s", describeTarget(cfg))))

	countStr := strconv.FormatUint(batchConfig.Count, 10)
	prefix := batchConfig.Prefix

	paramsForm := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Prefix").
				Description("Secrets are named <prefix>-<n>").
				Value(&prefix).
				Validate(func(s string) error {
					if s == "" {
						return batch.ErrEmptyPrefix
					}
					return nil
				}),
			huh.NewInput().
				Title("Count").
				Description("Number of secrets").
				Value(&countStr).
				Validate(validateCount),
		),
	)

	if err := paramsForm.Run(); err != nil {
		return false, fmt.Errorf("parameter form: %w", err)
	}

	count, err := parseCount(countStr)
	if err != nil {
		return false, err
	}
	batchConfig.Prefix = prefix
	batchConfig.Count = count

	description := fmt.Sprintf("%s .. %s",
		batch.ItemName(prefix, 1), batch.ItemName(prefix, count))
	if batchConfig.Operation == batch.Delete {
		description += "\nSecrets are deleted immediately, without a recovery window."
	}

	var confirm bool
	confirmForm := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("%s %d secrets?", capitalize(batchConfig.verb()), count)).
				Description(description).
				Affirmative(fmt.Sprintf("Yes, %s", batchConfig.verb())).
				Negative("Cancel").
				Value(&confirm),
		),
	)

	if err := confirmForm.Run(); err != nil {
		return false, fmt.Errorf("confirmation form: %w", err)
	}

	return confirm, nil
}

func parseCount(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("count must be a positive integer: %q", s)
	}
	if n == 0 {
		return 0, batch.ErrInvalidCount
	}
	return n, nil
}

func validateCount(s string) error {
	_, err := parseCount(s)
	return err
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
