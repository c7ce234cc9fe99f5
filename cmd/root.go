package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/stuttgart-things/secret-populator/internal/config"
	"github.com/stuttgart-things/secret-populator/internal/logging"
)

var (
	configPath  string
	endpointURL string
	backend     string
	region      string
	profile     string
	namespace   string
	kubeconfig  string
	logLevel    string

	// Resolved in PersistentPreRunE
	cfg *config.Config
	log *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "secret-populator",
	Short: "Manage numbered batches of secrets",
	Long: `secret-populator creates or deletes a numbered sequence of secrets (<prefix>-1 .. <prefix>-N)
in AWS Secrets Manager or as Kubernetes Secrets.`,
	SilenceErrors:     true,
	PersistentPreRunE: resolveConfig,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(logo)
		_ = cmd.Usage()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Config file (default: $SECRET_POPULATOR_CONFIG or <user config dir>/secret-populator/config.yaml)")
	flags.StringVar(&endpointURL, "endpoint-url", "", "Override the secret service endpoint, e.g. http://localhost:4566 (or $SECRET_POPULATOR_ENDPOINT_URL)")
	flags.StringVar(&backend, "backend", config.DefaultBackend, "Secret backend (aws, kubernetes)")
	flags.StringVar(&region, "region", "", "AWS region (default: from AWS config)")
	flags.StringVar(&profile, "profile", "", "AWS shared config profile")
	flags.StringVar(&namespace, "namespace", config.DefaultNamespace, "Kubernetes namespace for the kubernetes backend")
	flags.StringVar(&kubeconfig, "kubeconfig", "", "Path to kubeconfig for the kubernetes backend")
	flags.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
}

// resolveConfig merges config file, environment and explicitly set flags
func resolveConfig(cmd *cobra.Command, args []string) error {
	resolved, err := config.Resolve(configPath, os.Getenv)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("endpoint-url") {
		resolved.EndpointURL = endpointURL
	}
	if flags.Changed("backend") {
		resolved.Backend = backend
	}
	if flags.Changed("region") {
		resolved.Region = region
	}
	if flags.Changed("profile") {
		resolved.Profile = profile
	}
	if flags.Changed("namespace") {
		resolved.Namespace = namespace
	}
	if flags.Changed("kubeconfig") {
		resolved.Kubeconfig = kubeconfig
	}
	if flags.Changed("log-level") {
		resolved.LogLevel = logLevel
	}

	if err := resolved.Validate(); err != nil {
		return err
	}

	logger, err := logging.Setup(resolved.LogLevel, os.Stderr)
	if err != nil {
		return err
	}

	cfg = resolved
	log = logger
	return nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		os.Exit(1)
	}
}
