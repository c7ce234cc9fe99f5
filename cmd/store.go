package cmd

import (
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/stuttgart-things/secret-populator/internal/config"
	"github.com/stuttgart-things/secret-populator/internal/logging"
	"github.com/stuttgart-things/secret-populator/internal/secretstore"
	"github.com/stuttgart-things/secret-populator/internal/secretstore/awssm"
	"github.com/stuttgart-things/secret-populator/internal/secretstore/kube"
)

// Replaceable in tests
var (
	newStore = openStore

	// progressOut receives the progress display
	progressOut io.Writer = os.Stderr
)

// openStore constructs the backend selected in c
func openStore(ctx context.Context, c *config.Config, logger logrus.FieldLogger) (secretstore.Store, error) {
	switch c.Backend {
	case config.BackendKubernetes:
		client, err := kube.New(kube.Options{
			Namespace:  c.Namespace,
			Kubeconfig: c.Kubeconfig,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		opts := awssm.Options{
			EndpointURL: c.EndpointURL,
			Region:      c.Region,
			Profile:     c.Profile,
		}
		if c.LogLevel == "debug" {
			opts.Logger = logging.SmithyLogger(logger)
		}
		client, err := awssm.New(ctx, opts)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}

// describeTarget names the backend for user-facing output
func describeTarget(c *config.Config) string {
	switch c.Backend {
	case config.BackendKubernetes:
		return "kubernetes namespace " + c.Namespace
	default:
		if c.EndpointURL != "" {
			return "AWS Secrets Manager at " + c.EndpointURL
		}
		return "AWS Secrets Manager"
	}
}
