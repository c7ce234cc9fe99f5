package awssm

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/aws/smithy-go/logging"

	"github.com/stuttgart-things/secret-populator/internal/secretstore"
)

// API is the subset of the Secrets Manager client used by Client
type API interface {
	CreateSecret(ctx context.Context, params *secretsmanager.CreateSecretInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.CreateSecretOutput, error)
	DeleteSecret(ctx context.Context, params *secretsmanager.DeleteSecretInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.DeleteSecretOutput, error)
	ListSecrets(ctx context.Context, params *secretsmanager.ListSecretsInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.ListSecretsOutput, error)
}

// Options configures the AWS client
type Options struct {
	// EndpointURL overrides the service endpoint, e.g. for LocalStack.
	EndpointURL string
	Region      string
	Profile     string

	// Logger receives SDK request and retry logs when set.
	Logger logging.Logger
}

// Client stores secrets in AWS Secrets Manager
type Client struct {
	API API
}

var _ secretstore.Store = (*Client)(nil)

// New loads the default AWS configuration and creates a Client
func New(ctx context.Context, opts Options) (*Client, error) {
	var loadOpts []func(*config.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}
	if opts.Profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(opts.Profile))
	}
	if opts.Logger != nil {
		loadOpts = append(loadOpts,
			config.WithLogger(opts.Logger),
			config.WithClientLogMode(aws.LogRetries|aws.LogRequest),
		)
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	api := secretsmanager.NewFromConfig(cfg, func(o *secretsmanager.Options) {
		if opts.EndpointURL != "" {
			o.BaseEndpoint = aws.String(opts.EndpointURL)
		}
	})

	return NewWithAPI(api), nil
}

// NewWithAPI creates a Client around an existing API implementation
func NewWithAPI(api API) *Client {
	return &Client{API: api}
}

// Create creates the secret with a string value
func (c *Client) Create(ctx context.Context, name, value string) error {
	_, err := c.API.CreateSecret(ctx, &secretsmanager.CreateSecretInput{
		Name:         aws.String(name),
		SecretString: aws.String(value),
	})
	if err != nil {
		var exists *types.ResourceExistsException
		if errors.As(err, &exists) {
			return fmt.Errorf("%w: %w", secretstore.ErrAlreadyExists, err)
		}
		return err
	}
	return nil
}

// Delete force-deletes the secret, skipping the recovery window
func (c *Client) Delete(ctx context.Context, name string) error {
	_, err := c.API.DeleteSecret(ctx, &secretsmanager.DeleteSecretInput{
		SecretId:                   aws.String(name),
		ForceDeleteWithoutRecovery: aws.Bool(true),
	})
	if err != nil {
		var notFound *types.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return fmt.Errorf("%w: %w", secretstore.ErrNotFound, err)
		}
		return err
	}
	return nil
}

// List pages through ListSecrets with a name filter.
// The service matches the filter case-insensitively, so results are
// narrowed again to an exact prefix match.
func (c *Client) List(ctx context.Context, prefix string) ([]secretstore.SecretRef, error) {
	input := &secretsmanager.ListSecretsInput{}
	if prefix != "" {
		input.Filters = []types.Filter{{
			Key:    types.FilterNameStringTypeName,
			Values: []string{prefix},
		}}
	}

	var refs []secretstore.SecretRef
	paginator := secretsmanager.NewListSecretsPaginator(c.API, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing secrets: %w", err)
		}
		for _, entry := range page.SecretList {
			name := aws.ToString(entry.Name)
			if !strings.HasPrefix(name, prefix) {
				continue
			}
			refs = append(refs, secretstore.SecretRef{
				Name:      name,
				CreatedAt: aws.ToTime(entry.CreatedDate),
			})
		}
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}
