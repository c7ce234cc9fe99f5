package kube

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	v1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	"github.com/stuttgart-things/secret-populator/internal/secretstore"
)

const (
	// ValueKey is the data key holding the secret value.
	ValueKey = "value"

	ManagedByLabel = "app.kubernetes.io/managed-by"
	ManagedByValue = "secret-populator"
)

// Replaceable in tests
var (
	inClusterConfig      = rest.InClusterConfig
	buildConfigFromFlags = clientcmd.BuildConfigFromFlags
	newForConfig         = func(c *rest.Config) (kubernetes.Interface, error) { return kubernetes.NewForConfig(c) }
)

// Options configures the Kubernetes client
type Options struct {
	Namespace  string
	Kubeconfig string
}

// Client stores secrets as Opaque Kubernetes Secrets in one namespace
type Client struct {
	ClientSet kubernetes.Interface
	Namespace string
}

var _ secretstore.Store = (*Client)(nil)

// New builds a clientset from an explicit kubeconfig, the in-cluster
// config, or $HOME/.kube/config, in that order.
func New(opts Options) (*Client, error) {
	config, err := restConfig(opts.Kubeconfig)
	if err != nil {
		return nil, err
	}

	clientset, err := newForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("creating kubernetes client: %w", err)
	}

	return NewWithClientset(clientset, opts.Namespace), nil
}

// NewWithClientset creates a Client around an existing clientset
func NewWithClientset(clientset kubernetes.Interface, namespace string) *Client {
	if namespace == "" {
		namespace = metav1.NamespaceDefault
	}
	return &Client{ClientSet: clientset, Namespace: namespace}
}

func restConfig(kubeconfig string) (*rest.Config, error) {
	if kubeconfig != "" {
		config, err := buildConfigFromFlags("", kubeconfig)
		if err != nil {
			return nil, fmt.Errorf("loading kubeconfig %s: %w", kubeconfig, err)
		}
		return config, nil
	}

	config, err := inClusterConfig()
	if err == nil {
		return config, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolving home directory: %w", err)
	}
	config, err = buildConfigFromFlags("", filepath.Join(home, ".kube", "config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
	}
	return config, nil
}

// Create creates an Opaque secret holding value under ValueKey
func (c *Client) Create(ctx context.Context, name, value string) error {
	secret := &v1.Secret{
		ObjectMeta: metav1.ObjectMeta{
			Name:   name,
			Labels: map[string]string{ManagedByLabel: ManagedByValue},
		},
		StringData: map[string]string{ValueKey: value},
		Type:       v1.SecretTypeOpaque,
	}

	_, err := c.ClientSet.CoreV1().Secrets(c.Namespace).Create(ctx, secret, metav1.CreateOptions{})
	if err != nil {
		if apierrors.IsAlreadyExists(err) {
			return fmt.Errorf("%w: %w", secretstore.ErrAlreadyExists, err)
		}
		return err
	}
	return nil
}

// Delete removes the secret with a zero grace period
func (c *Client) Delete(ctx context.Context, name string) error {
	grace := int64(0)
	err := c.ClientSet.CoreV1().Secrets(c.Namespace).Delete(ctx, name, metav1.DeleteOptions{
		GracePeriodSeconds: &grace,
	})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return fmt.Errorf("%w: %w", secretstore.ErrNotFound, err)
		}
		return err
	}
	return nil
}

// List returns the secrets in the namespace whose name starts with prefix
func (c *Client) List(ctx context.Context, prefix string) ([]secretstore.SecretRef, error) {
	list, err := c.ClientSet.CoreV1().Secrets(c.Namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing secrets in %s: %w", c.Namespace, err)
	}

	var refs []secretstore.SecretRef
	for _, s := range list.Items {
		if !strings.HasPrefix(s.Name, prefix) {
			continue
		}
		refs = append(refs, secretstore.SecretRef{
			Name:      s.Name,
			CreatedAt: s.CreationTimestamp.Time,
		})
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}
