package secretstore

import (
	"context"
	"errors"
	"time"
)

// Sentinel conditions a backend maps its service-specific errors to.
// Backends wrap the original cause so it stays inspectable.
var (
	ErrAlreadyExists = errors.New("secret already exists")
	ErrNotFound      = errors.New("secret not found")
)

// Store is the remote secret service used by the batch executor
type Store interface {
	// Create writes a new secret. It returns an error wrapping
	// ErrAlreadyExists if a secret with that name is already present.
	Create(ctx context.Context, name, value string) error

	// Delete removes a secret immediately, without a recovery window.
	// It returns an error wrapping ErrNotFound if there is nothing to delete.
	Delete(ctx context.Context, name string) error

	// List returns the secrets whose name starts with prefix, sorted by name.
	List(ctx context.Context, prefix string) ([]SecretRef, error)
}

// SecretRef describes an existing secret as returned by List
type SecretRef struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}
