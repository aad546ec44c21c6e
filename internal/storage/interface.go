// Package storage defines where session accounts live. Every backend is
// transient: nothing survives the process.
package storage

import (
	"context"

	"github.com/stridex/stridex/internal/models"
)

type Provider interface {
	// Lifecycle
	Init(ctx context.Context) error
	Close() error

	// Accounts. Implementations store and return deep copies.
	SaveAccount(ctx context.Context, a models.Account) error
	GetAccount(ctx context.Context, id string) (models.Account, error)
	ListUsers(ctx context.Context) ([]models.User, error)

	// Utils
	Name() string
}
