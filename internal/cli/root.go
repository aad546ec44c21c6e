package cli

import (
	"context"
	"fmt"

	"github.com/stridex/stridex/internal/config"
	"github.com/stridex/stridex/internal/random"
	"github.com/stridex/stridex/internal/session"
	"github.com/stridex/stridex/internal/storage"
)

// Context carries the loaded configuration and storage into every command
type Context struct {
	Config *config.Config
	Store  storage.Provider
	// Seed makes generated history reproducible. Negative means unseeded.
	Seed int64
}

// NewContext builds and initializes the storage backend named in cfg
func NewContext(ctx context.Context, cfg *config.Config, seed int64) (*Context, error) {
	store, err := storage.New(cfg.Storage)
	if err != nil {
		return nil, err
	}
	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize %s storage: %w", store.Name(), err)
	}
	return &Context{Config: cfg, Store: store, Seed: seed}, nil
}

func (c *Context) Close() error {
	return c.Store.Close()
}

// Manager builds the session manager over the context's store
func (c *Context) Manager(opts ...session.Option) *session.Manager {
	base := []session.Option{session.WithBalance(c.Config.Balance)}
	if c.Seed >= 0 {
		base = append(base, session.WithSource(random.New(uint64(c.Seed))))
	}
	return session.NewManager(c.Store, append(base, opts...)...)
}
