package storage

import (
	"fmt"

	"github.com/stridex/stridex/internal/config"
	"github.com/stridex/stridex/internal/storage/memory"
	"github.com/stridex/stridex/internal/storage/sqlite"
)

// New picks the backend named in cfg. The caller still has to Init it.
func New(cfg config.StorageConfig) (Provider, error) {
	switch cfg.Backend {
	case "", config.BackendMemory:
		return memory.NewStore(), nil
	case config.BackendSQLite:
		return sqlite.NewStore(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
