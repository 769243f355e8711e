// Package backend opens the store.Store selected by configuration.
package backend

import (
	"context"
	"fmt"

	"github.com/limitlesscruises/portguide/internal/config"
	"github.com/limitlesscruises/portguide/internal/postgrest"
	"github.com/limitlesscruises/portguide/internal/store"
	"github.com/limitlesscruises/portguide/internal/store/bunstore"
)

// Open returns the configured store and a function that releases it. SQL
// stores have their schema created on open.
func Open(ctx context.Context, cfg config.Config) (store.Store, func(), error) {
	if err := cfg.ValidateStore(); err != nil {
		return nil, nil, err
	}

	switch cfg.StoreDriver {
	case config.StorePostgREST:
		c := postgrest.NewClient(cfg.PostgRESTURL, cfg.PostgRESTAPIKey, cfg.PostgRESTTable)
		return c, c.Close, nil
	default:
		s, err := bunstore.Open(cfg.StoreDriver, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := s.CreateSchema(ctx); err != nil {
			_ = s.Close()
			return nil, nil, fmt.Errorf("prepare %s store: %w", cfg.StoreDriver, err)
		}
		return s, func() { _ = s.Close() }, nil
	}
}
