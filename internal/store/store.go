// Package store defines how built port guides are persisted.
package store

import (
	"context"
	"errors"

	"github.com/limitlesscruises/portguide/internal/portguide"
)

// ErrNotFound is returned when no guide exists for a slug.
var ErrNotFound = errors.New("store: port not found")

// ErrSlugRequired is returned when a guide without a slug is upserted.
var ErrSlugRequired = errors.New("store: slug is required")

// Action values reported by an upsert.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
)

// Result describes the outcome of an upsert.
type Result struct {
	Port    portguide.Summary
	Created bool
}

// Action returns "created" or "updated".
func (r Result) Action() string {
	if r.Created {
		return ActionCreated
	}
	return ActionUpdated
}

// Store persists port guides keyed by slug. Upsert overwrites an existing
// guide with the same slug.
type Store interface {
	Upsert(ctx context.Context, g *portguide.PortGuide) (Result, error)
	Get(ctx context.Context, slug string) (*portguide.PortGuide, error)
	List(ctx context.Context) ([]portguide.Summary, error)
}
