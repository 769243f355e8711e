// Package bunstore persists port guides in a SQL database through Bun.
package bunstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/limitlesscruises/portguide/internal/portguide"
	"github.com/limitlesscruises/portguide/internal/store"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Ensure Store implements store.Store at compile time.
var _ store.Store = (*Store)(nil)

// Store is a Bun-backed store.Store.
type Store struct {
	db *bun.DB
}

// New wraps an existing Bun database.
func New(db *bun.DB) *Store {
	return &Store{db: db}
}

// Open connects to the database for driver and dsn.
func Open(driver, dsn string) (*Store, error) {
	var db *bun.DB
	switch driver {
	case DriverSQLite:
		sqldb, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		db = bun.NewDB(sqldb, sqlitedialect.New())
	case DriverPostgres:
		sqldb, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		db = bun.NewDB(sqldb, pgdialect.New())
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
	return New(db), nil
}

// CreateSchema creates the ports table when it does not exist.
func (s *Store) CreateSchema(ctx context.Context) error {
	if _, err := s.db.NewCreateTable().Model((*portModel)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("create ports table: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Upsert inserts g, or overwrites the stored guide with the same slug.
func (s *Store) Upsert(ctx context.Context, g *portguide.PortGuide) (store.Result, error) {
	if g == nil || strings.TrimSpace(g.Slug) == "" {
		return store.Result{}, store.ErrSlugRequired
	}

	var existing portModel
	created := false
	err := s.db.NewSelect().Model(&existing).Where("slug = ?", g.Slug).Scan(ctx)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return store.Result{}, fmt.Errorf("lookup port %s: %w", g.Slug, err)
		}
		created = true
	}

	model := modelFromGuide(g)
	now := time.Now().UTC()
	model.UpdatedAt = now
	if created {
		model.ID = uuid.NewString()
		model.CreatedAt = now
	} else {
		model.ID = existing.ID
		model.CreatedAt = existing.CreatedAt
	}

	// The slug may have been inserted since the lookup. The insert resolves
	// that conflict and RETURNING yields the id that was kept.
	if _, err := s.db.NewInsert().
		Model(&model).
		On("CONFLICT (slug) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("region = EXCLUDED.region").
		Set("country = EXCLUDED.country").
		Set("status = EXCLUDED.status").
		Set("data = EXCLUDED.data").
		Set("updated_at = EXCLUDED.updated_at").
		Returning("id").
		Exec(ctx); err != nil {
		return store.Result{}, fmt.Errorf("upsert port %s: %w", g.Slug, err)
	}

	return store.Result{Port: model.summary(), Created: created}, nil
}

// Get returns the stored guide for slug.
func (s *Store) Get(ctx context.Context, slug string) (*portguide.PortGuide, error) {
	var model portModel
	err := s.db.NewSelect().Model(&model).Where("slug = ?", slug).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("get port %s: %w", slug, err)
	}
	g := model.Data
	return &g, nil
}

// List returns summaries of every stored guide ordered by name.
func (s *Store) List(ctx context.Context) ([]portguide.Summary, error) {
	var models []portModel
	err := s.db.NewSelect().
		Model(&models).
		Column("id", "slug", "name", "region", "country", "status").
		Order("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list ports: %w", err)
	}
	out := make([]portguide.Summary, len(models))
	for i := range models {
		out[i] = models[i].summary()
	}
	return out, nil
}

type portModel struct {
	bun.BaseModel `bun:"table:ports"`

	ID        string              `bun:"id,pk"`
	Slug      string              `bun:"slug,unique,notnull"`
	Name      string              `bun:"name,notnull"`
	Region    string              `bun:"region"`
	Country   string              `bun:"country"`
	Status    string              `bun:"status,notnull"`
	Data      portguide.PortGuide `bun:"data,type:jsonb,notnull"`
	CreatedAt time.Time           `bun:"created_at,notnull"`
	UpdatedAt time.Time           `bun:"updated_at,notnull"`
}

func modelFromGuide(g *portguide.PortGuide) portModel {
	return portModel{
		Slug:    g.Slug,
		Name:    g.Name,
		Region:  g.Region,
		Country: g.Country,
		Status:  g.Status,
		Data:    *g,
	}
}

func (m *portModel) summary() portguide.Summary {
	return portguide.Summary{
		ID:      m.ID,
		Slug:    m.Slug,
		Name:    m.Name,
		Region:  m.Region,
		Country: m.Country,
		Status:  m.Status,
	}
}
