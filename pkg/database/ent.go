package database

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"

	"github.com/Alijeyrad/hospital_records/config"
	"github.com/Alijeyrad/hospital_records/internal/repo"
	hospitalschema "github.com/Alijeyrad/hospital_records/internal/schema"
)

// NewEntClient creates a new repo client from central config
func NewEntClient(cfg config.DatabaseConfig) (*repo.Client, error) {
	return NewEntClientFromConfig(FromCentralConfig(cfg))
}

// NewEntClientFromConfig creates a new repo client from package Config
func NewEntClientFromConfig(cfg Config) (*repo.Client, error) {
	db, err := openSQLDB(cfg)
	if err != nil {
		return nil, err
	}

	drv := entsql.OpenDB(cfg.Dialect(), db)

	opts := []repo.Option{}
	if cfg.EnableLogging {
		opts = append(opts, repo.WithQueryLog(cfg.SlowQueryThreshold()))
	}

	return repo.NewClient(drv, opts...), nil
}

// MigrateEnt creates or upgrades every hospital table.
func MigrateEnt(ctx context.Context, client *repo.Client) error {
	m, err := schema.NewMigrate(client.Driver())
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := m.Create(ctx, hospitalschema.Tables...); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}
