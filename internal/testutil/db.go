// Package testutil builds throwaway databases for package tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Alijeyrad/hospital_records/internal/repo"
	"github.com/Alijeyrad/hospital_records/pkg/database"
)

// NewClient opens a migrated SQLite database in a temp dir. The client is
// closed when the test ends.
func NewClient(t testing.TB) *repo.Client {
	t.Helper()

	cfg := database.DefaultConfig()
	cfg.Driver = "sqlite3"
	cfg.Path = filepath.Join(t.TempDir(), "hospital.db")

	client, err := database.NewEntClientFromConfig(cfg)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	if err := database.MigrateEnt(context.Background(), client); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return client
}
