// Package dbtest opens isolated, migrated sqlite databases for tests.
package dbtest

import (
	"context"
	"testing"

	"order-portal/internal/core/database"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
)

// New returns a migrated in-memory database private to t.
func New(t *testing.T) *database.Client {
	t.Helper()

	dsn := "file:portal_" + uuid.NewString() + "?mode=memory&cache=shared"
	client, err := database.Open(sqlite.Open(dsn))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := client.DB(context.Background()).DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	// One connection keeps the shared in-memory database alive and avoids
	// sqlite table locks between pooled connections.
	sqlDB.SetMaxOpenConns(1)

	if err := client.AutoMigrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() { _ = client.Close() })
	return client
}
