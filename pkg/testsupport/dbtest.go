package testsupport

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-media-sync/internal/migrations"
)

// NewSQLiteMemoryDB opens a shared in-memory sqlite database named name.
// Databases with different names are isolated from each other.
func NewSQLiteMemoryDB(name string) (*sql.DB, error) {
	name = strings.NewReplacer("/", "_", " ", "_").Replace(strings.TrimSpace(name))
	if name == "" {
		name = "mediasync"
	}
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// NewBunDB returns a sqlite backed Bun database private to the test with
// every module table created.
func NewBunDB(t testing.TB) *bun.DB {
	t.Helper()

	sqlDB, err := NewSQLiteMemoryDB(t.Name())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db := bun.NewDB(sqlDB, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := migrations.Ensure(ctx, db); err != nil {
		t.Fatalf("ensure tables: %v", err)
	}
	return db
}
