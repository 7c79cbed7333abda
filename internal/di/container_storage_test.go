package di

import (
	"testing"

	"github.com/uptrace/bun/dialect"

	"github.com/goliatone/go-media-sync/internal/runtimeconfig"
	"github.com/goliatone/go-media-sync/internal/synclog"
	"github.com/goliatone/go-media-sync/pkg/testsupport"
)

func TestDialectForSelectsBunDialect(t *testing.T) {
	cases := map[string]dialect.Name{
		"sqlite":     dialect.SQLite,
		"":           dialect.SQLite,
		"postgres":   dialect.PG,
		" Postgres ": dialect.PG,
	}
	for input, want := range cases {
		if got := dialectFor(input).Name(); got != want {
			t.Fatalf("dialectFor(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestDriverNameMatchesRegisteredDrivers(t *testing.T) {
	if got := driverName("postgres"); got != "postgres" {
		t.Fatalf("expected lib/pq driver name, got %q", got)
	}
	if got := driverName("sqlite"); got != "sqlite3" {
		t.Fatalf("expected go-sqlite3 driver name, got %q", got)
	}
}

func TestWithSQLDBWrapsInjectedHandle(t *testing.T) {
	sqlDB, err := testsupport.NewSQLiteMemoryDB("di_injected_sql")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "bun"

	container, err := NewContainer(cfg, WithSQLDB(sqlDB))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if container.ownsDB {
		t.Fatal("expected injected database to stay owned by the caller")
	}
	if _, ok := container.logStore.(*synclog.BunStore); !ok {
		t.Fatalf("expected bun log store, got %T", container.logStore)
	}
	if err := container.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := sqlDB.Ping(); err != nil {
		t.Fatalf("expected injected database to remain open, got %v", err)
	}
}

func TestWithBunDBSkipsDSN(t *testing.T) {
	db := testsupport.NewBunDB(t)

	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "bun"
	cfg.Storage.DSN = "this-dsn-is-never-opened"

	container, err := NewContainer(cfg, WithBunDB(db))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	t.Cleanup(func() { container.Close() })

	if container.BunDB() != db {
		t.Fatal("expected injected bun database")
	}
}
