package migrations_test

import (
	"context"
	"errors"
	"testing"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-media-sync/internal/migrations"
	"github.com/goliatone/go-media-sync/pkg/testsupport"
)

func TestDefaultRegistersEveryTable(t *testing.T) {
	if got := migrations.Default().Len(); got != 3 {
		t.Fatalf("expected 3 tables, got %d", got)
	}
}

func TestRegisterRejectsNilModel(t *testing.T) {
	if err := migrations.NewRegistry().Register(nil); !errors.Is(err, migrations.ErrModelRequired) {
		t.Fatalf("expected ErrModelRequired, got %v", err)
	}
}

func TestEnsureIsIdempotent(t *testing.T) {
	db := testsupport.NewBunDB(t)
	ctx := context.Background()

	if err := migrations.Ensure(ctx, db); err != nil {
		t.Fatalf("second ensure: %v", err)
	}

	var count int
	if err := db.NewSelect().
		ColumnExpr("COUNT(*)").
		TableExpr("sqlite_master").
		Where("type = 'table'").
		Where("name IN (?)", bun.In([]string{"media_sync_logs", "media_assets", "media_translations"})).
		Scan(ctx, &count); err != nil {
		t.Fatalf("count tables: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 tables, got %d", count)
	}
}
