package synclog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/goliatone/go-media-sync/internal/synclog"
)

func newRedisClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return server, client
}

func TestRedisStoreValidatesArguments(t *testing.T) {
	_, client := newRedisClient(t)
	if _, err := synclog.NewRedisStore(client, "", 10); !errors.Is(err, synclog.ErrKeyRequired) {
		t.Fatalf("expected ErrKeyRequired, got %v", err)
	}
	if _, err := synclog.NewRedisStore(client, "logs", 0); !errors.Is(err, synclog.ErrInvalidCapacity) {
		t.Fatalf("expected ErrInvalidCapacity, got %v", err)
	}
}

func TestRedisStoreKeepsNewestEntries(t *testing.T) {
	server, client := newRedisClient(t)
	store, err := synclog.NewRedisStore(client, "media_sync_delete_logs", synclog.DefaultCapacity)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()
	for i := 1; i <= 150; i++ {
		if err := store.Append(ctx, attempt(i)); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	entries, err := store.ReadAll(ctx)
	if err != nil {
		t.Fatalf("read all: %v", err)
	}
	if len(entries) != 100 {
		t.Fatalf("expected 100 entries, got %d", len(entries))
	}
	if entries[0].SubjectAssetID != "asset-150" || entries[99].SubjectAssetID != "asset-051" {
		t.Fatalf("unexpected window %s..%s", entries[0].SubjectAssetID, entries[99].SubjectAssetID)
	}
	list, err := server.List("media_sync_delete_logs")
	if err != nil {
		t.Fatalf("inspect list: %v", err)
	}
	if len(list) != 100 {
		t.Fatalf("expected list trimmed to 100, got %d", len(list))
	}
}

func TestRedisStoreRoundTripsFailure(t *testing.T) {
	_, client := newRedisClient(t)
	store, _ := synclog.NewRedisStore(client, "logs", 5)
	ctx := context.Background()

	failed := attempt(7)
	failed.Outcome = synclog.Failure("not found")
	if err := store.Append(ctx, failed); err != nil {
		t.Fatalf("append: %v", err)
	}
	entries, err := store.ReadAll(ctx)
	if err != nil {
		t.Fatalf("read all: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != failed.ID || entries[0].Outcome != failed.Outcome || !entries[0].Timestamp.Equal(failed.Timestamp) {
		t.Fatalf("round trip mismatch: %+v", entries)
	}
}

func TestRedisStoreReportsServerErrors(t *testing.T) {
	server, client := newRedisClient(t)
	store, _ := synclog.NewRedisStore(client, "logs", 5)
	server.Close()

	if err := store.Append(context.Background(), attempt(1)); err == nil {
		t.Fatal("expected append error when server is down")
	}
}
