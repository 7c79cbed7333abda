package mediasync_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	mediasync "github.com/goliatone/go-media-sync"
)

func TestModuleCascadesThroughAssetStore(t *testing.T) {
	ctx := context.Background()
	module, err := mediasync.New(mediasync.DefaultConfig())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	t.Cleanup(func() { module.Close() })

	ids := map[string]string{}
	for _, locale := range []string{"en", "fr", "es"} {
		asset, err := module.Assets().Create(ctx, &mediasync.Asset{Name: "hero-" + locale, MimeType: "image/png", Locale: locale})
		if err != nil {
			t.Fatalf("create %s: %v", locale, err)
		}
		if err := module.Translations().Assign(ctx, "hero", locale, asset.ID.String()); err != nil {
			t.Fatalf("assign %s: %v", locale, err)
		}
		ids[locale] = asset.ID.String()
	}

	if err := module.Assets().Delete(ctx, ids["fr"], true); err != nil {
		t.Fatalf("delete: %v", err)
	}

	entries, err := module.Logs().ReadAll(ctx)
	if err != nil {
		t.Fatalf("read logs: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].SubjectAssetID != ids["es"] || entries[1].SubjectAssetID != ids["en"] {
		t.Fatalf("expected es then en, got %+v", entries)
	}
	want := "Successfully deleted translation " + ids["en"] + " (original media: " + ids["fr"] + ")"
	if entries[1].Message() != want {
		t.Fatalf("unexpected message %q", entries[1].Message())
	}
}

func TestModuleUnknownAssetLogsInvalidMediaType(t *testing.T) {
	module, err := mediasync.New(mediasync.DefaultConfig())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	t.Cleanup(func() { module.Close() })

	module.Hook()(context.Background(), "missing")

	result := module.Engine().OnAssetDeleted(context.Background(), "missing")
	if !result.Skipped() {
		t.Fatalf("expected skip, got %+v", result)
	}

	entries, err := module.Logs().ReadAll(context.Background())
	if err != nil {
		t.Fatalf("read logs: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected one entry per call, got %d", len(entries))
	}
	if entries[0].Message() != "Error with media ID missing: invalid media type" {
		t.Fatalf("unexpected message %q", entries[0].Message())
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := mediasync.DefaultConfig()
	cfg.Storage.Provider = "dynamo"

	if _, err := mediasync.New(cfg); !errors.Is(err, mediasync.ErrStorageProviderUnknown) {
		t.Fatalf("expected ErrStorageProviderUnknown, got %v", err)
	}
}

func TestConfigValidateNotificationsRequireRecipients(t *testing.T) {
	cfg := mediasync.DefaultConfig()
	cfg.Notifications.Enabled = true

	if err := cfg.Validate(); !errors.Is(err, mediasync.ErrNotificationRecipientsRequired) {
		t.Fatalf("expected ErrNotificationRecipientsRequired, got %v", err)
	}
}

func TestLoadConfigReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mediasync.yaml")
	data := []byte("site_name: newsroom\nlog:\n  capacity: 25\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := mediasync.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.SiteName != "newsroom" || cfg.Log.Capacity != 25 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Log.Key != mediasync.DefaultConfig().Log.Key {
		t.Fatalf("expected default log key to survive, got %q", cfg.Log.Key)
	}
}
