package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	mediasync "github.com/goliatone/go-media-sync"
	"github.com/goliatone/go-media-sync/cmd/mediasync/internal/bootstrap"
	mediasynccmd "github.com/goliatone/go-media-sync/internal/commands/mediasync"
	"github.com/goliatone/go-media-sync/internal/synclog"
)

func execute(t *testing.T, build func(bootstrap.Options) (*bootstrap.Module, error), args ...string) (string, error) {
	t.Helper()
	if build == nil {
		build = bootstrap.BuildModule
	}
	cmd := newRootCommand(build)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	if cmd.Use != "mediasync" {
		t.Fatalf("expected use mediasync, got %q", cmd.Use)
	}
	for _, name := range []string{"demo", "logs", "sync-delete"} {
		sub, _, err := cmd.Find([]string{name})
		if err != nil || sub == nil || sub.Name() != name {
			t.Fatalf("expected %s subcommand, got %v (%v)", name, sub, err)
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	configFlag := cmd.PersistentFlags().Lookup("config")
	if configFlag == nil || configFlag.Shorthand != "c" {
		t.Fatalf("expected config flag with -c shorthand, got %+v", configFlag)
	}
	formatFlag := cmd.PersistentFlags().Lookup("format")
	if formatFlag == nil || formatFlag.DefValue != "text" {
		t.Fatalf("expected format flag defaulting to text, got %+v", formatFlag)
	}
	if cmd.PersistentFlags().Lookup("dsn") == nil {
		t.Fatal("expected dsn flag")
	}
}

func TestInvalidFormatIsCommandError(t *testing.T) {
	_, err := execute(t, nil, "logs", "--format", "xml")
	if got := GetExitCode(err); got != ExitCommandError {
		t.Fatalf("expected exit code %d, got %d (%v)", ExitCommandError, got, err)
	}
}

func TestDemoPrintsCascade(t *testing.T) {
	out, err := execute(t, nil, "demo")
	if err != nil {
		t.Fatalf("demo: %v", err)
	}
	if strings.Count(out, "Successfully deleted translation") != 2 {
		t.Fatalf("expected two successful deletions:\n%s", out)
	}
	if !strings.Contains(out, "media: asset not found") {
		t.Fatalf("expected missing translation failure:\n%s", out)
	}
}

func TestDemoJSONOutput(t *testing.T) {
	out, err := execute(t, nil, "demo", "--format", "json", "--locales", "en,fr", "--include-missing=false")
	if err != nil {
		t.Fatalf("demo: %v", err)
	}
	var entries []synclog.Attempt
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(entries) != 1 || entries[0].Outcome.Failed() {
		t.Fatalf("expected one success, got %+v", entries)
	}
}

func TestDemoRequiresTwoLocales(t *testing.T) {
	_, err := execute(t, nil, "demo", "--locales", "en")
	if got := GetExitCode(err); got != ExitCommandError {
		t.Fatalf("expected exit code %d, got %d (%v)", ExitCommandError, got, err)
	}
}

func TestLogsOnEmptyStore(t *testing.T) {
	out, err := execute(t, nil, "logs")
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	if !strings.Contains(out, "no sync attempts recorded") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestBadConfigIsCommandError(t *testing.T) {
	_, err := execute(t, nil, "logs", "--config", filepath.Join(t.TempDir(), "missing.toml"))
	if got := GetExitCode(err); got != ExitCommandError {
		t.Fatalf("expected exit code %d, got %d (%v)", ExitCommandError, got, err)
	}
}

func TestSyncDeleteUnknownAssetIsNoop(t *testing.T) {
	out, err := execute(t, nil, "sync-delete", "ghost")
	if err != nil {
		t.Fatalf("sync-delete: %v", err)
	}
	if !strings.Contains(out, "no sync attempts recorded") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestSyncDeleteRemovesTranslationsOfMissingAsset(t *testing.T) {
	trigger := uuid.NewString()
	var sibling string
	build := func(opts bootstrap.Options) (*bootstrap.Module, error) {
		resources, err := bootstrap.BuildModule(opts)
		if err != nil {
			return nil, err
		}
		ctx := context.Background()
		module := resources.Module
		asset, err := module.Assets().Create(ctx, &mediasync.Asset{Name: "b.jpg", MimeType: "image/jpeg"})
		if err != nil {
			return nil, err
		}
		sibling = asset.ID.String()
		if err := module.Translations().Assign(ctx, "g", "en", trigger); err != nil {
			return nil, err
		}
		if err := module.Translations().Assign(ctx, "g", "fr", sibling); err != nil {
			return nil, err
		}
		return resources, nil
	}

	out, err := execute(t, build, "sync-delete", trigger)
	if err != nil {
		t.Fatalf("sync-delete: %v", err)
	}
	want := "Successfully deleted translation " + sibling + " (original media: " + trigger + ")"
	if !strings.Contains(out, want) {
		t.Fatalf("expected %q in output:\n%s", want, out)
	}
}

func TestSyncDeleteIncompleteCascadeIsFailure(t *testing.T) {
	trigger := uuid.New()
	build := func(opts bootstrap.Options) (*bootstrap.Module, error) {
		resources, err := bootstrap.BuildModule(opts)
		if err != nil {
			return nil, err
		}
		ctx := context.Background()
		module := resources.Module
		if _, err := module.Assets().Create(ctx, &mediasync.Asset{ID: trigger, Name: "a.jpg", MimeType: "image/jpeg"}); err != nil {
			return nil, err
		}
		if err := module.Translations().Assign(ctx, "g", "en", trigger.String()); err != nil {
			return nil, err
		}
		if err := module.Translations().Assign(ctx, "g", "fr", uuid.NewString()); err != nil {
			return nil, err
		}
		return resources, nil
	}

	out, err := execute(t, build, "sync-delete", trigger.String())
	if got := GetExitCode(err); got != ExitFailure {
		t.Fatalf("expected exit code %d, got %d (%v)", ExitFailure, got, err)
	}
	if !errors.Is(err, mediasynccmd.ErrCascadeIncomplete) {
		t.Fatalf("expected cascade incomplete error, got %v", err)
	}
	if !strings.Contains(out, "media: asset not found") {
		t.Fatalf("expected failure entry in output:\n%s", out)
	}
}
