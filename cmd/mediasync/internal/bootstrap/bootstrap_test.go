package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goliatone/go-media-sync/internal/synclog"
)

func TestBuildModuleDefaultsToMemory(t *testing.T) {
	resources, err := BuildModule(Options{})
	if err != nil {
		t.Fatalf("build module: %v", err)
	}
	t.Cleanup(func() { resources.Module.Close() })

	if resources.Module == nil || resources.Logger == nil {
		t.Fatal("expected module and logger to be initialised")
	}
	if _, ok := resources.Module.Logs().(*synclog.MemoryStore); !ok {
		t.Fatalf("expected memory log store, got %T", resources.Module.Logs())
	}
}

func TestBuildModuleDSNSelectsBunStorage(t *testing.T) {
	dsn := fmt.Sprintf("file:bootstrap_%d?mode=memory&cache=shared", time.Now().UnixNano())
	resources, err := BuildModule(Options{DSN: dsn})
	if err != nil {
		t.Fatalf("build module: %v", err)
	}
	t.Cleanup(func() { resources.Module.Close() })

	if _, ok := resources.Module.Logs().(*synclog.BunStore); !ok {
		t.Fatalf("expected bun log store, got %T", resources.Module.Logs())
	}
}

func TestBuildModuleReadsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mediasync.toml")
	if err := os.WriteFile(path, []byte("[log]\ncapacity = 7\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	resources, err := BuildModule(Options{ConfigPath: path})
	if err != nil {
		t.Fatalf("build module: %v", err)
	}
	t.Cleanup(func() { resources.Module.Close() })

	store, ok := resources.Module.Logs().(*synclog.MemoryStore)
	if !ok || store.Capacity() != 7 {
		t.Fatalf("expected memory log with capacity 7, got %T", resources.Module.Logs())
	}
}

func TestBuildModuleReportsBadConfigPath(t *testing.T) {
	if _, err := BuildModule(Options{ConfigPath: filepath.Join(t.TempDir(), "missing.yaml")}); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
