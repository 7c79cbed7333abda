package mediasynccmd_test

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	mediasynccmd "github.com/goliatone/go-media-sync/internal/commands/mediasync"
	"github.com/goliatone/go-media-sync/internal/mediasync"
	"github.com/goliatone/go-media-sync/internal/synclog"
)

type stubEngine struct {
	calls  []string
	result mediasync.Result
}

func (s *stubEngine) Replay(_ context.Context, assetID string) mediasync.Result {
	s.calls = append(s.calls, assetID)
	result := s.result
	result.TriggerAssetID = assetID
	return result
}

func TestSyncDeleteCommandValidate(t *testing.T) {
	if err := (mediasynccmd.SyncDeleteCommand{AssetID: "  "}).Validate(); err == nil {
		t.Fatal("expected validation error for blank asset id")
	}
	if err := (mediasynccmd.SyncDeleteCommand{AssetID: "42"}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSyncDeleteHandlerRunsCascade(t *testing.T) {
	engine := &stubEngine{result: mediasync.Result{Phase: mediasync.PhaseIdle, Attempts: []synclog.Attempt{{SubjectAssetID: "43", Outcome: synclog.Success()}}}}
	handler := mediasynccmd.NewSyncDeleteHandler(engine, nil, mediasynccmd.FeatureGates{})

	if err := handler.Execute(context.Background(), mediasynccmd.SyncDeleteCommand{AssetID: " 42 "}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(engine.calls) != 1 || engine.calls[0] != "42" {
		t.Fatalf("expected cascade for 42, got %v", engine.calls)
	}
}

func TestSyncDeleteHandlerRejectsInvalidCommand(t *testing.T) {
	engine := &stubEngine{}
	handler := mediasynccmd.NewSyncDeleteHandler(engine, nil, mediasynccmd.FeatureGates{})

	err := handler.Execute(context.Background(), mediasynccmd.SyncDeleteCommand{})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if len(engine.calls) != 0 {
		t.Fatal("engine must not run for invalid commands")
	}
}

func TestSyncDeleteHandlerReportsFailures(t *testing.T) {
	engine := &stubEngine{result: mediasync.Result{
		Phase: mediasync.PhaseIdle,
		Attempts: []synclog.Attempt{
			{SubjectAssetID: "43", Outcome: synclog.Failure("not found")},
		},
	}}
	handler := mediasynccmd.NewSyncDeleteHandler(engine, nil, mediasynccmd.FeatureGates{})

	err := handler.Execute(context.Background(), mediasynccmd.SyncDeleteCommand{AssetID: "42"})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if !errors.Is(err, mediasynccmd.ErrCascadeIncomplete) {
		t.Fatalf("expected ErrCascadeIncomplete, got %v", err)
	}
}

func TestSyncDeleteHandlerHonoursGatesAndAvailability(t *testing.T) {
	engine := &stubEngine{}
	disabled := mediasynccmd.NewSyncDeleteHandler(engine, nil, mediasynccmd.FeatureGates{SyncEnabled: func() bool { return false }})
	if err := disabled.Execute(context.Background(), mediasynccmd.SyncDeleteCommand{AssetID: "42"}); !errors.Is(err, mediasynccmd.ErrSyncDisabled) {
		t.Fatalf("expected ErrSyncDisabled, got %v", err)
	}
	if len(engine.calls) != 0 {
		t.Fatal("engine must not run when disabled")
	}

	engine.result = mediasync.Result{Phase: mediasync.PhaseSkipped, Skip: mediasync.SkipUnavailable}
	handler := mediasynccmd.NewSyncDeleteHandler(engine, nil, mediasynccmd.FeatureGates{})
	if err := handler.Execute(context.Background(), mediasynccmd.SyncDeleteCommand{AssetID: "42"}); !errors.Is(err, mediasynccmd.ErrTranslationsUnavailable) {
		t.Fatalf("expected ErrTranslationsUnavailable, got %v", err)
	}

	engine.result = mediasync.Result{Phase: mediasync.PhaseSkipped, Skip: mediasync.SkipNoGroup}
	if err := handler.Execute(context.Background(), mediasynccmd.SyncDeleteCommand{AssetID: "42"}); err != nil {
		t.Fatalf("expected no error for ungrouped asset, got %v", err)
	}
}
