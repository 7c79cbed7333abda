package mediasync

import "github.com/goliatone/go-media-sync/internal/synclog"

// Phase is a step of one OnAssetDeleted invocation.
type Phase string

const (
	PhaseIdle        Phase = "idle"
	PhaseValidating  Phase = "validating"
	PhaseResolved    Phase = "resolved"
	PhaseSkipped     Phase = "skipped"
	PhaseCascading   Phase = "cascading"
	PhaseAggregating Phase = "aggregating"
	PhaseNotifying   Phase = "notifying"
)

// SkipReason explains why no cascade ran.
type SkipReason string

const (
	SkipNone             SkipReason = ""
	SkipUnavailable      SkipReason = "unavailable"
	SkipReentrant        SkipReason = "reentrant"
	SkipInvalidMediaType SkipReason = "invalid_media_type"
	SkipNoGroup          SkipReason = "no_group"
)

// Result summarises one invocation. It is informational only; the engine
// never reports failure to the host.
type Result struct {
	TriggerAssetID string
	GroupID        string
	Phase          Phase
	Skip           SkipReason
	Attempts       []synclog.Attempt
	Notified       bool
}

// Skipped reports whether the invocation ended without a cascade.
func (r Result) Skipped() bool {
	return r.Phase == PhaseSkipped
}

// Failures returns the reasons of the failed sibling deletions, in order.
func (r Result) Failures() []string {
	var out []string
	for _, attempt := range r.Attempts {
		if attempt.SubjectAssetID != r.TriggerAssetID && attempt.Outcome.Failed() {
			out = append(out, attempt.Outcome.Reason)
		}
	}
	return out
}
