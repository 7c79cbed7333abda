package synclog

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status is the outcome class of a sync attempt.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// ReasonInvalidMediaType is recorded when the triggering asset has no
// resolvable content type.
const ReasonInvalidMediaType = "invalid media type"

// Outcome is Success or Failure(reason).
type Outcome struct {
	Status Status `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// Success returns a successful outcome.
func Success() Outcome {
	return Outcome{Status: StatusSuccess}
}

// Failure returns a failed outcome carrying reason.
func Failure(reason string) Outcome {
	return Outcome{Status: StatusFailure, Reason: reason}
}

// Failed reports whether the outcome is a failure.
func (o Outcome) Failed() bool {
	return o.Status == StatusFailure
}

// Attempt records one try at deleting one asset on behalf of a trigger.
// Attempts are never edited once written.
type Attempt struct {
	ID             uuid.UUID `json:"id"`
	Timestamp      time.Time `json:"timestamp"`
	SubjectAssetID string    `json:"subject_asset_id"`
	TriggerAssetID string    `json:"trigger_asset_id"`
	Outcome        Outcome   `json:"outcome"`
}

// Message renders the attempt as a single human readable line.
func (a Attempt) Message() string {
	if a.Outcome.Failed() {
		return fmt.Sprintf("Error with media ID %s: %s", a.SubjectAssetID, a.Outcome.Reason)
	}
	return fmt.Sprintf("Successfully deleted translation %s (original media: %s)", a.SubjectAssetID, a.TriggerAssetID)
}
