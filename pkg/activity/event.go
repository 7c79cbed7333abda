package activity

import (
	"context"
	"time"
)

// Event is a host-neutral description of something worth recording in an
// activity feed.
type Event struct {
	Verb           string
	ActorID        string
	UserID         string
	TenantID       string
	ObjectType     string
	ObjectID       string
	Channel        string
	DefinitionCode string
	Recipients     []string
	Metadata       map[string]any
	OccurredAt     time.Time
}

// Hook receives activity events.
type Hook interface {
	Notify(ctx context.Context, event Event) error
}
