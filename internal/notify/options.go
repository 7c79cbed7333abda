package notify

import (
	"time"

	"github.com/goliatone/go-media-sync/pkg/interfaces"
)

type config struct {
	siteName   string
	recipients []string
	channel    string
	logger     interfaces.Logger
	now        func() time.Time
}

// Option customises a notifier.
type Option func(*config)

// WithSiteName sets the site label used in the subject line.
func WithSiteName(name string) Option {
	return func(c *config) { c.siteName = name }
}

// WithRecipients sets the addresses the summary is meant for.
func WithRecipients(recipients ...string) Option {
	return func(c *config) { c.recipients = append([]string(nil), recipients...) }
}

// WithChannel sets the activity channel.
func WithChannel(channel string) Option {
	return func(c *config) {
		if channel != "" {
			c.channel = channel
		}
	}
}

// WithLogger sets the logger used by LogNotifier.
func WithLogger(logger interfaces.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock overrides the event timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}
