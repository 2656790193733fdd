package utils

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

// DefaultPosthogEndpoint is used when no endpoint is configured.
const DefaultPosthogEndpoint = "https://eu.i.posthog.com"

// Tracker sends console usage events to PostHog. A Tracker built without an API key is
// a no-op, so callers never need to nil-check it.
type Tracker struct {
	client posthog.Client
	logger *slog.Logger
}

// NewTracker creates a tracker. Close must be called on shutdown to flush queued events.
func NewTracker(apiKey, endpoint string, logger *slog.Logger) (*Tracker, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if apiKey == "" {
		logger.Warn("PostHog API key is empty, event tracking disabled")
		return &Tracker{logger: logger}, nil
	}
	if endpoint == "" {
		endpoint = DefaultPosthogEndpoint
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: endpoint})
	if err != nil {
		return nil, err
	}
	logger.Info("PostHog event tracking enabled", slog.String("endpoint", endpoint))
	return &Tracker{client: client, logger: logger}, nil
}

// Enabled reports whether events are actually sent.
func (t *Tracker) Enabled() bool {
	return t != nil && t.client != nil
}

// Enqueue queues one event for the given user.
func (t *Tracker) Enqueue(distinctID, event string, properties map[string]any) {
	if !t.Enabled() {
		return
	}
	t.logger.Debug("Enqueueing event", slog.String("distinct_id", distinctID), slog.String("event", event))
	if err := t.client.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	}); err != nil {
		t.logger.Warn("Failed to enqueue event", slog.String("event", event), slog.String("error", err.Error()))
	}
}

// Close flushes pending events.
func (t *Tracker) Close() error {
	if !t.Enabled() {
		return nil
	}
	return t.client.Close()
}
