package events

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"
)

// LogPublisher writes events to the global zerolog logger.
type LogPublisher struct{}

// Publish implements Publisher.
func (LogPublisher) Publish(_ context.Context, ev Event) error {
	payload, err := json.Marshal(ev.Payload)
	if err != nil {
		return err
	}
	log.Info().
		Str("event_id", ev.ID).
		Str("kind", ev.Kind).
		Time("occurred_at", ev.OccurredAt).
		RawJSON("payload", payload).
		Msg("event")
	return nil
}
