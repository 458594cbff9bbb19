package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/fr0staman/pigbot/internal/events"
)

// publish sends ev through pub. Delivery is best effort: the game state is
// already committed, so a failed publish is logged and dropped.
func publish(ctx context.Context, pub events.Publisher, ev events.Event) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, ev); err != nil {
		log.Warn().Err(err).Str("kind", ev.Kind).Str("event_id", ev.ID).Msg("event publish failed")
	}
}
