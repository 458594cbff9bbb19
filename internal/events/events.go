// Package events publishes game notifications (duel results, achievement
// unlocks) for the bot frontend, which formats and sends the actual messages.
//
// Two publishers are provided: AMQPPublisher writes JSON to a RabbitMQ topic
// exchange, LogPublisher writes the same payload to the structured log and is
// used when no broker is configured.
package events

import (
	"context"
	"time"
)

// Event kinds, also used as routing keys.
const (
	KindDuelResolved        = "duel.resolved"
	KindAchievementUnlocked = "achievement.unlocked"
	KindPigFed              = "pig.fed"
)

// Event is the envelope published for every notification.
type Event struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

// DuelResolved describes a finished duel.
type DuelResolved struct {
	InlineMessageID string `json:"inline_message_id"`
	Outcome         string `json:"outcome"`
	WinnerID        uint64 `json:"winner_id"`
	LoserID         uint64 `json:"loser_id"`
	WinnerMass      int    `json:"winner_mass"`
	LoserMass       int    `json:"loser_mass"`
	Damage          int    `json:"damage"`
}

// AchievementUnlocked describes one unlock.
type AchievementUnlocked struct {
	PigID   uint   `json:"pig_id"`
	OwnerID uint64 `json:"owner_id"`
	Code    int16  `json:"code"`
	Name    string `json:"name"`
}

// PigFed describes a completed chat pig feed.
type PigFed struct {
	PigID   uint   `json:"pig_id"`
	OwnerID uint64 `json:"owner_id"`
	ChatID  int64  `json:"chat_id"`
	Delta   int    `json:"delta"`
	Mass    int    `json:"mass"`
	Status  string `json:"status"`
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Nop discards every event.
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(context.Context, Event) error { return nil }
