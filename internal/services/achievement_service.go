package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/fr0staman/pigbot/internal/events"
	"github.com/fr0staman/pigbot/internal/game"
	"github.com/fr0staman/pigbot/internal/metrics"
	"github.com/fr0staman/pigbot/internal/repo"
)

// AchievementService evaluates the achievement catalog against a pig and
// records new unlocks. Check is cheap enough to call after every feed and on
// every stat view.
type AchievementService struct {
	DB           *gorm.DB
	Pigs         PigRepository
	Achievements AchievementRepository
	Events       events.Publisher
}

// NewAchievementService wires an AchievementService with a no-op publisher.
func NewAchievementService(db *gorm.DB, pigs PigRepository, ach AchievementRepository) *AchievementService {
	return &AchievementService{DB: db, Pigs: pigs, Achievements: ach, Events: events.Nop{}}
}

// Check returns the codes newly unlocked for pigID at now, in catalog order.
// Codes already held are never returned again, so a second call without new
// growth history yields nothing.
func (s *AchievementService) Check(ctx context.Context, pigID uint, now time.Time) ([]game.Code, error) {
	tr := otel.Tracer("services/AchievementService")
	ctx, span := tr.Start(ctx, "Check",
		trace.WithAttributes(attribute.Int("pig.id", int(pigID))),
	)
	defer span.End()

	pig, err := s.Pigs.GetPigByID(ctx, s.DB, pigID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPigNotFound
		}
		return nil, fmt.Errorf("get pig: %w", err)
	}

	history, err := s.Pigs.ListGrowthLog(ctx, s.DB, pigID)
	if err != nil {
		return nil, fmt.Errorf("growth log: %w", err)
	}

	held, err := s.Achievements.UnlockedCodes(ctx, s.DB, pigID)
	if err != nil {
		return nil, fmt.Errorf("unlocked codes: %w", err)
	}
	unlocked := make(map[game.Code]struct{}, len(held))
	for _, c := range held {
		unlocked[game.Code(c)] = struct{}{}
	}

	candidates := game.Evaluate(*pig, history, now, unlocked)
	if len(candidates) == 0 {
		return nil, nil
	}

	out := make([]game.Code, 0, len(candidates))
	for _, code := range candidates {
		err := s.Achievements.UnlockAchievement(ctx, s.DB, pigID, int16(code), now.UTC())
		switch {
		case errors.Is(err, repo.ErrDuplicate):
			// A concurrent check won the race.
			continue
		case err != nil:
			return out, fmt.Errorf("unlock %s: %w", code, err)
		}

		out = append(out, code)
		metrics.AchievementsUnlocked.WithLabelValues(code.String()).Inc()
		log.Info().
			Uint("pig_id", pigID).
			Uint64("owner_id", pig.OwnerID).
			Int16("code", int16(code)).
			Str("name", code.String()).
			Msg("achievement unlocked")

		publish(ctx, s.Events, events.Event{
			ID:         uuid.NewString(),
			Kind:       events.KindAchievementUnlocked,
			OccurredAt: now.UTC(),
			Payload: events.AchievementUnlocked{
				PigID:   pigID,
				OwnerID: pig.OwnerID,
				Code:    int16(code),
				Name:    code.String(),
			},
		})
	}
	span.SetAttributes(attribute.Int("achievements.unlocked", len(out)))
	return out, nil
}
