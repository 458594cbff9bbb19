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

	"github.com/fr0staman/pigbot/internal/domain"
	"github.com/fr0staman/pigbot/internal/events"
	"github.com/fr0staman/pigbot/internal/game"
	"github.com/fr0staman/pigbot/internal/metrics"
	"github.com/fr0staman/pigbot/internal/repo"
)

// DefaultChatPigStartMass is the mass of a chat pig on its first feed.
const DefaultChatPigStartMass = 1

// GameService implements the per-user pig use-cases: feeding chat pigs, the
// daily hand pig, renames and the overclock report.
type GameService struct {
	DB           *gorm.DB
	Pigs         PigRepository
	Users        UserStatusProvider
	Achievements *AchievementService
	Events       events.Publisher

	// Rand drives growth draws.
	Rand game.Rand
	// StartMass is the mass of a newly created chat pig.
	StartMass int
}

// NewGameService constructs a GameService with default randomness and start
// mass and a no-op publisher.
func NewGameService(db *gorm.DB, pigs PigRepository, users UserStatusProvider, ach *AchievementService) *GameService {
	return &GameService{
		DB:           db,
		Pigs:         pigs,
		Users:        users,
		Achievements: ach,
		Events:       events.Nop{},
		Rand:         game.DefaultRand(),
		StartMass:    DefaultChatPigStartMass,
	}
}

func (s *GameService) hand() handPigs {
	return handPigs{db: s.DB, pigs: s.Pigs, users: s.Users}
}

// FeedRequest identifies the chat pig to feed.
type FeedRequest struct {
	OwnerID   uint64
	ChatID    int64
	FirstName string
	Now       time.Time
}

// FeedResult is the outcome of a successful feed.
type FeedResult struct {
	Pig             domain.Pig        `json:"pig"`
	Delta           int               `json:"delta"`
	Status          game.GrowthStatus `json:"-"`
	StatusName      string            `json:"status"`
	Created         bool              `json:"created"`
	NewAchievements []game.Code       `json:"new_achievements"`
}

// Feed grows the owner's chat pig once per game day. The first feed in a
// chat creates the pig and grows it immediately. A repeat on the same day
// fails with *AlreadyFedError.
func (s *GameService) Feed(ctx context.Context, req FeedRequest) (*FeedResult, error) {
	tr := otel.Tracer("services/GameService")
	ctx, span := tr.Start(ctx, "Feed",
		trace.WithAttributes(
			attribute.Int64("owner.id", int64(req.OwnerID)),
			attribute.Int64("chat.id", req.ChatID),
		),
	)
	defer span.End()

	today := game.Today(req.Now)
	scope := domain.ChatScope(req.ChatID)

	created := false
	pig, err := s.Pigs.GetPig(ctx, s.DB, req.OwnerID, scope)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		pig, err = s.Pigs.CreatePig(ctx, s.DB, req.OwnerID, scope, pigNameFromFirstName(req.FirstName), s.startMass(), today)
		if errors.Is(err, repo.ErrDuplicate) {
			pig, err = s.Pigs.GetPig(ctx, s.DB, req.OwnerID, scope)
		} else {
			created = err == nil
		}
		if err != nil {
			return nil, fmt.Errorf("create chat pig: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("get chat pig: %w", err)
	}

	if !created && game.SameDay(pig.LastUpdateDate, today) {
		metrics.Feeds.WithLabelValues("already_fed").Inc()
		return nil, &AlreadyFedError{Next: game.UntilNextDay(req.Now)}
	}

	delta, status := game.CalculateGrowth(s.rand(), pig.Mass)
	mass := max(pig.Mass+delta, 1)

	err = withTx(ctx, s.DB, func(tx *gorm.DB) error {
		if err := s.Pigs.UpdateMassAndDate(ctx, tx, pig.ID, mass, today); err != nil {
			return err
		}
		return s.Pigs.AppendGrowthLog(ctx, tx, &domain.GrowthLog{
			PigID:         pig.ID,
			CreatedAt:     req.Now.UTC(),
			WeightChange:  delta,
			CurrentWeight: mass,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("persist feed: %w", err)
	}
	pig.Mass = mass
	pig.LastUpdateDate = today

	metrics.Feeds.WithLabelValues(status.String()).Inc()
	span.SetAttributes(
		attribute.Int("feed.delta", delta),
		attribute.String("feed.status", status.String()),
	)
	log.Debug().
		Uint("pig_id", pig.ID).
		Int("delta", delta).
		Int("mass", mass).
		Str("status", status.String()).
		Msg("pig fed")

	res := &FeedResult{
		Pig:        *pig,
		Delta:      delta,
		Status:     status,
		StatusName: status.String(),
		Created:    created,
	}
	if s.Achievements != nil {
		codes, err := s.Achievements.Check(ctx, pig.ID, req.Now)
		if err != nil {
			// The feed is committed; unlocks are retried on the next check.
			log.Error().Err(err).Uint("pig_id", pig.ID).Msg("achievement check after feed failed")
		}
		res.NewAchievements = codes
	}

	publish(ctx, s.Events, events.Event{
		ID:         uuid.NewString(),
		Kind:       events.KindPigFed,
		OccurredAt: req.Now.UTC(),
		Payload: events.PigFed{
			PigID:   pig.ID,
			OwnerID: pig.OwnerID,
			ChatID:  pig.ChatID,
			Delta:   delta,
			Mass:    mass,
			Status:  status.String(),
		},
	})
	return res, nil
}

// ChatPigView is a chat pig with its display tier.
type ChatPigView struct {
	Pig             domain.Pig  `json:"pig"`
	Emoji           string      `json:"emoji"`
	NewAchievements []game.Code `json:"new_achievements"`
}

// ChatPig returns the owner's chat pig and opportunistically checks
// achievements, which covers the date-based ones between feeds.
func (s *GameService) ChatPig(ctx context.Context, ownerID uint64, chatID int64, now time.Time) (*ChatPigView, error) {
	tr := otel.Tracer("services/GameService")
	ctx, span := tr.Start(ctx, "ChatPig",
		trace.WithAttributes(
			attribute.Int64("owner.id", int64(ownerID)),
			attribute.Int64("chat.id", chatID),
		),
	)
	defer span.End()

	pig, err := s.Pigs.GetPig(ctx, s.DB, ownerID, domain.ChatScope(chatID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoPig
		}
		return nil, fmt.Errorf("get chat pig: %w", err)
	}

	view := &ChatPigView{Pig: *pig, Emoji: game.PigEmoji(pig.Mass)}
	if s.Achievements != nil {
		if view.NewAchievements, err = s.Achievements.Check(ctx, pig.ID, now); err != nil {
			return nil, err
		}
	}
	return view, nil
}

// HandPigView is the daily hand pig with derived stats. Winrate is nil
// until the pig has both won and lost a duel.
type HandPigView struct {
	Pig     domain.Pig `json:"pig"`
	Emoji   string     `json:"emoji"`
	Created bool       `json:"created"`
	Winrate *uint      `json:"winrate,omitempty"`
}

// HandPig returns the owner's hand pig for the current game day, creating or
// refreshing it as needed.
func (s *GameService) HandPig(ctx context.Context, ownerID uint64, firstName string, now time.Time) (*HandPigView, error) {
	tr := otel.Tracer("services/GameService")
	ctx, span := tr.Start(ctx, "HandPig",
		trace.WithAttributes(attribute.Int64("owner.id", int64(ownerID))),
	)
	defer span.End()

	h := s.hand()
	pig, created, err := h.getOrCreate(ctx, ownerID, firstName, now)
	if err != nil {
		return nil, err
	}
	if !created {
		if pig, err = h.refresh(ctx, pig, now); err != nil {
			return nil, err
		}
	}

	view := &HandPigView{Pig: *pig, Emoji: game.PigEmoji(pig.Mass), Created: created}
	if rate, ok := game.Winrate(pig.WinCount, pig.LossCount); ok {
		view.Winrate = &rate
	}
	return view, nil
}

// RenameChatPig renames the owner's chat pig.
func (s *GameService) RenameChatPig(ctx context.Context, ownerID uint64, chatID int64, name string) (*domain.Pig, error) {
	clean, err := chatPigName(name)
	if err != nil {
		return nil, err
	}
	return s.rename(ctx, ownerID, domain.ChatScope(chatID), clean)
}

// RenameHandPig renames the owner's hand pig. Long names are cut to fit.
func (s *GameService) RenameHandPig(ctx context.Context, ownerID uint64, name string) (*domain.Pig, error) {
	clean, err := handPigName(name)
	if err != nil {
		return nil, err
	}
	return s.rename(ctx, ownerID, domain.HandScope(), clean)
}

func (s *GameService) rename(ctx context.Context, ownerID uint64, scope domain.Scope, name string) (*domain.Pig, error) {
	tr := otel.Tracer("services/GameService")
	ctx, span := tr.Start(ctx, "Rename",
		trace.WithAttributes(
			attribute.Int64("owner.id", int64(ownerID)),
			attribute.String("pig.kind", string(scope.Kind)),
		),
	)
	defer span.End()

	pig, err := s.Pigs.GetPig(ctx, s.DB, ownerID, scope)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoPig
		}
		return nil, fmt.Errorf("get pig: %w", err)
	}
	if err := s.Pigs.UpdateName(ctx, s.DB, pig.ID, name); err != nil {
		return nil, fmt.Errorf("rename pig: %w", err)
	}
	pig.Name = name
	return pig, nil
}

// Overclock returns the owner's cosmetic overclock stats for the game day.
func (s *GameService) Overclock(ownerID uint64, now time.Time) game.Overclock {
	return game.NewOverclock(game.CalculateSize(ownerID, game.Today(now)), ownerID)
}

func (s *GameService) rand() game.Rand {
	if s.Rand == nil {
		return game.DefaultRand()
	}
	return s.Rand
}

func (s *GameService) startMass() int {
	if s.StartMass < 1 {
		return DefaultChatPigStartMass
	}
	return s.StartMass
}
