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
	"github.com/fr0staman/pigbot/internal/duelguard"
	"github.com/fr0staman/pigbot/internal/events"
	"github.com/fr0staman/pigbot/internal/game"
	"github.com/fr0staman/pigbot/internal/metrics"
)

// DuelService runs hand pig duels. Concurrent duels are allowed across
// threads; a thread runs at most one duel at a time and repeats are rejected
// immediately with duelguard.ErrThreadBusy.
type DuelService struct {
	DB     *gorm.DB
	Pigs   PigRepository
	Users  UserStatusProvider
	Guard  *duelguard.Guard
	Events events.Publisher

	// Rand drives the duel rolls.
	Rand game.Rand
	// Delay is waited after both pigs are refreshed and before the rolls,
	// to let the bot frontend show a "fight in progress" state.
	Delay time.Duration
}

// NewDuelService wires a DuelService around guard.
func NewDuelService(db *gorm.DB, pigs PigRepository, users UserStatusProvider, guard *duelguard.Guard) *DuelService {
	return &DuelService{
		DB:     db,
		Pigs:   pigs,
		Users:  users,
		Guard:  guard,
		Events: events.Nop{},
		Rand:   game.DefaultRand(),
	}
}

// DuelRequest describes an accepted challenge. The challenger posted the
// inline duel message; the opponent pressed its button.
type DuelRequest struct {
	InlineMessageID string
	ChallengerID    uint64
	OpponentID      uint64
	Now             time.Time
}

// DuelResult is the persisted outcome of a duel.
type DuelResult struct {
	InlineMessageID string     `json:"inline_message_id"`
	Outcome         string     `json:"outcome"`
	Damage          int        `json:"damage"`
	Winner          domain.Pig `json:"winner"`
	Loser           domain.Pig `json:"loser"`
	Rolls           DuelRolls  `json:"rolls"`
	Duel            game.Duel  `json:"-"`
}

// DuelRolls exposes the roll bounds and values, opponent first.
type DuelRolls struct {
	OpponentChance   int `json:"opponent_chance"`
	ChallengerChance int `json:"challenger_chance"`
	OpponentRoll     int `json:"opponent_roll"`
	ChallengerRoll   int `json:"challenger_roll"`
}

// Start resolves a duel between the opponent's and the challenger's hand
// pigs. The guard slot for the thread is held by the opponent for the whole
// call and released on every exit path.
func (s *DuelService) Start(ctx context.Context, req DuelRequest) (*DuelResult, error) {
	tr := otel.Tracer("services/DuelService")
	ctx, span := tr.Start(ctx, "Start",
		trace.WithAttributes(
			attribute.String("duel.inline_message_id", req.InlineMessageID),
			attribute.Int64("duel.challenger_id", int64(req.ChallengerID)),
			attribute.Int64("duel.opponent_id", int64(req.OpponentID)),
		),
	)
	defer span.End()

	if req.ChallengerID == req.OpponentID {
		metrics.DuelRejections.WithLabelValues(metrics.ReasonSelf).Inc()
		return nil, ErrSelfDuel
	}

	slot, err := s.Guard.Start(duelguard.ThreadID(req.InlineMessageID), req.OpponentID)
	if err != nil {
		reason := metrics.ReasonBusy
		if errors.Is(err, duelguard.ErrDuplicateThread) {
			reason = metrics.ReasonDuplicate
		}
		metrics.DuelRejections.WithLabelValues(reason).Inc()
		return nil, err
	}
	metrics.DuelsInFlight.Inc()
	defer func() {
		slot.Release()
		metrics.DuelsInFlight.Dec()
	}()

	res, err := s.run(ctx, req)
	if err != nil {
		reason := metrics.ReasonError
		if errors.Is(err, ErrNoPig) {
			reason = metrics.ReasonNoPig
		}
		metrics.DuelRejections.WithLabelValues(reason).Inc()
		span.RecordError(err)
		return nil, err
	}

	metrics.Duels.WithLabelValues(res.Outcome).Inc()
	span.SetAttributes(
		attribute.String("duel.outcome", res.Outcome),
		attribute.Int("duel.damage", res.Damage),
	)
	return res, nil
}

func (s *DuelService) run(ctx context.Context, req DuelRequest) (*DuelResult, error) {
	h := handPigs{db: s.DB, pigs: s.Pigs, users: s.Users}

	opponent, err := s.participant(ctx, req.OpponentID)
	if err != nil {
		return nil, err
	}
	challenger, err := s.participant(ctx, req.ChallengerID)
	if err != nil {
		return nil, err
	}

	// Both refreshes complete before any roll: the bounds depend on them.
	if opponent, err = h.refresh(ctx, opponent, req.Now); err != nil {
		return nil, err
	}
	if challenger, err = h.refresh(ctx, challenger, req.Now); err != nil {
		return nil, err
	}

	if s.Delay > 0 {
		t := time.NewTimer(s.Delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}

	duel := game.ResolveDuel(s.rand(),
		game.Duelist{OwnerID: opponent.OwnerID, Mass: opponent.Mass},
		game.Duelist{OwnerID: challenger.OwnerID, Mass: challenger.Mass},
	)

	winner, loser := opponent, challenger
	if duel.Winner.OwnerID == challenger.OwnerID {
		winner, loser = challenger, opponent
	}

	err = withTx(ctx, s.DB, func(tx *gorm.DB) error {
		if duel.Outcome == game.Draw {
			// Mass moves both ways, no streak counts.
			if err := s.Pigs.ApplyDuelResult(ctx, tx, winner.ID, duel.Damage, false, false); err != nil {
				return err
			}
			return s.Pigs.ApplyDuelResult(ctx, tx, loser.ID, duel.Damage, false, false)
		}
		if err := s.Pigs.ApplyDuelResult(ctx, tx, winner.ID, duel.Damage, true, false); err != nil {
			return err
		}
		return s.Pigs.ApplyDuelResult(ctx, tx, loser.ID, -duel.Damage, false, true)
	})
	if err != nil {
		return nil, fmt.Errorf("persist duel: %w", err)
	}

	if duel.Outcome == game.Draw {
		winner.Mass += duel.Damage
		loser.Mass += duel.Damage
	} else {
		winner.Mass += duel.Damage
		winner.WinCount++
		loser.Mass = max(loser.Mass-duel.Damage, 1)
		loser.LossCount++
	}

	res := &DuelResult{
		InlineMessageID: req.InlineMessageID,
		Outcome:         duel.Outcome.String(),
		Damage:          duel.Damage,
		Winner:          *winner,
		Loser:           *loser,
		Rolls: DuelRolls{
			OpponentChance:   duel.FirstChance,
			ChallengerChance: duel.SecondChance,
			OpponentRoll:     duel.FirstRoll,
			ChallengerRoll:   duel.SecondRoll,
		},
		Duel: duel,
	}

	log.Info().
		Str("inline_message_id", req.InlineMessageID).
		Str("outcome", res.Outcome).
		Uint64("winner_id", winner.OwnerID).
		Uint64("loser_id", loser.OwnerID).
		Int("damage", duel.Damage).
		Msg("duel resolved")

	publish(ctx, s.Events, events.Event{
		ID:         uuid.NewString(),
		Kind:       events.KindDuelResolved,
		OccurredAt: req.Now.UTC(),
		Payload: events.DuelResolved{
			InlineMessageID: req.InlineMessageID,
			Outcome:         res.Outcome,
			WinnerID:        winner.OwnerID,
			LoserID:         loser.OwnerID,
			WinnerMass:      winner.Mass,
			LoserMass:       loser.Mass,
			Damage:          duel.Damage,
		},
	})
	return res, nil
}

// participant loads a duelist's hand pig; a missing pig is ErrNoPig.
func (s *DuelService) participant(ctx context.Context, ownerID uint64) (*domain.Pig, error) {
	pig, err := s.Pigs.GetPig(ctx, s.DB, ownerID, domain.HandScope())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: owner %d", ErrNoPig, ownerID)
		}
		return nil, fmt.Errorf("get hand pig: %w", err)
	}
	return pig, nil
}

func (s *DuelService) rand() game.Rand {
	if s.Rand == nil {
		return game.DefaultRand()
	}
	return s.Rand
}
