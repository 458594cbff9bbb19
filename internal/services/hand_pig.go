package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/fr0staman/pigbot/internal/domain"
	"github.com/fr0staman/pigbot/internal/game"
	"github.com/fr0staman/pigbot/internal/repo"
)

// handPigs implements the daily hand pig lifecycle shared by GameService and
// DuelService.
type handPigs struct {
	db    *gorm.DB
	pigs  PigRepository
	users UserStatusProvider
}

// daySize is the hand pig mass for ownerID on today's game day, before the
// status bonus: the daily size plus the owner's heaviest chat pig.
func (h handPigs) daySize(ctx context.Context, ownerID uint64, today time.Time) (int, error) {
	biggest, err := h.pigs.BiggestMass(ctx, h.db, ownerID, domain.KindChat)
	if err != nil {
		return 0, fmt.Errorf("biggest chat pig: %w", err)
	}
	return game.CalculateSize(ownerID, today) + biggest, nil
}

// getOrCreate returns the owner's hand pig, creating it for today when it
// does not exist yet. A freshly created pig carries no status bonus until
// its next refresh.
func (h handPigs) getOrCreate(ctx context.Context, ownerID uint64, firstName string, now time.Time) (*domain.Pig, bool, error) {
	pig, err := h.pigs.GetPig(ctx, h.db, ownerID, domain.HandScope())
	if err == nil {
		return pig, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("get hand pig: %w", err)
	}

	today := game.Today(now)
	size, err := h.daySize(ctx, ownerID, today)
	if err != nil {
		return nil, false, err
	}

	pig, err = h.pigs.CreatePig(ctx, h.db, ownerID, domain.HandScope(), pigNameFromFirstName(firstName), size, today)
	if errors.Is(err, repo.ErrDuplicate) {
		// Lost a creation race; use the winner's row.
		pig, err = h.pigs.GetPig(ctx, h.db, ownerID, domain.HandScope())
		return pig, false, err
	}
	if err != nil {
		return nil, false, fmt.Errorf("create hand pig: %w", err)
	}
	return pig, true, nil
}

// refresh brings a stale hand pig to today's size and returns the stored
// row. A pig already refreshed today is returned unchanged. Overlapping
// refreshes of the same pig write the same value, so last-writer-wins is
// fine.
func (h handPigs) refresh(ctx context.Context, pig *domain.Pig, now time.Time) (*domain.Pig, error) {
	today := game.Today(now)
	if game.SameDay(pig.LastUpdateDate, today) {
		return pig, nil
	}

	log.Debug().
		Uint("pig_id", pig.ID).
		Uint64("owner_id", pig.OwnerID).
		Time("last_update", pig.LastUpdateDate).
		Msg("refreshing stale hand pig")

	size, err := h.daySize(ctx, pig.OwnerID, today)
	if err != nil {
		return nil, err
	}

	status := domain.StatusPlain
	if h.users != nil {
		if status, err = h.users.UserStatus(ctx, pig.OwnerID); err != nil {
			return nil, fmt.Errorf("user status: %w", err)
		}
	}

	if err := h.pigs.UpdateMassAndDate(ctx, h.db, pig.ID, size+status.MassBonus(), today); err != nil {
		return nil, fmt.Errorf("refresh hand pig: %w", err)
	}
	fresh, err := h.pigs.GetPigByID(ctx, h.db, pig.ID)
	if err != nil {
		return nil, fmt.Errorf("reload hand pig: %w", err)
	}
	return fresh, nil
}
