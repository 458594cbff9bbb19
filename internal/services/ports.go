package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/fr0staman/pigbot/internal/domain"
)

// PigRepository is the storage contract for pigs and their growth log.
// Every method takes the handle to run on, so calls compose inside a
// transaction opened by the service. A missing pig is gorm.ErrRecordNotFound.
type PigRepository interface {
	GetPig(ctx context.Context, db *gorm.DB, ownerID uint64, scope domain.Scope) (*domain.Pig, error)
	GetPigByID(ctx context.Context, db *gorm.DB, id uint) (*domain.Pig, error)
	CreatePig(ctx context.Context, db *gorm.DB, ownerID uint64, scope domain.Scope, name string, mass int, date time.Time) (*domain.Pig, error)
	UpdateMassAndDate(ctx context.Context, db *gorm.DB, pigID uint, mass int, date time.Time) error
	UpdateName(ctx context.Context, db *gorm.DB, pigID uint, name string) error
	AppendGrowthLog(ctx context.Context, db *gorm.DB, entry *domain.GrowthLog) error
	ListGrowthLog(ctx context.Context, db *gorm.DB, pigID uint) ([]domain.GrowthLog, error)

	// BiggestMass returns the heaviest pig of kind the owner has, or 0.
	BiggestMass(ctx context.Context, db *gorm.DB, ownerID uint64, kind domain.PigKind) (int, error)

	// ApplyDuelResult adds delta to the mass (never below 1) and bumps the
	// requested counters.
	ApplyDuelResult(ctx context.Context, db *gorm.DB, pigID uint, delta int, win, loss bool) error
}

// AchievementRepository stores one-time unlocks. UnlockAchievement returns an
// error wrapping a duplicate sentinel when the code is already held.
type AchievementRepository interface {
	UnlockedCodes(ctx context.Context, db *gorm.DB, pigID uint) ([]int16, error)
	UnlockAchievement(ctx context.Context, db *gorm.DB, pigID uint, code int16, at time.Time) error
}

// UserStatusProvider reports the owner's support tier. Unknown users are
// plain.
type UserStatusProvider interface {
	UserStatus(ctx context.Context, ownerID uint64) (domain.UserStatus, error)
}

// LeaderboardRepository serves the paginated boards.
type LeaderboardRepository interface {
	CountChatPigs(ctx context.Context, db *gorm.DB, chatID int64) (int64, error)
	TopChatPigs(ctx context.Context, db *gorm.DB, chatID int64, offset, limit int) ([]domain.Pig, error)
	CountHandPigsOn(ctx context.Context, db *gorm.DB, day time.Time) (int64, error)
	TopHandPigsOn(ctx context.Context, db *gorm.DB, day time.Time, offset, limit int) ([]domain.Pig, error)
	CountWinners(ctx context.Context, db *gorm.DB) (int64, error)
	TopWinners(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Pig, error)
}

// withTx runs fn in a transaction on db. Without a database handle (fake
// repositories in tests) fn runs directly with a nil handle.
func withTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}
