package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/fr0staman/pigbot/internal/domain"
)

// Store adapts the repository free functions to the method sets the service
// layer consumes. It is stateless; the handle travels with each call.
type Store struct{}

// GetPig proxies GetPig.
func (Store) GetPig(ctx context.Context, db *gorm.DB, ownerID uint64, scope domain.Scope) (*domain.Pig, error) {
	return GetPig(ctx, db, ownerID, scope)
}

// GetPigByID proxies GetPigByID.
func (Store) GetPigByID(ctx context.Context, db *gorm.DB, id uint) (*domain.Pig, error) {
	return GetPigByID(ctx, db, id)
}

// CreatePig proxies CreatePig.
func (Store) CreatePig(ctx context.Context, db *gorm.DB, ownerID uint64, scope domain.Scope, name string, mass int, date time.Time) (*domain.Pig, error) {
	return CreatePig(ctx, db, ownerID, scope, name, mass, date)
}

// UpdateMassAndDate proxies UpdateMassAndDate.
func (Store) UpdateMassAndDate(ctx context.Context, db *gorm.DB, pigID uint, mass int, date time.Time) error {
	return UpdateMassAndDate(ctx, db, pigID, mass, date)
}

// UpdateName proxies UpdateName.
func (Store) UpdateName(ctx context.Context, db *gorm.DB, pigID uint, name string) error {
	return UpdateName(ctx, db, pigID, name)
}

// AppendGrowthLog proxies AppendGrowthLog.
func (Store) AppendGrowthLog(ctx context.Context, db *gorm.DB, entry *domain.GrowthLog) error {
	return AppendGrowthLog(ctx, db, entry)
}

// ListGrowthLog proxies ListGrowthLog.
func (Store) ListGrowthLog(ctx context.Context, db *gorm.DB, pigID uint) ([]domain.GrowthLog, error) {
	return ListGrowthLog(ctx, db, pigID)
}

// BiggestMass proxies BiggestMass.
func (Store) BiggestMass(ctx context.Context, db *gorm.DB, ownerID uint64, kind domain.PigKind) (int, error) {
	return BiggestMass(ctx, db, ownerID, kind)
}

// ApplyDuelResult proxies ApplyDuelResult.
func (Store) ApplyDuelResult(ctx context.Context, db *gorm.DB, pigID uint, delta int, win, loss bool) error {
	return ApplyDuelResult(ctx, db, pigID, delta, win, loss)
}

// UnlockedCodes proxies UnlockedCodes.
func (Store) UnlockedCodes(ctx context.Context, db *gorm.DB, pigID uint) ([]int16, error) {
	return UnlockedCodes(ctx, db, pigID)
}

// UnlockAchievement proxies UnlockAchievement.
func (Store) UnlockAchievement(ctx context.Context, db *gorm.DB, pigID uint, code int16, at time.Time) error {
	return UnlockAchievement(ctx, db, pigID, code, at)
}

// GetUser proxies GetUser.
func (Store) GetUser(ctx context.Context, db *gorm.DB, id uint64) (*domain.User, error) {
	return GetUser(ctx, db, id)
}

// UpsertUser proxies UpsertUser.
func (Store) UpsertUser(ctx context.Context, db *gorm.DB, u *domain.User) error {
	return UpsertUser(ctx, db, u)
}

// CountChatPigs proxies CountChatPigs.
func (Store) CountChatPigs(ctx context.Context, db *gorm.DB, chatID int64) (int64, error) {
	return CountChatPigs(ctx, db, chatID)
}

// TopChatPigs proxies TopChatPigs.
func (Store) TopChatPigs(ctx context.Context, db *gorm.DB, chatID int64, offset, limit int) ([]domain.Pig, error) {
	return TopChatPigs(ctx, db, chatID, offset, limit)
}

// CountHandPigsOn proxies CountHandPigsOn.
func (Store) CountHandPigsOn(ctx context.Context, db *gorm.DB, day time.Time) (int64, error) {
	return CountHandPigsOn(ctx, db, day)
}

// TopHandPigsOn proxies TopHandPigsOn.
func (Store) TopHandPigsOn(ctx context.Context, db *gorm.DB, day time.Time, offset, limit int) ([]domain.Pig, error) {
	return TopHandPigsOn(ctx, db, day, offset, limit)
}

// CountWinners proxies CountWinners.
func (Store) CountWinners(ctx context.Context, db *gorm.DB) (int64, error) {
	return CountWinners(ctx, db)
}

// TopWinners proxies TopWinners.
func (Store) TopWinners(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Pig, error) {
	return TopWinners(ctx, db, offset, limit)
}
