package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/fr0staman/pigbot/internal/domain"
)

// UnlockedCodes returns the achievement codes the pig already holds.
func UnlockedCodes(ctx context.Context, db *gorm.DB, pigID uint) ([]int16, error) {
	var codes []int16
	err := db.WithContext(ctx).
		Model(&domain.Achievement{}).
		Where("pig_id = ?", pigID).
		Order("code ASC").
		Pluck("code", &codes).Error
	return codes, err
}

// UnlockAchievement records code for the pig. A repeated unlock yields
// ErrDuplicate and leaves the original record untouched.
func UnlockAchievement(ctx context.Context, db *gorm.DB, pigID uint, code int16, at time.Time) error {
	rec := &domain.Achievement{PigID: pigID, Code: code, UnlockedAt: at}
	if err := db.WithContext(ctx).Create(rec).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// ListAchievements returns the pig's unlocks, oldest first.
func ListAchievements(ctx context.Context, db *gorm.DB, pigID uint) ([]domain.Achievement, error) {
	var out []domain.Achievement
	err := db.WithContext(ctx).
		Where("pig_id = ?", pigID).
		Order("unlocked_at ASC, code ASC").
		Find(&out).Error
	return out, err
}
