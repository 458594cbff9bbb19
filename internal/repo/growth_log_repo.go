package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/fr0staman/pigbot/internal/domain"
)

// AppendGrowthLog inserts one feed record. Entries are never updated.
func AppendGrowthLog(ctx context.Context, db *gorm.DB, entry *domain.GrowthLog) error {
	return db.WithContext(ctx).Create(entry).Error
}

// ListGrowthLog returns the pig's full log in insertion order.
func ListGrowthLog(ctx context.Context, db *gorm.DB, pigID uint) ([]domain.GrowthLog, error) {
	var out []domain.GrowthLog
	err := db.WithContext(ctx).
		Where("pig_id = ?", pigID).
		Order("id ASC").
		Find(&out).Error
	return out, err
}
