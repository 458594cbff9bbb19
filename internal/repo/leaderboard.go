// Package repo: leaderboard queries and small aggregates used for
// conditional responses (ETag generation) in the HTTP layer.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/fr0staman/pigbot/internal/domain"
)

func chatPigs(db *gorm.DB, chatID int64) *gorm.DB {
	return db.Model(&domain.Pig{}).Where("kind = ? AND chat_id = ?", domain.KindChat, chatID)
}

func handPigsOn(db *gorm.DB, day time.Time) *gorm.DB {
	return db.Model(&domain.Pig{}).Where("kind = ? AND last_update_date = ?", domain.KindHand, day)
}

func handPigsWithWins(db *gorm.DB) *gorm.DB {
	return db.Model(&domain.Pig{}).Where("kind = ? AND win_count > 0", domain.KindHand)
}

// CountChatPigs returns the number of pigs in a chat.
func CountChatPigs(ctx context.Context, db *gorm.DB, chatID int64) (int64, error) {
	var total int64
	err := chatPigs(db.WithContext(ctx), chatID).Count(&total).Error
	return total, err
}

// TopChatPigs returns a page of a chat's pigs, heaviest first.
func TopChatPigs(ctx context.Context, db *gorm.DB, chatID int64, offset, limit int) ([]domain.Pig, error) {
	var out []domain.Pig
	err := chatPigs(db.WithContext(ctx), chatID).
		Order("mass DESC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// CountHandPigsOn returns the number of hand pigs refreshed on day.
func CountHandPigsOn(ctx context.Context, db *gorm.DB, day time.Time) (int64, error) {
	var total int64
	err := handPigsOn(db.WithContext(ctx), day).Count(&total).Error
	return total, err
}

// TopHandPigsOn returns a page of hand pigs refreshed on day, heaviest first.
func TopHandPigsOn(ctx context.Context, db *gorm.DB, day time.Time, offset, limit int) ([]domain.Pig, error) {
	var out []domain.Pig
	err := handPigsOn(db.WithContext(ctx), day).
		Order("mass DESC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// CountWinners returns the number of hand pigs with at least one win.
func CountWinners(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := handPigsWithWins(db.WithContext(ctx)).Count(&total).Error
	return total, err
}

// TopWinners returns a page of hand pigs ordered by duel wins.
func TopWinners(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Pig, error) {
	var out []domain.Pig
	err := handPigsWithWins(db.WithContext(ctx)).
		Order("win_count DESC, loss_count ASC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// ChatTopStats returns the number of pigs in a chat and the greatest
// UpdatedAt among them. maxUpdatedAt is nil for an empty chat.
func ChatTopStats(ctx context.Context, db *gorm.DB, chatID int64) (count int64, maxUpdatedAt *time.Time, err error) {
	q := chatPigs(db.WithContext(ctx), chatID)

	// Count
	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest updated_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		UpdatedAt time.Time
	}
	if err = chatPigs(db.WithContext(ctx), chatID).Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}
