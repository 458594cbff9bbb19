// Package repo: pig repository functions.
//
// All functions are context-aware and accept a *gorm.DB handle, so they can
// run inside a transaction. They stay thin: no game rules, only persistence.
//
// Error semantics:
//   - A missing pig yields gorm.ErrRecordNotFound (exported as ErrNotFound).
//   - A second pig for the same owner and scope yields ErrDuplicate.
//   - Other DB errors are propagated unchanged.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/fr0staman/pigbot/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrDuplicate indicates a unique constraint violation.
var ErrDuplicate = errors.New("duplicate")

// isUniqueViolation recognizes unique violations across drivers.
// glebarez/sqlite often returns plain-text errors for UNIQUE violations.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "unique constraint failed") ||
		strings.Contains(low, "constraint failed: unique") ||
		strings.Contains(low, "duplicate key value") ||
		strings.Contains(low, "duplicate entry")
}

func scoped(db *gorm.DB, ownerID uint64, scope domain.Scope) *gorm.DB {
	return db.Where("owner_id = ? AND kind = ? AND chat_id = ?", ownerID, scope.Kind, scope.ChatID)
}

// GetPig fetches the owner's pig in scope, or ErrNotFound.
func GetPig(ctx context.Context, db *gorm.DB, ownerID uint64, scope domain.Scope) (*domain.Pig, error) {
	var p domain.Pig
	if err := scoped(db.WithContext(ctx), ownerID, scope).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// GetPigByID fetches a pig by primary key, or ErrNotFound.
func GetPigByID(ctx context.Context, db *gorm.DB, id uint) (*domain.Pig, error) {
	var p domain.Pig
	if err := db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePig inserts a pig. date is stored as the last update day.
func CreatePig(ctx context.Context, db *gorm.DB, ownerID uint64, scope domain.Scope, name string, mass int, date time.Time) (*domain.Pig, error) {
	p := &domain.Pig{
		OwnerID:        ownerID,
		Kind:           scope.Kind,
		ChatID:         scope.ChatID,
		Name:           name,
		Mass:           mass,
		LastUpdateDate: date,
	}
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return p, nil
}

// UpdateMassAndDate sets the pig's mass and last update day.
func UpdateMassAndDate(ctx context.Context, db *gorm.DB, pigID uint, mass int, date time.Time) error {
	res := db.WithContext(ctx).
		Model(&domain.Pig{}).
		Where("id = ?", pigID).
		Updates(map[string]any{"mass": mass, "last_update_date": date})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateName renames the pig.
func UpdateName(ctx context.Context, db *gorm.DB, pigID uint, name string) error {
	res := db.WithContext(ctx).
		Model(&domain.Pig{}).
		Where("id = ?", pigID).
		Update("name", name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// BiggestMass returns the largest mass among the owner's pigs of kind, or 0.
func BiggestMass(ctx context.Context, db *gorm.DB, ownerID uint64, kind domain.PigKind) (int, error) {
	var row struct {
		Mass int
	}
	err := db.WithContext(ctx).
		Model(&domain.Pig{}).
		Select("mass").
		Where("owner_id = ? AND kind = ?", ownerID, kind).
		Order("mass DESC").
		Limit(1).
		Scan(&row).Error
	return row.Mass, err
}

// ApplyDuelResult adds delta to the pig's mass, never leaving it below 1,
// and bumps the requested duel counter.
func ApplyDuelResult(ctx context.Context, db *gorm.DB, pigID uint, delta int, win, loss bool) error {
	updates := map[string]any{
		"mass": gorm.Expr("CASE WHEN mass + ? < 1 THEN 1 ELSE mass + ? END", delta, delta),
	}
	if win {
		updates["win_count"] = gorm.Expr("win_count + 1")
	}
	if loss {
		updates["loss_count"] = gorm.Expr("loss_count + 1")
	}

	res := db.WithContext(ctx).
		Model(&domain.Pig{}).
		Where("id = ?", pigID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
