package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/fr0staman/pigbot/internal/domain"
)

// UserRepository stores bot users and their support flags.
type UserRepository interface {
	GetUser(ctx context.Context, db *gorm.DB, id uint64) (*domain.User, error)
	UpsertUser(ctx context.Context, db *gorm.DB, u *domain.User) error
}

// UserService keeps the bot user directory. It is the UserStatusProvider
// used by hand pig refreshes.
type UserService struct {
	DB   *gorm.DB
	Repo UserRepository
}

// NewUserService constructs a UserService.
func NewUserService(db *gorm.DB, r UserRepository) *UserService {
	return &UserService{DB: db, Repo: r}
}

// UserStatus returns the owner's tier; unknown owners are plain.
func (s *UserService) UserStatus(ctx context.Context, ownerID uint64) (domain.UserStatus, error) {
	u, err := s.Repo.GetUser(ctx, s.DB, ownerID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.StatusPlain, nil
	case err != nil:
		return domain.StatusPlain, fmt.Errorf("get user: %w", err)
	}
	return u.Status(), nil
}

// Upsert records a user and its support flags.
func (s *UserService) Upsert(ctx context.Context, u *domain.User) error {
	if u.ID == 0 {
		return ErrInvalidUser
	}
	u.FirstName = truncateColumns(escapeName(u.FirstName), maxNameColumns)
	return s.Repo.UpsertUser(ctx, s.DB, u)
}
