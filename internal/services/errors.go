// Package services defines the game use-cases: feeding chat pigs, refreshing
// hand pigs, duels, achievements and leaderboards. This file centralizes the
// service-level error values so callers can check them with errors.Is.
//
// Translation into user-facing text or HTTP status codes happens in the
// handler layer; services only return structured outcomes or typed errors.
package services

import (
	"errors"
	"fmt"

	"github.com/fr0staman/pigbot/internal/game"
)

var (
	// ErrNoPig is returned when the acting user (or a duel participant) has no
	// pig in the required scope.
	ErrNoPig = errors.New("no pig")

	// ErrPigNotFound indicates that a pig addressed by id does not exist.
	ErrPigNotFound = errors.New("pig not found")

	// ErrAlreadyFed is returned when a chat pig was already fed today.
	// The concrete error is *AlreadyFedError.
	ErrAlreadyFed = errors.New("pig already fed today")

	// ErrSelfDuel is returned when a user accepts their own duel.
	ErrSelfDuel = errors.New("cannot duel yourself")

	// ErrEmptyName is returned when a new pig name is empty after escaping.
	ErrEmptyName = errors.New("name is empty")

	// ErrNameTooLong is returned when a new chat pig name exceeds the limit.
	ErrNameTooLong = errors.New("name too long")

	// ErrInvalidUser is returned when a user record has no id.
	ErrInvalidUser = errors.New("user id is required")
)

// AlreadyFedError carries the time left until the next feed.
type AlreadyFedError struct {
	Next game.Countdown
}

func (e *AlreadyFedError) Error() string {
	return fmt.Sprintf("%s: next feed in %02d:%02d:%02d", ErrAlreadyFed, e.Next.Hours, e.Next.Minutes, e.Next.Seconds)
}

// Unwrap makes errors.Is(err, ErrAlreadyFed) hold.
func (e *AlreadyFedError) Unwrap() error { return ErrAlreadyFed }
