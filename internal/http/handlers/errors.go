// Package handlers: stable error codes returned in ErrorResponse.code.
//
// Clients (the bot frontends) branch on these codes to pick the localized
// reply, so values never change once published.
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "already_fed",
//	  "message": "pig already fed today: next feed in 05:12:09"
//	}
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fr0staman/pigbot/internal/duelguard"
	"github.com/fr0staman/pigbot/internal/services"
)

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeUnauthorized     = "unauthorized"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Game:
	ErrCodeNoPig          = "no_pig"
	ErrCodeAlreadyFed     = "already_fed"
	ErrCodeSelfDuel       = "self_duel"
	ErrCodeDuelInProgress = "duel_in_progress"
	ErrCodeDuplicateDuel  = "duplicate_duel"
	ErrCodeNameEmpty      = "name_empty"
	ErrCodeNameTooLong    = "name_too_long"
	ErrCodeUnknownBoard   = "unknown_board"
)

// failService maps a service error to its status and code. Unknown errors
// become a logged 500 with the given fallback message.
func failService(c *gin.Context, err error, fallback string) {
	var fed *services.AlreadyFedError
	switch {
	case errors.As(err, &fed):
		c.Header("Retry-After", retryAfter(fed))
		fail(c, http.StatusConflict, ErrCodeAlreadyFed, err.Error())
	case errors.Is(err, services.ErrNoPig):
		fail(c, http.StatusNotFound, ErrCodeNoPig, err.Error())
	case errors.Is(err, services.ErrPigNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "pig not found")
	case errors.Is(err, services.ErrSelfDuel):
		fail(c, http.StatusBadRequest, ErrCodeSelfDuel, err.Error())
	case errors.Is(err, duelguard.ErrThreadBusy):
		fail(c, http.StatusConflict, ErrCodeDuelInProgress, err.Error())
	case errors.Is(err, duelguard.ErrDuplicateThread):
		fail(c, http.StatusConflict, ErrCodeDuplicateDuel, err.Error())
	case errors.Is(err, services.ErrEmptyName):
		fail(c, http.StatusBadRequest, ErrCodeNameEmpty, err.Error())
	case errors.Is(err, services.ErrNameTooLong):
		fail(c, http.StatusBadRequest, ErrCodeNameTooLong, err.Error())
	case errors.Is(err, services.ErrUnknownBoard):
		fail(c, http.StatusBadRequest, ErrCodeUnknownBoard, err.Error())
	case errors.Is(err, services.ErrInvalidUser):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	default:
		_ = c.Error(err)
		fail(c, http.StatusInternalServerError, ErrCodeInternal, fallback)
	}
}
