package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fr0staman/pigbot/internal/domain"
	"github.com/fr0staman/pigbot/internal/game"
	"github.com/fr0staman/pigbot/internal/http/middleware"
	"github.com/fr0staman/pigbot/internal/repo"
	"github.com/fr0staman/pigbot/internal/services"
)

//
// Service contracts (context-aware)
//

// GameService covers chat pig feeding, hand pigs, renames and overclock.
type GameService interface {
	Feed(ctx context.Context, req services.FeedRequest) (*services.FeedResult, error)
	ChatPig(ctx context.Context, ownerID uint64, chatID int64, now time.Time) (*services.ChatPigView, error)
	HandPig(ctx context.Context, ownerID uint64, firstName string, now time.Time) (*services.HandPigView, error)
	RenameChatPig(ctx context.Context, ownerID uint64, chatID int64, name string) (*domain.Pig, error)
	RenameHandPig(ctx context.Context, ownerID uint64, name string) (*domain.Pig, error)
	Overclock(ownerID uint64, now time.Time) game.Overclock
}

// DuelService resolves accepted duel challenges.
type DuelService interface {
	Start(ctx context.Context, req services.DuelRequest) (*services.DuelResult, error)
}

// AchievementService evaluates and records achievements.
type AchievementService interface {
	Check(ctx context.Context, pigID uint, now time.Time) ([]game.Code, error)
}

// LeaderboardService serves paginated boards.
type LeaderboardService interface {
	ChatTop(ctx context.Context, chatID int64, page, pageSize int) ([]domain.Pig, int64, error)
	HandTop(ctx context.Context, variant domain.TopVariant, now time.Time, page, pageSize int) ([]domain.Pig, int64, error)
}

// UserService maintains the user directory.
type UserService interface {
	Upsert(ctx context.Context, u *domain.User) error
}

//
// Handler wiring
//

// Handlers groups the game endpoints.
type Handlers struct {
	game         GameService
	duels        DuelService
	achievements AchievementService
	boards       LeaderboardService
	users        UserService

	// db backs ETags and idempotent replays; nil disables both.
	db      *gorm.DB
	idemTTL time.Duration
	now     func() time.Time
}

// New constructs Handlers bound to the given services.
func New(game GameService, duels DuelService, achievements AchievementService, boards LeaderboardService, users UserService) *Handlers {
	return &Handlers{
		game:         game,
		duels:        duels,
		achievements: achievements,
		boards:       boards,
		users:        users,
		idemTTL:      24 * time.Hour,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// WithStore enables leaderboard ETags and stores idempotent responses in db
// for ttl.
func (h *Handlers) WithStore(db *gorm.DB, ttl time.Duration) *Handlers {
	h.db = db
	if ttl > 0 {
		h.idemTTL = ttl
	}
	return h
}

//
// Helpers
//

func ownerParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}

func chatParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("chat_id"), 10, 64)
	if err != nil || id == 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "chat_id must be a non-zero integer")
		return 0, false
	}
	return id, true
}

// replay serves the stored response for this request's Idempotency-Key and
// reports whether it did.
func (h *Handlers) replay(c *gin.Context) bool {
	key, has := middleware.GetIdempotencyKey(c)
	if !has || h.db == nil {
		return false
	}
	rec, err := repo.GetIdempotency(c.Request.Context(), h.db, middleware.IdempotencyClient(c), c.FullPath(), key, h.now())
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			middleware.LoggerFrom(c).Warn().Err(err).Msg("idempotency replay lookup failed")
		}
		return false
	}
	c.Header("Idempotency-Replayed", "true")
	c.Data(rec.Status, "application/json; charset=utf-8", rec.Body)
	return true
}

// respond writes body and, when the request carried an Idempotency-Key,
// stores it for replay. Storing is best effort.
func (h *Handlers) respond(c *gin.Context, status int, body any) {
	key, has := middleware.GetIdempotencyKey(c)
	if !has || h.db == nil {
		ok(c, status, body)
		return
	}

	raw, err := json.Marshal(body)
	if err != nil {
		_ = c.Error(err)
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "encode response")
		return
	}
	if _, err := repo.CreateIdempotency(c.Request.Context(), h.db, middleware.IdempotencyClient(c), c.FullPath(), key, status, raw, h.idemTTL); err != nil && !errors.Is(err, repo.ErrDuplicate) {
		middleware.LoggerFrom(c).Warn().Err(err).Msg("idempotency store failed")
	}
	c.Data(status, "application/json; charset=utf-8", raw)
}
