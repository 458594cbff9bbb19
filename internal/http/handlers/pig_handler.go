// Pig HTTP handlers.
//
// This file exposes the per-owner pig endpoints:
//   - POST /chats/{chat_id}/pigs/{owner_id}/feed   (daily feed, idempotent)
//   - GET  /chats/{chat_id}/pigs/{owner_id}        (chat pig info)
//   - PUT  /chats/{chat_id}/pigs/{owner_id}/name   (rename chat pig)
//   - GET  /pigs/{owner_id}                        (daily hand pig)
//   - PUT  /pigs/{owner_id}/name                   (rename hand pig)
//   - GET  /pigs/{owner_id}/overclock              (overclock report)
//   - POST /achievements/check                     (evaluate achievements)
//   - GET  /achievements                           (catalog)
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fr0staman/pigbot/internal/game"
	"github.com/fr0staman/pigbot/internal/services"
)

//
// DTOs
//

// FeedPigRequest is the optional body of a feed. FirstName names a pig
// created by this feed.
type FeedPigRequest struct {
	FirstName string `json:"first_name" example:"Vasya"`
}

// RenamePigRequest is the body of the rename endpoints.
type RenamePigRequest struct {
	Name string `json:"name" binding:"required" example:"Hryundel the Great"`
}

// CheckAchievementsRequest names the pig to evaluate.
type CheckAchievementsRequest struct {
	PigID uint `json:"pig_id" binding:"required" example:"7"`
}

// AchievementDTO is one achievement as shown to clients.
type AchievementDTO struct {
	Code int16  `json:"code" example:"203"`
	Name string `json:"name" example:"hundred_club"`
}

// CheckAchievementsResponse lists the codes unlocked by a check.
type CheckAchievementsResponse struct {
	PigID    uint             `json:"pig_id"`
	Unlocked []AchievementDTO `json:"unlocked"`
}

func achievementDTOs(codes []game.Code) []AchievementDTO {
	out := make([]AchievementDTO, 0, len(codes))
	for _, code := range codes {
		out = append(out, AchievementDTO{Code: int16(code), Name: code.String()})
	}
	return out
}

//
// Handlers
//

// FeedPig godoc
// @ID          feedPig
// @Summary     Feed a chat pig
// @Description Grows the owner's chat pig once per game day, creating it on the first feed.
// @Description Supports Idempotency-Key for safe retries.
// @Tags        Pigs
// @Accept      json
// @Produce     json
// @Param       chat_id          path    int     true  "Telegram chat id"
// @Param       owner_id         path    int     true  "Telegram user id"
// @Param       Idempotency-Key  header  string  false "Idempotency key"
// @Param       body             body    handlers.FeedPigRequest  false  "Feed payload"
// @Success     200  {object}  services.FeedResult
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     409  {object}  handlers.ErrorResponse  "Already fed today"
// @Router      /chats/{chat_id}/pigs/{owner_id}/feed [post]
func (h *Handlers) FeedPig(c *gin.Context) {
	chatID, okChat := chatParam(c)
	if !okChat {
		return
	}
	ownerID, okOwner := ownerParam(c, "owner_id")
	if !okOwner {
		return
	}

	var req FeedPigRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid feed payload")
			return
		}
	}

	if h.replay(c) {
		return
	}

	res, err := h.game.Feed(c.Request.Context(), services.FeedRequest{
		OwnerID:   ownerID,
		ChatID:    chatID,
		FirstName: req.FirstName,
		Now:       h.now(),
	})
	if err != nil {
		failService(c, err, "feed failed")
		return
	}
	h.respond(c, http.StatusOK, res)
}

// GetChatPig godoc
// @ID          getChatPig
// @Summary     Get a chat pig
// @Tags        Pigs
// @Produce     json
// @Param       chat_id   path  int  true  "Telegram chat id"
// @Param       owner_id  path  int  true  "Telegram user id"
// @Success     200  {object}  services.ChatPigView
// @Failure     404  {object}  handlers.ErrorResponse  "No pig in this chat"
// @Router      /chats/{chat_id}/pigs/{owner_id} [get]
func (h *Handlers) GetChatPig(c *gin.Context) {
	chatID, okChat := chatParam(c)
	if !okChat {
		return
	}
	ownerID, okOwner := ownerParam(c, "owner_id")
	if !okOwner {
		return
	}

	view, err := h.game.ChatPig(c.Request.Context(), ownerID, chatID, h.now())
	if err != nil {
		failService(c, err, "get pig failed")
		return
	}
	ok(c, http.StatusOK, view)
}

// RenameChatPig godoc
// @ID          renameChatPig
// @Summary     Rename a chat pig
// @Tags        Pigs
// @Accept      json
// @Produce     json
// @Param       chat_id   path  int  true  "Telegram chat id"
// @Param       owner_id  path  int  true  "Telegram user id"
// @Param       body      body  handlers.RenamePigRequest  true  "New name"
// @Success     200  {object}  domain.Pig
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /chats/{chat_id}/pigs/{owner_id}/name [put]
func (h *Handlers) RenameChatPig(c *gin.Context) {
	chatID, okChat := chatParam(c)
	if !okChat {
		return
	}
	ownerID, okOwner := ownerParam(c, "owner_id")
	if !okOwner {
		return
	}
	var req RenamePigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name required")
		return
	}

	pig, err := h.game.RenameChatPig(c.Request.Context(), ownerID, chatID, req.Name)
	if err != nil {
		failService(c, err, "rename failed")
		return
	}
	ok(c, http.StatusOK, pig)
}

// GetHandPig godoc
// @ID          getHandPig
// @Summary     Get the daily hand pig
// @Description Creates the hand pig on first use and refreshes its mass once per game day.
// @Tags        Pigs
// @Produce     json
// @Param       owner_id    path   int     true   "Telegram user id"
// @Param       first_name  query  string  false  "Owner first name, names a new pig"
// @Success     200  {object}  services.HandPigView
// @Router      /pigs/{owner_id} [get]
func (h *Handlers) GetHandPig(c *gin.Context) {
	ownerID, okOwner := ownerParam(c, "owner_id")
	if !okOwner {
		return
	}

	view, err := h.game.HandPig(c.Request.Context(), ownerID, c.Query("first_name"), h.now())
	if err != nil {
		failService(c, err, "get hand pig failed")
		return
	}
	ok(c, http.StatusOK, view)
}

// RenameHandPig godoc
// @ID          renameHandPig
// @Summary     Rename the hand pig
// @Tags        Pigs
// @Accept      json
// @Produce     json
// @Param       owner_id  path  int  true  "Telegram user id"
// @Param       body      body  handlers.RenamePigRequest  true  "New name"
// @Success     200  {object}  domain.Pig
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /pigs/{owner_id}/name [put]
func (h *Handlers) RenameHandPig(c *gin.Context) {
	ownerID, okOwner := ownerParam(c, "owner_id")
	if !okOwner {
		return
	}
	var req RenamePigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name required")
		return
	}

	pig, err := h.game.RenameHandPig(c.Request.Context(), ownerID, req.Name)
	if err != nil {
		failService(c, err, "rename failed")
		return
	}
	ok(c, http.StatusOK, pig)
}

// GetOverclock godoc
// @ID          getOverclock
// @Summary     Overclock report
// @Description Cosmetic CPU, RAM and GPU values derived from the pig size of the day.
// @Tags        Pigs
// @Produce     json
// @Param       owner_id  path   int     true   "Telegram user id"
// @Param       date      query  string  false  "Game day, YYYY-MM-DD (default today)"
// @Success     200  {object}  game.Overclock
// @Failure     400  {object}  handlers.ErrorResponse
// @Router      /pigs/{owner_id}/overclock [get]
func (h *Handlers) GetOverclock(c *gin.Context) {
	ownerID, okOwner := ownerParam(c, "owner_id")
	if !okOwner {
		return
	}

	now := h.now()
	if raw := c.Query("date"); raw != "" {
		day, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "date must be YYYY-MM-DD")
			return
		}
		now = day
	}
	ok(c, http.StatusOK, h.game.Overclock(ownerID, now))
}

// CheckAchievements godoc
// @ID          checkAchievements
// @Summary     Evaluate achievements for a pig
// @Tags        Achievements
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.CheckAchievementsRequest  true  "Pig"
// @Success     200  {object}  handlers.CheckAchievementsResponse
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /achievements/check [post]
func (h *Handlers) CheckAchievements(c *gin.Context) {
	var req CheckAchievementsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "pig_id required")
		return
	}

	codes, err := h.achievements.Check(c.Request.Context(), req.PigID, h.now())
	if err != nil {
		failService(c, err, "achievement check failed")
		return
	}
	ok(c, http.StatusOK, CheckAchievementsResponse{PigID: req.PigID, Unlocked: achievementDTOs(codes)})
}

// ListAchievements godoc
// @ID          listAchievements
// @Summary     Achievement catalog
// @Tags        Achievements
// @Produce     json
// @Success     200  {array}  handlers.AchievementDTO
// @Router      /achievements [get]
func (h *Handlers) ListAchievements(c *gin.Context) {
	catalog := game.Catalog()
	codes := make([]game.Code, 0, len(catalog))
	for _, a := range catalog {
		codes = append(codes, a.Code)
	}
	ok(c, http.StatusOK, achievementDTOs(codes))
}
