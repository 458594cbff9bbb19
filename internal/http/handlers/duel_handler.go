// Duel HTTP handler.
//
//   - POST /duels   (resolve an accepted challenge, idempotent)
//
// The bot frontend calls this when the opponent presses the duel button of
// an inline message. A retry with the same Idempotency-Key replays the first
// result instead of fighting again.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fr0staman/pigbot/internal/domain"
	"github.com/fr0staman/pigbot/internal/services"
)

// StartDuelRequest describes an accepted challenge. The challenger comes
// from challenger_id or, when omitted, from the button's callback data.
type StartDuelRequest struct {
	InlineMessageID string `json:"inline_message_id" binding:"required" example:"AgAAAL0xAAAp"`
	ChallengerID    uint64 `json:"challenger_id,omitempty" example:"100"`
	CallbackData    string `json:"callback_data,omitempty" example:"start_duel:100:"`
	OpponentID      uint64 `json:"opponent_id" binding:"required" example:"200"`
}

// challenger resolves the challenging user from the request.
func (r StartDuelRequest) challenger() (uint64, bool) {
	if r.ChallengerID != 0 {
		return r.ChallengerID, true
	}
	if r.CallbackData == "" {
		return 0, false
	}
	data, err := domain.ParseCallbackData(r.CallbackData)
	if err != nil || data.Action != domain.ActionStartDuel || data.UserID == 0 {
		return 0, false
	}
	return data.UserID, true
}

// StartDuel godoc
// @ID          startDuel
// @Summary     Resolve a duel
// @Description Refreshes both hand pigs, rolls and persists the outcome.
// @Description One duel per inline message at a time; repeats get 409.
// @Tags        Duels
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key  header  string  false "Idempotency key"
// @Param       body             body    handlers.StartDuelRequest  true  "Challenge"
// @Success     200  {object}  services.DuelResult
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request or self duel"
// @Failure     404  {object}  handlers.ErrorResponse  "A participant has no pig"
// @Failure     409  {object}  handlers.ErrorResponse  "Duel already running"
// @Router      /duels [post]
func (h *Handlers) StartDuel(c *gin.Context) {
	var req StartDuelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "inline_message_id, challenger_id and opponent_id are required")
		return
	}
	challengerID, ok := req.challenger()
	if !ok {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "challenger_id or start_duel callback_data is required")
		return
	}

	if h.replay(c) {
		return
	}

	res, err := h.duels.Start(c.Request.Context(), services.DuelRequest{
		InlineMessageID: req.InlineMessageID,
		ChallengerID:    challengerID,
		OpponentID:      req.OpponentID,
		Now:             h.now(),
	})
	if err != nil {
		failService(c, err, "duel failed")
		return
	}
	h.respond(c, http.StatusOK, res)
}
