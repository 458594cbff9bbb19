// Inline result feedback.
//
//   - POST /inline/chosen   (record a chosen inline result)
//
// Telegram reports which inline result a user picked. The frontend forwards
// the result id here so the API can decode it and count it per kind.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fr0staman/pigbot/internal/domain"
	"github.com/fr0staman/pigbot/internal/metrics"
)

// ChosenInlineRequest is a chosen_inline_result update.
type ChosenInlineRequest struct {
	ResultID string `json:"result_id" binding:"required" example:"flag_change_info|3"`
	UserID   uint64 `json:"user_id" binding:"required" example:"100"`
}

// ChosenInlineResponse is the decoded result id.
type ChosenInlineResponse struct {
	Kind  domain.InlineKind `json:"kind" example:"flag_change_info"`
	Index *int              `json:"index,omitempty" example:"3"`
}

// ChosenInline godoc
// @ID          chosenInline
// @Summary     Record a chosen inline result
// @Tags        Inline
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.ChosenInlineRequest  true  "Chosen result"
// @Success     200   {object}  handlers.ChosenInlineResponse
// @Failure     400   {object}  handlers.ErrorResponse  "Unknown or malformed result id"
// @Router      /inline/chosen [post]
func (h *Handlers) ChosenInline(c *gin.Context) {
	var req ChosenInlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "result_id and user_id are required")
		return
	}
	res, err := domain.ParseInlineResult(req.ResultID)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	metrics.InlineChosen.WithLabelValues(string(res.Kind)).Inc()

	body := ChosenInlineResponse{Kind: res.Kind}
	if res.HasPayload() {
		body.Index = &res.Index
	}
	ok(c, http.StatusOK, body)
}
