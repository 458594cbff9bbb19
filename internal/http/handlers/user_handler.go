// User HTTP handler.
//
//   - PUT /users/{id}   (record a user and its support tier)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fr0staman/pigbot/internal/domain"
)

// UpsertUserRequest carries the user's profile and support flags.
type UpsertUserRequest struct {
	FirstName  string `json:"first_name" example:"Vasya"`
	Subscribed bool   `json:"subscribed"`
	Supported  bool   `json:"supported"`
}

// UpsertUser godoc
// @ID          upsertUser
// @Summary     Create or update a user
// @Description The support tier adds a flat bonus to the daily hand pig.
// @Tags        Users
// @Accept      json
// @Param       id    path  int  true  "Telegram user id"
// @Param       body  body  handlers.UpsertUserRequest  true  "Profile"
// @Success     204
// @Failure     400  {object}  handlers.ErrorResponse
// @Router      /users/{id} [put]
func (h *Handlers) UpsertUser(c *gin.Context) {
	id, okID := ownerParam(c, "id")
	if !okID {
		return
	}
	var req UpsertUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid user payload")
		return
	}

	err := h.users.Upsert(c.Request.Context(), &domain.User{
		ID:         id,
		FirstName:  req.FirstName,
		Subscribed: req.Subscribed,
		Supported:  req.Supported,
	})
	if err != nil {
		failService(c, err, "upsert user failed")
		return
	}
	noContent(c)
}
