// Leaderboard HTTP handlers.
//
//   - GET /chats/{chat_id}/top   (chat pigs by mass, ETag support)
//   - GET /top/hand              (global hand pig boards)
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fr0staman/pigbot/internal/domain"
	"github.com/fr0staman/pigbot/internal/game"
	"github.com/fr0staman/pigbot/internal/repo"
	"github.com/fr0staman/pigbot/internal/services"
	"github.com/fr0staman/pigbot/internal/utils"
)

const defaultTopPageSize = 10

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// TopEntry is one ranked pig.
type TopEntry struct {
	Rank  int    `json:"rank"`
	Emoji string `json:"emoji"`
	domain.Pig
}

// TopResponse is a leaderboard page.
type TopResponse struct {
	Board      string     `json:"board"`
	Pigs       []TopEntry `json:"pigs"`
	Pagination Pagination `json:"pagination"`
}

func topPage(c *gin.Context) (page, pageSize int) {
	return utils.PageParams(c.Query("page"), c.Query("page_size"), defaultTopPageSize, services.TopLimit)
}

func newTopResponse(board string, pigs []domain.Pig, total int64, page, pageSize int) TopResponse {
	entries := make([]TopEntry, 0, len(pigs))
	first := (page-1)*pageSize + 1
	for i, p := range pigs {
		entries = append(entries, TopEntry{Rank: first + i, Emoji: game.PigEmoji(p.Mass), Pig: p})
	}
	totalPages := utils.TotalPages(total, pageSize)
	return TopResponse{
		Board: board,
		Pigs:  entries,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	}
}

// ChatTop godoc
// @ID          chatTop
// @Summary     Chat leaderboard
// @Description Chat pigs ordered by mass. Supports If-None-Match.
// @Tags        Leaderboards
// @Produce     json
// @Param       chat_id    path   int  true   "Telegram chat id"
// @Param       page       query  int  false  "Page number"     minimum(1) default(1)
// @Param       page_size  query  int  false  "Items per page"  minimum(1) maximum(50) default(10)
// @Success     200  {object}  handlers.TopResponse
// @Success     304  "Not modified"
// @Router      /chats/{chat_id}/top [get]
func (h *Handlers) ChatTop(c *gin.Context) {
	chatID, okChat := chatParam(c)
	if !okChat {
		return
	}
	page, pageSize := topPage(c)
	ctx := c.Request.Context()

	// ETag pre-check (best effort).
	if h.db != nil {
		if count, maxTS, err := repo.ChatTopStats(ctx, h.db, chatID); err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.UnixNano()
			}
			etag := fmt.Sprintf(`W/"top:%d:%d:%d:%d:%d"`, chatID, count, ts, page, pageSize)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	pigs, total, err := h.boards.ChatTop(ctx, chatID, page, pageSize)
	if err != nil {
		failService(c, err, "list failed")
		return
	}
	ok(c, http.StatusOK, newTopResponse(string(domain.TopChat), pigs, total, page, pageSize))
}

// HandTop godoc
// @ID          handTop
// @Summary     Global hand pig leaderboard
// @Tags        Leaderboards
// @Produce     json
// @Param       variant    query  string  false  "global, win, p_global or p_win"  default(global)
// @Param       page       query  int     false  "Page number"     minimum(1) default(1)
// @Param       page_size  query  int     false  "Items per page"  minimum(1) maximum(50) default(10)
// @Success     200  {object}  handlers.TopResponse
// @Failure     400  {object}  handlers.ErrorResponse
// @Router      /top/hand [get]
func (h *Handlers) HandTop(c *gin.Context) {
	variant := domain.TopGlobal
	if raw := c.Query("variant"); raw != "" {
		v, known := domain.ParseTopVariant(raw)
		if !known {
			fail(c, http.StatusBadRequest, ErrCodeUnknownBoard, "unknown variant")
			return
		}
		variant = v
	}
	page, pageSize := topPage(c)

	pigs, total, err := h.boards.HandTop(c.Request.Context(), variant, h.now(), page, pageSize)
	if err != nil {
		failService(c, err, "list failed")
		return
	}
	ok(c, http.StatusOK, newTopResponse(string(variant.Summarize()), pigs, total, page, pageSize))
}
