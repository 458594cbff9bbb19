package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/fr0staman/pigbot/internal/domain"
	"github.com/fr0staman/pigbot/internal/repo"
)

func decodeTop(t *testing.T, body []byte) TopResponse {
	t.Helper()
	var got TopResponse
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("decode top: %v", err)
	}
	return got
}

func TestChatTop_RanksAndPagination(t *testing.T) {
	hs := newHarness(t, nil)
	hs.boards.pigs = []domain.Pig{{ID: 3, Name: "c", Mass: 40}, {ID: 4, Name: "d", Mass: 30}}
	hs.boards.total = 12

	w := hs.do(http.MethodGet, "/chats/5/top?page=2&page_size=2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	if hs.boards.page != 2 || hs.boards.size != 2 {
		t.Fatalf("page=%d size=%d", hs.boards.page, hs.boards.size)
	}

	got := decodeTop(t, w.Body.Bytes())
	if got.Board != "chat" || len(got.Pigs) != 2 {
		t.Fatalf("unexpected page: %+v", got)
	}
	if got.Pigs[0].Rank != 3 || got.Pigs[1].Rank != 4 || got.Pigs[0].Name != "c" {
		t.Fatalf("ranks = %d, %d", got.Pigs[0].Rank, got.Pigs[1].Rank)
	}
	p := got.Pagination
	if p.Total != 12 || p.TotalPages != 6 || !p.HasNext {
		t.Fatalf("pagination = %+v", p)
	}
}

func TestChatTop_DefaultsAndCap(t *testing.T) {
	hs := newHarness(t, nil)

	hs.do(http.MethodGet, "/chats/5/top", nil)
	if hs.boards.page != 1 || hs.boards.size != defaultTopPageSize {
		t.Fatalf("defaults page=%d size=%d", hs.boards.page, hs.boards.size)
	}

	hs.do(http.MethodGet, "/chats/5/top?page=-3&page_size=1000", nil)
	if hs.boards.page != 1 || hs.boards.size != 50 {
		t.Fatalf("capped page=%d size=%d", hs.boards.page, hs.boards.size)
	}
}

func TestChatTop_ETag(t *testing.T) {
	db := newTestDB(t)
	if _, err := repo.CreatePig(context.Background(), db, 1, domain.ChatScope(5), "a", 10, fixedNow); err != nil {
		t.Fatalf("seed: %v", err)
	}
	hs := newHarness(t, db)
	hs.boards.pigs = []domain.Pig{{ID: 1, Name: "a", Mass: 10}}
	hs.boards.total = 1

	first := hs.do(http.MethodGet, "/chats/5/top", nil)
	etag := first.Header().Get("ETag")
	if first.Code != http.StatusOK || etag == "" {
		t.Fatalf("status = %d etag=%q", first.Code, etag)
	}

	second := hs.do(http.MethodGet, "/chats/5/top", nil, "If-None-Match", etag)
	if second.Code != http.StatusNotModified || second.Body.Len() != 0 {
		t.Fatalf("status = %d body=%q", second.Code, second.Body.String())
	}

	other := hs.do(http.MethodGet, "/chats/5/top?page=2", nil, "If-None-Match", etag)
	if other.Code != http.StatusOK {
		t.Fatalf("a different page must not match the etag: %d", other.Code)
	}

	if _, err := repo.CreatePig(context.Background(), db, 2, domain.ChatScope(5), "b", 20, fixedNow); err != nil {
		t.Fatalf("seed: %v", err)
	}
	third := hs.do(http.MethodGet, "/chats/5/top", nil, "If-None-Match", etag)
	if third.Code != http.StatusOK || third.Header().Get("ETag") == etag {
		t.Fatalf("etag did not change after a new pig: %d", third.Code)
	}
}

func TestChatTop_Errors(t *testing.T) {
	hs := newHarness(t, nil)
	if w := hs.do(http.MethodGet, "/chats/0/top", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("zero chat: %d", w.Code)
	}
	hs.boards.err = errors.New("db down")
	if w := hs.do(http.MethodGet, "/chats/5/top", nil); w.Code != http.StatusInternalServerError {
		t.Fatalf("db error: %d", w.Code)
	}
}

func TestHandTop_Variants(t *testing.T) {
	hs := newHarness(t, nil)
	hs.boards.pigs = []domain.Pig{{ID: 9, Mass: 500, WinCount: 4}}
	hs.boards.total = 1

	w := hs.do(http.MethodGet, "/top/hand", nil)
	if w.Code != http.StatusOK || hs.boards.variant != domain.TopGlobal || decodeTop(t, w.Body.Bytes()).Board != "global" {
		t.Fatalf("default variant: %d %s", w.Code, hs.boards.variant)
	}

	w = hs.do(http.MethodGet, "/top/hand?variant=p_win", nil)
	got := decodeTop(t, w.Body.Bytes())
	if hs.boards.variant != domain.TopPWin || got.Board != "win" || got.Pigs[0].Rank != 1 || got.Pagination.HasNext {
		t.Fatalf("p_win: variant=%s board=%s", hs.boards.variant, got.Board)
	}

	w = hs.do(http.MethodGet, "/top/hand?variant=weekly", nil)
	if w.Code != http.StatusBadRequest || decodeError(t, w).Code != ErrCodeUnknownBoard {
		t.Fatalf("unknown variant: %d %s", w.Code, w.Body.String())
	}
}
