package handlers

import (
	"net/http"
	"testing"

	"github.com/fr0staman/pigbot/internal/domain"
	"github.com/fr0staman/pigbot/internal/http/middleware"
	"github.com/fr0staman/pigbot/internal/services"
)

func TestStartDuel_OK(t *testing.T) {
	hs := newHarness(t, nil)
	hs.duels.res = &services.DuelResult{
		InlineMessageID: "msg-1",
		Outcome:         "critical",
		Damage:          12,
		Winner:          domain.Pig{ID: 2, Mass: 112},
		Loser:           domain.Pig{ID: 1, Mass: 88},
	}

	w := hs.do(http.MethodPost, "/duels", StartDuelRequest{InlineMessageID: "msg-1", ChallengerID: 100, OpponentID: 200})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	want := services.DuelRequest{InlineMessageID: "msg-1", ChallengerID: 100, OpponentID: 200, Now: fixedNow}
	if hs.duels.req != want {
		t.Fatalf("duel request = %+v", hs.duels.req)
	}
}

func TestStartDuel_ChallengerFromCallbackData(t *testing.T) {
	hs := newHarness(t, nil)
	hs.duels.res = &services.DuelResult{InlineMessageID: "msg-2", Outcome: "win"}

	data, err := domain.CallbackData{Action: domain.ActionStartDuel, UserID: 100}.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	w := hs.do(http.MethodPost, "/duels", StartDuelRequest{InlineMessageID: "msg-2", CallbackData: data, OpponentID: 200})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	if hs.duels.req.ChallengerID != 100 || hs.duels.req.OpponentID != 200 {
		t.Fatalf("duel request = %+v", hs.duels.req)
	}
}

func TestStartDuel_MissingFields(t *testing.T) {
	hs := newHarness(t, nil)
	for _, body := range []any{
		map[string]any{"challenger_id": 1, "opponent_id": 2},
		map[string]any{"inline_message_id": "m", "opponent_id": 2},
		map[string]any{"inline_message_id": "m", "challenger_id": 1},
		map[string]any{"inline_message_id": "m", "opponent_id": 2, "callback_data": "top10:100:"},
		map[string]any{"inline_message_id": "m", "opponent_id": 2, "callback_data": "start_duel:x:"},
		"not an object",
	} {
		if w := hs.do(http.MethodPost, "/duels", body); w.Code != http.StatusBadRequest {
			t.Fatalf("body %v: status = %d", body, w.Code)
		}
	}
	if hs.duels.calls != 0 {
		t.Fatalf("service called %d times", hs.duels.calls)
	}
}

func TestStartDuel_Errors(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{services.ErrSelfDuel, http.StatusBadRequest, ErrCodeSelfDuel},
		{errBusy, http.StatusConflict, ErrCodeDuelInProgress},
		{errDuplicate, http.StatusConflict, ErrCodeDuplicateDuel},
		{services.ErrNoPig, http.StatusNotFound, ErrCodeNoPig},
	}
	for _, tc := range cases {
		hs := newHarness(t, nil)
		hs.duels.err = tc.err

		w := hs.do(http.MethodPost, "/duels", StartDuelRequest{InlineMessageID: "m", ChallengerID: 1, OpponentID: 2})
		if w.Code != tc.status || decodeError(t, w).Code != tc.code {
			t.Fatalf("%v: status = %d body=%s", tc.err, w.Code, w.Body.String())
		}
	}
}

func TestStartDuel_ReplayDoesNotFightAgain(t *testing.T) {
	hs := newHarness(t, newTestDB(t))
	hs.duels.res = &services.DuelResult{InlineMessageID: "m", Outcome: "win", Damage: 3}
	req := StartDuelRequest{InlineMessageID: "m", ChallengerID: 1, OpponentID: 2}

	first := hs.do(http.MethodPost, "/duels", req, middleware.HeaderIdempotencyKey, "duel-m")
	second := hs.do(http.MethodPost, "/duels", req, middleware.HeaderIdempotencyKey, "duel-m")

	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("statuses = %d, %d", first.Code, second.Code)
	}
	if second.Header().Get("Idempotency-Replayed") != "true" || second.Body.String() != first.Body.String() {
		t.Fatalf("second response was not a replay: %s", second.Body.String())
	}
	if hs.duels.calls != 1 {
		t.Fatalf("duel ran %d times, want 1", hs.duels.calls)
	}

	// Keys are scoped per route: the same key on the feed route is unrelated.
	hs.game.feedRes = &services.FeedResult{}
	w := hs.do(http.MethodPost, "/chats/5/pigs/1/feed", nil, middleware.HeaderIdempotencyKey, "duel-m")
	if w.Header().Get("Idempotency-Replayed") != "" || hs.game.feedCalls != 1 {
		t.Fatalf("feed replayed a duel response")
	}
}
