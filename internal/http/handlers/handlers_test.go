package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fr0staman/pigbot/internal/domain"
	"github.com/fr0staman/pigbot/internal/duelguard"
	"github.com/fr0staman/pigbot/internal/game"
	"github.com/fr0staman/pigbot/internal/http/middleware"
	"github.com/fr0staman/pigbot/internal/repo"
	"github.com/fr0staman/pigbot/internal/services"
)

// ---------- fakes ----------

var fixedNow = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

var (
	errBusy      = fmt.Errorf("thread 1: %w", duelguard.ErrThreadBusy)
	errDuplicate = fmt.Errorf("owner 2: %w", duelguard.ErrDuplicateThread)
)

type fakeGame struct {
	feedReq   services.FeedRequest
	feedCalls int
	feedRes   *services.FeedResult
	feedErr   error

	chatView *services.ChatPigView
	handView *services.HandPigView
	handName string
	pig      *domain.Pig
	err      error

	overclockOwner uint64
	overclockAt    time.Time
}

func (f *fakeGame) Feed(_ context.Context, req services.FeedRequest) (*services.FeedResult, error) {
	f.feedCalls++
	f.feedReq = req
	return f.feedRes, f.feedErr
}

func (f *fakeGame) ChatPig(context.Context, uint64, int64, time.Time) (*services.ChatPigView, error) {
	return f.chatView, f.err
}

func (f *fakeGame) HandPig(_ context.Context, _ uint64, firstName string, _ time.Time) (*services.HandPigView, error) {
	f.handName = firstName
	return f.handView, f.err
}

func (f *fakeGame) RenameChatPig(_ context.Context, _ uint64, _ int64, name string) (*domain.Pig, error) {
	if f.err != nil {
		return nil, f.err
	}
	p := *f.pig
	p.Name = name
	return &p, nil
}

func (f *fakeGame) RenameHandPig(_ context.Context, _ uint64, name string) (*domain.Pig, error) {
	return f.RenameChatPig(context.Background(), 0, 0, name)
}

func (f *fakeGame) Overclock(ownerID uint64, now time.Time) game.Overclock {
	f.overclockOwner, f.overclockAt = ownerID, now
	return game.NewOverclock(42, ownerID)
}

type fakeDuels struct {
	calls int
	req   services.DuelRequest
	res   *services.DuelResult
	err   error
}

func (f *fakeDuels) Start(_ context.Context, req services.DuelRequest) (*services.DuelResult, error) {
	f.calls++
	f.req = req
	return f.res, f.err
}

type fakeAchievements struct {
	codes []game.Code
	err   error
}

func (f *fakeAchievements) Check(context.Context, uint, time.Time) ([]game.Code, error) {
	return f.codes, f.err
}

type fakeBoards struct {
	pigs    []domain.Pig
	total   int64
	variant domain.TopVariant
	page    int
	size    int
	err     error
}

func (f *fakeBoards) ChatTop(_ context.Context, _ int64, page, pageSize int) ([]domain.Pig, int64, error) {
	f.page, f.size = page, pageSize
	return f.pigs, f.total, f.err
}

func (f *fakeBoards) HandTop(_ context.Context, v domain.TopVariant, _ time.Time, page, pageSize int) ([]domain.Pig, int64, error) {
	f.variant, f.page, f.size = v, page, pageSize
	return f.pigs, f.total, f.err
}

type fakeUsers struct {
	got *domain.User
	err error
}

func (f *fakeUsers) Upsert(_ context.Context, u *domain.User) error {
	f.got = u
	return f.err
}

// ---------- harness ----------

type harness struct {
	game   *fakeGame
	duels  *fakeDuels
	ach    *fakeAchievements
	boards *fakeBoards
	users  *fakeUsers
	h      *Handlers
	r      *gin.Engine
}

func newHarness(t *testing.T, db *gorm.DB) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hs := &harness{
		game:   &fakeGame{pig: &domain.Pig{ID: 7, OwnerID: 1, Name: "old", Mass: 30}},
		duels:  &fakeDuels{},
		ach:    &fakeAchievements{},
		boards: &fakeBoards{},
		users:  &fakeUsers{},
	}
	hs.h = New(hs.game, hs.duels, hs.ach, hs.boards, hs.users)
	hs.h.now = func() time.Time { return fixedNow }
	if db != nil {
		hs.h.WithStore(db, time.Hour)
	}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.IdempotencyValidator(middleware.IdempotencyOptions{}, nil))
	r.POST("/chats/:chat_id/pigs/:owner_id/feed", hs.h.FeedPig)
	r.GET("/chats/:chat_id/pigs/:owner_id", hs.h.GetChatPig)
	r.PUT("/chats/:chat_id/pigs/:owner_id/name", hs.h.RenameChatPig)
	r.GET("/chats/:chat_id/top", hs.h.ChatTop)
	r.GET("/pigs/:owner_id", hs.h.GetHandPig)
	r.PUT("/pigs/:owner_id/name", hs.h.RenameHandPig)
	r.GET("/pigs/:owner_id/overclock", hs.h.GetOverclock)
	r.POST("/achievements/check", hs.h.CheckAchievements)
	r.GET("/achievements", hs.h.ListAchievements)
	r.POST("/duels", hs.h.StartDuel)
	r.GET("/top/hand", hs.h.HandTop)
	r.POST("/inline/chosen", hs.h.ChosenInline)
	r.PUT("/users/:id", hs.h.UpsertUser)
	hs.r = r
	return hs
}

func (hs *harness) do(method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	var rd *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		rd = bytes.NewReader(raw)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	hs.r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var er ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
		t.Fatalf("decode error body %q: %v", w.Body.String(), err)
	}
	return er
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := repo.OpenSQLite(filepath.Join(t.TempDir(), "handlers.db"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// ---------- error mapping ----------

func TestFailService_Mapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"already fed", &services.AlreadyFedError{Next: game.Countdown{Hours: 2}}, http.StatusConflict, ErrCodeAlreadyFed},
		{"no pig wrapped", errors.Join(errors.New("ctx"), services.ErrNoPig), http.StatusNotFound, ErrCodeNoPig},
		{"pig not found", services.ErrPigNotFound, http.StatusNotFound, ErrCodeNotFound},
		{"self duel", services.ErrSelfDuel, http.StatusBadRequest, ErrCodeSelfDuel},
		{"busy", errBusy, http.StatusConflict, ErrCodeDuelInProgress},
		{"duplicate", errDuplicate, http.StatusConflict, ErrCodeDuplicateDuel},
		{"empty name", services.ErrEmptyName, http.StatusBadRequest, ErrCodeNameEmpty},
		{"long name", services.ErrNameTooLong, http.StatusBadRequest, ErrCodeNameTooLong},
		{"board", services.ErrUnknownBoard, http.StatusBadRequest, ErrCodeUnknownBoard},
		{"user", services.ErrInvalidUser, http.StatusBadRequest, ErrCodeBadRequest},
		{"other", errors.New("db down"), http.StatusInternalServerError, ErrCodeInternal},
	}

	gin.SetMode(gin.TestMode)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			failService(c, tc.err, "fallback")

			if w.Code != tc.status {
				t.Fatalf("status = %d, want %d", w.Code, tc.status)
			}
			if er := decodeError(t, w); er.Code != tc.code {
				t.Fatalf("code = %q, want %q", er.Code, tc.code)
			}
		})
	}
}
