// Package httpapi wires the Gin transport to the game services, middleware
// and handlers. The bot frontend is the only client: it forwards Telegram
// updates as API calls and renders the JSON results.
//
// Middleware order:
//  1. OpenTelemetry, RequestID, Logger, Recovery (observability first)
//  2. Body limit, Prometheus metrics, gzip
//  3. CORS and security headers
//  4. On the API group: ServiceAuth, then the idempotency validator, then
//     the rate limiter (replays bypass the limiter)
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/fr0staman/pigbot/internal/config"
	"github.com/fr0staman/pigbot/internal/docs"
	"github.com/fr0staman/pigbot/internal/duelguard"
	"github.com/fr0staman/pigbot/internal/events"
	"github.com/fr0staman/pigbot/internal/http/handlers"
	"github.com/fr0staman/pigbot/internal/http/middleware"
	"github.com/fr0staman/pigbot/internal/repo"
	"github.com/fr0staman/pigbot/internal/services"
)

const maxBodyBytes = 64 << 10

// Deps are the long-lived collaborators shared by every request.
type Deps struct {
	DB *gorm.DB
	// Events receives duel outcomes, feeds and unlocks. Nil means no-op.
	Events events.Publisher
	// Guard serializes duels per inline message. Nil creates a fresh one.
	Guard *duelguard.Guard
}

// newHandlers builds the service graph over the repo package.
func newHandlers(deps Deps, cfg config.Config) *handlers.Handlers {
	store := repo.Store{}
	pub := deps.Events
	if pub == nil {
		pub = events.Nop{}
	}
	guard := deps.Guard
	if guard == nil {
		guard = duelguard.New()
	}

	users := services.NewUserService(deps.DB, store)

	ach := services.NewAchievementService(deps.DB, store, store)
	ach.Events = pub

	game := services.NewGameService(deps.DB, store, users, ach)
	game.Events = pub
	if cfg.Game.ChatPigStartMass > 0 {
		game.StartMass = cfg.Game.ChatPigStartMass
	}

	duels := services.NewDuelService(deps.DB, store, users, guard)
	duels.Events = pub
	duels.Delay = cfg.Game.DuelDelay

	boards := services.NewLeaderboardService(deps.DB, store)

	return handlers.New(game, duels, ach, boards, users).WithStore(deps.DB, cfg.IdempotencyTTL)
}

// idempotencyLookup reports whether a live stored response exists.
func idempotencyLookup(db *gorm.DB) middleware.IdempotencyLookup {
	return func(ctx context.Context, client, route, key string, now time.Time) (bool, error) {
		_, err := repo.GetIdempotency(ctx, db, client, route, key, now)
		if errors.Is(err, repo.ErrNotFound) {
			return false, nil
		}
		return err == nil, err
	}
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept", "Authorization", "If-None-Match",
			middleware.HeaderIdempotencyKey, middleware.HeaderTelegramUser,
		},
		ExposeHeaders: []string{"X-Request-ID", "ETag", "Retry-After", "Idempotency-Replayed"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}

// RegisterRoutes attaches middleware, infrastructure endpoints and the game
// API under cfg.APIBasePath.
func RegisterRoutes(r *gin.Engine, deps Deps, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(limitBody(maxBodyBytes))

	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(cors.New(corsConfig(cfg.CORS.AllowedOrigins)))
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS: cfg.Security.EnableHSTS,
		HSTSMaxAge: cfg.Security.HSTSMaxAge,
	}))

	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	if cfg.SwaggerEnabled {
		docs.SwaggerInfo.BasePath = cfg.APIBasePath
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	h := newHandlers(deps, cfg)
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByClientOrIP())

	api := groupWithPrefix(r, cfg.APIBasePath)
	api.Use(
		middleware.ServiceAuth(middleware.AuthOptions{
			Secret: []byte(cfg.Auth.SigningSecret),
			Issuer: cfg.Auth.Issuer,
		}),
		middleware.IdempotencyValidator(middleware.IdempotencyOptions{MaxLen: 200}, idempotencyLookup(deps.DB)),
		rl.Handler(),
	)
	{
		// Chat pigs
		api.POST("/chats/:chat_id/pigs/:owner_id/feed", middleware.NoStore(), h.FeedPig)
		api.GET("/chats/:chat_id/pigs/:owner_id", h.GetChatPig)
		api.PUT("/chats/:chat_id/pigs/:owner_id/name", h.RenameChatPig)
		api.GET("/chats/:chat_id/top", h.ChatTop)

		// Hand pigs
		api.GET("/pigs/:owner_id", h.GetHandPig)
		api.PUT("/pigs/:owner_id/name", h.RenameHandPig)
		api.GET("/pigs/:owner_id/overclock", h.GetOverclock)
		api.GET("/top/hand", h.HandTop)

		// Duels
		api.POST("/duels", middleware.NoStore(), h.StartDuel)

		// Achievements
		api.GET("/achievements", h.ListAchievements)
		api.POST("/achievements/check", middleware.NoStore(), h.CheckAchievements)

		// Users and inline feedback
		api.PUT("/users/:id", h.UpsertUser)
		api.POST("/inline/chosen", h.ChosenInline)
	}
}

// limitBody caps request bodies at maxBytes; larger bodies fail to bind.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
