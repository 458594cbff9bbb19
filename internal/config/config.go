// Package config loads pigbot settings from the environment. Every key has
// a default that runs a local sqlite instance; Load normalizes and validates.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// CORSConfig lists the origins allowed to call the API. Empty allows all.
type CORSConfig struct {
	AllowedOrigins []string // CORS_ALLOWED_ORIGINS, comma separated
}

// SecurityConfig controls HSTS on HTTPS responses.
type SecurityConfig struct {
	EnableHSTS bool          // ENABLE_HSTS
	HSTSMaxAge time.Duration // HSTS_MAX_AGE
}

// DBConfig selects the database. For sqlite the DSN is the file path.
type DBConfig struct {
	Driver string // DB_DRIVER: sqlite|postgres|mysql
	DSN    string // DB_DSN, falls back to Path for sqlite
	Path   string // DB_PATH
}

// AMQPConfig configures the notification publisher. An empty URL logs
// events instead of publishing them.
type AMQPConfig struct {
	URL      string // AMQP_URL
	Exchange string // AMQP_EXCHANGE
}

// AuthConfig configures service tokens for the bot frontend. An empty
// secret disables authentication.
type AuthConfig struct {
	SigningSecret string // API_SIGNING_SECRET
	Issuer        string // API_TOKEN_ISSUER
}

// GameConfig tunes the game rules that vary per deployment.
type GameConfig struct {
	ChatPigStartMass int           // CHAT_PIG_START_MASS
	DuelDelay        time.Duration // DUEL_DELAY
}

// OTELConfig configures trace export.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE
	ServiceName string  // OTEL_SERVICE_NAME
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// Config is the full pigbot configuration.
type Config struct {
	// HTTP server
	Port              string
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int
	GinMode           string // debug|release|test
	APIBasePath       string

	// Logging and docs
	LogLevel       string
	LogPretty      bool
	SwaggerEnabled bool

	DB   DBConfig
	AMQP AMQPConfig
	Auth AuthConfig
	Game GameConfig

	// Per client (or IP) token bucket
	RateRPS   float64
	RateBurst int

	CORS     CORSConfig
	Security SecurityConfig

	// IdempotencyTTL is how long a stored feed or duel response is replayed.
	IdempotencyTTL time.Duration

	OTEL OTELConfig
}

// MustLoad is Load for main packages; it panics on invalid settings.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads the environment, applies defaults, normalizes and validates.
func Load() (Config, error) {
	var cfg Config
	cfg.loadServer()
	cfg.loadStorage()
	cfg.loadGame()
	cfg.loadProtection()
	cfg.loadOTEL()
	cfg.normalize()
	return cfg, cfg.validate()
}

func (c *Config) loadServer() {
	c.Port = getenv("PORT", "8080")
	c.ReadTimeout = getdur("READ_TIMEOUT", 15*time.Second)
	c.ReadHeaderTimeout = getdur("READ_HEADER_TIMEOUT", 10*time.Second)
	c.WriteTimeout = getdur("WRITE_TIMEOUT", 20*time.Second)
	c.IdleTimeout = getdur("IDLE_TIMEOUT", 60*time.Second)
	c.MaxHeaderBytes = getint("MAX_HEADER_BYTES", 1<<20)
	c.GinMode = strings.ToLower(getenv("GIN_MODE", "release"))
	c.APIBasePath = normalizeBasePath(getenv("API_BASE_PATH", "/api/v1"))

	c.LogLevel = strings.ToLower(getenv("LOG_LEVEL", "info"))
	c.LogPretty = getbool("LOG_PRETTY", false)
	c.SwaggerEnabled = getbool("SWAGGER_ENABLED", false)
}

func (c *Config) loadStorage() {
	c.DB = DBConfig{
		Driver: strings.ToLower(getenv("DB_DRIVER", "sqlite")),
		DSN:    getenv("DB_DSN", ""),
		Path:   getenv("DB_PATH", "pigbot.db"),
	}
	c.AMQP = AMQPConfig{
		URL:      getenv("AMQP_URL", ""),
		Exchange: getenv("AMQP_EXCHANGE", "pigbot.events"),
	}
	c.Auth = AuthConfig{
		SigningSecret: getenv("API_SIGNING_SECRET", ""),
		Issuer:        getenv("API_TOKEN_ISSUER", "pigbot"),
	}
}

func (c *Config) loadGame() {
	c.Game = GameConfig{
		ChatPigStartMass: getint("CHAT_PIG_START_MASS", 1),
		DuelDelay:        getdur("DUEL_DELAY", 0),
	}
}

func (c *Config) loadProtection() {
	c.RateRPS = getfloat("RATE_RPS", 5.0)
	c.RateBurst = getint("RATE_BURST", 10)
	c.CORS = CORSConfig{AllowedOrigins: splitCSV(getenv("CORS_ALLOWED_ORIGINS", ""))}
	c.Security = SecurityConfig{
		EnableHSTS: getbool("ENABLE_HSTS", false),
		HSTSMaxAge: getdur("HSTS_MAX_AGE", 180*24*time.Hour),
	}
	c.IdempotencyTTL = getdur("IDEMPOTENCY_TTL", 24*time.Hour)
}

func (c *Config) loadOTEL() {
	c.OTEL = OTELConfig{
		Enabled:     getbool("OTEL_ENABLED", false),
		Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
		ServiceName: getenv("OTEL_SERVICE_NAME", "pigbot"),
		SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
	}
}

func (c *Config) normalize() {
	if c.LogLevel == "warning" {
		c.LogLevel = "warn"
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		c.GinMode = "release"
	}
	if c.DB.DSN == "" && c.DB.Driver == "sqlite" {
		c.DB.DSN = c.DB.Path
	}
}

// validate returns the first violated rule.
func (c *Config) validate() error {
	checks := []struct {
		bad bool
		msg string
	}{
		{!oneOf(c.LogLevel, "debug", "info", "warn", "error", "fatal", "panic"), "LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic"},
		{strings.TrimSpace(c.Port) == "", "PORT must not be empty"},
		{c.ReadTimeout <= 0 || c.ReadHeaderTimeout <= 0 || c.WriteTimeout <= 0 || c.IdleTimeout <= 0, "timeouts must be positive durations"},
		{c.MaxHeaderBytes <= 0, "MAX_HEADER_BYTES must be > 0"},
		{!oneOf(c.DB.Driver, "sqlite", "postgres", "mysql"), "DB_DRIVER must be one of: sqlite, postgres, mysql"},
		{strings.TrimSpace(c.DB.DSN) == "", "DB_DSN must not be empty (or DB_PATH for sqlite)"},
		{c.AMQP.URL != "" && strings.TrimSpace(c.AMQP.Exchange) == "", "AMQP_EXCHANGE must not be empty when AMQP_URL is set"},
		{c.Game.ChatPigStartMass < 1, "CHAT_PIG_START_MASS must be >= 1"},
		{c.Game.DuelDelay < 0, "DUEL_DELAY must be >= 0"},
		{c.RateRPS < 0, "RATE_RPS must be >= 0"},
		{c.RateBurst < 1, "RATE_BURST must be >= 1"},
		{c.Security.HSTSMaxAge < 0, "HSTS_MAX_AGE must be >= 0"},
		{c.IdempotencyTTL <= 0, "IDEMPOTENCY_TTL must be > 0"},
		{c.OTEL.SampleRatio < 0 || c.OTEL.SampleRatio > 1, "OTEL_TRACES_SAMPLER_ARG must be in [0,1]"},
	}
	for _, chk := range checks {
		if chk.bad {
			return errors.New(chk.msg)
		}
	}
	return nil
}

func oneOf(v string, allowed ...string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

// ---- env helpers ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if f, err := strconv.ParseFloat(getenv(k, ""), 64); err == nil {
		return f
	}
	return def
}

func getint(k string, def int) int {
	if i, err := strconv.Atoi(getenv(k, "")); err == nil {
		return i
	}
	return def
}

func getbool(k string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(getenv(k, ""))) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(getenv(k, "")); err == nil {
		return d
	}
	return def
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// normalizeBasePath ensures a leading '/' and strips trailing ones, except
// for the root.
func normalizeBasePath(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	return "/" + p
}
