package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ctxKeyClient holds the authenticated caller (the token subject).
const ctxKeyClient = "client"

var (
	errMissingSecret  = errors.New("missing signing secret")
	errMissingSubject = errors.New("missing subject claim")
)

// AuthOptions configures ServiceAuth.
type AuthOptions struct {
	// Secret signs HS256 service tokens. Empty disables authentication.
	Secret []byte
	// Issuer, when set, must match the token "iss" claim.
	Issuer string
	// Clock overrides time.Now for expiry checks.
	Clock func() time.Time
}

// ServiceAuth authenticates bot frontends with HS256 bearer tokens and
// stores the token subject under the "client" context key.
//
// With an empty secret the middleware is a pass-through and ClientFrom
// reports no identity; this is meant for local development only.
func ServiceAuth(opts AuthOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(opts.Secret) == 0 {
			c.Next()
			return
		}

		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthorized(c, "missing bearer token")
			return
		}
		subject, err := ParseServiceToken(opts, raw)
		if err != nil {
			LoggerFrom(c).Warn().Err(err).Msg("service token rejected")
			abortUnauthorized(c, "invalid bearer token")
			return
		}

		c.Set(ctxKeyClient, subject)
		c.Next()
	}
}

// ParseServiceToken validates raw and returns its subject.
func ParseServiceToken(opts AuthOptions, raw string) (string, error) {
	if len(opts.Secret) == 0 {
		return "", errMissingSecret
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if opts.Issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(opts.Issuer))
	}
	if opts.Clock != nil {
		parserOpts = append(parserOpts, jwt.WithTimeFunc(opts.Clock))
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing algorithm: %s", t.Method.Alg())
		}
		return opts.Secret, nil
	}, parserOpts...)
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", errMissingSubject
	}
	return claims.Subject, nil
}

// SignServiceToken issues an HS256 token for subject valid for ttl.
// A ttl <= 0 issues a token without expiry.
func SignServiceToken(opts AuthOptions, subject string, ttl time.Duration) (string, error) {
	if len(opts.Secret) == 0 {
		return "", errMissingSecret
	}
	if subject == "" {
		return "", errMissingSubject
	}

	now := time.Now().UTC()
	if opts.Clock != nil {
		now = opts.Clock().UTC()
	}
	claims := jwt.RegisteredClaims{
		Subject:  subject,
		Issuer:   opts.Issuer,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(opts.Secret)
}

// ClientFrom returns the authenticated client, or "" when none is set.
func ClientFrom(c *gin.Context) string {
	return c.GetString(ctxKeyClient)
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", `Bearer realm="pigbot"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"request_id": c.Writer.Header().Get(requestIDHeader),
		"code":       "unauthorized",
		"message":    msg,
	})
}
