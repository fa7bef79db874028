package middleware

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const APIKeyHeader = "X-API-Key"

type ctxKey int

const agentIDKey ctxKey = iota

// AgentClaims identify a field agent. The agent id is the token subject.
type AgentClaims struct {
	jwt.RegisteredClaims
}

// AgentAuth accepts HS256 bearer tokens and stores the subject as the agent
// id for the rest of the chain.
func AgentAuth(secret, issuer string, logger *slog.Logger) func(http.Handler) http.Handler {
	key := []byte(secret)
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired()}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	parser := jwt.NewParser(opts...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			scheme, tok, ok := strings.Cut(h, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || tok == "" {
				unauthorized(w, "missing token")
				return
			}

			claims := &AgentClaims{}
			_, err := parser.ParseWithClaims(tok, claims, func(*jwt.Token) (any, error) { return key, nil })
			if err != nil {
				logger.Warn("agent token rejected", slog.String("reason", err.Error()))
				unauthorized(w, "invalid token")
				return
			}
			if claims.Subject == "" {
				unauthorized(w, "invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithAgentID(r.Context(), claims.Subject)))
		})
	}
}

// IssueAgentToken signs a token for agentID valid for ttl.
func IssueAgentToken(secret, issuer, agentID string, ttl time.Duration) (string, error) {
	if agentID == "" {
		return "", errors.New("agent id is required")
	}
	now := time.Now()
	claims := AgentClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   agentID,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func WithAgentID(ctx context.Context, agentID string) context.Context {
	return context.WithValue(ctx, agentIDKey, agentID)
}

func AgentIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(agentIDKey).(string)
	return id, ok && id != ""
}

func APIKeyMiddleware(apiKey string) func(http.Handler) http.Handler {
	want := []byte(apiKey)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := []byte(r.Header.Get(APIKeyHeader))
			if len(want) == 0 || subtle.ConstantTimeCompare(got, want) != 1 {
				unauthorized(w, "invalid api key")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	writeError(w, http.StatusUnauthorized, msg)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
