package middleware

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"cortexgraph/pkg/auth"
	"go.uber.org/zap"
)

// AuthConfig configures the Authenticate middleware: the JWT secret and
// issuer used to validate bearer tokens on mutating routes.
type AuthConfig struct {
	JWTSecret string
	JWTIssuer string
	Audience  string
}

// Authenticate builds JWT-gating middleware backed by per-IP and
// per-user in-process rate limiters. It is mounted only on the
// mutating routes (node/agent/workflow submission); read routes stay
// open.
func Authenticate(cfg AuthConfig, logger *zap.Logger) (func(http.Handler) http.Handler, error) {
	validator, err := auth.NewJWTValidator(auth.JWTConfig{
		SigningMethod: "HS256",
		SecretKey:     cfg.JWTSecret,
		Issuer:        cfg.JWTIssuer,
		Audience:      []string{cfg.Audience},
	})
	if err != nil {
		return nil, err
	}

	ipLimiter := auth.NewIPRateLimiter(100)
	userLimiter := auth.NewUserRateLimiter(200)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if allowed, _ := ipLimiter.Allow(r.Context(), ip); !allowed {
				respondAuthError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}

			token := extractToken(r)
			if token == "" {
				respondAuthError(w, http.StatusUnauthorized, "missing authentication token")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.Warn("rejected request token",
					zap.Error(err), zap.String("ip", ip), zap.String("path", r.URL.Path))
				switch err {
				case auth.ErrExpiredToken:
					respondAuthError(w, http.StatusUnauthorized, "token has expired")
				case auth.ErrInvalidSignature:
					respondAuthError(w, http.StatusUnauthorized, "invalid token signature")
				default:
					respondAuthError(w, http.StatusUnauthorized, "invalid token")
				}
				return
			}

			if allowed, _ := userLimiter.Allow(r.Context(), claims.UserID); !allowed {
				respondAuthError(w, http.StatusTooManyRequests, "user rate limit exceeded")
				return
			}

			userCtx := &auth.UserContext{UserID: claims.UserID, Email: claims.Email, Roles: claims.Roles}
			ctx := auth.SetUserInContext(r.Context(), userCtx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}, nil
}

// RequireRole gates a route on the authenticated user carrying one of
// the named roles. It must run after Authenticate.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := auth.GetUserFromContext(r.Context())
			if err != nil {
				respondAuthError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			for _, want := range roles {
				for _, have := range user.Roles {
					if have == want {
						next.ServeHTTP(w, r)
						return
					}
				}
			}
			respondAuthError(w, http.StatusForbidden, "insufficient permissions")
		})
	}
}

// TokenRefreshMiddleware issues a fresh token for a still-valid (or
// just-expired) one, backing the /auth/refresh endpoint.
type TokenRefreshMiddleware struct {
	generator *auth.JWTGenerator
	validator *auth.JWTValidator
}

// NewTokenRefreshMiddleware builds a TokenRefreshMiddleware from JWT
// config.
func NewTokenRefreshMiddleware(cfg AuthConfig) (*TokenRefreshMiddleware, error) {
	generator, err := auth.NewJWTGenerator(auth.JWTGeneratorConfig{
		SigningMethod: "HS256",
		SecretKey:     cfg.JWTSecret,
		Issuer:        cfg.JWTIssuer,
		Audience:      []string{cfg.Audience},
		ExpiryTime:    24 * time.Hour,
	})
	if err != nil {
		return nil, err
	}
	validator, err := auth.NewJWTValidator(auth.JWTConfig{
		SigningMethod: "HS256",
		SecretKey:     cfg.JWTSecret,
		Issuer:        cfg.JWTIssuer,
		Audience:      []string{cfg.Audience},
	})
	if err != nil {
		return nil, err
	}
	return &TokenRefreshMiddleware{generator: generator, validator: validator}, nil
}

// RefreshToken handles POST /auth/refresh: validates the presented
// token (tolerating expiry, since refreshing an expired token is the
// point) and issues a new one carrying the same claims.
func (m *TokenRefreshMiddleware) RefreshToken(w http.ResponseWriter, r *http.Request) {
	token := extractToken(r)
	if token == "" {
		respondAuthError(w, http.StatusUnauthorized, "missing token")
		return
	}

	claims, err := m.validator.ValidateToken(token)
	if err != nil && err != auth.ErrExpiredToken {
		respondAuthError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	newToken, err := m.generator.GenerateToken(claims.UserID, claims.Email, claims.Roles)
	if err != nil {
		respondAuthError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"token":      newToken,
		"expires_in": int((24 * time.Hour).Seconds()),
	})
}

func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
		return authHeader
	}
	if cookie, err := r.Cookie("auth_token"); err == nil {
		return cookie.Value
	}
	return r.URL.Query().Get("token")
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}
	return addr
}

func respondAuthError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   true,
		"message": message,
		"code":    code,
	})
}
