package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrExpiredToken and ErrInvalidSignature distinguish the two validation
// failures the HTTP middleware reports separately.
var (
	ErrExpiredToken     = errors.New("auth: token has expired")
	ErrInvalidSignature = errors.New("auth: invalid token signature")
)

// Claims is the set of JWT claims the auth middleware trusts.
type Claims struct {
	UserID string   `json:"sub"`
	Email  string   `json:"email"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}

// JWTConfig configures a JWTValidator.
type JWTConfig struct {
	SigningMethod string
	SecretKey     string
	Issuer        string
	Audience      []string
}

// JWTValidator validates bearer tokens gating an authenticated HTTP
// surface.
type JWTValidator struct {
	secret   []byte
	issuer   string
	audience []string
}

// NewJWTValidator constructs a JWTValidator from config.
func NewJWTValidator(cfg JWTConfig) (*JWTValidator, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("auth: empty JWT secret")
	}
	return &JWTValidator{secret: []byte(cfg.SecretKey), issuer: cfg.Issuer, audience: cfg.Audience}, nil
}

// ValidateToken parses and validates a signed JWT, mapping expiry and
// signature failures to the sentinel errors callers switch on.
func (v *JWTValidator) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSignature
		}
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, ErrInvalidSignature
		}
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidSignature
	}
	return claims, nil
}

// JWTGeneratorConfig configures a JWTGenerator.
type JWTGeneratorConfig struct {
	SigningMethod string
	SecretKey     string
	Issuer        string
	Audience      []string
	ExpiryTime    time.Duration
}

// JWTGenerator issues signed tokens, used by the refresh endpoint.
type JWTGenerator struct {
	secret   []byte
	issuer   string
	audience []string
	expiry   time.Duration
}

// NewJWTGenerator constructs a JWTGenerator from config.
func NewJWTGenerator(cfg JWTGeneratorConfig) (*JWTGenerator, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("auth: empty JWT secret")
	}
	expiry := cfg.ExpiryTime
	if expiry == 0 {
		expiry = 24 * time.Hour
	}
	return &JWTGenerator{secret: []byte(cfg.SecretKey), issuer: cfg.Issuer, audience: cfg.Audience, expiry: expiry}, nil
}

// GenerateToken signs a new token for the given identity.
func (g *JWTGenerator) GenerateToken(userID, email string, roles []string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		Roles:  roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    g.issuer,
			Audience:  g.audience,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.expiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(g.secret)
}

// UserContext is the authenticated identity attached to a request context.
type UserContext struct {
	UserID string
	Email  string
	Roles  []string
}

type userContextKey struct{}

// SetUserInContext attaches a UserContext to ctx.
func SetUserInContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUserFromContext retrieves the UserContext set by SetUserInContext.
func GetUserFromContext(ctx context.Context) (*UserContext, error) {
	user, ok := ctx.Value(userContextKey{}).(*UserContext)
	if !ok || user == nil {
		return nil, errors.New("auth: no user in context")
	}
	return user, nil
}
