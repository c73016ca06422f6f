package helpers

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTTL is the lifetime of a session token.
const DefaultAccessTTL = 5 * time.Minute

var (
	// ErrMissingSecret is returned when the signing key is empty.
	ErrMissingSecret = errors.New("jwt: signing secret is empty")
	// ErrInvalidToken covers every rejected token: bad signature, expired,
	// wrong algorithm or a missing user id.
	ErrInvalidToken = errors.New("invalid token")
)

// JWTManager issues and validates HS256 session tokens.
// It is built once at startup and read-only afterwards.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTManager builds a manager for secret. A ttl <= 0 selects DefaultAccessTTL.
func NewJWTManager(secret string, ttl time.Duration) (*JWTManager, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrMissingSecret
	}
	if ttl <= 0 {
		ttl = DefaultAccessTTL
	}
	return &JWTManager{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// WithClock replaces the time source, for tests.
func (m *JWTManager) WithClock(now func() time.Time) *JWTManager {
	m.now = now
	return m
}

// Claims is the token payload.
type Claims struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateAccessToken signs a token for the user and returns it with its expiry.
// Claims carry whole seconds, so the returned expiry is truncated to match.
func (m *JWTManager) GenerateAccessToken(userID int64, email string) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(m.ttl).Truncate(time.Second)
	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.secret)
	return s, exp, err
}

// ParseAccessToken verifies signature, expiry and the user id claim. A token
// is accepted up to and including its exp second; jwt/v5's own check rejects
// at exp, so expiry is checked here instead. Any failure is reported as
// ErrInvalidToken.
func (m *JWTManager) ParseAccessToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}
	if claims.ExpiresAt == nil || m.now().After(claims.ExpiresAt.Time) {
		return nil, ErrInvalidToken
	}
	if claims.UserID <= 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
