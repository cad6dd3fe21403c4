package token

import (
	"errors"
	"fmt"
	"time"

	"cine-taquilla/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
)

// Type distinguishes the four token families the API issues. Each family has
// its own audience and TTL, so an access token can never be replayed as a
// refresh or password-reset token.
type Type string

const (
	TypeAccess   Type = "access"
	TypeRefresh  Type = "refresh"
	TypeReset    Type = "reset"
	TypeExchange Type = "exchange"
)

var (
	ErrInvalid   = errors.New("invalid token")
	ErrExpired   = errors.New("token expired")
	ErrWrongType = errors.New("token type mismatch")
)

var audiences = map[Type]string{
	TypeAccess:   "cine-taquilla.access",
	TypeRefresh:  "cine-taquilla.refresh",
	TypeReset:    "cine-taquilla.reset",
	TypeExchange: "cine-taquilla.exchange",
}

type Claims struct {
	UserID int64  `json:"uid"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type Manager struct {
	secret []byte
	ttl    map[Type]time.Duration
}

func NewManager(cfg utils.JWTConfig) *Manager {
	return &Manager{
		secret: []byte(cfg.Secret),
		ttl: map[Type]time.Duration{
			TypeAccess:   time.Duration(cfg.AccessExpiryHours) * time.Hour,
			TypeRefresh:  time.Duration(cfg.RefreshExpiryDays) * 24 * time.Hour,
			TypeReset:    time.Duration(cfg.ResetExpiryHours) * time.Hour,
			TypeExchange: time.Duration(cfg.ExchangeExpiryHours) * time.Hour,
		},
	}
}

// Create signs an HS256 token of the given type for the user and returns the
// serialized token along with its expiry.
func (m *Manager) Create(tokenType Type, userID int64, email, role string) (string, time.Time, error) {
	aud, ok := audiences[tokenType]
	if !ok {
		return "", time.Time{}, fmt.Errorf("unknown token type %q", tokenType)
	}

	now := time.Now()
	exp := now.Add(m.ttl[tokenType])

	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   string(tokenType),
			Audience:  jwt.ClaimStrings{aud},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign %s token: %w", tokenType, err)
	}

	return signed, exp, nil
}

// Verify parses the token, checks the signature and expiry, and rejects tokens
// of any other type than the one expected.
func (m *Manager) Verify(tokenStr string, tokenType Type) (*Claims, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}

	if !parsed.Valid {
		return nil, ErrInvalid
	}

	if claims.Subject != string(tokenType) {
		return nil, ErrWrongType
	}

	aud := audiences[tokenType]
	found := false
	for _, a := range claims.Audience {
		if a == aud {
			found = true
			break
		}
	}
	if !found {
		return nil, ErrWrongType
	}

	return claims, nil
}
