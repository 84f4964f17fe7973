// Package auth supplies the signed-in user id to the application.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/alexanderramin/vocnav/internal/logging"
)

var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrTokenExpired = errors.New("session token expired")
	ErrEmptySecret  = errors.New("session secret cannot be empty")
)

// Claims carried by a session token.
type Claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// IssueToken signs a session token for userID valid for ttl from now.
func IssueToken(secret, userID string, ttl time.Duration, now time.Time) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	if userID == "" {
		return "", fmt.Errorf("%w: empty user id", ErrInvalidToken)
	}
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return signed, nil
}

// Verifier checks session tokens signed with a shared secret.
type Verifier struct {
	secret string
	now    func() time.Time
	logger *zap.Logger
}

func NewVerifier(secret string, logger *zap.Logger) (*Verifier, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &Verifier{secret: secret, now: time.Now, logger: logging.OrNop(logger).Named("SessionVerifier")}, nil
}

// Verify returns the claims of a valid token.
func (v *Verifier) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(v.secret), nil
	}, jwt.WithTimeFunc(v.now))
	if err != nil {
		v.logger.Debug("rejecting session token", zap.Error(err))
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing user id", ErrInvalidToken)
	}
	return claims, nil
}
