package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/HimanshuAlien/college-management-system/internal/model"
)

// TokenExpiry is the fixed validity window of every issued token.
const TokenExpiry = 7 * 24 * time.Hour

// ErrInvalidToken covers every verification failure: bad signature, malformed
// structure and expiry all collapse into it so a caller cannot distinguish a
// tampered token from a stale one.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the signed payload asserting a subject's identity. The embedded
// role locates the record but is never trusted for authorization; the live
// record's role wins (see middleware.LoadIdentity).
type Claims struct {
	UserID uint       `json:"user_id"`
	Role   model.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies identity tokens.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

// NewTokenService creates a token service with the given signing secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// Issue produces a signed token asserting userID/role for the next seven days.
func (s *TokenService) Issue(userID uint, role model.Role) (string, error) {
	now := s.now()
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses and validates a token, returning its claims. Any failure maps
// to ErrInvalidToken.
//
// Claims validation is disabled at parse time and the time checks run against
// the service clock instead of the package global, so tests can move the clock
// without touching jwt.TimeFunc.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithoutClaimsValidation())

	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	now := s.now()
	if !claims.VerifyExpiresAt(now, true) || !claims.VerifyNotBefore(now, false) {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
