package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"

	"github.com/HimanshuAlien/college-management-system/internal/model"
)

func TestTokenService_RoundTrip(t *testing.T) {
	service := NewTokenService("test-secret")

	token, err := service.Issue(42, model.RoleTeacher)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, model.RoleTeacher, claims.Role)
}

func TestTokenService_Expiry(t *testing.T) {
	issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	service := NewTokenService("test-secret")
	service.now = func() time.Time { return issued }

	token, err := service.Issue(7, model.RoleStudent)
	assert.NoError(t, err)

	tests := []struct {
		name    string
		at      time.Time
		wantErr error
	}{
		{
			name: "valid just before expiry",
			at:   issued.Add(TokenExpiry - time.Minute),
		},
		{
			name:    "expired after seven days",
			at:      issued.Add(TokenExpiry + time.Minute),
			wantErr: ErrInvalidToken,
		},
		{
			name:    "not valid before issuance",
			at:      issued.Add(-time.Minute),
			wantErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service.now = func() time.Time { return tt.at }
			claims, err := service.Verify(token)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, uint(7), claims.UserID)
			}
		})
	}
}

func TestTokenService_MissingExpiry(t *testing.T) {
	service := NewTokenService("test-secret")

	claims := &Claims{
		UserID: 3,
		Role:   model.RoleStudent,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(service.now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	got, err := service.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, got)
}

func TestTokenService_WrongKey(t *testing.T) {
	issuer := NewTokenService("key-one")
	verifier := NewTokenService("key-two")

	token, err := issuer.Issue(1, model.RoleAdmin)
	assert.NoError(t, err)

	claims, err := verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestTokenService_Malformed(t *testing.T) {
	service := NewTokenService("test-secret")

	for _, raw := range []string{"", "not-a-token", "aaa.bbb.ccc"} {
		claims, err := service.Verify(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.Nil(t, claims)
	}
}
