package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/dietdash/pkg/errors"
)

const testSecret = "test-secret"

func TestValidateTokenAcceptsSignedToken(t *testing.T) {
	svc := NewService(Config{Secret: testSecret}, newTestLogger())
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signToken(t, jwt.SigningMethodHS256, testSecret, tokenClaims{
		Username: "alice",
		UserID:   42,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, int64(42), claims.UserID)
	require.True(t, exp.Equal(claims.ExpiresAt))
	require.False(t, claims.IsAdmin())
}

func TestValidateTokenCarriesRole(t *testing.T) {
	svc := NewService(Config{Secret: testSecret}, newTestLogger())
	token := signToken(t, jwt.SigningMethodHS256, testSecret, tokenClaims{
		Username: "ops",
		Role:     " Admin ",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, RoleAdmin, claims.Role)
	require.True(t, claims.IsAdmin())
}

func TestValidateTokenFallsBackToSubject(t *testing.T) {
	svc := NewService(Config{Secret: testSecret}, newTestLogger())
	token := signToken(t, jwt.SigningMethodHS256, testSecret, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "bob",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, "bob", claims.Username)
}

func TestValidateTokenRejects(t *testing.T) {
	future := jwt.NewNumericDate(time.Now().Add(time.Hour))
	tests := []struct {
		name  string
		token func(t *testing.T) string
		cfg   Config
	}{
		{
			name:  "empty",
			token: func(t *testing.T) string { return " " },
		},
		{
			name:  "garbage",
			token: func(t *testing.T) string { return "not-a-jwt" },
		},
		{
			name: "expired",
			token: func(t *testing.T) string {
				return signToken(t, jwt.SigningMethodHS256, testSecret, tokenClaims{
					Username:         "alice",
					RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))},
				})
			},
		},
		{
			name: "no expiry",
			token: func(t *testing.T) string {
				return signToken(t, jwt.SigningMethodHS256, testSecret, tokenClaims{Username: "alice"})
			},
		},
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				return signToken(t, jwt.SigningMethodHS256, "other", tokenClaims{
					Username:         "alice",
					RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: future},
				})
			},
		},
		{
			name: "wrong algorithm",
			token: func(t *testing.T) string {
				return signToken(t, jwt.SigningMethodHS512, testSecret, tokenClaims{
					Username:         "alice",
					RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: future},
				})
			},
		},
		{
			name: "no username",
			token: func(t *testing.T) string {
				return signToken(t, jwt.SigningMethodHS256, testSecret, tokenClaims{
					RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: future},
				})
			},
		},
		{
			name: "issuer mismatch",
			cfg:  Config{Issuer: "diet-api"},
			token: func(t *testing.T) string {
				return signToken(t, jwt.SigningMethodHS256, testSecret, tokenClaims{
					Username:         "alice",
					RegisteredClaims: jwt.RegisteredClaims{Issuer: "someone-else", ExpiresAt: future},
				})
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := tc.cfg
			cfg.Secret = testSecret
			svc := NewService(cfg, newTestLogger())

			_, err := svc.ValidateToken(context.Background(), tc.token(t))
			require.Error(t, err)
			require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidToken))
		})
	}
}

func signToken(t *testing.T, method jwt.SigningMethod, secret string, claims tokenClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}
