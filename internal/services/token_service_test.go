package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/SoufianeJm/mooja/internal/config"
)

func tokenTestConfig() *config.Config {
	return &config.Config{
		JWTSecret:            "access-test-secret",
		JWTRefreshSecret:     "refresh-test-secret",
		JWTExpiration:        15 * time.Minute,
		JWTRefreshExpiration: 7 * 24 * time.Hour,
	}
}

func TestTokenService_IssueAndVerifyPair(t *testing.T) {
	svc := NewTokenService(tokenTestConfig())

	pair, err := svc.IssuePair("org-123", "acme")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	access, err := svc.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "org-123", access.Subject)
	require.Equal(t, "acme", access.Username)
	require.Equal(t, "org", access.Type)
	require.False(t, access.IsRefresh)

	refresh, err := svc.VerifyRefresh(pair.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, "org-123", refresh.Subject)
	require.True(t, refresh.IsRefresh)
}

func TestTokenService_RejectsCrossUse(t *testing.T) {
	svc := NewTokenService(tokenTestConfig())

	pair, err := svc.IssuePair("org-123", "acme")
	require.NoError(t, err)

	// A refresh token can never authenticate a request.
	_, err = svc.VerifyAccess(pair.RefreshToken)
	require.Error(t, err)

	// An access token can never mint a new pair.
	_, err = svc.VerifyRefresh(pair.AccessToken)
	require.Error(t, err)
}

func TestTokenService_SharedSecretStillEnforcesTokenKind(t *testing.T) {
	cfg := tokenTestConfig()
	cfg.JWTRefreshSecret = ""
	svc := NewTokenService(cfg)

	pair, err := svc.IssuePair("org-123", "acme")
	require.NoError(t, err)

	// With one shared secret both tokens parse, so the isRefresh claim is the
	// only thing keeping them apart.
	_, err = svc.VerifyAccess(pair.RefreshToken)
	require.ErrorIs(t, err, ErrWrongTokenUse)

	_, err = svc.VerifyRefresh(pair.AccessToken)
	require.ErrorIs(t, err, ErrWrongTokenUse)
}

func TestTokenService_RejectsExpiredToken(t *testing.T) {
	cfg := tokenTestConfig()
	cfg.JWTExpiration = -time.Minute
	svc := NewTokenService(cfg)

	pair, err := svc.IssuePair("org-123", "acme")
	require.NoError(t, err)

	_, err = svc.VerifyAccess(pair.AccessToken)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenService_RejectsForeignSignature(t *testing.T) {
	svc := NewTokenService(tokenTestConfig())

	other := NewTokenService(&config.Config{
		JWTSecret:            "somebody-elses-secret",
		JWTExpiration:        15 * time.Minute,
		JWTRefreshExpiration: time.Hour,
	})
	pair, err := other.IssuePair("org-123", "acme")
	require.NoError(t, err)

	_, err = svc.VerifyAccess(pair.AccessToken)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_RejectsNonOrgToken(t *testing.T) {
	cfg := tokenTestConfig()
	svc := NewTokenService(cfg)

	claims := OrgClaims{
		Username: "acme",
		Type:     "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "org-123",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
	require.NoError(t, err)

	_, err = svc.VerifyAccess(signed)
	require.ErrorIs(t, err, ErrWrongTokenUse)
}

func TestTokenService_RejectsGarbage(t *testing.T) {
	svc := NewTokenService(tokenTestConfig())

	_, err := svc.VerifyAccess("not.a.jwt")
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.VerifyRefresh("")
	require.ErrorIs(t, err, ErrInvalidToken)
}
