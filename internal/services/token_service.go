package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/SoufianeJm/mooja/internal/config"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token has expired")
	ErrWrongTokenUse = errors.New("wrong token type")
)

const tokenTypeOrg = "org"

// OrgClaims is the JWT payload carried by both token kinds.
type OrgClaims struct {
	Username  string `json:"username"`
	Type      string `json:"type"`
	IsRefresh bool   `json:"isRefresh,omitempty"`
	jwt.RegisteredClaims
}

// TokenPair is a freshly signed access + refresh token pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenService signs and verifies the HS256 org tokens.
type TokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new TokenService.
func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{cfg: cfg}
}

// IssuePair signs a short-lived access token and a long-lived refresh token
// for the organization. The refresh token uses a distinct secret when one is
// configured and additionally carries isRefresh.
func (s *TokenService) IssuePair(orgID, username string) (*TokenPair, error) {
	access, err := s.sign(orgID, username, false, s.cfg.JWTExpiration, s.cfg.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refresh, err := s.sign(orgID, username, true, s.cfg.JWTRefreshExpiration, s.cfg.RefreshSecret())
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// VerifyAccess validates an access token and returns its claims.
func (s *TokenService) VerifyAccess(token string) (*OrgClaims, error) {
	claims, err := s.verify(token, s.cfg.JWTSecret)
	if err != nil {
		return nil, err
	}
	if claims.IsRefresh {
		return nil, ErrWrongTokenUse
	}
	return claims, nil
}

// VerifyRefresh validates a refresh token and returns its claims.
func (s *TokenService) VerifyRefresh(token string) (*OrgClaims, error) {
	claims, err := s.verify(token, s.cfg.RefreshSecret())
	if err != nil {
		return nil, err
	}
	if !claims.IsRefresh {
		return nil, ErrWrongTokenUse
	}
	return claims, nil
}

func (s *TokenService) sign(orgID, username string, isRefresh bool, ttl time.Duration, secret string) (string, error) {
	now := time.Now().UTC()
	claims := OrgClaims{
		Username:  username,
		Type:      tokenTypeOrg,
		IsRefresh: isRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   orgID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func (s *TokenService) verify(token, secret string) (*OrgClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &OrgClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*OrgClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Type != tokenTypeOrg {
		return nil, ErrWrongTokenUse
	}

	return claims, nil
}
