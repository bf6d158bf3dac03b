package services

import (
	"errors"
	"fmt"
	"slices"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/SoufianeJm/mooja/internal/constants"
	"github.com/SoufianeJm/mooja/internal/models"
	"github.com/SoufianeJm/mooja/internal/repository"
)

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrOrgNotAllowed       = errors.New("organization not yet verified")
	ErrNoCredentialsSet    = errors.New("please contact support to set up your credentials")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrCodeNotValidated    = errors.New("application not approved or invite code not validated")
)

// AuthService handles login, registration with token issuance, and refresh
// rotation for organizations.
type AuthService struct {
	orgService *OrganizationService
	orgRepo    repository.OrganizationRepository
	tokens     *TokenService
}

// NewAuthService creates a new AuthService.
func NewAuthService(orgService *OrganizationService, orgRepo repository.OrganizationRepository, tokens *TokenService) *AuthService {
	return &AuthService{
		orgService: orgService,
		orgRepo:    orgRepo,
		tokens:     tokens,
	}
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// Login verifies credentials and returns the organization with a token pair.
// Pending and approved organizations may log in; only rejected (or unknown)
// statuses are refused, and an org with no password set cannot authenticate
// regardless of status.
func (s *AuthService) Login(input LoginInput) (*models.Organization, *TokenPair, error) {
	org, err := s.orgRepo.FindByUsername(input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to find organization: %w", err)
	}

	if !slices.Contains(constants.AllowedLoginStatuses, org.VerificationStatus) {
		return nil, nil, ErrOrgNotAllowed
	}

	if !org.HasPassword() {
		return nil, nil, ErrNoCredentialsSet
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*org.PasswordHash), []byte(input.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.tokens.IssuePair(org.ID, org.Username)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	return org, pair, nil
}

// RegisterResult is a registration outcome with usable credentials attached.
type RegisterResult struct {
	Org     *models.Organization
	Tokens  *TokenPair
	Message string
}

// Register registers an organization and immediately issues tokens. When the
// username belongs to an application that already validated its invite code
// but has no password yet, registration completes that application instead:
// the password is set, the org becomes verified, and the code is consumed in
// the same transaction.
func (s *AuthService) Register(input RegisterInput) (*RegisterResult, error) {
	existing, err := s.orgRepo.FindByUsername(input.Username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	if existing != nil {
		if existing.InviteCodeUsed == nil || existing.HasPassword() {
			return nil, ErrUsernameTaken
		}
		// The stored username stays as-is here; only the by-application flow
		// lets the caller choose one.
		return s.completeApplication(existing, input.Password, &input)
	}

	org, err := s.orgService.Register(input)
	if err != nil {
		return nil, err
	}

	pair, err := s.tokens.IssuePair(org.ID, org.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	return &RegisterResult{
		Org:     org,
		Tokens:  pair,
		Message: "Organization registered successfully. Please verify with your invite code.",
	}, nil
}

// RegisterByApplicationID completes a code-validated application: it claims
// the requested username, sets credentials, verifies the org, and consumes
// the invite code.
func (s *AuthService) RegisterByApplicationID(applicationID, username, password string) (*RegisterResult, error) {
	org, err := s.orgRepo.FindByID(applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}

	if org.InviteCodeUsed == nil {
		return nil, ErrCodeNotValidated
	}

	if existing, err := s.orgRepo.FindByUsername(username); err == nil && existing.ID != org.ID {
		return nil, ErrUsernameTaken
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	org.Username = username
	return s.completeApplication(org, password, nil)
}

// Refresh rotates a token pair. Every call issues a brand-new access and
// refresh token; the presented token must verify against the refresh secret,
// carry isRefresh, and reference an org still allowed to authenticate.
func (s *AuthService) Refresh(refreshToken string) (*models.Organization, *TokenPair, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		if errors.Is(err, ErrExpiredToken) {
			return nil, nil, fmt.Errorf("%w: %s", ErrInvalidRefreshToken, "refresh token has expired")
		}
		return nil, nil, ErrInvalidRefreshToken
	}

	org, err := s.orgRepo.FindByUsername(claims.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidRefreshToken
		}
		return nil, nil, fmt.Errorf("failed to find organization: %w", err)
	}

	if !slices.Contains(constants.AllowedLoginStatuses, org.VerificationStatus) {
		return nil, nil, ErrInvalidRefreshToken
	}

	pair, err := s.tokens.IssuePair(org.ID, org.Username)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	return org, pair, nil
}

// completeApplication sets credentials on a code-validated application and
// performs the atomic verify + consume step. Optional registration details
// overwrite blank fields.
func (s *AuthService) completeApplication(org *models.Organization, password string, details *RegisterInput) (*RegisterResult, error) {
	code := *org.InviteCodeUsed

	if _, err := s.orgService.validateCode(code); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}
	passwordHash := string(hashed)

	org.PasswordHash = &passwordHash
	if details != nil {
		if details.Name != "" {
			org.Name = details.Name
		}
		if details.Country != "" {
			org.Country = details.Country
		}
		if details.SocialMediaPlatform != "" {
			org.SocialMediaPlatform = details.SocialMediaPlatform
		}
		if details.SocialMediaHandle != "" {
			org.SocialMediaHandle = details.SocialMediaHandle
		}
	}

	if err := s.orgService.markVerified(org, code); err != nil {
		return nil, err
	}

	pair, err := s.tokens.IssuePair(org.ID, org.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	return &RegisterResult{
		Org:     org,
		Tokens:  pair,
		Message: "Organization registered and verified successfully",
	}, nil
}
