package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/SoufianeJm/mooja/internal/constants"
	"github.com/SoufianeJm/mooja/internal/models"
	"github.com/SoufianeJm/mooja/internal/repository"
)

var (
	ErrUsernameTaken        = errors.New("username is already taken")
	ErrOrgNotFound          = errors.New("organization not found")
	ErrApplicationNotFound  = errors.New("application not found")
	ErrNotApproved          = errors.New("application is not approved for verification")
	ErrInvalidInviteCode    = errors.New("invalid invite code")
	ErrInviteCodeUsed       = errors.New("this invite code has already been used")
	ErrInviteCodeExpired    = errors.New("this invite code has expired")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// OrganizationService provides business logic for the organization lifecycle:
// registration, availability checks, and the two-phase invite-code
// verification workflow.
type OrganizationService struct {
	orgRepo    repository.OrganizationRepository
	inviteRepo repository.InviteCodeRepository
}

// NewOrganizationService creates a new OrganizationService.
func NewOrganizationService(orgRepo repository.OrganizationRepository, inviteRepo repository.InviteCodeRepository) *OrganizationService {
	return &OrganizationService{
		orgRepo:    orgRepo,
		inviteRepo: inviteRepo,
	}
}

// RegisterInput represents parameters to register a new organization.
type RegisterInput struct {
	Name                string
	Username            string
	Password            string
	Country             string
	SocialMediaPlatform string
	SocialMediaHandle   string
	PictureURL          string
}

// Register creates a new pending organization with hashed credentials.
func (s *OrganizationService) Register(input RegisterInput) (*models.Organization, error) {
	available, err := s.CheckUsernameAvailability(input.Username)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, ErrUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}
	passwordHash := string(hashed)

	org := &models.Organization{
		Name:                input.Name,
		Username:            input.Username,
		PasswordHash:        &passwordHash,
		Country:             input.Country,
		SocialMediaPlatform: input.SocialMediaPlatform,
		SocialMediaHandle:   input.SocialMediaHandle,
		PictureURL:          input.PictureURL,
		VerificationStatus:  constants.StatusPending,
	}

	if err := s.orgRepo.Create(org); err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	return org, nil
}

// CheckUsernameAvailability reports whether the username is free. The check
// always takes at least 50ms of wall clock so response timing does not reveal
// whether the username exists.
func (s *OrganizationService) CheckUsernameAvailability(username string) (bool, error) {
	start := time.Now()

	_, err := s.orgRepo.FindByUsername(username)

	if elapsed := time.Since(start); elapsed < constants.MinAvailabilityCheckDurationMs*time.Millisecond {
		time.Sleep(constants.MinAvailabilityCheckDurationMs*time.Millisecond - elapsed)
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return true, nil
		}
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return false, nil
}

// VerificationResult reports the outcome of a verification operation.
type VerificationResult struct {
	Org             *models.Organization
	AlreadyVerified bool
	Validated       bool
	Verified        bool
}

// VerifyApplicationCode validates an invite code against an approved
// application without consuming it. The code string is recorded on the org so
// the later activation step can require the same code; the code's is_used
// flag stays false until credentials are set. This lets a prospective org
// validate a code before choosing a password without permanently burning it.
func (s *OrganizationService) VerifyApplicationCode(applicationID, inviteCode string) (*VerificationResult, error) {
	org, err := s.orgRepo.FindByID(applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}

	if org.VerificationStatus == constants.StatusVerified {
		return &VerificationResult{Org: org, AlreadyVerified: true}, nil
	}

	if org.VerificationStatus != constants.StatusApproved {
		return nil, ErrNotApproved
	}

	if _, err := s.validateCode(inviteCode); err != nil {
		return nil, err
	}

	org.InviteCodeUsed = &inviteCode
	if err := s.orgRepo.Update(org); err != nil {
		return nil, fmt.Errorf("failed to record validated code: %w", err)
	}

	return &VerificationResult{Org: org, Validated: true}, nil
}

// VerifyWithInviteCode verifies an authenticated organization, consuming the
// invite code and flipping the status to verified in one transaction.
func (s *OrganizationService) VerifyWithInviteCode(orgID, inviteCode string) (*VerificationResult, error) {
	org, err := s.orgRepo.FindByID(orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrgNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}

	if org.VerificationStatus == constants.StatusVerified {
		return &VerificationResult{Org: org, AlreadyVerified: true}, nil
	}

	if _, err := s.validateCode(inviteCode); err != nil {
		return nil, err
	}

	if err := s.markVerified(org, inviteCode); err != nil {
		return nil, err
	}

	return &VerificationResult{Org: org, Verified: true}, nil
}

// ActivateAccount completes the two-phase workflow for an approved
// organization. The submitted code must match the one recorded by
// VerifyApplicationCode, which defends against replaying a different code
// than the one validated earlier.
func (s *OrganizationService) ActivateAccount(orgID, inviteCode string) (*VerificationResult, error) {
	org, err := s.orgRepo.FindByID(orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrgNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}

	if org.VerificationStatus == constants.StatusVerified {
		return &VerificationResult{Org: org, AlreadyVerified: true}, nil
	}

	if org.VerificationStatus != constants.StatusApproved {
		return nil, ErrNotApproved
	}

	if org.InviteCodeUsed == nil || *org.InviteCodeUsed != inviteCode {
		return nil, ErrInvalidInviteCode
	}

	if _, err := s.validateCode(inviteCode); err != nil {
		return nil, err
	}

	if err := s.markVerified(org, inviteCode); err != nil {
		return nil, err
	}

	return &VerificationResult{Org: org, Verified: true}, nil
}

// RequestVerificationInput holds the legacy free-form verification request.
type RequestVerificationInput struct {
	Name                string
	Country             string
	SocialMediaPlatform string
	SocialMediaHandle   string
}

// RequestVerification creates a pending application from a free-form request,
// deriving a unique username from the organization name.
func (s *OrganizationService) RequestVerification(input RequestVerificationInput) (*models.Organization, error) {
	base := usernameFromName(input.Name)

	candidate := base
	for i := 1; i <= 20; i++ {
		available, err := s.CheckUsernameAvailability(candidate)
		if err != nil {
			return nil, err
		}
		if available {
			break
		}
		candidate = truncate(fmt.Sprintf("%s_%d", base, i), 50)
	}

	available, err := s.CheckUsernameAvailability(candidate)
	if err != nil {
		return nil, err
	}
	if !available {
		candidate = truncate(fmt.Sprintf("%s_%s", base, uuid.NewString()[:4]), 50)
	}

	org := &models.Organization{
		Name:                input.Name,
		Username:            candidate,
		Country:             input.Country,
		SocialMediaPlatform: input.SocialMediaPlatform,
		SocialMediaHandle:   input.SocialMediaHandle,
		VerificationStatus:  constants.StatusPending,
	}

	if err := s.orgRepo.Create(org); err != nil {
		return nil, fmt.Errorf("failed to create verification request: %w", err)
	}

	return org, nil
}

// FindByID retrieves an organization by ID.
func (s *OrganizationService) FindByID(id string) (*models.Organization, error) {
	org, err := s.orgRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrgNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}
	return org, nil
}

// FindByUsername retrieves an organization by username, case-insensitively.
func (s *OrganizationService) FindByUsername(username string) (*models.Organization, error) {
	org, err := s.orgRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrgNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}
	return org, nil
}

// FindByCountry lists organizations in a country, case-insensitively.
func (s *OrganizationService) FindByCountry(country string) ([]models.Organization, error) {
	orgs, err := s.orgRepo.FindByCountry(country)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return orgs, nil
}

// markVerified flips the org to verified and consumes the code atomically.
func (s *OrganizationService) markVerified(org *models.Organization, inviteCode string) error {
	now := time.Now()
	org.VerificationStatus = constants.StatusVerified
	org.VerifiedAt = &now
	org.InviteCodeUsed = &inviteCode

	if err := s.orgRepo.ConsumeInviteCode(org, inviteCode); err != nil {
		if errors.Is(err, repository.ErrInviteCodeConsumed) {
			return ErrInviteCodeUsed
		}
		return fmt.Errorf("failed to verify organization: %w", err)
	}
	return nil
}

// validateCode checks that a code exists, is unused, and has not expired.
func (s *OrganizationService) validateCode(code string) (*models.InviteCode, error) {
	invite, err := s.inviteRepo.FindByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidInviteCode
		}
		return nil, fmt.Errorf("failed to find invite code: %w", err)
	}

	if invite.IsUsed {
		return nil, ErrInviteCodeUsed
	}
	if time.Now().After(invite.ExpiresAt) {
		return nil, ErrInviteCodeExpired
	}

	return invite, nil
}

// usernameFromName lowercases the name and collapses runs of non-alphanumeric
// characters into single underscores.
func usernameFromName(name string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}

	candidate := strings.Trim(b.String(), "_")
	candidate = truncate(candidate, 30)
	if candidate == "" {
		candidate = "org"
	}
	return candidate
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
