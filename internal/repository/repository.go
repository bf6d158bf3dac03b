package repository

import (
	"time"

	"github.com/SoufianeJm/mooja/internal/models"
	"github.com/SoufianeJm/mooja/internal/utils"
)

// OrganizationRepository defines the interface for organization data access
type OrganizationRepository interface {
	// Create creates a new organization
	Create(org *models.Organization) error

	// FindByID finds an organization by ID
	FindByID(id string) (*models.Organization, error)

	// FindByUsername finds an organization by username, case-insensitively
	FindByUsername(username string) (*models.Organization, error)

	// FindByCountry lists organizations in a country, case-insensitively
	FindByCountry(country string) ([]models.Organization, error)

	// Update persists changes to an organization
	Update(org *models.Organization) error

	// ConsumeInviteCode saves the organization and flips the invite code's
	// is_used flag in a single transaction. The flip is a conditional update
	// guarded on is_used = false; if another transaction consumed the code
	// first, the whole transaction rolls back with ErrInviteCodeConsumed.
	ConsumeInviteCode(org *models.Organization, code string) error
}

// InviteCodeRepository defines the interface for invite code data access
type InviteCodeRepository interface {
	// FindByCode finds an invite code by its code string
	FindByCode(code string) (*models.InviteCode, error)
}

// ProtestRepository defines the interface for protest data access
type ProtestRepository interface {
	// Create creates a new protest
	Create(protest *models.Protest) error

	// FindByID finds a protest by ID with the organizer preloaded
	FindByID(id string) (*models.Protest, error)

	// ListFeed retrieves protests matching the filter, ordered by
	// (date_time, id) ascending
	ListFeed(filter FeedFilter) ([]models.Protest, error)

	// Delete removes a protest
	Delete(id string) error
}

// FeedFilter holds the query bounds for the protest feed.
type FeedFilter struct {
	// From excludes protests earlier than this instant.
	From time.Time

	// Country filters by exact country when non-empty.
	Country string

	// After resumes the feed strictly past this compound key.
	After *utils.Cursor

	// Limit caps the number of rows fetched.
	Limit int
}
