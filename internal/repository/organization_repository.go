package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/SoufianeJm/mooja/internal/models"
	"gorm.io/gorm"
)

// ErrInviteCodeConsumed is returned when the conditional is_used update hits
// zero rows, meaning another transaction consumed the code first.
var ErrInviteCodeConsumed = errors.New("organization repository: invite code already consumed")

// GormOrganizationRepository is a GORM implementation of OrganizationRepository
type GormOrganizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new OrganizationRepository
func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &GormOrganizationRepository{db: db}
}

// Create creates a new organization
func (r *GormOrganizationRepository) Create(org *models.Organization) error {
	return r.db.Create(org).Error
}

// FindByID finds an organization by ID
func (r *GormOrganizationRepository) FindByID(id string) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.Where("id = ?", id).First(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// FindByUsername finds an organization by username, case-insensitively
func (r *GormOrganizationRepository) FindByUsername(username string) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.Where("LOWER(username) = LOWER(?)", username).First(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// FindByCountry lists organizations in a country, case-insensitively
func (r *GormOrganizationRepository) FindByCountry(country string) ([]models.Organization, error) {
	var orgs []models.Organization
	if err := r.db.Where("LOWER(country) = LOWER(?)", country).Find(&orgs).Error; err != nil {
		return nil, err
	}
	return orgs, nil
}

// Update persists changes to an organization
func (r *GormOrganizationRepository) Update(org *models.Organization) error {
	return r.db.Save(org).Error
}

// ConsumeInviteCode saves the organization and consumes the invite code atomically.
func (r *GormOrganizationRepository) ConsumeInviteCode(org *models.Organization, code string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(org).Error; err != nil {
			return fmt.Errorf("failed to update organization: %w", err)
		}

		// Conditional flip: is_used false -> true. A blind write here would
		// let two racing activations both succeed.
		res := tx.Model(&models.InviteCode{}).
			Where("code = ? AND is_used = ?", code, false).
			Updates(map[string]interface{}{
				"is_used":    true,
				"updated_at": time.Now(),
			})
		if res.Error != nil {
			return fmt.Errorf("failed to consume invite code: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrInviteCodeConsumed
		}

		return nil
	})
}
