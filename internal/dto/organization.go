package dto

import (
	"time"

	"github.com/SoufianeJm/mooja/internal/models"
)

// OrganizationDTO is the public representation of an organization. The
// password hash and the recorded invite code never leave the auth boundary.
type OrganizationDTO struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Username            string     `json:"username"`
	Country             string     `json:"country,omitempty"`
	SocialMediaPlatform string     `json:"social_media_platform,omitempty"`
	SocialMediaHandle   string     `json:"social_media_handle,omitempty"`
	PictureURL          string     `json:"picture_url,omitempty"`
	VerificationStatus  string     `json:"verification_status"`
	VerifiedAt          *time.Time `json:"verified_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// RegisterResponse is returned by the plain org registration endpoint.
type RegisterResponse struct {
	Message string          `json:"message"`
	Org     OrganizationDTO `json:"org"`
}

// VerificationResponse is returned by the invite-code validation and
// consumption endpoints.
type VerificationResponse struct {
	Message   string           `json:"message"`
	Validated bool             `json:"validated,omitempty"`
	Verified  bool             `json:"verified,omitempty"`
	Org       *OrganizationDTO `json:"org,omitempty"`
}

// ApplicationStatusDTO reports where an application sits in the verification
// workflow.
type ApplicationStatusDTO struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Username           string `json:"username"`
	VerificationStatus string `json:"verification_status"`
	CodeValidated      bool   `json:"code_validated"`
}

// ToOrganizationDTO converts a model to its public representation.
func ToOrganizationDTO(org models.Organization) OrganizationDTO {
	return OrganizationDTO{
		ID:                  org.ID,
		Name:                org.Name,
		Username:            org.Username,
		Country:             org.Country,
		SocialMediaPlatform: org.SocialMediaPlatform,
		SocialMediaHandle:   org.SocialMediaHandle,
		PictureURL:          org.PictureURL,
		VerificationStatus:  org.VerificationStatus,
		VerifiedAt:          org.VerifiedAt,
		CreatedAt:           org.CreatedAt,
		UpdatedAt:           org.UpdatedAt,
	}
}

// ToOrganizationDTOs converts a slice of models.
func ToOrganizationDTOs(orgs []models.Organization) []OrganizationDTO {
	dtos := make([]OrganizationDTO, len(orgs))
	for i, org := range orgs {
		dtos[i] = ToOrganizationDTO(org)
	}
	return dtos
}

// ToApplicationStatusDTO converts a model to its application-status view.
func ToApplicationStatusDTO(org models.Organization) ApplicationStatusDTO {
	return ApplicationStatusDTO{
		ID:                 org.ID,
		Name:               org.Name,
		Username:           org.Username,
		VerificationStatus: org.VerificationStatus,
		CodeValidated:      org.InviteCodeUsed != nil && *org.InviteCodeUsed != "",
	}
}
