package dto

import (
	"time"

	"github.com/SoufianeJm/mooja/internal/models"
	"github.com/SoufianeJm/mooja/internal/utils"
)

// OrganizerDTO is the projected organizer summary joined onto protests.
type OrganizerDTO struct {
	ID                  string `json:"id"`
	Username            string `json:"username"`
	Name                string `json:"name"`
	PictureURL          string `json:"picture_url,omitempty"`
	Country             string `json:"country,omitempty"`
	VerificationStatus  string `json:"verification_status"`
	SocialMediaPlatform string `json:"social_media_platform,omitempty"`
	SocialMediaHandle   string `json:"social_media_handle,omitempty"`
}

type ProtestDTO struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	DateTime    time.Time    `json:"date_time"`
	Country     string       `json:"country"`
	City        string       `json:"city"`
	Location    string       `json:"location"`
	PictureURL  string       `json:"picture_url,omitempty"`
	Description string       `json:"description,omitempty"`
	OrganizerID string       `json:"organizer_id"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Organizer   OrganizerDTO `json:"organizer"`
}

// CreateProtestResponse is returned on successful creation.
type CreateProtestResponse struct {
	Message string     `json:"message"`
	Protest ProtestDTO `json:"protest"`
}

// ProtestFeedResponse is the cursor-paginated feed envelope.
type ProtestFeedResponse struct {
	Data       []ProtestDTO             `json:"data"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// DeleteProtestResponse confirms a deletion.
type DeleteProtestResponse struct {
	Message        string `json:"message"`
	DeletedProtest struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	} `json:"deleted_protest"`
}

// ToOrganizerDTO converts the organizer relation to its projected summary.
func ToOrganizerDTO(org models.Organization) OrganizerDTO {
	return OrganizerDTO{
		ID:                  org.ID,
		Username:            org.Username,
		Name:                org.Name,
		PictureURL:          org.PictureURL,
		Country:             org.Country,
		VerificationStatus:  org.VerificationStatus,
		SocialMediaPlatform: org.SocialMediaPlatform,
		SocialMediaHandle:   org.SocialMediaHandle,
	}
}

// ToProtestDTO converts a protest with its preloaded organizer.
func ToProtestDTO(protest models.Protest) ProtestDTO {
	return ProtestDTO{
		ID:          protest.ID,
		Title:       protest.Title,
		DateTime:    protest.DateTime,
		Country:     protest.Country,
		City:        protest.City,
		Location:    protest.Location,
		PictureURL:  protest.PictureURL,
		Description: protest.Description,
		OrganizerID: protest.OrganizerID,
		CreatedAt:   protest.CreatedAt,
		UpdatedAt:   protest.UpdatedAt,
		Organizer:   ToOrganizerDTO(protest.Organizer),
	}
}

// ToProtestDTOs converts a slice of protests.
func ToProtestDTOs(protests []models.Protest) []ProtestDTO {
	dtos := make([]ProtestDTO, len(protests))
	for i, p := range protests {
		dtos[i] = ToProtestDTO(p)
	}
	return dtos
}
