package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Organization struct {
	ID                  string     `gorm:"type:uuid;primaryKey" json:"id"`
	Name                string     `gorm:"type:varchar(255);not null" json:"name"`
	Username            string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	PasswordHash        *string    `gorm:"type:varchar(255)" json:"-"`
	Country             string     `gorm:"type:varchar(100)" json:"country"`
	SocialMediaPlatform string     `gorm:"type:varchar(50)" json:"social_media_platform"`
	SocialMediaHandle   string     `gorm:"type:varchar(100)" json:"social_media_handle"`
	PictureURL          string     `gorm:"type:varchar(500)" json:"picture_url"`
	VerificationStatus  string     `gorm:"type:varchar(20);not null;default:'pending'" json:"verification_status"`
	VerifiedAt          *time.Time `json:"verified_at"`
	InviteCodeUsed      *string    `gorm:"type:varchar(50)" json:"-"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`

	// Relations
	Protests []Protest `gorm:"foreignKey:OrganizerID" json:"protests,omitempty"`
}

func (o *Organization) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// HasPassword reports whether credentials have been set for the organization.
func (o *Organization) HasPassword() bool {
	return o.PasswordHash != nil && *o.PasswordHash != ""
}
