package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Protest struct {
	ID          string    `gorm:"type:uuid;primaryKey;index:idx_protests_date_time_id,priority:2" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	DateTime    time.Time `gorm:"not null;index:idx_protests_date_time_id,priority:1" json:"date_time"`
	Country     string    `gorm:"type:varchar(100);not null;index" json:"country"`
	City        string    `gorm:"type:varchar(100);not null" json:"city"`
	Location    string    `gorm:"type:varchar(255);not null" json:"location"`
	PictureURL  string    `gorm:"type:varchar(500)" json:"picture_url"`
	Description string    `gorm:"type:text" json:"description"`
	OrganizerID string    `gorm:"type:uuid;not null;index" json:"organizer_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Organizer Organization `gorm:"foreignKey:OrganizerID" json:"organizer,omitempty"`
}

func (p *Protest) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
