package models

import "time"

// InviteCode gates an organization's transition to verified status. Codes are
// minted out-of-band; this service only validates and consumes them. Once
// IsUsed flips to true it never flips back.
type InviteCode struct {
	Code      string    `gorm:"type:varchar(50);primaryKey" json:"code"`
	IsUsed    bool      `gorm:"not null;default:false" json:"is_used"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	SentTo    string    `gorm:"type:varchar(255)" json:"sent_to"`
	SentAt    time.Time `json:"sent_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
