package repository

import (
	"github.com/SoufianeJm/mooja/internal/models"
	"gorm.io/gorm"
)

// GormInviteCodeRepository is a GORM implementation of InviteCodeRepository
type GormInviteCodeRepository struct {
	db *gorm.DB
}

// NewInviteCodeRepository creates a new InviteCodeRepository
func NewInviteCodeRepository(db *gorm.DB) InviteCodeRepository {
	return &GormInviteCodeRepository{db: db}
}

// FindByCode finds an invite code by its code string
func (r *GormInviteCodeRepository) FindByCode(code string) (*models.InviteCode, error) {
	var invite models.InviteCode
	if err := r.db.Where("code = ?", code).First(&invite).Error; err != nil {
		return nil, err
	}
	return &invite, nil
}
