package repository

import (
	"github.com/SoufianeJm/mooja/internal/models"
	"gorm.io/gorm"
)

// GormProtestRepository is a GORM implementation of ProtestRepository
type GormProtestRepository struct {
	db *gorm.DB
}

// NewProtestRepository creates a new ProtestRepository
func NewProtestRepository(db *gorm.DB) ProtestRepository {
	return &GormProtestRepository{db: db}
}

// Create creates a new protest
func (r *GormProtestRepository) Create(protest *models.Protest) error {
	return r.db.Create(protest).Error
}

// FindByID finds a protest by ID with the organizer preloaded
func (r *GormProtestRepository) FindByID(id string) (*models.Protest, error) {
	var protest models.Protest
	if err := r.db.Preload("Organizer").Where("id = ?", id).First(&protest).Error; err != nil {
		return nil, err
	}
	return &protest, nil
}

// ListFeed retrieves protests matching the filter, ordered by (date_time, id) ascending
func (r *GormProtestRepository) ListFeed(filter FeedFilter) ([]models.Protest, error) {
	query := r.db.Model(&models.Protest{}).
		Preload("Organizer").
		Where("date_time >= ?", filter.From)

	if filter.Country != "" {
		query = query.Where("country = ?", filter.Country)
	}

	if filter.After != nil {
		// Compound greater-than on the sort key; cursoring on id alone would
		// skip or repeat rows whenever id order diverges from date_time order.
		query = query.Where(
			"date_time > ? OR (date_time = ? AND id > ?)",
			filter.After.DateTime, filter.After.DateTime, filter.After.ID,
		)
	}

	var protests []models.Protest
	err := query.
		Order("date_time ASC, id ASC").
		Limit(filter.Limit).
		Find(&protests).Error
	if err != nil {
		return nil, err
	}
	return protests, nil
}

// Delete removes a protest
func (r *GormProtestRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.Protest{}).Error
}
