package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/SoufianeJm/mooja/internal/models"
	"github.com/SoufianeJm/mooja/internal/repository"
	"github.com/SoufianeJm/mooja/internal/utils"
)

var (
	ErrProtestNotFound = errors.New("protest not found")
	ErrInvalidCursor   = errors.New("invalid cursor")
)

// ProtestService provides business logic for the protest feed.
type ProtestService struct {
	protestRepo repository.ProtestRepository
}

// NewProtestService creates a new ProtestService.
func NewProtestService(protestRepo repository.ProtestRepository) *ProtestService {
	return &ProtestService{
		protestRepo: protestRepo,
	}
}

// CreateProtestInput represents parameters to create a protest.
type CreateProtestInput struct {
	Title       string
	DateTime    time.Time
	Country     string
	City        string
	Location    string
	PictureURL  string
	Description string
}

// Create inserts a protest owned by the authenticated organizer and returns
// it with the organizer summary joined.
func (s *ProtestService) Create(input CreateProtestInput, organizerID string) (*models.Protest, error) {
	protest := &models.Protest{
		Title:       input.Title,
		DateTime:    input.DateTime,
		Country:     input.Country,
		City:        input.City,
		Location:    input.Location,
		PictureURL:  input.PictureURL,
		Description: input.Description,
		OrganizerID: organizerID,
	}

	if err := s.protestRepo.Create(protest); err != nil {
		return nil, fmt.Errorf("failed to create protest: %w", err)
	}

	created, err := s.protestRepo.FindByID(protest.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load created protest: %w", err)
	}
	return created, nil
}

// Feed is one page of upcoming protests.
type Feed struct {
	Protests    []models.Protest
	HasNextPage bool
	NextCursor  string
	Limit       int
}

// FindAll returns upcoming protests ordered by (date_time, id) ascending,
// optionally filtered by exact country. One extra row is fetched to decide
// hasNextPage; the next cursor encodes the compound key of the last row so
// pages never skip or repeat entries, even when protests share a date_time.
func (s *ProtestService) FindAll(params utils.FeedParams) (*Feed, error) {
	filter := repository.FeedFilter{
		From:    time.Now(),
		Country: params.Country,
		Limit:   params.Limit + 1,
	}

	if params.Cursor != "" {
		cursor, err := utils.DecodeCursor(params.Cursor)
		if err != nil {
			return nil, ErrInvalidCursor
		}
		filter.After = &cursor
	}

	protests, err := s.protestRepo.ListFeed(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list protests: %w", err)
	}

	feed := &Feed{Limit: params.Limit}
	if len(protests) > params.Limit {
		protests = protests[:params.Limit]
		last := protests[len(protests)-1]
		feed.HasNextPage = true
		feed.NextCursor = utils.Cursor{DateTime: last.DateTime, ID: last.ID}.Encode()
	}
	feed.Protests = protests

	return feed, nil
}

// FindByID retrieves a protest with its organizer.
func (s *ProtestService) FindByID(id string) (*models.Protest, error) {
	protest, err := s.protestRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProtestNotFound
		}
		return nil, fmt.Errorf("failed to find protest: %w", err)
	}
	return protest, nil
}

// Delete removes a protest owned by the caller. An ownership mismatch is
// reported as not-found so the response cannot reveal that the protest
// exists.
func (s *ProtestService) Delete(id, organizerID string) (*models.Protest, error) {
	protest, err := s.protestRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProtestNotFound
		}
		return nil, fmt.Errorf("failed to find protest: %w", err)
	}

	if protest.OrganizerID != organizerID {
		return nil, ErrProtestNotFound
	}

	if err := s.protestRepo.Delete(id); err != nil {
		return nil, fmt.Errorf("failed to delete protest: %w", err)
	}

	return protest, nil
}
