package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SoufianeJm/mooja/internal/dto"
	apierrors "github.com/SoufianeJm/mooja/internal/errors"
	"github.com/SoufianeJm/mooja/internal/middleware"
	"github.com/SoufianeJm/mooja/internal/services"
	"github.com/SoufianeJm/mooja/internal/utils"
)

// ProtestHandler coordinates protest feed HTTP handlers.
type ProtestHandler struct {
	protestService *services.ProtestService
}

// NewProtestHandler creates a new ProtestHandler.
func NewProtestHandler(protestService *services.ProtestService) *ProtestHandler {
	return &ProtestHandler{
		protestService: protestService,
	}
}

// Create inserts a protest owned by the authenticated organization.
func (h *ProtestHandler) Create(c *gin.Context) {
	orgID, exists := middleware.GetOrgID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type request struct {
		Title       string    `json:"title" binding:"required,max=255"`
		DateTime    time.Time `json:"date_time" binding:"required"`
		Country     string    `json:"country" binding:"required"`
		City        string    `json:"city" binding:"required"`
		Location    string    `json:"location" binding:"required"`
		PictureURL  string    `json:"picture_url"`
		Description string    `json:"description"`
	}

	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	protest, err := h.protestService.Create(services.CreateProtestInput{
		Title:       req.Title,
		DateTime:    req.DateTime,
		Country:     req.Country,
		City:        req.City,
		Location:    req.Location,
		PictureURL:  req.PictureURL,
		Description: req.Description,
	}, orgID)
	if err != nil {
		respondProtestError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateProtestResponse{
		Message: "Protest created successfully",
		Protest: dto.ToProtestDTO(*protest),
	})
}

// List returns the cursor-paginated feed of upcoming protests.
func (h *ProtestHandler) List(c *gin.Context) {
	params := utils.GetFeedParams(c)

	feed, err := h.protestService.FindAll(params)
	if err != nil {
		respondProtestError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ProtestFeedResponse{
		Data: dto.ToProtestDTOs(feed.Protests),
		Pagination: utils.PaginationResponse{
			NextCursor:  feed.NextCursor,
			HasNextPage: feed.HasNextPage,
			Limit:       feed.Limit,
		},
	})
}

// Get returns a single protest with its organizer.
func (h *ProtestHandler) Get(c *gin.Context) {
	protest, err := h.protestService.FindByID(c.Param("id"))
	if err != nil {
		respondProtestError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProtestDTO(*protest))
}

// Delete removes a protest owned by the caller.
func (h *ProtestHandler) Delete(c *gin.Context) {
	orgID, exists := middleware.GetOrgID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	protest, err := h.protestService.Delete(c.Param("id"), orgID)
	if err != nil {
		respondProtestError(c, err)
		return
	}

	resp := dto.DeleteProtestResponse{Message: "Protest deleted successfully"}
	resp.DeletedProtest.ID = protest.ID
	resp.DeletedProtest.Title = protest.Title
	c.JSON(http.StatusOK, resp)
}

func respondProtestError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProtestNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidCursor):
		apierrors.BadRequest(c, err.Error())
	default:
		log.Printf("protest handler error: %v", err)
		apierrors.InternalError(c, "")
	}
}
