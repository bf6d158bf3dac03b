package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SoufianeJm/mooja/internal/constants"
)

// FeedParams holds the query parameters for cursor-paginated listings.
type FeedParams struct {
	Cursor  string
	Limit   int
	Country string
}

// PaginationResponse is the pagination metadata attached to feed responses.
type PaginationResponse struct {
	NextCursor  string `json:"next_cursor,omitempty"`
	HasNextPage bool   `json:"has_next_page"`
	Limit       int    `json:"limit"`
}

// GetFeedParams extracts and clamps feed parameters from the request.
func GetFeedParams(c *gin.Context) FeedParams {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultPageLimit)))
	if err != nil || limit < constants.MinPageLimit {
		limit = constants.DefaultPageLimit
	}
	if limit > constants.MaxPageLimit {
		limit = constants.MaxPageLimit
	}

	return FeedParams{
		Cursor:  c.Query("cursor"),
		Limit:   limit,
		Country: c.Query("country"),
	}
}
