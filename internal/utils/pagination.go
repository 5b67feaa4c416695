package utils

import (
	"fmt"
	"strconv"

	"github.com/coe-app/task-api/internal/constants"
	"github.com/gin-gonic/gin"
)

// PaginationParams holds the pagination parameters
type PaginationParams struct {
	Page  int
	Limit int
}

// GetPaginationParams extracts pagination parameters from the request.
// Non-integer values are an error (422 at the boundary). Out-of-range
// values are clamped: page below 1 becomes 1, limit outside
// [1, MaxPageSize] falls back to the default.
func GetPaginationParams(c *gin.Context) (PaginationParams, error) {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(constants.MinPageSize)))
	if err != nil {
		return PaginationParams{}, fmt.Errorf("page must be an integer")
	}
	limit, err := strconv.Atoi(c.DefaultQuery("recordsPerPage", strconv.Itoa(constants.DefaultPageSize)))
	if err != nil {
		return PaginationParams{}, fmt.Errorf("recordsPerPage must be an integer")
	}

	if page < constants.MinPageSize {
		page = constants.MinPageSize
	}
	if limit < constants.MinPageSize || limit > constants.MaxPageSize {
		limit = constants.DefaultPageSize
	}

	return PaginationParams{
		Page:  page,
		Limit: limit,
	}, nil
}

// TotalPages computes ceil(total / limit). A zero limit is defined to
// report a single page.
func TotalPages(total int64, limit int) int {
	if limit == 0 {
		return 1
	}
	pages := int(total) / limit
	if int(total)%limit > 0 {
		pages++
	}
	return pages
}
