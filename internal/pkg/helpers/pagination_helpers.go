package helpers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studybuddy/internal/app/models/dto"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	DefaultPage     = 1
	// MaxPage keeps (page-1)*size far inside the int64 range SQL OFFSET accepts
	MaxPage = 1 << 20
)

// CalculateOffsetLimit turns a 1-based page and a size into SQL offset/limit.
func CalculateOffsetLimit(page, size int) (offset uint64, limit uint64) {
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	page = clampPage(page)

	return uint64(page-1) * uint64(size), uint64(size)
}

// NewPaginationInfo builds the pagination block returned with list responses.
func NewPaginationInfo(totalItems int64, page, size int) dto.PaginationInfo {
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	page = clampPage(page)

	totalPages := 0
	if totalItems > 0 {
		totalPages = int(math.Ceil(float64(totalItems) / float64(size)))
	}

	return dto.PaginationInfo{
		CurrentPage: page,
		TotalPages:  totalPages,
		PageSize:    size,
		TotalItems:  totalItems,
	}
}

// ParsePaginationParams reads page and pageSize from the query string,
// falling back to defaults on anything unparsable.
func ParsePaginationParams(c *gin.Context) (page, size int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = DefaultPage
	}
	page = clampPage(page)

	size, err = strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(DefaultPageSize)))
	if err != nil || size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}

	return page, size
}

func clampPage(page int) int {
	if page < 1 {
		return DefaultPage
	}
	if page > MaxPage {
		return MaxPage
	}
	return page
}
