package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"locates/internal/shared/constants"
)

type Pagination struct {
	Page  int
	Limit int
}

// ValidatePagination applies the defaults and caps the limit.
func ValidatePagination(page, limit int) Pagination {
	if page < 1 {
		page = constants.DefaultPage
	}
	if limit < 1 {
		limit = constants.DefaultPageSize
	}
	if limit > constants.MaxPageSize {
		limit = constants.MaxPageSize
	}
	return Pagination{Page: page, Limit: limit}
}

// ParsePagination reads ?page and ?limit (page_size is accepted as an alias).
func ParsePagination(c *gin.Context) Pagination {
	limitKey := "limit"
	if c.Query(limitKey) == "" && c.Query("page_size") != "" {
		limitKey = "page_size"
	}
	return ValidatePagination(
		parseQueryInt(c, "page", constants.DefaultPage),
		parseQueryInt(c, limitKey, constants.DefaultPageSize),
	)
}

func parseQueryInt(c *gin.Context, key string, defaultVal int) int {
	if val := c.Query(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

// ApplyPagination returns the slice bounds for the requested page.
func ApplyPagination(total, page, limit int) (start, end int) {
	start = (page - 1) * limit
	end = start + limit

	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return start, end
}

func TotalPages(total int64, limit int) int {
	if total == 0 || limit <= 0 {
		return 1
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
