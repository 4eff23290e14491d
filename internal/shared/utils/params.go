package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"locates/internal/shared/errors"
	"locates/internal/shared/id"
)

// ParseSIDParam reads a prefixed ID (e.g. wo_xxxxx) from a path parameter.
func ParseSIDParam(c *gin.Context, paramName, prefix, entityName string) (string, error) {
	sid := strings.TrimSpace(c.Param(paramName))
	if sid == "" {
		return "", errors.NewValidationError(entityName + " ID is required")
	}

	if err := id.ValidatePrefix(sid, prefix); err != nil {
		return "", errors.NewValidationError(
			fmt.Sprintf("invalid %s ID format, expected %s_xxxxx", entityName, prefix),
		)
	}

	return sid, nil
}

// ParseUintParam reads a positive numeric path parameter.
func ParseUintParam(c *gin.Context, paramName, entityName string) (uint, error) {
	raw := strings.TrimSpace(c.Param(paramName))
	if raw == "" {
		return 0, errors.NewValidationError(entityName + " ID is required")
	}

	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, errors.NewValidationError(fmt.Sprintf("invalid %s ID: %s", entityName, raw))
	}
	return uint(n), nil
}
