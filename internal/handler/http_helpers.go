package handler

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/folio/internal/service"
	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// respondGone tells htmx to reload the page when a view expired.
func respondGone(c *gin.Context) {
	c.Header("HX-Refresh", "true")
	c.String(http.StatusGone, service.ErrMountNotFound.Error())
}

// respondServiceError maps service sentinel errors to HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMountNotFound):
		respondGone(c)
	case errors.Is(err, service.ErrSectionNotFound),
		errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, service.ErrTabNotFound):
		c.String(http.StatusNotFound, err.Error())
	default:
		c.Error(err)
		c.String(http.StatusInternalServerError, "internal error")
	}
}

func parsePositiveInt(value string, fallback int) int {
	num, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || num <= 0 {
		return fallback
	}
	return num
}

func parseNonNegativeInt(value string) int {
	num, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || num < 0 {
		return 0
	}
	return num
}

// parseRatio reads an intersection ratio. A missing or invalid value counts
// as fully visible.
func parseRatio(value string) float64 {
	ratio, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(ratio) || ratio < 0 || ratio > 1 {
		return 1
	}
	return ratio
}

func parseBool(value string, fallback bool) bool {
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}
