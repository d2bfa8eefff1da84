package handler

import (
	"errors"
	"net/http"
	"strconv"

	"reviewhub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

// parsePagination reads page/page_size query params (page 1, size 20,
// capped at 100).
func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

// respondError maps service sentinel errors onto HTTP statuses. Anything
// unrecognized is a 500 with a generic message; lower-layer failures are
// never masked as client errors.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrReservedUsername),
		errors.Is(err, service.ErrUsernameInUse),
		errors.Is(err, service.ErrEmailInUse),
		errors.Is(err, service.ErrInvalidCode),
		errors.Is(err, service.ErrSlugInUse),
		errors.Is(err, service.ErrInvalidSlug),
		errors.Is(err, service.ErrUnknownCategory),
		errors.Is(err, service.ErrUnknownGenre),
		errors.Is(err, service.ErrFutureYear),
		errors.Is(err, service.ErrDuplicateReview):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
