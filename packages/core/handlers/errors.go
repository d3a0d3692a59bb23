package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"core/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// respondServiceError maps service sentinel errors to HTTP status codes.
// Unknown errors get a 500 with the provided fallback message so internal
// details never leak to clients.
func respondServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrPoolNotFound),
		errors.Is(err, services.ErrMatchNotFound),
		errors.Is(err, services.ErrPollNotFound),
		errors.Is(err, services.ErrBetNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, services.ErrNotCreator):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})

	case errors.Is(err, services.ErrInvalidCode),
		errors.Is(err, services.ErrSameTeam),
		errors.Is(err, services.ErrInvalidDates),
		errors.Is(err, services.ErrTooFewOptions),
		errors.Is(err, services.ErrOptionNotInPoll):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, services.ErrAlreadyMember),
		errors.Is(err, services.ErrAlreadyVoted):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	case errors.Is(err, services.ErrPoolClosed),
		errors.Is(err, services.ErrPoolFull),
		errors.Is(err, services.ErrNotMember),
		errors.Is(err, services.ErrDeadlinePassed),
		errors.Is(err, services.ErrMatchNotScheduled),
		errors.Is(err, services.ErrBetsHidden),
		errors.Is(err, services.ErrIncompleteMatch),
		errors.Is(err, services.ErrScoresNotAllowed),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrPoolNotDraft),
		errors.Is(err, services.ErrNoMatchScheduled),
		errors.Is(err, services.ErrPollNotOpen),
		errors.Is(err, services.ErrPollNotDraft),
		errors.Is(err, services.ErrCreatorCantLeave):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// parsePagination reads page and per_page query parameters with the
// usual defaults and a hard cap of 100 items per page.
func parsePagination(c *gin.Context) (page, perPage int, ok bool) {
	page, err := atoiQuery(c, "page", 1)
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page parameter"})
		return 0, 0, false
	}

	perPage, err = atoiQuery(c, "per_page", 10)
	if err != nil || perPage < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid per_page parameter"})
		return 0, 0, false
	}

	if perPage > 100 {
		perPage = 100
	}
	return page, perPage, true
}

func atoiQuery(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

// parseIDParam reads a numeric path parameter, responding 400 itself
// when the value is not a positive integer.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " parameter"})
		return 0, false
	}
	return uint(id), true
}

// parseLimit reads a limit query parameter with a default and cap.
func parseLimit(c *gin.Context, def, max int) (int, bool) {
	limit, err := atoiQuery(c, "limit", def)
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
		return 0, false
	}
	if limit > max {
		limit = max
	}
	return limit, true
}
