package handlers

import (
	"net/http"
	"strconv"
	"time"

	"core/models"
	"core/services"

	authMiddleware "auth/middleware"

	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	matchService *services.MatchService
}

func NewMatchHandler(matchService *services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

// CreateMatch creates a new match in a pool
// @Summary Create a new match
// @Description Add a scheduled match to a pool. Only the pool creator can add matches.
// @Tags matches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param match body models.CreateMatchRequest true "Match data"
// @Success 201 {object} models.Match
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /matches [post]
func (h *MatchHandler) CreateMatch(c *gin.Context) {
	userID, exists := authMiddleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req models.CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	match, err := h.matchService.CreateMatch(userID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create match")
		return
	}

	c.JSON(http.StatusCreated, match)
}

// GetMatches retrieves matches with pagination and filters
// @Summary Get matches with pagination and filters
// @Description Get matches with optional filters for pool, status, and date range
// @Tags matches
// @Produce json
// @Param page query int false "Page number (default: 1)" default(1)
// @Param per_page query int false "Items per page (default: 10, max: 100)" default(10)
// @Param pool_id query int false "Filter by pool ID"
// @Param status query string false "Filter by match status" Enums(scheduled,live,finished,cancelled)
// @Param date_from query string false "Filter from date (YYYY-MM-DD format)"
// @Param date_to query string false "Filter to date (YYYY-MM-DD format)"
// @Success 200 {object} models.PaginatedMatchResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /matches [get]
func (h *MatchHandler) GetMatches(c *gin.Context) {
	page, perPage, ok := parsePagination(c)
	if !ok {
		return
	}

	filters := services.MatchFilters{
		Page:    page,
		PerPage: perPage,
	}

	if poolIDStr := c.Query("pool_id"); poolIDStr != "" {
		poolID, err := strconv.ParseUint(poolIDStr, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pool_id parameter"})
			return
		}
		poolIDUint := uint(poolID)
		filters.PoolID = &poolIDUint
	}

	if status := c.Query("status"); status != "" {
		switch status {
		case models.MatchStatusScheduled, models.MatchStatusLive, models.MatchStatusFinished, models.MatchStatusCancelled:
			filters.Status = &status
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status. Must be one of: scheduled, live, finished, cancelled"})
			return
		}
	}

	if dateFromStr := c.Query("date_from"); dateFromStr != "" {
		dateFrom, err := time.Parse("2006-01-02", dateFromStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date_from format. Use YYYY-MM-DD"})
			return
		}
		filters.DateFrom = &dateFrom
	}

	if dateToStr := c.Query("date_to"); dateToStr != "" {
		dateTo, err := time.Parse("2006-01-02", dateToStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date_to format. Use YYYY-MM-DD"})
			return
		}
		filters.DateTo = &dateTo
	}

	result, err := h.matchService.GetMatches(filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve matches"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetUpcomingMatches retrieves upcoming matches for the authenticated user
// @Summary Get upcoming matches
// @Description Get the next scheduled matches across the pools the user participates in
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Number of matches to retrieve (default: 10, max: 50)"
// @Success 200 {array} models.Match
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /matches/upcoming [get]
func (h *MatchHandler) GetUpcomingMatches(c *gin.Context) {
	userID, exists := authMiddleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	limit, ok := parseLimit(c, 10, 50)
	if !ok {
		return
	}

	matches, err := h.matchService.GetUpcomingMatches(userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve upcoming matches"})
		return
	}

	c.JSON(http.StatusOK, matches)
}

// GetMatch retrieves a match by ID
// @Summary Get match by ID
// @Description Get a single match with its pool
// @Tags matches
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} models.Match
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /matches/{id} [get]
func (h *MatchHandler) GetMatch(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	match, err := h.matchService.GetMatch(id)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve match")
		return
	}

	c.JSON(http.StatusOK, match)
}

// UpdateMatch updates a match
// @Summary Update a match (PATCH)
// @Description Update match details, status or scores. Setting status to finished with both scores triggers scoring for all bets on the match.
// @Tags matches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param update body models.UpdateMatchRequest true "Fields to update"
// @Success 200 {object} models.Match
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /matches/{id} [patch]
func (h *MatchHandler) UpdateMatch(c *gin.Context) {
	userID, exists := authMiddleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	match, err := h.matchService.UpdateMatch(userID, id, req)
	if err != nil {
		respondServiceError(c, err, "Failed to update match")
		return
	}

	c.JSON(http.StatusOK, match)
}

// CancelMatch cancels a match
// @Summary Cancel a match
// @Description Cancel a scheduled or live match. Bets on a cancelled match earn no points.
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} models.Match
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /matches/{id}/cancel [post]
func (h *MatchHandler) CancelMatch(c *gin.Context) {
	userID, exists := authMiddleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	match, err := h.matchService.CancelMatch(userID, id)
	if err != nil {
		respondServiceError(c, err, "Failed to cancel match")
		return
	}

	c.JSON(http.StatusOK, match)
}

// DeleteMatch deletes a match and its bets
// @Summary Delete a match
// @Description Delete a match and all bets placed on it. Admin only.
// @Tags matches
// @Security BearerAuth
// @Param id path int true "Match ID"
// @Success 204
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /matches/{id} [delete]
func (h *MatchHandler) DeleteMatch(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.matchService.DeleteMatch(id); err != nil {
		respondServiceError(c, err, "Failed to delete match")
		return
	}

	c.Status(http.StatusNoContent)
}
