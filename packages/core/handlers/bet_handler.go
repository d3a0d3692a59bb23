package handlers

import (
	"net/http"
	"strconv"

	"core/models"
	"core/services"

	authMiddleware "auth/middleware"

	"github.com/gin-gonic/gin"
)

type BetHandler struct {
	betService *services.BetService
}

func NewBetHandler(betService *services.BetService) *BetHandler {
	return &BetHandler{betService: betService}
}

// PlaceBet places or replaces a bet on a match
// @Summary Place a bet
// @Description Predict the final score of a scheduled match. Placing a second bet on the same match replaces the first. Bets close 15 minutes before kickoff.
// @Tags bets
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param bet body models.PlaceBetRequest true "Bet data"
// @Success 201 {object} models.UserBet
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bets [post]
func (h *BetHandler) PlaceBet(c *gin.Context) {
	userID, exists := authMiddleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req models.PlaceBetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	bet, err := h.betService.PlaceBet(userID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to place bet")
		return
	}

	c.JSON(http.StatusCreated, bet)
}

// GetMyBets retrieves the authenticated user's bets
// @Summary Get my bets
// @Description Get all bets of the authenticated user, optionally scoped to a single pool
// @Tags bets
// @Security BearerAuth
// @Produce json
// @Param pool_id query int false "Filter by pool ID"
// @Success 200 {array} models.UserBet
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /bets/me [get]
func (h *BetHandler) GetMyBets(c *gin.Context) {
	userID, exists := authMiddleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var poolID *uint
	if poolIDStr := c.Query("pool_id"); poolIDStr != "" {
		parsed, err := strconv.ParseUint(poolIDStr, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pool_id parameter"})
			return
		}
		parsedUint := uint(parsed)
		poolID = &parsedUint
	}

	bets, err := h.betService.GetUserBets(userID, poolID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve bets"})
		return
	}

	c.JSON(http.StatusOK, bets)
}

// GetMatchBets retrieves all bets placed on a match
// @Summary Get bets for a match
// @Description List every bet placed on a match. Predictions of other users are only visible once the betting deadline passed.
// @Tags bets
// @Security BearerAuth
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {array} models.UserBet
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /matches/{id}/bets [get]
func (h *BetHandler) GetMatchBets(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	bets, err := h.betService.GetMatchBets(id)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve bets")
		return
	}

	c.JSON(http.StatusOK, bets)
}
