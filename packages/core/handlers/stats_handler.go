package handlers

import (
	"net/http"

	"core/services"

	authMiddleware "auth/middleware"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	statsService *services.StatsService
}

func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// GetStats retrieves general statistics
// @Summary Get general statistics
// @Description Get platform totals and seven day activity trends for the dashboard
// @Tags stats
// @Produce json
// @Success 200 {object} models.Stats
// @Failure 500 {object} map[string]string
// @Router /stats [get]
func (h *StatsHandler) GetStats(c *gin.Context) {
	stats, err := h.statsService.GetStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve statistics",
		})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetMyStats retrieves the authenticated user's statistics
// @Summary Get my statistics
// @Description Get total points, bet counts and accuracy for the authenticated user
// @Tags stats
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.UserStats
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /stats/me [get]
func (h *StatsHandler) GetMyStats(c *gin.Context) {
	userID, exists := authMiddleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	stats, err := h.statsService.GetUserStats(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve statistics",
		})
		return
	}

	c.JSON(http.StatusOK, stats)
}
