package handlers

import (
	"net/http"

	"core/services"

	"github.com/gin-gonic/gin"
)

type RankingHandler struct {
	rankingService *services.RankingService
}

func NewRankingHandler(rankingService *services.RankingService) *RankingHandler {
	return &RankingHandler{rankingService: rankingService}
}

// GetGlobalRanking retrieves the global ranking
// @Summary Get global ranking
// @Description Get the ranking across all pools, ordered by points with deterministic tie-breaks, including position deltas since the last recompute
// @Tags rankings
// @Produce json
// @Success 200 {array} models.RankingEntry
// @Failure 500 {object} map[string]string
// @Router /rankings/global [get]
func (h *RankingHandler) GetGlobalRanking(c *gin.Context) {
	entries, err := h.rankingService.GetRanking(nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve ranking"})
		return
	}

	c.JSON(http.StatusOK, entries)
}

// GetPoolRanking retrieves the ranking of a single pool
// @Summary Get pool ranking
// @Description Get the ranking restricted to one pool's matches
// @Tags rankings
// @Produce json
// @Param id path int true "Pool ID"
// @Success 200 {array} models.RankingEntry
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /pools/{id}/ranking [get]
func (h *RankingHandler) GetPoolRanking(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	entries, err := h.rankingService.GetRanking(&id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve ranking"})
		return
	}

	c.JSON(http.StatusOK, entries)
}
