package handlers

import (
	"net/http"
	"strconv"

	"core/models"
	"core/services"

	authMiddleware "auth/middleware"

	"github.com/gin-gonic/gin"
)

type PoolHandler struct {
	poolService *services.PoolService
}

func NewPoolHandler(poolService *services.PoolService) *PoolHandler {
	return &PoolHandler{poolService: poolService}
}

// CreatePool creates a new pool
// @Summary Create a new pool
// @Description Create a pool in draft status. The creator joins automatically as the first participant.
// @Tags pools
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param pool body models.CreatePoolRequest true "Pool data"
// @Success 201 {object} models.Pool
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /pools [post]
func (h *PoolHandler) CreatePool(c *gin.Context) {
	userID, exists := authMiddleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req models.CreatePoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	pool, err := h.poolService.CreatePool(userID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create pool")
		return
	}

	c.JSON(http.StatusCreated, pool)
}

// GetPools retrieves pools with pagination and filters
// @Summary Get pools with pagination and filters
// @Description Get pools with optional filters for status, creator, membership and name search
// @Tags pools
// @Produce json
// @Param page query int false "Page number (default: 1)" default(1)
// @Param per_page query int false "Items per page (default: 10, max: 100)" default(10)
// @Param status query string false "Filter by pool status" Enums(draft,open,active,finished)
// @Param creator_id query int false "Filter by creator ID"
// @Param member query bool false "Only pools the authenticated user participates in"
// @Param search query string false "Filter by pool name (partial match)"
// @Success 200 {object} models.PaginatedPoolResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /pools [get]
func (h *PoolHandler) GetPools(c *gin.Context) {
	page, perPage, ok := parsePagination(c)
	if !ok {
		return
	}

	filters := services.PoolFilters{
		Page:    page,
		PerPage: perPage,
		Search:  c.Query("search"),
	}

	if status := c.Query("status"); status != "" {
		switch status {
		case models.PoolStatusDraft, models.PoolStatusOpen, models.PoolStatusActive, models.PoolStatusFinished:
			filters.Status = &status
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status. Must be one of: draft, open, active, finished"})
			return
		}
	}

	if creatorIDStr := c.Query("creator_id"); creatorIDStr != "" {
		creatorID, err := strconv.ParseUint(creatorIDStr, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid creator_id parameter"})
			return
		}
		creatorIDUint := uint(creatorID)
		filters.CreatorID = &creatorIDUint
	}

	if c.Query("member") == "true" {
		userID, exists := authMiddleware.GetUserID(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		filters.ParticipantID = &userID
	}

	result, err := h.poolService.GetPools(filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve pools"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetPool retrieves a pool by ID
// @Summary Get pool by ID
// @Description Get a pool with its participants and matches
// @Tags pools
// @Produce json
// @Param id path int true "Pool ID"
// @Success 200 {object} models.Pool
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /pools/{id} [get]
func (h *PoolHandler) GetPool(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	pool, err := h.poolService.GetPool(id)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve pool")
		return
	}

	c.JSON(http.StatusOK, pool)
}

// UpdatePool updates a pool
// @Summary Update a pool
// @Description Update pool settings. Only the creator can update, and only while the pool is in draft or open status.
// @Tags pools
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Pool ID"
// @Param pool body models.UpdatePoolRequest true "Fields to update"
// @Success 200 {object} models.Pool
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /pools/{id} [patch]
func (h *PoolHandler) UpdatePool(c *gin.Context) {
	userID, exists := authMiddleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdatePoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	pool, err := h.poolService.UpdatePool(userID, id, req)
	if err != nil {
		respondServiceError(c, err, "Failed to update pool")
		return
	}

	c.JSON(http.StatusOK, pool)
}

// PublishPool moves a draft pool to open
// @Summary Publish a pool
// @Description Move a draft pool to open so participants can join with the invite code
// @Tags pools
// @Security BearerAuth
// @Produce json
// @Param id path int true "Pool ID"
// @Success 200 {object} models.Pool
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /pools/{id}/publish [post]
func (h *PoolHandler) PublishPool(c *gin.Context) {
	h.transition(c, h.poolService.PublishPool, "Failed to publish pool")
}

// ActivatePool moves an open pool to active
// @Summary Activate a pool
// @Description Move an open pool to active. Requires at least one scheduled match.
// @Tags pools
// @Security BearerAuth
// @Produce json
// @Param id path int true "Pool ID"
// @Success 200 {object} models.Pool
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /pools/{id}/activate [post]
func (h *PoolHandler) ActivatePool(c *gin.Context) {
	h.transition(c, h.poolService.ActivatePool, "Failed to activate pool")
}

// FinishPool moves an active pool to finished
// @Summary Finish a pool
// @Description Move an active pool to finished. Rankings are frozen at this point.
// @Tags pools
// @Security BearerAuth
// @Produce json
// @Param id path int true "Pool ID"
// @Success 200 {object} models.Pool
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /pools/{id}/finish [post]
func (h *PoolHandler) FinishPool(c *gin.Context) {
	h.transition(c, h.poolService.FinishPool, "Failed to finish pool")
}

func (h *PoolHandler) transition(c *gin.Context, fn func(userID, poolID uint) (*models.Pool, error), fallback string) {
	userID, exists := authMiddleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	pool, err := fn(userID, id)
	if err != nil {
		respondServiceError(c, err, fallback)
		return
	}

	c.JSON(http.StatusOK, pool)
}

// DeletePool deletes a draft pool
// @Summary Delete a pool
// @Description Delete a pool that is still in draft status. Only the creator can delete.
// @Tags pools
// @Security BearerAuth
// @Param id path int true "Pool ID"
// @Success 204
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /pools/{id} [delete]
func (h *PoolHandler) DeletePool(c *gin.Context) {
	userID, exists := authMiddleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.poolService.DeletePool(userID, id); err != nil {
		respondServiceError(c, err, "Failed to delete pool")
		return
	}

	c.Status(http.StatusNoContent)
}

// JoinPool joins a pool via invite code
// @Summary Join a pool
// @Description Join a pool using its 8 character invite code
// @Tags pools
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param join body models.JoinPoolRequest true "Invite code"
// @Success 200 {object} models.Pool
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /pools/join [post]
func (h *PoolHandler) JoinPool(c *gin.Context) {
	userID, exists := authMiddleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req models.JoinPoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	pool, err := h.poolService.JoinPool(userID, req.InviteCode)
	if err != nil {
		respondServiceError(c, err, "Failed to join pool")
		return
	}

	c.JSON(http.StatusOK, pool)
}

// LeavePool leaves a pool
// @Summary Leave a pool
// @Description Remove the authenticated user from a pool. The creator cannot leave.
// @Tags pools
// @Security BearerAuth
// @Param id path int true "Pool ID"
// @Success 204
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /pools/{id}/leave [post]
func (h *PoolHandler) LeavePool(c *gin.Context) {
	userID, exists := authMiddleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.poolService.LeavePool(userID, id); err != nil {
		respondServiceError(c, err, "Failed to leave pool")
		return
	}

	c.Status(http.StatusNoContent)
}
