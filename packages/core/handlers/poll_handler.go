package handlers

import (
	"net/http"

	"core/models"
	"core/services"

	authMiddleware "auth/middleware"

	"github.com/gin-gonic/gin"
)

type PollHandler struct {
	pollService *services.PollService
}

func NewPollHandler(pollService *services.PollService) *PollHandler {
	return &PollHandler{pollService: pollService}
}

// CreatePoll creates a new poll
// @Summary Create a new poll
// @Description Create a poll in draft status with between 2 and 10 options. Admin only.
// @Tags polls
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param poll body models.CreatePollRequest true "Poll data"
// @Success 201 {object} models.Poll
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /polls [post]
func (h *PollHandler) CreatePoll(c *gin.Context) {
	userID, exists := authMiddleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req models.CreatePollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	poll, err := h.pollService.CreatePoll(userID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create poll")
		return
	}

	c.JSON(http.StatusCreated, poll)
}

// GetPolls retrieves polls
// @Summary Get polls
// @Description List polls, optionally filtered by status, newest first
// @Tags polls
// @Produce json
// @Param status query string false "Filter by poll status" Enums(draft,open,closed)
// @Param limit query int false "Number of polls to retrieve (default: 20, max: 100)"
// @Success 200 {array} models.Poll
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /polls [get]
func (h *PollHandler) GetPolls(c *gin.Context) {
	limit, ok := parseLimit(c, 20, 100)
	if !ok {
		return
	}

	var status *string
	if raw := c.Query("status"); raw != "" {
		switch raw {
		case models.PollStatusDraft, models.PollStatusOpen, models.PollStatusClosed:
			status = &raw
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status. Must be one of: draft, open, closed"})
			return
		}
	}

	polls, err := h.pollService.GetPolls(status, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve polls"})
		return
	}

	c.JSON(http.StatusOK, polls)
}

// GetPoll retrieves a poll by ID
// @Summary Get poll by ID
// @Description Get a poll with its options and vote counts. When authenticated, includes the caller's vote.
// @Tags polls
// @Produce json
// @Param id path int true "Poll ID"
// @Success 200 {object} models.PollWithVote
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /polls/{id} [get]
func (h *PollHandler) GetPoll(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if userID, exists := authMiddleware.GetUserID(c); exists {
		poll, err := h.pollService.GetPollForUser(id, userID)
		if err != nil {
			respondServiceError(c, err, "Failed to retrieve poll")
			return
		}
		c.JSON(http.StatusOK, poll)
		return
	}

	poll, err := h.pollService.GetPoll(id)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve poll")
		return
	}

	c.JSON(http.StatusOK, poll)
}

// PublishPoll moves a draft poll to open
// @Summary Publish a poll
// @Description Move a draft poll to open so users can vote
// @Tags polls
// @Security BearerAuth
// @Produce json
// @Param id path int true "Poll ID"
// @Success 200 {object} models.Poll
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /polls/{id}/publish [post]
func (h *PollHandler) PublishPoll(c *gin.Context) {
	userID, exists := authMiddleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	poll, err := h.pollService.PublishPoll(userID, id)
	if err != nil {
		respondServiceError(c, err, "Failed to publish poll")
		return
	}

	c.JSON(http.StatusOK, poll)
}

// ClosePoll closes an open poll
// @Summary Close a poll
// @Description Close an open poll. Results stay visible but no further votes are accepted.
// @Tags polls
// @Security BearerAuth
// @Produce json
// @Param id path int true "Poll ID"
// @Success 200 {object} models.Poll
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /polls/{id}/close [post]
func (h *PollHandler) ClosePoll(c *gin.Context) {
	userID, exists := authMiddleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	poll, err := h.pollService.ClosePoll(userID, id)
	if err != nil {
		respondServiceError(c, err, "Failed to close poll")
		return
	}

	c.JSON(http.StatusOK, poll)
}

// DeletePoll deletes a draft poll
// @Summary Delete a poll
// @Description Delete a poll that is still in draft status
// @Tags polls
// @Security BearerAuth
// @Param id path int true "Poll ID"
// @Success 204
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /polls/{id} [delete]
func (h *PollHandler) DeletePoll(c *gin.Context) {
	userID, exists := authMiddleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.pollService.DeletePoll(userID, id); err != nil {
		respondServiceError(c, err, "Failed to delete poll")
		return
	}

	c.Status(http.StatusNoContent)
}

// Vote casts a vote in a poll
// @Summary Vote in a poll
// @Description Cast a single vote for one option of an open poll. Votes are final.
// @Tags polls
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Poll ID"
// @Param vote body models.VotePollRequest true "Chosen option"
// @Success 201 {object} models.UserPollVote
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /polls/{id}/vote [post]
func (h *PollHandler) Vote(c *gin.Context) {
	userID, exists := authMiddleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.VotePollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	vote, err := h.pollService.Vote(userID, id, req)
	if err != nil {
		respondServiceError(c, err, "Failed to register vote")
		return
	}

	c.JSON(http.StatusCreated, vote)
}
