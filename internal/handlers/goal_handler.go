package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// GoalHandler handles savings goal requests.
type GoalHandler struct {
	goalService  services.GoalServicer
	alertService services.AlertServicer
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService services.GoalServicer, alertService services.AlertServicer) *GoalHandler {
	return &GoalHandler{goalService: goalService, alertService: alertService}
}

// CreateGoalRequest represents the request payload for creating a goal.
type CreateGoalRequest struct {
	Name         string     `json:"name" binding:"required,min=1,max=100"`
	TargetAmount int64      `json:"target_amount" binding:"required,gt=0"`
	TargetDate   *time.Time `json:"target_date"`
}

// UpdateGoalRequest represents the request payload for editing a goal.
type UpdateGoalRequest struct {
	Name         string     `json:"name" binding:"omitempty,min=1,max=100"`
	TargetAmount *int64     `json:"target_amount" binding:"omitempty,gt=0"`
	TargetDate   *time.Time `json:"target_date"`
}

// ContributeRequest represents the request payload for a goal contribution.
type ContributeRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

// CreateGoal creates a new goal.
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.CreateGoal(req.Name, req.TargetAmount, req.TargetDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"goal": goal})
}

// GetGoals lists goals.
func (h *GoalHandler) GetGoals(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.goalService.GetGoals(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetGoalByID returns a single goal.
func (h *GoalHandler) GetGoalByID(c *gin.Context) {
	goal, err := h.goalService.GetGoalByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// GetGoalStatus returns the goal with computed progress.
func (h *GoalHandler) GetGoalStatus(c *gin.Context) {
	status, err := h.goalService.GetGoalStatus(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// UpdateGoal edits a goal. Edits clear milestone latches, so milestones can
// notify again against the new target.
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.UpdateGoal(c.Param("id"), req.Name, req.TargetAmount, req.TargetDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if _, err := h.alertService.Evaluate(); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// Contribute adds to a goal's current amount and re-runs evaluation so
// freshly crossed milestones notify immediately.
func (h *GoalHandler) Contribute(c *gin.Context) {
	var req ContributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.Contribute(c.Param("id"), req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	notifications, err := h.alertService.Evaluate()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal, "notifications": notifications})
}

// DeleteGoal removes a goal and its latches.
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	if err := h.goalService.DeleteGoal(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Goal deleted"})
}
