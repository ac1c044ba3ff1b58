package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dafibh/balcao/balcao-backend/internal/domain"
	"github.com/dafibh/balcao/balcao-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// GoalHandler handles monthly goal HTTP requests
type GoalHandler struct {
	goalService *service.GoalService
}

// NewGoalHandler creates a new GoalHandler
func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// CreateGoalRequest represents the create goal request body
type CreateGoalRequest struct {
	CategoryID int32  `json:"categoryId"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
	Amount     string `json:"amount"`
}

// UpdateGoalRequest represents the update goal request body
type UpdateGoalRequest struct {
	Amount string `json:"amount"`
}

// CreateAllocationRequest represents the create allocation request body
type CreateAllocationRequest struct {
	Day    int    `json:"day"`
	Amount string `json:"amount"`
}

// UpdateAllocationRequest represents the update allocation request body
type UpdateAllocationRequest struct {
	Amount string `json:"amount"`
}

// AllocationResponse represents a daily allocation in API responses
type AllocationResponse struct {
	ID        int32  `json:"id"`
	GoalID    int32  `json:"goalId"`
	Day       int    `json:"day"`
	Amount    string `json:"amount"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// GoalResponse represents a monthly goal in API responses
type GoalResponse struct {
	ID          int32                `json:"id"`
	CategoryID  int32                `json:"categoryId"`
	Year        int                  `json:"year"`
	Month       int                  `json:"month"`
	Amount      string               `json:"amount"`
	Allocated   string               `json:"allocated"`
	Category    *CategoryResponse    `json:"category,omitempty"`
	Allocations []AllocationResponse `json:"allocations"`
	CreatedAt   string               `json:"createdAt"`
	UpdatedAt   string               `json:"updatedAt"`
}

// CreateGoal handles POST /api/v1/monthly-goals
func (h *GoalHandler) CreateGoal(c echo.Context) error {
	var req CreateGoalRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.IsNegative() {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount must be a non-negative decimal"},
		})
	}

	goal, err := h.goalService.CreateGoal(req.CategoryID, req.Year, req.Month, amount)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return NewValidationError(c, "Year and month are required; month must be between 1 and 12", nil)
		}
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewNotFoundError(c, "Category not found")
		}
		if errors.Is(err, domain.ErrGoalAlreadyExists) {
			return NewConflictError(c, "A goal for this category and month already exists")
		}
		log.Error().Err(err).Int32("category_id", req.CategoryID).Int("year", req.Year).Int("month", req.Month).Msg("Failed to create goal")
		return NewInternalError(c, "Failed to create goal")
	}

	log.Info().Int32("goal_id", goal.ID).Int32("category_id", goal.CategoryID).Int("year", goal.Year).Int("month", goal.Month).Msg("Monthly goal created")
	return c.JSON(http.StatusCreated, toGoalResponse(goal))
}

// GetGoals handles GET /api/v1/monthly-goals
func (h *GoalHandler) GetGoals(c echo.Context) error {
	var filter domain.GoalFilter

	if raw := c.QueryParam("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return NewValidationError(c, "Invalid year", nil)
		}
		filter.Year = &year
	}
	if raw := c.QueryParam("month"); raw != "" {
		month, err := strconv.Atoi(raw)
		if err != nil || month < 1 || month > 12 {
			return NewValidationError(c, "Invalid month", nil)
		}
		filter.Month = &month
	}
	if raw := c.QueryParam("categoryId"); raw != "" {
		categoryID, err := strconv.Atoi(raw)
		if err != nil {
			return NewValidationError(c, "Invalid category ID", nil)
		}
		id := int32(categoryID)
		filter.CategoryID = &id
	}

	goals, err := h.goalService.GetGoals(filter)
	if err != nil {
		log.Error().Err(err).Msg("Failed to get goals")
		return NewInternalError(c, "Failed to get goals")
	}

	response := make([]GoalResponse, len(goals))
	for i, goal := range goals {
		response[i] = toGoalResponse(goal)
	}
	return c.JSON(http.StatusOK, response)
}

// GetGoal handles GET /api/v1/monthly-goals/:id
func (h *GoalHandler) GetGoal(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid goal ID", nil)
	}

	goal, err := h.goalService.GetGoal(int32(id))
	if err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) {
			return NewNotFoundError(c, "Goal not found")
		}
		log.Error().Err(err).Int("goal_id", id).Msg("Failed to get goal")
		return NewInternalError(c, "Failed to get goal")
	}

	return c.JSON(http.StatusOK, toGoalResponse(goal))
}

// UpdateGoal handles PUT /api/v1/monthly-goals/:id
func (h *GoalHandler) UpdateGoal(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid goal ID", nil)
	}

	var req UpdateGoalRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.IsNegative() {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount must be a non-negative decimal"},
		})
	}

	goal, err := h.goalService.UpdateGoalAmount(int32(id), amount)
	if err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) {
			return NewNotFoundError(c, "Goal not found")
		}
		if errors.Is(err, domain.ErrGoalBelowAllocated) {
			return NewConflictError(c, "Target cannot drop below the amount already allocated to days")
		}
		log.Error().Err(err).Int("goal_id", id).Msg("Failed to update goal")
		return NewInternalError(c, "Failed to update goal")
	}

	log.Info().Int32("goal_id", goal.ID).Str("amount", goal.Amount.StringFixed(2)).Msg("Monthly goal updated")
	return c.JSON(http.StatusOK, toGoalResponse(goal))
}

// DeleteGoal handles DELETE /api/v1/monthly-goals/:id
func (h *GoalHandler) DeleteGoal(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid goal ID", nil)
	}

	if err := h.goalService.DeleteGoal(int32(id)); err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) {
			return NewNotFoundError(c, "Goal not found")
		}
		log.Error().Err(err).Int("goal_id", id).Msg("Failed to delete goal")
		return NewInternalError(c, "Failed to delete goal")
	}

	log.Info().Int("goal_id", id).Msg("Monthly goal deleted")
	return c.NoContent(http.StatusNoContent)
}

// CreateAllocation handles POST /api/v1/monthly-goals/:id/daily-allocations
func (h *GoalHandler) CreateAllocation(c echo.Context) error {
	goalID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid goal ID", nil)
	}

	var req CreateAllocationRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.IsNegative() {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount must be a non-negative decimal"},
		})
	}

	allocation, err := h.goalService.CreateAllocation(int32(goalID), req.Day, amount)
	if err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) {
			return NewNotFoundError(c, "Goal not found")
		}
		if errors.Is(err, domain.ErrDayOutOfRange) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "day", Message: "Day is outside the goal's month"},
			})
		}
		if errors.Is(err, domain.ErrAllocationsExceedTarget) {
			return NewConflictError(c, "Daily allocations would exceed the monthly target")
		}
		log.Error().Err(err).Int("goal_id", goalID).Int("day", req.Day).Msg("Failed to create allocation")
		return NewInternalError(c, "Failed to create allocation")
	}

	log.Info().Int32("allocation_id", allocation.ID).Int("goal_id", goalID).Int("day", allocation.Day).Msg("Daily allocation saved")
	return c.JSON(http.StatusCreated, toAllocationResponse(allocation))
}

// UpdateAllocation handles PUT /api/v1/daily-allocations/:id
func (h *GoalHandler) UpdateAllocation(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid allocation ID", nil)
	}

	var req UpdateAllocationRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.IsNegative() {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount must be a non-negative decimal"},
		})
	}

	allocation, err := h.goalService.UpdateAllocation(int32(id), amount)
	if err != nil {
		if errors.Is(err, domain.ErrAllocationNotFound) {
			return NewNotFoundError(c, "Allocation not found")
		}
		if errors.Is(err, domain.ErrAllocationsExceedTarget) {
			return NewConflictError(c, "Daily allocations would exceed the monthly target")
		}
		log.Error().Err(err).Int("allocation_id", id).Msg("Failed to update allocation")
		return NewInternalError(c, "Failed to update allocation")
	}

	return c.JSON(http.StatusOK, toAllocationResponse(allocation))
}

// DeleteAllocation handles DELETE /api/v1/daily-allocations/:id
func (h *GoalHandler) DeleteAllocation(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid allocation ID", nil)
	}

	if err := h.goalService.DeleteAllocation(int32(id)); err != nil {
		if errors.Is(err, domain.ErrAllocationNotFound) {
			return NewNotFoundError(c, "Allocation not found")
		}
		log.Error().Err(err).Int("allocation_id", id).Msg("Failed to delete allocation")
		return NewInternalError(c, "Failed to delete allocation")
	}

	return c.NoContent(http.StatusNoContent)
}

func toAllocationResponse(allocation *domain.DailyAllocation) AllocationResponse {
	return AllocationResponse{
		ID:        allocation.ID,
		GoalID:    allocation.GoalID,
		Day:       allocation.Day,
		Amount:    allocation.Amount.StringFixed(2),
		CreatedAt: allocation.CreatedAt.Format(time.RFC3339),
		UpdatedAt: allocation.UpdatedAt.Format(time.RFC3339),
	}
}

func toGoalResponse(goal *domain.MonthlyGoal) GoalResponse {
	resp := GoalResponse{
		ID:          goal.ID,
		CategoryID:  goal.CategoryID,
		Year:        goal.Year,
		Month:       goal.Month,
		Amount:      goal.Amount.StringFixed(2),
		Allocated:   goal.AllocatedTotal().StringFixed(2),
		Allocations: make([]AllocationResponse, len(goal.Allocations)),
		CreatedAt:   goal.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   goal.UpdatedAt.Format(time.RFC3339),
	}
	if goal.Category != nil {
		category := toCategoryResponse(goal.Category)
		resp.Category = &category
	}
	for i, allocation := range goal.Allocations {
		resp.Allocations[i] = toAllocationResponse(allocation)
	}
	return resp
}
