package service

import (
	"testing"

	"github.com/dafibh/balcao/balcao-backend/internal/domain"
	"github.com/dafibh/balcao/balcao-backend/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGoal(t *testing.T, goalService *GoalService, categoryID int32, year, month int, amount string) *domain.MonthlyGoal {
	t.Helper()
	goal, err := goalService.CreateGoal(categoryID, year, month, decimal.RequireFromString(amount))
	require.NoError(t, err)
	return goal
}

func TestCreateGoal_Success(t *testing.T) {
	goalRepo := testutil.NewMockMonthlyGoalRepository()
	goalService := NewGoalService(goalRepo)

	goal := newGoal(t, goalService, 1, 2025, 9, "1000")

	assert.Equal(t, int32(1), goal.CategoryID)
	assert.Equal(t, 2025, goal.Year)
	assert.Equal(t, 9, goal.Month)
	assert.True(t, goal.Amount.Equal(decimal.RequireFromString("1000")))
}

func TestCreateGoal_InvalidMonth(t *testing.T) {
	goalRepo := testutil.NewMockMonthlyGoalRepository()
	goalService := NewGoalService(goalRepo)

	_, err := goalService.CreateGoal(1, 2025, 13, decimal.NewFromInt(100))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = goalService.CreateGoal(1, 2025, 0, decimal.NewFromInt(100))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = goalService.CreateGoal(1, 0, 9, decimal.NewFromInt(100))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateGoal_DuplicateMonth(t *testing.T) {
	goalRepo := testutil.NewMockMonthlyGoalRepository()
	goalService := NewGoalService(goalRepo)

	newGoal(t, goalService, 1, 2025, 9, "1000")

	_, err := goalService.CreateGoal(1, 2025, 9, decimal.NewFromInt(500))
	assert.ErrorIs(t, err, domain.ErrGoalAlreadyExists)
}

func TestCreateAllocation_Success(t *testing.T) {
	goalRepo := testutil.NewMockMonthlyGoalRepository()
	goalService := NewGoalService(goalRepo)

	goal := newGoal(t, goalService, 1, 2025, 9, "1000")

	allocation, err := goalService.CreateAllocation(goal.ID, 5, decimal.RequireFromString("200"))
	require.NoError(t, err)

	assert.Equal(t, 5, allocation.Day)
	assert.True(t, allocation.Amount.Equal(decimal.RequireFromString("200")))
}

func TestCreateAllocation_ReplacesSameDay(t *testing.T) {
	goalRepo := testutil.NewMockMonthlyGoalRepository()
	goalService := NewGoalService(goalRepo)

	goal := newGoal(t, goalService, 1, 2025, 9, "1000")

	first, err := goalService.CreateAllocation(goal.ID, 5, decimal.RequireFromString("200"))
	require.NoError(t, err)

	second, err := goalService.CreateAllocation(goal.ID, 5, decimal.RequireFromString("350"))
	require.NoError(t, err)

	// Same day overwrites, never accumulates
	assert.Equal(t, first.ID, second.ID)
	require.Len(t, goal.Allocations, 1)
	assert.True(t, goal.Allocations[0].Amount.Equal(decimal.RequireFromString("350")))
}

func TestCreateAllocation_DayOutOfRange(t *testing.T) {
	goalRepo := testutil.NewMockMonthlyGoalRepository()
	goalService := NewGoalService(goalRepo)

	// September has 30 days
	goal := newGoal(t, goalService, 1, 2025, 9, "1000")

	_, err := goalService.CreateAllocation(goal.ID, 31, decimal.NewFromInt(100))
	assert.ErrorIs(t, err, domain.ErrDayOutOfRange)

	_, err = goalService.CreateAllocation(goal.ID, 0, decimal.NewFromInt(100))
	assert.ErrorIs(t, err, domain.ErrDayOutOfRange)
}

func TestCreateAllocation_LeapFebruary(t *testing.T) {
	goalRepo := testutil.NewMockMonthlyGoalRepository()
	goalService := NewGoalService(goalRepo)

	goal := newGoal(t, goalService, 1, 2024, 2, "1000")

	_, err := goalService.CreateAllocation(goal.ID, 29, decimal.NewFromInt(100))
	assert.NoError(t, err)

	_, err = goalService.CreateAllocation(goal.ID, 30, decimal.NewFromInt(100))
	assert.ErrorIs(t, err, domain.ErrDayOutOfRange)
}

func TestCreateAllocation_GoalNotFound(t *testing.T) {
	goalRepo := testutil.NewMockMonthlyGoalRepository()
	goalService := NewGoalService(goalRepo)

	_, err := goalService.CreateAllocation(999, 5, decimal.NewFromInt(100))
	assert.ErrorIs(t, err, domain.ErrGoalNotFound)
}

func TestCreateAllocation_ExceedsTarget(t *testing.T) {
	goalRepo := testutil.NewMockMonthlyGoalRepository()
	goalService := NewGoalService(goalRepo)

	goal := newGoal(t, goalService, 1, 2025, 9, "1000")

	_, err := goalService.CreateAllocation(goal.ID, 5, decimal.RequireFromString("600"))
	require.NoError(t, err)

	_, err = goalService.CreateAllocation(goal.ID, 10, decimal.RequireFromString("500"))
	assert.ErrorIs(t, err, domain.ErrAllocationsExceedTarget)

	// Rejected write leaves existing allocations untouched
	require.Len(t, goal.Allocations, 1)
	assert.True(t, goal.AllocatedTotal().Equal(decimal.RequireFromString("600")))
}

func TestCreateAllocation_ExactlyAtTarget(t *testing.T) {
	goalRepo := testutil.NewMockMonthlyGoalRepository()
	goalService := NewGoalService(goalRepo)

	goal := newGoal(t, goalService, 1, 2025, 9, "1000")

	_, err := goalService.CreateAllocation(goal.ID, 5, decimal.RequireFromString("600"))
	require.NoError(t, err)

	// Sum equal to the target is allowed
	_, err = goalService.CreateAllocation(goal.ID, 10, decimal.RequireFromString("400"))
	assert.NoError(t, err)
}

func TestCreateAllocation_OverwriteCountsReplacedDayOnce(t *testing.T) {
	goalRepo := testutil.NewMockMonthlyGoalRepository()
	goalService := NewGoalService(goalRepo)

	goal := newGoal(t, goalService, 1, 2025, 9, "1000")

	_, err := goalService.CreateAllocation(goal.ID, 5, decimal.RequireFromString("600"))
	require.NoError(t, err)

	// Day 5 is being replaced, so only the new 900 counts against 1000
	_, err = goalService.CreateAllocation(goal.ID, 5, decimal.RequireFromString("900"))
	assert.NoError(t, err)
}

func TestUpdateAllocation_SubstitutesOwnAmount(t *testing.T) {
	goalRepo := testutil.NewMockMonthlyGoalRepository()
	goalService := NewGoalService(goalRepo)

	goal := newGoal(t, goalService, 1, 2025, 9, "1000")

	allocation, err := goalService.CreateAllocation(goal.ID, 5, decimal.RequireFromString("600"))
	require.NoError(t, err)
	_, err = goalService.CreateAllocation(goal.ID, 10, decimal.RequireFromString("300"))
	require.NoError(t, err)

	// 700 + 300 = 1000, exactly at target
	updated, err := goalService.UpdateAllocation(allocation.ID, decimal.RequireFromString("700"))
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(decimal.RequireFromString("700")))

	// 701 + 300 would exceed
	_, err = goalService.UpdateAllocation(allocation.ID, decimal.RequireFromString("701"))
	assert.ErrorIs(t, err, domain.ErrAllocationsExceedTarget)
}

func TestUpdateAllocation_NotFound(t *testing.T) {
	goalRepo := testutil.NewMockMonthlyGoalRepository()
	goalService := NewGoalService(goalRepo)

	_, err := goalService.UpdateAllocation(999, decimal.NewFromInt(100))
	assert.ErrorIs(t, err, domain.ErrAllocationNotFound)
}

func TestDeleteAllocation_Success(t *testing.T) {
	goalRepo := testutil.NewMockMonthlyGoalRepository()
	goalService := NewGoalService(goalRepo)

	goal := newGoal(t, goalService, 1, 2025, 9, "1000")

	allocation, err := goalService.CreateAllocation(goal.ID, 5, decimal.RequireFromString("200"))
	require.NoError(t, err)

	require.NoError(t, goalService.DeleteAllocation(allocation.ID))
	assert.Len(t, goal.Allocations, 0)
}

func TestUpdateGoalAmount_Success(t *testing.T) {
	goalRepo := testutil.NewMockMonthlyGoalRepository()
	goalService := NewGoalService(goalRepo)

	goal := newGoal(t, goalService, 1, 2025, 9, "1000")

	updated, err := goalService.UpdateGoalAmount(goal.ID, decimal.RequireFromString("1500"))
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(decimal.RequireFromString("1500")))
}

func TestUpdateGoalAmount_BelowAllocated(t *testing.T) {
	goalRepo := testutil.NewMockMonthlyGoalRepository()
	goalService := NewGoalService(goalRepo)

	goal := newGoal(t, goalService, 1, 2025, 9, "1000")

	_, err := goalService.CreateAllocation(goal.ID, 5, decimal.RequireFromString("600"))
	require.NoError(t, err)

	_, err = goalService.UpdateGoalAmount(goal.ID, decimal.RequireFromString("500"))
	assert.ErrorIs(t, err, domain.ErrGoalBelowAllocated)

	// Target unchanged after the rejected shrink
	current, err := goalService.GetGoal(goal.ID)
	require.NoError(t, err)
	assert.True(t, current.Amount.Equal(decimal.RequireFromString("1000")))
}

func TestGetGoals_Filtered(t *testing.T) {
	goalRepo := testutil.NewMockMonthlyGoalRepository()
	goalService := NewGoalService(goalRepo)

	newGoal(t, goalService, 1, 2025, 9, "1000")
	newGoal(t, goalService, 2, 2025, 9, "500")
	newGoal(t, goalService, 1, 2025, 10, "1200")

	year := 2025
	month := 9
	goals, err := goalService.GetGoals(domain.GoalFilter{Year: &year, Month: &month})
	require.NoError(t, err)
	assert.Len(t, goals, 2)

	categoryID := int32(1)
	goals, err = goalService.GetGoals(domain.GoalFilter{CategoryID: &categoryID})
	require.NoError(t, err)
	assert.Len(t, goals, 2)
}
