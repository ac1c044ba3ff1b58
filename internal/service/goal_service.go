package service

import (
	"github.com/dafibh/balcao/balcao-backend/internal/domain"
	"github.com/dafibh/balcao/balcao-backend/internal/util"
	"github.com/shopspring/decimal"
)

// GoalService handles monthly goal and daily allocation business logic
type GoalService struct {
	goalRepo domain.MonthlyGoalRepository
}

// NewGoalService creates a new GoalService
func NewGoalService(goalRepo domain.MonthlyGoalRepository) *GoalService {
	return &GoalService{goalRepo: goalRepo}
}

// CreateGoal creates a monthly goal for a category
func (s *GoalService) CreateGoal(categoryID int32, year, month int, amount decimal.Decimal) (*domain.MonthlyGoal, error) {
	if year <= 0 || month < 1 || month > 12 {
		return nil, domain.ErrInvalidInput
	}

	return s.goalRepo.Create(&domain.MonthlyGoal{
		CategoryID: categoryID,
		Year:       year,
		Month:      month,
		Amount:     amount,
	})
}

// GetGoals lists goals matching the filter
func (s *GoalService) GetGoals(filter domain.GoalFilter) ([]*domain.MonthlyGoal, error) {
	return s.goalRepo.List(filter)
}

// GetGoal retrieves a goal with its category and allocations
func (s *GoalService) GetGoal(id int32) (*domain.MonthlyGoal, error) {
	return s.goalRepo.GetByID(id)
}

// UpdateGoalAmount changes a goal's target. Lowering the target below the
// sum already allocated to days would break the allocation invariant, so
// that is rejected.
func (s *GoalService) UpdateGoalAmount(id int32, amount decimal.Decimal) (*domain.MonthlyGoal, error) {
	goal, err := s.goalRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if amount.LessThan(goal.AllocatedTotal()) {
		return nil, domain.ErrGoalBelowAllocated
	}
	return s.goalRepo.UpdateAmount(id, amount)
}

// DeleteGoal removes a goal and its daily allocations
func (s *GoalService) DeleteGoal(id int32) error {
	return s.goalRepo.Delete(id)
}

// CreateAllocation sets the allocation for one day of a goal's month.
// The goal must exist, the day must fall within its month, and the sum of
// all allocations (with the proposed amount substituted for any same-day
// entry) must not exceed the monthly target.
func (s *GoalService) CreateAllocation(goalID int32, day int, amount decimal.Decimal) (*domain.DailyAllocation, error) {
	goal, err := s.goalRepo.GetByID(goalID)
	if err != nil {
		return nil, err
	}
	if day < 1 || day > util.LastDayOfMonth(goal.Year, goal.Month) {
		return nil, domain.ErrDayOutOfRange
	}
	// The repository revalidates the sum against a locked goal row, so a
	// concurrent writer cannot slip past this call.
	return s.goalRepo.UpsertAllocation(goalID, day, amount)
}

// UpdateAllocation changes an existing allocation's amount under the same
// invariant check as CreateAllocation.
func (s *GoalService) UpdateAllocation(id int32, amount decimal.Decimal) (*domain.DailyAllocation, error) {
	return s.goalRepo.UpdateAllocation(id, amount)
}

// DeleteAllocation removes a daily allocation
func (s *GoalService) DeleteAllocation(id int32) error {
	return s.goalRepo.DeleteAllocation(id)
}
