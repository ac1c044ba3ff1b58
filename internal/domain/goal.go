package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyGoal is the target amount for one category in one calendar month.
// At most one goal exists per (category, year, month).
type MonthlyGoal struct {
	ID          int32              `json:"id"`
	CategoryID  int32              `json:"categoryId"`
	Year        int                `json:"year"`
	Month       int                `json:"month"`
	Amount      decimal.Decimal    `json:"amount"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
	Category    *Category          `json:"category,omitempty"`
	Allocations []*DailyAllocation `json:"allocations,omitempty"`
}

// AllocatedTotal sums the goal's daily allocations.
func (g *MonthlyGoal) AllocatedTotal() decimal.Decimal {
	total := decimal.Zero
	for _, a := range g.Allocations {
		total = total.Add(a.Amount)
	}
	return total
}

// AllocationForDay returns the allocation recorded for a day-of-month,
// or nil when none exists.
func (g *MonthlyGoal) AllocationForDay(day int) *DailyAllocation {
	for _, a := range g.Allocations {
		if a.Day == day {
			return a
		}
	}
	return nil
}

// DailyAllocation is the portion of a monthly goal assigned to one
// day-of-month. The sum of a goal's allocations never exceeds its amount.
type DailyAllocation struct {
	ID        int32           `json:"id"`
	GoalID    int32           `json:"goalId"`
	Day       int             `json:"day"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// GoalFilter narrows goal listings. Nil fields are ignored.
type GoalFilter struct {
	Year       *int
	Month      *int
	CategoryID *int32
}

type MonthlyGoalRepository interface {
	Create(goal *MonthlyGoal) (*MonthlyGoal, error)
	// GetByID loads the goal with its category and all allocations.
	GetByID(id int32) (*MonthlyGoal, error)
	List(filter GoalFilter) ([]*MonthlyGoal, error)
	// ListForMonth loads all goals for a month, each with category and
	// allocations, optionally restricted to a set of category ids.
	ListForMonth(year, month int, categoryIDs []int32) ([]*MonthlyGoal, error)
	UpdateAmount(id int32, amount decimal.Decimal) (*MonthlyGoal, error)
	Delete(id int32) error

	// UpsertAllocation writes the allocation for (goal, day), creating or
	// replacing it. The implementation must validate the allocation-sum
	// invariant atomically with the write and return
	// ErrAllocationsExceedTarget without writing when it would be violated.
	UpsertAllocation(goalID int32, day int, amount decimal.Decimal) (*DailyAllocation, error)
	// UpdateAllocation changes an existing allocation's amount under the
	// same invariant check as UpsertAllocation.
	UpdateAllocation(id int32, amount decimal.Decimal) (*DailyAllocation, error)
	DeleteAllocation(id int32) error
}
