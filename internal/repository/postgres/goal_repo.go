package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/dafibh/balcao/balcao-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// MonthlyGoalRepository implements domain.MonthlyGoalRepository using PostgreSQL
type MonthlyGoalRepository struct {
	pool *pgxpool.Pool
}

// NewMonthlyGoalRepository creates a new MonthlyGoalRepository
func NewMonthlyGoalRepository(pool *pgxpool.Pool) *MonthlyGoalRepository {
	return &MonthlyGoalRepository{pool: pool}
}

const goalColumns = `
	g.id, g.category_id, g.year, g.month, g.amount::text, g.created_at, g.updated_at,
	c.id, c.name, c.kind, c.created_at, c.updated_at`

// Create creates a new monthly goal
func (r *MonthlyGoalRepository) Create(goal *domain.MonthlyGoal) (*domain.MonthlyGoal, error) {
	ctx := context.Background()
	var id int32
	err := r.pool.QueryRow(ctx, `
		INSERT INTO monthly_goals (category_id, year, month, amount)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		goal.CategoryID, goal.Year, goal.Month, goal.Amount.String()).Scan(&id)
	if err != nil {
		if isPgUniqueViolation(err) {
			return nil, domain.ErrGoalAlreadyExists
		}
		if isPgForeignKeyViolation(err) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return r.GetByID(id)
}

// GetByID retrieves a goal with its category and allocations
func (r *MonthlyGoalRepository) GetByID(id int32) (*domain.MonthlyGoal, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT`+goalColumns+`
		FROM monthly_goals g
		JOIN categories c ON c.id = g.category_id
		WHERE g.id = $1`, id)

	goal, err := scanGoal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, err
	}
	if err := r.attachAllocations(ctx, []*domain.MonthlyGoal{goal}); err != nil {
		return nil, err
	}
	return goal, nil
}

// List retrieves goals matching the filter, with categories and allocations
func (r *MonthlyGoalRepository) List(filter domain.GoalFilter) ([]*domain.MonthlyGoal, error) {
	ctx := context.Background()
	query := `
		SELECT` + goalColumns + `
		FROM monthly_goals g
		JOIN categories c ON c.id = g.category_id
		WHERE 1=1`
	var args []any
	if filter.Year != nil {
		args = append(args, *filter.Year)
		query += fmt.Sprintf(" AND g.year = $%d", len(args))
	}
	if filter.Month != nil {
		args = append(args, *filter.Month)
		query += fmt.Sprintf(" AND g.month = $%d", len(args))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		query += fmt.Sprintf(" AND g.category_id = $%d", len(args))
	}
	query += " ORDER BY g.id"

	return r.queryGoals(ctx, query, args...)
}

// ListForMonth retrieves all goals for a month, optionally restricted to
// a set of category ids
func (r *MonthlyGoalRepository) ListForMonth(year, month int, categoryIDs []int32) ([]*domain.MonthlyGoal, error) {
	ctx := context.Background()
	query := `
		SELECT` + goalColumns + `
		FROM monthly_goals g
		JOIN categories c ON c.id = g.category_id
		WHERE g.year = $1 AND g.month = $2`
	args := []any{year, month}
	if len(categoryIDs) > 0 {
		args = append(args, categoryIDs)
		query += fmt.Sprintf(" AND g.category_id = ANY($%d)", len(args))
	}
	query += " ORDER BY g.id"

	return r.queryGoals(ctx, query, args...)
}

// UpdateAmount updates a goal's target amount
func (r *MonthlyGoalRepository) UpdateAmount(id int32, amount decimal.Decimal) (*domain.MonthlyGoal, error) {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `
		UPDATE monthly_goals
		SET amount = $2, updated_at = now()
		WHERE id = $1`,
		id, amount.String())
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrGoalNotFound
	}
	return r.GetByID(id)
}

// Delete removes a goal and, through the cascade, its allocations
func (r *MonthlyGoalRepository) Delete(id int32) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM monthly_goals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrGoalNotFound
	}
	return nil
}

// UpsertAllocation writes the allocation for (goal, day). The goal row is
// locked for the duration of the transaction so concurrent writers cannot
// both pass the sum check against a stale total.
func (r *MonthlyGoalRepository) UpsertAllocation(goalID int32, day int, amount decimal.Decimal) (*domain.DailyAllocation, error) {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var targetStr string
	err = tx.QueryRow(ctx, `
		SELECT amount::text FROM monthly_goals WHERE id = $1 FOR UPDATE`,
		goalID).Scan(&targetStr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, err
	}
	target, err := parseDecimal(targetStr)
	if err != nil {
		return nil, err
	}

	existing, err := loadAllocationAmounts(ctx, tx, goalID)
	if err != nil {
		return nil, err
	}

	// Sum the existing allocations, substituting the proposed amount for
	// the same-day entry if there is one.
	sum := amount
	for _, a := range existing {
		if a.day != day {
			sum = sum.Add(a.amount)
		}
	}

	if sum.GreaterThan(target) {
		return nil, domain.ErrAllocationsExceedTarget
	}

	row := tx.QueryRow(ctx, `
		INSERT INTO daily_allocations (goal_id, day, amount)
		VALUES ($1, $2, $3)
		ON CONFLICT (goal_id, day)
		DO UPDATE SET amount = EXCLUDED.amount, updated_at = now()
		RETURNING id, goal_id, day, amount::text, created_at, updated_at`,
		goalID, day, amount.String())
	allocation, err := scanAllocation(row)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return allocation, nil
}

// UpdateAllocation changes an allocation's amount under the same locked
// sum check as UpsertAllocation.
func (r *MonthlyGoalRepository) UpdateAllocation(id int32, amount decimal.Decimal) (*domain.DailyAllocation, error) {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var goalID int32
	var targetStr string
	err = tx.QueryRow(ctx, `
		SELECT g.id, g.amount::text
		FROM daily_allocations a
		JOIN monthly_goals g ON g.id = a.goal_id
		WHERE a.id = $1
		FOR UPDATE OF g`,
		id).Scan(&goalID, &targetStr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAllocationNotFound
		}
		return nil, err
	}
	target, err := parseDecimal(targetStr)
	if err != nil {
		return nil, err
	}

	existing, err := loadAllocationAmounts(ctx, tx, goalID)
	if err != nil {
		return nil, err
	}

	// Sum all allocations with this one's amount replaced by the proposal.
	sum := decimal.Zero
	for _, a := range existing {
		if a.id == id {
			sum = sum.Add(amount)
		} else {
			sum = sum.Add(a.amount)
		}
	}

	if sum.GreaterThan(target) {
		return nil, domain.ErrAllocationsExceedTarget
	}

	row := tx.QueryRow(ctx, `
		UPDATE daily_allocations
		SET amount = $2, updated_at = now()
		WHERE id = $1
		RETURNING id, goal_id, day, amount::text, created_at, updated_at`,
		id, amount.String())
	allocation, err := scanAllocation(row)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return allocation, nil
}

// DeleteAllocation removes a single daily allocation
func (r *MonthlyGoalRepository) DeleteAllocation(id int32) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM daily_allocations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAllocationNotFound
	}
	return nil
}

// Helper functions

type allocationAmount struct {
	id     int32
	day    int
	amount decimal.Decimal
}

// loadAllocationAmounts reads a goal's allocations within the transaction
func loadAllocationAmounts(ctx context.Context, tx pgx.Tx, goalID int32) ([]allocationAmount, error) {
	rows, err := tx.Query(ctx, `
		SELECT id, day, amount::text FROM daily_allocations WHERE goal_id = $1`,
		goalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var allocations []allocationAmount
	for rows.Next() {
		var a allocationAmount
		var amountStr string
		if err := rows.Scan(&a.id, &a.day, &amountStr); err != nil {
			return nil, err
		}
		a.amount, err = parseDecimal(amountStr)
		if err != nil {
			return nil, err
		}
		allocations = append(allocations, a)
	}
	return allocations, rows.Err()
}

func (r *MonthlyGoalRepository) queryGoals(ctx context.Context, query string, args ...any) ([]*domain.MonthlyGoal, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []*domain.MonthlyGoal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachAllocations(ctx, goals); err != nil {
		return nil, err
	}
	return goals, nil
}

// attachAllocations loads the allocations for a batch of goals in one query
func (r *MonthlyGoalRepository) attachAllocations(ctx context.Context, goals []*domain.MonthlyGoal) error {
	if len(goals) == 0 {
		return nil
	}
	byID := make(map[int32]*domain.MonthlyGoal, len(goals))
	ids := make([]int32, len(goals))
	for i, g := range goals {
		byID[g.ID] = g
		ids[i] = g.ID
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, goal_id, day, amount::text, created_at, updated_at
		FROM daily_allocations
		WHERE goal_id = ANY($1)
		ORDER BY goal_id, day`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		allocation, err := scanAllocation(rows)
		if err != nil {
			return err
		}
		if goal, ok := byID[allocation.GoalID]; ok {
			goal.Allocations = append(goal.Allocations, allocation)
		}
	}
	return rows.Err()
}

func scanGoal(row pgx.Row) (*domain.MonthlyGoal, error) {
	var g domain.MonthlyGoal
	var c domain.Category
	var amountStr, kind string
	err := row.Scan(
		&g.ID, &g.CategoryID, &g.Year, &g.Month, &amountStr, &g.CreatedAt, &g.UpdatedAt,
		&c.ID, &c.Name, &kind, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	g.Amount, err = parseDecimal(amountStr)
	if err != nil {
		return nil, err
	}
	c.Kind = domain.CategoryKind(kind)
	g.Category = &c
	return &g, nil
}

func scanAllocation(row pgx.Row) (*domain.DailyAllocation, error) {
	var a domain.DailyAllocation
	var amountStr string
	err := row.Scan(&a.ID, &a.GoalID, &a.Day, &amountStr, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.Amount, err = parseDecimal(amountStr)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
