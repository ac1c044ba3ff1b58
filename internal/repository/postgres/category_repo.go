package postgres

import (
	"context"
	"errors"

	"github.com/dafibh/balcao/balcao-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CategoryRepository implements domain.CategoryRepository using PostgreSQL
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// Create creates a new category
func (r *CategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO categories (name, kind)
		VALUES ($1, $2)
		RETURNING id, name, kind, created_at, updated_at`,
		category.Name, string(category.Kind))

	created, err := scanCategory(row)
	if err != nil {
		if isPgUniqueViolation(err) {
			return nil, domain.ErrCategoryAlreadyExists
		}
		return nil, err
	}
	return created, nil
}

// GetByID retrieves a category by its ID
func (r *CategoryRepository) GetByID(id int32) (*domain.Category, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, kind, created_at, updated_at
		FROM categories
		WHERE id = $1`, id)

	category, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// GetAll retrieves all categories ordered by id
func (r *CategoryRepository) GetAll() ([]*domain.Category, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, kind, created_at, updated_at
		FROM categories
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// Update updates a category's name and kind
func (r *CategoryRepository) Update(id int32, name string, kind domain.CategoryKind) (*domain.Category, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		UPDATE categories
		SET name = $2, kind = $3, updated_at = now()
		WHERE id = $1
		RETURNING id, name, kind, created_at, updated_at`,
		id, name, string(kind))

	category, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		if isPgUniqueViolation(err) {
			return nil, domain.ErrCategoryAlreadyExists
		}
		return nil, err
	}
	return category, nil
}

// Delete removes a category. Categories still referenced by goals or sales
// are protected by RESTRICT foreign keys.
func (r *CategoryRepository) Delete(id int32) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		if isPgForeignKeyViolation(err) {
			return domain.ErrCategoryInUse
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

// CountReferences counts goals and sales still pointing at a category
func (r *CategoryRepository) CountReferences(id int32) (*domain.CategoryReferences, error) {
	ctx := context.Background()
	refs := &domain.CategoryReferences{}
	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT count(*) FROM monthly_goals WHERE category_id = $1),
			(SELECT count(*) FROM sales WHERE category_id = $1)`,
		id).Scan(&refs.GoalCount, &refs.SaleCount)
	if err != nil {
		return nil, err
	}
	return refs, nil
}

// scanCategory scans a category from a row with the standard column order.
func scanCategory(row pgx.Row) (*domain.Category, error) {
	var c domain.Category
	var kind string
	if err := row.Scan(&c.ID, &c.Name, &kind, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.Kind = domain.CategoryKind(kind)
	return &c, nil
}
