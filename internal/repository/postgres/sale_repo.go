package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dafibh/balcao/balcao-backend/internal/domain"
	"github.com/dafibh/balcao/balcao-backend/internal/util"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// SaleRepository implements domain.SaleRepository using PostgreSQL
type SaleRepository struct {
	pool *pgxpool.Pool
}

// NewSaleRepository creates a new SaleRepository
func NewSaleRepository(pool *pgxpool.Pool) *SaleRepository {
	return &SaleRepository{pool: pool}
}

const saleColumns = `
	s.id, s.category_id, s.sold_on, s.amount::text, s.created_at, s.updated_at,
	c.id, c.name, c.kind, c.created_at, c.updated_at`

// Upsert replaces the existing record for (category, day) or inserts a new
// one. The day's record, not the exact timestamp, is the identity: a second
// sale for the same category and day overwrites the first.
func (r *SaleRepository) Upsert(categoryID int32, soldOn time.Time, amount decimal.Decimal) (*domain.Sale, error) {
	ctx := context.Background()
	dayStart, dayEnd := util.DayWindow(soldOn)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var existingID int32
	err = tx.QueryRow(ctx, `
		SELECT id FROM sales
		WHERE category_id = $1 AND sold_on >= $2 AND sold_on <= $3
		FOR UPDATE`,
		categoryID, dayStart, dayEnd).Scan(&existingID)

	var id int32
	switch {
	case err == nil:
		err = tx.QueryRow(ctx, `
			UPDATE sales
			SET amount = $2, sold_on = $3, updated_at = now()
			WHERE id = $1
			RETURNING id`,
			existingID, amount.String(), soldOn).Scan(&id)
		if err != nil {
			return nil, err
		}
	case errors.Is(err, pgx.ErrNoRows):
		err = tx.QueryRow(ctx, `
			INSERT INTO sales (category_id, sold_on, amount)
			VALUES ($1, $2, $3)
			RETURNING id`,
			categoryID, soldOn, amount.String()).Scan(&id)
		if err != nil {
			if isPgForeignKeyViolation(err) {
				return nil, domain.ErrCategoryNotFound
			}
			return nil, err
		}
	default:
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetByID(id)
}

// GetByID retrieves a sale with its category
func (r *SaleRepository) GetByID(id int32) (*domain.Sale, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT`+saleColumns+`
		FROM sales s
		JOIN categories c ON c.id = s.category_id
		WHERE s.id = $1`, id)

	sale, err := scanSale(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSaleNotFound
		}
		return nil, err
	}
	return sale, nil
}

// List retrieves sales within the optional bounds, newest first
func (r *SaleRepository) List(from, to *time.Time) ([]*domain.Sale, error) {
	ctx := context.Background()
	query := `
		SELECT` + saleColumns + `
		FROM sales s
		JOIN categories c ON c.id = s.category_id
		WHERE 1=1`
	var args []any
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND s.sold_on >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND s.sold_on <= $%d", len(args))
	}
	query += " ORDER BY s.sold_on DESC, s.id DESC"

	return r.querySales(ctx, query, args...)
}

// ListWindow retrieves sales within [from, to], optionally restricted to
// a set of category ids
func (r *SaleRepository) ListWindow(from, to time.Time, categoryIDs []int32) ([]*domain.Sale, error) {
	ctx := context.Background()
	query := `
		SELECT` + saleColumns + `
		FROM sales s
		JOIN categories c ON c.id = s.category_id
		WHERE s.sold_on >= $1 AND s.sold_on <= $2`
	args := []any{from, to}
	if len(categoryIDs) > 0 {
		args = append(args, categoryIDs)
		query += fmt.Sprintf(" AND s.category_id = ANY($%d)", len(args))
	}
	query += " ORDER BY s.sold_on, s.id"

	return r.querySales(ctx, query, args...)
}

// Update rewrites a sale's category, date and amount
func (r *SaleRepository) Update(id int32, categoryID int32, soldOn time.Time, amount decimal.Decimal) (*domain.Sale, error) {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `
		UPDATE sales
		SET category_id = $2, sold_on = $3, amount = $4, updated_at = now()
		WHERE id = $1`,
		id, categoryID, soldOn, amount.String())
	if err != nil {
		if isPgForeignKeyViolation(err) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrSaleNotFound
	}
	return r.GetByID(id)
}

// Delete removes a sale record
func (r *SaleRepository) Delete(id int32) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSaleNotFound
	}
	return nil
}

// Helper functions

func (r *SaleRepository) querySales(ctx context.Context, query string, args ...any) ([]*domain.Sale, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []*domain.Sale
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, sale)
	}
	return sales, rows.Err()
}

func scanSale(row pgx.Row) (*domain.Sale, error) {
	var s domain.Sale
	var c domain.Category
	var amountStr, kind string
	err := row.Scan(
		&s.ID, &s.CategoryID, &s.SoldOn, &amountStr, &s.CreatedAt, &s.UpdatedAt,
		&c.ID, &c.Name, &kind, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Amount, err = parseDecimal(amountStr)
	if err != nil {
		return nil, err
	}
	s.SoldOn = s.SoldOn.UTC()
	c.Kind = domain.CategoryKind(kind)
	s.Category = &c
	return &s, nil
}
