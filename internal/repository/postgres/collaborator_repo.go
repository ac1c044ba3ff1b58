package postgres

import (
	"context"
	"errors"

	"github.com/dafibh/balcao/balcao-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CollaboratorRepository implements domain.CollaboratorRepository using PostgreSQL
type CollaboratorRepository struct {
	pool *pgxpool.Pool
}

// NewCollaboratorRepository creates a new CollaboratorRepository
func NewCollaboratorRepository(pool *pgxpool.Pool) *CollaboratorRepository {
	return &CollaboratorRepository{pool: pool}
}

// Create creates a new collaborator
func (r *CollaboratorRepository) Create(name string) (*domain.Collaborator, error) {
	ctx := context.Background()
	var c domain.Collaborator
	err := r.pool.QueryRow(ctx, `
		INSERT INTO collaborators (name)
		VALUES ($1)
		RETURNING id, name, created_at`,
		name).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		if isPgUniqueViolation(err) {
			return nil, domain.ErrCollaboratorAlreadyExists
		}
		return nil, err
	}
	return &c, nil
}

// GetByID retrieves a collaborator by ID
func (r *CollaboratorRepository) GetByID(id int32) (*domain.Collaborator, error) {
	ctx := context.Background()
	var c domain.Collaborator
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, created_at FROM collaborators WHERE id = $1`,
		id).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCollaboratorNotFound
		}
		return nil, err
	}
	return &c, nil
}

// List returns a page of collaborators, newest first, optionally filtered
// by a case-insensitive name substring
func (r *CollaboratorRepository) List(query string, page, pageSize int) (*domain.CollaboratorPage, error) {
	ctx := context.Background()
	pattern := "%" + query + "%"

	var total int64
	err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM collaborators WHERE name ILIKE $1`,
		pattern).Scan(&total)
	if err != nil {
		return nil, err
	}

	offset := (page - 1) * pageSize
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, created_at
		FROM collaborators
		WHERE name ILIKE $1
		ORDER BY id DESC
		LIMIT $2 OFFSET $3`,
		pattern, pageSize, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*domain.Collaborator{}
	for rows.Next() {
		var c domain.Collaborator
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &domain.CollaboratorPage{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		Items:      items,
	}, nil
}

// Update renames a collaborator
func (r *CollaboratorRepository) Update(id int32, name string) (*domain.Collaborator, error) {
	ctx := context.Background()
	var c domain.Collaborator
	err := r.pool.QueryRow(ctx, `
		UPDATE collaborators SET name = $2 WHERE id = $1
		RETURNING id, name, created_at`,
		id, name).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCollaboratorNotFound
		}
		if isPgUniqueViolation(err) {
			return nil, domain.ErrCollaboratorAlreadyExists
		}
		return nil, err
	}
	return &c, nil
}

// Delete removes a collaborator
func (r *CollaboratorRepository) Delete(id int32) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM collaborators WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCollaboratorNotFound
	}
	return nil
}
