package service

import (
	"strings"

	"github.com/dafibh/balcao/balcao-backend/internal/domain"
)

// CategoryService handles category business logic
type CategoryService struct {
	categoryRepo domain.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo domain.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CreateCategory creates a new category
func (s *CategoryService) CreateCategory(name string, kind domain.CategoryKind) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxCategoryNameLength {
		return nil, domain.ErrNameTooLong
	}
	if !kind.Valid() {
		return nil, domain.ErrInvalidKind
	}

	return s.categoryRepo.Create(&domain.Category{
		Name: name,
		Kind: kind,
	})
}

// GetCategories retrieves all categories
func (s *CategoryService) GetCategories() ([]*domain.Category, error) {
	return s.categoryRepo.GetAll()
}

// GetCategory retrieves a category by ID
func (s *CategoryService) GetCategory(id int32) (*domain.Category, error) {
	return s.categoryRepo.GetByID(id)
}

// UpdateCategory updates a category's name and, when given, its kind.
// An empty kind keeps the stored one.
func (s *CategoryService) UpdateCategory(id int32, name string, kind domain.CategoryKind) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxCategoryNameLength {
		return nil, domain.ErrNameTooLong
	}

	if kind == "" {
		existing, err := s.categoryRepo.GetByID(id)
		if err != nil {
			return nil, err
		}
		kind = existing.Kind
	} else if !kind.Valid() {
		return nil, domain.ErrInvalidKind
	}

	return s.categoryRepo.Update(id, name, kind)
}

// DeleteCategory removes a category. Categories still referenced by goals
// or sales are not deleted; the repository reports ErrCategoryInUse.
func (s *CategoryService) DeleteCategory(id int32) error {
	if _, err := s.categoryRepo.GetByID(id); err != nil {
		return err
	}
	return s.categoryRepo.Delete(id)
}

// CanDelete reports whether a category can be deleted without breaking
// references, and how many rows still point at it.
func (s *CategoryService) CanDelete(id int32) (*domain.CategoryReferences, error) {
	if _, err := s.categoryRepo.GetByID(id); err != nil {
		return nil, err
	}
	return s.categoryRepo.CountReferences(id)
}
