package service

import (
	"strings"

	"github.com/dafibh/balcao/balcao-backend/internal/domain"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// CollaboratorService handles the counter staff registry
type CollaboratorService struct {
	collaboratorRepo domain.CollaboratorRepository
}

// NewCollaboratorService creates a new CollaboratorService
func NewCollaboratorService(collaboratorRepo domain.CollaboratorRepository) *CollaboratorService {
	return &CollaboratorService{collaboratorRepo: collaboratorRepo}
}

// CreateCollaborator registers a new collaborator
func (s *CollaboratorService) CreateCollaborator(name string) (*domain.Collaborator, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxCollaboratorNameLength {
		return nil, domain.ErrNameTooLong
	}
	return s.collaboratorRepo.Create(name)
}

// GetCollaborator retrieves a collaborator by ID
func (s *CollaboratorService) GetCollaborator(id int32) (*domain.Collaborator, error) {
	return s.collaboratorRepo.GetByID(id)
}

// ListCollaborators returns a page of collaborators filtered by an optional
// name substring. Page defaults to 1, pageSize to 20 and is capped at 100.
func (s *CollaboratorService) ListCollaborators(query string, page, pageSize int) (*domain.CollaboratorPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return s.collaboratorRepo.List(strings.TrimSpace(query), page, pageSize)
}

// UpdateCollaborator renames a collaborator
func (s *CollaboratorService) UpdateCollaborator(id int32, name string) (*domain.Collaborator, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxCollaboratorNameLength {
		return nil, domain.ErrNameTooLong
	}
	return s.collaboratorRepo.Update(id, name)
}

// DeleteCollaborator removes a collaborator
func (s *CollaboratorService) DeleteCollaborator(id int32) error {
	return s.collaboratorRepo.Delete(id)
}
