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
)

// CollaboratorHandler handles collaborator HTTP requests
type CollaboratorHandler struct {
	collaboratorService *service.CollaboratorService
}

// NewCollaboratorHandler creates a new CollaboratorHandler
func NewCollaboratorHandler(collaboratorService *service.CollaboratorService) *CollaboratorHandler {
	return &CollaboratorHandler{collaboratorService: collaboratorService}
}

// CollaboratorRequest represents the create/update collaborator request body
type CollaboratorRequest struct {
	Name string `json:"name"`
}

// CollaboratorResponse represents a collaborator in API responses
type CollaboratorResponse struct {
	ID        int32  `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
}

// CollaboratorPageResponse represents a page of collaborators
type CollaboratorPageResponse struct {
	Page       int                    `json:"page"`
	PageSize   int                    `json:"pageSize"`
	Total      int64                  `json:"total"`
	TotalPages int                    `json:"totalPages"`
	Items      []CollaboratorResponse `json:"items"`
}

// CreateCollaborator handles POST /api/v1/collaborators
func (h *CollaboratorHandler) CreateCollaborator(c echo.Context) error {
	var req CollaboratorRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	collaborator, err := h.collaboratorService.CreateCollaborator(req.Name)
	if err != nil {
		if errors.Is(err, domain.ErrNameRequired) {
			return NewValidationError(c, "Collaborator name is required", []ValidationError{
				{Field: "name", Message: "Name cannot be empty"},
			})
		}
		if errors.Is(err, domain.ErrNameTooLong) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name must be 100 characters or less"},
			})
		}
		if errors.Is(err, domain.ErrCollaboratorAlreadyExists) {
			return NewConflictError(c, "A collaborator with this name already exists")
		}
		log.Error().Err(err).Str("name", req.Name).Msg("Failed to create collaborator")
		return NewInternalError(c, "Failed to create collaborator")
	}

	log.Info().Int32("collaborator_id", collaborator.ID).Str("name", collaborator.Name).Msg("Collaborator created")
	return c.JSON(http.StatusCreated, toCollaboratorResponse(collaborator))
}

// ListCollaborators handles GET /api/v1/collaborators
func (h *CollaboratorHandler) ListCollaborators(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("pageSize"))

	result, err := h.collaboratorService.ListCollaborators(c.QueryParam("q"), page, pageSize)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list collaborators")
		return NewInternalError(c, "Failed to list collaborators")
	}

	response := CollaboratorPageResponse{
		Page:       result.Page,
		PageSize:   result.PageSize,
		Total:      result.Total,
		TotalPages: result.TotalPages,
		Items:      make([]CollaboratorResponse, len(result.Items)),
	}
	for i, collaborator := range result.Items {
		response.Items[i] = toCollaboratorResponse(collaborator)
	}
	return c.JSON(http.StatusOK, response)
}

// GetCollaborator handles GET /api/v1/collaborators/:id
func (h *CollaboratorHandler) GetCollaborator(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid collaborator ID", nil)
	}

	collaborator, err := h.collaboratorService.GetCollaborator(int32(id))
	if err != nil {
		if errors.Is(err, domain.ErrCollaboratorNotFound) {
			return NewNotFoundError(c, "Collaborator not found")
		}
		log.Error().Err(err).Int("collaborator_id", id).Msg("Failed to get collaborator")
		return NewInternalError(c, "Failed to get collaborator")
	}

	return c.JSON(http.StatusOK, toCollaboratorResponse(collaborator))
}

// UpdateCollaborator handles PUT /api/v1/collaborators/:id
func (h *CollaboratorHandler) UpdateCollaborator(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid collaborator ID", nil)
	}

	var req CollaboratorRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	collaborator, err := h.collaboratorService.UpdateCollaborator(int32(id), req.Name)
	if err != nil {
		if errors.Is(err, domain.ErrCollaboratorNotFound) {
			return NewNotFoundError(c, "Collaborator not found")
		}
		if errors.Is(err, domain.ErrNameRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name is required"},
			})
		}
		if errors.Is(err, domain.ErrNameTooLong) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name must be 100 characters or less"},
			})
		}
		if errors.Is(err, domain.ErrCollaboratorAlreadyExists) {
			return NewConflictError(c, "A collaborator with this name already exists")
		}
		log.Error().Err(err).Int("collaborator_id", id).Msg("Failed to update collaborator")
		return NewInternalError(c, "Failed to update collaborator")
	}

	return c.JSON(http.StatusOK, toCollaboratorResponse(collaborator))
}

// DeleteCollaborator handles DELETE /api/v1/collaborators/:id
func (h *CollaboratorHandler) DeleteCollaborator(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid collaborator ID", nil)
	}

	if err := h.collaboratorService.DeleteCollaborator(int32(id)); err != nil {
		if errors.Is(err, domain.ErrCollaboratorNotFound) {
			return NewNotFoundError(c, "Collaborator not found")
		}
		log.Error().Err(err).Int("collaborator_id", id).Msg("Failed to delete collaborator")
		return NewInternalError(c, "Failed to delete collaborator")
	}

	log.Info().Int("collaborator_id", id).Msg("Collaborator deleted")
	return c.NoContent(http.StatusNoContent)
}

func toCollaboratorResponse(collaborator *domain.Collaborator) CollaboratorResponse {
	return CollaboratorResponse{
		ID:        collaborator.ID,
		Name:      collaborator.Name,
		CreatedAt: collaborator.CreatedAt.Format(time.RFC3339),
	}
}
