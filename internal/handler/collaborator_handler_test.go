package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dafibh/balcao/balcao-backend/internal/service"
	"github.com/dafibh/balcao/balcao-backend/internal/testutil"
	"github.com/labstack/echo/v4"
)

func newCollaboratorHandler() (*CollaboratorHandler, *testutil.MockCollaboratorRepository) {
	collaboratorRepo := testutil.NewMockCollaboratorRepository()
	collaboratorService := service.NewCollaboratorService(collaboratorRepo)
	return NewCollaboratorHandler(collaboratorService), collaboratorRepo
}

func TestCreateCollaboratorHandler_Success(t *testing.T) {
	e := echo.New()
	handler, _ := newCollaboratorHandler()

	body := `{"name":"Maria Silva"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/collaborators", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateCollaborator(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}
}

func TestCreateCollaboratorHandler_Duplicate(t *testing.T) {
	e := echo.New()
	handler, collaboratorRepo := newCollaboratorHandler()

	_, _ = collaboratorRepo.Create("Maria Silva")

	body := `{"name":"Maria Silva"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/collaborators", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateCollaborator(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", rec.Code)
	}
}

func TestListCollaboratorsHandler_Pagination(t *testing.T) {
	e := echo.New()
	handler, collaboratorRepo := newCollaboratorHandler()

	for _, name := range []string{"Maria Silva", "Mariana Souza", "Joao Pereira"} {
		_, _ = collaboratorRepo.Create(name)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/collaborators?q=mari&page=1&pageSize=1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.ListCollaborators(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var response CollaboratorPageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.Total != 2 {
		t.Errorf("Expected total 2, got %d", response.Total)
	}
	if response.TotalPages != 2 {
		t.Errorf("Expected 2 total pages, got %d", response.TotalPages)
	}
	if len(response.Items) != 1 {
		t.Errorf("Expected 1 item on the page, got %d", len(response.Items))
	}
}

func TestDeleteCollaboratorHandler_NotFound(t *testing.T) {
	e := echo.New()
	handler, _ := newCollaboratorHandler()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/collaborators/999", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("999")

	if err := handler.DeleteCollaborator(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}
