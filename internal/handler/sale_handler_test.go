package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dafibh/balcao/balcao-backend/internal/domain"
	"github.com/dafibh/balcao/balcao-backend/internal/service"
	"github.com/dafibh/balcao/balcao-backend/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

func newSaleHandler() (*SaleHandler, *testutil.MockSaleRepository) {
	saleRepo := testutil.NewMockSaleRepository()
	saleService := service.NewSaleService(saleRepo)
	return NewSaleHandler(saleService), saleRepo
}

func TestRecordSaleHandler_Success(t *testing.T) {
	e := echo.New()
	handler, _ := newSaleHandler()

	body := `{"categoryId":1,"date":"2025-09-05","amount":"150.50"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sales", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.RecordSale(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}

	var response SaleResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Date != "2025-09-05" {
		t.Errorf("Expected date '2025-09-05', got %s", response.Date)
	}
	if response.Amount != "150.50" {
		t.Errorf("Expected amount '150.50', got %s", response.Amount)
	}
}

func TestRecordSaleHandler_AcceptsRFC3339(t *testing.T) {
	e := echo.New()
	handler, _ := newSaleHandler()

	body := `{"categoryId":1,"date":"2025-09-05T14:30:00-03:00","amount":"80"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sales", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.RecordSale(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}

	var response SaleResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	// Timestamp normalizes to its UTC calendar day
	if response.Date != "2025-09-05" {
		t.Errorf("Expected date '2025-09-05', got %s", response.Date)
	}
}

func TestRecordSaleHandler_InvalidDate(t *testing.T) {
	e := echo.New()
	handler, _ := newSaleHandler()

	body := `{"categoryId":1,"date":"05/09/2025","amount":"80"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sales", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.RecordSale(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestRecordSaleHandler_NegativeAmount(t *testing.T) {
	e := echo.New()
	handler, _ := newSaleHandler()

	// Negative amounts record adjustments and refunds
	body := `{"categoryId":1,"date":"2025-09-10","amount":"-50.00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sales", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.RecordSale(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}

	var response SaleResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Amount != "-50.00" {
		t.Errorf("Expected amount '-50.00', got %s", response.Amount)
	}
}

func TestRecordSaleHandler_MalformedAmount(t *testing.T) {
	e := echo.New()
	handler, _ := newSaleHandler()

	body := `{"categoryId":1,"date":"2025-09-05","amount":"ten"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sales", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.RecordSale(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGetSalesHandler_MonthWithoutYear(t *testing.T) {
	e := echo.New()
	handler, _ := newSaleHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sales?month=9", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetSales(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestUpdateSaleHandler_PartialBody(t *testing.T) {
	e := echo.New()
	handler, saleRepo := newSaleHandler()

	saleRepo.AddSale(&domain.Sale{
		ID:         1,
		CategoryID: 1,
		SoldOn:     time.Date(2025, 9, 5, 0, 0, 0, 0, time.UTC),
		Amount:     decimal.NewFromInt(100),
	})

	body := `{"amount":"175.25"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/sales/1", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := handler.UpdateSale(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var response SaleResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Amount != "175.25" {
		t.Errorf("Expected amount '175.25', got %s", response.Amount)
	}
	if response.Date != "2025-09-05" {
		t.Errorf("Expected date unchanged, got %s", response.Date)
	}
}

func TestDeleteSaleHandler_NotFound(t *testing.T) {
	e := echo.New()
	handler, _ := newSaleHandler()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/sales/999", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("999")

	if err := handler.DeleteSale(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}
