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
	"github.com/shopspring/decimal"
)

// SaleHandler handles daily sale HTTP requests
type SaleHandler struct {
	saleService *service.SaleService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// RecordSaleRequest represents the record sale request body
type RecordSaleRequest struct {
	CategoryID int32  `json:"categoryId"`
	Date       string `json:"date"`
	Amount     string `json:"amount"`
}

// UpdateSaleRequest represents the update sale request body.
// Omitted fields keep their stored values.
type UpdateSaleRequest struct {
	CategoryID *int32  `json:"categoryId"`
	Date       *string `json:"date"`
	Amount     *string `json:"amount"`
}

// SaleResponse represents a sale record in API responses
type SaleResponse struct {
	ID         int32             `json:"id"`
	CategoryID int32             `json:"categoryId"`
	Date       string            `json:"date"`
	Amount     string            `json:"amount"`
	Category   *CategoryResponse `json:"category,omitempty"`
	CreatedAt  string            `json:"createdAt"`
	UpdatedAt  string            `json:"updatedAt"`
}

// RecordSale handles POST /api/v1/sales
func (h *SaleHandler) RecordSale(c echo.Context) error {
	var req RecordSaleRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	soldOn, err := parseDate(req.Date)
	if err != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "date", Message: "Date must be YYYY-MM-DD or RFC 3339"},
		})
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount must be a decimal number"},
		})
	}

	sale, err := h.saleService.RecordSale(req.CategoryID, soldOn, amount)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewNotFoundError(c, "Category not found")
		}
		log.Error().Err(err).Int32("category_id", req.CategoryID).Str("date", req.Date).Msg("Failed to record sale")
		return NewInternalError(c, "Failed to record sale")
	}

	log.Info().Int32("sale_id", sale.ID).Int32("category_id", sale.CategoryID).Str("date", sale.SoldOn.Format("2006-01-02")).Msg("Sale recorded")
	return c.JSON(http.StatusCreated, toSaleResponse(sale))
}

// GetSales handles GET /api/v1/sales
func (h *SaleHandler) GetSales(c echo.Context) error {
	var year, month *int

	if raw := c.QueryParam("year"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			return NewValidationError(c, "Invalid year", nil)
		}
		year = &value
	}
	if raw := c.QueryParam("month"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 1 || value > 12 {
			return NewValidationError(c, "Invalid month", nil)
		}
		if year == nil {
			return NewValidationError(c, "Month filter requires a year", nil)
		}
		month = &value
	}

	sales, err := h.saleService.GetSales(year, month)
	if err != nil {
		log.Error().Err(err).Msg("Failed to get sales")
		return NewInternalError(c, "Failed to get sales")
	}

	response := make([]SaleResponse, len(sales))
	for i, sale := range sales {
		response[i] = toSaleResponse(sale)
	}
	return c.JSON(http.StatusOK, response)
}

// GetSale handles GET /api/v1/sales/:id
func (h *SaleHandler) GetSale(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid sale ID", nil)
	}

	sale, err := h.saleService.GetSale(int32(id))
	if err != nil {
		if errors.Is(err, domain.ErrSaleNotFound) {
			return NewNotFoundError(c, "Sale not found")
		}
		log.Error().Err(err).Int("sale_id", id).Msg("Failed to get sale")
		return NewInternalError(c, "Failed to get sale")
	}

	return c.JSON(http.StatusOK, toSaleResponse(sale))
}

// UpdateSale handles PUT /api/v1/sales/:id
func (h *SaleHandler) UpdateSale(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid sale ID", nil)
	}

	var req UpdateSaleRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	var update service.SaleUpdate
	update.CategoryID = req.CategoryID
	if req.Date != nil {
		soldOn, err := parseDate(*req.Date)
		if err != nil {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "date", Message: "Date must be YYYY-MM-DD or RFC 3339"},
			})
		}
		update.SoldOn = &soldOn
	}
	if req.Amount != nil {
		amount, err := decimal.NewFromString(*req.Amount)
		if err != nil {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "amount", Message: "Amount must be a decimal number"},
			})
		}
		update.Amount = &amount
	}

	sale, err := h.saleService.UpdateSale(int32(id), update)
	if err != nil {
		if errors.Is(err, domain.ErrSaleNotFound) {
			return NewNotFoundError(c, "Sale not found")
		}
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewNotFoundError(c, "Category not found")
		}
		log.Error().Err(err).Int("sale_id", id).Msg("Failed to update sale")
		return NewInternalError(c, "Failed to update sale")
	}

	return c.JSON(http.StatusOK, toSaleResponse(sale))
}

// DeleteSale handles DELETE /api/v1/sales/:id
func (h *SaleHandler) DeleteSale(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid sale ID", nil)
	}

	if err := h.saleService.DeleteSale(int32(id)); err != nil {
		if errors.Is(err, domain.ErrSaleNotFound) {
			return NewNotFoundError(c, "Sale not found")
		}
		log.Error().Err(err).Int("sale_id", id).Msg("Failed to delete sale")
		return NewInternalError(c, "Failed to delete sale")
	}

	log.Info().Int("sale_id", id).Msg("Sale deleted")
	return c.NoContent(http.StatusNoContent)
}

// parseDate accepts a plain date or a full RFC 3339 timestamp.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

func toSaleResponse(sale *domain.Sale) SaleResponse {
	resp := SaleResponse{
		ID:         sale.ID,
		CategoryID: sale.CategoryID,
		Date:       sale.SoldOn.Format("2006-01-02"),
		Amount:     sale.Amount.StringFixed(2),
		CreatedAt:  sale.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  sale.UpdatedAt.Format(time.RFC3339),
	}
	if sale.Category != nil {
		category := toCategoryResponse(sale.Category)
		resp.Category = &category
	}
	return resp
}
