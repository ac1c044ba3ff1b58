package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dafibh/balcao/balcao-backend/internal/domain"
	"github.com/dafibh/balcao/balcao-backend/internal/service"
	"github.com/dafibh/balcao/balcao-backend/internal/util"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ReportHandler handles reporting HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GapReportRequest represents the POST gap report request body
type GapReportRequest struct {
	Date        string  `json:"date"`
	CategoryIDs []int32 `json:"categoryIds"`
}

// GapRowResponse represents one category row in the gap report
type GapRowResponse struct {
	CategoryID        int32  `json:"categoryId"`
	CategoryName      string `json:"categoryName"`
	Kind              string `json:"kind"`
	TargetAccumulated string `json:"targetAccumulated"`
	SalesAccumulated  string `json:"salesAccumulated"`
	Gap               string `json:"gap"`
}

// GapReportResponse represents the gap report
type GapReportResponse struct {
	Date string           `json:"date"`
	Rows []GapRowResponse `json:"rows"`
}

// DayTargetResponse represents one allocated day inside a summary row
type DayTargetResponse struct {
	Day    int    `json:"day"`
	Amount string `json:"amount"`
}

// SummaryRowResponse represents one category row in the goal summary
type SummaryRowResponse struct {
	CategoryID   int32               `json:"categoryId"`
	CategoryName string              `json:"categoryName"`
	Kind         string              `json:"kind"`
	Year         int                 `json:"year"`
	Month        int                 `json:"month"`
	Target       string              `json:"target"`
	Realized     string              `json:"realized"`
	Deviation    string              `json:"deviation"`
	Percent      string              `json:"percent"`
	Days         []DayTargetResponse `json:"days"`
}

// OverviewResponse represents the month overview report
type OverviewResponse struct {
	Goals OverviewGoalsResponse `json:"goals"`
	Sales OverviewSalesResponse `json:"sales"`
}

type OverviewGoalsResponse struct {
	MonthlyTotal string `json:"monthlyTotal"`
	Achieved     string `json:"achieved"`
	Remaining    string `json:"remaining"`
	Percent      int64  `json:"percent"`
}

type OverviewSalesResponse struct {
	Count int    `json:"count"`
	Total string `json:"total"`
}

// CategorySalesResponse represents one category row in the sales report
type CategorySalesResponse struct {
	CategoryID   int32  `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	Kind         string `json:"kind"`
	Total        string `json:"total"`
	Count        int    `json:"count"`
}

// GetGap handles GET /api/v1/reports/gap
func (h *ReportHandler) GetGap(c echo.Context) error {
	target := util.DayOf(time.Now())
	if raw := c.QueryParam("date"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			return NewValidationError(c, "Invalid date, expected YYYY-MM-DD", nil)
		}
		target = util.DayOf(parsed)
	}

	categoryIDs, err := parseCategoryIDs(c.QueryParam("categoryId"))
	if err != nil {
		return NewValidationError(c, "Invalid category ID list", nil)
	}

	return h.respondGap(c, target, categoryIDs)
}

// PostGap handles POST /api/v1/reports/gap
func (h *ReportHandler) PostGap(c echo.Context) error {
	var req GapReportRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	target := util.DayOf(time.Now())
	if req.Date != "" {
		parsed, err := parseDate(req.Date)
		if err != nil {
			return NewValidationError(c, "Invalid date, expected YYYY-MM-DD", nil)
		}
		target = util.DayOf(parsed)
	}

	return h.respondGap(c, target, req.CategoryIDs)
}

func (h *ReportHandler) respondGap(c echo.Context, target time.Time, categoryIDs []int32) error {
	rows, err := h.reportService.Gap(target, categoryIDs)
	if err != nil {
		log.Error().Err(err).Str("date", target.Format("2006-01-02")).Msg("Failed to build gap report")
		return NewInternalError(c, "Failed to build gap report")
	}

	response := GapReportResponse{
		Date: target.Format("2006-01-02"),
		Rows: make([]GapRowResponse, len(rows)),
	}
	for i, row := range rows {
		response.Rows[i] = GapRowResponse{
			CategoryID:        row.CategoryID,
			CategoryName:      row.CategoryName,
			Kind:              string(row.Kind),
			TargetAccumulated: row.TargetAccumulated.StringFixed(2),
			SalesAccumulated:  row.SalesAccumulated.StringFixed(2),
			Gap:               row.Gap.StringFixed(2),
		}
	}
	return c.JSON(http.StatusOK, response)
}

// GetSummary handles GET /api/v1/reports/summary
func (h *ReportHandler) GetSummary(c echo.Context) error {
	year, month, err := parseYearMonth(c)
	if err != nil {
		return NewValidationError(c, err.Error(), nil)
	}

	day, err := parseOptionalDay(c)
	if err != nil {
		return NewValidationError(c, "Invalid day", nil)
	}

	rows, err := h.reportService.Summary(year, month, day)
	if err != nil {
		log.Error().Err(err).Int("year", year).Int("month", month).Msg("Failed to build goal summary")
		return NewInternalError(c, "Failed to build goal summary")
	}

	response := make([]SummaryRowResponse, len(rows))
	for i, row := range rows {
		days := make([]DayTargetResponse, len(row.Days))
		for j, d := range row.Days {
			days[j] = DayTargetResponse{Day: d.Day, Amount: d.Amount.StringFixed(2)}
		}
		response[i] = SummaryRowResponse{
			CategoryID:   row.CategoryID,
			CategoryName: row.CategoryName,
			Kind:         string(row.Kind),
			Year:         row.Year,
			Month:        row.Month,
			Target:       row.Target.StringFixed(2),
			Realized:     row.Realized.StringFixed(2),
			Deviation:    row.Deviation.StringFixed(2),
			Percent:      row.Percent.StringFixed(1),
			Days:         days,
		}
	}
	return c.JSON(http.StatusOK, response)
}

// GetOverview handles GET /api/v1/reports/overview
func (h *ReportHandler) GetOverview(c echo.Context) error {
	year, month, err := parseYearMonth(c)
	if err != nil {
		return NewValidationError(c, err.Error(), nil)
	}

	overview, err := h.reportService.Overview(year, month)
	if err != nil {
		log.Error().Err(err).Int("year", year).Int("month", month).Msg("Failed to build overview")
		return NewInternalError(c, "Failed to build overview")
	}

	return c.JSON(http.StatusOK, OverviewResponse{
		Goals: OverviewGoalsResponse{
			MonthlyTotal: overview.Goals.MonthlyTotal.StringFixed(2),
			Achieved:     overview.Goals.Achieved.StringFixed(2),
			Remaining:    overview.Goals.Remaining.StringFixed(2),
			Percent:      overview.Goals.Percent,
		},
		Sales: OverviewSalesResponse{
			Count: overview.Sales.Count,
			Total: overview.Sales.Total.StringFixed(2),
		},
	})
}

// GetSalesByCategory handles GET /api/v1/reports/sales
func (h *ReportHandler) GetSalesByCategory(c echo.Context) error {
	year, month, err := parseYearMonth(c)
	if err != nil {
		return NewValidationError(c, err.Error(), nil)
	}

	day, err := parseOptionalDay(c)
	if err != nil {
		return NewValidationError(c, "Invalid day", nil)
	}

	rows, err := h.reportService.SalesByCategory(year, month, day)
	if err != nil {
		log.Error().Err(err).Int("year", year).Int("month", month).Msg("Failed to build sales report")
		return NewInternalError(c, "Failed to build sales report")
	}

	response := make([]CategorySalesResponse, len(rows))
	for i, row := range rows {
		response[i] = CategorySalesResponse{
			CategoryID:   row.CategoryID,
			CategoryName: row.CategoryName,
			Kind:         string(row.Kind),
			Total:        row.Total.StringFixed(2),
			Count:        row.Count,
		}
	}
	return c.JSON(http.StatusOK, response)
}

func parseYearMonth(c echo.Context) (int, int, error) {
	year, err := strconv.Atoi(c.QueryParam("year"))
	if err != nil || year <= 0 {
		return 0, 0, errors.New("Year query parameter is required")
	}
	month, err := strconv.Atoi(c.QueryParam("month"))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, errors.New("Month query parameter must be between 1 and 12")
	}
	return year, month, nil
}

func parseOptionalDay(c echo.Context) (*int, error) {
	raw := c.QueryParam("day")
	if raw == "" {
		return nil, nil
	}
	day, err := strconv.Atoi(raw)
	if err != nil || day < 1 || day > 31 {
		return nil, domain.ErrInvalidInput
	}
	return &day, nil
}

// parseCategoryIDs splits a comma separated id list ("1,2,3").
func parseCategoryIDs(raw string) ([]int32, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int32, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, int32(id))
	}
	return ids, nil
}
