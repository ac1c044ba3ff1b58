package service

import (
	"testing"
	"time"

	"github.com/dafibh/balcao/balcao-backend/internal/domain"
	"github.com/dafibh/balcao/balcao-backend/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCategory(id int32, name string, kind domain.CategoryKind) *domain.Category {
	return &domain.Category{ID: id, Name: name, Kind: kind}
}

func seedGoal(goalRepo *testutil.MockMonthlyGoalRepository, id int32, category *domain.Category, year, month int, amount string, allocations map[int]string) *domain.MonthlyGoal {
	goal := &domain.MonthlyGoal{
		ID:         id,
		CategoryID: category.ID,
		Year:       year,
		Month:      month,
		Amount:     decimal.RequireFromString(amount),
		Category:   category,
	}
	var allocationID int32 = id * 100
	for day, value := range allocations {
		allocationID++
		goal.Allocations = append(goal.Allocations, &domain.DailyAllocation{
			ID:     allocationID,
			GoalID: id,
			Day:    day,
			Amount: decimal.RequireFromString(value),
		})
	}
	goalRepo.AddGoal(goal)
	return goal
}

func seedSale(saleRepo *testutil.MockSaleRepository, category *domain.Category, year, month, day int, amount string) {
	saleRepo.AddCategory(category)
	saleRepo.AddSale(&domain.Sale{
		ID:         int32(len(saleRepo.Sales) + 1),
		CategoryID: category.ID,
		SoldOn:     time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC),
		Amount:     decimal.RequireFromString(amount),
		Category:   category,
	})
}

func TestGap_AccumulatesUpToTargetDay(t *testing.T) {
	goalRepo := testutil.NewMockMonthlyGoalRepository()
	saleRepo := testutil.NewMockSaleRepository()
	reportService := NewReportService(goalRepo, saleRepo)

	perfumaria := seedCategory(1, "Perfumaria", domain.KindMonetary)
	seedGoal(goalRepo, 1, perfumaria, 2025, 9, "1000", map[int]string{
		5:  "200",
		10: "300",
		20: "400", // after the target day, must not count
	})
	seedSale(saleRepo, perfumaria, 2025, 9, 3, "150")
	seedSale(saleRepo, perfumaria, 2025, 9, 8, "300")
	seedSale(saleRepo, perfumaria, 2025, 9, 25, "999") // outside the window

	rows, err := reportService.Gap(time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "Perfumaria", rows[0].CategoryName)
	assert.Equal(t, "500.00", rows[0].TargetAccumulated.StringFixed(2))
	assert.Equal(t, "450.00", rows[0].SalesAccumulated.StringFixed(2))
	assert.Equal(t, "50.00", rows[0].Gap.StringFixed(2))
}

func TestGap_CategoryWithGoalButNoSales(t *testing.T) {
	goalRepo := testutil.NewMockMonthlyGoalRepository()
	saleRepo := testutil.NewMockSaleRepository()
	reportService := NewReportService(goalRepo, saleRepo)

	dermo := seedCategory(2, "Dermocosmeticos", domain.KindUnitCount)
	seedGoal(goalRepo, 1, dermo, 2025, 9, "600", map[int]string{5: "100"})

	rows, err := reportService.Gap(time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "100.00", rows[0].TargetAccumulated.StringFixed(2))
	assert.Equal(t, "0.00", rows[0].SalesAccumulated.StringFixed(2))
	assert.Equal(t, "100.00", rows[0].Gap.StringFixed(2))
}

func TestGap_CategoryWithSalesButNoGoal(t *testing.T) {
	goalRepo := testutil.NewMockMonthlyGoalRepository()
	saleRepo := testutil.NewMockSaleRepository()
	reportService := NewReportService(goalRepo, saleRepo)

	higiene := seedCategory(3, "Higiene", domain.KindMonetary)
	seedSale(saleRepo, higiene, 2025, 9, 2, "75.50")

	rows, err := reportService.Gap(time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "Higiene", rows[0].CategoryName)
	assert.Equal(t, "0.00", rows[0].TargetAccumulated.StringFixed(2))
	assert.Equal(t, "75.50", rows[0].SalesAccumulated.StringFixed(2))
	assert.Equal(t, "-75.50", rows[0].Gap.StringFixed(2))
}

func TestGap_SortsByCategoryName(t *testing.T) {
	goalRepo := testutil.NewMockMonthlyGoalRepository()
	saleRepo := testutil.NewMockSaleRepository()
	reportService := NewReportService(goalRepo, saleRepo)

	seedGoal(goalRepo, 1, seedCategory(1, "Vitaminas", domain.KindMonetary), 2025, 9, "100", nil)
	seedGoal(goalRepo, 2, seedCategory(2, "Água Micelar", domain.KindMonetary), 2025, 9, "100", nil)
	seedGoal(goalRepo, 3, seedCategory(3, "Dermocosmeticos", domain.KindMonetary), 2025, 9, "100", nil)

	rows, err := reportService.Gap(time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Accented names sort by locale, not by byte value
	assert.Equal(t, "Água Micelar", rows[0].CategoryName)
	assert.Equal(t, "Dermocosmeticos", rows[1].CategoryName)
	assert.Equal(t, "Vitaminas", rows[2].CategoryName)
}

func TestGap_FiltersByCategory(t *testing.T) {
	goalRepo := testutil.NewMockMonthlyGoalRepository()
	saleRepo := testutil.NewMockSaleRepository()
	reportService := NewReportService(goalRepo, saleRepo)

	seedGoal(goalRepo, 1, seedCategory(1, "Perfumaria", domain.KindMonetary), 2025, 9, "100", nil)
	seedGoal(goalRepo, 2, seedCategory(2, "Higiene", domain.KindMonetary), 2025, 9, "100", nil)

	rows, err := reportService.Gap(time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC), []int32{2})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int32(2), rows[0].CategoryID)
}

func TestSummary_MonthTarget(t *testing.T) {
	goalRepo := testutil.NewMockMonthlyGoalRepository()
	saleRepo := testutil.NewMockSaleRepository()
	reportService := NewReportService(goalRepo, saleRepo)

	perfumaria := seedCategory(1, "Perfumaria", domain.KindMonetary)
	seedGoal(goalRepo, 1, perfumaria, 2025, 9, "1000", map[int]string{5: "200"})
	seedSale(saleRepo, perfumaria, 2025, 9, 5, "250")
	seedSale(saleRepo, perfumaria, 2025, 9, 12, "250")

	rows, err := reportService.Summary(2025, 9, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "1000.00", rows[0].Target.StringFixed(2))
	assert.Equal(t, "500.00", rows[0].Realized.StringFixed(2))
	assert.Equal(t, "-500.00", rows[0].Deviation.StringFixed(2))
	assert.Equal(t, "50.0", rows[0].Percent.StringFixed(1))
	require.Len(t, rows[0].Days, 1)
	assert.Equal(t, 5, rows[0].Days[0].Day)
}

func TestSummary_DayTargetUsesAllocation(t *testing.T) {
	goalRepo := testutil.NewMockMonthlyGoalRepository()
	saleRepo := testutil.NewMockSaleRepository()
	reportService := NewReportService(goalRepo, saleRepo)

	perfumaria := seedCategory(1, "Perfumaria", domain.KindMonetary)
	seedGoal(goalRepo, 1, perfumaria, 2025, 9, "1000", map[int]string{5: "200"})
	seedSale(saleRepo, perfumaria, 2025, 9, 5, "180")

	day := 5
	rows, err := reportService.Summary(2025, 9, &day)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "200.00", rows[0].Target.StringFixed(2))
	assert.Equal(t, "180.00", rows[0].Realized.StringFixed(2))
	assert.Equal(t, "90.0", rows[0].Percent.StringFixed(1))
}

func TestSummary_DayWithoutAllocationHasZeroTarget(t *testing.T) {
	goalRepo := testutil.NewMockMonthlyGoalRepository()
	saleRepo := testutil.NewMockSaleRepository()
	reportService := NewReportService(goalRepo, saleRepo)

	perfumaria := seedCategory(1, "Perfumaria", domain.KindMonetary)
	seedGoal(goalRepo, 1, perfumaria, 2025, 9, "1000", map[int]string{5: "200"})
	seedSale(saleRepo, perfumaria, 2025, 9, 15, "100")

	day := 15
	rows, err := reportService.Summary(2025, 9, &day)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	// No allocation for day 15, so target and percent stay zero
	assert.True(t, rows[0].Target.IsZero())
	assert.Equal(t, "100.00", rows[0].Realized.StringFixed(2))
	assert.True(t, rows[0].Percent.IsZero())
}

func TestOverview_Totals(t *testing.T) {
	goalRepo := testutil.NewMockMonthlyGoalRepository()
	saleRepo := testutil.NewMockSaleRepository()
	reportService := NewReportService(goalRepo, saleRepo)

	perfumaria := seedCategory(1, "Perfumaria", domain.KindMonetary)
	higiene := seedCategory(2, "Higiene", domain.KindMonetary)
	seedGoal(goalRepo, 1, perfumaria, 2025, 9, "1000", nil)
	seedGoal(goalRepo, 2, higiene, 2025, 9, "500", nil)
	seedSale(saleRepo, perfumaria, 2025, 9, 5, "400")
	seedSale(saleRepo, higiene, 2025, 9, 6, "200")

	overview, err := reportService.Overview(2025, 9)
	require.NoError(t, err)

	assert.Equal(t, "1500.00", overview.Goals.MonthlyTotal.StringFixed(2))
	assert.Equal(t, "600.00", overview.Goals.Achieved.StringFixed(2))
	assert.Equal(t, "900.00", overview.Goals.Remaining.StringFixed(2))
	assert.Equal(t, int64(40), overview.Goals.Percent)
	assert.Equal(t, 2, overview.Sales.Count)
	assert.Equal(t, "600.00", overview.Sales.Total.StringFixed(2))
}

func TestOverview_RemainingFloorsAtZero(t *testing.T) {
	goalRepo := testutil.NewMockMonthlyGoalRepository()
	saleRepo := testutil.NewMockSaleRepository()
	reportService := NewReportService(goalRepo, saleRepo)

	perfumaria := seedCategory(1, "Perfumaria", domain.KindMonetary)
	seedGoal(goalRepo, 1, perfumaria, 2025, 9, "100", nil)
	seedSale(saleRepo, perfumaria, 2025, 9, 5, "250")

	overview, err := reportService.Overview(2025, 9)
	require.NoError(t, err)

	assert.True(t, overview.Goals.Remaining.IsZero())
	assert.Equal(t, int64(250), overview.Goals.Percent)
}

func TestOverview_NoGoals(t *testing.T) {
	goalRepo := testutil.NewMockMonthlyGoalRepository()
	saleRepo := testutil.NewMockSaleRepository()
	reportService := NewReportService(goalRepo, saleRepo)

	overview, err := reportService.Overview(2025, 9)
	require.NoError(t, err)

	assert.True(t, overview.Goals.MonthlyTotal.IsZero())
	assert.Equal(t, int64(0), overview.Goals.Percent)
	assert.Equal(t, 0, overview.Sales.Count)
}

func TestSalesByCategory_GroupsAndCounts(t *testing.T) {
	goalRepo := testutil.NewMockMonthlyGoalRepository()
	saleRepo := testutil.NewMockSaleRepository()
	reportService := NewReportService(goalRepo, saleRepo)

	perfumaria := seedCategory(1, "Perfumaria", domain.KindMonetary)
	higiene := seedCategory(2, "Higiene", domain.KindMonetary)
	seedSale(saleRepo, perfumaria, 2025, 9, 5, "100")
	seedSale(saleRepo, perfumaria, 2025, 9, 6, "150")
	seedSale(saleRepo, higiene, 2025, 9, 5, "80")

	rows, err := reportService.SalesByCategory(2025, 9, nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byName := map[string]*domain.CategorySalesRow{}
	for _, row := range rows {
		byName[row.CategoryName] = row
	}
	require.Contains(t, byName, "Perfumaria")
	require.Contains(t, byName, "Higiene")

	assert.Equal(t, "250.00", byName["Perfumaria"].Total.StringFixed(2))
	assert.Equal(t, 2, byName["Perfumaria"].Count)
	assert.Equal(t, "80.00", byName["Higiene"].Total.StringFixed(2))
	assert.Equal(t, 1, byName["Higiene"].Count)
}

func TestSalesByCategory_SingleDay(t *testing.T) {
	goalRepo := testutil.NewMockMonthlyGoalRepository()
	saleRepo := testutil.NewMockSaleRepository()
	reportService := NewReportService(goalRepo, saleRepo)

	perfumaria := seedCategory(1, "Perfumaria", domain.KindMonetary)
	seedSale(saleRepo, perfumaria, 2025, 9, 5, "100")
	seedSale(saleRepo, perfumaria, 2025, 9, 6, "150")

	day := 5
	rows, err := reportService.SalesByCategory(2025, 9, &day)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "100.00", rows[0].Total.StringFixed(2))
	assert.Equal(t, 1, rows[0].Count)
}
