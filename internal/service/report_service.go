package service

import (
	"sort"
	"time"

	"github.com/dafibh/balcao/balcao-backend/internal/domain"
	"github.com/dafibh/balcao/balcao-backend/internal/util"
	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var oneHundred = decimal.NewFromInt(100)

// ReportService computes target-vs-sales comparison reports. It only reads
// from the stores; every figure is derived per request.
type ReportService struct {
	goalRepo domain.MonthlyGoalRepository
	saleRepo domain.SaleRepository
}

// NewReportService creates a new ReportService
func NewReportService(goalRepo domain.MonthlyGoalRepository, saleRepo domain.SaleRepository) *ReportService {
	return &ReportService{goalRepo: goalRepo, saleRepo: saleRepo}
}

// Gap compares, per category, the target accumulated up to the target date
// against the sales accumulated over the same window. Categories with goals
// but no sales (and vice versa) still appear; the missing side is zero.
func (s *ReportService) Gap(target time.Time, categoryIDs []int32) ([]*domain.GapRow, error) {
	target = target.UTC()
	year, month, day := target.Year(), int(target.Month()), target.Day()
	monthStart, _ := util.MonthWindow(year, month)
	_, dayEnd := util.DayWindow(target)

	goals, err := s.goalRepo.ListForMonth(year, month, categoryIDs)
	if err != nil {
		return nil, err
	}

	type accumulated struct {
		name  string
		kind  domain.CategoryKind
		total decimal.Decimal
	}

	targetByCat := make(map[int32]*accumulated)
	for _, goal := range goals {
		sum := decimal.Zero
		for _, a := range goal.Allocations {
			if a.Day <= day {
				sum = sum.Add(a.Amount)
			}
		}
		acc, ok := targetByCat[goal.CategoryID]
		if !ok {
			acc = &accumulated{name: goal.Category.Name, kind: goal.Category.Kind}
			targetByCat[goal.CategoryID] = acc
		}
		acc.total = acc.total.Add(sum)
	}

	sales, err := s.saleRepo.ListWindow(monthStart, dayEnd, categoryIDs)
	if err != nil {
		return nil, err
	}

	salesByCat := make(map[int32]*accumulated)
	for _, sale := range sales {
		acc, ok := salesByCat[sale.CategoryID]
		if !ok {
			acc = &accumulated{name: sale.Category.Name, kind: sale.Category.Kind}
			salesByCat[sale.CategoryID] = acc
		}
		acc.total = acc.total.Add(sale.Amount)
	}

	// Union the category ids from both sides.
	ids := make(map[int32]struct{})
	for id := range targetByCat {
		ids[id] = struct{}{}
	}
	for id := range salesByCat {
		ids[id] = struct{}{}
	}

	rows := make([]*domain.GapRow, 0, len(ids))
	for id := range ids {
		row := &domain.GapRow{CategoryID: id, Kind: domain.KindUnitCount}
		targetTotal := decimal.Zero
		salesTotal := decimal.Zero
		if acc, ok := targetByCat[id]; ok {
			row.CategoryName = acc.name
			row.Kind = acc.kind
			targetTotal = acc.total
		}
		if acc, ok := salesByCat[id]; ok {
			if row.CategoryName == "" {
				row.CategoryName = acc.name
				row.Kind = acc.kind
			}
			salesTotal = acc.total
		}
		row.TargetAccumulated = targetTotal.Round(2)
		row.SalesAccumulated = salesTotal.Round(2)
		row.Gap = row.TargetAccumulated.Sub(row.SalesAccumulated).Round(2)
		rows = append(rows, row)
	}

	collator := collate.New(language.BrazilianPortuguese)
	sort.Slice(rows, func(i, j int) bool {
		return collator.CompareString(rows[i].CategoryName, rows[j].CategoryName) < 0
	})
	return rows, nil
}

// Summary reports target vs. realized per category for a month. When day is
// given the period is that single day and the target switches from the
// monthly amount to that day's allocation (zero when none was recorded).
func (s *ReportService) Summary(year, month int, day *int) ([]*domain.GoalSummaryRow, error) {
	goals, err := s.goalRepo.ListForMonth(year, month, nil)
	if err != nil {
		return nil, err
	}

	var from, to time.Time
	if day != nil {
		from, to = util.DayWindow(time.Date(year, time.Month(month), *day, 0, 0, 0, 0, time.UTC))
	} else {
		from, to = util.MonthWindow(year, month)
	}

	sales, err := s.saleRepo.ListWindow(from, to, nil)
	if err != nil {
		return nil, err
	}
	realizedByCat := make(map[int32]decimal.Decimal)
	for _, sale := range sales {
		realizedByCat[sale.CategoryID] = realizedByCat[sale.CategoryID].Add(sale.Amount)
	}

	rows := make([]*domain.GoalSummaryRow, 0, len(goals))
	for _, goal := range goals {
		target := goal.Amount
		if day != nil {
			target = decimal.Zero
			if a := goal.AllocationForDay(*day); a != nil {
				target = a.Amount
			}
		}
		realized := realizedByCat[goal.CategoryID]

		percent := decimal.Zero
		if target.IsPositive() {
			percent = realized.Div(target).Mul(oneHundred).Round(1)
		}

		days := make([]domain.DayTarget, len(goal.Allocations))
		for i, a := range goal.Allocations {
			days[i] = domain.DayTarget{Day: a.Day, Amount: a.Amount}
		}

		rows = append(rows, &domain.GoalSummaryRow{
			CategoryID:   goal.CategoryID,
			CategoryName: goal.Category.Name,
			Kind:         goal.Category.Kind,
			Year:         goal.Year,
			Month:        goal.Month,
			Target:       target,
			Realized:     realized,
			Deviation:    realized.Sub(target),
			Percent:      percent,
			Days:         days,
		})
	}
	return rows, nil
}

// Overview aggregates a month across all categories: total target, total
// achieved, what is still missing, and the raw sales volume.
func (s *ReportService) Overview(year, month int) (*domain.Overview, error) {
	goals, err := s.goalRepo.ListForMonth(year, month, nil)
	if err != nil {
		return nil, err
	}
	totalTarget := decimal.Zero
	for _, goal := range goals {
		totalTarget = totalTarget.Add(goal.Amount)
	}

	from, to := util.MonthWindow(year, month)
	sales, err := s.saleRepo.ListWindow(from, to, nil)
	if err != nil {
		return nil, err
	}
	totalSales := decimal.Zero
	for _, sale := range sales {
		totalSales = totalSales.Add(sale.Amount)
	}

	remaining := totalTarget.Sub(totalSales)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	var percent int64
	if totalTarget.IsPositive() {
		percent = totalSales.Div(totalTarget).Mul(oneHundred).Round(0).IntPart()
	}

	return &domain.Overview{
		Goals: domain.OverviewGoals{
			MonthlyTotal: totalTarget,
			Achieved:     totalSales,
			Remaining:    remaining,
			Percent:      percent,
		},
		Sales: domain.OverviewSales{
			Count: len(sales),
			Total: totalSales,
		},
	}, nil
}

// SalesByCategory groups a period's sales per category, with totals and
// record counts. The period is a month, or a single day when day is given.
func (s *ReportService) SalesByCategory(year, month int, day *int) ([]*domain.CategorySalesRow, error) {
	var from, to time.Time
	if day != nil {
		from, to = util.DayWindow(time.Date(year, time.Month(month), *day, 0, 0, 0, 0, time.UTC))
	} else {
		from, to = util.MonthWindow(year, month)
	}

	sales, err := s.saleRepo.ListWindow(from, to, nil)
	if err != nil {
		return nil, err
	}

	byCat := make(map[int32]*domain.CategorySalesRow)
	order := []int32{}
	for _, sale := range sales {
		row, ok := byCat[sale.CategoryID]
		if !ok {
			row = &domain.CategorySalesRow{
				CategoryID:   sale.CategoryID,
				CategoryName: sale.Category.Name,
				Kind:         sale.Category.Kind,
			}
			byCat[sale.CategoryID] = row
			order = append(order, sale.CategoryID)
		}
		row.Total = row.Total.Add(sale.Amount)
		row.Count++
	}

	rows := make([]*domain.CategorySalesRow, len(order))
	for i, id := range order {
		rows[i] = byCat[id]
	}
	return rows, nil
}
