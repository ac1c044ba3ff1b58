package domain

import "github.com/shopspring/decimal"

// GapRow compares a category's accumulated target against its accumulated
// sales up to a target date. All figures are rounded to 2 decimal places.
type GapRow struct {
	CategoryID        int32           `json:"categoryId"`
	CategoryName      string          `json:"categoryName"`
	Kind              CategoryKind    `json:"kind"`
	TargetAccumulated decimal.Decimal `json:"targetAccumulated"`
	SalesAccumulated  decimal.Decimal `json:"salesAccumulated"`
	Gap               decimal.Decimal `json:"gap"`
}

// DayTarget is one day's allocation inside a goal summary.
type DayTarget struct {
	Day    int             `json:"day"`
	Amount decimal.Decimal `json:"amount"`
}

// GoalSummaryRow is the target-vs-realized figure for one category over a
// period (a full month, or a single day when one was requested).
type GoalSummaryRow struct {
	CategoryID   int32           `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	Kind         CategoryKind    `json:"kind"`
	Year         int             `json:"year"`
	Month        int             `json:"month"`
	Target       decimal.Decimal `json:"target"`
	Realized     decimal.Decimal `json:"realized"`
	Deviation    decimal.Decimal `json:"deviation"`
	Percent      decimal.Decimal `json:"percent"`
	Days         []DayTarget     `json:"days"`
}

// Overview aggregates a whole month across all categories.
type Overview struct {
	Goals OverviewGoals `json:"goals"`
	Sales OverviewSales `json:"sales"`
}

type OverviewGoals struct {
	MonthlyTotal decimal.Decimal `json:"monthlyTotal"`
	Achieved     decimal.Decimal `json:"achieved"`
	Remaining    decimal.Decimal `json:"remaining"`
	Percent      int64           `json:"percent"`
}

type OverviewSales struct {
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// CategorySalesRow groups a period's sales by category.
type CategorySalesRow struct {
	CategoryID   int32           `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	Kind         CategoryKind    `json:"kind"`
	Total        decimal.Decimal `json:"total"`
	Count        int             `json:"count"`
}
