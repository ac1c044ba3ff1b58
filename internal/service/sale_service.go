package service

import (
	"time"

	"github.com/dafibh/balcao/balcao-backend/internal/domain"
	"github.com/dafibh/balcao/balcao-backend/internal/util"
	"github.com/shopspring/decimal"
)

// SaleService handles sale recording and retrieval
type SaleService struct {
	saleRepo domain.SaleRepository
}

// NewSaleService creates a new SaleService
func NewSaleService(saleRepo domain.SaleRepository) *SaleService {
	return &SaleService{saleRepo: saleRepo}
}

// RecordSale records the amount sold for a category on a calendar day.
// The date is normalized to UTC midnight; a record already present for the
// same category and day is overwritten, not added to.
func (s *SaleService) RecordSale(categoryID int32, soldOn time.Time, amount decimal.Decimal) (*domain.Sale, error) {
	return s.saleRepo.Upsert(categoryID, util.DayOf(soldOn), amount)
}

// GetSales lists sales. With year and month the listing covers that month;
// with only a year, the whole year; with neither, everything.
func (s *SaleService) GetSales(year, month *int) ([]*domain.Sale, error) {
	if year == nil {
		return s.saleRepo.List(nil, nil)
	}
	var from, to time.Time
	if month != nil {
		from, to = util.MonthWindow(*year, *month)
	} else {
		from, to = util.YearWindow(*year)
	}
	return s.saleRepo.List(&from, &to)
}

// GetSale retrieves a sale by ID
func (s *SaleService) GetSale(id int32) (*domain.Sale, error) {
	return s.saleRepo.GetByID(id)
}

// SaleUpdate carries the optional fields of a sale update. Nil fields keep
// the stored values.
type SaleUpdate struct {
	CategoryID *int32
	SoldOn     *time.Time
	Amount     *decimal.Decimal
}

// UpdateSale rewrites a sale record in place
func (s *SaleService) UpdateSale(id int32, update SaleUpdate) (*domain.Sale, error) {
	sale, err := s.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	categoryID := sale.CategoryID
	soldOn := sale.SoldOn
	amount := sale.Amount
	if update.CategoryID != nil {
		categoryID = *update.CategoryID
	}
	if update.SoldOn != nil {
		soldOn = util.DayOf(*update.SoldOn)
	}
	if update.Amount != nil {
		amount = *update.Amount
	}

	return s.saleRepo.Update(id, categoryID, soldOn, amount)
}

// DeleteSale removes a sale record
func (s *SaleService) DeleteSale(id int32) error {
	return s.saleRepo.Delete(id)
}
