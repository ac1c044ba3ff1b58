package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is the amount recorded for a category on one calendar day.
// SoldOn is always UTC midnight; the write path keeps at most one record
// per (category, day) by overwriting the existing one.
type Sale struct {
	ID         int32           `json:"id"`
	CategoryID int32           `json:"categoryId"`
	SoldOn     time.Time       `json:"soldOn"`
	Amount     decimal.Decimal `json:"amount"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
	Category   *Category       `json:"category,omitempty"`
}

type SaleRepository interface {
	// Upsert replaces the amount of the existing record for
	// (category, day of soldOn) or inserts a new one. soldOn must already
	// be normalized to UTC midnight.
	Upsert(categoryID int32, soldOn time.Time, amount decimal.Decimal) (*Sale, error)
	GetByID(id int32) (*Sale, error)
	// List returns sales within [from, to], newest first, with categories.
	// Nil bounds mean unbounded.
	List(from, to *time.Time) ([]*Sale, error)
	// ListWindow returns sales within [from, to] with categories,
	// optionally restricted to a set of category ids.
	ListWindow(from, to time.Time, categoryIDs []int32) ([]*Sale, error)
	Update(id int32, categoryID int32, soldOn time.Time, amount decimal.Decimal) (*Sale, error)
	Delete(id int32) error
}
