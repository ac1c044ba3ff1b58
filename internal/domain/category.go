package domain

import "time"

// CategoryKind determines how amounts for a category are formatted:
// currency values or plain unit counts.
type CategoryKind string

const (
	KindMonetary  CategoryKind = "MONETARY"
	KindUnitCount CategoryKind = "UNIT_COUNT"
)

// Valid reports whether the kind is one of the known enum values.
func (k CategoryKind) Valid() bool {
	return k == KindMonetary || k == KindUnitCount
}

type Category struct {
	ID        int32        `json:"id"`
	Name      string       `json:"name"`
	Kind      CategoryKind `json:"kind"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// CategoryReferences counts the rows that still point at a category.
type CategoryReferences struct {
	GoalCount int64 `json:"goalCount"`
	SaleCount int64 `json:"saleCount"`
}

// HasReferences reports whether deleting the category would orphan rows.
func (r CategoryReferences) HasReferences() bool {
	return r.GoalCount > 0 || r.SaleCount > 0
}

type CategoryRepository interface {
	Create(category *Category) (*Category, error)
	GetByID(id int32) (*Category, error)
	GetAll() ([]*Category, error)
	Update(id int32, name string, kind CategoryKind) (*Category, error)
	Delete(id int32) error
	CountReferences(id int32) (*CategoryReferences, error)
}
