package testutil

import (
	"sort"
	"strings"
	"time"

	"github.com/dafibh/balcao/balcao-backend/internal/domain"
	"github.com/dafibh/balcao/balcao-backend/internal/util"
	"github.com/shopspring/decimal"
)

// MockCategoryRepository is a mock implementation of domain.CategoryRepository
type MockCategoryRepository struct {
	Categories map[int32]*domain.Category
	GoalRefs   map[int32]int64
	SaleRefs   map[int32]int64
	NextID     int32
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		Categories: make(map[int32]*domain.Category),
		GoalRefs:   make(map[int32]int64),
		SaleRefs:   make(map[int32]int64),
		NextID:     1,
	}
}

// Create creates a new category
func (m *MockCategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	for _, existing := range m.Categories {
		if existing.Name == category.Name {
			return nil, domain.ErrCategoryAlreadyExists
		}
	}
	category.ID = m.NextID
	m.NextID++
	category.CreatedAt = time.Now()
	category.UpdatedAt = category.CreatedAt
	m.Categories[category.ID] = category
	return category, nil
}

// GetByID retrieves a category by ID
func (m *MockCategoryRepository) GetByID(id int32) (*domain.Category, error) {
	if category, ok := m.Categories[id]; ok {
		return category, nil
	}
	return nil, domain.ErrCategoryNotFound
}

// GetAll retrieves all categories ordered by id
func (m *MockCategoryRepository) GetAll() ([]*domain.Category, error) {
	result := make([]*domain.Category, 0, len(m.Categories))
	for _, category := range m.Categories {
		result = append(result, category)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Update updates a category's name and kind
func (m *MockCategoryRepository) Update(id int32, name string, kind domain.CategoryKind) (*domain.Category, error) {
	category, ok := m.Categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	for _, existing := range m.Categories {
		if existing.ID != id && existing.Name == name {
			return nil, domain.ErrCategoryAlreadyExists
		}
	}
	category.Name = name
	category.Kind = kind
	category.UpdatedAt = time.Now()
	return category, nil
}

// Delete removes a category unless goals or sales still reference it
func (m *MockCategoryRepository) Delete(id int32) error {
	if _, ok := m.Categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	if m.GoalRefs[id] > 0 || m.SaleRefs[id] > 0 {
		return domain.ErrCategoryInUse
	}
	delete(m.Categories, id)
	return nil
}

// CountReferences counts goals and sales pointing at a category
func (m *MockCategoryRepository) CountReferences(id int32) (*domain.CategoryReferences, error) {
	return &domain.CategoryReferences{
		GoalCount: m.GoalRefs[id],
		SaleCount: m.SaleRefs[id],
	}, nil
}

// AddCategory adds a category to the mock repository (helper for tests)
func (m *MockCategoryRepository) AddCategory(category *domain.Category) {
	m.Categories[category.ID] = category
	if category.ID >= m.NextID {
		m.NextID = category.ID + 1
	}
}

// MockMonthlyGoalRepository is a mock implementation of domain.MonthlyGoalRepository
type MockMonthlyGoalRepository struct {
	Goals            map[int32]*domain.MonthlyGoal
	NextID           int32
	NextAllocationID int32
}

// NewMockMonthlyGoalRepository creates a new MockMonthlyGoalRepository
func NewMockMonthlyGoalRepository() *MockMonthlyGoalRepository {
	return &MockMonthlyGoalRepository{
		Goals:            make(map[int32]*domain.MonthlyGoal),
		NextID:           1,
		NextAllocationID: 1,
	}
}

// Create creates a new monthly goal
func (m *MockMonthlyGoalRepository) Create(goal *domain.MonthlyGoal) (*domain.MonthlyGoal, error) {
	for _, existing := range m.Goals {
		if existing.CategoryID == goal.CategoryID && existing.Year == goal.Year && existing.Month == goal.Month {
			return nil, domain.ErrGoalAlreadyExists
		}
	}
	goal.ID = m.NextID
	m.NextID++
	goal.CreatedAt = time.Now()
	goal.UpdatedAt = goal.CreatedAt
	m.Goals[goal.ID] = goal
	return goal, nil
}

// GetByID retrieves a goal by ID
func (m *MockMonthlyGoalRepository) GetByID(id int32) (*domain.MonthlyGoal, error) {
	if goal, ok := m.Goals[id]; ok {
		return goal, nil
	}
	return nil, domain.ErrGoalNotFound
}

// List retrieves goals matching the filter
func (m *MockMonthlyGoalRepository) List(filter domain.GoalFilter) ([]*domain.MonthlyGoal, error) {
	var result []*domain.MonthlyGoal
	for _, goal := range m.Goals {
		if filter.Year != nil && goal.Year != *filter.Year {
			continue
		}
		if filter.Month != nil && goal.Month != *filter.Month {
			continue
		}
		if filter.CategoryID != nil && goal.CategoryID != *filter.CategoryID {
			continue
		}
		result = append(result, goal)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// ListForMonth retrieves all goals for a month
func (m *MockMonthlyGoalRepository) ListForMonth(year, month int, categoryIDs []int32) ([]*domain.MonthlyGoal, error) {
	var result []*domain.MonthlyGoal
	for _, goal := range m.Goals {
		if goal.Year != year || goal.Month != month {
			continue
		}
		if len(categoryIDs) > 0 && !containsID(categoryIDs, goal.CategoryID) {
			continue
		}
		result = append(result, goal)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// UpdateAmount updates a goal's target amount
func (m *MockMonthlyGoalRepository) UpdateAmount(id int32, amount decimal.Decimal) (*domain.MonthlyGoal, error) {
	goal, ok := m.Goals[id]
	if !ok {
		return nil, domain.ErrGoalNotFound
	}
	goal.Amount = amount
	goal.UpdatedAt = time.Now()
	return goal, nil
}

// Delete removes a goal
func (m *MockMonthlyGoalRepository) Delete(id int32) error {
	if _, ok := m.Goals[id]; !ok {
		return domain.ErrGoalNotFound
	}
	delete(m.Goals, id)
	return nil
}

// UpsertAllocation writes the allocation for (goal, day) after validating
// the allocation-sum invariant, like the PostgreSQL implementation does.
func (m *MockMonthlyGoalRepository) UpsertAllocation(goalID int32, day int, amount decimal.Decimal) (*domain.DailyAllocation, error) {
	goal, ok := m.Goals[goalID]
	if !ok {
		return nil, domain.ErrGoalNotFound
	}

	sum := amount
	for _, a := range goal.Allocations {
		if a.Day != day {
			sum = sum.Add(a.Amount)
		}
	}
	if sum.GreaterThan(goal.Amount) {
		return nil, domain.ErrAllocationsExceedTarget
	}

	if existing := goal.AllocationForDay(day); existing != nil {
		existing.Amount = amount
		existing.UpdatedAt = time.Now()
		return existing, nil
	}
	allocation := &domain.DailyAllocation{
		ID:        m.NextAllocationID,
		GoalID:    goalID,
		Day:       day,
		Amount:    amount,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	m.NextAllocationID++
	goal.Allocations = append(goal.Allocations, allocation)
	return allocation, nil
}

// UpdateAllocation changes an allocation's amount under the invariant check
func (m *MockMonthlyGoalRepository) UpdateAllocation(id int32, amount decimal.Decimal) (*domain.DailyAllocation, error) {
	for _, goal := range m.Goals {
		for _, a := range goal.Allocations {
			if a.ID != id {
				continue
			}
			sum := decimal.Zero
			for _, other := range goal.Allocations {
				if other.ID == id {
					sum = sum.Add(amount)
				} else {
					sum = sum.Add(other.Amount)
				}
			}
			if sum.GreaterThan(goal.Amount) {
				return nil, domain.ErrAllocationsExceedTarget
			}
			a.Amount = amount
			a.UpdatedAt = time.Now()
			return a, nil
		}
	}
	return nil, domain.ErrAllocationNotFound
}

// DeleteAllocation removes a daily allocation
func (m *MockMonthlyGoalRepository) DeleteAllocation(id int32) error {
	for _, goal := range m.Goals {
		for i, a := range goal.Allocations {
			if a.ID == id {
				goal.Allocations = append(goal.Allocations[:i], goal.Allocations[i+1:]...)
				return nil
			}
		}
	}
	return domain.ErrAllocationNotFound
}

// AddGoal adds a goal to the mock repository (helper for tests)
func (m *MockMonthlyGoalRepository) AddGoal(goal *domain.MonthlyGoal) {
	m.Goals[goal.ID] = goal
	if goal.ID >= m.NextID {
		m.NextID = goal.ID + 1
	}
	for _, a := range goal.Allocations {
		if a.ID >= m.NextAllocationID {
			m.NextAllocationID = a.ID + 1
		}
	}
}

// MockSaleRepository is a mock implementation of domain.SaleRepository
type MockSaleRepository struct {
	Sales      map[int32]*domain.Sale
	Categories map[int32]*domain.Category
	NextID     int32
}

// NewMockSaleRepository creates a new MockSaleRepository
func NewMockSaleRepository() *MockSaleRepository {
	return &MockSaleRepository{
		Sales:      make(map[int32]*domain.Sale),
		Categories: make(map[int32]*domain.Category),
		NextID:     1,
	}
}

// Upsert replaces the record for (category, day) or inserts a new one
func (m *MockSaleRepository) Upsert(categoryID int32, soldOn time.Time, amount decimal.Decimal) (*domain.Sale, error) {
	day := util.DayOf(soldOn)
	for _, sale := range m.Sales {
		if sale.CategoryID == categoryID && util.DayOf(sale.SoldOn).Equal(day) {
			sale.Amount = amount
			sale.SoldOn = day
			sale.UpdatedAt = time.Now()
			return sale, nil
		}
	}
	// The category registry is optional; when populated, unknown ids fail
	// the way the foreign key does.
	if _, ok := m.Categories[categoryID]; !ok && len(m.Categories) > 0 {
		return nil, domain.ErrCategoryNotFound
	}
	sale := &domain.Sale{
		ID:         m.NextID,
		CategoryID: categoryID,
		SoldOn:     day,
		Amount:     amount,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
		Category:   m.Categories[categoryID],
	}
	m.NextID++
	m.Sales[sale.ID] = sale
	return sale, nil
}

// GetByID retrieves a sale by ID
func (m *MockSaleRepository) GetByID(id int32) (*domain.Sale, error) {
	if sale, ok := m.Sales[id]; ok {
		return sale, nil
	}
	return nil, domain.ErrSaleNotFound
}

// List retrieves sales within the optional bounds, newest first
func (m *MockSaleRepository) List(from, to *time.Time) ([]*domain.Sale, error) {
	var result []*domain.Sale
	for _, sale := range m.Sales {
		if from != nil && sale.SoldOn.Before(*from) {
			continue
		}
		if to != nil && sale.SoldOn.After(*to) {
			continue
		}
		result = append(result, sale)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SoldOn.After(result[j].SoldOn) })
	return result, nil
}

// ListWindow retrieves sales within [from, to]
func (m *MockSaleRepository) ListWindow(from, to time.Time, categoryIDs []int32) ([]*domain.Sale, error) {
	var result []*domain.Sale
	for _, sale := range m.Sales {
		if sale.SoldOn.Before(from) || sale.SoldOn.After(to) {
			continue
		}
		if len(categoryIDs) > 0 && !containsID(categoryIDs, sale.CategoryID) {
			continue
		}
		result = append(result, sale)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Update rewrites a sale record
func (m *MockSaleRepository) Update(id int32, categoryID int32, soldOn time.Time, amount decimal.Decimal) (*domain.Sale, error) {
	sale, ok := m.Sales[id]
	if !ok {
		return nil, domain.ErrSaleNotFound
	}
	sale.CategoryID = categoryID
	sale.SoldOn = soldOn
	sale.Amount = amount
	sale.UpdatedAt = time.Now()
	if category, ok := m.Categories[categoryID]; ok {
		sale.Category = category
	}
	return sale, nil
}

// Delete removes a sale record
func (m *MockSaleRepository) Delete(id int32) error {
	if _, ok := m.Sales[id]; !ok {
		return domain.ErrSaleNotFound
	}
	delete(m.Sales, id)
	return nil
}

// AddCategory registers a category so upserted sales carry it (helper for tests)
func (m *MockSaleRepository) AddCategory(category *domain.Category) {
	m.Categories[category.ID] = category
}

// AddSale adds a sale to the mock repository (helper for tests)
func (m *MockSaleRepository) AddSale(sale *domain.Sale) {
	m.Sales[sale.ID] = sale
	if sale.ID >= m.NextID {
		m.NextID = sale.ID + 1
	}
}

// MockCollaboratorRepository is a mock implementation of domain.CollaboratorRepository
type MockCollaboratorRepository struct {
	Collaborators map[int32]*domain.Collaborator
	NextID        int32
}

// NewMockCollaboratorRepository creates a new MockCollaboratorRepository
func NewMockCollaboratorRepository() *MockCollaboratorRepository {
	return &MockCollaboratorRepository{
		Collaborators: make(map[int32]*domain.Collaborator),
		NextID:        1,
	}
}

// Create registers a new collaborator
func (m *MockCollaboratorRepository) Create(name string) (*domain.Collaborator, error) {
	for _, existing := range m.Collaborators {
		if existing.Name == name {
			return nil, domain.ErrCollaboratorAlreadyExists
		}
	}
	collaborator := &domain.Collaborator{
		ID:        m.NextID,
		Name:      name,
		CreatedAt: time.Now(),
	}
	m.NextID++
	m.Collaborators[collaborator.ID] = collaborator
	return collaborator, nil
}

// GetByID retrieves a collaborator by ID
func (m *MockCollaboratorRepository) GetByID(id int32) (*domain.Collaborator, error) {
	if collaborator, ok := m.Collaborators[id]; ok {
		return collaborator, nil
	}
	return nil, domain.ErrCollaboratorNotFound
}

// List returns a page of collaborators, newest first
func (m *MockCollaboratorRepository) List(query string, page, pageSize int) (*domain.CollaboratorPage, error) {
	var matched []*domain.Collaborator
	for _, collaborator := range m.Collaborators {
		if query == "" || strings.Contains(strings.ToLower(collaborator.Name), strings.ToLower(query)) {
			matched = append(matched, collaborator)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	total := int64(len(matched))
	start := (page - 1) * pageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}

	return &domain.CollaboratorPage{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
		Items:      matched[start:end],
	}, nil
}

// Update renames a collaborator
func (m *MockCollaboratorRepository) Update(id int32, name string) (*domain.Collaborator, error) {
	collaborator, ok := m.Collaborators[id]
	if !ok {
		return nil, domain.ErrCollaboratorNotFound
	}
	for _, existing := range m.Collaborators {
		if existing.ID != id && existing.Name == name {
			return nil, domain.ErrCollaboratorAlreadyExists
		}
	}
	collaborator.Name = name
	return collaborator, nil
}

// Delete removes a collaborator
func (m *MockCollaboratorRepository) Delete(id int32) error {
	if _, ok := m.Collaborators[id]; !ok {
		return domain.ErrCollaboratorNotFound
	}
	delete(m.Collaborators, id)
	return nil
}

func containsID(ids []int32, id int32) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
