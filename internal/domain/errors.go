package domain

import "errors"

// Domain errors
var (
	ErrNotFound      = errors.New("resource not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrInternalError = errors.New("internal error")

	ErrNameRequired = errors.New("name is required")
	ErrNameTooLong  = errors.New("name exceeds maximum length")
	ErrInvalidKind  = errors.New("invalid category kind")

	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryAlreadyExists = errors.New("category already exists")
	ErrCategoryInUse         = errors.New("category is referenced by goals or sales")

	ErrGoalNotFound       = errors.New("monthly goal not found")
	ErrGoalAlreadyExists  = errors.New("monthly goal already exists for this category and month")
	ErrGoalBelowAllocated = errors.New("monthly target is below the allocated daily total")

	ErrAllocationNotFound      = errors.New("daily allocation not found")
	ErrAllocationsExceedTarget = errors.New("daily allocations exceed monthly target")
	ErrDayOutOfRange           = errors.New("day is outside the goal's month")

	ErrSaleNotFound = errors.New("sale record not found")

	ErrCollaboratorNotFound      = errors.New("collaborator not found")
	ErrCollaboratorAlreadyExists = errors.New("collaborator already exists")
)

// Validation constants
const (
	MaxCategoryNameLength     = 100
	MaxCollaboratorNameLength = 100
)
