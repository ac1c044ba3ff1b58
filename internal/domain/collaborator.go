package domain

import "time"

// Collaborator is a counter staff member. Kept as a plain registry; sales
// are not attributed to collaborators.
type Collaborator struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// CollaboratorPage is one page of a collaborator listing.
type CollaboratorPage struct {
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
	Total      int64           `json:"total"`
	TotalPages int             `json:"totalPages"`
	Items      []*Collaborator `json:"items"`
}

type CollaboratorRepository interface {
	Create(name string) (*Collaborator, error)
	GetByID(id int32) (*Collaborator, error)
	// List returns a page of collaborators, newest first, filtered by a
	// case-insensitive name substring when query is non-empty.
	List(query string, page, pageSize int) (*CollaboratorPage, error)
	Update(id int32, name string) (*Collaborator, error)
	Delete(id int32) error
}
