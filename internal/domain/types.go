package domain

// basic errors shared across packages
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrNoSession    Error = "no valid session"
	ErrUnauthorized Error = "unauthorized"
	ErrNotFound     Error = "not found"
	ErrConflict     Error = "conflict"
	ErrInvalidInput Error = "invalid input"
)

// Pagination mirrors the paging block returned next to list payloads
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

func (p Pagination) HasNext() bool {
	return p.Page < p.TotalPages
}

func (p Pagination) HasPrev() bool {
	return p.Page > 1
}
