// Package dto defines request and response shapes for the HTTP API.
package dto

// ListResponse is the standard envelope for paginated list endpoints.
type ListResponse struct {
	Items      any   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// IDResponse carries the identifier of a newly created resource.
type IDResponse struct {
	ID string `json:"id"`
}

// SuccessResponse is returned by operations without a resource body.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse is the error body produced by the error middleware.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// SetDeletionMarkRequest toggles the soft-delete mark on an entity.
type SetDeletionMarkRequest struct {
	Marked bool `json:"marked"`
}
