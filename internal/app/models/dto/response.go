package dto

// APIResponse is the uniform envelope used by every endpoint.
type APIResponse struct {
	Success bool          `json:"success" example:"true"`
	Message string        `json:"message,omitempty" example:"Operation completed successfully"`
	Data    interface{}   `json:"data,omitempty"`
	Errors  []ErrorDetail `json:"errors,omitempty"`
}

// NewSuccessResponse creates a success envelope with optional data.
func NewSuccessResponse(data interface{}, message string) APIResponse {
	return APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// NewErrorResponse creates a failure envelope from one or more error details.
func NewErrorResponse(message string, errs ...ErrorDetail) APIResponse {
	return APIResponse{
		Success: false,
		Message: message,
		Errors:  errs,
	}
}

// PaginationInfo describes a page of a larger result set.
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage" example:"1"`
	TotalPages  int   `json:"totalPages" example:"5"`
	PageSize    int   `json:"pageSize" example:"10"`
	TotalItems  int64 `json:"totalItems" example:"42"`
}
