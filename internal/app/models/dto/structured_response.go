package dto

import "time"

// StructuredResponse is the body of every successful request
type StructuredResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewStructuredResponse creates a standard structured API response
func NewStructuredResponse(data interface{}, message string) StructuredResponse {
	return StructuredResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewMessageResponse creates a success response that only carries a message
func NewMessageResponse(message string) StructuredResponse {
	return NewStructuredResponse(nil, message)
}

// PaginationInfo describes one page of a list
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	PageSize    int   `json:"pageSize"`
	TotalItems  int64 `json:"totalItems"`
}

// PageResponse wraps a page of items
type PageResponse struct {
	Items      interface{}    `json:"items"`
	Pagination PaginationInfo `json:"pagination"`
}

// PageDescriptor names the page a browser client should render
type PageDescriptor struct {
	Page string `json:"page"`
}
