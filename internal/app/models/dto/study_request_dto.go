package dto

import (
	"time"

	"github.com/yigit/studybuddy/internal/app/models"
)

// CreateStudyRequestRequest is the body of POST /api/study-request
type CreateStudyRequestRequest struct {
	Subject     string `json:"subject" binding:"required,notblank"`
	Topic       string `json:"topic" binding:"required,notblank"`
	Location    string `json:"location" binding:"required,notblank"`
	Description string `json:"description"`
}

// StudyRequestResponse is a study request with its owner's public profile
type StudyRequestResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	Subject     string    `json:"subject"`
	Topic       string    `json:"topic"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	IsActive    bool      `json:"isActive"`
	FullName    string    `json:"fullName,omitempty"`
	Program     string    `json:"program,omitempty"`
	Year        int       `json:"year,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// FromStudyRequestDetails converts joined rows to responses
func FromStudyRequestDetails(rows []*models.StudyRequestDetails) []StudyRequestResponse {
	out := make([]StudyRequestResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, StudyRequestResponse{
			ID:          r.ID,
			UserID:      r.UserID,
			Subject:     r.Subject,
			Topic:       r.Topic,
			Location:    r.Location,
			Description: r.Description,
			IsActive:    r.IsActive,
			FullName:    r.FullName,
			Program:     r.Program,
			Year:        r.Year,
			CreatedAt:   r.CreatedAt,
		})
	}
	return out
}

// FromStudyRequests converts plain rows to responses
func FromStudyRequests(rows []*models.StudyRequest) []StudyRequestResponse {
	out := make([]StudyRequestResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, StudyRequestResponse{
			ID:          r.ID,
			UserID:      r.UserID,
			Subject:     r.Subject,
			Topic:       r.Topic,
			Location:    r.Location,
			Description: r.Description,
			IsActive:    r.IsActive,
			CreatedAt:   r.CreatedAt,
		})
	}
	return out
}
