package dto

import (
	"time"

	"github.com/yigit/studybuddy/internal/app/models"
)

// LoginRequest represents login credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest represents a student registration
type RegisterRequest struct {
	Username           string   `json:"username" binding:"required,notblank,max=64"`
	Email              string   `json:"email" binding:"required,email"`
	Password           string   `json:"password" binding:"required"`
	FullName           string   `json:"fullName" binding:"required,notblank"`
	RegistrationNumber string   `json:"registrationNumber" binding:"required,notblank,max=64"`
	Program            string   `json:"program" binding:"required,notblank"`
	Year               int      `json:"year" binding:"required,min=1,max=10"`
	PreferredLocation  string   `json:"preferredLocation"`
	Subjects           []string `json:"subjects"`
	StudyTopics        string   `json:"studyTopics"`
}

// UserResponse is a user's profile without credentials
type UserResponse struct {
	ID                 int64     `json:"id"`
	Username           string    `json:"username"`
	Email              string    `json:"email"`
	FullName           string    `json:"fullName"`
	RegistrationNumber string    `json:"registrationNumber"`
	Program            string    `json:"program"`
	Year               int       `json:"year"`
	PreferredLocation  string    `json:"preferredLocation"`
	Subjects           []string  `json:"subjects"`
	StudyTopics        string    `json:"studyTopics"`
	CreatedAt          time.Time `json:"createdAt"`
}

// FromUser converts a models.User to a UserResponse
func FromUser(u *models.User) *UserResponse {
	if u == nil {
		return nil
	}
	subjects := u.Subjects
	if subjects == nil {
		subjects = []string{}
	}
	return &UserResponse{
		ID:                 u.ID,
		Username:           u.Username,
		Email:              u.Email,
		FullName:           u.FullName,
		RegistrationNumber: u.RegistrationNumber,
		Program:            u.Program,
		Year:               u.Year,
		PreferredLocation:  u.PreferredLocation,
		Subjects:           subjects,
		StudyTopics:        u.StudyTopics,
		CreatedAt:          u.CreatedAt,
	}
}
