package models

import "time"

// StudyRequest is a posted intent to find a study partner
type StudyRequest struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"userId"`
	Subject     string    `db:"subject" json:"subject"`
	Topic       string    `db:"topic" json:"topic"`
	Location    string    `db:"location" json:"location"`
	Description string    `db:"description" json:"description"`
	IsActive    bool      `db:"is_active" json:"isActive"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// StudyRequestDetails is a study request joined with its owner's public profile.
type StudyRequestDetails struct {
	StudyRequest
	FullName string `db:"full_name" json:"fullName"`
	Program  string `db:"program" json:"program"`
	Year     int    `db:"year" json:"year"`
}
