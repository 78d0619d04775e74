package models

import "time"

// User is a registered student
type User struct {
	ID                 int64     `db:"id" json:"id"`
	Username           string    `db:"username" json:"username"`
	Email              string    `db:"email" json:"email"`
	Password           string    `db:"password" json:"-"`
	FullName           string    `db:"full_name" json:"fullName"`
	RegistrationNumber string    `db:"registration_number" json:"registrationNumber"`
	Program            string    `db:"program" json:"program"`
	Year               int       `db:"year" json:"year"`
	PreferredLocation  string    `db:"preferred_location" json:"preferredLocation"`
	Subjects           []string  `db:"subjects" json:"subjects"`
	StudyTopics        string    `db:"study_topics" json:"studyTopics"`
	CreatedAt          time.Time `db:"created_at" json:"createdAt"`
}
