package models

import "time"

// Timetable holds a user's schedule as an opaque JSON document
type Timetable struct {
	ID           int64     `db:"id" json:"id"`
	UserID       int64     `db:"user_id" json:"userId"`
	ScheduleData string    `db:"schedule_data" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}
