package dto

import (
	"encoding/json"
	"time"
)

// SaveTimetableRequest is the body of POST /api/timetable. Schedule is kept
// as raw JSON and stored verbatim.
type SaveTimetableRequest struct {
	Schedule json.RawMessage `json:"schedule" binding:"required"`
}

// TimetableResponse returns the schedule as the JSON the client sent
type TimetableResponse struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"userId"`
	Schedule  json.RawMessage `json:"schedule"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
