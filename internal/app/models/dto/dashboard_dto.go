package dto

// DashboardResponse aggregates everything the dashboard page shows
type DashboardResponse struct {
	User          *UserResponse          `json:"user"`
	StudyRequests []StudyRequestResponse `json:"studyRequests"`
	Notes         []NoteResponse         `json:"notes"`
	Timetable     *TimetableResponse     `json:"timetable"`
}
