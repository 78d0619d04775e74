package dto

import (
	"time"

	"github.com/yigit/studybuddy/internal/app/models"
)

// UploadNoteRequest holds the form fields sent alongside the file
type UploadNoteRequest struct {
	Title       string `form:"title" binding:"required,notblank"`
	Subject     string `form:"subject" binding:"required,notblank"`
	Description string `form:"description"`
}

// NoteResponse is a note with its uploader's name
type NoteResponse struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Subject      string    `json:"subject"`
	Description  string    `json:"description"`
	Filename     string    `json:"filename"`
	FilePath     string    `json:"filePath"`
	UploadedBy   int64     `json:"uploadedBy"`
	UploaderName string    `json:"uploaderName"`
	Downloads    int       `json:"downloads"`
	Likes        int       `json:"likes"`
	CreatedAt    time.Time `json:"createdAt"`
}

// FromNoteDetails converts a joined note row to a response
func FromNoteDetails(n *models.NoteDetails) NoteResponse {
	return NoteResponse{
		ID:           n.ID,
		Title:        n.Title,
		Subject:      n.Subject,
		Description:  n.Description,
		Filename:     n.Filename,
		FilePath:     n.FilePath,
		UploadedBy:   n.UploadedBy,
		UploaderName: n.UploaderName,
		Downloads:    n.Downloads,
		Likes:        n.Likes,
		CreatedAt:    n.CreatedAt,
	}
}

// FromNoteDetailsList converts joined note rows to responses
func FromNoteDetailsList(rows []*models.NoteDetails) []NoteResponse {
	out := make([]NoteResponse, 0, len(rows))
	for _, n := range rows {
		out = append(out, FromNoteDetails(n))
	}
	return out
}
