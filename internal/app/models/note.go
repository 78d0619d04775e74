package models

import "time"

// Note is an uploaded study resource. Filename is the sanitized original
// name; FilePath is where the bytes live in the upload directory.
type Note struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Subject     string    `db:"subject" json:"subject"`
	Description string    `db:"description" json:"description"`
	Filename    string    `db:"filename" json:"filename"`
	FilePath    string    `db:"file_path" json:"filePath"`
	UploadedBy  int64     `db:"uploaded_by" json:"uploadedBy"`
	Downloads   int       `db:"downloads" json:"downloads"`
	Likes       int       `db:"likes" json:"likes"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// NoteDetails is a note joined with the uploader's name.
type NoteDetails struct {
	Note
	UploaderName string `db:"uploader_name" json:"uploaderName"`
}
