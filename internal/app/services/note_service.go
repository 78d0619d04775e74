package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/studybuddy/internal/app/models"
	"github.com/yigit/studybuddy/internal/app/models/dto"
	"github.com/yigit/studybuddy/internal/app/repositories"
	"github.com/yigit/studybuddy/internal/pkg/apperrors"
	"github.com/yigit/studybuddy/internal/pkg/filestorage"
)

// User-facing upload messages
const (
	MsgNoFileProvided  = "No file provided"
	MsgNoFileSelected  = "No file selected"
	MsgInvalidFilename = "Invalid file name"
	MsgFileTooLarge    = "File too large"
)

// NoteUpload is one uploaded file with its form fields
type NoteUpload struct {
	Title       string
	Subject     string
	Description string
	Filename    string
	Content     io.Reader
}

// NoteService defines the interface for note operations
type NoteService interface {
	Upload(ctx context.Context, userID int64, upload *NoteUpload) (*dto.NoteResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.NoteResponse, error)
	List(ctx context.Context, page, size int) (*dto.PageResponse, error)
	ListAll(ctx context.Context) ([]dto.NoteResponse, error)
}

type noteServiceImpl struct {
	noteRepo *repositories.NoteRepository
	storage  filestorage.FileStorage
	logger   zerolog.Logger
}

// NewNoteService creates a new NoteService
func NewNoteService(noteRepo *repositories.NoteRepository, storage filestorage.FileStorage, logger zerolog.Logger) NoteService {
	return &noteServiceImpl{
		noteRepo: noteRepo,
		storage:  storage,
		logger:   logger,
	}
}

// Upload stores the file and records it. The bytes are staged first, the row
// is inserted next and the file is moved into place last; every failure
// undoes the steps already taken, so a row never points at a missing file.
func (s *noteServiceImpl) Upload(ctx context.Context, userID int64, upload *NoteUpload) (*dto.NoteResponse, error) {
	if upload.Content == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrFileMissing, MsgNoFileProvided).WithField("file")
	}
	if strings.TrimSpace(upload.Filename) == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrFileEmpty, MsgNoFileSelected).WithField("file")
	}

	sanitized := filestorage.SanitizeFilename(upload.Filename)
	if sanitized == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidFilename, MsgInvalidFilename).WithField("file")
	}

	storedName, err := s.storage.StoredName(sanitized)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidFilename, MsgInvalidFilename).WithField("file")
	}

	staged, err := s.storage.Stage(upload.Content)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, apperrors.NewCustomError(apperrors.ErrPayloadTooLarge, MsgFileTooLarge)
		}
		return nil, apperrors.NewStorageError(err)
	}

	if staged.Size == 0 {
		s.storage.Discard(staged)
		return nil, apperrors.NewCustomError(apperrors.ErrFileEmpty, MsgNoFileSelected).WithField("file")
	}

	note := &models.Note{
		Title:       strings.TrimSpace(upload.Title),
		Subject:     strings.TrimSpace(upload.Subject),
		Description: upload.Description,
		Filename:    sanitized,
		FilePath:    s.storage.PathFor(storedName),
		UploadedBy:  userID,
	}

	noteID, err := s.noteRepo.Create(ctx, note)
	if err != nil {
		s.storage.Discard(staged)
		return nil, err
	}

	if _, err := s.storage.Commit(staged, storedName); err != nil {
		// context.Background: the request context may already be the reason we failed
		if delErr := s.noteRepo.Delete(context.Background(), noteID); delErr != nil {
			s.logger.Error().Err(delErr).Int64("noteID", noteID).Msg("Failed to remove note row after file commit failure")
		}
		s.storage.Discard(staged)

		if errors.Is(err, filestorage.ErrPathExists) {
			return nil, apperrors.NewConflictError("A file with this name already exists")
		}
		s.logger.Error().Err(err).Str("path", note.FilePath).Msg("Failed to commit uploaded file")
		return nil, apperrors.NewStorageError(err)
	}

	s.logger.Info().
		Int64("noteID", noteID).
		Int64("userID", userID).
		Str("filename", sanitized).
		Int64("size", staged.Size).
		Msg("Note uploaded")

	return s.GetByID(ctx, noteID)
}

// GetByID returns one note with its uploader's name
func (s *noteServiceImpl) GetByID(ctx context.Context, id int64) (*dto.NoteResponse, error) {
	note, err := s.noteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := dto.FromNoteDetails(note)
	return &response, nil
}

// List returns one page of notes, newest first
func (s *noteServiceImpl) List(ctx context.Context, page, size int) (*dto.PageResponse, error) {
	notes, pagination, err := s.noteRepo.List(ctx, page, size)
	if err != nil {
		return nil, err
	}
	return &dto.PageResponse{
		Items:      dto.FromNoteDetailsList(notes),
		Pagination: pagination,
	}, nil
}

// ListAll returns every note, newest first
func (s *noteServiceImpl) ListAll(ctx context.Context) ([]dto.NoteResponse, error) {
	notes, err := s.noteRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return dto.FromNoteDetailsList(notes), nil
}
