package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/studybuddy/internal/app/models/dto"
	"github.com/yigit/studybuddy/internal/app/services"
	"github.com/yigit/studybuddy/internal/middleware"
	"github.com/yigit/studybuddy/internal/pkg/apperrors"
	"github.com/yigit/studybuddy/internal/pkg/helpers"
)

// NoteController handles note uploads and listings
type NoteController struct {
	noteService services.NoteService
	logger      zerolog.Logger
}

// NewNoteController creates a new NoteController
func NewNoteController(noteService services.NoteService, logger zerolog.Logger) *NoteController {
	return &NoteController{
		noteService: noteService,
		logger:      logger,
	}
}

// Upload stores a note file with its metadata
// @Summary Upload a note
// @Tags notes
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Note file"
// @Param title formData string true "Title"
// @Param subject formData string true "Subject"
// @Param description formData string false "Description"
// @Success 200 {object} dto.StructuredResponse{data=dto.NoteResponse} "Note uploaded successfully"
// @Failure 400 {object} dto.ErrorResponse "No file provided, no file selected or invalid file name"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Failure 413 {object} dto.ErrorResponse "File too large"
// @Router /upload-note [post]
func (c *NoteController) Upload(ctx *gin.Context) {
	identity, _ := middleware.IdentityFrom(ctx)

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			middleware.HandleAPIError(ctx, apperrors.NewCustomError(apperrors.ErrPayloadTooLarge, services.MsgFileTooLarge))
			return
		}
		c.logger.Warn().Err(err).Int64("userID", identity.UserID).Msg("Upload without file part")
		middleware.HandleAPIError(ctx, apperrors.NewCustomError(apperrors.ErrFileMissing, services.MsgNoFileProvided).WithField("file"))
		return
	}

	if fileHeader.Filename == "" || fileHeader.Size == 0 {
		middleware.HandleAPIError(ctx, apperrors.NewCustomError(apperrors.ErrFileEmpty, services.MsgNoFileSelected).WithField("file"))
		return
	}

	var req dto.UploadNoteRequest
	if !middleware.BindForm(ctx, &req) {
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		middleware.HandleAPIError(ctx, apperrors.NewStorageError(err))
		return
	}
	defer file.Close()

	note, err := c.noteService.Upload(ctx.Request.Context(), identity.UserID, &services.NoteUpload{
		Title:       req.Title,
		Subject:     req.Subject,
		Description: req.Description,
		Filename:    fileHeader.Filename,
		Content:     file,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(note, "Note uploaded successfully"))
}

// List returns one page of notes
// @Summary List notes
// @Tags notes
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param pageSize query int false "Items per page"
// @Success 200 {object} dto.StructuredResponse{data=dto.PageResponse}
// @Router /notes [get]
func (c *NoteController) List(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	notes, err := c.noteService.List(ctx.Request.Context(), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(notes, ""))
}

// GetByID returns one note
// @Summary Get a note
// @Tags notes
// @Produce json
// @Param id path int true "Note ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.NoteResponse}
// @Failure 404 {object} dto.ErrorResponse "Note not found"
// @Router /notes/{id} [get]
func (c *NoteController) GetByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		middleware.HandleAPIError(ctx, apperrors.NewCustomError(apperrors.ErrValidationFailed, "Invalid note ID").WithField("id"))
		return
	}

	note, err := c.noteService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(note, ""))
}
