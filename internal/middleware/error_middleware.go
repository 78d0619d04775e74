package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studybuddy/internal/app/models/dto"
	"github.com/yigit/studybuddy/internal/pkg/apperrors"
	"github.com/yigit/studybuddy/internal/pkg/logger"
)

var notFoundMessages = map[error]string{
	apperrors.ErrUserNotFound:      "User not found",
	apperrors.ErrNoteNotFound:      "Note not found",
	apperrors.ErrTimetableNotFound: "Timetable not found",
}

// HandleAPIError maps a service or repository error to its HTTP response.
// Storage failures are logged here and never shown to the client.
func HandleAPIError(c *gin.Context, err error) {
	var customErr *apperrors.CustomError
	hasCustom := errors.As(err, &customErr)

	message := func(fallback string) string {
		if hasCustom && customErr.Message != "" {
			return customErr.Message
		}
		return fallback
	}

	var (
		status int
		detail *dto.ErrorDetail
	)

	switch {
	case errors.Is(err, apperrors.ErrPayloadTooLarge):
		status = http.StatusRequestEntityTooLarge
		detail = dto.NewErrorDetail(dto.ErrorCodePayloadTooLarge, "File too large")

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		detail = dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials")

	case errors.Is(err, apperrors.ErrUnauthorized):
		status = http.StatusUnauthorized
		detail = dto.NewErrorDetail(dto.ErrorCodeUnauthorized, MsgNotAuthenticated)

	case errors.Is(err, apperrors.ErrConflict):
		status = http.StatusBadRequest
		detail = dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, message("Resource already exists"))

	case apperrors.Is(err, apperrors.ErrUserNotFound, apperrors.ErrNoteNotFound, apperrors.ErrTimetableNotFound):
		status = http.StatusNotFound
		fallback := "Resource not found"
		for sentinel, text := range notFoundMessages {
			if errors.Is(err, sentinel) {
				fallback = text
				break
			}
		}
		detail = dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, message(fallback))

	case apperrors.Is(err, apperrors.ErrValidationFailed,
		apperrors.ErrFileMissing, apperrors.ErrFileEmpty, apperrors.ErrInvalidFilename):
		status = http.StatusBadRequest
		detail = dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message("Validation failed"))

	default:
		event := logger.Error().Err(err).Str("method", c.Request.Method).Str("path", c.Request.URL.Path)
		if hasCustom && customErr.Cause() != nil {
			event = event.AnErr("cause", customErr.Cause())
		}
		event.Msg("Unhandled error")
		status = http.StatusInternalServerError
		detail = dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "Internal server error")
	}

	if hasCustom && customErr.Field != "" && status != http.StatusInternalServerError {
		detail = detail.WithField(customErr.Field)
	}

	c.JSON(status, dto.NewErrorResponse(detail))
}
