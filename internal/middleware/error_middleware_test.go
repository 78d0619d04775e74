package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/studybuddy/internal/app/models/dto"
	"github.com/yigit/studybuddy/internal/pkg/apperrors"
)

func TestHandleAPIError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		err     error
		status  int
		code    dto.ErrorCode
		message string
		field   string
	}{
		{
			name:    "conflict keeps message and field",
			err:     apperrors.NewCustomError(apperrors.ErrConflict, "Username or email already exists").WithField("email"),
			status:  http.StatusBadRequest,
			code:    dto.ErrorCodeResourceAlreadyExists,
			message: "Username or email already exists",
			field:   "email",
		},
		{
			name:    "invalid credentials",
			err:     apperrors.ErrInvalidCredentials,
			status:  http.StatusUnauthorized,
			code:    dto.ErrorCodeInvalidCredentials,
			message: "Invalid credentials",
		},
		{
			name:    "unauthorized",
			err:     apperrors.ErrUnauthorized,
			status:  http.StatusUnauthorized,
			code:    dto.ErrorCodeUnauthorized,
			message: MsgNotAuthenticated,
		},
		{
			name:    "entity not found",
			err:     apperrors.ErrNoteNotFound,
			status:  http.StatusNotFound,
			code:    dto.ErrorCodeResourceNotFound,
			message: "Note not found",
		},
		{
			name:    "empty upload",
			err:     apperrors.NewCustomError(apperrors.ErrFileEmpty, "No file selected").WithField("file"),
			status:  http.StatusBadRequest,
			code:    dto.ErrorCodeValidationFailed,
			message: "No file selected",
			field:   "file",
		},
		{
			name:    "too large",
			err:     apperrors.NewCustomError(apperrors.ErrPayloadTooLarge, "File too large"),
			status:  http.StatusRequestEntityTooLarge,
			code:    dto.ErrorCodePayloadTooLarge,
			message: "File too large",
		},
		{
			name:    "storage failure is masked",
			err:     apperrors.NewStorageError(errors.New("pq: connection refused")),
			status:  http.StatusInternalServerError,
			code:    dto.ErrorCodeDatabaseError,
			message: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleAPIError(c, tt.err)

			assert.Equal(t, tt.status, rec.Code)

			var body dto.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.message, body.Message)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
			assert.Equal(t, tt.field, body.Error.Field)
			assert.NotContains(t, rec.Body.String(), "connection refused")
		})
	}
}
