package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/studybuddy/internal/app/models/dto"
	"github.com/yigit/studybuddy/internal/app/repositories"
	"github.com/yigit/studybuddy/internal/pkg/apperrors"
)

// TimetableService defines the interface for timetable operations
type TimetableService interface {
	Save(ctx context.Context, userID int64, schedule json.RawMessage) error
	Get(ctx context.Context, userID int64) (*dto.TimetableResponse, error)
}

type timetableServiceImpl struct {
	timetableRepo *repositories.TimetableRepository
	logger        zerolog.Logger
}

// NewTimetableService creates a new TimetableService
func NewTimetableService(timetableRepo *repositories.TimetableRepository, logger zerolog.Logger) TimetableService {
	return &timetableServiceImpl{
		timetableRepo: timetableRepo,
		logger:        logger,
	}
}

// Save replaces the user's schedule, creating it on first save. The document
// is stored compacted but otherwise untouched.
func (s *timetableServiceImpl) Save(ctx context.Context, userID int64, schedule json.RawMessage) error {
	var compact bytes.Buffer
	if err := json.Compact(&compact, schedule); err != nil {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, "schedule must be valid JSON").WithField("schedule")
	}

	if err := s.timetableRepo.Upsert(ctx, userID, compact.String()); err != nil {
		return err
	}

	s.logger.Info().Int64("userID", userID).Int("bytes", compact.Len()).Msg("Timetable saved")
	return nil
}

// Get returns the user's schedule or apperrors.ErrTimetableNotFound
func (s *timetableServiceImpl) Get(ctx context.Context, userID int64) (*dto.TimetableResponse, error) {
	timetable, err := s.timetableRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !json.Valid([]byte(timetable.ScheduleData)) {
		return nil, fmt.Errorf("stored timetable %d is not valid JSON", timetable.ID)
	}

	return &dto.TimetableResponse{
		ID:        timetable.ID,
		UserID:    timetable.UserID,
		Schedule:  json.RawMessage(timetable.ScheduleData),
		CreatedAt: timetable.CreatedAt,
		UpdatedAt: timetable.UpdatedAt,
	}, nil
}
