package services

import (
	"context"
	"errors"

	"github.com/yigit/studybuddy/internal/app/models/dto"
	"github.com/yigit/studybuddy/internal/pkg/apperrors"
)

// DashboardService defines the interface for the dashboard aggregate
type DashboardService interface {
	Build(ctx context.Context, userID int64) (*dto.DashboardResponse, error)
}

type dashboardServiceImpl struct {
	users         UserService
	studyRequests StudyRequestService
	notes         NoteService
	timetables    TimetableService
}

// NewDashboardService creates a new DashboardService from the services it aggregates
func NewDashboardService(users UserService, studyRequests StudyRequestService, notes NoteService, timetables TimetableService) DashboardService {
	return &dashboardServiceImpl{
		users:         users,
		studyRequests: studyRequests,
		notes:         notes,
		timetables:    timetables,
	}
}

// Build collects the viewer's profile, open requests from other students,
// all notes and the viewer's timetable (nil when none was saved).
func (s *dashboardServiceImpl) Build(ctx context.Context, userID int64) (*dto.DashboardResponse, error) {
	user, err := s.users.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	requests, err := s.studyRequests.ListOpen(ctx, userID)
	if err != nil {
		return nil, err
	}

	notes, err := s.notes.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	timetable, err := s.timetables.Get(ctx, userID)
	if err != nil && !errors.Is(err, apperrors.ErrTimetableNotFound) {
		return nil, err
	}

	return &dto.DashboardResponse{
		User:          user,
		StudyRequests: requests,
		Notes:         notes,
		Timetable:     timetable,
	}, nil
}
