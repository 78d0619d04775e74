package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/studybuddy/internal/app/models"
	"github.com/yigit/studybuddy/internal/app/models/dto"
	"github.com/yigit/studybuddy/internal/app/repositories"
)

// StudyRequestService defines the interface for study request operations
type StudyRequestService interface {
	Create(ctx context.Context, userID int64, req *dto.CreateStudyRequestRequest) (int64, error)
	ListOpen(ctx context.Context, viewerID int64) ([]dto.StudyRequestResponse, error)
	ListMine(ctx context.Context, userID int64) ([]dto.StudyRequestResponse, error)
}

type studyRequestServiceImpl struct {
	studyRequestRepo *repositories.StudyRequestRepository
	logger           zerolog.Logger
}

// NewStudyRequestService creates a new StudyRequestService
func NewStudyRequestService(studyRequestRepo *repositories.StudyRequestRepository, logger zerolog.Logger) StudyRequestService {
	return &studyRequestServiceImpl{
		studyRequestRepo: studyRequestRepo,
		logger:           logger,
	}
}

// Create posts a new, active study request owned by userID
func (s *studyRequestServiceImpl) Create(ctx context.Context, userID int64, req *dto.CreateStudyRequestRequest) (int64, error) {
	request := &models.StudyRequest{
		UserID:      userID,
		Subject:     strings.TrimSpace(req.Subject),
		Topic:       strings.TrimSpace(req.Topic),
		Location:    strings.TrimSpace(req.Location),
		Description: req.Description,
		IsActive:    true,
	}

	id, err := s.studyRequestRepo.Create(ctx, request)
	if err != nil {
		return 0, err
	}

	s.logger.Info().Int64("studyRequestID", id).Int64("userID", userID).Str("subject", request.Subject).Msg("Study request created")
	return id, nil
}

// ListOpen returns active requests posted by anyone but the viewer, newest first
func (s *studyRequestServiceImpl) ListOpen(ctx context.Context, viewerID int64) ([]dto.StudyRequestResponse, error) {
	rows, err := s.studyRequestRepo.ListActiveExcludingUser(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	return dto.FromStudyRequestDetails(rows), nil
}

// ListMine returns every request the user has posted
func (s *studyRequestServiceImpl) ListMine(ctx context.Context, userID int64) ([]dto.StudyRequestResponse, error) {
	rows, err := s.studyRequestRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.FromStudyRequests(rows), nil
}
