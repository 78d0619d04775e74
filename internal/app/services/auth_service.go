package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/studybuddy/internal/app/models"
	"github.com/yigit/studybuddy/internal/app/models/dto"
	"github.com/yigit/studybuddy/internal/app/repositories"
	"github.com/yigit/studybuddy/internal/pkg/apperrors"
	"github.com/yigit/studybuddy/internal/pkg/auth"
	"github.com/yigit/studybuddy/internal/pkg/session"
)

// SessionGrant is what a successful login or registration hands back: the
// signed cookie value and the identity it stands for.
type SessionGrant struct {
	Token    string
	Identity auth.Identity
	User     *dto.UserResponse
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*SessionGrant, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*SessionGrant, error)
	Logout(ctx context.Context, identity auth.Identity) error
	Authenticate(ctx context.Context, token string) (auth.Identity, error)
}

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	userRepo     *repositories.UserRepository
	tokenService *auth.SessionTokenService
	sessions     session.Store
	logger       zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo *repositories.UserRepository,
	tokenService *auth.SessionTokenService,
	sessions session.Store,
	logger zerolog.Logger,
) AuthService {
	return &authServiceImpl{
		userRepo:     userRepo,
		tokenService: tokenService,
		sessions:     sessions,
		logger:       logger,
	}
}

// Register creates the account and opens a session for it
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*SessionGrant, error) {
	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Username:           strings.TrimSpace(req.Username),
		Email:              strings.TrimSpace(req.Email),
		Password:           hashedPassword,
		FullName:           strings.TrimSpace(req.FullName),
		RegistrationNumber: strings.TrimSpace(req.RegistrationNumber),
		Program:            req.Program,
		Year:               req.Year,
		PreferredLocation:  req.PreferredLocation,
		Subjects:           req.Subjects,
		StudyTopics:        req.StudyTopics,
	}

	if _, err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("username", user.Username).Msg("User registered")
	return s.openSession(ctx, user)
}

// Login checks the credentials and opens a session. An unknown username and
// a wrong password are reported the same way.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*SessionGrant, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.openSession(ctx, user)
}

// Logout drops the server-side session so the token can no longer be used
func (s *authServiceImpl) Logout(ctx context.Context, identity auth.Identity) error {
	if err := s.sessions.Delete(ctx, identity.SessionID); err != nil {
		s.logger.Error().Err(err).Str("sessionID", identity.SessionID).Msg("Failed to delete session")
		return apperrors.NewStorageError(err)
	}

	s.logger.Info().Int64("userID", identity.UserID).Msg("User logged out")
	return nil
}

// Authenticate resolves a cookie value into an identity. The token must
// verify and its session must still be live.
func (s *authServiceImpl) Authenticate(ctx context.Context, token string) (auth.Identity, error) {
	identity, err := s.tokenService.Parse(token)
	if err != nil {
		return auth.Identity{}, fmt.Errorf("%w: %w", apperrors.ErrUnauthorized, err)
	}

	userID, err := s.sessions.Lookup(ctx, identity.SessionID)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return auth.Identity{}, fmt.Errorf("%w: session revoked", apperrors.ErrUnauthorized)
		}
		s.logger.Error().Err(err).Msg("Session lookup failed")
		return auth.Identity{}, apperrors.NewStorageError(err)
	}

	if userID != identity.UserID {
		return auth.Identity{}, fmt.Errorf("%w: session owner mismatch", apperrors.ErrUnauthorized)
	}

	return identity, nil
}

func (s *authServiceImpl) openSession(ctx context.Context, user *models.User) (*SessionGrant, error) {
	token, identity, err := s.tokenService.Issue(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Create(ctx, identity.SessionID, user.ID, s.tokenService.TTL()); err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to store session")
		return nil, apperrors.NewStorageError(err)
	}

	return &SessionGrant{
		Token:    token,
		Identity: identity,
		User:     dto.FromUser(user),
	}, nil
}
