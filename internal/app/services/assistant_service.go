package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/studybuddy/internal/app/models/dto"
	"github.com/yigit/studybuddy/internal/pkg/assistant"
)

// FallbackAnswer is returned whenever the model cannot be reached or says nothing
const FallbackAnswer = "I am experiencing technical difficulties. Please try again later."

// AssistantService defines the interface for the study assistant
type AssistantService interface {
	// Ask never fails: upstream errors are logged and replaced with FallbackAnswer.
	Ask(ctx context.Context, userID int64, question string) string
}

type assistantServiceImpl struct {
	client assistant.Client
	logger zerolog.Logger
}

// NewAssistantService creates a new AssistantService
func NewAssistantService(client assistant.Client, logger zerolog.Logger) AssistantService {
	if client == nil {
		client = assistant.Unconfigured{}
	}
	return &assistantServiceImpl{
		client: client,
		logger: logger,
	}
}

func (s *assistantServiceImpl) Ask(ctx context.Context, userID int64, question string) string {
	question = strings.TrimSpace(question)
	if question == "" {
		s.logger.Warn().Int64("userID", userID).Msg("Empty question sent to assistant")
		return FallbackAnswer
	}

	answer, err := s.client.Ask(ctx, question)
	if err != nil {
		s.logger.Error().Err(err).
			Str("code", string(dto.ErrorCodeExternalServiceError)).
			Int64("userID", userID).
			Msg("Assistant request failed")
		return FallbackAnswer
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		s.logger.Error().
			Str("code", string(dto.ErrorCodeExternalServiceError)).
			Int64("userID", userID).
			Msg("Assistant returned an empty answer")
		return FallbackAnswer
	}
	return answer
}
