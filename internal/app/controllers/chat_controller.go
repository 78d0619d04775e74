package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/studybuddy/internal/app/models/dto"
	"github.com/yigit/studybuddy/internal/app/services"
	"github.com/yigit/studybuddy/internal/middleware"
)

// ChatController proxies questions to the study assistant
type ChatController struct {
	assistantService services.AssistantService
	logger           zerolog.Logger
}

// NewChatController creates a new ChatController
func NewChatController(assistantService services.AssistantService, logger zerolog.Logger) *ChatController {
	return &ChatController{
		assistantService: assistantService,
		logger:           logger,
	}
}

// Ask forwards a question to the assistant. It always answers 200; when the
// assistant is unavailable the answer is a fixed apology.
// @Summary Ask the study assistant
// @Tags chat
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "Question"
// @Success 200 {object} dto.ChatResponse
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Router /ai-chat [post]
func (c *ChatController) Ask(ctx *gin.Context) {
	identity, _ := middleware.IdentityFrom(ctx)

	var req dto.ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Int64("userID", identity.UserID).Msg("Unreadable chat request, answering with fallback")
	}

	answer := c.assistantService.Ask(ctx.Request.Context(), identity.UserID, req.Question)
	ctx.JSON(http.StatusOK, dto.ChatResponse{
		Success: true,
		Answer:  answer,
	})
}
