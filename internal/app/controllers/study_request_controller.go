package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/studybuddy/internal/app/models/dto"
	"github.com/yigit/studybuddy/internal/app/services"
	"github.com/yigit/studybuddy/internal/middleware"
)

// StudyRequestController handles study partner requests
type StudyRequestController struct {
	studyRequestService services.StudyRequestService
	logger              zerolog.Logger
}

// NewStudyRequestController creates a new StudyRequestController
func NewStudyRequestController(studyRequestService services.StudyRequestService, logger zerolog.Logger) *StudyRequestController {
	return &StudyRequestController{
		studyRequestService: studyRequestService,
		logger:              logger,
	}
}

// Create posts a study request for the caller
// @Summary Create a study request
// @Tags study-requests
// @Accept json
// @Produce json
// @Param request body dto.CreateStudyRequestRequest true "Study request"
// @Success 200 {object} dto.StructuredResponse "Study request created"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Router /study-request [post]
func (c *StudyRequestController) Create(ctx *gin.Context) {
	identity, _ := middleware.IdentityFrom(ctx)

	var req dto.CreateStudyRequestRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	id, err := c.studyRequestService.Create(ctx.Request.Context(), identity.UserID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(gin.H{"id": id}, "Study request created"))
}

// ListOpen returns active requests from other students
// @Summary List open study requests
// @Tags study-requests
// @Produce json
// @Success 200 {object} dto.StructuredResponse{data=[]dto.StudyRequestResponse}
// @Router /study-requests [get]
func (c *StudyRequestController) ListOpen(ctx *gin.Context) {
	identity, _ := middleware.IdentityFrom(ctx)

	requests, err := c.studyRequestService.ListOpen(ctx.Request.Context(), identity.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(requests, ""))
}

// ListMine returns the caller's own requests
// @Summary List my study requests
// @Tags study-requests
// @Produce json
// @Success 200 {object} dto.StructuredResponse{data=[]dto.StudyRequestResponse}
// @Router /study-requests/mine [get]
func (c *StudyRequestController) ListMine(ctx *gin.Context) {
	identity, _ := middleware.IdentityFrom(ctx)

	requests, err := c.studyRequestService.ListMine(ctx.Request.Context(), identity.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(requests, ""))
}
