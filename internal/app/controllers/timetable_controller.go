package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studybuddy/internal/app/models/dto"
	"github.com/yigit/studybuddy/internal/app/services"
	"github.com/yigit/studybuddy/internal/middleware"
)

// TimetableController handles the caller's timetable
type TimetableController struct {
	timetableService services.TimetableService
}

// NewTimetableController creates a new TimetableController
func NewTimetableController(timetableService services.TimetableService) *TimetableController {
	return &TimetableController{timetableService: timetableService}
}

// Save stores the caller's schedule, replacing any previous one
// @Summary Save timetable
// @Tags timetable
// @Accept json
// @Produce json
// @Param request body dto.SaveTimetableRequest true "Schedule"
// @Success 200 {object} dto.StructuredResponse "Timetable saved"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Router /timetable [post]
func (c *TimetableController) Save(ctx *gin.Context) {
	identity, _ := middleware.IdentityFrom(ctx)

	var req dto.SaveTimetableRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.timetableService.Save(ctx.Request.Context(), identity.UserID, req.Schedule); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Timetable saved"))
}

// Get returns the caller's schedule
// @Summary Get timetable
// @Tags timetable
// @Produce json
// @Success 200 {object} dto.StructuredResponse{data=dto.TimetableResponse}
// @Failure 404 {object} dto.ErrorResponse "Timetable not found"
// @Router /timetable [get]
func (c *TimetableController) Get(ctx *gin.Context) {
	identity, _ := middleware.IdentityFrom(ctx)

	timetable, err := c.timetableService.Get(ctx.Request.Context(), identity.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(timetable, ""))
}
