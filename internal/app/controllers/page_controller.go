package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studybuddy/internal/app/models/dto"
	"github.com/yigit/studybuddy/internal/app/services"
	"github.com/yigit/studybuddy/internal/middleware"
)

// PageController serves the browser entry points. Each one answers with a
// descriptor naming the page to render.
type PageController struct {
	dashboardService services.DashboardService
}

// NewPageController creates a new PageController
func NewPageController(dashboardService services.DashboardService) *PageController {
	return &PageController{dashboardService: dashboardService}
}

// Index sends signed-in users to the dashboard and everyone else to login
func (c *PageController) Index(ctx *gin.Context) {
	if _, ok := middleware.IdentityFrom(ctx); ok {
		ctx.Redirect(http.StatusFound, "/dashboard")
		return
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.PageDescriptor{Page: "login"}, ""))
}

// Register describes the registration page
func (c *PageController) Register(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.PageDescriptor{Page: "register"}, ""))
}

// Dashboard returns everything the dashboard shows for the caller
func (c *PageController) Dashboard(ctx *gin.Context) {
	identity, _ := middleware.IdentityFrom(ctx)

	dashboard, err := c.dashboardService.Build(ctx.Request.Context(), identity.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dashboard, ""))
}
