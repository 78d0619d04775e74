package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studybuddy/internal/app/models/dto"
	"github.com/yigit/studybuddy/internal/app/services"
	"github.com/yigit/studybuddy/internal/middleware"
)

// UserController handles user-related operations
type UserController struct {
	userService services.UserService
}

// NewUserController creates a new user controller
func NewUserController(userService services.UserService) *UserController {
	return &UserController{userService: userService}
}

// GetProfile returns the caller's own profile
// @Summary Get current user's profile
// @Tags users
// @Produce json
// @Success 200 {object} dto.StructuredResponse{data=dto.UserResponse}
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Router /me [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	identity, _ := middleware.IdentityFrom(ctx)

	profile, err := c.userService.GetProfile(ctx.Request.Context(), identity.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(profile, ""))
}
