// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/studybuddy/internal/app/models/dto"
	"github.com/yigit/studybuddy/internal/app/services"
	"github.com/yigit/studybuddy/internal/middleware"
)

// AuthController handles authentication related operations
type AuthController struct {
	authService services.AuthService
	cookie      middleware.SessionCookie
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, cookie middleware.SessionCookie, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		cookie:      cookie,
		logger:      logger,
	}
}

// Register handles student registration
// @Summary Register a new student
// @Description Creates an account and starts a session for it
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Student registration information"
// @Success 200 {object} dto.StructuredResponse{data=dto.UserResponse} "Registration successful"
// @Failure 400 {object} dto.ErrorResponse "Validation failed or username/email already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if !middleware.BindJSON(ctx, &req) {
		c.logger.Warn().Msg("Invalid registration request payload")
		return
	}

	grant, err := c.authService.Register(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("username", req.Username).Msg("Failed to register user")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.cookie.Set(ctx, grant.Token)
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(grant.User, "Registration successful"))
}

// Login handles user login
// @Summary User login
// @Description Checks the credentials and starts a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.StructuredResponse{data=dto.UserResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req) {
		c.logger.Warn().Msg("Invalid login request payload")
		return
	}

	grant, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("username", req.Username).Msg("Login failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("username", req.Username).Msg("User logged in successfully")

	c.cookie.Set(ctx, grant.Token)
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(grant.User, "Login successful"))
}

// Logout ends the caller's session
// @Summary Log out
// @Tags auth
// @Produce json
// @Success 200 {object} dto.StructuredResponse "Logged out"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Router /logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	identity, _ := middleware.IdentityFrom(ctx)

	if err := c.authService.Logout(ctx.Request.Context(), identity); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.cookie.Clear(ctx)
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Logged out"))
}
