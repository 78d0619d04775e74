package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/studybuddy/internal/app/controllers"
	"github.com/yigit/studybuddy/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	pageController *controllers.PageController,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	studyRequestController *controllers.StudyRequestController,
	noteController *controllers.NoteController,
	timetableController *controllers.TimetableController,
	chatController *controllers.ChatController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// --- Browser pages ---
	router.GET("/", authMiddleware.OptionalAuth(), pageController.Index)
	router.GET("/register", pageController.Register)
	router.GET("/dashboard", authMiddleware.RequirePageAuth(), pageController.Dashboard)

	api := router.Group("/api")

	// --- Public auth routes ---
	api.POST("/register", authController.Register)
	api.POST("/login", authController.Login)

	// --- Authenticated routes ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.RequireAuth())
	{
		authenticated.POST("/logout", authController.Logout)
		authenticated.GET("/me", userController.GetProfile)

		authenticated.POST("/study-request", studyRequestController.Create)
		authenticated.GET("/study-requests", studyRequestController.ListOpen)
		authenticated.GET("/study-requests/mine", studyRequestController.ListMine)

		authenticated.POST("/upload-note", noteController.Upload)
		authenticated.GET("/notes", noteController.List)
		authenticated.GET("/notes/:id", noteController.GetByID)

		authenticated.POST("/timetable", timetableController.Save)
		authenticated.GET("/timetable", timetableController.Get)

		authenticated.POST("/ai-chat", chatController.Ask)
	}
}
