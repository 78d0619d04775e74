package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/studybuddy/internal/app/controllers"
	appMigrations "github.com/yigit/studybuddy/internal/app/migrations"
	appRepos "github.com/yigit/studybuddy/internal/app/repositories"
	appRoutes "github.com/yigit/studybuddy/internal/app/routes"
	appServices "github.com/yigit/studybuddy/internal/app/services"
	"github.com/yigit/studybuddy/internal/config"
	"github.com/yigit/studybuddy/internal/db"
	appMiddleware "github.com/yigit/studybuddy/internal/middleware"
	"github.com/yigit/studybuddy/internal/pkg/assistant"
	pkgAuth "github.com/yigit/studybuddy/internal/pkg/auth"
	"github.com/yigit/studybuddy/internal/pkg/filestorage"
	"github.com/yigit/studybuddy/internal/pkg/helpers"
	"github.com/yigit/studybuddy/internal/pkg/logger"
	"github.com/yigit/studybuddy/internal/pkg/session"
	"github.com/yigit/studybuddy/internal/pkg/validation"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService         appServices.AuthService
	UserService         appServices.UserService
	StudyRequestService appServices.StudyRequestService
	NoteService         appServices.NoteService
	TimetableService    appServices.TimetableService
	AssistantService    appServices.AssistantService
	DashboardService    appServices.DashboardService

	PageController         *appControllers.PageController
	AuthController         *appControllers.AuthController
	UserController         *appControllers.UserController
	StudyRequestController *appControllers.StudyRequestController
	NoteController         *appControllers.NoteController
	TimetableController    *appControllers.TimetableController
	ChatController         *appControllers.ChatController

	AuthMiddleware *appMiddleware.AuthMiddleware
	Repos          *appRepos.Repositories
	TokenService   *pkgAuth.SessionTokenService
	Sessions       session.Store
	FileStorage    *filestorage.LocalStorage
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads .env files and the configuration, then
// initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			logger.Debug().Msg("No .env file found, using process environment")
		}
	}

	configPath := config.GetEnv("CONFIG_PATH", "configs/config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.EqualFold(cfg.Logging.Format, "text"),
	})

	lgr := logger.WithFields(map[string]interface{}{
		"app":  cfg.Session.Issuer,
		"mode": cfg.Server.Mode,
	})
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.Database, error) {
	lgr.Info().Str("driver", cfg.Database.Driver).Msg("Establishing database connection...")
	database, err := db.Open(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := database.Ping(pingCtx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	migrator := appMigrations.NewMigrator(database.SQL, database.Driver, database.Placeholder(), lgr)
	if err := migrator.Migrate(ctx); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	return database, nil
}

// SetupSessionStore returns the configured session store
func SetupSessionStore(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (session.Store, error) {
	if cfg.Session.Store == config.SessionStoreRedis {
		store, err := session.NewRedisStore(ctx, cfg.Redis.URL)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to redis")
			return nil, err
		}
		lgr.Info().Msg("Using redis session store")
		return store, nil
	}

	lgr.Info().Msg("Using in-memory session store")
	return session.NewMemoryStore(), nil
}

// SetupAssistant returns the model client. Without an API key the assistant
// stays disabled and every question gets the fallback answer.
func SetupAssistant(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (assistant.Client, error) {
	if cfg.AI.APIKey == "" {
		lgr.Warn().Msg("GEMINI_API_KEY not set, study assistant disabled")
		return assistant.Unconfigured{}, nil
	}

	client, err := assistant.NewGeminiClient(ctx, assistant.GeminiConfig{
		APIKey:            cfg.AI.APIKey,
		Model:             cfg.AI.Model,
		SystemInstruction: cfg.AI.SystemInstruction,
	})
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to create assistant client")
		return nil, err
	}

	lgr.Info().Str("model", cfg.AI.Model).Msg("Study assistant configured")
	return client, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(
	cfg *config.Config,
	database *db.Database,
	sessions session.Store,
	assistantClient assistant.Client,
	lgr zerolog.Logger,
) (*Dependencies, error) {
	deps := &Dependencies{
		Sessions: sessions,
		Logger:   lgr,
	}

	if err := validation.RegisterBindingValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	deps.Repos = appRepos.NewRepositories(database)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.TokenService = pkgAuth.NewSessionTokenService(pkgAuth.SessionTokenConfig{
		SecretKey:   cfg.Session.Secret,
		TTL:         helpers.ParseDuration(cfg.Session.TTL, 744*time.Hour),
		TokenIssuer: cfg.Session.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.TokenService, sessions, lgr)
	deps.UserService = appServices.NewUserService(deps.Repos.UserRepository)
	deps.StudyRequestService = appServices.NewStudyRequestService(deps.Repos.StudyRequestRepository, lgr)
	deps.NoteService = appServices.NewNoteService(deps.Repos.NoteRepository, deps.FileStorage, lgr)
	deps.TimetableService = appServices.NewTimetableService(deps.Repos.TimetableRepository, lgr)
	deps.AssistantService = appServices.NewAssistantService(assistantClient, lgr)
	deps.DashboardService = appServices.NewDashboardService(
		deps.UserService,
		deps.StudyRequestService,
		deps.NoteService,
		deps.TimetableService,
	)

	cookie := appMiddleware.SessionCookie{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Session.SecureCookie,
	}
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.AuthService, cookie, lgr)

	deps.PageController = appControllers.NewPageController(deps.DashboardService)
	deps.AuthController = appControllers.NewAuthController(deps.AuthService, cookie, lgr)
	deps.UserController = appControllers.NewUserController(deps.UserService)
	deps.StudyRequestController = appControllers.NewStudyRequestController(deps.StudyRequestService, lgr)
	deps.NoteController = appControllers.NewNoteController(deps.NoteService, lgr)
	deps.TimetableController = appControllers.NewTimetableController(deps.TimetableService)
	deps.ChatController = appControllers.NewChatController(deps.AssistantService, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	switch {
	case cfg.IsProduction():
		gin.SetMode(gin.ReleaseMode)
	case strings.EqualFold(cfg.Server.Mode, "test"):
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	lgr.Info().Str("ginMode", gin.Mode()).Msg("Gin mode set")

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))
	router.Use(appMiddleware.BodyLimit(cfg.Server.MaxUploadBytes))
	router.MaxMultipartMemory = 8 << 20

	appRoutes.SetupRouter(router,
		deps.PageController,
		deps.AuthController,
		deps.UserController,
		deps.StudyRequestController,
		deps.NoteController,
		deps.TimetableController,
		deps.ChatController,
		deps.AuthMiddleware,
	)

	// Liveness endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
