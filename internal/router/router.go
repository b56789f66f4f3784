package router

import (
	"github.com/anonto42/folio/backend/internal/auth"
	"github.com/anonto42/folio/backend/internal/handlers"
	"github.com/anonto42/folio/backend/internal/middleware"
	"github.com/anonto42/folio/backend/internal/repositories"
	"github.com/anonto42/folio/backend/internal/services"
	"github.com/anonto42/folio/backend/internal/validators"
	"github.com/anonto42/folio/backend/pkg/storage"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// Deps are the collaborators the routes are built from. Uploader,
// Notifier, Identity and Ping may be nil.
type Deps struct {
	Store    *repositories.Store
	Tokens   *auth.TokenService
	Uploader storage.Uploader
	Notifier services.MessageNotifier
	Identity services.IdentityVerifier
	Ping     handlers.Pinger

	// ImageDir is served under /images when set.
	ImageDir string
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Deps) {
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = handlers.ErrorHandler

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck(deps.Ping))
	if deps.ImageDir != "" {
		e.Static("/images", deps.ImageDir)
		log.Info().Str("dir", deps.ImageDir).Msg("Serving uploaded images.")
	}

	// --- Initialize Services ---
	gate := middleware.NewGate(deps.Tokens, deps.Store.Users)
	userService := services.NewUserService(deps.Store.Users, deps.Tokens, deps.Identity)
	blogService := services.NewBlogService(deps.Store, deps.Uploader)
	commentService := services.NewCommentService(deps.Store)
	likeService := services.NewLikeService(deps.Store)
	messageService := services.NewMessageService(deps.Store.Messages, deps.Notifier)

	authHandler := handlers.NewAuthHandler(userService, gate)
	authHandler.RegisterAuthRoutes(e.Group("/api/auth"))
	log.Info().Bool("firebase", userService.FirebaseEnabled()).Msg("Auth routes configured.")

	dashboardHandler := handlers.NewDashboardHandler(blogService, commentService, messageService, userService, gate)
	dashboardHandler.RegisterDashboardRoutes(e.Group("/api/dashboard"))
	log.Info().Msg("Dashboard routes configured.")

	portfolioHandler := handlers.NewPortfolioHandler(blogService, commentService, likeService, messageService, gate)
	portfolioHandler.RegisterPortfolioRoutes(e.Group("/api/portfolio"))
	log.Info().Msg("Portfolio routes configured.")

	log.Info().Int("routes", len(e.Routes())).Msg("All routes configured.")
}
