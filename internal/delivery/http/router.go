package http

import (
	"net/http"

	"github.com/gdugdh24/faithmatch-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/faithmatch-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/faithmatch-backend/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type Router struct {
	authHandler         *handler.AuthHandler
	profileHandler      *handler.ProfileHandler
	mediaHandler        *handler.MediaHandler
	discoverHandler     *handler.DiscoverHandler
	swipeHandler        *handler.SwipeHandler
	matchHandler        *handler.MatchHandler
	notificationHandler *handler.NotificationHandler
	authMiddleware      *middleware.AuthMiddleware
	mediaDir            string
	logger              *zap.Logger
}

func NewRouter(
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	mediaHandler *handler.MediaHandler,
	discoverHandler *handler.DiscoverHandler,
	swipeHandler *handler.SwipeHandler,
	matchHandler *handler.MatchHandler,
	notificationHandler *handler.NotificationHandler,
	authMiddleware *middleware.AuthMiddleware,
	mediaDir string,
	logger *zap.Logger,
) *Router {
	return &Router{
		authHandler:         authHandler,
		profileHandler:      profileHandler,
		mediaHandler:        mediaHandler,
		discoverHandler:     discoverHandler,
		swipeHandler:        swipeHandler,
		matchHandler:        matchHandler,
		notificationHandler: notificationHandler,
		authMiddleware:      authMiddleware,
		mediaDir:            mediaDir,
		logger:              logger,
	}
}

func (r *Router) Setup() (*gin.Engine, error) {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := domain.RegisterValidators(v); err != nil {
			return nil, err
		}
	}

	router := gin.New()
	router.Use(middleware.RequestLogger(r.logger), middleware.Recovery(r.logger))

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	if r.mediaDir != "" {
		router.Static("/media", r.mediaDir)
	}

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/google", r.authHandler.GoogleAuth)
			auth.POST("/logout", r.authMiddleware.RequireAuth(), r.authHandler.Logout)
			auth.GET("/me", r.authMiddleware.RequireAuth(), r.authHandler.Me)
		}

		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			profile := protected.Group("/profile")
			{
				profile.GET("/me", r.profileHandler.GetMyProfile)
				profile.PUT("/me", r.profileHandler.UpdateMyProfile)
				profile.POST("/complete-onboarding", r.profileHandler.CompleteOnboarding)
				profile.POST("/generate-bio", r.profileHandler.GenerateBio)
				profile.GET("/:user_id", r.profileHandler.GetProfileByUserID)
			}

			protected.POST("/media/photos", r.mediaHandler.UploadPhotos)
			protected.GET("/discover", r.discoverHandler.Discover)

			swipe := protected.Group("/swipe")
			{
				swipe.GET("/likes-received", r.swipeHandler.GetLikesReceived)
				swipe.POST("/:user_id/like", r.swipeHandler.Like)
				swipe.POST("/:user_id/pass", r.swipeHandler.Pass)
			}

			matches := protected.Group("/matches")
			{
				matches.GET("", r.matchHandler.ListMatches)
				matches.DELETE("/:id", r.matchHandler.Unmatch)
			}

			notifications := protected.Group("/notifications")
			{
				notifications.GET("", r.notificationHandler.List)
				notifications.POST("/:id/read", r.notificationHandler.MarkRead)
			}
		}
	}

	return router, nil
}
