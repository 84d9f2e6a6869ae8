package api

import (
	"net/http"

	authDelivery "melodica-backend/internal/auth/delivery"
	authrepo "melodica-backend/internal/auth/repository"
	authUsecase "melodica-backend/internal/auth/usecase"
	lessonDelivery "melodica-backend/internal/lesson/delivery"
	lessonUsecase "melodica-backend/internal/lesson/usecase"
	syncDelivery "melodica-backend/internal/sync/delivery"
	syncUsecasePkg "melodica-backend/internal/sync/usecase"
	"melodica-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	r *gin.Engine,
	authUc authUsecase.AuthUsecase,
	lessonUc lessonUsecase.LessonUsecase,
	syncUc syncUsecasePkg.SyncUsecase,
	reviewQueue *syncUsecasePkg.ReviewQueue,
	fcmRepo authrepo.FCMTokenRepository,
	cfg *config.Config,
) {
	authHandler := authDelivery.NewAuthHandler(authUc, fcmRepo)
	lessonHandler := lessonDelivery.NewLessonHandler(lessonUc)
	syncHandler := syncDelivery.NewSyncHandler(syncUc, reviewQueue, cfg)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/google", authHandler.GoogleSignIn)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", authDelivery.AuthMiddleware(authUc), authHandler.Me)
			auth.POST("/calendar", authDelivery.AuthMiddleware(authUc), authHandler.ConnectCalendar)
		}

		// FCM routes (protected)
		fcm := api.Group("/fcm")
		fcm.Use(authDelivery.AuthMiddleware(authUc))
		{
			fcm.POST("/register", authHandler.RegisterFCMToken)
			fcm.DELETE("/:token", authHandler.UnregisterFCMToken)
		}

		// Lesson routes (protected)
		lessons := api.Group("/lessons")
		lessons.Use(authDelivery.AuthMiddleware(authUc))
		{
			lessons.GET("", lessonHandler.ListLessons)
			lessons.POST("", lessonHandler.CreateLesson)
			lessons.GET("/:id", lessonHandler.GetLesson)
			lessons.PUT("/:id", lessonHandler.UpdateLesson)
			lessons.POST("/:id/cancel", lessonHandler.CancelLesson)
		}

		// Students rollup (protected)
		api.GET("/students", authDelivery.AuthMiddleware(authUc), lessonHandler.ListStudents)

		// Sync routes (protected)
		sync := api.Group("/sync")
		sync.Use(authDelivery.AuthMiddleware(authUc))
		{
			sync.POST("/calendar", syncHandler.SyncCalendar)
			sync.POST("/reconcile", syncHandler.ReconcileCalendar)
			sync.GET("/conflicts", syncHandler.ListConflicts)
			sync.POST("/conflicts/:id/resolve", syncHandler.ResolveConflict)
		}
	}
}
