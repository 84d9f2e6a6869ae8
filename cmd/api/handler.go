package api

import (
	authrepo "melodica-backend/internal/auth/repository"
	authUsecase "melodica-backend/internal/auth/usecase"
	lessonUsecase "melodica-backend/internal/lesson/usecase"
	syncUsecasePkg "melodica-backend/internal/sync/usecase"
	"melodica-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authUsecase   authUsecase.AuthUsecase
	lessonUsecase lessonUsecase.LessonUsecase
	syncUsecase   syncUsecasePkg.SyncUsecase
	reviewQueue   *syncUsecasePkg.ReviewQueue
	fcmRepo       authrepo.FCMTokenRepository
	config        *config.Config
}

func NewHandler(
	authUc authUsecase.AuthUsecase,
	lessonUc lessonUsecase.LessonUsecase,
	syncUc syncUsecasePkg.SyncUsecase,
	reviewQueue *syncUsecasePkg.ReviewQueue,
	fcmRepo authrepo.FCMTokenRepository,
	cfg *config.Config,
) *Handler {
	return &Handler{
		authUsecase:   authUc,
		lessonUsecase: lessonUc,
		syncUsecase:   syncUc,
		reviewQueue:   reviewQueue,
		fcmRepo:       fcmRepo,
		config:        cfg,
	}
}

func (h *Handler) Start(addr string) error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.authUsecase, h.lessonUsecase, h.syncUsecase, h.reviewQueue, h.fcmRepo, h.config)

	return r.Run(addr)
}
