package main

import (
	"log"

	api "melodica-backend/cmd/api"
	authdomain "melodica-backend/internal/auth/domain"
	authRepo "melodica-backend/internal/auth/repository"
	authUsecase "melodica-backend/internal/auth/usecase"
	lessondomain "melodica-backend/internal/lesson/domain"
	lessonRepo "melodica-backend/internal/lesson/repository"
	lessonUsecase "melodica-backend/internal/lesson/usecase"
	"melodica-backend/internal/notification"
	"melodica-backend/internal/sync/scheduler"
	syncUsecase "melodica-backend/internal/sync/usecase"
	"melodica-backend/pkg/config"
	"melodica-backend/pkg/database"
	"melodica-backend/pkg/fcm"
	"melodica-backend/pkg/googlecal"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&authdomain.User{}, &authdomain.RefreshToken{}, &authdomain.FCMToken{}, &lessondomain.Lesson{}, &lessondomain.SyncConflict{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	userRepository := authRepo.NewUserRepository(db)
	fcmTokenRepository := authRepo.NewFCMTokenRepository(db)
	lessonRepository := lessonRepo.NewLessonRepository(db)
	conflictRepository := lessonRepo.NewSyncConflictRepository(db)

	// Initialize Google Calendar provider
	calendarService := googlecal.NewService(cfg.GoogleClientID, cfg.GoogleClientSecret)

	// Initialize FCM client (optional, sync works without it)
	var fcmClient *fcm.Client
	if cfg.FirebaseCredentials != "" {
		fcmClient, err = fcm.NewClient(cfg.FirebaseCredentials)
		if err != nil {
			log.Printf("[WARN] Failed to initialize FCM client (push notifications disabled): %v", err)
		}
	}
	conflictNotifier := notification.NewConflictNotifier(fcmTokenRepository, fcmClient)

	// Initialize use cases
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepository, cfg)
	lessonUsecaseInstance := lessonUsecase.NewLessonUsecase(lessonRepository)

	classifier := syncUsecase.NewEventClassifier(nil)
	applier := syncUsecase.NewResolutionApplier(lessonRepository, conflictRepository, conflictNotifier)
	resolverCfg := syncUsecase.ResolverConfig{
		ManualReviewEnabled:   cfg.ManualReviewEnabled,
		SimultaneousThreshold: cfg.SimultaneousThreshold,
	}
	syncUsecaseInstance := syncUsecase.NewSyncUsecase(
		userRepository, lessonRepository, conflictRepository,
		calendarService, authUsecaseInstance, classifier, applier,
		resolverCfg, cfg.GoogleCalendarID,
	)
	reviewQueue := syncUsecase.NewReviewQueue(conflictRepository, lessonRepository, cfg.ConflictTTL)

	// Start background sync + decay sweep
	syncScheduler := scheduler.NewCalendarSyncScheduler(
		syncUsecaseInstance, reviewQueue, userRepository,
		cfg.SyncInterval, cfg.DecaySweepInterval, cfg.SyncWindowPast, cfg.SyncWindowFuture,
	)
	syncScheduler.Start()
	defer syncScheduler.Stop()

	// Initialize HTTP handler
	handler := api.NewHandler(authUsecaseInstance, lessonUsecaseInstance, syncUsecaseInstance, reviewQueue, fcmTokenRepository, cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
