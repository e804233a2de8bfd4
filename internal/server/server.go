package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskboard/internal/config"
	"taskboard/internal/feed"
	"taskboard/internal/handler"
	"taskboard/internal/middleware"
	"taskboard/internal/repository"
	"taskboard/internal/service"
	"taskboard/migrations"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
	Config *config.Config
	Log    *logrus.Logger
}

func Init(cfg *config.Config) (*Server, error) {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup GORM
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	log.Info("✅ Connected to database")

	if err := runMigrations(cfg); err != nil {
		return nil, fmt.Errorf("❌ migrations failed: %w", err)
	}
	log.Info("✅ Migrations applied")

	// Redis backs the live feeds
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	hub := feed.NewHub(rdb, log)

	// Setup Gin
	r := gin.Default()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	shareRepo := repository.NewShareRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Initialize services
	collabSvc := service.NewCollabService(boardRepo, shareRepo, notificationRepo, userRepo, hub, log)
	notificationSvc := service.NewNotificationService(notificationRepo, shareRepo, hub, log)
	taskSvc := service.NewTaskService(taskRepo, boardRepo, userRepo, notificationSvc, hub, log)
	settingsSvc := service.NewSettingsService(settingsRepo)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userRepo, cfg.JWTSecret)
	boardHandler := handler.NewBoardHandler(collabSvc)
	shareHandler := handler.NewShareHandler(collabSvc)
	notificationHandler := handler.NewNotificationHandler(notificationSvc)
	taskHandler := handler.NewTaskHandler(taskSvc, collabSvc)
	settingsHandler := handler.NewSettingsHandler(settingsSvc)
	feedHandler := handler.NewFeedHandler(hub, collabSvc, taskSvc, taskSvc, notificationSvc)

	// Public routes
	r.POST("/register", userHandler.Register)
	r.POST("/login", userHandler.Login)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		authorized.GET("/me", userHandler.Me)

		// Board routes
		authorized.POST("/boards", boardHandler.Create)
		authorized.GET("/boards", boardHandler.GetAll)
		authorized.POST("/boards/selection", boardHandler.Selection)
		authorized.PUT("/boards/:id", boardHandler.Update)
		authorized.DELETE("/boards/:id", boardHandler.Delete)

		// Sharing routes
		authorized.POST("/boards/:id/share", shareHandler.Share)
		authorized.GET("/boards/:id/collaborators", shareHandler.Collaborators)
		authorized.DELETE("/boards/:id/collaborators/:user_id", shareHandler.RemoveCollaborator)
		authorized.PUT("/boards/:id/collaborators/:user_id", shareHandler.ChangeRole)
		authorized.GET("/shared-boards", shareHandler.SharedBoards)

		// Task routes
		authorized.POST("/boards/:id/tasks", taskHandler.Create)
		authorized.GET("/boards/:id/tasks", taskHandler.List)
		authorized.PUT("/tasks/:id", taskHandler.Update)
		authorized.POST("/tasks/:id/move", taskHandler.Move)
		authorized.POST("/tasks/:id/assign", taskHandler.Assign)
		authorized.DELETE("/tasks/:id", taskHandler.Delete)
		authorized.POST("/tasks/:id/archive", taskHandler.Archive)
		authorized.POST("/tasks/:id/restore", taskHandler.Restore)

		// Notification routes
		authorized.GET("/notifications", notificationHandler.List)
		authorized.POST("/notifications/:id/accept", notificationHandler.Accept)
		authorized.POST("/notifications/:id/reject", notificationHandler.Reject)
		authorized.POST("/notifications/:id/read", notificationHandler.MarkRead)
		authorized.POST("/notifications/read-all", notificationHandler.MarkAllRead)
		authorized.DELETE("/notifications/:id", notificationHandler.Delete)

		// Settings routes
		authorized.GET("/settings/filters", settingsHandler.Get)
		authorized.PUT("/settings/filters", settingsHandler.Put)

		// Live feed routes (SSE)
		authorized.GET("/feed/boards", feedHandler.OwnBoards)
		authorized.GET("/feed/shared-boards", feedHandler.SharedBoards)
		authorized.GET("/feed/boards/:id/tasks", feedHandler.Tasks)
		authorized.GET("/feed/notifications", feedHandler.Notifications)
	}

	return &Server{
		Engine: r,
		DB:     db,
		Redis:  rdb,
		Config: cfg,
		Log:    log,
	}, nil
}

func runMigrations(cfg *config.Config) error {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return err
	}
	url := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName,
	)
	m, err := migrate.NewWithSourceInstance("iofs", src, url)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		s.Log.Infof("🚀 Server running on port %s", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.Log.Fatalf("❌ Failed to listen: %s", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	s.Log.Info("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		s.Log.Fatalf("❌ Server forced to shutdown: %s", err)
	}
	if err := s.Redis.Close(); err != nil {
		s.Log.Warnf("⚠️  Redis close: %s", err)
	}

	s.Log.Info("✅ Server exited properly")
}
