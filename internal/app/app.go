package app

import (
	"context"
	"cosmic_quiz_backend/internal/config"
	"cosmic_quiz_backend/internal/controller"
	"cosmic_quiz_backend/internal/repository"
	"cosmic_quiz_backend/internal/service"
	"cosmic_quiz_backend/pkg/database"
	"cosmic_quiz_backend/pkg/logger"
	"cosmic_quiz_backend/pkg/monitoring"
	"cosmic_quiz_backend/pkg/security"
	"cosmic_quiz_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services
}

type repositories struct {
	user     *repository.UserRepository
	category *repository.CategoryRepository
	question *repository.QuestionRepository
	answer   *repository.AnswerRepository
	badge    *repository.BadgeRepository
}

type services struct {
	storage    *service.StorageService
	badge      *service.BadgeService
	category   *service.CategoryService
	user       *service.UserService
	answer     *service.AnswerService
	question   *service.QuestionService
	moderation *service.ModerationService
	quiz       *service.QuizService
	hub        *service.LeaderboardHub
}

type controllers struct {
	answer        *controller.AnswerController
	question      *controller.QuestionController
	moderation    *controller.ModerationController
	quiz          *controller.QuizController
	user          *controller.UserController
	catalog       *controller.CatalogController
	leaderboardWS *controller.LeaderboardWSController
	health        *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		category: repository.NewCategoryRepository(db),
		question: repository.NewQuestionRepository(db),
		answer:   repository.NewAnswerRepository(db),
		badge:    repository.NewBadgeRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.badge = service.NewBadgeService(repos.badge)
	s.category = service.NewCategoryService(repos.category)
	s.user = service.NewUserService(repos.user, repos.answer, repos.question, s.badge, rdb, cfg.Quiz.LeaderboardCacheTTL)
	s.answer = service.NewAnswerService(repos.question, repos.answer, repos.user, s.badge)
	s.question = service.NewQuestionService(repos.question, repos.user, s.user)
	s.moderation = service.NewModerationService(repos.question)
	s.quiz = service.NewQuizService(s.user, repos.question, repos.answer, s.answer, rdb, cfg.Quiz.SessionTTL)
	s.hub = service.NewLeaderboardHub(s.user)

	// Cache invalidation must run before the hub broadcast so every websocket
	// push reads a fresh top list.
	s.answer.AddPointsListener(s.user)
	s.answer.AddPointsListener(s.hub)
	s.question.AddPointsListener(s.user)
	s.question.AddPointsListener(s.hub)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		answer:        controller.NewAnswerController(s.answer),
		question:      controller.NewQuestionController(s.question),
		moderation:    controller.NewModerationController(s.moderation),
		quiz:          controller.NewQuizController(s.quiz),
		user:          controller.NewUserController(s.user, s.hub),
		catalog:       controller.NewCatalogController(s.category, s.badge, s.storage),
		leaderboardWS: controller.NewLeaderboardWSController(s.hub),
		health:        controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests == 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window == 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	// Release deployments migrate only when asked to from the command line.
	migrate := cfg.Server.Mode != "release" || cfg.ForceMigrate
	db, err := database.InitDB(&cfg.Database, migrate)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	gin.SetMode(ginMode(cfg.Server.Mode))
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("cosmic-quiz", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func ginMode(mode string) string {
	switch mode {
	case "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if a.services != nil && a.services.hub != nil {
		a.services.hub.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
