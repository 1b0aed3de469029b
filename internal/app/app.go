package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medexam_backend/internal/config"
	"medexam_backend/internal/controller"
	"medexam_backend/internal/repository"
	"medexam_backend/internal/service"
	"medexam_backend/pkg/database"
	"medexam_backend/pkg/logger"
	"medexam_backend/pkg/monitoring"
	"medexam_backend/pkg/security"
	"medexam_backend/pkg/tracing"

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

	bgCancel       context.CancelFunc
	tracerShutdown func(context.Context) error
}

type repositories struct {
	user         *repository.UserRepository
	question     *repository.QuestionRepository
	session      *repository.ExamSessionRepository
	answer       *repository.ExamAnswerRepository
	quizProgress *repository.QuizProgressRepository
	notification *repository.NotificationRepository
	ranking      *repository.RankingRepository
}

type services struct {
	auth         *service.AuthService
	user         *service.UserService
	storage      *service.StorageService
	exam         *service.ExamService
	result       *service.ResultService
	quiz         *service.QuizService
	notification *service.NotificationService
	ranking      *service.RankingService
	tutor        *service.TutorService
}

type controllers struct {
	auth         *controller.AuthController
	user         *controller.UserController
	exam         *controller.ExamController
	quiz         *controller.QuizController
	question     *controller.QuestionController
	notification *controller.NotificationController
	ranking      *controller.RankingController
	tutor        *controller.TutorController
	health       *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		question:     repository.NewQuestionRepository(db),
		session:      repository.NewExamSessionRepository(db),
		answer:       repository.NewExamAnswerRepository(db),
		quizProgress: repository.NewQuizProgressRepository(db),
		notification: repository.NewNotificationRepository(db),
		ranking:      repository.NewRankingRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) (*services, error) {
	s := &services{}

	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}
	s.storage = storage

	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.ranking = service.NewRankingService(repos.ranking, rdb, cfg.Exam.RankingRetryMax)
	s.exam = service.NewExamService(repos.session, repos.answer, repos.question, s.ranking, repos.user, cfg.Exam)
	s.result = service.NewResultService(repos.session, repos.answer, repos.question)
	s.quiz = service.NewQuizService(repos.question, repos.quizProgress, repos.session, repos.answer)
	s.notification = service.NewNotificationService(repos.notification, rdb)
	s.tutor = service.NewTutorService(cfg.Tutor)

	return s, nil
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth, s.user),
		user:         controller.NewUserController(s.user, s.storage),
		exam:         controller.NewExamController(s.exam, s.result),
		quiz:         controller.NewQuizController(s.quiz),
		question:     controller.NewQuestionController(repos.question),
		notification: controller.NewNotificationController(s.notification),
		ranking:      controller.NewRankingController(s.ranking),
		tutor:        controller.NewTutorController(s.tutor),
		health:       controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(
		cfg.RateLimit.MaxRequests,
		time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute,
	))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startBackgroundTasks runs the ranking sync worker and the stale session
// reaper until the app shuts down.
func (a *App) startBackgroundTasks(ctx context.Context, s *services, cfg *config.Config) {
	go s.ranking.Run(ctx)

	go func() {
		interval := time.Duration(cfg.Exam.ReaperIntervalMinutes) * time.Minute
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.exam.ReapStale(); err != nil {
					logger.Log.Error("stale session reaper failed", zap.Error(err))
				}
			}
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	migrate := cfg.Server.Mode != "release" || cfg.ForceMigrate
	db, err := database.InitDB(&cfg.Database, migrate)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	app.services = services
	controllers := app.initControllers(services, repos, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("medexam-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracerShutdown = tp.Shutdown
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	ctx, cancel := context.WithCancel(context.Background())
	app.bgCancel = cancel
	app.startBackgroundTasks(ctx, services, cfg)

	return app
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

	if a.bgCancel != nil {
		a.bgCancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracerShutdown != nil {
		if err := a.tracerShutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	_ = logger.Log.Sync()
	log.Println("Server exiting")
}
