package app

import (
	"context"
	"especialidades_backend/internal/config"
	"especialidades_backend/internal/controller"
	"especialidades_backend/internal/repository"
	"especialidades_backend/internal/service"
	"especialidades_backend/pkg/database"
	"especialidades_backend/pkg/logger"
	"especialidades_backend/pkg/monitoring"
	"especialidades_backend/pkg/security"
	"especialidades_backend/pkg/tracing"
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
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user        *repository.UserRepository
	answer      *repository.AnswerRepository
	exam        *repository.ExamRepository
	achievement *repository.AchievementRepository
	xpHistory   *repository.XPHistoryRepository
	doc         *repository.DocRepository
	actionLog   *repository.ActionLogRepository
}

type services struct {
	auth         *service.AuthService
	bank         *service.QuestionBankService
	practice     *service.PracticeService
	exam         *service.ExamService
	gamification *service.GamificationService
	progress     *service.ProgressService
	ai           *service.AIService
	chat         *service.ChatService
	storage      *service.StorageService
	admin        *service.AdminService
}

type controllers struct {
	auth         *controller.AuthController
	bank         *controller.BankController
	practice     *controller.PracticeController
	exam         *controller.ExamController
	gamification *controller.GamificationController
	progress     *controller.ProgressController
	chat         *controller.ChatController
	admin        *controller.AdminController
	health       *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		answer:      repository.NewAnswerRepository(db),
		exam:        repository.NewExamRepository(db),
		achievement: repository.NewAchievementRepository(db),
		xpHistory:   repository.NewXPHistoryRepository(db),
		doc:         repository.NewDocRepository(db),
		actionLog:   repository.NewActionLogRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.bank = service.NewQuestionBankService(cfg.Bank)
	s.gamification = service.NewGamificationService(db, rdb, repos.user, repos.achievement, repos.xpHistory)
	s.practice = service.NewPracticeService(db, repos.answer, s.bank, s.gamification)
	s.exam = service.NewExamService(db, repos.exam, repos.answer, s.bank, s.gamification)
	s.progress = service.NewProgressService(repos.answer, repos.exam, s.bank)
	s.ai = service.NewAIService(cfg.AI)
	s.chat = service.NewChatService(repos.doc, s.ai)
	s.admin = service.NewAdminService(s.bank, repos.actionLog)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		bank:         controller.NewBankController(s.bank),
		practice:     controller.NewPracticeController(s.practice, s.gamification),
		exam:         controller.NewExamController(s.exam, s.gamification),
		gamification: controller.NewGamificationController(s.gamification),
		progress:     controller.NewProgressController(s.progress),
		chat:         controller.NewChatController(s.chat),
		admin:        controller.NewAdminController(s.admin, s.chat, s.storage),
		health:       controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
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

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	// Redis is optional; the leaderboard cache degrades to direct queries.
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, caching disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("especialidades", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	logger.Log.Sync()
	log.Println("Server exiting")
}
