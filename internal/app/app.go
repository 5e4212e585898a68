package app

import (
	"context"
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

	"text2learn_backend/internal/config"
	"text2learn_backend/internal/controller"
	"text2learn_backend/internal/repository"
	"text2learn_backend/internal/service"
	"text2learn_backend/pkg/database"
	"text2learn_backend/pkg/logger"
	"text2learn_backend/pkg/monitoring"
	"text2learn_backend/pkg/security"
	"text2learn_backend/pkg/tracing"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user   *repository.UserRepository
	course *repository.CourseRepository
	lesson *repository.LessonRepository
}

type services struct {
	orchestrator *service.AIOrchestrator
	generation   *service.GenerationService
	storage      *service.StorageService
	email        *service.EmailService
	auth         *service.AuthService
	course       *service.CourseService
	lesson       *service.LessonService
	export       *service.ExportService
	youtube      *service.YouTubeService
}

type controllers struct {
	auth    *controller.AuthController
	course  *controller.CourseController
	lesson  *controller.LessonController
	utility *controller.UtilityController
	health  *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ReloadConfig 配置热更新入口，由 configwatcher 触发
func (a *App) ReloadConfig(cfg *config.Config) {
	a.Config = cfg
	a.services.orchestrator.Reload(cfg)
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
	logger.Log.Info("配置已热更新")
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:   repository.NewUserRepository(db),
		course: repository.NewCourseRepository(db),
		lesson: repository.NewLessonRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.orchestrator = service.NewAIOrchestrator(cfg)
	s.generation = service.NewGenerationService(s.orchestrator)
	s.storage = service.NewStorageService(cfg)
	s.email = service.NewEmailService(cfg.Email)
	s.auth = service.NewAuthService(repos.user, s.email, rdb, cfg.JWT)
	s.course = service.NewCourseService(repos.course, repos.lesson, s.generation, rdb)
	s.lesson = service.NewLessonService(repos.lesson, repos.course, s.generation, rdb)
	s.export = service.NewExportService(repos.lesson, s.storage)
	s.youtube = service.NewYouTubeService(cfg.YouTube)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:    controller.NewAuthController(s.auth),
		course:  controller.NewCourseController(s.course),
		lesson:  controller.NewLessonController(s.lesson, s.export),
		utility: controller.NewUtilityController(s.youtube, s.generation),
		health:  controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	windowMinutes := cfg.RateLimit.WindowMinutes
	if windowMinutes <= 0 {
		windowMinutes = 1
	}
	router.Use(security.RateLimiter(maxRequests, time.Duration(windowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// verifyProviders 启动时探测 Gemini 可用性，只记录日志不阻塞启动
func (a *App) verifyProviders(cfg *config.Config) {
	if cfg.AI.Gemini.APIKey == "" {
		logger.Log.Warn("Gemini API key 未配置，将直接使用后备提供商")
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		models, err := service.NewGeminiProvider(cfg.AI.Gemini).ListModels(ctx)
		if err != nil {
			logger.Log.Warn("Gemini 可用性探测失败", zap.Error(err))
			return
		}
		logger.Log.Info("Gemini 可用性探测成功", zap.Int("models", len(models)))
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.ForceMigrate || cfg.Server.Mode != "release" {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
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
	svcs := app.initServices(repos, cfg, rdb)
	app.services = svcs
	ctrls := app.initControllers(svcs, db, rdb)

	// 监控初始化
	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("text2learn", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, ctrls, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/exports", cfg.Storage.LocalPath)
	}

	app.verifyProviders(cfg)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
