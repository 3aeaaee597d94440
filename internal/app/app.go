package app

import (
	"context"
	"icsq_backend/internal/config"
	"icsq_backend/internal/controller"
	"icsq_backend/internal/repository"
	"icsq_backend/internal/service"
	"icsq_backend/pkg/database"
	"icsq_backend/pkg/logger"
	"icsq_backend/pkg/monitoring"
	"icsq_backend/pkg/security"
	"icsq_backend/pkg/tracing"
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
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user        *repository.UserRepository
	department  *repository.DepartmentRepository
	category    *repository.CategoryRepository
	survey      *repository.SurveyRepository
	actionPlan  *repository.ActionPlanRepository
	sipoc       *repository.SipocRepository
	activityLog *repository.ActivityLogRepository
}

type services struct {
	activity    *service.ActivityService
	auth        *service.AuthService
	user        *service.UserService
	department  *service.DepartmentService
	category    *service.CategoryService
	storage     *service.StorageService
	score       *service.ScoreService
	expectation *service.ExpectationService
	ai          *service.AIService
	cluster     *service.ClusterService
	survey      *service.SurveyService
	actionPlan  *service.ActionPlanService
	sipoc       *service.SipocService
}

type controllers struct {
	auth       *controller.AuthController
	user       *controller.UserController
	department *controller.DepartmentController
	category   *controller.CategoryController
	survey     *controller.SurveyController
	analytics  *controller.AnalyticsController
	actionPlan *controller.ActionPlanController
	sipoc      *controller.SipocController
	activity   *controller.ActivityController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig 配置热加载入口，目前只下发AI网关配置。
func (a *App) ApplyConfig(cfg *config.Config) {
	if a.services != nil && a.services.ai != nil {
		a.services.ai.UpdateConfig(cfg.AI)
		logger.Log.Info("AI gateway config reloaded", zap.String("model", cfg.AI.Model))
	}
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		department:  repository.NewDepartmentRepository(db),
		category:    repository.NewCategoryRepository(db),
		survey:      repository.NewSurveyRepository(db),
		actionPlan:  repository.NewActionPlanRepository(db),
		sipoc:       repository.NewSipocRepository(db),
		activityLog: repository.NewActivityLogRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) (*services, error) {
	s := &services{}

	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}
	s.storage = storage

	s.activity = service.NewActivityService(repos.activityLog)
	s.auth = service.NewAuthService(repos.user, s.activity, cfg)
	s.user = service.NewUserService(repos.user, s.activity)
	s.department = service.NewDepartmentService(repos.department, s.activity)
	s.category = service.NewCategoryService(repos.category, s.activity)
	s.score = service.NewScoreService(repos.survey, repos.department, rdb, cfg)
	s.expectation = service.NewExpectationService(repos.survey, repos.department)
	s.ai = service.NewAIService(cfg.AI)
	s.cluster = service.NewClusterService(repos.survey, s.ai)
	s.survey = service.NewSurveyService(repos.survey, repos.department, s.score, s.activity)
	s.actionPlan = service.NewActionPlanService(repos.actionPlan, repos.user, s.activity)
	s.sipoc = service.NewSipocService(repos.sipoc, repos.department, s.storage, s.activity)

	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth, a.Config),
		user:       controller.NewUserController(s.user),
		department: controller.NewDepartmentController(s.department),
		category:   controller.NewCategoryController(s.category),
		survey:     controller.NewSurveyController(s.survey),
		analytics:  controller.NewAnalyticsController(s.score, s.expectation, s.cluster, s.ai),
		actionPlan: controller.NewActionPlanController(s.actionPlan),
		sipoc:      controller.NewSipocController(s.sipoc),
		activity:   controller.NewActivityController(s.activity),
		health:     controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 600
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	// release 模式默认不迁移，-migrate 或 -migrate-only 可强制
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
	services, err := app.initServices(repos, cfg, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("icsq-platform", cfg.Tracing.CollectorEndpoint); err != nil {
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

	logger.Log.Sync()
	log.Println("Server exiting")
}
