package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/codelab-edu/codelab-api/api/swagger"
	"github.com/codelab-edu/codelab-api/internal/ai"
	"github.com/codelab-edu/codelab-api/internal/handler"
	"github.com/codelab-edu/codelab-api/internal/middleware"
	"github.com/codelab-edu/codelab-api/internal/models"
	"github.com/codelab-edu/codelab-api/internal/repository"
	"github.com/codelab-edu/codelab-api/internal/runner"
	"github.com/codelab-edu/codelab-api/internal/service"
	"github.com/codelab-edu/codelab-api/pkg/cache"
	"github.com/codelab-edu/codelab-api/pkg/config"
	"github.com/codelab-edu/codelab-api/pkg/database"
	"github.com/codelab-edu/codelab-api/pkg/logger"
	corsmiddleware "github.com/codelab-edu/codelab-api/pkg/middleware/cors"
	reqidmiddleware "github.com/codelab-edu/codelab-api/pkg/middleware/requestid"
)

// @title CodeLab API
// @version 0.1.0
// @description Coding-assignment platform backend
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	metrics := service.NewMetricsService()

	// Redis is optional: when unreachable, analytics fall back to
	// uncached reads.
	var cacheService *service.CacheService
	if cfg.Analytics.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, analytics cache disabled", "error", err)
		} else {
			defer redisClient.Close()
			cacheRepo := repository.NewCacheRepository(redisClient)
			cacheService = service.NewCacheService(cacheRepo, metrics, cfg.Analytics.CacheTTL, logr, true)
		}
	}

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	generator := ai.New(cfg.LLM.Generator)
	grader := ai.New(cfg.LLM.Grader)
	runnerClient := runner.New(cfg.Runner)
	googleVerifier := service.NewGoogleTokenVerifier(cfg.Google.ClientID)

	authService := service.NewAuthService(userRepo, googleVerifier, nil, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	courseService := service.NewCourseService(courseRepo, nil, logr)
	assignmentService := service.NewAssignmentService(assignmentRepo, courseRepo, nil, logr)
	dashboardService := service.NewDashboardService(courseRepo, assignmentRepo, logr)
	questionService := service.NewQuestionService(questionRepo, assignmentRepo, generator, nil, logr)
	codeService := service.NewCodeService(runnerClient, grader, generator, metrics, nil, logr)
	progressService := service.NewProgressService(progressRepo, nil, logr)
	analyticsService := service.NewAnalyticsService(analyticsRepo, userRepo, cacheService, nil, logr)

	authHandler := handler.NewAuthHandler(authService)
	courseHandler := handler.NewCourseHandler(courseService)
	assignmentHandler := handler.NewAssignmentHandler(assignmentService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	questionHandler := handler.NewQuestionHandler(questionService)
	codeHandler := handler.NewCodeHandler(codeService)
	progressHandler := handler.NewProgressHandler(progressService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	metricsHandler := handler.NewMetricsHandler(metrics)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	authRequired := middleware.JWT(authService)
	teacherOnly := middleware.RequireUserType(models.UserTypeTeacher)
	studentOnly := middleware.RequireUserType(models.UserTypeStudent)

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/auth/google-login", authHandler.GoogleLogin)

		api.POST("/courses/create", authRequired, teacherOnly, courseHandler.Create)
		api.POST("/courses/join", authRequired, studentOnly, courseHandler.Join)
		api.GET("/courses", authRequired, courseHandler.List)

		api.POST("/assignments/create", authRequired, teacherOnly, assignmentHandler.Create)
		api.GET("/assignments/:courseID", authRequired, assignmentHandler.ListByCourse)

		api.GET("/teacher-dashboard", authRequired, teacherOnly, dashboardHandler.Teacher)
		api.GET("/student-dashboard", authRequired, studentOnly, dashboardHandler.Student)

		api.POST("/get-parent-question", authRequired, studentOnly, questionHandler.ParentQuestions)
		api.POST("/get-followup-question", authRequired, studentOnly, questionHandler.FollowupQuestion)
		api.POST("/submit-progress", authRequired, studentOnly, progressHandler.Submit)
	}

	// The editor and analytics routes predate the /api prefix and keep
	// their historical paths.
	r.POST("/run_code", authRequired, codeHandler.Run)
	r.POST("/check", authRequired, codeHandler.Check)
	r.POST("/master-ques", authRequired, codeHandler.GenerateQuestions)
	r.POST("/follow-ques", authRequired, codeHandler.Followup)
	r.POST("/hints", authRequired, codeHandler.Hints)

	r.POST("/class-analytics", authRequired, teacherOnly, analyticsHandler.ClassAnalytics)
	r.GET("/class-analytics/:assignmentID/export", authRequired, teacherOnly, analyticsHandler.ExportClassReport)
	r.POST("/student-analytics", authRequired, teacherOnly, analyticsHandler.StudentAnalytics)
	r.GET("/student-names", authRequired, teacherOnly, analyticsHandler.StudentNames)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
