package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/campuskit/campus-api/internal/handler"
	"github.com/campuskit/campus-api/internal/middleware"
	"github.com/campuskit/campus-api/internal/repository"
	"github.com/campuskit/campus-api/internal/seed"
	"github.com/campuskit/campus-api/internal/service"
	"github.com/campuskit/campus-api/pkg/cache"
	"github.com/campuskit/campus-api/pkg/config"
	"github.com/campuskit/campus-api/pkg/logger"
	corsmiddleware "github.com/campuskit/campus-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campuskit/campus-api/pkg/middleware/requestid"
)

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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	store := repository.NewStore()
	if cfg.Seed.Enabled {
		if err := seed.Load(context.Background(), store, logr); err != nil {
			logr.Sugar().Fatalw("seed failed", "error", err)
		}
	}

	metricsSvc := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if cfg.Redis.Enabled {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		} else {
			repo := repository.NewCacheRepository(client, logr)
			defer repo.Close() //nolint:errcheck
			cacheRepo = repo
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, cacheRepo != nil)

	validate := validator.New()

	authSvc := service.NewAuthService(store.Users, store.Tokens, validate, logr, service.AuthConfig{
		Secret:             cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "campus-api",
	})
	userSvc := service.NewUserService(store.Users, validate, logr)
	studentSvc := service.NewStudentService(service.StudentServiceParams{
		Repo:        store.Students,
		Users:       store.Users,
		Enrollments: store.Enrollments,
		Assignments: store.Assignments,
		Courses:     store.Courses,
		Faculty:     store.Faculty,
		Attendance:  store.Attendance,
		Grades:      store.Grades,
		Validator:   validate,
		Logger:      logr,
	})
	facultySvc := service.NewFacultyService(store.Faculty, store.Users, store.Assignments, store.Courses, validate, logr)
	courseSvc := service.NewCourseService(store.Courses, store.Assignments, store.Faculty, store.Users, validate, logr)
	assignmentSvc := service.NewAssignmentService(store.Assignments, store.Courses, store.Faculty, validate, logr)
	enrollmentSvc := service.NewEnrollmentService(store.Enrollments, store.Students, store.Assignments, validate, logr)
	attendanceSvc := service.NewAttendanceService(store.Attendance, store.Enrollments, validate, logr)
	gradeSvc := service.NewGradeService(store.Grades, store.Enrollments, validate, logr)
	eventSvc := service.NewEventService(store.Events, validate, logr)
	dashboardSvc := service.NewDashboardService(service.DashboardServiceParams{
		Students:    store.Students,
		Faculty:     store.Faculty,
		Courses:     store.Courses,
		Assignments: store.Assignments,
		Enrollments: store.Enrollments,
		Attendance:  store.Attendance,
		Cache:       cacheSvc,
		Metrics:     metricsSvc,
		Logger:      logr,
		Config:      service.DashboardServiceConfig{CacheTTL: cfg.Dashboard.CacheTTL},
	})
	exportSvc := service.NewExportService(service.ExportServiceParams{
		Students:    studentSvc,
		StudentRepo: store.Students,
		Users:       store.Users,
		Courses:     courseSvc,
		Assignments: store.Assignments,
		Enrollments: store.Enrollments,
		Logger:      logr,
	})

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	metricsHandler := handler.NewMetricsHandler(metricsSvc)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	handler.RegisterRoutes(r, cfg.APIPrefix, handler.Handlers{
		Auth:        handler.NewAuthHandler(authSvc),
		Users:       handler.NewUserHandler(userSvc),
		Students:    handler.NewStudentHandler(studentSvc),
		Faculty:     handler.NewFacultyHandler(facultySvc),
		Courses:     handler.NewCourseHandler(courseSvc),
		Assignments: handler.NewAssignmentHandler(assignmentSvc),
		Enrollments: handler.NewEnrollmentHandler(enrollmentSvc),
		Attendance:  handler.NewAttendanceHandler(attendanceSvc),
		Grades:      handler.NewGradeHandler(gradeSvc),
		Events:      handler.NewEventHandler(eventSvc),
		Dashboard:   handler.NewDashboardHandler(dashboardSvc),
		Exports:     handler.NewExportHandler(exportSvc),
		Metrics:     metricsHandler,
	}, authSvc, dashboardSvc)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
