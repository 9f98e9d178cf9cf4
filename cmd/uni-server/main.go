package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/uni-records/internal/handler"
	"github.com/noah-isme/uni-records/internal/middleware"
	"github.com/noah-isme/uni-records/internal/repository"
	"github.com/noah-isme/uni-records/internal/service"
	"github.com/noah-isme/uni-records/pkg/config"
	"github.com/noah-isme/uni-records/pkg/logger"
	corsmiddleware "github.com/noah-isme/uni-records/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/uni-records/pkg/middleware/requestid"
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

	store, err := repository.NewStudentStore(cfg.Store.Path)
	if err != nil {
		logr.Sugar().Fatalw("failed to open datastore", "path", cfg.Store.Path, "error", err)
	}
	logr.Sugar().Infow("datastore ready", "path", store.Path())

	metricsSvc := service.NewMetricsService()
	repo := repository.NewInstrumentedStore(store, metricsSvc.ObserveStoreOperation)

	validate := validator.New()
	rules := service.RecordRules{
		MaxSubjects:    cfg.Records.MaxSubjects,
		PassingAverage: cfg.Records.PassingAverage,
	}
	studentSvc := service.NewStudentService(repo, validate, logr, rules)
	adminSvc := service.NewAdminService(repo, logr, rules)
	authSvc := service.NewAuthService(studentSvc, logr, service.AuthConfig{
		Secret:     cfg.Auth.Secret,
		Expiration: cfg.Auth.Expiration,
		Issuer:     cfg.Auth.Issuer,
	})

	authHandler := handler.NewAuthHandler(studentSvc, authSvc)
	studentHandler := handler.NewStudentHandler(studentSvc)
	adminHandler := handler.NewAdminHandler(adminSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	api := r.Group(cfg.APIPrefix)
	{
		auth := api.Group("/auth")
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)

		me := api.Group("/me", middleware.JWT(authSvc))
		me.GET("", studentHandler.Me)
		me.POST("/subjects", studentHandler.Enroll)
		me.DELETE("/subjects/:id", studentHandler.RemoveSubject)
		me.PUT("/password", studentHandler.ChangePassword)

		admin := api.Group("/admin")
		admin.GET("/students", adminHandler.List)
		admin.DELETE("/students/:id", adminHandler.Remove)
		admin.DELETE("/students", adminHandler.Clear)
		admin.GET("/reports/grade-groups", adminHandler.GradeGroups)
		admin.GET("/reports/pass-fail", adminHandler.PassFail)
		admin.GET("/reports/overview", adminHandler.ExportOverview)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "datastore", cfg.Store.Path)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
