package main

import (
	"context"
	"strconv"
	"time"

	"github.com/cube5963/feedo-cfes/internal/cache"
	"github.com/cube5963/feedo-cfes/internal/config"
	"github.com/cube5963/feedo-cfes/internal/database"
	"github.com/cube5963/feedo-cfes/internal/events"
	"github.com/cube5963/feedo-cfes/internal/handlers"
	"github.com/cube5963/feedo-cfes/internal/middleware"
	"github.com/cube5963/feedo-cfes/internal/services"
	"github.com/cube5963/feedo-cfes/internal/workerpool"

	_ "github.com/cube5963/feedo-cfes/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           FEEDO API
// @version         1.0
// @description     Survey form builder with live answer statistics
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	var sectionsCache cache.Cache = cache.Noop{}
	if cfg.SectionsCache == "true" {
		sectionsCache = cache.NewMemory()
	}

	hub := events.NewHub()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	workers, _ := strconv.Atoi(cfg.StatsWorkers)
	if workers <= 0 {
		workers = 4
	}
	pool := workerpool.NewWorkerPool(ctx, workers, workers*16)
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		pool.Shutdown(shutdownCtx)
	}()

	authService := services.NewAuthService(db, cfg.JWTSecret)
	formService := services.NewFormService(db, sectionsCache)
	statisticsService := services.NewStatisticsService(db, sectionsCache)
	emotionService := services.NewEmotionService(cfg.AIAPIURL)
	metricsService := services.NewMetricsService(db)
	fingerprintService := services.NewFingerprintService(db)
	answerService := services.NewAnswerService(db, statisticsService, emotionService, metricsService, hub, pool)
	respondService := services.NewRespondService(db, sectionsCache, answerService)

	authHandler := handlers.NewAuthHandler(authService)
	formHandler := handlers.NewFormHandler(formService)
	sectionHandler := handlers.NewSectionHandler(formService)
	answerHandler := handlers.NewAnswerHandler(answerService)
	fingerprintHandler := handlers.NewFingerprintHandler(fingerprintService)
	statisticsHandler := handlers.NewStatisticsHandler(statisticsService, hub)
	respondHandler := handlers.NewRespondHandler(respondService, fingerprintService)
	metricsHandler := handlers.NewMetricsHandler(metricsService)
	wsHandler := handlers.NewWSHandler(hub)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ws/statistics/:formId", wsHandler.HandleStatisticsWebSocket)

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		forms := api.Group("/forms")
		forms.Use(middleware.JWTAuth(authService))
		{
			forms.GET("", formHandler.ListForms)
			forms.POST("", formHandler.CreateForm)
			forms.GET("/:id", formHandler.GetForm)
			forms.PUT("/:id", formHandler.UpdateForm)
			forms.DELETE("/:id", formHandler.DeleteForm)
			forms.POST("/:id/sections", sectionHandler.CreateSection)
			forms.PUT("/:id/sections/reorder", sectionHandler.ReorderSections)
		}

		sections := api.Group("/sections")
		sections.Use(middleware.JWTAuth(authService))
		{
			sections.PUT("/:id", sectionHandler.UpdateSection)
			sections.DELETE("/:id", sectionHandler.DeleteSection)
		}

		api.GET("/public/forms/:id", formHandler.GetPublicForm)

		api.POST("/answer", answerHandler.SaveAnswer)

		api.GET("/fingerprint", fingerprintHandler.CheckFingerprint)
		api.POST("/fingerprint", fingerprintHandler.RecordFingerprint)

		statistics := api.Group("/statistics")
		{
			statistics.GET("/:formId", statisticsHandler.GetFormStatistics)
			statistics.GET("/:formId/sections/:sectionId", statisticsHandler.GetSectionStatistics)
			statistics.GET("/:formId/stream", statisticsHandler.StreamStatistics)
		}

		respond := api.Group("/respond")
		{
			respond.POST("/start", respondHandler.Start)
			respond.GET("/sessions/:sessionId", respondHandler.GetState)
			respond.POST("/sessions/:sessionId/answer", respondHandler.Answer)
			respond.POST("/sessions/:sessionId/next", respondHandler.Next)
			respond.POST("/sessions/:sessionId/previous", respondHandler.Previous)
			respond.POST("/sessions/:sessionId/complete", respondHandler.Complete)
		}

		api.POST("/metrics", metricsHandler.IncrementMetric)
		api.GET("/metrics/:name", metricsHandler.GetMetric)
	}

	r.Run(":" + cfg.ServerPort)
}
