package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"diagnosis-service/internal/config"
	"diagnosis-service/internal/db"
	"diagnosis-service/internal/event"
	"diagnosis-service/internal/handlers"
	"diagnosis-service/internal/localstore"
	"diagnosis-service/internal/repository"
	"diagnosis-service/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}
	cfg := config.Load()
	if cfg.MongoDB.URI == "" {
		log.Fatal("MONGO_URI is required")
	}
	if err := db.InitMongo(cfg.MongoDB); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close(context.Background())

	// RabbitMQ event publisher (optional)
	var publisher *event.Publisher
	if cfg.RabbitMQ.URI != "" && cfg.RabbitMQ.Exchange != "" {
		var err error
		publisher, err = event.NewPublisher(cfg.RabbitMQ.URI, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, diagnosis events will not be published")
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With", "X-User-ID", "X-Device-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	database := db.Client.Database(cfg.MongoDB.Database)

	// Attempt history: MongoDB for users, local disk for guest devices
	attemptRepo := repository.NewAttemptRepository(database)
	local := localstore.New(cfg.Local.Dir)
	historyService := service.NewHistoryService(attemptRepo, local)

	// Direct diagnosis submission (legacy one-shot flow)
	diagnosisService := service.NewDiagnosisService(historyService)
	diagnosisHandler := handlers.NewDiagnosisHandler(diagnosisService, historyService)

	// Interactive sessions
	sessionRepo := repository.NewSessionRepository(database)
	sessionService := service.NewSessionService(sessionRepo, historyService)
	sessionHandler := handlers.NewSessionHandler(sessionService)

	// Weekly reports
	coupleRepo := repository.NewCoupleRepository(database)
	activityRepo := repository.NewActivityRepository(database, attemptRepo)
	reportService := service.NewReportService(coupleRepo, activityRepo, historyService)
	reportHandler := handlers.NewReportHandler(reportService)

	// Public routes - question bank and legacy guest flows
	publicDiagnosis := r.Group("/public/diagnosis")
	{
		publicDiagnosis.GET("/template", diagnosisHandler.ListTemplates)
		publicDiagnosis.GET("/template/:id", diagnosisHandler.GetTemplate)
		publicDiagnosis.GET("/history/:templateId", diagnosisHandler.TemplateHistory)
		publicDiagnosis.POST("/", func(c *gin.Context) {
			diagnosisHandler.SubmitAttempt(c)
			publisher.Publish("diagnosis.attempt.recorded", gin.H{
				"device_id": c.GetHeader("X-Device-ID"),
			})
		})
	}

	setupProtectedRoutes(r, diagnosisHandler, sessionHandler, reportHandler, publisher)

	r.Run(cfg.Server.Host + ":" + cfg.Server.Port)
}

func setupProtectedRoutes(
	r *gin.Engine,
	diagnosisHandler *handlers.DiagnosisHandler,
	sessionHandler *handlers.SessionHandler,
	reportHandler *handlers.ReportHandler,
	publisher *event.Publisher,
) {
	protected := r.Group("/protected")

	// Authentication middleware: the gateway injects X-User-ID
	protected.Use(func(c *gin.Context) {
		if c.GetHeader("X-User-ID") == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
				"code":  "MISSING_USER_ID",
			})
			c.Abort()
			return
		}
		c.Next()
	})

	diagnosis := protected.Group("/diagnosis")
	{
		diagnosis.GET("/my-latest", diagnosisHandler.MyLatest)
		diagnosis.GET("/my-history", diagnosisHandler.MyHistory)
		diagnosis.GET("/history/:templateId", diagnosisHandler.TemplateHistory)

		diagnosis.POST("/", func(c *gin.Context) {
			diagnosisHandler.SubmitAttempt(c)
			publisher.Publish("diagnosis.attempt.recorded", gin.H{
				"user_id": c.GetHeader("X-User-ID"),
			})
		})

		diagnosis.POST("/session", func(c *gin.Context) {
			sessionHandler.StartSession(c)
			publisher.Publish("diagnosis.session.started", gin.H{
				"user_id": c.GetHeader("X-User-ID"),
			})
		})
		diagnosis.POST("/session/:id/answer", sessionHandler.SubmitAnswer)
		diagnosis.POST("/session/:id/submit", func(c *gin.Context) {
			sessionHandler.Resubmit(c)
			publisher.Publish("diagnosis.session.completed", gin.H{
				"session_id": c.Param("id"),
				"user_id":    c.GetHeader("X-User-ID"),
			})
		})
		diagnosis.GET("/session/:id/status", sessionHandler.GetStatus)
	}

	report := protected.Group("/report")
	{
		report.GET("/weeks", reportHandler.ListWeeks)
		report.GET("/week/:year/:week", func(c *gin.Context) {
			reportHandler.GetWeek(c)
			publisher.Publish("report.week.viewed", gin.H{
				"user_id": c.GetHeader("X-User-ID"),
				"year":    c.Param("year"),
				"week":    c.Param("week"),
			})
		})
	}
}
