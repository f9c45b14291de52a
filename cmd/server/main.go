package main

import (
	"log"
	"time"

	"run4wish-backend/internal/config"
	"run4wish-backend/internal/database"
	"run4wish-backend/internal/handlers"
	"run4wish-backend/internal/middleware"
	"run4wish-backend/internal/services"
	"run4wish-backend/internal/ws"

	_ "run4wish-backend/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Run4Wish API
// @version         1.0
// @description     Daily-question race backend: one scheduled question per day over a 7-day race (or 24-hour sprint)
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)
	if err := database.SeedRaceQuestions(db); err != nil {
		log.Fatalf("failed to seed race questions: %v", err)
	}
	if _, err := database.SeedBankQuestions(db); err != nil {
		log.Fatalf("failed to seed question bank: %v", err)
	}

	hub := ws.NewHub()

	authService := services.NewAuthService(db, cfg.JWTSecret, cfg.InitialWishes)
	scheduleService := services.NewScheduleService(db, time.Duration(cfg.RetryDelaySec)*time.Second)
	answerService := services.NewAnswerService(db, scheduleService)
	leaderboardService := services.NewLeaderboardService(db)
	adminService := services.NewAdminService(db, scheduleService)

	authHandler := handlers.NewAuthHandler(authService)
	questionHandler := handlers.NewQuestionHandler(scheduleService, answerService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)
	adminHandler := handlers.NewAdminHandler(adminService)
	wsHandler := handlers.NewWSHandler(hub, authService)

	watcher := ws.NewWindowWatcher(hub, scheduleService, time.Minute)
	watcher.Start()
	defer watcher.Stop()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ws/schedule", wsHandler.HandleWebSocket)

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		authed := api.Group("")
		authed.Use(middleware.JWTAuth(authService))
		{
			authed.GET("/profile", authHandler.GetProfile)
			authed.GET("/daily-question", questionHandler.GetDailyQuestion)
			authed.POST("/daily-question/answer", questionHandler.SubmitAnswer)
			authed.POST("/user/create-schedule", scheduleHandler.CreateSchedule)
			authed.GET("/leaderboard", leaderboardHandler.GetLeaderboard)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.AdminAuth(authService, cfg.AdminEmail))
		{
			admin.POST("/load-question-bank", adminHandler.LoadQuestionBank)
			admin.POST("/regenerate-7d-schedule", adminHandler.Regenerate7DSchedule)
			admin.POST("/reset-users-day1", adminHandler.ResetUsersDay1)
			admin.POST("/simulate-daily-progress", adminHandler.SimulateDailyProgress)
		}
	}

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
