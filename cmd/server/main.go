package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/KeiviX/expense-manager-app/internal/auth"
	"github.com/KeiviX/expense-manager-app/internal/command"
	"github.com/KeiviX/expense-manager-app/internal/config"
	"github.com/KeiviX/expense-manager-app/internal/events"
	"github.com/KeiviX/expense-manager-app/internal/handler"
	"github.com/KeiviX/expense-manager-app/internal/middleware"
	"github.com/KeiviX/expense-manager-app/internal/query"
	redisClient "github.com/KeiviX/expense-manager-app/internal/redis"
	"github.com/KeiviX/expense-manager-app/internal/repository"
	"github.com/KeiviX/expense-manager-app/internal/storage"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Database connection (write store)
	db, err := storage.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := storage.EnsureSchema(db); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}

	// Redis connection (read model store + event streaming)
	redis, err := redisClient.NewClient(cfg.RedisAddr, cfg.RedisPassword, 0)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatalf("Failed to initialise token service: %v", err)
	}

	// --- CQRS wiring ---
	publisher := events.NewPublisher(redis.Client)

	userRepo := repository.NewUserRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	incomeRepo := repository.NewIncomeRepository(db)
	statsRepo := repository.NewStatsReadRepository(db, redis.Client)

	userCmd := command.NewUserCommandService(userRepo, publisher)
	expenseCmd := command.NewExpenseCommandService(expenseRepo, statsRepo, publisher)
	incomeCmd := command.NewIncomeCommandService(incomeRepo, statsRepo, publisher)

	authQry := query.NewAuthQueryService(userRepo, tokens)
	expenseQry := query.NewExpenseQueryService(expenseRepo)
	incomeQry := query.NewIncomeQueryService(incomeRepo)
	statsQry := query.NewStatsQueryService(statsRepo)

	authHandler := handler.NewAuthHandler(userCmd, authQry)
	expenseHandler := handler.NewExpenseHandler(expenseCmd, expenseQry)
	incomeHandler := handler.NewIncomeHandler(incomeCmd, incomeQry)
	statsHandler := handler.NewStatsHandler(statsQry)

	// Setup router
	router := gin.Default()
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigin))

	requireAuth := middleware.AuthMiddleware(tokens, userRepo)

	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/token", authHandler.Login)
		authRoutes.GET("/me", requireAuth, authHandler.Me)
	}

	expenseRoutes := router.Group("/expenses", requireAuth)
	{
		expenseRoutes.POST("", expenseHandler.CreateExpense)
		expenseRoutes.GET("", expenseHandler.ListExpenses)
		expenseRoutes.GET("/:expenseId", expenseHandler.GetExpense)
		expenseRoutes.PUT("/:expenseId", expenseHandler.UpdateExpense)
		expenseRoutes.DELETE("/:expenseId", expenseHandler.DeleteExpense)
	}

	incomeRoutes := router.Group("/income", requireAuth)
	{
		incomeRoutes.POST("", incomeHandler.CreateIncome)
		incomeRoutes.GET("", incomeHandler.ListIncomes)
		incomeRoutes.GET("/:incomeId", incomeHandler.GetIncome)
		incomeRoutes.PUT("/:incomeId", incomeHandler.UpdateIncome)
		incomeRoutes.DELETE("/:incomeId", incomeHandler.DeleteIncome)
	}

	statsRoutes := router.Group("/statistics", requireAuth)
	{
		statsRoutes.GET("/summary", statsHandler.Summary)
		statsRoutes.GET("/activity", statsHandler.Activity)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Start event subscriber — feeds the activity counters
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	activityConsumer := command.NewActivityConsumer(statsRepo)
	go func() {
		subscriber := events.NewSubscriber(redis.Client, events.SubscriberConfig{
			Group:    "expense-manager-group",
			Consumer: "activity-consumer-1",
			Streams:  []string{events.RecordEventsStream},
			Handler:  activityConsumer.HandleRecordEvent,
		})
		if err := subscriber.Start(ctx); err != nil {
			log.Printf("Subscriber stopped: %v", err)
		}
	}()

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Println("Shutting down...")
		cancel()
	}()

	log.Printf("Expense manager API starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
