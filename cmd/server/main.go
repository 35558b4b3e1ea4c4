package main

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"honestspace/server/config"
	"honestspace/server/internal/activity"
	"honestspace/server/internal/api"
	"honestspace/server/internal/auth"
	"honestspace/server/internal/database"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	// A missing .env file is fine; the environment wins either way.
	if err := godotenv.Load(); err == nil {
		logger.Info("Loaded environment from .env")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	db, err := database.NewDatabase(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	logger.Info("Running database migrations...")
	if err := db.MigrateSchema(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}
	if err := db.SeedCatalogs(); err != nil {
		logger.WithError(err).Fatal("Failed to seed catalog tables")
	}

	var blacklist auth.Blacklist
	if cfg.Auth.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Auth.RedisAddr,
			Password: cfg.Auth.RedisPassword,
			DB:       cfg.Auth.RedisDB,
		})
		blacklist = auth.NewRedisBlacklist(client)
		logger.WithField("addr", cfg.Auth.RedisAddr).Info("Using Redis token blacklist")
	} else {
		blacklist = auth.NewMemoryBlacklist()
		logger.Info("Using in-memory token blacklist")
	}

	jwtService := auth.NewJWTService(
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.AccessTokenMinutes)*time.Minute,
		time.Duration(cfg.Auth.RefreshTokenHours)*time.Hour,
	)

	activityQueue := activity.NewQueue(256, logger)
	activityQueue.Subscribe(db.InsertActivities)
	activityQueue.Start()
	defer activityQueue.Close()

	handler := api.NewHandler(db, logger, jwtService, blacklist, activityQueue)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(router, handler)

	logger.Infof("Starting server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
