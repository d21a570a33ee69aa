package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"giochi_web/internal/api"
	"giochi_web/internal/config"
	"giochi_web/internal/models"
	"giochi_web/internal/repository"
	"giochi_web/internal/service"
	"giochi_web/internal/storage"
	"giochi_web/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := storage.NewPostgresDB(cfg.DB.Host, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.Port)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(&models.User{}, &models.MatchRecord{}); err != nil {
		log.Fatalf("Failed to auto migrate database: %v", err)
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(cfg, repos)
	tokens := utils.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTLHours)

	// Evict participants that stopped pinging, on the same path as an
	// explicit disconnect.
	stop := make(chan struct{})
	defer close(stop)
	go services.Game.RunSweeper(stop)

	r := gin.Default()
	api.SetupRoutes(r, services, repos, tokens)

	if err := r.Run(cfg.Server.Address); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
