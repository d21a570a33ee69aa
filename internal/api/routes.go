package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"giochi_web/internal/api/handlers"
	"giochi_web/internal/middleware"
	"giochi_web/internal/repository"
	"giochi_web/internal/service"
	"giochi_web/internal/utils"
)

func SetupRoutes(r *gin.Engine, services *service.Services, repos *repository.Repositories, tm *utils.TokenManager) {
	authHandler := handlers.NewAuthHandler(services.User, tm)
	lobbyHandler := handlers.NewLobbyHandler(services.Game, repos.Match)
	wsHandler := handlers.NewWebSocketHandler(services.Hub)

	api := r.Group("/api")

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "route not found",
		})
	})

	// Public routes.
	{
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)

		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})
	}

	// The game socket is public as well: participants identify themselves
	// in-band with player_connect.
	r.GET("/ws", wsHandler.HandleWebSocket)

	// Authenticated routes.
	authorized := api.Group("/")
	authorized.Use(middleware.AuthMiddleware(tm))
	{
		authorized.GET("/rooms", lobbyHandler.ListRooms)
		authorized.GET("/matches", lobbyHandler.ListMatches)
	}
}
