package service

import (
	"giochi_web/internal/config"
	"giochi_web/internal/repository"
)

type Services struct {
	User *UserService
	Game *GameService
	Hub  *Hub
}

func NewServices(cfg *config.Config, repos *repository.Repositories) *Services {
	gameService := NewGameService(cfg.Game, repos.Match)
	return &Services{
		User: NewUserService(repos.User),
		Game: gameService,
		Hub:  NewHub(gameService),
	}
}
