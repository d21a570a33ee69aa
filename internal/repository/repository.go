package repository

import "giochi_web/internal/storage"

type Repositories struct {
	User  UserRepository
	Match MatchRepository
}

func NewRepositories(db *storage.PostgresDB) *Repositories {
	return &Repositories{
		User:  NewUserRepository(db),
		Match: NewMatchRepository(db),
	}
}
