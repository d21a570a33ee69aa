package repository

import (
	"giochi_web/internal/models"
	"giochi_web/internal/storage"
)

type MatchRepository interface {
	Create(match *models.MatchRecord) error
	FindRecent(limit int) ([]models.MatchRecord, error)
}

type matchRepository struct {
	db *storage.PostgresDB
}

func NewMatchRepository(db *storage.PostgresDB) MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) Create(match *models.MatchRecord) error {
	return r.db.Create(match).Error
}

func (r *matchRepository) FindRecent(limit int) ([]models.MatchRecord, error) {
	var matches []models.MatchRecord
	if err := r.db.Order("finished_at desc").Limit(limit).Find(&matches).Error; err != nil {
		return nil, err
	}
	return matches, nil
}
