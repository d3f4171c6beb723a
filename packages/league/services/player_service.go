package services

import (
	"errors"

	"liga-api/packages/league/models"

	"gorm.io/gorm"
)

type PlayerService struct {
	db *gorm.DB
}

func NewPlayerService(db *gorm.DB) *PlayerService {
	return &PlayerService{
		db: db,
	}
}

func (s *PlayerService) GetPlayersByTeam(team string) ([]models.Player, error) {
	var players []models.Player

	result := s.db.Where("team = ?", team).Order("name ASC").Find(&players)
	if result.Error != nil {
		return nil, result.Error
	}

	return players, nil
}

func (s *PlayerService) GetAllPlayers() ([]models.Player, error) {
	var players []models.Player

	result := s.db.Order("team ASC, name ASC").Find(&players)
	if result.Error != nil {
		return nil, result.Error
	}

	return players, nil
}

func (s *PlayerService) CreatePlayer(req models.CreatePlayerRequest) (*models.Player, error) {
	var existing models.Player
	if err := s.db.Where("name = ? AND team = ?", req.Name, req.Team).First(&existing).Error; err == nil {
		return nil, errors.New("player already exists")
	}

	player := &models.Player{
		Name: req.Name,
		Team: req.Team,
	}

	result := s.db.Create(player)
	if result.Error != nil {
		return nil, result.Error
	}

	return player, nil
}

func (s *PlayerService) GetTopScorers(limit int) ([]models.Player, error) {
	var players []models.Player

	result := s.db.Where("goals > 0").
		Order("goals DESC, name ASC").
		Limit(limit).
		Find(&players)

	if result.Error != nil {
		return nil, result.Error
	}

	return players, nil
}
