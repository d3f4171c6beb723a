package services

import (
	"context"
	"errors"

	"liga-api/packages/league/models"

	"gorm.io/gorm"
)

// BanService manages player suspensions. It implements BanDecrementer:
// after every completed match creation each open ban serves one match.
type BanService struct {
	db *gorm.DB
}

func NewBanService(db *gorm.DB) *BanService {
	return &BanService{
		db: db,
	}
}

// DecrementAfterMatch ticks every open ban by one served match.
func (s *BanService) DecrementAfterMatch(ctx context.Context) error {
	return s.db.WithContext(ctx).Model(&models.Ban{}).
		Where("matches_served < total_matches").
		Update("matches_served", gorm.Expr("matches_served + 1")).Error
}

func (s *BanService) GetBans(activeOnly bool) ([]models.Ban, error) {
	var bans []models.Ban

	query := s.db.Order("created_at DESC")
	if activeOnly {
		query = query.Where("matches_served < total_matches")
	}

	if err := query.Find(&bans).Error; err != nil {
		return nil, err
	}

	return bans, nil
}

func (s *BanService) CreateBan(req models.CreateBanRequest) (*models.Ban, error) {
	ban := &models.Ban{
		PlayerName:   req.PlayerName,
		Team:         req.Team,
		Reason:       req.Reason,
		TotalMatches: req.TotalMatches,
	}

	result := s.db.Create(ban)
	if result.Error != nil {
		return nil, result.Error
	}

	return ban, nil
}

func (s *BanService) DeleteBan(id uint) error {
	result := s.db.Delete(&models.Ban{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("ban not found")
	}
	return nil
}
