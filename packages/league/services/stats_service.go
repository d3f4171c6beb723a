package services

import (
	"errors"
	"time"

	"liga-api/packages/league/models"

	"gorm.io/gorm"
)

// StatsService maintains the derived player statistics: lifetime goal
// tallies and the Spieler-des-Spiels counters. Subtractions floor at
// zero so a reversal can never drive a tally negative.
type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{
		db: db,
	}
}

// AddGoals credits every scorer entry of the match to the player's
// lifetime tally, creating the player row if it does not exist yet.
func (s *StatsService) AddGoals(tx *gorm.DB, match *models.Match) error {
	if err := s.addTeamGoals(tx, models.TeamAEK, match.ScorersAEK); err != nil {
		return err
	}
	return s.addTeamGoals(tx, models.TeamReal, match.ScorersReal)
}

func (s *StatsService) addTeamGoals(tx *gorm.DB, team string, scorers models.ScorerList) error {
	for _, entry := range scorers {
		if entry.Player == "" {
			continue
		}

		var player models.Player
		err := tx.Where("name = ? AND team = ?", entry.Player, team).First(&player).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			player = models.Player{Name: entry.Player, Team: team, Goals: entry.Count}
			if err := tx.Create(&player).Error; err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}

		if err := tx.Model(&models.Player{}).Where("id = ?", player.ID).
			Update("goals", player.Goals+entry.Count).Error; err != nil {
			return err
		}
	}
	return nil
}

// RemoveGoals takes the match's scorer entries back off the lifetime
// tallies, floored at zero. Players that vanished since are skipped.
func (s *StatsService) RemoveGoals(tx *gorm.DB, match *models.Match) error {
	if err := s.removeTeamGoals(tx, models.TeamAEK, match.ScorersAEK); err != nil {
		return err
	}
	return s.removeTeamGoals(tx, models.TeamReal, match.ScorersReal)
}

func (s *StatsService) removeTeamGoals(tx *gorm.DB, team string, scorers models.ScorerList) error {
	for _, entry := range scorers {
		if entry.Player == "" {
			continue
		}

		var player models.Player
		err := tx.Where("name = ? AND team = ?", entry.Player, team).First(&player).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return err
		}

		goals := player.Goals - entry.Count
		if goals < 0 {
			goals = 0
		}
		if err := tx.Model(&models.Player{}).Where("id = ?", player.ID).
			Update("goals", goals).Error; err != nil {
			return err
		}
	}
	return nil
}

// IncrementSdS bumps the man-of-the-match counter, creating the row on
// first award.
func (s *StatsService) IncrementSdS(tx *gorm.DB, name, team string) error {
	var row models.SpielerDesSpiels
	err := tx.Where("name = ? AND team = ?", name, team).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = models.SpielerDesSpiels{Name: name, Team: team, Count: 1}
		return tx.Create(&row).Error
	}
	if err != nil {
		return err
	}

	return tx.Model(&models.SpielerDesSpiels{}).Where("id = ?", row.ID).
		Update("count", row.Count+1).Error
}

// DecrementSdS undoes one award for the match's man of the match,
// floored at zero. The player's club comes from the stored team column;
// rows written before that column existed fall back to the scorer lists
// and finally a roster lookup.
func (s *StatsService) DecrementSdS(tx *gorm.DB, match *models.Match) error {
	if match.ManOfTheMatch == "" {
		return nil
	}

	team := match.ManOfTheMatchTeam
	if team == "" {
		team = s.resolveTeam(tx, match)
	}
	if team == "" {
		return nil
	}

	var row models.SpielerDesSpiels
	err := tx.Where("name = ? AND team = ?", match.ManOfTheMatch, team).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	count := row.Count - 1
	if count < 0 {
		count = 0
	}
	return tx.Model(&models.SpielerDesSpiels{}).Where("id = ?", row.ID).
		Update("count", count).Error
}

func (s *StatsService) resolveTeam(tx *gorm.DB, match *models.Match) string {
	if match.ScorersAEK.Contains(match.ManOfTheMatch) {
		return models.TeamAEK
	}
	if match.ScorersReal.Contains(match.ManOfTheMatch) {
		return models.TeamReal
	}

	var player models.Player
	if err := tx.Where("name = ?", match.ManOfTheMatch).First(&player).Error; err == nil {
		return player.Team
	}
	return ""
}

func (s *StatsService) GetSdSTable() ([]models.SpielerDesSpiels, error) {
	var rows []models.SpielerDesSpiels

	result := s.db.Order("count DESC, name ASC").Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

func (s *StatsService) GetStats() (*models.Stats, error) {
	var totalMatches int64
	var draws int64
	var aekWins int64
	var realWins int64
	var activeBans int64
	var matchesLast7Days int64

	if err := s.db.Model(&models.Match{}).Count(&totalMatches).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Match{}).Where("goals_aek = goals_real").Count(&draws).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Match{}).Where("goals_aek > goals_real").Count(&aekWins).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Match{}).Where("goals_real > goals_aek").Count(&realWins).Error; err != nil {
		return nil, err
	}

	var aekGoals, realGoals int64
	row := s.db.Model(&models.Match{}).Select("COALESCE(SUM(goals_aek), 0), COALESCE(SUM(goals_real), 0)").Row()
	if err := row.Scan(&aekGoals, &realGoals); err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Ban{}).Where("matches_served < total_matches").Count(&activeBans).Error; err != nil {
		return nil, err
	}

	last7DaysStart := time.Now().AddDate(0, 0, -7).Format("2006-01-02")
	if err := s.db.Model(&models.Match{}).Where("date >= ?", last7DaysStart).Count(&matchesLast7Days).Error; err != nil {
		return nil, err
	}

	var topScorers []models.Player
	if err := s.db.Where("goals > 0").Order("goals DESC, name ASC").Limit(10).Find(&topScorers).Error; err != nil {
		return nil, err
	}

	var sdsLeaders []models.SpielerDesSpiels
	if err := s.db.Where("count > 0").Order("count DESC, name ASC").Limit(10).Find(&sdsLeaders).Error; err != nil {
		return nil, err
	}

	stats := &models.Stats{
		TotalMatches: totalMatches,
		Draws:        draws,
		Teams: map[string]models.TeamRecord{
			models.TeamAEK:  {Wins: aekWins, Goals: aekGoals},
			models.TeamReal: {Wins: realWins, Goals: realGoals},
		},
		TopScorers:       topScorers,
		SdSLeaders:       sdsLeaders,
		ActiveBans:       activeBans,
		MatchesLast7Days: matchesLast7Days,
	}

	return stats, nil
}
