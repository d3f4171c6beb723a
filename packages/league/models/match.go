package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// Scorer is one entry of a match scorer list: a player and how many of
// the team's goals they scored in that match.
type Scorer struct {
	Player string `json:"player"`
	Count  int    `json:"count"`
}

// ScorerList is stored as a JSON column (jsonb on postgres, TEXT on sqlite).
type ScorerList []Scorer

// Value implements driver.Valuer for GORM
func (s ScorerList) Value() (driver.Value, error) {
	if len(s) == 0 {
		return json.Marshal([]Scorer{})
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner for GORM
func (s *ScorerList) Scan(value interface{}) error {
	if value == nil {
		*s = ScorerList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(bytes, s)
}

// TotalGoals sums the goal counts of all entries.
func (s ScorerList) TotalGoals() int {
	total := 0
	for _, entry := range s {
		total += entry.Count
	}
	return total
}

// Contains reports whether the list has an entry for the given player name.
func (s ScorerList) Contains(player string) bool {
	for _, entry := range s {
		if entry.Player == player {
			return true
		}
	}
	return false
}

// Match is one played fixture between AEK and Real. The prize columns
// store the signed amounts that were applied to each club's balance when
// the match was settled, so a later edit or delete can reverse them.
type Match struct {
	ID                uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Date              string         `gorm:"size:10;not null;index" json:"date"` // ISO calendar date, no time component
	GoalsAEK          int            `gorm:"default:0" json:"goals_aek"`
	GoalsReal         int            `gorm:"default:0" json:"goals_real"`
	ScorersAEK        ScorerList     `gorm:"type:jsonb" json:"scorers_aek"`
	ScorersReal       ScorerList     `gorm:"type:jsonb" json:"scorers_real"`
	YellowAEK         int            `gorm:"default:0" json:"yellow_aek"`
	RedAEK            int            `gorm:"default:0" json:"red_aek"`
	YellowReal        int            `gorm:"default:0" json:"yellow_real"`
	RedReal           int            `gorm:"default:0" json:"red_real"`
	ManOfTheMatch     string         `gorm:"size:255" json:"man_of_the_match"`
	ManOfTheMatchTeam string         `gorm:"size:10" json:"man_of_the_match_team"`
	PrizeAEK          int            `gorm:"default:0" json:"prize_aek"`
	PrizeReal         int            `gorm:"default:0" json:"prize_real"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Match) TableName() string {
	return "matches"
}

// Winner returns the winning club, or "" for a draw.
func (m *Match) Winner() string {
	if m.GoalsAEK > m.GoalsReal {
		return TeamAEK
	}
	if m.GoalsReal > m.GoalsAEK {
		return TeamReal
	}
	return ""
}

// Prize returns the signed prize recorded for the given club.
func (m *Match) Prize(team string) int {
	if team == TeamAEK {
		return m.PrizeAEK
	}
	return m.PrizeReal
}

type PaginatedMatchResponse struct {
	Data       []Match `json:"data"`
	Total      int64   `json:"total"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
	TotalPages int     `json:"totalPages"`
}

type CreateMatchRequest struct {
	Date              string     `json:"date" binding:"required"`
	GoalsAEK          int        `json:"goals_aek" binding:"min=0"`
	GoalsReal         int        `json:"goals_real" binding:"min=0"`
	ScorersAEK        []Scorer   `json:"scorers_aek"`
	ScorersReal       []Scorer   `json:"scorers_real"`
	YellowAEK         int        `json:"yellow_aek" binding:"min=0"`
	RedAEK            int        `json:"red_aek" binding:"min=0"`
	YellowReal        int        `json:"yellow_real" binding:"min=0"`
	RedReal           int        `json:"red_real" binding:"min=0"`
	ManOfTheMatch     string     `json:"man_of_the_match"`
	ManOfTheMatchTeam string     `json:"man_of_the_match_team" binding:"omitempty,oneof=AEK Real"`
}
