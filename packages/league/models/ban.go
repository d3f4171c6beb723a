package models

import (
	"time"

	"gorm.io/gorm"
)

// Ban suspends a player for a number of matches. Open bans tick down by
// one after every completed match creation.
type Ban struct {
	ID            uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	PlayerName    string         `gorm:"size:255;not null" json:"player_name"`
	Team          string         `gorm:"size:10;not null" json:"team"`
	Reason        string         `gorm:"size:255" json:"reason"`
	TotalMatches  int            `gorm:"not null" json:"total_matches"`
	MatchesServed int            `gorm:"default:0" json:"matches_served"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Ban) TableName() string {
	return "bans"
}

// Active reports whether the ban still has matches left to serve.
func (b *Ban) Active() bool {
	return b.MatchesServed < b.TotalMatches
}

type CreateBanRequest struct {
	PlayerName   string `json:"player_name" binding:"required"`
	Team         string `json:"team" binding:"required,oneof=AEK Real"`
	Reason       string `json:"reason"`
	TotalMatches int    `json:"total_matches" binding:"required,min=1"`
}
