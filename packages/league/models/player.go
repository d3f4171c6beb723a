package models

import (
	"time"

	"gorm.io/gorm"
)

// Player is a squad member of one of the two clubs. Goals is the
// lifetime tally maintained by the stats service; it only ever moves
// when a match is created, edited or deleted.
type Player struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string         `gorm:"size:255;not null;uniqueIndex:idx_players_name_team" json:"name"`
	Team      string         `gorm:"size:10;not null;uniqueIndex:idx_players_name_team" json:"team"`
	Goals     int            `gorm:"default:0" json:"goals"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Player) TableName() string {
	return "players"
}

type CreatePlayerRequest struct {
	Name string `json:"name" binding:"required"`
	Team string `json:"team" binding:"required,oneof=AEK Real"`
}
