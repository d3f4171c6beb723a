package models

import (
	"time"
)

// SpielerDesSpiels counts how often a player was voted man of the match.
// The table keeps its historical German name.
type SpielerDesSpiels struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:255;not null;uniqueIndex:idx_sds_name_team" json:"name"`
	Team      string    `gorm:"size:10;not null;uniqueIndex:idx_sds_name_team" json:"team"`
	Count     int       `gorm:"default:0" json:"count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SpielerDesSpiels) TableName() string {
	return "spieler_des_spiels"
}
