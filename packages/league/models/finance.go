package models

import (
	"time"

	"gorm.io/gorm"
)

// Finance is the money state of one club. Balance and Debt are whole
// currency units and must never be persisted negative; every mutation
// goes through the finance service which enforces the zero floor.
type Finance struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Team      string         `gorm:"size:10;not null;uniqueIndex" json:"team"`
	Balance   int            `gorm:"default:0" json:"balance"`
	Debt      int            `gorm:"default:0" json:"debt"` // real money owed
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Finance) TableName() string {
	return "finances"
}

// BookEntryRequest is a manual ledger entry outside match settlement
// (sponsor deposits, fines and the like).
type BookEntryRequest struct {
	Team   string `json:"team" binding:"required,oneof=AEK Real"`
	Amount int    `json:"amount" binding:"required"`
	Date   string `json:"date" binding:"required"`
	Info   string `json:"info"`
}
