package models

import (
	"time"
)

// Transaction types written by the settlement engine. Reversal logic
// matches on these strings, so they are part of the storage contract.
const (
	TxPrizeMoney        = "Prize Money"
	TxSdSBonus          = "SdS Bonus"
	TxSettlement        = "Real-Money Settlement"
	TxSettlementCleared = "Real-Money Settlement (cleared)"
	TxOther             = "Other" // manual book entries
)

// Transaction is one row of the append-only ledger. Rows written as part
// of a match settlement carry the match id, which is the only filter the
// reversal path uses when an edit or delete unwinds a match.
type Transaction struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Date      string    `gorm:"size:10;not null" json:"date"`
	Type      string    `gorm:"size:40;not null" json:"type"`
	Team      string    `gorm:"size:10;not null" json:"team"`
	Amount    int       `gorm:"not null" json:"amount"`
	MatchID   *uint     `gorm:"index" json:"match_id"`
	Info      string    `gorm:"size:255" json:"info"`
	CreatedAt time.Time `json:"created_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}

type PaginatedTransactionResponse struct {
	Data       []Transaction `json:"data"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	TotalPages int           `json:"totalPages"`
}
