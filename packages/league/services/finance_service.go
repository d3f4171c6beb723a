package services

import (
	"errors"
	"fmt"
	"time"

	"liga-api/packages/league/models"
	"liga-api/packages/league/utils"

	"gorm.io/gorm"
)

// FinanceService owns every mutation of club balances, debts and the
// transaction ledger. Balances and debts are clamped at zero after each
// step; callers run cascades inside a DB transaction and pass it in.
type FinanceService struct {
	db *gorm.DB
}

func NewFinanceService(db *gorm.DB) *FinanceService {
	return &FinanceService{
		db: db,
	}
}

func (s *FinanceService) GetFinances() ([]models.Finance, error) {
	var finances []models.Finance

	result := s.db.Order("team ASC").Find(&finances)
	if result.Error != nil {
		return nil, result.Error
	}

	return finances, nil
}

func (s *FinanceService) GetFinance(team string) (*models.Finance, error) {
	var finance models.Finance

	result := s.db.Where("team = ?", team).First(&finance)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errors.New("finance record not found")
		}
		return nil, result.Error
	}

	return &finance, nil
}

// ApplySettlement applies a match's full financial effect inside tx:
// bonus before prize on each club balance (zero floor after each step),
// one ledger row per nonzero delta, then the real-money debt offsetting
// between winner and loser.
func (s *FinanceService) ApplySettlement(tx *gorm.DB, match *models.Match, matchNumber int) error {
	note := fmt.Sprintf("Match %d", matchNumber)
	preBalances := make(map[string]int)

	for _, team := range []string{models.TeamAEK, models.TeamReal} {
		var finance models.Finance
		if err := tx.Where("team = ?", team).First(&finance).Error; err != nil {
			return err
		}
		preBalances[team] = finance.Balance

		bonus := 0
		if match.ManOfTheMatch != "" && match.ManOfTheMatchTeam == team {
			bonus = utils.SdSBonusAmount
		}
		prize := match.Prize(team)

		balance := finance.Balance + bonus
		if balance < 0 {
			balance = 0
		}
		balance += prize
		if balance < 0 {
			balance = 0
		}

		if err := tx.Model(&models.Finance{}).Where("team = ?", team).Update("balance", balance).Error; err != nil {
			return err
		}

		if bonus != 0 {
			if err := appendTransaction(tx, match, models.TxSdSBonus, team, bonus, note); err != nil {
				return err
			}
		}
		if prize != 0 {
			if err := appendTransaction(tx, match, models.TxPrizeMoney, team, prize, note); err != nil {
				return err
			}
		}
	}

	winner := match.Winner()
	if winner == "" {
		// Draws settle no debt.
		return nil
	}
	loser := models.OpposingTeam(winner)

	loserGotBonus := match.ManOfTheMatch != "" && match.ManOfTheMatchTeam == loser
	loserAmount := utils.CalculateDebtAmount(match.Prize(loser), preBalances[loser], loserGotBonus)

	var winnerFinance, loserFinance models.Finance
	if err := tx.Where("team = ?", winner).First(&winnerFinance).Error; err != nil {
		return err
	}
	if err := tx.Where("team = ?", loser).First(&loserFinance).Error; err != nil {
		return err
	}

	reduction, increase := utils.SettleDebts(winnerFinance.Debt, loserAmount)

	if reduction > 0 {
		if err := tx.Model(&models.Finance{}).Where("team = ?", winner).
			Update("debt", winnerFinance.Debt-reduction).Error; err != nil {
			return err
		}
		if err := appendTransaction(tx, match, models.TxSettlementCleared, winner, -reduction, note); err != nil {
			return err
		}
	}

	if increase > 0 {
		if err := tx.Model(&models.Finance{}).Where("team = ?", loser).
			Update("debt", loserFinance.Debt+increase).Error; err != nil {
			return err
		}
		if err := appendTransaction(tx, match, models.TxSettlement, loser, increase, note); err != nil {
			return err
		}
	}

	return nil
}

// ReverseSettlement undoes a match's financial effect inside tx: the
// recorded prizes come off the balances, linked bonus rows come off the
// balances, linked settlement rows are undone on the debts, and finally
// every ledger row linked to the match is deleted. All subtractions are
// floored at zero.
func (s *FinanceService) ReverseSettlement(tx *gorm.DB, match *models.Match) error {
	var rows []models.Transaction
	if err := tx.Where("match_id = ?", match.ID).Find(&rows).Error; err != nil {
		return err
	}

	for _, team := range []string{models.TeamAEK, models.TeamReal} {
		if prize := match.Prize(team); prize != 0 {
			if err := adjustBalance(tx, team, -prize); err != nil {
				return err
			}
		}
	}

	for _, row := range rows {
		switch row.Type {
		case models.TxSdSBonus:
			if err := adjustBalance(tx, row.Team, -row.Amount); err != nil {
				return err
			}
		case models.TxSettlementCleared, models.TxSettlement:
			// Cleared rows are negative, so negating restores the
			// winner's debt; settlement rows are positive, so negating
			// takes the added debt back off the loser.
			if err := adjustDebt(tx, row.Team, -row.Amount); err != nil {
				return err
			}
		}
	}

	return tx.Where("match_id = ?", match.ID).Delete(&models.Transaction{}).Error
}

// BookEntry records a manual ledger entry with no match link.
func (s *FinanceService) BookEntry(req models.BookEntryRequest) (*models.Transaction, error) {
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return nil, errors.New("invalid date format")
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := adjustBalance(tx, req.Team, req.Amount); err != nil {
		tx.Rollback()
		return nil, err
	}

	entry := models.Transaction{
		Date:   req.Date,
		Type:   models.TxOther,
		Team:   req.Team,
		Amount: req.Amount,
		Info:   req.Info,
	}
	if err := tx.Create(&entry).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &entry, nil
}

type TransactionFilters struct {
	Page    int
	PerPage int
	Team    *string
	Type    *string
}

func (s *FinanceService) GetTransactions(filters TransactionFilters) (*models.PaginatedTransactionResponse, error) {
	var transactions []models.Transaction
	var total int64

	baseQuery := s.db.Model(&models.Transaction{})
	if filters.Team != nil {
		baseQuery = baseQuery.Where("team = ?", *filters.Team)
	}
	if filters.Type != nil {
		baseQuery = baseQuery.Where("type = ?", *filters.Type)
	}

	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (filters.Page - 1) * filters.PerPage

	if err := baseQuery.Order("date DESC, id DESC").
		Offset(offset).
		Limit(filters.PerPage).
		Find(&transactions).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + int64(filters.PerPage) - 1) / int64(filters.PerPage))

	return &models.PaginatedTransactionResponse{
		Data:       transactions,
		Total:      total,
		Page:       filters.Page,
		PageSize:   filters.PerPage,
		TotalPages: totalPages,
	}, nil
}

func appendTransaction(tx *gorm.DB, match *models.Match, txType, team string, amount int, note string) error {
	matchID := match.ID
	row := models.Transaction{
		Date:    match.Date,
		Type:    txType,
		Team:    team,
		Amount:  amount,
		MatchID: &matchID,
		Info:    note,
	}
	return tx.Create(&row).Error
}

func adjustBalance(tx *gorm.DB, team string, delta int) error {
	var finance models.Finance
	if err := tx.Where("team = ?", team).First(&finance).Error; err != nil {
		return err
	}

	balance := finance.Balance + delta
	if balance < 0 {
		balance = 0
	}

	return tx.Model(&models.Finance{}).Where("team = ?", team).Update("balance", balance).Error
}

func adjustDebt(tx *gorm.DB, team string, delta int) error {
	var finance models.Finance
	if err := tx.Where("team = ?", team).First(&finance).Error; err != nil {
		return err
	}

	debt := finance.Debt + delta
	if debt < 0 {
		debt = 0
	}

	return tx.Model(&models.Finance{}).Where("team = ?", team).Update("debt", debt).Error
}
