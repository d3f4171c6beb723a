package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"liga-api/packages/league/models"
	"liga-api/packages/league/utils"

	"gorm.io/gorm"
)

// BanDecrementer is the collaborator invoked once after every completed
// match creation. It takes no arguments and its result is only logged.
type BanDecrementer interface {
	DecrementAfterMatch(ctx context.Context) error
}

// MatchService runs the match cascades: create, edit (reverse then
// create) and delete (reverse then remove). A cascade touches the match
// row, the ledger, both club balances/debts, player tallies and the SdS
// counters; each one runs inside a single DB transaction, and cascades
// targeting the same match id are serialized with a keyed mutex.
type MatchService struct {
	db      *gorm.DB
	finance *FinanceService
	stats   *StatsService
	bans    BanDecrementer
	locks   sync.Map // match id -> *sync.Mutex
}

func NewMatchService(db *gorm.DB, finance *FinanceService, stats *StatsService, bans BanDecrementer) *MatchService {
	return &MatchService{
		db:      db,
		finance: finance,
		stats:   stats,
		bans:    bans,
	}
}

func (s *MatchService) GetRecentMatches(limit int) ([]models.Match, error) {
	var matches []models.Match

	result := s.db.Order("date DESC, id DESC").
		Limit(limit).
		Find(&matches)

	if result.Error != nil {
		return nil, result.Error
	}

	return matches, nil
}

func (s *MatchService) GetMatch(id uint) (*models.Match, error) {
	var match models.Match

	result := s.db.First(&match, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errors.New("match not found")
		}
		return nil, result.Error
	}

	return &match, nil
}

type MatchFilters struct {
	Page     int
	PerPage  int
	DateFrom *string
	DateTo   *string
}

func (s *MatchService) GetMatches(filters MatchFilters) (*models.PaginatedMatchResponse, error) {
	var matches []models.Match
	var total int64

	baseQuery := s.db.Model(&models.Match{})
	if filters.DateFrom != nil {
		baseQuery = baseQuery.Where("date >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		baseQuery = baseQuery.Where("date <= ?", *filters.DateTo)
	}

	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (filters.Page - 1) * filters.PerPage

	if err := baseQuery.Order("date DESC, id DESC").
		Offset(offset).
		Limit(filters.PerPage).
		Find(&matches).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + int64(filters.PerPage) - 1) / int64(filters.PerPage))

	return &models.PaginatedMatchResponse{
		Data:       matches,
		Total:      total,
		Page:       filters.Page,
		PageSize:   filters.PerPage,
		TotalPages: totalPages,
	}, nil
}

// CreateMatch validates the submitted result, persists the match and
// applies the full settlement cascade. The ban decrement runs after the
// transaction commits.
func (s *MatchService) CreateMatch(req models.CreateMatchRequest) (*models.Match, error) {
	match, err := s.buildMatch(req)
	if err != nil {
		return nil, err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := s.createInTransaction(tx, match); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.decrementBansAsync()

	return match, nil
}

// UpdateMatch edits a match by fully reversing the stored record and
// creating the replacement in its place. The replacement gets a fresh
// identifier; validation happens before anything is written.
func (s *MatchService) UpdateMatch(id uint, req models.CreateMatchRequest) (*models.Match, error) {
	replacement, err := s.buildMatch(req)
	if err != nil {
		return nil, err
	}

	lock := s.lock(id)
	lock.Lock()
	defer lock.Unlock()

	var existing models.Match
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("match not found")
		}
		return nil, err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := s.reverseInTransaction(tx, &existing); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := s.createInTransaction(tx, replacement); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.decrementBansAsync()

	return replacement, nil
}

// DeleteMatch reverses every effect of the stored match and removes the
// record. A match that is already gone is a no-op.
func (s *MatchService) DeleteMatch(id uint) error {
	lock := s.lock(id)
	lock.Lock()
	defer lock.Unlock()

	var existing models.Match
	err := s.db.First(&existing, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := s.reverseInTransaction(tx, &existing); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// buildMatch validates the request and assembles the unsaved match row,
// including the computed prize amounts. No writes happen here.
func (s *MatchService) buildMatch(req models.CreateMatchRequest) (*models.Match, error) {
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return nil, errors.New("invalid date format")
	}

	if err := validateScorers(req.GoalsAEK, req.ScorersAEK); err != nil {
		return nil, err
	}
	if err := validateScorers(req.GoalsReal, req.ScorersReal); err != nil {
		return nil, err
	}

	sdsTeam := ""
	if req.ManOfTheMatch != "" {
		sdsTeam = req.ManOfTheMatchTeam
		if sdsTeam == "" {
			sdsTeam = s.resolveSdSTeam(req)
		}
		if sdsTeam == "" {
			return nil, errors.New("man of the match not in either squad")
		}
	}

	prizeAEK, prizeReal := utils.CalculatePrizes(
		req.GoalsAEK, req.GoalsReal,
		req.YellowAEK, req.RedAEK,
		req.YellowReal, req.RedReal,
	)

	return &models.Match{
		Date:              req.Date,
		GoalsAEK:          req.GoalsAEK,
		GoalsReal:         req.GoalsReal,
		ScorersAEK:        models.ScorerList(req.ScorersAEK),
		ScorersReal:       models.ScorerList(req.ScorersReal),
		YellowAEK:         req.YellowAEK,
		RedAEK:            req.RedAEK,
		YellowReal:        req.YellowReal,
		RedReal:           req.RedReal,
		ManOfTheMatch:     req.ManOfTheMatch,
		ManOfTheMatchTeam: sdsTeam,
		PrizeAEK:          prizeAEK,
		PrizeReal:         prizeReal,
	}, nil
}

func validateScorers(goals int, scorers []models.Scorer) error {
	total := 0
	for _, entry := range scorers {
		if entry.Player == "" {
			continue
		}
		if entry.Count < 1 {
			return errors.New("scorer goals must be positive")
		}
		total += entry.Count
	}
	if total > goals {
		return errors.New("scorer goals exceed team goals")
	}
	return nil
}

func (s *MatchService) resolveSdSTeam(req models.CreateMatchRequest) string {
	if models.ScorerList(req.ScorersAEK).Contains(req.ManOfTheMatch) {
		return models.TeamAEK
	}
	if models.ScorerList(req.ScorersReal).Contains(req.ManOfTheMatch) {
		return models.TeamReal
	}

	var player models.Player
	if err := s.db.Where("name = ?", req.ManOfTheMatch).First(&player).Error; err == nil {
		return player.Team
	}
	return ""
}

// createInTransaction persists the match and applies its effects. The
// display ordinal can only be resolved once the row exists, so the
// settlement runs after the insert.
func (s *MatchService) createInTransaction(tx *gorm.DB, match *models.Match) error {
	if err := tx.Create(match).Error; err != nil {
		return err
	}

	number, err := matchNumber(tx, match)
	if err != nil {
		return err
	}

	if err := s.finance.ApplySettlement(tx, match, number); err != nil {
		return err
	}

	if err := s.stats.AddGoals(tx, match); err != nil {
		return err
	}

	if match.ManOfTheMatch != "" {
		if err := s.stats.IncrementSdS(tx, match.ManOfTheMatch, match.ManOfTheMatchTeam); err != nil {
			return err
		}
	}

	return nil
}

func (s *MatchService) reverseInTransaction(tx *gorm.DB, match *models.Match) error {
	if err := s.finance.ReverseSettlement(tx, match); err != nil {
		return err
	}

	if err := s.stats.RemoveGoals(tx, match); err != nil {
		return err
	}

	if err := s.stats.DecrementSdS(tx, match); err != nil {
		return err
	}

	return tx.Delete(&models.Match{}, match.ID).Error
}

// matchNumber is the 1-based position of the match counted from the
// start of the full history (date ascending, insertion order breaking
// ties), which is what the ledger notes display.
func matchNumber(tx *gorm.DB, match *models.Match) (int, error) {
	var before int64
	err := tx.Model(&models.Match{}).
		Where("date < ? OR (date = ? AND id < ?)", match.Date, match.Date, match.ID).
		Count(&before).Error
	if err != nil {
		return 0, err
	}
	return int(before) + 1, nil
}

func (s *MatchService) decrementBansAsync() {
	if s.bans == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.bans.DecrementAfterMatch(ctx); err != nil {
			log.Printf("Ban decrement after match failed: %v", err)
		}
	}()
}

func (s *MatchService) lock(id uint) *sync.Mutex {
	v, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	return v.(*sync.Mutex)
}
