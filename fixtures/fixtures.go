package fixtures

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	authModels "liga-api/packages/auth/models"
	authUtils "liga-api/packages/auth/utils"
	"liga-api/packages/league/models"
	"liga-api/packages/league/services"

	"gorm.io/gorm"
)

type Fixtures struct {
	db           *gorm.DB
	matchService *services.MatchService
}

func NewFixtures(db *gorm.DB) *Fixtures {
	financeService := services.NewFinanceService(db)
	statsService := services.NewStatsService(db)
	banService := services.NewBanService(db)
	matchService := services.NewMatchService(db, financeService, statsService, banService)

	return &Fixtures{
		db:           db,
		matchService: matchService,
	}
}

var aekSquad = []string{"Stavros", "Niko", "Dimitri", "Kostas", "Yannis"}
var realSquad = []string{"Carlos", "Sergio", "Luka", "Marco", "Pepe"}

// GenerateTestData creates an admin user, both squads, starting finances
// and a handful of matches booked through the regular settlement path.
func (f *Fixtures) GenerateTestData() error {
	log.Println("Starting fixtures generation...")

	if err := f.generateUsers(); err != nil {
		return fmt.Errorf("failed to generate users: %w", err)
	}

	if err := f.generatePlayers(); err != nil {
		return fmt.Errorf("failed to generate players: %w", err)
	}

	if err := f.generateFinances(); err != nil {
		return fmt.Errorf("failed to generate finances: %w", err)
	}

	matches, err := f.generateMatches()
	if err != nil {
		return fmt.Errorf("failed to generate matches: %w", err)
	}

	log.Printf("Created %d squad players and %d matches", len(aekSquad)+len(realSquad), matches)
	log.Println("Fixtures generated successfully!")
	return nil
}

func (f *Fixtures) generateUsers() error {
	hashedPassword, err := authUtils.HashPassword("password123")
	if err != nil {
		return err
	}

	admin := authModels.User{
		Email:    "admin@liga.local",
		Username: "admin",
		Password: hashedPassword,
		Enabled:  true,
		Roles:    authModels.Roles{authModels.RoleUser, authModels.RoleAdmin},
	}
	if err := f.db.Create(&admin).Error; err != nil {
		return err
	}

	reporter := authModels.User{
		Email:    "reporter@liga.local",
		Username: "reporter",
		Password: hashedPassword,
		Enabled:  true,
		Roles:    authModels.GetDefaultRoles(),
	}
	return f.db.Create(&reporter).Error
}

func (f *Fixtures) generatePlayers() error {
	for _, name := range aekSquad {
		if err := f.db.Create(&models.Player{Name: name, Team: models.TeamAEK}).Error; err != nil {
			return err
		}
	}
	for _, name := range realSquad {
		if err := f.db.Create(&models.Player{Name: name, Team: models.TeamReal}).Error; err != nil {
			return err
		}
	}
	return nil
}

func (f *Fixtures) generateFinances() error {
	for _, team := range []string{models.TeamAEK, models.TeamReal} {
		finance := models.Finance{Team: team, Balance: 2000000, Debt: 0}
		if err := f.db.Where("team = ?", team).FirstOrCreate(&finance).Error; err != nil {
			return err
		}
		if err := f.db.Model(&models.Finance{}).Where("team = ?", team).
			Updates(map[string]interface{}{"balance": 2000000, "debt": 0}).Error; err != nil {
			return err
		}
	}
	return nil
}

// generateMatches books matches through the match service so prizes,
// bonuses and goal tallies end up consistent with real usage.
func (f *Fixtures) generateMatches() (int, error) {
	rng := rand.New(rand.NewSource(42))
	created := 0

	for i := 0; i < 8; i++ {
		date := time.Now().AddDate(0, 0, -7*(8-i)).Format("2006-01-02")

		goalsAEK := rng.Intn(5)
		goalsReal := rng.Intn(5)

		req := models.CreateMatchRequest{
			Date:        date,
			GoalsAEK:    goalsAEK,
			GoalsReal:   goalsReal,
			ScorersAEK:  pickScorers(rng, aekSquad, goalsAEK),
			ScorersReal: pickScorers(rng, realSquad, goalsReal),
			YellowAEK:   rng.Intn(3),
			YellowReal:  rng.Intn(3),
		}

		if goalsAEK > goalsReal {
			req.ManOfTheMatch = aekSquad[rng.Intn(len(aekSquad))]
			req.ManOfTheMatchTeam = models.TeamAEK
		} else if goalsReal > goalsAEK {
			req.ManOfTheMatch = realSquad[rng.Intn(len(realSquad))]
			req.ManOfTheMatchTeam = models.TeamReal
		}

		if _, err := f.matchService.CreateMatch(req); err != nil {
			return created, err
		}
		created++
	}

	return created, nil
}

func pickScorers(rng *rand.Rand, squad []string, goals int) []models.Scorer {
	if goals == 0 {
		return nil
	}

	counts := make(map[string]int)
	for i := 0; i < goals; i++ {
		counts[squad[rng.Intn(len(squad))]]++
	}

	var scorers []models.Scorer
	for player, count := range counts {
		scorers = append(scorers, models.Scorer{Player: player, Count: count})
	}
	return scorers
}

// ClearAllData wipes every fixture table
func (f *Fixtures) ClearAllData() error {
	log.Println("Clearing all fixture data...")

	tables := []string{
		"transactions",
		"bans",
		"spieler_des_spiels",
		"matches",
		"players",
		"finances",
		"users",
	}

	for _, table := range tables {
		if err := f.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	log.Println("All fixture data cleared")
	return nil
}
