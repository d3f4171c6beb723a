package league

import (
	"log"

	"liga-api/packages/league/cache"
	"liga-api/packages/league/cron"
	"liga-api/packages/league/handlers"
	"liga-api/packages/league/services"

	authMiddleware "liga-api/packages/auth/middleware"
	authModels "liga-api/packages/auth/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Module struct {
	MatchHandler   *handlers.MatchHandler
	MatchService   *services.MatchService
	FinanceHandler *handlers.FinanceHandler
	FinanceService *services.FinanceService
	PlayerHandler  *handlers.PlayerHandler
	PlayerService  *services.PlayerService
	BanHandler     *handlers.BanHandler
	BanService     *services.BanService
	StatsHandler   *handlers.StatsHandler
	StatsService   *services.StatsService
	Cache          *cache.Cache
	Scheduler      *cron.Scheduler
	db             *gorm.DB
}

func NewModule(db *gorm.DB, notifier *cache.Notifier) *Module {
	dataCache := cache.New(db, notifier)

	financeService := services.NewFinanceService(db)
	statsService := services.NewStatsService(db)
	playerService := services.NewPlayerService(db)
	banService := services.NewBanService(db)
	matchService := services.NewMatchService(db, financeService, statsService, banService)

	matchHandler := handlers.NewMatchHandler(matchService, dataCache)
	financeHandler := handlers.NewFinanceHandler(financeService)
	playerHandler := handlers.NewPlayerHandler(playerService)
	banHandler := handlers.NewBanHandler(banService)
	statsHandler := handlers.NewStatsHandler(statsService)

	scheduler := cron.NewScheduler(dataCache)

	return &Module{
		MatchHandler:   matchHandler,
		MatchService:   matchService,
		FinanceHandler: financeHandler,
		FinanceService: financeService,
		PlayerHandler:  playerHandler,
		PlayerService:  playerService,
		BanHandler:     banHandler,
		BanService:     banService,
		StatsHandler:   statsHandler,
		StatsService:   statsService,
		Cache:          dataCache,
		Scheduler:      scheduler,
		db:             db,
	}
}

func (m *Module) SetupRoutes(r *gin.Engine) {
	matches := r.Group("/matches")
	{
		matches.GET("", m.MatchHandler.GetMatches)
		matches.GET("/recent", m.MatchHandler.GetRecentMatches)
		matches.GET("/:id", m.MatchHandler.GetMatch)
		matches.POST("", authMiddleware.JWTMiddleware(), m.MatchHandler.CreateMatch)
		matches.PUT("/:id", authMiddleware.JWTMiddleware(), m.MatchHandler.UpdateMatch)
		matches.DELETE("/:id", authMiddleware.JWTMiddleware(), authMiddleware.RequireRole(m.db, authModels.RoleAdmin), m.MatchHandler.DeleteMatch)
	}

	finances := r.Group("/finances")
	{
		finances.GET("", m.FinanceHandler.GetFinances)
		finances.POST("/book", authMiddleware.JWTMiddleware(), authMiddleware.RequireRole(m.db, authModels.RoleAdmin), m.FinanceHandler.CreateBookEntry)
	}

	r.GET("/transactions", m.FinanceHandler.GetTransactions)

	players := r.Group("/players")
	{
		players.GET("", m.PlayerHandler.GetPlayers)
		players.GET("/top", m.PlayerHandler.GetTopScorers)
		players.POST("", authMiddleware.JWTMiddleware(), m.PlayerHandler.CreatePlayer)
	}

	bans := r.Group("/bans")
	{
		bans.GET("", m.BanHandler.GetBans)
		bans.POST("", authMiddleware.JWTMiddleware(), m.BanHandler.CreateBan)
		bans.DELETE("/:id", authMiddleware.JWTMiddleware(), authMiddleware.RequireRole(m.db, authModels.RoleAdmin), m.BanHandler.DeleteBan)
	}

	r.GET("/stats", m.StatsHandler.GetStats)
	r.GET("/sds", m.StatsHandler.GetSdSTable)
}

// StartCache loads the initial snapshot and subscribes to table changes.
func (m *Module) StartCache() {
	m.Cache.Subscribe(nil)
	if err := m.Scheduler.ReloadNow(); err != nil {
		log.Printf("Initial cache load failed: %v", err)
	}
}

// StartScheduler starts the cron scheduler for periodic reconciliation
func (m *Module) StartScheduler() error {
	log.Println("Starting league module scheduler...")
	return m.Scheduler.Start()
}

// StopScheduler stops the cron scheduler
func (m *Module) StopScheduler() {
	log.Println("Stopping league module scheduler...")
	m.Scheduler.Stop()
}
