package core

import (
	"log"
	"time"

	"core/cron"
	"core/handlers"
	"core/services"

	authMiddleware "auth/middleware"
	authModels "auth/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Module struct {
	PoolHandler     *handlers.PoolHandler
	PoolService     *services.PoolService
	MatchHandler    *handlers.MatchHandler
	MatchService    *services.MatchService
	BetHandler      *handlers.BetHandler
	BetService      *services.BetService
	PollHandler     *handlers.PollHandler
	PollService     *services.PollService
	RankingHandler  *handlers.RankingHandler
	RankingService  *services.RankingService
	ActivityHandler *handlers.ActivityHandler
	ActivityService *services.ActivityService
	ScoringService  *services.ScoringService
	StatsHandler    *handlers.StatsHandler
	StatsService    *services.StatsService
	Lifecycle       *services.LifecycleService
	Scheduler       *cron.Scheduler
	db              *gorm.DB
}

// NewModule wires services and handlers. betCutoff is how long before
// kickoff bets lock; cleanup is an optional extra job for the scheduler.
func NewModule(db *gorm.DB, betCutoff time.Duration, cleanup func() error) *Module {
	activityService := services.NewActivityService(db)

	rankingService := services.NewRankingService(db, activityService)
	scoringService := services.NewScoringService(db, rankingService, activityService)

	poolService := services.NewPoolService(db, activityService)
	poolHandler := handlers.NewPoolHandler(poolService)

	matchService := services.NewMatchService(db, scoringService)
	matchHandler := handlers.NewMatchHandler(matchService)

	betService := services.NewBetService(db, activityService, betCutoff)
	betHandler := handlers.NewBetHandler(betService)

	pollService := services.NewPollService(db, activityService)
	pollHandler := handlers.NewPollHandler(pollService)

	rankingHandler := handlers.NewRankingHandler(rankingService)
	activityHandler := handlers.NewActivityHandler(activityService)

	statsService := services.NewStatsService(db)
	statsHandler := handlers.NewStatsHandler(statsService)

	lifecycle := services.NewLifecycleService(db, scoringService, pollService, activityService)
	scheduler := cron.NewScheduler(lifecycle, cleanup)

	return &Module{
		PoolHandler:     poolHandler,
		PoolService:     poolService,
		MatchHandler:    matchHandler,
		MatchService:    matchService,
		BetHandler:      betHandler,
		BetService:      betService,
		PollHandler:     pollHandler,
		PollService:     pollService,
		RankingHandler:  rankingHandler,
		RankingService:  rankingService,
		ActivityHandler: activityHandler,
		ActivityService: activityService,
		ScoringService:  scoringService,
		StatsHandler:    statsHandler,
		StatsService:    statsService,
		Lifecycle:       lifecycle,
		Scheduler:       scheduler,
		db:              db,
	}
}

func (m *Module) SetupRoutes(r *gin.Engine) {
	pools := r.Group("/pools")
	{
		pools.GET("", authMiddleware.OptionalJWTMiddleware(), m.PoolHandler.GetPools)
		pools.GET("/:id", m.PoolHandler.GetPool)
		pools.GET("/:id/ranking", m.RankingHandler.GetPoolRanking)
		pools.POST("", authMiddleware.JWTMiddleware(), m.PoolHandler.CreatePool)
		pools.POST("/join", authMiddleware.JWTMiddleware(), m.PoolHandler.JoinPool)
		pools.PATCH("/:id", authMiddleware.JWTMiddleware(), m.PoolHandler.UpdatePool)
		pools.POST("/:id/publish", authMiddleware.JWTMiddleware(), m.PoolHandler.PublishPool)
		pools.POST("/:id/activate", authMiddleware.JWTMiddleware(), m.PoolHandler.ActivatePool)
		pools.POST("/:id/finish", authMiddleware.JWTMiddleware(), m.PoolHandler.FinishPool)
		pools.POST("/:id/leave", authMiddleware.JWTMiddleware(), m.PoolHandler.LeavePool)
		pools.DELETE("/:id", authMiddleware.JWTMiddleware(), m.PoolHandler.DeletePool)
	}

	matches := r.Group("/matches")
	{
		matches.GET("", m.MatchHandler.GetMatches)
		matches.GET("/upcoming", authMiddleware.JWTMiddleware(), m.MatchHandler.GetUpcomingMatches)
		matches.GET("/:id", m.MatchHandler.GetMatch)
		matches.GET("/:id/bets", authMiddleware.JWTMiddleware(), m.BetHandler.GetMatchBets)
		matches.POST("", authMiddleware.JWTMiddleware(), m.MatchHandler.CreateMatch)
		matches.PATCH("/:id", authMiddleware.JWTMiddleware(), m.MatchHandler.UpdateMatch)
		matches.POST("/:id/cancel", authMiddleware.JWTMiddleware(), m.MatchHandler.CancelMatch)
		matches.DELETE("/:id", authMiddleware.JWTMiddleware(), authMiddleware.RequireRole(m.db, authModels.RoleAdmin), m.MatchHandler.DeleteMatch)
	}

	bets := r.Group("/bets")
	{
		bets.POST("", authMiddleware.JWTMiddleware(), m.BetHandler.PlaceBet)
		bets.GET("/me", authMiddleware.JWTMiddleware(), m.BetHandler.GetMyBets)
	}

	polls := r.Group("/polls")
	{
		polls.GET("", m.PollHandler.GetPolls)
		polls.GET("/:id", authMiddleware.OptionalJWTMiddleware(), m.PollHandler.GetPoll)
		polls.POST("", authMiddleware.JWTMiddleware(), authMiddleware.RequireRole(m.db, authModels.RoleAdmin), m.PollHandler.CreatePoll)
		polls.POST("/:id/publish", authMiddleware.JWTMiddleware(), m.PollHandler.PublishPoll)
		polls.POST("/:id/close", authMiddleware.JWTMiddleware(), m.PollHandler.ClosePoll)
		polls.POST("/:id/vote", authMiddleware.JWTMiddleware(), m.PollHandler.Vote)
		polls.DELETE("/:id", authMiddleware.JWTMiddleware(), m.PollHandler.DeletePoll)
	}

	rankings := r.Group("/rankings")
	{
		rankings.GET("/global", m.RankingHandler.GetGlobalRanking)
	}

	activities := r.Group("/activities")
	{
		activities.GET("", m.ActivityHandler.GetRecentActivities)
		activities.GET("/me", authMiddleware.JWTMiddleware(), m.ActivityHandler.GetMyActivities)
	}

	notifications := r.Group("/notifications")
	{
		notifications.GET("", authMiddleware.JWTMiddleware(), m.ActivityHandler.GetMyNotifications)
		notifications.GET("/unread-count", authMiddleware.JWTMiddleware(), m.ActivityHandler.CountUnread)
		notifications.POST("/:id/read", authMiddleware.JWTMiddleware(), m.ActivityHandler.MarkRead)
		notifications.POST("/read-all", authMiddleware.JWTMiddleware(), m.ActivityHandler.MarkAllRead)
	}

	r.GET("/stats", m.StatsHandler.GetStats)
	r.GET("/stats/me", authMiddleware.JWTMiddleware(), m.StatsHandler.GetMyStats)
}

// StartScheduler starts the cron scheduler for lifecycle jobs
func (m *Module) StartScheduler() error {
	log.Println("Starting core module scheduler...")
	return m.Scheduler.Start()
}

// StopScheduler stops the cron scheduler
func (m *Module) StopScheduler() {
	log.Println("Stopping core module scheduler...")
	m.Scheduler.Stop()
}

// RunLifecycleNow manually triggers a lifecycle pass (useful for testing)
func (m *Module) RunLifecycleNow() {
	log.Println("Manually triggering lifecycle pass...")
	m.Scheduler.RunNow()
}
