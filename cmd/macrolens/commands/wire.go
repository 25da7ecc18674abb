package commands

import (
	"fmt"

	"github.com/macrolens/backend/internal/engine"
	"github.com/macrolens/backend/internal/external/calendar"
	"github.com/macrolens/backend/internal/external/fred"
	"github.com/macrolens/backend/internal/factors"
	"github.com/macrolens/backend/internal/store"
	"github.com/macrolens/backend/internal/weights"
	"github.com/macrolens/backend/pkg/config"
	"github.com/macrolens/backend/pkg/database"
	"github.com/macrolens/backend/pkg/httputil"
	"github.com/macrolens/backend/pkg/logger"
	"github.com/macrolens/backend/pkg/redis"
)

// app bundles the wired dependencies shared by the commands.
type app struct {
	cfg   *config.Config
	log   *logger.Logger
	db    *database.DB
	redis *redis.Client

	table    *weights.Table
	universe *weights.Universe

	observations *store.ObservationRepository
	correlations *store.CorrelationRepository
	snapshots    *store.FactorSnapshotRepository
	calendar     *store.CalendarRepository
	history      *store.SignalHistoryRepository

	provider *fred.Client
	scraper  *calendar.Scraper
	deriver  *factors.Deriver
	engine   *engine.Engine
}

// initApp loads config, validates the engine configuration and wires
// every component. A bad weight table aborts here, before serving.
func initApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	table, err := weights.LoadTable(cfg.Engine.WeightsPath)
	if err != nil {
		return nil, fmt.Errorf("load weight table: %w", err)
	}
	universe, err := weights.LoadUniverse(cfg.Engine.UniversePath, table)
	if err != nil {
		return nil, fmt.Errorf("load universe: %w", err)
	}

	if hash, err := weights.Hash(table); err == nil {
		log.WithFields(map[string]interface{}{
			"version": table.Version,
			"hash":    hash[:12],
			"assets":  len(universe.Assets),
		}).Info("Engine configuration loaded")
	}

	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	redisClient, err := redis.New(cfg)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	a := &app{
		cfg:      cfg,
		log:      log,
		db:       db,
		redis:    redisClient,
		table:    table,
		universe: universe,
	}

	a.observations = store.NewObservationRepository(db.Pool)
	a.correlations = store.NewCorrelationRepository(db.Pool)
	a.snapshots = store.NewFactorSnapshotRepository(db.Pool)
	a.calendar = store.NewCalendarRepository(db.Pool)
	a.history = store.NewSignalHistoryRepository(db.Pool)

	cache := redis.NewCache(redisClient, "macrolens")
	limiter := redis.NewRateLimiter(redisClient, "macrolens")

	providerHTTP := httputil.New(log).WithRateLimiter(limiter, redis.FREDRateLimit)
	a.provider = fred.New(providerHTTP, cache, cfg.FRED, log)

	scraperHTTP := httputil.New(log).WithRateLimiter(limiter, redis.CalendarRateLimit)
	a.scraper = calendar.New(scraperHTTP, cfg.Calendar, log)

	a.deriver = factors.NewDeriver(a.observations, nil, log)

	a.engine = engine.New(engine.Deps{
		Observations: a.observations,
		Correlations: a.correlations,
		Snapshots:    a.snapshots,
		Calendar:     a.calendar,
		History:      a.history,
		Universe:     universe,
		Table:        table,
		Logger:       log,
	})

	return a, nil
}

// close releases the app resources.
func (a *app) close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
}
