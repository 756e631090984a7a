package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/templui/smartgoals"
	"github.com/templui/smartgoals/internal/config"
	"github.com/templui/smartgoals/internal/db"
	"github.com/templui/smartgoals/internal/metrics"
	"github.com/templui/smartgoals/internal/repository"
	"github.com/templui/smartgoals/internal/service"
)

const helpFile = "content/help.md"

type App struct {
	Cfg            *config.Config
	DB             *sqlx.DB
	Metrics        metrics.Recorder
	MetricsHandler http.Handler // nil when metrics are disabled
	GoalService    *service.GoalService
	HelpService    *service.HelpService
	SitemapService *service.SitemapService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection, db.PoolOptions{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return NewWithDB(cfg, database), nil
}

// NewWithDB wires the services on top of an already migrated database.
func NewWithDB(cfg *config.Config, database *sqlx.DB) *App {
	// Metrics
	var recorder metrics.Recorder = metrics.NewNoop()
	var metricsHandler http.Handler
	if cfg.MetricsEnabled {
		collector := metrics.NewCollector()
		recorder = collector
		metricsHandler = collector.Handler()
	}

	// Repositories
	goalRepository := repository.NewGoalRepository(database)
	checkinRepository := repository.NewCheckinRepository(database)

	// Services
	goalService := service.NewGoalService(goalRepository, checkinRepository, recorder)
	helpService := service.NewHelpService(smartgoals.ContentFS, helpFile)
	sitemapService := service.NewSitemapService(cfg.AppURL)

	return &App{
		Cfg:            cfg,
		DB:             database,
		Metrics:        recorder,
		MetricsHandler: metricsHandler,
		GoalService:    goalService,
		HelpService:    helpService,
		SitemapService: sitemapService,
	}
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
