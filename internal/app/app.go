// Package app opens the backing stores named by the configuration and wires
// them into the services shared by the server and the admin CLI.
package app

import (
	"context"
	"fmt"
	"time"

	"careervision/internal/cache"
	"careervision/internal/catalog"
	"careervision/internal/config"
	"careervision/internal/repository"
	"careervision/internal/service"
	"careervision/internal/session"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type App struct {
	Config       *config.Config
	Logger       *zap.Logger
	Catalog      *catalog.Catalog
	RecordRepo   repository.RecordRepo
	SessionCache cache.SessionCache
	Analyzer     session.Analyzer

	closers []func() error
}

// OpenRecordRepo opens only the record store. Used by tools that never run sessions.
func OpenRecordRepo(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: logger}
	if err := a.openRecords(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// New opens every store and builds the analyzer.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: logger}

	cat, err := catalog.Load(cfg.Survey.CatalogPath)
	if err != nil {
		return nil, err
	}
	a.Catalog = cat

	if err := a.openRecords(ctx); err != nil {
		a.Close()
		return nil, err
	}
	if err := a.openSessions(ctx); err != nil {
		a.Close()
		return nil, err
	}
	if err := a.buildAnalyzer(); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) openRecords(ctx context.Context) error {
	switch a.Config.Storage.Driver {
	case "mongo":
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(a.Config.Storage.MongoURI))
		if err != nil {
			return fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		a.closers = append(a.closers, func() error { return client.Disconnect(context.Background()) })

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx, nil); err != nil {
			return fmt.Errorf("failed to ping MongoDB: %w", err)
		}
		a.RecordRepo = repository.NewMongoRecordRepo(client.Database(a.Config.Storage.MongoDatabase))
		a.Logger.Info("record store: mongo", zap.String("database", a.Config.Storage.MongoDatabase))

	default:
		db, err := repository.OpenSQLite(a.Config.Storage.SQLitePath)
		if err != nil {
			return fmt.Errorf("failed to open sqlite: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		a.RecordRepo = repository.NewSQLiteRecordRepo(db)
		a.Logger.Info("record store: sqlite", zap.String("path", a.Config.Storage.SQLitePath))
	}
	return nil
}

func (a *App) openSessions(ctx context.Context) error {
	rc := a.Config.Redis
	if rc.Addr == "" {
		a.SessionCache = cache.NewMemorySessionCache(a.Config.Survey.MaxSessions, rc.SessionTTL)
		a.Logger.Info("session cache: in-process", zap.Int("maxSessions", a.Config.Survey.MaxSessions))
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     rc.Addr,
		Password: rc.Password,
		DB:       rc.DB,
	})
	a.closers = append(a.closers, rdb.Close)

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	a.SessionCache = cache.NewSessionCache(rdb, rc.SessionTTL)
	a.Logger.Info("session cache: redis", zap.String("addr", rc.Addr))
	return nil
}

func (a *App) buildAnalyzer() error {
	ai := a.Config.AI
	if !ai.IsEnabled() {
		a.Analyzer = service.NewOfflineAnalyzer(a.Catalog)
		a.Logger.Warn("GEMINI_API_KEY not set, using offline analyzer")
		return nil
	}
	gw, err := service.NewAnalysisGateway(&ai, a.Catalog, a.Config.AnalysisTimeout(), a.Logger)
	if err != nil {
		return err
	}
	a.Analyzer = gw
	a.Logger.Info("analysis gateway configured",
		zap.String("model", ai.Model),
		zap.Duration("timeout", a.Config.AnalysisTimeout()))
	return nil
}

// Scale is the configured answer range
func (a *App) Scale() session.Scale {
	return session.Scale{Min: a.Config.Survey.ScaleMin, Max: a.Config.Survey.ScaleMax}
}

// Close releases every opened store, most recent first
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.Logger.Warn("close failed", zap.Error(err))
		}
	}
	a.closers = nil
}
