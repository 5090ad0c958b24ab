package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"dealer-app-go/internal/config"
	"dealer-app-go/internal/db"
	annotationsdomain "dealer-app-go/internal/domain/annotations"
	authdomain "dealer-app-go/internal/domain/auth"
	depositsdomain "dealer-app-go/internal/domain/deposits"
	"dealer-app-go/internal/repository/inmemory"
	annotationsrepo "dealer-app-go/internal/repository/postgres/annotations"
	depositsrepo "dealer-app-go/internal/repository/postgres/deposits"
	redisrepo "dealer-app-go/internal/repository/redis"
	"dealer-app-go/internal/transport/httpserver"
	"dealer-app-go/internal/transport/httpserver/handler"
	"dealer-app-go/internal/transport/httpserver/middleware"
	"dealer-app-go/pkg/logger"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const metricsNamespace = "dealer"

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
	redis      *goredis.Client
}

func New(ctx context.Context, log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}
	application := &App{cfg: cfg, db: dbConn}

	if cfg.DB.AutoMigrate {
		log.Info("app: applying migrations")
		if err := db.Migrate(ctx, dbConn); err != nil {
			_ = application.Close()
			return nil, err
		}
	}

	feeds, err := application.feedCache(ctx, log)
	if err != nil {
		_ = application.Close()
		return nil, err
	}

	verifier, err := authdomain.NewStaticVerifier(cfg.Auth.Users)
	if err != nil {
		_ = application.Close()
		return nil, fmt.Errorf("auth users: %w", err)
	}
	if verifier.Len() == 0 {
		log.Warn("app: no users configured, login is disabled")
	}
	auth := authdomain.NewService(verifier, authdomain.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL))

	stores := annotationsrepo.NewPostgresStores(dbConn)
	annotations := annotationsdomain.NewService(stores, feeds)
	feed := annotationsdomain.NewAggregator(stores, feeds, cfg.Cache.TTL)
	deposits := depositsdomain.NewService(depositsrepo.NewPostgres(dbConn), feeds)

	log.Info("app: initializing router")
	handlers := handler.New(auth, deposits, annotations, feed, log)
	router := httpserver.NewRouter(cfg, handlers, auth, middleware.NewMetrics(metricsNamespace), log)

	log.Info("app: initializing http server")
	application.httpServer = httpserver.New(cfg, router)
	return application, nil
}

func (a *App) feedCache(ctx context.Context, log logger.Logger) (annotationsdomain.FeedCache, error) {
	switch strings.ToLower(strings.TrimSpace(a.cfg.Cache.Driver)) {
	case "", "none":
		log.Info("app: reminder feed cache disabled")
		return annotationsdomain.NoopFeedCache(), nil
	case "memory":
		log.Info("app: reminder feed cache in memory", "ttl", a.cfg.Cache.TTL)
		return inmemory.NewInMemoryFeedCache(), nil
	case "redis":
		log.Info("app: reminder feed cache in redis", "addr", a.cfg.Redis.Addr, "ttl", a.cfg.Cache.TTL)
		client, err := redisrepo.Open(ctx, a.cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		a.redis = client
		return redisrepo.NewFeedCache(client, a.cfg.Redis.KeyPrefix, log), nil
	default:
		return nil, fmt.Errorf("unknown CACHE_DRIVER %q", a.cfg.Cache.Driver)
	}
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) ShutdownTimeout() time.Duration {
	return a.cfg.ShutdownTimeout
}

func (a *App) Close() error {
	var errs []error
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.db != nil {
		sqlDB, err := a.db.DB()
		if err != nil {
			errs = append(errs, err)
		} else {
			errs = append(errs, sqlDB.Close())
		}
	}
	return errors.Join(errs...)
}
