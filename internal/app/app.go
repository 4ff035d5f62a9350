package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/promptdeck/promptdeck/internal/config"
	"github.com/promptdeck/promptdeck/internal/genai"
	"github.com/promptdeck/promptdeck/internal/httpserver"
	"github.com/promptdeck/promptdeck/internal/httpserver/deps"
	"github.com/promptdeck/promptdeck/internal/library"
	"github.com/promptdeck/promptdeck/internal/logger"
	"github.com/promptdeck/promptdeck/internal/redis"
	"github.com/promptdeck/promptdeck/internal/scheduler"
	"github.com/promptdeck/promptdeck/internal/sources/seed"
	redisstore "github.com/promptdeck/promptdeck/internal/store/redis"
	"github.com/promptdeck/promptdeck/internal/utils"
	"github.com/promptdeck/promptdeck/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	lib         *library.Library
	snapshotter *scheduler.Snapshotter
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// The library works volatile-only; Redis is opt-in via DECK_REDIS_ADDR.
	// Unlike a hard dependency, a configured-but-unreachable Redis still
	// fails fast: a silent fallback to volatile would lose data on restart.
	var redisClient *goredis.Client
	var store *redisstore.Store
	if cfg.PersistenceEnabled() {
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			loggerClient.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		loggerClient.Info("Redis initialized successfully")
		redisClient = client
		store = redisstore.NewStore(client)
	} else {
		loggerClient.Info("Redis not configured, library is volatile")
	}

	lib := library.New()

	// Restore persisted records before seeding, so a seed file only fills
	// a genuinely empty library.
	if store != nil {
		restorer := scheduler.NewRestorer(store, lib, loggerClient)
		if err := restorer.Restore(context.Background()); err != nil {
			loggerClient.Warn("failed to restore library from redis, starting empty",
				logger.Error(err))
		}
	}

	if cfg.SeedFile != "" && lib.Len() == 0 {
		seedLibrary(cfg.SeedFile, lib, loggerClient)
	}

	var snapshotter *scheduler.Snapshotter
	if store != nil {
		snapshotter = scheduler.NewSnapshotter(store, lib, loggerClient, cfg.SnapshotInterval)
	}

	facade := genai.New(genai.Config{
		APIKey:        cfg.OpenAIAPIKey,
		BaseURL:       cfg.OpenAIBaseURL,
		GenerateModel: cfg.GenerateModel,
		ChatModel:     cfg.ChatModel,
		ImageModel:    cfg.ImageModel,
		Timeout:       cfg.FacadeTimeout,
	}, loggerClient)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:               loggerClient,
		StartTime:            time.Now(),
		Version:              version.Version,
		Commit:               version.Commit,
		BuildDate:            version.BuildDate,
		GoVersion:            version.GoVersion,
		TimeNow:              time.Now,
		Library:              lib,
		Facade:               facade,
		Store:                store,
		InFlight:             utils.NewInFlight(),
		RedisClient:          redisClient,
		TrustProxy:           cfg.TrustProxy,
		FacadeConfigured:     cfg.OpenAIAPIKey != "",
		GenBurst:             cfg.GenBurst,
		GenRefillPerIPPerMin: cfg.GenRefillPerIPPerMin,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		lib:         lib,
		snapshotter: snapshotter,
	}
}

// seedLibrary imports starter prompts from a YAML file. Best-effort: a
// broken seed file logs a warning and the app starts with an empty library.
func seedLibrary(path string, lib *library.Library, loggerClient logger.Logger) {
	file, err := seed.NewLoader(path).Load()
	if err != nil {
		loggerClient.Warn("failed to load seed file",
			logger.String("path", path),
			logger.Error(err))
		return
	}

	records, err := seed.NewMapper().Map(file)
	if err != nil {
		loggerClient.Warn("seed file contained no usable prompts",
			logger.String("path", path),
			logger.Error(err))
		return
	}

	seeded := 0
	for _, record := range records {
		if err := lib.Add(record); err != nil {
			loggerClient.Warn("skipping seed record",
				logger.String("id", record.ID),
				logger.Error(err))
			continue
		}
		seeded++
	}

	loggerClient.Info("library seeded",
		logger.String("path", path),
		logger.Int("count", seeded))
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting PromptDeck v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("PromptDeck %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.snapshotter != nil {
		if err := a.snapshotter.Start(ctx); err != nil {
			return fmt.Errorf("failed to start snapshotter: %w", err)
		}
		a.logger.Info("library snapshotter started",
			logger.Duration("interval", a.cfg.SnapshotInterval))
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	// Final flush so mutations since the last tick survive the restart.
	if a.snapshotter != nil {
		a.snapshotter.Stop()
		if err := a.snapshotter.Save(shutdownCtx); err != nil {
			a.logger.Warnf("final library snapshot failed: %v", err)
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ PromptDeck stopped cleanly")
	return nil
}
