package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/stake-plus/nameguard/src/actions"
	"github.com/stake-plus/nameguard/src/config"
	"github.com/stake-plus/nameguard/src/data"
	"github.com/stake-plus/nameguard/src/logging"
	"github.com/stake-plus/nameguard/src/records"
)

const shutdownTimeout = 15 * time.Second

func main() {
	configPath := flag.String("config", envOr("NAMEGUARD_CONFIG", "nameguard.yaml"), "path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	if err := run(cfg, logger); err != nil {
		logger.Error("nameguard exited", zap.Error(err))
		_ = logger.Close()
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Use a single DB connection pool for all modules
	db, err := data.Connect(cfg.Database.URL, data.Options{
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		Logger:       logger.GormLogger(),
	})
	if err != nil {
		return err
	}
	if err := migrate(ctx, db, logger); err != nil {
		return err
	}

	settings, err := data.LoadSettings(ctx, db)
	if err != nil {
		return err
	}
	cfg.ApplySettings(settings)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	var rdb *redis.Client
	if cfg.Redis.URL != "" {
		rdb, err = data.ConnectRedis(ctx, cfg.Redis.URL)
		if err != nil {
			return err
		}
		defer rdb.Close()
	} else {
		logger.Info("redis.url not set; verdict audit stream disabled")
	}

	manager, err := actions.StartAll(ctx, cfg, db, rdb, logger)
	if err != nil {
		return fmt.Errorf("actions start: %w", err)
	}
	logger.Info("nameguard running", zap.Strings("modules", manager.Modules()))

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	manager.Stop(shutdownCtx)
	return nil
}

func migrate(ctx context.Context, db *gorm.DB, logger *logging.Logger) error {
	if err := db.AutoMigrate(&data.Setting{}); err != nil {
		return fmt.Errorf("migrate settings: %w", err)
	}
	if err := records.Migrate(db); err != nil {
		return fmt.Errorf("migrate config records: %w", err)
	}
	if _, err := records.MigrateLegacyTypes(ctx, db, logger); err != nil {
		return err
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
