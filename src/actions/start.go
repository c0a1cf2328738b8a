package actions

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/stake-plus/nameguard/src/actions/adminapi"
	"github.com/stake-plus/nameguard/src/actions/core"
	"github.com/stake-plus/nameguard/src/actions/impersonation"
	"github.com/stake-plus/nameguard/src/audit"
	"github.com/stake-plus/nameguard/src/config"
	"github.com/stake-plus/nameguard/src/engine"
	"github.com/stake-plus/nameguard/src/logging"
	"github.com/stake-plus/nameguard/src/records"
)

// Manager re-exports core.Manager for callers outside the actions tree.
type Manager = core.Manager

// StartAll wires up enabled modules and starts the manager. rdb may be nil,
// in which case outcomes are not recorded.
func StartAll(ctx context.Context, cfg *config.Config, db *gorm.DB, rdb *redis.Client, logger *logging.Logger) (*Manager, error) {
	mgr := core.NewManager(logger)
	store := records.NewGormStore(db, logger)

	if cfg.Filter.Enabled {
		var recorder engine.Recorder
		if rdb != nil {
			recorder = audit.NewStreamRecorder(rdb, cfg.Redis.Stream)
		}
		mod, err := impersonation.NewModule(cfg.Discord.Token, cfg.Filter, store, recorder, logger)
		if err != nil {
			return nil, fmt.Errorf("actions: init impersonation module: %w", err)
		}
		if err := mgr.Add(mod); err != nil {
			return nil, fmt.Errorf("actions: add impersonation module: %w", err)
		}
	} else {
		logger.Info("actions: impersonation filter disabled via configuration")
	}

	if cfg.API.Enabled {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("actions: database handle: %w", err)
		}
		if err := mgr.Add(adminapi.NewModule(cfg.API, store, sqlDB, logger)); err != nil {
			return nil, fmt.Errorf("actions: add admin API module: %w", err)
		}
	} else {
		logger.Info("actions: admin API disabled via configuration")
	}

	if err := mgr.Start(ctx); err != nil {
		return nil, err
	}
	return mgr, nil
}
