package adminapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stake-plus/nameguard/src/actions/core"
	"github.com/stake-plus/nameguard/src/api/handlers"
	"github.com/stake-plus/nameguard/src/api/router"
	"github.com/stake-plus/nameguard/src/config"
	"github.com/stake-plus/nameguard/src/logging"
	"github.com/stake-plus/nameguard/src/records"
)

var _ core.Module = (*Module)(nil)

// Module serves the record administration API.
type Module struct {
	srv    *http.Server
	logger *logging.Logger
	addr   net.Addr
}

func NewModule(cfg config.APIConfig, store records.Store, db handlers.Pinger, logger *logging.Logger) *Module {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logger.Named("adminapi")
	gin.SetMode(gin.ReleaseMode)

	return &Module{
		srv: &http.Server{
			Addr:              cfg.Addr,
			Handler:           router.New(cfg, store, db, logger),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

func (m *Module) Name() string { return "adminapi" }

// Start binds the listener synchronously so address errors surface here.
func (m *Module) Start(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", m.srv.Addr)
	if err != nil {
		return fmt.Errorf("adminapi: listen %s: %w", m.srv.Addr, err)
	}
	m.addr = ln.Addr()
	m.logger.Info("admin API listening", zap.String("addr", m.addr.String()))

	go func() {
		if err := m.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			m.logger.Error("admin API stopped", zap.Error(err))
		}
	}()
	return nil
}

func (m *Module) Stop(ctx context.Context) {
	if err := m.srv.Shutdown(ctx); err != nil {
		m.logger.Warn("admin API shutdown", zap.Error(err))
	}
}

// Addr is the bound address, valid after Start.
func (m *Module) Addr() net.Addr { return m.addr }
