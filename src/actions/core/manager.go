package core

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/stake-plus/nameguard/src/logging"
)

// Module is a long-running component with an explicit lifecycle.
type Module interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context)
}

var (
	ErrStarted    = errors.New("actions: manager already started")
	ErrAddStarted = errors.New("actions: cannot add modules after start")
)

// Manager starts modules in registration order and stops them in reverse.
type Manager struct {
	mu      sync.Mutex
	modules []Module
	started []Module
	logger  *logging.Logger
}

func NewManager(logger *logging.Logger, mods ...Module) *Manager {
	if logger == nil {
		logger = logging.NewNop()
	}
	m := &Manager{logger: logger.Named("actions")}
	for _, mod := range mods {
		if mod != nil {
			m.modules = append(m.modules, mod)
		}
	}
	return m
}

// Add registers a module before Start.
func (m *Manager) Add(mod Module) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started != nil {
		return ErrAddStarted
	}
	if mod != nil {
		m.modules = append(m.modules, mod)
	}
	return nil
}

// Modules returns the registered module names in start order.
func (m *Manager) Modules() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.modules))
	for _, mod := range m.modules {
		names = append(names, mod.Name())
	}
	return names
}

// Start starts every module. On failure the modules already running are
// stopped and the manager may be started again.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started != nil {
		return ErrStarted
	}

	started := make([]Module, 0, len(m.modules))
	for _, mod := range m.modules {
		if err := mod.Start(ctx); err != nil {
			m.stopAll(ctx, started)
			return fmt.Errorf("module %s failed: %w", mod.Name(), err)
		}
		m.logger.Info("module started", zap.String("module", mod.Name()))
		started = append(started, mod)
	}
	m.started = started
	return nil
}

func (m *Manager) Stop(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopAll(ctx, m.started)
	m.started = nil
}

func (m *Manager) stopAll(ctx context.Context, mods []Module) {
	for i := len(mods) - 1; i >= 0; i-- {
		m.logger.Info("stopping module", zap.String("module", mods[i].Name()))
		mods[i].Stop(ctx)
	}
}
