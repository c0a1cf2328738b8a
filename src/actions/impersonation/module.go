package impersonation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/stake-plus/nameguard/src/actions/core"
	"github.com/stake-plus/nameguard/src/config"
	shareddiscord "github.com/stake-plus/nameguard/src/discord"
	"github.com/stake-plus/nameguard/src/engine"
	"github.com/stake-plus/nameguard/src/logging"
	"github.com/stake-plus/nameguard/src/records"
)

var _ core.Module = (*Module)(nil)

const defaultTimeout = 30 * time.Second

type evaluator interface {
	Run(ctx context.Context, c engine.Candidate) (engine.Result, error)
}

// Module watches member updates and runs each identity change through the
// impersonation engine.
type Module struct {
	session   *discordgo.Session
	store     records.Store
	recorder  engine.Recorder
	contacts  []string
	timeout   time.Duration
	logger    *logging.Logger
	engine    evaluator
	botUserID string

	runtimeCtx context.Context
	cancel     context.CancelFunc
	inflight   sync.WaitGroup
}

// NewModule prepares a gateway session. recorder may be nil.
func NewModule(token string, cfg config.FilterConfig, store records.Store, recorder engine.Recorder, logger *logging.Logger) (*Module, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers

	timeout := cfg.EvaluationTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Module{
		session:  session,
		store:    store,
		recorder: recorder,
		contacts: cfg.AppealContacts,
		timeout:  timeout,
		logger:   logger.Named("impersonation"),
	}, nil
}

func (m *Module) Name() string { return "impersonation" }

func (m *Module) Start(ctx context.Context) error {
	me, err := m.session.User("@me", discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("impersonation: resolve bot user: %w", err)
	}
	m.botUserID = me.ID

	opts := []engine.Option{
		engine.WithLogger(m.logger),
		engine.WithAppealContacts(m.contacts...),
	}
	if m.recorder != nil {
		opts = append(opts, engine.WithRecorder(m.recorder))
	}
	m.engine = engine.New(
		m.store,
		shareddiscord.NewDirectory(m.session, m.botUserID, m.logger),
		shareddiscord.NewActor(m.session, m.logger),
		opts...,
	)

	m.runtimeCtx, m.cancel = context.WithCancel(context.WithoutCancel(ctx))
	m.session.AddHandler(m.onReady)
	m.session.AddHandler(m.onGuildMemberUpdate)

	if err := m.session.Open(); err != nil {
		m.cancel()
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}
	return nil
}

// Stop closes the gateway, cancels running evaluations and waits for them.
func (m *Module) Stop(ctx context.Context) {
	if err := m.session.Close(); err != nil {
		m.logger.Warn("closing Discord session", zap.Error(err))
	}
	if m.cancel != nil {
		m.cancel()
	}

	done := make(chan struct{})
	go func() {
		m.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		m.logger.Warn("evaluations still running at shutdown")
	}
}

func (m *Module) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	m.logger.Info("connected to gateway",
		zap.String("user", r.User.Username),
		zap.Int("guilds", len(r.Guilds)),
	)
}
