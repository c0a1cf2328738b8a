package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/stake-plus/nameguard/src/logging"
	"github.com/stake-plus/nameguard/src/names"
	"github.com/stake-plus/nameguard/src/records"
)

// Engine decides whether a member impersonates a protected member and, if so,
// warns and bans them. It keeps no state between evaluations.
type Engine struct {
	config    ConfigSource
	directory Directory
	actor     Actor
	recorder  Recorder
	logger    *logging.Logger
	contacts  []string
	now       func() time.Time
}

type Option func(*Engine)

func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithRecorder sets the sink for matched outcomes.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// WithAppealContacts sets the names given in the warning DM.
func WithAppealContacts(contacts ...string) Option {
	return func(e *Engine) { e.contacts = append([]string(nil), contacts...) }
}

func New(config ConfigSource, directory Directory, actor Actor, opts ...Option) *Engine {
	e := &Engine{
		config:    config,
		directory: directory,
		actor:     actor,
		logger:    logging.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.Named("engine")
	return e
}

// Evaluate returns the verdict for c. A true verdict means a match occurred,
// whether or not the ban succeeded.
func (e *Engine) Evaluate(ctx context.Context, c Candidate) (bool, error) {
	res, err := e.Run(ctx, c)
	if err != nil {
		return false, err
	}
	return res.Matched, nil
}

// Run drives one candidate through the state machine. An error means the
// verdict could not be computed and no side effect was attempted.
func (e *Engine) Run(ctx context.Context, c Candidate) (Result, error) {
	if logging.TraceID(ctx) == "" {
		ctx = logging.WithTraceID(ctx, "")
	}
	log := e.logger.WithContext(ctx).WithFields(
		zap.String("guild_id", c.GuildID),
		zap.String("user_id", c.UserID),
	)

	reason, err := e.skipReason(ctx, c)
	if err != nil {
		return Result{State: StateStart}, err
	}
	if reason != SkipNone {
		log.Debug("candidate skipped", zap.String("reason", string(reason)))
		return Result{State: StateSkipped, SkipReason: reason}, nil
	}

	protected, configured, err := e.protectedNames(ctx, c)
	if err != nil {
		return Result{State: StateStart}, err
	}
	if !configured {
		log.Debug("no protected roles configured")
		return Result{State: StateUnconfigured}, nil
	}

	name, member, ok := match(c, protected)
	if !ok {
		return Result{State: StateNoMatch}, nil
	}

	res := Result{Matched: true, MatchedName: name, MatchedMember: member}
	log = log.WithFields(
		zap.String("username", c.Username),
		zap.String("nickname", c.Nickname),
		zap.String("matched_name", name),
		zap.String("protected_user_id", member.UserID),
	)
	log.Info("impersonation detected")

	res.State = e.act(ctx, log, c)
	e.record(ctx, log, c, res)
	return res, nil
}

func (e *Engine) skipReason(ctx context.Context, c Candidate) (SkipReason, error) {
	bannable, err := e.directory.IsBannable(ctx, c.GuildID, c.UserID)
	if err != nil {
		return SkipNone, fmt.Errorf("%w: bannable check: %w", ErrDirectoryUnavailable, err)
	}
	if !bannable {
		return SkipNotBannable, nil
	}

	users, err := e.config.ListByTypeAndServer(ctx, records.AllowlistUser, c.GuildID)
	if err != nil {
		return SkipNone, fmt.Errorf("%w: %w", ErrConfigUnavailable, err)
	}
	for _, rec := range users {
		if rec.DiscordObjectID == c.UserID {
			return SkipAllowlistUser, nil
		}
	}

	roles, err := e.config.ListByTypeAndServer(ctx, records.AllowlistRole, c.GuildID)
	if err != nil {
		return SkipNone, fmt.Errorf("%w: %w", ErrConfigUnavailable, err)
	}
	if len(roles) > 0 {
		held := make(map[string]struct{}, len(c.RoleIDs))
		for _, id := range c.RoleIDs {
			held[id] = struct{}{}
		}
		for _, rec := range roles {
			if _, ok := held[rec.DiscordObjectID]; ok {
				return SkipAllowlistRole, nil
			}
		}
	}
	return SkipNone, nil
}

// protectedNames maps each canonical protected display name to one member
// carrying it. configured is false when the guild has no protected roles.
func (e *Engine) protectedNames(ctx context.Context, c Candidate) (map[string]Member, bool, error) {
	recs, err := e.config.ListByTypeAndServer(ctx, records.ProtectedRole, c.GuildID)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrConfigUnavailable, err)
	}
	if len(recs) == 0 {
		return nil, false, nil
	}

	var (
		mu  sync.Mutex
		set = make(map[string]Member)
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, rec := range recs {
		roleID := rec.DiscordObjectID
		g.Go(func() error {
			members, err := e.directory.MembersWithRoles(gctx, c.GuildID, []string{roleID})
			if err != nil {
				return fmt.Errorf("%w: role %s: %w", ErrDirectoryUnavailable, roleID, err)
			}
			mu.Lock()
			defer mu.Unlock()
			for _, m := range members {
				if m.UserID == c.UserID {
					continue
				}
				canonical := names.Normalize(m.DisplayName())
				if canonical == "" {
					continue
				}
				if _, seen := set[canonical]; !seen {
					set[canonical] = m
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, true, err
	}
	return set, true, nil
}

func match(c Candidate, protected map[string]Member) (string, Member, bool) {
	for _, raw := range []string{c.Nickname, c.Username} {
		if raw == "" {
			continue
		}
		canonical := names.Normalize(raw)
		if canonical == "" {
			continue
		}
		if m, ok := protected[canonical]; ok {
			return canonical, m, true
		}
	}
	return "", Member{}, false
}

// act warns then bans. The DM has to go first: once banned, the member shares
// no guild with the bot and cannot be messaged.
func (e *Engine) act(ctx context.Context, log *logging.Logger, c Candidate) State {
	if err := e.actor.SendDirectMessage(ctx, c.UserID, warningMessage(c.GuildName, e.contacts)); err != nil {
		log.Warn("warning DM failed", zap.Error(err))
	}

	if err := e.actor.Ban(ctx, c.GuildID, c.UserID, banReason(c)); err != nil {
		log.Error("ban failed", zap.Error(err), zap.Bool("rate_limited", logging.IsRateLimit(err)))
		return StateBanFailed
	}
	log.Info("member banned")
	return StateBanned
}

func (e *Engine) record(ctx context.Context, log *logging.Logger, c Candidate, res Result) {
	if e.recorder == nil {
		return
	}
	// The evaluation context may already be spent after a slow ban.
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	err := e.recorder.Record(rctx, Outcome{
		Candidate:   c,
		Result:      res,
		TraceID:     logging.TraceID(ctx),
		EvaluatedAt: e.now().UTC(),
	})
	if err != nil {
		log.Warn("failed to record outcome", zap.Error(err))
	}
}
