package impersonation

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/stake-plus/nameguard/src/engine"
	"github.com/stake-plus/nameguard/src/logging"
)

func (m *Module) onGuildMemberUpdate(s *discordgo.Session, u *discordgo.GuildMemberUpdate) {
	c, ok := candidateFromUpdate(u, m.botUserID)
	if !ok {
		return
	}
	if s != nil && s.State != nil {
		if g, err := s.State.Guild(c.GuildID); err == nil {
			c.GuildName = g.Name
		}
	}
	m.handle(m.runtimeCtx, c)
}

// handle evaluates one candidate under its own trace id and deadline.
func (m *Module) handle(parent context.Context, c engine.Candidate) {
	m.inflight.Add(1)
	defer m.inflight.Done()

	ctx, cancel := context.WithTimeout(logging.WithTraceID(parent, ""), m.timeout)
	defer cancel()

	log := m.logger.WithContext(ctx).WithFields(
		zap.String("guild_id", c.GuildID),
		zap.String("user_id", c.UserID),
	)

	res, err := m.engine.Run(ctx, c)
	if err != nil {
		log.Error("evaluation aborted", zap.Error(err))
		return
	}
	if res.Matched {
		log.Info("evaluation finished", zap.Stringer("state", res.State), zap.String("matched_name", res.MatchedName))
		return
	}
	log.Debug("evaluation finished", zap.Stringer("state", res.State))
}

// candidateFromUpdate builds the engine input for a member update. Updates
// that leave both nickname and username untouched are ignored.
func candidateFromUpdate(u *discordgo.GuildMemberUpdate, botUserID string) (engine.Candidate, bool) {
	if u == nil || u.Member == nil || u.User == nil {
		return engine.Candidate{}, false
	}
	if u.User.ID == botUserID {
		return engine.Candidate{}, false
	}
	if before := u.BeforeUpdate; before != nil && before.User != nil {
		if before.Nick == u.Nick && before.User.Username == u.User.Username {
			return engine.Candidate{}, false
		}
	}

	return engine.Candidate{
		GuildID:  u.GuildID,
		UserID:   u.User.ID,
		Username: u.User.Username,
		Nickname: u.Nick,
		RoleIDs:  append([]string(nil), u.Roles...),
	}, true
}
