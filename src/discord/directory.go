package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/stake-plus/nameguard/src/engine"
	"github.com/stake-plus/nameguard/src/logging"
)

// memberPageSize is the REST maximum for List Guild Members.
const memberPageSize = 1000

// Directory resolves role membership and ban hierarchy over REST. The gateway
// member cache is never consulted, so results reflect the guild as it is now.
type Directory struct {
	client    RESTClient
	botUserID string
	logger    *logging.Logger
}

var _ engine.Directory = (*Directory)(nil)

func NewDirectory(client RESTClient, botUserID string, logger *logging.Logger) *Directory {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Directory{client: client, botUserID: botUserID, logger: logger.Named("directory")}
}

// MembersWithRoles lists every guild member holding at least one of roleIDs.
func (d *Directory) MembersWithRoles(ctx context.Context, guildID string, roleIDs []string) ([]engine.Member, error) {
	wanted := make(map[string]struct{}, len(roleIDs))
	for _, id := range roleIDs {
		wanted[id] = struct{}{}
	}

	var (
		out   []engine.Member
		after string
		pages int
	)
	for {
		page, err := d.client.GuildMembers(guildID, after, memberPageSize, discordgo.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("discord: list members of %s: %w", guildID, err)
		}
		pages++
		for _, m := range page {
			if m == nil || m.User == nil || !hasAnyRole(m, wanted) {
				continue
			}
			out = append(out, engine.Member{UserID: m.User.ID, Username: m.User.Username, Nickname: m.Nick})
		}
		if len(page) < memberPageSize || page[len(page)-1].User == nil {
			break
		}
		after = page[len(page)-1].User.ID
	}

	d.logger.WithContext(ctx).Debug("resolved role members",
		zap.String("guild_id", guildID),
		zap.Strings("role_ids", roleIDs),
		zap.Int("pages", pages),
		zap.Int("members", len(out)),
	)
	return out, nil
}

// IsBannable reports whether the bot may ban userID: the target is not the
// owner, the bot holds BAN_MEMBERS or ADMINISTRATOR, and the bot's highest
// role sits strictly above the target's.
func (d *Directory) IsBannable(ctx context.Context, guildID, userID string) (bool, error) {
	if userID == d.botUserID {
		return false, nil
	}

	guild, err := d.client.Guild(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return false, fmt.Errorf("discord: fetch guild %s: %w", guildID, err)
	}
	if guild.OwnerID == userID {
		return false, nil
	}

	target, err := d.client.GuildMember(guildID, userID, discordgo.WithContext(ctx))
	if err != nil {
		if logging.IsDiscordCode(err, discordgo.ErrCodeUnknownMember) {
			return false, nil
		}
		return false, fmt.Errorf("discord: fetch member %s: %w", userID, err)
	}
	if guild.OwnerID == d.botUserID {
		return true, nil
	}

	bot, err := d.client.GuildMember(guildID, d.botUserID, discordgo.WithContext(ctx))
	if err != nil {
		return false, fmt.Errorf("discord: fetch bot member: %w", err)
	}

	roles := make(map[string]*discordgo.Role, len(guild.Roles))
	for _, r := range guild.Roles {
		roles[r.ID] = r
	}

	perms := int64(0)
	if everyone, ok := roles[guild.ID]; ok {
		perms = everyone.Permissions
	}
	for _, id := range bot.Roles {
		if r, ok := roles[id]; ok {
			perms |= r.Permissions
		}
	}
	if perms&(discordgo.PermissionBanMembers|discordgo.PermissionAdministrator) == 0 {
		return false, nil
	}

	return highestPosition(bot.Roles, roles) > highestPosition(target.Roles, roles), nil
}

func highestPosition(memberRoles []string, roles map[string]*discordgo.Role) int {
	top := 0
	for _, id := range memberRoles {
		if r, ok := roles[id]; ok && r.Position > top {
			top = r.Position
		}
	}
	return top
}

func hasAnyRole(m *discordgo.Member, wanted map[string]struct{}) bool {
	for _, role := range m.Roles {
		if _, ok := wanted[role]; ok {
			return true
		}
	}
	return false
}
