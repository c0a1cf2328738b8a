package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/stake-plus/nameguard/src/engine"
	"github.com/stake-plus/nameguard/src/logging"
)

// Actor sends warnings and bans through the REST API.
type Actor struct {
	client RESTClient
	logger *logging.Logger
}

var _ engine.Actor = (*Actor)(nil)

func NewActor(client RESTClient, logger *logging.Logger) *Actor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Actor{client: client, logger: logger.Named("actor")}
}

func (a *Actor) SendDirectMessage(ctx context.Context, userID, text string) error {
	channel, err := a.client.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("discord: open DM with %s: %w", userID, err)
	}

	if _, err := a.client.ChannelMessageSend(channel.ID, text, discordgo.WithContext(ctx)); err != nil {
		if logging.IsDiscordCode(err, discordgo.ErrCodeCannotSendMessagesToThisUser) {
			a.logger.WithContext(ctx).Info("member does not accept direct messages", zap.String("user_id", userID))
		}
		return fmt.Errorf("discord: send DM to %s: %w", userID, err)
	}
	return nil
}

// Ban bans without deleting message history.
func (a *Actor) Ban(ctx context.Context, guildID, userID, reason string) error {
	if err := a.client.GuildBanCreateWithReason(guildID, userID, reason, 0, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("discord: ban %s in %s: %w", userID, guildID, err)
	}
	return nil
}
