package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stake-plus/nameguard/src/engine"
)

const (
	testGuild = "G"
	botID     = "BOT"
)

type fakeClient struct {
	guild   *discordgo.Guild
	members []*discordgo.Member
	pages   []string

	listErr error
	dmErr   error
	banErr  error

	dmChannel string
	dmText    string
	banned    []string
	banDays   int
}

func (f *fakeClient) Guild(string, ...discordgo.RequestOption) (*discordgo.Guild, error) {
	if f.guild == nil {
		return nil, errors.New("no guild")
	}
	return f.guild, nil
}

func (f *fakeClient) GuildMember(_ string, userID string, _ ...discordgo.RequestOption) (*discordgo.Member, error) {
	for _, m := range f.members {
		if m.User.ID == userID {
			return m, nil
		}
	}
	return nil, &discordgo.RESTError{
		Response: &http.Response{StatusCode: http.StatusNotFound},
		Message:  &discordgo.APIErrorMessage{Code: discordgo.ErrCodeUnknownMember, Message: "Unknown Member"},
	}
}

func (f *fakeClient) GuildMembers(_ string, after string, limit int, _ ...discordgo.RequestOption) ([]*discordgo.Member, error) {
	f.pages = append(f.pages, after)
	if f.listErr != nil {
		return nil, f.listErr
	}
	start := 0
	if after != "" {
		for i, m := range f.members {
			if m.User.ID == after {
				start = i + 1
			}
		}
	}
	end := start + limit
	if end > len(f.members) {
		end = len(f.members)
	}
	return f.members[start:end], nil
}

func (f *fakeClient) UserChannelCreate(recipientID string, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	return &discordgo.Channel{ID: "dm-" + recipientID}, nil
}

func (f *fakeClient) ChannelMessageSend(channelID, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	if f.dmErr != nil {
		return nil, f.dmErr
	}
	f.dmChannel, f.dmText = channelID, content
	return &discordgo.Message{ChannelID: channelID, Content: content}, nil
}

func (f *fakeClient) GuildBanCreateWithReason(_, userID, _ string, days int, _ ...discordgo.RequestOption) error {
	if f.banErr != nil {
		return f.banErr
	}
	f.banned = append(f.banned, userID)
	f.banDays = days
	return nil
}

func member(id, name, nick string, roles ...string) *discordgo.Member {
	return &discordgo.Member{User: &discordgo.User{ID: id, Username: name}, Nick: nick, Roles: roles}
}

func hierarchyGuild() *fakeClient {
	return &fakeClient{
		guild: &discordgo.Guild{
			ID:      testGuild,
			OwnerID: "OWNER",
			Roles: []*discordgo.Role{
				{ID: testGuild, Position: 0},
				{ID: "mod", Position: 5, Permissions: discordgo.PermissionBanMembers},
				{ID: "bot", Position: 3, Permissions: discordgo.PermissionBanMembers},
				{ID: "member", Position: 1},
			},
		},
		members: []*discordgo.Member{
			member("OWNER", "owner", ""),
			member(botID, "nameguard", "", "bot"),
			member("M", "moderator", "", "mod"),
			member("U", "user", "", "member"),
		},
	}
}

func TestMembersWithRolesPages(t *testing.T) {
	client := &fakeClient{}
	for i := 0; i < memberPageSize+5; i++ {
		roles := []string{"member"}
		if i%500 == 0 {
			roles = append(roles, "mod")
		}
		client.members = append(client.members, member(fmt.Sprintf("%05d", i), fmt.Sprintf("user%d", i), "", roles...))
	}
	client.members[1000].Nick = "Chief"

	dir := NewDirectory(client, botID, nil)
	got, err := dir.MembersWithRoles(context.Background(), testGuild, []string{"mod"})
	require.NoError(t, err)

	assert.Equal(t, []string{"", "00999"}, client.pages)
	require.Len(t, got, 3)
	assert.Equal(t, engine.Member{UserID: "01000", Username: "user1000", Nickname: "Chief"}, got[2])
}

func TestMembersWithRolesError(t *testing.T) {
	client := &fakeClient{listErr: errors.New("502")}
	_, err := NewDirectory(client, botID, nil).MembersWithRoles(context.Background(), testGuild, []string{"mod"})
	assert.Error(t, err)
}

func TestIsBannable(t *testing.T) {
	cases := []struct {
		name   string
		target string
		mutate func(*fakeClient)
		want   bool
	}{
		{name: "regular member", target: "U", want: true},
		{name: "owner", target: "OWNER", want: false},
		{name: "higher role", target: "M", want: false},
		{name: "bot itself", target: botID, want: false},
		{name: "left the guild", target: "GONE", want: false},
		{
			name:   "equal position",
			target: "U",
			mutate: func(c *fakeClient) { c.guild.Roles[3].Position = 3 },
			want:   false,
		},
		{
			name:   "no ban permission",
			target: "U",
			mutate: func(c *fakeClient) { c.guild.Roles[2].Permissions = discordgo.PermissionSendMessages },
			want:   false,
		},
		{
			name:   "administrator",
			target: "U",
			mutate: func(c *fakeClient) { c.guild.Roles[2].Permissions = discordgo.PermissionAdministrator },
			want:   true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := hierarchyGuild()
			if tc.mutate != nil {
				tc.mutate(client)
			}
			ok, err := NewDirectory(client, botID, nil).IsBannable(context.Background(), testGuild, tc.target)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}
}

func TestIsBannableGuildError(t *testing.T) {
	_, err := NewDirectory(&fakeClient{}, botID, nil).IsBannable(context.Background(), testGuild, "U")
	assert.Error(t, err)
}

func TestActor(t *testing.T) {
	client := &fakeClient{}
	actor := NewActor(client, nil)

	require.NoError(t, actor.SendDirectMessage(context.Background(), "U", "hello"))
	assert.Equal(t, "dm-U", client.dmChannel)
	assert.Equal(t, "hello", client.dmText)

	require.NoError(t, actor.Ban(context.Background(), testGuild, "U", "reason"))
	assert.Equal(t, []string{"U"}, client.banned)
	assert.Zero(t, client.banDays)

	client.dmErr = &discordgo.RESTError{
		Response: &http.Response{StatusCode: http.StatusForbidden},
		Message:  &discordgo.APIErrorMessage{Code: discordgo.ErrCodeCannotSendMessagesToThisUser},
	}
	assert.Error(t, actor.SendDirectMessage(context.Background(), "U", "hello"))

	client.banErr = errors.New("missing permissions")
	assert.Error(t, actor.Ban(context.Background(), testGuild, "U", "reason"))
}
