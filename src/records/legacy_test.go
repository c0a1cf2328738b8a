package records

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stake-plus/nameguard/src/logging"
)

func TestParseObjectType(t *testing.T) {
	cases := map[string]ObjectType{
		"protected_role":    ProtectedRole,
		"HighRankingRole":   ProtectedRole,
		"HIGH_RANKING_ROLE": ProtectedRole,
		"high-ranking role": ProtectedRole,
		"AllowlistRole":     AllowlistRole,
		"whitelist_role":    AllowlistRole,
		" allowlist_user ":  AllowlistUser,
		"AllowlistedUser":   AllowlistUser,
	}
	for in, want := range cases {
		got, err := ParseObjectType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "role", "bannedrole"} {
		_, err := ParseObjectType(bad)
		assert.ErrorIs(t, err, ErrUnknownObjectType, bad)
	}
}

func TestMigrateLegacyTypes(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	require.NoError(t, db.Create(&[]ConfigRecord{
		{ObjectType: "HighRankingRole", DiscordObjectID: "R1", DiscordServerID: "G"},
		{ObjectType: "HighRankingRole", DiscordObjectID: "R2", DiscordServerID: "G"},
		{ObjectType: ProtectedRole, DiscordObjectID: "R2", DiscordServerID: "G"},
		{ObjectType: "AllowlistUser", DiscordObjectID: "U", DiscordServerID: "G"},
		{ObjectType: "mystery", DiscordObjectID: "X", DiscordServerID: "G"},
	}).Error)

	migrated, err := MigrateLegacyTypes(ctx, db, logging.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 3, migrated)

	store := NewGormStore(db, nil)
	protected, err := store.ListByTypeAndServer(ctx, ProtectedRole, "G")
	require.NoError(t, err)
	assert.Len(t, protected, 2)

	users, err := store.ListByTypeAndServer(ctx, AllowlistUser, "G")
	require.NoError(t, err)
	assert.Len(t, users, 1)

	var leftover int64
	require.NoError(t, db.Model(&ConfigRecord{}).Where("object_type NOT IN ?", ObjectTypes).Count(&leftover).Error)
	assert.EqualValues(t, 1, leftover)

	migrated, err = MigrateLegacyTypes(ctx, db, logging.NewNop())
	require.NoError(t, err)
	assert.Zero(t, migrated)
}
