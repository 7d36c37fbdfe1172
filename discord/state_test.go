package discord

import (
	"testing"

	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveGuildCascades(t *testing.T) {
	s := NewState()
	g := NewGuild(snowflake.ID(1))
	s.PutGuild(g)

	s.PutChannel(NewChannel(snowflake.ID(10), g.ID))
	g.AddChannel(snowflake.ID(10))
	s.PutVoiceChannel(&VoiceChannel{ID: snowflake.ID(11), GuildID: g.ID})
	g.AddVoiceChannel(snowflake.ID(11))
	s.PutRole(&Role{ID: snowflake.ID(12), GuildID: g.ID})
	g.AddRole(snowflake.ID(12))

	removed, ok := s.RemoveGuild(g.ID)
	require.True(t, ok)
	assert.Equal(t, g.ID, removed.ID)

	_, ok = s.Channel(snowflake.ID(10))
	assert.False(t, ok, "text channel should be gone with its guild")
	_, ok = s.VoiceChannel(snowflake.ID(11))
	assert.False(t, ok, "voice channel should be gone with its guild")
	_, ok = s.Role(snowflake.ID(12))
	assert.False(t, ok, "role should be gone with its guild")
}

func TestRemoveGuildUnknownID(t *testing.T) {
	s := NewState()
	_, ok := s.RemoveGuild(snowflake.ID(404))
	assert.False(t, ok)
}

func TestPutPrivateChannelDedupesByID(t *testing.T) {
	s := NewState()
	inserted := s.PutPrivateChannel(&PrivateChannel{ID: snowflake.ID(5), RecipientID: snowflake.ID(9)})
	assert.True(t, inserted)

	inserted = s.PutPrivateChannel(&PrivateChannel{ID: snowflake.ID(5), RecipientID: snowflake.ID(9)})
	assert.False(t, inserted, "second insert with the same id should be rejected")

	pc, ok := s.PrivateChannel(snowflake.ID(5))
	require.True(t, ok)
	assert.Equal(t, snowflake.ID(9), pc.RecipientID)
}

func TestResetDiscardsEverything(t *testing.T) {
	s := NewState()
	s.SetSelfID(snowflake.ID(1))
	s.PutGuild(NewGuild(snowflake.ID(2)))
	s.PutUser(NewUser(snowflake.ID(3)))
	s.PutChannel(NewChannel(snowflake.ID(4), snowflake.ID(2)))

	s.Reset()

	_, ok := s.Guild(snowflake.ID(2))
	assert.False(t, ok)
	_, ok = s.User(snowflake.ID(3))
	assert.False(t, ok)
	_, ok = s.Channel(snowflake.ID(4))
	assert.False(t, ok)
}

func TestUserCopyIsDetached(t *testing.T) {
	u := NewUser(snowflake.ID(1))
	guildID := snowflake.ID(2)
	u.SetRolesForGuild(guildID, []snowflake.ID{snowflake.ID(3)})
	nick := "original"
	u.SetNick(guildID, &nick)

	cp := u.Copy()
	u.SetRolesForGuild(guildID, []snowflake.ID{snowflake.ID(3), snowflake.ID(4)})
	changed := "changed"
	u.SetNick(guildID, &changed)

	assert.Equal(t, []snowflake.ID{snowflake.ID(3)}, cp.Roles[guildID])
	require.NotNil(t, cp.Nicks[guildID])
	assert.Equal(t, "original", *cp.Nicks[guildID])
}

func TestEveryoneRoleIDIsGuildID(t *testing.T) {
	g := NewGuild(snowflake.ID(42))
	assert.Equal(t, g.ID, g.EveryoneRoleID())
}

func TestGuildMemberAddRemove(t *testing.T) {
	g := NewGuild(snowflake.ID(1))
	g.AddMember(snowflake.ID(2))
	g.AddMember(snowflake.ID(2))
	assert.Len(t, g.Members, 1, "AddMember should dedupe")

	g.RemoveMember(snowflake.ID(2))
	assert.Empty(t, g.Members)
}

func TestUserVoiceChannelMembership(t *testing.T) {
	u := NewUser(snowflake.ID(1))
	u.JoinVoiceChannel(snowflake.ID(7))
	u.JoinVoiceChannel(snowflake.ID(7))
	assert.Len(t, u.VoiceChannels, 1)
	assert.True(t, u.InVoiceChannel(snowflake.ID(7)))

	u.LeaveVoiceChannel(snowflake.ID(7))
	assert.False(t, u.InVoiceChannel(snowflake.ID(7)))
}

func TestMessageEqual(t *testing.T) {
	m := Message{ID: snowflake.ID(1), Content: "hi", Mentions: []snowflake.ID{snowflake.ID(2)}}
	same := m.Copy()
	assert.True(t, m.Equal(same))

	different := m.Copy()
	different.Content = "edited"
	assert.False(t, m.Equal(different))

	pinned := m.Copy()
	pinned.Pinned = true
	assert.False(t, m.Equal(pinned))
}
