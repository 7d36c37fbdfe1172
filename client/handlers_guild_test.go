package client

import (
	"testing"

	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuad-daoud/discord-gateway/events"
	"github.com/fuad-daoud/discord-gateway/gateway"
)

func TestGuildCreateIngestsEverything(t *testing.T) {
	c := newTestClient()
	seedReady(c)
	got := capture(c, events.TypeGuildCreate)

	c.handleGuildCreate(guildPayload())

	require.Len(t, *got, 1)
	created := (*got)[0].(events.GuildCreate)
	assert.Equal(t, "testers", created.Guild.Name)
	assert.Len(t, created.Guild.Members, 3)

	g, ok := c.State.Guild(snowflake.ID(100))
	require.True(t, ok)
	assert.Equal(t, snowflake.ID(1), g.OwnerID)
	assert.Len(t, g.Channels, 1)
	assert.Len(t, g.VoiceChannels, 2)
	assert.Len(t, g.Roles, 2)

	// members hold their explicit roles plus the implicit everyone role
	alice, ok := c.State.User(snowflake.ID(1))
	require.True(t, ok)
	assert.ElementsMatch(t,
		[]snowflake.ID{snowflake.ID(200), g.EveryoneRoleID()},
		alice.RolesForGuild(g.ID))
	assert.False(t, g.JoinTimes[alice.ID].IsZero())

	bob, ok := c.State.User(snowflake.ID(2))
	require.True(t, ok)
	assert.ElementsMatch(t, []snowflake.ID{g.EveryoneRoleID()}, bob.RolesForGuild(g.ID))
}

func TestUnavailableGuildCreateIsIgnored(t *testing.T) {
	c := newTestClient()
	seedReady(c)
	got := capture(c, events.TypeGuildCreate)

	c.handleGuildCreate(&gateway.GuildObject{ID: "100", Unavailable: true})

	assert.Empty(t, *got)
	_, ok := c.State.Guild(snowflake.ID(100))
	assert.False(t, ok)
}

func TestGuildUpdateNameChange(t *testing.T) {
	c := newTestClient()
	seedReady(c)
	seedGuild(t, c)
	got := capture(c, events.TypeGuildUpdate, events.TypeGuildTransferOwnership)

	c.handleGuildUpdate(&gateway.GuildObject{ID: "100", Name: "renamed", OwnerID: "1"})

	require.Len(t, *got, 1)
	update := (*got)[0].(events.GuildUpdate)
	assert.Equal(t, "testers", update.Old.Name)
	assert.Equal(t, "renamed", update.New.Name)
}

func TestGuildUpdateOwnershipTransferSuppressesGenericUpdate(t *testing.T) {
	c := newTestClient()
	seedReady(c)
	seedGuild(t, c)
	got := capture(c, events.TypeGuildUpdate, events.TypeGuildTransferOwnership)

	c.handleGuildUpdate(&gateway.GuildObject{ID: "100", Name: "renamed too", OwnerID: "2"})

	require.Len(t, *got, 1, "ownership transfer and update are mutually exclusive")
	transfer := (*got)[0].(events.GuildTransferOwnership)
	assert.Equal(t, snowflake.ID(1), transfer.OldOwnerID)
	assert.Equal(t, snowflake.ID(2), transfer.NewOwnerID)
}

func TestGuildUpdateNoChangePublishesNothing(t *testing.T) {
	c := newTestClient()
	seedReady(c)
	seedGuild(t, c)
	got := capture(c, events.TypeGuildUpdate, events.TypeGuildTransferOwnership)

	c.handleGuildUpdate(&gateway.GuildObject{ID: "100", Name: "testers", OwnerID: "1"})

	assert.Empty(t, *got)
}

func TestGuildDeleteLeave(t *testing.T) {
	c := newTestClient()
	seedReady(c)
	seedGuild(t, c)
	got := capture(c, events.TypeGuildLeave, events.TypeGuildUnavailable)

	c.handleGuildDelete(&gateway.GuildObject{ID: "100"})

	require.Len(t, *got, 1)
	leave := (*got)[0].(events.GuildLeave)
	assert.Equal(t, "testers", leave.Guild.Name)

	_, ok := c.State.Guild(snowflake.ID(100))
	assert.False(t, ok)
	_, ok = c.State.Channel(snowflake.ID(300))
	assert.False(t, ok, "owned channels should be gone with the guild")
	_, ok = c.State.Role(snowflake.ID(200))
	assert.False(t, ok, "owned roles should be gone with the guild")
}

func TestGuildDeleteUnavailable(t *testing.T) {
	c := newTestClient()
	seedReady(c)
	seedGuild(t, c)
	got := capture(c, events.TypeGuildLeave, events.TypeGuildUnavailable)

	c.handleGuildDelete(&gateway.GuildObject{ID: "100", Unavailable: true})

	require.Len(t, *got, 1)
	unavailable := (*got)[0].(events.GuildUnavailable)
	assert.Equal(t, snowflake.ID(100), unavailable.GuildID)

	_, ok := c.State.Guild(snowflake.ID(100))
	assert.False(t, ok, "unavailable guild is still removed from the cache")
}
