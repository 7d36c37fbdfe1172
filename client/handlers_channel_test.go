package client

import (
	"testing"

	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuad-daoud/discord-gateway/events"
	"github.com/fuad-daoud/discord-gateway/gateway"
)

func TestChannelCreateText(t *testing.T) {
	c := newTestClient()
	seedReady(c)
	seedGuild(t, c)
	got := capture(c, events.TypeChannelCreate)

	c.handleChannelCreate(&gateway.ChannelObject{
		ID: "310", GuildID: "100", Name: "random", Topic: "anything", Type: "text",
	})

	require.Len(t, *got, 1)
	created := (*got)[0].(events.ChannelCreate)
	assert.Equal(t, "random", created.Channel.Name)

	g, _ := c.State.Guild(snowflake.ID(100))
	assert.Contains(t, g.Channels, snowflake.ID(310))
}

func TestChannelCreateVoice(t *testing.T) {
	c := newTestClient()
	seedReady(c)
	seedGuild(t, c)
	got := capture(c, events.TypeVoiceChannelCreate)

	c.handleChannelCreate(&gateway.ChannelObject{
		ID: "311", GuildID: "100", Name: "Music", Type: "voice",
	})

	require.Len(t, *got, 1)
	created := (*got)[0].(events.VoiceChannelCreate)
	assert.Equal(t, "Music", created.Channel.Name)

	g, _ := c.State.Guild(snowflake.ID(100))
	assert.Contains(t, g.VoiceChannels, snowflake.ID(311))
}

func TestChannelCreatePrivate(t *testing.T) {
	c := newTestClient()
	seedReady(c)
	got := capture(c, events.TypeChannelCreate, events.TypeVoiceChannelCreate)

	c.handleChannelCreate(&gateway.ChannelObject{
		ID: "600", IsPrivate: true,
		Recipient: gateway.UserObject{ID: "2", Username: "bob"},
	})

	assert.Empty(t, *got, "private channels are cached without an event")
	pc, ok := c.State.PrivateChannel(snowflake.ID(600))
	require.True(t, ok)
	assert.Equal(t, snowflake.ID(2), pc.RecipientID)
}

func TestChannelCreatePrivateDuplicateKeepsFirst(t *testing.T) {
	c := newTestClient()
	seedReady(c)

	c.handleChannelCreate(&gateway.ChannelObject{
		ID: "600", IsPrivate: true, Recipient: gateway.UserObject{ID: "2"},
	})
	c.handleChannelCreate(&gateway.ChannelObject{
		ID: "600", IsPrivate: true, Recipient: gateway.UserObject{ID: "3"},
	})

	pc, ok := c.State.PrivateChannel(snowflake.ID(600))
	require.True(t, ok)
	assert.Equal(t, snowflake.ID(2), pc.RecipientID)
}

func TestChannelUpdate(t *testing.T) {
	c := newTestClient()
	seedReady(c)
	seedGuild(t, c)
	got := capture(c, events.TypeChannelUpdate)

	c.handleChannelUpdate(&gateway.ChannelObject{
		ID: "300", GuildID: "100", Name: "renamed", Topic: "talk", Type: "text",
	})

	require.Len(t, *got, 1)
	update := (*got)[0].(events.ChannelUpdate)
	assert.Equal(t, "general", update.Old.Name)
	assert.Equal(t, "renamed", update.New.Name)
}

func TestChannelUpdateNoChangePublishesNothing(t *testing.T) {
	c := newTestClient()
	seedReady(c)
	seedGuild(t, c)
	got := capture(c, events.TypeChannelUpdate, events.TypeVoiceChannelUpdate)

	c.handleChannelUpdate(&gateway.ChannelObject{
		ID: "300", GuildID: "100", Name: "general", Topic: "talk", Type: "text",
	})
	c.handleChannelUpdate(&gateway.ChannelObject{
		ID: "301", GuildID: "100", Name: "Lounge", Type: "voice",
	})

	assert.Empty(t, *got)
}

func TestVoiceChannelUpdate(t *testing.T) {
	c := newTestClient()
	seedReady(c)
	seedGuild(t, c)
	got := capture(c, events.TypeVoiceChannelUpdate)

	c.handleChannelUpdate(&gateway.ChannelObject{
		ID: "301", GuildID: "100", Name: "Lounge 2.0", Type: "voice",
	})

	require.Len(t, *got, 1)
	update := (*got)[0].(events.VoiceChannelUpdate)
	assert.Equal(t, "Lounge", update.Old.Name)
	assert.Equal(t, "Lounge 2.0", update.New.Name)
}

func TestChannelDeleteText(t *testing.T) {
	c := newTestClient()
	seedReady(c)
	seedGuild(t, c)
	got := capture(c, events.TypeChannelDelete)

	c.handleChannelDelete(&gateway.ChannelObject{ID: "300", GuildID: "100", Type: "text"})

	require.Len(t, *got, 1)
	deleted := (*got)[0].(events.ChannelDelete)
	assert.Equal(t, "general", deleted.Channel.Name)

	_, ok := c.State.Channel(snowflake.ID(300))
	assert.False(t, ok)
	g, _ := c.State.Guild(snowflake.ID(100))
	assert.NotContains(t, g.Channels, snowflake.ID(300))
}

func TestChannelDeleteVoice(t *testing.T) {
	c := newTestClient()
	seedReady(c)
	seedGuild(t, c)
	got := capture(c, events.TypeVoiceChannelDelete)

	c.handleChannelDelete(&gateway.ChannelObject{ID: "301", GuildID: "100", Type: "voice"})

	require.Len(t, *got, 1)
	_, ok := c.State.VoiceChannel(snowflake.ID(301))
	assert.False(t, ok)
	g, _ := c.State.Guild(snowflake.ID(100))
	assert.NotContains(t, g.VoiceChannels, snowflake.ID(301))
}

func TestChannelDeletePrivate(t *testing.T) {
	c := newTestClient()
	seedReady(c)
	c.handleChannelCreate(&gateway.ChannelObject{
		ID: "600", IsPrivate: true, Recipient: gateway.UserObject{ID: "2"},
	})
	got := capture(c, events.TypeChannelDelete)

	c.handleChannelDelete(&gateway.ChannelObject{ID: "600", IsPrivate: true})

	require.Len(t, *got, 1, "private channel removal publishes a delete")
	deleted := (*got)[0].(events.ChannelDelete)
	assert.Equal(t, snowflake.ID(600), deleted.Channel.ID)
	_, ok := c.State.PrivateChannel(snowflake.ID(600))
	assert.False(t, ok)
}

func TestChannelDeletePrivateUnknownPublishesNothing(t *testing.T) {
	c := newTestClient()
	seedReady(c)
	got := capture(c, events.TypeChannelDelete)

	c.handleChannelDelete(&gateway.ChannelObject{ID: "601", IsPrivate: true})

	assert.Empty(t, *got)
}
