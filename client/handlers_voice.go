package client

import (
	"github.com/disgoorg/snowflake/v2"

	"github.com/fuad-daoud/discord-gateway/discord"
	"github.com/fuad-daoud/discord-gateway/events"
	"github.com/fuad-daoud/discord-gateway/gateway"
	"github.com/fuad-daoud/discord-gateway/logger/dlog"
	"github.com/fuad-daoud/discord-gateway/voice"
)

func (c *Client) handleVoiceStateUpdate(d *gateway.VoiceStateObject) {
	guildID, ok := parseID(d.GuildID)
	if !ok {
		return
	}
	g, ok := c.State.Guild(guildID)
	if !ok {
		return
	}
	userID, ok := parseID(d.UserID)
	if !ok {
		return
	}
	u, ok := c.State.User(userID)
	if !ok || !g.HasMember(userID) {
		return
	}

	// mute/deaf flags apply regardless of any channel transition
	u.GuildMuted[guildID] = d.Mute
	u.GuildDeafened[guildID] = d.Deaf
	u.SelfMuted = d.SelfMute
	u.SelfDeafened = d.SelfDeaf

	var newChannel *discord.VoiceChannel
	if d.ChannelID != nil {
		if channelID, ok := parseID(*d.ChannelID); ok {
			newChannel, _ = c.State.VoiceChannel(channelID)
		}
	}
	oldChannel := c.previousVoiceChannel(u, guildID)

	if newChannel == nil && oldChannel == nil {
		return
	}
	if newChannel != nil && oldChannel != nil && newChannel.ID == oldChannel.ID {
		return
	}

	switch {
	case newChannel == nil:
		c.Dispatcher.Publish(events.VoiceChannelLeave{User: u.Copy(), Channel: oldChannel.Copy()})
		u.LeaveVoiceChannel(oldChannel.ID)
	case oldChannel != nil && oldChannel.GuildID == newChannel.GuildID:
		c.Dispatcher.Publish(events.VoiceChannelMove{User: u.Copy(), Old: oldChannel.Copy(), New: newChannel.Copy()})
		u.LeaveVoiceChannel(oldChannel.ID)
		u.JoinVoiceChannel(newChannel.ID)
	default:
		c.Dispatcher.Publish(events.VoiceChannelJoin{User: u.Copy(), Channel: newChannel.Copy()})
		u.JoinVoiceChannel(newChannel.ID)
	}
}

// previousVoiceChannel picks the channel the user is leaving: one in the
// event's guild when there is one, otherwise any currently joined channel.
func (c *Client) previousVoiceChannel(u *discord.User, guildID snowflake.ID) *discord.VoiceChannel {
	var fallback *discord.VoiceChannel
	for _, channelID := range u.VoiceChannels {
		vc, ok := c.State.VoiceChannel(channelID)
		if !ok {
			continue
		}
		if vc.GuildID == guildID {
			return vc
		}
		if fallback == nil {
			fallback = vc
		}
	}
	return fallback
}

// handleVoiceServerUpdate hands the assignment to the voice-transport
// collaborator: guild, token and the bare host endpoint. The handoff runs
// off the frame-processing path and failures are logged, never propagated.
func (c *Client) handleVoiceServerUpdate(d *gateway.VoiceServerUpdateData) {
	guildID, ok := parseID(d.GuildID)
	if !ok {
		return
	}
	endpoint := voice.TrimEndpoint(d.Endpoint)
	token := d.Token
	sessionID := c.Session.SessionID()

	// the generation counter keeps handoffs for the same guild ordered:
	// only the newest assignment may store its connection
	c.voiceMu.Lock()
	c.voiceGens[guildID]++
	gen := c.voiceGens[guildID]
	c.voiceMu.Unlock()

	go func() {
		conn, err := c.connector.Connect(guildID, endpoint, token, sessionID)
		if err != nil {
			dlog.Error("Voice handoff failed", "guild", guildID, "endpoint", endpoint, "err", err)
			return
		}
		c.voiceMu.Lock()
		if c.voiceGens[guildID] != gen {
			c.voiceMu.Unlock()
			dlog.Debug("Discarding superseded voice handoff", "guild", guildID, "endpoint", endpoint)
			_ = conn.Close()
			return
		}
		previous := c.voiceConns[guildID]
		c.voiceConns[guildID] = conn
		c.voiceMu.Unlock()
		if previous != nil {
			_ = previous.Close()
		}
	}()
}
