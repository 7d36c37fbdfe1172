package client

import (
	"github.com/fuad-daoud/discord-gateway/discord"
	"github.com/fuad-daoud/discord-gateway/events"
	"github.com/fuad-daoud/discord-gateway/gateway"
)

func (c *Client) handleChannelCreate(d *gateway.ChannelObject) {
	if d.IsPrivate {
		c.ingestPrivateChannel(gateway.PrivateChannelObject{ID: d.ID, Recipient: d.Recipient})
		return
	}

	guildID, ok := parseID(d.GuildID)
	if !ok {
		return
	}
	g, ok := c.State.Guild(guildID)
	if !ok {
		return
	}
	channelID, ok := parseID(d.ID)
	if !ok {
		return
	}

	switch d.Type {
	case "voice":
		vc := &discord.VoiceChannel{ID: channelID, GuildID: guildID, Name: d.Name}
		c.State.PutVoiceChannel(vc)
		g.AddVoiceChannel(channelID)
		c.Dispatcher.Publish(events.VoiceChannelCreate{Channel: vc.Copy()})
	default:
		ch := discord.NewChannel(channelID, guildID)
		ch.Name = d.Name
		ch.Topic = d.Topic
		c.State.PutChannel(ch)
		g.AddChannel(channelID)
		c.Dispatcher.Publish(events.ChannelCreate{Channel: ch.Copy()})
	}
}

func (c *Client) handleChannelUpdate(d *gateway.ChannelObject) {
	if d.IsPrivate {
		return
	}
	channelID, ok := parseID(d.ID)
	if !ok {
		return
	}

	switch d.Type {
	case "voice":
		vc, ok := c.State.VoiceChannel(channelID)
		if !ok {
			return
		}
		old := vc.Copy()
		vc.Name = d.Name
		if old != *vc {
			c.Dispatcher.Publish(events.VoiceChannelUpdate{Old: old, New: vc.Copy()})
		}
	default:
		ch, ok := c.State.Channel(channelID)
		if !ok {
			return
		}
		old := ch.Copy()
		ch.Name = d.Name
		ch.Topic = d.Topic
		if old.Name != ch.Name || old.Topic != ch.Topic {
			c.Dispatcher.Publish(events.ChannelUpdate{Old: old, New: ch.Copy()})
		}
	}
}

func (c *Client) handleChannelDelete(d *gateway.ChannelObject) {
	channelID, ok := parseID(d.ID)
	if !ok {
		return
	}
	if d.IsPrivate {
		// private channels join the cache silently but leave with a
		// delete event, like guild text channels
		if _, ok := c.State.RemovePrivateChannel(channelID); ok {
			c.Dispatcher.Publish(events.ChannelDelete{Channel: discord.Channel{ID: channelID}})
		}
		return
	}

	switch d.Type {
	case "voice":
		vc, ok := c.State.RemoveVoiceChannel(channelID)
		if !ok {
			return
		}
		if g, ok := c.State.Guild(vc.GuildID); ok {
			g.RemoveVoiceChannel(channelID)
		}
		c.Dispatcher.Publish(events.VoiceChannelDelete{Channel: vc.Copy()})
	default:
		ch, ok := c.State.RemoveChannel(channelID)
		if !ok {
			return
		}
		if g, ok := c.State.Guild(ch.GuildID); ok {
			g.RemoveChannel(channelID)
		}
		c.Dispatcher.Publish(events.ChannelDelete{Channel: ch.Copy()})
	}
}
