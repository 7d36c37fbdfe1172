package client

import (
	"github.com/fuad-daoud/discord-gateway/discord"
	"github.com/fuad-daoud/discord-gateway/events"
	"github.com/fuad-daoud/discord-gateway/gateway"
	"github.com/fuad-daoud/discord-gateway/logger/dlog"
)

func (c *Client) handlePresenceUpdate(d *gateway.PresenceUpdateData) {
	status := toStatus(d.Game)
	presence := discord.ParsePresence(d.Status)
	if status.Type == discord.StatusTypeStream {
		presence = discord.PresenceStreaming
	}

	guildID, ok := parseID(d.GuildID)
	if !ok {
		return
	}
	g, ok := c.State.Guild(guildID)
	if !ok {
		return
	}
	userID, ok := parseID(d.User.ID)
	if !ok {
		return
	}
	u, ok := c.State.User(userID)
	if !ok || !g.HasMember(userID) {
		return
	}

	// a partial payload (id only) signals no identity change
	if d.User.Username != "" {
		old := u.Copy()
		applyUserObject(u, d.User)
		c.Dispatcher.Publish(events.UserUpdate{Old: old, New: u.Copy()})
	}

	if u.Presence != presence {
		oldPresence := u.Presence
		u.Presence = presence
		c.Dispatcher.Publish(events.PresenceUpdate{
			User:        u.Copy(),
			OldPresence: oldPresence,
			NewPresence: presence,
		})
		dlog.Debug("User changed presence", "user", u.Username, "presence", presence)
	}

	if u.Status != status {
		oldStatus := u.Status
		u.Status = status
		c.Dispatcher.Publish(events.StatusChange{
			User:      u.Copy(),
			OldStatus: oldStatus,
			NewStatus: status,
		})
	}
}

func (c *Client) handleUserUpdate(d *gateway.UserObject) {
	userID, ok := parseID(d.ID)
	if !ok {
		return
	}
	u, ok := c.State.User(userID)
	if !ok {
		return
	}
	old := u.Copy()
	applyUserObject(u, *d)
	c.Dispatcher.Publish(events.UserUpdate{Old: old, New: u.Copy()})
}
