package client

import (
	"github.com/fuad-daoud/discord-gateway/events"
	"github.com/fuad-daoud/discord-gateway/gateway"
	"github.com/fuad-daoud/discord-gateway/logger/dlog"
)

func (c *Client) handleGuildCreate(d *gateway.GuildObject) {
	if d.Unavailable {
		// an outage signal, not a real join
		dlog.Warn("Guild is unavailable, ignoring it. Is there an outage?", "guild", d.ID)
		return
	}
	g, ok := c.ingestGuild(d)
	if !ok {
		return
	}
	c.Dispatcher.Publish(events.GuildCreate{Guild: g.Copy()})
	dlog.Debug("New guild has been created/joined", "name", g.Name, "guild", g.ID)
}

func (c *Client) handleGuildUpdate(d *gateway.GuildObject) {
	id, ok := parseID(d.ID)
	if !ok {
		return
	}
	g, ok := c.State.Guild(id)
	if !ok {
		return
	}

	old := g.Copy()
	g.Name = d.Name
	g.Icon = d.Icon
	if ownerID, ok := parseID(d.OwnerID); ok {
		g.OwnerID = ownerID
	}

	switch {
	case g.OwnerID != old.OwnerID:
		c.Dispatcher.Publish(events.GuildTransferOwnership{
			OldOwnerID: old.OwnerID,
			NewOwnerID: g.OwnerID,
			Guild:      g.Copy(),
		})
	case g.Name != old.Name || g.Icon != old.Icon:
		c.Dispatcher.Publish(events.GuildUpdate{Old: old, New: g.Copy()})
	}
}

func (c *Client) handleGuildDelete(d *gateway.GuildObject) {
	id, ok := parseID(d.ID)
	if !ok {
		return
	}
	g, found := c.State.RemoveGuild(id)

	if d.Unavailable {
		dlog.Warn("Guild is unavailable, is there an outage?", "guild", d.ID)
		c.Dispatcher.Publish(events.GuildUnavailable{GuildID: id})
		return
	}
	if found {
		dlog.Debug("Kicked from or left guild", "name", g.Name, "guild", g.ID)
		c.Dispatcher.Publish(events.GuildLeave{Guild: g.Copy()})
	}
}
