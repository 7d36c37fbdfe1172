package client

import (
	"github.com/fuad-daoud/discord-gateway/events"
	"github.com/fuad-daoud/discord-gateway/gateway"
)

func (c *Client) handleGuildRoleCreate(d *gateway.GuildRoleData) {
	guildID, ok := parseID(d.GuildID)
	if !ok {
		return
	}
	g, ok := c.State.Guild(guildID)
	if !ok {
		return
	}
	role, ok := toRole(guildID, d.Role)
	if !ok {
		return
	}
	c.State.PutRole(role)
	g.AddRole(role.ID)
	c.Dispatcher.Publish(events.RoleCreate{Role: role.Copy(), Guild: g.Copy()})
}

func (c *Client) handleGuildRoleUpdate(d *gateway.GuildRoleData) {
	guildID, ok := parseID(d.GuildID)
	if !ok {
		return
	}
	g, ok := c.State.Guild(guildID)
	if !ok {
		return
	}
	roleID, ok := parseID(d.Role.ID)
	if !ok {
		return
	}
	role, ok := c.State.Role(roleID)
	if !ok {
		return
	}

	old := role.Copy()
	applyRoleObject(role, d.Role)
	if old != *role {
		c.Dispatcher.Publish(events.RoleUpdate{Old: old, New: role.Copy(), Guild: g.Copy()})
	}
}

// handleGuildRoleDelete removes the role from the guild's collection;
// members' held-role sets reference roles by id through the guild, so the
// role disappears from them with no explicit scrub.
func (c *Client) handleGuildRoleDelete(d *gateway.GuildRoleDeleteData) {
	guildID, ok := parseID(d.GuildID)
	if !ok {
		return
	}
	g, ok := c.State.Guild(guildID)
	if !ok {
		return
	}
	roleID, ok := parseID(d.RoleID)
	if !ok {
		return
	}
	role, ok := c.State.RemoveRole(roleID)
	if !ok {
		return
	}
	g.RemoveRole(roleID)
	c.Dispatcher.Publish(events.RoleDelete{Role: role.Copy(), Guild: g.Copy()})
}
