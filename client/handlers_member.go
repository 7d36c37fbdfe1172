package client

import (
	"github.com/disgoorg/snowflake/v2"

	"github.com/fuad-daoud/discord-gateway/events"
	"github.com/fuad-daoud/discord-gateway/gateway"
	"github.com/fuad-daoud/discord-gateway/logger/dlog"
)

func (c *Client) handleGuildMemberAdd(d *gateway.GuildMemberAddData) {
	guildID, ok := parseID(d.GuildID)
	if !ok {
		return
	}
	g, ok := c.State.Guild(guildID)
	if !ok {
		return
	}
	u, ok := c.upsertUser(d.User)
	if !ok {
		return
	}

	roles := parseIDs(d.Roles)
	roles = append(roles, g.EveryoneRoleID())
	u.SetRolesForGuild(guildID, roles)
	u.SetNick(guildID, d.Nick)

	joined := parseTimestamp(d.JoinedAt)
	if !joined.IsZero() {
		g.JoinTimes[u.ID] = joined
	}
	g.AddMember(u.ID)

	dlog.Debug("User joined guild", "user", u.Username, "guild", g.Name)
	c.Dispatcher.Publish(events.UserJoin{Guild: g.Copy(), User: u.Copy(), JoinedAt: joined})
}

func (c *Client) handleGuildMemberRemove(d *gateway.GuildMemberRemoveData) {
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

	g.RemoveMember(userID)
	delete(u.Roles, guildID)
	delete(u.Nicks, guildID)

	dlog.Debug("User has been removed from or left guild", "user", u.Username, "guild", g.Name)
	c.Dispatcher.Publish(events.UserLeave{Guild: g.Copy(), User: u.Copy()})
}

func (c *Client) handleGuildMemberUpdate(d *gateway.GuildMemberUpdateData) {
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
	if !ok {
		return
	}

	oldRoles := u.RolesForGuild(guildID)
	wireRoles := parseIDs(d.Roles)

	// the wire payload never carries the implicit everyone role, so the
	// cached set is one longer when nothing changed
	changed := len(oldRoles) != len(wireRoles)+1
	if !changed {
		for _, roleID := range oldRoles {
			if roleID == g.EveryoneRoleID() {
				continue
			}
			if !containsID(wireRoles, roleID) {
				changed = true
				break
			}
		}
	}

	if changed {
		newRoles := append(append([]snowflake.ID(nil), wireRoles...), g.EveryoneRoleID())
		u.SetRolesForGuild(guildID, newRoles)
		c.Dispatcher.Publish(events.UserRoleUpdate{
			Guild:    g.Copy(),
			User:     u.Copy(),
			OldRoles: oldRoles,
			NewRoles: u.RolesForGuild(guildID),
		})
	}

	if !equalNick(u.Nick(guildID), d.Nick) {
		oldNick := u.Nick(guildID)
		u.SetNick(guildID, d.Nick)
		c.Dispatcher.Publish(events.NicknameChange{
			Guild:   g.Copy(),
			User:    u.Copy(),
			OldNick: oldNick,
			NewNick: d.Nick,
		})
	}
}

func (c *Client) handleGuildMembersChunk(d *gateway.GuildMembersChunkData) {
	guildID, ok := parseID(d.GuildID)
	if !ok {
		return
	}
	g, ok := c.State.Guild(guildID)
	if !ok {
		dlog.Warn("Can't receive guild members chunk, the guild is unknown", "guild", d.GuildID)
		return
	}
	for _, member := range d.Members {
		c.ingestMember(g, member)
	}
}

func (c *Client) handleGuildBanAdd(d *gateway.GuildBanData) {
	guildID, ok := parseID(d.GuildID)
	if !ok {
		return
	}
	g, ok := c.State.Guild(guildID)
	if !ok {
		return
	}
	snapshot, ok := c.userSnapshot(d.User)
	if !ok {
		return
	}
	if g.HasMember(snapshot.ID) {
		g.RemoveMember(snapshot.ID)
	}
	c.Dispatcher.Publish(events.UserBan{Guild: g.Copy(), User: snapshot})
}

func (c *Client) handleGuildBanRemove(d *gateway.GuildBanData) {
	guildID, ok := parseID(d.GuildID)
	if !ok {
		return
	}
	g, ok := c.State.Guild(guildID)
	if !ok {
		return
	}
	snapshot, ok := c.userSnapshot(d.User)
	if !ok {
		return
	}
	c.Dispatcher.Publish(events.UserPardon{Guild: g.Copy(), User: snapshot})
}
