package client

import (
	"time"

	"github.com/disgoorg/snowflake/v2"

	"github.com/fuad-daoud/discord-gateway/discord"
	"github.com/fuad-daoud/discord-gateway/gateway"
	"github.com/fuad-daoud/discord-gateway/logger/dlog"
)

func parseID(s string) (snowflake.ID, bool) {
	id, err := snowflake.Parse(s)
	if err != nil || s == "" {
		return 0, false
	}
	return id, true
}

func parseIDs(raw []string) []snowflake.ID {
	ids := make([]snowflake.ID, 0, len(raw))
	for _, s := range raw {
		if id, ok := parseID(s); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func parseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// upsertUser finds or creates the authoritative user record and applies
// the wire fields onto it.
func (c *Client) upsertUser(obj gateway.UserObject) (*discord.User, bool) {
	id, ok := parseID(obj.ID)
	if !ok {
		return nil, false
	}
	u, found := c.State.User(id)
	if !found {
		u = discord.NewUser(id)
		c.State.PutUser(u)
	}
	applyUserObject(u, obj)
	return u, true
}

func applyUserObject(u *discord.User, obj gateway.UserObject) {
	if obj.Username != "" {
		u.Username = obj.Username
	}
	if obj.Discriminator != "" {
		u.Discriminator = obj.Discriminator
	}
	if obj.Avatar != "" {
		u.Avatar = obj.Avatar
	}
}

// userSnapshot returns a copy of the cached user when known, otherwise a
// record built from the payload alone.
func (c *Client) userSnapshot(obj gateway.UserObject) (discord.User, bool) {
	id, ok := parseID(obj.ID)
	if !ok {
		return discord.User{}, false
	}
	if u, found := c.State.User(id); found {
		return u.Copy(), true
	}
	u := discord.NewUser(id)
	applyUserObject(u, obj)
	return u.Copy(), true
}

func toMessage(obj *gateway.MessageObject) (*discord.Message, bool) {
	id, ok := parseID(obj.ID)
	if !ok {
		return nil, false
	}
	channelID, ok := parseID(obj.ChannelID)
	if !ok {
		return nil, false
	}
	authorID, _ := parseID(obj.Author.ID)

	m := &discord.Message{
		ID:              id,
		ChannelID:       channelID,
		AuthorID:        authorID,
		Content:         obj.Content,
		Timestamp:       parseTimestamp(obj.Timestamp),
		Pinned:          obj.Pinned,
		MentionEveryone: obj.MentionEveryone,
		MentionRoles:    parseIDs(obj.MentionRoles),
	}
	for _, embed := range obj.Embeds {
		m.Embeds = append(m.Embeds, discord.Embed{
			Title:       embed.Title,
			Description: embed.Description,
			URL:         embed.URL,
		})
	}
	for _, mention := range obj.Mentions {
		if mentionID, ok := parseID(mention.ID); ok {
			m.Mentions = append(m.Mentions, mentionID)
		}
	}
	return m, true
}

func toRole(guildID snowflake.ID, obj gateway.RoleObject) (*discord.Role, bool) {
	id, ok := parseID(obj.ID)
	if !ok {
		return nil, false
	}
	return &discord.Role{
		ID:          id,
		GuildID:     guildID,
		Name:        obj.Name,
		Permissions: obj.Permissions,
		Color:       obj.Color,
		Position:    obj.Position,
		Hoist:       obj.Hoist,
		Managed:     obj.Managed,
	}, true
}

func applyRoleObject(r *discord.Role, obj gateway.RoleObject) {
	r.Name = obj.Name
	r.Permissions = obj.Permissions
	r.Color = obj.Color
	r.Position = obj.Position
	r.Hoist = obj.Hoist
	r.Managed = obj.Managed
}

func toStatus(game *gateway.GameObject) discord.Status {
	if game == nil || game.Name == "" {
		return discord.Status{Type: discord.StatusTypeNone}
	}
	statusType := discord.StatusTypeGame
	if game.Type == 1 {
		statusType = discord.StatusTypeStream
	}
	return discord.Status{Type: statusType, Name: game.Name, URL: game.URL}
}

func (c *Client) ingestPrivateChannel(obj gateway.PrivateChannelObject) {
	id, ok := parseID(obj.ID)
	if !ok {
		return
	}
	recipient, ok := c.upsertUser(obj.Recipient)
	if !ok {
		return
	}
	c.State.PutPrivateChannel(&discord.PrivateChannel{ID: id, RecipientID: recipient.ID})
}

// ingestMember applies a member payload onto the guild: user record,
// explicit roles plus the implicit everyone role, nickname and join time.
func (c *Client) ingestMember(g *discord.Guild, member gateway.MemberObject) {
	u, ok := c.upsertUser(member.User)
	if !ok {
		return
	}
	roles := parseIDs(member.Roles)
	roles = append(roles, g.EveryoneRoleID())
	u.SetRolesForGuild(g.ID, roles)
	u.SetNick(g.ID, member.Nick)
	u.GuildMuted[g.ID] = member.Mute
	u.GuildDeafened[g.ID] = member.Deaf
	if joined := parseTimestamp(member.JoinedAt); !joined.IsZero() {
		g.JoinTimes[u.ID] = joined
	}
	g.AddMember(u.ID)
}

// ingestGuild materializes a full guild payload: roles, channels, members
// and voice states, all registered in the cache.
func (c *Client) ingestGuild(obj *gateway.GuildObject) (*discord.Guild, bool) {
	id, ok := parseID(obj.ID)
	if !ok {
		dlog.Error("Guild payload carried an invalid id", "id", obj.ID)
		return nil, false
	}
	g := discord.NewGuild(id)
	g.Name = obj.Name
	g.Icon = obj.Icon
	g.OwnerID, _ = parseID(obj.OwnerID)

	for _, roleObj := range obj.Roles {
		role, ok := toRole(id, roleObj)
		if !ok {
			continue
		}
		c.State.PutRole(role)
		g.AddRole(role.ID)
	}

	for _, channelObj := range obj.Channels {
		channelID, ok := parseID(channelObj.ID)
		if !ok {
			continue
		}
		switch channelObj.Type {
		case "voice":
			c.State.PutVoiceChannel(&discord.VoiceChannel{ID: channelID, GuildID: id, Name: channelObj.Name})
			g.AddVoiceChannel(channelID)
		default:
			ch := discord.NewChannel(channelID, id)
			ch.Name = channelObj.Name
			ch.Topic = channelObj.Topic
			c.State.PutChannel(ch)
			g.AddChannel(channelID)
		}
	}

	c.State.PutGuild(g)

	for _, member := range obj.Members {
		c.ingestMember(g, member)
	}

	for _, vs := range obj.VoiceStates {
		userID, ok := parseID(vs.UserID)
		if !ok {
			continue
		}
		u, found := c.State.User(userID)
		if !found {
			continue
		}
		u.GuildMuted[id] = vs.Mute
		u.GuildDeafened[id] = vs.Deaf
		u.SelfMuted = vs.SelfMute
		u.SelfDeafened = vs.SelfDeaf
		if vs.ChannelID != nil {
			if channelID, ok := parseID(*vs.ChannelID); ok {
				u.JoinVoiceChannel(channelID)
			}
		}
	}

	return g, true
}

func containsID(ids []snowflake.ID, id snowflake.ID) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}

func equalNick(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
