package client

import (
	"github.com/fuad-daoud/discord-gateway/discord"
	"github.com/fuad-daoud/discord-gateway/events"
	"github.com/fuad-daoud/discord-gateway/gateway"
	"github.com/fuad-daoud/discord-gateway/logger/dlog"
	"github.com/fuad-daoud/discord-gateway/rest"
)

func (c *Client) handleMessageCreate(d *gateway.MessageObject) {
	channelID, ok := parseID(d.ChannelID)
	if !ok {
		return
	}
	ch, ok := c.State.Channel(channelID)
	if !ok {
		return
	}

	msg, ok := toMessage(d)
	if !ok {
		return
	}
	if _, exists := ch.Message(msg.ID); exists {
		return
	}

	c.upsertUser(d.Author)
	mentioned := c.mentionsSelf(ch, msg)
	ch.PutMessage(msg)

	dlog.Debug("Message received", "author", d.Author.Username, "channel", d.ChannelID)

	if codes := rest.InviteCodes(msg.Content); len(codes) > 0 && c.resolver != nil {
		// invite resolution hits the REST collaborator; keep it off the
		// frame-processing path
		go c.resolveInvites(codes, msg.Copy())
	}

	if mentioned {
		c.Dispatcher.Publish(events.Mention{Message: msg.Copy()})
	}

	if msg.AuthorID == c.State.SelfID() {
		c.Dispatcher.Publish(events.MessageSent{Message: msg.Copy()})
		// our own message landing stops the typing indicator
		ch.Typing = false
		return
	}
	c.Dispatcher.Publish(events.MessageReceived{Message: msg.Copy()})
	if len(msg.Embeds) > 0 {
		c.Dispatcher.Publish(events.MessageEmbed{Message: msg.Copy()})
	}
}

// mentionsSelf checks the everyone flag, then direct mentions, then role
// mentions against the roles we hold in the channel's guild. Only one
// mention event ever fires per message, so the first hit short-circuits.
func (c *Client) mentionsSelf(ch *discord.Channel, msg *discord.Message) bool {
	if msg.MentionEveryone {
		return true
	}
	self, ok := c.State.SelfUser()
	if !ok {
		return false
	}
	if containsID(msg.Mentions, self.ID) {
		return true
	}
	selfRoles := self.RolesForGuild(ch.GuildID)
	for _, roleID := range msg.MentionRoles {
		if containsID(selfRoles, roleID) {
			return true
		}
	}
	return false
}

// resolveInvites resolves each code against the REST collaborator and
// publishes a single batched event. A failed code is withheld, never
// fatal.
func (c *Client) resolveInvites(codes []string, msg discord.Message) {
	invites := make([]events.Invite, 0, len(codes))
	for _, code := range codes {
		invite, err := c.resolver.Invite(code)
		if err != nil {
			dlog.Warn("Failed to resolve invite", "code", code, "err", err)
			continue
		}
		invites = append(invites, events.Invite{
			Code:        invite.Code,
			GuildID:     invite.GuildID,
			GuildName:   invite.GuildName,
			ChannelID:   invite.ChannelID,
			ChannelName: invite.ChannelName,
		})
	}
	if len(invites) == 0 {
		return
	}
	c.Dispatcher.Publish(events.InviteReceived{Invites: invites, Message: msg})
}

func (c *Client) handleMessageUpdate(d *gateway.MessageObject) {
	channelID, ok := parseID(d.ChannelID)
	if !ok {
		return
	}
	ch, ok := c.State.Channel(channelID)
	if !ok {
		return
	}
	messageID, ok := parseID(d.ID)
	if !ok {
		return
	}
	cached, ok := ch.Message(messageID)
	if !ok {
		return
	}

	old := cached.Copy()
	updated, ok := toMessage(d)
	if !ok {
		return
	}
	ch.PutMessage(updated)

	// pin transitions win over embed growth, which wins over a generic
	// update; exactly one of these fires
	switch {
	case old.Pinned && !updated.Pinned:
		c.Dispatcher.Publish(events.MessageUnpin{Message: updated.Copy()})
	case !old.Pinned && updated.Pinned:
		c.Dispatcher.Publish(events.MessagePin{Message: updated.Copy()})
	case len(old.Embeds) < len(updated.Embeds):
		c.Dispatcher.Publish(events.MessageEmbed{Message: updated.Copy(), OldEmbeds: old.Embeds})
	case !old.Equal(*updated):
		c.Dispatcher.Publish(events.MessageUpdate{Old: old, New: updated.Copy()})
	}
}

func (c *Client) handleMessageDelete(d *gateway.MessageDeleteData) {
	channelID, ok := parseID(d.ChannelID)
	if !ok {
		return
	}
	ch, ok := c.State.Channel(channelID)
	if !ok {
		return
	}
	messageID, ok := parseID(d.ID)
	if !ok {
		return
	}
	msg, ok := ch.Message(messageID)
	if !ok {
		return
	}

	if msg.Pinned {
		// unpin first for consistency with the pin event stream
		msg.Pinned = false
		c.Dispatcher.Publish(events.MessageUnpin{Message: msg.Copy()})
	}
	c.Dispatcher.Publish(events.MessageDelete{Message: msg.Copy()})
	ch.RemoveMessage(messageID)
}

// handleMessageDeleteBulk is N independent single deletes over the id
// list, in order.
func (c *Client) handleMessageDeleteBulk(d *gateway.MessageDeleteBulkData) {
	for _, id := range d.IDs {
		c.handleMessageDelete(&gateway.MessageDeleteData{ID: id, ChannelID: d.ChannelID})
	}
}

func (c *Client) handleTypingStart(d *gateway.TypingStartData) {
	channelID, ok := parseID(d.ChannelID)
	if !ok {
		return
	}
	ch, ok := c.State.Channel(channelID)
	if !ok {
		return
	}
	userID, ok := parseID(d.UserID)
	if !ok {
		return
	}
	u, ok := c.State.User(userID)
	if !ok {
		return
	}
	c.Dispatcher.Publish(events.Typing{User: u.Copy(), Channel: ch.Copy()})
}
