package discord

import (
	"github.com/disgoorg/snowflake/v2"
)

// Channel is a guild text channel. It owns its message history.
type Channel struct {
	ID      snowflake.ID
	GuildID snowflake.ID
	Name    string
	Topic   string

	// whether the session currently shows a typing indicator here.
	Typing bool

	messages map[snowflake.ID]*Message
}

func NewChannel(id, guildID snowflake.ID) *Channel {
	return &Channel{
		ID:       id,
		GuildID:  guildID,
		messages: map[snowflake.ID]*Message{},
	}
}

func (c *Channel) Copy() Channel {
	cp := *c
	cp.messages = nil
	return cp
}

func (c *Channel) Message(id snowflake.ID) (*Message, bool) {
	m, ok := c.messages[id]
	return m, ok
}

func (c *Channel) PutMessage(m *Message) {
	if c.messages == nil {
		c.messages = map[snowflake.ID]*Message{}
	}
	c.messages[m.ID] = m
}

func (c *Channel) RemoveMessage(id snowflake.ID) {
	delete(c.messages, id)
}

func (c *Channel) MessageCount() int {
	return len(c.messages)
}

// VoiceChannel is a guild voice channel. Membership lives on User records.
type VoiceChannel struct {
	ID      snowflake.ID
	GuildID snowflake.ID
	Name    string
}

func (v *VoiceChannel) Copy() VoiceChannel {
	return *v
}

// PrivateChannel is a direct message channel with a single recipient.
type PrivateChannel struct {
	ID          snowflake.ID
	RecipientID snowflake.ID
}
