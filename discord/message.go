package discord

import (
	"time"

	"github.com/disgoorg/snowflake/v2"
)

type Embed struct {
	Title       string
	Description string
	URL         string
}

// Message is owned by its channel. Copy is taken before any mutation that
// needs an old/new comparison.
type Message struct {
	ID        snowflake.ID
	ChannelID snowflake.ID
	AuthorID  snowflake.ID
	Content   string
	Timestamp time.Time
	Pinned    bool

	Embeds []Embed

	MentionEveryone bool
	Mentions        []snowflake.ID
	MentionRoles    []snowflake.ID
}

func (m *Message) Copy() Message {
	cp := *m
	cp.Embeds = append([]Embed(nil), m.Embeds...)
	cp.Mentions = append([]snowflake.ID(nil), m.Mentions...)
	cp.MentionRoles = append([]snowflake.ID(nil), m.MentionRoles...)
	return cp
}

// Equal reports whether two message snapshots carry the same data. Used to
// suppress no-op update events on replayed payloads.
func (m Message) Equal(other Message) bool {
	if m.ID != other.ID || m.ChannelID != other.ChannelID || m.AuthorID != other.AuthorID {
		return false
	}
	if m.Content != other.Content || m.Pinned != other.Pinned || m.MentionEveryone != other.MentionEveryone {
		return false
	}
	if len(m.Embeds) != len(other.Embeds) || len(m.Mentions) != len(other.Mentions) || len(m.MentionRoles) != len(other.MentionRoles) {
		return false
	}
	for i := range m.Embeds {
		if m.Embeds[i] != other.Embeds[i] {
			return false
		}
	}
	for i := range m.Mentions {
		if m.Mentions[i] != other.Mentions[i] {
			return false
		}
	}
	for i := range m.MentionRoles {
		if m.MentionRoles[i] != other.MentionRoles[i] {
			return false
		}
	}
	return true
}
