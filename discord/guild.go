package discord

import (
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// Guild is a server the session is a member of. Members, channels and
// roles are id references resolved through the State.
type Guild struct {
	ID      snowflake.ID
	Name    string
	OwnerID snowflake.ID
	Icon    string

	Members       []snowflake.ID
	JoinTimes     map[snowflake.ID]time.Time
	Channels      []snowflake.ID
	VoiceChannels []snowflake.ID
	Roles         []snowflake.ID
}

func NewGuild(id snowflake.ID) *Guild {
	return &Guild{
		ID:        id,
		JoinTimes: map[snowflake.ID]time.Time{},
	}
}

// EveryoneRoleID is the implicit role every member holds. Its id is the
// guild id itself.
func (g *Guild) EveryoneRoleID() snowflake.ID {
	return g.ID
}

func (g *Guild) Copy() Guild {
	cp := *g
	cp.Members = append([]snowflake.ID(nil), g.Members...)
	cp.JoinTimes = make(map[snowflake.ID]time.Time, len(g.JoinTimes))
	for userID, joined := range g.JoinTimes {
		cp.JoinTimes[userID] = joined
	}
	cp.Channels = append([]snowflake.ID(nil), g.Channels...)
	cp.VoiceChannels = append([]snowflake.ID(nil), g.VoiceChannels...)
	cp.Roles = append([]snowflake.ID(nil), g.Roles...)
	return cp
}

func (g *Guild) HasMember(userID snowflake.ID) bool {
	for _, id := range g.Members {
		if id == userID {
			return true
		}
	}
	return false
}

func (g *Guild) AddMember(userID snowflake.ID) {
	if !g.HasMember(userID) {
		g.Members = append(g.Members, userID)
	}
}

func (g *Guild) RemoveMember(userID snowflake.ID) {
	for i, id := range g.Members {
		if id == userID {
			g.Members = append(g.Members[:i], g.Members[i+1:]...)
			break
		}
	}
	delete(g.JoinTimes, userID)
}

func (g *Guild) AddChannel(channelID snowflake.ID) {
	g.Channels = appendUnique(g.Channels, channelID)
}

func (g *Guild) RemoveChannel(channelID snowflake.ID) {
	g.Channels = remove(g.Channels, channelID)
}

func (g *Guild) AddVoiceChannel(channelID snowflake.ID) {
	g.VoiceChannels = appendUnique(g.VoiceChannels, channelID)
}

func (g *Guild) RemoveVoiceChannel(channelID snowflake.ID) {
	g.VoiceChannels = remove(g.VoiceChannels, channelID)
}

func (g *Guild) AddRole(roleID snowflake.ID) {
	g.Roles = appendUnique(g.Roles, roleID)
}

func (g *Guild) RemoveRole(roleID snowflake.ID) {
	g.Roles = remove(g.Roles, roleID)
}

func appendUnique(ids []snowflake.ID, id snowflake.ID) []snowflake.ID {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

func remove(ids []snowflake.ID, id snowflake.ID) []snowflake.ID {
	for i, existing := range ids {
		if existing == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
