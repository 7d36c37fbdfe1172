package discord

import (
	"github.com/disgoorg/snowflake/v2"
)

// State is the local mirror of server-side state, owned and mutated by the
// gateway event loop. Handlers run strictly one at a time on that loop, so
// the maps need no locking; all mutation is last-writer-wins because the
// event stream is the single ordered source of truth.
type State struct {
	selfID snowflake.ID

	guilds          map[snowflake.ID]*Guild
	users           map[snowflake.ID]*User
	channels        map[snowflake.ID]*Channel
	voiceChannels   map[snowflake.ID]*VoiceChannel
	privateChannels map[snowflake.ID]*PrivateChannel
	roles           map[snowflake.ID]*Role
}

func NewState() *State {
	s := &State{}
	s.Reset()
	return s
}

// Reset discards everything, used on invalid-session re-bootstrap.
func (s *State) Reset() {
	s.guilds = map[snowflake.ID]*Guild{}
	s.users = map[snowflake.ID]*User{}
	s.channels = map[snowflake.ID]*Channel{}
	s.voiceChannels = map[snowflake.ID]*VoiceChannel{}
	s.privateChannels = map[snowflake.ID]*PrivateChannel{}
	s.roles = map[snowflake.ID]*Role{}
}

func (s *State) SelfID() snowflake.ID {
	return s.selfID
}

func (s *State) SetSelfID(id snowflake.ID) {
	s.selfID = id
}

func (s *State) SelfUser() (*User, bool) {
	return s.User(s.selfID)
}

func (s *State) Guild(id snowflake.ID) (*Guild, bool) {
	g, ok := s.guilds[id]
	return g, ok
}

func (s *State) Guilds() []*Guild {
	guilds := make([]*Guild, 0, len(s.guilds))
	for _, g := range s.guilds {
		guilds = append(guilds, g)
	}
	return guilds
}

func (s *State) PutGuild(g *Guild) {
	s.guilds[g.ID] = g
}

// RemoveGuild drops the guild and every entity it owns.
func (s *State) RemoveGuild(id snowflake.ID) (*Guild, bool) {
	g, ok := s.guilds[id]
	if !ok {
		return nil, false
	}
	for _, channelID := range g.Channels {
		delete(s.channels, channelID)
	}
	for _, channelID := range g.VoiceChannels {
		delete(s.voiceChannels, channelID)
	}
	for _, roleID := range g.Roles {
		delete(s.roles, roleID)
	}
	delete(s.guilds, id)
	return g, true
}

func (s *State) User(id snowflake.ID) (*User, bool) {
	u, ok := s.users[id]
	return u, ok
}

func (s *State) PutUser(u *User) {
	s.users[u.ID] = u
}

func (s *State) RemoveUser(id snowflake.ID) {
	delete(s.users, id)
}

func (s *State) Channel(id snowflake.ID) (*Channel, bool) {
	c, ok := s.channels[id]
	return c, ok
}

func (s *State) PutChannel(c *Channel) {
	s.channels[c.ID] = c
}

func (s *State) RemoveChannel(id snowflake.ID) (*Channel, bool) {
	c, ok := s.channels[id]
	if ok {
		delete(s.channels, id)
	}
	return c, ok
}

func (s *State) VoiceChannel(id snowflake.ID) (*VoiceChannel, bool) {
	v, ok := s.voiceChannels[id]
	return v, ok
}

func (s *State) PutVoiceChannel(v *VoiceChannel) {
	s.voiceChannels[v.ID] = v
}

func (s *State) RemoveVoiceChannel(id snowflake.ID) (*VoiceChannel, bool) {
	v, ok := s.voiceChannels[id]
	if ok {
		delete(s.voiceChannels, id)
	}
	return v, ok
}

func (s *State) PrivateChannel(id snowflake.ID) (*PrivateChannel, bool) {
	p, ok := s.privateChannels[id]
	return p, ok
}

// PutPrivateChannel inserts the channel unless one with the same id is
// already known; reports whether it was inserted.
func (s *State) PutPrivateChannel(p *PrivateChannel) bool {
	if _, ok := s.privateChannels[p.ID]; ok {
		return false
	}
	s.privateChannels[p.ID] = p
	return true
}

func (s *State) RemovePrivateChannel(id snowflake.ID) (*PrivateChannel, bool) {
	p, ok := s.privateChannels[id]
	if ok {
		delete(s.privateChannels, id)
	}
	return p, ok
}

func (s *State) Role(id snowflake.ID) (*Role, bool) {
	r, ok := s.roles[id]
	return r, ok
}

func (s *State) PutRole(r *Role) {
	s.roles[r.ID] = r
}

func (s *State) RemoveRole(id snowflake.ID) (*Role, bool) {
	r, ok := s.roles[id]
	if ok {
		delete(s.roles, id)
	}
	return r, ok
}
