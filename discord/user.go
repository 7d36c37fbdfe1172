package discord

import (
	"github.com/disgoorg/snowflake/v2"
)

// User is the authoritative cache record for a user. Per-guild fields are
// keyed by guild id; cross-entity relations are held as ids and resolved
// through the State so snapshot copies never drag the whole graph along.
type User struct {
	ID            snowflake.ID
	Username      string
	Discriminator string
	Avatar        string

	Presence Presence
	Status   Status

	// guild id -> role ids held there, always including the guild's
	// everyone role once the member is known.
	Roles map[snowflake.ID][]snowflake.ID
	// guild id -> nickname, nil entry means no nickname set.
	Nicks map[snowflake.ID]*string

	GuildMuted    map[snowflake.ID]bool
	GuildDeafened map[snowflake.ID]bool
	SelfMuted     bool
	SelfDeafened  bool

	// voice channel ids the user is currently connected to.
	VoiceChannels []snowflake.ID
}

func NewUser(id snowflake.ID) *User {
	return &User{
		ID:            id,
		Presence:      PresenceOffline,
		Roles:         map[snowflake.ID][]snowflake.ID{},
		Nicks:         map[snowflake.ID]*string{},
		GuildMuted:    map[snowflake.ID]bool{},
		GuildDeafened: map[snowflake.ID]bool{},
	}
}

// Copy returns a value snapshot with its own maps and slices, safe to keep
// as the "old" side of a diff while the original is mutated.
func (u *User) Copy() User {
	cp := *u
	cp.Roles = make(map[snowflake.ID][]snowflake.ID, len(u.Roles))
	for guildID, roles := range u.Roles {
		cp.Roles[guildID] = append([]snowflake.ID(nil), roles...)
	}
	cp.Nicks = make(map[snowflake.ID]*string, len(u.Nicks))
	for guildID, nick := range u.Nicks {
		if nick == nil {
			cp.Nicks[guildID] = nil
			continue
		}
		n := *nick
		cp.Nicks[guildID] = &n
	}
	cp.GuildMuted = make(map[snowflake.ID]bool, len(u.GuildMuted))
	for guildID, muted := range u.GuildMuted {
		cp.GuildMuted[guildID] = muted
	}
	cp.GuildDeafened = make(map[snowflake.ID]bool, len(u.GuildDeafened))
	for guildID, deafened := range u.GuildDeafened {
		cp.GuildDeafened[guildID] = deafened
	}
	cp.VoiceChannels = append([]snowflake.ID(nil), u.VoiceChannels...)
	return cp
}

// RolesForGuild returns a copy of the role ids the user holds in the guild.
func (u *User) RolesForGuild(guildID snowflake.ID) []snowflake.ID {
	return append([]snowflake.ID(nil), u.Roles[guildID]...)
}

func (u *User) SetRolesForGuild(guildID snowflake.ID, roles []snowflake.ID) {
	u.Roles[guildID] = append([]snowflake.ID(nil), roles...)
}

// Nick returns the user's nickname in the guild, nil when none is set.
func (u *User) Nick(guildID snowflake.ID) *string {
	return u.Nicks[guildID]
}

func (u *User) SetNick(guildID snowflake.ID, nick *string) {
	u.Nicks[guildID] = nick
}

func (u *User) InVoiceChannel(channelID snowflake.ID) bool {
	for _, id := range u.VoiceChannels {
		if id == channelID {
			return true
		}
	}
	return false
}

func (u *User) JoinVoiceChannel(channelID snowflake.ID) {
	if !u.InVoiceChannel(channelID) {
		u.VoiceChannels = append(u.VoiceChannels, channelID)
	}
}

func (u *User) LeaveVoiceChannel(channelID snowflake.ID) {
	for i, id := range u.VoiceChannels {
		if id == channelID {
			u.VoiceChannels = append(u.VoiceChannels[:i], u.VoiceChannels[i+1:]...)
			return
		}
	}
}
