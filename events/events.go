package events

import (
	"time"

	"github.com/disgoorg/snowflake/v2"

	"github.com/fuad-daoud/discord-gateway/discord"
)

// Type identifies a domain event kind; subscribers register per Type.
type Type string

const (
	TypeReady       Type = "ready"
	TypeReconnected Type = "reconnected"

	TypeMessageReceived Type = "message_received"
	TypeMessageSent     Type = "message_sent"
	TypeMention         Type = "mention"
	TypeMessageEmbed    Type = "message_embed"
	TypeMessagePin      Type = "message_pin"
	TypeMessageUnpin    Type = "message_unpin"
	TypeMessageUpdate   Type = "message_update"
	TypeMessageDelete   Type = "message_delete"
	TypeInviteReceived  Type = "invite_received"
	TypeTyping          Type = "typing"

	TypeGuildCreate            Type = "guild_create"
	TypeGuildLeave             Type = "guild_leave"
	TypeGuildUnavailable       Type = "guild_unavailable"
	TypeGuildUpdate            Type = "guild_update"
	TypeGuildTransferOwnership Type = "guild_transfer_ownership"

	TypeUserJoin       Type = "user_join"
	TypeUserLeave      Type = "user_leave"
	TypeUserRoleUpdate Type = "user_role_update"
	TypeNicknameChange Type = "nickname_change"
	TypeUserUpdate     Type = "user_update"
	TypeUserBan        Type = "user_ban"
	TypeUserPardon     Type = "user_pardon"

	TypePresenceUpdate Type = "presence_update"
	TypeStatusChange   Type = "status_change"

	TypeChannelCreate      Type = "channel_create"
	TypeChannelDelete      Type = "channel_delete"
	TypeChannelUpdate      Type = "channel_update"
	TypeVoiceChannelCreate Type = "voice_channel_create"
	TypeVoiceChannelDelete Type = "voice_channel_delete"
	TypeVoiceChannelUpdate Type = "voice_channel_update"

	TypeRoleCreate Type = "role_create"
	TypeRoleUpdate Type = "role_update"
	TypeRoleDelete Type = "role_delete"

	TypeVoiceChannelJoin  Type = "voice_channel_join"
	TypeVoiceChannelMove  Type = "voice_channel_move"
	TypeVoiceChannelLeave Type = "voice_channel_leave"
)

type Event interface {
	EventType() Type
}

type Ready struct {
	User discord.User
}

func (Ready) EventType() Type { return TypeReady }

// Reconnected fires after a dropped session is resumed in place.
type Reconnected struct{}

func (Reconnected) EventType() Type { return TypeReconnected }

type MessageReceived struct {
	Message discord.Message
}

func (MessageReceived) EventType() Type { return TypeMessageReceived }

// MessageSent fires for messages authored by the session's own user.
type MessageSent struct {
	Message discord.Message
}

func (MessageSent) EventType() Type { return TypeMessageSent }

type Mention struct {
	Message discord.Message
}

func (Mention) EventType() Type { return TypeMention }

type MessageEmbed struct {
	Message   discord.Message
	OldEmbeds []discord.Embed
}

func (MessageEmbed) EventType() Type { return TypeMessageEmbed }

type MessagePin struct {
	Message discord.Message
}

func (MessagePin) EventType() Type { return TypeMessagePin }

type MessageUnpin struct {
	Message discord.Message
}

func (MessageUnpin) EventType() Type { return TypeMessageUnpin }

type MessageUpdate struct {
	Old discord.Message
	New discord.Message
}

func (MessageUpdate) EventType() Type { return TypeMessageUpdate }

type MessageDelete struct {
	Message discord.Message
}

func (MessageDelete) EventType() Type { return TypeMessageDelete }

type Invite struct {
	Code        string
	GuildID     snowflake.ID
	GuildName   string
	ChannelID   snowflake.ID
	ChannelName string
}

// InviteReceived carries every invite that could be resolved out of a
// single message, batched.
type InviteReceived struct {
	Invites []Invite
	Message discord.Message
}

func (InviteReceived) EventType() Type { return TypeInviteReceived }

type Typing struct {
	User    discord.User
	Channel discord.Channel
}

func (Typing) EventType() Type { return TypeTyping }

type GuildCreate struct {
	Guild discord.Guild
}

func (GuildCreate) EventType() Type { return TypeGuildCreate }

type GuildLeave struct {
	Guild discord.Guild
}

func (GuildLeave) EventType() Type { return TypeGuildLeave }

// GuildUnavailable signals an outage for a guild, not a real leave.
type GuildUnavailable struct {
	GuildID snowflake.ID
}

func (GuildUnavailable) EventType() Type { return TypeGuildUnavailable }

type GuildUpdate struct {
	Old discord.Guild
	New discord.Guild
}

func (GuildUpdate) EventType() Type { return TypeGuildUpdate }

type GuildTransferOwnership struct {
	OldOwnerID snowflake.ID
	NewOwnerID snowflake.ID
	Guild      discord.Guild
}

func (GuildTransferOwnership) EventType() Type { return TypeGuildTransferOwnership }

type UserJoin struct {
	Guild    discord.Guild
	User     discord.User
	JoinedAt time.Time
}

func (UserJoin) EventType() Type { return TypeUserJoin }

type UserLeave struct {
	Guild discord.Guild
	User  discord.User
}

func (UserLeave) EventType() Type { return TypeUserLeave }

type UserRoleUpdate struct {
	Guild    discord.Guild
	User     discord.User
	OldRoles []snowflake.ID
	NewRoles []snowflake.ID
}

func (UserRoleUpdate) EventType() Type { return TypeUserRoleUpdate }

type NicknameChange struct {
	Guild   discord.Guild
	User    discord.User
	OldNick *string
	NewNick *string
}

func (NicknameChange) EventType() Type { return TypeNicknameChange }

type UserUpdate struct {
	Old discord.User
	New discord.User
}

func (UserUpdate) EventType() Type { return TypeUserUpdate }

type UserBan struct {
	Guild discord.Guild
	User  discord.User
}

func (UserBan) EventType() Type { return TypeUserBan }

type UserPardon struct {
	Guild discord.Guild
	User  discord.User
}

func (UserPardon) EventType() Type { return TypeUserPardon }

type PresenceUpdate struct {
	User        discord.User
	OldPresence discord.Presence
	NewPresence discord.Presence
}

func (PresenceUpdate) EventType() Type { return TypePresenceUpdate }

type StatusChange struct {
	User      discord.User
	OldStatus discord.Status
	NewStatus discord.Status
}

func (StatusChange) EventType() Type { return TypeStatusChange }

type ChannelCreate struct {
	Channel discord.Channel
}

func (ChannelCreate) EventType() Type { return TypeChannelCreate }

type ChannelDelete struct {
	Channel discord.Channel
}

func (ChannelDelete) EventType() Type { return TypeChannelDelete }

type ChannelUpdate struct {
	Old discord.Channel
	New discord.Channel
}

func (ChannelUpdate) EventType() Type { return TypeChannelUpdate }

type VoiceChannelCreate struct {
	Channel discord.VoiceChannel
}

func (VoiceChannelCreate) EventType() Type { return TypeVoiceChannelCreate }

type VoiceChannelDelete struct {
	Channel discord.VoiceChannel
}

func (VoiceChannelDelete) EventType() Type { return TypeVoiceChannelDelete }

type VoiceChannelUpdate struct {
	Old discord.VoiceChannel
	New discord.VoiceChannel
}

func (VoiceChannelUpdate) EventType() Type { return TypeVoiceChannelUpdate }

type RoleCreate struct {
	Role  discord.Role
	Guild discord.Guild
}

func (RoleCreate) EventType() Type { return TypeRoleCreate }

type RoleUpdate struct {
	Old   discord.Role
	New   discord.Role
	Guild discord.Guild
}

func (RoleUpdate) EventType() Type { return TypeRoleUpdate }

type RoleDelete struct {
	Role  discord.Role
	Guild discord.Guild
}

func (RoleDelete) EventType() Type { return TypeRoleDelete }

type VoiceChannelJoin struct {
	User    discord.User
	Channel discord.VoiceChannel
}

func (VoiceChannelJoin) EventType() Type { return TypeVoiceChannelJoin }

type VoiceChannelMove struct {
	User discord.User
	Old  discord.VoiceChannel
	New  discord.VoiceChannel
}

func (VoiceChannelMove) EventType() Type { return TypeVoiceChannelMove }

type VoiceChannelLeave struct {
	User    discord.User
	Channel discord.VoiceChannel
}

func (VoiceChannelLeave) EventType() Type { return TypeVoiceChannelLeave }
