package gateway

// Dispatch event names as they appear in the envelope `t` field.
const (
	EventReady                   = "READY"
	EventResumed                 = "RESUMED"
	EventMessageCreate           = "MESSAGE_CREATE"
	EventMessageUpdate           = "MESSAGE_UPDATE"
	EventMessageDelete           = "MESSAGE_DELETE"
	EventMessageDeleteBulk       = "MESSAGE_DELETE_BULK"
	EventTypingStart             = "TYPING_START"
	EventGuildCreate             = "GUILD_CREATE"
	EventGuildUpdate             = "GUILD_UPDATE"
	EventGuildDelete             = "GUILD_DELETE"
	EventGuildMemberAdd          = "GUILD_MEMBER_ADD"
	EventGuildMemberRemove       = "GUILD_MEMBER_REMOVE"
	EventGuildMemberUpdate       = "GUILD_MEMBER_UPDATE"
	EventGuildMembersChunk       = "GUILD_MEMBERS_CHUNK"
	EventGuildRoleCreate         = "GUILD_ROLE_CREATE"
	EventGuildRoleUpdate         = "GUILD_ROLE_UPDATE"
	EventGuildRoleDelete         = "GUILD_ROLE_DELETE"
	EventGuildBanAdd             = "GUILD_BAN_ADD"
	EventGuildBanRemove          = "GUILD_BAN_REMOVE"
	EventGuildEmojisUpdate       = "GUILD_EMOJIS_UPDATE"
	EventGuildIntegrationsUpdate = "GUILD_INTEGRATIONS_UPDATE"
	EventPresenceUpdate          = "PRESENCE_UPDATE"
	EventUserUpdate              = "USER_UPDATE"
	EventChannelCreate           = "CHANNEL_CREATE"
	EventChannelUpdate           = "CHANNEL_UPDATE"
	EventChannelDelete           = "CHANNEL_DELETE"
	EventChannelPinsUpdate       = "CHANNEL_PINS_UPDATE"
	EventVoiceStateUpdate        = "VOICE_STATE_UPDATE"
	EventVoiceServerUpdate       = "VOICE_SERVER_UPDATE"
)

// Wire objects, decoded out of the envelope `d` body. Ids stay strings at
// this layer; conversion to snowflakes happens when entities are built.

type UserObject struct {
	ID            string `mapstructure:"id"`
	Username      string `mapstructure:"username"`
	Discriminator string `mapstructure:"discriminator"`
	Avatar        string `mapstructure:"avatar"`
}

type MemberObject struct {
	User     UserObject `mapstructure:"user"`
	Roles    []string   `mapstructure:"roles"`
	Nick     *string    `mapstructure:"nick"`
	JoinedAt string     `mapstructure:"joined_at"`
	Mute     bool       `mapstructure:"mute"`
	Deaf     bool       `mapstructure:"deaf"`
}

type RoleObject struct {
	ID          string `mapstructure:"id"`
	Name        string `mapstructure:"name"`
	Permissions int64  `mapstructure:"permissions"`
	Color       int    `mapstructure:"color"`
	Position    int    `mapstructure:"position"`
	Hoist       bool   `mapstructure:"hoist"`
	Managed     bool   `mapstructure:"managed"`
}

type ChannelObject struct {
	ID        string     `mapstructure:"id"`
	GuildID   string     `mapstructure:"guild_id"`
	Name      string     `mapstructure:"name"`
	Topic     string     `mapstructure:"topic"`
	Type      string     `mapstructure:"type"`
	IsPrivate bool       `mapstructure:"is_private"`
	Recipient UserObject `mapstructure:"recipient"`
}

type EmbedObject struct {
	Title       string `mapstructure:"title"`
	Description string `mapstructure:"description"`
	URL         string `mapstructure:"url"`
}

type MessageObject struct {
	ID              string        `mapstructure:"id"`
	ChannelID       string        `mapstructure:"channel_id"`
	Author          UserObject    `mapstructure:"author"`
	Content         string        `mapstructure:"content"`
	Timestamp       string        `mapstructure:"timestamp"`
	Pinned          bool          `mapstructure:"pinned"`
	MentionEveryone bool          `mapstructure:"mention_everyone"`
	Mentions        []UserObject  `mapstructure:"mentions"`
	MentionRoles    []string      `mapstructure:"mention_roles"`
	Embeds          []EmbedObject `mapstructure:"embeds"`
}

type VoiceStateObject struct {
	GuildID   string  `mapstructure:"guild_id"`
	ChannelID *string `mapstructure:"channel_id"`
	UserID    string  `mapstructure:"user_id"`
	SessionID string  `mapstructure:"session_id"`
	Deaf      bool    `mapstructure:"deaf"`
	Mute      bool    `mapstructure:"mute"`
	SelfDeaf  bool    `mapstructure:"self_deaf"`
	SelfMute  bool    `mapstructure:"self_mute"`
}

type GameObject struct {
	Name string `mapstructure:"name"`
	Type int    `mapstructure:"type"`
	URL  string `mapstructure:"url"`
}

type GuildObject struct {
	ID          string             `mapstructure:"id"`
	Name        string             `mapstructure:"name"`
	OwnerID     string             `mapstructure:"owner_id"`
	Icon        string             `mapstructure:"icon"`
	Unavailable bool               `mapstructure:"unavailable"`
	Members     []MemberObject     `mapstructure:"members"`
	Channels    []ChannelObject    `mapstructure:"channels"`
	Roles       []RoleObject       `mapstructure:"roles"`
	VoiceStates []VoiceStateObject `mapstructure:"voice_states"`
}

type PrivateChannelObject struct {
	ID        string     `mapstructure:"id"`
	Recipient UserObject `mapstructure:"recipient"`
}

// Event bodies.

type HelloData struct {
	HeartbeatInterval int64 `mapstructure:"heartbeat_interval"`
}

type ReadyData struct {
	V               int                    `mapstructure:"v"`
	User            UserObject             `mapstructure:"user"`
	SessionID       string                 `mapstructure:"session_id"`
	PrivateChannels []PrivateChannelObject `mapstructure:"private_channels"`
	Guilds          []GuildObject          `mapstructure:"guilds"`
}

type ResumedData struct{}

type TypingStartData struct {
	ChannelID string `mapstructure:"channel_id"`
	UserID    string `mapstructure:"user_id"`
}

type MessageDeleteData struct {
	ID        string `mapstructure:"id"`
	ChannelID string `mapstructure:"channel_id"`
}

type MessageDeleteBulkData struct {
	IDs       []string `mapstructure:"ids"`
	ChannelID string   `mapstructure:"channel_id"`
}

type GuildMemberAddData struct {
	GuildID  string     `mapstructure:"guild_id"`
	User     UserObject `mapstructure:"user"`
	Roles    []string   `mapstructure:"roles"`
	Nick     *string    `mapstructure:"nick"`
	JoinedAt string     `mapstructure:"joined_at"`
}

type GuildMemberRemoveData struct {
	GuildID string     `mapstructure:"guild_id"`
	User    UserObject `mapstructure:"user"`
}

type GuildMemberUpdateData struct {
	GuildID string     `mapstructure:"guild_id"`
	User    UserObject `mapstructure:"user"`
	Roles   []string   `mapstructure:"roles"`
	Nick    *string    `mapstructure:"nick"`
}

type GuildMembersChunkData struct {
	GuildID string         `mapstructure:"guild_id"`
	Members []MemberObject `mapstructure:"members"`
}

type GuildRoleData struct {
	GuildID string     `mapstructure:"guild_id"`
	Role    RoleObject `mapstructure:"role"`
}

type GuildRoleDeleteData struct {
	GuildID string `mapstructure:"guild_id"`
	RoleID  string `mapstructure:"role_id"`
}

type GuildBanData struct {
	GuildID string     `mapstructure:"guild_id"`
	User    UserObject `mapstructure:"user"`
}

type PresenceUpdateData struct {
	GuildID string      `mapstructure:"guild_id"`
	User    UserObject  `mapstructure:"user"`
	Status  string      `mapstructure:"status"`
	Game    *GameObject `mapstructure:"game"`
}

type VoiceServerUpdateData struct {
	GuildID  string `mapstructure:"guild_id"`
	Token    string `mapstructure:"token"`
	Endpoint string `mapstructure:"endpoint"`
}

// UnknownEventData is the fallback variant for event names this client
// does not recognize.
type UnknownEventData struct {
	Name string
}
