package client

import (
	"sync"
	"time"

	"github.com/disgoorg/snowflake/v2"

	"github.com/fuad-daoud/discord-gateway/discord"
	"github.com/fuad-daoud/discord-gateway/events"
	"github.com/fuad-daoud/discord-gateway/gateway"
	"github.com/fuad-daoud/discord-gateway/logger/dlog"
	"github.com/fuad-daoud/discord-gateway/rest"
	"github.com/fuad-daoud/discord-gateway/voice"
)

type Config struct {
	Token      string
	GatewayURL string
	RestURL    string

	// optional overrides, mainly for tests
	Dial      gateway.DialFunc
	Resolver  rest.InviteResolver
	Connector voice.Connector

	ReconnectBackoff  time.Duration
	ReconnectAttempts int
}

// Client is the application-facing entry point: it owns the cache, the
// dispatcher and the gateway session, and hosts one handler per dispatch
// event name. Handlers run strictly in arrival order on the session's
// read goroutine, which is what makes the diff-then-replace cache updates
// safe without locks.
type Client struct {
	State      *discord.State
	Dispatcher *events.Dispatcher
	Session    *gateway.Session

	resolver  rest.InviteResolver
	connector voice.Connector

	voiceMu    sync.Mutex
	voiceConns map[snowflake.ID]voice.Conn
	voiceGens  map[snowflake.ID]uint64
}

func New(cfg Config) *Client {
	c := &Client{
		State:      discord.NewState(),
		Dispatcher: events.NewDispatcher(),
		resolver:   cfg.Resolver,
		connector:  cfg.Connector,
		voiceConns: map[snowflake.ID]voice.Conn{},
		voiceGens:  map[snowflake.ID]uint64{},
	}
	if c.resolver == nil && cfg.RestURL != "" {
		c.resolver = rest.NewClient(cfg.RestURL, cfg.Token)
	}
	if c.connector == nil {
		c.connector = voice.NopConnector{}
	}
	c.Session = gateway.NewSession(gateway.Config{
		URL:               cfg.GatewayURL,
		Token:             cfg.Token,
		Dial:              cfg.Dial,
		ReconnectBackoff:  cfg.ReconnectBackoff,
		ReconnectAttempts: cfg.ReconnectAttempts,
	}, c.handleEvent, c.handleInvalidSession)
	return c
}

func (c *Client) Open() error {
	return c.Session.Open()
}

func (c *Client) Close() {
	c.Session.Close()
	c.voiceMu.Lock()
	defer c.voiceMu.Unlock()
	for guildID, conn := range c.voiceConns {
		if err := conn.Close(); err != nil {
			dlog.Warn("Failed to close voice connection", "guild", guildID, "err", err)
		}
		delete(c.voiceConns, guildID)
	}
}

// VoiceConn returns the voice connection handle for a guild, if any.
func (c *Client) VoiceConn(guildID snowflake.ID) (voice.Conn, bool) {
	c.voiceMu.Lock()
	defer c.voiceMu.Unlock()
	conn, ok := c.voiceConns[guildID]
	return conn, ok
}

// handleInvalidSession discards the cache ahead of the fresh Identify.
func (c *Client) handleInvalidSession() {
	c.State.Reset()
}

func (c *Client) handleEvent(name string, data any) {
	switch d := data.(type) {
	case *gateway.ReadyData:
		c.handleReady(d)
	case *gateway.ResumedData:
		c.Dispatcher.Publish(events.Reconnected{})
	case *gateway.MessageObject:
		if name == gateway.EventMessageCreate {
			c.handleMessageCreate(d)
		} else {
			c.handleMessageUpdate(d)
		}
	case *gateway.MessageDeleteData:
		c.handleMessageDelete(d)
	case *gateway.MessageDeleteBulkData:
		c.handleMessageDeleteBulk(d)
	case *gateway.TypingStartData:
		c.handleTypingStart(d)
	case *gateway.GuildObject:
		switch name {
		case gateway.EventGuildCreate:
			c.handleGuildCreate(d)
		case gateway.EventGuildUpdate:
			c.handleGuildUpdate(d)
		case gateway.EventGuildDelete:
			c.handleGuildDelete(d)
		}
	case *gateway.GuildMemberAddData:
		c.handleGuildMemberAdd(d)
	case *gateway.GuildMemberRemoveData:
		c.handleGuildMemberRemove(d)
	case *gateway.GuildMemberUpdateData:
		c.handleGuildMemberUpdate(d)
	case *gateway.GuildMembersChunkData:
		c.handleGuildMembersChunk(d)
	case *gateway.GuildRoleData:
		if name == gateway.EventGuildRoleCreate {
			c.handleGuildRoleCreate(d)
		} else {
			c.handleGuildRoleUpdate(d)
		}
	case *gateway.GuildRoleDeleteData:
		c.handleGuildRoleDelete(d)
	case *gateway.GuildBanData:
		if name == gateway.EventGuildBanAdd {
			c.handleGuildBanAdd(d)
		} else {
			c.handleGuildBanRemove(d)
		}
	case *gateway.PresenceUpdateData:
		c.handlePresenceUpdate(d)
	case *gateway.UserObject:
		c.handleUserUpdate(d)
	case *gateway.ChannelObject:
		switch name {
		case gateway.EventChannelCreate:
			c.handleChannelCreate(d)
		case gateway.EventChannelUpdate:
			c.handleChannelUpdate(d)
		case gateway.EventChannelDelete:
			c.handleChannelDelete(d)
		}
	case *gateway.VoiceStateObject:
		c.handleVoiceStateUpdate(d)
	case *gateway.VoiceServerUpdateData:
		c.handleVoiceServerUpdate(d)
	default:
		dlog.Debug("No handler for event", "event", name)
	}
}

func (c *Client) handleReady(d *gateway.ReadyData) {
	self, ok := c.upsertUser(d.User)
	if !ok {
		dlog.Error("READY carried an invalid self user id", "id", d.User.ID)
		return
	}
	c.State.SetSelfID(self.ID)

	for _, pc := range d.PrivateChannels {
		c.ingestPrivateChannel(pc)
	}
	for _, g := range d.Guilds {
		if g.Unavailable {
			continue
		}
		c.ingestGuild(&g)
	}
	c.Dispatcher.Publish(events.Ready{User: self.Copy()})
}
