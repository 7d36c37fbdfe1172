package voice

import (
	"strings"

	"github.com/disgoorg/snowflake/v2"
)

// Conn is an opaque handle to an established voice transport, stored by
// the client keyed by guild.
type Conn interface {
	GuildID() snowflake.ID
	Close() error
}

// Connector establishes the secondary media transport once the server
// assigns a voice endpoint. The voice protocol itself lives behind this
// interface.
type Connector interface {
	Connect(guildID snowflake.ID, endpoint, token, sessionID string) (Conn, error)
}

// TrimEndpoint strips the trailing port suffix off a voice server
// endpoint, which is handed over as a bare host.
func TrimEndpoint(endpoint string) string {
	if i := strings.Index(endpoint, ":"); i >= 0 {
		return endpoint[:i]
	}
	return endpoint
}

// NopConnector satisfies Connector without opening anything. Used when no
// voice support is wired in and in tests.
type NopConnector struct{}

func (NopConnector) Connect(guildID snowflake.ID, endpoint, token, sessionID string) (Conn, error) {
	return nopConn{guildID: guildID}, nil
}

type nopConn struct {
	guildID snowflake.ID
}

func (c nopConn) GuildID() snowflake.ID { return c.guildID }
func (c nopConn) Close() error          { return nil }
