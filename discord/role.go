package discord

import "github.com/disgoorg/snowflake/v2"

// Role is a guild role. Permissions is a raw permission bitset.
type Role struct {
	ID          snowflake.ID
	GuildID     snowflake.ID
	Name        string
	Permissions int64
	Color       int
	Position    int
	Hoist       bool
	Managed     bool
}

func (r *Role) Copy() Role {
	return *r
}
