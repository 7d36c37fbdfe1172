package discord

import "strings"

// Presence is the broad availability of a user as shown to other users.
type Presence string

const (
	PresenceOnline    Presence = "online"
	PresenceIdle      Presence = "idle"
	PresenceDND       Presence = "dnd"
	PresenceStreaming Presence = "streaming"
	PresenceOffline   Presence = "offline"
)

func ParsePresence(s string) Presence {
	switch strings.ToLower(s) {
	case "online":
		return PresenceOnline
	case "idle":
		return PresenceIdle
	case "dnd":
		return PresenceDND
	case "streaming":
		return PresenceStreaming
	default:
		return PresenceOffline
	}
}

type StatusType int

const (
	StatusTypeNone StatusType = iota
	StatusTypeGame
	StatusTypeStream
)

// Status is the activity text attached to a presence ("playing X",
// "streaming Y").
type Status struct {
	Type StatusType
	Name string
	URL  string
}
