package graph

import (
	"strings"

	"github.com/fuad-daoud/discord-gateway/discord"
	"github.com/fuad-daoud/discord-gateway/events"
	"github.com/fuad-daoud/discord-gateway/logger/dlog"
)

// Sink mirrors a subset of the domain events into the graph. Writes run
// on the dispatcher goroutine and only log on failure so a slow or dead
// database never stalls frame processing semantics beyond the write call.
type Sink struct {
	conn *Connection
	ids  []struct {
		typ events.Type
		id  int
	}
}

// NewSink attaches the sink to the dispatcher. Detach undoes it.
func NewSink(conn *Connection, d *events.Dispatcher) *Sink {
	s := &Sink{conn: conn}
	s.subscribe(d, events.TypeGuildCreate, func(e events.Event) { s.guildCreate(e.(events.GuildCreate)) })
	s.subscribe(d, events.TypeGuildLeave, func(e events.Event) { s.guildLeave(e.(events.GuildLeave)) })
	s.subscribe(d, events.TypeUserJoin, func(e events.Event) { s.userJoin(e.(events.UserJoin)) })
	s.subscribe(d, events.TypeUserLeave, func(e events.Event) { s.userLeave(e.(events.UserLeave)) })
	s.subscribe(d, events.TypeMessageReceived, func(e events.Event) { s.message(e.(events.MessageReceived).Message) })
	s.subscribe(d, events.TypeMessageSent, func(e events.Event) { s.message(e.(events.MessageSent).Message) })
	s.subscribe(d, events.TypeMessageUpdate, func(e events.Event) { s.messageUpdate(e.(events.MessageUpdate)) })
	s.subscribe(d, events.TypeMessageDelete, func(e events.Event) { s.messageDelete(e.(events.MessageDelete)) })
	s.subscribe(d, events.TypeChannelCreate, func(e events.Event) { s.channelCreate(e.(events.ChannelCreate)) })
	return s
}

func (s *Sink) subscribe(d *events.Dispatcher, typ events.Type, fn func(events.Event)) {
	id := d.Subscribe(typ, fn)
	s.ids = append(s.ids, struct {
		typ events.Type
		id  int
	}{typ, id})
}

func (s *Sink) Detach(d *events.Dispatcher) {
	for _, sub := range s.ids {
		d.Unsubscribe(sub.typ, sub.id)
	}
	s.ids = nil
}

func (s *Sink) guildCreate(e events.GuildCreate) {
	err := s.conn.Transaction(func(write Write) error {
		node := Guild{Id: e.Guild.ID.String(), Name: e.Guild.Name, OwnerId: e.Guild.OwnerID.String()}
		if err := write(MergeN("g", node)); err != nil {
			return err
		}
		for _, memberID := range e.Guild.Members {
			if err := write(MergeN("mb", Member{Id: memberID.String()}),
				MatchN("g", Guild{Id: node.Id}),
				Merge("(g)-[:HAS]->(mb)-[:MEMBER_OF]->(g)")); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		dlog.Error("Graph guildCreate failed", "guild", e.Guild.ID, "err", err)
	}
}

func (s *Sink) guildLeave(e events.GuildLeave) {
	err := s.conn.Transaction(func(write Write) error {
		return write(MatchN("g", Guild{Id: e.Guild.ID.String()}), Detach("g"))
	})
	if err != nil {
		dlog.Error("Graph guildLeave failed", "guild", e.Guild.ID, "err", err)
	}
}

func (s *Sink) userJoin(e events.UserJoin) {
	err := s.conn.Transaction(func(write Write) error {
		return write(MergeN("mb", Member{Id: e.User.ID.String(), Name: e.User.Username}),
			MatchN("g", Guild{Id: e.Guild.ID.String()}),
			Merge("(g)-[:HAS]->(mb)-[:MEMBER_OF]->(g)"))
	})
	if err != nil {
		dlog.Error("Graph userJoin failed", "user", e.User.ID, "err", err)
	}
}

func (s *Sink) userLeave(e events.UserLeave) {
	err := s.conn.Transaction(func(write Write) error {
		return write(MatchN("g", Guild{Id: e.Guild.ID.String()}),
			MatchN("mb", Member{Id: e.User.ID.String()}),
			"MATCH (g)-[r]-(mb) DELETE r")
	})
	if err != nil {
		dlog.Error("Graph userLeave failed", "user", e.User.ID, "err", err)
	}
}

func (s *Sink) channelCreate(e events.ChannelCreate) {
	err := s.conn.Transaction(func(write Write) error {
		return write(MatchN("g", Guild{Id: e.Channel.GuildID.String()}),
			MergeN("c", TextChannel{Id: e.Channel.ID.String(), Name: e.Channel.Name}),
			Merge("(g)-[:HAS]->(c)"))
	})
	if err != nil {
		dlog.Error("Graph channelCreate failed", "channel", e.Channel.ID, "err", err)
	}
}

func (s *Sink) message(m discord.Message) {
	node := Message{
		Id:          m.ID.String(),
		Text:        strings.ReplaceAll(m.Content, `"`, "'"),
		CreatedDate: m.Timestamp.String(),
	}
	err := s.conn.Transaction(func(write Write) error {
		return write(MergeN("c", TextChannel{Id: m.ChannelID.String()}),
			MergeN("mb", Member{Id: m.AuthorID.String()}),
			CreateN("m", node),
			Merge("(c)-[:CONTAINS]->(m)-[:AUTHOR]->(mb)-[:CREATED]->(m)"))
	})
	if err != nil {
		dlog.Error("Graph message failed", "message", m.ID, "err", err)
	}
}

func (s *Sink) messageUpdate(e events.MessageUpdate) {
	set, err := Set("m", Message{
		Id:          e.New.ID.String(),
		Text:        strings.ReplaceAll(e.New.Content, `"`, "'"),
		UpdatedDate: e.New.Timestamp.String(),
	})
	if err != nil {
		dlog.Error("Graph messageUpdate failed", "message", e.New.ID, "err", err)
		return
	}
	err = s.conn.Transaction(func(write Write) error {
		return write(MatchN("m", Message{Id: e.New.ID.String()}), set, Return("m"))
	})
	if err != nil {
		dlog.Error("Graph messageUpdate failed", "message", e.New.ID, "err", err)
	}
}

func (s *Sink) messageDelete(e events.MessageDelete) {
	err := s.conn.Transaction(func(write Write) error {
		return write(MatchN("m", Message{Id: e.Message.ID.String()}), Detach("m"))
	})
	if err != nil {
		dlog.Error("Graph messageDelete failed", "message", e.Message.ID, "err", err)
	}
}
