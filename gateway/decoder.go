package gateway

import (
	"errors"
	"fmt"

	simplejson "github.com/bitly/go-simplejson"
	"github.com/mitchellh/mapstructure"

	"github.com/fuad-daoud/discord-gateway/logger/dlog"
)

// Envelope is the outer shape of every inbound frame: an opcode, an
// optional sequence number and, for dispatch frames, an event name and
// body.
type Envelope struct {
	Op        Opcode
	Seq       *int64
	EventName string
	Data      *simplejson.Json
}

// DecodeEnvelope parses a raw text frame. A frame carrying a top-level
// `message` field is a protocol-level error notice from the server; it is
// logged and decoding continues. A missing `op` is a decode error.
func DecodeEnvelope(frame []byte) (*Envelope, error) {
	j, err := simplejson.NewJson(frame)
	if err != nil {
		return nil, fmt.Errorf("malformed frame: %w", err)
	}

	if notice, ok := j.CheckGet("message"); ok {
		text, _ := notice.String()
		if text == "" {
			dlog.Error("Received unknown error notice from gateway", "frame", string(frame))
		} else {
			dlog.Error("Received error notice from gateway", "message", text)
		}
	}

	opField, ok := j.CheckGet("op")
	if !ok {
		return nil, errors.New("frame missing op field")
	}
	op, err := opField.Int()
	if err != nil {
		return nil, fmt.Errorf("op field is not an integer: %w", err)
	}

	env := &Envelope{Op: Opcode(op), Data: j.Get("d")}

	if seqField, ok := j.CheckGet("s"); ok {
		if seq, err := seqField.Int64(); err == nil {
			env.Seq = &seq
		}
	}

	if env.Op == OpcodeDispatch {
		name, err := j.Get("t").String()
		if err != nil {
			return nil, errors.New("dispatch frame missing t field")
		}
		env.EventName = name
	}

	return env, nil
}

// DecodeData decodes the envelope body into the typed payload for its
// event name. Names with no cache or subscriber meaning decode to nil;
// unrecognized names decode to UnknownEventData so the caller can log and
// skip them.
func (env *Envelope) DecodeData() (any, error) {
	switch env.EventName {
	case EventReady:
		return decodeBody[ReadyData](env)
	case EventResumed:
		return &ResumedData{}, nil
	case EventMessageCreate, EventMessageUpdate:
		return decodeBody[MessageObject](env)
	case EventMessageDelete:
		return decodeBody[MessageDeleteData](env)
	case EventMessageDeleteBulk:
		return decodeBody[MessageDeleteBulkData](env)
	case EventTypingStart:
		return decodeBody[TypingStartData](env)
	case EventGuildCreate, EventGuildUpdate, EventGuildDelete:
		return decodeBody[GuildObject](env)
	case EventGuildMemberAdd:
		return decodeBody[GuildMemberAddData](env)
	case EventGuildMemberRemove:
		return decodeBody[GuildMemberRemoveData](env)
	case EventGuildMemberUpdate:
		return decodeBody[GuildMemberUpdateData](env)
	case EventGuildMembersChunk:
		return decodeBody[GuildMembersChunkData](env)
	case EventGuildRoleCreate, EventGuildRoleUpdate:
		return decodeBody[GuildRoleData](env)
	case EventGuildRoleDelete:
		return decodeBody[GuildRoleDeleteData](env)
	case EventGuildBanAdd, EventGuildBanRemove:
		return decodeBody[GuildBanData](env)
	case EventPresenceUpdate:
		return decodeBody[PresenceUpdateData](env)
	case EventUserUpdate:
		return decodeBody[UserObject](env)
	case EventChannelCreate, EventChannelUpdate, EventChannelDelete:
		return decodeBody[ChannelObject](env)
	case EventVoiceStateUpdate:
		return decodeBody[VoiceStateObject](env)
	case EventVoiceServerUpdate:
		return decodeBody[VoiceServerUpdateData](env)
	case EventChannelPinsUpdate, EventGuildEmojisUpdate, EventGuildIntegrationsUpdate:
		// covered elsewhere or carrying nothing the cache tracks
		return nil, nil
	default:
		return &UnknownEventData{Name: env.EventName}, nil
	}
}

// DecodeHello decodes the body of a Hello control frame.
func (env *Envelope) DecodeHello() (*HelloData, error) {
	return decodeBody[HelloData](env)
}

func decodeBody[T any](env *Envelope) (*T, error) {
	var out T
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &out,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(env.Data.Interface()); err != nil {
		return nil, fmt.Errorf("decoding %s body: %w", env.EventName, err)
	}
	return &out, nil
}
