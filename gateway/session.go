package gateway

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/fuad-daoud/discord-gateway/logger/dlog"
)

// Status is the connection state of a Session.
type Status int32

const (
	StatusConnecting Status = iota
	StatusAwaitingHello
	StatusIdentifying
	StatusConnected
	StatusResuming
	StatusReconnecting
	StatusInvalid
	StatusDisconnected
)

func (s Status) String() string {
	switch s {
	case StatusConnecting:
		return "Connecting"
	case StatusAwaitingHello:
		return "AwaitingHello"
	case StatusIdentifying:
		return "Identifying"
	case StatusConnected:
		return "Connected"
	case StatusResuming:
		return "Resuming"
	case StatusReconnecting:
		return "Reconnecting"
	case StatusInvalid:
		return "Invalid"
	case StatusDisconnected:
		return "Disconnected"
	default:
		return "Unknown"
	}
}

type frame struct {
	Op Opcode `json:"op"`
	D  any    `json:"d"`
}

type identifyProperties struct {
	OS      string `json:"$os"`
	Browser string `json:"$browser"`
	Device  string `json:"$device"`
}

type identifyData struct {
	Token          string             `json:"token"`
	Properties     identifyProperties `json:"properties"`
	Compress       bool               `json:"compress"`
	LargeThreshold int                `json:"large_threshold"`
}

type resumeData struct {
	Token     string `json:"token"`
	SessionID string `json:"session_id"`
	Seq       int64  `json:"seq"`
}

type Config struct {
	URL               string
	Token             string
	Dial              DialFunc
	ReconnectBackoff  time.Duration
	ReconnectAttempts int
}

// EventHandler receives every decoded dispatch event, strictly in arrival
// order, on the session's read goroutine.
type EventHandler func(name string, data any)

// Session owns the gateway connection: handshake, heartbeat, sequence
// tracking and the reconnect/resume/invalidate transitions. Dispatch
// events are decoded once and handed to the EventHandler; the session
// itself never touches domain state beyond the callbacks it was given.
type Session struct {
	id  string
	cfg Config

	onEvent          EventHandler
	onInvalidSession func()

	transportMu sync.Mutex
	transport   Transport

	writeMu sync.Mutex

	status atomic.Int32
	seq    atomic.Int64

	sessionMu sync.Mutex
	sessionID string

	// read/written only on the run goroutine
	resuming bool

	heartbeatMu   sync.Mutex
	heartbeatStop chan struct{}
	awaitingAck   atomic.Bool

	closed atomic.Bool
}

func NewSession(cfg Config, onEvent EventHandler, onInvalidSession func()) *Session {
	if cfg.Dial == nil {
		cfg.Dial = Dial
	}
	if cfg.ReconnectBackoff == 0 {
		cfg.ReconnectBackoff = 2 * time.Second
	}
	if cfg.ReconnectAttempts == 0 {
		cfg.ReconnectAttempts = 5
	}
	s := &Session{
		id:               uuid.NewString(),
		cfg:              cfg,
		onEvent:          onEvent,
		onInvalidSession: onInvalidSession,
	}
	s.seq.Store(-1)
	s.status.Store(int32(StatusConnecting))
	return s
}

func (s *Session) Status() Status {
	return Status(s.status.Load())
}

func (s *Session) setStatus(status Status) {
	s.status.Store(int32(status))
}

// Seq returns the last stored sequence number, -1 when none was seen yet.
func (s *Session) Seq() int64 {
	return s.seq.Load()
}

// SessionID is the server-assigned id of the current session, empty until
// READY is received.
func (s *Session) SessionID() string {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()
	return s.sessionID
}

func (s *Session) setSessionID(id string) {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()
	s.sessionID = id
}

// Open dials the gateway and starts the read loop.
func (s *Session) Open() error {
	s.setStatus(StatusConnecting)
	transport, err := s.cfg.Dial(s.cfg.URL)
	if err != nil {
		s.setStatus(StatusDisconnected)
		return err
	}
	s.setTransport(transport)
	s.setStatus(StatusAwaitingHello)
	dlog.Info("Gateway session opened", "session", s.id, "url", s.cfg.URL)
	go s.run()
	return nil
}

// Close terminates the session cleanly.
func (s *Session) Close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	s.stopHeartbeat()
	if err := s.closeTransport(); err != nil {
		dlog.Debug("Closing transport", "err", err)
	}
	s.setStatus(StatusDisconnected)
	dlog.Info("Gateway session closed", "session", s.id)
}

func (s *Session) run() {
	for {
		transport := s.currentTransport()
		if transport == nil {
			return
		}
		raw, err := transport.ReadFrame()
		if err != nil {
			if s.closed.Load() {
				return
			}
			dlog.Warn("Gateway read failed", "session", s.id, "err", err)
			if !s.reconnect(true) {
				s.setStatus(StatusDisconnected)
				return
			}
			continue
		}

		env, err := DecodeEnvelope(raw)
		if err != nil {
			dlog.Error("Dropping malformed frame", "err", err)
			continue
		}
		s.handle(env)
	}
}

func (s *Session) handle(env *Envelope) {
	if env.Seq != nil {
		s.seq.Store(*env.Seq)
	}

	switch env.Op {
	case OpcodeDispatch:
		s.handleDispatch(env)
	case OpcodeHello:
		s.handleHello(env)
	case OpcodeHeartbeat:
		// the server asked for an immediate beat
		s.sendHeartbeat()
	case OpcodeHeartbeatAck:
		s.awaitingAck.Store(false)
	case OpcodeReconnect:
		dlog.Info("Server requested reconnect", "session", s.id)
		if !s.reconnect(true) {
			s.setStatus(StatusDisconnected)
		}
	case OpcodeInvalidSession:
		s.handleInvalidSession()
	default:
		dlog.Warn("Unhandled opcode received (ignoring)", "op", int(env.Op))
	}
}

func (s *Session) handleHello(env *Envelope) {
	hello, err := env.DecodeHello()
	if err != nil {
		dlog.Error("Dropping malformed hello", "err", err)
		return
	}
	interval := time.Duration(hello.HeartbeatInterval) * time.Millisecond
	s.startHeartbeat(interval)

	if s.resuming && s.SessionID() != "" {
		s.setStatus(StatusResuming)
		s.send(frame{Op: OpcodeResume, D: resumeData{
			Token:     s.cfg.Token,
			SessionID: s.SessionID(),
			Seq:       s.seq.Load(),
		}})
		return
	}
	s.sendIdentify()
}

func (s *Session) handleDispatch(env *Envelope) {
	data, err := env.DecodeData()
	if err != nil {
		dlog.Error("Dropping undecodable dispatch", "event", env.EventName, "err", err)
		return
	}
	switch typed := data.(type) {
	case nil:
		return
	case *UnknownEventData:
		dlog.Warn("Unknown event received (ignoring)", "event", typed.Name)
		return
	case *ReadyData:
		s.setSessionID(typed.SessionID)
		s.resuming = false
		s.setStatus(StatusConnected)
		dlog.Info("Gateway session ready", "session", s.id)
	case *ResumedData:
		s.resuming = false
		s.setStatus(StatusConnected)
		dlog.Info("Reconnected to the gateway", "session", s.id)
	}
	if s.onEvent != nil {
		s.onEvent(env.EventName, data)
	}
}

func (s *Session) handleInvalidSession() {
	dlog.Warn("Invalid session, clearing caches and identifying again", "session", s.id)
	s.setStatus(StatusInvalid)
	s.setSessionID("")
	s.resuming = false
	s.seq.Store(-1)
	if s.onInvalidSession != nil {
		s.onInvalidSession()
	}
	s.sendIdentify()
}

func (s *Session) sendIdentify() {
	s.setStatus(StatusIdentifying)
	s.send(frame{Op: OpcodeIdentify, D: identifyData{
		Token: s.cfg.Token,
		Properties: identifyProperties{
			OS:      runtime.GOOS,
			Browser: "discord-gateway",
			Device:  "discord-gateway",
		},
		LargeThreshold: 250,
	}})
}

func (s *Session) sendHeartbeat() {
	var d any
	if seq := s.seq.Load(); seq >= 0 {
		d = seq
	}
	s.send(frame{Op: OpcodeHeartbeat, D: d})
}

func (s *Session) send(f frame) {
	transport := s.currentTransport()
	if transport == nil {
		return
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := transport.WriteJSON(f); err != nil {
		dlog.Error("Failed to send frame", "op", f.Op.String(), "err", err)
	}
}

// startHeartbeat runs the recurring beat on its own goroutine. It only
// ever sends outbound frames; a missed ack closes the transport and lets
// the read loop drive the reconnect.
func (s *Session) startHeartbeat(interval time.Duration) {
	s.stopHeartbeat()
	stop := make(chan struct{})
	s.heartbeatMu.Lock()
	s.heartbeatStop = stop
	s.heartbeatMu.Unlock()
	s.awaitingAck.Store(false)

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if s.awaitingAck.Load() {
					dlog.Warn("Heartbeat ack missed, dropping connection", "session", s.id)
					_ = s.closeTransport()
					return
				}
				s.awaitingAck.Store(true)
				s.sendHeartbeat()
			}
		}
	}()
	dlog.Debug("Heartbeat started", "interval", interval)
}

func (s *Session) stopHeartbeat() {
	s.heartbeatMu.Lock()
	defer s.heartbeatMu.Unlock()
	if s.heartbeatStop != nil {
		close(s.heartbeatStop)
		s.heartbeatStop = nil
	}
}

// reconnect closes the transport and re-establishes it with exponential
// backoff. With resumable set and a known session id the next Hello is
// answered with Resume at the stored sequence, otherwise with a fresh
// Identify.
func (s *Session) reconnect(resumable bool) bool {
	s.stopHeartbeat()
	_ = s.closeTransport()
	s.setStatus(StatusReconnecting)
	s.resuming = resumable && s.SessionID() != ""

	backoff := s.cfg.ReconnectBackoff
	for attempt := 1; attempt <= s.cfg.ReconnectAttempts; attempt++ {
		if s.closed.Load() {
			return false
		}
		transport, err := s.cfg.Dial(s.cfg.URL)
		if err == nil {
			s.setTransport(transport)
			if s.resuming {
				s.setStatus(StatusResuming)
			} else {
				s.setStatus(StatusAwaitingHello)
			}
			dlog.Info("Gateway reconnected", "session", s.id, "attempt", attempt, "resuming", s.resuming)
			return true
		}
		dlog.Warn("Gateway reconnect attempt failed", "attempt", attempt, "err", err)
		time.Sleep(backoff)
		backoff *= 2
	}
	dlog.Error("Gateway reconnect attempts exhausted", "session", s.id)
	return false
}

func (s *Session) currentTransport() Transport {
	s.transportMu.Lock()
	defer s.transportMu.Unlock()
	return s.transport
}

func (s *Session) setTransport(t Transport) {
	s.transportMu.Lock()
	defer s.transportMu.Unlock()
	s.transport = t
}

func (s *Session) closeTransport() error {
	s.transportMu.Lock()
	defer s.transportMu.Unlock()
	if s.transport == nil {
		return errors.New("no transport")
	}
	err := s.transport.Close()
	s.transport = nil
	return err
}
