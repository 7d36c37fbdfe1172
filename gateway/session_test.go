package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTransport feeds scripted frames to the read loop and records every
// outbound frame as raw json.
type fakeTransport struct {
	in  chan []byte
	out chan []byte

	closeOnce sync.Once
	closed    chan struct{}
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		in:     make(chan []byte, 16),
		out:    make(chan []byte, 16),
		closed: make(chan struct{}),
	}
}

func (t *fakeTransport) ReadFrame() ([]byte, error) {
	select {
	case raw := <-t.in:
		return raw, nil
	case <-t.closed:
		return nil, errors.New("transport closed")
	}
}

func (t *fakeTransport) WriteJSON(v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	t.out <- raw
	return nil
}

func (t *fakeTransport) Close() error {
	t.closeOnce.Do(func() { close(t.closed) })
	return nil
}

func (t *fakeTransport) serve(frames ...string) {
	for _, f := range frames {
		t.in <- []byte(f)
	}
}

type sentFrame struct {
	Op int             `json:"op"`
	D  json.RawMessage `json:"d"`
}

func nextFrame(t *testing.T, tr *fakeTransport) sentFrame {
	t.Helper()
	select {
	case raw := <-tr.out:
		var f sentFrame
		require.NoError(t, json.Unmarshal(raw, &f))
		return f
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for an outbound frame")
		return sentFrame{}
	}
}

func helloFrame(intervalMillis int) string {
	return fmt.Sprintf(`{"op":5,"d":{"heartbeat_interval":%d}}`, intervalMillis)
}

func openSession(t *testing.T, tr *fakeTransport, onEvent EventHandler, onInvalid func()) *Session {
	t.Helper()
	s := NewSession(Config{
		URL:               "ws://test",
		Token:             "token-123",
		Dial:              func(url string) (Transport, error) { return tr, nil },
		ReconnectBackoff:  time.Millisecond,
		ReconnectAttempts: 1,
	}, onEvent, onInvalid)
	require.NoError(t, s.Open())
	t.Cleanup(s.Close)
	return s
}

func awaitStatus(t *testing.T, s *Session, want Status) {
	t.Helper()
	require.Eventually(t, func() bool { return s.Status() == want },
		2*time.Second, 5*time.Millisecond, "expected status %s", want)
}

func TestHandshakeHelloIdentifyReady(t *testing.T) {
	tr := newFakeTransport()
	var mu sync.Mutex
	var names []string
	s := openSession(t, tr, func(name string, data any) {
		mu.Lock()
		names = append(names, name)
		mu.Unlock()
	}, nil)

	tr.serve(helloFrame(60000))

	identify := nextFrame(t, tr)
	assert.Equal(t, int(OpcodeIdentify), identify.Op)
	var d identifyData
	require.NoError(t, json.Unmarshal(identify.D, &d))
	assert.Equal(t, "token-123", d.Token)
	assert.Equal(t, 250, d.LargeThreshold)

	tr.serve(`{"op":0,"s":1,"t":"READY","d":{"session_id":"sess-1","user":{"id":"9"}}}`)
	awaitStatus(t, s, StatusConnected)
	assert.Equal(t, "sess-1", s.SessionID())
	assert.Equal(t, int64(1), s.Seq())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{EventReady}, names)
}

func TestServerRequestedHeartbeat(t *testing.T) {
	tr := newFakeTransport()
	s := openSession(t, tr, nil, nil)

	tr.serve(helloFrame(60000))
	_ = nextFrame(t, tr) // identify

	tr.serve(
		`{"op":0,"s":7,"t":"READY","d":{"session_id":"sess-1","user":{"id":"9"}}}`,
		`{"op":1,"d":null}`,
	)

	beat := nextFrame(t, tr)
	assert.Equal(t, int(OpcodeHeartbeat), beat.Op)
	assert.Equal(t, "7", string(beat.D), "heartbeat should carry the last seen sequence")
	awaitStatus(t, s, StatusConnected)
}

func TestHeartbeatBeforeAnySequenceIsNull(t *testing.T) {
	tr := newFakeTransport()
	openSession(t, tr, nil, nil)

	tr.serve(helloFrame(60000))
	_ = nextFrame(t, tr) // identify

	tr.serve(`{"op":1,"d":null}`)
	beat := nextFrame(t, tr)
	assert.Equal(t, int(OpcodeHeartbeat), beat.Op)
	assert.Equal(t, "null", string(beat.D))
}

func TestPeriodicHeartbeatAcked(t *testing.T) {
	tr := newFakeTransport()
	s := openSession(t, tr, nil, nil)

	tr.serve(helloFrame(50))
	_ = nextFrame(t, tr) // identify

	beat := nextFrame(t, tr)
	assert.Equal(t, int(OpcodeHeartbeat), beat.Op)
	tr.serve(`{"op":6,"d":null}`)

	beat = nextFrame(t, tr)
	assert.Equal(t, int(OpcodeHeartbeat), beat.Op, "acked heartbeat should keep ticking")
	assert.NotEqual(t, StatusDisconnected, s.Status())
}

func TestMissedHeartbeatAckReconnectsAndResumes(t *testing.T) {
	first := newFakeTransport()
	second := newFakeTransport()
	transports := make(chan *fakeTransport, 2)
	transports <- first
	transports <- second

	s := NewSession(Config{
		URL:               "ws://test",
		Token:             "token-123",
		Dial:              func(url string) (Transport, error) { return <-transports, nil },
		ReconnectBackoff:  time.Millisecond,
		ReconnectAttempts: 2,
	}, nil, nil)
	require.NoError(t, s.Open())
	t.Cleanup(s.Close)

	first.serve(helloFrame(40))
	_ = nextFrame(t, first) // identify
	first.serve(`{"op":0,"s":21,"t":"READY","d":{"session_id":"sess-1","user":{"id":"9"}}}`)
	awaitStatus(t, s, StatusConnected)

	// one beat goes out; it is never acked, so the next tick drops the
	// connection and the read loop redials
	beat := nextFrame(t, first)
	assert.Equal(t, int(OpcodeHeartbeat), beat.Op)

	second.serve(helloFrame(60000))
	resume := nextFrame(t, second)
	assert.Equal(t, int(OpcodeResume), resume.Op)
	var d resumeData
	require.NoError(t, json.Unmarshal(resume.D, &d))
	assert.Equal(t, "sess-1", d.SessionID)
	assert.Equal(t, int64(21), d.Seq)
	assert.Equal(t, "token-123", d.Token)
}

func TestInvalidSessionClearsAndReidentifies(t *testing.T) {
	tr := newFakeTransport()
	var invalidated bool
	s := openSession(t, tr, nil, func() { invalidated = true })

	tr.serve(helloFrame(60000))
	_ = nextFrame(t, tr) // identify

	tr.serve(`{"op":0,"s":3,"t":"READY","d":{"session_id":"sess-1","user":{"id":"9"}}}`)
	awaitStatus(t, s, StatusConnected)

	tr.serve(`{"op":4,"d":null}`)
	identify := nextFrame(t, tr)
	assert.Equal(t, int(OpcodeIdentify), identify.Op)

	awaitStatus(t, s, StatusIdentifying)
	assert.True(t, invalidated, "invalid-session callback should have fired")
	assert.Empty(t, s.SessionID())
	assert.Equal(t, int64(-1), s.Seq())
}

func TestReconnectRequestResumes(t *testing.T) {
	first := newFakeTransport()
	second := newFakeTransport()
	transports := make(chan *fakeTransport, 2)
	transports <- first
	transports <- second

	s := NewSession(Config{
		URL:               "ws://test",
		Token:             "token-123",
		Dial:              func(url string) (Transport, error) { return <-transports, nil },
		ReconnectBackoff:  time.Millisecond,
		ReconnectAttempts: 1,
	}, nil, nil)
	require.NoError(t, s.Open())
	t.Cleanup(s.Close)

	first.serve(helloFrame(60000))
	_ = nextFrame(t, first) // identify
	first.serve(`{"op":0,"s":12,"t":"READY","d":{"session_id":"sess-1","user":{"id":"9"}}}`)
	awaitStatus(t, s, StatusConnected)

	first.serve(`{"op":3,"d":null}`)
	awaitStatus(t, s, StatusResuming)

	second.serve(helloFrame(60000))
	resume := nextFrame(t, second)
	assert.Equal(t, int(OpcodeResume), resume.Op)
	var d resumeData
	require.NoError(t, json.Unmarshal(resume.D, &d))
	assert.Equal(t, "sess-1", d.SessionID)
	assert.Equal(t, int64(12), d.Seq)
	assert.Equal(t, "token-123", d.Token)

	second.serve(`{"op":0,"s":13,"t":"RESUMED","d":{}}`)
	awaitStatus(t, s, StatusConnected)
}

func TestReadFailureWithoutSessionReidentifies(t *testing.T) {
	first := newFakeTransport()
	second := newFakeTransport()
	transports := make(chan *fakeTransport, 2)
	transports <- first
	transports <- second

	s := NewSession(Config{
		URL:               "ws://test",
		Token:             "token-123",
		Dial:              func(url string) (Transport, error) { return <-transports, nil },
		ReconnectBackoff:  time.Millisecond,
		ReconnectAttempts: 2,
	}, nil, nil)
	require.NoError(t, s.Open())
	t.Cleanup(s.Close)

	first.serve(helloFrame(60000))
	_ = nextFrame(t, first) // identify

	// connection drops before READY, so there is no session to resume
	_ = first.Close()

	second.serve(helloFrame(60000))
	identify := nextFrame(t, second)
	assert.Equal(t, int(OpcodeIdentify), identify.Op)
}

func TestReconnectAttemptsExhausted(t *testing.T) {
	tr := newFakeTransport()
	dialed := false
	s := NewSession(Config{
		URL:   "ws://test",
		Token: "token-123",
		Dial: func(url string) (Transport, error) {
			if dialed {
				return nil, errors.New("gateway unreachable")
			}
			dialed = true
			return tr, nil
		},
		ReconnectBackoff:  time.Millisecond,
		ReconnectAttempts: 2,
	}, nil, nil)
	require.NoError(t, s.Open())
	t.Cleanup(s.Close)

	tr.serve(helloFrame(60000))
	_ = nextFrame(t, tr) // identify
	_ = tr.Close()

	awaitStatus(t, s, StatusDisconnected)
}

func TestUnknownDispatchEventIsSkipped(t *testing.T) {
	tr := newFakeTransport()
	var mu sync.Mutex
	var names []string
	s := openSession(t, tr, func(name string, data any) {
		mu.Lock()
		names = append(names, name)
		mu.Unlock()
	}, nil)

	tr.serve(helloFrame(60000))
	_ = nextFrame(t, tr) // identify
	tr.serve(
		`{"op":0,"s":1,"t":"SOMETHING_NEW","d":{}}`,
		`{"op":0,"s":2,"t":"READY","d":{"session_id":"sess-1","user":{"id":"9"}}}`,
	)
	awaitStatus(t, s, StatusConnected)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{EventReady}, names, "unknown events never reach the handler")
	assert.Equal(t, int64(2), s.Seq(), "sequence still advances past unknown events")
}
