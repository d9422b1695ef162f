package network

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/automoto/thrustcraft-mp/shared/messages"
	"github.com/automoto/thrustcraft-mp/shared/netconfig"
	"github.com/coder/websocket"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/rs/zerolog"
)

const writeTimeout = 2 * time.Second

var ErrNotConnected = errors.New("not connected")

type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateConnected
	StateJoinedGame
	StateError
)

func (s ClientState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateJoinedGame:
		return "joined"
	case StateError:
		return "error"
	}
	return "unknown"
}

// Session is a consistent copy of what the client knows about its server.
type Session struct {
	State      ClientState
	Err        error
	NetworkID  esync.NetworkId
	ServerName string
	TickRate   int
	Blueprint  string
	RoundTrip  time.Duration
}

// Client is a pilot's connection to a thrustcraft server. Router callbacks
// run on necs goroutines, so everything they touch is behind mu.
type Client struct {
	log zerolog.Logger

	mu      sync.RWMutex
	session Session
	conn    *websocket.Conn

	history   InputHistory
	lastAcked uint32

	snapshots chan esync.WorldSnapshot // holds only the latest
	spawns    chan messages.ShipSpawnEvent
	despawns  chan messages.ShipDespawnEvent
}

func NewClient(log zerolog.Logger) *Client {
	return &Client{
		log:       log,
		snapshots: make(chan esync.WorldSnapshot, 1),
		spawns:    make(chan messages.ShipSpawnEvent, 16),
		despawns:  make(chan messages.ShipDespawnEvent, 16),
	}
}

// Connect dials address in the background and sends join once the socket is
// up. Progress shows up in Session.
func (c *Client) Connect(address string, join messages.JoinRequest) {
	c.update(func(s *Session) {
		*s = Session{State: StateConnecting}
	})
	c.route(address, join)

	go func() {
		transport := transports.NewWsClientTransport("ws://" + address)
		err := transport.Start(func(conn *websocket.Conn) {
			c.mu.Lock()
			c.conn = conn
			c.mu.Unlock()
		})
		if err != nil {
			c.fail(fmt.Errorf("connect %s: %w", address, err))
		}
	}()
}

func (c *Client) route(address string, join messages.JoinRequest) {
	router.OnConnect(func(_ *router.NetworkClient) {
		c.log.Info().Str("address", address).Msg("connected")
		c.update(func(s *Session) { s.State = StateConnected })

		if err := c.SendMessage(join); err != nil {
			c.fail(fmt.Errorf("send join request: %w", err))
		}
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinAccepted) {
		c.log.Info().
			Uint("networkID", uint(msg.NetworkID)).
			Str("server", msg.ServerName).
			Str("blueprint", msg.Blueprint).
			Msg("joined")
		c.update(func(s *Session) {
			s.State = StateJoinedGame
			s.NetworkID = msg.NetworkID
			s.ServerName = msg.ServerName
			s.TickRate = msg.TickRate
			s.Blueprint = msg.Blueprint
		})
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinRejected) {
		c.fail(fmt.Errorf("join rejected: %s", msg.Reason))
	})

	router.On(func(_ *router.NetworkClient, snapshot esync.WorldSnapshot) {
		select {
		case <-c.snapshots:
		default:
		}
		c.snapshots <- snapshot
	})

	router.On(func(_ *router.NetworkClient, evt messages.ShipSpawnEvent) {
		offer(c.spawns, evt)
	})
	router.On(func(_ *router.NetworkClient, evt messages.ShipDespawnEvent) {
		offer(c.despawns, evt)
	})

	router.OnDisconnect(func(_ *router.NetworkClient, err error) {
		c.log.Info().Err(err).Msg("disconnected")
		c.mu.Lock()
		if c.session.State != StateError {
			c.session.State = StateDisconnected
		}
		c.conn = nil
		c.mu.Unlock()
	})

	router.OnError(func(_ *router.NetworkClient, err error) {
		c.log.Warn().Err(err).Msg("network error")
	})
}

// Disconnect closes the socket and clears every router callback.
func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.session.State = StateDisconnected
	c.mu.Unlock()

	if conn != nil {
		_ = conn.CloseNow()
	}
	router.ResetRouter()
}

func (c *Client) Session() Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

func (c *Client) State() ClientState {
	return c.Session().State
}

// TickRate is the server's tick rate, 0 before the join is accepted.
func (c *Client) TickRate() int {
	return c.Session().TickRate
}

// LatestSnapshot returns the newest unread snapshot, or nil.
func (c *Client) LatestSnapshot() *esync.WorldSnapshot {
	select {
	case snap := <-c.snapshots:
		return &snap
	default:
		return nil
	}
}

// SendInput sends the held actions with the next sequence number. The input
// is kept for ResendUnacknowledged even when sending fails.
func (c *Client) SendInput(actions netconfig.ActionSet) (messages.PlayerInput, error) {
	c.mu.Lock()
	in := c.history.Next(messages.PlayerInput{Actions: actions}, time.Now())
	c.mu.Unlock()

	return in, c.SendMessage(in)
}

// Acknowledge records the last sequence the server applied, as echoed in
// NetShip.LastSequence.
func (c *Client) Acknowledge(seq uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq <= c.lastAcked {
		return
	}
	c.lastAcked = seq
	if rtt, ok := c.history.RoundTrip(seq, time.Now()); ok {
		c.session.RoundTrip = rtt
	}
}

// ResendUnacknowledged sends every input newer than the last
// acknowledgement again, oldest first. The server drops any it already
// applied.
func (c *Client) ResendUnacknowledged() error {
	c.mu.RLock()
	pending := c.history.Unacknowledged(c.lastAcked)
	c.mu.RUnlock()

	for _, in := range pending {
		if err := c.SendMessage(in); err != nil {
			return fmt.Errorf("resend input %d: %w", in.Sequence, err)
		}
	}
	return nil
}

// SendMessage serializes msg with the necs router and writes it as one
// binary frame.
func (c *Client) SendMessage(msg any) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()
	if conn == nil {
		return ErrNotConnected
	}

	payload, err := router.Serialize(msg)
	if err != nil {
		return fmt.Errorf("serialize %T: %w", msg, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageBinary, payload)
}

func (c *Client) DrainSpawnEvents() []messages.ShipSpawnEvent {
	return drain(c.spawns)
}

func (c *Client) DrainDespawnEvents() []messages.ShipDespawnEvent {
	return drain(c.despawns)
}

func (c *Client) update(fn func(s *Session)) {
	c.mu.Lock()
	fn(&c.session)
	c.mu.Unlock()
}

func (c *Client) fail(err error) {
	c.log.Warn().Err(err).Msg("client failed")
	c.update(func(s *Session) {
		s.State = StateError
		s.Err = err
	})
}

// offer queues v unless ch is full; events are informational.
func offer[T any](ch chan T, v T) {
	select {
	case ch <- v:
	default:
	}
}

func drain[T any](ch chan T) []T {
	var out []T
	for {
		select {
		case v := <-ch:
			out = append(out, v)
		default:
			return out
		}
	}
}
