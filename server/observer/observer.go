// Package observer streams per-tick ship telemetry to read-only websocket
// subscribers such as dashboards and debugging tools.
package observer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Path is where Hub.Handler is mounted by Mux.
const Path = "/observe"

const (
	subscriberBuffer = 8
	writeTimeout     = 5 * time.Second
	readTimeout      = 60 * time.Second
)

// ShipTelemetry is the state of one ship after a tick. Rotation is w, x, y, z.
type ShipTelemetry struct {
	Pilot           string     `json:"pilot"`
	Blueprint       string     `json:"blueprint"`
	Position        [3]float32 `json:"position"`
	Rotation        [4]float32 `json:"rotation"`
	LinearVelocity  [3]float32 `json:"linearVelocity"`
	AngularVelocity [3]float32 `json:"angularVelocity"`
	Force           [3]float32 `json:"force"`
	Torque          [3]float32 `json:"torque"`
	ActiveThrusters int        `json:"activeThrusters"`
}

// Telemetry is one tick's broadcast.
type Telemetry struct {
	Tick  uint64          `json:"tick"`
	Ships []ShipTelemetry `json:"ships"`
}

// Hub fans telemetry out to subscribers. Publish never blocks: a subscriber
// whose buffer is full misses the frame.
type Hub struct {
	log      zerolog.Logger
	upgrader websocket.Upgrader

	mu     sync.Mutex
	subs   map[uint64]chan []byte
	nextID uint64
	latest []byte

	dropped atomic.Uint64
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		log: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // read-only stream
		},
		subs: make(map[uint64]chan []byte),
	}
}

// Publish encodes t once and offers it to every subscriber.
func (h *Hub) Publish(t Telemetry) {
	b, err := json.Marshal(t)
	if err != nil {
		h.log.Error().Err(err).Msg("encode telemetry")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.latest = b
	for _, ch := range h.subs {
		select {
		case ch <- b:
		default:
			h.dropped.Add(1)
		}
	}
}

// Subscribers is the number of connected observers.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Dropped counts frames not delivered to slow subscribers.
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

func (h *Hub) subscribe() (uint64, chan []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	ch := make(chan []byte, subscriberBuffer)
	if h.latest != nil {
		ch <- h.latest
	}
	h.subs[h.nextID] = ch
	return h.nextID, ch
}

func (h *Hub) unsubscribe(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs, id)
}

// Handler upgrades the request and streams telemetry until either side
// closes. Anything the subscriber sends is ignored.
func (h *Hub) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			rw.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		conn, err := h.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		id, frames := h.subscribe()
		defer h.unsubscribe(id)
		h.log.Debug().Uint64("subscriber", id).Str("remote", r.RemoteAddr).Msg("observer connected")

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		// Reader: only watches for the close.
		go func() {
			defer cancel()
			for {
				_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-ctx.Done():
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"),
					time.Now().Add(time.Second))
				h.log.Debug().Uint64("subscriber", id).Msg("observer disconnected")
				return
			case b := <-frames:
				_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
					return
				}
			}
		}
	}
}

// Mux serves Handler at Path.
func (h *Hub) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle(Path, h.Handler())
	return mux
}

// ListenAndServe serves the hub on addr until ctx is cancelled.
func (h *Hub) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: h.Mux(), ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	h.log.Info().Str("addr", addr).Msg("observer listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
