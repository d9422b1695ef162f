package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/automoto/thrustcraft-mp/shared/blueprint"
	"github.com/automoto/thrustcraft-mp/shared/messages"
	"github.com/automoto/thrustcraft-mp/shared/netconfig"
	"github.com/automoto/thrustcraft-mp/shared/replay"
	"github.com/automoto/thrustcraft-mp/shared/shipsim"
	"github.com/automoto/thrustcraft-mp/server/observer"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/rs/zerolog"
	"github.com/yohamta/donburi"
)

// Join rejection reasons, sent verbatim in JoinRejected.
var (
	ErrVersionMismatch  = errors.New("version mismatch")
	ErrServerFull       = errors.New("server full")
	ErrUnknownBlueprint = errors.New("unknown blueprint")
	ErrNameTaken        = errors.New("pilot name taken")
	ErrNameRequired     = errors.New("pilot name required")
	ErrAlreadyJoined    = errors.New("already joined")
)

// peer is the part of a network client the server talks to.
type peer interface {
	Id() string
	SendMessage(msg any) error
}

// FrameRecorder receives every tick's replay frame.
type FrameRecorder interface {
	WriteFrame(f replay.Frame) error
}

// TelemetrySink receives a state summary after every tick.
type TelemetrySink interface {
	Publish(t observer.Telemetry)
}

// Options configure a Server. Catalog and Log are required; everything else
// may be left zero.
type Options struct {
	Name      string
	Version   string // required client version, empty accepts any
	MaxPilots int
	Sim       shipsim.Config
	Catalog   *blueprint.Catalog
	Sector    *Sector
	Recorder  FrameRecorder
	Telemetry TelemetrySink
	Log       zerolog.Logger
}

// pilot is one connected client. ship is NoEntity until the join is
// processed by the next tick.
type pilot struct {
	peer      peer
	name      string
	blueprint blueprint.ShipBlueprint
	ship      shipsim.EntityID
	entity    donburi.Entity
	networkID esync.NetworkId

	actions netconfig.ActionSet
	lastSeq uint32
}

// Server manages the simulation and client connections. Network callbacks
// only queue work; the world and simulation are touched by the game loop
// alone.
type Server struct {
	opts      Options
	log       zerolog.Logger
	world     donburi.World
	sim       *shipsim.Simulation
	sector    *Sector
	loop      *GameLoop
	metrics   *Metrics
	transport *transports.WsServerTransport
	clock     donburi.Entity

	mu       sync.Mutex
	byClient map[string]*pilot
	byName   map[string]*pilot
	joining  []*pilot
	leaving  []*pilot
}

// NewServer creates a new game server
func NewServer(opts Options) (*Server, error) {
	if opts.Catalog == nil {
		return nil, fmt.Errorf("new server: no blueprint catalog")
	}
	if opts.Sim.TickRate <= 0 {
		opts.Sim = shipsim.DefaultConfig()
	}
	if opts.MaxPilots <= 0 {
		opts.MaxPilots = 16
	}
	if opts.Sector == nil {
		opts.Sector = EmptySector()
	}

	world := donburi.NewWorld()
	log := opts.Log.With().Str("component", "server").Logger()

	s := &Server{
		opts:     opts,
		log:      log,
		world:    world,
		sim:      shipsim.New(opts.Sim, shipsim.NewWorld(), opts.Log.With().Str("component", "shipsim").Logger()),
		sector:   opts.Sector,
		byClient: make(map[string]*pilot),
		byName:   make(map[string]*pilot),
	}
	s.loop = NewGameLoop(s, opts.Sim.TickRate, log)

	metrics, err := NewMetrics(s.PlayerCount)
	if err != nil {
		return nil, fmt.Errorf("new server: %w", err)
	}
	s.metrics = metrics
	s.sim.Aggregator.OnDiagnostic = metrics.Diagnostic

	// Set up the world for esync
	srvsync.UseEsync(world)

	if err := s.createClock(); err != nil {
		return nil, fmt.Errorf("new server: %w", err)
	}
	return s, nil
}

// Start runs the game loop and serves clients on port until the transport
// fails.
func (s *Server) Start(ctx context.Context, port uint) error {
	s.setupRouterCallbacks()

	go s.loop.Run(ctx)

	s.transport = transports.NewWsServerTransport(port, "", nil)
	return s.transport.Start()
}

// Stop halts the game loop. No frame is recorded after Stop returns.
func (s *Server) Stop() {
	s.loop.Stop()
}

func (s *Server) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		s.log.Info().Str("client", client.Id()).Msg("client connected")
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		s.onDisconnect(client, err)
	})

	router.On(func(client *router.NetworkClient, req messages.JoinRequest) {
		s.onJoin(client, req)
	})

	router.On(func(client *router.NetworkClient, input messages.PlayerInput) {
		s.onPlayerInput(client, input)
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		s.log.Warn().Err(err).Msg("client error")
	})
}

// onJoin validates a request and queues the ship for the next tick.
func (s *Server) onJoin(client peer, req messages.JoinRequest) {
	bp, err := s.admit(client, req)
	if err != nil {
		s.log.Info().
			Str("client", client.Id()).
			Str("pilot", req.PilotName).
			Err(err).
			Msg("join rejected")
		if sendErr := client.SendMessage(messages.JoinRejected{Reason: err.Error()}); sendErr != nil {
			s.log.Warn().Err(sendErr).Str("client", client.Id()).Msg("send join rejection")
		}
		return
	}

	s.log.Info().
		Str("client", client.Id()).
		Str("pilot", req.PilotName).
		Str("blueprint", bp.Name).
		Msg("join accepted")
}

func (s *Server) admit(client peer, req messages.JoinRequest) (blueprint.ShipBlueprint, error) {
	if s.opts.Version != "" && req.Version != s.opts.Version {
		return blueprint.ShipBlueprint{}, fmt.Errorf("%w: server requires %s", ErrVersionMismatch, s.opts.Version)
	}
	if req.PilotName == "" {
		return blueprint.ShipBlueprint{}, ErrNameRequired
	}
	bp, ok := s.opts.Catalog.Get(req.Blueprint)
	if !ok {
		return blueprint.ShipBlueprint{}, fmt.Errorf("%w: %q", ErrUnknownBlueprint, req.Blueprint)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, joined := s.byClient[client.Id()]; joined {
		return blueprint.ShipBlueprint{}, ErrAlreadyJoined
	}
	if _, taken := s.byName[req.PilotName]; taken {
		return blueprint.ShipBlueprint{}, fmt.Errorf("%w: %q", ErrNameTaken, req.PilotName)
	}
	// A ship still waiting to be removed keeps its name until the next tick.
	for _, l := range s.leaving {
		if l.name == req.PilotName {
			return blueprint.ShipBlueprint{}, fmt.Errorf("%w: %q", ErrNameTaken, req.PilotName)
		}
	}
	if len(s.byName) >= s.opts.MaxPilots {
		return blueprint.ShipBlueprint{}, ErrServerFull
	}

	p := &pilot{peer: client, name: req.PilotName, blueprint: bp}
	s.byClient[client.Id()] = p
	s.byName[p.name] = p
	s.joining = append(s.joining, p)
	return bp, nil
}

func (s *Server) onDisconnect(client peer, err error) {
	ev := s.log.Info().Str("client", client.Id())
	if err != nil {
		ev = ev.Err(err)
	}
	ev.Msg("client disconnected")

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.byClient[client.Id()]
	if !ok {
		return
	}
	delete(s.byClient, client.Id())
	delete(s.byName, p.name)

	if p.ship == shipsim.NoEntity {
		// Never spawned; drop the pending join.
		for i, j := range s.joining {
			if j == p {
				s.joining = append(s.joining[:i], s.joining[i+1:]...)
				break
			}
		}
		return
	}
	s.leaving = append(s.leaving, p)
}

// onPlayerInput latches the held actions until the next input replaces them.
// Older sequences than the last applied one are dropped.
func (s *Server) onPlayerInput(client peer, input messages.PlayerInput) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.byClient[client.Id()]
	if !ok || input.Sequence <= p.lastSeq {
		return
	}
	p.actions = input.Actions
	p.lastSeq = input.Sequence
}

// broadcastEvent sends msg to every joined client.
func (s *Server) broadcastEvent(msg any) {
	s.mu.Lock()
	peers := make([]peer, 0, len(s.byClient))
	for _, p := range s.byClient {
		peers = append(peers, p.peer)
	}
	s.mu.Unlock()

	for _, c := range peers {
		if err := c.SendMessage(msg); err != nil {
			s.log.Debug().Err(err).Str("client", c.Id()).Msg("broadcast failed")
		}
	}
}

// flying returns spawned pilots sorted by name.
func (s *Server) flying() []*pilot {
	out := make([]*pilot, 0, len(s.byName))
	for _, p := range s.byName {
		if p.ship != shipsim.NoEntity {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// World returns the ECS world
func (s *Server) World() donburi.World {
	return s.world
}

// Simulation returns the ship simulation. It must only be read between ticks.
func (s *Server) Simulation() *shipsim.Simulation {
	return s.sim
}

// PlayerCount returns the number of connected pilots, spawned or not.
func (s *Server) PlayerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byName)
}

