package core

import (
	"context"
	"sync"
	"time"

	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/rs/zerolog"
)

type GameLoop struct {
	server   *Server
	tickRate int
	log      zerolog.Logger

	mu       sync.Mutex
	started  bool
	stopped  bool
	stopChan chan struct{}
	done     chan struct{}
}

func NewGameLoop(server *Server, tickRate int, log zerolog.Logger) *GameLoop {
	return &GameLoop{
		server:   server,
		tickRate: tickRate,
		log:      log,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Run ticks at the fixed rate until ctx is cancelled or Stop is called.
// It returns at once if Stop came first.
func (g *GameLoop) Run(ctx context.Context) {
	g.mu.Lock()
	if g.stopped || g.started {
		g.mu.Unlock()
		return
	}
	g.started = true
	g.mu.Unlock()
	defer close(g.done)

	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	g.log.Info().Int("tickRate", g.tickRate).Msg("game loop started")

	for {
		select {
		case <-ctx.Done():
			g.log.Info().Msg("game loop stopped")
			return
		case <-g.stopChan:
			g.log.Info().Msg("game loop stopped")
			return
		case <-ticker.C:
			g.tick()
		}
	}
}

// Stop ends Run and waits for the tick in progress to finish. Stopping a loop
// that never ran returns immediately.
func (g *GameLoop) Stop() {
	g.mu.Lock()
	if !g.stopped {
		g.stopped = true
		close(g.stopChan)
	}
	started := g.started
	g.mu.Unlock()

	if started {
		<-g.done
	}
}

func (g *GameLoop) tick() {
	g.server.tick()

	if err := srvsync.DoSync(); err != nil {
		g.log.Warn().Err(err).Msg("sync error")
	}
}
