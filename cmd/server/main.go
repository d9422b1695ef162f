package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/automoto/thrustcraft-mp/config"
	"github.com/automoto/thrustcraft-mp/server/core"
	"github.com/automoto/thrustcraft-mp/server/observer"
	"github.com/automoto/thrustcraft-mp/shared/blueprint"
	"github.com/automoto/thrustcraft-mp/shared/logging"
	"github.com/automoto/thrustcraft-mp/shared/protocol"
	"github.com/automoto/thrustcraft-mp/shared/replay"
	"github.com/rs/zerolog"
)

func main() {
	configPath := flag.String("config", "", "Config file (default: ./thrustcraft.yaml if present)")
	port := flag.Uint("port", 0, "Server port (overrides config)")
	name := flag.String("name", "", "Server display name (overrides config)")
	version := flag.String("version", "", "Required client version (overrides config)")
	sectorName := flag.String("sector", "", "Sector to load (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		boot := logging.New("info", false, os.Stderr)
		boot.Fatal().Err(err).Msg("load config")
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *name != "" {
		cfg.Server.Name = *name
	}
	if *version != "" {
		cfg.Server.Version = *version
	}
	if *sectorName != "" {
		cfg.Sector.Name = *sectorName
	}

	log := logging.New(cfg.Log.Level, cfg.Log.JSON, os.Stderr)

	if err := protocol.RegisterComponents(); err != nil {
		log.Fatal().Err(err).Msg("register components")
	}

	catalog, err := loadCatalog(cfg.Blueprints.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("load blueprints")
	}
	log.Info().Strs("blueprints", catalog.Names()).Msg("blueprint catalog ready")

	sector := loadSector(cfg, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := core.Options{
		Name:      cfg.Server.Name,
		Version:   cfg.Server.Version,
		MaxPilots: cfg.Server.MaxPilots,
		Sim:       cfg.Sim(),
		Catalog:   catalog,
		Sector:    sector,
		Log:       log,
	}

	if cfg.Observer.Enabled {
		hub := observer.NewHub(logging.Component(log, "observer"))
		opts.Telemetry = hub
		go func() {
			if err := hub.ListenAndServe(ctx, cfg.Observer.Addr); err != nil {
				log.Error().Err(err).Msg("observer stopped")
			}
		}()
	}

	var recorder *replay.Writer
	if cfg.Replay.Enabled {
		started := time.Now()
		path := filepath.Join(cfg.Replay.Dir, replay.FileName(started))
		recorder, err = replay.Create(path, replay.Header{
			Version: replay.FormatVersion,
			Sector:  sector.Name,
			Started: started,
			Sim:     opts.Sim,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("create replay")
		}
		opts.Recorder = recorder
		log.Info().Str("path", path).Msg("recording replay")
	}

	server, err := core.NewServer(opts)
	if err != nil {
		log.Fatal().Err(err).Msg("create server")
	}

	var replayCloser io.Closer
	if recorder != nil {
		replayCloser = recorder
	}
	shutdown := newShutdown(server, replayCloser, log)

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down server")
		shutdown()
		os.Exit(0)
	}()

	log.Info().
		Str("name", cfg.Server.Name).
		Uint("port", cfg.Server.Port).
		Int("tickRate", cfg.Server.TickRate).
		Int("substeps", cfg.Server.Substeps).
		Str("version", cfg.Server.Version).
		Str("sector", sector.Name).
		Msg("starting thrustcraft server")
	if err := server.Start(ctx, cfg.Server.Port); err != nil {
		shutdown()
		log.Fatal().Err(err).Msg("server error")
	}
}

type stopper interface {
	Stop()
}

// newShutdown stops the server before closing the replay so the last
// recorded frame is flushed. The returned func is safe to call twice.
func newShutdown(server stopper, rec io.Closer, log zerolog.Logger) func() {
	return sync.OnceFunc(func() {
		server.Stop()
		if rec == nil {
			return
		}
		if err := rec.Close(); err != nil {
			log.Error().Err(err).Msg("close replay")
		}
	})
}

func loadCatalog(dir string) (*blueprint.Catalog, error) {
	if dir == "" {
		return blueprint.NewCatalog()
	}
	bps, err := blueprint.LoadDir(dir)
	if err != nil {
		return nil, err
	}
	return blueprint.NewCatalog(bps...)
}

// loadSector falls back to an empty sector so a missing map never keeps the
// server from starting.
func loadSector(cfg *config.Config, log zerolog.Logger) *core.Sector {
	sectors, names, err := core.LoadSectors(cfg.Sector.AssetsDir, cfg.Sector.Dir, log)
	if err != nil {
		log.Warn().Err(err).Msg("no sectors loaded, using empty sector")
		return core.EmptySector()
	}
	if s, ok := sectors[cfg.Sector.Name]; ok {
		return s
	}
	log.Warn().Str("sector", cfg.Sector.Name).Strs("available", names).Msg("unknown sector, using first available")
	return sectors[names[0]]
}
