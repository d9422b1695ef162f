// Command pilotbot is a headless pilot that joins a server and flies its ship
// through a list of waypoints.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/automoto/thrustcraft-mp/components"
	"github.com/automoto/thrustcraft-mp/config"
	"github.com/automoto/thrustcraft-mp/network"
	"github.com/automoto/thrustcraft-mp/shared/logging"
	"github.com/automoto/thrustcraft-mp/shared/messages"
	"github.com/automoto/thrustcraft-mp/shared/netconfig"
	"github.com/automoto/thrustcraft-mp/shared/protocol"
	"github.com/automoto/thrustcraft-mp/systems"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/leap-fish/necs/esync"
	"github.com/rs/zerolog"
	"github.com/yohamta/donburi"
)

const (
	appName       = "thrustcraft"
	frameRate     = 60
	resendEvery   = 30 // frames
	reconnectWait = 2 * time.Second
)

func main() {
	address := flag.String("addr", "localhost:7373", "Server address")
	name := flag.String("name", "", "Pilot name (default: saved profile)")
	blueprint := flag.String("blueprint", "", "Ship blueprint (default: saved profile)")
	version := flag.String("version", "", "Client version sent on join")
	difficulty := flag.String("difficulty", "normal", "easy, normal or hard")
	route := flag.String("waypoints", "0,0,-200;200,0,-200;200,0,0;0,0,0", "Waypoints as x,y,z separated by ';'")
	loop := flag.Bool("loop", true, "Repeat the route")
	level := flag.String("log", "info", "Log level")
	flag.Parse()

	log := logging.New(*level, false, os.Stderr)

	waypoints, err := parseWaypoints(*route)
	if err != nil {
		log.Fatal().Err(err).Msg("parse waypoints")
	}
	diff, err := config.ParseBotDifficulty(*difficulty)
	if err != nil {
		log.Fatal().Err(err).Msg("parse difficulty")
	}
	if err := protocol.RegisterComponents(); err != nil {
		log.Fatal().Err(err).Msg("register components")
	}

	var store network.ItemStore
	if m, err := network.OpenStore(appName); err != nil {
		log.Warn().Err(err).Msg("profile disabled")
	} else {
		store = m
	}
	profile := network.Profile{PilotName: "bot"}
	if store != nil {
		if profile, err = network.LoadProfile(store, profile); err != nil {
			log.Warn().Err(err).Msg("using default profile")
		}
	}
	if *name != "" {
		profile.PilotName = *name
	}
	if *blueprint != "" {
		profile.Blueprint = *blueprint
	}
	profile.LastServer = *address

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bot := &pilot{
		log:     log,
		route:   components.AutopilotData{Waypoints: waypoints, Loop: *loop, Difficulty: diff},
		address: *address,
		version: *version,
		profile: profile,
	}
	bot.run(ctx)

	if store != nil {
		if err := network.SaveProfile(store, bot.profile); err != nil {
			log.Warn().Err(err).Msg("save profile")
		}
	}
}

type pilot struct {
	log     zerolog.Logger
	route   components.AutopilotData
	address string
	version string
	profile network.Profile
}

// run keeps a session alive until ctx is done, reconnecting after the server
// drops the connection.
func (p *pilot) run(ctx context.Context) {
	for {
		err := p.session(ctx)
		if ctx.Err() != nil {
			return
		}
		p.log.Warn().Err(err).Dur("wait", reconnectWait).Msg("session ended, reconnecting")
		p.profile.Reconnects++

		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectWait):
		}
	}
}

func (p *pilot) session(ctx context.Context) error {
	client := network.NewClient(p.log)
	client.Connect(p.address, messages.JoinRequest{
		Version:   p.version,
		PilotName: p.profile.PilotName,
		Blueprint: p.profile.Blueprint,
	})
	defer client.Disconnect()

	world := donburi.NewWorld()
	interp := systems.NewNetInterpSystem(client.TickRate)
	autopilot := systems.NewAutopilotSystem(func(actions netconfig.ActionSet) error {
		_, err := client.SendInput(actions)
		return err
	})

	ticker := time.NewTicker(time.Second / frameRate)
	defer ticker.Stop()
	dt := 1.0 / frameRate

	var frame int
	var joined bool
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		frame++

		session := client.Session()
		switch session.State {
		case network.StateError:
			return session.Err
		case network.StateDisconnected:
			if joined {
				return errors.New("disconnected from server")
			}
			continue
		case network.StateJoinedGame:
			if !joined {
				joined = true
				p.profile.Blueprint = session.Blueprint
			}
		default:
			continue
		}

		for _, evt := range client.DrainSpawnEvents() {
			p.log.Info().Str("pilot", evt.Pilot).Str("blueprint", evt.Blueprint).Msg("ship spawned")
		}
		for _, evt := range client.DrainDespawnEvents() {
			p.log.Info().Str("pilot", evt.Pilot).Msg("ship despawned")
		}

		if snap := client.LatestSnapshot(); snap != nil {
			res := systems.ApplySnapshot(world, *snap, session.NetworkID)
			if res.LocalFound {
				client.Acknowledge(res.LastSequence)
				p.engage(world, session.NetworkID)
			}
		}

		interp(world, dt)
		systems.UpdateFlames(world, dt)
		autopilot(world)

		if frame%resendEvery == 0 {
			if err := client.ResendUnacknowledged(); err != nil {
				p.log.Debug().Err(err).Msg("resend inputs")
			}
			p.log.Debug().Dur("rtt", session.RoundTrip).Msg("link")
		}
	}
}

// engage hands the local ship to the autopilot the first time it shows up.
func (p *pilot) engage(world donburi.World, id esync.NetworkId) {
	entry := world.Entry(esync.FindByNetworkId(world, id))
	if entry.HasComponent(components.Autopilot) {
		return
	}
	route := p.route
	route.Waypoints = append([]mgl32.Vec3(nil), p.route.Waypoints...)
	entry.AddComponent(components.Autopilot)
	components.Autopilot.SetValue(entry, route)
	p.log.Info().Int("waypoints", len(route.Waypoints)).Msg("autopilot engaged")
}

// parseWaypoints reads "x,y,z;x,y,z".
func parseWaypoints(s string) ([]mgl32.Vec3, error) {
	var out []mgl32.Vec3
	for i, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields := strings.Split(part, ",")
		if len(fields) != 3 {
			return nil, fmt.Errorf("waypoint %d: want x,y,z, got %q", i, part)
		}
		var v mgl32.Vec3
		for j, f := range fields {
			n, err := strconv.ParseFloat(strings.TrimSpace(f), 32)
			if err != nil {
				return nil, fmt.Errorf("waypoint %d: %w", i, err)
			}
			v[j] = float32(n)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no waypoints")
	}
	return out, nil
}
