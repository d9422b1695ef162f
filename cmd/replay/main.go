// Command replay re-runs a recorded session and prints a state digest for
// every ship still flying at the end. Two runs of the same file always print
// the same digests.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/automoto/thrustcraft-mp/shared/logging"
	"github.com/automoto/thrustcraft-mp/shared/replay"
	"github.com/rs/zerolog"
)

func main() {
	every := flag.Uint64("every", 0, "Also print digests every N ticks (0 = only at the end)")
	level := flag.String("log", "warn", "Log level")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] session.jsonl.zst\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	log := logging.New(*level, false, os.Stderr)

	r, err := replay.Open(flag.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("open replay")
	}
	defer r.Close()

	if err := run(r, os.Stdout, *every, log); err != nil {
		log.Fatal().Err(err).Msg("replay failed")
	}
}

func run(src *replay.Reader, out io.Writer, every uint64, log zerolog.Logger) error {
	h := src.Header
	player := replay.NewPlayer(h, log)
	fmt.Fprintf(out, "sector %q, %d ticks/s, %d substeps\n", h.Sector, h.Sim.TickRate, h.Sim.Substeps)

	for {
		f, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if err := player.Apply(f); err != nil {
			return err
		}
		if every > 0 && player.Sim.Tick%every == 0 {
			report(out, player)
		}
	}

	report(out, player)
	return nil
}

func report(out io.Writer, p *replay.Player) {
	fmt.Fprintf(out, "tick %d\n", p.Sim.Tick)
	for _, name := range p.Pilots() {
		s, ok := p.Ship(name)
		if !ok {
			continue
		}
		fmt.Fprintf(out, "  %-16s %016x pos=(%.3f, %.3f, %.3f)\n",
			name, replay.Digest(s), s.Position.X(), s.Position.Y(), s.Position.Z())
	}
}
