// Package replay records the inputs of a session as zstd-compressed JSONL and
// plays them back through a fresh simulation. The first line of a stream is a
// Header, every following line is one Frame.
package replay

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/automoto/thrustcraft-mp/shared/blueprint"
	"github.com/automoto/thrustcraft-mp/shared/netconfig"
	"github.com/automoto/thrustcraft-mp/shared/shipsim"
	"github.com/klauspost/compress/zstd"
)

// FormatVersion is bumped when Header or Frame change incompatibly.
const FormatVersion = 1

var (
	ErrTickGap        = errors.New("replay: tick gap")
	ErrFormatVersion  = errors.New("replay: unsupported format version")
	ErrUnknownPilot   = errors.New("replay: unknown pilot")
	ErrDuplicatePilot = errors.New("replay: pilot already flying")
)

type Header struct {
	Version int            `json:"version"`
	Sector  string         `json:"sector"`
	Started time.Time      `json:"started"`
	Sim     shipsim.Config `json:"sim"`
}

// Spawn places a pilot's ship before the frame's step.
type Spawn struct {
	Pilot     string                  `json:"pilot"`
	Blueprint blueprint.ShipBlueprint `json:"blueprint"`
	Position  [3]float32              `json:"position"`
	Rotation  [4]float32              `json:"rotation"` // w, x, y, z
}

type PilotInput struct {
	Pilot   string              `json:"pilot"`
	Actions netconfig.ActionSet `json:"actions"`
}

// Frame is everything that fed one tick.
type Frame struct {
	Tick     uint64       `json:"tick"`
	Spawns   []Spawn      `json:"spawns,omitempty"`
	Despawns []string     `json:"despawns,omitempty"`
	Inputs   []PilotInput `json:"inputs,omitempty"`
}

// FileName is the conventional name for a session started at t.
func FileName(t time.Time) string {
	return fmt.Sprintf("session-%s.jsonl.zst", t.UTC().Format("2006-01-02-150405"))
}

// Writer appends frames to a compressed stream.
type Writer struct {
	mu       sync.Mutex
	closer   io.Closer
	enc      *zstd.Encoder
	w        *bufio.Writer
	nextTick uint64
	started  bool
}

// NewWriter writes h to dst and returns a Writer for the frames.
func NewWriter(dst io.Writer, h Header) (*Writer, error) {
	enc, err := zstd.NewWriter(dst, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, err
	}
	rw := &Writer{enc: enc, w: bufio.NewWriterSize(enc, 64*1024)}
	if h.Version == 0 {
		h.Version = FormatVersion
	}
	if err := rw.writeLine(h); err != nil {
		_ = enc.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}
	return rw, nil
}

// Create opens path (creating parent directories) and writes h.
func Create(path string, h Header) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w, err := NewWriter(f, h)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	w.closer = f
	return w, nil
}

// WriteFrame appends f. Frames must have consecutive ticks.
func (w *Writer) WriteFrame(f Frame) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started && f.Tick != w.nextTick {
		return fmt.Errorf("%w: expected tick %d, got %d", ErrTickGap, w.nextTick, f.Tick)
	}
	if err := w.writeLine(f); err != nil {
		return err
	}
	w.started = true
	w.nextTick = f.Tick + 1
	return nil
}

func (w *Writer) writeLine(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	return w.w.WriteByte('\n')
}

// Flush pushes buffered frames through the compressor.
func (w *Writer) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.w.Flush(); err != nil {
		return err
	}
	return w.enc.Flush()
}

func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	err := w.w.Flush()
	if cerr := w.enc.Close(); err == nil {
		err = cerr
	}
	if w.closer != nil {
		if cerr := w.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Reader decodes a stream written by Writer.
type Reader struct {
	Header Header

	dec      *zstd.Decoder
	js       *json.Decoder
	closer   io.Closer
	nextTick uint64
	started  bool
}

// NewReader reads and checks the header.
func NewReader(src io.Reader) (*Reader, error) {
	dec, err := zstd.NewReader(src)
	if err != nil {
		return nil, err
	}
	r := &Reader{dec: dec, js: json.NewDecoder(dec)}
	if err := r.js.Decode(&r.Header); err != nil {
		dec.Close()
		return nil, fmt.Errorf("read header: %w", err)
	}
	if r.Header.Version != FormatVersion {
		dec.Close()
		return nil, fmt.Errorf("%w: %d", ErrFormatVersion, r.Header.Version)
	}
	return r, nil
}

func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r, err := NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

// Next returns the next frame, or io.EOF after the last one.
func (r *Reader) Next() (Frame, error) {
	var f Frame
	if err := r.js.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return f, io.EOF
		}
		return f, fmt.Errorf("read frame: %w", err)
	}
	if r.started && f.Tick != r.nextTick {
		return f, fmt.Errorf("%w: expected tick %d, got %d", ErrTickGap, r.nextTick, f.Tick)
	}
	r.started = true
	r.nextTick = f.Tick + 1
	return f, nil
}

func (r *Reader) Close() error {
	r.dec.Close()
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}
