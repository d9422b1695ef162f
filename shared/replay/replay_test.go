package replay

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/automoto/thrustcraft-mp/shared/netconfig"
	"github.com/automoto/thrustcraft-mp/shared/shipsim"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHeader() Header {
	return Header{
		Sector:  "drift",
		Started: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Sim:     shipsim.DefaultConfig(),
	}
}

func rawStream(t *testing.T, lines ...string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	for _, l := range lines {
		_, err := enc.Write([]byte(l + "\n"))
		require.NoError(t, err)
	}
	require.NoError(t, enc.Close())
	return &buf
}

func TestWriterReader_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, testHeader())
	require.NoError(t, err)

	fwd := netconfig.NewActionSet(netconfig.ActionThrustForward)
	require.NoError(t, w.WriteFrame(Frame{Tick: 0, Inputs: []PilotInput{{Pilot: "vega", Actions: fwd}}}))
	require.NoError(t, w.WriteFrame(Frame{Tick: 1}))
	require.NoError(t, w.WriteFrame(Frame{Tick: 2, Despawns: []string{"vega"}}))
	require.NoError(t, w.Close())

	r, err := NewReader(&buf)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, FormatVersion, r.Header.Version)
	assert.Equal(t, "drift", r.Header.Sector)
	assert.Equal(t, shipsim.DefaultConfig(), r.Header.Sim)

	var frames []Frame
	for {
		f, err := r.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		frames = append(frames, f)
	}
	require.Len(t, frames, 3)
	assert.Equal(t, fwd, frames[0].Inputs[0].Actions)
	assert.Equal(t, []string{"vega"}, frames[2].Despawns)
}

func TestWriter_RejectsTickGap(t *testing.T) {
	w, err := NewWriter(io.Discard, testHeader())
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.WriteFrame(Frame{Tick: 40}))
	assert.ErrorIs(t, w.WriteFrame(Frame{Tick: 42}), ErrTickGap)
	assert.NoError(t, w.WriteFrame(Frame{Tick: 41}))
}

func TestReader_DetectsTickGap(t *testing.T) {
	src := rawStream(t, `{"version":1}`, `{"tick":0}`, `{"tick":1}`, `{"tick":3}`)
	r, err := NewReader(src)
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Next()
	require.NoError(t, err)
	_, err = r.Next()
	require.NoError(t, err)
	_, err = r.Next()
	assert.ErrorIs(t, err, ErrTickGap)
}

func TestReader_RejectsVersion(t *testing.T) {
	_, err := NewReader(rawStream(t, `{"version":99}`))
	assert.ErrorIs(t, err, ErrFormatVersion)
}

func TestReader_Garbage(t *testing.T) {
	_, err := NewReader(bytes.NewReader([]byte("not zstd at all")))
	assert.Error(t, err)
}

func TestCreateOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName(testHeader().Started))
	w, err := Create(path, testHeader())
	require.NoError(t, err)
	require.NoError(t, w.WriteFrame(Frame{Tick: 0}))
	require.NoError(t, w.Close())

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	f, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), f.Tick)
	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, "session-2026-03-01-120000.jsonl.zst", filepath.Base(path))
}
