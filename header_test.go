package midi

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadHeaderChunk(t *testing.T) {
	data := []byte{77, 84, 104, 100, 0, 0, 0, 6, 0, 1, 0, 3, 4, 0}

	header, rest, err := ReadHeaderChunk(data)
	require.NoError(t, err)

	assert.Equal(t, MultiTrack, header.Format)
	assert.Equal(t, uint16(3), header.NumTracks)
	assert.Equal(t, Division(1024), header.Division)
	assert.Empty(t, rest)
}

func TestReadHeaderChunk_LeavesCursorAtFirstTrack(t *testing.T) {
	data := []byte{77, 84, 104, 100, 0, 0, 0, 6, 0, 0, 0, 1, 0x01, 0xE0, 'M', 'T', 'r', 'k'}

	header, rest, err := ReadHeaderChunk(data)
	require.NoError(t, err)

	assert.Equal(t, Single, header.Format)
	assert.Equal(t, []byte{'M', 'T', 'r', 'k'}, rest)
}

func TestReadHeaderChunk_Errors(t *testing.T) {
	cases := []struct {
		name  string
		bytes []byte
		kind  error
	}{
		{"wrong magic", []byte{'R', 'I', 'F', 'F', 0, 0, 0, 6, 0, 1, 0, 3, 4, 0}, ErrInvalid},
		{"wrong length", []byte{'M', 'T', 'h', 'd', 0, 0, 0, 7, 0, 1, 0, 3, 4, 0}, ErrInvalid},
		{"bad format", []byte{'M', 'T', 'h', 'd', 0, 0, 0, 6, 0, 3, 0, 3, 4, 0}, ErrInvalid},
		{"truncated magic", []byte{'M', 'T'}, ErrFatal},
		{"missing tracks", []byte{'M', 'T', 'h', 'd', 0, 0, 0, 6, 0, 1}, ErrFatal},
		{"missing division", []byte{'M', 'T', 'h', 'd', 0, 0, 0, 6, 0, 1, 0, 3}, ErrFatal},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, _, err := ReadHeaderChunk(c.bytes)
			require.Error(t, err)
			assert.True(t, errors.Is(err, c.kind), "got %v", err)
		})
	}
}

func TestDivision_Metrical(t *testing.T) {
	d := Division(480)
	assert.Equal(t, MetricalTF, d.TimeFormat())
	assert.Equal(t, uint16(480), d.TicksPerQuarterNote())

	fps, tpf := d.SMPTE()
	assert.Zero(t, fps)
	assert.Zero(t, tpf)
}

func TestDivision_TimeCode(t *testing.T) {
	// -30 fps, 80 ticks per frame
	d := Division(0xE250)
	assert.Equal(t, TimeCodeTF, d.TimeFormat())
	assert.Zero(t, d.TicksPerQuarterNote())

	fps, tpf := d.SMPTE()
	assert.Equal(t, uint8(30), fps)
	assert.Equal(t, uint8(80), tpf)
}

func TestFormat_String(t *testing.T) {
	assert.Equal(t, "single", Single.String())
	assert.Equal(t, "multi-track", MultiTrack.String())
	assert.Equal(t, "multi-sequence", MultiSequence.String())
}
