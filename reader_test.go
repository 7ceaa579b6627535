package midi

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// headerBytes frames an MThd chunk.
func headerBytes(format Format, tracks uint16, division uint16) []byte {
	return []byte{'M', 'T', 'h', 'd', 0, 0, 0, 6,
		byte(uint16(format) >> 8), byte(format),
		byte(tracks >> 8), byte(tracks),
		byte(division >> 8), byte(division)}
}

// testFile builds a well-formed two-track SMF covering meta, channel voice,
// running status and sysex events.
func testFile() []byte {
	tempoTrack := trackChunkBytes([]byte{
		0x00, 0xFF, 0x51, 0x03, 0x07, 0xA1, 0x20, // tempo 500000
		0x00, 0xFF, 0x58, 0x04, 0x04, 0x02, 0x18, 0x08, // 4/4
		0x00, 0xFF, 0x03, 0x04, 'D', 'e', 'm', 'o', // track name
		0x00, 0xFF, 0x2F, 0x00,
	})

	noteTrack := trackChunkBytes([]byte{
		0x00, 0xC0, 0x05, // program change
		0x00, 0xB0, 0x07, 0x64, // volume
		0x00, 0x90, 0x3C, 0x40, // note on
		0x81, 0x40, 0x3C, 0x00, // running status note off (velocity 0)
		0x00, 0x80, 0x3C, 0x40, // note off
		0x00, 0xE0, 0x00, 0x40, // pitch bend center
		0x00, 0xF0, 0x03, 0x7E, 0x09, 0x01, // sysex
		0x00, 0xFF, 0x2F, 0x00,
	})

	file := headerBytes(MultiTrack, 2, 480)
	file = append(file, tempoTrack...)
	return append(file, noteTrack...)
}

func TestSmfReader(t *testing.T) {
	reader, err := NewSmfReader(testFile())
	require.NoError(t, err)

	header := reader.Header()
	assert.Equal(t, MultiTrack, header.Format)
	assert.Equal(t, uint16(2), header.NumTracks)
	assert.Equal(t, uint16(480), header.Division.TicksPerQuarterNote())

	var counts []int
	it := reader.TrackChunkIter()
	for it.Next() {
		n := 0
		events := it.Chunk().Events()
		for events.Next() {
			n++
		}
		require.NoError(t, events.Err())
		counts = append(counts, n)
	}
	require.NoError(t, it.Err())
	assert.Equal(t, []int{4, 8}, counts)
}

func TestSmfReader_MalformedHeader(t *testing.T) {
	_, err := NewSmfReader([]byte{'R', 'I', 'F', 'F', 0, 0, 0, 6, 0, 1, 0, 1, 0, 96})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalid))
}

func TestSmfReader_FreshIterators(t *testing.T) {
	reader, err := NewSmfReader(testFile())
	require.NoError(t, err)

	for range []int{0, 1} {
		n := 0
		it := reader.TrackChunkIter()
		for it.Next() {
			n++
		}
		require.NoError(t, it.Err())
		assert.Equal(t, 2, n, "every TrackChunkIter call must restart at the first chunk")
	}
}

// Decoding header, chunks and events of a well-formed file consumes the
// buffer exactly.
func TestRoundTripCompleteness(t *testing.T) {
	file := testFile()

	header, rest, err := ReadHeaderChunk(file)
	require.NoError(t, err)

	var status uint8
	for i := uint16(0); i < header.NumTracks; i++ {
		var chunk TrackChunk
		chunk, rest, err = ReadTrackChunk(rest)
		require.NoError(t, err)

		status = 0
		span := chunk.Bytes()
		for len(span) > 0 {
			_, span, err = ReadEvent(span, &status)
			require.NoError(t, err)
		}
	}

	assert.Empty(t, rest, "a well-formed file must be consumed exactly")
}

// Any truncation of a well-formed file must fail cleanly, never panic or
// read past the end.
func TestTruncationRobustness(t *testing.T) {
	file := testFile()

	for n := 0; n < len(file); n++ {
		_, err := ReadSmf(file[:n])
		require.Error(t, err, "prefix of %d bytes", n)
		assert.True(t, errors.Is(err, ErrFatal) || errors.Is(err, ErrInvalid),
			"prefix of %d bytes: got %v", n, err)
	}
}

func TestTrackCountEnforcement(t *testing.T) {
	chunk := trackChunkBytes([]byte{0x00, 0xFF, 0x2F, 0x00})

	// header declares 1 track, file carries 2
	file := headerBytes(Single, 1, 96)
	file = append(file, chunk...)
	file = append(file, chunk...)

	_, err := ReadSmf(file)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalid))
	assert.Contains(t, err.Error(), "undread data left")
}
