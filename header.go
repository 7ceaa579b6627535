package midi

import (
	"fmt"

	"go.uber.org/zap"
)

// Format is the SMF file format declared by the header chunk.
type Format uint16

const (
	// Single is a format 0 file: one track chunk.
	Single Format = iota
	// MultiTrack is a format 1 file: simultaneous tracks of one sequence.
	MultiTrack
	// MultiSequence is a format 2 file: independent single-track patterns.
	MultiSequence
)

func (f Format) String() string {
	switch f {
	case Single:
		return "single"
	case MultiTrack:
		return "multi-track"
	case MultiSequence:
		return "multi-sequence"
	}
	return fmt.Sprintf("Format(%d)", uint16(f))
}

// TimeFormat tells how Division is to be interpreted.
type TimeFormat int

const (
	// MetricalTF divisions count pulses per quarter note.
	MetricalTF TimeFormat = iota + 1
	// TimeCodeTF divisions carry an SMPTE frame rate and subframe resolution.
	TimeCodeTF
)

// Division is the raw timing field of the header chunk.
type Division uint16

// TimeFormat reports whether the division is metrical or SMPTE time code.
func (d Division) TimeFormat() TimeFormat {
	if d&0x8000 == 0 {
		return MetricalTF
	}
	return TimeCodeTF
}

// TicksPerQuarterNote returns the metrical resolution, or 0 when the
// division carries SMPTE time code instead.
func (d Division) TicksPerQuarterNote() uint16 {
	if d.TimeFormat() != MetricalTF {
		return 0
	}
	return uint16(d & 0x7FFF)
}

// SMPTE returns the frames per second and ticks per frame, or 0, 0 when the
// division is metrical.
func (d Division) SMPTE() (fps uint8, ticksPerFrame uint8) {
	if d.TimeFormat() != TimeCodeTF {
		return 0, 0
	}
	// frame rate is stored as a negative two's complement value
	return uint8(-int8(d >> 8)), uint8(d & 0xFF)
}

// Header carries the contents of the MThd chunk.
type Header struct {
	Format    Format
	NumTracks uint16
	Division  Division
}

var headerChunkID = []byte{0x4D, 0x54, 0x68, 0x64} // "MThd"

// ReadHeaderChunk decodes the MThd chunk at the start of data and returns the
// header together with the unread remainder, positioned at the first track
// chunk.
func ReadHeaderChunk(data []byte) (Header, []byte, error) {
	cur := cursor{data: data}

	if err := cur.expectBytes(headerChunkID); err != nil {
		return Header{}, nil, fmt.Errorf("read header chunk: chunk type must be 'MThd': %w", err)
	}

	if err := cur.expectU32(6); err != nil {
		return Header{}, nil, fmt.Errorf("read header chunk: header data length must be 6: %w", err)
	}

	format, err := readFormat(&cur)
	if err != nil {
		return Header{}, nil, fmt.Errorf("read header chunk: header must specify format: %w", err)
	}

	tracks, err := cur.readU16()
	if err != nil {
		return Header{}, nil, fmt.Errorf("read header chunk: header must specify tracks: %w", err)
	}

	division, err := cur.readU16()
	if err != nil {
		return Header{}, nil, fmt.Errorf("read header chunk: header must specify division: %w", err)
	}

	header := Header{
		Format:    format,
		NumTracks: tracks,
		Division:  Division(division),
	}

	decodeLog.Named("ReadHeaderChunk").Debug("header",
		zap.Stringer("format", header.Format),
		zap.Uint16("tracks", header.NumTracks),
		zap.Uint16("division", uint16(header.Division)))

	return header, cur.data, nil
}

func readFormat(cur *cursor) (Format, error) {
	v, err := cur.readU16()
	if err != nil {
		return 0, err
	}
	switch v {
	case 0, 1, 2:
		return Format(v), nil
	}
	return 0, fmt.Errorf("format %d: %w", v, ErrInvalid)
}
