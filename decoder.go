package midi

import (
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Decoder reads a Standard MIDI File incrementally from a byte source, one
// chunk at a time. Each track chunk payload is buffered in full before its
// events are decoded, so event decoding shares the in-memory path; unlike
// SmfReader, chunk payloads are owned by the Decoder's reads, not borrowed
// from a caller buffer.
type Decoder struct {
	r         io.Reader
	header    Header
	started   bool
	remaining uint16
}

// NewDecoder returns a Decoder reading from r. Nothing is read until Header,
// NextChunk or Decode is called.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// fatalEOF maps the EOF family onto ErrFatal so callers can classify a
// truncated source the same way as a truncated buffer.
func fatalEOF(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return ErrFatal
	}
	return err
}

func (d *Decoder) readHeader() error {
	// MThd chunk: 4 byte type + 4 byte length + 6 byte payload.
	buf := make([]byte, 14)
	if _, err := io.ReadFull(d.r, buf); err != nil {
		return fmt.Errorf("decoder: failed to read header chunk: %w", fatalEOF(err))
	}

	header, _, err := ReadHeaderChunk(buf)
	if err != nil {
		return err
	}

	d.header = header
	d.remaining = header.NumTracks
	d.started = true

	decodeLog.Named("Decoder").Debug("header",
		zap.Stringer("format", header.Format),
		zap.Uint16("tracks", header.NumTracks))

	return nil
}

// Header returns the header chunk, reading it from the source on first use.
func (d *Decoder) Header() (Header, error) {
	if !d.started {
		if err := d.readHeader(); err != nil {
			return Header{}, err
		}
	}
	return d.header, nil
}

// NextChunk reads one track chunk from the source. After the declared number
// of chunks it verifies the source is exhausted and returns io.EOF; bytes
// still pending at that point are reported as an error.
func (d *Decoder) NextChunk() (TrackChunk, error) {
	if !d.started {
		if err := d.readHeader(); err != nil {
			return TrackChunk{}, err
		}
	}

	if d.remaining == 0 {
		var probe [1]byte
		if _, err := io.ReadFull(d.r, probe[:]); err == nil {
			return TrackChunk{}, fmt.Errorf("decoder: undread data left: %w", ErrInvalid)
		} else if err != io.EOF {
			return TrackChunk{}, fmt.Errorf("decoder: failed to probe end of source: %w", err)
		}
		return TrackChunk{}, io.EOF
	}

	// MTrk chunk header: 4 byte type + 4 byte length.
	head := make([]byte, 8)
	if _, err := io.ReadFull(d.r, head); err != nil {
		return TrackChunk{}, fmt.Errorf("decoder: failed to read track chunk header: %w", fatalEOF(err))
	}

	cur := cursor{data: head}
	if err := cur.expectBytes(trackChunkID); err != nil {
		return TrackChunk{}, fmt.Errorf("decoder: chunk type must be 'MTrk': %w", err)
	}
	length, err := cur.readU32()
	if err != nil {
		return TrackChunk{}, fmt.Errorf("decoder: track must specify length: %w", err)
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(d.r, payload); err != nil {
		return TrackChunk{}, fmt.Errorf("decoder: track must contain %d event bytes: %w", length, fatalEOF(err))
	}

	d.remaining--
	return TrackChunk{data: payload}, nil
}

// Decode drains the source: header, every track chunk and every event.
func (d *Decoder) Decode() (*Smf, error) {
	header, err := d.Header()
	if err != nil {
		return nil, err
	}

	tracks := make([]Track, 0, header.NumTracks)
	for {
		chunk, err := d.NextChunk()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		track, err := collectTrack(chunk)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, track)
	}

	return &Smf{
		Format:   header.Format,
		Division: header.Division,
		Tracks:   tracks,
	}, nil
}
