package midi

import "fmt"

var trackChunkID = []byte{0x4D, 0x54, 0x72, 0x6B} // "MTrk"

// TrackChunk is the event data of one MTrk chunk, bounded to exactly the
// chunk's declared length. It borrows from the decoded buffer and owns no
// memory of its own.
type TrackChunk struct {
	data []byte
}

// Bytes returns the raw event data of the chunk.
func (t TrackChunk) Bytes() []byte { return t.data }

// Len returns the declared length of the chunk payload.
func (t TrackChunk) Len() int { return len(t.data) }

// Events returns an iterator over the events of the chunk.
func (t TrackChunk) Events() *EventIter {
	return &EventIter{data: t.data}
}

// ReadTrackChunk decodes the MTrk chunk at the start of data and returns it
// together with the unread remainder, positioned at the next chunk.
func ReadTrackChunk(data []byte) (TrackChunk, []byte, error) {
	cur := cursor{data: data}

	if err := cur.expectBytes(trackChunkID); err != nil {
		return TrackChunk{}, nil, fmt.Errorf("read track chunk: chunk type must be 'MTrk': %w", err)
	}

	length, err := cur.readU32()
	if err != nil {
		return TrackChunk{}, nil, fmt.Errorf("read track chunk: track must specify length: %w", err)
	}

	payload, err := cur.readBytes(int(length))
	if err != nil {
		return TrackChunk{}, nil, fmt.Errorf("read track chunk: track must contain %d event bytes: %w", length, err)
	}

	return TrackChunk{data: payload}, cur.data, nil
}

// TrackIter yields the track chunks of a file in order, exactly as many as
// the header declared. It follows the bufio.Scanner shape:
//
//	it := reader.TrackChunkIter()
//	for it.Next() {
//		chunk := it.Chunk()
//	}
//	if err := it.Err(); err != nil { ... }
type TrackIter struct {
	data      []byte
	remaining uint16
	chunk     TrackChunk
	err       error
	done      bool
}

// Next advances to the next track chunk. It returns false when the declared
// track count is exhausted or a chunk fails to decode; consult Err to tell
// the two apart.
func (it *TrackIter) Next() bool {
	if it.err != nil || it.done {
		return false
	}

	if it.remaining == 0 {
		it.done = true
		if len(it.data) != 0 {
			it.err = fmt.Errorf("track chunk iter: undread data left: %w", ErrInvalid)
		}
		return false
	}

	chunk, rest, err := ReadTrackChunk(it.data)
	if err != nil {
		it.err = err
		return false
	}

	it.data = rest
	it.remaining--
	it.chunk = chunk
	return true
}

// Chunk returns the track chunk read by the last call to Next.
func (it *TrackIter) Chunk() TrackChunk { return it.chunk }

// Err returns the first error encountered by the iterator.
func (it *TrackIter) Err() error { return it.err }
