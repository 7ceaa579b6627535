package midi

// SmfReader is the lazy entry point to a Standard MIDI File held in memory.
// The header chunk is decoded eagerly; track chunks and their events are
// decoded on demand and borrow from the buffer handed to NewSmfReader.
type SmfReader struct {
	header Header
	// track chunk bytes, everything after the header chunk
	data []byte
}

// NewSmfReader decodes the header chunk of data and returns a reader over
// the track chunks that follow it.
func NewSmfReader(data []byte) (*SmfReader, error) {
	header, rest, err := ReadHeaderChunk(data)
	if err != nil {
		return nil, err
	}
	return &SmfReader{header: header, data: rest}, nil
}

// Header returns the decoded header chunk.
func (r *SmfReader) Header() Header { return r.header }

// TrackChunkIter returns an iterator yielding exactly as many track chunks
// as the header declared. Each call returns a fresh iterator.
func (r *SmfReader) TrackChunkIter() *TrackIter {
	return &TrackIter{data: r.data, remaining: r.header.NumTracks}
}
