package midi

// Track is the eagerly collected event list of one track chunk. Event
// payloads still borrow from the decoded buffer.
type Track struct {
	Events []Event
}

// Smf is a fully decoded Standard MIDI File.
type Smf struct {
	Format   Format
	Division Division
	Tracks   []Track
}

// ReadSmf decodes every track chunk and every event of data up front. It is
// a convenience over SmfReader for consumers that want owned containers
// instead of iterators; decoding stops at the first error.
func ReadSmf(data []byte) (*Smf, error) {
	reader, err := NewSmfReader(data)
	if err != nil {
		return nil, err
	}

	header := reader.Header()
	tracks := make([]Track, 0, header.NumTracks)

	chunks := reader.TrackChunkIter()
	for chunks.Next() {
		track, err := collectTrack(chunks.Chunk())
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, track)
	}
	if err := chunks.Err(); err != nil {
		return nil, err
	}

	return &Smf{
		Format:   header.Format,
		Division: header.Division,
		Tracks:   tracks,
	}, nil
}

func collectTrack(chunk TrackChunk) (Track, error) {
	var track Track
	events := chunk.Events()
	for events.Next() {
		track.Events = append(track.Events, events.Event())
	}
	return track, events.Err()
}
