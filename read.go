package midi

import "fmt"

// isVoiceStatus reports whether b is a channel voice status byte, the only
// kind a running status may reuse.
func isVoiceStatus(b uint8) bool {
	return b >= 0x80 && b <= 0xEF
}

// ReadEvent decodes the event at the start of data and returns it together
// with the unread remainder.
//
// runningStatus carries the live status byte between consecutive events of
// one track: a data byte in status position reuses it, a channel voice
// status updates it and a meta or sysex event cancels it. Pass the same cell
// for every event of a track, or nil to reject running status outright.
func ReadEvent(data []byte, runningStatus *uint8) (Event, []byte, error) {
	var local uint8
	if runningStatus == nil {
		runningStatus = &local
	}

	cur := cursor{data: data}

	delta, err := cur.readVLQ()
	if err != nil {
		return Event{}, nil, fmt.Errorf("read event: event must have valid time: %w", err)
	}

	status, err := cur.peek()
	if err != nil {
		return Event{}, nil, fmt.Errorf("read event: event must have type: %w", err)
	}

	if status&0x80 == 0 {
		// Running status: the byte is already the first data byte of a
		// message reusing the previous status.
		if !isVoiceStatus(*runningStatus) {
			return Event{}, nil, fmt.Errorf("read event: data byte %#x without running status: %w", status, ErrInvalid)
		}
		status = *runningStatus
	} else {
		cur.data = cur.data[1:]
	}

	var kind EventKind
	switch {
	case status == 0xF0:
		*runningStatus = 0
		payload, err := cur.readData()
		if err != nil {
			return Event{}, nil, fmt.Errorf("read event: failed to read sysex event: %w", err)
		}
		kind = SysexF0(payload)

	case status == 0xF7:
		*runningStatus = 0
		payload, err := cur.readData()
		if err != nil {
			return Event{}, nil, fmt.Errorf("read event: failed to read sysex event: %w", err)
		}
		kind = SysexF7(payload)

	case status == 0xFF:
		*runningStatus = 0
		kind, err = readMetaEvent(&cur)
		if err != nil {
			return Event{}, nil, fmt.Errorf("read event: failed to read meta event: %w", err)
		}

	case isVoiceStatus(status):
		*runningStatus = status
		kind, err = readMidiEvent(&cur, status)
		if err != nil {
			return Event{}, nil, fmt.Errorf("read event: failed to read midi event: %w", err)
		}

	default:
		// 0xF1-0xF6 and 0xF8-0xFE: system common and real time messages
		// have no place in an SMF track.
		return Event{}, nil, fmt.Errorf("read event: unsupported system message %#x: %w", status, ErrInvalid)
	}

	return Event{Delta: delta, Kind: kind}, cur.data, nil
}

// https://www.midi.org/specifications/item/table-1-summary-of-midi-messages
func readMidiEvent(cur *cursor, status uint8) (MidiEvent, error) {
	event := MidiEvent{Channel: status & 0x0F}

	var err error
	switch status & 0xF0 {
	case 0x80:
		var kind NoteOff
		if kind.Key, err = cur.readU7(); err != nil {
			return MidiEvent{}, err
		}
		if kind.Velocity, err = cur.readU7(); err != nil {
			return MidiEvent{}, err
		}
		event.Kind = kind

	case 0x90:
		var kind NoteOn
		if kind.Key, err = cur.readU7(); err != nil {
			return MidiEvent{}, err
		}
		if kind.Velocity, err = cur.readU7(); err != nil {
			return MidiEvent{}, err
		}
		event.Kind = kind

	case 0xA0:
		var kind PolyphonicKeyPressure
		if kind.Key, err = cur.readU7(); err != nil {
			return MidiEvent{}, err
		}
		if kind.Pressure, err = cur.readU7(); err != nil {
			return MidiEvent{}, err
		}
		event.Kind = kind

	case 0xB0:
		event.Kind, err = readControllerChange(cur)
		if err != nil {
			return MidiEvent{}, err
		}

	case 0xC0:
		program, err := cur.readU7()
		if err != nil {
			return MidiEvent{}, err
		}
		event.Kind = ProgramChange(program)

	case 0xD0:
		pressure, err := cur.readU7()
		if err != nil {
			return MidiEvent{}, err
		}
		event.Kind = ChannelKeyPressure(pressure)

	case 0xE0:
		var kind PitchBend
		if kind.LSB, err = cur.readU7(); err != nil {
			return MidiEvent{}, err
		}
		if kind.MSB, err = cur.readU7(); err != nil {
			return MidiEvent{}, err
		}
		event.Kind = kind
	}

	return event, nil
}

// readControllerChange decodes the data bytes of a 0xB0 status. Controller
// numbers 0x78-0x7F are reserved for channel mode messages.
func readControllerChange(cur *cursor) (MidiKind, error) {
	number, err := cur.readU7()
	if err != nil {
		return nil, err
	}

	switch number {
	case 0x78:
		return AllSoundOff{}, cur.expectU8(0)
	case 0x79:
		return ResetAllControllers{}, cur.expectU8(0)
	case 0x7A:
		action, err := readAction(cur)
		if err != nil {
			return nil, err
		}
		return LocalControl{Action: action}, nil
	case 0x7B:
		return AllNotesOff{}, cur.expectU8(0)
	case 0x7C:
		return OmniModeOff{}, cur.expectU8(0)
	case 0x7D:
		return OmniModeOn{}, cur.expectU8(0)
	case 0x7E:
		channels, err := cur.readU8()
		if err != nil {
			return nil, err
		}
		return MonoModeOn(channels), nil
	case 0x7F:
		return PolyModeOn{}, cur.expectU8(0)
	}

	value, err := cur.readU7()
	if err != nil {
		return nil, err
	}
	return ControllerChange{Number: number, Value: value}, nil
}

func readAction(cur *cursor) (Action, error) {
	b, err := cur.readU8()
	if err != nil {
		return 0, err
	}
	switch Action(b) {
	case Disconnect, Reconnect:
		return Action(b), nil
	}
	return 0, fmt.Errorf("local control action %#x: %w", b, ErrInvalid)
}

func readMetaEvent(cur *cursor) (MetaKind, error) {
	metaType, err := cur.readU8()
	if err != nil {
		return nil, err
	}

	switch metaType {
	case 0x00:
		if err := cur.expectU8(2); err != nil {
			return nil, err
		}
		number, err := cur.readU16()
		if err != nil {
			return nil, err
		}
		return SequenceNumber(number), nil

	case 0x01:
		data, err := cur.readData()
		return Text(data), err
	case 0x02:
		data, err := cur.readData()
		return CopyrightNotice(data), err
	case 0x03:
		data, err := cur.readData()
		return TrackName(data), err
	case 0x04:
		data, err := cur.readData()
		return InstrumentName(data), err
	case 0x05:
		data, err := cur.readData()
		return Lyric(data), err
	case 0x06:
		data, err := cur.readData()
		return Marker(data), err
	case 0x07:
		data, err := cur.readData()
		return CuePoint(data), err

	case 0x20:
		if err := cur.expectU8(1); err != nil {
			return nil, err
		}
		channel, err := cur.readU8()
		return ChannelPrefix(channel), err

	case 0x2F:
		return EndOfTrack{}, cur.expectU8(0)

	case 0x51:
		if err := cur.expectU8(3); err != nil {
			return nil, err
		}
		tempo, err := cur.readU24()
		return SetTempo(tempo), err

	case 0x54:
		if err := cur.expectU8(5); err != nil {
			return nil, err
		}
		b, err := cur.readBytes(5)
		if err != nil {
			return nil, err
		}
		return SMPTEOffset{HH: b[0], MM: b[1], SS: b[2], FR: b[3], FF: b[4]}, nil

	case 0x58:
		if err := cur.expectU8(4); err != nil {
			return nil, err
		}
		b, err := cur.readBytes(4)
		if err != nil {
			return nil, err
		}
		return TimeSignature{
			Numerator:       b[0],
			Denominator:     b[1],
			ClocksPerClick:  b[2],
			ThirtySecondPer: b[3],
		}, nil

	case 0x59:
		if err := cur.expectU8(2); err != nil {
			return nil, err
		}
		b, err := cur.readBytes(2)
		if err != nil {
			return nil, err
		}
		return KeySignature{SharpsFlats: int8(b[0]), Minor: b[1] != 0}, nil

	case 0x7F:
		data, err := cur.readData()
		return SequencerSpecific(data), err
	}

	// Unknown meta types are carried through verbatim, not rejected.
	data, err := cur.readData()
	if err != nil {
		return nil, err
	}
	return UnknownMeta{MetaType: metaType, Data: data}, nil
}

// EventIter yields the events of one track chunk in byte order, carrying the
// running status between them. Same shape as TrackIter:
//
//	events := chunk.Events()
//	for events.Next() {
//		event := events.Event()
//	}
//	if err := events.Err(); err != nil { ... }
type EventIter struct {
	data   []byte
	status uint8
	event  Event
	err    error
}

// Next advances to the next event. It returns false when the chunk is
// exhausted or an event fails to decode; consult Err to tell the two apart.
func (it *EventIter) Next() bool {
	if it.err != nil || len(it.data) == 0 {
		return false
	}

	event, rest, err := ReadEvent(it.data, &it.status)
	if err != nil {
		it.err = err
		return false
	}

	it.data = rest
	it.event = event
	return true
}

// Event returns the event read by the last call to Next.
func (it *EventIter) Event() Event { return it.event }

// Err returns the first error encountered by the iterator.
func (it *EventIter) Err() error { return it.err }
