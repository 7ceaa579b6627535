package midi

import "fmt"

// Event is one track event: a delta time in ticks since the previous event
// of the same track, and its decoded payload.
type Event struct {
	Delta uint32
	Kind  EventKind
}

// EventKind is one of the three SMF event categories: MidiEvent, a MetaKind
// variant, or a SysexEvent variant. The set is closed; consumers dispatch
// with a type switch.
type EventKind interface {
	eventKind()
}

// MidiEvent is a channel voice or channel mode message.
type MidiEvent struct {
	Channel uint8 // 0-15
	Kind    MidiKind
}

func (MidiEvent) eventKind() {}

// MidiKind is the message carried by a MidiEvent. The set is closed.
type MidiKind interface {
	midiKind()
}

// Channel voice messages.
type (
	// NoteOff releases a key.
	NoteOff struct {
		Key      uint8
		Velocity uint8
	}
	// NoteOn presses a key. Velocity 0 conventionally means note off.
	NoteOn struct {
		Key      uint8
		Velocity uint8
	}
	// PolyphonicKeyPressure is per-key aftertouch.
	PolyphonicKeyPressure struct {
		Key      uint8
		Pressure uint8
	}
	// ControllerChange sets controller Number to Value. Controller numbers
	// 0x78-0x7F never reach consumers as ControllerChange; they decode to
	// the channel mode messages below.
	ControllerChange struct {
		Number uint8
		Value  uint8
	}
	// PitchBend carries the raw 14-bit bend value split over two data bytes.
	PitchBend struct {
		LSB uint8
		MSB uint8
	}
)

// ProgramChange selects a program (patch) number.
type ProgramChange uint8

// ChannelKeyPressure is channel-wide aftertouch.
type ChannelKeyPressure uint8

// Value assembles the 14-bit pitch bend value, 0x2000 meaning no bend.
func (p PitchBend) Value() uint16 {
	return uint16(p.MSB)<<7 | uint16(p.LSB)
}

// Action is the payload of a LocalControl channel mode message.
type Action uint8

const (
	// Disconnect detaches the keyboard from the sound generator.
	Disconnect Action = 0x00
	// Reconnect restores local control.
	Reconnect Action = 0x7F
)

func (a Action) String() string {
	switch a {
	case Disconnect:
		return "disconnect"
	case Reconnect:
		return "reconnect"
	}
	return fmt.Sprintf("Action(%#x)", uint8(a))
}

// Channel mode messages (controller numbers 0x78-0x7F).
type (
	// AllSoundOff silences the channel immediately.
	AllSoundOff struct{}
	// ResetAllControllers restores controller defaults.
	ResetAllControllers struct{}
	// LocalControl connects or disconnects the local keyboard.
	LocalControl struct {
		Action Action
	}
	// AllNotesOff releases all held notes.
	AllNotesOff struct{}
	// OmniModeOff disables omni reception.
	OmniModeOff struct{}
	// OmniModeOn enables omni reception.
	OmniModeOn struct{}
	// PolyModeOn switches the channel to polyphonic operation.
	PolyModeOn struct{}
)

// MonoModeOn switches to monophonic operation; the value is the number of
// channels to use, 0 meaning as many as voices.
type MonoModeOn uint8

func (NoteOff) midiKind()               {}
func (NoteOn) midiKind()                {}
func (PolyphonicKeyPressure) midiKind() {}
func (ControllerChange) midiKind()      {}
func (ProgramChange) midiKind()         {}
func (ChannelKeyPressure) midiKind()    {}
func (PitchBend) midiKind()             {}
func (AllSoundOff) midiKind()           {}
func (ResetAllControllers) midiKind()   {}
func (LocalControl) midiKind()          {}
func (AllNotesOff) midiKind()           {}
func (OmniModeOff) midiKind()           {}
func (OmniModeOn) midiKind()            {}
func (MonoModeOn) midiKind()            {}
func (PolyModeOn) midiKind()            {}

// MetaKind is an event introduced by a 0xFF status byte. Every variant also
// implements EventKind. Text payloads are views into the decoded buffer,
// interpretable as UTF-8 on demand via String.
type MetaKind interface {
	EventKind
	metaKind()
}

// SequenceNumber is meta type 0x00.
type SequenceNumber uint16

// Text variants, meta types 0x01-0x07.
type (
	// Text is meta type 0x01, arbitrary text.
	Text []byte
	// CopyrightNotice is meta type 0x02.
	CopyrightNotice []byte
	// TrackName is meta type 0x03, the sequence or track name.
	TrackName []byte
	// InstrumentName is meta type 0x04.
	InstrumentName []byte
	// Lyric is meta type 0x05.
	Lyric []byte
	// Marker is meta type 0x06.
	Marker []byte
	// CuePoint is meta type 0x07.
	CuePoint []byte
)

func (t Text) String() string            { return string(t) }
func (t CopyrightNotice) String() string { return string(t) }
func (t TrackName) String() string       { return string(t) }
func (t InstrumentName) String() string  { return string(t) }
func (t Lyric) String() string           { return string(t) }
func (t Marker) String() string          { return string(t) }
func (t CuePoint) String() string        { return string(t) }

// ChannelPrefix is meta type 0x20; subsequent meta and sysex events apply to
// this channel.
type ChannelPrefix uint8

// EndOfTrack is meta type 0x2F, the mandatory final event of a track.
type EndOfTrack struct{}

// SetTempo is meta type 0x51: microseconds per quarter note, 24 bits.
type SetTempo uint32

// SMPTEOffset is meta type 0x54, the SMPTE time the track starts at.
type SMPTEOffset struct {
	HH uint8
	MM uint8
	SS uint8
	FR uint8
	FF uint8
}

// TimeSignature is meta type 0x58. Denominator is a power of two: 3 means 8.
type TimeSignature struct {
	Numerator       uint8
	Denominator     uint8
	ClocksPerClick  uint8
	ThirtySecondPer uint8 // notated 32nd notes per MIDI quarter note
}

// KeySignature is meta type 0x59. SharpsFlats is negative for flats.
type KeySignature struct {
	SharpsFlats int8
	Minor       bool
}

// SequencerSpecific is meta type 0x7F, opaque sequencer data.
type SequencerSpecific []byte

// UnknownMeta is any meta type outside the table above; the payload is kept
// verbatim.
type UnknownMeta struct {
	MetaType uint8
	Data     []byte
}

func (SequenceNumber) eventKind()    {}
func (Text) eventKind()              {}
func (CopyrightNotice) eventKind()   {}
func (TrackName) eventKind()         {}
func (InstrumentName) eventKind()    {}
func (Lyric) eventKind()             {}
func (Marker) eventKind()            {}
func (CuePoint) eventKind()          {}
func (ChannelPrefix) eventKind()     {}
func (EndOfTrack) eventKind()        {}
func (SetTempo) eventKind()          {}
func (SMPTEOffset) eventKind()       {}
func (TimeSignature) eventKind()     {}
func (KeySignature) eventKind()      {}
func (SequencerSpecific) eventKind() {}
func (UnknownMeta) eventKind()       {}

func (SequenceNumber) metaKind()    {}
func (Text) metaKind()              {}
func (CopyrightNotice) metaKind()   {}
func (TrackName) metaKind()         {}
func (InstrumentName) metaKind()    {}
func (Lyric) metaKind()             {}
func (Marker) metaKind()            {}
func (CuePoint) metaKind()          {}
func (ChannelPrefix) metaKind()     {}
func (EndOfTrack) metaKind()        {}
func (SetTempo) metaKind()          {}
func (SMPTEOffset) metaKind()       {}
func (TimeSignature) metaKind()     {}
func (KeySignature) metaKind()      {}
func (SequencerSpecific) metaKind() {}
func (UnknownMeta) metaKind()       {}

// SysexEvent is a system exclusive event. Both variants also implement
// EventKind; the payload is a view into the decoded buffer.
type SysexEvent interface {
	EventKind
	sysexKind()
}

// SysexF0 is a complete or initial sysex packet introduced by 0xF0.
type SysexF0 []byte

// SysexF7 is a sysex continuation or escape sequence introduced by 0xF7.
type SysexF7 []byte

func (SysexF0) eventKind() {}
func (SysexF7) eventKind() {}
func (SysexF0) sysexKind() {}
func (SysexF7) sysexKind() {}
