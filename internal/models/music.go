package models

// NoteEvent is a single rendered event with timing and pitch information
type NoteEvent struct {
	MidiNoteNumber int     `json:"midiNoteNumber,omitempty"`
	PitchName      string  `json:"pitchName,omitempty"`
	Velocity       int     `json:"velocity,omitempty"`
	StartBeats     float64 `json:"startBeats"`
	DurationBeats  float64 `json:"durationBeats"`
	IsRest         bool    `json:"isRest,omitempty"`
	Lyric          string  `json:"lyric,omitempty"`
	Syllabic       string  `json:"syllabic,omitempty"`
}

// RenderedVoice is one voice laid out on a timeline
type RenderedVoice struct {
	Index         int         `json:"index"`
	DurationBeats float64     `json:"durationBeats"`
	Events        []NoteEvent `json:"events"`
}

// EventInput is an event as received in a request. Pitch may be a pitch
// class, a MIDI number or a note name. Rest events ignore Pitch.
type EventInput struct {
	Pitch    any     `json:"pitch"`
	Duration float64 `json:"duration"`
	Rest     bool    `json:"rest"`
}
