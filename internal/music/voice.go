package music

// Voice is an ordered sequence of events laid end to end
type Voice []Event

// TimedEvent pairs an event with its offset from the start of the voice
type TimedEvent struct {
	Offset Duration
	Event  Event
}

// Timeline returns every event with its computed offset
func (v Voice) Timeline() []TimedEvent {
	timeline := make([]TimedEvent, 0, len(v))
	var offset Duration
	for _, e := range v {
		timeline = append(timeline, TimedEvent{Offset: offset, Event: e})
		offset += e.Duration
	}
	return timeline
}

// Duration returns the highest time of the voice
func (v Voice) Duration() Duration {
	var total Duration
	for _, e := range v {
		total += e.Duration
	}
	return total
}

// Notes returns only the sounding events
func (v Voice) Notes() []Event {
	notes := make([]Event, 0, len(v))
	for _, e := range v {
		if e.IsNote() {
			notes = append(notes, e)
		}
	}
	return notes
}

// Pitches returns the pitches of the sounding events
func (v Voice) Pitches() []Pitch {
	pitches := make([]Pitch, 0, len(v))
	for _, e := range v {
		if e.IsNote() {
			pitches = append(pitches, e.Pitch)
		}
	}
	return pitches
}

// Clone returns an independent copy of the voice
func (v Voice) Clone() Voice {
	if v == nil {
		return nil
	}
	out := make(Voice, len(v))
	copy(out, v)
	return out
}
